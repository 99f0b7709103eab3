// Package gif describes the GIF87a/GIF89a container format as a schema and
// converts the parsed tree into typed blocks.
//
// Decoding is lenient: truncated or slightly malformed files still produce a
// structurally valid ParseResult. Pixel data is left compressed; see package
// frame for decompression.
package gif

import "fmt"

// Header is the six-byte file signature and version.
type Header struct {
	Signature string
	Version   string
}

// LogicalScreen is the logical screen descriptor.
type LogicalScreen struct {
	Width                   int
	Height                  int
	HasGlobalColorTable     bool
	ColorResolution         int
	Sorted                  bool
	GlobalColorTableSizeExp int
	BackgroundIndex         int
	PixelAspectRatio        int
}

// RGB is one color table entry.
type RGB struct {
	R, G, B uint8
}

// ColorTable is an ordered palette. A nil table means none was present.
type ColorTable []RGB

// Lookup returns the color at index, or black when the index is out of range.
func (ct ColorTable) Lookup(index int) RGB {
	if index < 0 || index >= len(ct) {
		return RGB{}
	}
	return ct[index]
}

// Disposal is the disposal method of a graphic control extension.
type Disposal int

// Disposal methods defined by GIF89a.
const (
	DisposalUnspecified Disposal = 0
	DisposalNone        Disposal = 1
	DisposalBackground  Disposal = 2
	DisposalPrevious    Disposal = 3
)

func (d Disposal) String() string {
	switch d {
	case DisposalUnspecified:
		return "unspecified"
	case DisposalNone:
		return "none"
	case DisposalBackground:
		return "background"
	case DisposalPrevious:
		return "previous"
	default:
		return fmt.Sprintf("reserved(%d)", int(d))
	}
}

// GraphicControl is a graphic control extension.
type GraphicControl struct {
	Disposal         Disposal
	UserInput        bool
	HasTransparent   bool
	TransparentIndex int
	// Delay is in hundredths of a second.
	Delay int
}

// ImageDescriptor locates an image within the logical screen.
type ImageDescriptor struct {
	Left                   int
	Top                    int
	Width                  int
	Height                 int
	HasLocalColorTable     bool
	Interlaced             bool
	Sorted                 bool
	LocalColorTableSizeExp int
}

// PixelCount is Width*Height.
func (d ImageDescriptor) PixelCount() int {
	return d.Width * d.Height
}

// Image is an image block with its still-compressed data.
type Image struct {
	Descriptor      ImageDescriptor
	LocalColorTable ColorTable
	MinCodeSize     int
	Data            []byte
}

// Application is an application extension.
type Application struct {
	Identifier string
	Data       []byte
}

// LoopCount decodes the NETSCAPE2.0 / ANIMEXTS1.0 looping sub-block.
// Zero means loop forever.
func (a *Application) LoopCount() (int, bool) {
	if a == nil {
		return 0, false
	}
	if a.Identifier != "NETSCAPE2.0" && a.Identifier != "ANIMEXTS1.0" {
		return 0, false
	}
	if len(a.Data) < 3 || a.Data[0] != 1 {
		return 0, false
	}
	return int(a.Data[1]) | int(a.Data[2])<<8, true
}

// Comment is a comment extension. Text is the payload decoded as Latin-1.
type Comment struct {
	Text string
	Data []byte
}

// PlainText is a plain text extension. Header holds the raw grid and
// color fields that precede the text sub-blocks.
type PlainText struct {
	Header []byte
	Data   []byte
}

// UnknownExtension is an extension with a label this package does not model.
type UnknownExtension struct {
	Label byte
	Data  []byte
}

// Block is one entry of the block loop. Exactly one field is non-nil.
type Block struct {
	GraphicControl *GraphicControl
	Image          *Image
	Application    *Application
	Comment        *Comment
	PlainText      *PlainText
	Unknown        *UnknownExtension
}

// BlockKind names the populated variant of a Block.
type BlockKind string

// Block kinds.
const (
	KindGraphicControl BlockKind = "graphic-control"
	KindImage          BlockKind = "image"
	KindApplication    BlockKind = "application"
	KindComment        BlockKind = "comment"
	KindPlainText      BlockKind = "plain-text"
	KindUnknown        BlockKind = "unknown"
	KindEmpty          BlockKind = ""
)

// Kind reports which variant is populated.
func (b Block) Kind() BlockKind {
	switch {
	case b.GraphicControl != nil:
		return KindGraphicControl
	case b.Image != nil:
		return KindImage
	case b.Application != nil:
		return KindApplication
	case b.Comment != nil:
		return KindComment
	case b.PlainText != nil:
		return KindPlainText
	case b.Unknown != nil:
		return KindUnknown
	default:
		return KindEmpty
	}
}

// ParseResult is the typed form of a parsed GIF.
type ParseResult struct {
	Header           Header
	Screen           LogicalScreen
	GlobalColorTable ColorTable
	Blocks           []Block

	// HasTrailer reports whether the block loop ended on the 0x3B trailer.
	HasTrailer bool
	// Consumed is the number of bytes the parser advanced over.
	Consumed int
	// Size is the length of the input buffer.
	Size int
}

// Images returns the image blocks in stream order.
func (r *ParseResult) Images() []*Image {
	var images []*Image
	for _, block := range r.Blocks {
		if block.Image != nil {
			images = append(images, block.Image)
		}
	}
	return images
}

// LoopCount returns the loop count of the first looping application
// extension. ok is false when the file declares none.
func (r *ParseResult) LoopCount() (count int, ok bool) {
	for _, block := range r.Blocks {
		if n, found := block.Application.LoopCount(); found {
			return n, true
		}
	}
	return 0, false
}

// Comments returns the text of every comment extension.
func (r *ParseResult) Comments() []string {
	var comments []string
	for _, block := range r.Blocks {
		if block.Comment != nil {
			comments = append(comments, block.Comment.Text)
		}
	}
	return comments
}

// Applications returns the identifiers of every application extension.
func (r *ParseResult) Applications() []string {
	var ids []string
	for _, block := range r.Blocks {
		if block.Application != nil {
			ids = append(ids, block.Application.Identifier)
		}
	}
	return ids
}
