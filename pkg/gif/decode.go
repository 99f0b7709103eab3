package gif

import (
	"errors"
	"fmt"

	"golang.org/x/text/encoding/charmap"

	"github.com/yaklabco/gifdec/pkg/bytestream"
	"github.com/yaklabco/gifdec/pkg/schema"
)

// ErrNotGIF is returned by Sniff and DecodeStrict for input that does not
// start with the "GIF" signature.
var ErrNotGIF = errors.New("not a GIF")

const signature = "GIF"

// Sniff checks the signature only. The version is not validated.
func Sniff(data []byte) error {
	if len(data) == 0 {
		return fmt.Errorf("%w: empty input", ErrNotGIF)
	}
	if len(data) < len(signature) || string(data[:len(signature)]) != signature {
		n := min(len(data), len(signature))
		return fmt.Errorf("%w: signature %q", ErrNotGIF, data[:n])
	}
	return nil
}

// ParseRecord runs the grammar over data and returns the raw record tree.
func ParseRecord(data []byte) (schema.Record, int) {
	s := bytestream.New(data)
	rec := schema.Parse(s, Schema())
	return rec, s.Pos()
}

// Decode parses data into a ParseResult. It never fails: truncated or
// malformed input yields whatever could be read.
func Decode(data []byte) *ParseResult {
	rec, consumed := ParseRecord(data)

	res := fromRecord(rec)
	res.Consumed = consumed
	res.Size = len(data)
	res.HasTrailer = consumed < len(data) && data[consumed] == Trailer
	return res
}

// DecodeStrict is Decode preceded by Sniff.
func DecodeStrict(data []byte) (*ParseResult, error) {
	if err := Sniff(data); err != nil {
		return nil, err
	}
	return Decode(data), nil
}

func fromRecord(rec schema.Record) *ParseResult {
	header := rec.Record(keyHeader)
	screen := rec.Record(keyScreen)
	packed := screen.Bits(keyPacked)

	res := &ParseResult{
		Header: Header{
			Signature: header.String(keySignature),
			Version:   header.String(keyVersion),
		},
		Screen: LogicalScreen{
			Width:                   screen.Int(keyWidth),
			Height:                  screen.Int(keyHeight),
			HasGlobalColorTable:     packed.Flag("exists"),
			ColorResolution:         packed.Uint("resolution"),
			Sorted:                  packed.Flag("sort"),
			GlobalColorTableSizeExp: packed.Uint("size"),
			BackgroundIndex:         screen.Int(keyBackground),
			PixelAspectRatio:        screen.Int(keyAspect),
		},
		GlobalColorTable: colorTable(rec.Tuples(keyGlobalTable)),
	}

	for _, item := range rec.Records(keyBlocks) {
		if block, ok := blockFromRecord(item); ok {
			res.Blocks = append(res.Blocks, block)
		}
	}
	return res
}

func blockFromRecord(rec schema.Record) (Block, bool) {
	switch {
	case rec.Has(keyGraphicControl):
		gce := rec.Record(keyGraphicControl)
		packed := gce.Bits(keyPacked)
		return Block{GraphicControl: &GraphicControl{
			Disposal:         Disposal(packed.Uint("disposal")),
			UserInput:        packed.Flag("userInput"),
			HasTransparent:   packed.Flag("transparentColorGiven"),
			TransparentIndex: gce.Int(keyTransIndex),
			Delay:            gce.Int(keyDelay),
		}}, true

	case rec.Has(keyImage):
		img := rec.Record(keyImage)
		desc := img.Record(keyDescriptor)
		packed := desc.Bits(keyPacked)
		data := img.Record(keyData)
		return Block{Image: &Image{
			Descriptor: ImageDescriptor{
				Left:                   desc.Int(keyLeft),
				Top:                    desc.Int(keyTop),
				Width:                  desc.Int(keyWidth),
				Height:                 desc.Int(keyHeight),
				HasLocalColorTable:     packed.Flag("exists"),
				Interlaced:             packed.Flag("interlaced"),
				Sorted:                 packed.Flag("sort"),
				LocalColorTableSizeExp: packed.Uint("size"),
			},
			LocalColorTable: colorTable(img.Tuples(keyLocalTable)),
			MinCodeSize:     data.Int(keyMinCodeSize),
			Data:            data.Bytes(keySubBlocks),
		}}, true

	case rec.Has(keyApplication):
		app := rec.Record(keyApplication)
		return Block{Application: &Application{
			Identifier: app.String(keyIdentifier),
			Data:       app.Bytes(keySubBlocks),
		}}, true

	case rec.Has(keyComment):
		payload := rec.Record(keyComment).Bytes(keySubBlocks)
		return Block{Comment: &Comment{
			Text: latin1(payload),
			Data: payload,
		}}, true

	case rec.Has(keyPlainText):
		text := rec.Record(keyPlainText)
		return Block{PlainText: &PlainText{
			Header: text.Bytes(keyPreData),
			Data:   text.Bytes(keySubBlocks),
		}}, true

	case rec.Has(keyUnknown):
		unknown := rec.Record(keyUnknown)
		var label byte
		if codes := unknown.Bytes(keyCodes); len(codes) > 1 {
			label = codes[1]
		}
		return Block{Unknown: &UnknownExtension{
			Label: label,
			Data:  unknown.Bytes(keySubBlocks),
		}}, true

	default:
		return Block{}, false
	}
}

func colorTable(tuples [][]byte) ColorTable {
	if tuples == nil {
		return nil
	}
	table := make(ColorTable, 0, len(tuples))
	for _, rgb := range tuples {
		table = append(table, RGB{R: rgb[0], G: rgb[1], B: rgb[2]})
	}
	return table
}

// latin1 decodes comment bytes as ISO 8859-1, which maps every byte.
func latin1(b []byte) string {
	text, err := charmap.ISO8859_1.NewDecoder().Bytes(b)
	if err != nil {
		return string(b)
	}
	return string(text)
}
