package gif

import (
	"github.com/yaklabco/gifdec/pkg/bytestream"
	"github.com/yaklabco/gifdec/pkg/schema"
)

// Block introducers and extension labels.
const (
	ExtensionIntroducer byte = 0x21
	ImageSeparator      byte = 0x2C
	Trailer             byte = 0x3B

	LabelGraphicControl byte = 0xF9
	LabelPlainText      byte = 0x01
	LabelApplication    byte = 0xFF
	LabelComment        byte = 0xFE
)

// Record keys used by the grammar.
const (
	keyHeader    = "header"
	keySignature = "signature"
	keyVersion   = "version"

	keyScreen     = "lsd"
	keyWidth      = "width"
	keyHeight     = "height"
	keyPacked     = "packed"
	keyBackground = "backgroundColorIndex"
	keyAspect     = "pixelAspectRatio"

	keyGlobalTable = "gct"
	keyBlocks      = "frames"

	keyGraphicControl = "gce"
	keyImage          = "image"
	keyApplication    = "application"
	keyComment        = "comment"
	keyPlainText      = "text"
	keyUnknown        = "unknown"

	keyCodes      = "codes"
	keyBlockSize  = "blockSize"
	keyDelay      = "delay"
	keyTransIndex = "transparentColorIndex"
	keyTerminator = "terminator"

	keyCode        = "code"
	keyDescriptor  = "descriptor"
	keyLeft        = "left"
	keyTop         = "top"
	keyLocalTable  = "lct"
	keyData        = "data"
	keyMinCodeSize = "minCodeSize"
	keySubBlocks   = "blocks"
	keyIdentifier  = "id"
	keyPreData     = "preData"
)

var screenFields = bytestream.BitFields{
	"exists":     {Index: 0},
	"resolution": {Index: 1, Length: 3},
	"sort":       {Index: 4},
	"size":       {Index: 5, Length: 3},
}

var graphicControlFields = bytestream.BitFields{
	"future":                {Index: 0, Length: 3},
	"disposal":              {Index: 3, Length: 3},
	"userInput":             {Index: 6},
	"transparentColorGiven": {Index: 7},
}

var descriptorFields = bytestream.BitFields{
	"exists":     {Index: 0},
	"interlaced": {Index: 1},
	"sort":       {Index: 2},
	"future":     {Index: 3, Length: 2},
	"size":       {Index: 5, Length: 3},
}

// ColorTableLen is the number of entries for a packed size exponent.
func ColorTableLen(sizeExp int) int {
	return 1 << (sizeExp + 1)
}

// Schema returns the GIF grammar. Each call builds a fresh tree.
func Schema() schema.Node {
	return schema.Sequence(
		schema.Nested(keyHeader,
			schema.Field(keySignature, schema.String(3)),
			schema.Field(keyVersion, schema.String(3)),
		),
		schema.Nested(keyScreen,
			schema.Field(keyWidth, schema.Uint16(true)),
			schema.Field(keyHeight, schema.Uint16(true)),
			schema.Field(keyPacked, schema.Bits(screenFields)),
			schema.Field(keyBackground, schema.Uint8()),
			schema.Field(keyAspect, schema.Uint8()),
		),
		schema.Conditional(
			schema.Field(keyGlobalTable, schema.Array(3, globalTableLen)),
			hasGlobalTable,
		),
		schema.Loop(keyBlocks, blockSchema(), startsBlock),
	)
}

// blockSchema tries each block kind in turn. The first match claims the
// iteration so a record holds exactly one variant.
func blockSchema() schema.Node {
	return schema.Sequence(
		schema.Conditional(graphicControlSchema(), claims(ExtensionIntroducer, LabelGraphicControl)),
		schema.Conditional(imageSchema(), claimsImage),
		schema.Conditional(plainTextSchema(), claims(ExtensionIntroducer, LabelPlainText)),
		schema.Conditional(applicationSchema(), claims(ExtensionIntroducer, LabelApplication)),
		schema.Conditional(commentSchema(), claims(ExtensionIntroducer, LabelComment)),
		schema.Conditional(unknownSchema(), claimsUnknown),
	)
}

func graphicControlSchema() schema.Node {
	return schema.Nested(keyGraphicControl,
		schema.Field(keyCodes, schema.Bytes(2)),
		schema.Field(keyBlockSize, schema.Uint8()),
		schema.Field(keyPacked, schema.Bits(graphicControlFields)),
		schema.Field(keyDelay, schema.Uint16(true)),
		schema.Field(keyTransIndex, schema.Uint8()),
		schema.Field(keyTerminator, schema.Uint8()),
	)
}

func imageSchema() schema.Node {
	return schema.Nested(keyImage,
		schema.Field(keyCode, schema.Uint8()),
		schema.Nested(keyDescriptor,
			schema.Field(keyLeft, schema.Uint16(true)),
			schema.Field(keyTop, schema.Uint16(true)),
			schema.Field(keyWidth, schema.Uint16(true)),
			schema.Field(keyHeight, schema.Uint16(true)),
			schema.Field(keyPacked, schema.Bits(descriptorFields)),
		),
		schema.Conditional(
			schema.Field(keyLocalTable, schema.Array(3, localTableLen)),
			hasLocalTable,
		),
		schema.Nested(keyData,
			schema.Field(keyMinCodeSize, schema.Uint8()),
			schema.Field(keySubBlocks, subBlocks()),
		),
	)
}

func plainTextSchema() schema.Node {
	return schema.Nested(keyPlainText,
		schema.Field(keyCodes, schema.Bytes(2)),
		schema.Field(keyBlockSize, schema.Uint8()),
		schema.Field(keyPreData, func(s *bytestream.Stream, _, parent schema.Record) any {
			return s.ReadBytes(parent.Int(keyBlockSize))
		}),
		schema.Field(keySubBlocks, subBlocks()),
	)
}

func applicationSchema() schema.Node {
	return schema.Nested(keyApplication,
		schema.Field(keyCodes, schema.Bytes(2)),
		schema.Field(keyBlockSize, schema.Uint8()),
		schema.Field(keyIdentifier, func(s *bytestream.Stream, _, parent schema.Record) any {
			return s.ReadString(parent.Int(keyBlockSize))
		}),
		schema.Field(keySubBlocks, subBlocks()),
	)
}

func commentSchema() schema.Node {
	return schema.Nested(keyComment,
		schema.Field(keyCodes, schema.Bytes(2)),
		schema.Field(keySubBlocks, subBlocks()),
	)
}

func unknownSchema() schema.Node {
	return schema.Nested(keyUnknown,
		schema.Field(keyCodes, schema.Bytes(2)),
		schema.Field(keySubBlocks, subBlocks()),
	)
}

func hasGlobalTable(_ *bytestream.Stream, root, _ schema.Record) bool {
	return root.Record(keyScreen).Bits(keyPacked).Flag("exists")
}

func globalTableLen(_ *bytestream.Stream, root, _ schema.Record) int {
	return ColorTableLen(root.Record(keyScreen).Bits(keyPacked).Uint("size"))
}

func hasLocalTable(_ *bytestream.Stream, _, parent schema.Record) bool {
	return parent.Record(keyDescriptor).Bits(keyPacked).Flag("exists")
}

func localTableLen(_ *bytestream.Stream, _, parent schema.Record) int {
	return ColorTableLen(parent.Record(keyDescriptor).Bits(keyPacked).Uint("size"))
}

func startsBlock(s *bytestream.Stream, _, _ schema.Record) bool {
	b, ok := s.PeekUint8(0)
	return ok && (b == ExtensionIntroducer || b == ImageSeparator)
}

// claims matches an unclaimed iteration whose next two bytes are first, second.
func claims(first, second byte) schema.Predicate {
	return func(s *bytestream.Stream, _, parent schema.Record) bool {
		if len(parent) > 0 {
			return false
		}
		b0, ok0 := s.PeekUint8(0)
		b1, ok1 := s.PeekUint8(1)
		return ok0 && ok1 && b0 == first && b1 == second
	}
}

func claimsImage(s *bytestream.Stream, _, parent schema.Record) bool {
	if len(parent) > 0 {
		return false
	}
	b, ok := s.PeekUint8(0)
	return ok && b == ImageSeparator
}

func claimsUnknown(s *bytestream.Stream, _, parent schema.Record) bool {
	if len(parent) > 0 {
		return false
	}
	b0, ok0 := s.PeekUint8(0)
	_, ok1 := s.PeekUint8(1)
	return ok0 && ok1 && b0 == ExtensionIntroducer
}
