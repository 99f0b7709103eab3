package gif_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gifdec/internal/giftest"
	"github.com/yaklabco/gifdec/pkg/bytestream"
	"github.com/yaklabco/gifdec/pkg/gif"
)

var redGreen = [][3]byte{{255, 0, 0}, {0, 255, 0}}

func TestDecode_SingleFrame(t *testing.T) {
	t.Parallel()

	data := giftest.New(2, 2, redGreen).
		Image(giftest.Image{Width: 2, Height: 2, Indices: []byte{0, 1, 1, 0}}).
		Trailer().
		Bytes()

	res := gif.Decode(data)

	assert.Equal(t, gif.Header{Signature: "GIF", Version: "89a"}, res.Header)
	assert.Equal(t, 2, res.Screen.Width)
	assert.Equal(t, 2, res.Screen.Height)
	assert.True(t, res.Screen.HasGlobalColorTable)
	assert.Equal(t, 7, res.Screen.ColorResolution)
	assert.Equal(t, gif.ColorTable{{R: 255}, {G: 255}}, res.GlobalColorTable)

	require.Len(t, res.Blocks, 1)
	img := res.Blocks[0].Image
	require.NotNil(t, img)
	assert.Equal(t, gif.KindImage, res.Blocks[0].Kind())
	assert.Equal(t, gif.ImageDescriptor{Width: 2, Height: 2}, img.Descriptor)
	assert.Nil(t, img.LocalColorTable)
	assert.Equal(t, 2, img.MinCodeSize)
	assert.Equal(t, giftest.Compress(2, []byte{0, 1, 1, 0}), img.Data)

	assert.True(t, res.HasTrailer)
	assert.Equal(t, len(data)-1, res.Consumed)
	assert.Equal(t, len(data), res.Size)
}

func TestDecode_BlockKinds(t *testing.T) {
	t.Parallel()

	data := giftest.New(4, 4, redGreen).
		Loop(0).
		Comment("made by hand").
		GraphicControl(2, 5, 1).
		Image(giftest.Image{
			Left: 1, Top: 2, Width: 1, Height: 1,
			Interlaced: true,
			Palette:    [][3]byte{{1, 2, 3}, {4, 5, 6}, {7, 8, 9}},
			Indices:    []byte{2},
		}).
		PlainText(make([]byte, 12), "hello").
		Extension(0x99, []byte{1, 2, 3}).
		Trailer().
		Bytes()

	res := gif.Decode(data)

	kinds := make([]gif.BlockKind, 0, len(res.Blocks))
	for _, block := range res.Blocks {
		kinds = append(kinds, block.Kind())
	}
	assert.Equal(t, []gif.BlockKind{
		gif.KindApplication,
		gif.KindComment,
		gif.KindGraphicControl,
		gif.KindImage,
		gif.KindPlainText,
		gif.KindUnknown,
	}, kinds)

	app := res.Blocks[0].Application
	assert.Equal(t, "NETSCAPE2.0", app.Identifier)
	assert.Equal(t, []byte{1, 0, 0}, app.Data)

	assert.Equal(t, "made by hand", res.Blocks[1].Comment.Text)

	gce := res.Blocks[2].GraphicControl
	assert.Equal(t, gif.GraphicControl{
		Disposal:         gif.DisposalBackground,
		HasTransparent:   true,
		TransparentIndex: 1,
		Delay:            5,
	}, *gce)

	img := res.Blocks[3].Image
	assert.Equal(t, 1, img.Descriptor.Left)
	assert.Equal(t, 2, img.Descriptor.Top)
	assert.True(t, img.Descriptor.Interlaced)
	assert.True(t, img.Descriptor.HasLocalColorTable)
	assert.Equal(t, 1, img.Descriptor.LocalColorTableSizeExp)
	assert.Len(t, img.LocalColorTable, 4, "table is padded to a power of two")
	assert.Equal(t, gif.RGB{R: 7, G: 8, B: 9}, img.LocalColorTable[2])

	assert.Len(t, res.Blocks[4].PlainText.Header, 12)
	assert.Equal(t, []byte("hello"), res.Blocks[4].PlainText.Data)

	assert.Equal(t, byte(0x99), res.Blocks[5].Unknown.Label)
	assert.Equal(t, []byte{1, 2, 3}, res.Blocks[5].Unknown.Data)

	assert.True(t, res.HasTrailer)
}

func TestDecode_LoopCountAndComments(t *testing.T) {
	t.Parallel()

	data := giftest.New(1, 1, redGreen).
		Application("XMP DataXMP", []byte("ignored")).
		Loop(3).
		Comment("one").
		Comment("two").
		Trailer().
		Bytes()

	res := gif.Decode(data)

	count, ok := res.LoopCount()
	assert.True(t, ok)
	assert.Equal(t, 3, count)
	assert.Equal(t, []string{"one", "two"}, res.Comments())
	assert.Equal(t, []string{"XMP DataXMP", "NETSCAPE2.0"}, res.Applications())
}

func TestDecode_NoLoopExtension(t *testing.T) {
	t.Parallel()

	res := gif.Decode(giftest.New(1, 1, nil).Trailer().Bytes())

	_, ok := res.LoopCount()
	assert.False(t, ok)
	assert.Nil(t, res.GlobalColorTable)
	assert.Empty(t, res.Blocks)
}

func TestDecode_TruncatedMidSubBlock(t *testing.T) {
	t.Parallel()

	full := giftest.New(8, 8, redGreen).
		Image(giftest.Image{Width: 8, Height: 8, Indices: make([]byte, 64)}).
		Trailer().
		Bytes()
	cut := full[:len(full)-4]

	var res *gif.ParseResult
	require.NotPanics(t, func() { res = gif.Decode(cut) })

	require.Len(t, res.Images(), 1)
	assert.False(t, res.HasTrailer)
	assert.Equal(t, len(cut), res.Consumed)
}

func TestDecode_CommentIsLatin1(t *testing.T) {
	t.Parallel()

	data := giftest.New(1, 1, redGreen).
		Extension(gif.LabelComment, []byte{'c', 'a', 'f', 0xE9}).
		Trailer().
		Bytes()

	res := gif.Decode(data)

	require.Len(t, res.Comments(), 1)
	assert.Equal(t, "caf\u00e9", res.Comments()[0])
	assert.Equal(t, []byte{'c', 'a', 'f', 0xE9}, res.Blocks[0].Comment.Data)
}

func TestDecode_StopsOnUnexpectedByte(t *testing.T) {
	t.Parallel()

	data := giftest.New(1, 1, redGreen).
		Comment("kept").
		Raw(0x00, 0x21, 0xFE, 0x01, 'x', 0x00).
		Bytes()

	res := gif.Decode(data)

	assert.Equal(t, []string{"kept"}, res.Comments())
	assert.False(t, res.HasTrailer)
}

func TestDecode_LoneIntroducerAtEnd(t *testing.T) {
	t.Parallel()

	data := giftest.New(1, 1, redGreen).Raw(0x21).Bytes()

	res := gif.Decode(data)

	assert.Empty(t, res.Blocks)
	assert.Equal(t, len(data)-1, res.Consumed)
}

func TestDecode_Empty(t *testing.T) {
	t.Parallel()

	res := gif.Decode(nil)

	require.NotNil(t, res)
	assert.Empty(t, res.Header.Signature)
	assert.Empty(t, res.Blocks)
}

func TestSniff(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    []byte
		wantErr bool
	}{
		{name: "gif89a", data: []byte("GIF89a"), wantErr: false},
		{name: "gif87a", data: []byte("GIF87a"), wantErr: false},
		{name: "unknown version", data: []byte("GIF00z"), wantErr: false},
		{name: "png", data: []byte("\x89PNG\r\n\x1a\n"), wantErr: true},
		{name: "short", data: []byte("GI"), wantErr: true},
		{name: "empty", data: nil, wantErr: true},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			err := gif.Sniff(testCase.data)
			if testCase.wantErr {
				require.ErrorIs(t, err, gif.ErrNotGIF)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestDecodeStrict(t *testing.T) {
	t.Parallel()

	_, err := gif.DecodeStrict([]byte("BM6\x00"))
	require.ErrorIs(t, err, gif.ErrNotGIF)

	res, err := gif.DecodeStrict(giftest.New(1, 1, nil).Trailer().Bytes())
	require.NoError(t, err)
	assert.Equal(t, "89a", res.Header.Version)
}

func TestReadSubBlocks(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    []byte
		want    []byte
		wantPos int
	}{
		{name: "terminated", data: []byte{2, 'a', 'b', 1, 'c', 0, 0xEE}, want: []byte("abc"), wantPos: 6},
		{name: "empty run", data: []byte{0, 9}, want: nil, wantPos: 1},
		{name: "declared length past end", data: []byte{1, 'a', 5, 'b', 'c'}, want: []byte("abc"), wantPos: 5},
		{name: "missing terminator", data: []byte{1, 'z'}, want: []byte("z"), wantPos: 2},
		{name: "nothing to read", data: nil, want: nil, wantPos: 0},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			s := bytestream.New(testCase.data)
			assert.Equal(t, testCase.want, gif.ReadSubBlocks(s))
			assert.Equal(t, testCase.wantPos, s.Pos())
		})
	}
}

func TestApplicationLoopCount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		app    *gif.Application
		want   int
		wantOK bool
	}{
		{name: "netscape", app: &gif.Application{Identifier: "NETSCAPE2.0", Data: []byte{1, 0x10, 0x01}}, want: 272, wantOK: true},
		{name: "animexts", app: &gif.Application{Identifier: "ANIMEXTS1.0", Data: []byte{1, 0, 0}}, want: 0, wantOK: true},
		{name: "short payload", app: &gif.Application{Identifier: "NETSCAPE2.0", Data: []byte{1}}},
		{name: "other sub-block id", app: &gif.Application{Identifier: "NETSCAPE2.0", Data: []byte{2, 0, 0}}},
		{name: "other application", app: &gif.Application{Identifier: "ICCRGBG1012", Data: []byte{1, 5, 0}}},
		{name: "nil", app: nil},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			got, ok := testCase.app.LoopCount()
			assert.Equal(t, testCase.wantOK, ok)
			assert.Equal(t, testCase.want, got)
		})
	}
}

func TestColorTableLookup(t *testing.T) {
	t.Parallel()

	table := gif.ColorTable{{R: 1}, {G: 2}}

	assert.Equal(t, gif.RGB{G: 2}, table.Lookup(1))
	assert.Equal(t, gif.RGB{}, table.Lookup(2))
	assert.Equal(t, gif.RGB{}, table.Lookup(-1))
	assert.Equal(t, gif.RGB{}, gif.ColorTable(nil).Lookup(0))
}

func TestDisposalString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "background", gif.DisposalBackground.String())
	assert.Equal(t, "reserved(5)", gif.Disposal(5).String())
}
