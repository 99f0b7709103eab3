package gif_test

import (
	"testing"

	"github.com/yaklabco/gifdec/internal/giftest"
	"github.com/yaklabco/gifdec/pkg/frame"
	"github.com/yaklabco/gifdec/pkg/gif"
)

func FuzzDecode(f *testing.F) {
	f.Add([]byte("GIF89a"))
	f.Add(giftest.New(2, 2, [][3]byte{{255, 0, 0}, {0, 255, 0}}).
		GraphicControl(2, 5, 1).
		Image(giftest.Image{Width: 2, Height: 2, Interlaced: true, Indices: []byte{0, 1, 1, 0}}).
		Comment("seed").
		Trailer().
		Bytes())
	f.Add([]byte{'G', 'I', 'F', '8', '9', 'a', 1, 0, 1, 0, 0x80, 0, 0, 0, 0, 0, 1, 1, 1, 0x2C})

	f.Fuzz(func(t *testing.T, data []byte) {
		res := gif.Decode(data)
		if res.Consumed > len(data) {
			t.Fatalf("consumed %d of %d bytes", res.Consumed, len(data))
		}
		for _, img := range res.Images() {
			if img.Descriptor.PixelCount() > 1<<20 {
				t.Skip("image too large to extract")
			}
		}

		for i, fr := range frame.Extract(res, true) {
			if len(fr.Pixels) != fr.Dims.Width*fr.Dims.Height {
				t.Fatalf("frame %d: %d pixels for %dx%d", i, len(fr.Pixels), fr.Dims.Width, fr.Dims.Height)
			}
			if len(fr.Patch) != 4*len(fr.Pixels) {
				t.Fatalf("frame %d: patch has %d bytes", i, len(fr.Patch))
			}
		}
	})
}
