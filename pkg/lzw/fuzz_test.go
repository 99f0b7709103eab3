package lzw_test

import (
	"testing"

	giflzw "github.com/yaklabco/gifdec/pkg/lzw"
)

func FuzzDecompress(f *testing.F) {
	f.Add(2, []byte{0x44, 0x01}, 4)
	f.Add(8, []byte{0x00, 0x01, 0xFF}, 16)
	f.Add(1, []byte{}, 3)

	f.Fuzz(func(t *testing.T, minCodeSize int, data []byte, pixelCount int) {
		if pixelCount < 0 || pixelCount > 1<<16 {
			t.Skip("pixel count out of range")
		}

		out, decoded := giflzw.DecompressN(minCodeSize, data, pixelCount)
		if len(out) != pixelCount {
			t.Fatalf("got %d indices, want %d", len(out), pixelCount)
		}
		if decoded < 0 || decoded > pixelCount {
			t.Fatalf("decoded %d of %d", decoded, pixelCount)
		}
		for i := decoded; i < len(out); i++ {
			if out[i] != 0 {
				t.Fatalf("index %d past decoded data is %d, want 0", i, out[i])
			}
		}
	})
}
