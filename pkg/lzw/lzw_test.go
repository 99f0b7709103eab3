package lzw_test

import (
	"bytes"
	"compress/lzw"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	giflzw "github.com/yaklabco/gifdec/pkg/lzw"
)

// encode compresses indices with the standard library encoder, which emits
// the same LSB-first GIF flavor.
func encode(t *testing.T, litWidth int, indices []byte) []byte {
	t.Helper()

	var buf bytes.Buffer
	w := lzw.NewWriter(&buf, lzw.LSB, litWidth)
	_, err := w.Write(indices)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

// codeWriter packs codes least significant bit first.
type codeWriter struct {
	buf   []byte
	acc   uint32
	nBits int
}

func (w *codeWriter) put(code, width int) {
	w.acc |= uint32(code) << w.nBits
	w.nBits += width
	for w.nBits >= 8 {
		w.buf = append(w.buf, byte(w.acc))
		w.acc >>= 8
		w.nBits -= 8
	}
}

func (w *codeWriter) bytes() []byte {
	if w.nBits > 0 {
		return append(w.buf, byte(w.acc))
	}
	return w.buf
}

func TestDecompress_RoundTrip(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(7))
	noise := make([]byte, 70000)
	for i := range noise {
		noise[i] = byte(rng.Intn(256))
	}

	tests := []struct {
		name     string
		litWidth int
		indices  []byte
	}{
		{name: "two colors", litWidth: 2, indices: []byte{0, 1, 1, 0}},
		{name: "run of one index", litWidth: 2, indices: bytes.Repeat([]byte{3}, 500)},
		{name: "repeating pattern", litWidth: 4, indices: bytes.Repeat([]byte{1, 2, 3, 4, 5, 6, 7}, 300)},
		{name: "noise fills the table", litWidth: 8, indices: noise},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			data := encode(t, testCase.litWidth, testCase.indices)
			got, n := giflzw.DecompressN(testCase.litWidth, data, len(testCase.indices))

			assert.Equal(t, len(testCase.indices), n)
			assert.Equal(t, testCase.indices, got)
		})
	}
}

func TestDecompress_WidthGrowsAndClearResets(t *testing.T) {
	t.Parallel()

	// Minimum code size 2: clear=4, eoi=5, first free code 6, width 3.
	var w codeWriter
	w.put(4, 3) // clear
	w.put(1, 3) // literal
	w.put(1, 3) // adds 6
	w.put(6, 3) // adds 7, next free is 8 so width becomes 4
	w.put(7, 4)
	w.put(4, 4) // clear read at width 4, width drops back to 3
	w.put(2, 3)
	w.put(5, 3) // eoi

	got, n := giflzw.DecompressN(2, w.bytes(), 8)

	assert.Equal(t, 7, n)
	assert.Equal(t, []byte{1, 1, 1, 1, 1, 1, 2, 0}, got)
}

// literalWriter emits codes at the width a decoder expects, adding one table
// entry per code after the first and never clearing when the table fills.
type literalWriter struct {
	codeWriter
	width   int
	avail   int
	started bool
}

func newLiteralWriter(minCodeSize int) *literalWriter {
	w := &literalWriter{width: minCodeSize + 1, avail: 1<<minCodeSize + 2}
	w.put(1<<minCodeSize, w.width)
	return w
}

func (w *literalWriter) emit(code int) {
	w.put(code, w.width)
	if !w.started {
		w.started = true
		return
	}
	if w.avail < 4096 {
		w.avail++
		if w.avail == 1<<w.width && w.avail < 4096 {
			w.width++
		}
	}
}

func TestDecompress_FullTableWithoutClear(t *testing.T) {
	t.Parallel()

	const minCodeSize = 2

	rng := rand.New(rand.NewSource(11))
	w := newLiteralWriter(minCodeSize)
	var want []byte
	for range 6000 {
		lit := byte(rng.Intn(4))
		w.emit(int(lit))
		want = append(want, lit)
	}
	require.Equal(t, 4096, w.avail)
	require.Equal(t, 12, w.width)

	// Code 6 still holds the first two literals; nothing was replaced.
	w.emit(6)
	want = append(want, want[0], want[1])

	// An explicit clear drops back to 3-bit codes.
	w.emit(1 << minCodeSize)
	w.width, w.avail, w.started = minCodeSize+1, 1<<minCodeSize+2, false
	for _, lit := range []int{3, 2, 1} {
		w.emit(lit)
		want = append(want, byte(lit))
	}
	w.emit(1<<minCodeSize + 1)

	got, n := giflzw.DecompressN(minCodeSize, w.bytes(), len(want))

	assert.Equal(t, len(want), n)
	assert.Equal(t, want, got)
}

func TestDecompress_StopsOnCorruptCode(t *testing.T) {
	t.Parallel()

	var w codeWriter
	w.put(4, 3)
	w.put(1, 3)
	w.put(7, 3) // beyond the next free code

	got, n := giflzw.DecompressN(2, w.bytes(), 4)

	assert.Equal(t, 1, n)
	assert.Equal(t, []byte{1, 0, 0, 0}, got)
}

func TestDecompress_TruncatedInputZeroFills(t *testing.T) {
	t.Parallel()

	indices := bytes.Repeat([]byte{1, 2, 3}, 200)
	data := encode(t, 2, indices)
	cut := data[:len(data)/2]

	got, n := giflzw.DecompressN(2, cut, len(indices))

	require.Len(t, got, len(indices))
	require.Less(t, n, len(indices))
	assert.Equal(t, indices[:n], got[:n])
	assert.Equal(t, make([]byte, len(indices)-n), got[n:])
}

func TestDecompress_ExactOutputLength(t *testing.T) {
	t.Parallel()

	data := encode(t, 2, []byte{0, 1, 2, 3, 0, 1, 2, 3})

	assert.Len(t, giflzw.Decompress(2, data, 3), 3, "extra input is ignored")
	assert.Len(t, giflzw.Decompress(2, data, 20), 20, "missing output is padded")
	assert.Empty(t, giflzw.Decompress(2, data, 0))
}

func TestDecompress_InvalidMinCodeSize(t *testing.T) {
	t.Parallel()

	for _, size := range []int{0, 12, -1} {
		got, n := giflzw.DecompressN(size, []byte{0xff, 0xff}, 4)
		assert.Zero(t, n)
		assert.Equal(t, []byte{0, 0, 0, 0}, got)
	}
}

func TestDecompress_EmptyInput(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []byte{0, 0}, giflzw.Decompress(8, nil, 2))
}

func BenchmarkDecompress(b *testing.B) {
	rng := rand.New(rand.NewSource(1))
	indices := make([]byte, 256*256)
	for i := range indices {
		// Runs of repeated values, like real image rows.
		if i%16 == 0 {
			indices[i] = byte(rng.Intn(256))
		} else {
			indices[i] = indices[i-1]
		}
	}

	var buf bytes.Buffer
	w := lzw.NewWriter(&buf, lzw.LSB, 8)
	if _, err := w.Write(indices); err != nil {
		b.Fatal(err)
	}
	if err := w.Close(); err != nil {
		b.Fatal(err)
	}
	data := buf.Bytes()

	b.SetBytes(int64(len(indices)))
	for b.Loop() {
		_ = giflzw.Decompress(8, data, len(indices))
	}
}
