// Package giftest assembles GIF byte streams block by block for tests.
package giftest

import (
	"bytes"
	"compress/lzw"
	"encoding/binary"
	"math/bits"
)

// Builder appends GIF blocks to an in-memory buffer.
type Builder struct {
	buf bytes.Buffer
}

// New writes the header and logical screen descriptor. A nil palette omits
// the global color table.
func New(width, height int, palette [][3]byte) *Builder {
	b := &Builder{}
	b.buf.WriteString("GIF89a")
	b.u16(width)
	b.u16(height)

	var packed byte = 0x70 // 8-bit color resolution
	if palette != nil {
		packed |= 0x80 | sizeExp(len(palette))
	}
	b.buf.WriteByte(packed)
	b.buf.WriteByte(0) // background index
	b.buf.WriteByte(0) // aspect ratio
	b.table(palette)
	return b
}

// GraphicControl writes a graphic control extension. A negative transparent
// index leaves the transparency flag clear.
func (b *Builder) GraphicControl(disposal, delay, transparent int) *Builder {
	packed := byte(disposal&0x07) << 2
	index := 0
	if transparent >= 0 {
		packed |= 0x01
		index = transparent
	}
	b.buf.Write([]byte{0x21, 0xF9, 0x04, packed})
	b.u16(delay)
	b.buf.WriteByte(byte(index))
	b.buf.WriteByte(0)
	return b
}

// Image describes one image block.
type Image struct {
	Left, Top, Width, Height int
	Interlaced               bool
	Palette                  [][3]byte
	// MinCodeSize defaults to 2.
	MinCodeSize int
	// Indices are encoded as given, so interlaced images must already be in
	// transmission order.
	Indices []byte
	// Raw replaces the LZW data when non-nil.
	Raw []byte
}

// Image writes an image descriptor, optional local table and LZW data.
func (b *Builder) Image(img Image) *Builder {
	b.buf.WriteByte(0x2C)
	b.u16(img.Left)
	b.u16(img.Top)
	b.u16(img.Width)
	b.u16(img.Height)

	var packed byte
	if img.Palette != nil {
		packed |= 0x80 | sizeExp(len(img.Palette))
	}
	if img.Interlaced {
		packed |= 0x40
	}
	b.buf.WriteByte(packed)
	b.table(img.Palette)

	minCode := img.MinCodeSize
	if minCode == 0 {
		minCode = 2
	}
	b.buf.WriteByte(byte(minCode))

	data := img.Raw
	if data == nil {
		data = Compress(minCode, img.Indices)
	}
	return b.SubBlocks(data)
}

// Comment writes a comment extension.
func (b *Builder) Comment(text string) *Builder {
	b.buf.Write([]byte{0x21, 0xFE})
	return b.SubBlocks([]byte(text))
}

// Application writes an application extension.
func (b *Builder) Application(id string, data []byte) *Builder {
	b.buf.Write([]byte{0x21, 0xFF, byte(len(id))})
	b.buf.WriteString(id)
	return b.SubBlocks(data)
}

// Loop writes a NETSCAPE2.0 looping extension.
func (b *Builder) Loop(count int) *Builder {
	return b.Application("NETSCAPE2.0", []byte{1, byte(count), byte(count >> 8)})
}

// PlainText writes a plain text extension with a 12-byte header.
func (b *Builder) PlainText(header []byte, text string) *Builder {
	b.buf.Write([]byte{0x21, 0x01, byte(len(header))})
	b.buf.Write(header)
	return b.SubBlocks([]byte(text))
}

// Extension writes an extension with an arbitrary label.
func (b *Builder) Extension(label byte, data []byte) *Builder {
	b.buf.Write([]byte{0x21, label})
	return b.SubBlocks(data)
}

// SubBlocks writes data as a terminated run of sub-blocks.
func (b *Builder) SubBlocks(data []byte) *Builder {
	for len(data) > 0 {
		n := min(len(data), 255)
		b.buf.WriteByte(byte(n))
		b.buf.Write(data[:n])
		data = data[n:]
	}
	b.buf.WriteByte(0)
	return b
}

// Raw appends arbitrary bytes.
func (b *Builder) Raw(p ...byte) *Builder {
	b.buf.Write(p)
	return b
}

// Trailer writes the 0x3B trailer.
func (b *Builder) Trailer() *Builder {
	b.buf.WriteByte(0x3B)
	return b
}

// Bytes returns a copy of the stream so far.
func (b *Builder) Bytes() []byte {
	return bytes.Clone(b.buf.Bytes())
}

// Compress LZW-encodes indices with the given minimum code size.
func Compress(minCodeSize int, indices []byte) []byte {
	var out bytes.Buffer
	w := lzw.NewWriter(&out, lzw.LSB, minCodeSize)
	if _, err := w.Write(indices); err != nil {
		panic(err)
	}
	if err := w.Close(); err != nil {
		panic(err)
	}
	return out.Bytes()
}

func (b *Builder) u16(v int) {
	_ = binary.Write(&b.buf, binary.LittleEndian, uint16(v))
}

func (b *Builder) table(palette [][3]byte) {
	if palette == nil {
		return
	}
	n := 1 << (sizeExp(len(palette)) + 1)
	for i := range n {
		var rgb [3]byte
		if i < len(palette) {
			rgb = palette[i]
		}
		b.buf.Write(rgb[:])
	}
}

// sizeExp returns the smallest packed size exponent that fits n entries.
func sizeExp(n int) byte {
	if n <= 2 {
		return 0
	}
	return byte(bits.Len(uint(n-1)) - 1)
}
