// Package lzw decodes the variable-width LZW stream carried by GIF image data.
//
// GIF differs from plain LZW in three ways: codes are packed least significant
// bit first, the code width grows as soon as the next free code needs another
// bit, and a full table is kept as is until the encoder sends an explicit
// clear code.
//
// The decoder never fails. Corrupt or truncated input ends decoding and the
// rest of the output stays zero.
package lzw

const (
	maxWidth = 12
	maxCodes = 1 << maxWidth

	// MinCodeSizeLow and MinCodeSizeHigh bound the accepted minimum code size.
	MinCodeSizeLow  = 1
	MinCodeSizeHigh = maxWidth - 1
)

// Decompress decodes data into exactly pixelCount color indices.
func Decompress(minCodeSize int, data []byte, pixelCount int) []byte {
	out, _ := DecompressN(minCodeSize, data, pixelCount)
	return out
}

// DecompressN is Decompress that also reports how many indices were decoded
// before the stream ended. A count below pixelCount means the tail was
// zero-filled.
func DecompressN(minCodeSize int, data []byte, pixelCount int) ([]byte, int) {
	if pixelCount <= 0 {
		return []byte{}, 0
	}
	out := make([]byte, pixelCount)
	if minCodeSize < MinCodeSizeLow || minCodeSize > MinCodeSizeHigh {
		return out, 0
	}

	d := newDecoder(minCodeSize, data)
	return out, d.decode(out)
}

type decoder struct {
	src []byte
	pos int

	bits  uint32
	nBits int

	minCodeSize int
	clear       int
	eoi         int

	width int
	mask  int
	avail int
	prev  int
	first byte

	prefix [maxCodes]uint16
	suffix [maxCodes]byte
	stack  [maxCodes + 1]byte
}

func newDecoder(minCodeSize int, src []byte) *decoder {
	d := &decoder{
		src:         src,
		minCodeSize: minCodeSize,
		clear:       1 << minCodeSize,
	}
	d.eoi = d.clear + 1
	d.reset()
	return d
}

func (d *decoder) reset() {
	d.width = d.minCodeSize + 1
	d.mask = 1<<d.width - 1
	d.avail = d.clear + 2
	d.prev = -1
}

// readCode returns the next code, or false once the input is exhausted.
func (d *decoder) readCode() (int, bool) {
	for d.nBits < d.width {
		if d.pos >= len(d.src) {
			return 0, false
		}
		d.bits |= uint32(d.src[d.pos]) << d.nBits
		d.nBits += 8
		d.pos++
	}
	code := int(d.bits) & d.mask
	d.bits >>= d.width
	d.nBits -= d.width
	return code, true
}

func (d *decoder) decode(out []byte) int {
	n := 0
	for n < len(out) {
		code, ok := d.readCode()
		if !ok || code == d.eoi || code > d.avail {
			break
		}

		if code == d.clear {
			d.reset()
			continue
		}

		if d.prev < 0 {
			// The first code after a clear must be a literal.
			if code >= d.clear {
				break
			}
			out[n] = byte(code)
			n++
			d.prev = code
			d.first = byte(code)
			continue
		}

		in := code
		top := 0
		if code == d.avail {
			d.stack[top] = d.first
			top++
			code = d.prev
		}
		for code >= d.clear {
			d.stack[top] = d.suffix[code]
			top++
			code = int(d.prefix[code])
		}
		d.first = byte(code)
		d.stack[top] = d.first
		top++

		for top > 0 && n < len(out) {
			top--
			out[n] = d.stack[top]
			n++
		}

		if d.avail < maxCodes {
			d.prefix[d.avail] = uint16(d.prev)
			d.suffix[d.avail] = d.first
			d.avail++
			if d.avail&d.mask == 0 && d.avail < maxCodes {
				d.width++
				d.mask += d.avail
			}
		}
		d.prev = in
	}
	return n
}
