package bytestream

// BitField describes a run of bits inside one byte.
// Index 0 is the most significant bit. A zero Length means a single bit.
type BitField struct {
	Index  int
	Length int
}

// BitFields maps field names to their position within a packed byte.
type BitFields map[string]BitField

// Bits holds the unpacked values of a packed byte.
// Single-bit fields hold 0 or 1.
type Bits map[string]uint

// Flag reports whether the named field is non-zero.
func (b Bits) Flag(name string) bool {
	return b[name] != 0
}

// Uint returns the named field as an int.
func (b Bits) Uint(name string) int {
	return int(b[name])
}

// ReadBits reads one byte and unpacks it according to fields.
// Runs are composed most-significant-bit first. Fields that fall outside
// the byte contribute zero bits. At end of buffer every field is zero.
func (s *Stream) ReadBits(fields BitFields) Bits {
	b, _ := s.ReadUint8()
	return UnpackBits(b, fields)
}

// UnpackBits expands b into named fields without touching a stream.
func UnpackBits(b byte, fields BitFields) Bits {
	var bits [8]bool
	for i := range bits {
		bits[i] = b&(0x80>>i) != 0
	}

	out := make(Bits, len(fields))
	for name, field := range fields {
		length := field.Length
		if length <= 0 {
			length = 1
		}
		var value uint
		for i := field.Index; i < field.Index+length; i++ {
			value <<= 1
			if i >= 0 && i < len(bits) && bits[i] {
				value |= 1
			}
		}
		out[name] = value
	}
	return out
}
