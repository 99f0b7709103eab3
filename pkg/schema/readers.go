package schema

import "github.com/yaklabco/gifdec/pkg/bytestream"

// Uint8 reads one byte. At end of stream the stored value is nil.
func Uint8() Reader {
	return func(s *bytestream.Stream, _, _ Record) any {
		b, ok := s.ReadUint8()
		if !ok {
			return nil
		}
		return b
	}
}

// Bytes reads n raw bytes.
func Bytes(n int) Reader {
	return func(s *bytestream.Stream, _, _ Record) any {
		return s.ReadBytes(n)
	}
}

// String reads n bytes as a Latin-1 string.
func String(n int) Reader {
	return func(s *bytestream.Stream, _, _ Record) any {
		return s.ReadString(n)
	}
}

// Uint16 reads a 16-bit unsigned integer.
func Uint16(littleEndian bool) Reader {
	return func(s *bytestream.Stream, _, _ Record) any {
		return s.ReadUint16(littleEndian)
	}
}

// CountFunc computes a length from fields that are already parsed.
type CountFunc func(s *bytestream.Stream, root, parent Record) int

// Array reads count() tuples of byteSize bytes each.
func Array(byteSize int, count CountFunc) Reader {
	return func(s *bytestream.Stream, root, parent Record) any {
		return s.ReadArray(byteSize, count(s, root, parent))
	}
}

// Bits reads one byte and unpacks it into named fields.
func Bits(fields bytestream.BitFields) Reader {
	return func(s *bytestream.Stream, _, _ Record) any {
		return s.ReadBits(fields)
	}
}
