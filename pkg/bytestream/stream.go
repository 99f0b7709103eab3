// Package bytestream provides a positional cursor over a fixed byte buffer.
//
// Every read primitive advances the cursor. Reads past the end never panic:
// single-byte reads report ok == false, multi-byte reads come back short and
// the cursor is clamped to the end of the buffer.
package bytestream

import "encoding/binary"

// Stream is a single-owner read cursor over data.
// A Stream must not be shared between goroutines.
type Stream struct {
	data []byte
	pos  int
}

// New returns a Stream positioned at the start of data.
// The buffer is not copied; callers must not mutate it while decoding.
func New(data []byte) *Stream {
	return &Stream{data: data}
}

// Pos returns the current cursor offset.
func (s *Stream) Pos() int {
	return s.pos
}

// Len returns the length of the underlying buffer.
func (s *Stream) Len() int {
	return len(s.data)
}

// Remaining returns the number of unread bytes.
func (s *Stream) Remaining() int {
	return len(s.data) - s.pos
}

// Data returns the underlying buffer.
func (s *Stream) Data() []byte {
	return s.data
}

// EOF reports whether the cursor is at or past the end of the buffer.
func (s *Stream) EOF() bool {
	return s.pos >= len(s.data)
}

// ReadUint8 returns the byte at the cursor and advances by one.
// At end of buffer it returns ok == false and leaves the cursor in place.
func (s *Stream) ReadUint8() (byte, bool) {
	if s.pos >= len(s.data) {
		return 0, false
	}
	b := s.data[s.pos]
	s.pos++
	return b, true
}

// PeekUint8 returns the byte offset positions past the cursor without advancing.
func (s *Stream) PeekUint8(offset int) (byte, bool) {
	idx := s.pos + offset
	if idx < 0 || idx >= len(s.data) {
		return 0, false
	}
	return s.data[idx], true
}

// ReadBytes returns a view of the next n bytes and advances past them.
// The view is shorter than n when the buffer ends first.
func (s *Stream) ReadBytes(n int) []byte {
	view := s.PeekBytes(n)
	s.pos += len(view)
	return view
}

// PeekBytes is ReadBytes without advancing the cursor.
func (s *Stream) PeekBytes(n int) []byte {
	if n <= 0 || s.pos >= len(s.data) {
		return s.data[len(s.data):]
	}
	end := min(s.pos+n, len(s.data))
	return s.data[s.pos:end:end]
}

// ReadString reads n bytes and maps each one to the code point of the same value.
func (s *Stream) ReadString(n int) string {
	raw := s.ReadBytes(n)
	runes := make([]rune, len(raw))
	for i, b := range raw {
		runes[i] = rune(b)
	}
	return string(runes)
}

// ReadUint16 reads a 16-bit unsigned integer in the requested byte order.
// Missing bytes at the end of the buffer read as zero.
func (s *Stream) ReadUint16(littleEndian bool) uint16 {
	var buf [2]byte
	copy(buf[:], s.ReadBytes(2))
	if littleEndian {
		return binary.LittleEndian.Uint16(buf[:])
	}
	return binary.BigEndian.Uint16(buf[:])
}

// ReadArray reads total consecutive tuples of byteSize bytes each.
// Reading stops at the last complete tuple when the buffer runs out.
func (s *Stream) ReadArray(byteSize, total int) [][]byte {
	if byteSize <= 0 || total <= 0 {
		return nil
	}
	out := make([][]byte, 0, min(total, s.Remaining()/byteSize+1))
	for range total {
		if s.Remaining() < byteSize {
			// Consume the partial tuple so the cursor reflects what was there.
			s.ReadBytes(byteSize)
			break
		}
		out = append(out, s.ReadBytes(byteSize))
	}
	return out
}
