package gif

import (
	"github.com/yaklabco/gifdec/pkg/bytestream"
	"github.com/yaklabco/gifdec/pkg/schema"
)

// ReadSubBlocks reads a run of length-prefixed data sub-blocks and returns
// their concatenated payload.
//
// The run ends at a zero-length block. A block whose declared length runs past
// the end of the buffer is clamped to what remains and ends the run, and an
// unreadable length byte ends it too.
func ReadSubBlocks(s *bytestream.Stream) []byte {
	var out []byte
	for {
		size, ok := s.ReadUint8()
		if !ok || size == 0 {
			return out
		}
		chunk := s.ReadBytes(int(size))
		out = append(out, chunk...)
		if len(chunk) < int(size) {
			return out
		}
	}
}

// subBlocks adapts ReadSubBlocks to a schema field.
func subBlocks() schema.Reader {
	return func(s *bytestream.Stream, _, _ schema.Record) any {
		return ReadSubBlocks(s)
	}
}
