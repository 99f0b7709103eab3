package schema

import "github.com/yaklabco/gifdec/pkg/bytestream"

// Record is the nested result structure filled by Parse.
// Values are whatever the Readers returned: nested Records, []Record from
// loops, integers, byte slices, strings or bytestream.Bits.
type Record map[string]any

// Has reports whether key was populated with a non-nil value.
func (r Record) Has(key string) bool {
	v, ok := r[key]
	return ok && v != nil
}

// Record returns the nested record under key, or nil.
func (r Record) Record(key string) Record {
	child, _ := r[key].(Record)
	return child
}

// Records returns the loop results under key, or nil.
func (r Record) Records(key string) []Record {
	items, _ := r[key].([]Record)
	return items
}

// Int returns the integer stored under key. Missing or non-integer values are 0.
func (r Record) Int(key string) int {
	switch v := r[key].(type) {
	case byte:
		return int(v)
	case uint16:
		return int(v)
	case uint:
		return int(v)
	case int:
		return v
	default:
		return 0
	}
}

// Bytes returns the byte slice stored under key, or nil.
func (r Record) Bytes(key string) []byte {
	b, _ := r[key].([]byte)
	return b
}

// String returns the string stored under key, or "".
func (r Record) String(key string) string {
	s, _ := r[key].(string)
	return s
}

// Bits returns the unpacked bit fields stored under key, or nil.
func (r Record) Bits(key string) bytestream.Bits {
	b, _ := r[key].(bytestream.Bits)
	return b
}

// Tuples returns the fixed-size tuples stored under key, or nil.
func (r Record) Tuples(key string) [][]byte {
	t, _ := r[key].([][]byte)
	return t
}
