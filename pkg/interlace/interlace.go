// Package interlace converts between GIF's four-pass interlaced row order and
// natural top-to-bottom row order.
package interlace

type pass struct {
	start, step int
}

// passes lists the interlace scans in transmission order.
var passes = [...]pass{
	{start: 0, step: 8},
	{start: 4, step: 8},
	{start: 2, step: 4},
	{start: 1, step: 2},
}

// Deinterlace reorders pix, stored in interlaced row order, into natural order.
// The row count is len(pix)/width. Bytes past the last complete row are
// carried over unchanged. A non-positive width returns a copy.
func Deinterlace(pix []byte, width int) []byte {
	return reorder(pix, width, func(out []byte, src, dst int) {
		copy(out[dst:dst+width], pix[src:src+width])
	})
}

// Interlace is the inverse of Deinterlace.
func Interlace(pix []byte, width int) []byte {
	return reorder(pix, width, func(out []byte, src, dst int) {
		copy(out[src:src+width], pix[dst:dst+width])
	})
}

// Rows returns the natural row index of every transmitted row, in
// transmission order.
func Rows(height int) []int {
	rows := make([]int, 0, max(height, 0))
	for _, p := range passes {
		for y := p.start; y < height; y += p.step {
			rows = append(rows, y)
		}
	}
	return rows
}

// reorder walks the passes and calls move with the byte offset of each
// transmitted row and of its natural position.
func reorder(pix []byte, width int, move func(out []byte, src, dst int)) []byte {
	out := make([]byte, len(pix))
	if width <= 0 {
		copy(out, pix)
		return out
	}

	height := len(pix) / width
	for i, y := range Rows(height) {
		move(out, i*width, y*width)
	}

	tail := height * width
	copy(out[tail:], pix[tail:])
	return out
}
