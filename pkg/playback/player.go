package playback

import "time"

// Player tracks the current frame of one viewer of an Animation.
type Player struct {
	anim    *Animation
	index   int
	elapsed time.Duration
	plays   int
	done    bool
}

// NewPlayer starts at frame 0.
func NewPlayer(anim *Animation) *Player {
	return &Player{anim: anim}
}

// Index is the frame currently on screen.
func (p *Player) Index() int {
	return p.index
}

// Done reports whether a finite animation has shown its last frame.
func (p *Player) Done() bool {
	return p.done
}

// Reset rewinds to frame 0.
func (p *Player) Reset() {
	p.index = 0
	p.elapsed = 0
	p.plays = 0
	p.done = false
}

// Advance moves the clock forward by dt and reports whether the frame on
// screen changed. A finished animation stays on its last frame.
func (p *Player) Advance(dt time.Duration) bool {
	frames := p.anim.Frames
	if p.done || len(frames) == 0 || dt <= 0 {
		return false
	}

	before := p.index
	limit := p.anim.Plays()
	p.elapsed += dt
	for p.elapsed >= frameDelay(&frames[p.index]) {
		p.elapsed -= frameDelay(&frames[p.index])
		if p.index+1 < len(frames) {
			p.index++
			continue
		}
		p.plays++
		if limit > 0 && p.plays >= limit {
			p.done = true
			p.elapsed = 0
			break
		}
		p.index = 0
	}
	return p.index != before
}
