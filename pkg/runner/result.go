package runner

import (
	"github.com/yaklabco/gifdec/pkg/frame"
	"github.com/yaklabco/gifdec/pkg/fsutil"
	"github.com/yaklabco/gifdec/pkg/playback"
)

// FileOutcome is the result of decoding one file.
type FileOutcome struct {
	// Path is the file path that was processed.
	Path string

	// Info is the file metadata. Zero if the file could not be read.
	Info fsutil.FileInfo

	// Summary describes the decoded file. Nil when Error is set.
	Summary *Summary

	// Frames holds the decoded frames when Options.KeepFrames is set.
	Frames []frame.Frame

	// Error is set if the file could not be read or failed strict checks.
	Error error
}

// Animation wraps the decoded frames for playback or export. It returns nil
// when the file failed to decode.
func (o FileOutcome) Animation() *playback.Animation {
	if o.Summary == nil {
		return nil
	}
	return &playback.Animation{
		Frames:    o.Frames,
		Width:     o.Summary.Width,
		Height:    o.Summary.Height,
		LoopCount: o.Summary.LoopCount,
		HasLoop:   o.Summary.HasLoop,
	}
}

// Stats captures aggregate information about a run.
type Stats struct {
	// FilesDiscovered is the total number of files found during discovery.
	FilesDiscovered int

	// FilesDecoded is the number of files decoded without error.
	FilesDecoded int

	// FilesErrored is the number of files that could not be decoded.
	FilesErrored int

	// FilesWithWarnings is the number of decoded files with at least one warning.
	FilesWithWarnings int

	// FilesTruncated is the number of files with at least one incomplete frame.
	FilesTruncated int

	// FramesTotal is the number of frames across all decoded files.
	FramesTotal int

	// WarningsTotal is the number of warnings across all decoded files.
	WarningsTotal int

	// BytesRead is the total size of all files read.
	BytesRead int64
}

// Result is the overall runner result.
type Result struct {
	// Files contains the outcome for each processed file.
	// Files are ordered deterministically (by path).
	Files []FileOutcome

	// Stats contains aggregate statistics for the run.
	Stats Stats
}

// HasFailures reports whether any file failed to decode.
func (r *Result) HasFailures() bool {
	if r == nil {
		return false
	}
	return r.Stats.FilesErrored > 0
}

// HasWarnings reports whether any decoded file produced warnings.
func (r *Result) HasWarnings() bool {
	if r == nil {
		return false
	}
	return r.Stats.WarningsTotal > 0
}

// accumulate updates the result with a file outcome.
func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)
	r.Stats.BytesRead += outcome.Info.Size

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}
	if outcome.Summary == nil {
		return
	}

	r.Stats.FilesDecoded++
	r.Stats.FramesTotal += outcome.Summary.FrameCount
	r.Stats.WarningsTotal += len(outcome.Summary.Warnings)

	if len(outcome.Summary.Warnings) > 0 {
		r.Stats.FilesWithWarnings++
	}
	if outcome.Summary.Truncated() {
		r.Stats.FilesTruncated++
	}
}
