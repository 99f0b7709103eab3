package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/gifdec/pkg/runner"
)

// jsonSchemaVersion identifies the layout of JSONOutput.
const jsonSchemaVersion = "1"

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Version string       `json:"version"`
	Files   []JSONFile   `json:"files"`
	Summary *JSONSummary `json:"summary,omitempty"`
}

// JSONFile represents a single file's results.
type JSONFile struct {
	Path         string           `json:"path"`
	Size         int64            `json:"size"`
	SHA256       string           `json:"sha256,omitempty"`
	Error        string           `json:"error,omitempty"`
	GIFVersion   string           `json:"gifVersion,omitempty"`
	Width        int              `json:"width"`
	Height       int              `json:"height"`
	GlobalColors int              `json:"globalColors"`
	Background   int              `json:"backgroundIndex"`
	Loop         *JSONLoop        `json:"loop,omitempty"`
	DurationMS   int64            `json:"durationMs"`
	HasTrailer   bool             `json:"hasTrailer"`
	Comments     []string         `json:"comments,omitempty"`
	Applications []string         `json:"applications,omitempty"`
	Frames       []JSONFrame      `json:"frames"`
	Warnings     []runner.Warning `json:"warnings"`
}

// JSONLoop describes the looping extension. Plays is 0 for an endless loop.
type JSONLoop struct {
	Count int `json:"count"`
	Plays int `json:"plays"`
}

// JSONFrame represents a single frame.
type JSONFrame struct {
	Index       int    `json:"index"`
	Left        int    `json:"left"`
	Top         int    `json:"top"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	DelayMS     int64  `json:"delayMs"`
	HasDelay    bool   `json:"hasDelay"`
	Disposal    string `json:"disposal"`
	Transparent *int   `json:"transparentIndex,omitempty"`
	Interlaced  bool   `json:"interlaced"`
	LocalTable  bool   `json:"localColorTable"`
	Colors      int    `json:"colors"`
	Complete    bool   `json:"complete"`
}

// JSONSummary contains aggregate statistics.
type JSONSummary struct {
	FilesDiscovered   int   `json:"filesDiscovered"`
	FilesDecoded      int   `json:"filesDecoded"`
	FilesErrored      int   `json:"filesErrored"`
	FilesWithWarnings int   `json:"filesWithWarnings"`
	FilesTruncated    int   `json:"filesTruncated"`
	FramesTotal       int   `json:"framesTotal"`
	WarningsTotal     int   `json:"warningsTotal"`
	BytesRead         int64 `json:"bytesRead"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := BuildJSON(result, r.opts)

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}
	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode json: %w", err)
	}

	return countProblems(result), nil
}

// BuildJSON converts a runner result to its JSON form.
func BuildJSON(result *runner.Result, opts Options) JSONOutput {
	output := JSONOutput{Version: jsonSchemaVersion, Files: []JSONFile{}}
	if result == nil {
		return output
	}

	for _, file := range result.Files {
		output.Files = append(output.Files, jsonFile(file, opts))
	}

	if opts.ShowSummary {
		stats := result.Stats
		output.Summary = &JSONSummary{
			FilesDiscovered:   stats.FilesDiscovered,
			FilesDecoded:      stats.FilesDecoded,
			FilesErrored:      stats.FilesErrored,
			FilesWithWarnings: stats.FilesWithWarnings,
			FilesTruncated:    stats.FilesTruncated,
			FramesTotal:       stats.FramesTotal,
			WarningsTotal:     stats.WarningsTotal,
			BytesRead:         stats.BytesRead,
		}
	}

	return output
}

func jsonFile(file runner.FileOutcome, opts Options) JSONFile {
	out := JSONFile{
		Path:     opts.displayPath(file.Path),
		Size:     file.Info.Size,
		Frames:   []JSONFrame{},
		Warnings: []runner.Warning{},
	}
	if file.Error != nil {
		out.Error = file.Error.Error()
		return out
	}

	sum := file.Summary
	out.SHA256 = file.Info.Digest()
	out.GIFVersion = sum.Version
	out.Width = sum.Width
	out.Height = sum.Height
	out.GlobalColors = sum.GlobalColors
	out.Background = sum.Background
	out.DurationMS = sum.Duration.Milliseconds()
	out.HasTrailer = sum.HasTrailer
	out.Comments = sum.Comments
	out.Applications = sum.Applications
	if sum.HasLoop {
		out.Loop = &JSONLoop{Count: sum.LoopCount, Plays: sum.Plays}
	}
	if sum.Warnings != nil {
		out.Warnings = sum.Warnings
	}

	for _, fr := range sum.Frames {
		jf := JSONFrame{
			Index:      fr.Index,
			Left:       fr.Left,
			Top:        fr.Top,
			Width:      fr.Width,
			Height:     fr.Height,
			DelayMS:    fr.Delay.Milliseconds(),
			HasDelay:   fr.HasDelay,
			Disposal:   fr.Disposal,
			Interlaced: fr.Interlaced,
			LocalTable: fr.LocalTable,
			Colors:     fr.Colors,
			Complete:   fr.Complete,
		}
		if fr.Transparent >= 0 {
			idx := fr.Transparent
			jf.Transparent = &idx
		}
		out.Frames = append(out.Frames, jf)
	}

	return out
}
