// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

// Field name constants for structured logging.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldOutput     = "output"
	FieldWorkingDir = "working_dir"
	FieldConfig     = "config"

	// Decode fields.
	FieldBytes    = "bytes"
	FieldConsumed = "consumed"
	FieldFrames   = "frames"
	FieldFrame    = "frame"
	FieldWidth    = "width"
	FieldHeight   = "height"
	FieldLoop     = "loop"
	FieldDuration = "duration"
	FieldWarning  = "warning"

	// Run configuration fields.
	FieldJobs   = "jobs"
	FieldStrict = "strict"
	FieldFormat = "format"
	FieldMode   = "mode"
	FieldScale  = "scale"

	// Statistics fields.
	FieldFilesDiscovered = "files_discovered"
	FieldFilesDecoded    = "files_decoded"
	FieldFilesFailed     = "files_failed"
	FieldFramesWritten   = "frames_written"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
