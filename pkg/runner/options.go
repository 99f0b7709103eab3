// Package runner decodes many GIF files concurrently.
package runner

import "github.com/yaklabco/gifdec/pkg/config"

// Options controls a multi-file run.
type Options struct {
	// Paths are the user-specified paths (files or directories) to process.
	// If empty, defaults to the current working directory.
	Paths []string

	// WorkingDir is the base directory used to resolve relative Paths.
	// If empty, the current process working directory is used.
	WorkingDir string

	// Extensions is the set of file extensions (lowercase, with leading dot)
	// considered GIF files. Defaults to DefaultExtensions().
	Extensions []string

	// ExcludeGlobs are glob patterns used to skip files or directories.
	// These merge ignore rules from config and CLI (e.g. --ignore).
	ExcludeGlobs []string

	// IncludeVendored walks directories enry classifies as vendored,
	// such as node_modules or third_party.
	IncludeVendored bool

	// FollowSymlinks controls whether directory symlinks are traversed.
	FollowSymlinks bool

	// KeepFrames retains decoded frames on each FileOutcome.
	KeepFrames bool

	// Jobs controls the maximum number of concurrent workers.
	// 0 or negative means "auto" (runtime.NumCPU()).
	Jobs int

	// Config is the resolved configuration for this run. Nil means defaults.
	Config *config.Config
}

// DefaultExtensions returns the default set of GIF file extensions.
func DefaultExtensions() []string {
	return []string{".gif"}
}

func (o Options) effectiveExtensions() []string {
	if len(o.Extensions) == 0 {
		return DefaultExtensions()
	}
	return o.Extensions
}

func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}

func (o Options) effectiveConfig() *config.Config {
	if o.Config == nil {
		return config.NewConfig()
	}
	return o.Config
}
