//go:build stave

package main

import (
	"cmp"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/yaklabco/stave/pkg/sh"
	"github.com/yaklabco/stave/pkg/st"
	"github.com/yaklabco/stave/pkg/target"
)

const binary = "bin/gifdec"

var Default = Build

var Aliases = map[string]any{
	"b":    Build,
	"t":    Test.Default,
	"l":    Lint.Default,
	"c":    Check,
	"fuzz": Test.Fuzz,
}

type (
	Test st.Namespace
	Lint st.Namespace
	CI   st.Namespace
)

// Build compiles bin/gifdec with version info when sources changed.
func Build() error {
	rebuild, err := target.Dir(binary, "cmd/", "pkg/", "internal/", "go.mod", "go.sum")
	if err != nil {
		return err
	}
	if !rebuild {
		fmt.Println(binary, "is up to date")
		return nil
	}
	return sh.RunV("go", "build", "-ldflags", ldflags(), "-o", binary, "./cmd/gifdec")
}

// Check formats, lints and tests.
func Check() {
	st.SerialDeps(Lint.Fmt, Lint.Default, Test.Default)
}

// Clean removes build and coverage output.
func Clean() error {
	for _, path := range []string{"bin", "coverage.out", "coverage.html"} {
		if err := sh.Rm(path); err != nil {
			return err
		}
	}
	return nil
}

// Install runs go install with version info.
func Install() error {
	return sh.RunV("go", "install", "-ldflags", ldflags(), "./cmd/gifdec")
}

// Coverage renders coverage.out as HTML.
func Coverage() error {
	st.Deps(Test.Default)
	return sh.RunV("go", "tool", "cover", "-html=coverage.out", "-o", "coverage.html")
}

// Default runs the suite under gotestsum with the race detector.
func (Test) Default() error {
	return gotestsum("pkgname-and-test-fails", "-race", "-coverprofile=coverage.out", "-covermode=atomic")
}

// Bench runs the decoder benchmarks.
func (Test) Bench() error {
	return gotestsum("pkgname", "-run=^$", "-bench=.", "-benchmem")
}

// Fuzz runs each fuzz target for FUZZ_TIME (default 30s).
func (Test) Fuzz() error {
	fuzzTime := cmp.Or(os.Getenv("FUZZ_TIME"), "30s")
	targets := []struct{ pkg, name string }{
		{"./pkg/gif", "FuzzDecode"},
		{"./pkg/lzw", "FuzzDecompress"},
		{"./pkg/fsutil", "FuzzWriteAtomicReadFile"},
	}
	for _, ft := range targets {
		fmt.Printf("fuzzing %s %s for %s\n", ft.pkg, ft.name, fuzzTime)
		if err := sh.RunV("go", "test", "-run=^$", "-fuzz=^"+ft.name+"$", "-fuzztime", fuzzTime, ft.pkg); err != nil {
			return fmt.Errorf("fuzz %s: %w", ft.name, err)
		}
	}
	return nil
}

// Default runs golangci-lint with --fix.
func (Lint) Default() error {
	return sh.RunV("golangci-lint", "run", "--fix", "./...")
}

func (Lint) Fmt() error {
	return sh.RunV("gofmt", "-w", "cmd", "internal", "pkg")
}

// FmtCheck fails when gofmt would change anything.
func (Lint) FmtCheck() error {
	out, err := sh.Output("gofmt", "-l", "cmd", "internal", "pkg")
	if err != nil {
		return fmt.Errorf("gofmt: %w", err)
	}
	if out != "" {
		return fmt.Errorf("unformatted files:\n%s", out)
	}
	return nil
}

// Gate is the CI entry point.
func (CI) Gate() {
	st.SerialDeps(Lint.FmtCheck, CI.Vet, Build, Test.Default, CI.ModTidy)
}

func (CI) Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// ModTidy fails when go mod tidy changes go.mod or go.sum.
func (CI) ModTidy() error {
	before, err := modFiles()
	if err != nil {
		return err
	}
	if err := sh.RunV("go", "mod", "tidy"); err != nil {
		return err
	}
	after, err := modFiles()
	if err != nil {
		return err
	}
	if before != after {
		return errors.New("go.mod or go.sum not tidy")
	}
	return nil
}

func gotestsum(format string, args ...string) error {
	procs := cmp.Or(os.Getenv("STAVE_NUM_PROCESSORS"), "4")
	cmdArgs := []string{"tool", "gotestsum", "-f", format, "--", "-p", procs, "-parallel", procs}
	cmdArgs = append(cmdArgs, args...)
	cmdArgs = append(cmdArgs, "./...")
	return sh.RunV("go", cmdArgs...)
}

func modFiles() (string, error) {
	var sb strings.Builder
	for _, name := range []string{"go.mod", "go.sum"} {
		data, err := os.ReadFile(name)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("read %s: %w", name, err)
		}
		sb.Write(data)
	}
	return sb.String(), nil
}

func gitOutput(args ...string) string {
	out, err := sh.Output("git", args...)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(out)
}

// ldflags injects version, commit and date into cmd/gifdec.
func ldflags() string {
	version := cmp.Or(gitOutput("describe", "--tags", "--always", "--dirty"), "dev")
	commit := cmp.Or(gitOutput("rev-parse", "--short", "HEAD"), "none")
	date := time.Now().UTC().Format(time.RFC3339)
	return fmt.Sprintf("-X main.version=%s -X main.commit=%s -X main.date=%s", version, commit, date)
}
