// Package config holds the validated run configuration for a consolidation
// pass, built from CLI flags rather than a config file.
package config

import (
	"fmt"
	"os"

	"libcleanup/internal/runlog"
)

// ErrorType identifies the class of configuration problem.
type ErrorType string

const (
	// MissingRoot means --root does not exist or is not a directory.
	MissingRoot ErrorType = "MISSING_ROOT"
	// InvalidThreshold means --probable-threshold is outside [0,1].
	InvalidThreshold ErrorType = "INVALID_THRESHOLD"
	// InvalidMinFiles means --min-files is negative.
	InvalidMinFiles ErrorType = "INVALID_MIN_FILES"
)

// Error is a configuration failure that prevents the run from starting.
type Error struct {
	Type    ErrorType
	Path    string
	Message string
}

func (e *Error) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Message, e.Path)
	}
	return e.Message
}

// RunConfig is the fully resolved set of options for one pipeline run,
// built from the CLI flags.
type RunConfig struct {
	Root               string
	DBPath             string
	CSVPath            string
	MinFiles           int
	ProbableThreshold  float64
	DryRun             bool
	Verbose            bool
	Log                runlog.Config
}

// Default returns a RunConfig populated with every flag's documented
// default value, prior to any CLI override.
func Default() RunConfig {
	return RunConfig{
		Root:              "output/sorted_books",
		DBPath:            "data/database/openlibrary.sqlite3",
		CSVPath:           "data/authors.csv",
		MinFiles:          0,
		ProbableThreshold: 0.90,
		DryRun:            false,
		Verbose:           false,
		Log:               runlog.DefaultConfig(),
	}
}

// Validate checks the invariants the pipeline depends on before it opens
// the authority store or touches the filesystem. It returns a *Error on
// failure.
func (c RunConfig) Validate() error {
	info, err := os.Stat(c.Root)
	if err != nil {
		return &Error{Type: MissingRoot, Path: c.Root, Message: "root directory is not accessible"}
	}
	if !info.IsDir() {
		return &Error{Type: MissingRoot, Path: c.Root, Message: "root is not a directory"}
	}
	if c.MinFiles < 0 {
		return &Error{Type: InvalidMinFiles, Message: "min-files must be >= 0"}
	}
	if c.ProbableThreshold < 0 || c.ProbableThreshold > 1 {
		return &Error{Type: InvalidThreshold, Message: "probable-threshold must be in [0,1]"}
	}
	return nil
}
