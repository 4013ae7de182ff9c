// Package output formats the console-facing progress line and final
// summary for a consolidation run, independent of the JSON Lines run log.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Config holds output configuration.
type Config struct {
	Verbose bool      // Echo per-operation progress lines (ambient --verbose flag)
	Writer  io.Writer // Destination for progress and summary lines (default: os.Stdout)
	IsTTY   bool      // Whether Writer is a terminal; gates in-place progress updates
}

// DefaultConfig returns a Config with TTY detection against os.Stdout.
func DefaultConfig(verbose bool) Config {
	return Config{
		Verbose: verbose,
		Writer:  os.Stdout,
		IsTTY:   term.IsTerminal(int(os.Stdout.Fd())),
	}
}

// Output prints progress and the final summary line for a run.
type Output struct {
	config Config
}

// New creates an Output from config, defaulting Writer to os.Stdout.
func New(config Config) *Output {
	if config.Writer == nil {
		config.Writer = os.Stdout
	}
	return &Output{config: config}
}

// Progress reports an in-flight entry. On a TTY it overwrites the previous
// line; otherwise (redirected output, or --verbose) it prints one line per
// call so the trail survives in a log file.
func (o *Output) Progress(current, total int, folderName string) {
	if o.config.IsTTY && !o.config.Verbose {
		fmt.Fprintf(o.config.Writer, "\r%s", strings.Repeat(" ", 72))
		fmt.Fprintf(o.config.Writer, "\rscanning %d/%d: %s", current, total, folderName)
		return
	}
	fmt.Fprintf(o.config.Writer, "scanning %d/%d: %s\n", current, total, folderName)
}

// EndProgress clears the in-place progress line, if one is active.
func (o *Output) EndProgress() {
	if o.config.IsTTY && !o.config.Verbose {
		fmt.Fprintf(o.config.Writer, "\r%s\r", strings.Repeat(" ", 72))
	}
}

// Summary prints the final end-of-run line: entries scanned, exact matches,
// probable suggestions, groups merged, and directories left non-empty.
func (o *Output) Summary(entriesScanned, exactMatches, probableSuggestions, groupsMerged, nonEmptyResidues int) {
	fmt.Fprintf(o.config.Writer,
		"scanned %d entries: %d exact matches, %d probable suggestions, %d groups merged, %d directories left non-empty\n",
		entriesScanned, exactMatches, probableSuggestions, groupsMerged, nonEmptyResidues)
}
