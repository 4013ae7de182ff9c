// Package orchestrator drives the full consolidation pipeline: display
// normalization, scanning, authority matching, CSV emission, and group
// merging, recording every operation to the run log as it goes.
package orchestrator

import (
	"fmt"

	"libcleanup/internal/authority"
	"libcleanup/internal/config"
	"libcleanup/internal/csvemitter"
	"libcleanup/internal/displaynorm"
	"libcleanup/internal/groupmerger"
	"libcleanup/internal/matcher"
	"libcleanup/internal/runlog"
	"libcleanup/internal/scanner"
)

// ProgressFunc is called once per scanned entry, in scan order, before that
// entry is matched against the authority store. Callers use it to drive a
// console progress indicator; it may be nil.
type ProgressFunc func(current, total int, folderName string)

// RunSummary is the end-of-run tally: the count of entries scanned, exact
// matches, probable suggestions, groups merged, and directories left
// non-empty.
type RunSummary struct {
	EntriesScanned      int
	ExactMatches        int
	ProbableSuggestions int
	GroupsMerged        int
	NonEmptyResidues    int
}

// Run executes one full pipeline pass against cfg. store and log are opened
// by the caller (cmd/cleanup) so their lifecycle — and the FatalConfig
// failures that can prevent opening them — stays outside the pipeline
// itself.
func Run(cfg config.RunConfig, store authority.Store, log *runlog.Writer, progress ProgressFunc) (RunSummary, error) {
	if _, err := displaynorm.Normalize(cfg.Root, cfg.DryRun, log); err != nil {
		return RunSummary{}, fmt.Errorf("orchestrator: display normalization: %w", err)
	}

	entries, err := scanner.Scan(cfg.Root)
	if err != nil {
		return RunSummary{}, fmt.Errorf("orchestrator: scan: %w", err)
	}

	m := matcher.New(store)
	summary := RunSummary{EntriesScanned: len(entries)}

	for i := range entries {
		if progress != nil {
			progress(i+1, len(entries), entries[i].FolderName)
		}
		m.Match(&entries[i])
		switch {
		case entries[i].HasConfirmed():
			summary.ExactMatches++
		case entries[i].Probable != nil:
			summary.ProbableSuggestions++
		}
	}

	if err := csvemitter.Write(cfg.CSVPath, entries); err != nil {
		return summary, fmt.Errorf("orchestrator: csv write: %w", err)
	}

	plans, err := groupmerger.Merge(cfg.Root, entries, cfg.MinFiles, cfg.ProbableThreshold, cfg.DryRun, log)
	if err != nil {
		return summary, fmt.Errorf("orchestrator: group merge: %w", err)
	}
	summary.GroupsMerged = len(plans)
	for _, p := range plans {
		summary.NonEmptyResidues += p.Residues
	}

	if err := log.EndRun(runlog.Summary{
		EntriesScanned:      summary.EntriesScanned,
		ExactMatches:        summary.ExactMatches,
		ProbableSuggestions: summary.ProbableSuggestions,
		GroupsMerged:        summary.GroupsMerged,
		NonEmptyResidues:    summary.NonEmptyResidues,
	}); err != nil {
		return summary, fmt.Errorf("orchestrator: run log write: %w", err)
	}

	return summary, nil
}
