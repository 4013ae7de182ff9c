// Command cleanup consolidates a directory of per-author folders against an
// authority store: normalizing display names, matching each folder to a
// confirmed or probable author identifier, emitting a CSV of the results,
// and merging folders that share an identifier.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"libcleanup/internal/authority"
	"libcleanup/internal/config"
	"libcleanup/internal/orchestrator"
	"libcleanup/internal/output"
	"libcleanup/internal/runlog"
)

func main() {
	app := &cli.App{
		Name:  "cleanup",
		Usage: "consolidate author folders against an authority store",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "root", Value: "output/sorted_books", Usage: "directory whose immediate children are author folders"},
			&cli.StringFlag{Name: "db", Value: "data/database/openlibrary.sqlite3", Usage: "authority store location"},
			&cli.StringFlag{Name: "csv", Value: "data/authors.csv", Usage: "CSV output path"},
			&cli.IntFlag{Name: "min-files", Value: 0, Usage: "entries with fewer files are excluded from group merging"},
			&cli.Float64Flag{Name: "probable-threshold", Value: 0.90, Usage: "minimum average score for a probable identifier to drive merging"},
			&cli.BoolFlag{Name: "dry-run", Usage: "log planned renames/merges without mutating the filesystem"},
			&cli.StringFlag{Name: "log-dir", Value: "data/logs", Usage: "directory for the JSON Lines run log"},
			&cli.Int64Flag{Name: "log-rotate-bytes", Value: 10 * 1024 * 1024, Usage: "size threshold at which the run log rotates; 0 disables rotation"},
			&cli.BoolFlag{Name: "verbose", Usage: "echo per-operation log lines to the console in addition to the log file"},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "cleanup: %v\n", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	cfg := config.RunConfig{
		Root:              c.String("root"),
		DBPath:            c.String("db"),
		CSVPath:           c.String("csv"),
		MinFiles:          c.Int("min-files"),
		ProbableThreshold: c.Float64("probable-threshold"),
		DryRun:            c.Bool("dry-run"),
		Verbose:           c.Bool("verbose"),
		Log: runlog.Config{
			LogDirectory:  c.String("log-dir"),
			RotationBytes: c.Int64("log-rotate-bytes"),
		},
	}

	if err := cfg.Validate(); err != nil {
		// A missing --root, a negative --min-files or an out-of-range
		// --probable-threshold stops the run before the authority store is
		// opened.
		return err
	}

	store, err := authority.OpenSQLiteStore(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open authority store: %w", err)
	}
	defer store.Close()

	consoleLevel := zerolog.WarnLevel
	if cfg.Verbose {
		consoleLevel = zerolog.InfoLevel
	}
	console := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		Level(consoleLevel).
		With().Timestamp().Logger()

	log, err := runlog.New(cfg.Log, console, cfg.DryRun)
	if err != nil {
		return fmt.Errorf("open run log: %w", err)
	}
	defer log.Close()

	out := output.New(output.DefaultConfig(cfg.Verbose))

	summary, err := orchestrator.Run(cfg, store, log, out.Progress)
	out.EndProgress()
	if err != nil {
		return err
	}

	out.Summary(summary.EntriesScanned, summary.ExactMatches, summary.ProbableSuggestions, summary.GroupsMerged, summary.NonEmptyResidues)
	return nil
}
