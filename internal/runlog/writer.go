package runlog

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Writer appends Events as JSON Lines to a run's log file and mirrors every
// event except RUN_START and ROTATION to a structured console logger. All writes are serialized: a single
// run drives the writer from one goroutine at a time by construction, but
// the mutex keeps concurrent callers (and the rotation check) safe.
type Writer struct {
	mu       sync.Mutex
	file     *os.File
	buf      *bufio.Writer
	logPath  string
	runID    string
	config   Config
	rotation *rotationManager
	console  zerolog.Logger
	dryRun   bool
}

// New creates a Writer for a fresh run: it ensures config.LogDirectory
// exists, opens "run-<runID>.jsonl" for append, and writes RUN_START. The
// run's UUID v4 identifier is available from RunID.
func New(config Config, console zerolog.Logger, dryRun bool) (*Writer, error) {
	if err := os.MkdirAll(config.LogDirectory, 0755); err != nil {
		return nil, fmt.Errorf("runlog: create log directory: %w", err)
	}

	runID := uuid.NewString()
	logPath := filepath.Join(config.LogDirectory, fmt.Sprintf("run-%s.jsonl", runID))

	file, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("runlog: open %s: %w", logPath, err)
	}

	w := &Writer{
		file:     file,
		buf:      bufio.NewWriter(file),
		logPath:  logPath,
		runID:    runID,
		config:   config,
		rotation: newRotationManager(config),
		console:  console,
		dryRun:   dryRun,
	}

	if err := w.writeLocked(Event{
		EventType: EventRunStart,
		Status:    w.statusFor(StatusApplied),
	}); err != nil {
		file.Close()
		return nil, fmt.Errorf("runlog: write RUN_START: %w", err)
	}

	return w, nil
}

// RunID returns the run's UUID v4 identifier.
func (w *Writer) RunID() string {
	return w.runID
}

// statusFor maps StatusApplied to StatusPreview in dry-run mode; any other
// status, and every status outside dry-run mode, is returned unchanged.
func (w *Writer) statusFor(applied Status) Status {
	if w.dryRun && applied == StatusApplied {
		return StatusPreview
	}
	return applied
}

// Rename records a planned or applied case-handling rename.
func (w *Writer) Rename(src, dst string) error {
	return w.record(Event{
		EventType:       EventRename,
		Status:          w.statusFor(StatusApplied),
		SourcePath:      src,
		DestinationPath: dst,
	}, zerolog.InfoLevel, "rename")
}

// DirMerge records a planned or applied directory-tree merge.
func (w *Writer) DirMerge(src, dst string) error {
	return w.record(Event{
		EventType:       EventDirMerge,
		Status:          w.statusFor(StatusApplied),
		SourcePath:      src,
		DestinationPath: dst,
	}, zerolog.InfoLevel, "merge directory")
}

// FileKeepLarger records a move-or-keep-larger collision resolution.
func (w *Writer) FileKeepLarger(src, dst string, srcSize, dstSize int64) error {
	return w.record(Event{
		EventType:       EventFileKeepLarge,
		Status:          w.statusFor(StatusApplied),
		SourcePath:      src,
		DestinationPath: dst,
		SourceSize:      &srcSize,
		DestinationSize: &dstSize,
	}, zerolog.InfoLevel, "keep-larger resolution")
}

// Skip records a non-fatal per-entry skip.
func (w *Writer) Skip(path, message string) error {
	return w.record(Event{
		EventType:  EventSkip,
		Status:     StatusSkipped,
		SourcePath: path,
		Message:    message,
	}, zerolog.WarnLevel, "skip")
}

// Error records a fatal or per-entry error.
func (w *Writer) Error(path, message string) error {
	return w.record(Event{
		EventType:  EventError,
		Status:     StatusFailed,
		SourcePath: path,
		Message:    message,
	}, zerolog.ErrorLevel, "error")
}

// EndRun records the RUN_END event carrying the final tally.
func (w *Writer) EndRun(summary Summary) error {
	metadata := map[string]string{
		"entriesScanned":      fmt.Sprintf("%d", summary.EntriesScanned),
		"exactMatches":        fmt.Sprintf("%d", summary.ExactMatches),
		"probableSuggestions": fmt.Sprintf("%d", summary.ProbableSuggestions),
		"groupsMerged":        fmt.Sprintf("%d", summary.GroupsMerged),
		"nonEmptyResidues":    fmt.Sprintf("%d", summary.NonEmptyResidues),
	}
	return w.record(Event{
		EventType: EventRunEnd,
		Status:    w.statusFor(StatusApplied),
		Metadata:  metadata,
	}, zerolog.InfoLevel, "run complete")
}

func (w *Writer) record(event Event, level zerolog.Level, message string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.writeLocked(event); err != nil {
		return err
	}

	logEvent := w.console.WithLevel(level).Str("eventType", string(event.EventType)).Str("status", string(event.Status))
	if event.SourcePath != "" {
		logEvent = logEvent.Str("source", event.SourcePath)
	}
	if event.DestinationPath != "" {
		logEvent = logEvent.Str("destination", event.DestinationPath)
	}
	logEvent.Msg(message)

	return nil
}

func (w *Writer) writeLocked(event Event) error {
	event.Timestamp = time.Now().UTC()
	event.RunID = w.runID

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("runlog: marshal event: %w", err)
	}
	if _, err := w.buf.Write(data); err != nil {
		return fmt.Errorf("runlog: write event: %w", err)
	}
	if err := w.buf.WriteByte('\n'); err != nil {
		return fmt.Errorf("runlog: write newline: %w", err)
	}
	if err := w.buf.Flush(); err != nil {
		return fmt.Errorf("runlog: flush event: %w", err)
	}
	if err := w.file.Sync(); err != nil {
		return fmt.Errorf("runlog: sync event: %w", err)
	}

	if event.EventType == EventRotation {
		return nil
	}
	return w.checkAndRotate()
}

func (w *Writer) checkAndRotate() error {
	needs, err := w.rotation.needsRotation(w.logPath)
	if err != nil {
		return err
	}
	if !needs {
		return nil
	}

	rotatedName := w.rotation.rotatedFilename(w.runID)
	rotationEvent := Event{
		Timestamp: time.Now().UTC(),
		RunID:     w.runID,
		EventType: EventRotation,
		Status:    StatusApplied,
		Message:   rotatedName,
	}
	data, err := json.Marshal(rotationEvent)
	if err != nil {
		return fmt.Errorf("runlog: marshal rotation event: %w", err)
	}
	if _, err := w.buf.Write(data); err != nil {
		return fmt.Errorf("runlog: write rotation event: %w", err)
	}
	if err := w.buf.WriteByte('\n'); err != nil {
		return err
	}
	if err := w.buf.Flush(); err != nil {
		return err
	}
	if err := w.file.Sync(); err != nil {
		return err
	}
	if err := w.file.Close(); err != nil {
		return fmt.Errorf("runlog: close for rotation: %w", err)
	}

	if err := w.rotation.rotate(w.logPath, rotatedName); err != nil {
		return fmt.Errorf("runlog: rotate: %w", err)
	}

	file, err := os.OpenFile(w.logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("runlog: reopen after rotation: %w", err)
	}
	w.file = file
	w.buf = bufio.NewWriter(file)
	return nil
}

// Close flushes and closes the underlying log file.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.buf.Flush(); err != nil {
		return err
	}
	return w.file.Close()
}
