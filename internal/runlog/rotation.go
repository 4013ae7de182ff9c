package runlog

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// rotationManager bounds a single run's log growth on very large trees by
// rotating the active log file once it crosses config.RotationBytes.
type rotationManager struct {
	config Config
}

func newRotationManager(config Config) *rotationManager {
	return &rotationManager{config: config}
}

func (rm *rotationManager) needsRotation(logPath string) (bool, error) {
	if rm.config.RotationBytes <= 0 {
		return false, nil
	}
	info, err := os.Stat(logPath)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("runlog: stat %s: %w", logPath, err)
	}
	return info.Size() >= rm.config.RotationBytes, nil
}

// rotatedFilename names a rotated segment "run-<runID>-YYYYMMDD-HHMMSS-mmm.jsonl".
func (rm *rotationManager) rotatedFilename(runID string) string {
	now := time.Now()
	return fmt.Sprintf("run-%s-%s-%03d.jsonl", runID, now.Format("20060102-150405"), now.Nanosecond()/1_000_000)
}

func (rm *rotationManager) rotate(logPath, rotatedName string) error {
	target := filepath.Join(rm.config.LogDirectory, rotatedName)
	return os.Rename(logPath, target)
}
