package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Stage names used by the pipeline.
const (
	StagePlayers     = "players"
	StageSupplements = "supplements"
	StageSchedule    = "schedule"
	StageUnified     = "unified"
)

// ErrNoStage is returned by LoadLatest when no file exists for a stage.
// Callers use it to distinguish "stage never produced" (fatal for required
// inputs) from a successfully loaded but empty stage.
var ErrNoStage = errors.New("stage file not found")

// Storage handles persistence of pipeline stage files.
type Storage struct {
	dataDir string
	now     func() time.Time
}

// New creates a new Storage instance rooted at dataDir, creating the
// directory if needed. A leading ~/ is expanded to the home directory.
func New(dataDir string) (*Storage, error) {
	if strings.HasPrefix(dataDir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, dataDir[2:])
	}

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	return &Storage{
		dataDir: dataDir,
		now:     time.Now,
	}, nil
}

// Dir returns the resolved data directory.
func (s *Storage) Dir() string {
	return s.dataDir
}

// latestPath returns the path of the "latest" file for a stage.
func (s *Storage) latestPath(stage string) string {
	return filepath.Join(s.dataDir, stage+"_latest.json")
}

// SaveStage writes v as both a timestamped stage file and the stage's
// latest file, replacing any previous run's output.
func (s *Storage) SaveStage(stage string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s stage: %w", stage, err)
	}
	data = append(data, '\n')

	stamped := filepath.Join(s.dataDir, fmt.Sprintf("%s_%s.json", stage, s.now().UTC().Format("20060102_150405")))
	if err := os.WriteFile(stamped, data, 0644); err != nil {
		return fmt.Errorf("writing %s stage: %w", stage, err)
	}

	if err := os.WriteFile(s.latestPath(stage), data, 0644); err != nil {
		return fmt.Errorf("writing %s latest: %w", stage, err)
	}

	return nil
}

// LoadLatest reads the stage's latest file into v. It returns ErrNoStage
// when the stage has never been written.
func (s *Storage) LoadLatest(stage string, v any) error {
	data, err := os.ReadFile(s.latestPath(stage))
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("stage %s: %w", stage, ErrNoStage)
		}
		return fmt.Errorf("reading %s stage: %w", stage, err)
	}

	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parsing %s stage: %w", stage, err)
	}

	return nil
}
