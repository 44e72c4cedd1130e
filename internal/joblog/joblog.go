// Package joblog persists daily job run records using JSONL format.
// Each run appends one line so the history survives crashes mid-run.
package joblog

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/MiningMyBusiness/keep-up-with-ai-papers/internal/logger"
)

// RunsFilename is the filename for storing run records in JSONL format.
const RunsFilename = "runs.jsonl"

// Run statuses.
const (
	StatusOK     = "ok"
	StatusFailed = "failed"
)

// RunRecord is one completed (or failed) daily job run.
type RunRecord struct {
	ID         string    `json:"id"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	Start      string    `json:"start"` // first date pulled, YYYY-MM-DD
	End        string    `json:"end"`   // last date pulled, YYYY-MM-DD
	Found      int       `json:"found"`
	Downloaded int       `json:"downloaded"`
	Summaries  int       `json:"summaries"`
	Status     string    `json:"status"`
	Error      string    `json:"error,omitempty"`
}

// NewRunID returns a fresh record ID.
func NewRunID() string {
	return uuid.New().String()
}

// Storage provides persistent storage for run records.
type Storage struct {
	filePath string
	logger   *logger.Logger
}

// NewStorage creates a Storage writing to <workspacePath>/runs.jsonl.
func NewStorage(workspacePath string, log *logger.Logger) *Storage {
	return &Storage{
		filePath: filepath.Join(workspacePath, RunsFilename),
		logger:   log,
	}
}

// Load reads run records from the JSONL file. A missing file yields an empty
// history; malformed lines are logged and skipped.
func (s *Storage) Load() ([]RunRecord, error) {
	file, err := os.Open(s.filePath)
	if os.IsNotExist(err) {
		return []RunRecord{}, nil
	}
	if err != nil {
		s.logger.Error("failed to open run log", err,
			logger.Field{Key: "file", Value: s.filePath})
		return nil, err
	}
	defer file.Close()

	var runs []RunRecord
	scanner := bufio.NewScanner(file)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		if line == "" {
			continue
		}

		var run RunRecord
		if err := json.Unmarshal([]byte(line), &run); err != nil {
			s.logger.Error("failed to unmarshal run record", err,
				logger.Field{Key: "file", Value: s.filePath},
				logger.Field{Key: "line", Value: lineNum})
			continue
		}
		runs = append(runs, run)
	}

	if err := scanner.Err(); err != nil {
		s.logger.Error("error scanning run log", err,
			logger.Field{Key: "file", Value: s.filePath})
		return nil, err
	}
	return runs, nil
}

// Append adds a run record to the end of the log file.
func (s *Storage) Append(run RunRecord) error {
	if err := os.MkdirAll(filepath.Dir(s.filePath), 0755); err != nil {
		s.logger.Error("failed to create run log directory", err,
			logger.Field{Key: "dir", Value: filepath.Dir(s.filePath)})
		return err
	}

	file, err := os.OpenFile(s.filePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		s.logger.Error("failed to open run log for append", err,
			logger.Field{Key: "file", Value: s.filePath})
		return err
	}
	defer file.Close()

	data, err := json.Marshal(run)
	if err != nil {
		return fmt.Errorf("failed to marshal run record %s: %w", run.ID, err)
	}

	if _, err := file.Write(append(data, '\n')); err != nil {
		s.logger.Error("failed to write run record", err,
			logger.Field{Key: "file", Value: s.filePath},
			logger.Field{Key: "run_id", Value: run.ID})
		return err
	}

	s.logger.Debug("run record appended",
		logger.Field{Key: "run_id", Value: run.ID},
		logger.Field{Key: "file", Value: s.filePath})
	return nil
}
