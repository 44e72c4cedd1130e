package joblog

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MiningMyBusiness/keep-up-with-ai-papers/internal/logger"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New(logger.Config{Level: "error", Format: "text", Output: "stderr"})
	require.NoError(t, err)
	return log
}

func testRun(id string) RunRecord {
	started := time.Date(2026, 8, 22, 10, 0, 0, 0, time.UTC)
	return RunRecord{
		ID:         id,
		StartedAt:  started,
		FinishedAt: started.Add(90 * time.Second),
		Start:      "2026-08-21",
		End:        "2026-08-22",
		Found:      10,
		Downloaded: 8,
		Summaries:  8,
		Status:     StatusOK,
	}
}

func TestNewRunID_IsUnique(t *testing.T) {
	assert.NotEqual(t, NewRunID(), NewRunID())
	assert.NotEmpty(t, NewRunID())
}

func TestLoad_MissingFileIsEmpty(t *testing.T) {
	storage := NewStorage(t.TempDir(), testLogger(t))

	runs, err := storage.Load()

	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestAppendAndLoad(t *testing.T) {
	storage := NewStorage(t.TempDir(), testLogger(t))

	require.NoError(t, storage.Append(testRun("run-1")))
	failed := testRun("run-2")
	failed.Status = StatusFailed
	failed.Error = "pull failed: network unreachable"
	require.NoError(t, storage.Append(failed))

	runs, err := storage.Load()

	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "run-1", runs[0].ID)
	assert.Equal(t, StatusOK, runs[0].Status)
	assert.Equal(t, 8, runs[0].Downloaded)
	assert.Equal(t, "run-2", runs[1].ID)
	assert.Equal(t, StatusFailed, runs[1].Status)
	assert.Equal(t, "pull failed: network unreachable", runs[1].Error)
}

func TestAppend_CreatesWorkspaceDir(t *testing.T) {
	workspace := filepath.Join(t.TempDir(), "nested", "workspace")
	storage := NewStorage(workspace, testLogger(t))

	require.NoError(t, storage.Append(testRun("run-1")))

	_, err := os.Stat(filepath.Join(workspace, RunsFilename))
	assert.NoError(t, err)
}

func TestLoad_SkipsMalformedLines(t *testing.T) {
	workspace := t.TempDir()
	storage := NewStorage(workspace, testLogger(t))
	require.NoError(t, storage.Append(testRun("run-1")))

	file, err := os.OpenFile(filepath.Join(workspace, RunsFilename), os.O_APPEND|os.O_WRONLY, 0644)
	require.NoError(t, err)
	_, err = file.WriteString("{not json\n\n")
	require.NoError(t, err)
	require.NoError(t, file.Close())
	require.NoError(t, storage.Append(testRun("run-2")))

	runs, err := storage.Load()

	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "run-1", runs[0].ID)
	assert.Equal(t, "run-2", runs[1].ID)
}
