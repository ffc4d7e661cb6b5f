package workflow

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sinu-sinu/content-automation-ai/types"
)

func TestBuildResultSucceededSelectsLatest(t *testing.T) {
	ws := newTestState()
	require.NoError(t, ws.addIteration(scoredIteration(1, 60)))
	require.NoError(t, ws.addIteration(scoredIteration(2, 81)))
	require.NoError(t, ws.finalize(StatusSucceeded, nil))

	r := buildResult(ws, "100_seconds")
	assert.Equal(t, StatusSucceeded, r.Status)
	assert.Equal(t, 2, r.Selected.Draft.Version)
	assert.Contains(t, r.Summary, "81/100")
	assert.Len(t, r.Iterations, 2)
}

func TestBuildResultFailedHasNoSelection(t *testing.T) {
	ws := newTestState()
	require.NoError(t, ws.finalize(StatusFailed, Classify(StepResearch, errors.New("source unreachable"))))

	r := buildResult(ws, "100_seconds")
	assert.Equal(t, StatusFailed, r.Status)
	assert.Nil(t, r.Selected)
	assert.NotNil(t, r.Err)
	assert.Contains(t, r.Summary, "run failed")
}

func TestResultSaveWritesArtifacts(t *testing.T) {
	ws := newTestState()
	draft := types.NewScriptDraft(1, "100_seconds", "the final script text")
	require.NoError(t, ws.addIteration(draft, types.ValidationScore{DraftVersion: 1, Combined: 90, Passed: true}))
	require.NoError(t, ws.finalize(StatusSucceeded, nil))

	dir := t.TempDir()
	r := buildResult(ws, "100_seconds")
	require.NoError(t, r.Save(dir))

	runDir := filepath.Join(dir, r.RunID)

	data, err := os.ReadFile(filepath.Join(runDir, "result.json"))
	require.NoError(t, err)
	var loaded Result
	require.NoError(t, json.Unmarshal(data, &loaded))
	assert.Equal(t, r.RunID, loaded.RunID)
	assert.Equal(t, StatusSucceeded, loaded.Status)

	script, err := os.ReadFile(filepath.Join(runDir, "script.md"))
	require.NoError(t, err)
	assert.Equal(t, "the final script text", string(script))
}
