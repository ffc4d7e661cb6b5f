package workflow

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sinu-sinu/content-automation-ai/types"
)

// Result is the only artifact a run exposes: terminal status, the selected
// draft with its score, the full iteration history and, on failure, the
// classified error and failing step.
type Result struct {
	RunID       string            `json:"run_id"`
	Channel     string            `json:"channel"`
	Format      string            `json:"format"`
	Topic       types.Topic       `json:"topic"`
	Status      Status            `json:"status"`
	Summary     string            `json:"summary"`
	Brief       *types.ResearchBrief `json:"brief,omitempty"`
	Iterations  []types.Iteration `json:"iterations"`
	Selected    *types.Iteration  `json:"selected,omitempty"`
	Err         *RunError         `json:"error,omitempty"`
	StartedAt   string            `json:"started_at"`
	CompletedAt string            `json:"completed_at"`
}

func buildResult(ws *workflowState, format string) *Result {
	r := &Result{
		RunID:       ws.runID,
		Channel:     ws.prof.ChannelName,
		Format:      format,
		Topic:       ws.topic,
		Status:      ws.status,
		Brief:       ws.brief,
		Iterations:  ws.iterations,
		Err:         ws.runErr,
		StartedAt:   ws.startedAt.Format(time.RFC3339),
		CompletedAt: ws.finishedAt.Format(time.RFC3339),
	}

	switch ws.status {
	case StatusSucceeded:
		r.Selected = ws.latest()
		r.Summary = fmt.Sprintf("script accepted after %d attempt(s) with score %d/100",
			len(ws.iterations), r.Selected.Score.Combined)
	case StatusExhausted:
		r.Selected = ws.best()
		r.Summary = fmt.Sprintf("quality bar %d never met in %d attempt(s); delivering best draft v%d (score %d/100)",
			ws.prof.Threshold, len(ws.iterations), r.Selected.Draft.Version, r.Selected.Score.Combined)
	default:
		r.Summary = fmt.Sprintf("run failed: %s", ws.runErr.Error())
	}
	return r
}

// Save writes the run artifacts under dir/<runID>/: the full result as JSON
// and, when a draft was selected, the script text on its own for convenience.
func (r *Result) Save(dir string) error {
	runDir := filepath.Join(dir, r.RunID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return fmt.Errorf("create run dir: %w", err)
	}
	if err := saveJSON(filepath.Join(runDir, "result.json"), r); err != nil {
		return err
	}
	if r.Selected != nil {
		if err := os.WriteFile(filepath.Join(runDir, "script.md"), []byte(r.Selected.Draft.Text), 0644); err != nil {
			return fmt.Errorf("write script: %w", err)
		}
	}
	return nil
}

func saveJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
