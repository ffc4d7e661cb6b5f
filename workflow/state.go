package workflow

import (
	"fmt"
	"time"

	"github.com/sinu-sinu/content-automation-ai/profile"
	"github.com/sinu-sinu/content-automation-ai/types"
)

// State is one node of the orchestration state machine.
type State string

const (
	StateResearching State = "researching"
	StateDrafting    State = "drafting"
	StateScoring     State = "scoring"
	StateDeciding    State = "deciding"
	StateRefining    State = "refining"
	StateFinalized   State = "finalized"
)

// Status is the terminal outcome of a run. Exhausted is a legitimate result
// (quality bar never met within budget), not an error.
type Status string

const (
	StatusSucceeded Status = "succeeded"
	StatusExhausted Status = "exhausted"
	StatusFailed    Status = "failed"
)

// legal enumerates the allowed transitions. Every state may also finalize.
var legal = map[State][]State{
	StateResearching: {StateDrafting},
	StateDrafting:    {StateScoring},
	StateScoring:     {StateDeciding},
	StateDeciding:    {StateRefining},
	StateRefining:    {StateScoring},
}

// workflowState is the orchestrator's working record for one run. Only the
// orchestrator mutates it, and only until it becomes terminal.
type workflowState struct {
	runID      string
	topic      types.Topic
	prof       *profile.StyleProfile
	brief      *types.ResearchBrief
	iterations []types.Iteration
	state      State
	status     Status
	runErr     *RunError
	startedAt  time.Time
	finishedAt time.Time
}

func newWorkflowState(runID string, topic types.Topic, prof *profile.StyleProfile) *workflowState {
	return &workflowState{
		runID:     runID,
		topic:     topic,
		prof:      prof,
		state:     StateResearching,
		startedAt: time.Now().UTC(),
	}
}

func (w *workflowState) terminal() bool { return w.state == StateFinalized }

// transition moves to a non-terminal state, rejecting illegal edges and any
// mutation after finalization.
func (w *workflowState) transition(to State) error {
	if w.terminal() {
		return ErrAlreadyTerminal
	}
	for _, next := range legal[w.state] {
		if next == to {
			w.state = to
			return nil
		}
	}
	return fmt.Errorf("illegal transition %s -> %s", w.state, to)
}

// finalize enters the terminal state. Further transitions or finalizations
// fail with ErrAlreadyTerminal.
func (w *workflowState) finalize(status Status, runErr *RunError) error {
	if w.terminal() {
		return ErrAlreadyTerminal
	}
	w.state = StateFinalized
	w.status = status
	w.runErr = runErr
	w.finishedAt = time.Now().UTC()
	return nil
}

// addIteration records a scored draft. Drafts are only recorded together
// with their score, so draft count always equals score count.
func (w *workflowState) addIteration(draft types.ScriptDraft, score types.ValidationScore) error {
	if w.terminal() {
		return ErrAlreadyTerminal
	}
	w.iterations = append(w.iterations, types.Iteration{Draft: draft, Score: score})
	return nil
}

func (w *workflowState) latest() *types.Iteration {
	if len(w.iterations) == 0 {
		return nil
	}
	return &w.iterations[len(w.iterations)-1]
}

// best returns the iteration with the highest combined score. Refinement is
// not monotonic, so on exhaustion this is the delivered artifact. Ties go to
// the later iteration.
func (w *workflowState) best() *types.Iteration {
	var best *types.Iteration
	for i := range w.iterations {
		it := &w.iterations[i]
		if best == nil || it.Score.Combined >= best.Score.Combined {
			best = it
		}
	}
	return best
}

// refinementsDone counts refinement passes: every iteration past the first
func (w *workflowState) refinementsDone() int {
	if len(w.iterations) == 0 {
		return 0
	}
	return len(w.iterations) - 1
}
