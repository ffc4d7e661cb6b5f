package workflow

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"

	"github.com/sinu-sinu/content-automation-ai/llm"
)

// Kind classifies why a run failed.
type Kind string

const (
	KindUnavailable     Kind = "collaborator_unavailable"
	KindTimeout         Kind = "collaborator_timeout"
	KindInvalidResponse Kind = "invalid_response"
	KindConfigNotFound  Kind = "configuration_not_found"
	KindCancelled       Kind = "cancelled"
)

// Step names the pipeline step an error occurred in.
type Step string

const (
	StepResearch Step = "research"
	StepDraft    Step = "draft"
	StepScore    Step = "score"
	StepRefine   Step = "refine"
	StepProfile  Step = "profile"
)

// ErrAlreadyTerminal is returned when a transition is attempted on a
// finalized workflow state.
var ErrAlreadyTerminal = errors.New("workflow already in a terminal state")

// RunError is a classified run failure: what kind of error, at which step.
type RunError struct {
	Kind Kind   `json:"kind"`
	Step Step   `json:"step"`
	Msg  string `json:"message"`
	err  error
}

func (e *RunError) Error() string {
	return fmt.Sprintf("%s at %s step: %s", e.Kind, e.Step, e.Msg)
}

func (e *RunError) Unwrap() error { return e.err }

// Classify wraps a collaborator error with its kind and failing step.
func Classify(step Step, err error) *RunError {
	return &RunError{Kind: kindOf(err), Step: step, Msg: err.Error(), err: err}
}

func kindOf(err error) Kind {
	switch {
	case errors.Is(err, context.Canceled):
		return KindCancelled
	case errors.Is(err, context.DeadlineExceeded):
		return KindTimeout
	case errors.Is(err, llm.ErrInvalidResponse):
		return KindInvalidResponse
	case errors.Is(err, os.ErrNotExist):
		return KindConfigNotFound
	default:
		var netErr net.Error
		if errors.As(err, &netErr) && netErr.Timeout() {
			return KindTimeout
		}
		return KindUnavailable
	}
}
