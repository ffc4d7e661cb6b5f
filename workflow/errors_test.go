package workflow

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sinu-sinu/content-automation-ai/llm"
)

func TestClassifyKinds(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want Kind
	}{
		{"cancelled", context.Canceled, KindCancelled},
		{"deadline", context.DeadlineExceeded, KindTimeout},
		{"invalid response", fmt.Errorf("decode: %w", llm.ErrInvalidResponse), KindInvalidResponse},
		{"profile missing", fmt.Errorf("style profile not found: %w", os.ErrNotExist), KindConfigNotFound},
		{"anything else", errors.New("connection refused"), KindUnavailable},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Classify(StepDraft, tc.err)
			assert.Equal(t, tc.want, got.Kind)
			assert.Equal(t, StepDraft, got.Step)
		})
	}
}

func TestClassifyWrappedThroughRetry(t *testing.T) {
	// the retry layer wraps the last error; classification still sees through it
	wrapped := fmt.Errorf("after 2 attempts: %w", fmt.Errorf("call model: %w", llm.ErrInvalidResponse))
	got := Classify(StepRefine, wrapped)
	assert.Equal(t, KindInvalidResponse, got.Kind)
}

func TestRunErrorUnwrap(t *testing.T) {
	cause := errors.New("boom")
	runErr := Classify(StepScore, cause)

	require.ErrorIs(t, runErr, cause)
	assert.Contains(t, runErr.Error(), "score")
	assert.Contains(t, runErr.Error(), "boom")
}
