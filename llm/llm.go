package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/kaptinlin/jsonrepair"
)

// ErrInvalidResponse marks malformed or empty model output, as opposed to the
// model service being unreachable. Wrap it so callers can classify with
// errors.Is.
var ErrInvalidResponse = errors.New("invalid model response")

// Role selects the model settings used for a call. Each pipeline agent gets
// its own model/temperature pair so research can run on a cheaper model than
// script writing.
type Role string

const (
	RoleScout     Role = "scout"
	RoleWriter    Role = "writer"
	RoleValidator Role = "validator"
	RoleMetadata  Role = "metadata"
)

// Request is one chat completion request.
type Request struct {
	System string
	User   string
}

// Client abstracts the generative model so fixtures can stand in for the
// real API during tests and demo runs.
type Client interface {
	Complete(ctx context.Context, role Role, req Request) (string, error)
}

// DecodeJSON parses a model response that is supposed to be a JSON document.
// Models wrap JSON in markdown fences or emit slightly broken documents often
// enough that the raw text is first de-fenced and then run through jsonrepair
// before unmarshalling.
func DecodeJSON(raw string, v any) error {
	content := cleanJSON(raw)
	if err := json.Unmarshal([]byte(content), v); err == nil {
		return nil
	}
	repaired, err := jsonrepair.JSONRepair(content)
	if err != nil {
		return fmt.Errorf("parse model JSON: %w: %s", ErrInvalidResponse, truncate(content, 200))
	}
	if err := json.Unmarshal([]byte(repaired), v); err != nil {
		return fmt.Errorf("parse model JSON: %w: %s", ErrInvalidResponse, truncate(content, 200))
	}
	return nil
}

// cleanJSON strips markdown fencing from a model response
func cleanJSON(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
