// Package workflow drives one script run through an explicit state machine:
//
//	Researching → Drafting → Scoring → Deciding
//	                            ↑          |
//	                            Refining ←─┘   (bounded by the profile budget)
//	                                       |
//	                                 Finalized(succeeded|exhausted|failed)
//
// The collaborators (research service, draft generator, scorer) are injected
// interfaces so fixtures can replace the live services in tests.
package workflow

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/sinu-sinu/content-automation-ai/config"
	"github.com/sinu-sinu/content-automation-ai/profile"
	"github.com/sinu-sinu/content-automation-ai/retry"
	"github.com/sinu-sinu/content-automation-ai/types"
)

// ResearchService returns a research brief for a topic. Called once per run;
// failures are fatal to the run with no retry inside the core.
type ResearchService interface {
	FetchBrief(ctx context.Context, topic types.Topic) (*types.ResearchBrief, error)
}

// DraftGenerator produces the initial draft (prior == nil) or a refinement
// of the prior draft guided by the scorer's feedback.
type DraftGenerator interface {
	Generate(ctx context.Context, brief *types.ResearchBrief, prior *types.ScriptDraft, feedback []string, format string) (types.ScriptDraft, error)
}

// DraftScorer scores one draft version. It returns an error only on context
// cancellation; model-call failures degrade inside the scorer instead.
type DraftScorer interface {
	Score(ctx context.Context, draft types.ScriptDraft) (types.ValidationScore, error)
}

// Orchestrator sequences research, drafting, scoring and bounded refinement
// for a single channel profile. One run is fully sequential; independent
// Orchestrators may run concurrently since they share nothing mutable.
type Orchestrator struct {
	research  ResearchService
	generator DraftGenerator
	scorer    DraftScorer
	prof      *profile.StyleProfile
	format    string
	genRetry  retry.Config
}

// New wires an Orchestrator from its collaborators.
func New(cfg *config.Config, research ResearchService, generator DraftGenerator, scorer DraftScorer, prof *profile.StyleProfile, format string) *Orchestrator {
	return &Orchestrator{
		research:  research,
		generator: generator,
		scorer:    scorer,
		prof:      prof,
		format:    format,
		genRetry: retry.Config{
			Attempts: cfg.Workflow.LocalRetryAttempts,
			Backoff:  time.Duration(cfg.Workflow.RetryBackoffMs) * time.Millisecond,
			OnRetry: func(attempt int, err error) {
				log.Printf("[workflow] Generation attempt %d failed: %v — retrying", attempt, err)
			},
		},
	}
}

// Run executes the complete workflow for one topic and returns only the
// terminal result; no partial results are exposed mid-run. The returned
// error mirrors Result.Err and is nil for succeeded and exhausted runs.
func (o *Orchestrator) Run(ctx context.Context, topic types.Topic) (*Result, error) {
	runID := uuid.NewString()[:8]
	ws := newWorkflowState(runID, topic, o.prof)

	log.Printf("[workflow] 🎬 Run %s starting — channel: %s, format: %s", runID, o.prof.ChannelName, o.format)

	var pending *types.ScriptDraft

	for !ws.terminal() {
		if err := ctx.Err(); err != nil {
			o.fail(ws, o.currentStep(ws), err)
			break
		}

		switch ws.state {
		case StateResearching:
			brief, err := o.research.FetchBrief(ctx, topic)
			if err != nil {
				// research is cheap to re-invoke from outside; never retried here
				o.fail(ws, StepResearch, err)
				continue
			}
			ws.brief = brief
			ws.topic = brief.Topic
			_ = ws.transition(StateDrafting)

		case StateDrafting:
			draft, err := retry.Do(ctx, o.genRetry, func(ctx context.Context) (types.ScriptDraft, error) {
				return o.generator.Generate(ctx, ws.brief, nil, nil, o.format)
			})
			if err != nil {
				o.fail(ws, StepDraft, err)
				continue
			}
			pending = &draft
			_ = ws.transition(StateScoring)

		case StateScoring:
			score, err := o.scorer.Score(ctx, *pending)
			if err != nil {
				o.fail(ws, StepScore, err)
				continue
			}
			_ = ws.addIteration(*pending, score)
			pending = nil
			_ = ws.transition(StateDeciding)

		case StateDeciding:
			last := ws.latest()
			switch {
			case last.Score.Passed:
				log.Printf("[workflow] Score %d ≥ %d, script accepted", last.Score.Combined, o.prof.Threshold)
				_ = ws.finalize(StatusSucceeded, nil)
			case ws.refinementsDone() < o.prof.MaxRefinements:
				log.Printf("[workflow] Score %d < %d, refining (%d of %d)",
					last.Score.Combined, o.prof.Threshold, ws.refinementsDone()+1, o.prof.MaxRefinements)
				_ = ws.transition(StateRefining)
			default:
				log.Printf("[workflow] Refinement budget spent, delivering best draft")
				_ = ws.finalize(StatusExhausted, nil)
			}

		case StateRefining:
			prior := ws.latest()
			draft, err := retry.Do(ctx, o.genRetry, func(ctx context.Context) (types.ScriptDraft, error) {
				return o.generator.Generate(ctx, ws.brief, &prior.Draft, prior.Score.Feedback, o.format)
			})
			if err != nil {
				o.fail(ws, StepRefine, err)
				continue
			}
			pending = &draft
			_ = ws.transition(StateScoring)
		}
	}

	result := buildResult(ws, o.format)
	log.Printf("[workflow] %s Run %s finished: %s", statusEmoji(result.Status), runID, result.Summary)

	if result.Err != nil {
		return result, result.Err
	}
	return result, nil
}

func (o *Orchestrator) fail(ws *workflowState, step Step, err error) {
	runErr := Classify(step, err)
	log.Printf("[workflow] ❌ %v", runErr)
	_ = ws.finalize(StatusFailed, runErr)
}

// currentStep maps the in-flight state to the step name reported on
// cancellation.
func (o *Orchestrator) currentStep(ws *workflowState) Step {
	switch ws.state {
	case StateResearching:
		return StepResearch
	case StateDrafting:
		return StepDraft
	case StateScoring, StateDeciding:
		return StepScore
	default:
		return StepRefine
	}
}

func statusEmoji(s Status) string {
	switch s {
	case StatusSucceeded:
		return "✅"
	case StatusExhausted:
		return "🟡"
	default:
		return "❌"
	}
}
