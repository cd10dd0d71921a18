package parser

import (
	"context"
	"log"

	"golang.org/x/sync/errgroup"

	"bidtab/internal/domain"
)

// ExtractionTask is one unit of the fan-out: a prompt pair plus the top-level
// document keys the task owns. Tasks must declare disjoint key sets; an
// overlap is a caller bug. assumptions_or_gaps is implicit and concatenated
// across all tasks, never declared.
type ExtractionTask struct {
	Name   string
	System string
	User   string
	Keys   []string
}

// Orchestrator issues independent extraction tasks concurrently and merges
// their results into one consolidated document.
type Orchestrator struct {
	engine     *Engine
	maxRetries int
}

// NewOrchestrator creates an Orchestrator with the default per-task retry budget.
func NewOrchestrator(engine *Engine) *Orchestrator {
	return &Orchestrator{engine: engine, maxRetries: DefaultMaxRetries}
}

// Run executes all tasks concurrently and merges their outputs in task
// declaration order, so the final document is deterministic regardless of
// completion order. Any task's terminal failure aborts the whole run: the
// consolidated document is unusable if a required section is missing.
func (o *Orchestrator) Run(ctx context.Context, tasks []ExtractionTask) (domain.ExtractionDocument, error) {
	results := make([]map[string]any, len(tasks))

	g, gctx := errgroup.WithContext(ctx)
	for i, t := range tasks {
		g.Go(func() error {
			out, err := o.engine.ExtractJSON(gctx, t.Name, t.System, t.User, o.maxRetries)
			if err != nil {
				return err
			}
			results[i] = out
			return nil
		})
	}

	log.Printf("parser.Orchestrator: running %d extraction tasks", len(tasks))
	if err := g.Wait(); err != nil {
		return nil, err
	}
	log.Printf("parser.Orchestrator: all %d tasks completed", len(tasks))

	return mergeResults(tasks, results), nil
}

// mergeResults builds the consolidated document: a disjoint union over each
// task's declared keys (missing keys become empty objects), plus the
// concatenation of every task's assumptions_or_gaps in task order.
func mergeResults(tasks []ExtractionTask, results []map[string]any) domain.ExtractionDocument {
	doc := domain.ExtractionDocument{}
	gaps := make([]any, 0)

	for i, t := range tasks {
		out := results[i]
		for _, key := range t.Keys {
			if v, ok := out[key]; ok {
				doc[key] = v
			} else {
				doc[key] = map[string]any{}
			}
		}
		if taskGaps, ok := out["assumptions_or_gaps"].([]any); ok {
			gaps = append(gaps, taskGaps...)
		}
	}

	doc["assumptions_or_gaps"] = gaps
	return doc
}
