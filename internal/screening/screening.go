// Package screening runs a batch of resumes through an ordered list of steps:
// history lookup, assessment, history recording and score based cut-offs.
package screening

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spigell/ats-screener/internal/profile"
)

// Filter represents a single step applied to candidates.
type Filter interface {
	Name() string
	Disable(reason string)
	IsEnabled() bool

	Validate() error
	Apply(ctx context.Context, c *Candidates) (*Candidates, Step, error)
}

// Step describes the result of executing a step.
type Step struct {
	Initial int
	Dropped int
	Left    int
}

// Status represents runtime information about a step.
type Status struct {
	Name    string
	Enabled bool
	Reason  string
	Details map[string]string
}

// statusProvider is implemented by steps that can supply detailed status information.
type statusProvider interface {
	Status() Status
}

// DisableByName marks a step with the provided name as disabled while keeping it in the list.
func DisableByName(steps []Filter, name, reason string) {
	for _, step := range steps {
		if step.Name() == name {
			step.Disable(reason)
		}
	}
}

// Run validates and executes the enabled steps in order and ranks what is left.
func Run(ctx context.Context, logger *zap.Logger, steps []Filter, c *Candidates) (*Candidates, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	for _, step := range steps {
		if !step.IsEnabled() {
			continue
		}
		if err := step.Validate(); err != nil {
			return nil, fmt.Errorf("%s: %w", step.Name(), err)
		}
	}

	for _, step := range steps {
		if !step.IsEnabled() {
			logger.Info("step disabled", zap.String("name", step.Name()))
			continue
		}

		next, info, err := step.Apply(ctx, c)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", step.Name(), err)
		}

		logger.Info("screening step",
			zap.String("name", step.Name()),
			zap.Int("initial", info.Initial),
			zap.Int("dropped", info.Dropped),
			zap.Int("left", info.Left),
		)

		c = next
	}

	c.Rank()

	return c, nil
}

// Describe returns status entries for the provided steps.
func Describe(steps []Filter) []Status {
	statuses := make([]Status, 0, len(steps))
	for _, step := range steps {
		if reporter, ok := step.(statusProvider); ok {
			statuses = append(statuses, reporter.Status())
			continue
		}

		statuses = append(statuses, Status{
			Name:    step.Name(),
			Enabled: step.IsEnabled(),
		})
	}
	return statuses
}

// Config holds the settings of the default pipeline.
type Config struct {
	HistoryFile   string
	Job           string
	Rescreen      bool
	Concurrency   int
	MinimumScore  float64
	QualifiedOnly bool
}

// Steps builds the default pipeline: history, assess, record_history,
// minimum_score and qualified_only.
func Steps(cfg Config, logger *zap.Logger, assessor Assessor, job *profile.JobDescription) []Filter {
	if logger == nil {
		logger = zap.NewNop()
	}
	history := &HistoryConfig{Path: cfg.HistoryFile, Job: cfg.Job, Ignore: cfg.Rescreen}
	historyDeps := &HistoryDeps{Logger: logger}
	scoreDeps := &ScoreFilterDeps{Logger: logger}

	return []Filter{
		NewHistory(history, historyDeps),
		NewAssess(&AssessConfig{Enabled: true, Concurrency: cfg.Concurrency}, &AssessDeps{
			Logger:   logger,
			Assessor: assessor,
			Job:      job,
		}),
		NewRecordHistory(history, historyDeps),
		NewMinimumScore(cfg.MinimumScore, scoreDeps),
		NewQualifiedOnly(cfg.QualifiedOnly, scoreDeps),
	}
}
