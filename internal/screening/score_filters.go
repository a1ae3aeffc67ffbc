package screening

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"
)

type minimumScoreFilter struct {
	minimum float64
	deps    *ScoreFilterDeps
}

type ScoreFilterDeps struct {
	Logger *zap.Logger
}

// NewMinimumScore creates a step that drops candidates scoring below minimum.
// Candidates whose assessment failed are kept so the failure is reported.
func NewMinimumScore(minimum float64, deps *ScoreFilterDeps) Filter {
	return &minimumScoreFilter{minimum: minimum, deps: deps}
}

func (f *minimumScoreFilter) Name() string { return "minimum_score" }

func (f *minimumScoreFilter) Disable(string) {}

func (f *minimumScoreFilter) IsEnabled() bool { return f.minimum > 0 }

func (f *minimumScoreFilter) Validate() error {
	if f.minimum > 10 {
		return fmt.Errorf("minimum score %.1f is above the maximum of 10", f.minimum)
	}
	if f.deps == nil || f.deps.Logger == nil {
		return fmt.Errorf("logger is required")
	}
	return nil
}

func (f *minimumScoreFilter) Apply(_ context.Context, c *Candidates) (*Candidates, Step, error) {
	initial := c.Len()
	excluded := c.ExcludeFunc(func(candidate *Candidate) bool {
		return candidate.Assessment != nil && candidate.Assessment.Result.OverallWeightedScore < f.minimum
	})
	if len(excluded) > 0 {
		f.deps.Logger.Info("excluding candidates below minimum score",
			zap.Float64("minimum_score", f.minimum),
			zap.Strings("excluded_candidates", excluded),
			zap.Int("candidates_left", c.Len()),
		)
	}

	return c, Step{Initial: initial, Dropped: len(excluded), Left: c.Len()}, nil
}

func (f *minimumScoreFilter) Status() Status {
	return Status{
		Name:    f.Name(),
		Enabled: f.IsEnabled(),
		Details: map[string]string{"minimum_score": strconv.FormatFloat(f.minimum, 'f', 1, 64)},
	}
}

type qualifiedOnlyFilter struct {
	enabled bool
	reason  string
	deps    *ScoreFilterDeps
}

// NewQualifiedOnly creates a step that keeps only Qualified candidates.
func NewQualifiedOnly(enabled bool, deps *ScoreFilterDeps) Filter {
	return &qualifiedOnlyFilter{enabled: enabled, deps: deps}
}

func (f *qualifiedOnlyFilter) Name() string { return "qualified_only" }

func (f *qualifiedOnlyFilter) Disable(reason string) {
	f.enabled = false
	f.reason = reason
}

func (f *qualifiedOnlyFilter) IsEnabled() bool { return f.enabled }

func (f *qualifiedOnlyFilter) Validate() error {
	if f.deps == nil || f.deps.Logger == nil {
		return fmt.Errorf("logger is required")
	}
	return nil
}

func (f *qualifiedOnlyFilter) Apply(_ context.Context, c *Candidates) (*Candidates, Step, error) {
	initial := c.Len()
	excluded := c.ExcludeFunc(func(candidate *Candidate) bool {
		return !candidate.Assessment.Qualified()
	})
	if len(excluded) > 0 {
		f.deps.Logger.Info("excluding candidates that are not qualified",
			zap.Strings("excluded_candidates", excluded),
			zap.Int("candidates_left", c.Len()),
		)
	}

	return c, Step{Initial: initial, Dropped: len(excluded), Left: c.Len()}, nil
}

func (f *qualifiedOnlyFilter) Status() Status {
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason}
}
