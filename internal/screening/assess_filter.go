package screening

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spigell/ats-screener/internal/ats"
	"github.com/spigell/ats-screener/internal/profile"
)

const defaultConcurrency = 4

// Assessor parses and evaluates a single resume. *ats.Service implements it.
type Assessor interface {
	ParseResume(ctx context.Context, text string) (*profile.Resume, error)
	AssessParsed(ctx context.Context, resume *profile.Resume, job *profile.JobDescription) (*ats.Assessment, error)
}

type assessFilter struct {
	enabled bool
	reason  string
	config  *AssessConfig
	deps    *AssessDeps
}

type AssessConfig struct {
	Enabled     bool
	Concurrency int
}

type AssessDeps struct {
	Logger   *zap.Logger
	Assessor Assessor
	Job      *profile.JobDescription
}

// NewAssess creates the step that assesses every candidate against the job.
func NewAssess(cfg *AssessConfig, deps *AssessDeps) Filter {
	return &assessFilter{
		enabled: cfg.Enabled,
		config:  cfg,
		deps:    deps,
	}
}

func (f *assessFilter) Name() string { return "assess" }

func (f *assessFilter) Disable(reason string) {
	f.enabled = false
	f.reason = reason
}

func (f *assessFilter) IsEnabled() bool { return f.enabled }

func (f *assessFilter) Validate() error {
	if f.deps == nil {
		return fmt.Errorf("deps are not initialized: step is not usable")
	}
	if f.deps.Assessor == nil {
		return fmt.Errorf("assessor is required when assessment is enabled")
	}
	if f.deps.Job == nil {
		return fmt.Errorf("parsed job description is required")
	}
	if f.deps.Logger == nil {
		return fmt.Errorf("logger is required")
	}
	return nil
}

// Apply assesses candidates concurrently. A failed assessment keeps the
// candidate with the error recorded.
func (f *assessFilter) Apply(ctx context.Context, c *Candidates) (*Candidates, Step, error) {
	initial := c.Len()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(f.concurrency())

	for _, candidate := range c.Items {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			f.assess(gctx, candidate)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return c, Step{}, err
	}
	if err := ctx.Err(); err != nil {
		return c, Step{}, err
	}

	failed := 0
	for _, candidate := range c.Items {
		if candidate.Error != "" {
			failed++
		}
	}

	f.deps.Logger.Info("assessment completed",
		zap.Int("candidates", initial),
		zap.Int("failed", failed),
	)

	return c, Step{Initial: initial, Dropped: 0, Left: c.Len()}, nil
}

func (f *assessFilter) assess(ctx context.Context, candidate *Candidate) {
	log := f.deps.Logger.With(zap.String("candidate", candidate.Name))

	resume, err := f.deps.Assessor.ParseResume(ctx, candidate.Text)
	if err != nil {
		log.Warn("resume parsing failed", zap.Error(err))
		candidate.Error = err.Error()
		return
	}

	assessment, err := f.deps.Assessor.AssessParsed(ctx, resume, f.deps.Job)
	if err != nil {
		log.Warn("AI evaluation failed", zap.Error(err))
		candidate.Error = err.Error()
		return
	}

	candidate.Assessment = assessment
	candidate.Error = ""
}

func (f *assessFilter) concurrency() int {
	if f.config == nil || f.config.Concurrency <= 0 {
		return defaultConcurrency
	}
	return f.config.Concurrency
}

func (f *assessFilter) Status() Status {
	details := map[string]string{
		"concurrency": strconv.Itoa(f.concurrency()),
	}
	if f.deps != nil && f.deps.Job != nil && f.deps.Job.Title != "" {
		details["job"] = f.deps.Job.Title
	}
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason, Details: details}
}
