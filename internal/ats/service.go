// Package ats wires document parsing, LLM evaluation and scoring into a single
// screening service.
package ats

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spigell/ats-screener/internal/ai"
	"github.com/spigell/ats-screener/internal/logger"
	"github.com/spigell/ats-screener/internal/profile"
	"github.com/spigell/ats-screener/internal/scoring"
)

const unknownCandidate = "unknown candidate"

var (
	// ErrAINotConfigured is returned by operations that need a language model when none is set.
	ErrAINotConfigured = errors.New("ai assistant is not configured")
	// ErrEmptyDocument is returned when a resume or job text is blank.
	ErrEmptyDocument = errors.New("document is empty")
	// ErrInvalidModelOutput is returned when the language model rates a
	// candidate with sub-scores the calculator rejects.
	ErrInvalidModelOutput = errors.New("invalid model output")
)

type Service struct {
	parser    ai.Parser
	evaluator ai.Evaluator
	weights   scoring.Weights
	logger    *zap.Logger
	now       func() time.Time
}

// NewService builds a Service. parser and evaluator may be nil, in which case
// only ScoreOnly is usable.
func NewService(parser ai.Parser, evaluator ai.Evaluator, weights scoring.Weights, l *zap.Logger) (*Service, error) {
	if err := weights.ValidateSum(scoring.DefaultWeightTolerance); err != nil {
		return nil, err
	}
	if err := (scoring.Input{Weights: weights}).Validate(); err != nil {
		return nil, err
	}
	if l == nil {
		l = zap.NewNop()
	}

	return &Service{
		parser:    parser,
		evaluator: evaluator,
		weights:   weights,
		logger:    l,
		now:       time.Now,
	}, nil
}

func (s *Service) Weights() scoring.Weights { return s.weights }

// AIEnabled reports whether parsing and evaluation are available.
func (s *Service) AIEnabled() bool {
	return s.parser != nil && s.evaluator != nil
}

func (s *Service) ParseResume(ctx context.Context, text string) (*profile.Resume, error) {
	if s.parser == nil {
		return nil, ErrAINotConfigured
	}
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("resume: %w", ErrEmptyDocument)
	}

	resume, err := s.parser.ParseResume(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("parse resume: %w", err)
	}
	return resume, nil
}

func (s *Service) ParseJob(ctx context.Context, text string) (*profile.JobDescription, error) {
	if s.parser == nil {
		return nil, ErrAINotConfigured
	}
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("job description: %w", ErrEmptyDocument)
	}

	job, err := s.parser.ParseJob(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("parse job description: %w", err)
	}
	return job, nil
}

// Assess parses both documents and evaluates the resume against the job.
func (s *Service) Assess(ctx context.Context, resumeText, jobText string) (*Assessment, error) {
	if !s.AIEnabled() {
		return nil, ErrAINotConfigured
	}

	job, err := s.ParseJob(ctx, jobText)
	if err != nil {
		return nil, err
	}

	resume, err := s.ParseResume(ctx, resumeText)
	if err != nil {
		return nil, err
	}

	return s.AssessParsed(ctx, resume, job)
}

// AssessParsed evaluates an already parsed resume against a parsed job.
func (s *Service) AssessParsed(ctx context.Context, resume *profile.Resume, job *profile.JobDescription) (*Assessment, error) {
	if s.evaluator == nil {
		return nil, ErrAINotConfigured
	}
	if resume == nil || job == nil {
		return nil, fmt.Errorf("resume and job description are required")
	}

	candidate := resume.DisplayName(unknownCandidate)
	log := logger.WithFields(s.logger, logger.ScreeningFields(candidate, job.Title)...)

	evaluation, err := s.evaluator.Evaluate(ctx, resume, job)
	if err != nil {
		return nil, fmt.Errorf("evaluate %s: %w", candidate, err)
	}

	hasValidProjects := profile.HasValidProjects(resume.Projects)
	result, err := scoring.Score(evaluation.ScoreInput(s.weights, hasValidProjects))
	if err != nil {
		return nil, fmt.Errorf("score %s: %w: %w", candidate, ErrInvalidModelOutput, err)
	}

	assessment := &Assessment{
		ID:               uuid.NewString(),
		Candidate:        candidate,
		Job:              job.Title,
		Resume:           resume,
		JobDescription:   job,
		Evaluation:       evaluation,
		Result:           result,
		HasValidProjects: hasValidProjects,
		Weights:          s.weights,
		CreatedAt:        s.now().UTC(),
	}

	log.Info("assessment completed",
		zap.String(logger.FieldAssessmentID, assessment.ID),
		zap.Float64("overall_weighted_score", result.OverallWeightedScore),
		zap.String("match_percentage", result.MatchPercentageString()),
		zap.Stringer("qualification_status", result.Qualification),
		zap.Bool("has_valid_projects", hasValidProjects),
	)

	return assessment, nil
}

// ScoreOnly validates raw sub-scores and calculates the result without any
// language model. Zero weights fall back to the service weights.
func (s *Service) ScoreOnly(in scoring.Input) (scoring.Result, error) {
	if in.Weights == (scoring.Weights{}) {
		in.Weights = s.weights
	}
	if err := in.Weights.ValidateSum(scoring.DefaultWeightTolerance); err != nil {
		return scoring.Result{}, err
	}
	return scoring.Score(in)
}

// ScoreAssessment is ScoreOnly wrapped into an Assessment. The raw sub-scores
// are carried as the evaluation so reports show what was scored.
func (s *Service) ScoreAssessment(in scoring.Input) (*Assessment, error) {
	result, err := s.ScoreOnly(in)
	if err != nil {
		return nil, err
	}

	weights := in.Weights
	if weights == (scoring.Weights{}) {
		weights = s.weights
	}

	return &Assessment{
		ID: uuid.NewString(),
		Evaluation: &profile.Evaluation{
			ExperienceScore: in.ExperienceScore,
			SkillsScore:     in.SkillsScore,
			EducationScore:  in.EducationScore,
			ProjectsScore:   in.ProjectsScore,
		},
		Result:           result,
		HasValidProjects: in.HasValidProjects,
		Weights:          weights,
		CreatedAt:        s.now().UTC(),
	}, nil
}
