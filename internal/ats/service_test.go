package ats

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spigell/ats-screener/internal/profile"
	"github.com/spigell/ats-screener/internal/scoring"
)

type stubParser struct {
	resume    *profile.Resume
	job       *profile.JobDescription
	err       error
	resumeReq []string
	jobReq    []string
}

func (s *stubParser) ParseResume(_ context.Context, text string) (*profile.Resume, error) {
	s.resumeReq = append(s.resumeReq, text)
	return s.resume, s.err
}

func (s *stubParser) ParseJob(_ context.Context, text string) (*profile.JobDescription, error) {
	s.jobReq = append(s.jobReq, text)
	return s.job, s.err
}

type stubEvaluator struct {
	evaluation *profile.Evaluation
	err        error
}

func (s *stubEvaluator) Evaluate(context.Context, *profile.Resume, *profile.JobDescription) (*profile.Evaluation, error) {
	return s.evaluation, s.err
}

func validResume() *profile.Resume {
	return &profile.Resume{
		Name:   "Jane Doe",
		Skills: []string{"Go", "Kubernetes"},
		Projects: []profile.Project{
			{Title: "Payments gateway", Description: "Built a PCI compliant payments gateway in Go"},
		},
	}
}

func TestAssess(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		resume        *profile.Resume
		evaluation    *profile.Evaluation
		overall       float64
		match         string
		qualification string
		validProjects bool
	}{
		{
			name:          "qualified with projects",
			resume:        validResume(),
			evaluation:    &profile.Evaluation{ExperienceScore: 8, SkillsScore: 7, EducationScore: 6, ProjectsScore: 9},
			overall:       7.6,
			match:         "76.0%",
			qualification: "Qualified",
			validProjects: true,
		},
		{
			name:          "projects weight redistributed",
			resume:        &profile.Resume{Name: "Jane Doe", Projects: []profile.Project{{Title: "Blog", Description: "NA"}}},
			evaluation:    &profile.Evaluation{ExperienceScore: 8, SkillsScore: 7, EducationScore: 6, ProjectsScore: 9},
			overall:       7.3,
			match:         "73.0%",
			qualification: "Qualified",
		},
		{
			name:          "experience gate",
			resume:        validResume(),
			evaluation:    &profile.Evaluation{ExperienceScore: 6, SkillsScore: 10, EducationScore: 10, ProjectsScore: 10},
			overall:       8.8,
			match:         "88.0%",
			qualification: "Not Qualified - Experience Gap",
			validProjects: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			parser := &stubParser{resume: tt.resume, job: &profile.JobDescription{Title: "Backend Engineer"}}
			svc, err := NewService(parser, &stubEvaluator{evaluation: tt.evaluation}, scoring.DefaultWeights, nil)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			got, err := svc.Assess(context.Background(), "resume text", "job text")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if got.Result.OverallWeightedScore != tt.overall {
				t.Fatalf("expected overall %.1f, got %v", tt.overall, got.Result.OverallWeightedScore)
			}
			if got.Result.MatchPercentageString() != tt.match {
				t.Fatalf("expected match %s, got %s", tt.match, got.Result.MatchPercentageString())
			}
			if got.Result.Qualification.String() != tt.qualification {
				t.Fatalf("expected %q, got %q", tt.qualification, got.Result.Qualification)
			}
			if got.HasValidProjects != tt.validProjects {
				t.Fatalf("expected has valid projects %v", tt.validProjects)
			}
			if got.ID == "" || got.Candidate != "Jane Doe" || got.Job != "Backend Engineer" {
				t.Fatalf("unexpected assessment metadata: %+v", got)
			}
			if len(parser.resumeReq) != 1 || len(parser.jobReq) != 1 {
				t.Fatalf("expected one parse per document, got %d/%d", len(parser.resumeReq), len(parser.jobReq))
			}
		})
	}
}

func TestAssessWithoutAI(t *testing.T) {
	t.Parallel()

	svc, err := NewService(nil, nil, scoring.DefaultWeights, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := svc.Assess(context.Background(), "resume", "job"); !errors.Is(err, ErrAINotConfigured) {
		t.Fatalf("expected ErrAINotConfigured, got %v", err)
	}
	if svc.AIEnabled() {
		t.Fatalf("expected AI to be disabled")
	}
}

func TestAssessErrors(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	job := &profile.JobDescription{Title: "Backend Engineer"}

	tests := []struct {
		name      string
		parser    *stubParser
		evaluator *stubEvaluator
		resume    string
		want      error
	}{
		{
			name:      "empty resume",
			parser:    &stubParser{job: job},
			evaluator: &stubEvaluator{},
			resume:    "   ",
			want:      ErrEmptyDocument,
		},
		{
			name:      "parser failure",
			parser:    &stubParser{err: boom},
			evaluator: &stubEvaluator{},
			resume:    "resume",
			want:      boom,
		},
		{
			name:      "evaluator failure",
			parser:    &stubParser{resume: validResume(), job: job},
			evaluator: &stubEvaluator{err: boom},
			resume:    "resume",
			want:      boom,
		},
		{
			name:   "out of range score",
			parser: &stubParser{resume: validResume(), job: job},
			evaluator: &stubEvaluator{evaluation: &profile.Evaluation{
				ExperienceScore: 11, SkillsScore: 7, EducationScore: 6, ProjectsScore: 9,
			}},
			resume: "resume",
			want:   scoring.ErrInvalidScoreRange,
		},
		{
			name:   "out of range score is a model failure",
			parser: &stubParser{resume: validResume(), job: job},
			evaluator: &stubEvaluator{evaluation: &profile.Evaluation{
				ExperienceScore: 85, SkillsScore: 7, EducationScore: 6, ProjectsScore: 9,
			}},
			resume: "resume",
			want:   ErrInvalidModelOutput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc, err := NewService(tt.parser, tt.evaluator, scoring.DefaultWeights, nil)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if _, err := svc.Assess(context.Background(), tt.resume, "job"); !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestNewServiceRejectsBadWeights(t *testing.T) {
	t.Parallel()

	if _, err := NewService(nil, nil, scoring.Weights{Experience: 0.5, Skills: 0.2}, nil); !errors.Is(err, scoring.ErrInvalidWeightSum) {
		t.Fatalf("expected ErrInvalidWeightSum, got %v", err)
	}
	if _, err := NewService(nil, nil, scoring.Weights{Experience: 1.5, Skills: -0.5}, nil); !errors.Is(err, scoring.ErrInvalidScoreRange) {
		t.Fatalf("expected ErrInvalidScoreRange, got %v", err)
	}
}

func TestScoreOnly(t *testing.T) {
	t.Parallel()

	svc, err := NewService(nil, nil, scoring.DefaultWeights, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := svc.ScoreOnly(scoring.Input{
		ExperienceScore:  8,
		SkillsScore:      7,
		EducationScore:   6,
		ProjectsScore:    9,
		HasValidProjects: true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.OverallWeightedScore != 7.6 || got.EffectiveWeights != scoring.DefaultWeights {
		t.Fatalf("unexpected result: %+v", got)
	}

	_, err = svc.ScoreOnly(scoring.Input{
		ExperienceScore: 8,
		Weights:         scoring.Weights{Experience: 0.9, Skills: 0.9},
	})
	if !errors.Is(err, scoring.ErrInvalidWeightSum) {
		t.Fatalf("expected ErrInvalidWeightSum, got %v", err)
	}
}

func TestScoreAssessment(t *testing.T) {
	t.Parallel()

	svc, err := NewService(nil, nil, scoring.DefaultWeights, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	svc.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }

	a, err := svc.ScoreAssessment(scoring.Input{ExperienceScore: 8, SkillsScore: 8, EducationScore: 7, ProjectsScore: 8, HasValidProjects: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	p := a.Payload()
	if p.ExperienceScore != 8 || p.SkillsScore != 8 || p.EducationScore != 7 || p.ProjectsScore != 8 {
		t.Fatalf("unexpected sub-scores: %+v", p)
	}
	if p.OverallWeightedScore != 7.9 || p.Weights != scoring.DefaultWeights {
		t.Fatalf("unexpected result: %+v", p)
	}
	if p.ID == "" || !p.CreatedAt.Equal(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected id and timestamp, got %q %v", p.ID, p.CreatedAt)
	}

	if _, err := svc.ScoreAssessment(scoring.Input{ExperienceScore: 12}); !errors.Is(err, scoring.ErrInvalidScoreRange) {
		t.Fatalf("expected range error, got %v", err)
	}
}

func TestAssessmentJSON(t *testing.T) {
	t.Parallel()

	svc, err := NewService(
		&stubParser{resume: validResume(), job: &profile.JobDescription{Title: "Backend Engineer"}},
		&stubEvaluator{evaluation: &profile.Evaluation{
			ExperienceScore: 8, SkillsScore: 5, EducationScore: 6, ProjectsScore: 9, RequirementCoverage: 55,
		}},
		scoring.DefaultWeights,
		nil,
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	svc.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }

	assessment, err := svc.Assess(context.Background(), "resume", "job")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := json.Marshal(assessment)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	// 8*0.3 + 5*0.4 + 6*0.1 + 9*0.2 = 6.8
	want := map[string]any{
		"Overall_Weighted_Score": 6.8,
		"Match_Percentage":       "68.0%",
		"Qualification_Status":   "Not Qualified - Skill Gaps",
		"Requirement_Coverage":   55.0,
		"Skills_Score":           5.0,
		"created_at":             "2024-05-01T12:00:00Z",
	}
	for key, value := range want {
		if decoded[key] != value {
			t.Fatalf("expected %s=%v, got %v", key, value, decoded[key])
		}
	}
}

func TestAssessLogsOutcome(t *testing.T) {
	t.Parallel()

	core, observed := observer.New(zapcore.InfoLevel)
	svc, err := NewService(
		&stubParser{resume: validResume(), job: &profile.JobDescription{Title: "Backend Engineer"}},
		&stubEvaluator{evaluation: &profile.Evaluation{ExperienceScore: 8, SkillsScore: 7, EducationScore: 6, ProjectsScore: 9}},
		scoring.DefaultWeights,
		zap.New(core),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := svc.Assess(context.Background(), "resume", "job"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	entries := observed.FilterMessage("assessment completed").All()
	if len(entries) != 1 {
		t.Fatalf("expected one log entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["candidate"] != "Jane Doe" || fields["job"] != "Backend Engineer" {
		t.Fatalf("unexpected fields: %v", fields)
	}
	if status, _ := fields["qualification_status"].(string); !strings.HasPrefix(status, "Qualified") {
		t.Fatalf("unexpected status field: %v", fields["qualification_status"])
	}
}
