// Package ai defines the language-model collaborators the screener depends on.
package ai

import (
	"context"

	"github.com/spigell/ats-screener/internal/profile"
)

// Parser turns free-form documents into the canonical profile schema.
type Parser interface {
	ParseResume(ctx context.Context, text string) (*profile.Resume, error)
	ParseJob(ctx context.Context, text string) (*profile.JobDescription, error)
}

// Evaluator rates a resume against a job description on the 0-10 rubric.
type Evaluator interface {
	Evaluate(ctx context.Context, resume *profile.Resume, job *profile.JobDescription) (*profile.Evaluation, error)
}

// Assistant is implemented by providers that can both parse and evaluate.
type Assistant interface {
	Parser
	Evaluator
	Model() string
}
