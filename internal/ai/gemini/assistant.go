package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	_ "embed"

	"go.uber.org/zap"

	"github.com/spigell/ats-screener/internal/profile"
	"github.com/spigell/ats-screener/internal/utils"
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, system, prompt string) (string, error)
	Model() string
}

// ErrEmptyDocument is returned when there is no text to send to the model.
var ErrEmptyDocument = errors.New("document text is empty")

var (
	//go:embed prompts/system.md
	systemPrompt string
	//go:embed prompts/resume.md
	resumePrompt string
	//go:embed prompts/job.md
	jobPrompt string
	//go:embed prompts/evaluate.md
	evaluatePrompt string
)

const defaultMaxLogLength = 200

// Assistant parses and evaluates documents through a Gemini generator.
type Assistant struct {
	generator contentGenerator
	logger    *zap.Logger
	maxLogLen int
}

func NewAssistant(generator contentGenerator, maxLogLength int, logger *zap.Logger) *Assistant {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Assistant{
		generator: generator,
		logger:    logger,
		maxLogLen: maxLogLength,
	}
}

func (a *Assistant) Model() string {
	if a == nil || a.generator == nil {
		return ""
	}
	return a.generator.Model()
}

func (a *Assistant) ParseResume(ctx context.Context, text string) (*profile.Resume, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("parse resume: %w", ErrEmptyDocument)
	}

	raw, err := a.generate(ctx, "parse_resume", fillTemplate(resumePrompt, map[string]string{
		"RESUME_TEXT": text,
	}))
	if err != nil {
		return nil, fmt.Errorf("parse resume: %w", err)
	}

	return profile.DecodeResume(raw)
}

func (a *Assistant) ParseJob(ctx context.Context, text string) (*profile.JobDescription, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("parse job description: %w", ErrEmptyDocument)
	}

	raw, err := a.generate(ctx, "parse_job", fillTemplate(jobPrompt, map[string]string{
		"JOB_TEXT": text,
	}))
	if err != nil {
		return nil, fmt.Errorf("parse job description: %w", err)
	}

	return profile.DecodeJob(raw)
}

func (a *Assistant) Evaluate(ctx context.Context, resume *profile.Resume, job *profile.JobDescription) (*profile.Evaluation, error) {
	if resume == nil {
		return nil, fmt.Errorf("resume is required")
	}
	if job == nil {
		return nil, fmt.Errorf("job description is required")
	}

	resumeJSON, err := json.MarshalIndent(resume, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal resume payload: %w", err)
	}

	jobJSON, err := json.MarshalIndent(job, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal job payload: %w", err)
	}

	raw, err := a.generate(ctx, "evaluate", fillTemplate(evaluatePrompt, map[string]string{
		"RESUME_JSON": string(resumeJSON),
		"JOB_JSON":    string(jobJSON),
	}), zap.String("job_title", job.Title))
	if err != nil {
		return nil, fmt.Errorf("evaluate resume: %w", err)
	}

	return profile.DecodeEvaluation(raw)
}

func (a *Assistant) generate(ctx context.Context, task, prompt string, fields ...zap.Field) (map[string]any, error) {
	if a.generator == nil {
		return nil, errors.New("gemini generator is not configured")
	}

	a.logger.Debug("gemini generate content request", append([]zap.Field{
		zap.String("task", task),
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", utils.TruncateForLog(prompt, a.maxLogLen)),
	}, fields...)...)

	raw, err := a.generator.GenerateContent(ctx, systemPrompt, prompt)
	if err != nil {
		return nil, err
	}

	a.logger.Debug("gemini generate content response",
		zap.String("task", task),
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", utils.TruncateForLog(raw, a.maxLogLen)),
	)

	return parseObject(raw)
}

// fillTemplate substitutes {{KEY}} placeholders in one pass, so inserted
// document text is never expanded again.
func fillTemplate(template string, values map[string]string) string {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	oldnew := make([]string, 0, 2*len(keys))
	for _, key := range keys {
		oldnew = append(oldnew, "{{"+key+"}}", values[key])
	}
	return strings.NewReplacer(oldnew...).Replace(template)
}

func parseObject(raw string) (map[string]any, error) {
	cleaned := extractJSON(raw)

	var data map[string]any
	if err := json.Unmarshal([]byte(cleaned), &data); err != nil {
		return nil, fmt.Errorf("parse gemini response: %w", err)
	}
	if data == nil {
		return nil, errors.New("parse gemini response: expected a JSON object")
	}

	return data, nil
}

// extractJSON strips code fences and any prose around the outermost object.
func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.TrimSpace(strings.Trim(raw, "`"))

	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start != -1 && end > start {
		return raw[start : end+1]
	}
	return raw
}
