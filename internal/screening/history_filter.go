package screening

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

const forceFlagSetMsg = "rescreen flag is set"

type historyFilter struct {
	config *HistoryConfig
	deps   *HistoryDeps
}

type HistoryConfig struct {
	Path string
	// Job identifies the job description in the history file.
	Job string
	// Ignore keeps candidates that were already screened.
	Ignore bool
}

type HistoryDeps struct {
	Logger *zap.Logger
}

// NewHistory creates a step that removes candidates already screened against the job.
func NewHistory(cfg *HistoryConfig, deps *HistoryDeps) Filter {
	return &historyFilter{config: cfg, deps: deps}
}

func (f *historyFilter) Name() string { return "history" }

func (f *historyFilter) Disable(string) {}

func (f *historyFilter) IsEnabled() bool { return true }

func (f *historyFilter) Validate() error {
	if f.config == nil {
		return fmt.Errorf("history configuration is required")
	}
	if f.deps == nil || f.deps.Logger == nil {
		return fmt.Errorf("logger is required")
	}
	return nil
}

func (f *historyFilter) Apply(_ context.Context, c *Candidates) (*Candidates, Step, error) {
	initial := c.Len()
	path := strings.TrimSpace(f.config.Path)
	if path == "" {
		return c, Step{Initial: initial, Dropped: 0, Left: c.Len()}, nil
	}

	if f.config.Ignore {
		f.deps.Logger.Info("ignoring screening history", zap.String("reason", forceFlagSetMsg))
		return c, Step{Initial: initial, Dropped: 0, Left: c.Len()}, nil
	}

	history, err := LoadHistory(path)
	if err != nil {
		return c, Step{}, fmt.Errorf("getting screening history from file: %w", err)
	}

	excluded := c.Exclude(history.Candidates(f.config.Job))
	if len(excluded) > 0 {
		f.deps.Logger.Info("excluding candidates based on screening history",
			zap.String("path", path),
			zap.Strings("excluded_candidates", excluded),
			zap.Int("candidates_left", c.Len()),
		)
	}

	return c, Step{Initial: initial, Dropped: len(excluded), Left: c.Len()}, nil
}

func (f *historyFilter) Status() Status {
	details := map[string]string{}
	reason := ""
	if f.config != nil {
		if f.config.Path != "" {
			details["path"] = f.config.Path
		}
		if f.config.Ignore {
			reason = "rescreen requested via flag"
		}
	}
	return Status{Name: f.Name(), Enabled: true, Reason: reason, Details: details}
}

type recordFilter struct {
	config *HistoryConfig
	deps   *HistoryDeps
}

// NewRecordHistory creates a step that appends assessed candidates to the
// history file. It never drops candidates.
func NewRecordHistory(cfg *HistoryConfig, deps *HistoryDeps) Filter {
	return &recordFilter{config: cfg, deps: deps}
}

func (f *recordFilter) Name() string { return "record_history" }

func (f *recordFilter) Disable(string) {}

func (f *recordFilter) IsEnabled() bool { return true }

func (f *recordFilter) Validate() error {
	if f.config == nil {
		return fmt.Errorf("history configuration is required")
	}
	if f.deps == nil || f.deps.Logger == nil {
		return fmt.Errorf("logger is required")
	}
	return nil
}

func (f *recordFilter) Apply(_ context.Context, c *Candidates) (*Candidates, Step, error) {
	step := Step{Initial: c.Len(), Dropped: 0, Left: c.Len()}
	path := strings.TrimSpace(f.config.Path)
	if path == "" {
		return c, step, nil
	}

	recorded := c.ToHistory(f.config.Job)
	if len(recorded.Items) == 0 {
		return c, step, nil
	}

	history, err := LoadHistory(path)
	if err != nil {
		return c, Step{}, fmt.Errorf("load screening history: %w", err)
	}
	history.Append(recorded)

	if err := history.ToFile(path); err != nil {
		return c, Step{}, fmt.Errorf("write screening history: %w", err)
	}

	f.deps.Logger.Info("candidates appended to screening history",
		zap.Int("recorded", len(recorded.Items)),
		zap.String("history_file", path),
	)

	return c, step, nil
}

func (f *recordFilter) Status() Status {
	details := map[string]string{}
	if f.config != nil && f.config.Path != "" {
		details["path"] = f.config.Path
	}
	return Status{Name: f.Name(), Enabled: true, Details: details}
}
