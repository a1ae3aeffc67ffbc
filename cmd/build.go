package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/ats-screener/internal/ai"
	"github.com/spigell/ats-screener/internal/ai/gemini"
	"github.com/spigell/ats-screener/internal/ats"
	"github.com/spigell/ats-screener/internal/logger"
	"github.com/spigell/ats-screener/internal/secrets"
)

const (
	outputText = "text"
	outputJSON = "json"
)

// setup builds the logger and reads the configuration. Failures are fatal.
func setup() (*zap.Logger, *Config) {
	l, err := logger.New(app, viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		l.Fatal("getting a config", zap.Error(err))
	}
	if config == nil {
		l.Fatal("config is required")
	}

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	l.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	return l, config
}

func newAssistant(ctx context.Context, cfg *AIConfig, l *zap.Logger) (ai.Assistant, error) {
	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))
	if provider != "" && provider != "gemini" {
		return nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}

	gcfg := cfg.Gemini
	if gcfg == nil {
		gcfg = &GeminiConfig{}
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name:  "gemini api key",
		File:  gcfg.APIKeyFile,
		Env:   "GEMINI_API_KEY",
		Value: gcfg.APIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set ai.gemini.api-key-file or GEMINI_API_KEY_FILE)", err)
	}

	genLogger := logger.WithCommonFields(l, "gemini", gcfg.Model).With(
		zap.Int("ai_retry_attempts", gcfg.MaxRetries),
	)

	generator, err := gemini.NewGenerator(ctx, apiKey, gcfg.Model, gcfg.MaxRetries, genLogger)
	if err != nil {
		return nil, err
	}

	return gemini.NewAssistant(generator, gcfg.MaxLogLength, logger.WithCommonFields(l, "gemini", generator.Model())), nil
}

// newService builds the ats service. When requireAI is false an assistant
// that cannot be built only disables the LLM backed operations.
func newService(ctx context.Context, config *Config, l *zap.Logger, requireAI bool) (*ats.Service, error) {
	weights := config.Weights.toWeights()

	if config.AI == nil || !config.AI.Enabled {
		if requireAI {
			return nil, fmt.Errorf("ai is disabled in the configuration (ai.enabled)")
		}
		l.Info("ai is disabled; only raw score calculation is available")
		return ats.NewService(nil, nil, weights, l)
	}

	assistant, err := newAssistant(ctx, config.AI, l)
	if err != nil {
		if requireAI {
			return nil, fmt.Errorf("building ai assistant: %w", err)
		}
		l.Warn("skipping ai assistant", zap.Error(err))
		return ats.NewService(nil, nil, weights, l)
	}

	l.Info("ai assistant is ready", logger.CommonFields(config.AI.Provider, assistant.Model())...)

	return ats.NewService(assistant, assistant, weights, l)
}
