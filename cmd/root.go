package cmd

import (
	"errors"
	"fmt"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/spigell/ats-screener/internal/scoring"
)

const (
	app = "ats-screener"
)

type Config struct {
	Weights   *WeightsConfig   `mapstructure:"weights"`
	AI        *AIConfig        `mapstructure:"ai"`
	Screening *ScreeningConfig `mapstructure:"screening"`
	Server    *ServerConfig    `mapstructure:"server"`
}

// WeightsConfig is the rubric weightage in percent.
type WeightsConfig struct {
	Experience float64 `mapstructure:"experience" validate:"gte=0,lte=100"`
	Skills     float64 `mapstructure:"skills" validate:"gte=0,lte=100"`
	Education  float64 `mapstructure:"education" validate:"gte=0,lte=100"`
	Projects   float64 `mapstructure:"projects" validate:"gte=0,lte=100"`
}

type AIConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Provider string        `mapstructure:"provider" validate:"omitempty,oneof=gemini"`
	Gemini   *GeminiConfig `mapstructure:"gemini"`
}

type GeminiConfig struct {
	APIKey       string `mapstructure:"api-key" json:"-"`
	APIKeyFile   string `mapstructure:"api-key-file"`
	Model        string `mapstructure:"model"`
	MaxRetries   int    `mapstructure:"max-retries" validate:"gte=0"`
	MaxLogLength int    `mapstructure:"max-log-length" validate:"gte=0"`
}

type ScreeningConfig struct {
	HistoryFile   string  `mapstructure:"history-file"`
	MinimumScore  float64 `mapstructure:"minimum-score" validate:"gte=0,lte=10"`
	QualifiedOnly bool    `mapstructure:"qualified-only"`
	Concurrency   int     `mapstructure:"concurrency" validate:"gte=0"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "ats-screener scores resumes against job descriptions the way an applicant tracking system does",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("ai.gemini.api-key-file", "GEMINI_API_KEY_FILE"); err != nil {
		log.Fatalf("binding GEMINI_API_KEY_FILE environment variable: %v", err)
	}

	setDefaults()

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is ats-screener.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func setDefaults() {
	// Percentages of scoring.DefaultWeights.
	viper.SetDefault("weights.experience", 30)
	viper.SetDefault("weights.skills", 40)
	viper.SetDefault("weights.education", 10)
	viper.SetDefault("weights.projects", 20)

	viper.SetDefault("ai.enabled", true)
	viper.SetDefault("ai.provider", "gemini")
	viper.SetDefault("ai.gemini.max-retries", 3)
	viper.SetDefault("ai.gemini.max-log-length", 2000)

	viper.SetDefault("screening.concurrency", 4)
	viper.SetDefault("server.addr", ":8080")
}

func initConfig() {
	// .env is optional; real environment variables win.
	_ = godotenv.Load()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	// Without an explicit --config the file is optional and defaults apply.
	// We can't proceed if the config file parsed with error.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return
		}
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	if config == nil {
		return config, nil
	}

	if err := validator.New().Struct(config); err != nil {
		return config, fmt.Errorf("invalid config: %w", err)
	}

	return config, nil
}

func (w *WeightsConfig) toWeights() scoring.Weights {
	if w == nil {
		return scoring.DefaultWeights
	}
	return scoring.WeightsFromPercentages(w.Experience, w.Skills, w.Education, w.Projects)
}
