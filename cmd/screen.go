package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/ats-screener/internal/document"
	"github.com/spigell/ats-screener/internal/report"
	"github.com/spigell/ats-screener/internal/screening"
)

const (
	PromptRanking        = "Show ranking"
	PromptReportByStatus = "Report by status"
	PromptDetails        = "Show candidate details"
	PromptResultsToFile  = "Dump results to file"
	PromptExit           = "Exit"
	PromptBack           = "back"
)

var errExit = errors.New("exit requested")

var prompt = promptui.Select{
	Label: "What next?",
	Items: []string{PromptRanking, PromptReportByStatus, PromptDetails, PromptResultsToFile, PromptExit},
}

var screenCmd = &cobra.Command{
	Use:   "screen <job-file> <resumes-dir>",
	Short: "Screen every resume in a directory against a job description and rank them",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		screen(cmd, args[0], args[1])
	},
}

func init() {
	rootCmd.AddCommand(screenCmd)

	screenCmd.Flags().BoolP("rescreen", "f", false, "screen resumes again even if they are in the history file")
	screenCmd.Flags().BoolP("yes", "y", false, "do not ask for actions, print the ranking and exit")
	screenCmd.Flags().StringP("history-file", "e", "", "file with already screened resumes. Default is unset.")
	screenCmd.Flags().Float64("minimum-score", 0, "drop candidates with a lower overall score")
	screenCmd.Flags().Bool("qualified-only", false, "keep only qualified candidates")
	screenCmd.Flags().Int("concurrency", 0, "number of resumes assessed in parallel")

	viper.BindPFlag("screening.history-file", screenCmd.Flags().Lookup("history-file"))
	viper.BindPFlag("screening.minimum-score", screenCmd.Flags().Lookup("minimum-score"))
	viper.BindPFlag("screening.qualified-only", screenCmd.Flags().Lookup("qualified-only"))
	viper.BindPFlag("screening.concurrency", screenCmd.Flags().Lookup("concurrency"))
}

func screen(cmd *cobra.Command, jobPath, resumesDir string) {
	ctx := context.Background()

	logger, config := setup()

	logger.Info("starting the screening", zap.String("version", version))

	jobDoc, err := document.Load(jobPath)
	if err != nil {
		logger.Fatal("loading job description", zap.Error(err))
	}

	docs, err := document.LoadDir(resumesDir)
	if err != nil {
		logger.Fatal("loading resumes", zap.Error(err))
	}

	if len(docs) == 0 {
		logger.Info("exiting", zap.String("reason", "no resumes found"), zap.String("dir", resumesDir))
		return
	}

	logger.Info("resumes loaded", zap.Int("count", len(docs)))

	svc, err := newService(ctx, config, logger, true)
	if err != nil {
		logger.Fatal("building the screener", zap.Error(err))
	}

	job, err := svc.ParseJob(ctx, jobDoc.Text)
	if err != nil {
		logger.Fatal("parsing job description", zap.Error(err))
	}

	rescreen, _ := cmd.Flags().GetBool("rescreen")
	steps := screening.Steps(screeningConfig(config, jobDoc.Name, rescreen), logger, svc, job)

	candidates, err := screening.Run(ctx, logger, steps, screening.FromDocuments(docs))
	if err != nil {
		logger.Fatal("screening failed", zap.Error(err))
	}

	report.Steps(os.Stdout, screening.Describe(steps))
	fmt.Println()

	if candidates.Len() == 0 {
		logger.Info("exiting", zap.String("reason", "no candidates left after screening"))
		return
	}

	report.Candidates(os.Stdout, candidates)

	if yes, _ := cmd.Flags().GetBool("yes"); yes {
		return
	}

	for {
		_, action, err := prompt.Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}

		if err := handleAction(action, logger, candidates); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}
	}
}

func screeningConfig(config *Config, job string, rescreen bool) screening.Config {
	cfg := screening.Config{Job: job, Rescreen: rescreen}
	if sc := config.Screening; sc != nil {
		cfg.HistoryFile = sc.HistoryFile
		cfg.MinimumScore = sc.MinimumScore
		cfg.QualifiedOnly = sc.QualifiedOnly
		cfg.Concurrency = sc.Concurrency
	}
	return cfg
}

func handleAction(action string, logger *zap.Logger, candidates *screening.Candidates) error {
	switch action {
	case PromptRanking:
		report.Candidates(os.Stdout, candidates)
		return nil
	case PromptReportByStatus:
		pretty, _ := json.MarshalIndent(report.ByStatus(candidates), "", "  ")
		logger.Info(string(pretty), zap.Int("candidates count", candidates.Len()))
		return nil
	case PromptDetails:
		return showDetails(candidates)
	case PromptResultsToFile:
		filename, err := report.DumpToTmpFile(candidates)
		if err != nil {
			return fmt.Errorf("dump results to file: %w", err)
		}
		logger.Info("dumping result to file", zap.String("filename", filename))
		return nil
	case PromptExit:
		logger.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

func showDetails(candidates *screening.Candidates) error {
	for {
		items := make([]string, 0, candidates.Len()+1)
		for _, c := range candidates.Items {
			items = append(items, c.Name)
		}

		candidatePrompt := promptui.Select{
			Label: "Choose a candidate and press ENTER",
			Items: append(items, PromptBack),
		}

		_, selected, err := candidatePrompt.Run()
		if err != nil {
			return err
		}

		if selected == PromptBack {
			return nil
		}

		candidate := candidates.FindByName(selected)
		if candidate == nil {
			return fmt.Errorf("there is no such candidate %s", selected)
		}

		if candidate.Assessment == nil {
			fmt.Printf("%s: assessment failed: %s\n\n", candidate.Name, candidate.Error)
			continue
		}

		report.Assessment(os.Stdout, candidate.Assessment)
		fmt.Println()
	}
}
