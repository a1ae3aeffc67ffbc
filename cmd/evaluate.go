package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/ats-screener/internal/document"
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate <resume-file> <job-file>",
	Short: "Parse a resume and a job description and assess the match",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		evaluate(cmd, args[0], args[1])
	},
}

func init() {
	rootCmd.AddCommand(evaluateCmd)

	evaluateCmd.Flags().StringP("output", "o", outputText, "output format: text or json")
}

func evaluate(cmd *cobra.Command, resumePath, jobPath string) {
	ctx := context.Background()

	logger, config := setup()

	logger.Info("starting the evaluation", zap.String("version", version))

	resume, err := document.Load(resumePath)
	if err != nil {
		logger.Fatal("loading resume", zap.Error(err))
	}

	job, err := document.Load(jobPath)
	if err != nil {
		logger.Fatal("loading job description", zap.Error(err))
	}

	svc, err := newService(ctx, config, logger, true)
	if err != nil {
		logger.Fatal("building the screener", zap.Error(err))
	}

	assessment, err := svc.Assess(ctx, resume.Text, job.Text)
	if err != nil {
		logger.Fatal("assessing resume", zap.Error(err), zap.String("resume", resumePath), zap.String("job", jobPath))
	}

	output, _ := cmd.Flags().GetString("output")
	if err := printAssessment(os.Stdout, output, assessment); err != nil {
		logger.Fatal("printing result", zap.Error(err))
	}
}
