package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/ats-screener/internal/ats"
	"github.com/spigell/ats-screener/internal/report"
	"github.com/spigell/ats-screener/internal/scoring"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Calculate the weighted score and qualification from raw sub-scores",
	Run: func(cmd *cobra.Command, _ []string) {
		score(cmd)
	},
}

func init() {
	rootCmd.AddCommand(scoreCmd)

	scoreCmd.Flags().Float64("experience", 0, "experience score (0-10)")
	scoreCmd.Flags().Float64("skills", 0, "skills score (0-10)")
	scoreCmd.Flags().Float64("education", 0, "education score (0-10)")
	scoreCmd.Flags().Float64("projects", 0, "projects score (0-10)")
	scoreCmd.Flags().Bool("valid-projects", true, "the resume lists at least one real project")
	scoreCmd.Flags().StringP("output", "o", outputText, "output format: text or json")

	for _, name := range []string{"experience", "skills", "education"} {
		scoreCmd.MarkFlagRequired(name)
	}
}

func score(cmd *cobra.Command) {
	logger, config := setup()

	svc, err := ats.NewService(nil, nil, config.Weights.toWeights(), logger)
	if err != nil {
		logger.Fatal("invalid weights", zap.Error(err))
	}

	flags := cmd.Flags()
	in := scoring.Input{}
	in.ExperienceScore, _ = flags.GetFloat64("experience")
	in.SkillsScore, _ = flags.GetFloat64("skills")
	in.EducationScore, _ = flags.GetFloat64("education")
	in.ProjectsScore, _ = flags.GetFloat64("projects")
	in.HasValidProjects, _ = flags.GetBool("valid-projects")

	assessment, err := svc.ScoreAssessment(in)
	if err != nil {
		logger.Fatal("calculating score", zap.Error(err))
	}

	output, _ := flags.GetString("output")
	if err := printAssessment(cmd.OutOrStdout(), output, assessment); err != nil {
		logger.Fatal("printing result", zap.Error(err))
	}
}

func printAssessment(w io.Writer, format string, a *ats.Assessment) error {
	switch strings.ToLower(format) {
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(a)
	case outputText, "":
		report.Assessment(w, a)
		return nil
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}
