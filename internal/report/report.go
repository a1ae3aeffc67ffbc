// Package report renders assessments and screening results for the console.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"

	"github.com/spigell/ats-screener/internal/ats"
	"github.com/spigell/ats-screener/internal/scoring"
	"github.com/spigell/ats-screener/internal/screening"
	"github.com/spigell/ats-screener/internal/utils"
)

const failedGroup = "Assessment Failed"

func statusColor(q scoring.Qualification) func(format string, a ...any) string {
	if q.Status == scoring.StatusQualified {
		return color.GreenString
	}
	return color.RedString
}

func scoreColor(score float64) func(format string, a ...any) string {
	switch {
	case score >= scoring.QualifiedScore:
		return color.GreenString
	case score >= scoring.WeakScore:
		return color.YellowString
	default:
		return color.RedString
	}
}

// Assessment writes a single assessment in a human readable form.
func Assessment(w io.Writer, a *ats.Assessment) {
	result := a.Result

	fmt.Fprintln(w, color.New(color.Bold, color.Underline).Sprint("ATS Assessment"))
	if a.Candidate != "" {
		fmt.Fprintf(w, "Candidate: %s\n", a.Candidate)
	}
	if a.Job != "" {
		fmt.Fprintf(w, "Job:       %s\n", a.Job)
	}
	fmt.Fprintln(w)

	if e := a.Evaluation; e != nil {
		scores := []struct {
			label string
			score float64
		}{
			{"Experience", e.ExperienceScore},
			{"Skills", e.SkillsScore},
			{"Education", e.EducationScore},
			{"Projects", e.ProjectsScore},
		}
		for _, s := range scores {
			fmt.Fprintf(w, "  %-12s %s\n", s.label, scoreColor(s.score)("%.1f", s.score))
		}
		if !a.HasValidProjects {
			fmt.Fprintf(w, "  %s no valid projects, projects weight redistributed\n", color.YellowString("⚠"))
		}
		if a.Resume != nil {
			fmt.Fprintf(w, "  %-12s %.1f%%\n", "Coverage", e.RequirementCoverage)
		}
		fmt.Fprintln(w)
	}

	score := result.OverallWeightedScore
	fmt.Fprintf(w, "Overall weighted score: %s\n", scoreColor(score)("%.1f", score))
	fmt.Fprintf(w, "Match percentage:       %s\n", result.MatchPercentageString())
	fmt.Fprintf(w, "Status:                 %s\n", statusColor(result.Qualification)("%s", result.Qualification))

	if e := a.Evaluation; e != nil {
		list(w, color.GreenString("Strengths:"), color.GreenString("✓"), e.Strengths)
		list(w, color.RedString("Gaps:"), color.RedString("✗"), e.Gaps)
		list(w, color.YellowString("Missing skills:"), color.YellowString("•"), e.MissingSkills)
		if e.Summary != "" {
			fmt.Fprintf(w, "\n%s\n", e.Summary)
		}
	}
}

func list(w io.Writer, title, bullet string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(w, "\n%s\n", title)
	for _, item := range items {
		fmt.Fprintf(w, "  %s %s\n", bullet, item)
	}
}

// Candidates writes a ranked table of screened candidates.
func Candidates(w io.Writer, c *screening.Candidates) {
	if c.Len() == 0 {
		fmt.Fprintln(w, "No candidates left after screening.")
		return
	}

	fmt.Fprintf(w, "%-4s %-28s %-7s %-8s %s\n", "#", "Candidate", "Score", "Match", "Status")
	fmt.Fprintln(w, strings.Repeat("-", 75))

	for i, candidate := range c.Items {
		name := candidate.Name
		if utf8.RuneCountInString(name) > 28 {
			name = utils.TruncateForLog(name, 25)
		}

		if candidate.Assessment == nil {
			fmt.Fprintf(w, "%-4d %-28s %-7s %-8s %s\n", i+1, name, "-", "-", color.YellowString("%s: %s", failedGroup, candidate.Error))
			continue
		}

		result := candidate.Assessment.Result
		fmt.Fprintf(w, "%-4d %-28s %-7s %-8s %s\n",
			i+1,
			name,
			fmt.Sprintf("%.1f", result.OverallWeightedScore),
			result.MatchPercentageString(),
			statusColor(result.Qualification)("%s", result.Qualification),
		)
	}
}

// Steps writes the status of each pipeline step.
func Steps(w io.Writer, statuses []screening.Status) {
	fmt.Fprintln(w, color.New(color.Bold).Sprint("Screening steps"))
	for _, s := range statuses {
		state := color.GreenString("enabled")
		if !s.Enabled {
			state = color.YellowString("disabled")
		}

		line := fmt.Sprintf("  %-16s %s", s.Name, state)
		if s.Reason != "" {
			line += fmt.Sprintf(" (%s)", s.Reason)
		}

		keys := make([]string, 0, len(s.Details))
		for key := range s.Details {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			line += fmt.Sprintf(" %s=%s", key, s.Details[key])
		}
		fmt.Fprintln(w, line)
	}
}

// ByStatus groups candidates by their qualification label. Candidates without
// an assessment are grouped under "Assessment Failed".
func ByStatus(c *screening.Candidates) map[string][]map[string]string {
	report := make(map[string][]map[string]string)
	for _, candidate := range c.Items {
		if candidate.Assessment == nil {
			report[failedGroup] = append(report[failedGroup], map[string]string{
				"name":  candidate.Name,
				"path":  candidate.Path,
				"error": candidate.Error,
			})
			continue
		}

		result := candidate.Assessment.Result
		key := result.Qualification.String()
		report[key] = append(report[key], map[string]string{
			"name":             candidate.Name,
			"path":             candidate.Path,
			"candidate":        candidate.Assessment.Candidate,
			"overall score":    fmt.Sprintf("%.1f", result.OverallWeightedScore),
			"match percentage": result.MatchPercentageString(),
		})
	}
	return report
}

// DumpToTmpFile writes v as indented JSON to a new temporary file and
// returns its path.
func DumpToTmpFile(v any) (string, error) {
	file, err := os.CreateTemp("", "ats_screening_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return file.Name(), nil
}
