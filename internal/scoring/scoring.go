// Package scoring turns the LLM sub-scores of a candidate into an overall
// weighted score, a match percentage and a qualification status.
package scoring

import (
	"fmt"
	"math"
	"sort"
)

const (
	// ExperienceGate is the minimum experience score; anything below is a hard fail.
	ExperienceGate = 7.0
	// QualifiedScore is the minimum overall weighted score for a Qualified status.
	QualifiedScore = 7.0
	// QualifiedMatch is the minimum match percentage for a Qualified status.
	QualifiedMatch = 70.0
	// WeakScore marks a sub-score low enough to be named as the disqualification reason.
	WeakScore = 6.0

	// MaxScore is the upper bound of every sub-score.
	MaxScore = 10.0
)

// Input holds the raw sub-scores of one evaluation and the weights to apply.
type Input struct {
	ExperienceScore  float64 `json:"experience_score"`
	SkillsScore      float64 `json:"skills_score"`
	EducationScore   float64 `json:"education_score"`
	ProjectsScore    float64 `json:"projects_score"`
	HasValidProjects bool    `json:"has_valid_projects"`
	Weights          Weights `json:"weights"`
}

// Result is the outcome of Calculate.
type Result struct {
	OverallWeightedScore float64       `json:"overall_weighted_score"`
	MatchPercentage      float64       `json:"match_percentage"`
	Qualification        Qualification `json:"qualification_status"`
	// EffectiveWeights are the weights the overall score was computed with.
	EffectiveWeights Weights `json:"effective_weights"`
}

// MatchPercentageString formats the match percentage with one decimal and a trailing percent sign.
func (r Result) MatchPercentageString() string {
	return fmt.Sprintf("%.1f%%", r.MatchPercentage)
}

// Qualified reports whether the result carries a Qualified status.
func (r Result) Qualified() bool {
	return r.Qualification.Status == StatusQualified
}

// Calculate computes the weighted score, match percentage and qualification.
// It performs no validation: weights are used as supplied.
func Calculate(in Input) Result {
	effective := in.Weights
	if !in.HasValidProjects || in.ProjectsScore == 0 {
		effective = in.Weights.Redistribute()
	}

	raw := in.ExperienceScore*effective.Experience +
		in.SkillsScore*effective.Skills +
		in.EducationScore*effective.Education +
		in.ProjectsScore*effective.Projects

	overall := round1(raw)
	match := round1(overall * 10)

	return Result{
		OverallWeightedScore: overall,
		MatchPercentage:      match,
		Qualification:        qualify(in, overall, match),
		EffectiveWeights:     effective,
	}
}

// Score validates the input and calculates the result.
func Score(in Input) (Result, error) {
	if err := in.Validate(); err != nil {
		return Result{}, err
	}
	return Calculate(in), nil
}

type candidateReason struct {
	weight float64
	score  float64
	reason Reason
}

func qualify(in Input, overall, match float64) Qualification {
	if in.ExperienceScore < ExperienceGate {
		return NotQualified(ReasonExperienceGap)
	}

	if overall >= QualifiedScore && match >= QualifiedMatch {
		return Qualification{Status: StatusQualified}
	}

	reasons := []candidateReason{
		{weight: in.Weights.Experience, score: in.ExperienceScore, reason: ReasonInsufficientExperience},
		{weight: in.Weights.Skills, score: in.SkillsScore, reason: ReasonSkillGaps},
		{weight: in.Weights.Education, score: in.EducationScore, reason: ReasonEducationRequirements},
	}
	if in.HasValidProjects && in.Weights.Projects > 0 {
		reasons = append(reasons, candidateReason{
			weight: in.Weights.Projects,
			score:  in.ProjectsScore,
			reason: ReasonLackOfProjectApplication,
		})
	}

	sort.SliceStable(reasons, func(i, j int) bool {
		return reasons[i].weight > reasons[j].weight
	})

	for _, r := range reasons {
		if r.weight > 0 && r.score < WeakScore {
			return NotQualified(r.reason)
		}
	}

	return NotQualified(ReasonBelowStandard)
}

// round1 rounds half away from zero to one decimal place. The value is first
// snapped to 1e-9 so that sums like 7.249999999999999 land on 7.25.
func round1(v float64) float64 {
	snapped := math.Round(v*1e9) / 1e9
	return math.Round(snapped*10) / 10
}
