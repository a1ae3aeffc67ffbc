package profile

import "github.com/spigell/ats-screener/internal/scoring"

// Evaluation is the LLM's rating of a resume against a job description.
//
// RequirementCoverage is the model's own estimate of how many JD requirements
// the resume covers. It is reported as is and never mixed into the match
// percentage, which scoring derives from the weighted score.
type Evaluation struct {
	ExperienceScore     float64  `json:"Experience_Score" mapstructure:"experience_score"`
	SkillsScore         float64  `json:"Skills_Score" mapstructure:"skills_score"`
	EducationScore      float64  `json:"Education_Score" mapstructure:"education_score"`
	ProjectsScore       float64  `json:"Projects_Score" mapstructure:"projects_score"`
	RequirementCoverage float64  `json:"Requirement_Coverage" mapstructure:"requirement_coverage"`
	SkillsMatch         []string `json:"Skills_Match,omitempty" mapstructure:"skills_match"`
	MissingSkills       []string `json:"Missing_Skills,omitempty" mapstructure:"missing_skills"`
	Strengths           []string `json:"Strengths,omitempty" mapstructure:"strengths"`
	Gaps                []string `json:"Gaps,omitempty" mapstructure:"gaps"`
	Summary             string   `json:"Summary,omitempty" mapstructure:"summary"`
}

// ScoreInput maps the sub-scores onto the calculator input.
func (e *Evaluation) ScoreInput(weights scoring.Weights, hasValidProjects bool) scoring.Input {
	return scoring.Input{
		ExperienceScore:  e.ExperienceScore,
		SkillsScore:      e.SkillsScore,
		EducationScore:   e.EducationScore,
		ProjectsScore:    e.ProjectsScore,
		HasValidProjects: hasValidProjects,
		Weights:          weights,
	}
}
