package server

import (
	"github.com/spigell/ats-screener/internal/scoring"
)

// ScoreRequest carries raw sub-scores for a calculation without any LLM.
type ScoreRequest struct {
	ExperienceScore  *float64        `json:"experience_score" validate:"required,gte=0,lte=10"`
	SkillsScore      *float64        `json:"skills_score" validate:"required,gte=0,lte=10"`
	EducationScore   *float64        `json:"education_score" validate:"required,gte=0,lte=10"`
	ProjectsScore    *float64        `json:"projects_score" validate:"required,gte=0,lte=10"`
	HasValidProjects bool            `json:"has_valid_projects"`
	Weights          *WeightsRequest `json:"weights,omitempty"`
}

// WeightsRequest are fractions in [0, 1] that must sum to 1.
type WeightsRequest struct {
	Experience float64 `json:"experience" validate:"gte=0,lte=1"`
	Skills     float64 `json:"skills" validate:"gte=0,lte=1"`
	Education  float64 `json:"education" validate:"gte=0,lte=1"`
	Projects   float64 `json:"projects" validate:"gte=0,lte=1"`
}

func (r *ScoreRequest) Input() scoring.Input {
	in := scoring.Input{
		ExperienceScore:  *r.ExperienceScore,
		SkillsScore:      *r.SkillsScore,
		EducationScore:   *r.EducationScore,
		ProjectsScore:    *r.ProjectsScore,
		HasValidProjects: r.HasValidProjects,
	}
	if r.Weights != nil {
		in.Weights = scoring.Weights{
			Experience: r.Weights.Experience,
			Skills:     r.Weights.Skills,
			Education:  r.Weights.Education,
			Projects:   r.Weights.Projects,
		}
	}
	return in
}

type ScoreResponse struct {
	OverallWeightedScore float64               `json:"Overall_Weighted_Score"`
	MatchPercentage      string                `json:"Match_Percentage"`
	QualificationStatus  scoring.Qualification `json:"Qualification_Status"`
	EffectiveWeights     scoring.Weights       `json:"Effective_Weights"`
}

type ParseRequest struct {
	Text string `json:"text" validate:"required"`
}

type AssessmentRequest struct {
	Resume string `json:"resume" validate:"required"`
	Job    string `json:"job" validate:"required"`
}

type errorResponse struct {
	Error string `json:"error"`
}
