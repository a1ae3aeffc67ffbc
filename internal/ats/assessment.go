package ats

import (
	"encoding/json"
	"time"

	"github.com/spigell/ats-screener/internal/profile"
	"github.com/spigell/ats-screener/internal/scoring"
)

// Assessment is the outcome of screening one resume against one job.
type Assessment struct {
	ID               string
	Candidate        string
	Job              string
	Resume           *profile.Resume
	JobDescription   *profile.JobDescription
	Evaluation       *profile.Evaluation
	Result           scoring.Result
	HasValidProjects bool
	Weights          scoring.Weights
	CreatedAt        time.Time
}

// Payload is the serialized form of an Assessment.
type Payload struct {
	ID                   string                  `json:"id"`
	Candidate            string                  `json:"candidate"`
	Job                  string                  `json:"job,omitempty"`
	ExperienceScore      float64                 `json:"Experience_Score"`
	SkillsScore          float64                 `json:"Skills_Score"`
	EducationScore       float64                 `json:"Education_Score"`
	ProjectsScore        float64                 `json:"Projects_Score"`
	RequirementCoverage  float64                 `json:"Requirement_Coverage"`
	OverallWeightedScore float64                 `json:"Overall_Weighted_Score"`
	MatchPercentage      string                  `json:"Match_Percentage"`
	QualificationStatus  scoring.Qualification   `json:"Qualification_Status"`
	HasValidProjects     bool                    `json:"Has_Valid_Projects"`
	Weights              scoring.Weights         `json:"Weights"`
	EffectiveWeights     scoring.Weights         `json:"Effective_Weights"`
	SkillsMatch          []string                `json:"Skills_Match,omitempty"`
	MissingSkills        []string                `json:"Missing_Skills,omitempty"`
	Strengths            []string                `json:"Strengths,omitempty"`
	Gaps                 []string                `json:"Gaps,omitempty"`
	Summary              string                  `json:"Summary,omitempty"`
	Resume               *profile.Resume         `json:"Resume,omitempty"`
	JobDescription       *profile.JobDescription `json:"Job_Description,omitempty"`
	CreatedAt            time.Time               `json:"created_at"`
}

func (a *Assessment) Payload() Payload {
	p := Payload{
		ID:                   a.ID,
		Candidate:            a.Candidate,
		Job:                  a.Job,
		OverallWeightedScore: a.Result.OverallWeightedScore,
		MatchPercentage:      a.Result.MatchPercentageString(),
		QualificationStatus:  a.Result.Qualification,
		HasValidProjects:     a.HasValidProjects,
		Weights:              a.Weights,
		EffectiveWeights:     a.Result.EffectiveWeights,
		Resume:               a.Resume,
		JobDescription:       a.JobDescription,
		CreatedAt:            a.CreatedAt,
	}

	if e := a.Evaluation; e != nil {
		p.ExperienceScore = e.ExperienceScore
		p.SkillsScore = e.SkillsScore
		p.EducationScore = e.EducationScore
		p.ProjectsScore = e.ProjectsScore
		p.RequirementCoverage = e.RequirementCoverage
		p.SkillsMatch = e.SkillsMatch
		p.MissingSkills = e.MissingSkills
		p.Strengths = e.Strengths
		p.Gaps = e.Gaps
		p.Summary = e.Summary
	}

	return p
}

func (a *Assessment) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.Payload())
}

func (a *Assessment) Qualified() bool {
	return a != nil && a.Result.Qualified()
}
