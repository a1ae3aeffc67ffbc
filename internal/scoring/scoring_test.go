package scoring

import (
	"encoding/json"
	"errors"
	"math"
	"strings"
	"testing"
)

func TestCalculateExamples(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		input       Input
		wantOverall float64
		wantMatch   string
		wantStatus  string
	}{
		{
			name: "all sections valid",
			input: Input{
				ExperienceScore: 8, SkillsScore: 8, EducationScore: 7, ProjectsScore: 8,
				HasValidProjects: true,
				Weights:          Weights{Experience: 0.3, Skills: 0.4, Education: 0.1, Projects: 0.2},
			},
			// 8*0.3 + 8*0.4 + 7*0.1 + 8*0.2
			wantOverall: 7.9,
			wantMatch:   "79.0%",
			wantStatus:  "Qualified",
		},
		{
			name: "experience gate ignores high overall",
			input: Input{
				ExperienceScore: 5, SkillsScore: 9, EducationScore: 9, ProjectsScore: 9,
				HasValidProjects: true,
				Weights:          Weights{Experience: 0.3, Skills: 0.4, Education: 0.1, Projects: 0.2},
			},
			wantOverall: 7.8,
			wantMatch:   "78.0%",
			wantStatus:  "Not Qualified - Experience Gap",
		},
		{
			name: "invalid projects redistribute weight",
			input: Input{
				ExperienceScore: 7, SkillsScore: 5, EducationScore: 8, ProjectsScore: 0,
				HasValidProjects: false,
				Weights:          Weights{Experience: 0.3, Skills: 0.4, Education: 0.1, Projects: 0.2},
			},
			wantOverall: 6.1,
			wantMatch:   "61.0%",
			wantStatus:  "Not Qualified - Skill Gaps",
		},
		{
			name: "single weight on experience",
			input: Input{
				ExperienceScore: 7, SkillsScore: 7, EducationScore: 7, ProjectsScore: 7,
				HasValidProjects: true,
				Weights:          Weights{Experience: 1.0},
			},
			wantOverall: 7.0,
			wantMatch:   "70.0%",
			wantStatus:  "Qualified",
		},
		{
			name: "rounds half away from zero",
			input: Input{
				ExperienceScore: 7.5, SkillsScore: 7, EducationScore: 1, ProjectsScore: 5,
				HasValidProjects: true,
				Weights:          Weights{Experience: 0.5, Skills: 0.5},
			},
			wantOverall: 7.3,
			wantMatch:   "73.0%",
			wantStatus:  "Qualified",
		},
		{
			name: "no weak section falls back to below standard",
			input: Input{
				ExperienceScore: 7, SkillsScore: 6.5, EducationScore: 6.5, ProjectsScore: 6.5,
				HasValidProjects: true,
				Weights:          DefaultWeights,
			},
			wantOverall: 6.7,
			wantMatch:   "67.0%",
			wantStatus:  "Not Qualified - Below Standard",
		},
		{
			name: "heaviest weak section is projects",
			input: Input{
				ExperienceScore: 7, SkillsScore: 7, EducationScore: 7, ProjectsScore: 2,
				HasValidProjects: true,
				Weights:          Weights{Experience: 0.2, Skills: 0.2, Education: 0.1, Projects: 0.5},
			},
			wantOverall: 4.5,
			wantMatch:   "45.0%",
			wantStatus:  "Not Qualified - Lack of Project Application",
		},
		{
			name: "zero projects weight is never a reason",
			input: Input{
				ExperienceScore: 7, SkillsScore: 6, EducationScore: 5, ProjectsScore: 1,
				HasValidProjects: true,
				Weights:          Weights{Experience: 0.5, Skills: 0.3, Education: 0.2},
			},
			wantOverall: 6.3,
			wantMatch:   "63.0%",
			wantStatus:  "Not Qualified - Education Requirements",
		},
		{
			name: "weight ties keep insertion order",
			input: Input{
				ExperienceScore: 8, SkillsScore: 5, EducationScore: 4, ProjectsScore: 8,
				HasValidProjects: true,
				Weights:          Weights{Experience: 0.4, Skills: 0.25, Education: 0.25, Projects: 0.1},
			},
			wantOverall: 6.3,
			wantMatch:   "63.0%",
			wantStatus:  "Not Qualified - Skill Gaps",
		},
		{
			name: "zero projects score with valid projects ranks projects by nominal weight",
			input: Input{
				ExperienceScore: 7, SkillsScore: 6, EducationScore: 6, ProjectsScore: 0,
				HasValidProjects: true,
				Weights:          Weights{Experience: 0.3, Skills: 0.2, Education: 0.1, Projects: 0.4},
			},
			wantOverall: 6.5,
			wantMatch:   "65.0%",
			wantStatus:  "Not Qualified - Lack of Project Application",
		},
		{
			name: "nothing left to redistribute onto",
			input: Input{
				ExperienceScore: 8, SkillsScore: 8, EducationScore: 8, ProjectsScore: 8,
				HasValidProjects: false,
				Weights:          Weights{Projects: 1.0},
			},
			wantOverall: 0,
			wantMatch:   "0.0%",
			wantStatus:  "Not Qualified - Below Standard",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Calculate(tt.input)

			if got.OverallWeightedScore != tt.wantOverall {
				t.Fatalf("expected overall %v, got %v", tt.wantOverall, got.OverallWeightedScore)
			}
			if s := got.MatchPercentageString(); s != tt.wantMatch {
				t.Fatalf("expected match %q, got %q", tt.wantMatch, s)
			}
			if s := got.Qualification.String(); s != tt.wantStatus {
				t.Fatalf("expected status %q, got %q", tt.wantStatus, s)
			}
		})
	}
}

func TestCalculateMatchesDotProductWhenProjectsValid(t *testing.T) {
	t.Parallel()

	scores := []float64{0, 1.5, 3, 4.5, 6, 7.25, 8.8, 10}
	weights := []Weights{
		DefaultWeights,
		{Experience: 0.25, Skills: 0.25, Education: 0.25, Projects: 0.25},
		{Experience: 0.5, Skills: 0.2, Education: 0.1, Projects: 0.2},
	}

	for _, w := range weights {
		for _, s := range scores {
			in := Input{
				ExperienceScore: s, SkillsScore: 10 - s, EducationScore: s / 2, ProjectsScore: 5,
				HasValidProjects: true,
				Weights:          w,
			}
			want := round1(in.ExperienceScore*w.Experience + in.SkillsScore*w.Skills +
				in.EducationScore*w.Education + in.ProjectsScore*w.Projects)

			got := Calculate(in)
			if got.OverallWeightedScore != want {
				t.Fatalf("weights %+v score %v: expected %v, got %v", w, s, want, got.OverallWeightedScore)
			}
			if got.EffectiveWeights != w {
				t.Fatalf("expected nominal weights to be used, got %+v", got.EffectiveWeights)
			}
		}
	}
}

func TestCalculateIsIdempotent(t *testing.T) {
	t.Parallel()

	in := Input{
		ExperienceScore: 7.4, SkillsScore: 6.1, EducationScore: 9, ProjectsScore: 0,
		HasValidProjects: true,
		Weights:          DefaultWeights,
	}

	first := Calculate(in)
	second := Calculate(in)
	if first != second {
		t.Fatalf("expected identical results, got %+v and %+v", first, second)
	}
}

func TestCalculateExperienceGate(t *testing.T) {
	t.Parallel()

	for _, exp := range []float64{0, 3, 6.9, 6.99} {
		for _, other := range []float64{0, 5, 10} {
			got := Calculate(Input{
				ExperienceScore: exp, SkillsScore: other, EducationScore: other, ProjectsScore: other,
				HasValidProjects: true,
				Weights:          DefaultWeights,
			})
			if got.Qualification != NotQualified(ReasonExperienceGap) {
				t.Fatalf("experience %v others %v: expected experience gap, got %s", exp, other, got.Qualification)
			}
		}
	}
}

func TestCalculateQualifiedProperty(t *testing.T) {
	t.Parallel()

	for _, exp := range []float64{7, 8.5, 10} {
		for _, other := range []float64{7, 8, 9.5, 10} {
			got := Calculate(Input{
				ExperienceScore: exp, SkillsScore: other, EducationScore: other, ProjectsScore: other,
				HasValidProjects: true,
				Weights:          DefaultWeights,
			})
			if got.OverallWeightedScore < QualifiedScore || got.MatchPercentage < QualifiedMatch {
				t.Fatalf("test inputs should clear thresholds, got %+v", got)
			}
			if !got.Qualified() {
				t.Fatalf("expected Qualified, got %s", got.Qualification)
			}
		}
	}
}

func TestResultJSONUsesDisplayStatus(t *testing.T) {
	t.Parallel()

	res := Calculate(Input{
		ExperienceScore: 7, SkillsScore: 5, EducationScore: 8,
		Weights: DefaultWeights,
	})

	data, err := json.Marshal(res)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(string(data), `"qualification_status":"Not Qualified - Skill Gaps"`) {
		t.Fatalf("unexpected payload: %s", data)
	}
}

func TestScoreValidatesInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input Input
		field string
	}{
		{
			name:  "score above ten",
			input: Input{ExperienceScore: 10.5, Weights: DefaultWeights},
			field: "experience_score",
		},
		{
			name:  "negative score",
			input: Input{ExperienceScore: 8, SkillsScore: -1, Weights: DefaultWeights},
			field: "skills_score",
		},
		{
			name:  "nan score",
			input: Input{ExperienceScore: 8, EducationScore: math.NaN(), Weights: DefaultWeights},
			field: "education_score",
		},
		{
			name:  "infinite score",
			input: Input{ExperienceScore: 8, ProjectsScore: math.Inf(1), Weights: DefaultWeights},
			field: "projects_score",
		},
		{
			name:  "weight above one",
			input: Input{ExperienceScore: 8, Weights: Weights{Skills: 1.2}},
			field: "skills_weight",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Score(tt.input)
			if !errors.Is(err, ErrInvalidScoreRange) {
				t.Fatalf("expected ErrInvalidScoreRange, got %v", err)
			}

			var rangeErr *RangeError
			if !errors.As(err, &rangeErr) {
				t.Fatalf("expected RangeError, got %T", err)
			}
			if rangeErr.Field != tt.field {
				t.Fatalf("expected field %q, got %q", tt.field, rangeErr.Field)
			}
		})
	}

	if _, err := Score(Input{ExperienceScore: 8, SkillsScore: 8, Weights: DefaultWeights}); err != nil {
		t.Fatalf("unexpected error for valid input: %v", err)
	}
}
