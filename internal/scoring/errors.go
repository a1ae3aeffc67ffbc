package scoring

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidScoreRange is returned for NaN, infinite or out-of-range scores and weights.
	ErrInvalidScoreRange = errors.New("invalid score range")
	// ErrInvalidWeightSum is returned when weights do not sum to 1.0.
	ErrInvalidWeightSum = errors.New("invalid weight sum")
)

// RangeError describes which input value fell outside its allowed range.
type RangeError struct {
	Field string
	Value float64
	Min   float64
	Max   float64
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s: %s is %v, must be within [%v, %v]", ErrInvalidScoreRange, e.Field, e.Value, e.Min, e.Max)
}

func (e *RangeError) Unwrap() error {
	return ErrInvalidScoreRange
}

// Validate checks every score is within [0, 10] and every weight within [0, 1].
// It does not check the weight sum; see Weights.ValidateSum.
func (in Input) Validate() error {
	scores := []struct {
		name  string
		value float64
	}{
		{"experience_score", in.ExperienceScore},
		{"skills_score", in.SkillsScore},
		{"education_score", in.EducationScore},
		{"projects_score", in.ProjectsScore},
	}

	for _, s := range scores {
		if !inRange(s.value, 0, MaxScore) {
			return &RangeError{Field: s.name, Value: s.value, Min: 0, Max: MaxScore}
		}
	}

	return in.Weights.validateRange()
}

func inRange(v, lo, hi float64) bool {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return false
	}
	return v >= lo && v <= hi
}
