package scoring

import (
	"fmt"
	"math"
)

// DefaultWeightTolerance is the allowed deviation of the weight sum from 1.0.
const DefaultWeightTolerance = 0.01

// DefaultWeights is the rubric used when no weightage is configured.
var DefaultWeights = Weights{
	Experience: 0.3,
	Skills:     0.4,
	Education:  0.1,
	Projects:   0.2,
}

// Weights are the fractions each sub-score contributes to the overall score.
type Weights struct {
	Experience float64 `json:"experience"`
	Skills     float64 `json:"skills"`
	Education  float64 `json:"education"`
	Projects   float64 `json:"projects"`
}

// WeightsFromPercentages converts a weightage given in percent into fractions.
func WeightsFromPercentages(experience, skills, education, projects float64) Weights {
	return Weights{
		Experience: experience / 100,
		Skills:     skills / 100,
		Education:  education / 100,
		Projects:   projects / 100,
	}
}

// Sum returns the total weight mass.
func (w Weights) Sum() float64 {
	return w.Experience + w.Skills + w.Education + w.Projects
}

// Redistribute moves the projects weight onto the other three weights in
// proportion to their size. The returned projects weight is always zero.
// When the other three weights are all zero nothing can be redistributed and
// they are returned unchanged.
func (w Weights) Redistribute() Weights {
	totalOther := w.Experience + w.Skills + w.Education
	if totalOther <= 0 {
		return Weights{
			Experience: w.Experience,
			Skills:     w.Skills,
			Education:  w.Education,
		}
	}

	return Weights{
		Experience: w.Experience + w.Projects*(w.Experience/totalOther),
		Skills:     w.Skills + w.Projects*(w.Skills/totalOther),
		Education:  w.Education + w.Projects*(w.Education/totalOther),
	}
}

// ValidateSum checks that the weights sum to 1.0 within the given tolerance.
func (w Weights) ValidateSum(tolerance float64) error {
	if tolerance < 0 {
		tolerance = DefaultWeightTolerance
	}

	sum := w.Sum()
	if math.IsNaN(sum) || math.Abs(sum-1.0) > tolerance {
		return fmt.Errorf("%w: weights sum to %.4f, expected 1.0 +/- %.2f", ErrInvalidWeightSum, sum, tolerance)
	}

	return nil
}

func (w Weights) validateRange() error {
	fields := []struct {
		name  string
		value float64
	}{
		{"experience_weight", w.Experience},
		{"skills_weight", w.Skills},
		{"education_weight", w.Education},
		{"projects_weight", w.Projects},
	}

	for _, f := range fields {
		if !inRange(f.value, 0, 1) {
			return &RangeError{Field: f.name, Value: f.value, Min: 0, Max: 1}
		}
	}

	return nil
}
