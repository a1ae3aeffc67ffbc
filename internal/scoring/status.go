package scoring

import (
	"fmt"
	"strings"
)

// Status is the pass/fail part of a qualification.
type Status int

const (
	StatusNotQualified Status = iota
	StatusQualified
)

// Reason names why a candidate is not qualified.
type Reason int

const (
	ReasonNone Reason = iota
	ReasonExperienceGap
	ReasonInsufficientExperience
	ReasonSkillGaps
	ReasonEducationRequirements
	ReasonLackOfProjectApplication
	ReasonBelowStandard
)

const (
	qualifiedLabel    = "Qualified"
	notQualifiedLabel = "Not Qualified"
)

var reasonLabels = map[Reason]string{
	ReasonExperienceGap:            "Experience Gap",
	ReasonInsufficientExperience:   "Insufficient Experience",
	ReasonSkillGaps:                "Skill Gaps",
	ReasonEducationRequirements:    "Education Requirements",
	ReasonLackOfProjectApplication: "Lack of Project Application",
	ReasonBelowStandard:            "Below Standard",
}

func (r Reason) String() string {
	if label, ok := reasonLabels[r]; ok {
		return label
	}
	return ""
}

// Qualification is a status with an optional reason. Reason is ReasonNone
// for qualified candidates.
type Qualification struct {
	Status Status
	Reason Reason
}

// NotQualified builds a failing qualification with the given reason.
func NotQualified(reason Reason) Qualification {
	return Qualification{Status: StatusNotQualified, Reason: reason}
}

// String renders the display label, e.g. "Not Qualified - Skill Gaps".
func (q Qualification) String() string {
	if q.Status == StatusQualified {
		return qualifiedLabel
	}
	if label := q.Reason.String(); label != "" {
		return notQualifiedLabel + " - " + label
	}
	return notQualifiedLabel
}

func (q Qualification) MarshalText() ([]byte, error) {
	return []byte(q.String()), nil
}

func (q *Qualification) UnmarshalText(text []byte) error {
	parsed, err := ParseQualification(string(text))
	if err != nil {
		return err
	}
	*q = parsed
	return nil
}

// ParseQualification is the inverse of Qualification.String.
func ParseQualification(s string) (Qualification, error) {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, qualifiedLabel) {
		return Qualification{Status: StatusQualified}, nil
	}

	label, ok := strings.CutPrefix(s, notQualifiedLabel)
	if !ok {
		return Qualification{}, fmt.Errorf("unknown qualification status %q", s)
	}

	label = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(label), "-"))
	if label == "" {
		return NotQualified(ReasonNone), nil
	}

	for reason, text := range reasonLabels {
		if strings.EqualFold(text, label) {
			return NotQualified(reason), nil
		}
	}

	return Qualification{}, fmt.Errorf("unknown disqualification reason %q", label)
}
