// Package profile holds the canonical, strongly typed shapes of parsed resumes,
// job descriptions and LLM evaluations, and the normalization that maps the
// loosely keyed JSON produced by language models onto them.
package profile

import (
	"strings"
	"unicode/utf8"
)

// MinProjectDescription is the shortest project description that counts as a real project.
const MinProjectDescription = 20

type Resume struct {
	Name           string       `json:"name,omitempty" mapstructure:"name"`
	Email          string       `json:"email,omitempty" mapstructure:"email"`
	Phone          string       `json:"phone,omitempty" mapstructure:"phone"`
	Summary        string       `json:"summary,omitempty" mapstructure:"summary"`
	Skills         []string     `json:"skills,omitempty" mapstructure:"skills"`
	Experience     []Experience `json:"experience,omitempty" mapstructure:"experience"`
	Education      []Education  `json:"education,omitempty" mapstructure:"education"`
	Projects       []Project    `json:"projects,omitempty" mapstructure:"projects"`
	Certifications []string     `json:"certifications,omitempty" mapstructure:"certifications"`
}

type Experience struct {
	Title       string  `json:"title,omitempty" mapstructure:"title"`
	Company     string  `json:"company,omitempty" mapstructure:"company"`
	Duration    string  `json:"duration,omitempty" mapstructure:"duration"`
	Years       float64 `json:"years,omitempty" mapstructure:"years"`
	Description string  `json:"description,omitempty" mapstructure:"description"`
}

type Education struct {
	Degree      string `json:"degree,omitempty" mapstructure:"degree"`
	Institution string `json:"institution,omitempty" mapstructure:"institution"`
	Year        string `json:"year,omitempty" mapstructure:"year"`
}

type Project struct {
	Title        string   `json:"title,omitempty" mapstructure:"title"`
	Description  string   `json:"description,omitempty" mapstructure:"description"`
	Technologies []string `json:"technologies,omitempty" mapstructure:"technologies"`
}

// DisplayName returns the candidate name or the fallback when it is unknown.
func (r *Resume) DisplayName(fallback string) string {
	if r == nil || IsNA(r.Name) {
		return fallback
	}
	return strings.TrimSpace(r.Name)
}

// Valid reports whether the project has a real title and a meaningful description.
func (p Project) Valid() bool {
	if IsNA(p.Title) {
		return false
	}
	desc := strings.TrimSpace(p.Description)
	if IsNA(desc) {
		return false
	}
	return utf8.RuneCountInString(desc) >= MinProjectDescription
}

// HasValidProjects reports whether at least one project is valid.
func HasValidProjects(projects []Project) bool {
	for _, p := range projects {
		if p.Valid() {
			return true
		}
	}
	return false
}

// IsNA reports whether s is empty or one of the "not available" markers models emit.
func IsNA(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "na", "n/a", "none", "null", "not available", "-":
		return true
	default:
		return false
	}
}
