package screening

import (
	"sort"

	"github.com/spigell/ats-screener/internal/ats"
	"github.com/spigell/ats-screener/internal/document"
)

type Candidates struct {
	Items []*Candidate
}

// Candidate is one resume going through the pipeline. Name is the resume
// file name without extension and identifies the candidate in history files.
type Candidate struct {
	Name       string          `json:"name"`
	Path       string          `json:"path,omitempty"`
	Text       string          `json:"-"`
	Assessment *ats.Assessment `json:"assessment,omitempty"`
	Error      string          `json:"error,omitempty"`
}

// FromDocuments wraps loaded resumes into candidates.
func FromDocuments(docs []*document.Document) *Candidates {
	c := &Candidates{Items: make([]*Candidate, 0, len(docs))}
	for _, doc := range docs {
		c.Items = append(c.Items, &Candidate{
			Name: doc.Name,
			Path: doc.Path,
			Text: doc.Text,
		})
	}
	return c
}

func (c *Candidates) Len() int {
	return len(c.Items)
}

func (c *Candidates) FindByName(name string) *Candidate {
	for _, candidate := range c.Items {
		if candidate.Name == name {
			return candidate
		}
	}
	return nil
}

// Exclude removes candidates by name and returns the removed names.
// Order of the remaining candidates is preserved.
func (c *Candidates) Exclude(names []string) []string {
	targets := make(map[string]struct{}, len(names))
	for _, name := range names {
		targets[name] = struct{}{}
	}

	return c.ExcludeFunc(func(candidate *Candidate) bool {
		_, ok := targets[candidate.Name]
		return ok
	})
}

// ExcludeFunc removes every candidate for which drop returns true.
func (c *Candidates) ExcludeFunc(drop func(*Candidate) bool) []string {
	var excluded []string
	kept := c.Items[:0]
	for _, candidate := range c.Items {
		if drop(candidate) {
			excluded = append(excluded, candidate.Name)
			continue
		}
		kept = append(kept, candidate)
	}
	c.Items = kept
	return excluded
}

// Assessed returns the candidates that have an assessment.
func (c *Candidates) Assessed() []*Candidate {
	assessed := make([]*Candidate, 0, len(c.Items))
	for _, candidate := range c.Items {
		if candidate.Assessment != nil {
			assessed = append(assessed, candidate)
		}
	}
	return assessed
}

// Rank orders candidates by overall score, best first. Candidates without an
// assessment go last; ties keep name order.
func (c *Candidates) Rank() {
	sort.SliceStable(c.Items, func(i, j int) bool {
		a, b := c.Items[i], c.Items[j]
		if (a.Assessment == nil) != (b.Assessment == nil) {
			return a.Assessment != nil
		}
		if a.Assessment != nil {
			sa, sb := a.Assessment.Result.OverallWeightedScore, b.Assessment.Result.OverallWeightedScore
			if sa != sb {
				return sa > sb
			}
		}
		return a.Name < b.Name
	})
}
