package screening

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"time"
)

// History is the on-disk record of screened candidates.
type History struct {
	Items []*HistoryEntry
}

type HistoryEntry struct {
	Candidate     string
	Job           string
	Score         float64
	Qualification string
	ScreenedAt    time.Time
}

// LoadHistory reads a history file. A missing or empty file yields an empty history.
func LoadHistory(path string) (*History, error) {
	file, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &History{}, nil
	}
	if err != nil {
		return nil, err
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return nil, err
	}

	if stat.Size() == 0 {
		return &History{}, nil
	}

	var history History
	if err := json.NewDecoder(file).Decode(&history); err != nil {
		return nil, err
	}
	return &history, nil
}

// ToHistory converts assessed candidates into history entries for job.
func (c *Candidates) ToHistory(job string) *History {
	history := &History{}
	for _, candidate := range c.Assessed() {
		history.Items = append(history.Items, &HistoryEntry{
			Candidate:     candidate.Name,
			Job:           job,
			Score:         candidate.Assessment.Result.OverallWeightedScore,
			Qualification: candidate.Assessment.Result.Qualification.String(),
			ScreenedAt:    candidate.Assessment.CreatedAt,
		})
	}
	return history
}

func (h *History) Append(s *History) {
	h.Items = append(h.Items, s.Items...)
}

// Candidates returns the names of candidates already screened against job.
func (h *History) Candidates(job string) []string {
	names := make([]string, 0)
	for _, entry := range h.Items {
		if entry.Job == job {
			names = append(names, entry.Candidate)
		}
	}
	return names
}

func (h *History) ToFile(path string) error {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	return enc.Encode(h)
}
