package corpus

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/candela-systems/scholarmatch/core"
)

// collectorProfile mirrors one object in a collector output file.
// Absent keys decode to zero values; unknown keys are ignored.
type collectorProfile struct {
	Name              string   `json:"name"`
	Title             string   `json:"title"`
	Department        string   `json:"department"`
	Bio               string   `json:"bio"`
	ResearchInterests []string `json:"research_interests"`
	Publications      []string `json:"publications"`
	Email             string   `json:"email"`
	URL               string   `json:"url"`
	GoogleScholar     string   `json:"google_scholar"`
	ResearchGate      string   `json:"research_gate"`
	LinkedIn          string   `json:"linkedin"`
	Website           string   `json:"website"`
}

// LoadResult holds the outcome of parsing a collector file.
type LoadResult struct {
	// Profiles are the valid profiles, in file order.
	Profiles []*core.Profile

	// Skipped counts entries that failed validation.
	Skipped int
}

// Load parses a collector JSON array from r. Entries that fail profile
// validation are counted and skipped rather than failing the load.
func Load(r io.Reader) (*LoadResult, error) {
	var entries []collectorProfile
	if err := json.NewDecoder(r).Decode(&entries); err != nil {
		return nil, fmt.Errorf("parsing collector file: %w", err)
	}

	logger := slog.Default().With("component", "corpus")

	result := &LoadResult{}
	for i, entry := range entries {
		profile := &core.Profile{
			Name:              entry.Name,
			Title:             entry.Title,
			Department:        entry.Department,
			Bio:               entry.Bio,
			ResearchInterests: entry.ResearchInterests,
			Publications:      entry.Publications,
			Email:             entry.Email,
			URL:               entry.URL,
			GoogleScholar:     entry.GoogleScholar,
			ResearchGate:      entry.ResearchGate,
			LinkedIn:          entry.LinkedIn,
			Website:           entry.Website,
		}

		if err := core.ValidateProfile(profile); err != nil {
			logger.Warn("skipping invalid profile", "index", i, "err", err)
			result.Skipped++
			continue
		}
		result.Profiles = append(result.Profiles, profile)
	}

	return result, nil
}

// LoadFile parses a collector JSON file from disk.
func LoadFile(path string) (*LoadResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Load(f)
}
