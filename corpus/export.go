package corpus

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/candela-systems/scholarmatch/core"
)

const (
	bioPreviewLimit = 200
)

// ExportRow is the presentation shape of a single match, shared by the
// HTTP front end and the export writers.
type ExportRow struct {
	Name              string   `json:"name"`
	Title             string   `json:"title"`
	Department        string   `json:"department"`
	Email             string   `json:"email"`
	SimilarityScore   float64  `json:"similarity_score"`
	MatchReasons      []string `json:"match_reasons"`
	ResearchInterests []string `json:"research_interests"`
	Bio               string   `json:"bio"`
	ProfileURL        string   `json:"profile_url"`
	GoogleScholar     string   `json:"google_scholar"`
	ResearchGate      string   `json:"research_gate"`
}

// Row converts a match to its presentation shape: the score rounded to
// three decimals and the bio cut to a 200 character preview.
func Row(match *core.Match) ExportRow {
	profile := match.Profile
	return ExportRow{
		Name:              profile.Name,
		Title:             profile.Title,
		Department:        profile.Department,
		Email:             profile.Email,
		SimilarityScore:   RoundScore(match.Score),
		MatchReasons:      match.Reasons,
		ResearchInterests: profile.ResearchInterests,
		Bio:               bioPreview(profile.Bio),
		ProfileURL:        profile.URL,
		GoogleScholar:     profile.GoogleScholar,
		ResearchGate:      profile.ResearchGate,
	}
}

// Rows converts matches in order.
func Rows(matches []*core.Match) []ExportRow {
	rows := make([]ExportRow, len(matches))
	for i, match := range matches {
		rows[i] = Row(match)
	}
	return rows
}

// RoundScore rounds a similarity score to three decimal places.
func RoundScore(score float64) float64 {
	return math.Round(score*1000) / 1000
}

// WriteJSON writes matches as an indented JSON array of export rows.
func WriteJSON(w io.Writer, matches []*core.Match) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(Rows(matches))
}

// WriteCSV writes matches as CSV with a header row. List fields are
// joined with "; ".
func WriteCSV(w io.Writer, matches []*core.Match) error {
	cw := csv.NewWriter(w)

	header := []string{
		"name", "title", "department", "email", "similarity_score",
		"match_reasons", "research_interests", "bio",
		"profile_url", "google_scholar", "research_gate",
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, row := range Rows(matches) {
		record := []string{
			row.Name,
			row.Title,
			row.Department,
			row.Email,
			strconv.FormatFloat(row.SimilarityScore, 'f', 3, 64),
			strings.Join(row.MatchReasons, "; "),
			strings.Join(row.ResearchInterests, "; "),
			row.Bio,
			row.ProfileURL,
			row.GoogleScholar,
			row.ResearchGate,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func bioPreview(bio string) string {
	runes := []rune(bio)
	if len(runes) <= bioPreviewLimit {
		return bio
	}
	return string(runes[:bioPreviewLimit]) + "..."
}
