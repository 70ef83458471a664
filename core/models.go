package core

import (
	"encoding/binary"
	"strings"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for stored profiles.
// It is generated from a database sequence at ingest time, so IDs
// preserve the original corpus order.
type ID uint64

// FingerprintFromContent generates a deterministic fingerprint from text
// content using BLAKE2b hashing. Identical content produces identical
// fingerprints, which is how re-ingested profiles are deduplicated.
func FingerprintFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// maxPublications bounds how many publications contribute to the
// consolidated comparison text. Listing order is preserved.
const maxPublications = 5

// Profile is a candidate record produced by the external collector.
// The matching engine consumes profiles read-only; it never validates
// upstream-extracted fields beyond the name requirement.
type Profile struct {
	Id                ID
	Name              string
	Title             string
	Department        string
	Bio               string
	ResearchInterests []string
	Publications      []string
	Email             string
	URL               string
	GoogleScholar     string
	ResearchGate      string
	LinkedIn          string
	Website           string
	InsertedAt        time.Time // When the profile was ingested into the store
	UpdatedAt         time.Time // When the stored profile was last updated
}

// Fingerprint returns the content fingerprint used for ingest dedupe.
// Name plus source URL identifies a profile across collector runs.
func (p *Profile) Fingerprint() ID {
	return FingerprintFromContent(p.Name + "|" + p.URL)
}

// ResearchText consolidates a profile into the single string used for
// similarity comparison: research interests, bio, the first five
// publications, title, and department, space-joined with empty fields
// skipped. Pure function of the profile.
func (p *Profile) ResearchText() string {
	parts := make([]string, 0, len(p.ResearchInterests)+maxPublications+3)
	for _, interest := range p.ResearchInterests {
		if interest != "" {
			parts = append(parts, interest)
		}
	}
	if p.Bio != "" {
		parts = append(parts, p.Bio)
	}
	pubs := p.Publications
	if len(pubs) > maxPublications {
		pubs = pubs[:maxPublications]
	}
	for _, pub := range pubs {
		if pub != "" {
			parts = append(parts, pub)
		}
	}
	if p.Title != "" {
		parts = append(parts, p.Title)
	}
	if p.Department != "" {
		parts = append(parts, p.Department)
	}
	return strings.Join(parts, " ")
}

// QueryAnalysis is the structured form of a free-text interest statement.
// It is ephemeral: recomputed per request, never persisted.
type QueryAnalysis struct {
	RawText                      string
	PrimaryAreas                 []string
	Methodologies                []string
	Keywords                     []string
	SpecificTopics               []string
	InterdisciplinaryConnections []string
}

// ComparisonText returns the query-side text used for similarity scoring:
// the raw query concatenated with the extracted keywords. Repeating the
// raw phrasing biases the score toward the user's own wording.
func (a *QueryAnalysis) ComparisonText() string {
	if len(a.Keywords) == 0 {
		return a.RawText
	}
	return a.RawText + " " + strings.Join(a.Keywords, " ")
}

// Match pairs a profile with its similarity score and, after the
// explanation pass, the human-readable reasons for the match.
// A Match shares the profile with the corpus; it does not own it.
type Match struct {
	Profile *Profile
	Score   float64
	Reasons []string
}

// MatchResult is the outcome of one full match request.
// Matches is ordered non-increasing by score, capped at the request's
// MaxResults, and every score is >= the request's Threshold.
type MatchResult struct {
	Matches       []*Match
	TotalProfiles int
	Skipped       int // profiles dropped for missing name, empty text, or per-item failure
}

// MatchRequest carries one matching invocation.
type MatchRequest struct {
	RawText    string
	Profiles   []*Profile
	Threshold  float64
	MaxResults int
}

// Default knobs for match requests.
const (
	DefaultThreshold  = 0.7
	DefaultMaxResults = 50
)
