package core

import (
	"strings"
	"testing"
)

func TestFingerprintFromContent(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "short content",
			content: "Alice Chen|https://example.edu/alice",
		},
		{
			name:    "empty string",
			content: "",
		},
		{
			name:    "long content",
			content: "A much longer identity string that should still hash consistently across calls",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id1 := FingerprintFromContent(tt.content)
			id2 := FingerprintFromContent(tt.content)

			if id1 != id2 {
				t.Errorf("FingerprintFromContent() produced different IDs for same content: %d vs %d", id1, id2)
			}
		})
	}
}

func TestFingerprintFromContent_Different(t *testing.T) {
	id1 := FingerprintFromContent("content1")
	id2 := FingerprintFromContent("content2")

	if id1 == id2 {
		t.Errorf("FingerprintFromContent() produced same ID for different content")
	}
}

func TestProfile_ResearchText(t *testing.T) {
	tests := []struct {
		name    string
		profile Profile
		want    string
	}{
		{
			name: "all fields",
			profile: Profile{
				Name:              "Alice Chen",
				Title:             "Assistant Professor",
				Department:        "Computer Science",
				Bio:               "Works on vision.",
				ResearchInterests: []string{"machine learning", "computer vision"},
				Publications:      []string{"Paper A", "Paper B"},
			},
			want: "machine learning computer vision Works on vision. Paper A Paper B Assistant Professor Computer Science",
		},
		{
			name: "empty fields skipped",
			profile: Profile{
				Name:              "Bob",
				ResearchInterests: []string{"robotics", ""},
				Title:             "Professor",
			},
			want: "robotics Professor",
		},
		{
			name:    "everything empty",
			profile: Profile{Name: "Carol"},
			want:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.profile.ResearchText()
			if got != tt.want {
				t.Errorf("ResearchText() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestProfile_ResearchText_PublicationCap(t *testing.T) {
	pubs := make([]string, 8)
	for i := range pubs {
		pubs[i] = "pub" + string(rune('0'+i))
	}

	profile := Profile{Name: "Dana", Publications: pubs}
	text := profile.ResearchText()

	if !strings.Contains(text, "pub4") {
		t.Errorf("ResearchText() should include the fifth publication, got %q", text)
	}
	if strings.Contains(text, "pub5") {
		t.Errorf("ResearchText() should cap at five publications, got %q", text)
	}
}

func TestQueryAnalysis_ComparisonText(t *testing.T) {
	tests := []struct {
		name     string
		analysis QueryAnalysis
		want     string
	}{
		{
			name: "raw text plus keywords",
			analysis: QueryAnalysis{
				RawText:  "deep learning",
				Keywords: []string{"deep", "learning"},
			},
			want: "deep learning deep learning",
		},
		{
			name:     "no keywords",
			analysis: QueryAnalysis{RawText: "robotics"},
			want:     "robotics",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.analysis.ComparisonText()
			if got != tt.want {
				t.Errorf("ComparisonText() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestProfileMUS_RoundTrip(t *testing.T) {
	original := Profile{
		Id:                42,
		Name:              "Alice Chen",
		Title:             "Assistant Professor",
		Department:        "Computer Science",
		Bio:               "Works on computer vision and learning systems.",
		ResearchInterests: []string{"machine learning", "computer vision"},
		Publications:      []string{"Paper A", "Paper B"},
		Email:             "alice@example.edu",
		URL:               "https://example.edu/alice",
		GoogleScholar:     "https://scholar.example/alice",
	}

	buf := make([]byte, ProfileMUS.Size(original))
	n := ProfileMUS.Marshal(original, buf)
	if n != len(buf) {
		t.Fatalf("Marshal wrote %d bytes, Size reported %d", n, len(buf))
	}

	decoded, n, err := ProfileMUS.Unmarshal(buf)
	if err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if n != len(buf) {
		t.Fatalf("Unmarshal consumed %d bytes of %d", n, len(buf))
	}

	if decoded.Id != original.Id || decoded.Name != original.Name ||
		decoded.Bio != original.Bio || decoded.GoogleScholar != original.GoogleScholar {
		t.Errorf("round trip mismatch: got %+v", decoded)
	}
	if len(decoded.ResearchInterests) != 2 || decoded.ResearchInterests[1] != "computer vision" {
		t.Errorf("research interests mismatch: got %v", decoded.ResearchInterests)
	}
}

func TestProfileMUS_Truncated(t *testing.T) {
	profile := Profile{Id: 7, Name: "Bob"}
	buf := make([]byte, ProfileMUS.Size(profile))
	ProfileMUS.Marshal(profile, buf)

	_, _, err := ProfileMUS.Unmarshal(buf[:2])
	if err == nil {
		t.Error("Unmarshal of truncated data should fail")
	}
}
