package server

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/candela-systems/scholarmatch/core"
	"github.com/candela-systems/scholarmatch/storage"
	"github.com/candela-systems/scholarmatch/storage/badger"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// fakeService serves canned match results over a real in-memory store.
type fakeService struct {
	repo   storage.ProfileRepository
	result *core.MatchResult
	err    error

	lastQuery      string
	lastThreshold  float64
	lastMaxResults int
}

func (f *fakeService) MatchStored(ctx context.Context, rawText string, threshold float64, maxResults int) (*core.MatchResult, error) {
	f.lastQuery = rawText
	f.lastThreshold = threshold
	f.lastMaxResults = maxResults
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func (f *fakeService) ProfileRepository() storage.ProfileRepository {
	return f.repo
}

func newTestServer(t *testing.T) (*fakeService, *gin.Engine) {
	t.Helper()

	repo, backend, err := badger.NewMemoryRepository()
	require.NoError(t, err)
	t.Cleanup(func() {
		repo.Close()
		backend.Close()
	})

	service := &fakeService{
		repo: repo,
		result: &core.MatchResult{
			Matches: []*core.Match{
				{
					Profile: &core.Profile{
						Name:       "Dr. Ada Osei",
						Department: "Mathematics",
						Bio:        "Number theory and cryptography.",
						URL:        "https://example.edu/osei",
					},
					Score:   0.91237,
					Reasons: []string{"Research involves cryptography"},
				},
			},
			TotalProfiles: 3,
		},
	}

	return service, New(service).Router()
}

func postJSON(router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestMatchEndpoint(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		service, router := newTestServer(t)

		w := postJSON(router, "/match", `{"interests": "cryptography and number theory"}`)
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Success       bool             `json:"success"`
			Matches       []map[string]any `json:"matches"`
			TotalMatches  int              `json:"total_matches"`
			TotalProfiles int              `json:"total_profiles"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

		assert.True(t, resp.Success)
		assert.Equal(t, 1, resp.TotalMatches)
		assert.Equal(t, 3, resp.TotalProfiles)
		require.Len(t, resp.Matches, 1)
		assert.Equal(t, "Dr. Ada Osei", resp.Matches[0]["name"])
		assert.Equal(t, 0.912, resp.Matches[0]["similarity_score"])

		assert.Equal(t, "cryptography and number theory", service.lastQuery)
		assert.Equal(t, core.DefaultThreshold, service.lastThreshold)
		assert.Equal(t, core.DefaultMaxResults, service.lastMaxResults)
	})

	t.Run("explicit knobs pass through", func(t *testing.T) {
		service, router := newTestServer(t)

		w := postJSON(router, "/match", `{"interests": "robotics", "threshold": 0.5, "max_results": 10}`)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 0.5, service.lastThreshold)
		assert.Equal(t, 10, service.lastMaxResults)
	})

	t.Run("missing interests", func(t *testing.T) {
		_, router := newTestServer(t)

		w := postJSON(router, "/match", `{"interests": "   "}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Research interests are required")
	})

	t.Run("malformed body", func(t *testing.T) {
		_, router := newTestServer(t)

		w := postJSON(router, "/match", `{`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("validation error maps to bad request", func(t *testing.T) {
		service, router := newTestServer(t)
		service.err = core.ValidateMatchRequest(&core.MatchRequest{RawText: "x"})

		w := postJSON(router, "/match", `{"interests": "robotics"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestLoadProfilesEndpoint(t *testing.T) {
	t.Run("stores valid profiles and reports skips", func(t *testing.T) {
		service, router := newTestServer(t)

		body := `[{"name": "Dr. One"}, {"title": "no name"}, {"name": "Dr. Two"}]`
		w := postJSON(router, "/profiles", body)
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Success bool `json:"success"`
			Count   int  `json:"count"`
			Skipped int  `json:"skipped"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.Equal(t, 2, resp.Count)
		assert.Equal(t, 1, resp.Skipped)

		count, err := service.repo.CountProfiles(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 2, count)
	})

	t.Run("invalid payload", func(t *testing.T) {
		_, router := newTestServer(t)

		w := postJSON(router, "/profiles", `{"not": "an array"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestProfileCountEndpoint(t *testing.T) {
	service, router := newTestServer(t)

	_, err := service.repo.AddProfiles(context.Background(),
		&core.Profile{Name: "Dr. A"},
		&core.Profile{Name: "Dr. B"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/profiles/count", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Count)
}

func TestExportEndpoint(t *testing.T) {
	t.Run("json attachment", func(t *testing.T) {
		_, router := newTestServer(t)

		w := postJSON(router, "/export", `{"interests": "cryptography", "format": "json"}`)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")
		assert.Contains(t, w.Header().Get("Content-Type"), "application/json")

		var rows []map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rows))
		require.Len(t, rows, 1)
		assert.Equal(t, "Dr. Ada Osei", rows[0]["name"])
	})

	t.Run("csv attachment", func(t *testing.T) {
		_, router := newTestServer(t)

		w := postJSON(router, "/export", `{"interests": "cryptography", "format": "csv"}`)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")

		records, err := csv.NewReader(w.Body).ReadAll()
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, "name", records[0][0])
		assert.Equal(t, "Dr. Ada Osei", records[1][0])
	})

	t.Run("default format is json", func(t *testing.T) {
		_, router := newTestServer(t)

		w := postJSON(router, "/export", `{"interests": "cryptography"}`)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Content-Type"), "application/json")
	})

	t.Run("unsupported format", func(t *testing.T) {
		_, router := newTestServer(t)

		w := postJSON(router, "/export", `{"interests": "cryptography", "format": "xml"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Unsupported format")
	})

	t.Run("missing interests", func(t *testing.T) {
		_, router := newTestServer(t)

		w := postJSON(router, "/export", `{"format": "json"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
