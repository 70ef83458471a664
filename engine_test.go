package scholarmatch

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/candela-systems/scholarmatch/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEngine(t *testing.T) {
	t.Run("create new engine", func(t *testing.T) {
		tmpDir := filepath.Join(t.TempDir(), "profiles_db")
		engine, err := NewEngine(tmpDir)
		require.NoError(t, err)
		require.NotNil(t, engine)
		defer engine.Close()

		assert.NotNil(t, engine.ProfileRepository())
		assert.NotNil(t, engine.Matcher())
		assert.NotNil(t, engine.backend)
		assert.NotNil(t, engine.logger)
	})

	t.Run("in-memory storage", func(t *testing.T) {
		engine, err := NewEngine("", WithInMemoryStorage())
		require.NoError(t, err)
		require.NotNil(t, engine)
		defer engine.Close()
	})

	t.Run("error with invalid path", func(t *testing.T) {
		tmpFile := filepath.Join(t.TempDir(), "not_a_dir")
		require.NoError(t, os.WriteFile(tmpFile, []byte("test"), 0644))

		engine, err := NewEngine(tmpFile)
		assert.Error(t, err)
		assert.Nil(t, engine)
	})
}

func TestEngine_Close(t *testing.T) {
	engine, err := NewEngine("", WithInMemoryStorage())
	require.NoError(t, err)

	assert.NoError(t, engine.Close())
}

func TestEngine_LoadCorpus(t *testing.T) {
	engine, err := NewEngine("", WithInMemoryStorage())
	require.NoError(t, err)
	defer engine.Close()

	ctx := context.Background()

	path := filepath.Join(t.TempDir(), "profiles.json")
	data := `[
		{"name": "Dr. One", "department": "Physics"},
		{"name": ""},
		{"name": "Dr. Two"}
	]`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	added, skipped, err := engine.LoadCorpus(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, 2, added)
	assert.Equal(t, 1, skipped)

	count, err := engine.ProfileRepository().CountProfiles(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	t.Run("reloading dedupes", func(t *testing.T) {
		_, _, err := engine.LoadCorpus(ctx, path)
		require.NoError(t, err)

		count, err := engine.ProfileRepository().CountProfiles(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, count)
	})

	t.Run("missing file", func(t *testing.T) {
		_, _, err := engine.LoadCorpus(ctx, filepath.Join(t.TempDir(), "missing.json"))
		assert.Error(t, err)
	})
}

func TestEngine_MatchStored_EmptyCorpus(t *testing.T) {
	engine, err := NewEngine("", WithInMemoryStorage())
	require.NoError(t, err)
	defer engine.Close()

	_, err = engine.MatchStored(context.Background(), "machine learning", core.DefaultThreshold, 0)
	assert.ErrorIs(t, err, core.ErrEmptyCorpus)
}
