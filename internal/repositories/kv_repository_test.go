package repositories_test

import (
	"fmt"
	"strings"
	"testing"

	"parfum/internal/config"
	"parfum/internal/database"
	"parfum/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSQLiteRepo(t *testing.T) *repositories.GORMKeyValueRepository {
	t.Helper()
	db, err := database.Open(config.StorageConfig{
		Driver: config.DriverSQLite,
		DSN:    fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_")),
	})
	require.NoError(t, err)
	t.Cleanup(func() { database.Close(db) })
	return repositories.NewGORMKeyValueRepository(db)
}

func TestKeyValueRepositories(t *testing.T) {
	backends := map[string]func(t *testing.T) repositories.KeyValueRepository{
		"memory": func(t *testing.T) repositories.KeyValueRepository { return repositories.NewMemoryKeyValueRepository() },
		"gorm":   func(t *testing.T) repositories.KeyValueRepository { return newSQLiteRepo(t) },
	}

	for name, newRepo := range backends {
		t.Run(name, func(t *testing.T) {
			repo := newRepo(t)

			_, ok, err := repo.Get("admin_logged_in")
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, repo.Set("admin_logged_in", "true"))
			value, ok, err := repo.Get("admin_logged_in")
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, "true", value)

			// Overwrite keeps a single entry.
			require.NoError(t, repo.Set("admin_logged_in", "false"))
			value, _, err = repo.Get("admin_logged_in")
			require.NoError(t, err)
			assert.Equal(t, "false", value)

			require.NoError(t, repo.Delete("admin_logged_in"))
			_, ok, err = repo.Get("admin_logged_in")
			require.NoError(t, err)
			assert.False(t, ok)

			// Deleting twice is fine.
			assert.NoError(t, repo.Delete("admin_logged_in"))
		})
	}
}

func TestNopKeyValueRepository(t *testing.T) {
	var repo repositories.KeyValueRepository = repositories.NopKeyValueRepository{}
	require.NoError(t, repo.Set("k", "v"))
	_, ok, err := repo.Get("k")
	assert.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, repo.Delete("k"))
}
