package repository

import (
	"testing"
	"time"

	"bistdesk/internal/util"

	"github.com/stretchr/testify/require"
)

func Test_watchlistRepository(t *testing.T) {
	t.Run("duplicate add reports false without error", func(t *testing.T) {
		db, err := util.NewTestDb()
		require.NoError(t, err)
		defer db.Close()
		repo := NewWatchlistRepository(db)

		added, err := repo.Add("THYAO", time.Now())
		require.NoError(t, err)
		require.True(t, added)

		added, err = repo.Add("THYAO", time.Now())
		require.NoError(t, err)
		require.False(t, added)

		entries, err := repo.List()
		require.NoError(t, err)
		require.Len(t, entries, 1)
		require.Equal(t, "THYAO", entries[0].Symbol)
	})

	t.Run("remove is a no-op for unknown symbols", func(t *testing.T) {
		db, err := util.NewTestDb()
		require.NoError(t, err)
		defer db.Close()
		repo := NewWatchlistRepository(db)

		require.NoError(t, repo.Remove("GARAN"))

		added, err := repo.Add("GARAN", time.Now())
		require.NoError(t, err)
		require.True(t, added)
		require.NoError(t, repo.Remove("GARAN"))

		entries, err := repo.List()
		require.NoError(t, err)
		require.Empty(t, entries)
	})
}
