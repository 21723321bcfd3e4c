package repositories

import (
	"context"
	"testing"

	"journal-transporter/transporter/internal/db/dbtest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsRepository_SetAndGet(t *testing.T) {
	repo := NewSettingsRepository(dbtest.Open(t))
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "Journal", 1, "general", "journal_name", "Test Journal"))

	v, ok, err := repo.Get(ctx, "Journal", 1, "general", "journal_name")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "Test Journal", v)

	// upsert replaces the value instead of failing on the unique key
	require.NoError(t, repo.Set(ctx, "Journal", 1, "general", "journal_name", "Renamed"))
	v, _, err = repo.Get(ctx, "Journal", 1, "general", "journal_name")
	require.NoError(t, err)
	assert.Equal(t, "Renamed", v)

	_, ok, err = repo.Get(ctx, "Journal", 2, "general", "journal_name")
	require.NoError(t, err)
	assert.False(t, ok)

	has, err := repo.Has(ctx, "Journal", 1, "general", "journal_name")
	require.NoError(t, err)
	assert.True(t, has)
}
