package db_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/l2skilldata/internal/db"
	"github.com/udisondev/l2skilldata/internal/skilldata"
	"github.com/udisondev/l2skilldata/internal/testutil"
)

func TestNpcRepository_SaveAndLoad(t *testing.T) {
	pool := testutil.SetupTestDB(t)
	repo := db.NewNpcRepository(pool)
	ctx := context.Background()

	npcs := testutil.TestNpcs()
	require.NoError(t, repo.SaveAll(ctx, npcs))

	got, err := repo.LoadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, npcs, got, "load must return npcs in import order with loot order kept")
}

func TestNpcRepository_SaveAllReplaces(t *testing.T) {
	pool := testutil.SetupTestDB(t)
	repo := db.NewNpcRepository(pool)
	ctx := context.Background()

	require.NoError(t, repo.SaveAll(ctx, testutil.TestNpcs()))

	only := testutil.TestNpcs()[1:2]
	require.NoError(t, repo.SaveAll(ctx, only))

	got, err := repo.LoadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, only, got)
}

func TestNpcRepository_SkipsDuplicateIDs(t *testing.T) {
	pool := testutil.SetupTestDB(t)
	repo := db.NewNpcRepository(pool)
	ctx := context.Background()

	npcs := testutil.TestNpcs()
	dup := npcs[0]
	dup.Name = "Impostor"
	require.NoError(t, repo.SaveAll(ctx, append(npcs, dup)))

	got, err := repo.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, got, len(npcs))
	assert.Equal(t, "Gremlin", got[0].Name)
}

func TestNpcRepository_Empty(t *testing.T) {
	pool := testutil.SetupTestDB(t)
	repo := db.NewNpcRepository(pool)

	require.NoError(t, repo.SaveAll(context.Background(), nil))
	got, err := repo.LoadAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestNpcRepository_SynthesizesLikeSource(t *testing.T) {
	pool := testutil.SetupTestDB(t)
	repo := db.NewNpcRepository(pool)
	ctx := context.Background()

	npcs := testutil.TestNpcs()
	require.NoError(t, repo.SaveAll(ctx, npcs))
	stored, err := repo.LoadAll(ctx)
	require.NoError(t, err)

	s := &skilldata.Synthesizer{Categories: skilldata.AllEnabled(), Rates: skilldata.DefaultScaledRates()}
	assert.Equal(t, s.Synthesize(npcs), s.Synthesize(stored))
}
