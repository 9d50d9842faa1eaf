package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenForTesting(t *testing.T) {
	db, err := OpenForTesting()
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, db.Close()) })

	assert.NoError(t, db.Ping())
}

func TestMigrationsApply(t *testing.T) {
	db, err := OpenForTesting()
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, db.Close()) })

	for _, table := range []string{"dishes", "cooking_methods", "fact_groups", "facts", "quotes"} {
		var name string
		err := db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		assert.NoError(t, err, "table %s should exist", table)
		assert.Equal(t, table, name)
	}
}

func TestMigrationsIdempotent(t *testing.T) {
	db, err := OpenForTesting()
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, db.Close()) })

	// Re-running against an already migrated database must be a no-op.
	require.NoError(t, runMigrations(db))

	var dishes int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM dishes").Scan(&dishes))
	assert.Greater(t, dishes, 0)
}

func TestSeedData(t *testing.T) {
	db, err := OpenForTesting()
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, db.Close()) })

	var kcal float64
	require.NoError(t, db.QueryRow("SELECT kcal_per_100g FROM dishes WHERE name = 'борщ'").Scan(&kcal))
	assert.Equal(t, 50.0, kcal)

	var mult float64
	require.NoError(t, db.QueryRow("SELECT multiplier FROM cooking_methods WHERE method = 'жарка'").Scan(&mult))
	assert.Equal(t, 1.2, mult)

	var fallback int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM facts WHERE group_id IS NULL").Scan(&fallback))
	assert.Greater(t, fallback, 0)
}
