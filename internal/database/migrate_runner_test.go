package database

import (
	"context"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/RockyKGFV/2201CS78-Faculty-Recruitment/internal/middleware"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func openRunnerDB(t *testing.T) *gorm.DB {
	t.Helper()
	middleware.InitLogger("test")
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "runner.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&SchemaMigration{}))
	return db
}

func TestMigrationStore_ApplyAndRemove(t *testing.T) {
	db := openRunnerDB(t)
	ctx := context.Background()
	store := NewMigrationStore(db)

	m := Migration{
		Version:    900001,
		Name:       "notes",
		UpScript:   "CREATE TABLE notes (id INTEGER PRIMARY KEY, body TEXT)",
		DownScript: "DROP TABLE notes",
	}
	require.NoError(t, store.ApplyMigration(ctx, m))

	applied, err := store.GetAppliedMigrations(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int{900001}, applied)
	assert.True(t, db.Migrator().HasTable("notes"))

	require.NoError(t, store.RemoveMigration(ctx, m))
	applied, err = store.GetAppliedMigrations(ctx)
	require.NoError(t, err)
	assert.Empty(t, applied)
	assert.False(t, db.Migrator().HasTable("notes"))
}

func TestMigrationStore_FailedScriptLeavesNoRecord(t *testing.T) {
	db := openRunnerDB(t)
	ctx := context.Background()
	store := NewMigrationStore(db)

	err := store.ApplyMigration(ctx, Migration{Version: 900002, Name: "broken", UpScript: "CREATE TABLE"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "900002_broken")

	applied, err := store.GetAppliedMigrations(ctx)
	require.NoError(t, err)
	assert.Empty(t, applied)
}

func TestMigrationStore_NoTableMeansNothingApplied(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	applied, err := NewMigrationStore(db).GetAppliedMigrations(context.Background())
	require.NoError(t, err)
	assert.Empty(t, applied)
}

func TestUnknownVersions(t *testing.T) {
	registered := []Migration{{Version: 1}, {Version: 2}}
	assert.Empty(t, unknownVersions([]int{1, 2}, registered))
	assert.Equal(t, []string{"000007"}, unknownVersions([]int{1, 7}, registered))
}

func TestRollbackMigration_Errors(t *testing.T) {
	db := openRunnerDB(t)
	ctx := context.Background()

	err := RollbackMigration(ctx, db, 424242)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")

	first := GetMigrations()[0]
	err = RollbackMigration(ctx, db, first.Version)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "has not been applied")
}

func TestLoadMigrations(t *testing.T) {
	file := func(s string) *fstest.MapFile { return &fstest.MapFile{Data: []byte(s)} }

	t.Run("orders by version", func(t *testing.T) {
		got, err := loadMigrations(fstest.MapFS{
			"m/000002_referees.up.sql":   file("up2"),
			"m/000002_referees.down.sql": file("down2"),
			"m/000001_init.up.sql":       file("up1"),
			"m/000001_init.down.sql":     file("down1"),
			"m/README.md":                file("ignored"),
		}, "m")
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "000001_init", got[0].String())
		assert.Equal(t, "down2", got[1].DownScript)
	})

	t.Run("missing down script", func(t *testing.T) {
		_, err := loadMigrations(fstest.MapFS{"m/000001_init.up.sql": file("up")}, "m")
		assert.ErrorContains(t, err, "no down script")
	})

	t.Run("bad name", func(t *testing.T) {
		_, err := loadMigrations(fstest.MapFS{
			"m/init.up.sql":   file("up"),
			"m/init.down.sql": file("down"),
		}, "m")
		assert.ErrorContains(t, err, "NNNNNN_name")
	})

	t.Run("duplicate version", func(t *testing.T) {
		_, err := loadMigrations(fstest.MapFS{
			"m/000001_a.up.sql":   file("up"),
			"m/000001_a.down.sql": file("down"),
			"m/1_b.up.sql":        file("up"),
			"m/1_b.down.sql":      file("down"),
		}, "m")
		assert.ErrorContains(t, err, "already used")
	})
}

func TestEmbeddedMigrationsLoad(t *testing.T) {
	require.NotEmpty(t, GetMigrations())
	first := GetMigrations()[0]
	assert.Equal(t, 1, first.Version)
	require.NotNil(t, GetMigrationByVersion(1))
	assert.Equal(t, first.Name, GetMigrationByVersion(1).Name)
	assert.Nil(t, GetMigrationByVersion(999999))
}
