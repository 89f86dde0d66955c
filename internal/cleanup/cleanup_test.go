package cleanup

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"rajendranagar-portal/internal/database"
)

func setupCleanup(t *testing.T) (*Service, *database.GormDB) {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "portal.db")
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "Failed to open test database")

	store := database.NewGormDBFromDB(db)
	require.NoError(t, store.InitSchema())

	return NewService(store.DB()), store
}

func insertAged(t *testing.T, store *database.GormDB, title string, ageDays int) string {
	t.Helper()

	row := &database.PropertyRow{
		Title:        title,
		Area:         "Kismatpur",
		ContactPhone: "9123456780",
		CreatedAt:    time.Now().AddDate(0, 0, -ageDays),
	}
	require.NoError(t, store.InsertProperty(row))
	return row.ID
}

func TestFindPurgeable(t *testing.T) {
	service, store := setupCleanup(t)

	oldID := insertAged(t, store, "Very old", 200)
	insertAged(t, store, "Expired but within grace", 100)
	insertAged(t, store, "Active", 10)

	rows, err := service.FindPurgeable(DefaultPurgeConfig())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, oldID, rows[0].ID)
}

func TestPurgeDryRun(t *testing.T) {
	service, store := setupCleanup(t)

	id := insertAged(t, store, "Very old", 200)

	result, err := service.Purge(DefaultPurgeConfig())
	require.NoError(t, err)
	assert.True(t, result.DryRun)
	assert.Equal(t, 1, result.TargetCount)
	assert.Equal(t, 1, result.DeletedCount)
	assert.Equal(t, []string{id}, result.DeletedIDs)

	// Dry run never touches the rows
	var count int64
	require.NoError(t, store.DB().Model(&database.PropertyRow{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestPurgeDeletesAndLogs(t *testing.T) {
	service, store := setupCleanup(t)

	id := insertAged(t, store, "Very old", 200)
	keepID := insertAged(t, store, "Active", 10)

	cfg := DefaultPurgeConfig()
	cfg.DryRun = false

	result, err := service.Purge(cfg)
	require.NoError(t, err)
	assert.Equal(t, 1, result.DeletedCount)
	assert.Zero(t, result.ErrorCount)

	got, err := store.PropertyByID(id)
	require.NoError(t, err)
	assert.Nil(t, got)

	kept, err := store.PropertyByID(keepID)
	require.NoError(t, err)
	assert.NotNil(t, kept)

	logs, err := service.RecentDeleteLogs(10)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, id, logs[0].PropertyID)
	assert.Equal(t, "Very old", logs[0].Title)
	assert.Equal(t, database.DeleteReasonExpiredPurge, logs[0].Reason)
}

func TestPurgeSafetyCap(t *testing.T) {
	service, store := setupCleanup(t)

	for i := 0; i < 3; i++ {
		insertAged(t, store, "Very old", 200)
	}

	cfg := DefaultPurgeConfig()
	cfg.DryRun = false
	cfg.MaxDeletionCount = 2

	_, err := service.Purge(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "safety check failed")

	// Nothing was deleted
	var count int64
	require.NoError(t, store.DB().Model(&database.PropertyRow{}).Count(&count).Error)
	assert.Equal(t, int64(3), count)
}

func TestPurgeNothingToDo(t *testing.T) {
	service, store := setupCleanup(t)

	insertAged(t, store, "Active", 10)

	result, err := service.Purge(DefaultPurgeConfig())
	require.NoError(t, err)
	assert.Zero(t, result.TargetCount)
	assert.Zero(t, result.DeletedCount)
}
