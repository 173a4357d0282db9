package seed

import (
	"testing"

	"inkwell/internal/database"
	"inkwell/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func TestSeed(t *testing.T) {
	db := setupTestDB(t)

	err := Seed(db, Options{NumUsers: 10, NumCreations: 30, ShouldClean: true})
	require.NoError(t, err)

	var entCount int64
	require.NoError(t, db.Model(&models.Entitlement{}).Count(&entCount).Error)
	assert.EqualValues(t, 10, entCount)

	var creationCount int64
	require.NoError(t, db.Model(&models.Creation{}).Count(&creationCount).Error)
	assert.EqualValues(t, 30, creationCount)

	// every creation belongs to a seeded user and carries a uuid
	var creations []models.Creation
	require.NoError(t, db.Find(&creations).Error)
	for _, c := range creations {
		assert.NotEmpty(t, c.ID)
		assert.NotEmpty(t, c.UserID)
		assert.NotEmpty(t, c.Type)
	}
}

func TestSeed_CleanRemovesOldData(t *testing.T) {
	db := setupTestDB(t)

	require.NoError(t, Seed(db, Options{NumUsers: 5, NumCreations: 5, ShouldClean: true}))
	require.NoError(t, Seed(db, Options{NumUsers: 3, NumCreations: 4, ShouldClean: true}))

	var entCount int64
	require.NoError(t, db.Model(&models.Entitlement{}).Count(&entCount).Error)
	assert.EqualValues(t, 3, entCount)

	var creationCount int64
	require.NoError(t, db.Model(&models.Creation{}).Count(&creationCount).Error)
	assert.EqualValues(t, 4, creationCount)
}
