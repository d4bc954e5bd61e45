package repository

import (
	"context"
	"testing"

	"ripple/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens an in-memory SQLite database with the full schema. The
// JSON serializer columns and lifecycle hooks behave the same as against
// Postgres, so the repositories run unmodified.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Thought{}))
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()

	user := &models.User{Username: username, Email: username + "@example.com"}
	require.NoError(t, db.WithContext(context.Background()).Create(user).Error)
	return user
}

func createTestThought(t *testing.T, db *gorm.DB, username, text string) *models.Thought {
	t.Helper()

	thought := &models.Thought{ThoughtText: text, Username: username}
	require.NoError(t, db.WithContext(context.Background()).Create(thought).Error)
	return thought
}
