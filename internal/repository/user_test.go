package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"ripple/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestUserRepository_GetByID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	seeded := createTestUser(t, db, "ada")

	got, err := repo.GetByID(ctx, seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, "ada", got.Username)
	assert.Equal(t, models.IDList{}, got.ThoughtIDs)
	assert.Equal(t, models.IDList{}, got.FriendIDs)

	_, err = repo.GetByID(ctx, 9999)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
	assert.Equal(t, "User not found", appErr.Message)
}

func TestUserRepository_GetByIDs(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	ada := createTestUser(t, db, "ada")
	grace := createTestUser(t, db, "grace")

	got, err := repo.GetByIDs(ctx, []uint{ada.ID, grace.ID, 9999})
	require.NoError(t, err)
	assert.Len(t, got, 2)

	empty, err := repo.GetByIDs(ctx, nil)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestUserRepository_GetByUsername(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	createTestUser(t, db, "ada")

	got, err := repo.GetByUsername(ctx, "ada")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "ada", got.Username)

	missing, err := repo.GetByUsername(ctx, "nobody")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestUserRepository_Create_DuplicateUsername(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.User{Username: "ada", Email: "ada@example.com"}))

	err := repo.Create(ctx, &models.User{Username: "ada", Email: "other@example.com"})
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
}

func TestUserRepository_Update(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db, "ada")
	user.Email = "ada.lovelace@example.com"
	require.NoError(t, repo.Update(ctx, user))

	got, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "ada.lovelace@example.com", got.Email)
}

func TestUserRepository_Delete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db, "ada")
	require.NoError(t, repo.Delete(ctx, user.ID))

	_, err := repo.GetByID(ctx, user.ID)
	assert.Error(t, err)
}

func TestUserRepository_AppendAndRemoveThought(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db, "ada")

	got, err := repo.AppendThought(ctx, "ada", 10)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, models.IDList{10}, got.ThoughtIDs)

	// Appending the same ID twice keeps the list a set.
	got, err = repo.AppendThought(ctx, "ada", 10)
	require.NoError(t, err)
	assert.Equal(t, models.IDList{10}, got.ThoughtIDs)

	got, err = repo.RemoveThought(ctx, "ada", 10)
	require.NoError(t, err)
	assert.Empty(t, got.ThoughtIDs)

	// The list survives a round trip through the serialized column.
	var reloaded models.User
	require.NoError(t, db.First(&reloaded, user.ID).Error)
	assert.Equal(t, models.IDList{}, reloaded.ThoughtIDs)
}

func TestUserRepository_ThoughtMutations_UnknownUsernameIsNoop(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	got, err := repo.AppendThought(ctx, "nobody", 1)
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = repo.RemoveThought(ctx, "nobody", 1)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestUserRepository_AddAndRemoveFriend(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	ada := createTestUser(t, db, "ada")
	grace := createTestUser(t, db, "grace")

	got, err := repo.AddFriend(ctx, ada.ID, grace.ID)
	require.NoError(t, err)
	assert.Equal(t, models.IDList{grace.ID}, got.FriendIDs)
	assert.Equal(t, 1, got.FriendCount)

	// Idempotent add.
	got, err = repo.AddFriend(ctx, ada.ID, grace.ID)
	require.NoError(t, err)
	assert.Equal(t, models.IDList{grace.ID}, got.FriendIDs)

	got, err = repo.RemoveFriend(ctx, ada.ID, grace.ID)
	require.NoError(t, err)
	assert.Empty(t, got.FriendIDs)
	assert.Equal(t, 0, got.FriendCount)

	// Removing an absent friend is a no-op.
	got, err = repo.RemoveFriend(ctx, ada.ID, grace.ID)
	require.NoError(t, err)
	assert.Empty(t, got.FriendIDs)
}

func TestUserRepository_AddFriend_UnknownUser(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)

	_, err := repo.AddFriend(context.Background(), 9999, 1)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}

// setupMockDB wires gorm over sqlmock for failure-path tests that need a
// database error rather than a missing row.
func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func TestUserRepository_List_DatabaseError(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users"`)).
		WillReturnError(errors.New("connection reset"))

	_, err := repo.List(context.Background())
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "INTERNAL_ERROR", appErr.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}
