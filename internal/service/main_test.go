package service

import (
	"context"
	"errors"
	"testing"

	"ripple/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// userRepoStub implements repository.UserRepository with per-test function
// fields. A nil field returns zero values.
type userRepoStub struct {
	getByIDFn       func(ctx context.Context, id uint) (*models.User, error)
	getByIDsFn      func(ctx context.Context, ids []uint) ([]models.User, error)
	getByUsernameFn func(ctx context.Context, username string) (*models.User, error)
	getByEmailFn    func(ctx context.Context, email string) (*models.User, error)
	listFn          func(ctx context.Context) ([]models.User, error)
	createFn        func(ctx context.Context, user *models.User) error
	updateFn        func(ctx context.Context, user *models.User) error
	deleteFn        func(ctx context.Context, id uint) error
	appendThoughtFn func(ctx context.Context, username string, thoughtID uint) (*models.User, error)
	removeThoughtFn func(ctx context.Context, username string, thoughtID uint) (*models.User, error)
	addFriendFn     func(ctx context.Context, userID, friendID uint) (*models.User, error)
	removeFriendFn  func(ctx context.Context, userID, friendID uint) (*models.User, error)
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	if s.getByIDFn != nil {
		return s.getByIDFn(ctx, id)
	}
	return nil, nil
}

func (s *userRepoStub) GetByIDs(ctx context.Context, ids []uint) ([]models.User, error) {
	if s.getByIDsFn != nil {
		return s.getByIDsFn(ctx, ids)
	}
	return []models.User{}, nil
}

func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	if s.getByUsernameFn != nil {
		return s.getByUsernameFn(ctx, username)
	}
	return nil, nil
}

func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if s.getByEmailFn != nil {
		return s.getByEmailFn(ctx, email)
	}
	return nil, nil
}

func (s *userRepoStub) List(ctx context.Context) ([]models.User, error) {
	if s.listFn != nil {
		return s.listFn(ctx)
	}
	return []models.User{}, nil
}

func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	if s.createFn != nil {
		return s.createFn(ctx, user)
	}
	return nil
}

func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	if s.updateFn != nil {
		return s.updateFn(ctx, user)
	}
	return nil
}

func (s *userRepoStub) Delete(ctx context.Context, id uint) error {
	if s.deleteFn != nil {
		return s.deleteFn(ctx, id)
	}
	return nil
}

func (s *userRepoStub) AppendThought(ctx context.Context, username string, thoughtID uint) (*models.User, error) {
	if s.appendThoughtFn != nil {
		return s.appendThoughtFn(ctx, username, thoughtID)
	}
	return nil, nil
}

func (s *userRepoStub) RemoveThought(ctx context.Context, username string, thoughtID uint) (*models.User, error) {
	if s.removeThoughtFn != nil {
		return s.removeThoughtFn(ctx, username, thoughtID)
	}
	return nil, nil
}

func (s *userRepoStub) AddFriend(ctx context.Context, userID, friendID uint) (*models.User, error) {
	if s.addFriendFn != nil {
		return s.addFriendFn(ctx, userID, friendID)
	}
	return nil, nil
}

func (s *userRepoStub) RemoveFriend(ctx context.Context, userID, friendID uint) (*models.User, error) {
	if s.removeFriendFn != nil {
		return s.removeFriendFn(ctx, userID, friendID)
	}
	return nil, nil
}

// thoughtRepoStub implements repository.ThoughtRepository with per-test
// function fields.
type thoughtRepoStub struct {
	getByIDFn          func(ctx context.Context, id uint) (*models.Thought, error)
	getByIDsFn         func(ctx context.Context, ids []uint) ([]models.Thought, error)
	listFn             func(ctx context.Context) ([]models.Thought, error)
	createFn           func(ctx context.Context, thought *models.Thought) error
	updateFn           func(ctx context.Context, id uint, thoughtText, username string) (*models.Thought, error)
	addReactionFn      func(ctx context.Context, id uint, reaction models.Reaction) (*models.Thought, error)
	removeReactionFn   func(ctx context.Context, id uint, reactionID string) (*models.Thought, error)
	deleteFn           func(ctx context.Context, id uint) error
	deleteByUsernameFn func(ctx context.Context, username string) ([]uint, error)
}

func (s *thoughtRepoStub) GetByID(ctx context.Context, id uint) (*models.Thought, error) {
	if s.getByIDFn != nil {
		return s.getByIDFn(ctx, id)
	}
	return nil, nil
}

func (s *thoughtRepoStub) GetByIDs(ctx context.Context, ids []uint) ([]models.Thought, error) {
	if s.getByIDsFn != nil {
		return s.getByIDsFn(ctx, ids)
	}
	return []models.Thought{}, nil
}

func (s *thoughtRepoStub) List(ctx context.Context) ([]models.Thought, error) {
	if s.listFn != nil {
		return s.listFn(ctx)
	}
	return []models.Thought{}, nil
}

func (s *thoughtRepoStub) Create(ctx context.Context, thought *models.Thought) error {
	if s.createFn != nil {
		return s.createFn(ctx, thought)
	}
	return nil
}

func (s *thoughtRepoStub) Update(ctx context.Context, id uint, thoughtText, username string) (*models.Thought, error) {
	if s.updateFn != nil {
		return s.updateFn(ctx, id, thoughtText, username)
	}
	return nil, nil
}

func (s *thoughtRepoStub) AddReaction(ctx context.Context, id uint, reaction models.Reaction) (*models.Thought, error) {
	if s.addReactionFn != nil {
		return s.addReactionFn(ctx, id, reaction)
	}
	return nil, nil
}

func (s *thoughtRepoStub) RemoveReaction(ctx context.Context, id uint, reactionID string) (*models.Thought, error) {
	if s.removeReactionFn != nil {
		return s.removeReactionFn(ctx, id, reactionID)
	}
	return nil, nil
}

func (s *thoughtRepoStub) Delete(ctx context.Context, id uint) error {
	if s.deleteFn != nil {
		return s.deleteFn(ctx, id)
	}
	return nil
}

func (s *thoughtRepoStub) DeleteByUsername(ctx context.Context, username string) ([]uint, error) {
	if s.deleteByUsernameFn != nil {
		return s.deleteByUsernameFn(ctx, username)
	}
	return []uint{}, nil
}

func noopUserRepo() *userRepoStub       { return &userRepoStub{} }
func noopThoughtRepo() *thoughtRepoStub { return &thoughtRepoStub{} }

// assertValidationError asserts that err is an AppError with the
// VALIDATION_ERROR code.
func assertValidationError(t *testing.T, err error) {
	t.Helper()

	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
}

// assertNotFoundError asserts that err is an AppError with the NOT_FOUND code.
func assertNotFoundError(t *testing.T, err error) {
	t.Helper()

	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}

var errDBDown = errors.New("database unavailable")
