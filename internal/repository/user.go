// Package repository implements the data access layer for the application.
package repository

import (
	"context"
	"errors"
	"strings"

	"ripple/internal/cache"
	"ripple/internal/models"
	"ripple/internal/observability"

	"gorm.io/gorm"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByIDs(ctx context.Context, ids []uint) ([]models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uint) error
	AppendThought(ctx context.Context, username string, thoughtID uint) (*models.User, error)
	RemoveThought(ctx context.Context, username string, thoughtID uint) (*models.User, error)
	AddFriend(ctx context.Context, userID, friendID uint) (*models.User, error)
	RemoveFriend(ctx context.Context, userID, friendID uint) (*models.User, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository returns a new UserRepository implementation.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	ctx, span := observability.GetTraceLayer().TraceRepositoryMethod(ctx, "GetUserByID", "users")
	defer span.End()

	var user models.User
	key := cache.UserKey(id)

	err := cache.Aside(ctx, key, &user, cache.UserTTL, func() error {
		if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("User")
			}
			return models.NewInternalError(err)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByIDs(ctx context.Context, ids []uint) ([]models.User, error) {
	users := []models.User{}
	if len(ids) == 0 {
		return users, nil
	}
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

func (r *userRepository) List(ctx context.Context) ([]models.User, error) {
	ctx, span := observability.GetTraceLayer().TraceRepositoryMethod(ctx, "ListUsers", "users")
	defer span.End()

	users := []models.User{}
	if err := r.db.WithContext(ctx).Order("id").Find(&users).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	ctx, span := observability.GetTraceLayer().TraceRepositoryMethod(ctx, "CreateUser", "users")
	defer span.End()

	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewValidationError("User already exists")
		}
		return models.NewInternalError(err)
	}
	return nil
}

// isUniqueConstraintError checks if a DB error is a unique constraint violation.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	// PostgreSQL unique violation SQLSTATE 23505
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "23505")
}

func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	ctx, span := observability.GetTraceLayer().TraceRepositoryMethod(ctx, "UpdateUser", "users")
	defer span.End()

	if err := r.db.WithContext(ctx).Save(user).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewValidationError("User already exists")
		}
		return models.NewInternalError(err)
	}
	cache.InvalidateUser(ctx, user.ID)
	return nil
}

func (r *userRepository) Delete(ctx context.Context, id uint) error {
	ctx, span := observability.GetTraceLayer().TraceRepositoryMethod(ctx, "DeleteUser", "users")
	defer span.End()

	if err := r.db.WithContext(ctx).Delete(&models.User{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateUser(ctx, id)
	return nil
}

// AppendThought adds a thought ID to the referenced user's thoughts list.
// A username with no matching user is a no-op that returns (nil, nil),
// mirroring a match-nothing filtered update.
func (r *userRepository) AppendThought(ctx context.Context, username string, thoughtID uint) (*models.User, error) {
	return r.mutateByUsername(ctx, username, func(u *models.User) {
		u.ThoughtIDs = u.ThoughtIDs.Add(thoughtID)
	})
}

// RemoveThought removes a thought ID from the referenced user's thoughts
// list, with the same match-nothing no-op semantics as AppendThought.
func (r *userRepository) RemoveThought(ctx context.Context, username string, thoughtID uint) (*models.User, error) {
	return r.mutateByUsername(ctx, username, func(u *models.User) {
		u.ThoughtIDs = u.ThoughtIDs.Remove(thoughtID)
	})
}

func (r *userRepository) mutateByUsername(ctx context.Context, username string, mutate func(*models.User)) (*models.User, error) {
	ctx, span := observability.GetTraceLayer().TraceRepositoryMethod(ctx, "MutateUserByUsername", "users")
	defer span.End()

	var user models.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}

	mutate(&user)
	if err := r.db.WithContext(ctx).Save(&user).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	cache.InvalidateUser(ctx, user.ID)
	return &user, nil
}

// AddFriend adds friendID to the user's friends set. Adding an existing
// friend is idempotent. Only the addressed user row is written; the service
// layer performs the symmetric write on the other side.
func (r *userRepository) AddFriend(ctx context.Context, userID, friendID uint) (*models.User, error) {
	return r.mutateByID(ctx, userID, func(u *models.User) {
		u.FriendIDs = u.FriendIDs.Add(friendID)
	})
}

// RemoveFriend removes friendID from the user's friends set. Removing an
// absent friend is a no-op.
func (r *userRepository) RemoveFriend(ctx context.Context, userID, friendID uint) (*models.User, error) {
	return r.mutateByID(ctx, userID, func(u *models.User) {
		u.FriendIDs = u.FriendIDs.Remove(friendID)
	})
}

func (r *userRepository) mutateByID(ctx context.Context, id uint, mutate func(*models.User)) (*models.User, error) {
	ctx, span := observability.GetTraceLayer().TraceRepositoryMethod(ctx, "MutateUserByID", "users")
	defer span.End()

	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("User")
		}
		return nil, models.NewInternalError(err)
	}

	mutate(&user)
	if err := r.db.WithContext(ctx).Save(&user).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	cache.InvalidateUser(ctx, user.ID)
	return &user, nil
}
