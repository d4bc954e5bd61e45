// Package service implements the application's business logic.
package service

import (
	"context"
	"log/slog"
	"strings"

	"ripple/internal/middleware"
	"ripple/internal/models"
	"ripple/internal/notifications"
	"ripple/internal/observability"
	"ripple/internal/repository"
	"ripple/internal/validation"
)

// UserService provides user directory business logic, including the
// mutual-friend set operations and the user-deletion thought cascade.
type UserService struct {
	userRepo    repository.UserRepository
	thoughtRepo repository.ThoughtRepository
	notifier    *notifications.Notifier
}

// CreateUserInput carries the fields accepted when creating a user.
type CreateUserInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// UpdateUserInput carries the fields accepted when updating a user. Empty
// fields are left unchanged.
type UpdateUserInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// NewUserService returns a new UserService.
func NewUserService(userRepo repository.UserRepository, thoughtRepo repository.ThoughtRepository, notifier *notifications.Notifier) *UserService {
	return &UserService{
		userRepo:    userRepo,
		thoughtRepo: thoughtRepo,
		notifier:    notifier,
	}
}

// ListUsers returns every user with thoughts and friends populated.
func (s *UserService) ListUsers(ctx context.Context) ([]models.UserView, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]models.UserView, 0, len(users))
	for _, user := range users {
		view, err := s.populate(ctx, user)
		if err != nil {
			return nil, err
		}
		views = append(views, *view)
	}
	return views, nil
}

// GetUser returns a single user with thoughts and friends populated.
func (s *UserService) GetUser(ctx context.Context, id uint) (*models.UserView, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.populate(ctx, *user)
}

// populate resolves the user's reference lists into full entities.
func (s *UserService) populate(ctx context.Context, user models.User) (*models.UserView, error) {
	thoughts, err := s.thoughtRepo.GetByIDs(ctx, user.ThoughtIDs)
	if err != nil {
		return nil, err
	}
	friends, err := s.userRepo.GetByIDs(ctx, user.FriendIDs)
	if err != nil {
		return nil, err
	}
	return models.NewUserView(user, thoughts, friends), nil
}

// CreateUser validates and persists a new user with empty reference lists.
func (s *UserService) CreateUser(ctx context.Context, in CreateUserInput) (*models.User, error) {
	username := strings.TrimSpace(in.Username)
	email := strings.TrimSpace(in.Email)

	if err := validation.ValidateUsername(username); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateEmail(email); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	if existing, err := s.userRepo.GetByUsername(ctx, username); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, models.NewValidationError("Username already taken")
	}
	if existing, err := s.userRepo.GetByEmail(ctx, email); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, models.NewValidationError("Email already taken")
	}

	user := &models.User{
		Username:   username,
		Email:      email,
		ThoughtIDs: models.IDList{},
		FriendIDs:  models.IDList{},
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.notifier.PublishUserEvent(ctx, notifications.EventUserCreated, user.ID, user.Username)
	return user, nil
}

// UpdateUser updates username and/or email. The denormalized username on
// previously authored thoughts is intentionally left untouched.
func (s *UserService) UpdateUser(ctx context.Context, id uint, in UpdateUserInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if username := strings.TrimSpace(in.Username); username != "" && username != user.Username {
		if err := validation.ValidateUsername(username); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		if existing, err := s.userRepo.GetByUsername(ctx, username); err != nil {
			return nil, err
		} else if existing != nil && existing.ID != user.ID {
			return nil, models.NewValidationError("Username already taken")
		}
		user.Username = username
	}
	if email := strings.TrimSpace(in.Email); email != "" && email != user.Email {
		if err := validation.ValidateEmail(email); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		if existing, err := s.userRepo.GetByEmail(ctx, email); err != nil {
			return nil, err
		} else if existing != nil && existing.ID != user.ID {
			return nil, models.NewValidationError("Email already taken")
		}
		user.Email = email
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	s.notifier.PublishUserEvent(ctx, notifications.EventUserUpdated, user.ID, user.Username)
	return user, nil
}

// DeleteUser removes the user, then removes every thought the user authored.
// The two writes are separate store operations; if the cascade fails the user
// is already gone and the orphaned thoughts are logged and counted.
func (s *UserService) DeleteUser(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.Delete(ctx, id); err != nil {
		return nil, err
	}

	deleted, err := s.thoughtRepo.DeleteByUsername(ctx, user.Username)
	if err != nil {
		middleware.Logger.WarnContext(ctx, "User deleted but thought cascade failed",
			slog.Uint64("user_id", uint64(id)),
			slog.String("username", user.Username),
			slog.String("error", err.Error()),
		)
		observability.RecordErrorInContext(ctx, err)
		observability.PartialWrites.WithLabelValues("delete_user").Inc()
	} else {
		observability.CascadeDeletions.Add(float64(len(deleted)))
	}

	s.notifier.PublishUserEvent(ctx, notifications.EventUserDeleted, id, user.Username)
	return user, nil
}

// AddFriend records a mutual friendship: friendID is added to the user's
// friends set and vice versa, in two separate single-row writes. Re-adding
// an existing friend is idempotent.
func (s *UserService) AddFriend(ctx context.Context, userID, friendID uint) (*models.UserView, error) {
	if userID == friendID {
		return nil, models.NewValidationError("Cannot friend yourself")
	}
	if _, err := s.userRepo.GetByID(ctx, friendID); err != nil {
		return nil, err
	}

	user, err := s.userRepo.AddFriend(ctx, userID, friendID)
	if err != nil {
		return nil, err
	}

	if _, err := s.userRepo.AddFriend(ctx, friendID, userID); err != nil {
		middleware.Logger.WarnContext(ctx, "Friendship recorded on one side only",
			slog.Uint64("user_id", uint64(userID)),
			slog.Uint64("friend_id", uint64(friendID)),
			slog.String("error", err.Error()),
		)
		observability.RecordErrorInContext(ctx, err)
		observability.PartialWrites.WithLabelValues("add_friend").Inc()
	}

	s.notifier.PublishUserEvent(ctx, notifications.EventFriendAdded, userID, user.Username)
	return s.populate(ctx, *user)
}

// RemoveFriend removes a mutual friendship from both sides. Both users must
// exist; removing a friendship that was never recorded is a silent no-op.
func (s *UserService) RemoveFriend(ctx context.Context, userID, friendID uint) (*models.UserView, error) {
	if _, err := s.userRepo.GetByID(ctx, friendID); err != nil {
		return nil, err
	}

	user, err := s.userRepo.RemoveFriend(ctx, userID, friendID)
	if err != nil {
		return nil, err
	}

	if _, err := s.userRepo.RemoveFriend(ctx, friendID, userID); err != nil {
		middleware.Logger.WarnContext(ctx, "Friendship removed on one side only",
			slog.Uint64("user_id", uint64(userID)),
			slog.Uint64("friend_id", uint64(friendID)),
			slog.String("error", err.Error()),
		)
		observability.RecordErrorInContext(ctx, err)
		observability.PartialWrites.WithLabelValues("remove_friend").Inc()
	}

	s.notifier.PublishUserEvent(ctx, notifications.EventFriendRemoved, userID, user.Username)
	return s.populate(ctx, *user)
}
