package service

import (
	"context"
	"log/slog"
	"strings"

	"ripple/internal/featureflags"
	"ripple/internal/middleware"
	"ripple/internal/models"
	"ripple/internal/notifications"
	"ripple/internal/observability"
	"ripple/internal/repository"
	"ripple/internal/validation"

	"github.com/google/uuid"
)

// ThoughtService provides thought ledger business logic, including the
// author-reference bookkeeping on the user directory.
type ThoughtService struct {
	thoughtRepo repository.ThoughtRepository
	userRepo    repository.UserRepository
	flags       *featureflags.Manager
	notifier    *notifications.Notifier
}

// CreateThoughtInput carries the fields accepted when creating a thought.
type CreateThoughtInput struct {
	ThoughtText string `json:"thoughtText"`
	Username    string `json:"username"`
}

// UpdateThoughtInput carries the fields accepted when updating a thought.
// Empty fields are left unchanged.
type UpdateThoughtInput struct {
	ThoughtText string `json:"thoughtText"`
	Username    string `json:"username"`
}

// CreateReactionInput carries the fields accepted when adding a reaction.
type CreateReactionInput struct {
	ReactionBody string `json:"reactionBody"`
	Username     string `json:"username"`
}

// NewThoughtService returns a new ThoughtService.
func NewThoughtService(thoughtRepo repository.ThoughtRepository, userRepo repository.UserRepository, flags *featureflags.Manager, notifier *notifications.Notifier) *ThoughtService {
	return &ThoughtService{
		thoughtRepo: thoughtRepo,
		userRepo:    userRepo,
		flags:       flags,
		notifier:    notifier,
	}
}

// ListThoughts returns every thought, newest first.
func (s *ThoughtService) ListThoughts(ctx context.Context) ([]models.Thought, error) {
	return s.thoughtRepo.List(ctx)
}

// GetThought returns a single thought with its embedded reactions.
func (s *ThoughtService) GetThought(ctx context.Context, id uint) (*models.Thought, error) {
	return s.thoughtRepo.GetByID(ctx, id)
}

// CreateThought persists the thought, then appends its ID to the author's
// thoughts list in a second, separate write. When the username matches no
// user the append is a no-op and the thought is left without an author
// reference, unless strict author checking is enabled.
func (s *ThoughtService) CreateThought(ctx context.Context, in CreateThoughtInput) (*models.Thought, error) {
	text := strings.TrimSpace(in.ThoughtText)
	username := strings.TrimSpace(in.Username)

	if err := validation.ValidateBody("thoughtText", text); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if username == "" {
		return nil, models.NewValidationError("username is required")
	}

	if s.flags.Enabled(featureflags.StrictThoughtAuthors, 0) {
		author, err := s.userRepo.GetByUsername(ctx, username)
		if err != nil {
			return nil, err
		}
		if author == nil {
			return nil, models.NewValidationError("No user found with that username")
		}
	}

	thought := &models.Thought{
		ThoughtText: text,
		Username:    username,
	}
	if err := s.thoughtRepo.Create(ctx, thought); err != nil {
		return nil, err
	}

	author, err := s.userRepo.AppendThought(ctx, username, thought.ID)
	switch {
	case err != nil:
		middleware.Logger.WarnContext(ctx, "Thought created but author append failed",
			slog.Uint64("thought_id", uint64(thought.ID)),
			slog.String("username", username),
			slog.String("error", err.Error()),
		)
		observability.RecordErrorInContext(ctx, err)
		observability.PartialWrites.WithLabelValues("create_thought").Inc()
	case author == nil:
		middleware.Logger.WarnContext(ctx, "Thought created without a matching author",
			slog.Uint64("thought_id", uint64(thought.ID)),
			slog.String("username", username),
		)
		observability.OrphanedThoughts.Inc()
	}

	s.notifier.PublishThoughtEvent(ctx, notifications.EventThoughtCreated, thought.ID, username)
	return thought, nil
}

// UpdateThought updates thoughtText and/or username. Changing the username
// deliberately does not touch either user's thoughts reference list.
func (s *ThoughtService) UpdateThought(ctx context.Context, id uint, in UpdateThoughtInput) (*models.Thought, error) {
	text := strings.TrimSpace(in.ThoughtText)
	username := strings.TrimSpace(in.Username)

	if text != "" {
		if err := validation.ValidateBody("thoughtText", text); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
	}

	thought, err := s.thoughtRepo.Update(ctx, id, text, username)
	if err != nil {
		return nil, err
	}

	s.notifier.PublishThoughtEvent(ctx, notifications.EventThoughtUpdated, thought.ID, thought.Username)
	return thought, nil
}

// DeleteThought removes the thought, then removes its ID from the author's
// thoughts list in a second write. An author that no longer exists makes the
// second write a no-op.
func (s *ThoughtService) DeleteThought(ctx context.Context, id uint) (*models.Thought, error) {
	thought, err := s.thoughtRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.thoughtRepo.Delete(ctx, id); err != nil {
		return nil, err
	}

	if _, err := s.userRepo.RemoveThought(ctx, thought.Username, id); err != nil {
		middleware.Logger.WarnContext(ctx, "Thought deleted but author reference removal failed",
			slog.Uint64("thought_id", uint64(id)),
			slog.String("username", thought.Username),
			slog.String("error", err.Error()),
		)
		observability.RecordErrorInContext(ctx, err)
		observability.PartialWrites.WithLabelValues("delete_thought").Inc()
	}

	s.notifier.PublishThoughtEvent(ctx, notifications.EventThoughtDeleted, id, thought.Username)
	return thought, nil
}

// AddReaction appends a reaction sub-document to the thought. A single row
// write on the owning thought; no other entity is touched.
func (s *ThoughtService) AddReaction(ctx context.Context, thoughtID uint, in CreateReactionInput) (*models.Thought, error) {
	body := strings.TrimSpace(in.ReactionBody)
	username := strings.TrimSpace(in.Username)

	if err := validation.ValidateBody("reactionBody", body); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if username == "" {
		return nil, models.NewValidationError("username is required")
	}

	reaction := models.Reaction{
		ReactionID:   uuid.NewString(),
		ReactionBody: body,
		Username:     username,
		CreatedAt:    models.Now(),
	}
	thought, err := s.thoughtRepo.AddReaction(ctx, thoughtID, reaction)
	if err != nil {
		return nil, err
	}

	s.notifier.PublishThoughtEvent(ctx, notifications.EventReactionAdded, thought.ID, username)
	return thought, nil
}

// RemoveReaction removes the identified reaction from the thought. Removing
// a reaction that does not exist succeeds and returns the unchanged thought.
func (s *ThoughtService) RemoveReaction(ctx context.Context, thoughtID uint, reactionID string) (*models.Thought, error) {
	thought, err := s.thoughtRepo.RemoveReaction(ctx, thoughtID, reactionID)
	if err != nil {
		return nil, err
	}

	s.notifier.PublishThoughtEvent(ctx, notifications.EventReactionRemoved, thought.ID, thought.Username)
	return thought, nil
}
