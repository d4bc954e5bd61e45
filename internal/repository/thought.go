package repository

import (
	"context"
	"errors"

	"ripple/internal/cache"
	"ripple/internal/models"
	"ripple/internal/observability"

	"gorm.io/gorm"
)

// ThoughtRepository defines persistence operations for thoughts. Mutating
// methods re-read the row from the store before writing so a cached copy is
// never the basis of an update.
type ThoughtRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Thought, error)
	GetByIDs(ctx context.Context, ids []uint) ([]models.Thought, error)
	List(ctx context.Context) ([]models.Thought, error)
	Create(ctx context.Context, thought *models.Thought) error
	Update(ctx context.Context, id uint, thoughtText, username string) (*models.Thought, error)
	AddReaction(ctx context.Context, id uint, reaction models.Reaction) (*models.Thought, error)
	RemoveReaction(ctx context.Context, id uint, reactionID string) (*models.Thought, error)
	Delete(ctx context.Context, id uint) error
	DeleteByUsername(ctx context.Context, username string) ([]uint, error)
}

type thoughtRepository struct {
	db *gorm.DB
}

// NewThoughtRepository returns a new ThoughtRepository implementation.
func NewThoughtRepository(db *gorm.DB) ThoughtRepository {
	return &thoughtRepository{db: db}
}

func (r *thoughtRepository) GetByID(ctx context.Context, id uint) (*models.Thought, error) {
	ctx, span := observability.GetTraceLayer().TraceRepositoryMethod(ctx, "GetThoughtByID", "thoughts")
	defer span.End()

	var thought models.Thought
	key := cache.ThoughtKey(id)

	err := cache.Aside(ctx, key, &thought, cache.ThoughtTTL, func() error {
		if err := r.db.WithContext(ctx).First(&thought, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Thought")
			}
			return models.NewInternalError(err)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	thought.ReactionCount = len(thought.Reactions)
	return &thought, nil
}

func (r *thoughtRepository) GetByIDs(ctx context.Context, ids []uint) ([]models.Thought, error) {
	thoughts := []models.Thought{}
	if len(ids) == 0 {
		return thoughts, nil
	}
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&thoughts).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return thoughts, nil
}

func (r *thoughtRepository) List(ctx context.Context) ([]models.Thought, error) {
	ctx, span := observability.GetTraceLayer().TraceRepositoryMethod(ctx, "ListThoughts", "thoughts")
	defer span.End()

	thoughts := []models.Thought{}
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&thoughts).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return thoughts, nil
}

func (r *thoughtRepository) Create(ctx context.Context, thought *models.Thought) error {
	ctx, span := observability.GetTraceLayer().TraceRepositoryMethod(ctx, "CreateThought", "thoughts")
	defer span.End()

	if err := r.db.WithContext(ctx).Create(thought).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// Update overwrites thoughtText and username on the row. Empty arguments
// leave the corresponding field unchanged.
func (r *thoughtRepository) Update(ctx context.Context, id uint, thoughtText, username string) (*models.Thought, error) {
	return r.mutate(ctx, id, func(t *models.Thought) {
		if thoughtText != "" {
			t.ThoughtText = thoughtText
		}
		if username != "" {
			t.Username = username
		}
	})
}

// AddReaction appends a reaction sub-document to the owning thought row.
func (r *thoughtRepository) AddReaction(ctx context.Context, id uint, reaction models.Reaction) (*models.Thought, error) {
	return r.mutate(ctx, id, func(t *models.Thought) {
		t.Reactions = append(t.Reactions, reaction)
	})
}

// RemoveReaction removes the reaction with the given identifier. Removing a
// reaction that is not present is a no-op on the stored row.
func (r *thoughtRepository) RemoveReaction(ctx context.Context, id uint, reactionID string) (*models.Thought, error) {
	return r.mutate(ctx, id, func(t *models.Thought) {
		t.Reactions, _ = t.Reactions.Remove(reactionID)
	})
}

func (r *thoughtRepository) mutate(ctx context.Context, id uint, mutate func(*models.Thought)) (*models.Thought, error) {
	ctx, span := observability.GetTraceLayer().TraceRepositoryMethod(ctx, "MutateThought", "thoughts")
	defer span.End()

	var thought models.Thought
	if err := r.db.WithContext(ctx).First(&thought, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Thought")
		}
		return nil, models.NewInternalError(err)
	}

	mutate(&thought)
	if err := r.db.WithContext(ctx).Save(&thought).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	cache.InvalidateThought(ctx, thought.ID)
	return &thought, nil
}

func (r *thoughtRepository) Delete(ctx context.Context, id uint) error {
	ctx, span := observability.GetTraceLayer().TraceRepositoryMethod(ctx, "DeleteThought", "thoughts")
	defer span.End()

	if err := r.db.WithContext(ctx).Delete(&models.Thought{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateThought(ctx, id)
	return nil
}

// DeleteByUsername removes every thought authored by the username and
// returns the deleted thought IDs so callers can clean up references.
func (r *thoughtRepository) DeleteByUsername(ctx context.Context, username string) ([]uint, error) {
	ctx, span := observability.GetTraceLayer().TraceRepositoryMethod(ctx, "DeleteThoughtsByUsername", "thoughts")
	defer span.End()

	var ids []uint
	if err := r.db.WithContext(ctx).
		Model(&models.Thought{}).
		Where("username = ?", username).
		Pluck("id", &ids).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	if len(ids) == 0 {
		return []uint{}, nil
	}

	if err := r.db.WithContext(ctx).Where("username = ?", username).Delete(&models.Thought{}).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	for _, id := range ids {
		cache.InvalidateThought(ctx, id)
	}
	return ids, nil
}
