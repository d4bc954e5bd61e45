// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"ripple/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Factory builds domain entities and persists them to the database.
// It is a thin helper used by seed profiles and tests.
type Factory struct {
	db  *gorm.DB
	rng *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	// seed gofakeit for richer content
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		db:  db,
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// CreateUser constructs and persists a sample `models.User`.
// Optional override functions may modify the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	user := &models.User{
		Username: gofakeit.Username() + fmt.Sprintf("%d", gofakeit.Number(100, 999)),
		Email:    gofakeit.Email(),
	}

	for _, override := range overrides {
		override(user)
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreateThought constructs and persists a thought authored by the user,
// and appends its ID to the author's thoughts list.
func (f *Factory) CreateThought(user *models.User, overrides ...func(*models.Thought)) (*models.Thought, error) {
	thought := &models.Thought{
		ThoughtText: f.thoughtText(),
		Username:    user.Username,
		CreatedAt:   f.pastTimestamp(90),
	}

	for _, override := range overrides {
		override(thought)
	}

	if err := f.db.Create(thought).Error; err != nil {
		return nil, err
	}

	user.ThoughtIDs = user.ThoughtIDs.Add(thought.ID)
	if err := f.db.Save(user).Error; err != nil {
		return nil, err
	}
	return thought, nil
}

// AddReaction appends a generated reaction from the user to the thought.
func (f *Factory) AddReaction(thought *models.Thought, user *models.User) error {
	thought.Reactions = append(thought.Reactions, models.Reaction{
		ReactionID:   uuid.NewString(),
		ReactionBody: f.reactionBody(),
		Username:     user.Username,
		CreatedAt:    f.pastTimestamp(30),
	})
	return f.db.Save(thought).Error
}

// Befriend records a mutual friendship between two users.
func (f *Factory) Befriend(a, b *models.User) error {
	a.FriendIDs = a.FriendIDs.Add(b.ID)
	b.FriendIDs = b.FriendIDs.Add(a.ID)
	if err := f.db.Save(a).Error; err != nil {
		return err
	}
	return f.db.Save(b).Error
}

func (f *Factory) thoughtText() string {
	text := gofakeit.Sentence(f.rng.Intn(12) + 4)
	if len(text) > models.MaxBodyLength {
		text = text[:models.MaxBodyLength]
	}
	return text
}

func (f *Factory) reactionBody() string {
	bodies := []string{
		"Love this!", "So true.", "Couldn't agree more.", "Interesting take.",
		"Had to read this twice.", "This made my day.", "Big if true.",
	}
	return bodies[f.rng.Intn(len(bodies))]
}

// pastTimestamp returns a timestamp spread over the last maxDays days.
func (f *Factory) pastTimestamp(maxDays int) models.Timestamp {
	daysBack := f.rng.Intn(maxDays)
	hoursBack := f.rng.Intn(24)
	minsBack := f.rng.Intn(60)
	t := time.Now().UTC().Add(-time.Duration(daysBack)*24*time.Hour -
		time.Duration(hoursBack)*time.Hour -
		time.Duration(minsBack)*time.Minute)
	return models.Timestamp{Time: t}
}
