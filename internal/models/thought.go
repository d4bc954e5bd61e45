// Package models contains data structures for the application's domain models.
package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// MaxBodyLength is the upper character bound for thought and reaction bodies.
const MaxBodyLength = 280

// displayLayout is the fixed human-readable format used when rendering
// thought and reaction timestamps.
const displayLayout = "Jan 2, 2006 at 3:04pm"

// Timestamp is a time.Time that marshals to the application's display format
// instead of RFC 3339.
type Timestamp struct {
	time.Time
}

// Now returns the current time as a Timestamp.
func Now() Timestamp {
	return Timestamp{Time: time.Now().UTC()}
}

// MarshalJSON renders the timestamp in the fixed display format.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Format(displayLayout))
}

// UnmarshalJSON accepts either the display format or RFC 3339. Cached rows
// round-trip through JSON, so the display format must parse back.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if parsed, err := time.Parse(displayLayout, raw); err == nil {
		t.Time = parsed
		return nil
	}
	parsed, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return fmt.Errorf("invalid timestamp %q: %w", raw, err)
	}
	t.Time = parsed
	return nil
}

// Value implements driver.Valuer so the timestamp persists as a plain time.
func (t Timestamp) Value() (driver.Value, error) {
	return t.Time, nil
}

// Scan implements sql.Scanner.
func (t *Timestamp) Scan(value any) error {
	switch v := value.(type) {
	case nil:
		t.Time = time.Time{}
		return nil
	case time.Time:
		t.Time = v
		return nil
	case string:
		return t.scanString(v)
	case []byte:
		return t.scanString(string(v))
	default:
		return fmt.Errorf("cannot scan %T into Timestamp", value)
	}
}

func (t *Timestamp) scanString(raw string) error {
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02 15:04:05.999999999-07:00", "2006-01-02 15:04:05"} {
		if parsed, err := time.Parse(layout, raw); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("cannot parse %q as Timestamp", raw)
}

// Reaction is an embedded sub-document on a Thought. It has no table and no
// independent lifecycle; it lives and dies with its parent thought.
type Reaction struct {
	ReactionID   string    `json:"reactionId"`
	ReactionBody string    `json:"reactionBody"`
	Username     string    `json:"username"`
	CreatedAt    Timestamp `json:"createdAt"`
}

// ReactionList is the JSON-serialized reactions column on a thought.
type ReactionList []Reaction

// Remove deletes the reaction with the given identifier if present and
// reports whether anything was removed.
func (l ReactionList) Remove(reactionID string) (ReactionList, bool) {
	for i, r := range l {
		if r.ReactionID == reactionID {
			return append(l[:i], l[i+1:]...), true
		}
	}
	return l, false
}

// Thought represents a published thought in the Ripple application. Username
// is a denormalized copy of the author's username taken at creation time,
// not a live reference; updating a user's username does not rewrite it.
type Thought struct {
	ID          uint         `gorm:"primaryKey" json:"id"`
	ThoughtText string       `gorm:"type:text;not null" json:"thoughtText"`
	Username    string       `gorm:"not null;index" json:"username"`
	Reactions   ReactionList `gorm:"serializer:json" json:"reactions"`
	CreatedAt   Timestamp    `gorm:"type:timestamp" json:"createdAt"`
	UpdatedAt   time.Time    `json:"-"`

	// ReactionCount is not persisted; recomputed whenever the row is
	// loaded or written.
	ReactionCount int `gorm:"-" json:"reactionCount"`
}

// BeforeCreate defaults createdAt to the current time and ensures the
// reactions column persists an empty array rather than NULL.
func (t *Thought) BeforeCreate(_ *gorm.DB) error {
	if t.CreatedAt.IsZero() {
		t.CreatedAt = Now()
	}
	if t.Reactions == nil {
		t.Reactions = ReactionList{}
	}
	return nil
}

// AfterCreate keeps the reactionCount virtual in sync on the value returned
// from a create.
func (t *Thought) AfterCreate(_ *gorm.DB) error {
	t.ReactionCount = len(t.Reactions)
	return nil
}

// AfterFind recomputes the reactionCount virtual on every load.
func (t *Thought) AfterFind(_ *gorm.DB) error {
	t.ReactionCount = len(t.Reactions)
	return nil
}

// AfterSave keeps the virtual in sync after updates.
func (t *Thought) AfterSave(_ *gorm.DB) error {
	t.ReactionCount = len(t.Reactions)
	return nil
}
