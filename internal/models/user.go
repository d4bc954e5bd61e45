// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents a member of the Ripple application. The thoughts and
// friends columns hold reference identifiers, not owned copies: thoughts
// lists the IDs of every Thought this user authored, friends the IDs of
// every befriended User. Friendship is symmetric by convention; both sides
// are written on every add/remove.
type User struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Username   string    `gorm:"uniqueIndex;not null" json:"username"`
	Email      string    `gorm:"uniqueIndex;not null" json:"email"`
	ThoughtIDs IDList    `gorm:"column:thoughts;serializer:json" json:"thoughts"`
	FriendIDs  IDList    `gorm:"column:friends;serializer:json" json:"friends"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`

	// FriendCount mirrors len(FriendIDs); computed, never stored.
	FriendCount int `gorm:"-" json:"friendCount"`
}

// BeforeCreate initializes the reference lists so new users always persist
// empty arrays rather than NULL columns.
func (u *User) BeforeCreate(_ *gorm.DB) error {
	if u.ThoughtIDs == nil {
		u.ThoughtIDs = IDList{}
	}
	if u.FriendIDs == nil {
		u.FriendIDs = IDList{}
	}
	return nil
}

// AfterCreate keeps the friendCount virtual in sync.
func (u *User) AfterCreate(_ *gorm.DB) error {
	u.FriendCount = len(u.FriendIDs)
	return nil
}

// AfterFind keeps the friendCount virtual in sync.
func (u *User) AfterFind(_ *gorm.DB) error {
	u.FriendCount = len(u.FriendIDs)
	return nil
}

// AfterSave keeps the friendCount virtual in sync.
func (u *User) AfterSave(_ *gorm.DB) error {
	u.FriendCount = len(u.FriendIDs)
	return nil
}

// UserView is the populated read model for a user: the thoughts and friends
// reference identifiers resolved to their full entities. The view fields
// shadow the embedded raw reference lists in JSON output.
type UserView struct {
	User
	Thoughts []Thought `json:"thoughts"`
	Friends  []User    `json:"friends"`
}

// NewUserView builds a populated view over a user row. Thoughts and friends
// may be nil; the view always marshals them as arrays.
func NewUserView(user User, thoughts []Thought, friends []User) *UserView {
	if thoughts == nil {
		thoughts = []Thought{}
	}
	if friends == nil {
		friends = []User{}
	}
	user.FriendCount = len(user.FriendIDs)
	return &UserView{
		User:     user,
		Thoughts: thoughts,
		Friends:  friends,
	}
}
