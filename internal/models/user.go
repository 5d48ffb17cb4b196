package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/desertthunder/ytq/internal/shared"
)

const maxUsernameLength = 150

// User is an account that may own playlists and mutate the shared queue.
type User struct {
	id         string
	sequence   int
	username   string
	apiKey     string
	subscribed bool
	createdAt  time.Time
	updatedAt  time.Time
	deletedAt  *time.Time
}

// NewUser creates a [User] with creation timestamps set to now.
func NewUser(sequence int, username string) *User {
	now := time.Now()
	return &User{
		sequence:  sequence,
		username:  strings.TrimSpace(username),
		createdAt: now,
		updatedAt: now,
	}
}

func (u *User) ID() string            { return u.id }
func (u *User) Sequence() int         { return u.sequence }
func (u *User) Username() string      { return u.username }
func (u *User) APIKey() string        { return u.apiKey }
func (u *User) Subscribed() bool      { return u.subscribed }
func (u *User) CreatedAt() time.Time  { return u.createdAt }
func (u *User) UpdatedAt() time.Time  { return u.updatedAt }
func (u *User) DeletedAt() *time.Time { return u.deletedAt }

func (u *User) SetID(id string)               { u.id = id }
func (u *User) SetSequence(sequence int)      { u.sequence = sequence }
func (u *User) SetUsername(username string)   { u.username = strings.TrimSpace(username) }
func (u *User) SetAPIKey(key string)          { u.apiKey = key }
func (u *User) SetSubscribed(subscribed bool) { u.subscribed = subscribed }
func (u *User) SetCreatedAt(t time.Time)      { u.createdAt = t }
func (u *User) SetUpdatedAt(t time.Time)      { u.updatedAt = t }
func (u *User) SetDeletedAt(t *time.Time)     { u.deletedAt = t }

// Validate checks the username is present and short enough.
func (u *User) Validate() error {
	if u.username == "" {
		return fmt.Errorf("%w: username is required", shared.ErrValidation)
	}
	if len(u.username) > maxUsernameLength {
		return fmt.Errorf("%w: username exceeds %d characters", shared.ErrValidation, maxUsernameLength)
	}
	return nil
}

// Account is the public JSON view of a [User]. The API key is never included.
type Account struct {
	ID         string    `json:"id"`
	Username   string    `json:"username"`
	Subscribed bool      `json:"subscribed"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Account returns the public JSON view of u.
func (u *User) Account() Account {
	return Account{ID: u.id, Username: u.username, Subscribed: u.subscribed, CreatedAt: u.createdAt}
}
