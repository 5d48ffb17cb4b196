package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/desertthunder/ytq/internal/shared"
)

const maxPlaylistNameLength = 100

// Playlist is a named, ordered collection of tracks owned by a user.
type Playlist struct {
	id        string
	sequence  int
	userID    string
	name      string
	coverArt  string
	songs     []Track
	createdAt time.Time
	updatedAt time.Time
	deletedAt *time.Time
}

// NewPlaylist creates a [Playlist] owned by userID with creation timestamps set to now.
func NewPlaylist(userID, name, coverArt string) *Playlist {
	now := time.Now()
	return &Playlist{
		userID:    userID,
		name:      strings.TrimSpace(name),
		coverArt:  coverArt,
		createdAt: now,
		updatedAt: now,
	}
}

func (p *Playlist) ID() string            { return p.id }
func (p *Playlist) Sequence() int         { return p.sequence }
func (p *Playlist) UserID() string        { return p.userID }
func (p *Playlist) Name() string          { return p.name }
func (p *Playlist) CoverArt() string      { return p.coverArt }
func (p *Playlist) Songs() []Track        { return p.songs }
func (p *Playlist) CreatedAt() time.Time  { return p.createdAt }
func (p *Playlist) UpdatedAt() time.Time  { return p.updatedAt }
func (p *Playlist) DeletedAt() *time.Time { return p.deletedAt }

func (p *Playlist) SetID(id string)           { p.id = id }
func (p *Playlist) SetSequence(sequence int)  { p.sequence = sequence }
func (p *Playlist) SetName(name string)       { p.name = strings.TrimSpace(name) }
func (p *Playlist) SetSongs(songs []Track)    { p.songs = songs }
func (p *Playlist) SetCreatedAt(t time.Time)  { p.createdAt = t }
func (p *Playlist) SetUpdatedAt(t time.Time)  { p.updatedAt = t }
func (p *Playlist) SetDeletedAt(t *time.Time) { p.deletedAt = t }

// Validate checks the owner and name.
func (p *Playlist) Validate() error {
	if p.userID == "" {
		return fmt.Errorf("%w: playlist owner is required", shared.ErrValidation)
	}
	if p.name == "" {
		return fmt.Errorf("%w: playlist name is required", shared.ErrValidation)
	}
	if len(p.name) > maxPlaylistNameLength {
		return fmt.Errorf("%w: playlist name exceeds %d characters", shared.ErrValidation, maxPlaylistNameLength)
	}
	return nil
}

// PlaylistView is the JSON shape of a playlist returned by the HTTP API.
type PlaylistView struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CoverArt  string    `json:"coverArt,omitempty"`
	Songs     []Track   `json:"songs"`
	CreatedAt time.Time `json:"createdAt"`
}

// View returns the JSON shape of p. Songs is never nil.
func (p *Playlist) View() PlaylistView {
	songs := p.songs
	if songs == nil {
		songs = []Track{}
	}
	return PlaylistView{ID: p.id, Name: p.name, CoverArt: p.coverArt, Songs: songs, CreatedAt: p.createdAt}
}
