package models

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/desertthunder/ytq/internal/shared"
)

func TestUser(t *testing.T) {
	t.Run("Validate", func(t *testing.T) {
		tt := []struct {
			name     string
			username string
			wantErr  bool
		}{
			{name: "valid", username: "alice"},
			{name: "trimmed empty", username: "   ", wantErr: true},
			{name: "too long", username: strings.Repeat("a", 151), wantErr: true},
			{name: "at limit", username: strings.Repeat("a", 150)},
		}

		for _, tc := range tt {
			t.Run(tc.name, func(t *testing.T) {
				err := NewUser(0, tc.username).Validate()
				if tc.wantErr && !errors.Is(err, shared.ErrValidation) {
					t.Errorf("expected ErrValidation, got %v", err)
				}
				if !tc.wantErr && err != nil {
					t.Errorf("unexpected error: %v", err)
				}
			})
		}
	})

	t.Run("Account hides API key", func(t *testing.T) {
		u := NewUser(1, "alice")
		u.SetAPIKey("ytq_secret")

		data, err := json.Marshal(u.Account())
		if err != nil {
			t.Fatalf("marshal failed: %v", err)
		}
		if strings.Contains(string(data), "ytq_secret") {
			t.Errorf("account JSON leaks the API key: %s", data)
		}
	})
}

func TestPlaylist(t *testing.T) {
	t.Run("Validate", func(t *testing.T) {
		if err := NewPlaylist("", "Mix", "").Validate(); !errors.Is(err, shared.ErrValidation) {
			t.Errorf("missing owner: expected ErrValidation, got %v", err)
		}
		if err := NewPlaylist("u1", " ", "").Validate(); !errors.Is(err, shared.ErrValidation) {
			t.Errorf("blank name: expected ErrValidation, got %v", err)
		}
		if err := NewPlaylist("u1", strings.Repeat("n", 101), "").Validate(); !errors.Is(err, shared.ErrValidation) {
			t.Errorf("long name: expected ErrValidation, got %v", err)
		}
		if err := NewPlaylist("u1", "Mix", "").Validate(); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("View has non-nil songs", func(t *testing.T) {
		data, err := json.Marshal(NewPlaylist("u1", "Mix", "").View())
		if err != nil {
			t.Fatalf("marshal failed: %v", err)
		}
		if !strings.Contains(string(data), `"songs":[]`) {
			t.Errorf("expected empty songs array, got %s", data)
		}
	})
}

func TestTrack(t *testing.T) {
	t.Run("Record", func(t *testing.T) {
		record, err := Track{VideoID: "abc", Title: "Song"}.Record()
		if err != nil {
			t.Fatalf("Record() error = %v", err)
		}
		if string(record) != `{"videoId":"abc","title":"Song"}` {
			t.Errorf("Record() = %s", record)
		}
	})

	t.Run("TrackFromRecord ignores unknown keys", func(t *testing.T) {
		track, err := TrackFromRecord(json.RawMessage(`{"title":"Song","artist":"Band","extra":42}`))
		if err != nil {
			t.Fatalf("TrackFromRecord() error = %v", err)
		}
		if track.Title != "Song" || track.Artist != "Band" {
			t.Errorf("unexpected track %+v", track)
		}
	})

	t.Run("TrackFromRecord rejects non-objects", func(t *testing.T) {
		if _, err := TrackFromRecord(json.RawMessage(`[1,2]`)); !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("Validate", func(t *testing.T) {
		if err := (Track{}).Validate(); !errors.Is(err, shared.ErrValidation) {
			t.Errorf("expected ErrValidation, got %v", err)
		}
	})
}
