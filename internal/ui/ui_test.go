package ui

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/ytq/internal/models"
	tu "github.com/desertthunder/ytq/internal/testing"
)

type fakeClient struct {
	*tu.MockQueueClient
	*tu.MockSearcher
}

func newFakeClient(titles ...string) *fakeClient {
	records := make([]json.RawMessage, len(titles))
	for i, title := range titles {
		records[i] = json.RawMessage(`{"title":"` + title + `"}`)
	}
	return &fakeClient{
		MockQueueClient: &tu.MockQueueClient{Records: records},
		MockSearcher:    &tu.MockSearcher{},
	}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// drive feeds msg to m and then runs each returned command until one yields no [Msg].
func drive(t *testing.T, m *Model, msg tea.Msg) {
	t.Helper()

	for msg != nil {
		_, cmd := m.Update(msg)
		if cmd == nil {
			return
		}
		next := cmd()
		if _, ok := next.(Msg); !ok {
			return
		}
		msg = next
	}
}

func newTestModel(t *testing.T, client Client) *Model {
	t.Helper()

	m := NewModel(context.Background(), client)
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 40})
	drive(t, m, m.Init()())
	return m
}

func queueTitles(m *Model) []string {
	items := m.queue.Items()
	titles := make([]string, len(items))
	for i, item := range items {
		titles[i] = item.(queueItem).track.Title
	}
	return titles
}

func TestModel(t *testing.T) {
	t.Run("Init loads the queue", func(t *testing.T) {
		m := newTestModel(t, newFakeClient("A", "B", "C"))

		if got := strings.Join(queueTitles(m), ","); got != "A,B,C" {
			t.Errorf("queue = %s, want A,B,C", got)
		}
		if m.ViewState() != QueueView {
			t.Errorf("view = %v, want QueueView", m.ViewState())
		}
		if !strings.Contains(m.View(), "3 songs queued") {
			t.Errorf("View() missing song count:\n%s", m.View())
		}
	})

	t.Run("Empty queue", func(t *testing.T) {
		m := newTestModel(t, newFakeClient())

		if !strings.Contains(m.View(), "The queue is empty") {
			t.Errorf("View() = %s", m.View())
		}
	})

	t.Run("Move up", func(t *testing.T) {
		client := newFakeClient("A", "B", "C")
		m := newTestModel(t, client)
		m.queue.Select(1)

		drive(t, m, runes("K"))

		if len(client.Moves) != 1 || client.Moves[0] != [2]int{1, 0} {
			t.Fatalf("Moves = %v, want [[1 0]]", client.Moves)
		}
		if got := strings.Join(queueTitles(m), ","); got != "B,A,C" {
			t.Errorf("queue = %s, want B,A,C", got)
		}
		if m.queue.Index() != 0 {
			t.Errorf("selection = %d, want 0", m.queue.Index())
		}
	})

	t.Run("Move down", func(t *testing.T) {
		client := newFakeClient("A", "B", "C")
		m := newTestModel(t, client)
		m.queue.Select(1)

		drive(t, m, runes("J"))

		if got := strings.Join(queueTitles(m), ","); got != "A,C,B" {
			t.Errorf("queue = %s, want A,C,B", got)
		}
		if m.queue.Index() != 2 {
			t.Errorf("selection = %d, want 2", m.queue.Index())
		}
	})

	t.Run("Move past the edges is ignored", func(t *testing.T) {
		client := newFakeClient("A", "B")
		m := newTestModel(t, client)

		m.queue.Select(0)
		drive(t, m, runes("K"))
		m.queue.Select(1)
		drive(t, m, runes("J"))

		if len(client.Moves) != 0 {
			t.Errorf("Moves = %v, want none", client.Moves)
		}
	})

	t.Run("Search and enqueue", func(t *testing.T) {
		client := newFakeClient("A")
		client.MockSearcher.Tracks = []models.Track{
			{VideoID: "abc123", Title: "One More Time", Artist: "Daft Punk"},
		}
		m := newTestModel(t, client)

		m.Update(runes("/"))
		if m.ViewState() != SearchView {
			t.Fatalf("view = %v, want SearchView", m.ViewState())
		}

		m.input.SetValue("daft punk")
		drive(t, m, tea.KeyMsg{Type: tea.KeyEnter})

		if m.ViewState() != ResultsView {
			t.Fatalf("view = %v, want ResultsView", m.ViewState())
		}
		if got := client.MockSearcher.Queries(); len(got) != 1 || got[0] != "daft punk" {
			t.Errorf("Queries() = %v", got)
		}
		if len(m.results.Items()) != 1 {
			t.Fatalf("results = %d, want 1", len(m.results.Items()))
		}

		drive(t, m, tea.KeyMsg{Type: tea.KeyEnter})

		if got := strings.Join(queueTitles(m), ","); got != "A,One More Time" {
			t.Errorf("queue = %s", got)
		}
		if !strings.Contains(m.View(), "Added 'One More Time'") {
			t.Errorf("View() missing status:\n%s", m.View())
		}

		m.Update(tea.KeyMsg{Type: tea.KeyEsc})
		if m.ViewState() != QueueView {
			t.Errorf("view = %v, want QueueView", m.ViewState())
		}
	})

	t.Run("Search error stays on the search view", func(t *testing.T) {
		client := newFakeClient()
		client.MockSearcher.Err = errors.New("quota exceeded")
		m := newTestModel(t, client)

		m.Update(runes("/"))
		m.input.SetValue("anything")
		drive(t, m, tea.KeyMsg{Type: tea.KeyEnter})

		if m.ViewState() != SearchView {
			t.Errorf("view = %v, want SearchView", m.ViewState())
		}
		if !strings.Contains(m.View(), "quota exceeded") {
			t.Errorf("View() missing error:\n%s", m.View())
		}
	})

	t.Run("Fetch error is rendered", func(t *testing.T) {
		client := newFakeClient()
		client.MockQueueClient.Err = errors.New("connection refused")
		m := newTestModel(t, client)

		if !strings.Contains(m.View(), "connection refused") {
			t.Errorf("View() missing error:\n%s", m.View())
		}
	})

	t.Run("Quit", func(t *testing.T) {
		m := newTestModel(t, newFakeClient("A"))

		_, cmd := m.Update(runes("q"))
		if cmd == nil {
			t.Fatal("expected quit command")
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Error("q should quit from the queue view")
		}
	})

	t.Run("Untitled record falls back to raw JSON", func(t *testing.T) {
		item := newQueueItem(0, json.RawMessage(`{"id":7}`))
		if item.Title() != `1. {"id":7}` {
			t.Errorf("Title() = %s", item.Title())
		}
	})
}
