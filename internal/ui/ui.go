package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/ytq/internal/services"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	QueueView ViewState = iota
	SearchView
	ResultsView
)

// Client is everything the TUI needs from a ytq server.
type Client interface {
	services.QueueClient
	services.Searcher
}

// Model represents the TUI application state.
type Model struct {
	ctx      context.Context
	client   Client
	view     ViewState
	width    int
	height   int
	queue    list.Model
	results  list.Model
	input    textinput.Model
	selectAt int
	status   string
	err      error
	help     help.Model
	keys     keyMap
}

// NewModel creates a new TUI model talking to client.
func NewModel(ctx context.Context, client Client) *Model {
	input := textinput.New()
	input.Placeholder = "artist, song, album..."
	input.CharLimit = 200

	return &Model{
		ctx:     ctx,
		client:  client,
		view:    QueueView,
		queue:   newList("Playback Queue"),
		results: newList("Search Results"),
		input:   input,
		help:    help.New(),
		keys:    newKeyMap(),
	}
}

func newList(title string) list.Model {
	l := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	l.Title = title
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.DisableQuitKeybindings()
	return l
}

// Init initializes the TUI by fetching the queue.
func (m *Model) Init() tea.Cmd {
	return m.fetchQueue()
}

// ViewState returns the active view.
func (m *Model) ViewState() ViewState {
	return m.view
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.queue.SetSize(msg.Width-4, msg.Height-8)
		m.results.SetSize(msg.Width-4, msg.Height-8)
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.view {
		case QueueView:
			return m.handleQueueKeys(msg)
		case SearchView:
			return m.handleSearchKeys(msg)
		case ResultsView:
			return m.handleResultKeys(msg)
		}

	case Msg:
		return m.handleMsg(msg)
	}

	return m.updateActive(msg)
}

func (m *Model) handleMsg(msg Msg) (tea.Model, tea.Cmd) {
	switch msg.kind {
	case MsgQueueFetched:
		data := msg.data.(queuePayload)
		if data.err != nil {
			m.err = data.err
			return m, nil
		}
		m.err = nil
		items := make([]list.Item, len(data.records))
		for i, record := range data.records {
			items[i] = newQueueItem(i, record)
		}
		cmd := m.queue.SetItems(items)
		if m.selectAt >= 0 && m.selectAt < len(items) {
			m.queue.Select(m.selectAt)
		}
		return m, cmd

	case MsgQueueMoved:
		data := msg.data.(movePayload)
		if data.err != nil {
			m.err = data.err
			return m, nil
		}
		m.selectAt = data.to
		return m, m.fetchQueue()

	case MsgSearchDone:
		data := msg.data.(searchPayload)
		if data.err != nil {
			m.err = data.err
			m.view = SearchView
			return m, nil
		}
		m.err = nil
		items := make([]list.Item, len(data.result.Tracks))
		for i, track := range data.result.Tracks {
			items[i] = resultItem{track: track}
		}
		m.results.Title = fmt.Sprintf("Results for '%s'", data.result.Query)
		m.view = ResultsView
		return m, m.results.SetItems(items)

	case MsgEnqueued:
		data := msg.data.(enqueuePayload)
		if data.err != nil {
			m.err = data.err
			return m, nil
		}
		m.err = nil
		m.status = fmt.Sprintf("Added '%s' to the queue", data.title)
		m.selectAt = m.queue.Index()
		return m, m.fetchQueue()
	}

	return m, nil
}

func (m *Model) handleQueueKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.refresh):
		m.selectAt = m.queue.Index()
		return m, m.fetchQueue()
	case key.Matches(msg, m.keys.search):
		m.view = SearchView
		m.status = ""
		m.input.SetValue("")
		return m, m.input.Focus()
	case key.Matches(msg, m.keys.moveUp):
		i := m.queue.Index()
		if len(m.queue.Items()) == 0 || i <= 0 {
			return m, nil
		}
		return m, m.move(i, i-1)
	case key.Matches(msg, m.keys.moveDown):
		i := m.queue.Index()
		if i >= len(m.queue.Items())-1 {
			return m, nil
		}
		return m, m.move(i, i+1)
	}

	var cmd tea.Cmd
	m.queue, cmd = m.queue.Update(msg)
	return m, cmd
}

func (m *Model) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.back):
		m.input.Blur()
		m.view = QueueView
		return m, nil
	case key.Matches(msg, m.keys.enter):
		m.input.Blur()
		return m, m.search(m.input.Value())
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) handleResultKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.back):
		m.view = QueueView
		return m, nil
	case key.Matches(msg, m.keys.search):
		m.view = SearchView
		return m, m.input.Focus()
	case key.Matches(msg, m.keys.enter):
		if selected, ok := m.results.SelectedItem().(resultItem); ok {
			return m, m.enqueue(selected)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.results, cmd = m.results.Update(msg)
	return m, cmd
}

func (m *Model) updateActive(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case QueueView:
		m.queue, cmd = m.queue.Update(msg)
	case SearchView:
		m.input, cmd = m.input.Update(msg)
	case ResultsView:
		m.results, cmd = m.results.Update(msg)
	}
	return m, cmd
}

func (m *Model) fetchQueue() tea.Cmd {
	return func() tea.Msg {
		records, err := m.client.Queue(m.ctx)
		return queueFetchedMsg(records, err)
	}
}

func (m *Model) move(from, to int) tea.Cmd {
	return func() tea.Msg {
		return queueMovedMsg(to, m.client.Move(m.ctx, from, to))
	}
}

func (m *Model) search(query string) tea.Cmd {
	return func() tea.Msg {
		result, err := m.client.Search(m.ctx, query)
		return searchDoneMsg(result, err)
	}
}

func (m *Model) enqueue(item resultItem) tea.Cmd {
	return func() tea.Msg {
		record, err := item.track.Record()
		if err != nil {
			return enqueuedMsg(item.track.Title, err)
		}
		return enqueuedMsg(item.track.Title, m.client.Enqueue(m.ctx, record))
	}
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	var body string
	switch m.view {
	case QueueView:
		body = m.renderQueue()
	case SearchView:
		body = m.renderSearch()
	case ResultsView:
		body = m.renderResults()
	}

	if m.err != nil {
		body += "\n" + styles.err.Render(fmt.Sprintf("Error: %v", m.err))
	} else if m.status != "" {
		body += "\n" + styles.ok.Render(m.status)
	}
	return body
}

func (m *Model) renderQueue() string {
	if len(m.queue.Items()) == 0 {
		title := styles.title.Render("Playback Queue")
		empty := styles.warn.Render("The queue is empty. Press / to search for songs.")
		return fmt.Sprintf("%s\n%s\n\n%s", title, empty, m.help.ShortHelpView([]key.Binding{m.keys.search, m.keys.refresh, m.keys.quit}))
	}

	helpKeys := []key.Binding{m.keys.up, m.keys.down, m.keys.moveUp, m.keys.moveDown, m.keys.search, m.keys.refresh, m.keys.quit}
	count := styles.help.Render(fmt.Sprintf("%d songs queued", len(m.queue.Items())))
	return fmt.Sprintf("%s\n%s\n\n%s", m.queue.View(), count, m.help.ShortHelpView(helpKeys))
}

func (m *Model) renderSearch() string {
	title := styles.title.Render("Search")
	helpKeys := []key.Binding{m.keys.enter, m.keys.back}
	return fmt.Sprintf("%s\n%s\n\n%s", title, m.input.View(), m.help.ShortHelpView(helpKeys))
}

func (m *Model) renderResults() string {
	if len(m.results.Items()) == 0 {
		return fmt.Sprintf("%s\n%s\n\n%s",
			styles.title.Render(m.results.Title),
			styles.warn.Render("No results."),
			m.help.ShortHelpView([]key.Binding{m.keys.search, m.keys.back}),
		)
	}

	addKey := key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "add to queue"))
	helpKeys := []key.Binding{addKey, m.keys.search, m.keys.back, m.keys.quit}
	return fmt.Sprintf("%s\n\n%s", m.results.View(), m.help.ShortHelpView(helpKeys))
}
