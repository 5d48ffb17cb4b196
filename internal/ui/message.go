package ui

import (
	"encoding/json"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/ytq/internal/models"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgQueueFetched MsgKind = iota
	MsgQueueMoved
	MsgSearchDone
	MsgEnqueued
)

type queuePayload struct {
	records []json.RawMessage
	err     error
}

type movePayload struct {
	to  int
	err error
}

type searchPayload struct {
	result *models.SearchResult
	err    error
}

type enqueuePayload struct {
	title string
	err   error
}

// queueFetchedMsg is the constructor for [MsgQueueFetched]
func queueFetchedMsg(records []json.RawMessage, err error) Msg {
	return Msg{kind: MsgQueueFetched, data: queuePayload{records, err}}
}

// queueMovedMsg is the constructor for [MsgQueueMoved]
func queueMovedMsg(to int, err error) Msg {
	return Msg{kind: MsgQueueMoved, data: movePayload{to, err}}
}

// searchDoneMsg is the constructor for [MsgSearchDone]
func searchDoneMsg(result *models.SearchResult, err error) Msg {
	return Msg{kind: MsgSearchDone, data: searchPayload{result, err}}
}

// enqueuedMsg is the constructor for [MsgEnqueued]
func enqueuedMsg(title string, err error) Msg {
	return Msg{kind: MsgEnqueued, data: enqueuePayload{title, err}}
}
