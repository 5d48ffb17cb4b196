// Package ui implements an interactive terminal queue editor using bubbletea's Elm architecture.
//
// The TUI has three views:
//  1. [QueueView] : Browse the playback queue and reorder it
//  2. [SearchView] : Type a search query
//  3. [ResultsView] : Pick search results to append to the queue
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern, receiving messages via the Msg union type.
// All server calls run as [tea.Cmd] functions so the interface never blocks on the network.
//
// Keyboard navigation uses vim-style bindings (j/k to select, K/J to move the selection, / to search, r, q) with
// contextual help displayed via charmbracelet/bubbles/help.
package ui
