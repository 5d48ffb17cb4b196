// package testing contains shared testing utilities
package testing

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"os"
	"sync"
	"testing"

	"github.com/desertthunder/ytq/internal/models"
)

// MockSearcher is a test double for [services.Searcher]
type MockSearcher struct {
	Tracks []models.Track
	Err    error

	mu      sync.Mutex
	queries []string
}

func (m *MockSearcher) Search(ctx context.Context, query string) (*models.SearchResult, error) {
	m.mu.Lock()
	m.queries = append(m.queries, query)
	m.mu.Unlock()

	if m.Err != nil {
		return nil, m.Err
	}
	tracks := m.Tracks
	if tracks == nil {
		tracks = []models.Track{}
	}
	return &models.SearchResult{Query: query, Tracks: tracks}, nil
}

func (m *MockSearcher) Name() string { return "mock" }

// Queries returns every query passed to Search.
func (m *MockSearcher) Queries() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.queries...)
}

// MockQueueClient is an in-memory test double for [services.QueueClient]
type MockQueueClient struct {
	Records []json.RawMessage
	Err     error
	Moves   [][2]int
}

func (m *MockQueueClient) Queue(ctx context.Context) ([]json.RawMessage, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return append([]json.RawMessage{}, m.Records...), nil
}

func (m *MockQueueClient) Enqueue(ctx context.Context, record json.RawMessage) error {
	if m.Err != nil {
		return m.Err
	}
	m.Records = append(m.Records, record)
	return nil
}

// Move records the call and applies it with final-position semantics.
func (m *MockQueueClient) Move(ctx context.Context, from, to int) error {
	if m.Err != nil {
		return m.Err
	}
	m.Moves = append(m.Moves, [2]int{from, to})
	if from < 0 || from >= len(m.Records) || from == to {
		return nil
	}

	record := m.Records[from]
	rest := append(append([]json.RawMessage{}, m.Records[:from]...), m.Records[from+1:]...)
	if to < 0 || to >= len(rest) {
		m.Records = append(rest, record)
		return nil
	}
	m.Records = append(rest[:to], append([]json.RawMessage{record}, rest[to:]...)...)
	return nil
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
