// package formatter provides functions to export queue and playlist tracks to various formats (JSON, CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/desertthunder/ytq/internal/models"
	"github.com/desertthunder/ytq/internal/shared"
)

// Supported export formats.
const (
	FormatJSON     = "json"
	FormatCSV      = "csv"
	FormatMarkdown = "markdown"
	FormatText     = "txt"
)

// Formats lists every supported format name.
var Formats = []string{FormatJSON, FormatCSV, FormatMarkdown, FormatText}

// Export is an ordered list of tracks with a heading.
type Export struct {
	Title    string
	CoverArt string
	Tracks   []models.Track
}

// FromRecords builds an [Export] from raw queue records.
//
// Records that are not track-shaped keep their raw JSON as the title so nothing is silently dropped.
func FromRecords(title string, records []json.RawMessage) *Export {
	export := &Export{Title: title, Tracks: make([]models.Track, 0, len(records))}
	for _, record := range records {
		track, err := models.TrackFromRecord(record)
		if err != nil || track.Title == "" {
			track.Title = string(record)
		}
		export.Tracks = append(export.Tracks, track)
	}
	return export
}

// FromPlaylist builds an [Export] from a stored playlist.
func FromPlaylist(playlist *models.Playlist) *Export {
	return &Export{Title: playlist.Name(), CoverArt: playlist.CoverArt(), Tracks: playlist.Songs()}
}

// WatchURL returns the YouTube watch link for a video ID, or "" when the ID is empty.
func WatchURL(videoID string) string {
	if videoID == "" {
		return ""
	}
	return "https://www.youtube.com/watch?v=" + videoID
}

// ExportToCSV converts an Export to CSV format with columns: Position, VideoID, Title, Artist, Thumbnail
func ExportToCSV(export *Export) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Position", "VideoID", "Title", "Artist", "Thumbnail"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for i, track := range export.Tracks {
		record := []string{
			strconv.Itoa(i),
			track.VideoID,
			track.Title,
			track.Artist,
			track.Thumbnail,
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts an Export to Markdown format with optional cover image
func ExportToMarkdown(export *Export) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "# %s\n\n", export.Title)

	if export.CoverArt != "" {
		fmt.Fprintf(&buf, "![Cover](%s)\n\n", export.CoverArt)
	}

	fmt.Fprintf(&buf, "**Tracks**: %d\n\n", len(export.Tracks))

	buf.WriteString("## Tracks\n\n")
	for i, track := range export.Tracks {
		title := track.Title
		if url := WatchURL(track.VideoID); url != "" {
			title = fmt.Sprintf("[%s](%s)", track.Title, url)
		}
		fmt.Fprintf(&buf, "%d. %s\n", i+1, joinArtist(track.Artist, title))
	}

	return buf.Bytes(), nil
}

// ExportToText converts an Export to plain text format
func ExportToText(export *Export) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "%s\n", export.Title)
	fmt.Fprintf(&buf, "Tracks: %d\n\n", len(export.Tracks))

	for i, track := range export.Tracks {
		fmt.Fprintf(&buf, "%d. %s\n", i+1, joinArtist(track.Artist, track.Title))
	}

	return buf.Bytes(), nil
}

// ExportToJSON renders the tracks as an indented JSON array.
func ExportToJSON(export *Export) ([]byte, error) {
	tracks := export.Tracks
	if tracks == nil {
		tracks = []models.Track{}
	}
	return shared.MarshalJSON(tracks, true)
}

// Render dispatches to the exporter for format.
func Render(format string, export *Export) ([]byte, error) {
	switch strings.ToLower(format) {
	case FormatJSON:
		return ExportToJSON(export)
	case FormatCSV:
		return ExportToCSV(export)
	case FormatMarkdown, "md":
		return ExportToMarkdown(export)
	case FormatText, "text":
		return ExportToText(export)
	default:
		return nil, fmt.Errorf("%w: unknown format %q (want one of %s)", shared.ErrInvalidFlag, format, strings.Join(Formats, ", "))
	}
}

// Extension returns the file extension, including the dot, used for format.
func Extension(format string) string {
	switch strings.ToLower(format) {
	case FormatMarkdown, "md":
		return ".md"
	case FormatText, "text":
		return ".txt"
	case FormatCSV:
		return ".csv"
	default:
		return ".json"
	}
}

// WriteExport renders export in format and writes it to path.
func WriteExport(format string, export *Export, path string) error {
	data, err := Render(format, export)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write export file: %w", err)
	}

	return nil
}

func joinArtist(artist, title string) string {
	if artist == "" {
		return title
	}
	return artist + " - " + title
}
