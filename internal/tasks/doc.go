// Package tasks runs long-running playlist jobs against the playlist store with real-time progress reporting.
//
// # Operations
//
// [PlaylistEngine] implements two jobs:
//
//  1. [PlaylistEngine.Import] : Load playlists from a JSON document
//     - Each [PlaylistSpec] is validated and stored for one owner
//     - Invalid entries are reported and skipped, the rest are kept
//
//  2. [PlaylistEngine.BulkExport] : Write many stored playlists to disk
//     - A worker pool renders each playlist with the formatter package
//     - Loads are rate limited, failures are recorded per playlist
//     - A manifest summarizing the run is written next to the exports
//
// # Progress Reporting
//
// Both jobs accept an optional channel of [ProgressUpdate]. Sends use select with default so a slow or absent
// reader never blocks a job.
package tasks
