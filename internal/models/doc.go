// Package models defines domain entities and persistence interfaces for the ytq playback service.
//
// The package contains two categories of types:
//
// 1. Data Transfer Objects (DTOs): Lightweight structs carried over HTTP and through the queue
//   - [Track] : Song metadata in the record shape the playback queue stores
//   - [SearchResult] : A page of tracks returned by the video search integration
//
// 2. Persistent Entities: Database-backed models with full lifecycle management
//   - [User] : Accounts holding an API key and a subscription flag
//   - [Playlist] : Named, ordered track collections owned by a user
//
// All persistent entities implement the Model interface providing ID generation, timestamps, validation, and soft delete support.
// The Repository[T] interface defines standard CRUD operations for database access.
package models
