// Package types defines the Tracker and Table interfaces, the quality
// tracking entities, and the standard errors shared by every backend.
//
// Entities are plain structs with JSON tags. Each one knows how to validate
// itself; backends call Validate before anything reaches storage.
package types
