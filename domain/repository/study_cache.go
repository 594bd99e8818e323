package repository

import (
	"context"
	"encoding/json"
)

// CacheCategory names one of the per-kind cache mappings.
type CacheCategory string

const (
	CacheTranscript CacheCategory = "transcript"
	CacheNotes      CacheCategory = "notes"
	CacheQuiz       CacheCategory = "quiz"
)

// AllCacheCategories lists every mapping Clear() removes when called with no arguments.
var AllCacheCategories = []CacheCategory{CacheTranscript, CacheNotes, CacheQuiz}

// IStudyCache is the per-category expiring cache keyed by video ID.
// Entries expire lazily: Get treats a stale entry as absent without deleting
// it; the stale row persists until overwritten or cleared.
type IStudyCache interface {
	// Get returns the cached payload, or (nil, nil) when absent or expired.
	Get(ctx context.Context, category CacheCategory, videoID string) (json.RawMessage, error)
	// Set stores data under the category mapping with the fixed TTL from now.
	Set(ctx context.Context, category CacheCategory, videoID string, data any) error
	// Clear removes the given category mappings, or all of them when none given.
	Clear(ctx context.Context, categories ...CacheCategory) error
}
