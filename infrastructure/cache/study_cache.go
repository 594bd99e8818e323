package cache

import (
	"context"
	"encoding/json"
	"time"

	"tubetutor/domain/repository"
	"tubetutor/infrastructure/logger"
)

// cacheEntry is one cached payload with its absolute expiry (unix ms).
type cacheEntry struct {
	Data   json.RawMessage `json:"data"`
	Expiry int64           `json:"expiry"`
}

// StudyCache stores per-video payloads under one mapping per category
// ("<category>_cache" in the key-value namespace), each entry carrying an
// absolute expiry stamped at write time. Expiry is lazy: a stale entry reads
// as absent but stays in the store until overwritten or cleared. Set is a
// read-modify-write of the whole mapping and is not isolated against
// concurrent writers of the same category.
type StudyCache struct {
	store repository.IKeyValueStore
	ttl   time.Duration
	now   func() time.Time
}

func NewStudyCache(store repository.IKeyValueStore, ttl time.Duration) *StudyCache {
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	return &StudyCache{store: store, ttl: ttl, now: time.Now}
}

// WithClock overrides the time source. Tests use this to cross the expiry
// boundary without sleeping.
func (c *StudyCache) WithClock(now func() time.Time) *StudyCache {
	c.now = now
	return c
}

func cacheKey(category repository.CacheCategory) string {
	return string(category) + "_cache"
}

func (c *StudyCache) readMapping(ctx context.Context, category repository.CacheCategory) (map[string]cacheEntry, error) {
	raw, err := c.store.Get(ctx, cacheKey(category))
	if err != nil {
		return nil, err
	}
	mapping := make(map[string]cacheEntry)
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &mapping); err != nil {
			// A corrupt mapping behaves as empty; the next Set overwrites it.
			logger.GetLogger().WithField("error", err).
				WithField("category", category).Warn("Discarding unreadable cache mapping")
			return make(map[string]cacheEntry), nil
		}
	}
	return mapping, nil
}

func (c *StudyCache) Get(ctx context.Context, category repository.CacheCategory, videoID string) (json.RawMessage, error) {
	mapping, err := c.readMapping(ctx, category)
	if err != nil {
		return nil, err
	}
	entry, ok := mapping[videoID]
	if !ok || c.now().UnixMilli() >= entry.Expiry {
		return nil, nil
	}
	return entry.Data, nil
}

func (c *StudyCache) Set(ctx context.Context, category repository.CacheCategory, videoID string, data any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return err
	}
	mapping, err := c.readMapping(ctx, category)
	if err != nil {
		return err
	}
	mapping[videoID] = cacheEntry{
		Data:   payload,
		Expiry: c.now().Add(c.ttl).UnixMilli(),
	}
	raw, err := json.Marshal(mapping)
	if err != nil {
		return err
	}
	return c.store.Set(ctx, cacheKey(category), raw)
}

func (c *StudyCache) Clear(ctx context.Context, categories ...repository.CacheCategory) error {
	if len(categories) == 0 {
		categories = repository.AllCacheCategories
	}
	keys := make([]string, len(categories))
	for i, category := range categories {
		keys[i] = cacheKey(category)
	}
	return c.store.Delete(ctx, keys...)
}
