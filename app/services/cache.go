package services

import (
	"database/sql"
	"sync"

	"github.com/drager40/product-manager/app/database"
)

// listCache caches the distinct-value lists the filter dropdowns use. Any
// expense write invalidates the whole cache; hit/miss counters are cumulative
// across invalidations so the monitor page can show a lifetime hit rate.
type listCache struct {
	mu     sync.Mutex
	values map[string][]string
	hits   map[string]int64
	misses map[string]int64
	evicts int64
}

func newListCache() *listCache {
	return &listCache{
		values: make(map[string][]string),
		hits:   make(map[string]int64),
		misses: make(map[string]int64),
	}
}

func (c *listCache) get(name string, load func() ([]string, error)) ([]string, error) {
	c.mu.Lock()
	if v, ok := c.values[name]; ok {
		c.hits[name]++
		c.mu.Unlock()
		return v, nil
	}
	c.misses[name]++
	c.mu.Unlock()

	// Load outside the lock; a concurrent duplicate load is harmless.
	v, err := load()
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.values[name] = v
	c.mu.Unlock()
	return v, nil
}

func (c *listCache) invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.evicts += int64(len(c.values))
	c.values = make(map[string][]string)
}

// CacheStat is one cache's counters for the monitoring page.
type CacheStat struct {
	Name   string `json:"name"`
	Size   int    `json:"size"`
	Hits   int64  `json:"hits"`
	Misses int64  `json:"misses"`
}

func (c *listCache) stats() []CacheStat {
	c.mu.Lock()
	defer c.mu.Unlock()

	names := []string{"ym", "category", "division", "purpose", "storeName", "department", "team"}
	stats := make([]CacheStat, 0, len(names))
	for _, name := range names {
		stats = append(stats, CacheStat{
			Name:   name,
			Size:   len(c.values[name]),
			Hits:   c.hits[name],
			Misses: c.misses[name],
		})
	}
	return stats
}

var distinctCache = newListCache()

// InvalidateDistinctCache drops every cached list. Called after any expense
// write, including spreadsheet imports.
func InvalidateDistinctCache() {
	distinctCache.invalidate()
}

// DistinctCacheStats feeds the monitoring page.
func DistinctCacheStats() []CacheStat {
	return distinctCache.stats()
}

func DistinctYms(db *sql.DB) ([]string, error) {
	return distinctCache.get("ym", func() ([]string, error) { return database.DistinctYms(db) })
}

func DistinctCategories(db *sql.DB) ([]string, error) {
	return distinctCache.get("category", func() ([]string, error) { return database.DistinctCategories(db) })
}

func DistinctDivisions(db *sql.DB) ([]string, error) {
	return distinctCache.get("division", func() ([]string, error) { return database.DistinctDivisions(db) })
}

func DistinctPurposes(db *sql.DB) ([]string, error) {
	return distinctCache.get("purpose", func() ([]string, error) { return database.DistinctPurposes(db) })
}

func DistinctStoreNames(db *sql.DB) ([]string, error) {
	return distinctCache.get("storeName", func() ([]string, error) { return database.DistinctStoreNames(db) })
}

func DistinctDepartments(db *sql.DB) ([]string, error) {
	return distinctCache.get("department", func() ([]string, error) { return database.DistinctDepartments(db) })
}

func DistinctTeams(db *sql.DB) ([]string, error) {
	return distinctCache.get("team", func() ([]string, error) { return database.DistinctTeams(db) })
}
