package internal

import (
	"crypto/md5"
	"encoding/gob"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gnoverse/wv/internal/smt"
)

const (
	cacheFileName      = "discharge_cache.gob"
	defaultCacheMaxAge = 7 * 24 * time.Hour
)

// CacheEntry stores one decided satisfiability result.
type CacheEntry struct {
	Result       smt.CheckResult
	CreatedAt    time.Time
	LastAccessed time.Time
}

// Cache persists decided solver verdicts across runs, keyed by a hash of the
// session script. Validity is a property of the formula alone, so entries
// stay usable across solver upgrades. Unknown results are never stored: they
// can flip with a different timeout or machine load.
type Cache struct {
	CacheDir string
	entries  map[string]CacheEntry
	mutex    sync.RWMutex
	maxAge   time.Duration
}

func NewCache(cacheDir string) (*Cache, error) {
	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	cache := &Cache{
		CacheDir: cacheDir,
		entries:  make(map[string]CacheEntry),
		maxAge:   defaultCacheMaxAge,
	}

	if err := cache.load(); err != nil {
		return nil, fmt.Errorf("failed to load cache: %w", err)
	}

	return cache, nil
}

func (c *Cache) load() error {
	cacheFile := filepath.Join(c.CacheDir, cacheFileName)
	file, err := os.Open(cacheFile)
	if os.IsNotExist(err) {
		return nil // cache file doesn't exist yet. This is fine.
	}
	if err != nil {
		return fmt.Errorf("failed to open cache file: %w", err)
	}
	defer file.Close()

	decoder := gob.NewDecoder(file)
	if err := decoder.Decode(&c.entries); err != nil {
		return fmt.Errorf("failed to decode cache file: %w", err)
	}

	return nil
}

func (c *Cache) save() error {
	cacheFile := filepath.Join(c.CacheDir, cacheFileName)
	file, err := os.Create(cacheFile)
	if err != nil {
		return fmt.Errorf("failed to create cache file: %w", err)
	}
	defer file.Close()

	encoder := gob.NewEncoder(file)
	if err := encoder.Encode(c.entries); err != nil {
		return fmt.Errorf("failed to encode cache file: %w", err)
	}

	return nil
}

// Set records a decided result under the given key. Undecided results are
// silently dropped.
func (c *Cache) Set(key string, result smt.CheckResult) error {
	if result.Status == smt.StatusUnknown {
		return nil
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	now := time.Now()
	c.entries[key] = CacheEntry{
		Result:       result,
		CreatedAt:    now,
		LastAccessed: now,
	}

	return c.save()
}

// Get returns the cached result for key, expiring entries past their
// maximum age.
func (c *Cache) Get(key string) (smt.CheckResult, bool) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	entry, exists := c.entries[key]
	if !exists {
		return smt.CheckResult{}, false
	}

	if time.Since(entry.CreatedAt) > c.maxAge {
		delete(c.entries, key)
		return smt.CheckResult{}, false
	}

	entry.LastAccessed = time.Now()
	c.entries[key] = entry

	return entry.Result, true
}

// Len reports the number of live entries.
func (c *Cache) Len() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	return len(c.entries)
}

func (c *Cache) SetMaxAge(duration time.Duration) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.maxAge = duration
}

func (c *Cache) InvalidateAll() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.entries = make(map[string]CacheEntry)
	_ = c.save() // ignore error as this is a manual operation
}

// dischargeKey identifies one discharge query: the declared variables plus
// the negated formula. Two obligations with the same key share a verdict.
func dischargeKey(vars []string, formula string) string {
	hash := md5.New()
	io.WriteString(hash, strings.Join(vars, " "))
	io.WriteString(hash, "\n")
	io.WriteString(hash, formula)
	return fmt.Sprintf("%x", hash.Sum(nil))
}
