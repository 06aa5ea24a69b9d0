package httpcache

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Entry is one cached HTTP response.
type Entry struct {
	Status   int         `json:"status"`
	Proto    string      `json:"proto"`
	Header   http.Header `json:"header"`
	Body     []byte      `json:"body"`
	CachedAt time.Time   `json:"cached_at"`
}

// FileCache persists entries as individual JSON files under a directory.
// The directory is created lazily on the first Set. It is safe for
// concurrent use within a process; processes sharing a directory race
// benignly: last writer wins and torn files read as misses.
type FileCache struct {
	dir    string
	logger zerolog.Logger
	mu     sync.RWMutex
}

// NewFileCache creates a file-backed cache rooted at dir.
func NewFileCache(dir string, logger zerolog.Logger) *FileCache {
	return &FileCache{
		dir:    dir,
		logger: logger,
	}
}

// Get returns the entry stored under key. Missing, unreadable or corrupt
// files all count as misses.
func (c *FileCache) Get(key string) (Entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	data, err := os.ReadFile(c.entryPath(key))
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			c.logger.Debug().Err(err).Str("key", key).Msg("cache read failed")
		}
		return Entry{}, false
	}

	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		c.logger.Debug().Err(err).Str("key", key).Msg("corrupt cache entry treated as miss")
		return Entry{}, false
	}
	return entry, true
}

// Set stores an entry under key, writing through a temp file so readers
// never observe a partial entry.
func (c *FileCache) Set(key string, entry Entry) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal cache entry: %w", err)
	}

	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return fmt.Errorf("create cache directory: %w", err)
	}

	path := c.entryPath(key)
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("write cache entry: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename cache entry: %w", err)
	}
	return nil
}

// Remove deletes the entry stored under key. Removing an absent entry is
// not an error.
func (c *FileCache) Remove(key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := os.Remove(c.entryPath(key)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove cache entry: %w", err)
	}
	return nil
}

// Clear deletes every entry in the cache directory. Files that do not
// look like entries are left alone.
func (c *FileCache) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	matches, err := filepath.Glob(filepath.Join(c.dir, "*.json"))
	if err != nil {
		return fmt.Errorf("list cache entries: %w", err)
	}
	for _, path := range matches {
		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("remove cache entry: %w", err)
		}
	}
	return nil
}

func (c *FileCache) entryPath(key string) string {
	return filepath.Join(c.dir, key+".json")
}
