// Package cache stores rendered dictionaries on disk and memoises single
// words in memory.
package cache

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"fortio.org/safecast"
	"github.com/vmihailenco/msgpack/v5"

	"numberplater/internal/plate"
)

// bump when Payload changes shape or the registry changes what it renders
const schemaVersion uint16 = 1

// EnvDir overrides the cache location.
const EnvDir = "NUMBERPLATER_CACHE_DIR"

// DiskCache keeps dictionaries by Digest. Safe for concurrent use.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// Payload is the on-disk record for one word list.
type Payload struct {
	Schema   uint16
	RunID    string
	Created  int64 // unix seconds
	Families uint8
	Words    uint32
	// Dictionary maps words to their ranked renderings.
	Dictionary map[string][]string
}

// NewPayload builds a payload for dict produced by run runID.
func NewPayload(runID string, families plate.FamilySet, dict plate.Dictionary, now time.Time) (*Payload, error) {
	n, err := safecast.Conv[uint32](len(dict))
	if err != nil {
		return nil, fmt.Errorf("dictionary too large to cache: %w", err)
	}
	p := &Payload{
		Schema:     schemaVersion,
		RunID:      runID,
		Created:    now.Unix(),
		Families:   uint8(families),
		Words:      n,
		Dictionary: make(map[string][]string, len(dict)),
	}
	for w, r := range dict {
		p.Dictionary[string(w)] = r
	}
	return p, nil
}

// Restore converts the payload back to a dictionary.
func (p *Payload) Restore() plate.Dictionary {
	out := make(plate.Dictionary, len(p.Dictionary))
	for w, r := range p.Dictionary {
		if r == nil {
			r = []string{}
		}
		out[plate.Word(w)] = r
	}
	return out
}

// Open returns the cache at $NUMBERPLATER_CACHE_DIR, or under
// $XDG_CACHE_HOME (default ~/.cache) in a directory named app.
func Open(app string) (*DiskCache, error) {
	if dir := os.Getenv(EnvDir); dir != "" {
		return OpenAt(dir)
	}
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return OpenAt(filepath.Join(base, app))
}

// OpenAt returns a cache rooted at dir, creating it if needed.
func OpenAt(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

// Dir returns the cache root.
func (c *DiskCache) Dir() string {
	if c == nil {
		return ""
	}
	return c.dir
}

func (c *DiskCache) pathFor(key Digest) string {
	hexKey := key.String()
	return filepath.Join(c.dir, "dicts", hexKey[:2], hexKey+".mp")
}

// Put serializes and writes a payload.
func (c *DiskCache) Put(key Digest, payload *Payload) (err error) {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if rmErr := os.Remove(f.Name()); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) && err == nil {
			err = rmErr
		}
	}()

	if err := msgpack.NewEncoder(f).Encode(payload); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	// atomic replace
	return os.Rename(f.Name(), p)
}

// Get reads the payload for key. Entries written under another schema are
// reported as misses.
func (c *DiskCache) Get(key Digest, out *Payload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer f.Close()

	if err := msgpack.NewDecoder(f).Decode(out); err != nil {
		return false, fmt.Errorf("decode cache entry %s: %w", key, err)
	}
	if out.Schema != schemaVersion {
		return false, nil
	}
	return true, nil
}

// DropAll removes every cached entry.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if err := os.RemoveAll(old); err != nil {
		return err
	}
	return os.MkdirAll(c.dir, 0o755)
}
