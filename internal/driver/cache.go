package driver

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"anchorpatch/internal/report"
	"anchorpatch/internal/source"
)

// Current schema version - increment when cachedReport changes.
const reportCacheSchemaVersion uint16 = 1

// ReportCache stores dry-run reports on disk keyed by bundle snapshot and
// patch selection, so check can skip bundles it has already seen.
// Thread-safe for concurrent access.
type ReportCache struct {
	mu  sync.RWMutex
	dir string
}

type cachedReport struct {
	Schema uint16
	Report report.Report
}

// OpenReportCache creates dir if needed.
func OpenReportCache(dir string) (*ReportCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &ReportCache{dir: dir}, nil
}

// CacheKey identifies a bundle snapshot checked with a given patch selection.
// selection must describe everything that changes the outcome (ids, values).
func CacheKey(snap source.Snapshot, selection []string) string {
	h := sha256.New()
	h.Write([]byte(snap.String()))
	h.Write([]byte{0})
	h.Write([]byte(strings.Join(selection, "\x00")))
	return hex.EncodeToString(h.Sum(nil))
}

func (c *ReportCache) pathFor(key string) string {
	return filepath.Join(c.dir, key[:2], key+".mp")
}

// Put stores r under key.
func (c *ReportCache) Put(key string, r report.Report) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	data, err := msgpack.Marshal(cachedReport{Schema: reportCacheSchemaVersion, Report: r})
	if err != nil {
		return fmt.Errorf("encode cached report: %w", err)
	}
	return writeAtomic(p, data, 0o644)
}

// Get loads the report stored under key.
func (c *ReportCache) Get(key string) (report.Report, bool, error) {
	if c == nil {
		return report.Report{}, false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	data, err := os.ReadFile(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return report.Report{}, false, nil
		}
		return report.Report{}, false, err
	}
	var cached cachedReport
	if err := msgpack.Unmarshal(data, &cached); err != nil {
		return report.Report{}, false, err
	}
	if cached.Schema != reportCacheSchemaVersion {
		return report.Report{}, false, nil
	}
	return cached.Report, true, nil
}
