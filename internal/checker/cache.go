package checker

import (
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"cite/internal/directive"
	"cite/internal/source"
)

// Current schema version - increment when scanPayload format changes.
const scanCacheSchemaVersion uint16 = 1

// DiskCache stores scan results keyed by file content hash. Scanning
// is pure over file content, so a hit replays the recorded directives
// without rereading the file line by line. Parsing is re-run every
// time: it is cheap and depends on the schema registry, not the file.
// Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// rawPayload mirrors directive.Raw with file-relative offsets only, so
// a payload stays valid across runs that assign different FileIDs.
type rawPayload struct {
	Args        string
	ArgsOff     uint32
	SpanStart   uint32
	SpanEnd     uint32
	TargetKind  uint8
	TargetName  string
	TargetStart uint32
	TargetEnd   uint32
}

// scanPayload is the cached scan result for one file content hash.
type scanPayload struct {
	// Schema version for safe invalidation when format changes
	Schema     uint16
	Directives []rawPayload
}

// OpenDiskCache initializes and returns a disk cache at the standard
// XDG location.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, app)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) pathFor(key [32]byte) string {
	hexKey := hex.EncodeToString(key[:])
	return filepath.Join(c.dir, "scan", hexKey+".mp")
}

// Put serializes and writes the scan result for a file.
func (c *DiskCache) Put(file *source.File, raws []directive.Raw) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	payload := scanPayload{Schema: scanCacheSchemaVersion}
	payload.Directives = make([]rawPayload, len(raws))
	for i, raw := range raws {
		payload.Directives[i] = rawPayload{
			Args:        raw.Args,
			ArgsOff:     raw.ArgsOff,
			SpanStart:   raw.Span.Start,
			SpanEnd:     raw.Span.End,
			TargetKind:  uint8(raw.Target.Kind),
			TargetName:  raw.Target.Name,
			TargetStart: raw.Target.Span.Start,
			TargetEnd:   raw.Target.Span.End,
		}
	}

	p := c.pathFor(file.Hash)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		_ = os.Remove(f.Name())
	}()

	if err := msgpack.NewEncoder(f).Encode(&payload); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	// atomic replace
	return os.Rename(f.Name(), p)
}

// Get reads the cached scan result for a file, rebuilding spans with
// the file's current FileID. The second return is false on a miss or a
// schema mismatch.
func (c *DiskCache) Get(file *source.File) ([]directive.Raw, bool, error) {
	if c == nil {
		return nil, false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(file.Hash))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	defer func() {
		_ = f.Close()
	}()

	var payload scanPayload
	if err := msgpack.NewDecoder(f).Decode(&payload); err != nil {
		return nil, false, err
	}
	if payload.Schema != scanCacheSchemaVersion {
		return nil, false, nil
	}

	raws := make([]directive.Raw, len(payload.Directives))
	for i, p := range payload.Directives {
		raws[i] = directive.Raw{
			Args:    p.Args,
			ArgsOff: p.ArgsOff,
			Span:    source.Span{File: file.ID, Start: p.SpanStart, End: p.SpanEnd},
			Target: directive.Target{
				Kind: directive.TargetKind(p.TargetKind),
				Name: p.TargetName,
				Span: source.Span{File: file.ID, Start: p.TargetStart, End: p.TargetEnd},
			},
		}
	}
	return raws, true, nil
}

// DropAll invalidates the cache, useful after format changes.
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
	return os.RemoveAll(old)
}
