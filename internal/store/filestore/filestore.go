package filestore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"pharma-service/internal/model"
	"pharma-service/internal/store"
)

// collection holds one in-memory collection plus its backing file. records
// keeps insertion order for serialization; index maps record id to position.
type collection struct {
	mu      sync.RWMutex
	path    string
	loaded  bool
	records []model.Record
	index   map[string]int
}

// Store keeps one JSON array file per collection under a data directory. The
// whole array is rewritten on every mutation; reads are served from an
// in-memory copy indexed by id, loaded lazily from disk. A missing or
// unparseable file loads as an empty collection.
type Store struct {
	opts store.Options
	log  *zap.Logger
	cols map[string]*collection
}

// New opens (or creates) the data directory and prepares the four collections
func New(dataDir string, opts store.Options, log *zap.Logger) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	cols := make(map[string]*collection, len(model.Collections))
	for _, name := range model.Collections {
		cols[name] = &collection{
			path:  filepath.Join(dataDir, name+".json"),
			index: make(map[string]int),
		}
	}

	return &Store{opts: opts, log: log, cols: cols}, nil
}

func (s *Store) col(name string) (*collection, error) {
	c, ok := s.cols[name]
	if !ok {
		return nil, fmt.Errorf("unknown collection %q", name)
	}
	return c, nil
}

// load reads the backing file into memory. Read and parse failures are
// masked: the collection comes up empty rather than erroring, matching the
// persistence contract. Caller must hold the write lock.
func (c *collection) load(log *zap.Logger) {
	if c.loaded {
		return
	}
	c.loaded = true
	c.records = nil
	c.index = make(map[string]int)

	data, err := os.ReadFile(c.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Warn("Failed to read collection file, treating as empty",
				zap.String("path", c.path), zap.Error(err))
		}
		return
	}

	var records []model.Record
	if err := json.Unmarshal(data, &records); err != nil {
		log.Warn("Failed to parse collection file, treating as empty",
			zap.String("path", c.path), zap.Error(err))
		return
	}

	c.records = records
	for i, r := range records {
		c.index[r.ID()] = i
	}
}

// flush serializes the given record set to the collection file. Callers pass
// the candidate state and commit it to memory only after flush succeeds, so a
// failed write never leaves the cache ahead of the file. Caller must hold the
// write lock.
func (c *collection) flush(records []model.Record) error {
	if records == nil {
		records = []model.Record{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", c.path, err)
	}
	if err := os.WriteFile(c.path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", c.path, err)
	}
	return nil
}

func (s *Store) List(name string) ([]model.Record, error) {
	c, err := s.col(name)
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.load(s.log)

	out := make([]model.Record, 0, len(c.records))
	for _, r := range c.records {
		out = append(out, r.Clone())
	}
	return out, nil
}

func (s *Store) Get(name, id string) (model.Record, error) {
	c, err := s.col(name)
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.load(s.log)

	i, ok := c.index[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return c.records[i].Clone(), nil
}

func (s *Store) Create(name string, fields model.Record) (model.Record, error) {
	c, err := s.col(name)
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.load(s.log)

	id := store.NewID(func(candidate string) bool {
		_, taken := c.index[candidate]
		return taken
	})
	rec := store.BuildRecord(name, id, fields, s.opts)

	// three-index append forces a fresh backing array so a failed flush
	// cannot leave the new record visible through c.records
	next := append(c.records[:len(c.records):len(c.records)], rec)
	if err := c.flush(next); err != nil {
		return nil, err
	}
	c.records = next
	c.index[id] = len(c.records) - 1
	return rec.Clone(), nil
}

func (s *Store) Update(name, id string, fields model.Record) (model.Record, error) {
	c, err := s.col(name)
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.load(s.log)

	i, ok := c.index[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	rec := store.ApplyUpdate(name, c.records[i], fields, s.opts)

	next := make([]model.Record, len(c.records))
	copy(next, c.records)
	next[i] = rec
	if err := c.flush(next); err != nil {
		return nil, err
	}
	c.records = next

	// a loose update may have rewritten the id; keep the index in step
	if newID := rec.ID(); newID != id {
		delete(c.index, id)
		c.index[newID] = i
	}
	return rec.Clone(), nil
}

func (s *Store) Delete(name, id string) error {
	c, err := s.col(name)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.load(s.log)

	i, ok := c.index[id]
	if !ok {
		return store.ErrNotFound
	}
	next := make([]model.Record, 0, len(c.records)-1)
	next = append(next, c.records[:i]...)
	next = append(next, c.records[i+1:]...)
	if err := c.flush(next); err != nil {
		return err
	}
	c.records = next
	c.index = make(map[string]int, len(c.records))
	for j, r := range c.records {
		c.index[r.ID()] = j
	}
	return nil
}

func (s *Store) Replace(name string, records []model.Record) error {
	c, err := s.col(name)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	next := make([]model.Record, 0, len(records))
	nextIndex := make(map[string]int, len(records))
	for _, r := range records {
		next = append(next, r.Clone())
		nextIndex[r.ID()] = len(next) - 1
	}
	if err := c.flush(next); err != nil {
		return err
	}
	c.loaded = true
	c.records = next
	c.index = nextIndex
	return nil
}

func (s *Store) Exists(name string) (bool, error) {
	c, err := s.col(name)
	if err != nil {
		return false, err
	}
	_, err = os.Stat(c.path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *Store) Close() error {
	return nil
}

var _ store.Store = (*Store)(nil)
