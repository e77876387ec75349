package store

import (
	"errors"
	"strconv"
	"time"

	"pharma-service/internal/model"
	"pharma-service/pkg/config"
)

var (
	ErrNotFound = errors.New("record not found")
	ErrConflict = errors.New("record already exists")
)

// Store is the persistence contract every backend implements. Handlers only
// depend on this interface, so the backing storage can change without
// touching handler logic.
type Store interface {
	// List returns every record in the collection
	List(collection string) ([]model.Record, error)
	// Get returns the record with the given id, or ErrNotFound
	Get(collection, id string) (model.Record, error)
	// Create assigns an id and createdAt, merges caller fields per the
	// validation mode and persists the record
	Create(collection string, fields model.Record) (model.Record, error)
	// Update shallow-merges caller fields over the existing record and
	// stamps updatedAt, or returns ErrNotFound
	Update(collection, id string, fields model.Record) (model.Record, error)
	// Delete removes the record with the given id, or returns ErrNotFound
	Delete(collection, id string) error
	// Replace overwrites the whole collection; used by seeding
	Replace(collection string, records []model.Record) error
	// Exists reports whether the collection's backing store has ever been
	// written. Seeding keys off this, not emptiness: a deliberately emptied
	// collection stays empty across restarts.
	Exists(collection string) (bool, error)
	// Close releases backend resources
	Close() error
}

// Options configure behavior shared by all backends
type Options struct {
	ValidationMode string
}

// NewID returns a millisecond-timestamp id like the ones the demo data uses.
// exists is consulted so back-to-back creations never collide; the candidate
// is bumped until unused.
func NewID(exists func(id string) bool) string {
	n := time.Now().UnixMilli()
	id := strconv.FormatInt(n, 10)
	for exists(id) {
		n++
		id = strconv.FormatInt(n, 10)
	}
	return id
}

// Timestamp returns the current time in the RFC3339 format stored on records
func Timestamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// BuildRecord assembles a new record from caller fields plus the
// server-assigned id and createdAt
func BuildRecord(collection, id string, fields model.Record, opts Options) model.Record {
	rec := model.Record{}
	for k, v := range fields {
		if !fieldAllowed(collection, k, opts) {
			continue
		}
		rec[k] = v
	}
	rec["id"] = id
	rec["createdAt"] = Timestamp()
	return rec
}

// ApplyUpdate shallow-merges caller fields over an existing record and stamps
// updatedAt
func ApplyUpdate(collection string, existing, fields model.Record, opts Options) model.Record {
	rec := existing.Clone()
	for k, v := range fields {
		if !fieldAllowed(collection, k, opts) {
			continue
		}
		if opts.ValidationMode == config.ValidationStrict && (k == "id" || k == "createdAt") {
			// id and createdAt are immutable under strict validation
			continue
		}
		rec[k] = v
	}
	rec["updatedAt"] = Timestamp()
	return rec
}

func fieldAllowed(collection, field string, opts Options) bool {
	if opts.ValidationMode != config.ValidationStrict {
		return true
	}
	schema := model.Schemas[collection]
	if schema == nil {
		// free-form collections accept anything even under strict mode
		return true
	}
	switch field {
	case "id", "createdAt", "updatedAt", "status":
		return true
	}
	for _, f := range schema {
		if f == field {
			return true
		}
	}
	return false
}
