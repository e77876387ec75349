package model

import (
	"strconv"
	"strings"
)

// Collection names. Each backs one logical set of same-typed records.
const (
	CollectionUsers     = "users"
	CollectionMedicines = "medicines"
	CollectionOrders    = "orders"
	CollectionReports   = "reports"
)

// Collections lists every known collection name
var Collections = []string{
	CollectionUsers,
	CollectionMedicines,
	CollectionOrders,
	CollectionReports,
}

// Schemas lists the expected top-level fields per collection. Used by strict
// validation; loose mode persists any caller field verbatim. Orders and
// reports are free-form beyond the server-assigned fields.
var Schemas = map[string][]string{
	CollectionUsers:     {"email", "password", "role", "name", "phone"},
	CollectionMedicines: {"name", "category", "price", "stock", "manufacturer", "expiryDate", "description", "batchNumber"},
	CollectionOrders:    nil,
	CollectionReports:   nil,
}

// Record is one document in a collection. Fields beyond the server-assigned
// id/createdAt/updatedAt are caller-defined.
type Record map[string]any

// ID returns the record's id, or "" if unset
func (r Record) ID() string {
	return r.String("id")
}

// String returns the value under key if it is a string
func (r Record) String(key string) string {
	s, _ := r[key].(string)
	return s
}

// Float returns the value under key parsed as a number. Numeric strings are
// accepted; anything else counts as 0.
func (r Record) Float(key string) float64 {
	switch v := r[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

// Int returns the value under key parsed as an integer. The second return
// reports whether the value parsed at all.
func (r Record) Int(key string) (int, bool) {
	switch v := r[key].(type) {
	case float64:
		return int(v), true
	case int:
		return v, true
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

// Clone returns a shallow copy of the record
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Merge overlays the supplied top-level fields onto a copy of the record,
// leaving others untouched
func (r Record) Merge(fields Record) Record {
	out := r.Clone()
	for k, v := range fields {
		out[k] = v
	}
	return out
}

// WithoutPassword returns a copy of the record with the password field removed
func (r Record) WithoutPassword() Record {
	out := r.Clone()
	delete(out, "password")
	return out
}

// StripPasswords removes the password field from every record
func StripPasswords(records []Record) []Record {
	out := make([]Record, 0, len(records))
	for _, r := range records {
		out = append(out, r.WithoutPassword())
	}
	return out
}
