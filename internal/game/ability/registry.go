package ability

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrDuplicateAbility is returned when two records share an id.
	ErrDuplicateAbility = errors.New("duplicate ability id")
	// ErrUnknownAttr is returned when a definition names an attribute the factory table lacks.
	ErrUnknownAttr = errors.New("unknown ability attribute")
)

// Registry is the immutable id-to-record table shared by every battle.
type Registry struct {
	records map[ID]*Record
	byKey   map[string]*Record
	ordered []*Record
}

// NewRegistry indexes records by id.
//
// Precondition: every record is non-nil.
// Postcondition: Returns a Registry holding every record, or ErrDuplicateAbility.
func NewRegistry(records ...*Record) (*Registry, error) {
	r := &Registry{
		records: make(map[ID]*Record, len(records)),
		byKey:   make(map[string]*Record, 2*len(records)),
	}
	for _, rec := range records {
		if rec == nil {
			return nil, fmt.Errorf("nil ability record")
		}
		if _, dup := r.records[rec.ID()]; dup {
			return nil, fmt.Errorf("%w: %s (%d)", ErrDuplicateAbility, rec.ID(), int(rec.ID()))
		}
		r.records[rec.ID()] = rec
		r.ordered = append(r.ordered, rec)
		r.byKey[rec.Key()] = rec
		if k := NormalizeKey(rec.BaseName()); k != "" {
			if _, taken := r.byKey[k]; !taken {
				r.byKey[k] = rec
			}
		}
	}
	sort.Slice(r.ordered, func(i, j int) bool { return r.ordered[i].ID() < r.ordered[j].ID() })
	return r, nil
}

// Get returns the record for id.
func (r *Registry) Get(id ID) (*Record, bool) {
	rec, ok := r.records[id]
	return rec, ok
}

// MustGet returns the record for id and panics if it is not registered.
func (r *Registry) MustGet(id ID) *Record {
	rec, ok := r.records[id]
	if !ok {
		panic(fmt.Sprintf("ability %s (%d) is not registered", id, int(id)))
	}
	return rec
}

// Lookup resolves a snake-case key or a display name such as "Water Absorb".
func (r *Registry) Lookup(key string) (*Record, bool) {
	if rec, ok := r.byKey[key]; ok {
		return rec, true
	}
	rec, ok := r.byKey[NormalizeKey(key)]
	return rec, ok
}

// NormalizeKey folds a display name to snake case: "Dragon's Maw" becomes "dragons_maw".
func NormalizeKey(name string) string {
	var b strings.Builder
	pending := false
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			if pending && b.Len() > 0 {
				b.WriteByte('_')
			}
			pending = false
			b.WriteRune(r)
		case r == '\'' || r == '.':
		default:
			pending = true
		}
	}
	return b.String()
}

// All returns every record ordered by id. The slice must not be modified.
func (r *Registry) All() []*Record { return r.ordered }

// Len returns the number of records.
func (r *Registry) Len() int { return len(r.records) }

// Options configures BuildRegistry.
type Options struct {
	// Catalog supplies names and descriptions; DefaultCatalog when nil.
	Catalog *Catalog
	// Custom records are registered after the standard table.
	Custom []*Record
}

// StandardRecords builds the standard ability table. It has no side effects; each call returns new records.
func StandardRecords(opts Options) []*Record {
	c := opts.Catalog
	if c == nil {
		c = DefaultCatalog()
	}
	var out []*Record
	for _, gen := range [...]func(*Catalog) []*Record{gen3, gen4, gen5, gen6, gen7, gen8, gen9} {
		out = append(out, gen(c)...)
	}
	return out
}

// BuildRegistry returns a registry holding the standard table followed by opts.Custom.
func BuildRegistry(opts Options) (*Registry, error) {
	records := StandardRecords(opts)
	records = append(records, opts.Custom...)
	return NewRegistry(records...)
}
