package ability

import "fmt"

// Record is the immutable definition of one ability: metadata plus an ordered attribute list.
// Records are shared read-only by every Pokemon and every battle.
type Record struct {
	id            ID
	key           string
	generation    int
	name          string
	description   string
	bypassFaint   bool
	ignorable     bool
	partial       bool
	unimplemented bool
	attrs         []Attr
	conditions    []Condition
}

func (r *Record) ID() ID { return r.id }

// Key returns the lookup key: the standard snake-case key, or the key a data definition declared.
func (r *Record) Key() string {
	if r.key != "" {
		return r.key
	}
	return r.id.String()
}

func (r *Record) Generation() int { return r.generation }

// Name returns the display name. Partial abilities end in " (P)" and unimplemented ones in " (N)".
func (r *Record) Name() string {
	switch {
	case r.unimplemented:
		return r.name + " (N)"
	case r.partial:
		return r.name + " (P)"
	default:
		return r.name
	}
}

// BaseName returns the display name without the completeness suffix.
func (r *Record) BaseName() string      { return r.name }
func (r *Record) Description() string   { return r.description }
func (r *Record) BypassesFaint() bool   { return r.bypassFaint }
func (r *Record) Ignorable() bool       { return r.ignorable }
func (r *Record) IsPartial() bool       { return r.partial }
func (r *Record) IsUnimplemented() bool { return r.unimplemented }

// Attrs returns the attributes in declaration order. The slice must not be modified.
func (r *Record) Attrs() []Attr { return r.attrs }

// Conditions returns the record-level eligibility conditions.
func (r *Record) Conditions() []Condition { return r.conditions }

// AttrsOf returns the attributes whose kind refines one of kinds, in declaration order.
func (r *Record) AttrsOf(kinds ...Kind) []Attr {
	var out []Attr
	for _, a := range r.attrs {
		if a.Kind().matchesAny(kinds) {
			out = append(out, a)
		}
	}
	return out
}

// HasAttr reports whether any attribute refines kind.
func (r *Record) HasAttr(kind Kind) bool {
	for _, a := range r.attrs {
		if a.Kind().Is(kind) {
			return true
		}
	}
	return false
}

// AttrsIn returns the attributes dispatched under c.
func (r *Record) AttrsIn(c Category) []Attr {
	var out []Attr
	for _, a := range r.attrs {
		if a.Kind().Category() == c {
			out = append(out, a)
		}
	}
	return out
}

// match returns the attributes of category c whose kind refines one of kinds.
func (r *Record) match(c Category, kinds []Kind) []Attr {
	var out []Attr
	for _, a := range r.attrs {
		k := a.Kind()
		if k.Category() == c && k.matchesAny(kinds) {
			out = append(out, a)
		}
	}
	return out
}

// String returns the display name.
func (r *Record) String() string { return r.Name() }

// Builder composes a Record. Calls are order-sensitive and cumulative.
type Builder struct {
	rec     *Record
	catalog *Catalog
	built   bool
}

// New starts a record for id.
//
// Postcondition: Returns a builder whose name and description default to the catalog entries for id.
func New(id ID, generation int) *Builder {
	return &Builder{rec: &Record{id: id, generation: generation}}
}

// WithCatalog sets the catalog used to derive the name and description at Build.
func (b *Builder) WithCatalog(c *Catalog) *Builder {
	b.catalog = c
	return b
}

// Attr appends a.
//
// Precondition: a is non-nil and not attached to another record.
func (b *Builder) Attr(a Attr) *Builder {
	b.mustOpen()
	b.rec.attrs = append(b.rec.attrs, a)
	return b
}

// Attrs appends each attribute in order.
func (b *Builder) Attrs(as ...Attr) *Builder {
	for _, a := range as {
		b.Attr(a)
	}
	return b
}

// ConditionalAttr appends a with c as its extra condition. A condition a already carries must hold too.
func (b *Builder) ConditionalAttr(c Condition, a Attr) *Builder {
	b.mustOpen()
	if prev := a.base().cond; prev != nil {
		c = All{prev, c}
	}
	a.base().cond = c
	b.rec.attrs = append(b.rec.attrs, a)
	return b
}

// Condition adds a record-level eligibility condition checked before any attribute of the ability applies.
func (b *Builder) Condition(c Condition) *Builder {
	b.mustOpen()
	b.rec.conditions = append(b.rec.conditions, c)
	return b
}

// BypassFaint lets the ability apply after its owner has fainted.
func (b *Builder) BypassFaint() *Builder {
	b.mustOpen()
	b.rec.bypassFaint = true
	return b
}

// Ignorable lets mold-breaker style effects bypass the ability.
func (b *Builder) Ignorable() *Builder {
	b.mustOpen()
	b.rec.ignorable = true
	return b
}

// Partial documents that the ability's behavior is incomplete.
func (b *Builder) Partial() *Builder {
	b.mustOpen()
	b.rec.partial = true
	return b
}

// Unimplemented documents that the ability has no working behavior.
func (b *Builder) Unimplemented() *Builder {
	b.mustOpen()
	b.rec.unimplemented = true
	return b
}

// Named overrides the catalog-derived name and description.
func (b *Builder) Named(name, description string) *Builder {
	b.mustOpen()
	b.rec.name = name
	b.rec.description = description
	return b
}

// Keyed sets the lookup key of a data-defined record.
func (b *Builder) Keyed(key string) *Builder {
	b.mustOpen()
	b.rec.key = key
	return b
}

// Build validates and freezes the record.
//
// Precondition: Build has not been called on b before.
// Postcondition: Every attribute implements the interface of its kind's category; panics otherwise.
func (b *Builder) Build() *Record {
	b.mustOpen()
	b.built = true
	for i, a := range b.rec.attrs {
		if a == nil {
			panic(fmt.Sprintf("ability %s: attribute %d is nil", b.rec.id, i))
		}
		if !implementsCategory(a, a.Kind().Category()) {
			panic(fmt.Sprintf("ability %s: attribute %d (%s) does not implement %s", b.rec.id, i, a.Kind(), a.Kind().Category()))
		}
	}
	cat := b.catalog
	if cat == nil {
		cat = DefaultCatalog()
	}
	if b.rec.name == "" {
		b.rec.name = cat.AbilityName(b.rec.id)
	}
	if b.rec.description == "" {
		b.rec.description = cat.AbilityDescription(b.rec.id)
	}
	return b.rec
}

func (b *Builder) mustOpen() {
	if b.built {
		panic(fmt.Sprintf("ability %s: builder reused after Build", b.rec.id))
	}
}
