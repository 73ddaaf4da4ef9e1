package dex

import (
	"bytes"
	"embed"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

//go:embed data/*.yaml
var dataFS embed.FS

type moveDoc struct {
	ID          string         `yaml:"id"`
	Name        string         `yaml:"name"`
	Type        Type           `yaml:"type"`
	Category    MoveCategory   `yaml:"category"`
	Power       int            `yaml:"power"`
	Accuracy    int            `yaml:"accuracy"`
	PP          int            `yaml:"pp"`
	Priority    int            `yaml:"priority"`
	Chance      *int           `yaml:"chance"`
	Target      MoveTarget     `yaml:"target"`
	Flags       MoveFlags      `yaml:"flags"`
	Hits        []int          `yaml:"hits"`
	Status      StatusEffect   `yaml:"status"`
	Tag         BattlerTagType `yaml:"tag"`
	Flinch      bool           `yaml:"flinch"`
	StatChanges []StatChange   `yaml:"stat_changes"`
	Recoil      float64        `yaml:"recoil"`
	Drain       float64        `yaml:"drain"`
	Heal        float64        `yaml:"heal"`
	OHKO        bool           `yaml:"ohko"`
}

func (d moveDoc) toMove() (*Move, error) {
	if d.ID == "" {
		return nil, fmt.Errorf("move without id")
	}
	m := &Move{
		ID:          d.ID,
		Name:        d.Name,
		Type:        d.Type,
		Category:    d.Category,
		Power:       d.Power,
		Accuracy:    d.Accuracy,
		PP:          d.PP,
		Priority:    d.Priority,
		Chance:      -1,
		Target:      d.Target,
		Flags:       d.Flags,
		MinHits:     1,
		MaxHits:     1,
		Status:      d.Status,
		Tag:         d.Tag,
		Flinch:      d.Flinch,
		StatChanges: d.StatChanges,
		Recoil:      d.Recoil,
		Drain:       d.Drain,
		Heal:        d.Heal,
		OHKO:        d.OHKO,
	}
	if d.Chance != nil {
		m.Chance = *d.Chance
	}
	switch len(d.Hits) {
	case 0:
	case 1:
		m.MinHits, m.MaxHits = d.Hits[0], d.Hits[0]
	case 2:
		m.MinHits, m.MaxHits = d.Hits[0], d.Hits[1]
	default:
		return nil, fmt.Errorf("move %q: hits must have one or two values", d.ID)
	}
	if m.Name == "" {
		m.Name = d.ID
	}
	return m, nil
}

// MoveTable indexes moves by id.
type MoveTable struct {
	moves map[string]*Move
}

// Get returns the move with the given id.
func (t *MoveTable) Get(id string) (*Move, bool) {
	m, ok := t.moves[id]
	return m, ok
}

// All returns every move sorted by id.
func (t *MoveTable) All() []*Move {
	out := make([]*Move, 0, len(t.moves))
	for _, m := range t.moves {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Len returns the number of moves.
func (t *MoveTable) Len() int { return len(t.moves) }

// ParseMoves decodes a YAML sequence of move definitions.
//
// Precondition: data is a YAML document whose root is a sequence.
// Postcondition: Returns a table with one entry per move, or an error naming the first bad entry.
func ParseMoves(data []byte) (*MoveTable, error) {
	var docs []moveDoc
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&docs); err != nil {
		return nil, fmt.Errorf("parsing moves: %w", err)
	}
	t := &MoveTable{moves: make(map[string]*Move, len(docs))}
	for _, d := range docs {
		m, err := d.toMove()
		if err != nil {
			return nil, fmt.Errorf("parsing moves: %w", err)
		}
		if _, dup := t.moves[m.ID]; dup {
			return nil, fmt.Errorf("parsing moves: duplicate move %q", m.ID)
		}
		t.moves[m.ID] = m
	}
	return t, nil
}

// LoadMoves returns the move table shipped with the binary.
//
// Postcondition: Returns a non-empty table or an error.
func LoadMoves() (*MoveTable, error) {
	data, err := dataFS.ReadFile("data/moves.yaml")
	if err != nil {
		return nil, fmt.Errorf("reading embedded moves: %w", err)
	}
	return ParseMoves(data)
}

// MustLoadMoves is LoadMoves for callers that cannot run without reference data.
func MustLoadMoves() *MoveTable {
	t, err := LoadMoves()
	if err != nil {
		panic(err)
	}
	return t
}

// Item is a held item.
type Item struct {
	ID           string `yaml:"id"`
	Name         string `yaml:"name"`
	Transferable bool   `yaml:"transferable"`
	Berry        bool   `yaml:"berry"`
}

// ItemTable indexes held items by id.
type ItemTable struct {
	items map[string]Item
}

// Get returns the item with the given id.
func (t *ItemTable) Get(id string) (Item, bool) {
	it, ok := t.items[id]
	return it, ok
}

// LoadItems returns the held-item table shipped with the binary.
func LoadItems() (*ItemTable, error) {
	data, err := dataFS.ReadFile("data/items.yaml")
	if err != nil {
		return nil, fmt.Errorf("reading embedded items: %w", err)
	}
	var docs []Item
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&docs); err != nil {
		return nil, fmt.Errorf("parsing items: %w", err)
	}
	t := &ItemTable{items: make(map[string]Item, len(docs))}
	for _, it := range docs {
		if it.Name == "" {
			it.Name = it.ID
		}
		t.items[it.ID] = it
	}
	return t, nil
}
