package battle

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/monbattle/internal/game/ability"
	"github.com/cory-johannsen/monbattle/internal/game/dex"
)

//go:embed data/roster.yaml
var defaultRoster []byte

// Spec describes one party member in a roster file.
type Spec struct {
	Species string     `yaml:"species"`
	Name    string     `yaml:"name"`
	Level   int        `yaml:"level"`
	Types   []dex.Type `yaml:"types"`
	Base    BaseStats  `yaml:"base_stats"`
	Ability string     `yaml:"ability"`
	Passive string     `yaml:"passive"`
	Moves   []string   `yaml:"moves"`
	Items   []string   `yaml:"items"`
	Gender  dex.Gender `yaml:"gender"`
	Form    int        `yaml:"form"`
}

// Roster is the two parties of a simulated battle.
type Roster struct {
	Player []Spec `yaml:"player"`
	Enemy  []Spec `yaml:"enemy"`
}

// ParseRoster decodes a roster document. Unknown fields are rejected.
func ParseRoster(data []byte) (*Roster, error) {
	var r Roster
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&r); err != nil {
		return nil, fmt.Errorf("parsing roster: %w", err)
	}
	if len(r.Player) == 0 || len(r.Enemy) == 0 {
		return nil, errors.New("parsing roster: both parties need at least one pokemon")
	}
	return &r, nil
}

// LoadRoster reads a roster file. An empty path loads the roster shipped with the binary.
func LoadRoster(path string) (*Roster, error) {
	if path == "" {
		return ParseRoster(defaultRoster)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading roster %s: %w", path, err)
	}
	return ParseRoster(data)
}

// Build turns the roster into fresh Pokemon for one battle.
//
// Precondition: reg, moves and items are non-nil.
// Postcondition: Returns an error naming the first unknown ability, move or item.
func (r *Roster) Build(reg *ability.Registry, moves *dex.MoveTable, items *dex.ItemTable) (player, enemy []*Pokemon, err error) {
	if player, err = buildParty(r.Player, reg, moves, items); err != nil {
		return nil, nil, fmt.Errorf("player party: %w", err)
	}
	if enemy, err = buildParty(r.Enemy, reg, moves, items); err != nil {
		return nil, nil, fmt.Errorf("enemy party: %w", err)
	}
	return player, enemy, nil
}

func buildParty(specs []Spec, reg *ability.Registry, moves *dex.MoveTable, items *dex.ItemTable) ([]*Pokemon, error) {
	party := make([]*Pokemon, 0, len(specs))
	for _, s := range specs {
		p, err := s.build(reg, moves, items)
		if err != nil {
			return nil, err
		}
		party = append(party, p)
	}
	return party, nil
}

func (s Spec) build(reg *ability.Registry, moves *dex.MoveTable, items *dex.ItemTable) (*Pokemon, error) {
	name := s.Name
	if name == "" {
		name = s.Species
	}
	if name == "" {
		return nil, errors.New("pokemon without species or name")
	}
	if len(s.Types) == 0 {
		return nil, fmt.Errorf("%s: no types", name)
	}
	opts := []PokemonOption{WithGender(s.Gender), WithForm(s.Form)}
	if s.Ability != "" {
		rec, ok := reg.Lookup(s.Ability)
		if !ok {
			return nil, fmt.Errorf("%s: unknown ability %q", name, s.Ability)
		}
		opts = append(opts, WithAbility(rec.ID()))
	}
	if s.Passive != "" {
		rec, ok := reg.Lookup(s.Passive)
		if !ok {
			return nil, fmt.Errorf("%s: unknown passive %q", name, s.Passive)
		}
		opts = append(opts, WithPassive(rec.ID()))
	}
	ms := make([]*dex.Move, 0, len(s.Moves))
	for _, id := range s.Moves {
		m, ok := moves.Get(id)
		if !ok {
			return nil, fmt.Errorf("%s: unknown move %q", name, id)
		}
		ms = append(ms, m)
	}
	opts = append(opts, WithMoves(ms...))
	its := make([]dex.Item, 0, len(s.Items))
	for _, id := range s.Items {
		it, ok := items.Get(id)
		if !ok {
			return nil, fmt.Errorf("%s: unknown item %q", name, id)
		}
		its = append(its, it)
	}
	opts = append(opts, WithItems(its...))
	level := s.Level
	if level == 0 {
		level = 50
	}
	return NewPokemon(name, level, s.Types, s.Base, opts...), nil
}
