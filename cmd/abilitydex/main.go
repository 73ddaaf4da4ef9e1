// Package main provides abilitydex, which prints the ability registry as a table or YAML.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/monbattle/internal/game/ability"
)

// filter selects records to list. Zero values match everything.
type filter struct {
	generation int
	key        string
	kind       string
}

func (f filter) match(rec *ability.Record) bool {
	if f.generation != 0 && rec.Generation() != f.generation {
		return false
	}
	if f.key != "" && !strings.Contains(rec.Key(), ability.NormalizeKey(f.key)) {
		return false
	}
	if f.kind != "" {
		for _, a := range rec.Attrs() {
			if a.Kind().String() == f.kind {
				return true
			}
		}
		return false
	}
	return true
}

// entry is the YAML form of one record.
type entry struct {
	ID          int      `yaml:"id"`
	Key         string   `yaml:"key"`
	Name        string   `yaml:"name"`
	Generation  int      `yaml:"generation"`
	Description string   `yaml:"description,omitempty"`
	Ignorable   bool     `yaml:"ignorable,omitempty"`
	BypassFaint bool     `yaml:"bypass_faint,omitempty"`
	Attrs       []string `yaml:"attrs,omitempty"`
}

func toEntry(rec *ability.Record) entry {
	e := entry{
		ID:          int(rec.ID()),
		Key:         rec.Key(),
		Name:        rec.Name(),
		Generation:  rec.Generation(),
		Description: rec.Description(),
		Ignorable:   rec.Ignorable(),
		BypassFaint: rec.BypassesFaint(),
	}
	for _, a := range rec.Attrs() {
		e.Attrs = append(e.Attrs, a.Kind().String())
	}
	return e
}

// list writes every record of reg matching f in the given format ("table" or "yaml").
func list(w io.Writer, reg *ability.Registry, f filter, format string) error {
	var recs []*ability.Record
	for _, rec := range reg.All() {
		if f.match(rec) {
			recs = append(recs, rec)
		}
	}
	switch format {
	case "yaml":
		out := make([]entry, 0, len(recs))
		for _, rec := range recs {
			out = append(out, toEntry(rec))
		}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(out); err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}
		return enc.Close()
	case "table":
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tKEY\tNAME\tGEN\tATTRS")
		for _, rec := range recs {
			e := toEntry(rec)
			fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%s\n", e.ID, e.Key, e.Name, e.Generation, strings.Join(e.Attrs, ","))
		}
		if err := tw.Flush(); err != nil {
			return err
		}
		message.NewPrinter(language.English).Fprintf(w, "%d of %d abilities\n", len(recs), reg.Len())
		return nil
	default:
		return fmt.Errorf("unknown format %q (supported: table, yaml)", format)
	}
}

func main() {
	locale := flag.String("locale", ability.DefaultLocale, "catalog locale for names and descriptions")
	defsDir := flag.String("defs", "", "optional directory of YAML ability definitions")
	gen := flag.Int("gen", 0, "only list abilities introduced in this generation")
	key := flag.String("key", "", "only list abilities whose key contains this text")
	kind := flag.String("kind", "", "only list abilities carrying this attribute kind")
	format := flag.String("format", "table", "output format: table or yaml")
	flag.Parse()

	catalog, err := ability.LoadCatalog(*locale)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	var custom []*ability.Record
	if *defsDir != "" {
		if custom, err = ability.LoadDefinitions(*defsDir, catalog); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	}
	reg, err := ability.BuildRegistry(ability.Options{Catalog: catalog, Custom: custom})
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if err := list(os.Stdout, reg, filter{generation: *gen, key: *key, kind: *kind}, *format); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
