package ability

import (
	"bytes"
	"embed"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
	"gopkg.in/yaml.v3"
)

//go:embed locales/*.yaml
var localeFS embed.FS

// DefaultLocale is the locale the embedded catalog is written in.
const DefaultLocale = "en"

type localeFile struct {
	Locale       string            `yaml:"locale"`
	Names        map[string]string `yaml:"names"`
	Descriptions map[string]string `yaml:"descriptions"`
	Messages     map[string]string `yaml:"messages"`
}

// Catalog resolves ability names, descriptions and trigger messages for one locale.
// Messages use positional verbs such as %[1]s so translations may reorder arguments.
type Catalog struct {
	tag          language.Tag
	printer      *message.Printer
	names        map[string]string
	descriptions map[string]string
	messages     map[string]string
}

// NewCatalog parses one locale document.
//
// Precondition: data is a YAML document with a non-empty locale field.
// Postcondition: Returns a Catalog whose printer knows every message in data, or a non-nil error.
func NewCatalog(data []byte) (*Catalog, error) {
	var f localeFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("decoding locale: %w", err)
	}
	if strings.TrimSpace(f.Locale) == "" {
		return nil, fmt.Errorf("locale is required")
	}
	tag, err := language.Parse(f.Locale)
	if err != nil {
		return nil, fmt.Errorf("parsing locale %q: %w", f.Locale, err)
	}
	b := catalog.NewBuilder(catalog.Fallback(tag))
	for key, msg := range f.Messages {
		if strings.TrimSpace(key) == "" {
			return nil, fmt.Errorf("locale %s: message key cannot be blank", f.Locale)
		}
		if err := b.SetString(tag, key, msg); err != nil {
			return nil, fmt.Errorf("locale %s: registering %q: %w", f.Locale, key, err)
		}
	}
	return &Catalog{
		tag:          tag,
		printer:      message.NewPrinter(tag, message.Catalog(b)),
		names:        f.Names,
		descriptions: f.Descriptions,
		messages:     f.Messages,
	}, nil
}

var (
	defaultCatalogOnce sync.Once
	defaultCatalog     *Catalog
)

// DefaultCatalog returns the embedded English catalog. It panics if the embedded file is malformed.
func DefaultCatalog() *Catalog {
	defaultCatalogOnce.Do(func() {
		data, err := localeFS.ReadFile("locales/" + DefaultLocale + ".yaml")
		if err != nil {
			panic(fmt.Sprintf("ability: reading embedded locale: %v", err))
		}
		c, err := NewCatalog(data)
		if err != nil {
			panic(fmt.Sprintf("ability: embedded locale: %v", err))
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

// LoadCatalog returns the embedded catalog for locale, e.g. "en".
//
// Postcondition: An empty locale yields DefaultCatalog.
func LoadCatalog(locale string) (*Catalog, error) {
	if locale == "" || locale == DefaultLocale {
		return DefaultCatalog(), nil
	}
	data, err := localeFS.ReadFile("locales/" + locale + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("ability: no catalog for locale %q", locale)
	}
	return NewCatalog(data)
}

// Tag returns the catalog's language.
func (c *Catalog) Tag() language.Tag { return c.tag }

// HasMessage reports whether key is defined.
func (c *Catalog) HasMessage(key string) bool {
	_, ok := c.messages[key]
	return ok
}

// Sprintf formats the message stored under key. Unknown keys are formatted as-is.
func (c *Catalog) Sprintf(key string, args ...any) string {
	return c.printer.Sprintf(key, args...)
}

// AbilityName returns the display name of id. Without a catalog entry the name is
// derived from the snake-case key, e.g. "water_absorb" becomes "Water Absorb".
func (c *Catalog) AbilityName(id ID) string {
	key := id.String()
	if name, ok := c.names[key]; ok {
		return name
	}
	return cases.Title(c.tag).String(strings.ReplaceAll(key, "_", " "))
}

// AbilityDescription returns the description of id, or "" when the catalog has none.
func (c *Catalog) AbilityDescription(id ID) string {
	return c.descriptions[id.String()]
}
