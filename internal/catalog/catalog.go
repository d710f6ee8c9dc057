package catalog

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Tag is one selectable label: a stable identifier plus the human-readable
// description rendered on its button.
type Tag struct {
	ID          string `yaml:"id" validate:"required"`
	Description string `yaml:"description" validate:"required"`
}

// Catalog is the fixed, ordered set of tags a user can attach to an entry.
// It is built once at startup and never mutated afterwards.
type Catalog struct {
	tags  []Tag
	index map[string]struct{}
}

var validate = validator.New()

// catalogFile is the YAML shape of a tag catalog override file
type catalogFile struct {
	Tags []Tag `yaml:"tags"`
}

// Default returns the built-in tag catalog
func Default() *Catalog {
	c, err := New([]Tag{
		{ID: "work", Description: "Work"},
		{ID: "family", Description: "Family"},
		{ID: "health", Description: "Health"},
		{ID: "mood", Description: "Mood"},
		{ID: "travel", Description: "Travel"},
		{ID: "ideas", Description: "Ideas"},
	})
	if err != nil {
		// The built-in set is validated by tests; this cannot happen at runtime.
		panic(err)
	}
	return c
}

// New builds a catalog from an ordered tag list, validating each entry and
// rejecting duplicate identifiers.
func New(tags []Tag) (*Catalog, error) {
	if len(tags) == 0 {
		return nil, fmt.Errorf("catalog must contain at least one tag")
	}

	index := make(map[string]struct{}, len(tags))
	for i, tag := range tags {
		if err := validate.Struct(tag); err != nil {
			return nil, fmt.Errorf("invalid tag at position %d: %w", i, err)
		}
		if _, exists := index[tag.ID]; exists {
			return nil, fmt.Errorf("duplicate tag id %q at position %d", tag.ID, i)
		}
		index[tag.ID] = struct{}{}
	}

	return &Catalog{
		tags:  append([]Tag(nil), tags...),
		index: index,
	}, nil
}

// Load reads a catalog override from a YAML file
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read tag catalog file: %w", err)
	}

	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse tag catalog file: %w", err)
	}

	return New(f.Tags)
}

// Tags returns the catalog entries in declaration order
func (c *Catalog) Tags() []Tag {
	return append([]Tag(nil), c.tags...)
}

// Contains reports whether id is a known tag identifier
func (c *Catalog) Contains(id string) bool {
	_, ok := c.index[id]
	return ok
}

// Len returns the number of tags in the catalog
func (c *Catalog) Len() int {
	return len(c.tags)
}
