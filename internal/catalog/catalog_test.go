package catalog

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	t.Parallel()

	c := Default()
	if c.Len() == 0 {
		t.Fatal("Expected default catalog to contain tags")
	}
	if !c.Contains("work") {
		t.Error("Expected default catalog to contain 'work'")
	}
	if c.Contains("nonexistent") {
		t.Error("Expected Contains to be false for unknown id")
	}
}

func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		tags        []Tag
		expectError bool
	}{
		{
			name: "valid tags",
			tags: []Tag{
				{ID: "a", Description: "A"},
				{ID: "b", Description: "B"},
			},
			expectError: false,
		},
		{
			name:        "empty catalog",
			tags:        []Tag{},
			expectError: true,
		},
		{
			name: "missing id",
			tags: []Tag{
				{ID: "", Description: "A"},
			},
			expectError: true,
		},
		{
			name: "missing description",
			tags: []Tag{
				{ID: "a", Description: ""},
			},
			expectError: true,
		},
		{
			name: "duplicate ids",
			tags: []Tag{
				{ID: "a", Description: "A"},
				{ID: "a", Description: "Also A"},
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c, err := New(tt.tags)
			if tt.expectError {
				if err == nil {
					t.Error("Expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if c.Len() != len(tt.tags) {
				t.Errorf("Expected %d tags, got %d", len(tt.tags), c.Len())
			}
		})
	}
}

func TestTagsOrderAndIsolation(t *testing.T) {
	t.Parallel()

	in := []Tag{
		{ID: "z", Description: "Z"},
		{ID: "a", Description: "A"},
		{ID: "m", Description: "M"},
	}
	c, err := New(in)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	got := c.Tags()
	for i := range in {
		if got[i].ID != in[i].ID {
			t.Errorf("Expected tag %d to be %q, got %q", i, in[i].ID, got[i].ID)
		}
	}

	// Mutating the returned slice must not affect the catalog
	got[0].ID = "mutated"
	if c.Tags()[0].ID != "z" {
		t.Error("Expected catalog to be isolated from caller mutation")
	}
}

func TestLoad(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		content     string
		expectError bool
		expectLen   int
		expectFirst string
	}{
		{
			name: "valid file",
			content: `tags:
  - id: gym
    description: Gym session
  - id: reading
    description: Reading
`,
			expectError: false,
			expectLen:   2,
			expectFirst: "gym",
		},
		{
			name:        "invalid yaml",
			content:     "tags: [::",
			expectError: true,
		},
		{
			name: "missing description",
			content: `tags:
  - id: gym
`,
			expectError: true,
		},
		{
			name:        "empty tags list",
			content:     "tags: []",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), "tags.yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0o600); err != nil {
				t.Fatalf("Failed to write temp file: %v", err)
			}

			c, err := Load(path)
			if tt.expectError {
				if err == nil {
					t.Error("Expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if c.Len() != tt.expectLen {
				t.Errorf("Expected %d tags, got %d", tt.expectLen, c.Len())
			}
			if c.Tags()[0].ID != tt.expectFirst {
				t.Errorf("Expected first tag %q, got %q", tt.expectFirst, c.Tags()[0].ID)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	if _, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml")); err == nil {
		t.Error("Expected error for missing file, got nil")
	}
}
