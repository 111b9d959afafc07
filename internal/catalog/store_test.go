package catalog

import (
	"errors"
	"testing"

	"github.com/sifthq/sift/internal/ast"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := OpenMemory()
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	err = store.Load([]byte(`
indexes:
  - name: public.contacts
    index_name: contacts-v2
    options:
      shadow: "true"
  - name: public.orgs
links:
  - source: public.contacts
    target: public.orgs
    left_field: org_id
    right_field: id
  - source: public.contacts
    target: public.notes
    left_field: id
    right_field: contact_id
`))
	if err != nil {
		t.Fatalf("failed to load topology: %v", err)
	}
	return store
}

func TestResolve(t *testing.T) {
	store := setupTestStore(t)

	opts, err := store.Resolve("public.contacts")
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if opts.IndexName != "contacts-v2" {
		t.Errorf("expected explicit backend name, got %s", opts.IndexName)
	}
	if opts.Options["shadow"] != "true" {
		t.Errorf("expected options to round-trip, got %v", opts.Options)
	}
}

func TestResolveDefaultsToSluggedName(t *testing.T) {
	store := setupTestStore(t)

	opts, err := store.Resolve("public.orgs")
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if opts.IndexName != "public-orgs" {
		t.Errorf("expected slugged backend name public-orgs, got %s", opts.IndexName)
	}
}

func TestResolveUnknownIndex(t *testing.T) {
	store := setupTestStore(t)

	_, err := store.Resolve("public.nothing")
	if !errors.Is(err, ErrIndexNotFound) {
		t.Fatalf("expected ErrIndexNotFound, got %v", err)
	}
}

func TestLinksAreStableOrdered(t *testing.T) {
	store := setupTestStore(t)

	links, err := store.Links("public.contacts")
	if err != nil {
		t.Fatalf("links failed: %v", err)
	}
	if len(links) != 2 {
		t.Fatalf("expected 2 links, got %d", len(links))
	}
	// Ascending target order regardless of insertion order.
	if links[0].QualifiedIndex != "public.notes" || links[1].QualifiedIndex != "public.orgs" {
		t.Errorf("links out of order: %v", links)
	}
	if links[1].LeftField != "org_id" || links[1].RightField != "id" {
		t.Errorf("wrong field pair: %+v", links[1])
	}
}

func TestLinksForUnknownIndexIsEmpty(t *testing.T) {
	store := setupTestStore(t)

	links, err := store.Links("public.nothing")
	if err != nil {
		t.Fatalf("links failed: %v", err)
	}
	if len(links) != 0 {
		t.Errorf("expected no links, got %v", links)
	}
}

func TestReloadReplacesIndexDefinition(t *testing.T) {
	store := setupTestStore(t)

	err := store.Load([]byte(`
indexes:
  - name: public.contacts
    index_name: contacts-v3
`))
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}

	opts, err := store.Resolve("public.contacts")
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if opts.IndexName != "contacts-v3" {
		t.Errorf("expected updated backend name, got %s", opts.IndexName)
	}
}

func TestDuplicateLinksAreIgnored(t *testing.T) {
	store := setupTestStore(t)

	link := ast.IndexLink{QualifiedIndex: "public.orgs", LeftField: "org_id", RightField: "id"}
	if err := store.AddLink("public.contacts", link); err != nil {
		t.Fatalf("add link failed: %v", err)
	}

	links, err := store.Links("public.contacts")
	if err != nil {
		t.Fatalf("links failed: %v", err)
	}
	if len(links) != 2 {
		t.Errorf("duplicate link should be ignored, got %d links", len(links))
	}
}

func TestLoadRejectsInvalidDefinitions(t *testing.T) {
	store := setupTestStore(t)

	tests := []struct {
		name string
		yaml string
	}{
		{"nameless index", "indexes:\n  - index_name: x\n"},
		{"link without target", "links:\n  - source: a\n    left_field: l\n    right_field: r\n"},
		{"link without fields", "links:\n  - source: a\n    target: b\n"},
		{"bad yaml", "indexes: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := store.Load([]byte(tt.yaml)); err == nil {
				t.Errorf("expected load error")
			}
		})
	}
}
