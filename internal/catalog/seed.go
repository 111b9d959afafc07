package catalog

import (
	"fmt"
	"os"

	"github.com/gosimple/slug"
	"gopkg.in/yaml.v3"

	"github.com/sifthq/sift/internal/ast"
)

// Topology is the YAML form of a catalog: index definitions plus the links
// between them.
//
//	indexes:
//	  - name: public.contacts
//	    index_name: contacts-v2     # optional, slugged from name when omitted
//	    options:
//	      shards: "5"
//	links:
//	  - source: public.contacts
//	    target: public.orgs
//	    left_field: org_id
//	    right_field: id
type Topology struct {
	Indexes []IndexDef `yaml:"indexes"`
	Links   []LinkDef  `yaml:"links"`
}

// IndexDef declares one index.
type IndexDef struct {
	Name      string            `yaml:"name"`
	IndexName string            `yaml:"index_name"`
	Options   map[string]string `yaml:"options"`
}

// LinkDef declares one join between two indexes.
type LinkDef struct {
	Source     string `yaml:"source"`
	Target     string `yaml:"target"`
	LeftField  string `yaml:"left_field"`
	RightField string `yaml:"right_field"`
}

// LoadFile reads a topology YAML file into the store. Existing definitions
// with the same name are replaced.
func (s *Store) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read topology file: %w", err)
	}
	return s.Load(data)
}

// Load ingests topology YAML into the store.
func (s *Store) Load(data []byte) error {
	var topology Topology
	if err := yaml.Unmarshal(data, &topology); err != nil {
		return fmt.Errorf("failed to parse topology: %w", err)
	}

	for _, def := range topology.Indexes {
		if def.Name == "" {
			return fmt.Errorf("index definition is missing a name")
		}
		indexName := def.IndexName
		if indexName == "" {
			// Backend index names must be lowercase and URL-safe.
			indexName = slug.Make(def.Name)
		}
		if err := s.AddIndex(def.Name, indexName, def.Options); err != nil {
			return err
		}
	}

	for _, def := range topology.Links {
		if def.Source == "" || def.Target == "" {
			return fmt.Errorf("link definition is missing source or target")
		}
		if def.LeftField == "" || def.RightField == "" {
			return fmt.Errorf("link %s -> %s is missing a join field", def.Source, def.Target)
		}
		link := ast.IndexLink{
			QualifiedIndex: def.Target,
			LeftField:      def.LeftField,
			RightField:     def.RightField,
		}
		if err := s.AddLink(def.Source, link); err != nil {
			return err
		}
	}

	return nil
}
