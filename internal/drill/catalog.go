package drill

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Catalog is a read-only set of hierarchy definitions for one dataset.
// It is safe for concurrent use once constructed.
type Catalog struct {
	hierarchies []Hierarchy
	byField     map[string]int
}

// NewCatalog validates each hierarchy and builds the lookup index.
func NewCatalog(hierarchies []Hierarchy) (*Catalog, error) {
	byField := make(map[string]int, len(hierarchies))
	for i := range hierarchies {
		if err := hierarchies[i].Validate(); err != nil {
			return nil, err
		}
		if _, dup := byField[hierarchies[i].Field]; dup {
			return nil, fmt.Errorf("duplicate hierarchy for field %q", hierarchies[i].Field)
		}
		byField[hierarchies[i].Field] = i
	}
	return &Catalog{hierarchies: hierarchies, byField: byField}, nil
}

// catalogFile is the YAML document shape for hierarchy definition files.
type catalogFile struct {
	Hierarchies []Hierarchy `yaml:"hierarchies"`
}

// LoadCatalogFile reads hierarchy definitions from a YAML file:
//
//	hierarchies:
//	  - name: Geography
//	    field: Region
//	    drillable: true
//	    levels:
//	      - {level: 1, name: Region, field: Region}
//	      - {level: 2, name: State, field: State, parent: Region}
func LoadCatalogFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read hierarchy file: %w", err)
	}

	var doc catalogFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	return NewCatalog(doc.Hierarchies)
}

// List returns all hierarchy definitions.
func (c *Catalog) List() []Hierarchy {
	return c.hierarchies
}

// ByField returns the hierarchy whose field matches.
func (c *Catalog) ByField(field string) (*Hierarchy, bool) {
	i, ok := c.byField[field]
	if !ok {
		return nil, false
	}
	return &c.hierarchies[i], true
}
