// Package drill implements hierarchical drill-down navigation over
// categorical data: hierarchy definitions (Region -> State -> City), the
// catalog that holds them, and the DrillPath state machine that tracks the
// user's position and requests per-level aggregated data.
package drill

import (
	"fmt"
	"sort"
)

// Level is one step of a hierarchy. Field is the dataset column aggregated
// at this level; Parent names the column used as the filter key linking back
// to the previous level (empty for the root level).
type Level struct {
	Level       int    `yaml:"level" json:"level"`
	Name        string `yaml:"name" json:"name"`
	Field       string `yaml:"field" json:"field"`
	Parent      string `yaml:"parent,omitempty" json:"parent,omitempty"`
	Aggregation string `yaml:"aggregation,omitempty" json:"aggregation,omitempty"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
}

// Hierarchy is an ordered sequence of drill levels over one categorical
// dimension. ValueField names the measure aggregated at each level; when
// empty, levels fall back to counting rows.
type Hierarchy struct {
	Type       string  `yaml:"type,omitempty" json:"type,omitempty"`
	Field      string  `yaml:"field" json:"field"`
	Name       string  `yaml:"name" json:"name"`
	ValueField string  `yaml:"value_field,omitempty" json:"value_field,omitempty"`
	Levels     []Level `yaml:"levels" json:"levels"`
	Drillable  bool    `yaml:"drillable" json:"drillable"`
}

// Validate checks that levels are present, numbered 1..n contiguously, and
// that every non-root level declares a parent field. Levels are sorted by
// level number as a side effect.
func (h *Hierarchy) Validate() error {
	if h.Field == "" {
		return fmt.Errorf("hierarchy %q: field is required", h.Name)
	}
	if len(h.Levels) == 0 {
		return fmt.Errorf("hierarchy %q: at least one level is required", h.Name)
	}

	sort.Slice(h.Levels, func(i, j int) bool {
		return h.Levels[i].Level < h.Levels[j].Level
	})

	for i, lvl := range h.Levels {
		if lvl.Level != i+1 {
			return fmt.Errorf("hierarchy %q: levels must be numbered contiguously from 1, got %d at position %d",
				h.Name, lvl.Level, i)
		}
		if lvl.Field == "" {
			return fmt.Errorf("hierarchy %q: level %d has no field", h.Name, lvl.Level)
		}
		if i > 0 && lvl.Parent == "" {
			return fmt.Errorf("hierarchy %q: level %d needs a parent field", h.Name, lvl.Level)
		}
	}
	return nil
}

// Depth returns the number of levels.
func (h *Hierarchy) Depth() int {
	return len(h.Levels)
}

// LevelAt returns the level numbered n (1-based).
func (h *Hierarchy) LevelAt(n int) (Level, bool) {
	if n < 1 || n > len(h.Levels) {
		return Level{}, false
	}
	return h.Levels[n-1], true
}

// Filters derives the filter set for a drill path by zipping the selected
// values against the levels' parent links: path[i] was selected at level i+1,
// so its filter key is the parent field declared on level i+2 (the level
// drilled into), not the level's own field. Falls back to the selection
// level's field when no parent link is declared. A path longer than the
// hierarchy is truncated.
func Filters(h *Hierarchy, path []string) map[string]string {
	filters := make(map[string]string, len(path))
	for i, value := range path {
		if i >= len(h.Levels) {
			break
		}
		key := h.Levels[i].Field
		if i+1 < len(h.Levels) && h.Levels[i+1].Parent != "" {
			key = h.Levels[i+1].Parent
		}
		filters[key] = value
	}
	return filters
}
