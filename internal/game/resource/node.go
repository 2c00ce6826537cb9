// Package resource provides harvestable node definitions (trees, rocks) and
// the field scatterer that places them across the playable bounds at session
// start.
package resource

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/timberline-game/timberline/internal/game/economy"
)

// NodeDef defines a harvestable node archetype loaded from YAML.
type NodeDef struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
	// Category is the damage bonus bucket harvesting this node exercises:
	// wood or stone.
	Category  economy.DamageCategory `yaml:"category"`
	HitPoints float64                `yaml:"hit_points"`
	// Reward maps item name to the quantity granted when the node is felled.
	Reward map[string]int `yaml:"reward"`
	// Count is the number of instances scattered at session start.
	Count int `yaml:"count"`
	// Radius is the node's bounding-sphere radius for hit queries.
	Radius float64 `yaml:"radius"`
}

// Validate checks that the node definition satisfies its invariants.
//
// Postcondition: Returns nil iff ID and Name are non-empty, Category is wood
// or stone, HitPoints > 0, Count >= 0, Radius > 0, and every reward quantity
// is >= 1.
func (n *NodeDef) Validate() error {
	if n.ID == "" {
		return fmt.Errorf("node: id must not be empty")
	}
	if n.Name == "" {
		return fmt.Errorf("node %q: name must not be empty", n.ID)
	}
	if n.Category != economy.CategoryWood && n.Category != economy.CategoryStone {
		return fmt.Errorf("node %q: category must be wood or stone, got %q", n.ID, n.Category)
	}
	if n.HitPoints <= 0 {
		return fmt.Errorf("node %q: hit_points must be > 0, got %g", n.ID, n.HitPoints)
	}
	if n.Count < 0 {
		return fmt.Errorf("node %q: count must be >= 0, got %d", n.ID, n.Count)
	}
	if n.Radius <= 0 {
		return fmt.Errorf("node %q: radius must be > 0, got %g", n.ID, n.Radius)
	}
	for item, qty := range n.Reward {
		if item == "" {
			return fmt.Errorf("node %q: reward item name must not be empty", n.ID)
		}
		if qty < 1 {
			return fmt.Errorf("node %q: reward of %q must be >= 1, got %d", n.ID, item, qty)
		}
	}
	return nil
}

// LoadNodeFromBytes parses a single node definition from raw YAML bytes.
//
// Postcondition: Returns a validated *NodeDef, or an error.
func LoadNodeFromBytes(data []byte) (*NodeDef, error) {
	var n NodeDef
	if err := yaml.Unmarshal(data, &n); err != nil {
		return nil, fmt.Errorf("parsing node YAML: %w", err)
	}
	if err := n.Validate(); err != nil {
		return nil, err
	}
	return &n, nil
}

// LoadNodes reads all *.yaml files in dir and returns the parsed node
// definitions.
//
// Postcondition: Returns all definitions or an error on the first parse or
// validate failure; on error, the partial result is discarded.
func LoadNodes(dir string) ([]*NodeDef, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading node dir %q: %w", dir, err)
	}

	var defs []*NodeDef
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || (!strings.HasSuffix(name, ".yaml") && !strings.HasSuffix(name, ".yml")) {
			continue
		}
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %q: %w", path, err)
		}
		def, err := LoadNodeFromBytes(data)
		if err != nil {
			return nil, fmt.Errorf("loading %q: %w", path, err)
		}
		defs = append(defs, def)
	}
	return defs, nil
}
