// Package player translates raw per-frame input into smoothed movement and
// resolves the player's melee and ranged attacks against the damage registry.
package player

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/timberline-game/timberline/internal/game/economy"
)

// ToolClass selects the attack resolution path for a tool.
type ToolClass string

const (
	// ClassMelee resolves instantly on every primary action.
	ClassMelee ToolClass = "melee"
	// ClassRanged is gated by the tool's fire interval.
	ClassRanged ToolClass = "ranged"
)

// Tool defines one entry of the player's ordered loadout, loaded from YAML.
// Combat math needs only this table; mesh construction stays with the
// rendering collaborator.
type Tool struct {
	ID     string    `yaml:"id"`
	Name   string    `yaml:"name"`
	Class  ToolClass `yaml:"class"`
	Damage float64   `yaml:"damage"`
	// FireInterval is the minimum time between ranged shots, in seconds.
	// Ignored for melee tools.
	FireInterval float64 `yaml:"fire_interval"`
	// Category optionally overrides the damage bonus bucket on hits, e.g. an
	// axe exercising the wood bonus against any target. Empty means no
	// override.
	Category economy.DamageCategory `yaml:"category"`
	// Reach is the maximum hit distance, in world units.
	Reach float64 `yaml:"reach"`
}

// Validate checks that the tool satisfies its invariants.
//
// Postcondition: Returns nil iff ID and Name are non-empty, Class is melee or
// ranged, Damage > 0, Reach > 0, FireInterval > 0 for ranged tools, and
// Category is empty or a known bucket.
func (t *Tool) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("tool: id must not be empty")
	}
	if t.Name == "" {
		return fmt.Errorf("tool %q: name must not be empty", t.ID)
	}
	if t.Class != ClassMelee && t.Class != ClassRanged {
		return fmt.Errorf("tool %q: class must be melee or ranged, got %q", t.ID, t.Class)
	}
	if t.Damage <= 0 {
		return fmt.Errorf("tool %q: damage must be > 0, got %g", t.ID, t.Damage)
	}
	if t.Class == ClassRanged && t.FireInterval <= 0 {
		return fmt.Errorf("tool %q: fire_interval must be > 0 for ranged tools, got %g", t.ID, t.FireInterval)
	}
	if t.Reach <= 0 {
		return fmt.Errorf("tool %q: reach must be > 0, got %g", t.ID, t.Reach)
	}
	if t.Category != "" && !economy.ValidCategory(t.Category) {
		return fmt.Errorf("tool %q: category %q is not a known damage category", t.ID, t.Category)
	}
	return nil
}

// LoadToolFromBytes parses a single tool from raw YAML bytes.
//
// Postcondition: Returns a validated *Tool, or an error.
func LoadToolFromBytes(data []byte) (*Tool, error) {
	var t Tool
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parsing tool YAML: %w", err)
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

// LoadTools reads all *.yaml files in dir, in lexical file order, and returns
// the parsed tools. File order defines the loadout order.
//
// Postcondition: Returns all tools or an error on the first parse or validate
// failure; on error, the partial result is discarded.
func LoadTools(dir string) ([]*Tool, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading tool dir %q: %w", dir, err)
	}

	var tools []*Tool
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
		t, err := LoadToolFromBytes(data)
		if err != nil {
			return nil, fmt.Errorf("loading %q: %w", path, err)
		}
		tools = append(tools, t)
	}
	return tools, nil
}
