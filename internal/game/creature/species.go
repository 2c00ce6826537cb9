// Package creature provides species definitions and the behavior controller
// that gives every spawned creature a bounded autonomous wander.
package creature

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/timberline-game/timberline/internal/game/damage"
)

// Default retarget interval bounds, in seconds, applied when a species file
// leaves them unset.
const (
	defaultRetargetMin = 1.5
	defaultRetargetMax = 3.5
)

// Species defines a creature archetype loaded from YAML.
type Species struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
	// Kind is mob (hostile) or animal (passive).
	Kind      damage.Kind `yaml:"kind"`
	MaxHP     float64     `yaml:"max_hp"`
	Speed     float64     `yaml:"speed"`
	// RetargetMin/RetargetMax bound the uniform draw, in seconds, for the
	// countdown until the next heading change.
	RetargetMin float64 `yaml:"retarget_min"`
	RetargetMax float64 `yaml:"retarget_max"`
	// Reward maps item name to the quantity granted on death.
	Reward map[string]int `yaml:"reward"`
	// SkillPoints is the skill point grant on death.
	SkillPoints int `yaml:"skill_points"`
	// Population is the number of instances spawned at session start.
	Population int `yaml:"population"`
	// Radius is the creature's bounding-sphere radius for hit queries.
	Radius float64 `yaml:"radius"`
}

// Validate checks that the species satisfies its invariants.
//
// Postcondition: Returns nil iff ID and Name are non-empty, Kind is mob or
// animal, MaxHP > 0, Speed > 0, 0 < RetargetMin <= RetargetMax,
// SkillPoints >= 0, Population >= 0, Radius > 0, and every reward quantity
// is >= 1.
func (sp *Species) Validate() error {
	if sp.ID == "" {
		return fmt.Errorf("species: id must not be empty")
	}
	if sp.Name == "" {
		return fmt.Errorf("species %q: name must not be empty", sp.ID)
	}
	if sp.Kind != damage.KindMob && sp.Kind != damage.KindAnimal {
		return fmt.Errorf("species %q: kind must be mob or animal, got %q", sp.ID, sp.Kind)
	}
	if sp.MaxHP <= 0 {
		return fmt.Errorf("species %q: max_hp must be > 0, got %g", sp.ID, sp.MaxHP)
	}
	if sp.Speed <= 0 {
		return fmt.Errorf("species %q: speed must be > 0, got %g", sp.ID, sp.Speed)
	}
	if sp.RetargetMin <= 0 {
		return fmt.Errorf("species %q: retarget_min must be > 0, got %g", sp.ID, sp.RetargetMin)
	}
	if sp.RetargetMax < sp.RetargetMin {
		return fmt.Errorf("species %q: retarget_max (%g) must be >= retarget_min (%g)",
			sp.ID, sp.RetargetMax, sp.RetargetMin)
	}
	if sp.SkillPoints < 0 {
		return fmt.Errorf("species %q: skill_points must be >= 0, got %d", sp.ID, sp.SkillPoints)
	}
	if sp.Population < 0 {
		return fmt.Errorf("species %q: population must be >= 0, got %d", sp.ID, sp.Population)
	}
	if sp.Radius <= 0 {
		return fmt.Errorf("species %q: radius must be > 0, got %g", sp.ID, sp.Radius)
	}
	for item, qty := range sp.Reward {
		if item == "" {
			return fmt.Errorf("species %q: reward item name must not be empty", sp.ID)
		}
		if qty < 1 {
			return fmt.Errorf("species %q: reward of %q must be >= 1, got %d", sp.ID, item, qty)
		}
	}
	return nil
}

// LoadSpeciesFromBytes parses a single species from raw YAML bytes, applying
// the default retarget bounds when the file leaves them unset.
//
// Postcondition: Returns a validated *Species, or an error.
func LoadSpeciesFromBytes(data []byte) (*Species, error) {
	var sp Species
	if err := yaml.Unmarshal(data, &sp); err != nil {
		return nil, fmt.Errorf("parsing species YAML: %w", err)
	}
	if sp.RetargetMin == 0 {
		sp.RetargetMin = defaultRetargetMin
	}
	if sp.RetargetMax == 0 {
		sp.RetargetMax = defaultRetargetMax
	}
	if err := sp.Validate(); err != nil {
		return nil, err
	}
	return &sp, nil
}

// LoadSpecies reads all *.yaml files in dir and returns the parsed species.
//
// Postcondition: Returns all species or an error on the first parse or
// validate failure; on error, the partial result is discarded.
func LoadSpecies(dir string) ([]*Species, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading species dir %q: %w", dir, err)
	}

	var all []*Species
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
		sp, err := LoadSpeciesFromBytes(data)
		if err != nil {
			return nil, fmt.Errorf("loading %q: %w", path, err)
		}
		all = append(all, sp)
	}
	return all, nil
}
