package economy

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadRecipeFromBytes parses a single recipe from raw YAML bytes.
//
// Postcondition: Returns a validated *Recipe, or an error.
func LoadRecipeFromBytes(data []byte) (*Recipe, error) {
	var r Recipe
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parsing recipe YAML: %w", err)
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return &r, nil
}

// LoadRecipes reads all *.yaml files in dir and returns the parsed recipes.
//
// Postcondition: Returns all recipes or an error on the first parse or
// validate failure; on error, the partial result is discarded.
func LoadRecipes(dir string) ([]*Recipe, error) {
	var recipes []*Recipe
	err := loadDir(dir, "recipe", func(data []byte) error {
		r, err := LoadRecipeFromBytes(data)
		if err != nil {
			return err
		}
		recipes = append(recipes, r)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return recipes, nil
}

// LoadUpgradeFromBytes parses a single upgrade from raw YAML bytes.
//
// Postcondition: Returns a validated *Upgrade, or an error.
func LoadUpgradeFromBytes(data []byte) (*Upgrade, error) {
	var u Upgrade
	if err := yaml.Unmarshal(data, &u); err != nil {
		return nil, fmt.Errorf("parsing upgrade YAML: %w", err)
	}
	if err := u.Validate(); err != nil {
		return nil, err
	}
	return &u, nil
}

// LoadUpgrades reads all *.yaml files in dir and returns the parsed upgrades.
func LoadUpgrades(dir string) ([]*Upgrade, error) {
	var upgrades []*Upgrade
	err := loadDir(dir, "upgrade", func(data []byte) error {
		u, err := LoadUpgradeFromBytes(data)
		if err != nil {
			return err
		}
		upgrades = append(upgrades, u)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return upgrades, nil
}

// loadDir feeds the contents of every *.yaml / *.yml file in dir to parse.
func loadDir(dir, what string, parse func([]byte) error) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("reading %s dir %q: %w", what, dir, err)
	}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || (!strings.HasSuffix(name, ".yaml") && !strings.HasSuffix(name, ".yml")) {
			continue
		}
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %q: %w", path, err)
		}
		if err := parse(data); err != nil {
			return fmt.Errorf("loading %q: %w", path, err)
		}
	}
	return nil
}
