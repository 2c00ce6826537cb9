package economy

import "fmt"

// Recipe defines a craftable conversion loaded from YAML: spend Cost, gain
// Output.
type Recipe struct {
	ID     string         `yaml:"id"`
	Name   string         `yaml:"name"`
	Cost   map[string]int `yaml:"cost"`
	Output map[string]int `yaml:"output"`
}

// Validate checks that the recipe satisfies its invariants.
//
// Postcondition: Returns nil iff ID and Name are non-empty, Output is
// non-empty, and every cost and output quantity is >= 1.
func (r *Recipe) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("recipe: id must not be empty")
	}
	if r.Name == "" {
		return fmt.Errorf("recipe %q: name must not be empty", r.ID)
	}
	if len(r.Output) == 0 {
		return fmt.Errorf("recipe %q: output must not be empty", r.ID)
	}
	for item, qty := range r.Cost {
		if item == "" {
			return fmt.Errorf("recipe %q: cost item name must not be empty", r.ID)
		}
		if qty < 1 {
			return fmt.Errorf("recipe %q: cost of %q must be >= 1, got %d", r.ID, item, qty)
		}
	}
	for item, qty := range r.Output {
		if item == "" {
			return fmt.Errorf("recipe %q: output item name must not be empty", r.ID)
		}
		if qty < 1 {
			return fmt.Errorf("recipe %q: output of %q must be >= 1, got %d", r.ID, item, qty)
		}
	}
	return nil
}

// Craft spends the recipe's cost and deposits its outputs. Returns false and
// mutates nothing when any cost item is undersupplied.
//
// Postcondition: on success every output item is deposited, in lexical item
// order, each deposit notifying subscribers.
func (s *State) Craft(r Recipe) bool {
	if !s.SpendResources(r.Cost) {
		return false
	}
	for _, item := range sortedItems(r.Output) {
		s.AddResource(item, r.Output[item])
	}
	return true
}
