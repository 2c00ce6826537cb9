package economy

import "fmt"

// Upgrade defines a purchasable combat upgrade loaded from YAML: spend Cost
// skill points, gain Bonus flat damage in Category.
type Upgrade struct {
	ID       string         `yaml:"id"`
	Name     string         `yaml:"name"`
	Cost     int            `yaml:"cost"`
	Category DamageCategory `yaml:"category"`
	Bonus    float64        `yaml:"bonus"`
}

// Validate checks that the upgrade satisfies its invariants.
//
// Postcondition: Returns nil iff ID and Name are non-empty, Cost >= 1,
// Bonus > 0, and Category names a known bucket.
func (u *Upgrade) Validate() error {
	if u.ID == "" {
		return fmt.Errorf("upgrade: id must not be empty")
	}
	if u.Name == "" {
		return fmt.Errorf("upgrade %q: name must not be empty", u.ID)
	}
	if u.Cost < 1 {
		return fmt.Errorf("upgrade %q: cost must be >= 1, got %d", u.ID, u.Cost)
	}
	if u.Bonus <= 0 {
		return fmt.Errorf("upgrade %q: bonus must be > 0, got %g", u.ID, u.Bonus)
	}
	if !ValidCategory(u.Category) {
		return fmt.Errorf("upgrade %q: category %q is not a known damage category", u.ID, u.Category)
	}
	return nil
}

// PurchaseUpgrade spends the upgrade's skill point cost and accumulates its
// damage bonus. Returns false and mutates nothing when the balance is
// insufficient.
func (s *State) PurchaseUpgrade(u Upgrade) bool {
	if !s.SpendSkillPoints(u.Cost) {
		return false
	}
	s.AddDamageBonus(u.Category, u.Bonus)
	return true
}
