// Package economy owns the session's player-facing resource state: the
// inventory, the skill point balance, and the per-category damage bonuses.
// It is the only state mutated by more than one component, so all mutating
// operations serialize on an internal mutex.
package economy

import (
	"sort"
	"sync"
)

// DamageCategory identifies a damage bonus bucket. The zero value means
// "unspecified" and is only meaningful as an absent override.
type DamageCategory string

const (
	CategoryGeneric DamageCategory = "generic"
	CategoryWood    DamageCategory = "wood"
	CategoryStone   DamageCategory = "stone"
	CategoryMob     DamageCategory = "mob"
	CategoryAnimal  DamageCategory = "animal"
)

// ValidCategory reports whether c names a known damage bonus bucket.
func ValidCategory(c DamageCategory) bool {
	switch c {
	case CategoryGeneric, CategoryWood, CategoryStone, CategoryMob, CategoryAnimal:
		return true
	}
	return false
}

// subscriber pairs a change callback with its registration ID so
// deregistration can remove exactly one entry.
type subscriber struct {
	id int
	fn func()
}

// State holds the economy for one session.
//
// Invariant: inventory counts and the skill point balance never go negative;
// every spend operation is all-or-nothing. Subscribers are notified
// synchronously after every successful mutation, in registration order, and
// never after a failed (no-op) operation.
type State struct {
	mu          sync.Mutex
	inventory   map[string]int
	skillPoints int
	bonuses     map[DamageCategory]float64
	subscribers []subscriber
	nextSubID   int
}

// NewState creates an empty economy State.
func NewState() *State {
	return &State{
		inventory: make(map[string]int),
		bonuses:   make(map[DamageCategory]float64),
	}
}

// AddResource deposits qty units of item into the inventory and notifies
// subscribers. No-op for qty <= 0 or an empty item name.
func (s *State) AddResource(item string, qty int) {
	if item == "" || qty <= 0 {
		return
	}
	s.mu.Lock()
	s.inventory[item] += qty
	subs := s.snapshotSubscribers()
	s.mu.Unlock()
	notify(subs)
}

// SpendResources deducts every (item, needed) pair in cost, or nothing.
// The check phase verifies sufficiency across all items before the apply
// phase deducts any, so a partial spend can never occur. Returns false and
// leaves the inventory unchanged when any item is undersupplied; entries with
// needed <= 0 are ignored.
func (s *State) SpendResources(cost map[string]int) bool {
	s.mu.Lock()
	for item, needed := range cost {
		if needed <= 0 {
			continue
		}
		if s.inventory[item] < needed {
			s.mu.Unlock()
			return false
		}
	}
	for item, needed := range cost {
		if needed <= 0 {
			continue
		}
		s.inventory[item] -= needed
		if s.inventory[item] == 0 {
			delete(s.inventory, item)
		}
	}
	subs := s.snapshotSubscribers()
	s.mu.Unlock()
	notify(subs)
	return true
}

// AddSkillPoints adds n to the skill point balance and notifies subscribers.
// No-op for n <= 0.
func (s *State) AddSkillPoints(n int) {
	if n <= 0 {
		return
	}
	s.mu.Lock()
	s.skillPoints += n
	subs := s.snapshotSubscribers()
	s.mu.Unlock()
	notify(subs)
}

// SpendSkillPoints deducts n from the balance, or nothing. Returns false and
// leaves the balance unchanged when it is insufficient.
//
// Precondition: n > 0 for a meaningful spend; n <= 0 succeeds without mutation.
func (s *State) SpendSkillPoints(n int) bool {
	if n <= 0 {
		return true
	}
	s.mu.Lock()
	if s.skillPoints < n {
		s.mu.Unlock()
		return false
	}
	s.skillPoints -= n
	subs := s.snapshotSubscribers()
	s.mu.Unlock()
	notify(subs)
	return true
}

// AddDamageBonus accumulates amount onto the bucket for c. Bonuses only ever
// grow; there is no spend counterpart. No-op for amount <= 0.
func (s *State) AddDamageBonus(c DamageCategory, amount float64) {
	if amount <= 0 || !ValidCategory(c) {
		return
	}
	s.mu.Lock()
	s.bonuses[c] += amount
	subs := s.snapshotSubscribers()
	s.mu.Unlock()
	notify(subs)
}

// OnChange registers fn to run synchronously after every successful mutation.
// Subscribers run in registration order. The returned function deregisters fn;
// calling it more than once is harmless.
func (s *State) OnChange(fn func()) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextSubID
	s.nextSubID++
	s.subscribers = append(s.subscribers, subscriber{id: id, fn: fn})
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, sub := range s.subscribers {
			if sub.id == id {
				s.subscribers = append(s.subscribers[:i], s.subscribers[i+1:]...)
				return
			}
		}
	}
}

// Count returns the inventory count for item (0 when absent).
func (s *State) Count(item string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inventory[item]
}

// Resources returns a copy of the inventory.
//
// Postcondition: mutating the returned map does not affect the State.
func (s *State) Resources() map[string]int {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]int, len(s.inventory))
	for item, qty := range s.inventory {
		out[item] = qty
	}
	return out
}

// SkillPoints returns the current skill point balance.
func (s *State) SkillPoints() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.skillPoints
}

// DamageBonus returns the accumulated bonus for c (0 when none).
func (s *State) DamageBonus(c DamageCategory) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bonuses[c]
}

// snapshotSubscribers copies the callback list in registration order.
// Caller must hold s.mu.
func (s *State) snapshotSubscribers() []func() {
	if len(s.subscribers) == 0 {
		return nil
	}
	out := make([]func(), len(s.subscribers))
	for i, sub := range s.subscribers {
		out[i] = sub.fn
	}
	return out
}

// notify invokes the snapshot outside the State's lock so subscribers may
// call accessors without deadlocking.
func notify(subs []func()) {
	for _, fn := range subs {
		fn()
	}
}

// sortedItems returns the keys of table in lexical order, giving reward and
// craft deposits a deterministic notification sequence.
func sortedItems(table map[string]int) []string {
	items := make([]string, 0, len(table))
	for item := range table {
		items = append(items, item)
	}
	sort.Strings(items)
	return items
}
