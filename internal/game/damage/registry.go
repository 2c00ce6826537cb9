// Package damage owns the damageable-entity records and the damage
// resolution rules: category bonus lookup, the resource softening factor,
// and the exactly-once death reward deposit into the economy.
package damage

import (
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/timberline-game/timberline/internal/game/economy"
	"github.com/timberline-game/timberline/internal/game/scene"
)

// Kind classifies a damageable target.
type Kind string

const (
	// KindResource is a harvestable node such as a tree or rock.
	KindResource Kind = "resource"
	// KindMob is a hostile creature.
	KindMob Kind = "mob"
	// KindAnimal is a passive creature.
	KindAnimal Kind = "animal"
)

// ValidKind reports whether k names a known damageable kind.
func ValidKind(k Kind) bool {
	switch k {
	case KindResource, KindMob, KindAnimal:
		return true
	}
	return false
}

// resourceSoftening down-weights base damage against harvestable resources
// before the flat category bonus is added.
const resourceSoftening = 0.7

// Config describes the combat state to associate with a handle.
type Config struct {
	// Kind classifies the target.
	Kind Kind
	// Category is the damage bonus bucket for resources (wood or stone).
	// Ignored for non-resource kinds.
	Category economy.DamageCategory
	// HitPoints is the starting health; must be > 0 to register.
	HitPoints float64
	// Reward maps item name to quantity deposited once, on death.
	Reward map[string]int
	// SkillPoints is the skill point grant deposited once, on death.
	SkillPoints int
}

// record is the live combat state for one handle.
type record struct {
	kind        Kind
	category    economy.DamageCategory
	hitPoints   float64
	reward      map[string]int
	skillPoints int
}

// Outcome reports the result of a damage application.
type Outcome struct {
	// Registered is false when the handle had no record: the target died or
	// was unregistered before the hit resolved, and nothing happened.
	Registered bool
	// Died is true when this application reduced hit points to <= 0.
	Died bool
	// Remaining is the hit points left after the application (0 on death).
	Remaining float64
}

// Registry maps scene handles to combat records and deposits death rewards
// into the shared economy. All methods are safe for concurrent use.
//
// Invariant: every registered record has hitPoints > 0; the moment an
// application drives hitPoints to <= 0 the record is removed and its rewards
// are deposited, before ApplyDamage returns, exactly once.
type Registry struct {
	mu      sync.Mutex
	econ    *economy.State
	records map[scene.Handle]*record
	logger  *zap.Logger
}

// NewRegistry creates an empty Registry depositing rewards into econ.
//
// Precondition: econ must be non-nil. A nil logger is replaced with a no-op.
func NewRegistry(econ *economy.State, logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{
		econ:    econ,
		records: make(map[scene.Handle]*record),
		logger:  logger,
	}
}

// Register associates h with a record built from cfg, overwriting any
// existing record for the same handle. Configs with HitPoints <= 0 or an
// unknown kind are dropped: a record must start alive.
func (r *Registry) Register(h scene.Handle, cfg Config) {
	if cfg.HitPoints <= 0 || !ValidKind(cfg.Kind) {
		return
	}
	category := cfg.Category
	if cfg.Kind != KindResource {
		category = ""
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records[h] = &record{
		kind:        cfg.Kind,
		category:    category,
		hitPoints:   cfg.HitPoints,
		reward:      cfg.Reward,
		skillPoints: cfg.SkillPoints,
	}
}

// Unregister removes the record for h without granting rewards. Used when an
// object leaves the scene by means other than combat. No-op for unknown
// handles.
func (r *Registry) Unregister(h scene.Handle) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.records, h)
}

// Registered reports whether h currently has a live record.
func (r *Registry) Registered(h scene.Handle) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.records[h]
	return ok
}

// HitPoints returns the remaining hit points for h.
//
// Postcondition: ok is true iff h is registered; the value is always > 0 then.
func (r *Registry) HitPoints(h scene.Handle) (float64, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[h]
	if !ok {
		return 0, false
	}
	return rec.hitPoints, true
}

// ApplyDamage applies base damage to h. An empty override uses the record's
// own category (resources) or the kind-derived category; otherwise override
// selects the bonus bucket. Resources take base*0.7 + bonus, everything else
// base + bonus.
//
// Stale handles are a no-op, not an error: hit detection may race with a
// death earlier in the same tick.
//
// Postcondition: when Died is true the record is gone, the reward table and
// skill point grant have been deposited into the economy (in lexical item
// order), and repeat calls for the same handle are no-ops.
func (r *Registry) ApplyDamage(h scene.Handle, base float64, override economy.DamageCategory) Outcome {
	r.mu.Lock()
	rec, ok := r.records[h]
	if !ok {
		r.mu.Unlock()
		return Outcome{}
	}

	category := rec.effectiveCategory(override)
	bonus := r.econ.DamageBonus(category)
	effective := base + bonus
	if rec.kind == KindResource {
		effective = base*resourceSoftening + bonus
	}
	rec.hitPoints -= effective

	if rec.hitPoints > 0 {
		remaining := rec.hitPoints
		r.mu.Unlock()
		return Outcome{Registered: true, Remaining: remaining}
	}

	// Dead: remove the record before depositing so a subscriber cannot
	// observe a corpse, then pay out outside the lock.
	delete(r.records, h)
	reward := rec.reward
	points := rec.skillPoints
	kind := rec.kind
	r.mu.Unlock()

	for _, item := range sortedItems(reward) {
		r.econ.AddResource(item, reward[item])
	}
	if points > 0 {
		r.econ.AddSkillPoints(points)
	}
	r.logger.Debug("target died",
		zap.String("handle", string(h)),
		zap.String("kind", string(kind)),
		zap.Int("skill_points", points),
	)
	return Outcome{Registered: true, Died: true}
}

// sortedItems returns the keys of table in lexical order so reward deposits
// notify subscribers in a deterministic sequence.
func sortedItems(table map[string]int) []string {
	items := make([]string, 0, len(table))
	for item := range table {
		items = append(items, item)
	}
	sort.Strings(items)
	return items
}

// effectiveCategory resolves the bonus bucket for one application:
// override, else the record's resource category, else the kind's bucket.
func (rec *record) effectiveCategory(override economy.DamageCategory) economy.DamageCategory {
	if override != "" {
		return override
	}
	if rec.category != "" {
		return rec.category
	}
	switch rec.kind {
	case KindMob:
		return economy.CategoryMob
	case KindAnimal:
		return economy.CategoryAnimal
	}
	return economy.CategoryGeneric
}
