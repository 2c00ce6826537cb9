// Package session wires one playable session together: the shared economy,
// the damage registry, the resource field, the creature controller, and the
// player controller, driven by a single cooperative tick.
package session

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/timberline-game/timberline/internal/config"
	"github.com/timberline-game/timberline/internal/game/creature"
	"github.com/timberline-game/timberline/internal/game/damage"
	"github.com/timberline-game/timberline/internal/game/economy"
	"github.com/timberline-game/timberline/internal/game/geo"
	"github.com/timberline-game/timberline/internal/game/player"
	"github.com/timberline-game/timberline/internal/game/resource"
	"github.com/timberline-game/timberline/internal/game/rng"
	"github.com/timberline-game/timberline/internal/game/scene"
)

// Content bundles every loaded content definition a session needs.
type Content struct {
	Species  []*creature.Species
	Nodes    []*resource.NodeDef
	Tools    []*player.Tool
	Recipes  []*economy.Recipe
	Upgrades []*economy.Upgrade
}

// LoadContent loads every content directory named by cfg.
//
// Postcondition: Returns fully validated content or the first load error.
func LoadContent(cfg config.ContentConfig) (*Content, error) {
	species, err := creature.LoadSpecies(cfg.SpeciesDir)
	if err != nil {
		return nil, fmt.Errorf("loading species: %w", err)
	}
	nodes, err := resource.LoadNodes(cfg.NodesDir)
	if err != nil {
		return nil, fmt.Errorf("loading nodes: %w", err)
	}
	tools, err := player.LoadTools(cfg.ToolsDir)
	if err != nil {
		return nil, fmt.Errorf("loading tools: %w", err)
	}
	recipes, err := economy.LoadRecipes(cfg.RecipesDir)
	if err != nil {
		return nil, fmt.Errorf("loading recipes: %w", err)
	}
	upgrades, err := economy.LoadUpgrades(cfg.UpgradesDir)
	if err != nil {
		return nil, fmt.Errorf("loading upgrades: %w", err)
	}
	return &Content{
		Species:  species,
		Nodes:    nodes,
		Tools:    tools,
		Recipes:  recipes,
		Upgrades: upgrades,
	}, nil
}

// Session is the root of one playable session. It exclusively owns the
// economy state and shares it by reference with the components that need it.
//
// Not safe for concurrent use: Populate and Tick run on a single thread.
type Session struct {
	Economy   *economy.State
	Registry  *damage.Registry
	Scene     scene.Scene
	Field     *resource.Field
	Creatures *creature.Controller
	Player    *player.Controller

	content  *Content
	recipes  map[string]*economy.Recipe
	upgrades map[string]*economy.Upgrade
	logger   *zap.Logger
}

// New builds a session from configuration and loaded content on top of the
// given scene collaborator.
//
// Precondition: cfg must have passed Validate; content must be non-nil with a
// non-empty tool list; sc must be non-nil. A nil logger is replaced with a
// no-op.
func New(cfg config.Config, content *Content, sc scene.Scene, logger *zap.Logger) (*Session, error) {
	if len(content.Tools) == 0 {
		return nil, fmt.Errorf("session: content must define at least one tool")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	src := rng.NewSeeded(cfg.World.Seed)
	econ := economy.NewState()
	registry := damage.NewRegistry(econ, logger)
	field := resource.NewField(sc, registry, src, cfg.World.HalfExtent, logger)
	creatures := creature.NewController(sc, registry, src, cfg.World.HalfExtent, logger)

	playerHandle := sc.Spawn(scene.Desc{
		Label:    "player",
		Position: geo.Vec3{},
		Radius:   0.5,
	})
	pc := player.NewController(sc, registry, player.MovementConfig{
		BaseSpeed:        cfg.Player.BaseSpeed,
		SprintMultiplier: cfg.Player.SprintMultiplier,
		Acceleration:     cfg.Player.Acceleration,
		Damping:          cfg.Player.Damping,
		JumpStrength:     cfg.Player.JumpStrength,
		Gravity:          cfg.Player.Gravity,
		EyeHeight:        cfg.Player.EyeHeight,
		GroundProbe:      cfg.Player.GroundProbe,
	}, content.Tools, playerHandle, logger)

	recipes := make(map[string]*economy.Recipe, len(content.Recipes))
	for _, r := range content.Recipes {
		recipes[r.ID] = r
	}
	upgrades := make(map[string]*economy.Upgrade, len(content.Upgrades))
	for _, u := range content.Upgrades {
		upgrades[u.ID] = u
	}

	return &Session{
		Economy:   econ,
		Registry:  registry,
		Scene:     sc,
		Field:     field,
		Creatures: creatures,
		Player:    pc,
		content:   content,
		recipes:   recipes,
		upgrades:  upgrades,
		logger:    logger,
	}, nil
}

// Populate scatters every resource node and spawns every species population.
// Call once after New.
func (s *Session) Populate() {
	s.Field.Scatter(s.content.Nodes)
	for _, sp := range s.content.Species {
		for i := 0; i < sp.Population; i++ {
			s.Creatures.Spawn(sp)
		}
	}
	s.logger.Info("session populated",
		zap.Int("nodes", len(s.Field.Handles())),
		zap.Int("creatures", s.Creatures.Alive()),
	)
}

// Tick advances the whole simulation by dt seconds. Creature AI and the
// player update within the same tick; their relative order is not observable
// from outside.
func (s *Session) Tick(dt float64, in player.Input) {
	s.Creatures.Tick(dt)
	s.Player.Tick(dt, in)
}

// Craft crafts the recipe with the given ID. Returns false for an unknown
// recipe or insufficient resources; the failure leaves the economy unchanged.
func (s *Session) Craft(recipeID string) bool {
	r, ok := s.recipes[recipeID]
	if !ok {
		return false
	}
	if !s.Economy.Craft(*r) {
		return false
	}
	s.logger.Info("crafted", zap.String("recipe", r.ID))
	return true
}

// PurchaseUpgrade buys the upgrade with the given ID. Returns false for an
// unknown upgrade or an insufficient skill point balance.
func (s *Session) PurchaseUpgrade(upgradeID string) bool {
	u, ok := s.upgrades[upgradeID]
	if !ok {
		return false
	}
	if !s.Economy.PurchaseUpgrade(*u) {
		return false
	}
	s.logger.Info("purchased upgrade",
		zap.String("upgrade", u.ID),
		zap.String("category", string(u.Category)),
	)
	return true
}

// Recipes returns the loaded recipes keyed by ID.
func (s *Session) Recipes() map[string]*economy.Recipe {
	return s.recipes
}

// Upgrades returns the loaded upgrades keyed by ID.
func (s *Session) Upgrades() map[string]*economy.Upgrade {
	return s.upgrades
}
