package resource

import (
	"go.uber.org/zap"

	"github.com/timberline-game/timberline/internal/game/damage"
	"github.com/timberline-game/timberline/internal/game/rng"
	"github.com/timberline-game/timberline/internal/game/scene"
)

// Field scatters harvestable nodes across the playable square and registers
// each as a damageable resource. It is the "external spawner" side of the
// damage registry for static scenery.
//
// Not safe for concurrent use; scattering happens during single-threaded
// session setup.
type Field struct {
	scene      scene.Scene
	registry   *damage.Registry
	src        rng.Source
	halfExtent float64
	logger     *zap.Logger
	handles    []scene.Handle
}

// NewField creates a Field placing nodes inside [-halfExtent, +halfExtent]
// on each horizontal axis.
//
// Precondition: sc, reg, and src must be non-nil; halfExtent > 0. A nil
// logger is replaced with a no-op.
func NewField(sc scene.Scene, reg *damage.Registry, src rng.Source, halfExtent float64, logger *zap.Logger) *Field {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Field{
		scene:      sc,
		registry:   reg,
		src:        src,
		halfExtent: halfExtent,
		logger:     logger,
	}
}

// Scatter places def.Count instances of every definition at uniform random
// points inside the bounds, each spawned into the scene and registered as a
// damageable resource.
//
// Precondition: every def must have passed Validate().
// Postcondition: Handles() grows by the sum of all counts.
func (f *Field) Scatter(defs []*NodeDef) {
	for _, def := range defs {
		for i := 0; i < def.Count; i++ {
			f.place(def)
		}
	}
}

// Place spawns and registers a single instance of def at a random point.
func (f *Field) Place(def *NodeDef) scene.Handle {
	return f.place(def)
}

func (f *Field) place(def *NodeDef) scene.Handle {
	at := rng.PointInSquare(f.src, f.halfExtent)
	h := f.scene.Spawn(scene.Desc{
		Label:    def.ID,
		Position: at.In3(0),
		Radius:   def.Radius,
	})
	f.registry.Register(h, damage.Config{
		Kind:      damage.KindResource,
		Category:  def.Category,
		HitPoints: def.HitPoints,
		Reward:    def.Reward,
	})
	f.handles = append(f.handles, h)
	f.logger.Debug("placed resource node",
		zap.String("node", def.ID),
		zap.Float64("x", at.X),
		zap.Float64("z", at.Z),
	)
	return h
}

// Handles returns the handles of every node placed so far, including any
// that have since been felled.
func (f *Field) Handles() []scene.Handle {
	out := make([]scene.Handle, len(f.handles))
	copy(out, f.handles)
	return out
}
