package creature

import (
	"go.uber.org/zap"

	"github.com/timberline-game/timberline/internal/game/damage"
	"github.com/timberline-game/timberline/internal/game/geo"
	"github.com/timberline-game/timberline/internal/game/rng"
	"github.com/timberline-game/timberline/internal/game/scene"
)

// Record is the live wander state for one creature. The paired combat state
// lives in the damage registry under the same handle; the record holds only
// a back-reference, never ownership.
type Record struct {
	// Handle identifies the creature's scene object.
	Handle scene.Handle
	// Species is the archetype this creature was spawned from.
	Species *Species
	// Heading is the current wander direction, a unit vector in the
	// horizontal plane.
	Heading geo.Vec2
	// Retarget is the time remaining, in seconds, until the next heading
	// change.
	Retarget float64
}

// Controller owns the wander state of every live creature and keeps it
// pruned as creatures die.
//
// Not safe for concurrent use: Spawn and Tick run on the single session
// tick thread.
type Controller struct {
	scene      scene.Scene
	registry   *damage.Registry
	src        rng.Source
	halfExtent float64
	logger     *zap.Logger
	records    []*Record
}

// NewController creates a Controller confining creatures to
// [-halfExtent, +halfExtent] on each horizontal axis.
//
// Precondition: sc, reg, and src must be non-nil; halfExtent > 0. A nil
// logger is replaced with a no-op.
func NewController(sc scene.Scene, reg *damage.Registry, src rng.Source, halfExtent float64, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{
		scene:      sc,
		registry:   reg,
		src:        src,
		halfExtent: halfExtent,
		logger:     logger,
	}
}

// Spawn creates a creature of sp at a uniform random point inside the bounds.
//
// Precondition: sp must have passed Validate().
func (c *Controller) Spawn(sp *Species) *Record {
	at := rng.PointInSquare(c.src, c.halfExtent)
	return c.SpawnAt(sp, at.In3(0))
}

// SpawnAt creates a creature of sp at pos: a scene object, a paired damage
// record, and a wander record with a random initial heading and retarget
// countdown drawn uniformly from [RetargetMin, RetargetMax).
//
// Precondition: sp must have passed Validate().
func (c *Controller) SpawnAt(sp *Species, pos geo.Vec3) *Record {
	h := c.scene.Spawn(scene.Desc{
		Label:    sp.ID,
		Position: pos,
		Radius:   sp.Radius,
	})
	c.registry.Register(h, damage.Config{
		Kind:        sp.Kind,
		HitPoints:   sp.MaxHP,
		Reward:      sp.Reward,
		SkillPoints: sp.SkillPoints,
	})
	rec := &Record{
		Handle:   h,
		Species:  sp,
		Heading:  rng.UnitHeading(c.src),
		Retarget: rng.Range(c.src, sp.RetargetMin, sp.RetargetMax),
	}
	c.records = append(c.records, rec)
	c.logger.Debug("spawned creature",
		zap.String("species", sp.ID),
		zap.String("handle", string(h)),
	)
	return rec
}

// Tick advances every creature by dt seconds: prune records whose scene
// object is gone, count down retarget timers, redraw headings, displace along
// the heading, and clamp the result into the playable bounds.
//
// Postcondition: every surviving creature's position satisfies
// |x| <= halfExtent and |z| <= halfExtent.
func (c *Controller) Tick(dt float64) {
	kept := c.records[:0]
	for _, rec := range c.records {
		// Lazy cleanup: there is no death callback, the scene is the source
		// of truth for object lifetime.
		if c.scene.IsDestroyed(rec.Handle) {
			continue
		}
		kept = append(kept, rec)

		rec.Retarget -= dt
		if rec.Retarget <= 0 {
			rec.Heading = rng.UnitHeading(c.src)
			rec.Retarget = rng.Range(c.src, rec.Species.RetargetMin, rec.Species.RetargetMax)
		}

		disp := rec.Heading.Scale(rec.Species.Speed * dt)
		pos, ok := c.scene.Move(rec.Handle, disp.In3(0))
		if !ok {
			continue
		}
		if clamped := c.clamp(pos); clamped != pos {
			c.scene.SetPosition(rec.Handle, clamped)
		}
	}
	// Drop the pruned tail so dead records do not pin their species.
	for i := len(kept); i < len(c.records); i++ {
		c.records[i] = nil
	}
	c.records = kept
}

// clamp confines the horizontal components of pos to the playable square.
func (c *Controller) clamp(pos geo.Vec3) geo.Vec3 {
	if pos.X > c.halfExtent {
		pos.X = c.halfExtent
	} else if pos.X < -c.halfExtent {
		pos.X = -c.halfExtent
	}
	if pos.Z > c.halfExtent {
		pos.Z = c.halfExtent
	} else if pos.Z < -c.halfExtent {
		pos.Z = -c.halfExtent
	}
	return pos
}

// Alive returns the number of creatures tracked as of the last Tick.
func (c *Controller) Alive() int {
	return len(c.records)
}

// Records returns a snapshot of the live wander records.
//
// Postcondition: mutating the returned slice does not affect the Controller;
// the pointed-to records are shared.
func (c *Controller) Records() []*Record {
	out := make([]*Record, len(c.records))
	copy(out, c.records)
	return out
}
