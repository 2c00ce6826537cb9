// Package scene defines the capability surface the simulation uses to reach
// renderer-owned spatial objects, plus a headless in-memory implementation
// for tests and the standalone runner. The simulation never owns a visual
// object; it holds only opaque handles into a Scene.
package scene

import "github.com/timberline-game/timberline/internal/game/geo"

// Handle is an opaque, stable identifier for a scene-owned spatial object.
// A handle is unique for the lifetime of its object and is never reused.
type Handle string

// Desc describes the object a collaborator should create.
type Desc struct {
	// Label is a free-form tag for logging and debugging (species or node ID).
	Label string
	// Position is the initial world position.
	Position geo.Vec3
	// Radius is the object's bounding-sphere radius, used for hit queries.
	Radius float64
}

// Hit is the result of a raycast query.
type Hit struct {
	// Handle identifies the object that was struck.
	Handle Handle
	// Distance is the distance from the ray origin to the hit point.
	Distance float64
}

// Scene is the full collaborator surface: object lifecycle, collision-aware
// movement, a short-range ground probe, and raycast hit queries.
//
// Destroy and IsDestroyed exist so combat code can retire a visual object
// without holding any rendering-library type; a destroyed handle stays
// destroyed forever.
type Scene interface {
	// Spawn creates an object and returns its handle.
	Spawn(d Desc) Handle
	// Destroy removes the object. Destroying an unknown or already-destroyed
	// handle is a no-op.
	Destroy(h Handle)
	// IsDestroyed reports whether h no longer refers to a live object.
	// Unknown handles are reported as destroyed.
	IsDestroyed(h Handle) bool
	// Position returns the object's position, or ok=false for a dead handle.
	Position(h Handle) (geo.Vec3, bool)
	// SetPosition teleports the object, bypassing collision response.
	SetPosition(h Handle, p geo.Vec3)
	// Move applies a displacement with collision response and returns the
	// resulting position, or ok=false for a dead handle.
	Move(h Handle, delta geo.Vec3) (geo.Vec3, bool)
	// Grounded probes downward from the object's position and reports whether
	// ground lies within probe distance.
	Grounded(h Handle, probe float64) bool
	// Raycast returns the nearest object hit by the ray within maxDist,
	// skipping exclude. dir must be a unit vector.
	Raycast(origin, dir geo.Vec3, maxDist float64, exclude Handle) (Hit, bool)
}
