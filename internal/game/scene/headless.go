package scene

import (
	"math"
	"sync"

	"github.com/google/uuid"

	"github.com/timberline-game/timberline/internal/game/geo"
)

// object is the headless stand-in for a rendered mesh: a labelled sphere.
type object struct {
	label  string
	pos    geo.Vec3
	radius float64
}

// Headless is an in-memory Scene with a flat ground plane at y = 0.
// All methods are safe for concurrent use.
type Headless struct {
	mu      sync.RWMutex
	objects map[Handle]*object
}

// NewHeadless creates an empty headless scene.
func NewHeadless() *Headless {
	return &Headless{objects: make(map[Handle]*object)}
}

// Spawn creates an object and returns a fresh unique handle.
//
// Postcondition: IsDestroyed(h) is false for the returned handle.
func (s *Headless) Spawn(d Desc) Handle {
	h := Handle(uuid.NewString())
	pos := d.Position
	if pos.Y < 0 {
		pos.Y = 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[h] = &object{label: d.Label, pos: pos, radius: d.Radius}
	return h
}

// Destroy removes the object. No-op for unknown handles.
func (s *Headless) Destroy(h Handle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, h)
}

// IsDestroyed reports whether h no longer refers to a live object.
func (s *Headless) IsDestroyed(h Handle) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.objects[h]
	return !ok
}

// Position returns the object's current position.
func (s *Headless) Position(h Handle) (geo.Vec3, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	obj, ok := s.objects[h]
	if !ok {
		return geo.Vec3{}, false
	}
	return obj.pos, true
}

// SetPosition teleports the object. No-op for unknown handles.
func (s *Headless) SetPosition(h Handle, p geo.Vec3) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if obj, ok := s.objects[h]; ok {
		obj.pos = p
	}
}

// Move applies delta and returns the resulting position. The only collision
// the headless scene resolves is the ground plane: objects never sink below
// y = 0.
func (s *Headless) Move(h Handle, delta geo.Vec3) (geo.Vec3, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	obj, ok := s.objects[h]
	if !ok {
		return geo.Vec3{}, false
	}
	obj.pos = obj.pos.Add(delta)
	if obj.pos.Y < 0 {
		obj.pos.Y = 0
	}
	return obj.pos, true
}

// Grounded reports whether the object sits within probe distance of the
// ground plane.
//
// Postcondition: Returns false for dead handles.
func (s *Headless) Grounded(h Handle, probe float64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	obj, ok := s.objects[h]
	if !ok {
		return false
	}
	return obj.pos.Y <= probe
}

// Raycast returns the nearest bounding-sphere intersection along the ray.
//
// Precondition: dir must be a unit vector; maxDist > 0.
func (s *Headless) Raycast(origin, dir geo.Vec3, maxDist float64, exclude Handle) (Hit, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	best := Hit{Distance: math.Inf(1)}
	found := false
	for h, obj := range s.objects {
		if h == exclude || obj.radius <= 0 {
			continue
		}
		dist, ok := raySphere(origin, dir, obj.pos, obj.radius)
		if !ok || dist > maxDist {
			continue
		}
		if dist < best.Distance {
			best = Hit{Handle: h, Distance: dist}
			found = true
		}
	}
	if !found {
		return Hit{}, false
	}
	return best, true
}

// raySphere returns the distance along the ray to the first intersection with
// the sphere, or ok=false when the ray misses or the sphere lies behind the
// origin.
func raySphere(origin, dir, center geo.Vec3, radius float64) (float64, bool) {
	oc := center.Sub(origin)
	along := oc.Dot(dir)
	if along < 0 {
		return 0, false
	}
	perpSq := oc.Dot(oc) - along*along
	rSq := radius * radius
	if perpSq > rSq {
		return 0, false
	}
	dist := along - math.Sqrt(rSq-perpSq)
	if dist < 0 {
		// Origin is inside the sphere.
		dist = 0
	}
	return dist, true
}
