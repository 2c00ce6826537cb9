package scene_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timberline-game/timberline/internal/game/geo"
	"github.com/timberline-game/timberline/internal/game/scene"
)

// --- Lifecycle ---

func TestHeadless_SpawnDestroy(t *testing.T) {
	s := scene.NewHeadless()
	h := s.Spawn(scene.Desc{Label: "pine", Position: geo.Vec3{X: 1, Z: 2}, Radius: 1})

	assert.False(t, s.IsDestroyed(h))
	pos, ok := s.Position(h)
	require.True(t, ok)
	assert.Equal(t, geo.Vec3{X: 1, Z: 2}, pos)

	s.Destroy(h)
	assert.True(t, s.IsDestroyed(h))
	_, ok = s.Position(h)
	assert.False(t, ok)
}

func TestHeadless_UniqueHandles(t *testing.T) {
	s := scene.NewHeadless()
	a := s.Spawn(scene.Desc{Label: "a"})
	b := s.Spawn(scene.Desc{Label: "a"})
	assert.NotEqual(t, a, b)
}

func TestHeadless_UnknownHandle_IsDestroyed(t *testing.T) {
	s := scene.NewHeadless()
	assert.True(t, s.IsDestroyed("nope"))
}

// --- Movement ---

func TestHeadless_Move_AppliesDelta(t *testing.T) {
	s := scene.NewHeadless()
	h := s.Spawn(scene.Desc{Position: geo.Vec3{X: 1, Y: 0, Z: 1}})

	pos, ok := s.Move(h, geo.Vec3{X: 2, Y: 0, Z: -3})

	require.True(t, ok)
	assert.Equal(t, geo.Vec3{X: 3, Y: 0, Z: -2}, pos)
}

func TestHeadless_Move_ClampsToGroundPlane(t *testing.T) {
	s := scene.NewHeadless()
	h := s.Spawn(scene.Desc{Position: geo.Vec3{Y: 1}})

	pos, ok := s.Move(h, geo.Vec3{Y: -5})

	require.True(t, ok)
	assert.Zero(t, pos.Y)
}

func TestHeadless_Move_DeadHandle(t *testing.T) {
	s := scene.NewHeadless()
	_, ok := s.Move("nope", geo.Vec3{X: 1})
	assert.False(t, ok)
}

func TestHeadless_Grounded(t *testing.T) {
	s := scene.NewHeadless()
	h := s.Spawn(scene.Desc{Position: geo.Vec3{Y: 0.1}})

	assert.True(t, s.Grounded(h, 0.15))

	s.SetPosition(h, geo.Vec3{Y: 2})
	assert.False(t, s.Grounded(h, 0.15))
}

// --- Raycast ---

func TestHeadless_Raycast_NearestHit(t *testing.T) {
	s := scene.NewHeadless()
	near := s.Spawn(scene.Desc{Position: geo.Vec3{Z: 5}, Radius: 1})
	s.Spawn(scene.Desc{Position: geo.Vec3{Z: 10}, Radius: 1})

	hit, ok := s.Raycast(geo.Vec3{}, geo.Vec3{Z: 1}, 100, "")

	require.True(t, ok)
	assert.Equal(t, near, hit.Handle)
	assert.InDelta(t, 4.0, hit.Distance, 1e-9)
}

func TestHeadless_Raycast_RespectsMaxDist(t *testing.T) {
	s := scene.NewHeadless()
	s.Spawn(scene.Desc{Position: geo.Vec3{Z: 50}, Radius: 1})

	_, ok := s.Raycast(geo.Vec3{}, geo.Vec3{Z: 1}, 10, "")
	assert.False(t, ok)
}

func TestHeadless_Raycast_SkipsExcluded(t *testing.T) {
	s := scene.NewHeadless()
	self := s.Spawn(scene.Desc{Position: geo.Vec3{Z: 1}, Radius: 2})
	other := s.Spawn(scene.Desc{Position: geo.Vec3{Z: 6}, Radius: 1})

	hit, ok := s.Raycast(geo.Vec3{}, geo.Vec3{Z: 1}, 100, self)

	require.True(t, ok)
	assert.Equal(t, other, hit.Handle)
}

func TestHeadless_Raycast_MissesBehindOrigin(t *testing.T) {
	s := scene.NewHeadless()
	s.Spawn(scene.Desc{Position: geo.Vec3{Z: -5}, Radius: 1})

	_, ok := s.Raycast(geo.Vec3{}, geo.Vec3{Z: 1}, 100, "")
	assert.False(t, ok)
}
