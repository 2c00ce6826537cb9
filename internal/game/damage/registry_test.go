package damage_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/timberline-game/timberline/internal/game/damage"
	"github.com/timberline-game/timberline/internal/game/economy"
	"github.com/timberline-game/timberline/internal/game/scene"
)

func newRegistry() (*damage.Registry, *economy.State) {
	econ := economy.NewState()
	return damage.NewRegistry(econ, nil), econ
}

// --- Register / Unregister ---

func TestRegistry_Register_Overwrites(t *testing.T) {
	reg, _ := newRegistry()
	h := scene.Handle("h1")

	reg.Register(h, damage.Config{Kind: damage.KindMob, HitPoints: 10})
	reg.Register(h, damage.Config{Kind: damage.KindMob, HitPoints: 50})

	hp, ok := reg.HitPoints(h)
	require.True(t, ok)
	assert.Equal(t, 50.0, hp)
}

func TestRegistry_Register_NonPositiveHitPoints_Dropped(t *testing.T) {
	reg, _ := newRegistry()
	reg.Register("h1", damage.Config{Kind: damage.KindMob, HitPoints: 0})
	assert.False(t, reg.Registered("h1"))
}

func TestRegistry_Register_UnknownKind_Dropped(t *testing.T) {
	reg, _ := newRegistry()
	reg.Register("h1", damage.Config{Kind: "ghost", HitPoints: 10})
	assert.False(t, reg.Registered("h1"))
}

func TestRegistry_Unregister_NoRewards(t *testing.T) {
	reg, econ := newRegistry()
	h := scene.Handle("h1")
	reg.Register(h, damage.Config{
		Kind: damage.KindMob, HitPoints: 10,
		Reward: map[string]int{"fang": 2}, SkillPoints: 3,
	})

	reg.Unregister(h)

	assert.False(t, reg.Registered(h))
	assert.Zero(t, econ.Count("fang"))
	assert.Zero(t, econ.SkillPoints())
}

// --- ApplyDamage ---

func TestRegistry_ApplyDamage_StaleHandle_NoOp(t *testing.T) {
	reg, _ := newRegistry()
	out := reg.ApplyDamage("never-registered", 10, "")
	assert.False(t, out.Registered)
	assert.False(t, out.Died)
}

func TestRegistry_ApplyDamage_Survivor_RetainsUpdatedHitPoints(t *testing.T) {
	reg, _ := newRegistry()
	h := scene.Handle("h1")
	reg.Register(h, damage.Config{Kind: damage.KindMob, HitPoints: 30})

	out := reg.ApplyDamage(h, 10, "")

	require.True(t, out.Registered)
	assert.False(t, out.Died)
	assert.Equal(t, 20.0, out.Remaining)
	hp, ok := reg.HitPoints(h)
	require.True(t, ok)
	assert.Equal(t, 20.0, hp)
}

func TestRegistry_ApplyDamage_ResourceSoftening(t *testing.T) {
	reg, _ := newRegistry()
	h := scene.Handle("pine")
	reg.Register(h, damage.Config{
		Kind: damage.KindResource, Category: economy.CategoryWood, HitPoints: 60,
	})

	out := reg.ApplyDamage(h, 25, "")

	// 25 * 0.7 = 17.5 effective, not 25.
	require.True(t, out.Registered)
	assert.InDelta(t, 42.5, out.Remaining, 1e-9)
}

func TestRegistry_ApplyDamage_CategoryBonus_Resource(t *testing.T) {
	reg, econ := newRegistry()
	econ.AddDamageBonus(economy.CategoryWood, 3)
	h := scene.Handle("pine")
	reg.Register(h, damage.Config{
		Kind: damage.KindResource, Category: economy.CategoryWood, HitPoints: 60,
	})

	out := reg.ApplyDamage(h, 10, "")

	// 10*0.7 + 3 = 10 effective.
	assert.InDelta(t, 50.0, out.Remaining, 1e-9)
}

func TestRegistry_ApplyDamage_KindDerivedCategory(t *testing.T) {
	reg, econ := newRegistry()
	econ.AddDamageBonus(economy.CategoryMob, 5)
	econ.AddDamageBonus(economy.CategoryAnimal, 2)

	mob := scene.Handle("wolf")
	reg.Register(mob, damage.Config{Kind: damage.KindMob, HitPoints: 100})
	animal := scene.Handle("boar")
	reg.Register(animal, damage.Config{Kind: damage.KindAnimal, HitPoints: 100})

	assert.Equal(t, 85.0, reg.ApplyDamage(mob, 10, "").Remaining)
	assert.Equal(t, 88.0, reg.ApplyDamage(animal, 10, "").Remaining)
}

func TestRegistry_ApplyDamage_OverrideCategory_Wins(t *testing.T) {
	reg, econ := newRegistry()
	econ.AddDamageBonus(economy.CategoryWood, 4)
	econ.AddDamageBonus(economy.CategoryMob, 100)

	h := scene.Handle("wolf")
	reg.Register(h, damage.Config{Kind: damage.KindMob, HitPoints: 50})

	// An axe swing carries the wood bucket even against a mob.
	out := reg.ApplyDamage(h, 10, economy.CategoryWood)
	assert.Equal(t, 36.0, out.Remaining)
}

// --- Death ---

func TestRegistry_ApplyDamage_Death_DepositsRewardsOnce(t *testing.T) {
	reg, econ := newRegistry()
	h := scene.Handle("wolf")
	reg.Register(h, damage.Config{
		Kind: damage.KindMob, HitPoints: 10,
		Reward:      map[string]int{"fang": 2, "raw_meat": 1},
		SkillPoints: 2,
	})

	out := reg.ApplyDamage(h, 10, "")

	require.True(t, out.Died)
	assert.Zero(t, out.Remaining)
	assert.False(t, reg.Registered(h))
	assert.Equal(t, 2, econ.Count("fang"))
	assert.Equal(t, 1, econ.Count("raw_meat"))
	assert.Equal(t, 2, econ.SkillPoints())

	// Repeat call for the dead handle is a no-op with no double reward.
	again := reg.ApplyDamage(h, 10, "")
	assert.False(t, again.Registered)
	assert.Equal(t, 2, econ.Count("fang"))
	assert.Equal(t, 2, econ.SkillPoints())
}

func TestRegistry_ApplyDamage_RewardsDepositedBeforeReturn(t *testing.T) {
	reg, econ := newRegistry()
	h := scene.Handle("boar")
	reg.Register(h, damage.Config{
		Kind: damage.KindAnimal, HitPoints: 5,
		Reward: map[string]int{"hide": 1},
	})

	var sawHide int
	econ.OnChange(func() { sawHide = econ.Count("hide") })

	out := reg.ApplyDamage(h, 5, "")

	require.True(t, out.Died)
	// The subscriber ran during ApplyDamage and saw the deposit.
	assert.Equal(t, 1, sawHide)
}

func TestRegistry_ApplyDamage_DamageMonotonicity(t *testing.T) {
	reg, _ := newRegistry()
	h := scene.Handle("pine")
	reg.Register(h, damage.Config{Kind: damage.KindResource, Category: economy.CategoryWood, HitPoints: 60})

	prev := 60.0
	for reg.Registered(h) {
		out := reg.ApplyDamage(h, 25, "")
		require.True(t, out.Registered)
		if !out.Died {
			require.Less(t, out.Remaining, prev)
			prev = out.Remaining
		}
	}
	assert.False(t, reg.ApplyDamage(h, 25, "").Registered)
}

// --- Property tests ---

func TestProperty_ApplyDamage_RewardExactlyOnce(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		hp := rapid.Float64Range(1, 100).Draw(rt, "hp")
		hit := rapid.Float64Range(1, 40).Draw(rt, "hit")
		extra := rapid.IntRange(0, 5).Draw(rt, "extra")

		reg, econ := newRegistry()
		h := scene.Handle("target")
		reg.Register(h, damage.Config{
			Kind: damage.KindMob, HitPoints: hp,
			Reward: map[string]int{"fang": 3}, SkillPoints: 1,
		})

		died := false
		for i := 0; i < 1000 && !died; i++ {
			died = reg.ApplyDamage(h, hit, "").Died
		}
		require.True(rt, died)
		for i := 0; i < extra; i++ {
			reg.ApplyDamage(h, hit, "")
		}

		if got := econ.Count("fang"); got != 3 {
			rt.Fatalf("fang deposited %d times the table amount", got)
		}
		if got := econ.SkillPoints(); got != 1 {
			rt.Fatalf("skill points granted %d, want exactly 1", got)
		}
	})
}
