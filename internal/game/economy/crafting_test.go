package economy_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timberline-game/timberline/internal/game/economy"
	"github.com/timberline-game/timberline/internal/testutil"
)

// --- Recipe.Validate ---

func TestRecipe_Validate(t *testing.T) {
	valid := economy.Recipe{
		ID:     "plank",
		Name:   "Plank",
		Cost:   map[string]int{"wood": 2},
		Output: map[string]int{"plank": 1},
	}
	require.NoError(t, valid.Validate())

	for name, mutate := range map[string]func(*economy.Recipe){
		"empty id":        func(r *economy.Recipe) { r.ID = "" },
		"empty name":      func(r *economy.Recipe) { r.Name = "" },
		"no output":       func(r *economy.Recipe) { r.Output = nil },
		"zero cost qty":   func(r *economy.Recipe) { r.Cost = map[string]int{"wood": 0} },
		"zero output qty": func(r *economy.Recipe) { r.Output = map[string]int{"plank": 0} },
	} {
		t.Run(name, func(t *testing.T) {
			r := valid
			mutate(&r)
			assert.Error(t, r.Validate())
		})
	}
}

// --- Craft ---

func TestState_Craft_SpendsCostAndDepositsOutput(t *testing.T) {
	s := economy.NewState()
	s.AddResource("wood", 5)

	ok := s.Craft(economy.Recipe{
		ID: "plank", Name: "Plank",
		Cost:   map[string]int{"wood": 2},
		Output: map[string]int{"plank": 1},
	})

	require.True(t, ok)
	assert.Equal(t, 3, s.Count("wood"))
	assert.Equal(t, 1, s.Count("plank"))
}

func TestState_Craft_Insufficient_NoMutation(t *testing.T) {
	s := economy.NewState()
	s.AddResource("wood", 1)

	ok := s.Craft(economy.Recipe{
		ID: "campfire", Name: "Campfire",
		Cost:   map[string]int{"wood": 4, "stone": 2},
		Output: map[string]int{"campfire": 1},
	})

	require.False(t, ok)
	assert.Equal(t, 1, s.Count("wood"))
	assert.Equal(t, 0, s.Count("campfire"))
}

// --- Upgrade.Validate / PurchaseUpgrade ---

func TestUpgrade_Validate(t *testing.T) {
	valid := economy.Upgrade{ID: "keen_edge", Name: "Keen Edge", Cost: 1, Category: economy.CategoryMob, Bonus: 2}
	require.NoError(t, valid.Validate())

	for name, mutate := range map[string]func(*economy.Upgrade){
		"empty id":         func(u *economy.Upgrade) { u.ID = "" },
		"zero cost":        func(u *economy.Upgrade) { u.Cost = 0 },
		"zero bonus":       func(u *economy.Upgrade) { u.Bonus = 0 },
		"unknown category": func(u *economy.Upgrade) { u.Category = "plasma" },
	} {
		t.Run(name, func(t *testing.T) {
			u := valid
			mutate(&u)
			assert.Error(t, u.Validate())
		})
	}
}

func TestState_PurchaseUpgrade_SpendsPointsAndAddsBonus(t *testing.T) {
	s := economy.NewState()
	s.AddSkillPoints(3)

	ok := s.PurchaseUpgrade(economy.Upgrade{
		ID: "keen_edge", Name: "Keen Edge",
		Cost: 2, Category: economy.CategoryMob, Bonus: 2.5,
	})

	require.True(t, ok)
	assert.Equal(t, 1, s.SkillPoints())
	assert.Equal(t, 2.5, s.DamageBonus(economy.CategoryMob))
}

func TestState_PurchaseUpgrade_Insufficient_NoMutation(t *testing.T) {
	s := economy.NewState()
	s.AddSkillPoints(1)

	ok := s.PurchaseUpgrade(economy.Upgrade{
		ID: "keen_edge", Name: "Keen Edge",
		Cost: 2, Category: economy.CategoryMob, Bonus: 2.5,
	})

	require.False(t, ok)
	assert.Equal(t, 1, s.SkillPoints())
	assert.Zero(t, s.DamageBonus(economy.CategoryMob))
}

// --- Loaders ---

func TestLoadRecipes_FromDir(t *testing.T) {
	dir := testutil.WriteContentDir(t, map[string]string{
		"plank.yaml": `
id: plank
name: Plank
cost:
  wood: 2
output:
  plank: 1
`,
		"notes.txt": "ignored",
	})

	recipes, err := economy.LoadRecipes(dir)
	require.NoError(t, err)
	require.Len(t, recipes, 1)
	assert.Equal(t, "plank", recipes[0].ID)
	assert.Equal(t, 2, recipes[0].Cost["wood"])
}

func TestLoadRecipes_InvalidRecipe_Fails(t *testing.T) {
	dir := testutil.WriteContentDir(t, map[string]string{
		"bad.yaml": "id: bad\nname: Bad\n", // no output
	})
	_, err := economy.LoadRecipes(dir)
	assert.Error(t, err)
}

func TestLoadUpgrades_FromDir(t *testing.T) {
	dir := testutil.WriteContentDir(t, map[string]string{
		"keen_edge.yaml": `
id: keen_edge
name: Keen Edge
cost: 1
category: mob
bonus: 2.0
`,
	})

	upgrades, err := economy.LoadUpgrades(dir)
	require.NoError(t, err)
	require.Len(t, upgrades, 1)
	assert.Equal(t, economy.CategoryMob, upgrades[0].Category)
}

func TestLoadUpgrades_MissingDir_Fails(t *testing.T) {
	_, err := economy.LoadUpgrades("does/not/exist")
	assert.Error(t, err)
}
