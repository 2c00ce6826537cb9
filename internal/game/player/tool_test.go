package player_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timberline-game/timberline/internal/game/economy"
	"github.com/timberline-game/timberline/internal/game/player"
	"github.com/timberline-game/timberline/internal/testutil"
)

// --- Validate ---

func TestTool_Validate(t *testing.T) {
	valid := player.Tool{
		ID: "axe", Name: "Axe", Class: player.ClassMelee,
		Damage: 10, Category: economy.CategoryWood, Reach: 3,
	}
	require.NoError(t, valid.Validate())

	ranged := player.Tool{
		ID: "slingbow", Name: "Slingbow", Class: player.ClassRanged,
		Damage: 8, FireInterval: 0.5, Reach: 30,
	}
	require.NoError(t, ranged.Validate())

	for name, mutate := range map[string]func(*player.Tool){
		"empty id":         func(tl *player.Tool) { tl.ID = "" },
		"empty name":       func(tl *player.Tool) { tl.Name = "" },
		"unknown class":    func(tl *player.Tool) { tl.Class = "wand" },
		"zero damage":      func(tl *player.Tool) { tl.Damage = 0 },
		"zero reach":       func(tl *player.Tool) { tl.Reach = 0 },
		"unknown category": func(tl *player.Tool) { tl.Category = "plasma" },
	} {
		t.Run(name, func(t *testing.T) {
			tl := valid
			mutate(&tl)
			assert.Error(t, tl.Validate())
		})
	}

	t.Run("ranged needs fire_interval", func(t *testing.T) {
		tl := ranged
		tl.FireInterval = 0
		assert.Error(t, tl.Validate())
	})

	t.Run("melee ignores fire_interval", func(t *testing.T) {
		tl := valid
		tl.FireInterval = 0
		assert.NoError(t, tl.Validate())
	})
}

// --- Loaders ---

func TestLoadTools_LexicalOrderDefinesLoadout(t *testing.T) {
	dir := testutil.WriteContentDir(t, map[string]string{
		"1_axe.yaml": `
id: axe
name: Axe
class: melee
damage: 10
category: wood
reach: 3
`,
		"0_sword.yaml": `
id: sword
name: Sword
class: melee
damage: 12
reach: 2.5
`,
		"2_slingbow.yaml": `
id: slingbow
name: Slingbow
class: ranged
damage: 8
fire_interval: 0.5
reach: 30
`,
	})

	tools, err := player.LoadTools(dir)
	require.NoError(t, err)
	require.Len(t, tools, 3)
	assert.Equal(t, "sword", tools[0].ID)
	assert.Equal(t, "axe", tools[1].ID)
	assert.Equal(t, "slingbow", tools[2].ID)
}

func TestLoadTools_InvalidTool_Fails(t *testing.T) {
	dir := testutil.WriteContentDir(t, map[string]string{
		"bad.yaml": "id: bad\nname: Bad\nclass: melee\nreach: 1\n",
	})
	_, err := player.LoadTools(dir)
	assert.Error(t, err)
}
