package skilldata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRates_ScaleStats(t *testing.T) {
	r := DefaultScaledRates()

	got, err := r.ScaleStats(1, NpcStats{Exp: "101", SP: "7", HP: "150"})
	require.NoError(t, err)
	assert.Equal(t, "151", got.Exp) // floor(151.5)
	assert.Equal(t, "10", got.SP)   // floor(10.5)
	assert.Equal(t, "150", got.HP)
}

func TestRates_ScaleStats_Disabled(t *testing.T) {
	in := NpcStats{Exp: "not a number", SP: "7"}
	got, err := Rates{}.ScaleStats(1, in)
	require.NoError(t, err)
	assert.Equal(t, in, got)
}

func TestRates_ScaleStats_NonNumeric(t *testing.T) {
	tests := []struct {
		name  string
		stats NpcStats
		field string
	}{
		{"expression", NpcStats{Exp: "$base * 2", SP: "1"}, "exp"},
		{"infinite exp", NpcStats{Exp: "Inf", SP: "1"}, "exp"},
		{"negative infinity", NpcStats{Exp: "-Inf", SP: "1"}, "exp"},
		{"nan sp", NpcStats{Exp: "10", SP: "NaN"}, "sp"},
		{"overflows int64", NpcStats{Exp: "1e19", SP: "1"}, "exp"},
		{"overflows after scaling", NpcStats{Exp: "9e18", SP: "1"}, "exp"},
		{"empty", NpcStats{Exp: "", SP: "1"}, "exp"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DefaultScaledRates().ScaleStats(42, tt.stats)
			var de *DataError
			require.ErrorAs(t, err, &de)
			assert.Equal(t, int32(42), de.NpcID)
			assert.Equal(t, Information, de.Category)
			assert.Equal(t, tt.field, de.Field)
		})
	}
}

func TestRates_ScaleStats_LargeButValid(t *testing.T) {
	got, err := DefaultScaledRates().ScaleStats(1, NpcStats{Exp: "4000000000000000000", SP: "-3"})
	require.NoError(t, err)
	assert.Equal(t, "6000000000000000000", got.Exp)
	assert.Equal(t, "-5", got.SP, "floor, not truncation")
}

func TestRates_ScaleDrops(t *testing.T) {
	npc := &NpcInfo{
		ID:   1,
		Type: "monster",
		Drops: []LootEntry{
			{ItemID: 100, Name: "Sword", Min: 1, Max: 1, Chance: 0.80},
			{ItemID: AdenaItemID, Name: "Adena", Min: 5, Max: 11, Chance: 0.70},
			{ItemID: 101, Name: "Bow", Min: 1, Max: 1, Chance: 0.10},
		},
	}

	got := DefaultScaledRates().ScaleDrops(npc)

	assert.Equal(t, 1.0, got[0].Chance, "0.80 * 1.5 is capped at 1")
	assert.InDelta(t, 0.15, got[2].Chance, 1e-12)

	// Currency: amount x1.5 rounded half to even, chance x1.0.
	assert.Equal(t, int64(8), got[1].Min)  // 7.5 -> 8
	assert.Equal(t, int64(16), got[1].Max) // 16.5 -> 16
	assert.Equal(t, 0.70, got[1].Chance)

	// Source list is untouched.
	assert.Equal(t, 0.80, npc.Drops[0].Chance)
	assert.Equal(t, int64(5), npc.Drops[1].Min)
}

func TestRates_ScaleDrops_BossExempt(t *testing.T) {
	for _, typ := range []string{"RaidBoss", "raid_boss", "GrandBoss", "grand_boss"} {
		t.Run(typ, func(t *testing.T) {
			npc := &NpcInfo{
				Type: typ,
				Drops: []LootEntry{
					{ItemID: 100, Name: "Ring", Min: 1, Max: 1, Chance: 0.20},
					{ItemID: AdenaItemID, Name: "Adena", Min: 100, Max: 100, Chance: 1},
				},
			}
			got := DefaultScaledRates().ScaleDrops(npc)
			assert.Equal(t, 0.20, got[0].Chance)
			assert.Equal(t, int64(150), got[1].Min, "currency amount is still scaled for bosses")
		})
	}
}

func TestNpcInfo_IsBoss(t *testing.T) {
	assert.True(t, (&NpcInfo{Type: "raid_boss"}).IsBoss())
	assert.True(t, (&NpcInfo{Type: "GrandBoss"}).IsBoss())
	assert.False(t, (&NpcInfo{Type: "monster"}).IsBoss())
	assert.False(t, (&NpcInfo{}).IsBoss())
}
