package skilldata

import (
	"fmt"
	"math"
	"strconv"
)

// Rates is the scaled ("VIP") mode profile. With Enabled false every
// method returns its input unchanged.
type Rates struct {
	Enabled        bool
	ExpSP          float64 // exp and sp multiplier
	ItemDrop       float64 // non-currency drop chance multiplier, not applied to bosses
	CurrencyChance float64
	CurrencyAmount float64
}

// DefaultScaledRates returns the scaled mode multipliers, switched on.
func DefaultScaledRates() Rates {
	return Rates{
		Enabled:        true,
		ExpSP:          1.5,
		ItemDrop:       1.5,
		CurrencyChance: 1.0,
		CurrencyAmount: 1.5,
	}
}

// ScaleStats returns a copy of s with exp and sp multiplied and floored.
// Exp and SP must parse as numbers.
func (r Rates) ScaleStats(npcID int32, s NpcStats) (NpcStats, error) {
	if !r.Enabled {
		return s, nil
	}
	exp, err := scaleInt(s.Exp, r.ExpSP)
	if err != nil {
		return s, &DataError{NpcID: npcID, Category: Information, Field: "exp", Err: err}
	}
	sp, err := scaleInt(s.SP, r.ExpSP)
	if err != nil {
		return s, &DataError{NpcID: npcID, Category: Information, Field: "sp", Err: err}
	}
	s.Exp, s.SP = exp, sp
	return s, nil
}

// ScaleDrops returns a scaled copy of the NPC's drop list. Currency amount
// and chance use their own multipliers; other items use ItemDrop unless the
// NPC is a boss. Chances are capped at 1, amounts rounded half to even.
func (r Rates) ScaleDrops(npc *NpcInfo) []LootEntry {
	out := make([]LootEntry, len(npc.Drops))
	copy(out, npc.Drops)
	if !r.Enabled {
		return out
	}

	boss := npc.IsBoss()
	for i := range out {
		e := &out[i]
		switch {
		case e.IsCurrency():
			e.Min = scaleAmount(e.Min, r.CurrencyAmount)
			e.Max = scaleAmount(e.Max, r.CurrencyAmount)
			e.Chance = capChance(e.Chance * r.CurrencyChance)
		case !boss:
			e.Chance = capChance(e.Chance * r.ItemDrop)
		}
	}
	return out
}

func scaleInt(v string, rate float64) (string, error) {
	n, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return "", fmt.Errorf("not a number: %q", v)
	}
	if math.IsInf(n, 0) || math.IsNaN(n) {
		return "", fmt.Errorf("not a finite number: %q", v)
	}
	scaled := math.Floor(n * rate)
	// float64(MaxInt64) rounds up to 2^63, so the upper bound is exclusive.
	if scaled < math.MinInt64 || scaled >= math.MaxInt64 || math.IsNaN(scaled) {
		return "", fmt.Errorf("%q scaled by %g is out of range", v, rate)
	}
	return strconv.FormatInt(int64(scaled), 10), nil
}

func scaleAmount(v int64, rate float64) int64 {
	return int64(math.RoundToEven(float64(v) * rate))
}

func capChance(c float64) float64 {
	return min(max(c, 0), 1)
}
