package npcdata

import (
	"math"
	"strconv"
	"strings"
	"unicode"
)

// camelToSnake converts CamelCase NPC types to snake_case.
//
//	"RaidBoss" → "raid_boss"
//	"Monster"  → "monster"
//	"raid_boss" stays as is
func camelToSnake(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 4)

	for i, r := range s {
		if unicode.IsUpper(r) && i > 0 {
			b.WriteByte('_')
		}
		b.WriteRune(unicode.ToLower(r))
	}

	return b.String()
}

// displayNumber renders a numeric attribute as a whole number ("39.74519"
// → "40"). Non-numeric values are returned trimmed but otherwise unchanged.
func displayNumber(s string) string {
	s = strings.TrimSpace(s)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return s
	}
	return strconv.FormatFloat(math.Round(v), 'f', 0, 64)
}

func parseBoolAttr(s string) bool {
	return s == "true" || s == "1"
}

// percentOf converts an XML percentage attribute to a 0..1 fraction.
// An empty attribute means 100%.
func percentOf(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 1, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	return v / 100, nil
}

func clamp01(v float64) float64 {
	return min(max(v, 0), 1)
}
