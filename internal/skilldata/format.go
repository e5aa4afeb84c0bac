package skilldata

import (
	"fmt"
	"strconv"
	"strings"
)

// Name-table text uses two-character escapes inside a record: `\n` breaks
// a line in the tooltip and `\0` terminates a string field.
const (
	escNewline = `\n`
	escEnd     = `\0`

	nameTail = escEnd + "\ta,none" + escEnd + "\ta,none" + escEnd
)

var bannerDots = strings.Repeat(".", 40)

// GroupRow renders a skillgrp.dat row. Everything but the skill id, level
// and icon is the constant set of fields the client expects for a passive
// skill.
func GroupRow(npcID int32, c Category) string {
	return fmt.Sprintf("%d\t%d\t2\t0\t-1\t0\t0.00000000\t0\t\t\t%s\t0\t0\t0\t0\t-1\t-1",
		c.SkillID(), npcID, c.Icon())
}

// NameRow renders a skillname-e.dat row: skill id, level, the category
// banner as skill name, body as description and two empty add-ons.
func NameRow(npcID int32, c Category, body string) string {
	return fmt.Sprintf("%d\t%d\t%s\ta,%s%s", c.SkillID(), npcID, nameHeader(c), body, nameTail)
}

func nameHeader(c Category) string {
	return "a," + bannerDots + "::: " + c.String() + " :::" + bannerDots + escEnd
}

// InfoBody renders the Information tooltip. Stat values are free text and
// go through the same cleaning as item names.
func InfoBody(npcID int32, s *NpcStats) string {
	c := cleanStats(s)
	var b strings.Builder
	fmt.Fprintf(&b, "NPC ID: %d   Level: %s   Agro: %s%s", npcID, c.Level, c.Aggro, escNewline)
	fmt.Fprintf(&b, "Exp: %s   SP: %s   HP: %s   MP: %s%s", c.Exp, c.SP, c.HP, c.MP, escNewline)
	fmt.Fprintf(&b, "P. Atk: %s   P. Def: %s   M. Atk: %s   M. Def: %s%s", c.PAtk, c.PDef, c.MAtk, c.MDef, escNewline)
	return b.String()
}

func cleanStats(s *NpcStats) NpcStats {
	return NpcStats{
		Level: cleanText(s.Level),
		Aggro: cleanText(s.Aggro),
		Exp:   cleanText(s.Exp),
		SP:    cleanText(s.SP),
		HP:    cleanText(s.HP),
		MP:    cleanText(s.MP),
		PAtk:  cleanText(s.PAtk),
		PDef:  cleanText(s.PDef),
		MAtk:  cleanText(s.MAtk),
		MDef:  cleanText(s.MDef),
	}
}

// LootBody renders one line per entry, in the given order.
func LootBody(entries []LootEntry) string {
	var b strings.Builder
	for _, e := range entries {
		b.WriteString(LootLine(e))
	}
	return b.String()
}

// LootLine renders "Name [min-max] chance", collapsing the range when
// min == max.
func LootLine(e LootEntry) string {
	amount := strconv.FormatInt(e.Min, 10)
	if e.Min != e.Max {
		amount += "-" + strconv.FormatInt(e.Max, 10)
	}
	return fmt.Sprintf("%s [%s] %s%s", cleanText(e.Name), amount, FormatChance(e.Chance), escNewline)
}

// CurrencyFirst returns entries with currency entries moved to the front.
// Relative order inside both groups is kept.
func CurrencyFirst(entries []LootEntry) []LootEntry {
	out := make([]LootEntry, 0, len(entries))
	for _, e := range entries {
		if e.IsCurrency() {
			out = append(out, e)
		}
	}
	for _, e := range entries {
		if !e.IsCurrency() {
			out = append(out, e)
		}
	}
	return out
}

// cleanText keeps free text from breaking the row grammar.
var textReplacer = strings.NewReplacer("\t", " ", "\r", " ", "\n", " ", `\`, "/")

func cleanText(s string) string { return textReplacer.Replace(s) }
