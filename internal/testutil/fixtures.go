package testutil

import (
	"testing"

	"github.com/udisondev/l2skilldata/internal/datfile"
	"github.com/udisondev/l2skilldata/internal/skilldata"
)

// Fixtures содержит общие тестовые данные, чтобы не дублировать их в тестах.
var Fixtures = struct {
	// Строки оригинального skillgrp.dat (без синтетических скиллов)
	GroupRows []string
	// Строки оригинального skillname-e.dat
	NameRows []string
}{
	GroupRows: []string{
		"3\t1\t0\t0\t-1\t0\t0.08000000\t0\t\t\ticon.skill0003\t0\t0\t0\t0\t-1\t-1",
		"3\t2\t0\t0\t-1\t0\t0.08000000\t0\t\t\ticon.skill0003\t0\t0\t0\t0\t-1\t-1",
		"56\t1\t0\t0\t-1\t0\t0.00000000\t0\t\t\ticon.skill0056\t0\t0\t0\t0\t-1\t-1",
	},
	NameRows: []string{
		"3\t1\ta,Power Strike\\0\ta,Gathers power for a fierce strike.\\0\ta,none\\0\ta,none\\0",
		"3\t2\ta,Power Strike\\0\ta,Gathers power for a fierce strike.\\0\ta,none\\0\ta,none\\0",
		"56\t1\ta,Power Shot\\0\ta,Mighty shot with a bow.\\0\ta,none\\0\ta,none\\0",
	},
}

// TestNpcs returns a fresh NPC set: a monster with drops and spoils, a
// raid boss without spoils and a monster without stats.
func TestNpcs() []skilldata.NpcInfo {
	return []skilldata.NpcInfo{
		{
			ID:   20001,
			Name: "Gremlin",
			Type: "monster",
			Stats: &skilldata.NpcStats{
				Level: "1", Aggro: "No", Exp: "29", SP: "2", HP: "62", MP: "44",
				PAtk: "9", PDef: "39", MAtk: "3", MDef: "29",
			},
			Drops: []skilldata.LootEntry{
				{ItemID: 1864, Name: "Stem", Min: 1, Max: 1, Chance: 0.10},
				{ItemID: skilldata.AdenaItemID, Name: "Adena", Min: 10, Max: 16, Chance: 0.70},
			},
			Spoils: []skilldata.LootEntry{
				{ItemID: 1868, Name: "Thread", Min: 1, Max: 2, Chance: 0.25},
			},
		},
		{
			ID:   25001,
			Name: "Greyclaw Kutus",
			Type: "raid_boss",
			Stats: &skilldata.NpcStats{
				Level: "23", Aggro: "Yes", Exp: "120000", SP: "9000", HP: "8000", MP: "500",
				PAtk: "150", PDef: "200", MAtk: "90", MDef: "120",
			},
			Drops: []skilldata.LootEntry{
				{ItemID: 2, Name: "Long Sword", Min: 1, Max: 1, Chance: 0.80},
			},
		},
		{
			ID:    20002,
			Name:  "Broken",
			Type:  "monster",
			Drops: []skilldata.LootEntry{{ItemID: 1864, Name: "Stem", Min: 3, Max: 3, Chance: 0.5}},
		},
	}
}

// WriteContainer encodes rows with codec and writes them to path.
func WriteContainer(tb testing.TB, codec *datfile.Codec, path string, rows ...string) []byte {
	tb.Helper()
	doc := &datfile.Document{Version: codec.Version()}
	doc.Append(rows...)
	raw, err := codec.Encode(doc)
	if err != nil {
		tb.Fatalf("encoding %s: %v", path, err)
	}
	if err := datfile.WriteRaw(path, raw); err != nil {
		tb.Fatalf("writing %s: %v", path, err)
	}
	return raw
}

// ReadContainer reads and decodes path, failing the test on error.
func ReadContainer(tb testing.TB, codec *datfile.Codec, path string) *datfile.Document {
	tb.Helper()
	doc, err := codec.ReadFile(path)
	if err != nil {
		tb.Fatalf("reading %s: %v", path, err)
	}
	return doc
}
