package skilldata

import "strings"

// AdenaItemID is the item id of the currency.
const AdenaItemID int32 = 57

// LootEntry is one item of a drop or spoil list.
type LootEntry struct {
	ItemID int32
	Min    int64
	Max    int64
	Chance float64 // 0..1
	Name   string
}

// IsCurrency reports whether the entry is the currency item.
func (e LootEntry) IsCurrency() bool { return e.ItemID == AdenaItemID }

// NpcStats holds the Information tooltip values as the data source
// produced them. Exp and SP must be numeric when rate scaling is on.
type NpcStats struct {
	Level string
	Aggro string
	Exp   string
	SP    string
	HP    string
	MP    string
	PAtk  string
	PDef  string
	MAtk  string
	MDef  string
}

// NpcInfo is the normalized data of one NPC. The slice of NpcInfo handed to
// a Synthesizer is read-only and shared by both table runs.
type NpcInfo struct {
	ID     int32
	Name   string
	Type   string // "monster", "raid_boss", ...
	Stats  *NpcStats
	Drops  []LootEntry
	Spoils []LootEntry
}

// IsBoss reports whether the NPC is a raid or grand boss. Boss item drops
// are exempt from drop-rate scaling. Both "RaidBoss" and "raid_boss" forms
// are accepted.
func (n *NpcInfo) IsBoss() bool {
	t := strings.ToLower(strings.ReplaceAll(n.Type, "_", ""))
	return t == "raidboss" || t == "grandboss"
}
