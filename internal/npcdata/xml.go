package npcdata

import "encoding/xml"

// --- XML structures (npcs) ---

type xmlNpcList struct {
	XMLName xml.Name `xml:"list"`
	Npcs    []xmlNpc `xml:"npc"`
}

type xmlNpc struct {
	ID    int32  `xml:"id,attr"`
	Level string `xml:"level,attr"`
	Type  string `xml:"type,attr"`
	Name  string `xml:"name,attr"`

	Acquire   *xmlNpcAcquire   `xml:"acquire"`
	Stats     *xmlNpcStats     `xml:"stats"`
	AI        *xmlNpcAI        `xml:"ai"`
	DropLists *xmlNpcDropLists `xml:"dropLists"`
}

type xmlNpcAcquire struct {
	Exp string `xml:"exp,attr"`
	SP  string `xml:"sp,attr"`
}

type xmlNpcStats struct {
	Vitals  *xmlNpcVitals  `xml:"vitals"`
	Attack  *xmlNpcAttack  `xml:"attack"`
	Defence *xmlNpcDefence `xml:"defence"`
}

type xmlNpcVitals struct {
	HP string `xml:"hp,attr"`
	MP string `xml:"mp,attr"`
}

type xmlNpcAttack struct {
	Physical string `xml:"physical,attr"`
	Magical  string `xml:"magical,attr"`
}

type xmlNpcDefence struct {
	Physical string `xml:"physical,attr"`
	Magical  string `xml:"magical,attr"`
}

type xmlNpcAI struct {
	AggroRange   int32  `xml:"aggroRange,attr"`
	IsAggressive string `xml:"isAggressive,attr"`
}

type xmlNpcDropLists struct {
	Drop  *xmlNpcDrop  `xml:"drop"`
	Spoil *xmlNpcSpoil `xml:"spoil"`
}

// xmlNpcDrop accepts both grouped (<group chance><item/></group>) and flat
// (<item/>) drop lists.
type xmlNpcDrop struct {
	Groups []xmlNpcDropGroup `xml:"group"`
	Items  []xmlNpcDropItem  `xml:"item"`
}

type xmlNpcDropGroup struct {
	Chance string           `xml:"chance,attr"`
	Items  []xmlNpcDropItem `xml:"item"`
}

type xmlNpcDropItem struct {
	ID     int32   `xml:"id,attr"`
	Min    int64   `xml:"min,attr"`
	Max    int64   `xml:"max,attr"`
	Chance float64 `xml:"chance,attr"`
}

type xmlNpcSpoil struct {
	Items []xmlNpcDropItem `xml:"item"`
}

// --- XML structures (items) ---

type xmlItemList struct {
	XMLName xml.Name  `xml:"list"`
	Items   []xmlItem `xml:"item"`
}

type xmlItem struct {
	ID   int32  `xml:"id,attr"`
	Name string `xml:"name,attr"`
}
