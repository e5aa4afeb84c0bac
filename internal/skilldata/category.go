// Package skilldata turns NPC data into the synthetic skill rows that carry
// Information / Drop / Spoil tooltips in the client.
//
// Every category is a fake skill: its skill id is fixed per category and its
// skill level is the NPC id, so the client shows one tooltip per monster.
package skilldata

import "fmt"

// Category is a class of tooltip content.
type Category int

const (
	Information Category = iota
	Drop
	Spoil
)

// AllCategories is the fixed order in which records are produced for an NPC.
var AllCategories = [...]Category{Information, Drop, Spoil}

// Skill ids used for each category in both tables.
const (
	SkillIDDrop        int32 = 20000
	SkillIDSpoil       int32 = 20001
	SkillIDInformation int32 = 20002
)

// String returns the label shown in the tooltip banner.
func (c Category) String() string {
	switch c {
	case Information:
		return "Information"
	case Drop:
		return "Drop"
	case Spoil:
		return "Spoil"
	default:
		return fmt.Sprintf("Category(%d)", int(c))
	}
}

// SkillID returns the skill id the category is stored under.
func (c Category) SkillID() int32 {
	switch c {
	case Information:
		return SkillIDInformation
	case Drop:
		return SkillIDDrop
	case Spoil:
		return SkillIDSpoil
	default:
		return 0
	}
}

// Icon returns the client icon reference for the category.
func (c Category) Icon() string {
	switch c {
	case Information:
		return "icon.etc_lottery_card_i00"
	case Drop:
		return "icon.etc_adena_i00"
	case Spoil:
		return "icon.skill0254"
	default:
		return ""
	}
}

// CategoryBySkillID maps a skill id back to its category.
func CategoryBySkillID(id int32) (Category, bool) {
	for _, c := range AllCategories {
		if c.SkillID() == id {
			return c, true
		}
	}
	return 0, false
}

// Categories holds the on/off toggle of each category.
type Categories struct {
	Information bool
	Drop        bool
	Spoil       bool
}

// AllEnabled returns Categories with every toggle on.
func AllEnabled() Categories {
	return Categories{Information: true, Drop: true, Spoil: true}
}

// Enabled reports whether c is switched on.
func (cs Categories) Enabled(c Category) bool {
	switch c {
	case Information:
		return cs.Information
	case Drop:
		return cs.Drop
	case Spoil:
		return cs.Spoil
	default:
		return false
	}
}
