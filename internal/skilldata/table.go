package skilldata

import (
	"fmt"
	"strconv"
	"strings"
)

// Table identifies one of the two client files that receive records.
type Table int

const (
	GroupTable Table = iota // skillgrp.dat
	NameTable               // skillname-e.dat
)

// Tables lists both tables in processing order.
var Tables = [...]Table{GroupTable, NameTable}

// FileName returns the container file name of the table.
func (t Table) FileName() string {
	switch t {
	case GroupTable:
		return "skillgrp.dat"
	case NameTable:
		return "skillname-e.dat"
	default:
		return fmt.Sprintf("table-%d.dat", int(t))
	}
}

func (t Table) String() string { return t.FileName() }

// Render returns the row text of b for this table.
func (t Table) Render(b Block) string {
	if t == GroupTable {
		return GroupRow(b.NpcID, b.Category)
	}
	return NameRow(b.NpcID, b.Category, b.Body)
}

// Key identifies a skill row: skill id and skill level.
type Key struct {
	SkillID int32
	Level   int32
}

// RowKey parses the skill id and level fields of any row of either table.
func RowKey(row string) (Key, bool) {
	fields := strings.SplitN(row, "\t", 3)
	if len(fields) < 2 {
		return Key{}, false
	}
	id, err := strconv.ParseInt(fields[0], 10, 32)
	if err != nil {
		return Key{}, false
	}
	lvl, err := strconv.ParseInt(fields[1], 10, 32)
	if err != nil {
		return Key{}, false
	}
	return Key{SkillID: int32(id), Level: int32(lvl)}, true
}
