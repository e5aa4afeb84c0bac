package skilldata

import "fmt"

// DataError reports an NPC that lacks data required by a category. Only the
// record of that NPC and category is skipped.
type DataError struct {
	NpcID    int32
	Category Category
	Field    string
	Err      error
}

func (e *DataError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("npc %d %s: %s: %v", e.NpcID, e.Category, e.Field, e.Err)
	}
	return fmt.Sprintf("npc %d %s: missing %s", e.NpcID, e.Category, e.Field)
}

func (e *DataError) Unwrap() error { return e.Err }
