package skilldata

import (
	"errors"
	"log/slog"
	"math"
)

// Block is the rendered content of one NPC for one category, ready to be
// turned into a row of either table.
type Block struct {
	NpcID    int32
	Category Category
	Body     string
}

// Key returns the skill row key the block is stored under.
func (b Block) Key() Key {
	return Key{SkillID: b.Category.SkillID(), Level: b.NpcID}
}

// Synthesizer maps NPC data to Blocks. It does no I/O.
type Synthesizer struct {
	Categories Categories
	Rates      Rates
	Logger     *slog.Logger
}

// Synthesize returns blocks in NPC input order and, per NPC, in
// AllCategories order. NPCs repeating an earlier id are ignored. A DataError
// drops only the affected block.
func (s *Synthesizer) Synthesize(npcs []NpcInfo) []Block {
	logger := s.logger()
	seen := make(map[int32]struct{}, len(npcs))
	blocks := make([]Block, 0, len(npcs))
	skipped := 0

	for i := range npcs {
		npc := &npcs[i]
		if _, dup := seen[npc.ID]; dup {
			logger.Warn("duplicate npc id, keeping first", "npc", npc.ID)
			continue
		}
		seen[npc.ID] = struct{}{}

		for _, c := range AllCategories {
			if !s.Categories.Enabled(c) {
				continue
			}
			body, ok, err := s.Body(npc, c)
			if err != nil {
				var de *DataError
				if !errors.As(err, &de) {
					de = &DataError{NpcID: npc.ID, Category: c, Field: "data", Err: err}
				}
				logger.Warn("skipping record", "npc", npc.ID, "category", c.String(), "err", de)
				skipped++
				continue
			}
			if !ok {
				continue
			}
			blocks = append(blocks, Block{NpcID: npc.ID, Category: c, Body: body})
		}
	}

	logger.Debug("synthesized records", "npcs", len(seen), "blocks", len(blocks), "skipped", skipped)
	return blocks
}

// Body renders the tooltip text of npc for category c. ok is false when the
// NPC has nothing to show for c (no drop or spoil list).
func (s *Synthesizer) Body(npc *NpcInfo, c Category) (body string, ok bool, err error) {
	switch c {
	case Information:
		if npc.Stats == nil {
			return "", false, &DataError{NpcID: npc.ID, Category: c, Field: "stats"}
		}
		stats, err := s.Rates.ScaleStats(npc.ID, *npc.Stats)
		if err != nil {
			return "", false, err
		}
		return InfoBody(npc.ID, &stats), true, nil

	case Drop:
		if len(npc.Drops) == 0 {
			return "", false, nil
		}
		if err := validateLoot(npc.ID, c, npc.Drops); err != nil {
			return "", false, err
		}
		return LootBody(CurrencyFirst(s.Rates.ScaleDrops(npc))), true, nil

	case Spoil:
		if len(npc.Spoils) == 0 {
			return "", false, nil
		}
		if err := validateLoot(npc.ID, c, npc.Spoils); err != nil {
			return "", false, err
		}
		return LootBody(npc.Spoils), true, nil

	default:
		return "", false, nil
	}
}

func validateLoot(npcID int32, c Category, entries []LootEntry) error {
	for _, e := range entries {
		if e.Min > e.Max {
			return &DataError{NpcID: npcID, Category: c, Field: "amount",
				Err: errors.New("min greater than max")}
		}
		if math.IsNaN(e.Chance) || e.Chance < 0 || e.Chance > 1 {
			return &DataError{NpcID: npcID, Category: c, Field: "chance",
				Err: errors.New("chance outside [0, 1]")}
		}
		if e.Name == "" {
			return &DataError{NpcID: npcID, Category: c, Field: "item name"}
		}
	}
	return nil
}

func (s *Synthesizer) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

// Rows renders blocks as rows of table t, in order.
func (t Table) Rows(blocks []Block) []string {
	rows := make([]string, len(blocks))
	for i, b := range blocks {
		rows[i] = t.Render(b)
	}
	return rows
}
