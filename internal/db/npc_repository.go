package db

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/l2skilldata/internal/skilldata"
)

// Loot kinds stored in npc_loot.kind.
const (
	lootDrop  int16 = 0
	lootSpoil int16 = 1
)

// NpcRepository reads and replaces the stored NPC set.
type NpcRepository struct {
	pool *pgxpool.Pool
}

// NewNpcRepository creates a new NPC repository
func NewNpcRepository(pool *pgxpool.Pool) *NpcRepository {
	return &NpcRepository{pool: pool}
}

// LoadAll returns every stored NPC in import order with drop and spoil
// lists in their stored order.
func (r *NpcRepository) LoadAll(ctx context.Context) ([]skilldata.NpcInfo, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT npc_id, name, npc_type, has_stats,
		       level, aggro, exp, sp, hp, mp, p_atk, p_def, m_atk, m_def
		FROM npc_info
		ORDER BY seq
	`)
	if err != nil {
		return nil, fmt.Errorf("querying npcs: %w", err)
	}
	defer rows.Close()

	var npcs []skilldata.NpcInfo
	index := make(map[int32]int)
	for rows.Next() {
		var (
			npc      skilldata.NpcInfo
			hasStats bool
			s        skilldata.NpcStats
		)
		if err := rows.Scan(&npc.ID, &npc.Name, &npc.Type, &hasStats,
			&s.Level, &s.Aggro, &s.Exp, &s.SP, &s.HP, &s.MP,
			&s.PAtk, &s.PDef, &s.MAtk, &s.MDef,
		); err != nil {
			return nil, fmt.Errorf("scanning npc row: %w", err)
		}
		if hasStats {
			npc.Stats = &s
		}
		index[npc.ID] = len(npcs)
		npcs = append(npcs, npc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating npc rows: %w", err)
	}

	if err := r.loadLoot(ctx, npcs, index); err != nil {
		return nil, err
	}
	return npcs, nil
}

func (r *NpcRepository) loadLoot(ctx context.Context, npcs []skilldata.NpcInfo, index map[int32]int) error {
	rows, err := r.pool.Query(ctx, `
		SELECT npc_id, kind, item_id, item_name, min_count, max_count, chance
		FROM npc_loot
		ORDER BY npc_id, kind, position
	`)
	if err != nil {
		return fmt.Errorf("querying npc loot: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			npcID int32
			kind  int16
			e     skilldata.LootEntry
		)
		if err := rows.Scan(&npcID, &kind, &e.ItemID, &e.Name, &e.Min, &e.Max, &e.Chance); err != nil {
			return fmt.Errorf("scanning loot row: %w", err)
		}
		i, ok := index[npcID]
		if !ok {
			continue
		}
		switch kind {
		case lootDrop:
			npcs[i].Drops = append(npcs[i].Drops, e)
		case lootSpoil:
			npcs[i].Spoils = append(npcs[i].Spoils, e)
		default:
			return fmt.Errorf("npc %d: unknown loot kind %d", npcID, kind)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating loot rows: %w", err)
	}
	return nil
}

// SaveAll replaces the stored NPC set with npcs in a single transaction.
// NPCs repeating an earlier id are left out.
func (r *NpcRepository) SaveAll(ctx context.Context, npcs []skilldata.NpcInfo) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if _, err := tx.Exec(ctx, `TRUNCATE npc_loot, npc_info`); err != nil {
		return fmt.Errorf("clearing npc tables: %w", err)
	}

	seen := make(map[int32]struct{}, len(npcs))
	infoRows := make([][]any, 0, len(npcs))
	var lootRows [][]any
	for _, npc := range npcs {
		if _, dup := seen[npc.ID]; dup {
			slog.Warn("duplicate npc id, keeping first", "npc", npc.ID)
			continue
		}
		seen[npc.ID] = struct{}{}

		var s skilldata.NpcStats
		if npc.Stats != nil {
			s = *npc.Stats
		}
		infoRows = append(infoRows, []any{
			npc.ID, int32(len(infoRows)), npc.Name, npc.Type, npc.Stats != nil,
			s.Level, s.Aggro, s.Exp, s.SP, s.HP, s.MP, s.PAtk, s.PDef, s.MAtk, s.MDef,
		})
		lootRows = appendLoot(lootRows, npc.ID, lootDrop, npc.Drops)
		lootRows = appendLoot(lootRows, npc.ID, lootSpoil, npc.Spoils)
	}

	if _, err := tx.CopyFrom(ctx,
		pgx.Identifier{"npc_info"},
		[]string{"npc_id", "seq", "name", "npc_type", "has_stats",
			"level", "aggro", "exp", "sp", "hp", "mp", "p_atk", "p_def", "m_atk", "m_def"},
		pgx.CopyFromRows(infoRows),
	); err != nil {
		return fmt.Errorf("inserting npcs: %w", err)
	}

	if len(lootRows) > 0 {
		if _, err := tx.CopyFrom(ctx,
			pgx.Identifier{"npc_loot"},
			[]string{"npc_id", "kind", "position", "item_id", "item_name", "min_count", "max_count", "chance"},
			pgx.CopyFromRows(lootRows),
		); err != nil {
			return fmt.Errorf("inserting npc loot: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing npc import: %w", err)
	}

	slog.Debug("saved npcs", "npcs", len(infoRows), "loot", len(lootRows))
	return nil
}

func appendLoot(rows [][]any, npcID int32, kind int16, entries []skilldata.LootEntry) [][]any {
	for i, e := range entries {
		rows = append(rows, []any{npcID, kind, int32(i), e.ItemID, e.Name, e.Min, e.Max, e.Chance})
	}
	return rows
}
