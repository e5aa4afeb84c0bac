// Package npcdata loads NPC definitions from L2J-style server XML into the
// normalized form consumed by skilldata.
package npcdata

import (
	"context"
	"encoding/xml"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/udisondev/l2skilldata/internal/skilldata"
)

// Loader reads NPC and item XML directories.
type Loader struct {
	NpcsDir  string
	ItemsDir string
	Workers  int // parallel file parsers; <= 0 means GOMAXPROCS
	Logger   *slog.Logger
}

// Load parses every NPC file and returns NPCs in file-name order, then
// document order inside each file. Drop and spoil items get their display
// names from the item files.
func (l *Loader) Load(ctx context.Context) ([]skilldata.NpcInfo, error) {
	logger := l.logger()

	names, err := l.LoadItemNames(ctx)
	if err != nil {
		return nil, err
	}

	files, err := xmlFiles(l.NpcsDir)
	if err != nil {
		return nil, fmt.Errorf("listing npc files: %w", err)
	}

	xnpcs, err := parseFiles(ctx, files, l.workers(), parseNpcFile)
	if err != nil {
		return nil, fmt.Errorf("parsing npcs: %w", err)
	}

	npcs := make([]skilldata.NpcInfo, 0, len(xnpcs))
	for _, xn := range xnpcs {
		npc, err := convertNpc(xn, names)
		if err != nil {
			return nil, fmt.Errorf("npc %d: %w", xn.ID, err)
		}
		npcs = append(npcs, npc)
	}

	logger.Info("loaded NPC data", "files", len(files), "npcs", len(npcs), "items", len(names))
	return npcs, nil
}

// LoadItemNames returns item display names keyed by item id.
func (l *Loader) LoadItemNames(ctx context.Context) (map[int32]string, error) {
	files, err := xmlFiles(l.ItemsDir)
	if err != nil {
		return nil, fmt.Errorf("listing item files: %w", err)
	}

	items, err := parseFiles(ctx, files, l.workers(), parseItemFile)
	if err != nil {
		return nil, fmt.Errorf("parsing items: %w", err)
	}

	names := make(map[int32]string, len(items))
	for _, it := range items {
		names[it.ID] = it.Name
	}
	return names, nil
}

func (l *Loader) workers() int {
	if l.Workers > 0 {
		return l.Workers
	}
	return runtime.GOMAXPROCS(0)
}

func (l *Loader) logger() *slog.Logger {
	if l.Logger != nil {
		return l.Logger
	}
	return slog.Default()
}

// parseFiles runs parse on every file with at most workers goroutines and
// concatenates the results in files order.
func parseFiles[T any](ctx context.Context, files []string, workers int, parse func(string) ([]T, error)) ([]T, error) {
	results := make([][]T, len(files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, f := range files {
		i, f := i, f
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out, err := parse(f)
			if err != nil {
				return fmt.Errorf("parse %s: %w", filepath.Base(f), err)
			}
			results[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var total int
	for _, r := range results {
		total += len(r)
	}
	all := make([]T, 0, total)
	for _, r := range results {
		all = append(all, r...)
	}
	return all, nil
}

// xmlFiles returns all *.xml files under dir, sorted by path.
func xmlFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.EqualFold(filepath.Ext(path), ".xml") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

func parseNpcFile(path string) ([]xmlNpc, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	var list xmlNpcList
	if err := xml.Unmarshal(raw, &list); err != nil {
		return nil, fmt.Errorf("unmarshal: %w", err)
	}
	return list.Npcs, nil
}

func parseItemFile(path string) ([]xmlItem, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	var list xmlItemList
	if err := xml.Unmarshal(raw, &list); err != nil {
		return nil, fmt.Errorf("unmarshal: %w", err)
	}
	return list.Items, nil
}

func convertNpc(xn xmlNpc, names map[int32]string) (skilldata.NpcInfo, error) {
	npc := skilldata.NpcInfo{
		ID:    xn.ID,
		Name:  xn.Name,
		Type:  camelToSnake(strings.TrimSpace(xn.Type)),
		Stats: convertStats(xn),
	}

	if xn.DropLists == nil {
		return npc, nil
	}

	if d := xn.DropLists.Drop; d != nil {
		for _, xi := range d.Items {
			npc.Drops = append(npc.Drops, lootEntry(xi, 1, names))
		}
		for _, g := range d.Groups {
			groupChance, err := percentOf(g.Chance)
			if err != nil {
				return npc, fmt.Errorf("drop group chance %q: %w", g.Chance, err)
			}
			for _, xi := range g.Items {
				npc.Drops = append(npc.Drops, lootEntry(xi, groupChance, names))
			}
		}
	}

	if s := xn.DropLists.Spoil; s != nil {
		for _, xi := range s.Items {
			npc.Spoils = append(npc.Spoils, lootEntry(xi, 1, names))
		}
	}
	return npc, nil
}

func convertStats(xn xmlNpc) *skilldata.NpcStats {
	s := &skilldata.NpcStats{
		Level: displayNumber(xn.Level),
		Aggro: "No",
		Exp:   "0",
		SP:    "0",
		HP:    "0",
		MP:    "0",
		PAtk:  "0",
		PDef:  "0",
		MAtk:  "0",
		MDef:  "0",
	}

	// Exp/SP keep the raw text; rate scaling parses them.
	if a := xn.Acquire; a != nil {
		if v := strings.TrimSpace(a.Exp); v != "" {
			s.Exp = v
		}
		if v := strings.TrimSpace(a.SP); v != "" {
			s.SP = v
		}
	}

	if st := xn.Stats; st != nil {
		if st.Vitals != nil {
			s.HP = displayNumber(st.Vitals.HP)
			s.MP = displayNumber(st.Vitals.MP)
		}
		if st.Attack != nil {
			s.PAtk = displayNumber(st.Attack.Physical)
			s.MAtk = displayNumber(st.Attack.Magical)
		}
		if st.Defence != nil {
			s.PDef = displayNumber(st.Defence.Physical)
			s.MDef = displayNumber(st.Defence.Magical)
		}
	}

	if ai := xn.AI; ai != nil && (ai.AggroRange > 0 || parseBoolAttr(ai.IsAggressive)) {
		s.Aggro = "Yes"
	}
	return s
}

// lootEntry converts one XML item. XML chances are percentages; the group
// chance scales the item chance.
func lootEntry(xi xmlNpcDropItem, groupChance float64, names map[int32]string) skilldata.LootEntry {
	name, ok := names[xi.ID]
	if !ok || name == "" {
		name = fmt.Sprintf("Item %d", xi.ID)
	}
	lo, hi := xi.Min, xi.Max
	if hi < lo {
		hi = lo
	}
	return skilldata.LootEntry{
		ItemID: xi.ID,
		Min:    lo,
		Max:    hi,
		Chance: clamp01(groupChance * xi.Chance / 100),
		Name:   name,
	}
}
