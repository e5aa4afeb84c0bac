package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"time"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/udisondev/l2skilldata/internal/config"
	"github.com/udisondev/l2skilldata/internal/datfile"
	"github.com/udisondev/l2skilldata/internal/db"
	"github.com/udisondev/l2skilldata/internal/npcdata"
	"github.com/udisondev/l2skilldata/internal/pipeline"
	"github.com/udisondev/l2skilldata/internal/skilldata"
)

type buildFlags struct {
	noInfo, noDrops, noSpoils, vip bool
	originalDir, outputDir         string
	npcsDir, itemsDir, source      string
}

func newBuildCommand(cc *commandContext) *cobra.Command {
	var f buildFlags

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Append NPC tooltip skills to skillgrp.dat and skillname-e.dat",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := cc.cfg
			f.apply(cmd, &cfg)
			if err := cfg.Validate(); err != nil {
				return err
			}
			return runBuild(cmd, cfg)
		},
	}

	flags := cmd.Flags()
	flags.BoolVar(&f.noInfo, "no-info", false, "Do not generate Information records")
	flags.BoolVar(&f.noDrops, "no-drops", false, "Do not generate Drop records")
	flags.BoolVar(&f.noSpoils, "no-spoils", false, "Do not generate Spoil records")
	flags.BoolVar(&f.vip, "vip", false, "Apply scaled rates to exp, sp and drops")
	flags.StringVar(&f.originalDir, "original-dir", "", "Directory with the unmodified client files")
	flags.StringVar(&f.outputDir, "output-dir", "", "Directory for the patched client files")
	flags.StringVar(&f.npcsDir, "npcs-dir", "", "Server NPC XML directory")
	flags.StringVar(&f.itemsDir, "items-dir", "", "Server item XML directory")
	flags.StringVar(&f.source, "source", "", "NPC source: xml or database")

	return cmd
}

// apply overrides cfg with the flags given on the command line.
func (f *buildFlags) apply(cmd *cobra.Command, cfg *config.Builder) {
	flags := cmd.Flags()
	if f.noInfo {
		cfg.Info = false
	}
	if f.noDrops {
		cfg.Drops = false
	}
	if f.noSpoils {
		cfg.Spoils = false
	}
	if f.vip {
		cfg.Rates.Scaled = true
	}
	if flags.Changed("original-dir") {
		cfg.OriginalDir = f.originalDir
	}
	if flags.Changed("output-dir") {
		cfg.OutputDir = f.outputDir
	}
	if flags.Changed("npcs-dir") {
		cfg.NpcsDir = f.npcsDir
	}
	if flags.Changed("items-dir") {
		cfg.ItemsDir = f.itemsDir
	}
	if flags.Changed("source") {
		cfg.Source = f.source
	}
}

func runBuild(cmd *cobra.Command, cfg config.Builder) error {
	ctx := cmd.Context()
	start := time.Now()

	slog.Info("skill data build starting",
		"source", cfg.Source,
		"original_dir", cfg.OriginalDir,
		"output_dir", cfg.OutputDir,
		"info", cfg.Info,
		"drops", cfg.Drops,
		"spoils", cfg.Spoils,
		"scaled_rates", cfg.Rates.Scaled)

	npcs, err := loadNpcs(ctx, cfg)
	if err != nil {
		return err
	}

	codec, err := datfile.NewVer211Codec()
	if err != nil {
		return fmt.Errorf("creating codec: %w", err)
	}

	synth := &skilldata.Synthesizer{
		Categories: cfg.Categories(),
		Rates:      cfg.SkillRates(),
	}
	runner := &pipeline.Runner{
		OriginalDir: cfg.OriginalDir,
		OutputDir:   cfg.OutputDir,
		Codec:       codec,
	}
	results := runner.Build(synth, npcs)

	fmt.Fprintln(cmd.OutOrStdout(), renderResults(cmd.OutOrStdout(), results))

	if err := pipeline.Err(results); err != nil {
		return err
	}
	slog.Info("skill data build finished", "elapsed", time.Since(start).Round(time.Millisecond))
	return nil
}

// loadNpcs reads NPCs from the configured source.
func loadNpcs(ctx context.Context, cfg config.Builder) ([]skilldata.NpcInfo, error) {
	switch cfg.Source {
	case config.SourceDatabase:
		database, err := db.New(ctx, cfg.Database.DSN())
		if err != nil {
			return nil, err
		}
		defer database.Close()

		npcs, err := database.Npcs().LoadAll(ctx)
		if err != nil {
			return nil, fmt.Errorf("loading npcs from database: %w", err)
		}
		slog.Info("loaded NPC data from database", "npcs", len(npcs))
		return npcs, nil

	default:
		loader := &npcdata.Loader{
			NpcsDir:  cfg.NpcsDir,
			ItemsDir: cfg.ItemsDir,
			Workers:  cfg.ParseWorkers,
		}
		npcs, err := loader.Load(ctx)
		if err != nil {
			return nil, fmt.Errorf("loading npcs from xml: %w", err)
		}
		return npcs, nil
	}
}

var resultColumns = []column{
	{"Table", text.AlignLeft},
	{"Status", text.AlignLeft},
	{"Stage", text.AlignLeft},
	{"Before", text.AlignRight},
	{"Appended", text.AlignRight},
	{"Skipped", text.AlignRight},
	{"Elapsed", text.AlignRight},
	{"Error", text.AlignLeft},
}

func renderResults(w io.Writer, results []pipeline.Result) string {
	rows := make([][]string, 0, len(results))
	for _, res := range results {
		status := "ok"
		errText := ""
		if !res.OK() {
			status = "FAILED"
			errText = res.Err.Error()
		}
		rows = append(rows, []string{
			res.Table.FileName(),
			status,
			res.Stage,
			strconv.Itoa(res.Before),
			strconv.Itoa(res.Appended),
			strconv.Itoa(res.Skipped),
			res.Elapsed.Round(time.Millisecond).String(),
			errText,
		})
	}
	return renderTable(w, resultColumns, rows)
}
