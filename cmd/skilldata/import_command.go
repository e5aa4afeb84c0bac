package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/udisondev/l2skilldata/internal/db"
	"github.com/udisondev/l2skilldata/internal/npcdata"
)

func newImportCommand(cc *commandContext) *cobra.Command {
	var npcsDir, itemsDir string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Load NPC XML into PostgreSQL for builds with source: database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := cc.cfg
			if cmd.Flags().Changed("npcs-dir") {
				cfg.NpcsDir = npcsDir
			}
			if cmd.Flags().Changed("items-dir") {
				cfg.ItemsDir = itemsDir
			}

			loader := &npcdata.Loader{
				NpcsDir:  cfg.NpcsDir,
				ItemsDir: cfg.ItemsDir,
				Workers:  cfg.ParseWorkers,
			}
			npcs, err := loader.Load(ctx)
			if err != nil {
				return fmt.Errorf("loading npcs from xml: %w", err)
			}

			database, err := db.New(ctx, cfg.Database.DSN())
			if err != nil {
				return err
			}
			defer database.Close()
			slog.Info("database connected")

			if err := db.RunMigrations(ctx, cfg.Database.DSN()); err != nil {
				return fmt.Errorf("running migrations: %w", err)
			}
			slog.Info("database migrations applied")

			if err := database.Npcs().SaveAll(ctx, npcs); err != nil {
				return fmt.Errorf("saving npcs: %w", err)
			}
			slog.Info("NPC data imported", "npcs", len(npcs))
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d npcs\n", len(npcs))
			return nil
		},
	}

	cmd.Flags().StringVar(&npcsDir, "npcs-dir", "", "Server NPC XML directory")
	cmd.Flags().StringVar(&itemsDir, "items-dir", "", "Server item XML directory")

	return cmd
}
