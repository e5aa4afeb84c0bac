package main

import (
	"fmt"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/udisondev/l2skilldata/internal/datfile"
	"github.com/udisondev/l2skilldata/internal/skilldata"
)

const inspectTextWidth = 100

var recordColumns = []column{
	{"#", text.AlignRight},
	{"Skill", text.AlignRight},
	{"Level", text.AlignRight},
	{"Text", text.AlignLeft},
}

func newInspectCommand(cc *commandContext) *cobra.Command {
	var (
		tail      int
		synthetic bool
	)

	cmd := &cobra.Command{
		Use:   "inspect FILE",
		Short: "Decode a client .dat file and print its last records",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			codec, err := datfile.NewVer211Codec()
			if err != nil {
				return fmt.Errorf("creating codec: %w", err)
			}
			doc, err := codec.ReadFile(args[0])
			if err != nil {
				return err
			}

			records := doc.Records
			if synthetic {
				records = syntheticRecords(records)
			}
			if tail >= 0 && len(records) > tail {
				records = records[len(records)-tail:]
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s: %s, %d records\n", args[0], doc.Version, doc.Len())
			if len(records) == 0 {
				return nil
			}

			rows := make([][]string, 0, len(records))
			for _, r := range records {
				skill, level := "", ""
				if k, ok := skilldata.RowKey(r.Text); ok {
					skill = strconv.Itoa(int(k.SkillID))
					level = strconv.Itoa(int(k.Level))
				}
				rows = append(rows, []string{
					strconv.Itoa(r.Ordinal),
					skill,
					level,
					text.Trim(r.Text, inspectTextWidth),
				})
			}
			fmt.Fprintln(out, renderTable(out, recordColumns, rows))

			return nil
		},
	}

	cmd.Flags().IntVarP(&tail, "tail", "n", 10, "Number of trailing records to show (-1 for all)")
	cmd.Flags().BoolVar(&synthetic, "synthetic", false, "Only show Information, Drop and Spoil records")

	return cmd
}

func syntheticRecords(records []datfile.Record) []datfile.Record {
	var out []datfile.Record
	for _, r := range records {
		k, ok := skilldata.RowKey(r.Text)
		if !ok {
			continue
		}
		if _, ok := skilldata.CategoryBySkillID(k.SkillID); ok {
			out = append(out, r)
		}
	}
	return out
}
