package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"grasp/internal/journal"
)

func newJournalCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "journal",
		Short: "Show recently issued commands and their acknowledgments",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if !cfg.Journal.Enabled {
				return fmt.Errorf("command journal is disabled in configuration")
			}

			store, err := journal.Open(cfg.Journal.Dir)
			if err != nil {
				return err
			}
			defer store.Close()

			records, err := store.Recent(cmd.Context(), limit)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(records) == 0 {
				fmt.Fprintln(out, "Journal is empty")
				return nil
			}

			rows := make([][]string, 0, len(records))
			for _, rec := range records {
				rows = append(rows, []string{
					strconv.FormatInt(rec.ID, 10),
					rec.CreatedAt.Local().Format(time.DateTime),
					truncate(rec.SessionID, 8),
					truncate(rec.Command, 48),
					rec.Response,
					okLabel(rec.OK),
					rec.Latency.String(),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"ID", "TIME", "SESSION", "COMMAND", "ACK", "OK", "LATENCY"},
				rows,
				0, 6,
			))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of rows to show")
	return cmd
}

func okLabel(ok bool) string {
	if ok {
		return "yes"
	}
	return "no"
}

func truncate(value string, max int) string {
	if len(value) <= max {
		return value
	}
	return value[:max-1] + "…"
}
