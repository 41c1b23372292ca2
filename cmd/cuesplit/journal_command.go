package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"cuesplit/internal/journal"
)

type journalRow struct {
	ID         string         `json:"id" yaml:"id"`
	RunID      string         `json:"runId" yaml:"runId"`
	Source     string         `json:"source" yaml:"source"`
	Kind       string         `json:"kind" yaml:"kind"`
	Status     journal.Status `json:"status" yaml:"status"`
	AlbumName  string         `json:"albumName,omitempty" yaml:"albumName,omitempty"`
	TrackCount int            `json:"trackCount" yaml:"trackCount"`
	Error      string         `json:"error,omitempty" yaml:"error,omitempty"`
	UpdatedAt  string         `json:"updatedAt" yaml:"updatedAt"`
}

func newJournalCommand(ctx *commandContext) *cobra.Command {
	journalCmd := &cobra.Command{
		Use:   "journal",
		Short: "Inspect recorded scan outcomes",
	}
	journalCmd.AddCommand(newJournalListCommand(ctx))
	return journalCmd
}

func newJournalListCommand(ctx *commandContext) *cobra.Command {
	var statusFlags []string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List journal entries, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := ctx.configValue()
			if !cfg.Journal.Enabled {
				return errors.New("journal is disabled in configuration")
			}

			statuses, err := parseStatuses(statusFlags)
			if err != nil {
				return err
			}

			store, err := journal.Open(cfg)
			if err != nil {
				return fmt.Errorf("open journal: %w", err)
			}
			defer store.Close()

			entries, err := store.List(cmd.Context(), statuses...)
			if err != nil {
				return err
			}

			rows := make([]journalRow, 0, len(entries))
			for _, e := range entries {
				rows = append(rows, journalRow{
					ID:         e.ID,
					RunID:      e.RunID,
					Source:     e.SourcePath,
					Kind:       string(e.Kind),
					Status:     e.Status,
					AlbumName:  e.AlbumName,
					TrackCount: e.TrackCount,
					Error:      e.ErrorMessage,
					UpdatedAt:  e.UpdatedAt.Format(time.RFC3339),
				})
			}

			if done, err := writeStructured(cmd, ctx.outputFormat(cmd), rows); done || err != nil {
				return err
			}
			if len(rows) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Journal is empty")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), journalTable(rows))
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&statusFlags, "status", nil, "Filter by status (planned, invalid, failed)")
	return cmd
}

func parseStatuses(values []string) ([]journal.Status, error) {
	statuses := make([]journal.Status, 0, len(values))
	for _, value := range values {
		status := journal.Status(strings.ToLower(strings.TrimSpace(value)))
		switch status {
		case journal.StatusPlanned, journal.StatusInvalid, journal.StatusFailed:
			statuses = append(statuses, status)
		default:
			return nil, fmt.Errorf("unknown status %q", value)
		}
	}
	return statuses, nil
}
