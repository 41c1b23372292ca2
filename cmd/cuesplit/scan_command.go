package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"cuesplit/internal/config"
	"cuesplit/internal/journal"
	"cuesplit/internal/logging"
	"cuesplit/internal/preflight"
	"cuesplit/internal/scanner"
	"cuesplit/internal/splitplan"
)

type scanReport struct {
	RunID   string       `json:"runId" yaml:"runId"`
	Root    string       `json:"root" yaml:"root"`
	Albums  int          `json:"albums" yaml:"albums"`
	Skipped int          `json:"skipped" yaml:"skipped"`
	Results []scanResult `json:"results" yaml:"results"`
}

type scanResult struct {
	Source    string            `json:"source" yaml:"source"`
	Kind      splitplan.JobKind `json:"kind" yaml:"kind"`
	Status    journal.Status    `json:"status" yaml:"status"`
	Error     string            `json:"error,omitempty" yaml:"error,omitempty"`
	Plan      *splitplan.Record `json:"plan,omitempty" yaml:"plan,omitempty"`
	JournalID string            `json:"journalId,omitempty" yaml:"journalId,omitempty"`
}

func newScanCommand(ctx *commandContext) *cobra.Command {
	var rescan bool

	cmd := &cobra.Command{
		Use:   "scan <library-root>",
		Short: "Find unsplit albums below a library root and plan them",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := ctx.configValue()
			logger := ctx.loggerValue()

			root, err := filepath.Abs(args[0])
			if err != nil {
				return fmt.Errorf("resolve library root: %w", err)
			}

			results := preflight.RunAll(cfg, root)
			if preflight.Failed(results) {
				return preflightError(results)
			}

			lock := flock.New(cfg.LockPath())
			locked, err := lock.TryLock()
			if err != nil {
				return fmt.Errorf("acquire scan lock: %w", err)
			}
			if !locked {
				return fmt.Errorf("another cuesplit scan is running (lock %s)", cfg.LockPath())
			}
			defer func() {
				_ = lock.Unlock()
			}()

			report, err := runScan(cmd.Context(), cfg, logger, root, rescan)
			if err != nil {
				return err
			}
			return writeScanReport(cmd, ctx.outputFormat(cmd), report)
		},
	}

	cmd.Flags().BoolVar(&rescan, "rescan", false, "Plan sources again even if the journal marks them planned")
	return cmd
}

func runScan(ctx context.Context, cfg *config.Config, logger *slog.Logger, root string, rescan bool) (scanReport, error) {
	runID := uuid.NewString()
	ctx = logging.WithRunID(ctx, runID)
	logger = logging.WithContext(ctx, logging.NewComponentLogger(logger, "scan"))

	var prober scanner.Prober
	if cfg.Scan.ProbeEmbedded {
		prober = scanner.NewEmbeddedProber(cfg.FFprobeBinary(), logger)
	}
	albums, err := scanner.New(cfg, prober, logger).Scan(ctx, root)
	if err != nil {
		return scanReport{}, err
	}
	jobs := scanner.Jobs(albums)

	var store *journal.Store
	if cfg.Journal.Enabled {
		store, err = journal.Open(cfg)
		if err != nil {
			return scanReport{}, fmt.Errorf("open journal: %w", err)
		}
		defer store.Close()
	}

	report := scanReport{RunID: runID, Root: root, Albums: len(albums), Results: []scanResult{}}
	if store != nil && !rescan {
		planned, err := store.PlannedSources(ctx)
		if err != nil {
			return scanReport{}, err
		}
		pending := jobs[:0]
		for _, job := range jobs {
			if _, done := planned[job.Source()]; done {
				report.Skipped++
				continue
			}
			pending = append(pending, job)
		}
		jobs = pending
	}

	outcomes := splitplan.NewPlanner(cfg, logger).Batch(ctx, jobs, cfg.Scan.Workers)
	for _, outcome := range outcomes {
		if errors.Is(outcome.Err, context.Canceled) {
			return report, outcome.Err
		}
		result := scanResult{
			Source: outcome.Job.Source(),
			Kind:   outcome.Job.Kind,
			Status: journal.StatusFor(outcome),
		}
		if outcome.Err != nil {
			result.Error = outcome.Err.Error()
		} else {
			rec := outcome.Plan.Record()
			result.Plan = &rec
		}
		if store != nil {
			entry, err := store.Record(ctx, runID, outcome)
			if err != nil {
				return report, err
			}
			result.JournalID = entry.ID
		}
		report.Results = append(report.Results, result)
	}

	logger.Info("scan finished",
		logging.Int("albums", report.Albums),
		logging.Int("planned", len(report.Results)),
		logging.Int("skipped", report.Skipped),
	)
	return report, nil
}

func writeScanReport(cmd *cobra.Command, format outputFormat, report scanReport) error {
	if done, err := writeStructured(cmd, format, report); done || err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprint(out, scanTable(report.Results))
	fmt.Fprintf(out, "\n%s\n", summaryLine(report))
	return nil
}

func preflightError(results []preflight.Result) error {
	var failed []string
	for _, r := range results {
		if !r.Passed && !r.Optional {
			failed = append(failed, fmt.Sprintf("%s: %s", r.Name, r.Detail))
		}
	}
	return fmt.Errorf("preflight failed: %s", strings.Join(failed, "; "))
}
