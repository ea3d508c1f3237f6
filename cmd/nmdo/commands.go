package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nmdo/nmdo/internal/core/domain"
	"github.com/nmdo/nmdo/internal/shell/deployer"
	"github.com/nmdo/nmdo/internal/shell/journal"
	"github.com/nmdo/nmdo/internal/shell/recordstore"
	"github.com/nmdo/nmdo/internal/shell/runner"
)

// newPipeline wires the record store client, resolver, deployer and
// orchestrator from the loaded configuration.
func newPipeline() (*deployer.Orchestrator, *deployer.SeedResolver) {
	client := recordstore.NewClient(recordstore.Config{
		BaseURL: cfg.Store.BaseURL,
		Token:   cfg.Store.Token,
		Version: cfg.Store.Version,
		Timeout: cfg.Store.Timeout,
	}, logger)

	sink := deployer.NewLogSink(logger)
	resolver := deployer.NewSeedResolver(client, cfg.Databases.Seeds, sink)
	dep := deployer.NewModuleDeployer(client, sink)
	orch := deployer.NewOrchestrator(resolver, dep, client, runner.New(logger), sink)
	return orch, resolver
}

// =============================================================================
// deploy
// =============================================================================

func newDeployCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "deploy <seed-name>",
		Short: "Deploy a seed's modules into a local workspace",
		Long: `Deploy locates a seed by name (substring match on the Reference
title), materializes each linked module under a workspace directory derived
from the seed's display name, and finally runs the seed's bootstrap command
in that workspace, if one is set.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.Validate(); err != nil {
				return err
			}

			orch, _ := newPipeline()
			report, err := orch.Run(cmd.Context(), args[0])
			if err != nil {
				if errors.Is(err, domain.ErrSeedNotFound) {
					return fmt.Errorf("seed %q not found in seed database", args[0])
				}
				if errors.Is(err, domain.ErrNoLinkedModules) {
					fmt.Fprintln(cmd.OutOrStdout(), "No modules linked to this seed; nothing to deploy.")
					return nil
				}
				return err
			}

			printReport(cmd, report)
			recordRun(cmd, report)
			if report.Failed() > 0 {
				return fmt.Errorf("%d of %d modules failed to deploy", report.Failed(), len(report.Outcomes))
			}
			return nil
		},
	}
}

func printReport(cmd *cobra.Command, report *domain.DeploymentReport) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Workspace: %s\n", report.Workspace)
	for _, outcome := range report.Outcomes {
		switch outcome.Status {
		case domain.OutcomeDeployed:
			fmt.Fprintf(out, "  deployed   %s\n", outcome.Path)
		case domain.OutcomeNoContent:
			fmt.Fprintf(out, "  no content %s\n", outcome.ModuleID)
		case domain.OutcomeFailed:
			fmt.Fprintf(out, "  failed     %s: %v\n", outcome.ModuleID, outcome.Err)
		}
	}
	fmt.Fprintf(out, "%d deployed, %d without content, %d failed\n",
		report.Deployed(), report.NoContent(), report.Failed())
	if report.CommandDispatched {
		fmt.Fprintf(out, "Ran: %s\n", report.Command)
	}
}

// recordRun appends the run to the journal when enabled. Journal failures
// are logged, not fatal; the deployment itself already happened.
func recordRun(cmd *cobra.Command, report *domain.DeploymentReport) {
	if !cfg.Journal.Enabled {
		return
	}

	j, err := journal.Open(cfg.Journal.DSN)
	if err != nil {
		logger.Error("failed to open journal", "error", err)
		return
	}
	defer j.Close()

	if err := j.Record(cmd.Context(), report); err != nil {
		logger.Error("failed to record run", "error", err)
	}
}

// =============================================================================
// seeds
// =============================================================================

func newSeedsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seeds",
		Short: "List all seeds in the seed database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.Validate(); err != nil {
				return err
			}

			_, resolver := newPipeline()
			seeds, err := resolver.ListAll(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, seed := range seeds {
				fmt.Fprintf(out, "%s  %s\n", seed.ID, seed.Name)
			}
			fmt.Fprintf(out, "%d seed(s)\n", len(seeds))
			return nil
		},
	}
}

// =============================================================================
// history
// =============================================================================

func newHistoryCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent deployment runs from the journal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cfg.Journal.Enabled {
				return fmt.Errorf("journal is disabled (set NMDO_JOURNAL_ENABLED=true)")
			}

			j, err := journal.Open(cfg.Journal.DSN)
			if err != nil {
				return err
			}
			defer j.Close()

			runs, err := j.ListRuns(cmd.Context(), limit)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, run := range runs {
				fmt.Fprintf(out, "%s  %s  %s  %d deployed / %d empty / %d failed\n",
					run.StartedAt.Format("2006-01-02 15:04"), run.ID, run.SeedName,
					run.Deployed, run.NoContent, run.Failed)
			}
			fmt.Fprintf(out, "%d run(s)\n", len(runs))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of runs to show")
	return cmd
}
