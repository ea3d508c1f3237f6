package deployer

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nmdo/nmdo/internal/core/domain"
	"github.com/nmdo/nmdo/internal/shell/recordstore"
)

// =============================================================================
// Command Runner Interface
// =============================================================================

// CommandRunner dispatches a seed's bootstrap command. The orchestrator
// treats dispatch as fire-and-forget: a returned error is reported via the
// sink but does not change the run's outcome.
type CommandRunner interface {
	Run(ctx context.Context, command, dir string) error
}

// =============================================================================
// Deployment Orchestrator
// =============================================================================

// Orchestrator drives one full deployment run: seed lookup, module relation
// walk, per-module deployment, and bootstrap command dispatch. Everything
// is sequential and blocking; one module's failure does not abort the rest.
type Orchestrator struct {
	resolver *SeedResolver
	deployer *ModuleDeployer
	store    recordstore.Store
	runner   CommandRunner
	sink     Sink
}

// NewOrchestrator creates a new deployment orchestrator.
func NewOrchestrator(resolver *SeedResolver, dep *ModuleDeployer, store recordstore.Store, runner CommandRunner, sink Sink) *Orchestrator {
	if sink == nil {
		sink = NewNoopSink()
	}
	return &Orchestrator{
		resolver: resolver,
		deployer: dep,
		store:    store,
		runner:   runner,
		sink:     sink,
	}
}

// Run resolves a seed by name and deploys its modules into a workspace
// directory derived from the seed's display name, then dispatches the
// seed's bootstrap command, if any, with the workspace as working
// directory.
//
// A seed matching nothing ends the run with ErrSeedNotFound before any
// directory is created. A seed with zero linked modules ends the run with
// ErrNoLinkedModules; nothing is deployed and no command runs. Both are
// terminal; neither produces a report.
func (o *Orchestrator) Run(ctx context.Context, seedName string) (*domain.DeploymentReport, error) {
	started := time.Now()

	seed, err := o.resolver.FindByName(ctx, seedName)
	if err != nil {
		return nil, err
	}
	if seed == nil {
		return nil, domain.NewRecordError("Run", seedName, "no seed matches this name", domain.ErrSeedNotFound)
	}

	displayName := seed.Name
	if displayName == "" {
		displayName = seedName
	}
	o.sink.Emit(Event{Kind: EventSeedResolved, Seed: displayName, Count: len(seed.ModuleIDs)})

	workspace, err := filepath.Abs(domain.WorkspaceName(displayName))
	if err != nil {
		return nil, domain.NewRecordError("Run", displayName, "failed to resolve workspace path: "+err.Error(), err)
	}

	if len(seed.ModuleIDs) == 0 {
		o.sink.Emit(Event{Kind: EventNoLinkedModules, Seed: displayName})
		return nil, domain.NewRecordError("Run", displayName, "seed links no modules", domain.ErrNoLinkedModules)
	}

	o.sink.Emit(Event{Kind: EventWorkspaceReady, Seed: displayName, Path: workspace})
	o.previewModules(ctx, seed.ModuleIDs)

	report := &domain.DeploymentReport{
		RunID:     uuid.NewString(),
		SeedID:    seed.ID,
		SeedName:  displayName,
		Workspace: workspace,
		Command:   seed.Command,
		StartedAt: started,
	}

	for _, moduleID := range seed.ModuleIDs {
		o.sink.Emit(Event{Kind: EventModuleDeploying, Module: moduleID})
		report.Outcomes = append(report.Outcomes, o.deployOne(ctx, moduleID, workspace))
	}

	o.dispatchCommand(ctx, report)
	report.FinishedAt = time.Now()
	return report, nil
}

// previewModules reports each linked module's filename before deployment
// starts. A failed title lookup is skipped here; the deploy step will
// surface the real error.
func (o *Orchestrator) previewModules(ctx context.Context, moduleIDs []string) {
	for _, id := range moduleIDs {
		mod, err := o.store.GetModule(ctx, id)
		if err != nil {
			continue
		}
		o.sink.Emit(Event{Kind: EventModuleResolved, Module: id, Filename: mod.Filename})
	}
}

// deployOne converts a single deployment attempt into an outcome record.
// Per-module errors are absorbed here so the walk continues.
func (o *Orchestrator) deployOne(ctx context.Context, moduleID, workspace string) domain.ModuleOutcome {
	outcome := domain.ModuleOutcome{ModuleID: moduleID}

	path, err := o.deployer.Deploy(ctx, moduleID, workspace)
	switch {
	case err != nil:
		outcome.Status = domain.OutcomeFailed
		outcome.Err = err
		o.sink.Emit(Event{Kind: EventModuleFailed, Module: moduleID, Err: err})
	case path == "":
		outcome.Status = domain.OutcomeNoContent
	default:
		outcome.Status = domain.OutcomeDeployed
		outcome.Path = path
		outcome.Filename = filepath.Base(path)
	}
	return outcome
}

// dispatchCommand hands the seed's bootstrap command to the runner with the
// workspace as working directory. An empty command is a no-op. The command's
// exit status is reported, not interpreted.
func (o *Orchestrator) dispatchCommand(ctx context.Context, report *domain.DeploymentReport) {
	command := strings.TrimSpace(report.Command)
	if command == "" || o.runner == nil {
		return
	}

	err := o.runner.Run(ctx, command, report.Workspace)
	report.CommandDispatched = true
	if err != nil {
		o.sink.Emit(Event{Kind: EventCommandFailed, Command: command, Path: report.Workspace, Err: err})
		return
	}
	o.sink.Emit(Event{Kind: EventCommandDispatched, Command: command, Path: report.Workspace})
}
