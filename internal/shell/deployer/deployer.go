package deployer

import (
	"context"
	"os"
	"strings"

	"github.com/nmdo/nmdo/internal/core/deploy"
	"github.com/nmdo/nmdo/internal/core/domain"
	"github.com/nmdo/nmdo/internal/shell/recordstore"
)

// =============================================================================
// Module Deployer
// =============================================================================

// ModuleDeployer materializes single modules from the record store onto the
// local filesystem.
type ModuleDeployer struct {
	store recordstore.Store
	sink  Sink
}

// NewModuleDeployer creates a new module deployer.
func NewModuleDeployer(store recordstore.Store, sink Sink) *ModuleDeployer {
	if sink == nil {
		sink = NewNoopSink()
	}
	return &ModuleDeployer{store: store, sink: sink}
}

// Deploy fetches one module and writes its file under baseDir.
//
// The module's sub-path is sanitized before joining, so the write always
// lands at or below baseDir. The target directory is created along with any
// missing ancestors; pre-existing directories are not an error. An existing
// file at the target path is overwritten (last write wins).
//
// Returns the written file path, or "" when the module has no qualifying
// code block — a legitimate outcome, not an error. A missing or empty
// Reference title fails with ErrMalformedRecord; fetch failures propagate
// unretried.
func (d *ModuleDeployer) Deploy(ctx context.Context, moduleID, baseDir string) (string, error) {
	mod, err := d.store.GetModule(ctx, moduleID)
	if err != nil {
		return "", err
	}

	filename := strings.TrimSpace(mod.Filename)
	if filename == "" {
		return "", domain.NewRecordError("Deploy", moduleID, "module has no Reference title", domain.ErrMalformedRecord)
	}

	blocks, err := d.store.GetBlocks(ctx, moduleID)
	if err != nil {
		return "", err
	}

	dir, file := deploy.Target(baseDir, mod.SubPath, filename)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", domain.NewRecordError("Deploy", moduleID, "failed to create target directory: "+err.Error(), err)
	}

	res := deploy.ExtractCode(blocks)
	if res.EmptyBlocks > 0 {
		d.sink.Emit(Event{
			Kind:     EventEmptyCodeBlock,
			Module:   moduleID,
			Filename: filename,
			Count:    res.EmptyBlocks,
		})
	}

	if !res.Found {
		d.sink.Emit(Event{Kind: EventModuleNoContent, Module: moduleID, Filename: filename})
		return "", nil
	}

	if err := os.WriteFile(file, []byte(res.Content), 0o644); err != nil {
		return "", domain.NewRecordError("Deploy", moduleID, "failed to write file: "+err.Error(), err)
	}

	d.sink.Emit(Event{Kind: EventModuleDeployed, Module: moduleID, Filename: filename, Path: file})
	return file, nil
}
