package deployer

import (
	"context"
	"errors"

	"github.com/nmdo/nmdo/internal/core/domain"
	"github.com/nmdo/nmdo/internal/shell/recordstore"
)

// =============================================================================
// Test Fakes
// =============================================================================

// fakeStore is an in-memory recordstore.Store. Query pages are keyed by
// start cursor ("" for the first page) to simulate pagination.
type fakeStore struct {
	modules   map[string]*domain.Module
	blocks    map[string][]domain.Block
	moduleErr map[string]error
	blocksErr map[string]error

	pages    map[string]*recordstore.QueryPage
	queryErr error

	queries []recordstore.Query
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		modules:   map[string]*domain.Module{},
		blocks:    map[string][]domain.Block{},
		moduleErr: map[string]error{},
		blocksErr: map[string]error{},
		pages:     map[string]*recordstore.QueryPage{},
	}
}

func (s *fakeStore) addModule(id, filename, subPath string, blocks ...domain.Block) {
	s.modules[id] = &domain.Module{ID: id, Filename: filename, SubPath: subPath}
	s.blocks[id] = blocks
}

func (s *fakeStore) GetModule(ctx context.Context, pageID string) (*domain.Module, error) {
	if err := s.moduleErr[pageID]; err != nil {
		return nil, err
	}
	mod, ok := s.modules[pageID]
	if !ok {
		return nil, domain.NewRecordError("GetModule", pageID, "no such page", domain.ErrFetchFailed)
	}
	return mod, nil
}

func (s *fakeStore) GetBlocks(ctx context.Context, blockID string) ([]domain.Block, error) {
	if err := s.blocksErr[blockID]; err != nil {
		return nil, err
	}
	return s.blocks[blockID], nil
}

func (s *fakeStore) QueryDatabase(ctx context.Context, databaseID string, q recordstore.Query) (*recordstore.QueryPage, error) {
	s.queries = append(s.queries, q)
	if s.queryErr != nil {
		return nil, s.queryErr
	}
	page, ok := s.pages[q.StartCursor]
	if !ok {
		return &recordstore.QueryPage{}, nil
	}
	return page, nil
}

// recordingSink captures emitted events for assertions.
type recordingSink struct {
	events []Event
}

func (s *recordingSink) Emit(e Event) {
	s.events = append(s.events, e)
}

func (s *recordingSink) kinds() []EventKind {
	kinds := make([]EventKind, 0, len(s.events))
	for _, e := range s.events {
		kinds = append(kinds, e.Kind)
	}
	return kinds
}

func (s *recordingSink) count(kind EventKind) int {
	n := 0
	for _, e := range s.events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

// fakeRunner records dispatched commands.
type fakeRunner struct {
	commands []string
	dirs     []string
	err      error
}

func (r *fakeRunner) Run(ctx context.Context, command, dir string) error {
	r.commands = append(r.commands, command)
	r.dirs = append(r.dirs, dir)
	return r.err
}

var errBoom = errors.New("boom")
