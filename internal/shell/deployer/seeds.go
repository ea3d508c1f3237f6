package deployer

import (
	"context"

	"github.com/nmdo/nmdo/internal/core/domain"
	"github.com/nmdo/nmdo/internal/shell/recordstore"
)

// untitledSeed substitutes for seeds whose Reference title is empty.
const untitledSeed = "Untitled Seed"

// =============================================================================
// Seed Resolver
// =============================================================================

// SeedResolver locates seeds in the seed database.
type SeedResolver struct {
	store      recordstore.Store
	databaseID string
	sink       Sink
}

// NewSeedResolver creates a resolver bound to one seed database.
func NewSeedResolver(store recordstore.Store, databaseID string, sink Sink) *SeedResolver {
	if sink == nil {
		sink = NewNoopSink()
	}
	return &SeedResolver{store: store, databaseID: databaseID, sink: sink}
}

// FindByName issues one substring-filtered query on the Reference title and
// returns the first matching seed, or nil when none match. When several
// seeds match, the first one returned by the store wins silently; lookups
// are deliberately non-strict.
func (r *SeedResolver) FindByName(ctx context.Context, name string) (*domain.Seed, error) {
	page, err := r.store.QueryDatabase(ctx, r.databaseID, recordstore.Query{
		Filter: &recordstore.PropertyFilter{
			Property:  recordstore.PropertyReference,
			MatchKind: recordstore.MatchContains,
			Value:     name,
		},
	})
	if err != nil {
		return nil, err
	}

	r.sink.Emit(Event{Kind: EventSeedSearched, Seed: name, Count: len(page.Results)})

	if len(page.Results) == 0 {
		return nil, nil
	}
	seed := page.Results[0]
	return &seed, nil
}

// ListAll drains the store's pagination protocol and returns every seed
// summary in arrival order. Each seed appears exactly once. A response
// claiming more results without a continuation cursor terminates the
// listing with ErrPaginationProtocol rather than looping.
func (r *SeedResolver) ListAll(ctx context.Context) ([]domain.SeedSummary, error) {
	var seeds []domain.SeedSummary
	cursor := ""

	for {
		page, err := r.store.QueryDatabase(ctx, r.databaseID, recordstore.Query{StartCursor: cursor})
		if err != nil {
			return nil, err
		}

		for _, s := range page.Results {
			name := s.Name
			if name == "" {
				name = untitledSeed
			}
			seeds = append(seeds, domain.SeedSummary{ID: s.ID, Name: name})
		}

		if !page.HasMore {
			return seeds, nil
		}
		if page.NextCursor == "" {
			return nil, domain.NewRecordError("ListAll", r.databaseID,
				"store reports more results but returned no cursor", domain.ErrPaginationProtocol)
		}
		cursor = page.NextCursor
	}
}
