// Package recordstore provides the client for the remote hierarchical
// document store holding seed and module records.
package recordstore

import (
	"context"

	"github.com/nmdo/nmdo/internal/core/domain"
)

// Property names used by the seed and module databases.
const (
	// PropertyReference is the title property carrying a seed's display
	// name or a module's filename.
	PropertyReference = "Reference"

	// PropertyPath is the rich-text property carrying a module's optional
	// sub-path below the workspace root.
	PropertyPath = "Path"

	// PropertyModules is the relation property linking a seed to its
	// modules, in deployment order.
	PropertyModules = "Modules"

	// PropertyCommand is the rich-text property carrying a seed's optional
	// bootstrap command.
	PropertyCommand = "Command"
)

// MatchContains is the substring match kind for property filters.
const MatchContains = "contains"

// =============================================================================
// Store Interface
// =============================================================================

// Store defines the record store operations the pipeline consumes. Every
// call is a single attempt; retries, if any, belong to the implementation.
type Store interface {
	// GetModule retrieves a module page's destination metadata.
	GetModule(ctx context.Context, pageID string) (*domain.Module, error)

	// GetBlocks retrieves the child blocks of a page, in page order.
	GetBlocks(ctx context.Context, blockID string) ([]domain.Block, error)

	// QueryDatabase runs one query against a database and returns a single
	// page of seed records plus pagination state.
	QueryDatabase(ctx context.Context, databaseID string, q Query) (*QueryPage, error)
}

// =============================================================================
// Query Types
// =============================================================================

// PropertyFilter narrows a database query to records whose named title
// property matches a value.
type PropertyFilter struct {
	Property  string
	MatchKind string // only MatchContains is used
	Value     string
}

// Query describes one database query: an optional filter and an optional
// continuation cursor from a previous page.
type Query struct {
	Filter      *PropertyFilter
	StartCursor string
}

// QueryPage is one page of query results.
type QueryPage struct {
	Results []domain.Seed

	// HasMore indicates the store holds further pages. When true,
	// NextCursor carries the continuation cursor; a missing cursor is a
	// protocol violation the caller must treat as terminal.
	HasMore    bool
	NextCursor string
}
