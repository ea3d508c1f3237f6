package domain

import "time"

// =============================================================================
// Store Records
// =============================================================================

// Seed is a blueprint record naming a set of modules and an optional
// bootstrap command. Seeds are read-only from this system's perspective.
type Seed struct {
	// ID is the opaque identifier assigned by the remote store.
	ID string

	// Name is the human-readable display title (the Reference property),
	// used as the lookup key via substring match.
	Name string

	// ModuleIDs is the ordered list of linked module page IDs. Store order
	// is preserved and determines deployment order.
	ModuleIDs []string

	// Command is an optional shell command to run after all modules deploy.
	Command string
}

// SeedSummary is a {name, id} pair returned by seed listings.
type SeedSummary struct {
	ID   string
	Name string
}

// Module is a record holding one file's destination metadata. Its embedded
// source text lives in the page's child blocks.
type Module struct {
	// ID is the opaque identifier assigned by the remote store.
	ID string

	// Filename is the Reference title. Required; an empty filename makes the
	// record malformed for deployment purposes.
	Filename string

	// SubPath is an optional relative path below the workspace root. It is
	// untrusted input and must pass through sanitization before use.
	SubPath string
}

// BlockKind classifies a child block of a page.
type BlockKind string

const (
	// BlockCode is a code block; the only kind inspected for content.
	BlockCode BlockKind = "code"

	// BlockOther covers every other block type.
	BlockOther BlockKind = "other"
)

// Block is a typed child element of a page.
type Block struct {
	Kind BlockKind
	Text string
}

// =============================================================================
// Deployment Outcomes
// =============================================================================

// OutcomeStatus is the per-module result of a deployment attempt.
type OutcomeStatus string

const (
	// OutcomeDeployed means the module's file was written.
	OutcomeDeployed OutcomeStatus = "deployed"

	// OutcomeNoContent means the module had no qualifying code block.
	// No file was written; this is a legitimate, non-fatal outcome.
	OutcomeNoContent OutcomeStatus = "no_content"

	// OutcomeFailed means the module deployment failed. Subsequent modules
	// in the same run are unaffected.
	OutcomeFailed OutcomeStatus = "failed"
)

// ModuleOutcome records the result of deploying one module.
type ModuleOutcome struct {
	ModuleID string
	Filename string
	Path     string // written file path; empty unless deployed
	Status   OutcomeStatus
	Err      error // set when Status is OutcomeFailed
}

// DeploymentReport aggregates the results of one orchestrated run.
type DeploymentReport struct {
	RunID             string
	SeedID            string
	SeedName          string
	Workspace         string
	Outcomes          []ModuleOutcome
	Command           string
	CommandDispatched bool
	StartedAt         time.Time
	FinishedAt        time.Time
}

// Deployed returns the number of modules that produced a file.
func (r *DeploymentReport) Deployed() int {
	return r.count(OutcomeDeployed)
}

// Failed returns the number of modules whose deployment failed.
func (r *DeploymentReport) Failed() int {
	return r.count(OutcomeFailed)
}

// NoContent returns the number of modules with no qualifying code block.
func (r *DeploymentReport) NoContent() int {
	return r.count(OutcomeNoContent)
}

func (r *DeploymentReport) count(status OutcomeStatus) int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Status == status {
			n++
		}
	}
	return n
}
