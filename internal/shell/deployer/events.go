// Package deployer contains the imperative deployment pipeline: module
// materialization, seed resolution, and run orchestration.
package deployer

import "log/slog"

// =============================================================================
// Pipeline Events
// =============================================================================

// EventKind identifies a pipeline progress or diagnostic event.
type EventKind string

const (
	EventSeedSearched      EventKind = "seed.searched"
	EventSeedResolved      EventKind = "seed.resolved"
	EventWorkspaceReady    EventKind = "workspace.ready"
	EventNoLinkedModules   EventKind = "seed.no_linked_modules"
	EventModuleResolved    EventKind = "module.resolved"
	EventModuleDeploying   EventKind = "module.deploying"
	EventModuleDeployed    EventKind = "module.deployed"
	EventModuleNoContent   EventKind = "module.no_content"
	EventModuleFailed      EventKind = "module.failed"
	EventEmptyCodeBlock    EventKind = "module.empty_code_block"
	EventCommandDispatched EventKind = "command.dispatched"
	EventCommandFailed     EventKind = "command.failed"
)

// Event is one pipeline observation. Fields are populated as relevant to
// the kind; zero values mean "not applicable".
type Event struct {
	Kind     EventKind
	Seed     string
	Module   string
	Filename string
	Path     string
	Command  string
	Count    int
	Err      error
}

// Sink receives pipeline events. Implementations must not block the
// pipeline; emission is fire-and-forget from the pipeline's perspective.
type Sink interface {
	Emit(e Event)
}

// =============================================================================
// Log Sink
// =============================================================================

// LogSink emits pipeline events as structured log records.
type LogSink struct {
	logger *slog.Logger
}

// NewLogSink creates a sink that logs events via the given logger.
func NewLogSink(logger *slog.Logger) *LogSink {
	return &LogSink{logger: logger.With("component", "deployer")}
}

// Emit logs the event. Failures log at error level, diagnostics at warn,
// everything else at info.
func (s *LogSink) Emit(e Event) {
	attrs := make([]any, 0, 8)
	if e.Seed != "" {
		attrs = append(attrs, "seed", e.Seed)
	}
	if e.Module != "" {
		attrs = append(attrs, "module", e.Module)
	}
	if e.Filename != "" {
		attrs = append(attrs, "filename", e.Filename)
	}
	if e.Path != "" {
		attrs = append(attrs, "path", e.Path)
	}
	if e.Command != "" {
		attrs = append(attrs, "command", e.Command)
	}
	if e.Count > 0 {
		attrs = append(attrs, "count", e.Count)
	}
	if e.Err != nil {
		attrs = append(attrs, "error", e.Err)
	}

	switch e.Kind {
	case EventModuleFailed, EventCommandFailed:
		s.logger.Error(string(e.Kind), attrs...)
	case EventEmptyCodeBlock, EventNoLinkedModules, EventModuleNoContent:
		s.logger.Warn(string(e.Kind), attrs...)
	default:
		s.logger.Info(string(e.Kind), attrs...)
	}
}

// =============================================================================
// No-Op Sink (for tests and embedding)
// =============================================================================

// NoopSink discards all events.
type NoopSink struct{}

// NewNoopSink creates a sink that discards events.
func NewNoopSink() *NoopSink {
	return &NoopSink{}
}

// Emit does nothing.
func (s *NoopSink) Emit(Event) {}
