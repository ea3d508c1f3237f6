package domain

import "strings"

// =============================================================================
// Workspace Naming
// =============================================================================

// WorkspaceName extracts the workspace directory name from a seed display
// name. Seed names follow the convention
//
//	_SEED, YYYY-MM-DD [App Name] (Description)
//
// and the workspace takes the text between the last '(' and the closing ')'.
// A name without parentheses is used whole. This is a pure function; the
// result may be empty when the name is empty.
//
// Example:
//
//	WorkspaceName("_SEED, 2026-01-25 [Demo] (Create Folders)") // "Create Folders"
//	WorkspaceName("plain name")                                // "plain name"
func WorkspaceName(seedName string) string {
	name := seedName
	if i := strings.LastIndex(name, "("); i >= 0 {
		name = name[i+1:]
	}
	name = strings.TrimRight(strings.TrimSpace(name), ")")
	return strings.TrimSpace(name)
}
