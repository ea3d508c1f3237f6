package deploy

import (
	"path/filepath"
	"strings"
)

// =============================================================================
// Sub-Path Sanitization
// =============================================================================

// SanitizeSubPath maps an untrusted module sub-path onto a relative path
// that cannot escape the directory it is joined under.
//
// The transformation rules are:
//   - Surrounding whitespace and leading/trailing '/' and '\' are stripped
//   - The remainder is cleaned lexically (redundant separators and '.'/'..'
//     segments collapsed); no filesystem access happens
//   - A result that still begins with a parent-traversal segment collapses
//     to "." (the workspace root) instead of propagating the escape
//
// Every input maps to a safe relative path; there are no error cases.
//
// Example:
//
//	SanitizeSubPath("src/utils")   // "src/utils"
//	SanitizeSubPath("/src//api/")  // "src/api"
//	SanitizeSubPath("../../etc")   // "."
//	SanitizeSubPath("")            // "."
func SanitizeSubPath(raw string) string {
	trimmed := strings.Trim(strings.TrimSpace(raw), "/\\")
	if trimmed == "" {
		return "."
	}

	clean := filepath.Clean(trimmed)
	if clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "."
	}
	return clean
}
