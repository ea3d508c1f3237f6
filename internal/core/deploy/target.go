package deploy

import "path/filepath"

// =============================================================================
// Deployment Target Computation
// =============================================================================

// Target computes the directory and full file path for a module write. The
// raw sub-path is sanitized before joining, so the returned directory always
// resolves at or below baseDir. The filename is the module's Reference
// title and is joined as authored.
func Target(baseDir, rawSubPath, filename string) (dir, file string) {
	dir = filepath.Join(baseDir, SanitizeSubPath(rawSubPath))
	file = filepath.Join(dir, filename)
	return dir, file
}
