// Package deploy provides pure functions for module deployment planning.
//
// All functions here are free of I/O and side effects: the imperative shell
// (internal/shell/deployer) uses them to decide where a module's file goes
// and what its content is, then performs the filesystem work.
//
// # Functions
//
//   - SanitizeSubPath: Map an untrusted sub-path onto a safe relative path
//   - ExtractCode: Select a module's content from its child blocks
//   - Target: Compute the directory and file path for a module write
package deploy
