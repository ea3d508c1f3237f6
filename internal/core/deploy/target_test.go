package deploy

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

// =============================================================================
// Target Tests
// =============================================================================

func TestTarget_WithSubPath(t *testing.T) {
	dir, file := Target("/workspace/app", "src/utils", "a.txt")

	assert.Equal(t, filepath.Join("/workspace/app", "src/utils"), dir)
	assert.Equal(t, filepath.Join("/workspace/app", "src/utils", "a.txt"), file)
}

func TestTarget_EmptySubPath(t *testing.T) {
	dir, file := Target("/workspace/app", "", "main.go")

	assert.Equal(t, "/workspace/app", dir)
	assert.Equal(t, filepath.Join("/workspace/app", "main.go"), file)
}

func TestTarget_EscapingSubPathCollapsesToRoot(t *testing.T) {
	dir, file := Target("/workspace/app", "../../etc", "passwd")

	assert.Equal(t, "/workspace/app", dir)
	assert.Equal(t, filepath.Join("/workspace/app", "passwd"), file)
}

func TestTarget_TableDriven(t *testing.T) {
	base := "/base"
	tests := []struct {
		name     string
		subPath  string
		filename string
		wantDir  string
	}{
		{"plain", "src", "a.txt", "/base/src"},
		{"nested", "src/api/v1", "handler.go", "/base/src/api/v1"},
		{"leading_slash", "/src", "a.txt", "/base/src"},
		{"escape", "../..", "a.txt", "/base"},
		{"empty", "", "a.txt", "/base"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir, file := Target(base, tt.subPath, tt.filename)
			assert.Equal(t, tt.wantDir, dir)
			assert.Equal(t, filepath.Join(tt.wantDir, tt.filename), file)
		})
	}
}
