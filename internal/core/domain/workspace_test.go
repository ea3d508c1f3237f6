package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// =============================================================================
// WorkspaceName Tests
// =============================================================================

func TestWorkspaceName_SeedConvention(t *testing.T) {
	got := WorkspaceName("_SEED, 2026-01-25 [Demo] (Create Folders)")
	assert.Equal(t, "Create Folders", got)
}

func TestWorkspaceName_NoParentheses(t *testing.T) {
	got := WorkspaceName("plain name")
	assert.Equal(t, "plain name", got)
}

func TestWorkspaceName_TableDriven(t *testing.T) {
	tests := []struct {
		name     string
		seedName string
		want     string
	}{
		{"convention", "_SEED, 2026-01-25 [Test] (Create Folders)", "Create Folders"},
		{"single_word", "_SEED (app)", "app"},
		{"multiple_parens_last_wins", "a (b) c (d)", "d"},
		{"no_parens", "just a name", "just a name"},
		{"unclosed_paren", "name (trailing", "trailing"},
		{"nested_parens", "x ((y))", "y"},
		{"spaces_inside", "x ( padded )", "padded"},
		{"empty_parens", "x ()", ""},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WorkspaceName(tt.seedName)
			assert.Equal(t, tt.want, got)
		})
	}
}
