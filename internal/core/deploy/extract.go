package deploy

import "github.com/nmdo/nmdo/internal/core/domain"

// =============================================================================
// Code Extraction
// =============================================================================

// ExtractResult is the outcome of scanning a module's child blocks.
type ExtractResult struct {
	// Content is the text of the first code block with non-empty text.
	// Empty unless Found is true.
	Content string

	// Found indicates whether any qualifying code block exists.
	Found bool

	// EmptyBlocks counts code blocks with empty text that were skipped
	// before the scan stopped. Reported so callers can surface warnings.
	EmptyBlocks int
}

// ExtractCode scans blocks in store order and selects the text of the first
// block whose kind is code and whose text is non-empty. Empty code blocks
// are skipped (and counted) without aborting the scan; non-code blocks are
// ignored. The scan stops at the first qualifying block.
func ExtractCode(blocks []domain.Block) ExtractResult {
	var res ExtractResult
	for _, b := range blocks {
		if b.Kind != domain.BlockCode {
			continue
		}
		if b.Text == "" {
			res.EmptyBlocks++
			continue
		}
		res.Content = b.Text
		res.Found = true
		return res
	}
	return res
}
