package recordstore

import (
	"strings"

	"github.com/nmdo/nmdo/internal/core/domain"
)

// =============================================================================
// Wire Types
// =============================================================================

// The store's API returns loosely-typed documents. These payload types pin
// down the slices of the response shape the pipeline actually reads, and
// the conversion methods translate them into explicit domain records so the
// rest of the code never touches raw JSON.

// pagePayload is a page record as returned by the pages and query endpoints.
type pagePayload struct {
	ID         string                     `json:"id"`
	Properties map[string]propertyPayload `json:"properties"`
}

// propertyPayload covers the three property shapes in use: title,
// rich_text, and relation. Unused shapes stay nil.
type propertyPayload struct {
	Title    []richTextPayload `json:"title"`
	RichText []richTextPayload `json:"rich_text"`
	Relation []relationPayload `json:"relation"`
}

type richTextPayload struct {
	Text textPayload `json:"text"`
}

type textPayload struct {
	Content string `json:"content"`
}

type relationPayload struct {
	ID string `json:"id"`
}

// blockListPayload is the children listing of a page.
type blockListPayload struct {
	Results []blockPayload `json:"results"`
}

// blockPayload is a single child block. Code carries the block's text list
// only when Type is "code".
type blockPayload struct {
	Type string       `json:"type"`
	Code *codePayload `json:"code"`
}

type codePayload struct {
	Text []richTextPayload `json:"text"`
}

// queryResponsePayload is a database query response page.
type queryResponsePayload struct {
	Results    []pagePayload `json:"results"`
	HasMore    bool          `json:"has_more"`
	NextCursor *string       `json:"next_cursor"`
}

// =============================================================================
// Wire → Domain Conversion
// =============================================================================

// titleText returns the first title fragment of the named property, or ""
// when the property or its title list is absent.
func (p pagePayload) titleText(property string) string {
	return firstText(p.Properties[property].Title)
}

// richText returns the first rich-text fragment of the named property, or
// "" when absent.
func (p pagePayload) richText(property string) string {
	return firstText(p.Properties[property].RichText)
}

func firstText(fragments []richTextPayload) string {
	if len(fragments) == 0 {
		return ""
	}
	return fragments[0].Text.Content
}

// module converts a page payload into a module record. A missing Reference
// title yields an empty Filename; enforcement of the required-filename rule
// belongs to the deployer.
func (p pagePayload) module() *domain.Module {
	return &domain.Module{
		ID:       p.ID,
		Filename: strings.TrimSpace(p.titleText(PropertyReference)),
		SubPath:  strings.TrimSpace(p.richText(PropertyPath)),
	}
}

// seed converts a page payload into a seed record, preserving the store's
// relation order.
func (p pagePayload) seed() domain.Seed {
	relations := p.Properties[PropertyModules].Relation
	moduleIDs := make([]string, 0, len(relations))
	for _, rel := range relations {
		moduleIDs = append(moduleIDs, rel.ID)
	}

	return domain.Seed{
		ID:        p.ID,
		Name:      p.titleText(PropertyReference),
		ModuleIDs: moduleIDs,
		Command:   p.richText(PropertyCommand),
	}
}

// block converts a block payload into a domain block. Anything that is not
// a code block maps to BlockOther with no text.
func (b blockPayload) block() domain.Block {
	if b.Type != "code" || b.Code == nil {
		return domain.Block{Kind: domain.BlockOther}
	}
	return domain.Block{
		Kind: domain.BlockCode,
		Text: firstText(b.Code.Text),
	}
}
