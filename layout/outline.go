package layout

import (
	"fmt"
	"strings"

	"github.com/sureshkumar2704/Adobe-India-Hackathon-2025/model"
)

// FallbackRule produces a document title when no block classified as TITLE
// or H1 exists. Rules are tried in order until one returns ok. Keeping the
// strategies in a table keeps the builder data-driven: new document shapes
// get a new rule, not a new branch.
type FallbackRule struct {
	// Name identifies the rule in configuration and warnings
	Name string

	// Apply inspects the classified blocks and proposes a title
	Apply func(blocks []Block) (title string, ok bool)
}

// FirstLineFallback titles the document with the text of the first block on
// the first extracted page.
var FirstLineFallback = FallbackRule{
	Name: "first-line",
	Apply: func(blocks []Block) (string, bool) {
		if len(blocks) == 0 || len(blocks[0].Lines) == 0 {
			return "", false
		}
		text := strings.TrimSpace(blocks[0].Lines[0].Text)
		return text, text != ""
	},
}

// EmptyTitleFallback always succeeds with an empty title. It terminates the
// rule chain so every document gets a well-formed record.
var EmptyTitleFallback = FallbackRule{
	Name: "empty",
	Apply: func(blocks []Block) (string, bool) {
		return "", true
	},
}

// OutlineConfig holds configuration for outline building
type OutlineConfig struct {
	// TitleFallbacks are tried in order when no TITLE or H1 block exists
	TitleFallbacks []FallbackRule
}

// DefaultOutlineConfig returns sensible default configuration
func DefaultOutlineConfig() OutlineConfig {
	return OutlineConfig{
		TitleFallbacks: []FallbackRule{FirstLineFallback, EmptyTitleFallback},
	}
}

// OutlineBuilder turns classified blocks into a title and outline
type OutlineBuilder struct {
	config OutlineConfig
}

// NewOutlineBuilder creates a builder with default configuration
func NewOutlineBuilder() *OutlineBuilder {
	return &OutlineBuilder{
		config: DefaultOutlineConfig(),
	}
}

// NewOutlineBuilderWithConfig creates a builder with custom configuration
func NewOutlineBuilderWithConfig(config OutlineConfig) *OutlineBuilder {
	return &OutlineBuilder{
		config: config,
	}
}

// Build emits the document title and outline from classified blocks.
//
// The title is the earliest TITLE-level block, or the earliest H1 when no
// TITLE exists, or the first fallback rule that fires. The chosen block is
// excluded from the outline. Remaining TITLE-level blocks appear in the
// outline as H1, since the outline schema has no TITLE level. Entries whose
// text is empty after trimming are dropped and reported as warnings instead
// of corrupting the output.
func (b *OutlineBuilder) Build(layout *BlockLayout) (*model.Outline, []string) {
	var warnings []string
	outline := &model.Outline{Entries: []model.OutlineEntry{}}
	if layout == nil || len(layout.Blocks) == 0 {
		outline.Title = b.fallbackTitle(nil)
		return outline, nil
	}

	titleIdx := b.chooseTitleBlock(layout.Blocks)
	if titleIdx >= 0 {
		outline.Title = strings.TrimSpace(layout.Blocks[titleIdx].Text)
	} else {
		outline.Title = b.fallbackTitle(layout.Blocks)
	}

	for i, block := range layout.Blocks {
		if i == titleIdx || !b.includeInOutline(block.Level) {
			continue
		}

		text := strings.TrimSpace(block.Text)
		if text == "" {
			warnings = append(warnings, fmt.Sprintf("dropped empty %s heading on page %d", block.Level, block.Page))
			continue
		}

		level := block.Level
		if level == model.LevelTitle {
			level = model.LevelH1
		}

		outline.Entries = append(outline.Entries, model.OutlineEntry{
			Level: level,
			Text:  text,
			Page:  block.Page,
		})
	}

	return outline, warnings
}

// TitleBlock returns the index of the block Build would lift out as the
// document title, or -1 when the title would come from a fallback rule.
// Callers deriving per-heading views use it to stay consistent with the
// outline, which never contains the title.
func (b *OutlineBuilder) TitleBlock(layout *BlockLayout) int {
	if layout == nil {
		return -1
	}
	return b.chooseTitleBlock(layout.Blocks)
}

// chooseTitleBlock returns the index of the block whose text becomes the
// title, or -1 when no TITLE or H1 block exists. Blocks are already in
// reading order, so the first match is the earliest by page and position.
func (b *OutlineBuilder) chooseTitleBlock(blocks []Block) int {
	for i, block := range blocks {
		if block.Level == model.LevelTitle && strings.TrimSpace(block.Text) != "" {
			return i
		}
	}
	for i, block := range blocks {
		if block.Level == model.LevelH1 && strings.TrimSpace(block.Text) != "" {
			return i
		}
	}
	return -1
}

// includeInOutline reports whether a level belongs in the outline array
func (b *OutlineBuilder) includeInOutline(level model.Level) bool {
	return level != model.LevelBody
}

// fallbackTitle runs the configured rule chain
func (b *OutlineBuilder) fallbackTitle(blocks []Block) string {
	for _, rule := range b.config.TitleFallbacks {
		if title, ok := rule.Apply(blocks); ok {
			return title
		}
	}
	return ""
}
