package layout

import (
	"sort"

	"github.com/sureshkumar2704/Adobe-India-Hackathon-2025/model"
)

// HeadingConfig holds configuration for heading classification
type HeadingConfig struct {
	// MaxLevels is the number of heading bins below TITLE (default: 4,
	// producing H1 through H4)
	MaxLevels int

	// PromoteEmphasis enables promoting emphasized body-sized blocks that
	// look like standalone sub-headings (default: true)
	PromoteEmphasis bool

	// PromotionMaxWords is the word cap for a block to qualify for
	// emphasis promotion (default: 12)
	PromotionMaxWords int

	// PromotionMinGap is the minimum vertical gap before a block, as a
	// multiple of the document's median line gap, for it to count as
	// standalone (default: 1.0)
	PromotionMinGap float64
}

// DefaultHeadingConfig returns sensible default configuration
func DefaultHeadingConfig() HeadingConfig {
	return HeadingConfig{
		MaxLevels:         4,
		PromoteEmphasis:   true,
		PromotionMaxWords: 12,
		PromotionMinGap:   1.0,
	}
}

// HeadingClassifier assigns a heading level to every block
type HeadingClassifier struct {
	config HeadingConfig
}

// NewHeadingClassifier creates a classifier with default configuration
func NewHeadingClassifier() *HeadingClassifier {
	return &HeadingClassifier{
		config: DefaultHeadingConfig(),
	}
}

// NewHeadingClassifierWithConfig creates a classifier with custom configuration
func NewHeadingClassifierWithConfig(config HeadingConfig) *HeadingClassifier {
	return &HeadingClassifier{
		config: config,
	}
}

// Classify assigns levels to blocks in place. The dominant font size by
// text volume anchors BODY; distinct sizes strictly larger than it are
// walked in descending order, the largest mapping to TITLE and the next
// MaxLevels sizes to H1 downward. Sizes beyond the available bins, and
// everything at or below the body size, stay BODY. A document with a
// single font size therefore has no headings at all.
func (c *HeadingClassifier) Classify(layout *BlockLayout) {
	if layout == nil || len(layout.Blocks) == 0 {
		return
	}

	bodySize := c.bodyFontSize(layout.Blocks)
	bins := c.sizeBins(layout.Blocks, bodySize)

	for i := range layout.Blocks {
		block := &layout.Blocks[i]
		if level, ok := bins[roundSize(block.FontSize)]; ok {
			block.Level = level
		} else {
			block.Level = model.LevelBody
		}
	}

	if c.config.PromoteEmphasis {
		c.promoteEmphasized(layout)
	}
}

// bodyFontSize returns the font size carrying the most text across the
// document. Ties break toward the smaller size so sparse large print never
// claims the body role.
func (c *HeadingClassifier) bodyFontSize(blocks []Block) float64 {
	weights := make(map[float64]int)
	for _, b := range blocks {
		weights[roundSize(b.FontSize)] += len(b.Text)
	}

	var body float64
	bestWeight := -1
	for size, w := range weights {
		if w > bestWeight || (w == bestWeight && size < body) {
			body = size
			bestWeight = w
		}
	}
	return body
}

// sizeBins maps each heading-sized font size to its level
func (c *HeadingClassifier) sizeBins(blocks []Block, bodySize float64) map[float64]model.Level {
	seen := make(map[float64]bool)
	var sizes []float64
	for _, b := range blocks {
		size := roundSize(b.FontSize)
		if size > bodySize && !seen[size] {
			seen[size] = true
			sizes = append(sizes, size)
		}
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(sizes)))

	bins := make(map[float64]model.Level, len(sizes))
	for i, size := range sizes {
		switch {
		case i == 0:
			bins[size] = model.LevelTitle
		case i <= c.config.MaxLevels:
			bins[size] = headingForDepth(i)
		default:
			// More distinct sizes than bins; the smallest stay body text.
		}
	}
	return bins
}

// headingForDepth maps bin depth 1..4 to H1..H4
func headingForDepth(depth int) model.Level {
	switch depth {
	case 1:
		return model.LevelH1
	case 2:
		return model.LevelH2
	case 3:
		return model.LevelH3
	default:
		return model.LevelH4
	}
}

// promoteEmphasized promotes bold or italic body blocks that look like
// standalone sub-headings: a single short line set apart by vertical space.
// Promotion targets one level deeper than the deepest assigned heading and
// never passes H4. Documents with no size-based headings are left alone so
// the single-font-size degenerate case keeps its empty outline.
func (c *HeadingClassifier) promoteEmphasized(layout *BlockLayout) {
	deepest := model.LevelTitle
	found := false
	for _, b := range layout.Blocks {
		if b.Level != model.LevelBody {
			if !found || b.Level < deepest {
				deepest = b.Level
			}
			found = true
		}
	}
	if !found {
		return
	}

	target := deepest.Deeper()

	minGap := layout.MedianLineGap * c.config.PromotionMinGap
	for i := range layout.Blocks {
		block := &layout.Blocks[i]
		if block.Level != model.LevelBody {
			continue
		}
		if !block.Bold && !block.Italic {
			continue
		}
		if !block.IsShort(c.config.PromotionMaxWords) {
			continue
		}
		if block.GapBefore > 0 && block.GapBefore < minGap {
			continue
		}
		block.Level = target
	}
}
