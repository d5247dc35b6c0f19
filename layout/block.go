package layout

import (
	"sort"
	"strings"

	"github.com/sureshkumar2704/Adobe-India-Hackathon-2025/model"
)

// Block represents a group of consecutive lines that share font size and
// indentation with no large vertical gap between them. Blocks are the unit
// of heading classification.
type Block struct {
	// BBox is the union bounding box of the block's lines
	BBox model.BBox

	// Lines are the member lines (top to bottom)
	Lines []Line

	// Text is the assembled text, lines joined with single spaces
	Text string

	// Page is the 0-based page index of the first line
	Page int

	// Index is the block's position in page order (0-based)
	Index int

	// FontSize is the dominant font size of the block's lines
	FontSize float64

	// Bold is true when more than half the block's lines are bold
	Bold bool

	// Italic is true when more than half the block's lines are italic
	Italic bool

	// GapBefore is the vertical distance from the previous block on the same
	// page (0 for the first block on a page)
	GapBefore float64

	// Level is assigned later by the heading classifier
	Level model.Level
}

// BlockLayout represents the detected block structure of a document
type BlockLayout struct {
	// Blocks are the detected blocks across all pages, in reading order
	Blocks []Block

	// MedianLineGap is the document-wide median inter-line gap used to
	// derive the merge threshold
	MedianLineGap float64

	// Config is the configuration used for detection
	Config BlockConfig
}

// BlockConfig holds configuration for block detection
type BlockConfig struct {
	// GapMultiplier scales the median inter-line gap into the merge
	// threshold: lines merge when their gap is at most median times this
	// multiplier (default: 1.5)
	GapMultiplier float64

	// IndentTolerance is the maximum left-edge difference, in points, for
	// two lines to count as equally indented (default: 2.0)
	IndentTolerance float64

	// FontSizeTolerance is the maximum dominant font size difference, in
	// points, for two lines to merge (default: 0.5)
	FontSizeTolerance float64

	// FallbackGap is the merge threshold when a document has too few lines
	// to compute a median gap (default: 6 points)
	FallbackGap float64
}

// DefaultBlockConfig returns sensible default configuration
func DefaultBlockConfig() BlockConfig {
	return BlockConfig{
		GapMultiplier:     1.5,
		IndentTolerance:   2.0,
		FontSizeTolerance: 0.5,
		FallbackGap:       6.0,
	}
}

// BlockDetector merges lines into blocks
type BlockDetector struct {
	config BlockConfig
}

// NewBlockDetector creates a new block detector with default configuration
func NewBlockDetector() *BlockDetector {
	return &BlockDetector{
		config: DefaultBlockConfig(),
	}
}

// NewBlockDetectorWithConfig creates a block detector with custom configuration
func NewBlockDetectorWithConfig(config BlockConfig) *BlockDetector {
	return &BlockDetector{
		config: config,
	}
}

// Detect merges per-page line layouts into document-wide blocks. Two
// consecutive lines on the same page merge when their vertical gap is at
// most the dynamic threshold, their indentation matches, and their dominant
// font sizes match. A gap exactly equal to the threshold merges, so
// documents with perfectly uniform spacing produce deterministic results.
func (d *BlockDetector) Detect(pages []*LineLayout) *BlockLayout {
	var all []Line
	for _, page := range pages {
		if page == nil {
			continue
		}
		all = append(all, page.Lines...)
	}

	median := d.medianLineGap(all)
	threshold := median * d.config.GapMultiplier
	if threshold <= 0 {
		threshold = d.config.FallbackGap
	}

	var blocks []Block
	var current []Line

	flush := func() {
		if len(current) == 0 {
			return
		}
		blocks = append(blocks, d.buildBlock(current))
		current = nil
	}

	for _, line := range all {
		if len(current) == 0 {
			current = []Line{line}
			continue
		}

		prev := current[len(current)-1]
		if d.shouldMerge(prev, line, threshold) {
			current = append(current, line)
		} else {
			flush()
			current = []Line{line}
		}
	}
	flush()

	for i := range blocks {
		blocks[i].Index = i
		if i > 0 && blocks[i].Page == blocks[i-1].Page {
			blocks[i].GapBefore = lineGap(blocks[i-1].Lines[len(blocks[i-1].Lines)-1], blocks[i].Lines[0])
		}
	}

	return &BlockLayout{
		Blocks:        blocks,
		MedianLineGap: median,
		Config:        d.config,
	}
}

// shouldMerge decides whether line joins the block ending with prev
func (d *BlockDetector) shouldMerge(prev, line Line, threshold float64) bool {
	if line.Page != prev.Page {
		return false
	}

	gap := lineGap(prev, line)
	if gap < 0 || gap > threshold {
		return false
	}

	if absFloat64(line.Indentation-prev.Indentation) > d.config.IndentTolerance {
		return false
	}

	return absFloat64(line.FontSize-prev.FontSize) <= d.config.FontSizeTolerance
}

// buildBlock constructs a Block from its member lines
func (d *BlockDetector) buildBlock(lines []Line) Block {
	block := Block{
		Lines: lines,
		Page:  lines[0].Page,
		Level: model.LevelBody,
	}

	block.BBox = lines[0].BBox
	boldCount, italicCount := 0, 0
	var texts []string
	for i, line := range lines {
		if i > 0 {
			block.BBox = block.BBox.Union(line.BBox)
		}
		if line.Bold {
			boldCount++
		}
		if line.Italic {
			italicCount++
		}
		texts = append(texts, strings.TrimSpace(line.Text))
	}

	block.Text = strings.Join(texts, " ")
	block.FontSize = dominantLineFontSize(lines)
	block.Bold = boldCount*2 > len(lines)
	block.Italic = italicCount*2 > len(lines)

	return block
}

// medianLineGap computes the median vertical gap between consecutive lines
// on the same page across the whole document.
func (d *BlockDetector) medianLineGap(lines []Line) float64 {
	var gaps []float64
	for i := 1; i < len(lines); i++ {
		if lines[i].Page != lines[i-1].Page {
			continue
		}
		gap := lineGap(lines[i-1], lines[i])
		if gap > 0 {
			gaps = append(gaps, gap)
		}
	}
	if len(gaps) == 0 {
		return 0
	}
	sort.Float64s(gaps)
	mid := len(gaps) / 2
	if len(gaps)%2 == 0 {
		return (gaps[mid-1] + gaps[mid]) / 2
	}
	return gaps[mid]
}

// lineGap returns the vertical distance from the bottom of upper to the top
// of lower (baselines, Y decreasing down the page).
func lineGap(upper, lower Line) float64 {
	return upper.Baseline - (lower.Baseline + lower.BBox.Height)
}

// dominantLineFontSize returns the most frequent line font size weighted by
// text length; ties break toward the larger size.
func dominantLineFontSize(lines []Line) float64 {
	weights := make(map[float64]int)
	for _, line := range lines {
		weights[roundSize(line.FontSize)] += len(line.Text)
	}

	var best float64
	bestWeight := -1
	for size, w := range weights {
		if w > bestWeight || (w == bestWeight && size > best) {
			best = size
			bestWeight = w
		}
	}
	return best
}

// BlockCount returns the number of detected blocks
func (l *BlockLayout) BlockCount() int {
	if l == nil {
		return 0
	}
	return len(l.Blocks)
}

// BlocksOnPage returns the blocks on a specific page
func (l *BlockLayout) BlocksOnPage(page int) []Block {
	if l == nil {
		return nil
	}
	var result []Block
	for _, b := range l.Blocks {
		if b.Page == page {
			result = append(result, b)
		}
	}
	return result
}

// WordCount returns an approximate word count for the block
func (b *Block) WordCount() int {
	if b == nil || b.Text == "" {
		return 0
	}
	return len(strings.Fields(b.Text))
}

// IsShort reports whether the block is a single line with at most maxWords
// words, the shape of a typical heading.
func (b *Block) IsShort(maxWords int) bool {
	if b == nil {
		return false
	}
	return len(b.Lines) == 1 && b.WordCount() <= maxWords && b.WordCount() > 0
}
