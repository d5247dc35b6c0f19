package docparse

import (
	"github.com/sureshkumar2704/Adobe-India-Hackathon-2025/fields"
	"github.com/sureshkumar2704/Adobe-India-Hackathon-2025/layout"
	"github.com/sureshkumar2704/Adobe-India-Hackathon-2025/parser"
	"github.com/sureshkumar2704/Adobe-India-Hackathon-2025/rank"
)

// extractOptions holds the per-stage configuration carried along a chain
type extractOptions struct {
	parser  parser.Config
	line    layout.LineConfig
	block   layout.BlockConfig
	heading layout.HeadingConfig
	outline layout.OutlineConfig
	fields  fields.Config
	rank    rank.Config
}

func defaultOptions() extractOptions {
	return extractOptions{
		parser:  parser.DefaultConfig(),
		line:    layout.DefaultLineConfig(),
		block:   layout.DefaultBlockConfig(),
		heading: layout.DefaultHeadingConfig(),
		outline: layout.DefaultOutlineConfig(),
		fields:  fields.DefaultConfig(),
		rank:    rank.DefaultConfig(),
	}
}

// clone copies options, deep-copying the slices and maps that chains may
// append to.
func (o extractOptions) clone() extractOptions {
	c := o
	c.outline.TitleFallbacks = append([]layout.FallbackRule(nil), o.outline.TitleFallbacks...)
	if o.fields.Synonyms != nil {
		c.fields.Synonyms = make(map[string][]string, len(o.fields.Synonyms))
		for k, v := range o.fields.Synonyms {
			c.fields.Synonyms[k] = append([]string(nil), v...)
		}
	}
	return c
}

// WithParserConfig replaces the span-assembly configuration
func (e *Extractor) WithParserConfig(config parser.Config) *Extractor {
	ne := e.clone()
	ne.options.parser = config
	return ne
}

// WithLineConfig replaces the line-detection configuration
func (e *Extractor) WithLineConfig(config layout.LineConfig) *Extractor {
	ne := e.clone()
	ne.options.line = config
	return ne
}

// WithBlockConfig replaces the block-detection configuration
func (e *Extractor) WithBlockConfig(config layout.BlockConfig) *Extractor {
	ne := e.clone()
	ne.options.block = config
	return ne
}

// WithHeadingConfig replaces the heading-classification configuration
func (e *Extractor) WithHeadingConfig(config layout.HeadingConfig) *Extractor {
	ne := e.clone()
	ne.options.heading = config
	return ne
}

// WithTitleFallbacks replaces the title fallback rule chain
func (e *Extractor) WithTitleFallbacks(rules ...layout.FallbackRule) *Extractor {
	ne := e.clone()
	ne.options.outline.TitleFallbacks = rules
	return ne
}

// WithFieldConfig replaces the field-extraction synonym table and thresholds
func (e *Extractor) WithFieldConfig(config fields.Config) *Extractor {
	ne := e.clone()
	ne.options.fields = config
	return ne
}

// WithRankConfig replaces the ranking configuration used by Sections
// consumers downstream
func (e *Extractor) WithRankConfig(config rank.Config) *Extractor {
	ne := e.clone()
	ne.options.rank = config
	return ne
}
