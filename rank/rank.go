package rank

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

// PersonaQuery describes who is reading and what they need to do
type PersonaQuery struct {
	// Persona is the reader's role, e.g. "PhD researcher"
	Persona string

	// Job is the task to accomplish, e.g. "summarize methodology sections"
	Job string
}

// QueryText builds the single string embedded on the query side
func (q PersonaQuery) QueryText() string {
	return strings.TrimSpace(q.Persona + " " + q.Job)
}

// Section is one ranking candidate: a heading plus the body text that
// follows it, from one document in the collection.
type Section struct {
	// Document is the source document name
	Document string

	// DocIndex is the document's position in the collection, used for
	// tie-breaking
	DocIndex int

	// Page is the 0-based page where the section's heading starts
	Page int

	// Title is the heading text
	Title string

	// Body is the text of the block(s) following the heading
	Body string
}

// text returns the string embedded for the section
func (s Section) text() string {
	return strings.TrimSpace(s.Title + " " + s.Body)
}

// RankedSection is a retained candidate with its final rank and summary
type RankedSection struct {
	Section

	// Rank is 1-based, 1 for the best match
	Rank int

	// Score is the cosine similarity against the query, clamped to [0, 1]
	Score float64

	// Summary is a sentence-boundary-aware condensation of the body
	Summary string
}

// Config holds configuration for ranking
type Config struct {
	// TopK is the number of sections retained (default: 5)
	TopK int

	// SummaryMaxLength is the character budget for section summaries
	// (default: 700)
	SummaryMaxLength int
}

// DefaultConfig returns sensible default configuration
func DefaultConfig() Config {
	return Config{
		TopK:             5,
		SummaryMaxLength: 700,
	}
}

// Ranker orders sections by relevance to a persona query
type Ranker struct {
	config   Config
	embedder Embedder
}

// NewRanker creates a ranker using the shared default embedder
func NewRanker() *Ranker {
	return NewRankerWithConfig(DefaultConfig(), Default())
}

// NewRankerWithConfig creates a ranker with custom configuration and embedder
func NewRankerWithConfig(config Config, embedder Embedder) *Ranker {
	if config.TopK <= 0 {
		config.TopK = DefaultConfig().TopK
	}
	if config.SummaryMaxLength <= 0 {
		config.SummaryMaxLength = DefaultConfig().SummaryMaxLength
	}
	return &Ranker{config: config, embedder: embedder}
}

// Rank scores every section against the query and returns the top entries
// by descending similarity. Equal scores break toward the shorter section
// text, then the earlier document, then the earlier page. Fewer candidates
// than TopK returns them all, ranked, without padding.
func (r *Ranker) Rank(ctx context.Context, query PersonaQuery, sections []Section) ([]RankedSection, error) {
	if len(sections) == 0 {
		return []RankedSection{}, nil
	}

	queryVec, err := r.embedder.Embed(ctx, query.QueryText())
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}

	scored := make([]RankedSection, 0, len(sections))
	for _, section := range sections {
		vec, err := r.embedder.Embed(ctx, section.text())
		if err != nil {
			return nil, fmt.Errorf("embedding section %q from %s: %w", section.Title, section.Document, err)
		}
		scored = append(scored, RankedSection{
			Section: section,
			Score:   clampScore(CosineSimilarity(queryVec, vec)),
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		a, b := scored[i], scored[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if la, lb := len(a.text()), len(b.text()); la != lb {
			return la < lb
		}
		if a.DocIndex != b.DocIndex {
			return a.DocIndex < b.DocIndex
		}
		return a.Page < b.Page
	})

	if len(scored) > r.config.TopK {
		scored = scored[:r.config.TopK]
	}

	for i := range scored {
		scored[i].Rank = i + 1
		scored[i].Summary = Summarize(scored[i].Body, r.config.SummaryMaxLength)
	}

	return scored, nil
}

// clampScore pins a similarity into [0, 1]. The hashing embedder only
// produces non-negative components, but external embedders can emit
// vectors whose cosine goes negative.
func clampScore(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}
