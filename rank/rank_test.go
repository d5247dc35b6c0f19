package rank

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashingEmbedderDeterministic(t *testing.T) {
	e := NewHashingEmbedder(128)
	ctx := context.Background()

	a, err := e.Embed(ctx, "research methodology and data analysis")
	require.NoError(t, err)
	b, err := e.Embed(ctx, "research methodology and data analysis")
	require.NoError(t, err)

	assert.Equal(t, a, b, "identical input must embed identically")
	assert.Len(t, a, 128)
}

func TestHashingEmbedderNormalized(t *testing.T) {
	e := NewHashingEmbedder(64)
	vec, err := e.Embed(context.Background(), "some words to embed")
	require.NoError(t, err)

	var sum float64
	for _, v := range vec {
		sum += float64(v) * float64(v)
	}
	assert.InDelta(t, 1.0, sum, 1e-5, "embedding must be unit length")
}

func TestHashingEmbedderEmptyText(t *testing.T) {
	e := NewHashingEmbedder(64)
	vec, err := e.Embed(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, vec, 64)

	assert.Zero(t, CosineSimilarity(vec, vec), "zero vector has no similarity")
}

func TestHashingEmbedderCancelledContext(t *testing.T) {
	e := NewHashingEmbedder(64)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := e.Embed(ctx, "text")
	assert.Error(t, err)
}

func TestDefaultEmbedderShared(t *testing.T) {
	assert.Same(t, Default(), Default(), "Default must return the shared instance")
	assert.Equal(t, DefaultDimensions, Default().Dimensions())
}

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b []float32
		want float64
	}{
		{"identical", []float32{1, 0, 0}, []float32{1, 0, 0}, 1},
		{"orthogonal", []float32{1, 0}, []float32{0, 1}, 0},
		{"mismatched length", []float32{1}, []float32{1, 0}, 0},
		{"zero vector", []float32{0, 0}, []float32{1, 1}, 0},
		{"empty", nil, nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, CosineSimilarity(tt.a, tt.b), 1e-9)
		})
	}
}

func makeSection(doc string, docIndex, page int, title, body string) Section {
	return Section{
		Document: doc,
		DocIndex: docIndex,
		Page:     page,
		Title:    title,
		Body:     body,
	}
}

func TestRankPrefersMatchingSections(t *testing.T) {
	r := NewRanker()
	query := PersonaQuery{
		Persona: "PhD researcher",
		Job:     "summarize methodology sections",
	}

	sections := []Section{
		makeSection("a.pdf", 0, 3, "Methodology", "the methodology used for data collection and analysis of the research"),
		makeSection("a.pdf", 0, 9, "Acknowledgements", "we thank our families and funding agencies for their support"),
		makeSection("b.pdf", 1, 2, "Methodology", "our research methodology follows a mixed methods approach"),
		makeSection("c.pdf", 2, 4, "Methodology", "sections describing the methodology of the experiments"),
		makeSection("c.pdf", 2, 8, "References", "a list of cited works and further reading"),
	}

	ranked, err := r.Rank(context.Background(), query, sections)
	require.NoError(t, err)
	require.Len(t, ranked, 5)

	for i, rs := range ranked[:3] {
		assert.Equal(t, "Methodology", rs.Title, "rank %d should be a methodology section", i+1)
	}
}

func TestRankScoresNonIncreasing(t *testing.T) {
	r := NewRanker()
	sections := []Section{
		makeSection("a.pdf", 0, 0, "Results", "experimental results and findings"),
		makeSection("a.pdf", 0, 1, "Methodology", "research methodology description"),
		makeSection("b.pdf", 1, 0, "Introduction", "background and motivation"),
	}

	ranked, err := r.Rank(context.Background(), PersonaQuery{Persona: "researcher", Job: "find methodology"}, sections)
	require.NoError(t, err)

	for i := 1; i < len(ranked); i++ {
		assert.GreaterOrEqual(t, ranked[i-1].Score, ranked[i].Score)
	}
	for i, rs := range ranked {
		assert.Equal(t, i+1, rs.Rank)
	}
}

func TestRankTopKBound(t *testing.T) {
	r := NewRanker()
	query := PersonaQuery{Persona: "reader", Job: "anything"}

	var sections []Section
	for i := 0; i < 8; i++ {
		sections = append(sections, makeSection("d.pdf", 0, i, "Section", "some body text here"))
	}

	ranked, err := r.Rank(context.Background(), query, sections)
	require.NoError(t, err)
	assert.Len(t, ranked, 5, "only the top 5 are retained")
}

func TestRankFewerCandidatesThanTopK(t *testing.T) {
	r := NewRanker()
	sections := []Section{
		makeSection("a.pdf", 0, 0, "Only Section", "the one and only candidate"),
	}

	ranked, err := r.Rank(context.Background(), PersonaQuery{Persona: "p", Job: "j"}, sections)
	require.NoError(t, err)
	require.Len(t, ranked, 1, "no padding below the candidate count")
	assert.Equal(t, 1, ranked[0].Rank)
}

func TestRankEmptyInput(t *testing.T) {
	r := NewRanker()
	ranked, err := r.Rank(context.Background(), PersonaQuery{Persona: "p", Job: "j"}, nil)
	require.NoError(t, err)
	assert.Empty(t, ranked)
}

// signEmbedder flips the vector for texts containing "contrary" so the
// cosine against the query goes negative
type signEmbedder struct{}

func (signEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if strings.Contains(text, "contrary") {
		return []float32{-1, 0}, nil
	}
	return []float32{1, 0}, nil
}

func (signEmbedder) Dimensions() int { return 2 }

func TestRankClampsScores(t *testing.T) {
	r := NewRankerWithConfig(DefaultConfig(), signEmbedder{})
	sections := []Section{
		makeSection("a.pdf", 0, 0, "Aligned", "body text"),
		makeSection("a.pdf", 0, 1, "Opposed", "contrary body"),
	}

	ranked, err := r.Rank(context.Background(), PersonaQuery{Persona: "p", Job: "j"}, sections)
	require.NoError(t, err)
	require.Len(t, ranked, 2)

	for _, rs := range ranked {
		assert.GreaterOrEqual(t, rs.Score, 0.0)
		assert.LessOrEqual(t, rs.Score, 1.0)
	}
	assert.Equal(t, "Aligned", ranked[0].Title)
	assert.Zero(t, ranked[1].Score, "a negative cosine reports as 0")
}

// constEmbedder maps every text to the same vector so all scores tie
type constEmbedder struct{}

func (constEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	return []float32{1, 0}, nil
}

func (constEmbedder) Dimensions() int { return 2 }

func TestRankTieBreaks(t *testing.T) {
	r := NewRankerWithConfig(DefaultConfig(), constEmbedder{})
	// Every section ties on score, so the order is decided purely by the
	// tie-break chain: shorter text, then earlier document, then earlier page.
	sections := []Section{
		makeSection("b.pdf", 1, 0, "Gamma", "xx"),
		makeSection("a.pdf", 0, 5, "Betaa", "xx"),
		makeSection("a.pdf", 0, 2, "Al", ""),
		makeSection("a.pdf", 0, 7, "Cc", "x"),
		makeSection("a.pdf", 0, 3, "Dd", "x"),
	}

	ranked, err := r.Rank(context.Background(), PersonaQuery{Persona: "p", Job: "j"}, sections)
	require.NoError(t, err)
	require.Len(t, ranked, 5)

	want := []string{"Al", "Dd", "Cc", "Betaa", "Gamma"}
	for i, title := range want {
		assert.Equal(t, title, ranked[i].Title, "position %d", i)
	}
}

func TestRankSummariesRespectBudget(t *testing.T) {
	config := DefaultConfig()
	config.SummaryMaxLength = 40
	r := NewRankerWithConfig(config, Default())

	sections := []Section{
		makeSection("a.pdf", 0, 0, "Methods",
			"First sentence stays whole. Second sentence pushes well past the budget and is dropped."),
	}

	ranked, err := r.Rank(context.Background(), PersonaQuery{Persona: "p", Job: "methods"}, sections)
	require.NoError(t, err)
	require.Len(t, ranked, 1)
	assert.Equal(t, "First sentence stays whole.", ranked[0].Summary)
}

func TestQueryText(t *testing.T) {
	q := PersonaQuery{Persona: "Travel planner", Job: "plan a trip"}
	assert.Equal(t, "Travel planner plan a trip", q.QueryText())

	empty := PersonaQuery{}
	assert.Equal(t, "", empty.QueryText())
}
