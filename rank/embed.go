// Package rank scores document sections against a persona query and keeps
// the best matches. Scoring is embedding-based: query and sections are
// mapped into a fixed-dimension vector space and compared by cosine
// similarity.
package rank

import (
	"context"
	"hash/fnv"
	"math"
	"strings"
	"sync"
	"unicode"
)

// Embedder maps text into a fixed-dimension vector space. Implementations
// must be safe for concurrent calls or be wrapped in Serialized.
type Embedder interface {
	// Embed returns the vector for a text
	Embed(ctx context.Context, text string) ([]float32, error)

	// Dimensions returns the vector dimension
	Dimensions() int
}

// HashingEmbedder is a deterministic bag-of-words embedder. Tokens hash
// into a fixed number of buckets, term frequencies are dampened
// sublinearly, and the result is L2-normalized so cosine similarity
// reduces to a dot product. It holds no mutable state, so concurrent
// embedding calls are safe without locking.
type HashingEmbedder struct {
	dimensions int
}

// DefaultDimensions is the vector size of the default embedder
const DefaultDimensions = 256

// NewHashingEmbedder creates an embedder with the given dimension
func NewHashingEmbedder(dimensions int) *HashingEmbedder {
	if dimensions <= 0 {
		dimensions = DefaultDimensions
	}
	return &HashingEmbedder{dimensions: dimensions}
}

var (
	defaultEmbedder     *HashingEmbedder
	defaultEmbedderOnce sync.Once
)

// Default returns the process-wide shared embedder, created on first use.
// It is read-only after construction and shared freely across goroutines.
func Default() *HashingEmbedder {
	defaultEmbedderOnce.Do(func() {
		defaultEmbedder = NewHashingEmbedder(DefaultDimensions)
	})
	return defaultEmbedder
}

// Dimensions returns the vector dimension
func (e *HashingEmbedder) Dimensions() int {
	return e.dimensions
}

// Embed returns the normalized bag-of-words vector for a text. Identical
// input always produces an identical vector.
func (e *HashingEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	for _, token := range tokenize(text) {
		counts[token]++
	}

	vec := make([]float32, e.dimensions)
	for token, count := range counts {
		// Sublinear term frequency keeps repeated words from dominating.
		weight := 1.0 + math.Log(float64(count))
		vec[e.bucket(token)] += float32(weight)
	}

	normalize(vec)
	return vec, nil
}

// bucket hashes a token into a vector index
func (e *HashingEmbedder) bucket(token string) int {
	h := fnv.New32a()
	h.Write([]byte(token))
	return int(h.Sum32() % uint32(e.dimensions))
}

// tokenize lowercases text and splits it on anything that is not a letter
// or digit.
func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// normalize scales a vector to unit length in place
func normalize(vec []float32) {
	var sum float64
	for _, v := range vec {
		sum += float64(v) * float64(v)
	}
	if sum == 0 {
		return
	}
	norm := float32(math.Sqrt(sum))
	for i := range vec {
		vec[i] /= norm
	}
}

// CosineSimilarity returns the cosine of the angle between two vectors.
// Vectors of different lengths or zero magnitude score 0.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// Serialized wraps an embedder that is not safe for concurrent inference,
// funneling calls through a single slot while callers run in parallel.
type Serialized struct {
	mu    sync.Mutex
	inner Embedder
}

// NewSerialized wraps an embedder behind a lock
func NewSerialized(inner Embedder) *Serialized {
	return &Serialized{inner: inner}
}

// Embed forwards to the wrapped embedder one call at a time
func (s *Serialized) Embed(ctx context.Context, text string) ([]float32, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inner.Embed(ctx, text)
}

// Dimensions returns the wrapped embedder's dimension
func (s *Serialized) Dimensions() int {
	return s.inner.Dimensions()
}
