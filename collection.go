package docparse

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/sureshkumar2704/Adobe-India-Hackathon-2025/layout"
	"github.com/sureshkumar2704/Adobe-India-Hackathon-2025/output"
	"github.com/sureshkumar2704/Adobe-India-Hackathon-2025/rank"
)

// CollectionDocument is one member of a persona-ranking collection
type CollectionDocument struct {
	// Name identifies the document in output and errors
	Name string

	// Data is the raw PDF byte stream
	Data []byte
}

// Collection provides a fluent interface for persona ranking over several
// documents at once. Like Extractor, configuration methods return a new
// instance.
type Collection struct {
	docs     []CollectionDocument
	options  extractOptions
	embedder rank.Embedder
	workers  int
}

// NewCollection creates a Collection over the given documents
func NewCollection(docs ...CollectionDocument) *Collection {
	return &Collection{
		docs:    docs,
		options: defaultOptions(),
	}
}

// clone copies the collection for immutable chaining
func (c *Collection) clone() *Collection {
	return &Collection{
		docs:     append([]CollectionDocument(nil), c.docs...),
		options:  c.options.clone(),
		embedder: c.embedder,
		workers:  c.workers,
	}
}

// WithRankConfig replaces the ranking configuration
func (c *Collection) WithRankConfig(config rank.Config) *Collection {
	nc := c.clone()
	nc.options.rank = config
	return nc
}

// WithHeadingConfig replaces the heading-classification configuration used
// while segmenting each document
func (c *Collection) WithHeadingConfig(config layout.HeadingConfig) *Collection {
	nc := c.clone()
	nc.options.heading = config
	return nc
}

// WithEmbedder replaces the shared default embedder. Wrap embedders that
// are not safe for concurrent inference in rank.NewSerialized.
func (c *Collection) WithEmbedder(embedder rank.Embedder) *Collection {
	nc := c.clone()
	nc.embedder = embedder
	return nc
}

// WithWorkers caps how many documents are parsed and segmented
// concurrently during Rank. Values below 1 fall back to the number of
// available CPUs.
func (c *Collection) WithWorkers(workers int) *Collection {
	nc := c.clone()
	nc.workers = workers
	return nc
}

// Rank is the terminal operation: documents are parsed and segmented
// independently across a bounded pool of workers (see WithWorkers), the
// pooled sections are scored against the query, and the top matches
// become the persona-mode record.
// Per-document failures are isolated; they come back in the error slice
// while the surviving documents still rank.
func (c *Collection) Rank(ctx context.Context, query rank.PersonaQuery) (output.PersonaRecord, []Warning, []error) {
	type docResult struct {
		sections []rank.Section
		warnings []Warning
		err      error
	}

	workers := c.workers
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	if workers > len(c.docs) {
		workers = len(c.docs)
	}

	results := make([]docResult, len(c.docs))
	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup
	for i, doc := range c.docs {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, doc CollectionDocument) {
			defer func() {
				<-sem
				wg.Done()
			}()
			e := FromBytes(doc.Name, doc.Data)
			e.options = c.options.clone()
			sections, warnings, err := e.Sections(i)
			if err != nil {
				err = fmt.Errorf("%s: %w", doc.Name, err)
			}
			results[i] = docResult{sections: sections, warnings: warnings, err: err}
		}(i, doc)
	}
	wg.Wait()

	var (
		pooled   []rank.Section
		warnings []Warning
		errs     []error
	)
	// Collection order in, collection order out: stable input keeps the
	// ranker's tie-breaks deterministic.
	for _, r := range results {
		warnings = append(warnings, r.warnings...)
		if r.err != nil {
			errs = append(errs, r.err)
			continue
		}
		pooled = append(pooled, r.sections...)
	}

	embedder := c.embedder
	if embedder == nil {
		embedder = rank.Default()
	}

	ranked, err := rank.NewRankerWithConfig(c.options.rank, embedder).Rank(ctx, query, pooled)
	if err != nil {
		errs = append(errs, fmt.Errorf("ranking: %w", err))
		ranked = nil
	}

	names := make([]string, len(c.docs))
	for i, doc := range c.docs {
		names[i] = doc.Name
	}

	return output.Persona(query, names, ranked), warnings, errs
}
