package search

import (
	"context"
	"log"
	"math"
	"sort"
)

// Reranker orders results by embedding similarity to the query
type Reranker struct {
	provider EmbeddingsProvider
}

// NewReranker creates a reranker over provider
func NewReranker(provider EmbeddingsProvider) *Reranker {
	return &Reranker{provider: provider}
}

// Rerank returns results sorted by cosine similarity to query, most
// similar first. Ties keep their search engine order.
func (r *Reranker) Rerank(ctx context.Context, query string, results []Result) ([]Result, error) {
	if len(results) < 2 {
		return results, nil
	}

	texts := make([]string, 0, len(results)+1)
	texts = append(texts, query)
	for _, res := range results {
		texts = append(texts, res.Title+"\n"+res.Summary())
	}

	vectors, err := r.provider.EmbedTexts(ctx, texts)
	if err != nil {
		return nil, err
	}
	if len(vectors) != len(texts) {
		return nil, errCountMismatch
	}

	type scored struct {
		result Result
		score  float64
	}
	ranked := make([]scored, len(results))
	for i, res := range results {
		ranked[i] = scored{result: res, score: cosine(vectors[0], vectors[i+1])}
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].score > ranked[j].score })

	out := make([]Result, len(ranked))
	for i, s := range ranked {
		out[i] = s.result
	}
	return out, nil
}

func cosine(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

// Engine is the raw search backend
type Engine interface {
	Search(ctx context.Context, query string) ([]Result, error)
}

// ServiceConfig tunes the search pipeline
type ServiceConfig struct {
	Limit        int
	MaxPerDomain int
	Extractor    *Extractor // optional
	Reranker     *Reranker  // optional
}

// Service runs search, URL and domain dedup, optional rerank, truncation
// and optional page extraction, in that order.
type Service struct {
	engine Engine
	cfg    ServiceConfig
}

// NewService creates a search service
func NewService(engine Engine, cfg ServiceConfig) *Service {
	return &Service{engine: engine, cfg: cfg}
}

// Search implements the agent's web search
func (s *Service) Search(ctx context.Context, query string) ([]Result, error) {
	results, err := s.engine.Search(ctx, query)
	if err != nil {
		return nil, err
	}

	results = DedupByURL(results)
	if s.cfg.MaxPerDomain > 0 {
		results = DedupByDomain(results, s.cfg.MaxPerDomain)
	}

	if s.cfg.Reranker != nil {
		reranked, err := s.cfg.Reranker.Rerank(ctx, query, results)
		if err != nil {
			log.Printf("⚠️  Rerank failed, keeping engine order: %v", err)
		} else {
			results = reranked
		}
	}

	if s.cfg.Limit > 0 && len(results) > s.cfg.Limit {
		results = results[:s.cfg.Limit]
	}

	if s.cfg.Extractor != nil {
		s.cfg.Extractor.Enrich(results)
	}
	return results, nil
}
