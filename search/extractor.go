package search

import (
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	readability "github.com/go-shiori/go-readability"
)

// Extractor pulls readable page text for search results using a worker pool
type Extractor struct {
	workers   int
	timeout   time.Duration
	maxLength int
}

// NewExtractor creates an extractor
func NewExtractor(workers int, timeout time.Duration, maxLength int) *Extractor {
	if workers <= 0 {
		workers = 1
	}
	return &Extractor{workers: workers, timeout: timeout, maxLength: maxLength}
}

// Enrich fills Excerpt for each result in place. A page that cannot be
// extracted keeps its search snippet and records ExtractionError.
func (e *Extractor) Enrich(results []Result) {
	var wg sync.WaitGroup
	jobs := make(chan *Result, len(results))

	for i := 0; i < e.workers; i++ {
		go func(workerID int) {
			for r := range jobs {
				if err := e.extract(r); err != nil {
					r.ExtractionError = err.Error()
					log.Printf("[Worker %d] Failed to extract %s: %v", workerID, r.URL, err)
				}
				wg.Done()
			}
		}(i)
	}

	for i := range results {
		wg.Add(1)
		jobs <- &results[i]
	}

	wg.Wait()
	close(jobs)
}

func (e *Extractor) extract(r *Result) error {
	if r.URL == "" {
		return fmt.Errorf("result URL is empty")
	}

	article, err := readability.FromURL(r.URL, e.timeout)
	if err != nil {
		return fmt.Errorf("readability extraction failed: %w", err)
	}

	text := strings.Join(strings.Fields(article.TextContent), " ")
	if text == "" {
		text = article.Excerpt
	}
	r.Excerpt = truncate(text, e.maxLength)
	if r.Title == "" {
		r.Title = article.Title
	}
	return nil
}

func truncate(s string, n int) string {
	if n <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
