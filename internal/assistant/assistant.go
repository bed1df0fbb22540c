// Package assistant orchestrates the book search, analysis, and
// recommendation flows over the two external HTTP collaborators.
package assistant

import (
	"context"
	"strings"

	"book-assistant/internal/assistant/deps"
	"book-assistant/internal/assistant/prompt"
	"book-assistant/internal/model"

	"go.uber.org/zap"
)

const (
	// DefaultMaxResults is used when a search is requested with a
	// non-positive count.
	DefaultMaxResults = 5
	// DefaultMaxRecommendations is used when a recommendation is requested
	// with a non-positive count.
	DefaultMaxRecommendations = 3
	// AnalysisMaxTokens caps the generated analysis length.
	AnalysisMaxTokens = 500
	// AnalysisTemperature is the fixed sampling temperature for analyses.
	AnalysisTemperature = 0.7

	searchService = "google-books"
)

// Assistant composes the three operations. It holds no mutable state, so a
// single instance is safe to share across handlers. Every operation returns
// its benign default value alongside any error, so callers that ignore the
// error still observe the original swallow-and-default behavior.
type Assistant struct {
	searcher  deps.BookSearcher
	generator deps.TextGenerator
	prompts   *prompt.Builder
	logger    *zap.Logger
}

// New creates an assistant over the given collaborators.
func New(searcher deps.BookSearcher, generator deps.TextGenerator, logger *zap.Logger) *Assistant {
	return &Assistant{
		searcher:  searcher,
		generator: generator,
		prompts:   prompt.NewBuilder(),
		logger:    logger,
	}
}

// SearchBooks queries the search API and returns the records in service
// order, with no re-sorting and no dedup. A transport failure is logged and
// reported as a TransportError next to an empty slice.
func (a *Assistant) SearchBooks(ctx context.Context, query string, maxResults int) ([]model.BookRecord, error) {
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}

	books, err := a.searcher.Search(ctx, query, maxResults)
	if err != nil {
		a.logger.Error("book search failed",
			zap.String("query", query),
			zap.Error(err))
		return []model.BookRecord{}, &TransportError{Service: searchService, Err: err}
	}
	return books, nil
}

// AnalyzeBooks renders the records into a context block, embeds it with the
// question into the analysis prompt, and asks the generation service for a
// comparative analysis. An empty book list still calls the service. On
// failure the fixed apology string is returned next to a GenerationError.
func (a *Assistant) AnalyzeBooks(ctx context.Context, books []model.BookRecord, question string) (string, error) {
	p := a.prompts.BuildAnalysisPrompt(books, question)

	text, err := a.generator.GenerateText(ctx, p, AnalysisMaxTokens, AnalysisTemperature)
	if err != nil {
		a.logger.Error("book analysis failed",
			zap.Int("books", len(books)),
			zap.Error(err))
		return prompt.ApologyMessage, &GenerationError{Err: err}
	}
	return strings.TrimSpace(text), nil
}

// RecommendSimilarBooks resolves the reference title, then searches each of
// its categories with a subject: query. Records matching the resolved
// reference title exactly are dropped; everything else accumulates in
// category order and the accumulation is truncated to maxRecommendations, so
// earlier categories always win. Duplicate titles across categories are
// deliberately kept.
func (a *Assistant) RecommendSimilarBooks(ctx context.Context, bookTitle string, maxRecommendations int) ([]model.BookRecord, error) {
	if maxRecommendations <= 0 {
		maxRecommendations = DefaultMaxRecommendations
	}

	reference, err := a.SearchBooks(ctx, bookTitle, 1)
	if err != nil {
		return []model.BookRecord{}, err
	}
	if len(reference) == 0 {
		a.logger.Info("no reference book found", zap.String("title", bookTitle))
		return []model.BookRecord{}, nil
	}

	// The API's matched title can differ from the caller's phrasing, so
	// filter against what the lookup actually resolved.
	referenceTitle := bookTitle
	if reference[0].Title != nil {
		referenceTitle = *reference[0].Title
	}

	similar := make([]model.BookRecord, 0, maxRecommendations)
	for _, category := range reference[0].Categories {
		books, err := a.SearchBooks(ctx, "subject:"+category, maxRecommendations)
		if err != nil {
			// A failed category search contributes nothing; later
			// categories still run. SearchBooks already logged it.
			continue
		}
		for _, book := range books {
			if book.Title != nil && *book.Title == referenceTitle {
				continue
			}
			similar = append(similar, book)
		}
	}

	if len(similar) > maxRecommendations {
		similar = similar[:maxRecommendations]
	}
	return similar, nil
}
