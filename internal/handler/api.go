package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"book-assistant/internal/assistant"
	"book-assistant/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/text/unicode/norm"
)

const (
	// MaxQuestionLength is the maximum allowed question length
	MaxQuestionLength = 500
	// MaxQueryLength is the maximum allowed search query length
	MaxQueryLength = 200
)

// Assistant is the orchestration surface the handlers depend on.
type Assistant interface {
	SearchBooks(ctx context.Context, query string, maxResults int) ([]model.BookRecord, error)
	AnalyzeBooks(ctx context.Context, books []model.BookRecord, question string) (string, error)
	RecommendSimilarBooks(ctx context.Context, bookTitle string, maxRecommendations int) ([]model.BookRecord, error)
}

// API holds the handlers for the assistant routes.
type API struct {
	assistant Assistant
	logger    *zap.Logger
}

// NewAPI creates the handler set over the given assistant.
func NewAPI(a Assistant, logger *zap.Logger) *API {
	return &API{assistant: a, logger: logger}
}

// SearchResponse is the payload of the search and recommendation routes.
type SearchResponse struct {
	Books []model.BookRecord `json:"books"`
	Count int                `json:"count"`
}

// AnalyzeRequest is the body of the analyze route. The handler searches
// first, then feeds the results and the question to the generation service.
type AnalyzeRequest struct {
	Query      string `json:"query" binding:"required,max=200"`
	Question   string `json:"question" binding:"required,max=500"`
	MaxResults int    `json:"max_results,omitempty"`
}

// AnalyzeResponse is the payload of the analyze route.
type AnalyzeResponse struct {
	RequestID string             `json:"request_id"`
	Analysis  string             `json:"analysis"`
	Books     []model.BookRecord `json:"books"`
}

// HandleSearch serves GET /api/search?q=...&maxResults=N. A transport
// failure is logged and served as an empty result, indistinguishable from a
// query with no hits.
func (h *API) HandleSearch(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Query parameter q is required",
			"code":  "INVALID_REQUEST",
		})
		return
	}

	maxResults, _ := strconv.Atoi(c.DefaultQuery("maxResults", "0"))

	books, err := h.assistant.SearchBooks(c.Request.Context(), query, maxResults)
	if err != nil {
		h.logger.Warn("search degraded to empty result", zap.Error(err))
	}
	c.JSON(http.StatusOK, SearchResponse{Books: books, Count: len(books)})
}

// HandleAnalyze serves POST /api/analyze. The question is NFC-normalized and
// screened for prompt injection before it reaches the prompt template. A
// failed generation still answers 200 with the fixed apology text.
func (h *API) HandleAnalyze(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request: query and question are required",
			"code":  "INVALID_REQUEST",
		})
		return
	}

	// Normalize Unicode to NFC form before security checks so lookalike
	// characters cannot bypass the patterns.
	req.Question = norm.NFC.String(req.Question)

	if isInjectionAttempt(req.Question) {
		h.logger.Warn("injection attempt blocked")
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "The question was rejected",
			"code":  "QUESTION_REJECTED",
		})
		return
	}

	books, err := h.assistant.SearchBooks(c.Request.Context(), req.Query, req.MaxResults)
	if err != nil {
		h.logger.Warn("analysis proceeding without search results", zap.Error(err))
	}

	analysis, err := h.assistant.AnalyzeBooks(c.Request.Context(), books, req.Question)
	if err != nil {
		var genErr *assistant.GenerationError
		if errors.As(err, &genErr) {
			h.logger.Warn("analysis degraded to apology", zap.Error(err))
		} else {
			h.logger.Warn("analysis failed", zap.Error(err))
		}
	}

	c.JSON(http.StatusOK, AnalyzeResponse{
		RequestID: uuid.New().String(),
		Analysis:  analysis,
		Books:     books,
	})
}

// HandleRecommendations serves GET /api/recommendations?title=...&max=N.
func (h *API) HandleRecommendations(c *gin.Context) {
	title := c.Query("title")
	if title == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Query parameter title is required",
			"code":  "INVALID_REQUEST",
		})
		return
	}

	max, _ := strconv.Atoi(c.DefaultQuery("max", "0"))

	books, err := h.assistant.RecommendSimilarBooks(c.Request.Context(), title, max)
	if err != nil {
		h.logger.Warn("recommendations degraded to empty result", zap.Error(err))
	}
	c.JSON(http.StatusOK, SearchResponse{Books: books, Count: len(books)})
}
