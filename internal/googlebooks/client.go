// Package googlebooks is a thin client for the Google Books volumes API.
package googlebooks

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"book-assistant/internal/model"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	// DefaultBaseURL is the public volumes endpoint.
	DefaultBaseURL = "https://www.googleapis.com/books/v1/volumes"
	// DefaultMaxResults is used when the caller passes a non-positive count.
	DefaultMaxResults = 5
)

// Client calls the Google Books volumes API. One blocking request at a time;
// a client-side limiter keeps us polite toward the public endpoint.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	limiter    *rate.Limiter
	logger     *zap.Logger
}

// NewClient creates a volumes API client. rps bounds outgoing requests per
// second; timeout applies to each HTTP call.
func NewClient(apiKey string, timeout time.Duration, rps int, logger *zap.Logger) *Client {
	if rps <= 0 {
		rps = 1
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    DefaultBaseURL,
		apiKey:     apiKey,
		limiter:    rate.NewLimiter(rate.Every(time.Second/time.Duration(rps)), 1),
		logger:     logger,
	}
}

// volumesResponse matches the volumes list endpoint. Every field may be
// absent from the payload.
type volumesResponse struct {
	Items []struct {
		VolumeInfo volumeInfo `json:"volumeInfo"`
	} `json:"items"`
}

type volumeInfo struct {
	Title       *string  `json:"title"`
	Authors     []string `json:"authors"`
	Description string   `json:"description"`
	Categories  []string `json:"categories"`
	PreviewLink *string  `json:"previewLink"`
	PageCount   *int     `json:"pageCount"`
}

func (vi volumeInfo) toRecord() model.BookRecord {
	rec := model.BookRecord{
		Title:       vi.Title,
		Authors:     vi.Authors,
		Description: vi.Description,
		Categories:  vi.Categories,
		PreviewLink: vi.PreviewLink,
		PageCount:   vi.PageCount,
	}
	if rec.Authors == nil {
		rec.Authors = []string{}
	}
	if rec.Categories == nil {
		rec.Categories = []string{}
	}
	return rec
}

// Search issues one GET against the volumes endpoint and maps each item's
// volumeInfo into a BookRecord, preserving the service's ordering. An absent
// items array yields an empty slice, not an error.
func (c *Client) Search(ctx context.Context, query string, maxResults int) ([]model.BookRecord, error) {
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("key", c.apiKey)
	params.Set("maxResults", strconv.Itoa(maxResults))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("volumes request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("volumes request: unexpected status code: %d", resp.StatusCode)
	}

	var vr volumesResponse
	if err := json.NewDecoder(resp.Body).Decode(&vr); err != nil {
		return nil, fmt.Errorf("volumes response: %w", err)
	}

	books := make([]model.BookRecord, 0, len(vr.Items))
	for _, item := range vr.Items {
		books = append(books, item.VolumeInfo.toRecord())
	}

	c.logger.Debug("volumes search completed",
		zap.String("query", query),
		zap.Int("results", len(books)))
	return books, nil
}
