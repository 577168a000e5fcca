package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/bloglab/notion-sync/internal/core/domain"
)

// Default configuration values.
const (
	DefaultBaseURL = "https://api.notion.com"
	DefaultTimeout = 30 * time.Second

	// NotionVersion is the required API version header.
	notionVersion = "2022-06-28"

	// RequestsPerSecond is the proactive throttle rate. Notion enforces
	// an average of 3 requests per second per integration.
	RequestsPerSecond = 3

	// pageSize is the page size for paginated endpoints.
	pageSize = 100
)

// Config holds configuration for the Notion client.
type Config struct {
	// APIKey is the Notion integration token (required).
	APIKey string

	// DatabaseID is the database to sync (required).
	DatabaseID string

	// BaseURL is the API base URL (default: https://api.notion.com).
	BaseURL string

	// Timeout is the request timeout (default: 30s).
	Timeout time.Duration
}

// Client is a minimal Notion REST API client covering database queries
// and block tree listing, with proactive rate limiting.
type Client struct {
	client     *http.Client
	baseURL    string
	apiKey     string
	databaseID string
	limiter    *rate.Limiter
}

// NewClient creates a new Notion API client.
func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("notion: %w: API key", domain.ErrMissingConfig)
	}
	if cfg.DatabaseID == "" {
		return nil, fmt.Errorf("notion: %w: database ID", domain.ErrMissingConfig)
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	return &Client{
		client:     &http.Client{Timeout: cfg.Timeout},
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		databaseID: cfg.DatabaseID,
		limiter:    rate.NewLimiter(rate.Limit(RequestsPerSecond), 1),
	}, nil
}

// Validate checks the credentials grant access to the database.
func (c *Client) Validate(ctx context.Context) error {
	var out json.RawMessage
	path := "/v1/databases/" + c.databaseID
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return fmt.Errorf("validate database access: %w", err)
	}
	return nil
}

// queryDatabase runs one full paginated database query with the given
// sort specification.
func (c *Client) queryDatabase(ctx context.Context, sorts []sortSpec) ([]domain.Page, error) {
	var pages []domain.Page
	cursor := ""

	for {
		req := queryRequest{
			Sorts:       sorts,
			StartCursor: cursor,
			PageSize:    pageSize,
		}

		var resp queryResponse
		path := "/v1/databases/" + c.databaseID + "/query"
		if err := c.do(ctx, http.MethodPost, path, req, &resp); err != nil {
			return nil, err
		}

		for _, page := range resp.Results {
			pages = append(pages, page.toDomain())
		}

		if !resp.HasMore {
			return pages, nil
		}
		cursor = resp.NextCursor
	}
}

// ListBlockChildren returns the direct children of a block or page,
// following pagination until the level is complete.
func (c *Client) ListBlockChildren(ctx context.Context, blockID string) ([]domain.Block, error) {
	var blocks []domain.Block
	cursor := ""

	for {
		path := fmt.Sprintf("/v1/blocks/%s/children?page_size=%d", blockID, pageSize)
		if cursor != "" {
			path += "&start_cursor=" + cursor
		}

		var resp blockListResponse
		if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
			return nil, fmt.Errorf("list block children %s: %w", blockID, err)
		}

		for _, block := range resp.Results {
			blocks = append(blocks, block.toDomain())
		}

		if !resp.HasMore {
			return blocks, nil
		}
		cursor = resp.NextCursor
	}
}

// do performs one rate-limited API call and decodes the response into out.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Notion-Version", notionVersion)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		return fmt.Errorf("%w: %s", domain.ErrRateLimited, string(respBody))
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr apiError
		if err := json.Unmarshal(respBody, &apiErr); err == nil && apiErr.Message != "" {
			return fmt.Errorf("notion error (%s, status %d): %s", apiErr.Code, resp.StatusCode, apiErr.Message)
		}
		return fmt.Errorf("notion error (status %d): %s", resp.StatusCode, string(respBody))
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
