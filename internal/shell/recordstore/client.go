package recordstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/nmdo/nmdo/internal/core/domain"
)

// =============================================================================
// HTTP Client Implementation
// =============================================================================

// Config holds configuration for the record store client.
type Config struct {
	BaseURL string
	Token   string
	Version string // value of the API version header
	Timeout time.Duration
}

// DefaultConfig returns default record store client configuration.
func DefaultConfig() Config {
	return Config{
		BaseURL: "https://api.notion.com",
		Version: "2021-05-13",
		Timeout: 30 * time.Second,
	}
}

// Client implements Store against the document store's HTTP API.
type Client struct {
	baseURL    string
	token      string
	version    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a new record store client.
func NewClient(cfg Config, logger *slog.Logger) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL: cfg.BaseURL,
		token:   cfg.Token,
		version: cfg.Version,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: logger.With("component", "recordstore"),
	}
}

// GetModule retrieves a module page's destination metadata.
func (c *Client) GetModule(ctx context.Context, pageID string) (*domain.Module, error) {
	var page pagePayload
	if err := c.get(ctx, "/v1/pages/"+pageID, &page); err != nil {
		return nil, domain.NewRecordError("GetModule", pageID, err.Error(), domain.ErrFetchFailed)
	}
	return page.module(), nil
}

// GetBlocks retrieves the child blocks of a page, in page order.
func (c *Client) GetBlocks(ctx context.Context, blockID string) ([]domain.Block, error) {
	var list blockListPayload
	if err := c.get(ctx, "/v1/blocks/"+blockID+"/children", &list); err != nil {
		return nil, domain.NewRecordError("GetBlocks", blockID, err.Error(), domain.ErrFetchFailed)
	}

	blocks := make([]domain.Block, 0, len(list.Results))
	for _, b := range list.Results {
		blocks = append(blocks, b.block())
	}
	return blocks, nil
}

// QueryDatabase runs one query against a database and returns a single page
// of seed records plus pagination state.
func (c *Client) QueryDatabase(ctx context.Context, databaseID string, q Query) (*QueryPage, error) {
	body := map[string]any{}
	if q.Filter != nil {
		body["filter"] = map[string]any{
			"property": q.Filter.Property,
			"title": map[string]string{
				q.Filter.MatchKind: q.Filter.Value,
			},
		}
	}
	if q.StartCursor != "" {
		body["start_cursor"] = q.StartCursor
	}

	var resp queryResponsePayload
	if err := c.post(ctx, "/v1/databases/"+databaseID+"/query", body, &resp); err != nil {
		return nil, domain.NewRecordError("QueryDatabase", databaseID, err.Error(), domain.ErrFetchFailed)
	}

	page := &QueryPage{
		Results: make([]domain.Seed, 0, len(resp.Results)),
		HasMore: resp.HasMore,
	}
	if resp.NextCursor != nil {
		page.NextCursor = *resp.NextCursor
	}
	for _, p := range resp.Results {
		page.Results = append(page.Results, p.seed())
	}
	return page, nil
}

// =============================================================================
// Request Plumbing
// =============================================================================

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	return c.do(req, out)
}

func (c *Client) post(ctx context.Context, path string, body any, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if c.version != "" {
		req.Header.Set("Notion-Version", c.version)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("store returned error %d: %s", resp.StatusCode, string(respBody))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
