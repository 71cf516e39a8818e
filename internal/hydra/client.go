// Package hydra is a minimal client for the Hydra CI JSON API, covering the
// jobset evaluation listing endpoint.
package hydra

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/blitz/hydrasect/internal/models"
	"github.com/blitz/hydrasect/internal/ports"
)

// Config describes settings required to list jobset evaluations on a Hydra
// server.
type Config struct {
	BaseURL    string
	Project    string
	Jobset     string
	HTTPClient *http.Client
}

type Client struct {
	client  *http.Client
	baseURL *url.URL
	project string
	jobset  string
}

// Ensure Client implements ports.EvalFetcher.
var _ ports.EvalFetcher = (*Client)(nil)

// NewClient builds a Hydra jobset evaluations client.
func NewClient(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("hydra: base URL is required")
	}
	if cfg.Project == "" {
		return nil, fmt.Errorf("hydra: project is required")
	}
	if cfg.Jobset == "" {
		return nil, fmt.Errorf("hydra: jobset is required")
	}

	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("hydra: parse base URL: %w", err)
	}

	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}

	return &Client{
		client:  client,
		baseURL: base,
		project: cfg.Project,
		jobset:  cfg.Jobset,
	}, nil
}

// FetchEvals retrieves one page of jobset evaluations, newest first.
// pageSuffix is empty for the first page or a "?page=N" suffix as reported
// in a previous page's pagination links.
func (c *Client) FetchEvals(pageSuffix string) (models.EvalsPage, error) {
	endpoint := *c.baseURL
	endpoint.Path = path.Join(endpoint.Path, "jobset", c.project, c.jobset, "evals")
	endpoint.RawQuery = strings.TrimPrefix(pageSuffix, "?")

	req, err := http.NewRequest(http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return models.EvalsPage{}, fmt.Errorf("hydra: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "hydrasect")

	resp, err := c.client.Do(req)
	if err != nil {
		return models.EvalsPage{}, fmt.Errorf("hydra: perform request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return models.EvalsPage{}, fmt.Errorf("hydra: unexpected status %s: %s", resp.Status, strings.TrimSpace(string(respBody)))
	}

	var page models.EvalsPage
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return models.EvalsPage{}, fmt.Errorf("hydra: decode response: %w", err)
	}

	return page, nil
}

// PageNumber extracts N from a "?page=N" pagination suffix. Absent or
// unparseable suffixes count as page zero.
func PageNumber(pageSuffix string) int {
	_, value, found := strings.Cut(pageSuffix, "=")
	if !found {
		return 0
	}

	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		return 0
	}

	return n
}
