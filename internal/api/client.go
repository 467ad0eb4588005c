package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// StatusError is returned for any non-200 response.
type StatusError struct {
	Code   int
	Detail string
}

func (e *StatusError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("search service returned HTTP %d: %s", e.Code, e.Detail)
	}
	return fmt.Sprintf("search service returned HTTP %d", e.Code)
}

// StatusCode extracts the HTTP status from err, or 0 when err is not a
// *StatusError.
func StatusCode(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Code
	}
	return 0
}

type Client struct {
	baseURL *url.URL
	http    *http.Client
}

// New creates a client for the service rooted at baseURL. A zero timeout
// leaves requests bounded only by their context.
func New(baseURL string, timeout time.Duration) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("base url scheme must be http or https, got %q", u.Scheme)
	}
	return &Client{baseURL: u, http: &http.Client{Timeout: timeout}}, nil
}

// BaseURL returns the service root the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// ListArticles fetches the articles of a collection, filtered by the
// non-empty criteria fields.
func (c *Client) ListArticles(ctx context.Context, collection string, criteria Criteria) ([]Article, error) {
	return c.get(ctx, collection, "articles", criteria.values())
}

// SimilarArticles runs a similarity search within a collection.
func (c *Client) SimilarArticles(ctx context.Context, collection, query string) ([]Article, error) {
	return c.get(ctx, collection, "search", url.Values{"query_string": {query}})
}

func (c *Client) endpoint(collection, action string, q url.Values) string {
	u := c.baseURL.JoinPath("collections", url.PathEscape(collection), action)
	if len(q) > 0 {
		u.RawQuery = q.Encode()
	}
	return u.String()
}

type errorBody struct {
	Detail any `json:"detail"`
}

func (c *Client) get(ctx context.Context, collection, action string, q url.Values) ([]Article, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint(collection, action, q), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("requesting %s: %w", action, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{Code: resp.StatusCode, Detail: readDetail(resp.Body)}
	}

	var articles []Article
	if err := json.NewDecoder(resp.Body).Decode(&articles); err != nil {
		return nil, fmt.Errorf("decoding %s response: %w", action, err)
	}
	for i := range articles {
		articles[i].clean()
	}
	return articles, nil
}

// readDetail pulls the "detail" field out of an error body. FastAPI
// validation errors carry a list there, which is kept as raw JSON.
func readDetail(r io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil || len(data) == 0 {
		return ""
	}
	var body errorBody
	if err := json.Unmarshal(data, &body); err != nil {
		return strings.TrimSpace(string(data))
	}
	switch d := body.Detail.(type) {
	case nil:
		return ""
	case string:
		return d
	default:
		raw, _ := json.Marshal(d)
		return string(raw)
	}
}
