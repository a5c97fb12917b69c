// Package embedclient implements codenames.Embedder against an HTTP embedding
// service that speaks the Ollama /api/embeddings protocol.
package embedclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	codenames "github.com/bcspragu/spymaster"
	"golang.org/x/sync/errgroup"
)

// DefaultParallelism is how many requests are in flight at once.
const DefaultParallelism = 4

// Client fetches word embeddings from an HTTP embedding service.
type Client struct {
	endpoint string
	model    string
	secret   string
	parallel int
	http     *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces http.DefaultClient.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithSecret sets the Authorization header on every request.
func WithSecret(secret string) Option {
	return func(c *Client) { c.secret = secret }
}

// WithParallelism caps the number of requests in flight. Values below one are
// ignored.
func WithParallelism(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.parallel = n
		}
	}
}

// New returns a client for the service at baseURL, e.g.
// http://localhost:11434, using the given model.
func New(baseURL, model string, opts ...Option) *Client {
	c := &Client{
		endpoint: strings.TrimRight(baseURL, "/") + "/api/embeddings",
		model:    model,
		parallel: DefaultParallelism,
		http:     http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Embed implements codenames.Embedder. The service takes one prompt per
// request, words are sent lowercased.
func (c *Client) Embed(ctx context.Context, words []string) ([]codenames.Vector, error) {
	out := make([]codenames.Vector, len(words))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.parallel)
	for i, w := range words {
		i, w := i, w
		g.Go(func() error {
			v, err := c.embed(ctx, w)
			if err != nil {
				return fmt.Errorf("%w: %q: %w", codenames.ErrEmbedding, w, err)
			}
			out[i] = v
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) embed(ctx context.Context, word string) (codenames.Vector, error) {
	body := struct {
		Model  string `json:"model"`
		Prompt string `json:"prompt"`
	}{c.model, strings.ToLower(word)}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, toBody(body))
	if err != nil {
		return nil, fmt.Errorf("failed to form request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.secret != "" {
		req.Header.Set("Authorization", c.secret)
	}

	var resp struct {
		Embedding []float32 `json:"embedding"`
	}
	if err := c.do(req, &resp); err != nil {
		return nil, fmt.Errorf("failed to request embedding: %w", err)
	}
	if len(resp.Embedding) == 0 {
		return nil, fmt.Errorf("empty embedding for model %q", c.model)
	}
	return codenames.Vector(resp.Embedding), nil
}

func (c *Client) do(req *http.Request, resp interface{}) error {
	httpResp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer httpResp.Body.Close()
	if httpResp.StatusCode != http.StatusOK {
		return handleError(httpResp)
	}

	if resp != nil {
		if err := json.NewDecoder(httpResp.Body).Decode(resp); err != nil {
			return fmt.Errorf("failed to decode response body: %w", err)
		}
	}

	return nil
}

func toBody(req interface{}) io.Reader {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(req); err != nil {
		return &errReader{err: err}
	}
	return &buf
}

type httpError struct {
	statusCode int
	body       string
	err        error
}

func (h *httpError) Error() string {
	if h.err != nil {
		return fmt.Sprintf("[%d] failed to handle error: %v", h.statusCode, h.err)
	}
	return fmt.Sprintf("[%d] error from server: %s", h.statusCode, h.body)
}

func handleError(resp *http.Response) error {
	dat, err := io.ReadAll(resp.Body)
	if err != nil {
		return &httpError{
			statusCode: resp.StatusCode,
			err:        fmt.Errorf("failed to read error response body: %w", err),
		}
	}

	return &httpError{
		statusCode: resp.StatusCode,
		body:       strings.TrimSpace(string(dat)),
	}
}

type errReader struct {
	err error
}

func (e *errReader) Read(_ []byte) (int, error) {
	return 0, e.err
}
