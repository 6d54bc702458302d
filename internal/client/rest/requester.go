// Package rest is the thin HTTP layer the API client is built on. A Requester
// speaks JSON to one base URL; it attaches a bearer token when configured with
// a TokenSource and sends anonymous requests otherwise.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/vidgen/internal/common"
	"github.com/dmitrijs2005/vidgen/internal/logging"
	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

// TokenSource yields the bearer token for authenticated requests.
// An empty token means the request goes out without the header.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// Response is a successful (2xx) reply.
type Response struct {
	Status int
	Body   []byte
}

// Decode unmarshals the body into v.
func (r *Response) Decode(v any) error {
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

type Requester struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
	limiter    *rate.Limiter
	log        logging.Logger
}

type Option func(*Requester)

func WithHTTPClient(c *http.Client) Option {
	return func(r *Requester) { r.httpClient = c }
}

// WithTimeout bounds each request; zero leaves requests unbounded.
func WithTimeout(d time.Duration) Option {
	return func(r *Requester) { r.httpClient.Timeout = d }
}

// WithRateLimit throttles outbound requests; rps <= 0 disables throttling.
func WithRateLimit(rps float64) Option {
	return func(r *Requester) {
		if rps <= 0 {
			r.limiter = nil
			return
		}
		burst := int(rps)
		if burst < 1 {
			burst = 1
		}
		r.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

func WithLogger(l logging.Logger) Option {
	return func(r *Requester) { r.log = l }
}

// New builds a Requester. Pass a nil TokenSource for public endpoints.
func New(baseURL string, tokens TokenSource, opts ...Option) *Requester {
	r := &Requester{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		tokens:     tokens,
		log:        logging.Discard(),
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

func (r *Requester) Get(ctx context.Context, path string) (*Response, error) {
	return r.Do(ctx, http.MethodGet, path, nil)
}

func (r *Requester) Post(ctx context.Context, path string, body any) (*Response, error) {
	return r.Do(ctx, http.MethodPost, path, body)
}

func (r *Requester) Patch(ctx context.Context, path string, body any) (*Response, error) {
	return r.Do(ctx, http.MethodPatch, path, body)
}

func (r *Requester) Delete(ctx context.Context, path string, body any) (*Response, error) {
	return r.Do(ctx, http.MethodDelete, path, body)
}

// Do sends one JSON request. Transport failures wrap ErrUnavailable; non-2xx
// replies become *APIError with the server's message when one is present.
func (r *Requester) Do(ctx context.Context, method, path string, body any) (*Response, error) {
	var payload io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		payload = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, r.baseURL+path, payload)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	requestID := uuid.NewString()
	req.Header.Set(common.RequestIDHeaderName, requestID)

	if r.tokens != nil {
		token, err := r.tokens.Token(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to read token: %w", err)
		}
		if token != "" {
			req.Header.Set(common.AuthorizationHeaderName, "Bearer "+token)
		}
	}

	if r.limiter != nil {
		if err := r.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	log := r.log.With("method", method, "path", path, "request_id", requestID)
	start := time.Now()

	resp, err := r.httpClient.Do(req)
	if err != nil {
		log.Debug(ctx, "request failed", "error", err)
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %v", ErrUnavailable, err)
	}

	log.Debug(ctx, "request done", "status", resp.StatusCode, "duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{Status: resp.StatusCode, Message: serverMessage(respBody)}
	}

	return &Response{Status: resp.StatusCode, Body: respBody}, nil
}

// errorBody covers both {"message": ...} and {"error": ...} payloads.
type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

func serverMessage(body []byte) string {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err != nil {
		return ""
	}
	if eb.Message != "" {
		return eb.Message
	}
	return eb.Error
}
