// Package apiclient talks to the analysis backend over its two HTTP
// operations, POST /analyze and GET /search.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"analysis-web/logger"
	"analysis-web/metrics"
	"analysis-web/models"
)

const (
	OpAnalyze = "analyze"
	OpSearch  = "search"

	RequestIDHeader = "X-Request-ID"

	maxErrorBody = 64 << 10
)

// Client is a thin wrapper around the analysis backend REST API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	log        logrus.FieldLogger
}

type Option func(*Client)

// WithHTTPClient overrides the internal HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout sets a whole-request timeout. Zero leaves the HTTP layer
// defaults in place. The timeout is applied to a copy of the HTTP client,
// so a client passed to WithHTTPClient is never modified.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

func WithLogger(l logrus.FieldLogger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		log:        logger.Log,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.timeout > 0 {
		hc := *c.httpClient
		hc.Timeout = c.timeout
		c.httpClient = &hc
	}
	return c
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

type analyzeRequest struct {
	Text string `json:"text"`
}

// Analyze submits text for analysis. The text is sent as given.
func (c *Client) Analyze(ctx context.Context, text string) (*models.AnalysisResult, error) {
	body, err := json.Marshal(analyzeRequest{Text: text})
	if err != nil {
		return nil, &TransportError{Op: OpAnalyze, Err: err}
	}

	var result models.AnalysisResult
	if err := c.do(ctx, OpAnalyze, http.MethodPost, c.baseURL+"/analyze", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Search lists stored analyses. A blank term requests the unfiltered
// collection and omits the topic parameter.
func (c *Client) Search(ctx context.Context, term string) ([]models.AnalysisResult, error) {
	endpoint := c.baseURL + "/search"
	if strings.TrimSpace(term) != "" {
		endpoint += "?" + url.Values{"topic": {term}}.Encode()
	}

	var results []models.AnalysisResult
	if err := c.do(ctx, OpSearch, http.MethodGet, endpoint, nil, &results); err != nil {
		return nil, err
	}
	if results == nil {
		results = []models.AnalysisResult{}
	}
	return results, nil
}

func (c *Client) do(ctx context.Context, op, method, endpoint string, body []byte, out any) error {
	start := time.Now()
	err := c.roundTrip(ctx, op, method, endpoint, body, out)
	elapsed := time.Since(start).Seconds()

	if err == nil {
		metrics.RecordCall(op, metrics.OutcomeSuccess, elapsed)
		return nil
	}

	fields := logrus.Fields{"op": op, "url": endpoint, "error": err.Error()}
	if id := RequestIDFrom(ctx); id != "" {
		fields["request_id"] = id
	}

	var (
		respErr   *ResponseError
		decodeErr *DecodeError
	)
	switch {
	case errors.As(err, &respErr):
		fields["status"] = respErr.StatusCode
		metrics.RecordCall(op, metrics.OutcomeResponse, elapsed)
	case errors.As(err, &decodeErr):
		metrics.RecordCall(op, metrics.OutcomeDecode, elapsed)
	default:
		metrics.RecordCall(op, metrics.OutcomeTransport, elapsed)
	}
	c.log.WithFields(fields).Error("analysis backend call failed")
	return err
}

func (c *Client) roundTrip(ctx context.Context, op, method, endpoint string, body []byte, out any) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if id := RequestIDFrom(ctx); id != "" {
		req.Header.Set(RequestIDHeader, id)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return newResponseError(op, resp.StatusCode, data)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &DecodeError{Op: op, Err: err}
	}
	return nil
}

type requestIDKey struct{}

// WithRequestID returns a context carrying the request ID forwarded to the
// backend.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

func RequestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
