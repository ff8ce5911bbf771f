package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"analysis-web/logger"
	"analysis-web/models"
)

const sampleResult = `{
	"id": 7,
	"title": "Quarterly update",
	"summary": "Revenue grew.",
	"topics": ["finance", "growth"],
	"keywords": ["revenue"],
	"sentiment": "positive",
	"confidence": 0.873,
	"created_at": "2025-03-01T10:20:30.123456"
}`

func newTestClient(srv *httptest.Server) *Client {
	return New(srv.URL+"/", WithHTTPClient(srv.Client()), WithLogger(logger.Discard()))
}

func TestAnalyzeSendsTextAndDecodesResult(t *testing.T) {
	var gotBody map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/analyze", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "req-1", r.Header.Get(RequestIDHeader))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(sampleResult))
	}))
	defer srv.Close()

	ctx := WithRequestID(context.Background(), "req-1")
	result, err := newTestClient(srv).Analyze(ctx, "  raw text  ")
	require.NoError(t, err)

	assert.Equal(t, "  raw text  ", gotBody["text"])
	assert.Equal(t, 7, result.ID)
	assert.Equal(t, "Quarterly update", result.TitleText())
	assert.Equal(t, models.SentimentPositive, result.Sentiment)
	assert.InDelta(t, 0.873, result.Confidence, 1e-9)
	assert.Equal(t, []string{"finance", "growth"}, result.Topics)
	assert.Equal(t, time.Date(2025, 3, 1, 10, 20, 30, 123456000, time.UTC), result.CreatedAt.Time)
}

func TestAnalyzeStructuredErrorPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"detail": {"error": "BadInput", "detail": "text too long"}}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv).Analyze(context.Background(), "hello")
	require.Error(t, err)

	var respErr *ResponseError
	require.True(t, errors.As(err, &respErr))
	assert.Equal(t, http.StatusInternalServerError, respErr.StatusCode)
	detail, ok := respErr.Detail().(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "BadInput", detail["error"])
	assert.Equal(t, "text too long", detail["detail"])
}

func TestAnalyzeNonJSONErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream exploded", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := newTestClient(srv).Analyze(context.Background(), "hello")

	var respErr *ResponseError
	require.True(t, errors.As(err, &respErr))
	assert.Nil(t, respErr.Payload)
	assert.Nil(t, respErr.Detail())
	assert.Contains(t, string(respErr.Body), "upstream exploded")
}

func TestAnalyzeTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	base := srv.URL
	srv.Close()

	_, err := New(base, WithLogger(logger.Discard())).Analyze(context.Background(), "hello")

	var transportErr *TransportError
	require.True(t, errors.As(err, &transportErr))
	assert.Equal(t, OpAnalyze, transportErr.Op)
}

func TestAnalyzeDecodeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv).Analyze(context.Background(), "hello")

	var decodeErr *DecodeError
	assert.True(t, errors.As(err, &decodeErr))
}

func TestSearchOmitsTopicWhenBlank(t *testing.T) {
	for _, term := range []string{"", "   "} {
		var rawQuery string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/search", r.URL.Path)
			rawQuery = r.URL.RawQuery
			_, _ = w.Write([]byte(`[` + sampleResult + `,` + sampleResult + `]`))
		}))

		results, err := newTestClient(srv).Search(context.Background(), term)
		srv.Close()

		require.NoError(t, err)
		assert.Empty(t, rawQuery)
		assert.Len(t, results, 2)
	}
}

func TestSearchSendsTopic(t *testing.T) {
	var topic string
	var hasTopic bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		topic = r.URL.Query().Get("topic")
		_, hasTopic = r.URL.Query()["topic"]
		_, _ = w.Write([]byte(`null`))
	}))
	defer srv.Close()

	results, err := newTestClient(srv).Search(context.Background(), "finance")
	require.NoError(t, err)

	assert.True(t, hasTopic)
	assert.Equal(t, "finance", topic)
	assert.NotNil(t, results)
	assert.Empty(t, results)
}

func TestSearchResponseError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := newTestClient(srv).Search(context.Background(), "")

	var respErr *ResponseError
	require.True(t, errors.As(err, &respErr))
	assert.Equal(t, OpSearch, respErr.Op)
	assert.EqualError(t, err, "search: backend returned 503")
}

func TestWithTimeoutLeavesSuppliedClientUntouched(t *testing.T) {
	shared := &http.Client{}

	for _, opts := range [][]Option{
		{WithHTTPClient(shared), WithTimeout(3 * time.Second)},
		{WithTimeout(3 * time.Second), WithHTTPClient(shared)},
	} {
		c := New("http://backend", opts...)

		assert.Zero(t, shared.Timeout)
		assert.NotSame(t, shared, c.httpClient)
		assert.Equal(t, 3*time.Second, c.httpClient.Timeout)
	}
}

func TestWithoutTimeoutUsesSuppliedClient(t *testing.T) {
	shared := &http.Client{}
	c := New("http://backend", WithHTTPClient(shared))
	assert.Same(t, shared, c.httpClient)
}
