package cmd

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const analysisJSON = `{"id":1,"title":null,"summary":"A short summary.","topics":["finance"],"keywords":[],"sentiment":"negative","confidence":0.42,"created_at":"2025-01-02T03:04:05Z"}`

func runRoot(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("LOG_FILE", "")
	t.Setenv("LOG_LEVEL", "panic")

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(append(args, "--color", "never"))

	err := rootCmd.Execute()
	return out.String(), errOut.String(), err
}

func TestAnalyzeCommand(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		buf := new(bytes.Buffer)
		_, _ = buf.ReadFrom(r.Body)
		got = buf.String()
		_, _ = w.Write([]byte(analysisJSON))
	}))
	defer srv.Close()
	t.Setenv("API_URL", srv.URL)

	out, errOut, err := runRoot(t, "", "analyze", "markets", "fell")
	require.NoError(t, err)

	assert.JSONEq(t, `{"text":"markets fell"}`, got)
	assert.Contains(t, errOut, "Analyzing...")
	assert.Contains(t, out, "Summary:    A short summary.")
	assert.Contains(t, out, "Sentiment:  [negative]")
	assert.Contains(t, out, "Confidence: 42.0%")
}

func TestAnalyzeCommandBlankInput(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()
	t.Setenv("API_URL", srv.URL)

	_, errOut, err := runRoot(t, "  \n", "analyze")

	assert.ErrorIs(t, err, ErrViewFailed)
	assert.False(t, called)
	assert.Contains(t, errOut, "Please enter some text to analyze")
}

func TestSearchCommand(t *testing.T) {
	var query string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.RawQuery
		_, _ = w.Write([]byte("[" + analysisJSON + "]"))
	}))
	defer srv.Close()
	t.Setenv("API_URL", srv.URL)

	out, _, err := runRoot(t, "", "search", "finance")
	require.NoError(t, err)

	assert.Equal(t, "topic=finance", query)
	assert.Contains(t, out, "42.0%")
	assert.Contains(t, out, "[negative]")
}

func TestSearchCommandEmpty(t *testing.T) {
	var query string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.RawQuery
		_, _ = w.Write([]byte("[]"))
	}))
	defer srv.Close()
	t.Setenv("API_URL", srv.URL)

	out, _, err := runRoot(t, "", "search")
	require.NoError(t, err)

	assert.Empty(t, query)
	assert.Contains(t, out, "No analyses found.")
}

func TestSearchCommandBackendError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()
	t.Setenv("API_URL", srv.URL)

	_, errOut, err := runRoot(t, "", "search")

	assert.ErrorIs(t, err, ErrViewFailed)
	assert.Contains(t, errOut, "Failed to search analyses. Please try again.")
}
