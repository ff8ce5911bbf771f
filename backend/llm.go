package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/time/rate"
)

const (
	llmConfidence = 0.9
	maxLLMTopics  = 3

	summaryPrompt = "You are a helpful assistant. Summarize the text in 1-2 sentences, " +
		"then extract: title (if present), 3 key topics, and sentiment (positive/neutral/negative). " +
		"Respond strictly as JSON with keys: summary, title, topics, sentiment."
)

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// LLMAnalyzer asks an OpenAI-compatible chat completion endpoint for the
// summary, title, topics and sentiment of a text.
type LLMAnalyzer struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
	limiter    *rate.Limiter
}

type LLMOption func(*LLMAnalyzer)

func WithLLMHTTPClient(hc *http.Client) LLMOption {
	return func(a *LLMAnalyzer) {
		a.httpClient = hc
	}
}

// WithQPS limits outbound calls; zero or less disables the limit.
func WithQPS(qps float64) LLMOption {
	return func(a *LLMAnalyzer) {
		if qps <= 0 {
			a.limiter = rate.NewLimiter(rate.Inf, 1)
			return
		}
		a.limiter = rate.NewLimiter(rate.Limit(qps), 1)
	}
}

func NewLLMAnalyzer(baseURL, apiKey, model string, opts ...LLMOption) *LLMAnalyzer {
	a := &LLMAnalyzer{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		model:      model,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		limiter:    rate.NewLimiter(rate.Inf, 1),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *LLMAnalyzer) Analyze(ctx context.Context, text string) (Analysis, error) {
	if a.apiKey == "" {
		return Analysis{}, fmt.Errorf("LLM client not configured")
	}
	if err := a.limiter.Wait(ctx); err != nil {
		return Analysis{}, fmt.Errorf("llm: rate limit: %w", err)
	}

	content, err := a.complete(ctx, text)
	if err != nil {
		return Analysis{}, err
	}
	return parseLLMReply(content)
}

func (a *LLMAnalyzer) complete(ctx context.Context, text string) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model: a.model,
		Messages: []chatMessage{
			{Role: "system", Content: summaryPrompt},
			{Role: "user", Content: fmt.Sprintf("Text:\n%s\n", text)},
		},
	})
	if err != nil {
		return "", fmt.Errorf("llm: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("llm: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+a.apiKey)

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("llm: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("llm: api error %d: %s", resp.StatusCode, string(data))
	}

	var payload chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("llm: decode response: %w", err)
	}
	if len(payload.Choices) == 0 {
		return "", fmt.Errorf("llm: no choices in response")
	}
	return payload.Choices[0].Message.Content, nil
}

var jsonObject = regexp.MustCompile(`\{[\s\S]*\}`)

type llmReply struct {
	Summary   string          `json:"summary"`
	Title     *string         `json:"title"`
	Topics    json.RawMessage `json:"topics"`
	Sentiment string          `json:"sentiment"`
}

// parseLLMReply accepts a bare JSON object or one embedded in prose or a
// code fence.
func parseLLMReply(content string) (Analysis, error) {
	var reply llmReply
	if err := json.Unmarshal([]byte(content), &reply); err != nil {
		match := jsonObject.FindString(content)
		if match == "" {
			return Analysis{}, fmt.Errorf("LLM returned unparsable response: %s", content)
		}
		if err := json.Unmarshal([]byte(match), &reply); err != nil {
			return Analysis{}, fmt.Errorf("LLM returned unparsable response: %w", err)
		}
	}

	if reply.Title != nil {
		title := stripMarkup(*reply.Title)
		reply.Title = &title
		if title == "" {
			reply.Title = nil
		}
	}

	var topics []string
	for _, topic := range decodeTopics(reply.Topics) {
		if topic = stripMarkup(topic); topic != "" {
			topics = append(topics, topic)
		}
	}
	if topics == nil {
		topics = []string{}
	}
	if len(topics) > maxLLMTopics {
		topics = topics[:maxLLMTopics]
	}

	return Analysis{
		Summary:    stripMarkup(reply.Summary),
		Title:      reply.Title,
		Topics:     topics,
		Sentiment:  normalizeSentiment(reply.Sentiment),
		Confidence: llmConfidence,
	}, nil
}

var replyPolicy = bluemonday.StrictPolicy()

// stripMarkup removes any HTML the model echoed back from the input before
// the reply is stored.
func stripMarkup(s string) string {
	return strings.TrimSpace(html.UnescapeString(replyPolicy.Sanitize(s)))
}

// decodeTopics reads either a JSON list or a comma separated string.
func decodeTopics(raw json.RawMessage) []string {
	topics := []string{}
	if len(raw) == 0 {
		return topics
	}

	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		for _, t := range list {
			if t = strings.TrimSpace(t); t != "" {
				topics = append(topics, t)
			}
		}
		return topics
	}

	var joined string
	if err := json.Unmarshal(raw, &joined); err == nil {
		for _, t := range strings.Split(joined, ",") {
			if t = strings.TrimSpace(t); t != "" {
				topics = append(topics, t)
			}
		}
	}
	return topics
}
