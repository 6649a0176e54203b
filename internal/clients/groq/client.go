package groq

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/velmora/brandpulse-backend/internal/pkg/httpx"
	"github.com/velmora/brandpulse-backend/internal/platform/apierr"
	"github.com/velmora/brandpulse-backend/internal/platform/envutil"
	"github.com/velmora/brandpulse-backend/internal/platform/logger"
)

// Client talks to the Groq chat-completions API.
type Client interface {
	// GenerateJSON forces a json_object response and decodes it into a map.
	GenerateJSON(ctx context.Context, system, user string) (map[string]any, error)

	// GenerateText returns the raw completion text.
	GenerateText(ctx context.Context, system, user string) (string, error)
}

type client struct {
	log        *logger.Logger
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
	maxRetries int
}

// NewClient fails when GROQ_API_KEY is absent; callers that can operate
// without enrichment wire a nil client instead.
func NewClient(log *logger.Logger) (Client, error) {
	apiKey := strings.TrimSpace(envutil.String("GROQ_API_KEY", ""))
	if apiKey == "" {
		return nil, apierr.MissingConfig("GROQ_API_KEY")
	}
	return &client{
		log:        log.With("service", "GroqClient"),
		baseURL:    strings.TrimRight(envutil.String("GROQ_BASE_URL", "https://api.groq.com/openai"), "/"),
		apiKey:     apiKey,
		model:      envutil.String("GROQ_MODEL", "llama-3.3-70b-versatile"),
		httpClient: &http.Client{Timeout: time.Duration(envutil.Int("GROQ_TIMEOUT_SECONDS", 60)) * time.Second},
		maxRetries: envutil.Int("GROQ_MAX_RETRIES", 3),
	}, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string        `json:"model"`
	Messages       []chatMessage `json:"messages"`
	Temperature    float64       `json:"temperature"`
	ResponseFormat *struct {
		Type string `json:"type"`
	} `json:"response_format,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type groqHTTPError struct {
	StatusCode int
	Body       string
}

func (e *groqHTTPError) Error() string {
	return fmt.Sprintf("groq http %d: %s", e.StatusCode, e.Body)
}

func (e *groqHTTPError) HTTPStatusCode() int {
	if e == nil {
		return 0
	}
	return e.StatusCode
}

func (c *client) GenerateJSON(ctx context.Context, system, user string) (map[string]any, error) {
	req := chatRequest{
		Model:       c.model,
		Temperature: 0.3,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
	}
	req.ResponseFormat = &struct {
		Type string `json:"type"`
	}{Type: "json_object"}

	text, err := c.complete(ctx, req)
	if err != nil {
		return nil, err
	}

	var out map[string]any
	if err := json.Unmarshal([]byte(stripFences(text)), &out); err != nil {
		return nil, apierr.Upstream("groq", 0, fmt.Errorf("decode completion json: %w", err))
	}
	return out, nil
}

func (c *client) GenerateText(ctx context.Context, system, user string) (string, error) {
	return c.complete(ctx, chatRequest{
		Model:       c.model,
		Temperature: 0.3,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
	})
}

func (c *client) complete(ctx context.Context, req chatRequest) (string, error) {
	var parsed chatResponse
	if err := c.do(ctx, "/v1/chat/completions", req, &parsed); err != nil {
		return "", err
	}
	if len(parsed.Choices) == 0 {
		return "", apierr.Upstream("groq", 0, fmt.Errorf("empty choices"))
	}
	return strings.TrimSpace(parsed.Choices[0].Message.Content), nil
}

func (c *client) do(ctx context.Context, path string, body any, out any) error {
	backoff := time.Second

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		resp, raw, err := c.doOnce(ctx, path, body)
		if err == nil {
			if uErr := json.Unmarshal(raw, out); uErr != nil {
				return apierr.Upstream("groq", resp.StatusCode, fmt.Errorf("decode response: %w", uErr))
			}
			return nil
		}

		if !httpx.IsRetryableError(err) || attempt == c.maxRetries {
			var he *groqHTTPError
			status := 0
			if errors.As(err, &he) {
				status = he.StatusCode
			}
			return apierr.Upstream("groq", status, err)
		}

		sleepFor := httpx.JitterSleep(httpx.RetryAfterDuration(resp, backoff, 10*time.Second))
		c.log.Warn("groq request retrying",
			"path", path,
			"attempt", attempt+1,
			"sleep", sleepFor.String(),
			"error", err.Error(),
		)
		time.Sleep(sleepFor)
		backoff *= 2
	}
	return fmt.Errorf("unreachable retry loop")
}

func (c *client) doOnce(ctx context.Context, path string, body any) (*http.Response, []byte, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return nil, nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, err
	}

	raw, readErr := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if readErr != nil {
		return resp, nil, readErr
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return resp, raw, &groqHTTPError{StatusCode: resp.StatusCode, Body: string(raw)}
	}
	return resp, raw, nil
}

// stripFences removes a markdown code fence if the model wrapped its
// JSON in one despite response_format.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
