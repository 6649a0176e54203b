package n8n

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/velmora/brandpulse-backend/internal/platform/apierr"
	"github.com/velmora/brandpulse-backend/internal/platform/envutil"
	"github.com/velmora/brandpulse-backend/internal/platform/logger"
)

// Client triggers n8n workflow webhooks. Workflows respond with loosely
// structured JSON, so payload extraction goes through an ordered shape
// chain rather than a fixed schema.
type Client interface {
	TriggerKeywordSearch(ctx context.Context, keywords []string, clientID uuid.UUID) (json.RawMessage, error)
	TriggerScript(ctx context.Context, postURL string, caption string) (string, error)
}

type client struct {
	log              *logger.Logger
	keywordSearchURL string
	scriptURL        string
	httpClient       *http.Client
}

func NewClient(log *logger.Logger) Client {
	return &client{
		log:              log.With("service", "N8NClient"),
		keywordSearchURL: strings.TrimSpace(envutil.String("N8N_KEYWORD_SEARCH_URL", "")),
		scriptURL:        strings.TrimSpace(envutil.String("N8N_SCRIPT_URL", "")),
		httpClient: &http.Client{
			Timeout: time.Duration(envutil.Int("N8N_TIMEOUT_SECONDS", 120)) * time.Second,
		},
	}
}

func (c *client) TriggerKeywordSearch(ctx context.Context, keywords []string, clientID uuid.UUID) (json.RawMessage, error) {
	if c.keywordSearchURL == "" {
		return nil, apierr.MissingConfig("N8N_KEYWORD_SEARCH_URL")
	}
	return c.post(ctx, c.keywordSearchURL, map[string]any{
		"keywords":  keywords,
		"client_id": clientID.String(),
	})
}

func (c *client) TriggerScript(ctx context.Context, postURL string, caption string) (string, error) {
	if c.scriptURL == "" {
		return "", apierr.MissingConfig("N8N_SCRIPT_URL")
	}
	raw, err := c.post(ctx, c.scriptURL, map[string]any{
		"url":     postURL,
		"caption": caption,
	})
	if err != nil {
		return "", err
	}
	text := ExtractText(raw)
	if text == "" {
		return "", apierr.Upstream("n8n", 0, fmt.Errorf("empty script payload"))
	}
	return text, nil
}

func (c *client) post(ctx context.Context, endpoint string, payload any) (json.RawMessage, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apierr.Upstream("n8n", 0, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apierr.Upstream("n8n", resp.StatusCode, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, apierr.Upstream("n8n", resp.StatusCode, fmt.Errorf("webhook: %s", strings.TrimSpace(string(raw))))
	}
	return json.RawMessage(raw), nil
}

// ExtractText pulls human-readable text out of whatever shape a workflow
// returned. Shapes are tried in order; the raw body is the last resort.
func ExtractText(raw json.RawMessage) string {
	var asString string
	if err := json.Unmarshal(raw, &asString); err == nil {
		return strings.TrimSpace(asString)
	}

	var asArray []json.RawMessage
	if err := json.Unmarshal(raw, &asArray); err == nil {
		if len(asArray) == 0 {
			return ""
		}
		return ExtractText(asArray[0])
	}

	var asObject map[string]json.RawMessage
	if err := json.Unmarshal(raw, &asObject); err != nil {
		return strings.TrimSpace(string(raw))
	}

	// Gemini-style nested parts.
	if content, ok := asObject["content"]; ok {
		var nested struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		}
		if err := json.Unmarshal(content, &nested); err == nil && len(nested.Parts) > 0 {
			if t := strings.TrimSpace(nested.Parts[0].Text); t != "" {
				return t
			}
		}
	}

	for _, key := range []string{"output", "script", "text"} {
		if v, ok := asObject[key]; ok {
			var s string
			if err := json.Unmarshal(v, &s); err == nil {
				if t := strings.TrimSpace(s); t != "" {
					return t
				}
			}
		}
	}

	return strings.TrimSpace(string(raw))
}
