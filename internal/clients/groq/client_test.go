package groq

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/velmora/brandpulse-backend/internal/platform/apierr"
	"github.com/velmora/brandpulse-backend/internal/platform/logger"
)

func testClient(t *testing.T, baseURL string) *client {
	t.Helper()
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return &client{
		log:        log,
		baseURL:    baseURL,
		apiKey:     "key",
		model:      "llama-3.3-70b-versatile",
		httpClient: &http.Client{Timeout: 5 * time.Second},
		maxRetries: 0,
	}
}

func chatReply(content string) any {
	return map[string]any{
		"choices": []any{
			map[string]any{"message": map[string]any{"content": content}},
		},
	}
}

func TestGenerateJSONForcesResponseFormat(t *testing.T) {
	var req chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&req)
		_ = json.NewEncoder(w).Encode(chatReply(`{"category": "Beauty"}`))
	}))
	defer srv.Close()

	c := testClient(t, srv.URL)
	out, err := c.GenerateJSON(context.Background(), "system", "user")
	if err != nil {
		t.Fatalf("GenerateJSON: %v", err)
	}
	if out["category"] != "Beauty" {
		t.Fatalf("unexpected payload %v", out)
	}
	if req.ResponseFormat == nil || req.ResponseFormat.Type != "json_object" {
		t.Fatalf("response_format not requested: %+v", req.ResponseFormat)
	}
	if req.Temperature != 0.3 {
		t.Fatalf("unexpected temperature %v", req.Temperature)
	}
}

func TestGenerateJSONStripsFences(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(chatReply("```json\n{\"keywords\": [\"a\"]}\n```"))
	}))
	defer srv.Close()

	c := testClient(t, srv.URL)
	out, err := c.GenerateJSON(context.Background(), "system", "user")
	if err != nil {
		t.Fatalf("GenerateJSON: %v", err)
	}
	if _, ok := out["keywords"]; !ok {
		t.Fatalf("fenced json not decoded: %v", out)
	}
}

func TestGenerateTextUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad key", http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := testClient(t, srv.URL)
	_, err := c.GenerateText(context.Background(), "system", "user")
	if !apierr.IsUpstream(err) {
		t.Fatalf("expected upstream error, got %v", err)
	}
}

func TestNewClientRequiresKey(t *testing.T) {
	t.Setenv("GROQ_API_KEY", "")
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	if _, err := NewClient(log); !apierr.IsConfiguration(err) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestStripFences(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{`{"a":1}`, `{"a":1}`},
		{"```json\n{\"a\":1}\n```", `{"a":1}`},
		{"```\n{\"a\":1}\n```", `{"a":1}`},
		{"  {\"a\":1}  ", `{"a":1}`},
	}
	for _, tc := range cases {
		if got := stripFences(tc.in); got != tc.want {
			t.Fatalf("stripFences(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
