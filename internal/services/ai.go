package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/velmora/brandpulse-backend/internal/clients/apify"
	"github.com/velmora/brandpulse-backend/internal/clients/groq"
	"github.com/velmora/brandpulse-backend/internal/domain"
	"github.com/velmora/brandpulse-backend/internal/platform/logger"
)

// AIService derives brand intelligence from scraped data. Enrichment
// must never take the pipeline down: any model failure degrades to a
// neutral profile instead of an error.
type AIService interface {
	EnrichProfile(ctx context.Context, profile *apify.Profile, recentCaptions []string) *domain.EnrichedProfile
	GenerateSearchKeywords(ctx context.Context, client *domain.Client) []string
}

type aiService struct {
	log  *logger.Logger
	groq groq.Client
}

// NewAIService tolerates a nil groq client; every method then takes its
// fallback path.
func NewAIService(baseLog *logger.Logger, groqClient groq.Client) AIService {
	return &aiService{
		log:  baseLog.With("service", "AIService"),
		groq: groqClient,
	}
}

const enrichSystemPrompt = `You are a social media brand analyst. Given an Instagram profile and recent post captions, respond with a JSON object containing exactly these keys:
"category" (string, broad industry), "sub_category" (string, narrower niche), "niche_description" (string, one sentence), "content_strategy" (array of 3-5 short strings), "location" (string, best guess or empty), "target_audience" (string, one sentence), "tone_of_voice" (string, a few words), "key_competitors" (array of 3-5 instagram handles without @).`

func (s *aiService) EnrichProfile(ctx context.Context, profile *apify.Profile, recentCaptions []string) *domain.EnrichedProfile {
	if s.groq == nil {
		s.log.Warn("groq client not configured, using neutral enrichment")
		return neutralEnrichment()
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Username: %s\nName: %s\nBio: %s\nFollowers: %d\nPosts: %d\n",
		profile.Username, profile.FullName, profile.Bio, profile.FollowersCount, profile.PostsCount)
	if len(recentCaptions) > 0 {
		sb.WriteString("Recent captions:\n")
		for i, c := range recentCaptions {
			if i >= 10 {
				break
			}
			fmt.Fprintf(&sb, "- %s\n", strings.TrimSpace(c))
		}
	}

	raw, err := s.groq.GenerateJSON(ctx, enrichSystemPrompt, sb.String())
	if err != nil {
		s.log.Warn("profile enrichment failed, using neutral enrichment", "username", profile.Username, "error", err)
		return neutralEnrichment()
	}

	enriched := decodeEnrichment(raw)
	if enriched.Category == "" {
		enriched.Category = "General"
	}
	return enriched
}

const keywordSystemPrompt = `You are a social media growth strategist. Given a brand profile, respond with a JSON object {"keywords": [...]} containing at most 3 short search keywords for finding competitor accounts in the same niche.`

// GenerateSearchKeywords returns at most 3 keywords. On any failure it
// falls back to the client's category and sub-category.
func (s *aiService) GenerateSearchKeywords(ctx context.Context, client *domain.Client) []string {
	fallback := keywordFallback(client)
	if s.groq == nil {
		return fallback
	}

	user := fmt.Sprintf("Brand: %s\nCategory: %s\nSub-category: %s\nNiche: %s\nAudience: %s",
		client.Name, client.Category, client.SubCategory, client.NicheDescription, client.TargetAudience)

	raw, err := s.groq.GenerateJSON(ctx, keywordSystemPrompt, user)
	if err != nil {
		s.log.Warn("keyword generation failed, using fallback", "client_id", client.ID, "error", err)
		return fallback
	}

	keywords := stringSlice(raw["keywords"])
	if len(keywords) == 0 {
		return fallback
	}
	if len(keywords) > 3 {
		keywords = keywords[:3]
	}
	return keywords
}

func keywordFallback(client *domain.Client) []string {
	var out []string
	for _, kw := range []string{client.Category, client.SubCategory} {
		if kw = strings.TrimSpace(kw); kw != "" {
			out = append(out, kw)
		}
	}
	return out
}

func neutralEnrichment() *domain.EnrichedProfile {
	return &domain.EnrichedProfile{
		Category:         "General",
		SubCategory:      "",
		NicheDescription: "",
		ContentStrategy:  []string{},
		KeyCompetitors:   []string{},
	}
}

func decodeEnrichment(raw map[string]any) *domain.EnrichedProfile {
	return &domain.EnrichedProfile{
		Category:         stringField(raw, "category"),
		SubCategory:      stringField(raw, "sub_category", "subCategory"),
		NicheDescription: stringField(raw, "niche_description", "nicheDescription"),
		ContentStrategy:  stringSlice(firstField(raw, "content_strategy", "contentStrategy")),
		Location:         stringField(raw, "location"),
		TargetAudience:   stringField(raw, "target_audience", "targetAudience"),
		ToneOfVoice:      stringField(raw, "tone_of_voice", "toneOfVoice"),
		KeyCompetitors:   stringSlice(firstField(raw, "key_competitors", "keyCompetitors")),
	}
}

func stringField(raw map[string]any, keys ...string) string {
	v := firstField(raw, keys...)
	s, _ := v.(string)
	return strings.TrimSpace(s)
}

func firstField(raw map[string]any, keys ...string) any {
	for _, k := range keys {
		if v, ok := raw[k]; ok && v != nil {
			return v
		}
	}
	return nil
}

func stringSlice(v any) []string {
	out := []string{}
	switch arr := v.(type) {
	case []any:
		for _, item := range arr {
			if s, ok := item.(string); ok {
				if s = strings.TrimSpace(s); s != "" {
					out = append(out, s)
				}
			}
		}
	case []string:
		for _, s := range arr {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
	case json.RawMessage:
		var decoded []string
		if err := json.Unmarshal(arr, &decoded); err == nil {
			return stringSlice(decoded)
		}
	}
	return out
}
