package pipeline

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"server/internal/providers/genai"
)

// ModelClient is the slice of the Gemini client the pipeline depends on.
type ModelClient interface {
	GenerateText(ctx context.Context, req genai.TextRequest) (*genai.TextResult, error)
	GenerateImage(ctx context.Context, prompt string) (*genai.InlineImage, error)
	EditImage(ctx context.Context, imageData, mimeType, instruction string) (*genai.InlineImage, error)
}

// Service orchestrates the three generation operations. It is stateless; all
// pipeline state between calls lives with the client.
type Service struct {
	ai ModelClient
}

// NewService builds a Service on top of the given model client.
func NewService(ai ModelClient) *Service {
	return &Service{ai: ai}
}

// Research asks the text model to research a topic with web search enabled and
// parses the response into facts, an image prompt and deduplicated citations.
func (s *Service) Research(ctx context.Context, req ResearchRequest) (*ResearchResult, error) {
	levelDirective := LevelDirective(req.Level)
	styleDirective := StyleDirective(req.Style)

	result, err := s.ai.GenerateText(ctx, genai.TextRequest{
		Prompt:    buildResearchPrompt(req.Topic, levelDirective, styleDirective, req.Language),
		WebSearch: true,
	})
	if err != nil {
		return nil, err
	}

	facts, imagePrompt := parseResearchText(result.Text)
	if imagePrompt == "" {
		imagePrompt = fmt.Sprintf("Create a detailed infographic about %s. %s %s", req.Topic, levelDirective, styleDirective)
	}

	return &ResearchResult{
		ImagePrompt:   imagePrompt,
		Facts:         facts,
		SearchResults: dedupeSearchResults(result.Grounding),
	}, nil
}

func buildResearchPrompt(topic, levelDirective, styleDirective string, lang Language) string {
	var sb strings.Builder
	sb.WriteString("You are an expert visual researcher.\n")
	fmt.Fprintf(&sb, "Your goal is to research the topic: %q and create a plan for an infographic.\n\n", topic)
	sb.WriteString("**IMPORTANT: Use the Google Search tool to find the most accurate, up-to-date information about this topic.**\n\n")
	sb.WriteString("Context:\n")
	sb.WriteString(levelDirective)
	sb.WriteString("\n")
	sb.WriteString(styleDirective)
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "Language: %s\n\n", lang)
	sb.WriteString("Please provide your response in the following format EXACTLY:\n\n")
	sb.WriteString("FACTS:\n- [Fact 1]\n- [Fact 2]\n- [Fact 3]\n\n")
	sb.WriteString("IMAGE_PROMPT:\n[A highly detailed image generation prompt describing the visual composition, colors, and layout for the infographic. Do not include citations in the prompt.]")
	return sb.String()
}

// The parser extracts exactly two labeled sections and nothing more. It never
// fails: a missing FACTS section yields no facts, a missing IMAGE_PROMPT
// marker yields an empty prompt which the caller replaces with a synthesized
// default.
var (
	factsRe  = regexp.MustCompile(`(?is)FACTS:\s*(.*?)(?:IMAGE_PROMPT:|$)`)
	promptRe = regexp.MustCompile(`(?is)IMAGE_PROMPT:\s*(.*)$`)
)

const maxFacts = 5

func parseResearchText(text string) (facts []string, imagePrompt string) {
	if m := factsRe.FindStringSubmatch(text); m != nil {
		for _, line := range strings.Split(strings.TrimSpace(m[1]), "\n") {
			line = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), "-"))
			if line == "" {
				continue
			}
			facts = append(facts, line)
			if len(facts) == maxFacts {
				break
			}
		}
	}
	if m := promptRe.FindStringSubmatch(text); m != nil {
		imagePrompt = strings.TrimSpace(m[1])
	}
	return facts, imagePrompt
}

// dedupeSearchResults drops chunks missing a title or url and keeps the first
// occurrence per url, preserving its title.
func dedupeSearchResults(chunks []genai.GroundingChunk) []SearchResult {
	seen := make(map[string]struct{}, len(chunks))
	var out []SearchResult
	for _, chunk := range chunks {
		if chunk.URL == "" || chunk.Title == "" {
			continue
		}
		if _, ok := seen[chunk.URL]; ok {
			continue
		}
		seen[chunk.URL] = struct{}{}
		out = append(out, SearchResult{Title: chunk.Title, URL: chunk.URL})
	}
	return out
}
