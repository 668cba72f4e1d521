package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"travel-portal/types/review"

	"google.golang.org/genai"
)

// ErrDisabled is returned when no Gemini API key is configured.
var ErrDisabled = errors.New("reply assistant is not configured")

// Generator turns a prompt into text.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Gemini generates text with the Gemini API.
type Gemini struct {
	apiKey string
	model  string
}

func NewGemini(apiKey, model string) *Gemini {
	if model == "" {
		model = "gemini-2.5-flash-lite"
	}
	return &Gemini{apiKey: apiKey, model: model}
}

func (g *Gemini) Generate(ctx context.Context, prompt string) (string, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  g.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return "", fmt.Errorf("failed to create Gemini client: %w", err)
	}

	result, err := client.Models.GenerateContent(
		ctx,
		g.model,
		[]*genai.Content{{Parts: []*genai.Part{{Text: prompt}}}},
		&genai.GenerateContentConfig{
			Temperature: genai.Ptr(float32(0.4)),
		},
	)
	if err != nil {
		return "", fmt.Errorf("failed to generate reply: %w", err)
	}

	if len(result.Candidates) == 0 || result.Candidates[0].Content == nil || len(result.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no content generated")
	}
	return result.Candidates[0].Content.Parts[0].Text, nil
}

// Assistant drafts travel agent replies to reviews.
type Assistant struct {
	gen Generator
}

// New returns an Assistant; gen may be nil, in which case every draft
// fails with ErrDisabled.
func New(gen Generator) *Assistant {
	return &Assistant{gen: gen}
}

// DraftReply proposes a reply for the agent to edit before sending.
func (a *Assistant) DraftReply(ctx context.Context, r review.Review, packageTitle string) (string, error) {
	if a == nil || a.gen == nil {
		return "", ErrDisabled
	}

	text, err := a.gen.Generate(ctx, Prompt(r, packageTitle))
	if err != nil {
		return "", err
	}
	reply := Clean(text)
	if reply == "" {
		return "", fmt.Errorf("empty reply generated")
	}
	return reply, nil
}

// Prompt is the instruction sent for a review.
func Prompt(r review.Review, packageTitle string) string {
	var b strings.Builder
	b.WriteString("You are a travel agent replying publicly to a customer review. ")
	b.WriteString("Write a short, polite reply of at most three sentences. ")
	b.WriteString("Thank the customer, address any complaint specifically, and do not promise refunds or discounts. ")
	b.WriteString("Return only the reply text.\n\n")
	if packageTitle != "" {
		fmt.Fprintf(&b, "Package: %s\n", packageTitle)
	}
	fmt.Fprintf(&b, "Rating: %d/5\n", r.Rating)
	fmt.Fprintf(&b, "Review: %s\n", strings.TrimSpace(r.Comment))
	return b.String()
}

// Clean strips code fences and surrounding quotes models sometimes add.
func Clean(text string) string {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```") && strings.HasSuffix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		text = strings.TrimSuffix(text, "```")
		if i := strings.IndexByte(text, '\n'); i >= 0 && !strings.Contains(text[:i], " ") {
			text = text[i+1:]
		}
		text = strings.TrimSpace(text)
	}
	if len(text) >= 2 && text[0] == '"' && text[len(text)-1] == '"' {
		text = strings.TrimSpace(text[1 : len(text)-1])
	}
	return text
}
