package ai

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/genai"

	"github.com/julianstephens/ledger/internal/constants"
	"github.com/julianstephens/ledger/internal/logger"
)

// generator is the slice of the genai client the enricher needs
type generator interface {
	Generate(ctx context.Context, model, prompt string) (string, error)
}

type genaiGenerator struct {
	client *genai.Client
}

func (g genaiGenerator) Generate(ctx context.Context, model, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}
	return resp.Text(), nil
}

// Gemini is an Enricher backed by the Google Gemini API
type Gemini struct {
	gen     generator
	model   string
	timeout time.Duration
}

// NewGemini creates a Gemini enricher.
func NewGemini(ctx context.Context, apiKey, model string, timeout time.Duration) (*Gemini, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("GenAI API key is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	return newGemini(genaiGenerator{client: client}, model, timeout), nil
}

func newGemini(gen generator, model string, timeout time.Duration) *Gemini {
	if model == "" {
		model = constants.DefaultAIModel
	}
	if timeout <= 0 {
		timeout = constants.DefaultAITimeout
	}
	return &Gemini{gen: gen, model: model, timeout: timeout}
}

func (g *Gemini) Available() bool { return true }

// Model returns the model name requests are sent to.
func (g *Gemini) Model() string { return g.model }

// SmartTags asks the model for hashtags describing text.
func (g *Gemini) SmartTags(ctx context.Context, text string) []string {
	if !longEnough(text) {
		return []string{}
	}
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	out, err := g.gen.Generate(ctx, g.model, tagsPrompt(text))
	if err != nil {
		logger.Warn("Smart tag generation failed", "model", g.model, "error", err)
		return []string{}
	}
	return ParseTags(out)
}

// Quest asks the model for tomorrow's objective.
func (g *Gemini) Quest(ctx context.Context, workLog string, mood constants.Mood) (string, error) {
	if !longEnough(workLog) {
		return "", questInputError()
	}
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	out, err := g.gen.Generate(ctx, g.model, questPrompt(workLog, mood))
	if err != nil {
		logger.Warn("Quest generation failed", "model", g.model, "error", err)
		return "", err
	}
	quest := ParseQuest(out)
	if quest == "" {
		return "", fmt.Errorf("model %s returned an empty quest", g.model)
	}
	return quest, nil
}
