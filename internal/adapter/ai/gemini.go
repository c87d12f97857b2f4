package ai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"google.golang.org/genai"
)

const defaultModel = "gemini-2.0-flash"

const qaPrompt = `You are an AI assistant that answers questions about deceased persons based on their profile data.

Profile Data: %s

Question: %s

Answer:`

// GeminiAnswerer answers profile questions through the Gemini API. One
// request, one blocking response; no retries and no caching.
type GeminiAnswerer struct {
	client *genai.Client
	model  string
}

func NewGeminiAnswerer(ctx context.Context, apiKey string, model string) (*GeminiAnswerer, error) {
	if apiKey == "" {
		return nil, errors.New("Gemini API key is required")
	}

	if model == "" {
		model = defaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
		HTTPClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	})

	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiAnswerer{
		client: client,
		model:  model,
	}, nil
}

func (g *GeminiAnswerer) Ask(ctx context.Context, profileData string, question string) (string, error) {
	prompt := fmt.Sprintf(qaPrompt, profileData, question)

	contents := []*genai.Content{
		genai.NewContentFromText(prompt, genai.RoleUser),
	}

	result, err := g.client.Models.GenerateContent(ctx, g.model, contents, nil)

	if err != nil {
		return "", fmt.Errorf("Gemini generation failed: %w", err)
	}

	answer := result.Text()

	if answer == "" {
		return "", errors.New("Gemini returned an empty answer")
	}

	return answer, nil
}
