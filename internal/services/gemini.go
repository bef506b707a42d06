package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"google.golang.org/genai"
)

type geminiClient struct {
	client      *genai.Client
	modelName   string
	temperature float32
	timeout     time.Duration
}

// NewGeminiClient builds an AIClient backed by the Gemini API. baseURL is
// only set when pointing at a non default host.
func NewGeminiClient(ctx context.Context, apiKey, model string, temperature float64, timeout time.Duration, baseURL string) (AIClient, error) {
	cfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if baseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: baseURL}
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &geminiClient{
		client:      client,
		modelName:   model,
		temperature: float32(temperature),
		timeout:     timeout,
	}, nil
}

// Complete implements AIClient.
func (g *geminiClient) Complete(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	temperature := g.temperature
	config := &genai.GenerateContentConfig{
		Temperature: &temperature,
	}

	log.Println("🤖 Sending request to Gemini...")
	resp, err := g.client.Models.GenerateContent(ctx, g.modelName, genai.Text(prompt), config)
	if err != nil {
		return "", fmt.Errorf("gemini generate content: %w", err)
	}

	if resp == nil {
		log.Println("⚠️  Gemini returned a nil response, returning empty analysis")
		return "", nil
	}

	text := resp.Text()
	if text == "" {
		log.Println("⚠️  Gemini response has no text content, returning empty analysis")
	}

	return text, nil
}
