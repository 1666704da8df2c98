package Gemini

import (
	"context"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/AnmolGhill/Halo/ApiErrors"
)

// Generator is the single capability the rest of the service needs from the
// model provider. Tests substitute counting doubles for it.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type Client struct {
	client  *genai.Client
	model   string
	timeout time.Duration
}

func NewClient(ctx context.Context, apiKey, model string) (*Client, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("initialize gemini client: %w", err)
	}
	return &Client{client: client, model: model, timeout: 30 * time.Second}, nil
}

// Generate sends one prompt and returns the normalized text. One call per
// inbound request, no retries; a timeout kills the request, not the process.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), nil)
	if err != nil {
		return "", ApiErrors.Wrap(ApiErrors.Upstream, "I apologize, but I'm having trouble processing your request right now. Please try again later or consult with a healthcare professional for medical concerns.", err)
	}
	return Normalize(resp)
}

// Normalize extracts usable text from a provider response: the aggregated
// text accessor first, then a manual walk of the candidate structure. Neither
// yielding text is an empty-response failure, not a crash.
func Normalize(resp *genai.GenerateContentResponse) (string, error) {
	if resp != nil {
		if len(resp.Candidates) > 0 && resp.Candidates[0] != nil {
			if text := strings.TrimSpace(resp.Text()); text != "" {
				return text, nil
			}
		}
		for _, candidate := range resp.Candidates {
			if candidate == nil || candidate.Content == nil {
				continue
			}
			for _, part := range candidate.Content.Parts {
				if part == nil {
					continue
				}
				if text := strings.TrimSpace(part.Text); text != "" {
					return text, nil
				}
			}
		}
	}
	return "", ApiErrors.New(ApiErrors.EmptyResponse, "No response received from the model")
}
