// Package gemini implements llm.Client on the official genai SDK. The
// wrapper focuses on the single request/response exchange; lifecycle and
// error presentation live in the analysis controller.
package gemini

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	genai "google.golang.org/genai"

	"geovision-backend/internal/llm"
)

// Sampling is fixed low for factual, reproducible analysis output.
const temperature float32 = 0.2

// Client calls the Gemini API with a fixed model and temperature.
type Client struct {
	cli   *genai.Client
	model string
}

// NewClient constructs a Gemini-backed client.
func NewClient(ctx context.Context, apiKey, model string) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is required")
	}
	if strings.TrimSpace(model) == "" {
		return nil, fmt.Errorf("GEMINI_MODEL is required")
	}
	cli, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}
	return &Client{cli: cli, model: model}, nil
}

// Generate submits the request as a single user turn and returns the first
// candidate's text.
func (c *Client) Generate(ctx context.Context, req llm.Request) (string, error) {
	parts := make([]*genai.Part, 0, len(req.Parts))
	for _, p := range req.Parts {
		gp, err := toGenaiPart(p)
		if err != nil {
			return "", err
		}
		parts = append(parts, gp)
	}

	cfg := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(temperature),
	}
	if req.SystemInstruction != "" {
		cfg.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: req.SystemInstruction}},
		}
	}

	resp, err := c.cli.Models.GenerateContent(ctx, c.model,
		[]*genai.Content{{Role: genai.RoleUser, Parts: parts}}, cfg)
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", llm.ErrEmptyResponse
	}
	text := resp.Candidates[0].Content.Parts[0].Text
	if strings.TrimSpace(text) == "" {
		return "", llm.ErrEmptyResponse
	}
	return text, nil
}

func toGenaiPart(p llm.Part) (*genai.Part, error) {
	switch v := p.(type) {
	case llm.TextPart:
		return &genai.Part{Text: v.Text}, nil
	case llm.BinaryPart:
		data, err := base64.StdEncoding.DecodeString(v.Data)
		if err != nil {
			return nil, fmt.Errorf("decode inline data (%s): %w", v.MimeType, err)
		}
		return &genai.Part{InlineData: &genai.Blob{Data: data, MIMEType: v.MimeType}}, nil
	default:
		return nil, fmt.Errorf("unknown part type %T", p)
	}
}
