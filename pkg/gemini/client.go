// Package gemini provides a client for the Google Gemini generative API.
package gemini

import (
	"context"
	"errors"
	"os"

	"github.com/rotisserie/eris"
	"google.golang.org/genai"
)

// APIKeyEnvVar is the environment variable the credential is resolved from.
const APIKeyEnvVar = "GOOGLE_API_KEY"

// ErrMissingAPIKey is returned when no credential is configured. This is a
// configuration error: it surfaces from NewClient before any network
// attempt and is never retried.
var ErrMissingAPIKey = eris.Errorf("gemini: %s not set", APIKeyEnvVar)

// Client defines the Gemini operations used by the pipeline.
type Client interface {
	// Generate sends one prompt to the named model and returns the raw text
	// of the first candidate.
	Generate(ctx context.Context, model, prompt string) (string, error)
	// ListModels returns the names of models that support content generation.
	ListModels(ctx context.Context) ([]string, error)
}

// Option configures the client.
type Option func(*apiClient)

// WithAPIKey overrides the environment credential.
func WithAPIKey(key string) Option {
	return func(c *apiClient) {
		c.apiKey = key
	}
}

type apiClient struct {
	apiKey string
	genai  *genai.Client
}

// NewClient creates a Gemini client. The credential comes from the
// GOOGLE_API_KEY environment variable unless overridden; its absence fails
// here, before any batch work begins.
func NewClient(ctx context.Context, opts ...Option) (Client, error) {
	c := &apiClient{apiKey: os.Getenv(APIKeyEnvVar)}
	for _, opt := range opts {
		opt(c)
	}
	if c.apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		Backend: genai.BackendGeminiAPI,
		APIKey:  c.apiKey,
	})
	if err != nil {
		return nil, eris.Wrap(err, "gemini: create client")
	}
	c.genai = gc
	return c, nil
}

func (c *apiClient) Generate(ctx context.Context, model, prompt string) (string, error) {
	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{genai.NewPartFromText(prompt)}, genai.RoleUser),
	}

	resp, err := c.genai.Models.GenerateContent(ctx, model, contents, nil)
	if err != nil {
		return "", eris.Wrap(err, "gemini: generate content")
	}

	if len(resp.Candidates) == 0 {
		return "", eris.New("gemini: no candidates in response")
	}
	cand := resp.Candidates[0]
	if cand.Content == nil || len(cand.Content.Parts) == 0 {
		return "", eris.New("gemini: no parts in candidate content")
	}
	text := cand.Content.Parts[0].Text
	if text == "" {
		return "", eris.New("gemini: empty text in first part")
	}
	return text, nil
}

func (c *apiClient) ListModels(ctx context.Context) ([]string, error) {
	var names []string
	for m, err := range c.genai.Models.All(ctx) {
		if err != nil {
			return nil, eris.Wrap(err, "gemini: list models")
		}
		for _, action := range m.SupportedActions {
			if action == "generateContent" {
				names = append(names, m.Name)
				break
			}
		}
	}
	return names, nil
}

// IsPermanent reports whether err is a request error that will fail the same
// way on every attempt: a missing credential or a client-side (4xx, non-429)
// API rejection such as a malformed prompt.
func IsPermanent(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrMissingAPIKey) {
		return true
	}
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code >= 400 && apiErr.Code < 500 && apiErr.Code != 429
	}
	return false
}
