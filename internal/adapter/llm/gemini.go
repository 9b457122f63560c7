package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"

	"pdfqa/internal/domain"
	"pdfqa/internal/port"
)

var _ port.LLM = (*GeminiClient)(nil)

const DefaultGeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// GeminiClient calls the Gemini generateContent endpoint.
type GeminiClient struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiGenerationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type geminiRequest struct {
	Contents         []geminiContent        `json:"contents"`
	GenerationConfig geminiGenerationConfig `json:"generationConfig"`
}

type geminiResponse struct {
	Candidates []struct {
		Content *geminiContent `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// NewGeminiClient reads the API key from apiKeyEnv.
func NewGeminiClient(apiKeyEnv, model, baseURL string) (*GeminiClient, error) {
	apiKey := os.Getenv(apiKeyEnv)
	if apiKey == "" {
		return nil, fmt.Errorf("API key not found in environment variable: %s", apiKeyEnv)
	}
	if baseURL == "" {
		baseURL = DefaultGeminiBaseURL
	}
	return &GeminiClient{
		apiKey:  apiKey,
		model:   model,
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{},
	}, nil
}

// Generate sends prompt as a single user turn. Deadlines come from ctx.
func (c *GeminiClient) Generate(ctx context.Context, prompt string, opts port.GenerateOptions) (string, error) {
	reqBody := geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
		GenerationConfig: geminiGenerationConfig{
			Temperature:     opts.Temperature,
			MaxOutputTokens: opts.MaxTokens,
		},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, url.PathEscape(c.model))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: request failed: %v", domain.ErrGeneration, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: failed to read response: %v", domain.ErrGeneration, err)
	}

	var genResp geminiResponse
	decodeErr := json.Unmarshal(body, &genResp)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := truncate(body, 200)
		if decodeErr == nil && genResp.Error != nil {
			msg = genResp.Error.Message
		}
		return "", &StatusError{Provider: "gemini", Code: resp.StatusCode, Message: msg}
	}

	if decodeErr != nil {
		return "", fmt.Errorf("%w: %w: failed to parse response (body: %s): %v", domain.ErrGeneration, ErrMalformedResponse, truncate(body, 200), decodeErr)
	}
	if len(genResp.Candidates) == 0 {
		return "", fmt.Errorf("%w: no candidates", domain.ErrEmptyGeneration)
	}
	if genResp.Candidates[0].Content == nil || len(genResp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("%w: %w: candidate has no content", domain.ErrGeneration, ErrMalformedResponse)
	}

	text := strings.TrimSpace(genResp.Candidates[0].Content.Parts[0].Text)
	if text == "" {
		return "", fmt.Errorf("%w: empty candidate text", domain.ErrEmptyGeneration)
	}
	return text, nil
}

func (c *GeminiClient) ModelName() string {
	return c.model
}
