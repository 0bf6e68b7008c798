package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"venturescope/internal/config"
)

// genOptions tune a single Gemini call
type genOptions struct {
	// JSONResponse asks for application/json output
	JSONResponse bool
	// Temperature of 0 gives deterministic sampling
	Temperature *float64
	// MaxOutputTokens caps the response size; used when only a label is expected
	MaxOutputTokens int
}

// GeminiClient is the shared HTTP client for Gemini calls. One instance is
// wired into every AI-backed service so the timeout policy is applied
// uniformly.
type GeminiClient struct {
	config *config.AIConfig
	client *http.Client
}

// NewGeminiClient creates a client with the configured timeout
func NewGeminiClient(cfg *config.AIConfig) *GeminiClient {
	return &GeminiClient{
		config: cfg,
		client: &http.Client{
			Timeout: time.Duration(cfg.TimeoutMS) * time.Millisecond,
		},
	}
}

// Enabled reports whether an API key is configured
func (c *GeminiClient) Enabled() bool {
	return c.config.IsEnabled()
}

// Generate makes a request to the Gemini API and returns the first
// candidate's text
func (c *GeminiClient) Generate(ctx context.Context, modelName, prompt string, opts genOptions) (string, error) {
	genConfig := map[string]interface{}{}
	if opts.JSONResponse {
		genConfig["responseMimeType"] = "application/json"
	}
	if opts.Temperature != nil {
		genConfig["temperature"] = *opts.Temperature
	}
	if opts.MaxOutputTokens > 0 {
		genConfig["maxOutputTokens"] = opts.MaxOutputTokens
	}

	reqBody := map[string]interface{}{
		"contents": []map[string]interface{}{
			{
				"parts": []map[string]string{
					{"text": prompt},
				},
			},
		},
		"generationConfig": genConfig,
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s?key=%s", c.config.ModelEndpoint(modelName), c.config.APIKey)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gemini returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	// Parse Gemini response structure
	var geminiResp struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}

	if err := json.Unmarshal(body, &geminiResp); err != nil {
		return "", err
	}

	if len(geminiResp.Candidates) > 0 && len(geminiResp.Candidates[0].Content.Parts) > 0 {
		return geminiResp.Candidates[0].Content.Parts[0].Text, nil
	}

	return "", fmt.Errorf("empty response from Gemini")
}

func floatPtr(f float64) *float64 {
	return &f
}
