// Package hf talks to the Hugging Face inference router. It is a dumb pipe:
// no clamping, no fallback decisions; it reports failures with the router's
// own message text intact so the orchestrator can reason about them.
package hf

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/imagine-dev/imagine/internal/httpx"
	"github.com/imagine-dev/imagine/internal/provider"
)

const (
	DefaultBaseURL = "https://router.huggingface.co"

	// defaultRoute is the router's own serverless backend, used when no
	// provider override is set.
	defaultRoute = "hf-inference"

	providerName = "huggingface"
)

type Client struct {
	BaseURL    string
	HTTPClient *http.Client

	// Retry applies below the orchestrator. It defaults to zero retries so
	// the orchestrator's single route fallback stays the only automatic
	// retry in the system.
	Retry httpx.RetryPolicy
}

func NewClient() *Client {
	return &Client{
		BaseURL:    DefaultBaseURL,
		HTTPClient: &http.Client{Timeout: 120 * time.Second},
	}
}

type imageParameters struct {
	NegativePrompt    string  `json:"negative_prompt,omitempty"`
	NumInferenceSteps int     `json:"num_inference_steps,omitempty"`
	GuidanceScale     float64 `json:"guidance_scale,omitempty"`
	Width             int     `json:"width,omitempty"`
	Height            int     `json:"height,omitempty"`
	Seed              *int64  `json:"seed,omitempty"`
}

type inferencePayload struct {
	Inputs     string `json:"inputs"`
	Parameters any    `json:"parameters,omitempty"`
}

// TextToImage posts the clamped request and returns raw image bytes.
func (c *Client) TextToImage(ctx context.Context, req provider.TextToImageRequest) ([]byte, error) {
	payload := inferencePayload{
		Inputs: req.Prompt,
		Parameters: imageParameters{
			NegativePrompt:    req.NegativePrompt,
			NumInferenceSteps: req.Steps,
			GuidanceScale:     req.Guidance,
			Width:             req.Width,
			Height:            req.Height,
			Seed:              req.Seed,
		},
	}
	return c.post(ctx, req.Model, req.Token, req.Provider, payload)
}

// TextToVideo posts a prompt-only request to the fixed video model.
func (c *Client) TextToVideo(ctx context.Context, req provider.TextToVideoRequest) ([]byte, error) {
	return c.post(ctx, req.Model, req.Token, req.Provider, inferencePayload{Inputs: req.Prompt})
}

func (c *Client) post(ctx context.Context, model, token, route string, payload inferencePayload) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, &provider.Error{Provider: providerName, Message: "encode request", Cause: err}
	}

	headers := http.Header{}
	if token != "" {
		headers.Set("Authorization", "Bearer "+token)
	}

	resp, err := httpx.DoJSON(ctx, c.HTTPClient, http.MethodPost, c.endpoint(model, route), body, headers, c.Retry)
	if err != nil {
		return nil, &provider.Error{Provider: providerName, Message: err.Error(), Retryable: true, Cause: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &provider.Error{Provider: providerName, Status: resp.StatusCode, Message: "read response", Cause: err}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, statusError(resp.StatusCode, data)
	}
	if len(data) == 0 {
		return nil, &provider.Error{Provider: providerName, Message: "empty response body"}
	}
	return data, nil
}

func (c *Client) endpoint(model, route string) string {
	base := c.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	if route == "" {
		route = defaultRoute
	}
	return strings.TrimRight(base, "/") + "/" + url.PathEscape(route) + "/models/" + model
}

// statusError maps an error response. The message keeps the router's text
// verbatim: downstream heuristics depend on it.
func statusError(status int, body []byte) *provider.Error {
	msg := errorMessage(body)
	if msg == "" {
		msg = fmt.Sprintf("http status %d", status)
	}

	code := ""
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		code = "unauthorized"
	case status == http.StatusTooManyRequests:
		code = "rate_limited"
	}

	return &provider.Error{
		Provider:  providerName,
		Code:      code,
		Status:    status,
		Message:   msg,
		Retryable: status == http.StatusTooManyRequests || status >= 500,
	}
}

func errorMessage(body []byte) string {
	var single struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &single); err == nil && single.Error != "" {
		return single.Error
	}
	var multi struct {
		Error []string `json:"error"`
	}
	if err := json.Unmarshal(body, &multi); err == nil && len(multi.Error) > 0 {
		return strings.Join(multi.Error, "; ")
	}
	return strings.TrimSpace(string(body))
}
