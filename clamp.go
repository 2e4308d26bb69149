package imagine

import "strings"

const (
	// minDimension is the smallest edge any surface offers; the clamp
	// enforces the inclusive bound only. Quantization to sizeStep is a UI
	// concern.
	minDimension = 384
	sizeStep     = 64
)

// clampImageRequest normalizes user-supplied parameters against the model's
// preset. Pure and idempotent: clamping an already-clamped request is a
// no-op.
func clampImageRequest(req GenerateImageRequest, preset ModelPreset) GenerateImageRequest {
	req.Steps = clampSteps(req.Steps, preset)
	req.Width = clampDimension(req.Width, preset.MaxSize)
	req.Height = clampDimension(req.Height, preset.MaxSize)
	if req.Seed != nil && *req.Seed < 0 {
		// Negative seed is the "let the provider choose" sentinel.
		req.Seed = nil
	}
	if strings.TrimSpace(req.NegativePrompt) == "" {
		req.NegativePrompt = ""
	}
	return req
}

func clampSteps(steps int, preset ModelPreset) int {
	if steps == 0 {
		steps = preset.DefaultSteps
	}
	if steps > preset.MaxSteps {
		steps = preset.MaxSteps
	}
	if steps < 1 {
		steps = 1
	}
	return steps
}

func clampDimension(v, max int) int {
	if v < minDimension {
		return minDimension
	}
	if v > max {
		return max
	}
	return v
}
