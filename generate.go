package imagine

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/imagine-dev/imagine/internal/placeholder"
	"github.com/imagine-dev/imagine/internal/provider"
)

type GenerateImageRequest struct {
	Prompt         string
	NegativePrompt string
	Model          string

	Width    int
	Height   int
	Steps    int
	Guidance float64
	// Seed nil or negative means "let the provider choose".
	Seed *int64

	Credential Credential

	// Backend names a registered remote backend; empty means the default
	// inference router. Missing backends degrade to demo mode rather than
	// failing.
	Backend string

	// Timeout bounds the whole call when positive. The orchestrator itself
	// imposes none; the surrounding surface decides.
	Timeout time.Duration
}

type GenerateVideoRequest struct {
	Prompt string
	Model  string

	Credential Credential
	Backend    string
	Timeout    time.Duration
}

// GenerateImage runs one generation attempt to a terminal result. Remote
// failures never surface as errors: they degrade into a placeholder result
// with a status message. The returned error is reserved for caller-contract
// violations (blank prompt, unregistered model), reported before any network
// attempt.
func GenerateImage(ctx context.Context, req GenerateImageRequest) (*GenerationResult, error) {
	ctx, cancel := applyTimeout(ctx, req.Timeout)
	defer cancel()

	if strings.TrimSpace(req.Prompt) == "" {
		return nil, fmt.Errorf("prompt is required")
	}
	if req.Model == "" {
		req.Model = DefaultImageModel
	}
	preset, err := LookupPreset(req.Model)
	if err != nil {
		return nil, err
	}
	req.Prompt = strings.TrimSpace(req.Prompt)
	req = clampImageRequest(req, preset)

	backend, _ := imageBackend(req.Backend)
	caps := capabilitySet{
		kind:       KindImage,
		remoteMIME: "image/png",
		placeholder: func() ([]byte, string, error) {
			data, err := placeholder.Image(req.Prompt, req.Width, req.Height)
			return data, "image/png", err
		},
	}
	if backend != nil {
		wire := provider.TextToImageRequest{
			Model:          req.Model,
			Prompt:         req.Prompt,
			NegativePrompt: req.NegativePrompt,
			Steps:          req.Steps,
			Guidance:       req.Guidance,
			Width:          req.Width,
			Height:         req.Height,
			Seed:           req.Seed,
		}
		caps.remote = func(ctx context.Context, cred Credential) ([]byte, error) {
			wire.Token = cred.Token
			wire.Provider = cred.Provider
			return backend.TextToImage(ctx, wire)
		}
	}
	return run(ctx, req.Credential, caps), nil
}

// GenerateVideo is the video specialization of the same orchestration.
func GenerateVideo(ctx context.Context, req GenerateVideoRequest) (*GenerationResult, error) {
	ctx, cancel := applyTimeout(ctx, req.Timeout)
	defer cancel()

	if strings.TrimSpace(req.Prompt) == "" {
		return nil, fmt.Errorf("prompt is required")
	}
	if req.Model == "" {
		req.Model = DefaultVideoModel
	}
	if _, err := LookupPreset(req.Model); err != nil {
		return nil, err
	}
	req.Prompt = strings.TrimSpace(req.Prompt)

	backend, _ := videoBackend(req.Backend)
	caps := capabilitySet{
		kind:        KindVideo,
		remoteMIME:  "video/mp4",
		placeholder: placeholder.Clip,
	}
	if backend != nil {
		wire := provider.TextToVideoRequest{Model: req.Model, Prompt: req.Prompt}
		caps.remote = func(ctx context.Context, cred Credential) ([]byte, error) {
			wire.Token = cred.Token
			wire.Provider = cred.Provider
			return backend.TextToVideo(ctx, wire)
		}
	}
	return run(ctx, req.Credential, caps), nil
}

// capabilitySet is everything the orchestrator needs for one artifact kind.
// Image and video share the identical decision tree; only the capabilities
// differ.
type capabilitySet struct {
	kind        ArtifactKind
	remoteMIME  string
	remote      func(ctx context.Context, cred Credential) ([]byte, error)
	placeholder func() (data []byte, mime string, err error)
}

const statusDemoMode = "demo mode: no credential; showing a locally rendered placeholder"

// run drives attempt, fallback and degradation to a terminal result. It
// cannot fail: every failure is captured into the result's status.
func run(ctx context.Context, cred Credential, caps capabilitySet) *GenerationResult {
	if cred.Token == "" || caps.remote == nil {
		return degrade(caps, statusDemoMode)
	}

	data, err := caps.remote(ctx, cred)
	if err == nil {
		return &GenerationResult{Bytes: data, Kind: caps.kind, MIME: caps.remoteMIME, Source: SourceRemote}
	}

	// A provider override that gets refused for the model/operation pair is
	// recoverable by dropping the override and letting the default router
	// pick. One retry, one direction; anything beyond that would mask real
	// configuration errors.
	if cred.Provider != "" && IsRouteRejection(err) {
		retry := cred
		retry.Provider = ""
		data, retryErr := caps.remote(ctx, retry)
		if retryErr == nil {
			return &GenerationResult{
				Bytes:  data,
				Kind:   caps.kind,
				MIME:   caps.remoteMIME,
				Source: SourceRemote,
				Status: fmt.Sprintf("provider %q rejected the route; generated via the default router", cred.Provider),
			}
		}
		err = retryErr
	}

	return degrade(caps, fmt.Sprintf("generation failed: %v; showing placeholder", mapBackendError(err)))
}

// degrade is the last line of defense: synthesize locally, and if even that
// fails hand back an empty result with a warning rather than an error.
func degrade(caps capabilitySet, status string) *GenerationResult {
	data, mime, err := caps.placeholder()
	if err != nil || len(data) == 0 {
		cause := &Error{Code: CodePlaceholderUnavailable, Message: "placeholder synthesis produced no data", Cause: err}
		return &GenerationResult{
			Kind:   caps.kind,
			Source: SourceNone,
			Status: status + "; " + cause.Error(),
		}
	}
	return &GenerationResult{
		Bytes:  data,
		Kind:   caps.kind,
		MIME:   mime,
		Source: SourcePlaceholder,
		Status: status,
	}
}
