package provider

import (
	"context"
	"fmt"
	"sync"
)

// ImageBackend is the remote text-to-image capability. Implementations treat
// the request as already clamped and do no parameter validation of their own.
type ImageBackend interface {
	TextToImage(ctx context.Context, req TextToImageRequest) ([]byte, error)
}

// VideoBackend is the remote text-to-video capability.
type VideoBackend interface {
	TextToVideo(ctx context.Context, req TextToVideoRequest) ([]byte, error)
}

type TextToImageRequest struct {
	Model          string
	Prompt         string
	NegativePrompt string

	Steps    int
	Guidance float64
	Width    int
	Height   int
	Seed     *int64

	// Token authenticates against the router; Provider optionally pins a
	// specific routing provider, empty means the default router.
	Token    string
	Provider string
}

type TextToVideoRequest struct {
	Model  string
	Prompt string

	Token    string
	Provider string
}

// Registry maps backend names to implementations. A registered value may
// implement either or both capabilities; callers assert the one they need.
type Registry struct {
	mu       sync.RWMutex
	backends map[string]any
}

func NewRegistry() *Registry {
	return &Registry{backends: map[string]any{}}
}

func (r *Registry) Register(name string, b any) error {
	if name == "" {
		return fmt.Errorf("backend name is required")
	}
	if b == nil {
		return fmt.Errorf("backend %q is nil", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.backends[name]; exists {
		return fmt.Errorf("backend %q already registered", name)
	}

	r.backends[name] = b
	return nil
}

func (r *Registry) Get(name string) (any, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.backends[name]
	return b, ok
}

var defaultRegistry = NewRegistry()

func Register(name string, b any) error {
	return defaultRegistry.Register(name, b)
}

func Get(name string) (any, bool) {
	return defaultRegistry.Get(name)
}
