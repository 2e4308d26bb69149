package imagine

import (
	"github.com/imagine-dev/imagine/internal/hf"
	"github.com/imagine-dev/imagine/internal/provider"
)

// DefaultBackend is the backend name requests resolve to when they name none.
const DefaultBackend = "hf"

var defaultRouter = hf.NewClient()

func init() {
	_ = provider.Register(DefaultBackend, defaultRouter)
}

// ConfigureRouter points the default backend at a different router endpoint,
// for self-hosted gateways. Empty leaves the default untouched.
func ConfigureRouter(baseURL string) {
	if baseURL != "" {
		defaultRouter.BaseURL = baseURL
	}
}

// RegisterBackend exposes the backend registry for alternative remote
// implementations. The value must implement the image and/or video
// capability.
func RegisterBackend(name string, backend any) error {
	return provider.Register(name, backend)
}

func imageBackend(name string) (provider.ImageBackend, bool) {
	if name == "" {
		name = DefaultBackend
	}
	b, ok := provider.Get(name)
	if !ok {
		return nil, false
	}
	ib, ok := b.(provider.ImageBackend)
	return ib, ok
}

func videoBackend(name string) (provider.VideoBackend, bool) {
	if name == "" {
		name = DefaultBackend
	}
	b, ok := provider.Get(name)
	if !ok {
		return nil, false
	}
	vb, ok := b.(provider.VideoBackend)
	return vb, ok
}
