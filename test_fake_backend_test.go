package imagine

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/imagine-dev/imagine/internal/provider"
)

type fakeImageBackend struct {
	mu    sync.Mutex
	calls []provider.TextToImageRequest
	gen   func(call int, req provider.TextToImageRequest) ([]byte, error)
}

func (b *fakeImageBackend) TextToImage(ctx context.Context, req provider.TextToImageRequest) ([]byte, error) {
	_ = ctx
	b.mu.Lock()
	b.calls = append(b.calls, req)
	call := len(b.calls) - 1
	gen := b.gen
	b.mu.Unlock()
	if gen == nil {
		return []byte("fake-image"), nil
	}
	return gen(call, req)
}

func (b *fakeImageBackend) requests() []provider.TextToImageRequest {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]provider.TextToImageRequest, len(b.calls))
	copy(out, b.calls)
	return out
}

type fakeVideoBackend struct {
	mu    sync.Mutex
	calls []provider.TextToVideoRequest
	gen   func(call int, req provider.TextToVideoRequest) ([]byte, error)
}

func (b *fakeVideoBackend) TextToVideo(ctx context.Context, req provider.TextToVideoRequest) ([]byte, error) {
	_ = ctx
	b.mu.Lock()
	b.calls = append(b.calls, req)
	call := len(b.calls) - 1
	gen := b.gen
	b.mu.Unlock()
	if gen == nil {
		return []byte("fake-video"), nil
	}
	return gen(call, req)
}

func registerFakeBackend(t *testing.T, b any) string {
	t.Helper()
	name := "fake_" + strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	if err := RegisterBackend(name, b); err != nil {
		t.Fatalf("register backend: %v", err)
	}
	return name
}
