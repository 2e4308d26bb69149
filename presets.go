package imagine

import (
	"fmt"
	"sync"
)

// ModelPreset declares the parameter bounds a model accepts. Presets are
// immutable; extending support to a new model means registering another
// entry, never branching on the identifier elsewhere.
type ModelPreset struct {
	MaxSteps     int
	MaxSize      int
	DefaultSteps int
}

// Models offered by default. The video path uses a single fixed model but
// goes through the same table.
const (
	ModelFluxSchnell = "black-forest-labs/FLUX.1-schnell"
	ModelSD21        = "stabilityai/stable-diffusion-2-1"
	ModelTextToVideo = "damo-vilab/text-to-video-ms-1.7b"

	DefaultImageModel = ModelFluxSchnell
	DefaultVideoModel = ModelTextToVideo
)

type presetRegistry struct {
	mu      sync.RWMutex
	presets map[string]ModelPreset
	order   []string
}

func newPresetRegistry() *presetRegistry {
	return &presetRegistry{presets: map[string]ModelPreset{}}
}

func (r *presetRegistry) register(model string, p ModelPreset) error {
	if model == "" {
		return fmt.Errorf("model identifier is required")
	}
	if p.MaxSteps < 1 || p.MaxSize < minDimension {
		return fmt.Errorf("preset for %q has invalid bounds", model)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.presets[model]; !exists {
		r.order = append(r.order, model)
	}
	r.presets[model] = p
	return nil
}

func (r *presetRegistry) lookup(model string) (ModelPreset, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.presets[model]
	if !ok {
		return ModelPreset{}, &Error{
			Code:    CodeUnknownModel,
			Message: fmt.Sprintf("model %q is not registered", model),
		}
	}
	return p, nil
}

func (r *presetRegistry) models() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

var defaultPresets = func() *presetRegistry {
	r := newPresetRegistry()
	// FLUX.1-schnell is a few-step distilled model; SD 2.1 tops out at its
	// native 768 resolution.
	_ = r.register(ModelFluxSchnell, ModelPreset{MaxSteps: 16, MaxSize: 1024, DefaultSteps: 4})
	_ = r.register(ModelSD21, ModelPreset{MaxSteps: 50, MaxSize: 768, DefaultSteps: 20})
	_ = r.register(ModelTextToVideo, ModelPreset{MaxSteps: 25, MaxSize: 576, DefaultSteps: 25})
	return r
}()

// RegisterPreset adds or replaces a model preset in the default table.
func RegisterPreset(model string, p ModelPreset) error {
	return defaultPresets.register(model, p)
}

// LookupPreset returns the bounds for a registered model. Querying an
// identifier that is not registered is a caller-contract violation and fails
// with an unknown_model error before any network attempt.
func LookupPreset(model string) (ModelPreset, error) {
	return defaultPresets.lookup(model)
}

// Models lists registered model identifiers in registration order, for
// surfaces that offer a picker.
func Models() []string {
	return defaultPresets.models()
}
