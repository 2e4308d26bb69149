package imagine

import "testing"

func TestLookupPreset(t *testing.T) {
	p, err := LookupPreset(ModelFluxSchnell)
	if err != nil {
		t.Fatal(err)
	}
	if p.MaxSteps != 16 || p.MaxSize != 1024 {
		t.Fatalf("unexpected preset %+v", p)
	}

	if _, err := LookupPreset("nobody/no-such-model"); !IsUnknownModel(err) {
		t.Fatalf("expected unknown_model, got %v", err)
	}
}

func TestModels_ListsDefaults(t *testing.T) {
	models := Models()
	found := map[string]bool{}
	for _, m := range models {
		found[m] = true
	}
	for _, want := range []string{ModelFluxSchnell, ModelSD21, ModelTextToVideo} {
		if !found[want] {
			t.Fatalf("missing %s in %v", want, models)
		}
	}
}

func TestRegisterPreset_RejectsInvalidBounds(t *testing.T) {
	if err := RegisterPreset("x/y", ModelPreset{MaxSteps: 0, MaxSize: 1024}); err == nil {
		t.Fatal("expected error for zero max steps")
	}
	if err := RegisterPreset("x/y", ModelPreset{MaxSteps: 10, MaxSize: 100}); err == nil {
		t.Fatal("expected error for max size below floor")
	}
	if err := RegisterPreset("", ModelPreset{MaxSteps: 10, MaxSize: 1024}); err == nil {
		t.Fatal("expected error for empty identifier")
	}
}

func TestParsePresets(t *testing.T) {
	raw := []byte(`{
		"acme/model-a": {"max_steps": 30, "max_size": 1024, "default_steps": 12},
		"acme/model-b": {"max_steps": 8, "max_size": 512}
	}`)
	presets, err := ParsePresets(raw)
	if err != nil {
		t.Fatal(err)
	}
	a := presets["acme/model-a"]
	if a.MaxSteps != 30 || a.MaxSize != 1024 || a.DefaultSteps != 12 {
		t.Fatalf("model-a = %+v", a)
	}
	// default_steps falls back to the step ceiling when omitted.
	if b := presets["acme/model-b"]; b.DefaultSteps != 8 {
		t.Fatalf("model-b default steps = %d", b.DefaultSteps)
	}
}

func TestParsePresets_RejectsInvalid(t *testing.T) {
	cases := []string{
		``,
		`not json`,
		`{}`,
		`{"acme/m": {"max_steps": 10}}`,
		`{"acme/m": {"max_steps": 10, "max_size": 100}}`,
		`{"acme/m": {"max_steps": 10, "max_size": 1024, "extra": true}}`,
	}
	for _, raw := range cases {
		if _, err := ParsePresets([]byte(raw)); err == nil {
			t.Fatalf("expected error for %q", raw)
		}
	}
}
