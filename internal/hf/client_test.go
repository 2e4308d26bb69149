package hf

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/imagine-dev/imagine/internal/provider"
)

func testClient(url string) *Client {
	c := NewClient()
	c.BaseURL = url
	return c
}

func TestTextToImage_RequestShape(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &gotBody)
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write([]byte("png-bytes"))
	}))
	defer srv.Close()

	seed := int64(7)
	data, err := testClient(srv.URL).TextToImage(context.Background(), provider.TextToImageRequest{
		Model:          "black-forest-labs/FLUX.1-schnell",
		Prompt:         "A cat",
		NegativePrompt: "blurry",
		Steps:          4,
		Guidance:       7.5,
		Width:          768,
		Height:         512,
		Seed:           &seed,
		Token:          "tok",
	})
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "png-bytes" {
		t.Fatalf("data = %q", data)
	}
	if gotPath != "/hf-inference/models/black-forest-labs/FLUX.1-schnell" {
		t.Fatalf("path = %s", gotPath)
	}
	if gotAuth != "Bearer tok" {
		t.Fatalf("auth = %q", gotAuth)
	}
	if gotBody["inputs"] != "A cat" {
		t.Fatalf("inputs = %v", gotBody["inputs"])
	}
	params, _ := gotBody["parameters"].(map[string]any)
	if params["num_inference_steps"] != float64(4) || params["width"] != float64(768) || params["height"] != float64(512) {
		t.Fatalf("parameters = %v", params)
	}
	if params["negative_prompt"] != "blurry" || params["seed"] != float64(7) {
		t.Fatalf("parameters = %v", params)
	}
}

func TestTextToImage_ProviderOverrideRoutes(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).TextToImage(context.Background(), provider.TextToImageRequest{
		Model:    "black-forest-labs/FLUX.1-schnell",
		Prompt:   "A cat",
		Token:    "tok",
		Provider: "fal-ai",
	})
	if err != nil {
		t.Fatal(err)
	}
	if gotPath != "/fal-ai/models/black-forest-labs/FLUX.1-schnell" {
		t.Fatalf("path = %s", gotPath)
	}
}

func TestTextToImage_ErrorMessagePreserved(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error": "Not allowed to POST to this route"}`))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).TextToImage(context.Background(), provider.TextToImageRequest{
		Model:  "black-forest-labs/FLUX.1-schnell",
		Prompt: "A cat",
		Token:  "tok",
	})
	var pe *provider.Error
	if !errors.As(err, &pe) {
		t.Fatalf("err = %v", err)
	}
	if pe.Status != 403 || pe.Code != "unauthorized" {
		t.Fatalf("status=%d code=%s", pe.Status, pe.Code)
	}
	if pe.Message != "Not allowed to POST to this route" {
		t.Fatalf("message = %q, must keep router text verbatim", pe.Message)
	}
}

func TestTextToImage_ServerErrorBodySurvives(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"error": ["model is loading", "try again later"]}`))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).TextToImage(context.Background(), provider.TextToImageRequest{
		Model:  "black-forest-labs/FLUX.1-schnell",
		Prompt: "A cat",
		Token:  "tok",
	})
	var pe *provider.Error
	if !errors.As(err, &pe) {
		t.Fatalf("err = %v", err)
	}
	if !pe.Retryable || pe.Status != 503 {
		t.Fatalf("retryable=%v status=%d", pe.Retryable, pe.Status)
	}
	if pe.Message != "model is loading; try again later" {
		t.Fatalf("message = %q", pe.Message)
	}
}

func TestTextToVideo_RequestShape(t *testing.T) {
	var gotPath string
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &gotBody)
		_, _ = w.Write([]byte("mp4-bytes"))
	}))
	defer srv.Close()

	data, err := testClient(srv.URL).TextToVideo(context.Background(), provider.TextToVideoRequest{
		Model:  "damo-vilab/text-to-video-ms-1.7b",
		Prompt: "A cat chasing a butterfly",
		Token:  "tok",
	})
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "mp4-bytes" {
		t.Fatalf("data = %q", data)
	}
	if gotPath != "/hf-inference/models/damo-vilab/text-to-video-ms-1.7b" {
		t.Fatalf("path = %s", gotPath)
	}
	if gotBody["inputs"] != "A cat chasing a butterfly" {
		t.Fatalf("inputs = %v", gotBody["inputs"])
	}
	if _, ok := gotBody["parameters"]; ok {
		t.Fatal("video request must not carry image parameters")
	}
}

func TestTextToImage_EmptyBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	_, err := testClient(srv.URL).TextToImage(context.Background(), provider.TextToImageRequest{
		Model:  "black-forest-labs/FLUX.1-schnell",
		Prompt: "A cat",
		Token:  "tok",
	})
	if err == nil {
		t.Fatal("expected error for empty response body")
	}
}
