package genai

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     http.Header{"Content-Type": []string{"application/json"}},
	}
}

func newTestClient(t *testing.T, rt roundTripFunc) *Client {
	t.Helper()
	client, err := NewClient(Options{
		APIKey:     "test-key",
		TextModel:  "text-model",
		ImageModel: "image-model",
		HTTPClient: &http.Client{Transport: rt},
	})
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	return client
}

func TestNewClientRequiresAPIKey(t *testing.T) {
	if _, err := NewClient(Options{}); !errors.Is(err, ErrMissingAPIKey) {
		t.Fatalf("NewClient error = %v, want ErrMissingAPIKey", err)
	}
}

func TestGenerateTextWithSearchTool(t *testing.T) {
	var captured geminiGenerateContentRequest
	client := newTestClient(t, func(r *http.Request) (*http.Response, error) {
		if !strings.Contains(r.URL.Path, "text-model") {
			t.Fatalf("unexpected path %q", r.URL.Path)
		}
		if r.Header.Get("x-goog-api-key") != "test-key" {
			t.Fatalf("missing api key header")
		}
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		return jsonResponse(http.StatusOK, `{
			"candidates":[{
				"content":{"parts":[{"text":"FACTS:\n- A"}]},
				"groundingMetadata":{"groundingChunks":[
					{"web":{"uri":"https://a.example","title":"A"}},
					{"web":{"title":"missing url"}},
					{}
				]}
			}]
		}`), nil
	})

	result, err := client.GenerateText(context.Background(), TextRequest{Prompt: "research", WebSearch: true})
	if err != nil {
		t.Fatalf("GenerateText returned error: %v", err)
	}
	if result.Text != "FACTS:\n- A" {
		t.Fatalf("Text = %q", result.Text)
	}
	if len(captured.Tools) != 1 || captured.Tools[0].GoogleSearch == nil {
		t.Fatalf("google search tool not enabled: %+v", captured.Tools)
	}
	// Chunks without a web source are dropped at the wire layer; title/url
	// filtering beyond that is the pipeline's job.
	if len(result.Grounding) != 2 {
		t.Fatalf("grounding chunks = %d, want 2", len(result.Grounding))
	}
	if result.Grounding[0].URL != "https://a.example" || result.Grounding[0].Title != "A" {
		t.Fatalf("unexpected grounding chunk: %+v", result.Grounding[0])
	}
}

func TestGenerateImageReturnsFirstInlinePart(t *testing.T) {
	var captured geminiGenerateContentRequest
	client := newTestClient(t, func(r *http.Request) (*http.Response, error) {
		if !strings.Contains(r.URL.Path, "image-model") {
			t.Fatalf("unexpected path %q", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		return jsonResponse(http.StatusOK, `{
			"candidates":[{"content":{"parts":[
				{"text":"some commentary"},
				{"inlineData":{"mimeType":"image/png","data":"QUJD"}}
			]}}]
		}`), nil
	})

	img, err := client.GenerateImage(context.Background(), "draw a cat")
	if err != nil {
		t.Fatalf("GenerateImage returned error: %v", err)
	}
	if img.Data != "QUJD" || img.MimeType != "image/png" {
		t.Fatalf("unexpected image: %+v", img)
	}
	if captured.GenerationConfig == nil || len(captured.GenerationConfig.ResponseModalities) != 1 || captured.GenerationConfig.ResponseModalities[0] != "IMAGE" {
		t.Fatalf("IMAGE modality not requested: %+v", captured.GenerationConfig)
	}
}

func TestGenerateImageNoImagePart(t *testing.T) {
	client := newTestClient(t, func(r *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, `{"candidates":[{"content":{"parts":[{"text":"sorry"}]}}]}`), nil
	})
	if _, err := client.GenerateImage(context.Background(), "draw"); !errors.Is(err, ErrNoImage) {
		t.Fatalf("GenerateImage error = %v, want ErrNoImage", err)
	}
}

func TestEditImageSendsInlineDataThenInstruction(t *testing.T) {
	var captured geminiGenerateContentRequest
	client := newTestClient(t, func(r *http.Request) (*http.Response, error) {
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		return jsonResponse(http.StatusOK, `{
			"candidates":[{"content":{"parts":[{"inlineData":{"mimeType":"image/png","data":"REVG"}}]}}]
		}`), nil
	})

	img, err := client.EditImage(context.Background(), "QUJD", "image/jpeg", "make it blue")
	if err != nil {
		t.Fatalf("EditImage returned error: %v", err)
	}
	if img.Data != "REVG" {
		t.Fatalf("unexpected image data %q", img.Data)
	}
	parts := captured.Contents[0].Parts
	if len(parts) != 2 {
		t.Fatalf("parts = %d, want 2", len(parts))
	}
	if parts[0].InlineData == nil || parts[0].InlineData.Data != "QUJD" || parts[0].InlineData.MimeType != "image/jpeg" {
		t.Fatalf("first part is not the source image: %+v", parts[0])
	}
	if parts[1].Text != "make it blue" {
		t.Fatalf("second part = %+v, want instruction text", parts[1])
	}
}

func TestInvokeGeminiSurfacesAPIError(t *testing.T) {
	client := newTestClient(t, func(r *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusTooManyRequests, `{"error":{"code":429,"message":"Resource exhausted"}}`), nil
	})
	_, err := client.GenerateText(context.Background(), TextRequest{Prompt: "x"})
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(err.Error(), "Resource exhausted") {
		t.Fatalf("error %q does not carry the API message", err)
	}
}
