package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"server/internal/infra"
)

// ErrMissingAPIKey indicates that the client was configured without credentials.
var ErrMissingAPIKey = errors.New("genai: api key is required")

// ErrNoImage indicates the model returned no inline image part. Image
// operations have no fallback; callers surface this as a hard failure.
var ErrNoImage = errors.New("genai: response contains no image")

const defaultTimeout = 60 * time.Second

// Options controls how the Gemini client is configured.
type Options struct {
	APIKey     string
	BaseURL    string
	TextModel  string
	ImageModel string
	HTTPClient *http.Client
	Logger     *infra.Logger
}

// Client provides a lightweight facade over the Gemini generateContent API so
// the pipeline can focus on translating domain requests to calls. One client
// is shared process-wide as a connection/config holder; it keeps no state
// across calls.
type Client struct {
	apiKey     string
	baseURL    string
	textModel  string
	imageModel string
	httpClient *http.Client
	logger     *infra.Logger
}

// TextRequest asks the text model for a completion, optionally with the
// Google Search tool enabled for grounded answers.
type TextRequest struct {
	Prompt    string
	WebSearch bool
}

// TextResult is the normalized text completion plus any web grounding
// citations the model attached.
type TextResult struct {
	Text      string
	Grounding []GroundingChunk
}

// GroundingChunk is one web citation from the model's search augmentation.
type GroundingChunk struct {
	Title string
	URL   string
}

// InlineImage is a base64-encoded image returned by the image model.
type InlineImage struct {
	MimeType string
	Data     string
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts,omitempty"`
}

type geminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *geminiInlineData `json:"inlineData,omitempty"`
}

type geminiInlineData struct {
	MimeType string `json:"mimeType,omitempty"`
	Data     string `json:"data,omitempty"`
}

type geminiTool struct {
	GoogleSearch *geminiGoogleSearch `json:"googleSearch,omitempty"`
}

type geminiGoogleSearch struct{}

type geminiGenerationConfig struct {
	ResponseModalities []string `json:"responseModalities,omitempty"`
}

type geminiGenerateContentRequest struct {
	Contents         []geminiContent         `json:"contents"`
	Tools            []geminiTool            `json:"tools,omitempty"`
	GenerationConfig *geminiGenerationConfig `json:"generationConfig,omitempty"`
}

type geminiCandidate struct {
	Content           geminiContent            `json:"content"`
	FinishReason      string                   `json:"finishReason,omitempty"`
	GroundingMetadata *geminiGroundingMetadata `json:"groundingMetadata,omitempty"`
}

type geminiGroundingMetadata struct {
	GroundingChunks []geminiGroundingChunk `json:"groundingChunks,omitempty"`
}

type geminiGroundingChunk struct {
	Web *geminiWebSource `json:"web,omitempty"`
}

type geminiWebSource struct {
	URI   string `json:"uri,omitempty"`
	Title string `json:"title,omitempty"`
}

type geminiGenerateContentResponse struct {
	Candidates []geminiCandidate `json:"candidates"`
}

type geminiErrorResponse struct {
	Error struct {
		Code    int    `json:"code,omitempty"`
		Message string `json:"message,omitempty"`
	} `json:"error"`
}

// NewClient constructs a Gemini client with sane defaults. Callers may provide
// a nil HTTP client; a reusable one with a sensible timeout will be created.
func NewClient(opts Options) (*Client, error) {
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, ErrMissingAPIKey
	}

	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: defaultTimeout}
	}

	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://generativelanguage.googleapis.com/v1beta"
	}

	textModel := opts.TextModel
	if textModel == "" {
		textModel = "gemini-3-pro-preview"
	}
	imageModel := opts.ImageModel
	if imageModel == "" {
		imageModel = "gemini-3-pro-image-preview"
	}

	var logger *infra.Logger
	if opts.Logger != nil {
		logger = opts.Logger
	} else {
		discard := zerolog.New(io.Discard)
		l := infra.Logger(discard)
		logger = &l
	}

	return &Client{
		apiKey:     strings.TrimSpace(opts.APIKey),
		baseURL:    baseURL,
		textModel:  textModel,
		imageModel: imageModel,
		httpClient: client,
		logger:     logger,
	}, nil
}

// GenerateText runs a single text completion and collects grounding citations.
func (c *Client) GenerateText(ctx context.Context, req TextRequest) (*TextResult, error) {
	payload := geminiGenerateContentRequest{
		Contents: []geminiContent{{
			Role:  "user",
			Parts: []geminiPart{{Text: req.Prompt}},
		}},
	}
	if req.WebSearch {
		payload.Tools = []geminiTool{{GoogleSearch: &geminiGoogleSearch{}}}
	}

	var response geminiGenerateContentResponse
	if err := c.invokeGemini(ctx, c.textModel, payload, &response); err != nil {
		return nil, err
	}

	result := &TextResult{}
	if len(response.Candidates) > 0 {
		candidate := response.Candidates[0]
		var sb strings.Builder
		for _, part := range candidate.Content.Parts {
			sb.WriteString(part.Text)
		}
		result.Text = sb.String()
		if candidate.GroundingMetadata != nil {
			for _, chunk := range candidate.GroundingMetadata.GroundingChunks {
				if chunk.Web == nil {
					continue
				}
				result.Grounding = append(result.Grounding, GroundingChunk{
					Title: chunk.Web.Title,
					URL:   chunk.Web.URI,
				})
			}
		}
	}

	c.logger.Debug().
		Str("model", c.textModel).
		Int("grounding_chunks", len(result.Grounding)).
		Msg("genai: text completion done")

	return result, nil
}

// GenerateImage asks the image model for an image-only completion and returns
// the first inline image of the first candidate.
func (c *Client) GenerateImage(ctx context.Context, prompt string) (*InlineImage, error) {
	payload := geminiGenerateContentRequest{
		Contents: []geminiContent{{
			Parts: []geminiPart{{Text: prompt}},
		}},
		GenerationConfig: &geminiGenerationConfig{ResponseModalities: []string{"IMAGE"}},
	}
	return c.invokeForImage(ctx, payload)
}

// EditImage submits the current image alongside a free-text instruction for a
// single-turn edit. imageData must be bare base64 without a data-URI prefix.
func (c *Client) EditImage(ctx context.Context, imageData, mimeType, instruction string) (*InlineImage, error) {
	payload := geminiGenerateContentRequest{
		Contents: []geminiContent{{
			Parts: []geminiPart{
				{InlineData: &geminiInlineData{MimeType: mimeType, Data: imageData}},
				{Text: instruction},
			},
		}},
		GenerationConfig: &geminiGenerationConfig{ResponseModalities: []string{"IMAGE"}},
	}
	return c.invokeForImage(ctx, payload)
}

func (c *Client) invokeForImage(ctx context.Context, payload geminiGenerateContentRequest) (*InlineImage, error) {
	var response geminiGenerateContentResponse
	if err := c.invokeGemini(ctx, c.imageModel, payload, &response); err != nil {
		return nil, err
	}
	if len(response.Candidates) == 0 {
		return nil, ErrNoImage
	}
	for _, part := range response.Candidates[0].Content.Parts {
		if part.InlineData != nil && part.InlineData.Data != "" {
			mime := part.InlineData.MimeType
			if mime == "" {
				mime = "image/png"
			}
			c.logger.Debug().
				Str("model", c.imageModel).
				Str("mime", mime).
				Msg("genai: image completion done")
			return &InlineImage{MimeType: mime, Data: part.InlineData.Data}, nil
		}
	}
	return nil, ErrNoImage
}

func (c *Client) invokeGemini(ctx context.Context, model string, payload any, out any) error {
	endpoint := fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, url.PathEscape(model))
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("genai: marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("genai: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("genai: invoke gemini: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		var apiErr geminiErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && apiErr.Error.Message != "" {
			return fmt.Errorf("genai: status %d: %s", resp.StatusCode, apiErr.Error.Message)
		}
		data, _ := io.ReadAll(resp.Body)
		if len(data) > 0 {
			return fmt.Errorf("genai: status %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
		}
		return fmt.Errorf("genai: status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("genai: decode response: %w", err)
	}
	return nil
}
