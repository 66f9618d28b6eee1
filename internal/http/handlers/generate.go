package handlers

import (
	"encoding/json"
	"net/http"

	"server/internal/pipeline"
)

// maxBodyBytes caps JSON request bodies; edit requests carry a full image by
// value.
const maxBodyBytes = 50 << 20

type researchRequest struct {
	Topic           string `json:"topic"`
	ComplexityLevel string `json:"complexityLevel"`
	VisualStyle     string `json:"visualStyle"`
	Language        string `json:"language"`
}

type generateImageRequest struct {
	Prompt string `json:"prompt"`
}

type editImageRequest struct {
	ImageBase64     string `json:"imageBase64"`
	EditInstruction string `json:"editInstruction"`
}

type imageResponse struct {
	ImageData string `json:"imageData"`
}

// Research runs the research stage: a grounded text completion parsed into
// facts, an image prompt and citations.
func (a *App) Research(w http.ResponseWriter, r *http.Request) {
	var req researchRequest
	if !a.decode(w, r, &req) {
		return
	}
	if req.Topic == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "Topic is required")
		return
	}

	result, err := a.Pipeline.Research(r.Context(), pipeline.ResearchRequest{
		Topic:    req.Topic,
		Level:    pipeline.ComplexityLevel(req.ComplexityLevel),
		Style:    pipeline.VisualStyle(req.VisualStyle),
		Language: pipeline.NormalizeLanguage(req.Language),
	})
	if err != nil {
		a.upstreamError(w, r, "research failed", err)
		return
	}
	a.json(w, http.StatusOK, result)
}

// GenerateImage runs the single-shot image generation stage.
func (a *App) GenerateImage(w http.ResponseWriter, r *http.Request) {
	var req generateImageRequest
	if !a.decode(w, r, &req) {
		return
	}
	if req.Prompt == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "Prompt is required")
		return
	}

	imageData, err := a.Pipeline.GenerateImage(r.Context(), req.Prompt)
	if err != nil {
		a.upstreamError(w, r, "image generation failed", err)
		return
	}
	a.json(w, http.StatusOK, imageResponse{ImageData: imageData})
}

// EditImage applies one edit instruction to the caller-supplied image.
func (a *App) EditImage(w http.ResponseWriter, r *http.Request) {
	var req editImageRequest
	if !a.decode(w, r, &req) {
		return
	}
	if req.ImageBase64 == "" || req.EditInstruction == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "Image and edit instruction are required")
		return
	}

	imageData, err := a.Pipeline.EditImage(r.Context(), req.ImageBase64, req.EditInstruction)
	if err != nil {
		a.upstreamError(w, r, "image editing failed", err)
		return
	}
	a.json(w, http.StatusOK, imageResponse{ImageData: imageData})
}

func (a *App) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return false
	}
	return true
}

// upstreamError surfaces a model failure as a 500 with the upstream message.
// The full error is logged; stack traces and provider payloads never reach
// the client.
func (a *App) upstreamError(w http.ResponseWriter, r *http.Request, what string, err error) {
	a.Logger.Error().Err(err).Str("path", r.URL.Path).Msg(what)
	a.error(w, http.StatusInternalServerError, "upstream_failure", err.Error())
}
