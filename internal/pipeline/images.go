package pipeline

import (
	"context"
	"regexp"
)

var dataURIPrefixRe = regexp.MustCompile(`^data:image/(png|jpeg|jpg);base64,`)

// GenerateImage runs a single-shot image generation and returns the result as
// a PNG data URI. There is no fallback or retry; a response without an image
// part surfaces genai.ErrNoImage.
func (s *Service) GenerateImage(ctx context.Context, prompt string) (string, error) {
	img, err := s.ai.GenerateImage(ctx, prompt)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + img.Data, nil
}

// EditImage applies a free-text instruction to the supplied image and returns
// the edited result as a PNG data URI. The call is stateless: every edit
// receives the full current image from the caller, so multi-step editing is a
// client-driven loop.
func (s *Service) EditImage(ctx context.Context, imageBase64, instruction string) (string, error) {
	clean := dataURIPrefixRe.ReplaceAllString(imageBase64, "")
	img, err := s.ai.EditImage(ctx, clean, "image/jpeg", instruction)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + img.Data, nil
}
