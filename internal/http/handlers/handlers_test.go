package handlers

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/rs/zerolog"

	"server/internal/auth"
	"server/internal/infra"
	"server/internal/pipeline"
	"server/internal/providers/genai"
	"server/internal/providers/workos"
)

type fakeIdentityProvider struct {
	authorizationURL string
	authenticate     func(ctx context.Context, code string) (*workos.User, error)
}

func (f *fakeIdentityProvider) AuthorizationURL(redirectURI string) string {
	if f.authorizationURL != "" {
		return f.authorizationURL
	}
	return "https://auth.example.com/authorize?redirect_uri=" + redirectURI
}

func (f *fakeIdentityProvider) AuthenticateWithCode(ctx context.Context, code string) (*workos.User, error) {
	if f.authenticate != nil {
		return f.authenticate(ctx, code)
	}
	return nil, errors.New("authenticate not implemented")
}

type fakeModel struct {
	text     func(context.Context, genai.TextRequest) (*genai.TextResult, error)
	generate func(context.Context, string) (*genai.InlineImage, error)
	edit     func(ctx context.Context, imageData, mimeType, instruction string) (*genai.InlineImage, error)
}

func (f *fakeModel) GenerateText(ctx context.Context, req genai.TextRequest) (*genai.TextResult, error) {
	if f.text != nil {
		return f.text(ctx, req)
	}
	return nil, errors.New("text not implemented")
}

func (f *fakeModel) GenerateImage(ctx context.Context, prompt string) (*genai.InlineImage, error) {
	if f.generate != nil {
		return f.generate(ctx, prompt)
	}
	return nil, errors.New("generate not implemented")
}

func (f *fakeModel) EditImage(ctx context.Context, imageData, mimeType, instruction string) (*genai.InlineImage, error) {
	if f.edit != nil {
		return f.edit(ctx, imageData, mimeType, instruction)
	}
	return nil, errors.New("edit not implemented")
}

func newTestApp(identity *fakeIdentityProvider, model *fakeModel) *App {
	if identity == nil {
		identity = &fakeIdentityProvider{}
	}
	if model == nil {
		model = &fakeModel{}
	}
	return &App{
		Config: &infra.Config{
			AppEnv:        "development",
			AllowedDomain: "fashionunited.com",
		},
		Logger:   zerolog.New(io.Discard),
		Codec:    auth.NewCodec("test-secret", time.Hour),
		Gate:     auth.NewGate("fashionunited.com"),
		Identity: identity,
		Pipeline: pipeline.NewService(model),
	}
}

var allowedUser = &workos.User{
	ID:        "user_01",
	Email:     "jane@fashionunited.com",
	FirstName: "Jane",
	LastName:  "Doe",
}
