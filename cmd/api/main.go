package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"server/internal/auth"
	"server/internal/http/handlers"
	"server/internal/http/httpapi"
	"server/internal/infra"
	"server/internal/pipeline"
	"server/internal/providers/genai"
	"server/internal/providers/workos"
)

func main() {
	_ = godotenv.Load(".env", ".env.local")

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	if cfg.InsecureSessionSecret {
		if cfg.Production() {
			logger.Fatal().Msg("SESSION_SECRET is unset; refusing to start in production with the fallback secret")
		}
		logger.Warn().Msg("SESSION_SECRET is unset; using the insecure development fallback")
	}

	identity, err := workos.NewClient(workos.Options{
		APIKey:   cfg.WorkOSAPIKey,
		ClientID: cfg.WorkOSClientID,
		BaseURL:  cfg.WorkOSBaseURL,
		Logger:   &logger,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build workos client")
	}

	model, err := genai.NewClient(genai.Options{
		APIKey:     cfg.GeminiAPIKey,
		BaseURL:    cfg.GeminiBaseURL,
		TextModel:  cfg.TextModel,
		ImageModel: cfg.ImageModel,
		Logger:     &logger,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build gemini client")
	}

	app := &handlers.App{
		Config:   cfg,
		Logger:   logger,
		Codec:    auth.NewCodec(cfg.SessionSecret, auth.TokenTTL),
		Gate:     auth.NewGate(cfg.AllowedDomain),
		Identity: identity,
		Pipeline: pipeline.NewService(model),
	}

	router := httpapi.NewRouter(app)
	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Msgf("API listening on :%s", cfg.Port)
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}
