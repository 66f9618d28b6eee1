package infra

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// DevSessionSecret is the fallback signing secret used when SESSION_SECRET is
// unset. It exists so the server boots in local development; production mode
// refuses to start with it.
const DevSessionSecret = "default-secret-change-me"

// Config represents application configuration loaded from environment variables.
type Config struct {
	AppEnv            string
	Port              string
	SessionSecret     string
	AllowedDomain     string
	WorkOSAPIKey      string
	WorkOSClientID    string
	WorkOSRedirectURI string
	WorkOSBaseURL     string
	GeminiAPIKey      string
	GeminiBaseURL     string
	TextModel         string
	ImageModel        string
	StaticDir         string
	CORSOrigins       []string
	HTTPReadTimeout   time.Duration
	HTTPWriteTimeout  time.Duration
	HTTPIdleTimeout   time.Duration

	// InsecureSessionSecret marks that the fallback secret is in use. The
	// caller decides whether that is a warning (development) or fatal
	// (production).
	InsecureSessionSecret bool
}

// LoadConfig loads configuration from environment variables and applies defaults where needed.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		AppEnv:            getEnv("APP_ENV", "development"),
		Port:              getEnv("PORT", "8080"),
		SessionSecret:     os.Getenv("SESSION_SECRET"),
		AllowedDomain:     getEnv("ALLOWED_EMAIL_DOMAIN", "fashionunited.com"),
		WorkOSAPIKey:      os.Getenv("WORKOS_API_KEY"),
		WorkOSClientID:    os.Getenv("WORKOS_CLIENT_ID"),
		WorkOSRedirectURI: os.Getenv("WORKOS_REDIRECT_URI"),
		WorkOSBaseURL:     getEnv("WORKOS_BASE_URL", "https://api.workos.com"),
		GeminiAPIKey:      os.Getenv("GEMINI_API_KEY"),
		GeminiBaseURL:     getEnv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com/v1beta"),
		TextModel:         getEnv("GEMINI_TEXT_MODEL", "gemini-3-pro-preview"),
		ImageModel:        getEnv("GEMINI_IMAGE_MODEL", "gemini-3-pro-image-preview"),
		StaticDir:         getEnv("STATIC_DIR", "dist"),
		CORSOrigins:       splitCSV(os.Getenv("CORS_ORIGINS")),
		HTTPReadTimeout:   time.Second * time.Duration(getEnvInt("HTTP_READ_TIMEOUT_SECONDS", 15)),
		HTTPWriteTimeout:  time.Second * time.Duration(getEnvInt("HTTP_WRITE_TIMEOUT_SECONDS", 120)),
		HTTPIdleTimeout:   time.Second * time.Duration(getEnvInt("HTTP_IDLE_TIMEOUT_SECONDS", 60)),
	}

	if cfg.WorkOSAPIKey == "" {
		return nil, fmt.Errorf("WORKOS_API_KEY is required")
	}

	if cfg.WorkOSClientID == "" {
		return nil, fmt.Errorf("WORKOS_CLIENT_ID is required")
	}

	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is required")
	}

	if cfg.SessionSecret == "" {
		cfg.SessionSecret = DevSessionSecret
		cfg.InsecureSessionSecret = true
	}

	return cfg, nil
}

// Production reports whether the server runs in production mode. It controls
// the Secure cookie flag and whether the fallback session secret is fatal.
func (c *Config) Production() bool {
	return c.AppEnv == "production"
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func splitCSV(v string) []string {
	if strings.TrimSpace(v) == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
