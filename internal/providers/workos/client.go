package workos

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
var ErrMissingAPIKey = errors.New("workos: api key is required")

// ErrMissingClientID indicates that the client was configured without a client id.
var ErrMissingClientID = errors.New("workos: client id is required")

const defaultTimeout = 15 * time.Second

// Options configures the WorkOS User Management client.
type Options struct {
	APIKey     string
	ClientID   string
	BaseURL    string
	HTTPClient *http.Client
	Logger     *infra.Logger
}

// Client performs HTTP calls to the WorkOS User Management API. Only the two
// operations the login handshake needs are implemented: building the AuthKit
// authorization URL and exchanging a callback code for the user profile.
type Client struct {
	apiKey     string
	clientID   string
	baseURL    string
	httpClient *http.Client
	logger     *infra.Logger
}

// User is the profile returned by a successful code exchange.
type User struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type authenticateRequest struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
	GrantType    string `json:"grant_type"`
	Code         string `json:"code"`
}

type authenticateResponse struct {
	User User `json:"user"`
}

type apiErrorResponse struct {
	Code             string `json:"code"`
	Message          string `json:"message"`
	ErrorCode        string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

// NewClient constructs a WorkOS client with sane defaults.
func NewClient(opts Options) (*Client, error) {
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, ErrMissingAPIKey
	}
	if strings.TrimSpace(opts.ClientID) == "" {
		return nil, ErrMissingClientID
	}
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://api.workos.com"
	}
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: defaultTimeout}
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
		clientID:   strings.TrimSpace(opts.ClientID),
		baseURL:    baseURL,
		httpClient: client,
		logger:     logger,
	}, nil
}

// AuthorizationURL builds the AuthKit redirect target for the login handshake.
// No local state is created; WorkOS drives the exchange until the callback.
func (c *Client) AuthorizationURL(redirectURI string) string {
	q := url.Values{}
	q.Set("client_id", c.clientID)
	q.Set("provider", "authkit")
	q.Set("redirect_uri", redirectURI)
	q.Set("response_type", "code")
	return c.baseURL + "/user_management/authorize?" + q.Encode()
}

// AuthenticateWithCode exchanges the callback code for the authenticated user
// profile.
func (c *Client) AuthenticateWithCode(ctx context.Context, code string) (*User, error) {
	payload := authenticateRequest{
		ClientID:     c.clientID,
		ClientSecret: c.apiKey,
		GrantType:    "authorization_code",
		Code:         code,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("workos: marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/user_management/authenticate", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("workos: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("workos: authenticate: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		var apiErr apiErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil {
			if msg := firstNonEmpty(apiErr.Message, apiErr.ErrorDescription, apiErr.ErrorCode, apiErr.Code); msg != "" {
				return nil, fmt.Errorf("workos: status %d: %s", resp.StatusCode, msg)
			}
		}
		return nil, fmt.Errorf("workos: status %d", resp.StatusCode)
	}

	var out authenticateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("workos: decode response: %w", err)
	}
	if out.User.ID == "" {
		return nil, errors.New("workos: response has no user")
	}

	c.logger.Debug().
		Str("user_id", out.User.ID).
		Msg("workos: code exchange succeeded")

	return &out.User, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
