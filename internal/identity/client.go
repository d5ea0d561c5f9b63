package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/sony/gobreaker"
)

const sessionCacheTTL = 5 * time.Minute

// HTTPClient talks to the hosted identity provider. Lookups go through a
// circuit breaker so a struggling provider does not get hammered, and
// resolved sessions are cached in-process for a few minutes.
type HTTPClient struct {
	client   *http.Client
	baseURL  string
	cb       *gobreaker.CircuitBreaker
	sessions *cache.Cache
}

// NewHTTPClient builds a provider client for the given base URL.
func NewHTTPClient(baseURL string) *HTTPClient {
	settings := gobreaker.Settings{
		Name:        "Identity-Provider",
		MaxRequests: 5,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 10 && failureRatio >= 0.5
		},
	}

	return &HTTPClient{
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL:  strings.TrimRight(baseURL, "/"),
		cb:       gobreaker.NewCircuitBreaker(settings),
		sessions: cache.New(sessionCacheTTL, 1*time.Minute),
	}
}

// GetCurrentUser resolves a session token via the provider's user
// endpoint. A 401 means the token is stale and yields (nil, nil); other
// failures surface as errors for the caller to recover from.
func (c *HTTPClient) GetCurrentUser(ctx context.Context, token string) (*User, error) {
	if token == "" {
		return nil, nil
	}
	if cached, found := c.sessions.Get(token); found {
		user := cached.(User)
		return &user, nil
	}

	result, err := c.cb.Execute(func() (interface{}, error) {
		return c.fetchUser(ctx, token)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) {
			return nil, fmt.Errorf("identity provider unavailable: %w", err)
		}
		return nil, err
	}

	user, _ := result.(*User)
	if user != nil {
		c.sessions.Set(token, *user, cache.DefaultExpiration)
	}
	return user, nil
}

func (c *HTTPClient) fetchUser(ctx context.Context, token string) (*User, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/auth/v1/user", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create identity request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call identity provider: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, nil
	}
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("identity provider returned status %d", resp.StatusCode)
	}

	var user User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("failed to decode identity response: %w", err)
	}
	return &user, nil
}

// SignIn exchanges credentials for a session token.
func (c *HTTPClient) SignIn(ctx context.Context, email, password string) (string, error) {
	payload, err := json.Marshal(map[string]string{"email": email, "password": password})
	if err != nil {
		return "", fmt.Errorf("failed to marshal sign-in payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/auth/v1/token?grant_type=password", bytes.NewBuffer(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create sign-in request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to call identity provider: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusBadRequest {
		return "", ErrInvalidCredentials
	}
	if resp.StatusCode >= 300 {
		return "", fmt.Errorf("identity provider returned status %d", resp.StatusCode)
	}

	var body struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("failed to decode sign-in response: %w", err)
	}
	if body.AccessToken == "" {
		return "", errors.New("identity provider returned an empty token")
	}
	return body.AccessToken, nil
}

// ErrInvalidCredentials is returned by SignIn when the provider rejects
// the email/password pair.
var ErrInvalidCredentials = errors.New("invalid credentials")
