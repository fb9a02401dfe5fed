// Package auth supplies bearer tokens for authenticated API calls, either
// as a static token or via the client-credentials token endpoint.
package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	nethttp "net/http"
	"sync"
	"time"

	"github.com/atlaspay/atlaspay-go/httpclient"
)

// tokenPath is the client-credentials endpoint relative to the API base URL.
const tokenPath = "/v1/auth/token"

// defaultRefreshLead is how long before expiry a cached token is refreshed.
const defaultRefreshLead = 60 * time.Second

// TokenProvider supplies the bearer token for outgoing requests. An empty
// token means the request goes out unauthenticated.
type TokenProvider interface {
	Token(ctx context.Context) (string, error)
}

// StaticToken is a TokenProvider backed by a fixed token string.
type StaticToken string

// Token returns the static token.
func (t StaticToken) Token(_ context.Context) (string, error) {
	return string(t), nil
}

// TokenManager obtains tokens from the token endpoint using client
// credentials and caches them until shortly before expiry. It is safe for
// concurrent use.
type TokenManager struct {
	clientID     string
	clientSecret string
	baseURL      string
	httpClient   *nethttp.Client
	refreshLead  time.Duration

	mu        sync.RWMutex
	token     string
	expiresAt time.Time
}

// NewTokenManager creates a token manager for the given credentials. When
// httpClient is nil a default client with a 30 second timeout is used.
func NewTokenManager(clientID, clientSecret, baseURL string, httpClient *nethttp.Client) *TokenManager {
	if httpClient == nil {
		httpClient = &nethttp.Client{Timeout: 30 * time.Second}
	}
	return &TokenManager{
		clientID:     clientID,
		clientSecret: clientSecret,
		baseURL:      baseURL,
		httpClient:   httpClient,
		refreshLead:  defaultRefreshLead,
	}
}

// Token returns a valid bearer token, refreshing it when the cached one is
// missing or close to expiry.
func (tm *TokenManager) Token(ctx context.Context) (string, error) {
	tm.mu.RLock()
	if tm.valid() {
		token := tm.token
		tm.mu.RUnlock()
		return token, nil
	}
	tm.mu.RUnlock()

	return tm.refresh(ctx)
}

// Invalidate discards the cached token so the next call fetches a fresh one.
// Useful after a 401 response.
func (tm *TokenManager) Invalidate() {
	tm.mu.Lock()
	defer tm.mu.Unlock()
	tm.token = ""
	tm.expiresAt = time.Time{}
}

// valid reports whether the cached token is still usable. Callers must hold
// at least a read lock.
func (tm *TokenManager) valid() bool {
	return tm.token != "" && time.Now().Add(tm.refreshLead).Before(tm.expiresAt)
}

func (tm *TokenManager) refresh(ctx context.Context) (string, error) {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	// Another caller may have refreshed while we waited for the lock.
	if tm.valid() {
		return tm.token, nil
	}

	payload, err := json.Marshal(map[string]string{
		"grant_type":    "client_credentials",
		"client_id":     tm.clientID,
		"client_secret": tm.clientSecret,
	})
	if err != nil {
		return "", httpclient.NewAuthError("failed to encode token request", err)
	}

	req, err := nethttp.NewRequestWithContext(ctx, nethttp.MethodPost, tm.baseURL+tokenPath, bytes.NewReader(payload))
	if err != nil {
		return "", httpclient.NewAuthError("failed to create token request", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	resp, err := tm.httpClient.Do(req)
	if err != nil {
		return "", httpclient.NewAuthError("token request failed", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", httpclient.NewAuthError("failed to read token response", err)
	}

	if resp.StatusCode != nethttp.StatusOK {
		return "", httpclient.NewAuthError(tokenFailureMessage(resp.StatusCode, body), nil)
	}

	var tokenResp struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.Unmarshal(body, &tokenResp); err != nil {
		return "", httpclient.NewAuthError("failed to decode token response", err)
	}
	if tokenResp.AccessToken == "" {
		return "", httpclient.NewAuthError("token endpoint returned an empty token", nil)
	}

	tm.token = tokenResp.AccessToken
	tm.expiresAt = time.Now().Add(time.Duration(tokenResp.ExpiresIn) * time.Second)

	return tm.token, nil
}

func tokenFailureMessage(statusCode int, body []byte) string {
	var envelope struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if json.Unmarshal(body, &envelope) == nil {
		if envelope.Message != "" {
			return envelope.Message
		}
		if envelope.Error != "" {
			return envelope.Error
		}
	}
	return fmt.Sprintf("token request rejected with status %d", statusCode)
}
