// Package providers implements one PartProvider adapter per distributor API
// (Mouser, DigiKey, Octopart/Nexar) plus the shared OAuth token cache.
// Adapters normalize every response into the provider-agnostic offer model:
// lowest price tier as the representative price, availability strings parsed
// to a non-negative stock count, results sorted ascending by price.
package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

// tokenExpirySkew treats a token as expired this long before its real expiry,
// so a token that is about to lapse is never attached to an in-flight request.
const tokenExpirySkew = 60 * time.Second

// TokenCache memoizes OAuth client-credentials tokens per provider,
// process-wide. It is constructed once and passed by reference to the
// adapters that need it rather than a package-level global, so tests can
// substitute their own instance.
//
// Concurrent callers during a miss may each trigger a token fetch; the last
// write wins. A redundant fetch is cheaper than single-flight coordination
// here, and staleness is bounded by the expiry skew.
type TokenCache struct {
	mu     sync.Mutex
	tokens map[string]cachedToken
}

type cachedToken struct {
	token     string
	expiresAt time.Time
}

// NewTokenCache returns an empty token cache.
func NewTokenCache() *TokenCache {
	return &TokenCache{tokens: make(map[string]cachedToken)}
}

// Get returns the cached token for provider if it is still valid after
// applying the expiry skew.
func (c *TokenCache) Get(provider string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	t, ok := c.tokens[provider]
	if !ok || t.token == "" {
		return "", false
	}
	if time.Now().Add(tokenExpirySkew).After(t.expiresAt) {
		return "", false
	}
	return t.token, true
}

// Put stores a freshly fetched token with its advertised lifetime.
func (c *TokenCache) Put(provider, token string, expiresIn time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tokens[provider] = cachedToken{
		token:     token,
		expiresAt: time.Now().Add(expiresIn),
	}
}

// tokenResponse is the common OAuth2 token endpoint response shape.
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

// fetchClientCredentialsToken performs an OAuth2 client-credentials grant.
// Used by the DigiKey and Octopart adapters on cache miss.
func fetchClientCredentialsToken(ctx context.Context, client *http.Client, tokenURL, clientID, clientSecret string) (string, time.Duration, error) {
	form := url.Values{
		"grant_type":    {"client_credentials"},
		"client_id":     {clientID},
		"client_secret": {clientSecret},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", 0, fmt.Errorf("build token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := client.Do(req)
	if err != nil {
		return "", 0, fmt.Errorf("token request: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return "", 0, fmt.Errorf("token endpoint returned status %d", resp.StatusCode)
	}

	var tr tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return "", 0, fmt.Errorf("decode token response: %w", err)
	}
	if tr.AccessToken == "" {
		return "", 0, fmt.Errorf("token endpoint returned empty access_token")
	}

	return tr.AccessToken, time.Duration(tr.ExpiresIn) * time.Second, nil
}
