// Package indexing pings the Google Indexing API for updated URLs using a
// service-account JWT exchanged for an OAuth access token.
package indexing

import (
	"bytes"
	"context"
	"crypto/rsa"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"portfolio-backend/pkg/logger"
)

const (
	scope           = "https://www.googleapis.com/auth/indexing"
	defaultTokenURL = "https://oauth2.googleapis.com/token"
	defaultEndpoint = "https://indexing.googleapis.com/v3/urlNotifications:publish"
)

// Notifier publishes URL_UPDATED notifications. Without credentials it
// constructs disabled; callers check Enabled before notifying.
type Notifier struct {
	clientEmail string
	privateKey  *rsa.PrivateKey
	tokenURL    string
	endpoint    string
	httpClient  *http.Client

	mu          sync.Mutex
	accessToken string
	tokenExpiry time.Time
}

type Option func(*Notifier)

// WithEndpoints overrides the Google endpoints. Used by tests.
func WithEndpoints(tokenURL, endpoint string) Option {
	return func(n *Notifier) {
		n.tokenURL = tokenURL
		n.endpoint = endpoint
	}
}

// NewNotifier builds a notifier from service-account credentials. The
// private key arrives "\n"-escaped from the environment. Empty credentials
// yield a disabled notifier, not an error.
func NewNotifier(clientEmail, privateKeyPEM string, opts ...Option) (*Notifier, error) {
	n := &Notifier{
		clientEmail: clientEmail,
		tokenURL:    defaultTokenURL,
		endpoint:    defaultEndpoint,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(n)
	}

	if clientEmail == "" || privateKeyPEM == "" {
		logger.Warn("indexing API credentials missing, notifications disabled", nil)
		return n, nil
	}

	pem := strings.ReplaceAll(privateKeyPEM, `\n`, "\n")
	key, err := jwt.ParseRSAPrivateKeyFromPEM([]byte(pem))
	if err != nil {
		return nil, fmt.Errorf("parse indexing private key: %w", err)
	}
	n.privateKey = key
	return n, nil
}

// Enabled reports whether credentials were configured.
func (n *Notifier) Enabled() bool {
	return n.privateKey != nil
}

// Notify tells Google that url changed.
func (n *Notifier) Notify(ctx context.Context, targetURL string) error {
	if !n.Enabled() {
		return fmt.Errorf("indexing notifier disabled")
	}

	token, err := n.token(ctx)
	if err != nil {
		return fmt.Errorf("obtain access token: %w", err)
	}

	payload, err := json.Marshal(map[string]string{
		"url":  targetURL,
		"type": "URL_UPDATED",
	})
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("call indexing API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("indexing API status %d: %s", resp.StatusCode, string(body))
	}

	logger.Info("notified indexing API", map[string]interface{}{"url": targetURL})
	return nil
}

// token returns a cached OAuth access token, minting a fresh one via the
// JWT bearer grant when expired.
func (n *Notifier) token(ctx context.Context) (string, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.accessToken != "" && time.Now().Before(n.tokenExpiry) {
		return n.accessToken, nil
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"iss":   n.clientEmail,
		"scope": scope,
		"aud":   n.tokenURL,
		"iat":   now.Unix(),
		"exp":   now.Add(time.Hour).Unix(),
	}
	assertion, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(n.privateKey)
	if err != nil {
		return "", fmt.Errorf("sign assertion: %w", err)
	}

	form := url.Values{}
	form.Set("grant_type", "urn:ietf:params:oauth:grant-type:jwt-bearer")
	form.Set("assertion", assertion)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("create token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("call token endpoint: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read token response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("token endpoint status %d: %s", resp.StatusCode, string(body))
	}

	var tokenResp struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.Unmarshal(body, &tokenResp); err != nil {
		return "", fmt.Errorf("unmarshal token response: %w", err)
	}

	n.accessToken = tokenResp.AccessToken
	// refresh one minute early
	n.tokenExpiry = now.Add(time.Duration(tokenResp.ExpiresIn-60) * time.Second)
	return n.accessToken, nil
}
