package github

import (
	"context"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"pr-review-bot/internal/config"
	"pr-review-bot/internal/observability"

	"github.com/golang-jwt/jwt/v4"
)

const apiBase = "https://api.github.com"

type RESTClient struct {
	cfg    *config.Config
	logger *observability.Logger
	http   *http.Client
	cache  *tokenCache
}

func NewClient(cfg *config.Config, logger *observability.Logger) *RESTClient {
	return &RESTClient{
		cfg:    cfg,
		logger: logger,
		http:   &http.Client{Timeout: 15 * time.Second},
		cache:  &tokenCache{},
	}
}

func (c *RESTClient) getToken(ctx context.Context) (string, error) {

	if t, ok := c.cache.Get(); ok {
		return t, nil
	}

	appJWT, err := c.createJWT()
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf(
		"%s/app/installations/%s/access_tokens",
		apiBase, c.cfg.GithubInstallationID,
	)

	req, err := http.NewRequestWithContext(ctx, "POST", url, nil)
	if err != nil {
		return "", fmt.Errorf("build token request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+appJWT)
	req.Header.Set("Accept", "application/vnd.github+json")

	res, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(res.Body, 4096))
		return "", fmt.Errorf("github token status %d: %s", res.StatusCode, string(msg))
	}

	var r struct {
		Token string `json:"token"`
	}

	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return "", fmt.Errorf("decode token response: %w", err)
	}
	if r.Token == "" {
		return "", fmt.Errorf("empty installation token")
	}

	c.cache.Set(r.Token, 50*time.Minute)

	return r.Token, nil
}

func (c *RESTClient) getDiff(ctx context.Context, url string) (string, error) {

	token, err := c.getToken(ctx)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return "", fmt.Errorf("build diff request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/vnd.github.diff")

	res, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	if res.StatusCode != 200 {
		msg, _ := io.ReadAll(io.LimitReader(res.Body, 4096))
		return "", fmt.Errorf("github diff status %d: %s", res.StatusCode, string(msg))
	}

	b, err := io.ReadAll(res.Body)
	if err != nil {
		return "", fmt.Errorf("read diff response: %w", err)
	}

	c.logger.Debug("diff fetched",
		"url", url,
		"bytes", len(b),
	)

	return string(b), nil
}

func (c *RESTClient) GetPRDiff(ctx context.Context, meta PRMetadata) (string, error) {
	url := fmt.Sprintf(
		"%s/repos/%s/pulls/%d",
		apiBase, meta.FullRepo(), meta.PullNumber,
	)
	return c.getDiff(ctx, url)
}

func (c *RESTClient) CompareDiff(ctx context.Context, meta PRMetadata, base, head string) (string, error) {
	url := fmt.Sprintf(
		"%s/repos/%s/compare/%s...%s",
		apiBase, meta.FullRepo(), base, head,
	)
	return c.getDiff(ctx, url)
}

func (c *RESTClient) LatestCommitSHA(ctx context.Context, meta PRMetadata) (string, error) {

	token, err := c.getToken(ctx)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf(
		"%s/repos/%s/pulls/%d",
		apiBase, meta.FullRepo(), meta.PullNumber,
	)

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return "", fmt.Errorf("build pull request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/vnd.github+json")

	res, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	if res.StatusCode != 200 {
		msg, _ := io.ReadAll(io.LimitReader(res.Body, 4096))
		return "", fmt.Errorf("github pull status %d: %s", res.StatusCode, string(msg))
	}

	var pull struct {
		Head struct {
			SHA string `json:"sha"`
		} `json:"head"`
	}

	if err := json.NewDecoder(res.Body).Decode(&pull); err != nil {
		return "", fmt.Errorf("decode pull response: %w", err)
	}
	if pull.Head.SHA == "" {
		return "", fmt.Errorf("pull request has no head commit")
	}

	return pull.Head.SHA, nil
}

func loadPrivateKey(path string) (*rsa.PrivateKey, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read key: %w", err)
	}

	block, _ := pem.Decode(b)
	if block == nil {
		return nil, fmt.Errorf("invalid pem")
	}

	key, err := x509.ParsePKCS1PrivateKey(block.Bytes)
	if err == nil {
		return key, nil
	}

	pkcs8, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		return nil, err
	}

	privateKey, ok := pkcs8.(*rsa.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("pkcs8 key is not RSA")
	}

	return privateKey, nil
}

func (c *RESTClient) createJWT() (string, error) {

	key, err := loadPrivateKey(c.cfg.GithubPrivateKeyPath)
	if err != nil {
		return "", err
	}

	now := time.Now()

	claims := jwt.RegisteredClaims{
		IssuedAt:  jwt.NewNumericDate(now.Add(-1 * time.Minute)),
		ExpiresAt: jwt.NewNumericDate(now.Add(9 * time.Minute)),
		Issuer:    c.cfg.GithubAppID,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)

	return token.SignedString(key)
}
