package gatekeeper

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/cockroachdb/errors"

	"github.com/matchdayhq/matchday/internal/domain/user"
	"github.com/matchdayhq/matchday/internal/platform/cache"
	"github.com/matchdayhq/matchday/internal/platform/logging"
	"github.com/matchdayhq/matchday/internal/platform/resilience"
	"github.com/matchdayhq/matchday/internal/usecase"
)

const (
	adminKeyHeader      = "x-admin-key"
	principalCacheTTL   = 30 * time.Second
	maxIntrospectBodyKB = 1024
)

// errGatekeeperTransient marks failures that should count against the
// circuit breaker, as opposed to token rejections.
var errGatekeeperTransient = errors.New("gatekeeper transient failure")

// Client verifies access tokens against the gatekeeper introspection
// endpoint. Verified principals are cached briefly by token hash and
// concurrent lookups for the same token collapse into one upstream call.
type Client struct {
	httpClient    *http.Client
	introspectURL string
	adminKey      string
	breaker       *resilience.CircuitBreaker
	principals    *cache.Store
	flight        resilience.SingleFlight
	logger        *logging.Logger
}

func NewClient(httpClient *http.Client, baseURL, introspectPath, adminKey string, cbCfg resilience.CircuitBreakerConfig, logger *logging.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 5 * time.Second}
	}
	if logger == nil {
		logger = logging.Default()
	}

	var breaker *resilience.CircuitBreaker
	if cbCfg.Enabled {
		breaker = resilience.NewCircuitBreaker(cbCfg)
	}

	return &Client{
		httpClient:    httpClient,
		introspectURL: buildURL(baseURL, introspectPath),
		adminKey:      adminKey,
		breaker:       breaker,
		principals:    cache.NewStore(principalCacheTTL),
		logger:        logger,
	}
}

func (c *Client) VerifyAccessToken(ctx context.Context, token string) (user.Principal, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return user.Principal{}, fmt.Errorf("%w: token is required", usecase.ErrUnauthorized)
	}

	key := hashToken(token)
	if cached, ok := c.principals.Get(ctx, key); ok {
		return cached.(user.Principal), nil
	}

	result, err, _ := c.flight.Do(key, func() (any, error) {
		return c.introspect(ctx, token)
	})
	if err != nil {
		return user.Principal{}, err
	}

	principal := result.(user.Principal)
	c.principals.Set(ctx, key, principal)

	return principal, nil
}

func (c *Client) introspect(ctx context.Context, token string) (user.Principal, error) {
	if c.breaker != nil {
		if err := c.breaker.Allow(); err != nil {
			return user.Principal{}, fmt.Errorf("%w: gatekeeper circuit open", usecase.ErrDependencyUnavailable)
		}
	}

	principal, err := c.callIntrospect(ctx, token)
	if c.breaker != nil {
		if errors.Is(err, errGatekeeperTransient) {
			c.breaker.RecordFailure()
		} else if err == nil {
			c.breaker.RecordSuccess()
		}
	}

	return principal, err
}

func (c *Client) callIntrospect(ctx context.Context, token string) (user.Principal, error) {
	encoded, err := sonic.Marshal(introspectRequest{Token: token})
	if err != nil {
		return user.Principal{}, fmt.Errorf("marshal introspect request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.introspectURL, bytes.NewReader(encoded))
	if err != nil {
		return user.Principal{}, fmt.Errorf("create introspect request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.adminKey != "" {
		req.Header.Set(adminKeyHeader, c.adminKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return user.Principal{}, errors.Mark(fmt.Errorf("request gatekeeper introspection: %w", err), errGatekeeperTransient)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return user.Principal{}, fmt.Errorf("%w: introspection denied", usecase.ErrUnauthorized)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxIntrospectBodyKB<<10))
	if err != nil {
		return user.Principal{}, errors.Mark(fmt.Errorf("read introspect response: %w", err), errGatekeeperTransient)
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.WarnContext(ctx, "gatekeeper introspection non-200", "status_code", resp.StatusCode)
		return user.Principal{}, errors.Mark(
			fmt.Errorf("gatekeeper introspection failed with status %d", resp.StatusCode),
			errGatekeeperTransient,
		)
	}

	var decoded introspectResponse
	if err := sonic.Unmarshal(body, &decoded); err != nil {
		return user.Principal{}, fmt.Errorf("unmarshal introspect response: %w", err)
	}

	if !decoded.Active {
		return user.Principal{}, fmt.Errorf("%w: inactive token", usecase.ErrUnauthorized)
	}
	if strings.TrimSpace(decoded.UserID) == "" {
		return user.Principal{}, fmt.Errorf("invalid introspect response: user_id is empty")
	}

	return user.Principal{
		UserID: decoded.UserID,
		Email:  decoded.Email,
	}, nil
}

type introspectRequest struct {
	Token string `json:"token"`
}

type introspectResponse struct {
	Active bool   `json:"active"`
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func buildURL(baseURL, path string) string {
	baseURL = strings.TrimSuffix(strings.TrimSpace(baseURL), "/")
	path = strings.TrimSpace(path)
	if path == "" {
		return baseURL
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	return baseURL + path
}
