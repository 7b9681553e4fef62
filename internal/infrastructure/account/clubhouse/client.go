// Package clubhouse verifies access tokens against the league's identity
// service. Introspection results are cached by token hash so hot requests do
// not hammer the identity backend, and a circuit breaker keeps an outage over
// there from stalling every inbound request over here.
package clubhouse

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
	jsoniter "github.com/json-iterator/go"
	"github.com/slotpitch/league-api/internal/domain/user"
	"github.com/slotpitch/league-api/internal/platform/logging"
	"github.com/slotpitch/league-api/internal/platform/resilience"
	"github.com/slotpitch/league-api/internal/usecase"
)

var errClubhouseTransient = crerr.New("clubhouse transient failure")

// unknownSubject is the reserved identity for introspection responses that
// are active but carry no subject. League guards refuse it downstream.
const unknownSubject = "UNKNOWN"

const maxIntrospectResponseBytes = 1 << 20

var clubhouseJSON = jsoniter.ConfigCompatibleWithStandardLibrary

type Config struct {
	BaseURL         string
	IntrospectPath  string
	Timeout         time.Duration
	CacheTTL        time.Duration
	CacheMaxEntries int
	CircuitBreaker  resilience.CircuitBreakerConfig
}

type Client struct {
	httpClient     *http.Client
	introspectURL  string
	logger         *logging.Logger
	cache          *principalCache
	flight         resilience.SingleFlight
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
}

func NewClient(cfg Config, logger *logging.Logger) *Client {
	if logger == nil {
		logger = logging.Default()
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     &http.Client{Timeout: timeout},
		introspectURL:  buildURL(cfg.BaseURL, cfg.IntrospectPath),
		logger:         logger,
		cache:          newPrincipalCache(cfg.CacheTTL, cfg.CacheMaxEntries),
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

// VerifyAccessToken resolves a bearer token to a principal. Concurrent
// lookups for the same token are collapsed into one introspection call.
func (c *Client) VerifyAccessToken(ctx context.Context, token string) (user.Principal, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return user.Principal{}, fmt.Errorf("%w: token is required", usecase.ErrUnauthorized)
	}

	cacheKey := hashToken(token)
	if principal, ok := c.cache.Get(cacheKey); ok {
		return principal, nil
	}

	result, err, _ := c.flight.Do(cacheKey, func() (any, error) {
		if principal, ok := c.cache.Get(cacheKey); ok {
			return principal, nil
		}

		principal, err := c.introspect(ctx, token)
		if err != nil {
			return user.Principal{}, err
		}
		c.cache.Set(cacheKey, principal)

		return principal, nil
	})
	if err != nil {
		return user.Principal{}, err
	}

	principal, ok := result.(user.Principal)
	if !ok {
		return user.Principal{}, crerr.New("unexpected introspection result type")
	}

	return principal, nil
}

func (c *Client) introspect(ctx context.Context, token string) (user.Principal, error) {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "clubhouse circuit breaker rejected introspection", "state", c.breaker.State())
			return user.Principal{}, fmt.Errorf("%w: clubhouse is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	encoded, err := clubhouseJSON.Marshal(introspectRequest{Token: token})
	if err != nil {
		return user.Principal{}, crerr.Wrap(err, "marshal introspect request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.introspectURL, bytes.NewReader(encoded))
	if err != nil {
		return user.Principal{}, crerr.Wrap(err, "create introspect request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		callErr := fmt.Errorf("%w: introspect call to clubhouse: %v", errClubhouseTransient, err)
		c.recordCircuitResult(callErr)
		return user.Principal{}, fmt.Errorf("%w: identity service unreachable", usecase.ErrDependencyUnavailable)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxIntrospectResponseBytes))
	if err != nil {
		callErr := fmt.Errorf("%w: read introspect response: %v", errClubhouseTransient, err)
		c.recordCircuitResult(callErr)
		return user.Principal{}, fmt.Errorf("%w: identity service response unreadable", usecase.ErrDependencyUnavailable)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		c.recordCircuitResult(nil)
		return user.Principal{}, fmt.Errorf("%w: introspection denied", usecase.ErrUnauthorized)
	case isRetryableStatus(resp.StatusCode):
		callErr := fmt.Errorf("%w: introspection status=%d body=%s", errClubhouseTransient, resp.StatusCode, strings.TrimSpace(string(body)))
		c.recordCircuitResult(callErr)
		c.logger.WarnContext(ctx, "clubhouse introspection failed", "status_code", resp.StatusCode)
		return user.Principal{}, fmt.Errorf("%w: identity service returned status %d", usecase.ErrDependencyUnavailable, resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		c.recordCircuitResult(nil)
		return user.Principal{}, crerr.Newf("clubhouse introspection failed with status %d", resp.StatusCode)
	}

	var decoded introspectResponse
	if err := clubhouseJSON.Unmarshal(body, &decoded); err != nil {
		c.recordCircuitResult(nil)
		return user.Principal{}, crerr.Wrap(err, "unmarshal introspect response")
	}

	c.recordCircuitResult(nil)

	if !decoded.Active {
		return user.Principal{}, fmt.Errorf("%w: inactive token", usecase.ErrUnauthorized)
	}

	subject := strings.TrimSpace(decoded.Subject)
	if subject == "" {
		// Active token with no subject still gets a principal, under the
		// reserved identity that every membership check rejects.
		c.logger.WarnContext(ctx, "clubhouse introspection returned active token without subject")
		subject = unknownSubject
	}

	return user.Principal{
		UserID: subject,
		Email:  strings.TrimSpace(decoded.Email),
	}, nil
}

func (c *Client) recordCircuitResult(err error) {
	if !c.circuitEnabled || c.breaker == nil {
		return
	}
	if err == nil {
		c.breaker.RecordSuccess()
		return
	}
	if isCircuitFailure(err) {
		c.breaker.RecordFailure()
		return
	}
	c.breaker.RecordSuccess()
}

type introspectRequest struct {
	Token string `json:"token"`
}

type introspectResponse struct {
	Active  bool   `json:"active"`
	Subject string `json:"sub"`
	Email   string `json:"email"`
}

func isRetryableStatus(statusCode int) bool {
	return statusCode == http.StatusRequestTimeout ||
		statusCode == http.StatusTooManyRequests ||
		statusCode >= http.StatusInternalServerError
}

func isCircuitFailure(err error) bool {
	return stderrors.Is(err, errClubhouseTransient)
}
