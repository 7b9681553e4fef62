// Package notify delivers slot lifecycle events to an external webhook.
// Delivery is asynchronous and best-effort: a slow or broken webhook target
// never fails or delays the request that produced the event.
package notify

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/slotpitch/league-api/internal/platform/logging"
	"github.com/slotpitch/league-api/internal/platform/resilience"
	"github.com/slotpitch/league-api/internal/usecase"
	"github.com/sourcegraph/conc"
	"github.com/valyala/bytebufferpool"
	"github.com/valyala/fasthttp"
)

var errWebhookTransient = crerr.New("webhook transient failure")

const retryBackoffBase = 200 * time.Millisecond

type WebhookPublisherConfig struct {
	URL            string
	Token          string
	Timeout        time.Duration
	Retries        int
	CircuitBreaker resilience.CircuitBreakerConfig
}

// WebhookPublisher implements usecase.Notifier over a single webhook target.
type WebhookPublisher struct {
	client         *fasthttp.Client
	url            string
	token          string
	timeout        time.Duration
	retries        int
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	wg             conc.WaitGroup
}

func NewWebhookPublisher(cfg WebhookPublisherConfig, logger *logging.Logger) *WebhookPublisher {
	if logger == nil {
		logger = logging.Default()
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &WebhookPublisher{
		client:         &fasthttp.Client{},
		url:            strings.TrimSpace(cfg.URL),
		token:          strings.TrimSpace(cfg.Token),
		timeout:        timeout,
		retries:        cfg.Retries,
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

// SlotEvent enqueues an asynchronous delivery and returns immediately.
func (p *WebhookPublisher) SlotEvent(ctx context.Context, event usecase.SlotEvent) {
	// The request context ends when the handler returns; keep its values for
	// log correlation but detach from its cancellation.
	detached := context.WithoutCancel(ctx)

	p.wg.Go(func() {
		p.deliver(detached, event)
	})
}

// Close drains in-flight deliveries. Call it on shutdown.
func (p *WebhookPublisher) Close() {
	p.wg.Wait()
}

func (p *WebhookPublisher) deliver(ctx context.Context, event usecase.SlotEvent) {
	if p.circuitEnabled {
		if err := p.breaker.Allow(); err != nil {
			p.logger.WarnContext(ctx, "webhook circuit breaker rejected delivery",
				"state", p.breaker.State(),
				"event_type", event.Type,
				"slot_id", event.SlotID,
			)
			return
		}
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if err := sonic.ConfigDefault.NewEncoder(buf).Encode(event); err != nil {
		p.recordCircuitResult(nil)
		p.logger.ErrorContext(ctx, "encode webhook payload", "error", err, "event_type", event.Type)
		return
	}

	var lastErr error
	for attempt := 0; attempt <= p.retries; attempt++ {
		if attempt > 0 {
			time.Sleep(retryBackoffBase << (attempt - 1))
		}

		lastErr = p.post(buf.B, event.Type)
		if lastErr == nil {
			p.recordCircuitResult(nil)
			p.logger.InfoContext(ctx, "webhook delivered",
				"event_type", event.Type,
				"slot_id", event.SlotID,
				"league_id", event.LeagueID,
				"attempts", attempt+1,
			)
			return
		}
		if !isCircuitFailure(lastErr) {
			break
		}
	}

	p.recordCircuitResult(lastErr)
	p.logger.ErrorContext(ctx, "webhook delivery failed",
		"error", lastErr,
		"event_type", event.Type,
		"slot_id", event.SlotID,
		"attempts", p.retries+1,
	)
}

func (p *WebhookPublisher) post(body []byte, eventType string) error {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(p.url)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	req.Header.Set("X-League-Event", eventType)
	if p.token != "" {
		req.Header.Set("Authorization", "Bearer "+p.token)
	}
	req.SetBody(body)

	if err := p.client.DoTimeout(req, resp, p.timeout); err != nil {
		return fmt.Errorf("%w: post webhook: %v", errWebhookTransient, err)
	}

	status := resp.StatusCode()
	switch {
	case status/100 == 2:
		return nil
	case isRetryableStatus(status):
		return fmt.Errorf("%w: webhook status=%d", errWebhookTransient, status)
	default:
		return crerr.Newf("webhook rejected event with status %d", status)
	}
}

func (p *WebhookPublisher) recordCircuitResult(err error) {
	if !p.circuitEnabled || p.breaker == nil {
		return
	}
	if err == nil {
		p.breaker.RecordSuccess()
		return
	}
	if isCircuitFailure(err) {
		p.breaker.RecordFailure()
		return
	}
	p.breaker.RecordSuccess()
}

func isCircuitFailure(err error) bool {
	return stderrors.Is(err, errWebhookTransient)
}

func isRetryableStatus(statusCode int) bool {
	return statusCode == http.StatusRequestTimeout ||
		statusCode == http.StatusTooManyRequests ||
		statusCode >= http.StatusInternalServerError
}
