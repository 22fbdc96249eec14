package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"commerce/storefront/internal/config"
	"commerce/storefront/internal/domain"

	log "github.com/sirupsen/logrus"
	"go.uber.org/ratelimit"
	"resty.dev/v3"
)

// Notification kinds understood by the engine
const (
	NotificationPasswordReset     = "password-reset"
	NotificationAccountRegistered = "account-registered"
)

// CommerceClient talks to the commerce engine that owns orders, countries and outbound mail
type CommerceClient interface {
	GetOrders(ctx context.Context, customerID string) (domain.ManagerResponse[[]domain.OrderHeader], error)
	GetOrder(ctx context.Context, customerID, orderID string) (domain.ManagerResponse[*domain.Order], error)
	Reorder(ctx context.Context, customerID, orderID string) (domain.ManagerResponse[*domain.Order], error)
	CancelOrder(ctx context.Context, customerID string, in domain.CancelOrderInput) (domain.ManagerResponse[bool], error)
	GetCountries(ctx context.Context) (domain.ManagerResponse[map[string]string], error)
	SendNotification(ctx context.Context, kind string, payload any) error
	Close() error
}

type commerceClient struct {
	rl         ratelimit.Limiter
	httpClient *resty.Client

	// Circuit breaker for an overloaded engine
	circuitBreakerMutex sync.RWMutex
	unavailableUntil    time.Time
	circuitBreakerDelay time.Duration
}

func NewCommerceClient(cfg config.CommerceConfig) CommerceClient {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(time.Duration(cfg.Timeout)*time.Second).
		SetRetryCount(cfg.MaxRetries).
		SetRetryWaitTime(500*time.Millisecond).
		SetRetryMaxWaitTime(5*time.Second).
		SetHeader("Accept", "application/json").
		SetHeader("Content-Type", "application/json")

	if cfg.APIKey != "" {
		client.SetHeader("X-Api-Key", cfg.APIKey)
	}

	rl := ratelimit.NewUnlimited()
	if cfg.MaxRequestsPerSecond > 0 {
		rl = ratelimit.New(cfg.MaxRequestsPerSecond)
	}

	return &commerceClient{
		rl:                  rl,
		httpClient:          client,
		circuitBreakerDelay: 30 * time.Second,
	}
}

// envelope is the engine's response shape
type envelope[T any] struct {
	Success bool     `json:"success"`
	Errors  []string `json:"errors"`
	Result  T        `json:"result"`
}

func (c *commerceClient) GetOrders(ctx context.Context, customerID string) (domain.ManagerResponse[[]domain.OrderHeader], error) {
	resp, err := call[[]domain.OrderHeader](ctx, c, http.MethodGet, "/orders", func(r *resty.Request) {
		r.SetQueryParam("customer_id", customerID)
	})
	if err == nil && resp.Result == nil {
		resp.Result = []domain.OrderHeader{}
	}
	return resp, err
}

func (c *commerceClient) GetOrder(ctx context.Context, customerID, orderID string) (domain.ManagerResponse[*domain.Order], error) {
	return call[*domain.Order](ctx, c, http.MethodGet, "/orders/{id}", func(r *resty.Request) {
		r.SetPathParam("id", orderID).
			SetQueryParam("customer_id", customerID)
	})
}

func (c *commerceClient) Reorder(ctx context.Context, customerID, orderID string) (domain.ManagerResponse[*domain.Order], error) {
	return call[*domain.Order](ctx, c, http.MethodPost, "/orders/{id}/reorder", func(r *resty.Request) {
		r.SetPathParam("id", orderID).
			SetBody(map[string]string{"customer_id": customerID})
	})
}

func (c *commerceClient) CancelOrder(ctx context.Context, customerID string, in domain.CancelOrderInput) (domain.ManagerResponse[bool], error) {
	return call[bool](ctx, c, http.MethodPost, "/orders/{id}/cancel", func(r *resty.Request) {
		r.SetPathParam("id", in.OrderID).
			SetBody(map[string]any{
				"customer_id":             customerID,
				"order_line_external_ids": in.OrderLineExternalIDs,
			})
	})
}

func (c *commerceClient) GetCountries(ctx context.Context) (domain.ManagerResponse[map[string]string], error) {
	return call[map[string]string](ctx, c, http.MethodGet, "/countries", nil)
}

func (c *commerceClient) SendNotification(ctx context.Context, kind string, payload any) error {
	resp, err := call[json.RawMessage](ctx, c, http.MethodPost, "/notifications/{kind}", func(r *resty.Request) {
		r.SetPathParam("kind", kind).SetBody(payload)
	})
	if err != nil {
		return err
	}
	if !resp.Success {
		return fmt.Errorf("notification %s rejected: %v", kind, resp.Errors)
	}
	return nil
}

func (c *commerceClient) Close() error {
	return c.httpClient.Close()
}

// call sends one request and decodes the engine envelope. Engine level failures
// come back as an unsuccessful response, transport failures as an error.
func call[T any](
	ctx context.Context,
	c *commerceClient,
	method, path string,
	configure func(r *resty.Request),
) (domain.ManagerResponse[T], error) {
	var zero domain.ManagerResponse[T]

	if c.isCircuitBreakerOpen() {
		remaining := c.getRemainingCircuitBreakerTime()
		log.Debugf("🚫 Request blocked by circuit breaker. Remaining time: %v", remaining.Round(time.Second))
		return zero, fmt.Errorf("circuit breaker is open for %v more: %w", remaining.Round(time.Second), domain.ErrUnavailable)
	}

	c.rl.Take()

	req := c.httpClient.R().SetContext(ctx)
	if configure != nil {
		configure(req)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		if ctx.Err() != nil {
			return zero, fmt.Errorf("request cancelled: %w", ctx.Err())
		}
		return zero, fmt.Errorf("failed to call %s %s: %w", method, path, err)
	}

	switch resp.StatusCode() {
	case http.StatusNotFound:
		return zero, fmt.Errorf("%s %s: %w", method, path, domain.ErrNotFound)
	case http.StatusTooManyRequests, http.StatusServiceUnavailable:
		c.triggerCircuitBreaker()
		return zero, fmt.Errorf("%s %s: %d: %w", method, path, resp.StatusCode(), domain.ErrUnavailable)
	}

	var env envelope[T]
	if err := json.Unmarshal([]byte(resp.String()), &env); err != nil {
		if resp.IsError() {
			return zero, fmt.Errorf("HTTP error: %d %s", resp.StatusCode(), resp.Status())
		}
		return zero, fmt.Errorf("failed to decode %s %s response: %w", method, path, err)
	}

	if resp.IsError() && len(env.Errors) == 0 {
		return zero, fmt.Errorf("HTTP error: %d %s", resp.StatusCode(), resp.Status())
	}

	return domain.ManagerResponse[T]{
		Success: env.Success && !resp.IsError(),
		Errors:  env.Errors,
		Result:  env.Result,
	}, nil
}

func (c *commerceClient) isCircuitBreakerOpen() bool {
	c.circuitBreakerMutex.RLock()
	now := time.Now()
	wasOpen := now.Before(c.unavailableUntil)
	wasTriggered := !c.unavailableUntil.IsZero()
	c.circuitBreakerMutex.RUnlock()

	if !wasOpen && wasTriggered {
		c.circuitBreakerMutex.Lock()
		// Double-check after acquiring write lock
		if !c.unavailableUntil.IsZero() && now.After(c.unavailableUntil) {
			c.unavailableUntil = time.Time{}
			log.Infof("✅ Circuit breaker automatically re-enabled - requests are now allowed")
		}
		c.circuitBreakerMutex.Unlock()
	}

	return wasOpen
}

func (c *commerceClient) triggerCircuitBreaker() {
	c.circuitBreakerMutex.Lock()
	defer c.circuitBreakerMutex.Unlock()

	c.unavailableUntil = time.Now().Add(c.circuitBreakerDelay)
	log.Warnf("🚫 Circuit breaker activated! Commerce engine requests disabled until %v",
		c.unavailableUntil.Format("15:04:05"))
}

func (c *commerceClient) getRemainingCircuitBreakerTime() time.Duration {
	c.circuitBreakerMutex.RLock()
	defer c.circuitBreakerMutex.RUnlock()

	remaining := time.Until(c.unavailableUntil)
	if remaining < 0 {
		return 0
	}
	return remaining
}
