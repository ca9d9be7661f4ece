package services

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sony/gobreaker"

	"storefront/internal/domain"
	applog "storefront/internal/log"
)

type CheckoutRequest struct {
	Items      []domain.OrderItem
	TotalCents int64
}

// CheckoutProvider creates a hosted checkout session and returns the URL the
// customer is redirected to.
type CheckoutProvider interface {
	CreateCheckout(ctx context.Context, req CheckoutRequest) (string, error)
}

// StubProvider mints checkout URLs without contacting any gateway.
type StubProvider struct {
	BaseURL string
}

func (p StubProvider) CreateCheckout(ctx context.Context, _ CheckoutRequest) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	base := p.BaseURL
	if base == "" {
		base = "https://payoneer.example/checkout/"
	}
	return base + uuid.NewString(), nil
}

type CheckoutIntent struct {
	Status      string  `json:"status"`
	Message     string  `json:"message,omitempty"`
	RedirectURL *string `json:"redirect_url"`
}

type PaymentService struct {
	Orders        *OrderService
	Provider      CheckoutProvider
	Configured    bool
	WebhookSecret string

	cb *gobreaker.CircuitBreaker
}

func NewPaymentService(orders *OrderService, provider CheckoutProvider, configured bool, webhookSecret string) *PaymentService {
	settings := gobreaker.Settings{
		Name:        "CheckoutProvider",
		MaxRequests: 3,
		Interval:    5 * time.Second,
		Timeout:     10 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 5 && failureRatio >= 0.6
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			applog.Warn(nil, "payment.breaker.state", nil, map[string]any{
				"name": name, "from": from.String(), "to": to.String(),
			})
		},
	}
	return &PaymentService{
		Orders:        orders,
		Provider:      provider,
		Configured:    configured,
		WebhookSecret: webhookSecret,
		cb:            gobreaker.NewCircuitBreaker(settings),
	}
}

// CheckoutIntent prices the cart and asks the provider for a redirect. When
// the provider is not configured it reports "disabled" without touching the cart.
func (s *PaymentService) CheckoutIntent(ctx context.Context, in domain.OrderInput) (CheckoutIntent, error) {
	if !s.Configured {
		return CheckoutIntent{Status: "disabled", Message: "Payoneer not configured"}, nil
	}
	total, err := s.Orders.Quote(in.Items)
	if err != nil {
		return CheckoutIntent{}, err
	}
	redirect, err := executeWithBreaker(s.cb, func() (string, error) {
		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		return s.Provider.CreateCheckout(ctx, CheckoutRequest{Items: in.Items, TotalCents: total})
	})
	if err != nil {
		return CheckoutIntent{}, fmt.Errorf("create checkout: %w", err)
	}
	return CheckoutIntent{Status: "ok", RedirectURL: &redirect}, nil
}

// VerifyWebhook checks the hex HMAC-SHA256 of the raw body. Without a
// configured secret every payload is accepted.
func (s *PaymentService) VerifyWebhook(body []byte, signature string) error {
	if s.WebhookSecret == "" {
		return nil
	}
	m := hmac.New(sha256.New, []byte(s.WebhookSecret))
	m.Write(body)
	expected := hex.EncodeToString(m.Sum(nil))
	if !hmac.Equal([]byte(signature), []byte(expected)) {
		return ErrInvalidSignature
	}
	return nil
}
