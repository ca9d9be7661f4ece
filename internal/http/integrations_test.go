package handlers_test

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"storefront/internal/domain"
	"storefront/internal/http/handlers"
)

func TestWebhookSignature(t *testing.T) {
	cfg := testConfig()
	cfg.Payoneer.WebhookSecret = "whsec"
	ta := newTestApp(t, cfg, handlers.RouteOptions{})
	body := `{"event":"payment.completed","order_id":"o1"}`

	mac := hmac.New(sha256.New, []byte("whsec"))
	mac.Write([]byte(body))
	good := hex.EncodeToString(mac.Sum(nil))

	post := func(sig string) int {
		req := httptest.NewRequest("POST", "/webhooks/payoneer", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		if sig != "" {
			req.Header.Set("X-Payoneer-Signature", sig)
		}
		resp, err := ta.app.Test(req, -1)
		if err != nil {
			t.Fatal(err)
		}
		return resp.StatusCode
	}
	if got := post(good); got != http.StatusOK {
		t.Fatalf("valid signature: want 200, got %d", got)
	}
	if got := post(""); got != http.StatusBadRequest {
		t.Fatalf("missing signature: want 400, got %d", got)
	}
	if got := post(strings.Repeat("0", 64)); got != http.StatusBadRequest {
		t.Fatalf("wrong signature: want 400, got %d", got)
	}
}

func TestWebhookWithoutSecretAcceptsAll(t *testing.T) {
	ta := newTestApp(t, testConfig(), handlers.RouteOptions{})
	if resp := ta.do(t, "POST", "/webhooks/payoneer", "", []byte(`{}`), nil); resp.StatusCode != http.StatusOK {
		t.Fatalf("want 200, got %d", resp.StatusCode)
	}
}

func TestCheckoutIntent(t *testing.T) {
	ta := newTestApp(t, testConfig(), handlers.RouteOptions{})
	admin := ta.adminToken(t)
	p := seedProduct(t, ta, admin, map[string]any{"name": "Atlas", "price_cents": 1000})
	cart := map[string]any{"items": []map[string]any{{"product_id": p.ID, "quantity": 1}}}

	var intent struct {
		Status      string  `json:"status"`
		Message     string  `json:"message"`
		RedirectURL *string `json:"redirect_url"`
	}
	ta.do(t, "POST", "/payments/payoneer/checkout-intent", "", cart, &intent)
	if intent.Status != "disabled" || intent.RedirectURL != nil {
		t.Fatalf("unconfigured: %+v", intent)
	}

	cfg := testConfig()
	cfg.Payoneer.MerchantID, cfg.Payoneer.APIKey, cfg.Payoneer.APISecret = "m", "k", "s"
	live := newTestApp(t, cfg, handlers.RouteOptions{})
	p = seedProduct(t, live, live.adminToken(t), map[string]any{"name": "Atlas", "price_cents": 1000})
	cart = map[string]any{"items": []map[string]any{{"product_id": p.ID, "quantity": 1}}}
	live.do(t, "POST", "/payments/payoneer/checkout-intent", "", cart, &intent)
	if intent.Status != "ok" || intent.RedirectURL == nil || !strings.HasPrefix(*intent.RedirectURL, "https://") {
		t.Fatalf("configured: %+v", intent)
	}

	var e apiError
	resp := live.do(t, "POST", "/payments/payoneer/checkout-intent", "", map[string]any{"items": []map[string]any{{"product_id": "ghost", "quantity": 1}}}, &e)
	if resp.StatusCode != http.StatusBadRequest || e.Error != "invalid_cart" {
		t.Fatalf("bad cart: %d %+v", resp.StatusCode, e)
	}
}

func TestOAuthStubs(t *testing.T) {
	t.Setenv("GOOGLE_CLIENT_ID", "cid")
	t.Setenv("GOOGLE_REDIRECT_URL", "https://shop.test/cb")

	ta := newTestApp(t, testConfig(), handlers.RouteOptions{})
	var start struct {
		Status  string `json:"status"`
		AuthURL string `json:"auth_url"`
	}
	ta.do(t, "GET", "/oauth/github/start", "", nil, &start)
	if start.Status != "disabled" {
		t.Fatalf("unconfigured provider: %+v", start)
	}
	ta.do(t, "GET", "/oauth/google/start", "", nil, &start)
	if start.Status != "ok" || !strings.Contains(start.AuthURL, "client_id=cid") {
		t.Fatalf("configured provider: %+v", start)
	}

	var cb struct {
		Status      string `json:"status"`
		AccessToken string `json:"access_token"`
	}
	ta.do(t, "GET", "/oauth/google/callback?code=abc", "", nil, &cb)
	if cb.Status != "disabled" || cb.AccessToken != "" {
		t.Fatalf("dev login off: %+v", cb)
	}

	cfg := testConfig()
	cfg.OAuthDevAutoLogin = true
	dev := newTestApp(t, cfg, handlers.RouteOptions{})
	cb.Status = ""
	dev.do(t, "GET", "/oauth/google/callback?email=dev@example.com", "", nil, &cb)
	if cb.AccessToken == "" {
		t.Fatalf("dev login on: %+v", cb)
	}
	var me struct {
		Email string `json:"email"`
	}
	if resp := dev.do(t, "GET", "/me", cb.AccessToken, nil, &me); resp.StatusCode != http.StatusOK || me.Email != "dev@example.com" {
		t.Fatalf("me with oauth token: %d %+v", resp.StatusCode, me)
	}

	if resp := dev.do(t, "GET", "/oauth/google/callback?email=nope", "", nil, nil); resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("bad email: want 422, got %d", resp.StatusCode)
	}
}

func TestContactRoutes(t *testing.T) {
	ta := newTestApp(t, testConfig(), handlers.RouteOptions{})
	logs := captureLogs(t)
	msg := map[string]string{"name": "Ada", "email": "ada@example.com", "message": "Hello"}

	if resp := ta.do(t, "POST", "/contact", "", msg, nil); resp.StatusCode != http.StatusOK {
		t.Fatalf("contact: want 200, got %d", resp.StatusCode)
	}
	sent := logs.FilterMessage("contact.email.dev_fallback").All()
	if len(sent) != 1 || sent[0].ContextMap()["subject"] != "[Contact] Ada <ada@example.com>" {
		t.Fatalf("expected fallback mail log, got %d entries", len(sent))
	}

	if resp := ta.do(t, "POST", "/contact", "", map[string]string{"name": "Ada"}, nil); resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("invalid contact: want 422, got %d", resp.StatusCode)
	}

	var wall []domain.PublicMessage
	ta.do(t, "GET", "/contact/public", "", nil, &wall)
	if wall == nil || len(wall) != 0 {
		t.Fatalf("empty wall: %v", wall)
	}
	ta.do(t, "POST", "/contact/public", "", msg, nil)
	ta.do(t, "GET", "/contact/public", "", nil, &wall)
	if len(wall) != 1 || wall[0].Message != "Hello" {
		t.Fatalf("wall: %+v", wall)
	}
}
