package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"golang.org/x/crypto/bcrypt"

	"storefront/internal/config"
	"storefront/internal/http/handlers"
	applog "storefront/internal/log"
	"storefront/internal/mail"
	"storefront/internal/repos"
)

const (
	testAdminEmail = "admin@shop.test"
	testAdminPass  = "S3cret-admin-pass"
)

func testConfig() config.Config {
	return config.Config{
		AdminEmail:       testAdminEmail,
		AdminPassword:    testAdminPass,
		AdminSecret:      "test-admin-secret",
		AdminTokenTTL:    time.Hour,
		CustomerSecret:   "test-customer-secret",
		BcryptCost:       bcrypt.MinCost,
		PersistErrors:    "ignore",
		ContactRecipient: "owner@shop.test",
	}
}

type testApp struct {
	app   *fiber.App
	deps  *handlers.Deps
	store *repos.FileSnapshotStore
}

// Full route table over a file store in a temp dir
func newTestApp(t *testing.T, cfg config.Config, opts handlers.RouteOptions) *testApp {
	t.Helper()
	dir := t.TempDir()
	store := repos.NewFileSnapshotStore(filepath.Join(dir, "products.json"), filepath.Join(dir, "product_history.json"))
	return newTestAppWithStore(t, cfg, opts, store)
}

func newTestAppWithStore(t *testing.T, cfg config.Config, opts handlers.RouteOptions, store *repos.FileSnapshotStore) *testApp {
	t.Helper()
	deps, err := handlers.NewDeps(cfg, store, mail.LogSender{})
	if err != nil {
		t.Fatalf("deps: %v", err)
	}
	if err := deps.Catalog.Load(); err != nil {
		t.Fatalf("load: %v", err)
	}
	app := fiber.New(fiber.Config{ErrorHandler: handlers.ErrorHandler, BodyLimit: 64 << 10})
	app.Use(requestid.New())
	handlers.Register(app, deps, opts)
	return &testApp{app: app, deps: deps, store: store}
}

// do sends body as JSON (or raw when it is []byte) and decodes the response
// into out when out is non-nil.
func (ta *testApp) do(t *testing.T, method, path, token string, body any, out any) *http.Response {
	t.Helper()
	var rdr io.Reader
	switch b := body.(type) {
	case nil:
	case []byte:
		rdr = bytes.NewReader(b)
	default:
		raw, err := json.Marshal(b)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		rdr = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, rdr)
	if rdr != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := ta.app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	if out != nil {
		defer resp.Body.Close()
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("%s %s: decode: %v", method, path, err)
		}
	}
	return resp
}

func (ta *testApp) adminToken(t *testing.T) string {
	t.Helper()
	var tok struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	resp := ta.do(t, "POST", "/auth/login", "", map[string]string{"email": testAdminEmail, "password": testAdminPass}, &tok)
	if resp.StatusCode != http.StatusOK || tok.AccessToken == "" {
		t.Fatalf("admin login: status %d", resp.StatusCode)
	}
	if tok.TokenType != "bearer" {
		t.Fatalf("token_type = %q", tok.TokenType)
	}
	return tok.AccessToken
}

type apiError struct {
	Error  string            `json:"error"`
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

// captureLogs routes the package logger to an in-memory core for the test.
func captureLogs(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zap.DebugLevel)
	applog.Set(zap.New(core))
	t.Cleanup(func() { applog.Set(nil) })
	return logs
}
