// Package integrationtest provides helpers to run the whole server in tests.
package integrationtest

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/go-petr/edupay/cmd/httpserver"
	"github.com/go-petr/edupay/internal/accountrepo"
	"github.com/go-petr/edupay/internal/middleware"
	"github.com/go-petr/edupay/pkg/configpkg"
	"github.com/go-petr/edupay/pkg/web"
)

// Config returns the test configuration: demo mode on a file store without
// Redis, Kafka, SMTP or real gateway credentials.
func Config(t *testing.T) configpkg.Config {
	t.Helper()

	config, err := configpkg.Load("../../configs")
	if err != nil {
		t.Fatalf(`configpkg.Load("../../configs") returned error: %v`, err)
	}

	config.DBDriver = accountrepo.DriverFile
	config.DBSource = filepath.Join(t.TempDir(), "accounts.json")
	config.DemoMode = true
	config.BcryptCost = bcrypt.MinCost
	config.RedisAddr = ""
	config.KafkaBrokers = ""
	config.SMTPHost = ""
	config.RazorpayKeyID = ""
	config.StripeSecretKey = ""
	config.PayPalClientID = ""
	config.FeeStructureFile = "../../configs/fees.yaml"

	return config
}

// SetupServer returns a seeded server backed by a temporary account file.
func SetupServer(t *testing.T) *httpserver.Server {
	t.Helper()

	return SetupServerWith(t, Config(t))
}

// SetupServerWith returns a server for config.
func SetupServerWith(t *testing.T, config configpkg.Config) *httpserver.Server {
	t.Helper()

	zerolog.SetGlobalLevel(zerolog.FatalLevel)
	gin.SetMode(gin.ReleaseMode)

	logger := middleware.CreateLogger(config)

	store, _, err := accountrepo.Open(config.DBDriver, config.DBSource)
	if err != nil {
		t.Fatalf("accountrepo.Open(%q, %q) returned error: %v", config.DBDriver, config.DBSource, err)
	}

	server, err := httpserver.New(store, logger, config)
	if err != nil {
		t.Fatalf(`httpserver.New(store, logger, config) returned error: %v`, err)
	}

	t.Cleanup(func() {
		if err := server.Close(); err != nil {
			t.Errorf("server.Close() returned error: %v", err)
		}
	})

	return server
}

// Do sends a JSON request to h and decodes the response envelope.
// Non JSON responses are returned in the recorder only.
func Do(t *testing.T, h http.Handler, method, url, token string, body any) (*httptest.ResponseRecorder, web.Response) {
	t.Helper()

	var buf bytes.Buffer

	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("json.Encode(%v) returned error: %v", body, err)
		}
	}

	req := httptest.NewRequest(method, url, &buf)
	req.Header.Set("Content-Type", "application/json")

	if token != "" {
		req.Header.Set(middleware.AuthHeaderKey, middleware.AuthTypeBearer+" "+token)
	}

	recorder := httptest.NewRecorder()
	h.ServeHTTP(recorder, req)

	var res web.Response

	if recorder.Header().Get("Content-Type") == "application/json; charset=utf-8" {
		if err := json.Unmarshal(recorder.Body.Bytes(), &res); err != nil {
			t.Fatalf("json.Unmarshal(%s) returned error: %v", recorder.Body.String(), err)
		}
	}

	return recorder, res
}

// Login returns an access token for the demo account username.
func Login(t *testing.T, h http.Handler, username, password string) string {
	t.Helper()

	recorder, res := Do(t, h, http.MethodPost, "/accounts/login", "", map[string]string{
		"username": username,
		"password": password,
	})
	if recorder.Code != http.StatusOK {
		t.Fatalf("login %s: got status %d, body %s", username, recorder.Code, recorder.Body.String())
	}

	return res.AccessToken
}

// Field decodes the key entry of a response's data into T.
func Field[T any](t *testing.T, res web.Response, key string) T {
	t.Helper()

	var (
		fields map[string]json.RawMessage
		v      T
	)

	raw, err := json.Marshal(res.Data)
	if err != nil {
		t.Fatalf("json.Marshal(%v) returned error: %v", res.Data, err)
	}

	if err := json.Unmarshal(raw, &fields); err != nil {
		t.Fatalf("json.Unmarshal(%s) returned error: %v", raw, err)
	}

	if err := json.Unmarshal(fields[key], &v); err != nil {
		t.Fatalf("decoding %q from %s returned error: %v", key, raw, err)
	}

	return v
}
