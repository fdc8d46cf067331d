package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/flexprice/paystack-gateway/internal/config"
	ierr "github.com/flexprice/paystack-gateway/internal/errors"
	"github.com/flexprice/paystack-gateway/internal/logger"
	"github.com/flexprice/paystack-gateway/internal/types"
	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestStoreContextMiddleware(t *testing.T) {
	cfg := config.GetDefaultConfig()
	cfg.Store.AllowedURLs = []string{"https://shop.example"}

	r := gin.New()
	r.Use(RequestIDMiddleware, StoreContextMiddleware(cfg, logger.NewNopLogger()))

	var storeID, scope, customerID int64
	var storeURL, requestID string
	r.GET("/", func(c *gin.Context) {
		ctx := c.Request.Context()
		storeID = types.GetStoreID(ctx)
		scope = types.GetStoreScope(ctx)
		customerID = types.GetCustomerID(ctx)
		storeURL = types.GetStoreURL(ctx)
		requestID = types.GetRequestID(ctx)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(types.HeaderStoreID, "3")
	req.Header.Set(types.HeaderStoreScope, "oops")
	req.Header.Set(types.HeaderCustomerID, "42")
	req.Header.Set(types.HeaderStoreURL, "https://shop.example/")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, int64(3), storeID)
	assert.Equal(t, int64(0), scope)
	assert.Equal(t, int64(42), customerID)
	assert.Equal(t, "https://shop.example/", storeURL)
	assert.NotEmpty(t, requestID)
	assert.Equal(t, requestID, rec.Header().Get(types.HeaderRequestID))
}

func TestStoreContextMiddlewareDropsForeignStoreURL(t *testing.T) {
	cfg := config.GetDefaultConfig()
	cfg.Store.BaseURL = "https://shop.example/"

	tests := []struct {
		name   string
		header string
		want   string
	}{
		{name: "base origin", header: "https://shop.example/fr", want: "https://shop.example/fr"},
		{name: "foreign origin", header: "https://evil.example", want: ""},
		{name: "not a url", header: "javascript:alert(1)", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var storeURL string
			r := gin.New()
			r.Use(StoreContextMiddleware(cfg, logger.NewNopLogger()))
			r.GET("/", func(c *gin.Context) {
				storeURL = types.GetStoreURL(c.Request.Context())
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set(types.HeaderStoreURL, tt.header)
			r.ServeHTTP(httptest.NewRecorder(), req)

			assert.Equal(t, tt.want, storeURL)
		})
	}
}

func TestCORSMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		allowed    []string
		origin     string
		wantOrigin string
	}{
		{name: "listed origin", allowed: []string{"https://admin.example"}, origin: "https://admin.example", wantOrigin: "https://admin.example"},
		{name: "unlisted origin", allowed: []string{"https://admin.example"}, origin: "https://evil.example", wantOrigin: ""},
		{name: "wildcard", allowed: []string{"*"}, origin: "https://any.example", wantOrigin: "*"},
		{name: "nothing configured", allowed: nil, origin: "https://admin.example", wantOrigin: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.GetDefaultConfig()
			cfg.CORS.AllowedOrigins = tt.allowed

			r := gin.New()
			r.Use(CORSMiddleware(cfg))
			r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set("Origin", tt.origin)
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.wantOrigin, rec.Header().Get("Access-Control-Allow-Origin"))
			if tt.wantOrigin != "" {
				assert.Equal(t, "86400", rec.Header().Get("Access-Control-Max-Age"))
				assert.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), types.HeaderAdminKey)
			}
		})
	}
}

func TestCORSPreflight(t *testing.T) {
	cfg := config.GetDefaultConfig()
	cfg.CORS.AllowedOrigins = []string{"https://admin.example"}

	r := gin.New()
	r.Use(CORSMiddleware(cfg))

	req := httptest.NewRequest(http.MethodOptions, "/Admin/PaymentGateway/Configure", nil)
	req.Header.Set("Origin", "https://admin.example")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "https://admin.example", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "Origin", rec.Header().Get("Vary"))
}

func TestErrorHandlerEchoesRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestIDMiddleware, ErrorHandler())
	r.GET("/", func(c *gin.Context) {
		c.Error(ierr.NewError("order missing").
			WithHint("Order not found").
			Mark(ierr.ErrNotFound))
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(types.HeaderRequestID, "req-1")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"success":false,"error":{"message":"Order not found","code":"not_found"},"request_id":"req-1"}`, rec.Body.String())
}

func TestSentryMiddlewareAttachesRequestHub(t *testing.T) {
	cfg := config.GetDefaultConfig()

	var disabledHub *sentry.Hub
	r := gin.New()
	r.Use(SentryMiddleware(cfg))
	r.GET("/", func(c *gin.Context) {
		disabledHub = sentry.GetHubFromContext(c.Request.Context())
	})
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Nil(t, disabledHub)

	cfg.Sentry.Enabled = true
	var hub *sentry.Hub
	r = gin.New()
	r.Use(RequestIDMiddleware, SentryMiddleware(cfg))
	r.GET("/", func(c *gin.Context) {
		hub = sentry.GetHubFromContext(c.Request.Context())
	})
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	require.NotNil(t, hub)
	assert.NotSame(t, sentry.CurrentHub(), hub)
}

func TestAdminAuthMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		configured string
		provided   string
		wantStatus int
	}{
		{name: "valid key", configured: "secret", provided: "secret", wantStatus: http.StatusOK},
		{name: "wrong key", configured: "secret", provided: "nope", wantStatus: http.StatusForbidden},
		{name: "missing key", configured: "secret", provided: "", wantStatus: http.StatusForbidden},
		{name: "nothing configured", configured: "", provided: "", wantStatus: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.GetDefaultConfig()
			cfg.Auth.AdminKey = tt.configured

			r := gin.New()
			r.Use(ErrorHandler())
			r.GET("/", AdminAuthMiddleware(cfg, logger.NewNopLogger()), func(c *gin.Context) {
				c.Status(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.provided != "" {
				req.Header.Set(types.HeaderAdminKey, tt.provided)
			}
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestErrorHandlerRendersHintAndDetails(t *testing.T) {
	r := gin.New()
	r.Use(ErrorHandler())
	r.GET("/", func(c *gin.Context) {
		c.Error(ierr.NewError("customer has no email").
			WithHint("An email address is required").
			WithReportableDetails(map[string]any{"customer_id": 7}).
			Mark(ierr.ErrCustomerEmailMissing))
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.JSONEq(t, `{"success":false,"error":{"message":"An email address is required","code":"customer_email_missing","details":{"customer_id":7}}}`, rec.Body.String())
}
