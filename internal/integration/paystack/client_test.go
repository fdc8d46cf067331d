package paystack

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/flexprice/paystack-gateway/internal/config"
	ierr "github.com/flexprice/paystack-gateway/internal/errors"
	"github.com/flexprice/paystack-gateway/internal/httpclient"
	"github.com/flexprice/paystack-gateway/internal/logger"
	"github.com/flexprice/paystack-gateway/internal/metrics"
	"github.com/flexprice/paystack-gateway/internal/testutil"
	"github.com/flexprice/paystack-gateway/internal/types"
	"github.com/google/uuid"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (PaystackClient, *metrics.Metrics) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := config.GetDefaultConfig()
	cfg.Paystack.BaseURL = srv.URL
	cfg.Paystack.Timeout = 2 * time.Second

	m := metrics.NewMetrics()
	return NewClientWithHTTP(cfg, httpclient.NewClientFrom(srv.Client()), m, logger.NewNopLogger()), m
}

func TestInitialize(t *testing.T) {
	guid := uuid.New()
	var received initializeRequest

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/transaction/initialize", r.URL.Path)
		assert.Equal(t, "Bearer sk_test_123", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(body, &received))

		_, _ = w.Write([]byte(`{"status":true,"message":"Authorization URL created","data":{
			"authorization_url":"https://checkout.paystack.com/abc",
			"access_code":"abc",
			"reference":"` + guid.String() + `"}}`))
	})

	result, err := client.Initialize(context.Background(), "sk_test_123", TransactionInitRequest{
		AmountMinorUnits: 1100,
		Email:            "buyer@example.com",
		CallbackURL:      "https://shop.example/Plugins/PaymentGateway/Callback",
		Reference:        guid.String(),
		Metadata:         PaymentReference{OrderGUID: guid, CustomOrderNumber: "1001"},
	})
	require.NoError(t, err)

	assert.Equal(t, "https://checkout.paystack.com/abc", result.AuthorizationURL)
	assert.Equal(t, "abc", result.AccessCode)
	assert.Equal(t, guid.String(), result.Reference)

	assert.Equal(t, int64(1100), received.Amount)
	assert.Equal(t, "buyer@example.com", received.Email)
	assert.Equal(t, guid.String(), received.Reference)
	assert.Equal(t, "https://shop.example/Plugins/PaymentGateway/Callback", received.CallbackURL)
	assert.Equal(t, guid.String(), received.Metadata[MetadataKeyOrderGUID])
	assert.Equal(t, "1001", received.Metadata[MetadataKeyCustomOrderNumber])
}

func TestVerify(t *testing.T) {
	guid := uuid.New()

	client, m := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/transaction/verify/"+guid.String(), r.URL.Path)

		_, _ = w.Write([]byte(`{"status":true,"message":"Verification successful","data":{
			"status":"success",
			"reference":"` + guid.String() + `",
			"gateway_response":"Approved",
			"metadata":{"orderGuid":"` + guid.String() + `","customOrderNumber":"1001","referrer":"x"}}}`))
	})

	result, err := client.Verify(context.Background(), "sk_test_123", guid.String())
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Equal(t, types.TransactionStatusSuccess, result.Status)
	assert.Equal(t, guid.String(), result.Reference)
	assert.Equal(t, "Approved", result.GatewayResponse)

	ref, err := DecodeReference(result.Metadata)
	require.NoError(t, err)
	assert.Equal(t, guid, ref.OrderGUID)

	series, err := promtest.GatherAndCount(m.Registry(), "paystack_gateway_requests_total")
	require.NoError(t, err)
	assert.Equal(t, 1, series)
}

func TestVerifyEscapesReference(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/transaction/verify/a%2Fb", r.URL.EscapedPath())
		_, _ = w.Write([]byte(`{"status":true,"data":{"status":"abandoned","reference":"a/b"}}`))
	})

	result, err := client.Verify(context.Background(), "sk", "a/b")
	require.NoError(t, err)
	assert.Equal(t, types.TransactionStatusAbandoned, result.Status)
	assert.Nil(t, result.Metadata)
}

func TestVerifyUnknownStatusIsOther(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":true,"data":{"status":"reversed","reference":"r"}}`))
	})

	result, err := client.Verify(context.Background(), "sk", "r")
	require.NoError(t, err)
	assert.Equal(t, types.TransactionStatusOther, result.Status)
}

func TestGatewayErrors(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantErr  error
		wantHint string
	}{
		{
			name:     "unauthorized",
			status:   http.StatusUnauthorized,
			body:     `{"status":false,"message":"Invalid key"}`,
			wantErr:  ierr.ErrUnauthorized,
			wantHint: "Invalid key",
		},
		{
			name:     "rejected with message",
			status:   http.StatusBadRequest,
			body:     `{"status":false,"message":"Duplicate Transaction Reference"}`,
			wantErr:  ierr.ErrGatewayRejected,
			wantHint: "Duplicate Transaction Reference",
		},
		{
			name:     "status false on 200",
			status:   http.StatusOK,
			body:     `{"status":false,"message":"Transaction reference not found"}`,
			wantErr:  ierr.ErrGatewayRejected,
			wantHint: "Transaction reference not found",
		},
		{
			name:    "server error without body",
			status:  http.StatusBadGateway,
			body:    ``,
			wantErr: ierr.ErrGatewayRejected,
		},
		{
			name:    "undecodable body",
			status:  http.StatusOK,
			body:    `<html>maintenance</html>`,
			wantErr: ierr.ErrHTTPClient,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := client.Verify(context.Background(), "sk", "ref")
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
			if tt.wantHint != "" {
				assert.Contains(t, ierr.FlattenHints(err), tt.wantHint)
			}
		})
	}
}

func TestEmptySecretKeyIsUnauthorized(t *testing.T) {
	called := false
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	_, err := client.Verify(context.Background(), "", "ref")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ierr.ErrUnauthorized))
	assert.False(t, called)
}

func TestTimeoutIsNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	cfg := config.GetDefaultConfig()
	cfg.Paystack.BaseURL = srv.URL
	cfg.Paystack.Timeout = 50 * time.Millisecond

	client := NewClientWithHTTP(cfg, httpclient.NewClientFrom(srv.Client()), nil, logger.NewNopLogger())

	start := time.Now()
	_, err := client.Verify(context.Background(), "sk", "ref")
	require.Error(t, err)
	assert.True(t, ierr.IsHTTPClient(err))
	assert.False(t, ierr.IsGatewayRejection(err))
	assert.Less(t, time.Since(start), time.Second)
}

func TestTransportFailureIsNetworkError(t *testing.T) {
	cfg := config.GetDefaultConfig()
	mock := testutil.NewMockHTTPClient()
	mock.FailWith(errors.New("connection refused"))

	client := NewClientWithHTTP(cfg, mock, nil, logger.NewNopLogger())

	_, err := client.Verify(context.Background(), "sk", "ref")
	require.Error(t, err)
	assert.True(t, ierr.IsHTTPClient(err))
	assert.Len(t, mock.Requests(), 1)
}
