package paystack

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/flexprice/paystack-gateway/internal/config"
	ierr "github.com/flexprice/paystack-gateway/internal/errors"
	"github.com/flexprice/paystack-gateway/internal/httpclient"
	"github.com/flexprice/paystack-gateway/internal/logger"
	"github.com/flexprice/paystack-gateway/internal/metrics"
	"github.com/flexprice/paystack-gateway/internal/types"
)

const (
	operationInitialize = "initialize"
	operationVerify     = "verify"
)

// PaystackClient defines the gateway operations this service uses
type PaystackClient interface {
	Initialize(ctx context.Context, secretKey string, req TransactionInitRequest) (*InitializeResult, error)
	Verify(ctx context.Context, secretKey, reference string) (*TransactionVerifyResult, error)
}

// Client talks to the Paystack REST API. Every call is a single attempt bounded by the
// configured gateway timeout.
type Client struct {
	baseURL    string
	timeout    time.Duration
	httpClient httpclient.Client
	metrics    *metrics.Metrics
	logger     *logger.Logger
}

// NewClient creates a new Paystack client
func NewClient(cfg *config.Configuration, m *metrics.Metrics, logger *logger.Logger) PaystackClient {
	timeout := cfg.Paystack.GatewayTimeout()
	return NewClientWithHTTP(cfg, httpclient.NewClient(httpclient.ClientConfig{Timeout: timeout}), m, logger)
}

// NewClientWithHTTP creates a client on top of an existing transport
func NewClientWithHTTP(cfg *config.Configuration, hc httpclient.Client, m *metrics.Metrics, logger *logger.Logger) PaystackClient {
	return &Client{
		baseURL:    strings.TrimRight(cfg.Paystack.BaseURL, "/"),
		timeout:    cfg.Paystack.GatewayTimeout(),
		httpClient: hc,
		metrics:    m,
		logger:     logger,
	}
}

// Initialize starts a transaction and returns the hosted payment page
func (c *Client) Initialize(ctx context.Context, secretKey string, req TransactionInitRequest) (*InitializeResult, error) {
	c.logger.Infow("initializing paystack transaction",
		"reference", req.Reference,
		"amount", req.AmountMinorUnits)

	body := initializeRequest{
		Amount:      req.AmountMinorUnits,
		Email:       req.Email,
		Reference:   req.Reference,
		CallbackURL: req.CallbackURL,
		Metadata:    req.Metadata.Metadata(),
	}

	var data initializeData
	if err := c.makeRequest(ctx, operationInitialize, secretKey, http.MethodPost, "/transaction/initialize", body, &data); err != nil {
		c.logger.Errorw("failed to initialize paystack transaction",
			"reference", req.Reference,
			"error", err)
		return nil, err
	}

	if data.AuthorizationURL == "" {
		return nil, ierr.NewError("paystack returned no authorization url").
			WithHint("Payment gateway did not return a payment page").
			WithReportableDetails(map[string]any{"reference": req.Reference}).
			Mark(ierr.ErrGatewayRejected)
	}

	c.logger.Infow("initialized paystack transaction",
		"reference", data.Reference,
		"access_code", data.AccessCode)

	return &InitializeResult{
		AuthorizationURL: data.AuthorizationURL,
		AccessCode:       data.AccessCode,
		Reference:        data.Reference,
	}, nil
}

// Verify fetches the gateway's status for a reference
func (c *Client) Verify(ctx context.Context, secretKey, reference string) (*TransactionVerifyResult, error) {
	c.logger.Infow("verifying paystack transaction", "reference", reference)

	var data verifyData
	endpoint := "/transaction/verify/" + url.PathEscape(reference)
	if err := c.makeRequest(ctx, operationVerify, secretKey, http.MethodGet, endpoint, nil, &data); err != nil {
		c.logger.Errorw("failed to verify paystack transaction",
			"reference", reference,
			"error", err)
		return nil, err
	}

	result := &TransactionVerifyResult{
		Success:         true,
		Status:          types.ParseTransactionStatus(data.Status),
		Reference:       data.Reference,
		GatewayResponse: data.GatewayResponse,
		Metadata:        metadataMap(data.Metadata),
	}

	c.logger.Infow("verified paystack transaction",
		"reference", result.Reference,
		"status", result.Status,
		"gateway_response", result.GatewayResponse)

	return result, nil
}

// makeRequest sends one request and decodes the envelope's data into response
func (c *Client) makeRequest(ctx context.Context, operation, secretKey, method, endpoint string, body interface{}, response interface{}) (err error) {
	start := time.Now()
	outcome := metrics.OutcomeSuccess
	defer func() {
		c.metrics.ObserveGatewayCall(operation, outcome, time.Since(start))
	}()

	if secretKey == "" {
		outcome = metrics.OutcomeUnauthorized
		return ierr.NewError("paystack secret key is not configured").
			WithHint("Configure the Paystack secret key in the payment settings").
			Mark(ierr.ErrUnauthorized)
	}

	var jsonBody []byte
	if body != nil {
		jsonBody, err = json.Marshal(body)
		if err != nil {
			outcome = metrics.OutcomeHTTPError
			return ierr.WithError(err).
				WithHint("Invalid request data").
				Mark(ierr.ErrHTTPClient)
		}
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.httpClient.Send(ctx, &httpclient.Request{
		Method: method,
		URL:    c.baseURL + endpoint,
		Headers: map[string]string{
			"Authorization": "Bearer " + secretKey,
			"Accept":        "application/json",
		},
		Body: jsonBody,
	})
	if err != nil {
		if httpErr, ok := httpclient.IsHTTPError(err); ok {
			if httpErr.StatusCode == http.StatusUnauthorized {
				outcome = metrics.OutcomeUnauthorized
				return ierr.NewError("paystack rejected the secret key").
					WithHint(gatewayMessage(httpErr.Response, "Invalid Paystack secret key")).
					WithReportableDetails(map[string]any{"endpoint": endpoint}).
					Mark(ierr.ErrUnauthorized)
			}
			outcome = metrics.OutcomeRejected
			return ierr.NewErrorf("paystack returned status %d", httpErr.StatusCode).
				WithHint(gatewayMessage(httpErr.Response, fmt.Sprintf("Paystack returned status %d", httpErr.StatusCode))).
				WithReportableDetails(map[string]any{
					"status_code": httpErr.StatusCode,
					"endpoint":    endpoint,
				}).
				Mark(ierr.ErrGatewayRejected)
		}
		outcome = metrics.OutcomeHTTPError
		return ierr.WithError(err).
			WithHint("Unable to connect to Paystack").
			WithReportableDetails(map[string]any{
				"method":   method,
				"endpoint": endpoint,
			}).
			Mark(ierr.ErrHTTPClient)
	}

	var env envelope
	if err := json.Unmarshal(resp.Body, &env); err != nil {
		outcome = metrics.OutcomeHTTPError
		return ierr.WithError(err).
			WithHint("Invalid response from Paystack").
			Mark(ierr.ErrHTTPClient)
	}

	if !env.Status {
		outcome = metrics.OutcomeRejected
		return ierr.NewError("paystack reported failure").
			WithHint(messageOr(env.Message, "Paystack rejected the request")).
			WithReportableDetails(map[string]any{"endpoint": endpoint}).
			Mark(ierr.ErrGatewayRejected)
	}

	if response != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, response); err != nil {
			outcome = metrics.OutcomeHTTPError
			return ierr.WithError(err).
				WithHint("Invalid response from Paystack").
				Mark(ierr.ErrHTTPClient)
		}
	}

	return nil
}

// gatewayMessage pulls the message out of an error body, falling back when there is none
func gatewayMessage(body []byte, fallback string) string {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return fallback
	}
	return messageOr(env.Message, fallback)
}

func messageOr(message, fallback string) string {
	if message == "" {
		return fallback
	}
	return message
}
