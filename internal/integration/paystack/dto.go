package paystack

import (
	"encoding/json"

	"github.com/flexprice/paystack-gateway/internal/types"
)

// TransactionInitRequest is what the initiator asks the gateway to start
type TransactionInitRequest struct {
	AmountMinorUnits int64
	Email            string
	CallbackURL      string
	Reference        string
	Metadata         PaymentReference
}

// InitializeResult is the hosted payment page the customer is sent to
type InitializeResult struct {
	AuthorizationURL string
	AccessCode       string
	Reference        string
}

// TransactionVerifyResult is the gateway's view of a transaction. Metadata is left untyped
// and must go through DecodeReference.
type TransactionVerifyResult struct {
	Success         bool
	Status          types.TransactionStatus
	Reference       string
	GatewayResponse string
	Metadata        map[string]any
}

// initializeRequest is the wire body of POST /transaction/initialize
type initializeRequest struct {
	Amount      int64          `json:"amount"`
	Email       string         `json:"email"`
	Reference   string         `json:"reference"`
	CallbackURL string         `json:"callback_url"`
	Metadata    map[string]any `json:"metadata"`
}

// envelope is the common Paystack response shape
type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type initializeData struct {
	AuthorizationURL string `json:"authorization_url"`
	AccessCode       string `json:"access_code"`
	Reference        string `json:"reference"`
}

type verifyData struct {
	Status          string          `json:"status"`
	Reference       string          `json:"reference"`
	GatewayResponse string          `json:"gateway_response"`
	Metadata        json.RawMessage `json:"metadata"`
}

// metadataMap decodes the metadata blob. Paystack echoes whatever was sent, which may be an
// object, a JSON-encoded string of an object, or empty.
func metadataMap(raw json.RawMessage) map[string]any {
	if len(raw) == 0 {
		return nil
	}

	var m map[string]any
	if err := json.Unmarshal(raw, &m); err == nil {
		return m
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil && s != "" {
		if err := json.Unmarshal([]byte(s), &m); err == nil {
			return m
		}
	}
	return nil
}
