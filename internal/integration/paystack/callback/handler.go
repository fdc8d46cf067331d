package callback

import (
	"context"

	ierr "github.com/flexprice/paystack-gateway/internal/errors"
	"github.com/flexprice/paystack-gateway/internal/integration/paystack"
	"github.com/flexprice/paystack-gateway/internal/logger"
	"github.com/flexprice/paystack-gateway/internal/metrics"
	"github.com/flexprice/paystack-gateway/internal/sentry"
	"github.com/flexprice/paystack-gateway/internal/service"
	"github.com/flexprice/paystack-gateway/internal/types"
	"github.com/google/uuid"
)

// Handler reconciles gateway callbacks against orders
type Handler struct {
	client   paystack.PaystackClient
	settings paystack.SettingsLoader
	orderSvc service.OrderService
	sentry   *sentry.Service
	metrics  *metrics.Metrics
	logger   *logger.Logger
}

// NewHandler creates a new Paystack callback handler
func NewHandler(
	client paystack.PaystackClient,
	settings paystack.SettingsLoader,
	orderSvc service.OrderService,
	sentry *sentry.Service,
	metrics *metrics.Metrics,
	logger *logger.Logger,
) *Handler {
	return &Handler{
		client:   client,
		settings: settings,
		orderSvc: orderSvc,
		sentry:   sentry,
		metrics:  metrics,
		logger:   logger,
	}
}

// HandleCallback verifies the reference with the gateway and marks the matching order paid.
// It never returns an error: every failure is logged and answered with an empty response so
// the gateway does not retry. The order's CanMarkAsPaid guard makes repeated callbacks safe.
func (h *Handler) HandleCallback(ctx context.Context, reference string) (out Outcome) {
	defer func() {
		if r := recover(); r != nil {
			h.swallow(ctx, reference, ierr.NewErrorf("panic during paystack callback: %v", r).
				Mark(ierr.ErrSystem))
			out = empty()
		}
		h.metrics.ObserveCallback(string(out.Kind))
	}()

	h.logger.Infow("processing paystack callback", "reference", reference)

	settings, err := h.settings.LoadSettings(ctx, types.GetStoreID(ctx))
	if err != nil {
		h.swallow(ctx, reference, err)
		return empty()
	}

	result, err := h.client.Verify(ctx, settings.SecretKey, reference)
	if err != nil {
		if !ierr.IsGatewayRejection(err) {
			h.swallow(ctx, reference, err)
			return empty()
		}
		// a rejected verify is an unsuccessful result, not a failure of the callback
		h.logger.Warnw("paystack rejected verification",
			"reference", reference,
			"error", err)
		result = &paystack.TransactionVerifyResult{
			Success: false,
			Status:  types.TransactionStatusOther,
		}
	}

	if result.Success && result.Status == types.TransactionStatusSuccess {
		return h.handleSuccess(ctx, reference, result)
	}

	// Only an abandoned transaction the gateway reports successfully falls through to the
	// empty response.
	if (result.Success && result.Status == types.TransactionStatusFailed) ||
		!result.Success ||
		result.Status != types.TransactionStatusAbandoned {
		return h.latestOrderDetails(ctx, reference)
	}

	h.logger.Infow("paystack transaction abandoned, nothing to do",
		"reference", reference)
	return empty()
}

func (h *Handler) handleSuccess(ctx context.Context, reference string, result *paystack.TransactionVerifyResult) Outcome {
	ref, err := paystack.DecodeReference(result.Metadata)
	if err != nil {
		h.logger.Warnw("paystack metadata could not be decoded, showing latest order",
			"reference", reference,
			"error", err)
		return h.latestOrderDetails(ctx, reference)
	}

	o, err := h.orderSvc.GetOrderByGUID(ctx, ref.OrderGUID)
	if err != nil {
		// the nil guid can never match an order
		if ierr.IsNotFound(err) || ref.OrderGUID == uuid.Nil {
			h.logger.Warnw("paystack callback for unknown order, showing latest order",
				"reference", reference,
				"order_guid", ref.OrderGUID)
			return h.latestOrderDetails(ctx, reference)
		}
		h.swallow(ctx, reference, err)
		return empty()
	}

	marked, err := h.orderSvc.MarkOrderAsPaid(ctx, o, result.Reference)
	if err != nil {
		h.swallow(ctx, reference, err)
		return empty()
	}

	h.logger.Infow("paystack callback reconciled",
		"reference", reference,
		"order_id", o.ID,
		"marked_paid", marked)

	return checkoutCompleted(o.ID)
}

// latestOrderDetails sends the customer to their most recent order, or an empty response
// when they have none
func (h *Handler) latestOrderDetails(ctx context.Context, reference string) Outcome {
	latest, err := h.orderSvc.GetLatestOrder(ctx, types.GetStoreID(ctx), types.GetCustomerID(ctx))
	if err != nil {
		h.swallow(ctx, reference, err)
		return empty()
	}
	if latest == nil {
		h.logger.Infow("customer has no orders",
			"reference", reference,
			"customer_id", types.GetCustomerID(ctx))
		return empty()
	}
	return orderDetails(latest.ID)
}

// HandleCancel sends the customer back to their most recent order, or home when there is none
func (h *Handler) HandleCancel(ctx context.Context) Outcome {
	latest, err := h.orderSvc.GetLatestOrder(ctx, types.GetStoreID(ctx), types.GetCustomerID(ctx))
	if err != nil {
		h.logger.Errorw("failed to load latest order on cancel",
			"customer_id", types.GetCustomerID(ctx),
			"error", err)
		h.sentry.CaptureExceptionWithContext(ctx, err, map[string]string{"operation": "cancel"})
		return home()
	}
	if latest == nil {
		return home()
	}
	return orderDetails(latest.ID)
}

func (h *Handler) swallow(ctx context.Context, reference string, err error) {
	h.logger.Errorw("paystack callback failed, returning empty response",
		"reference", reference,
		"error", err)
	h.sentry.CaptureExceptionWithContext(ctx, err, map[string]string{
		"operation": "callback",
		"reference": reference,
	})
}
