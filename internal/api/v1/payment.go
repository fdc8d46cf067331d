package v1

import (
	"net/http"
	"strings"
	"time"

	"github.com/flexprice/paystack-gateway/internal/api/dto"
	"github.com/flexprice/paystack-gateway/internal/config"
	"github.com/flexprice/paystack-gateway/internal/domain/order"
	ierr "github.com/flexprice/paystack-gateway/internal/errors"
	"github.com/flexprice/paystack-gateway/internal/integration/paystack"
	"github.com/flexprice/paystack-gateway/internal/integration/paystack/callback"
	"github.com/flexprice/paystack-gateway/internal/logger"
	"github.com/flexprice/paystack-gateway/internal/service"
	"github.com/flexprice/paystack-gateway/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PaymentHandler struct {
	paymentSvc *paystack.PaymentService
	callback   *callback.Handler
	orderSvc   service.OrderService
	pluginSvc  service.PluginService
	cfg        *config.Configuration
	log        *logger.Logger
}

func NewPaymentHandler(
	paymentSvc *paystack.PaymentService,
	callback *callback.Handler,
	orderSvc service.OrderService,
	pluginSvc service.PluginService,
	cfg *config.Configuration,
	log *logger.Logger,
) *PaymentHandler {
	return &PaymentHandler{
		paymentSvc: paymentSvc,
		callback:   callback,
		orderSvc:   orderSvc,
		pluginSvc:  pluginSvc,
		cfg:        cfg,
		log:        log,
	}
}

// PostProcess starts the gateway transaction for a placed order and redirects the customer
// to the hosted payment page.
func (h *PaymentHandler) PostProcess(c *gin.Context) {
	o, ok := h.orderFromParam(c)
	if !ok {
		return
	}

	url, err := h.paymentSvc.PostProcessPayment(c.Request.Context(), o)
	if err != nil {
		c.Error(err)
		return
	}

	c.Redirect(http.StatusFound, url)
}

// CanRePostProcess reports whether the customer may retry the redirect for an order
func (h *PaymentHandler) CanRePostProcess(c *gin.Context) {
	o, ok := h.orderFromParam(c)
	if !ok {
		return
	}

	allowed, err := h.pluginSvc.CanRePostProcessPayment(o, time.Now().UTC())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"allowed": allowed})
}

// Callback is where the gateway sends the customer after payment. Failures are never
// surfaced: the response is either a redirect or an empty 200.
func (h *PaymentHandler) Callback(c *gin.Context) {
	out := h.callback.HandleCallback(c.Request.Context(), c.Query("reference"))
	h.render(c, out)
}

// CancelOrder sends the customer back to their latest order, or home
func (h *PaymentHandler) CancelOrder(c *gin.Context) {
	out := h.callback.HandleCancel(c.Request.Context())
	h.render(c, out)
}

func (h *PaymentHandler) Descriptor(c *gin.Context) {
	resp, err := h.pluginSvc.Descriptor(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *PaymentHandler) AdditionalFee(c *gin.Context) {
	subtotal, err := decimal.NewFromString(c.Query("subtotal"))
	if err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Subtotal must be a number").
			Mark(ierr.ErrValidation))
		return
	}

	fee, err := h.pluginSvc.AdditionalHandlingFee(c.Request.Context(), types.GetStoreID(c.Request.Context()), subtotal)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.AdditionalFeeResponse{Subtotal: subtotal, Fee: fee})
}

func (h *PaymentHandler) orderFromParam(c *gin.Context) (*order.Order, bool) {
	guid, err := uuid.Parse(c.Param("order_guid"))
	if err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid order guid").
			Mark(ierr.ErrValidation))
		return nil, false
	}

	o, err := h.orderSvc.GetOrderByGUID(c.Request.Context(), guid)
	if err != nil {
		c.Error(err)
		return nil, false
	}
	return o, true
}

func (h *PaymentHandler) render(c *gin.Context, out callback.Outcome) {
	if !out.IsRedirect() {
		c.Status(http.StatusOK)
		return
	}
	base := strings.TrimRight(h.storeURL(c), "/")
	c.Redirect(http.StatusFound, base+out.Path(h.cfg.Store.Routes))
}

func (h *PaymentHandler) storeURL(c *gin.Context) string {
	if u := types.GetStoreURL(c.Request.Context()); u != "" {
		return u
	}
	return h.cfg.Store.BaseURL
}
