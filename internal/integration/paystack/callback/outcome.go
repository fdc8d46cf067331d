package callback

import (
	"fmt"

	"github.com/flexprice/paystack-gateway/internal/config"
)

// OutcomeKind is where the customer is sent after a callback or cancel
type OutcomeKind string

const (
	OutcomeCheckoutCompleted OutcomeKind = "checkout_completed"
	OutcomeOrderDetails      OutcomeKind = "order_details"
	OutcomeHome              OutcomeKind = "home"
	// OutcomeEmpty is an empty 200 response
	OutcomeEmpty OutcomeKind = "empty"
)

// Outcome is the result of one callback or cancel. OrderID is set for the checkout
// completed and order details kinds.
type Outcome struct {
	Kind    OutcomeKind
	OrderID int64
}

func checkoutCompleted(orderID int64) Outcome {
	return Outcome{Kind: OutcomeCheckoutCompleted, OrderID: orderID}
}

func orderDetails(orderID int64) Outcome {
	return Outcome{Kind: OutcomeOrderDetails, OrderID: orderID}
}

func home() Outcome {
	return Outcome{Kind: OutcomeHome}
}

func empty() Outcome {
	return Outcome{Kind: OutcomeEmpty}
}

// IsRedirect reports whether the outcome sends the customer somewhere
func (o Outcome) IsRedirect() bool {
	return o.Kind != OutcomeEmpty && o.Kind != ""
}

// Path renders the storefront path for the outcome, empty for OutcomeEmpty
func (o Outcome) Path(routes config.StoreRoutes) string {
	switch o.Kind {
	case OutcomeCheckoutCompleted:
		return fmt.Sprintf(routes.CheckoutCompleted, o.OrderID)
	case OutcomeOrderDetails:
		return fmt.Sprintf(routes.OrderDetails, o.OrderID)
	case OutcomeHome:
		return routes.Homepage
	default:
		return ""
	}
}
