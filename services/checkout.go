package services

import (
	"context"
	"fmt"
	"math"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/CoptEgypt/StMark-Aghapy/models"
)

// ServiceError carries an HTTP status alongside a caller-facing message.
type ServiceError struct {
	StatusCode int
	Message    string
}

func (e *ServiceError) Error() string {
	return e.Message
}

// ErrVariationNotConfigured is returned when the configured catalog item has
// no sellable variation; no customer, order, or payment call is made.
var ErrVariationNotConfigured = &ServiceError{StatusCode: 500, Message: "Item variation not configured"}

// checkoutState tracks progress through the remote-call sequence.
type checkoutState int

const (
	stateReceived checkoutState = iota
	stateCatalogResolved
	stateCustomerResolved
	stateOrderCreated
	statePaymentCreated
	stateFailed
)

// CheckoutResult is the outcome of a completed checkout flow.
type CheckoutResult struct {
	PaymentID string
	OrderID   string
	Status    string
}

// CheckoutService runs the four-step checkout sequence: resolve the catalog
// variation, resolve the customer, create the order, charge the payment.
type CheckoutService struct {
	square     SquareAPI
	catalog    *CatalogResolver
	customers  *CustomerResolver
	locationID string
	logger     *zap.Logger
}

func NewCheckoutService(square SquareAPI, catalog *CatalogResolver, customers *CustomerResolver, locationID string, logger *zap.Logger) *CheckoutService {
	return &CheckoutService{
		square:     square,
		catalog:    catalog,
		customers:  customers,
		locationID: locationID,
		logger:     logger,
	}
}

// toCents converts decimal currency units to integer minor units, rounding
// half up at the cent boundary.
func toCents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// lineItemNote preserves the item's identity; every line references the same
// catalog variation, so the name survives only here.
func lineItemNote(item models.CheckoutItem) string {
	if item.Comment != "" {
		return fmt.Sprintf("%s - %s", item.Name, item.Comment)
	}
	return item.Name
}

// Checkout advances the request through the remote-call states. Customer
// resolution cannot fail the flow; a catalog, order, or payment failure
// terminates it. A created order is not canceled when the payment fails.
func (s *CheckoutService) Checkout(ctx context.Context, req models.CheckoutRequest) (*CheckoutResult, error) {
	var (
		variationID string
		customerID  string
		order       Order
		payment     Payment
		failure     error
	)

	state := stateReceived
	for {
		switch state {
		case stateReceived:
			variationID = s.catalog.Resolve(ctx)
			if variationID == "" {
				failure = ErrVariationNotConfigured
				state = stateFailed
				continue
			}
			state = stateCatalogResolved

		case stateCatalogResolved:
			customerID = s.customers.Resolve(ctx, req.CustomerName)
			state = stateCustomerResolved

		case stateCustomerResolved:
			lineItems := make([]OrderLineItem, 0, len(req.Items))
			for _, item := range req.Items {
				lineItems = append(lineItems, OrderLineItem{
					Quantity:        fmt.Sprintf("%d", item.Quantity),
					CatalogObjectID: variationID,
					BasePriceCents:  toCents(item.Price),
					Note:            lineItemNote(item),
				})
			}

			created, err := s.square.CreateOrder(ctx, CreateOrderParams{
				IdempotencyKey: uuid.NewString(),
				LocationID:     s.locationID,
				CustomerID:     customerID,
				LineItems:      lineItems,
			})
			if err != nil {
				s.logger.Error("order create failed", zap.String("detail", ErrorMessage(err)))
				failure = &ServiceError{StatusCode: 500, Message: ErrorMessage(err)}
				state = stateFailed
				continue
			}
			order = created
			state = stateOrderCreated

		case stateOrderCreated:
			charged, err := s.square.CreatePayment(ctx, CreatePaymentParams{
				IdempotencyKey: uuid.NewString(),
				SourceID:       req.SourceID,
				AmountCents:    toCents(req.Amount),
				LocationID:     s.locationID,
				OrderID:        order.ID,
				CustomerID:     customerID,
				Note:           fmt.Sprintf("Pickup date: %s", req.PickupDate),
			})
			if err != nil {
				s.logger.Error("payment create failed",
					zap.String("order_id", order.ID),
					zap.String("detail", ErrorMessage(err)),
				)
				failure = &ServiceError{StatusCode: 500, Message: ErrorMessage(err)}
				state = stateFailed
				continue
			}
			payment = charged
			state = statePaymentCreated

		case statePaymentCreated:
			return &CheckoutResult{
				PaymentID: payment.ID,
				OrderID:   order.ID,
				Status:    payment.Status,
			}, nil

		case stateFailed:
			return nil, failure
		}
	}
}
