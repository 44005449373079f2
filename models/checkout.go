package models

// CheckoutRequest is the payload posted by the pickup-order form.
type CheckoutRequest struct {
	SourceID     string         `json:"sourceId"`
	Amount       float64        `json:"amount"`
	CustomerName string         `json:"customerName"`
	PickupDate   string         `json:"pickupDate"`
	Items        []CheckoutItem `json:"items"`
}

type CheckoutItem struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
	Comment  string  `json:"comment,omitempty"`
}

// CheckoutResponse is returned on a completed checkout.
type CheckoutResponse struct {
	Success   bool   `json:"success"`
	PaymentID string `json:"paymentId"`
	OrderID   string `json:"orderId"`
	Status    string `json:"status"`
}

type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}
