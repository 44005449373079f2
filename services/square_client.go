package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const (
	squareBaseURL = "https://connect.squareup.com"
	squareVersion = "2024-05-15"
)

// SquareAPI defines the remote platform calls the checkout flow depends on.
// A single implementation talks to Square; tests substitute a fake.
type SquareAPI interface {
	SearchCustomers(ctx context.Context, referenceID string) ([]Customer, error)
	CreateCustomer(ctx context.Context, params CreateCustomerParams) (Customer, error)
	RetrieveCatalogItem(ctx context.Context, objectID string) (CatalogItem, error)
	CreateOrder(ctx context.Context, params CreateOrderParams) (Order, error)
	CreatePayment(ctx context.Context, params CreatePaymentParams) (Payment, error)
}

// ---- domain results ----

type Customer struct {
	ID          string
	GivenName   string
	FamilyName  string
	ReferenceID string
}

type CatalogItem struct {
	ID           string
	VariationIDs []string
}

type Order struct {
	ID    string
	State string
}

type Payment struct {
	ID     string
	Status string
}

// ---- call parameters ----

type CreateCustomerParams struct {
	IdempotencyKey string
	GivenName      string
	FamilyName     string
	ReferenceID    string
}

type OrderLineItem struct {
	Quantity        string
	CatalogObjectID string
	BasePriceCents  int64
	Note            string
}

type CreateOrderParams struct {
	IdempotencyKey string
	LocationID     string
	CustomerID     string
	LineItems      []OrderLineItem
}

type CreatePaymentParams struct {
	IdempotencyKey string
	SourceID       string
	AmountCents    int64
	LocationID     string
	OrderID        string
	CustomerID     string
	Note           string
}

// ---- error envelope ----

// ErrorDetail is one structured error entry from the platform.
type ErrorDetail struct {
	Category string `json:"category"`
	Code     string `json:"code"`
	Detail   string `json:"detail"`
}

// APIError is returned for any non-2xx platform response.
type APIError struct {
	StatusCode int
	Errors     []ErrorDetail
}

func (e *APIError) Error() string {
	return fmt.Sprintf("square API error (status %d): %s", e.StatusCode, e.Message())
}

// Message returns the first structured detail, or a generic message when the
// platform sent none.
func (e *APIError) Message() string {
	if len(e.Errors) > 0 && e.Errors[0].Detail != "" {
		return e.Errors[0].Detail
	}
	return "Payment platform request failed"
}

// ErrorMessage extracts a caller-facing message from any error the client
// returns, preferring the platform's structured detail.
func ErrorMessage(err error) string {
	if apiErr, ok := err.(*APIError); ok {
		return apiErr.Message()
	}
	return err.Error()
}

// ---- Square API request/response structs ----

type squareCustomer struct {
	ID          string `json:"id"`
	GivenName   string `json:"given_name"`
	FamilyName  string `json:"family_name"`
	ReferenceID string `json:"reference_id"`
}

type customerSearchRequest struct {
	Query struct {
		Filter struct {
			ReferenceID struct {
				Exact string `json:"exact"`
			} `json:"reference_id"`
		} `json:"filter"`
	} `json:"query"`
}

type customerSearchResponse struct {
	Customers []squareCustomer `json:"customers"`
}

type createCustomerRequest struct {
	IdempotencyKey string `json:"idempotency_key"`
	GivenName      string `json:"given_name"`
	FamilyName     string `json:"family_name"`
	ReferenceID    string `json:"reference_id"`
}

type createCustomerResponse struct {
	Customer squareCustomer `json:"customer"`
}

type catalogObjectResponse struct {
	Object struct {
		ID       string `json:"id"`
		ItemData struct {
			Variations []struct {
				ID string `json:"id"`
			} `json:"variations"`
		} `json:"item_data"`
	} `json:"object"`
}

type squareMoney struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

type squareLineItem struct {
	Quantity        string      `json:"quantity"`
	CatalogObjectID string      `json:"catalog_object_id"`
	BasePriceMoney  squareMoney `json:"base_price_money"`
	Note            string      `json:"note,omitempty"`
}

type createOrderRequest struct {
	IdempotencyKey string `json:"idempotency_key"`
	Order          struct {
		LocationID string           `json:"location_id"`
		CustomerID string           `json:"customer_id,omitempty"`
		State      string           `json:"state"`
		LineItems  []squareLineItem `json:"line_items"`
	} `json:"order"`
}

type createOrderResponse struct {
	Order struct {
		ID    string `json:"id"`
		State string `json:"state"`
	} `json:"order"`
}

type createPaymentRequest struct {
	IdempotencyKey string      `json:"idempotency_key"`
	SourceID       string      `json:"source_id"`
	AmountMoney    squareMoney `json:"amount_money"`
	LocationID     string      `json:"location_id"`
	OrderID        string      `json:"order_id"`
	CustomerID     string      `json:"customer_id,omitempty"`
	Note           string      `json:"note,omitempty"`
}

type createPaymentResponse struct {
	Payment struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	} `json:"payment"`
}

type errorEnvelope struct {
	Errors []ErrorDetail `json:"errors"`
}

// ---- client ----

// SquareClient implements SquareAPI against the Square connect API.
type SquareClient struct {
	accessToken string
	baseURL     string
	httpClient  *http.Client
}

// NewSquareClient creates a client holding one long-lived HTTP client shared
// across requests.
func NewSquareClient(accessToken string) *SquareClient {
	return &SquareClient{
		accessToken: accessToken,
		baseURL:     squareBaseURL,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// SearchCustomers returns customers whose reference id exactly matches.
func (s *SquareClient) SearchCustomers(ctx context.Context, referenceID string) ([]Customer, error) {
	var req customerSearchRequest
	req.Query.Filter.ReferenceID.Exact = referenceID

	var resp customerSearchResponse
	if err := s.doRequest(ctx, http.MethodPost, "/v2/customers/search", req, &resp); err != nil {
		return nil, err
	}

	customers := make([]Customer, 0, len(resp.Customers))
	for _, c := range resp.Customers {
		customers = append(customers, Customer{
			ID:          c.ID,
			GivenName:   c.GivenName,
			FamilyName:  c.FamilyName,
			ReferenceID: c.ReferenceID,
		})
	}
	return customers, nil
}

// CreateCustomer registers a new customer record.
func (s *SquareClient) CreateCustomer(ctx context.Context, params CreateCustomerParams) (Customer, error) {
	req := createCustomerRequest{
		IdempotencyKey: params.IdempotencyKey,
		GivenName:      params.GivenName,
		FamilyName:     params.FamilyName,
		ReferenceID:    params.ReferenceID,
	}

	var resp createCustomerResponse
	if err := s.doRequest(ctx, http.MethodPost, "/v2/customers", req, &resp); err != nil {
		return Customer{}, err
	}

	return Customer{
		ID:          resp.Customer.ID,
		GivenName:   resp.Customer.GivenName,
		FamilyName:  resp.Customer.FamilyName,
		ReferenceID: resp.Customer.ReferenceID,
	}, nil
}

// RetrieveCatalogItem fetches a catalog object with related objects included
// and returns its variation ids in platform order.
func (s *SquareClient) RetrieveCatalogItem(ctx context.Context, objectID string) (CatalogItem, error) {
	path := fmt.Sprintf("/v2/catalog/object/%s?include_related_objects=true", url.PathEscape(objectID))

	var resp catalogObjectResponse
	if err := s.doRequest(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return CatalogItem{}, err
	}

	item := CatalogItem{ID: resp.Object.ID}
	for _, v := range resp.Object.ItemData.Variations {
		item.VariationIDs = append(item.VariationIDs, v.ID)
	}
	return item, nil
}

// CreateOrder submits a new order in the OPEN state.
func (s *SquareClient) CreateOrder(ctx context.Context, params CreateOrderParams) (Order, error) {
	var req createOrderRequest
	req.IdempotencyKey = params.IdempotencyKey
	req.Order.LocationID = params.LocationID
	req.Order.CustomerID = params.CustomerID
	req.Order.State = "OPEN"
	for _, li := range params.LineItems {
		req.Order.LineItems = append(req.Order.LineItems, squareLineItem{
			Quantity:        li.Quantity,
			CatalogObjectID: li.CatalogObjectID,
			BasePriceMoney:  squareMoney{Amount: li.BasePriceCents, Currency: "USD"},
			Note:            li.Note,
		})
	}

	var resp createOrderResponse
	if err := s.doRequest(ctx, http.MethodPost, "/v2/orders", req, &resp); err != nil {
		return Order{}, err
	}

	return Order{ID: resp.Order.ID, State: resp.Order.State}, nil
}

// CreatePayment charges the payment source against an order.
func (s *SquareClient) CreatePayment(ctx context.Context, params CreatePaymentParams) (Payment, error) {
	req := createPaymentRequest{
		IdempotencyKey: params.IdempotencyKey,
		SourceID:       params.SourceID,
		AmountMoney:    squareMoney{Amount: params.AmountCents, Currency: "USD"},
		LocationID:     params.LocationID,
		OrderID:        params.OrderID,
		CustomerID:     params.CustomerID,
		Note:           params.Note,
	}

	var resp createPaymentResponse
	if err := s.doRequest(ctx, http.MethodPost, "/v2/payments", req, &resp); err != nil {
		return Payment{}, err
	}

	return Payment{ID: resp.Payment.ID, Status: resp.Payment.Status}, nil
}

// ---- HTTP helper ----

func (s *SquareClient) doRequest(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.accessToken)
	req.Header.Set("Square-Version", squareVersion)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("http do: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var envelope errorEnvelope
		if err := json.Unmarshal(respBytes, &envelope); err == nil {
			apiErr.Errors = envelope.Errors
		}
		return apiErr
	}

	if out != nil {
		if err := json.Unmarshal(respBytes, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
