package services

import (
	"context"
)

// fakeSquare implements SquareAPI and records every call.
type fakeSquare struct {
	searchResult  []Customer
	searchErr     error
	created       Customer
	createErr     error
	catalogItem   CatalogItem
	catalogErr    error
	order         Order
	orderErr      error
	payment       Payment
	paymentErr    error

	searchCalls   []string
	createCalls   []CreateCustomerParams
	catalogCalls  []string
	orderCalls    []CreateOrderParams
	paymentCalls  []CreatePaymentParams
}

func (f *fakeSquare) SearchCustomers(ctx context.Context, referenceID string) ([]Customer, error) {
	f.searchCalls = append(f.searchCalls, referenceID)
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return f.searchResult, nil
}

func (f *fakeSquare) CreateCustomer(ctx context.Context, params CreateCustomerParams) (Customer, error) {
	f.createCalls = append(f.createCalls, params)
	if f.createErr != nil {
		return Customer{}, f.createErr
	}
	return f.created, nil
}

func (f *fakeSquare) RetrieveCatalogItem(ctx context.Context, objectID string) (CatalogItem, error) {
	f.catalogCalls = append(f.catalogCalls, objectID)
	if f.catalogErr != nil {
		return CatalogItem{}, f.catalogErr
	}
	return f.catalogItem, nil
}

func (f *fakeSquare) CreateOrder(ctx context.Context, params CreateOrderParams) (Order, error) {
	f.orderCalls = append(f.orderCalls, params)
	if f.orderErr != nil {
		return Order{}, f.orderErr
	}
	return f.order, nil
}

func (f *fakeSquare) CreatePayment(ctx context.Context, params CreatePaymentParams) (Payment, error) {
	f.paymentCalls = append(f.paymentCalls, params)
	if f.paymentErr != nil {
		return Payment{}, f.paymentErr
	}
	return f.payment, nil
}
