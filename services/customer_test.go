package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestReferenceKey(t *testing.T) {
	assert.Equal(t, "jane_q._public", ReferenceKey("Jane Q. Public"))
	assert.Equal(t, "bob_lee", ReferenceKey("  Bob   Lee "))
	assert.Equal(t, "ann", ReferenceKey("Ann"))
	assert.Equal(t, "", ReferenceKey("   "))
}

func TestSplitName(t *testing.T) {
	given, family := splitName("Jane Q. Public")
	assert.Equal(t, "Jane", given)
	assert.Equal(t, "Q. Public", family)

	given, family = splitName("Ann")
	assert.Equal(t, "Ann", given)
	assert.Equal(t, "", family)

	given, family = splitName("   ")
	assert.Equal(t, "   ", given)
	assert.Equal(t, "", family)
}

func TestResolve_ExistingCustomer(t *testing.T) {
	square := &fakeSquare{
		searchResult: []Customer{{ID: "cust_1"}, {ID: "cust_2"}},
	}
	r := NewCustomerResolver(square, zap.NewNop())

	id := r.Resolve(context.Background(), "Ann Lee")

	assert.Equal(t, "cust_1", id)
	assert.Equal(t, []string{"ann_lee"}, square.searchCalls)
	assert.Empty(t, square.createCalls)
}

func TestResolve_CreatesOnMiss(t *testing.T) {
	square := &fakeSquare{
		created: Customer{ID: "cust_new"},
	}
	r := NewCustomerResolver(square, zap.NewNop())

	id := r.Resolve(context.Background(), "Jane Q. Public")

	assert.Equal(t, "cust_new", id)
	assert.Len(t, square.createCalls, 1)
	created := square.createCalls[0]
	assert.Equal(t, "Jane", created.GivenName)
	assert.Equal(t, "Q. Public", created.FamilyName)
	assert.Equal(t, "jane_q._public", created.ReferenceID)
	assert.NotEmpty(t, created.IdempotencyKey)
}

func TestResolve_FreshIdempotencyKeyPerAttempt(t *testing.T) {
	square := &fakeSquare{created: Customer{ID: "cust_new"}}
	r := NewCustomerResolver(square, zap.NewNop())

	r.Resolve(context.Background(), "Ann Lee")
	r.Resolve(context.Background(), "Ann Lee")

	assert.Len(t, square.createCalls, 2)
	assert.NotEqual(t, square.createCalls[0].IdempotencyKey, square.createCalls[1].IdempotencyKey)
}

func TestResolve_SearchFailureSwallowed(t *testing.T) {
	square := &fakeSquare{
		searchErr: &APIError{StatusCode: 500, Errors: []ErrorDetail{{Detail: "boom"}}},
	}
	r := NewCustomerResolver(square, zap.NewNop())

	id := r.Resolve(context.Background(), "Ann Lee")

	assert.Equal(t, "", id)
	assert.Empty(t, square.createCalls)
}

func TestResolve_CreateFailureSwallowed(t *testing.T) {
	square := &fakeSquare{
		createErr: &APIError{StatusCode: 400},
	}
	r := NewCustomerResolver(square, zap.NewNop())

	id := r.Resolve(context.Background(), "Ann Lee")

	assert.Equal(t, "", id)
	assert.Len(t, square.createCalls, 1)
}
