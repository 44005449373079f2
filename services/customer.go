package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CustomerResolver looks up a customer by a key derived from their display
// name, creating the record when no match exists.
type CustomerResolver struct {
	square SquareAPI
	logger *zap.Logger
}

func NewCustomerResolver(square SquareAPI, logger *zap.Logger) *CustomerResolver {
	return &CustomerResolver{square: square, logger: logger}
}

// ReferenceKey derives the lookup key for a display name: lowercased,
// trimmed, internal whitespace runs collapsed to single underscores.
func ReferenceKey(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), "_")
}

// splitName derives given and family names the way the customer records are
// keyed: first token is the given name, the rest joined by spaces is the
// family name. A name with no tokens falls back to the original string.
func splitName(name string) (given, family string) {
	parts := strings.Fields(strings.TrimSpace(name))
	if len(parts) == 0 {
		return name, ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}

// Resolve returns the id of the customer matching the derived key, creating
// one when none exists. Remote failures are logged and swallowed; the empty
// id means checkout proceeds without a customer attached.
//
// Two concurrent requests for the same new name can both miss the search and
// both create a record; the platform offers no guard against that here.
func (r *CustomerResolver) Resolve(ctx context.Context, name string) string {
	key := ReferenceKey(name)

	matches, err := r.square.SearchCustomers(ctx, key)
	if err != nil {
		r.logger.Warn("customer search failed, proceeding without customer",
			zap.String("reference_id", key),
			zap.String("detail", ErrorMessage(err)),
		)
		return ""
	}
	if len(matches) > 0 {
		return matches[0].ID
	}

	given, family := splitName(name)
	created, err := r.square.CreateCustomer(ctx, CreateCustomerParams{
		IdempotencyKey: uuid.NewString(),
		GivenName:      given,
		FamilyName:     family,
		ReferenceID:    key,
	})
	if err != nil {
		r.logger.Warn("customer create failed, proceeding without customer",
			zap.String("reference_id", key),
			zap.String("detail", ErrorMessage(err)),
		)
		return ""
	}
	return created.ID
}
