package services

import (
	"context"

	"go.uber.org/zap"
)

// CatalogResolver resolves the sellable variation of the single configured
// catalog item. The lookup runs on every checkout; nothing is cached between
// requests.
type CatalogResolver struct {
	square SquareAPI
	itemID string
	logger *zap.Logger
}

func NewCatalogResolver(square SquareAPI, itemID string, logger *zap.Logger) *CatalogResolver {
	return &CatalogResolver{square: square, itemID: itemID, logger: logger}
}

// Resolve returns the first variation id of the configured item, or the
// empty string when the item has no variations or the lookup fails.
func (r *CatalogResolver) Resolve(ctx context.Context) string {
	item, err := r.square.RetrieveCatalogItem(ctx, r.itemID)
	if err != nil {
		r.logger.Error("catalog item lookup failed",
			zap.String("item_id", r.itemID),
			zap.String("detail", ErrorMessage(err)),
		)
		return ""
	}
	if len(item.VariationIDs) == 0 {
		return ""
	}
	return item.VariationIDs[0]
}
