package repositories

import (
	"context"
)

// Storage keys for the shopper lists. Each value is a JSON array of product ids.
const (
	WishlistKey       = "bright-techmart-wishlist"
	RecentlyViewedKey = "bright-techmart-recently-viewed"
	CompareKey        = "bright-techmart-compare"
)

// StorageRepository defines the interface for shopper-side key/value storage.
type StorageRepository interface {
	// Get returns the stored value and whether the key exists.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
