package services

import (
	"context"

	"techmart/internal/models"
	"techmart/internal/repositories"
)

const maxCompare = 4

// AddToWishlist adds a product to the wishlist. Adding a product twice is a no-op.
func (s *ProductService) AddToWishlist(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := s.find(id); err != nil {
		return err
	}

	defer s.locks.lock(s.shopper, repositories.WishlistKey)()
	ids := readIDs(ctx, s.storage, repositories.WishlistKey)
	if containsID(ids, id) {
		return nil
	}
	writeIDs(ctx, s.storage, repositories.WishlistKey, append(ids, id))
	publish(s.events, EventWishlistAdded, map[string]interface{}{"productID": id, "shopperID": s.shopper})
	return nil
}

// RemoveFromWishlist removes a product from the wishlist. Removing an absent
// product is a no-op.
func (s *ProductService) RemoveFromWishlist(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	defer s.locks.lock(s.shopper, repositories.WishlistKey)()
	ids := readIDs(ctx, s.storage, repositories.WishlistKey)
	if !containsID(ids, id) {
		return nil
	}
	writeIDs(ctx, s.storage, repositories.WishlistKey, withoutID(ids, id))
	publish(s.events, EventWishlistRemoved, map[string]interface{}{"productID": id, "shopperID": s.shopper})
	return nil
}

// IsInWishlist reports whether the product is on the wishlist.
func (s *ProductService) IsInWishlist(ctx context.Context, id string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	return containsID(readIDs(ctx, s.storage, repositories.WishlistKey), id), nil
}

// Wishlist resolves the wishlist in the order products were added.
// Ids that no longer resolve are skipped.
func (s *ProductService) Wishlist(ctx context.Context) ([]models.Product, error) {
	if err := wait(ctx, s.latency.Detail); err != nil {
		return nil, err
	}
	return s.resolve(readIDs(ctx, s.storage, repositories.WishlistKey), 0), nil
}

// AddToCompare adds a product to the compare list unless it is already there
// or the list is full. It reports whether the product is on the list afterwards.
func (s *ProductService) AddToCompare(ctx context.Context, id string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if _, err := s.find(id); err != nil {
		return false, err
	}

	defer s.locks.lock(s.shopper, repositories.CompareKey)()
	ids := readIDs(ctx, s.storage, repositories.CompareKey)
	if containsID(ids, id) {
		return true, nil
	}
	if len(ids) >= maxCompare {
		return false, nil
	}
	writeIDs(ctx, s.storage, repositories.CompareKey, append(ids, id))
	return true, nil
}

// RemoveFromCompare removes a product from the compare list.
func (s *ProductService) RemoveFromCompare(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	defer s.locks.lock(s.shopper, repositories.CompareKey)()
	ids := readIDs(ctx, s.storage, repositories.CompareKey)
	if !containsID(ids, id) {
		return nil
	}
	writeIDs(ctx, s.storage, repositories.CompareKey, withoutID(ids, id))
	return nil
}

// CompareList resolves the compare list in insertion order.
func (s *ProductService) CompareList(ctx context.Context) ([]models.Product, error) {
	if err := wait(ctx, s.latency.Detail); err != nil {
		return nil, err
	}
	return s.resolve(readIDs(ctx, s.storage, repositories.CompareKey), 0), nil
}

// RecentlyViewed returns up to limit recently viewed products, most recent first.
func (s *ProductService) RecentlyViewed(ctx context.Context, limit int) ([]models.Product, error) {
	if err := wait(ctx, s.latency.Detail); err != nil {
		return nil, err
	}
	return s.resolve(readIDs(ctx, s.storage, repositories.RecentlyViewedKey), railLimit(limit, defaultRailLimit)), nil
}

// trackView moves id to the front of the recently-viewed list, keeping at
// most maxRecentlyViewed distinct entries.
func (s *ProductService) trackView(ctx context.Context, id string) {
	defer s.locks.lock(s.shopper, repositories.RecentlyViewedKey)()
	ids := readIDs(ctx, s.storage, repositories.RecentlyViewedKey)
	updated := append([]string{id}, withoutID(ids, id)...)
	if len(updated) > maxRecentlyViewed {
		updated = updated[:maxRecentlyViewed]
	}
	writeIDs(ctx, s.storage, repositories.RecentlyViewedKey, updated)
}

// resolve maps ids to catalog products in id order, dropping stale ids.
// A limit of 0 means no limit.
func (s *ProductService) resolve(ids []string, limit int) []models.Product {
	products := []models.Product{}
	for _, id := range ids {
		if p, ok := s.store.Find(id); ok {
			products = append(products, p)
			if limit > 0 && len(products) == limit {
				break
			}
		}
	}
	return products
}
