package services

import (
	"context"

	"techmart/internal/models"

	"golang.org/x/sync/errgroup"
)

// HomeFeed loads the storefront home rails concurrently.
func (s *ProductService) HomeFeed(ctx context.Context) (*models.HomeFeed, error) {
	feed := &models.HomeFeed{}
	g, gctx := errgroup.WithContext(ctx)

	load := func(dst *[]models.Product, fetch func(context.Context, int) ([]models.Product, error)) {
		g.Go(func() error {
			products, err := fetch(gctx, defaultRailLimit)
			if err != nil {
				return err
			}
			*dst = products
			return nil
		})
	}
	load(&feed.Featured, s.FeaturedProducts)
	load(&feed.Trending, s.TrendingProducts)
	load(&feed.NewArrivals, s.NewArrivals)
	load(&feed.BestSellers, s.BestSellers)
	load(&feed.OnSale, s.ProductsOnSale)

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return feed, nil
}
