// Command catalog runs catalog queries against a generated catalog and prints
// the results as JSON.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"techmart/internal/catalog"
	"techmart/internal/models"
	"techmart/internal/query"
	"techmart/internal/repositories"
	"techmart/internal/services"
)

func main() {
	logger, err := zap.NewDevelopment()
	if err == nil {
		zap.ReplaceGlobals(logger)
	}

	if err := newApp(os.Stdout, time.Now).Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func catalogFlags() []cli.Flag {
	return []cli.Flag{
		&cli.Uint64Flag{Name: "seed", Value: 1, Usage: "generator seed (0 seeds from the clock)"},
		&cli.IntFlag{Name: "size", Value: catalog.DefaultSize, Usage: "number of generated products"},
	}
}

// runner carries the clock that generated catalogs are dated against.
type runner struct {
	now func() time.Time
}

func newApp(out io.Writer, now func() time.Time) *cli.App {
	r := &runner{now: now}
	return &cli.App{
		Name:   "catalog",
		Usage:  "query the Bright TechMart catalog",
		Writer: out,
		Commands: []*cli.Command{
			{
				Name:  "query",
				Usage: "filter, sort and paginate the catalog",
				Flags: append([]cli.Flag{
					&cli.StringFlag{Name: "category", Value: models.CategoryAll},
					&cli.StringFlag{Name: "search"},
					&cli.StringSliceFlag{Name: "brand", Usage: "brand name, repeatable"},
					&cli.StringFlag{Name: "price-range", Usage: "price range id"},
					&cli.Float64Flag{Name: "min-rating"},
					&cli.StringSliceFlag{Name: "feature", Usage: "free-shipping or in-stock, repeatable"},
					&cli.BoolFlag{Name: "in-stock"},
					&cli.StringFlag{Name: "sort", Value: models.SortFeatured},
					&cli.IntFlag{Name: "page", Value: models.DefaultPage},
					&cli.IntFlag{Name: "limit", Value: models.DefaultLimit},
				}, catalogFlags()...),
				Action: r.runQuery,
			},
			{
				Name:      "search",
				Usage:     "type-ahead search",
				ArgsUsage: "TEXT",
				Flags: append([]cli.Flag{
					&cli.IntFlag{Name: "limit", Value: 10},
				}, catalogFlags()...),
				Action: r.runSearch,
			},
			{
				Name:   "stats",
				Usage:  "catalog statistics",
				Flags:  catalogFlags(),
				Action: r.runStats,
			},
		},
	}
}

func (r *runner) newService(c *cli.Context) *services.ProductService {
	store := catalog.NewStore(catalog.NewGeneratorAt(c.Int("size"), c.Uint64("seed"), r.now))
	return services.NewProductService(store, repositories.NewMockStorageRepository(), nil, services.NoLatency)
}

func (r *runner) runQuery(c *cli.Context) error {
	sortBy := c.String("sort")
	if !models.IsSupportedSort(sortBy) {
		return fmt.Errorf("unknown sort %q", sortBy)
	}
	priceRange := c.String("price-range")
	if priceRange != "" {
		if _, ok := query.FindPriceRange(models.PriceRanges, priceRange); !ok {
			return fmt.Errorf("unknown price range %q", priceRange)
		}
	}

	spec := models.DefaultFilterSpec()
	spec.Category = c.String("category")
	spec.Search = c.String("search")
	spec.Brands = lowerAll(c.StringSlice("brand"))
	spec.PriceRangeID = priceRange
	spec.Features = lowerAll(c.StringSlice("feature"))
	spec.InStock = c.Bool("in-stock")
	spec.SortBy = sortBy
	spec.Page = c.Int("page")
	spec.Limit = c.Int("limit")
	if c.IsSet("min-rating") {
		rating := c.Float64("min-rating")
		spec.MinRating = &rating
	}

	page, err := r.newService(c).FetchProducts(c.Context, spec)
	if err != nil {
		return err
	}
	return printJSON(c.App.Writer, page)
}

func (r *runner) runSearch(c *cli.Context) error {
	text := strings.Join(c.Args().Slice(), " ")
	if strings.TrimSpace(text) == "" {
		return errors.New("search needs TEXT")
	}
	results, err := r.newService(c).Search(c.Context, text, c.Int("limit"))
	if err != nil {
		return err
	}
	return printJSON(c.App.Writer, results)
}

func (r *runner) runStats(c *cli.Context) error {
	stats, err := r.newService(c).ProductStats(c.Context)
	if err != nil {
		return err
	}
	return printJSON(c.App.Writer, stats)
}

func lowerAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.ToLower(strings.TrimSpace(v)); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
