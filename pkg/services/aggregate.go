package services

import (
	"context"
	"fmt"
	"postindex/pkg/models"
	"sort"

	"golang.org/x/sync/errgroup"
)

type AggregateOptions struct {
	// Ordered reads each unit's date and sorts newest first. Otherwise dates
	// are left out and discovery order is kept.
	Ordered bool
	// Concurrency caps in-flight loads; 0 starts them all at once.
	Concurrency int
}

// LoadError reports the unit whose load failed an aggregation.
type LoadError struct {
	Slug string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s: %v", e.Slug, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Aggregate loads every unit named by paths and builds the summary list.
// Paths without a slug are skipped. If any load fails no summaries are
// returned.
func Aggregate(ctx context.Context, paths []string, resolver Resolver, opts AggregateOptions) ([]models.PostSummary, error) {
	slugs := Slugs(paths)
	metas := make([]models.Metadata, len(slugs))

	// A plain group: a failure must not cancel loads that already started.
	var g errgroup.Group
	if opts.Concurrency > 0 {
		g.SetLimit(opts.Concurrency)
	}
	for i, slug := range slugs {
		g.Go(func() error {
			meta, err := resolver.Resolve(ctx, slug)
			if err != nil {
				return &LoadError{Slug: slug, Err: err}
			}
			metas[i] = meta
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	summaries := make([]models.PostSummary, len(slugs))
	for i, slug := range slugs {
		summaries[i] = models.PostSummary{
			Link:  slug,
			Title: metas[i].Title,
		}
		if opts.Ordered {
			summaries[i].Date = metas[i].Date
		}
	}

	if opts.Ordered {
		sortByDateDesc(summaries)
	}
	return summaries, nil
}

// sortByDateDesc orders newest first. Units without a date sort after every
// dated unit. Ties keep their input order.
func sortByDateDesc(summaries []models.PostSummary) {
	sort.SliceStable(summaries, func(i, j int) bool {
		a, b := summaries[i].Date, summaries[j].Date
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.After(*b)
		}
	})
}
