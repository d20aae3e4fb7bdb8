package services

import (
	"context"
	"postindex/pkg/models"
)

// Lister builds post listings for one collection. Nothing is retained
// between calls; every call rediscovers and reloads.
type Lister struct {
	Source      Source
	Collection  models.Collection
	Concurrency int
}

// Paths returns the slug of every discovered unit.
func (l *Lister) Paths(ctx context.Context) ([]string, error) {
	paths, err := Discover(ctx, l.Source, l.Collection.Pattern())
	if err != nil {
		return nil, err
	}
	return Slugs(paths), nil
}

// Posts returns a summary per discovered unit, newest first when ordered.
func (l *Lister) Posts(ctx context.Context, ordered bool) ([]models.PostSummary, error) {
	paths, err := Discover(ctx, l.Source, l.Collection.Pattern())
	if err != nil {
		return nil, err
	}
	resolver := &CollectionResolver{Source: l.Source, Collection: l.Collection}
	return Aggregate(ctx, paths, resolver, AggregateOptions{
		Ordered:     ordered,
		Concurrency: l.Concurrency,
	})
}
