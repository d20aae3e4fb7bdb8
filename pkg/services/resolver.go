package services

import (
	"context"
	"errors"
	"fmt"
	"postindex/pkg/models"
	"strings"
)

var ErrUnitNotFound = errors.New("content unit not found")

// Resolver loads the metadata of the content unit identified by slug.
type Resolver interface {
	Resolve(ctx context.Context, slug string) (models.Metadata, error)
}

// CollectionResolver reads units laid out as a collection in a Source.
// The address of each unit is derived from its slug.
type CollectionResolver struct {
	Source     Source
	Collection models.Collection
}

func (r *CollectionResolver) Resolve(ctx context.Context, slug string) (models.Metadata, error) {
	if slug == "" || slug == "." || slug == ".." || strings.Contains(slug, "/") {
		return models.Metadata{}, fmt.Errorf("%w: invalid slug %q", ErrUnitNotFound, slug)
	}

	addr := r.Collection.Address(slug)
	content, err := r.Source.ReadFile(ctx, addr)
	if err != nil {
		if IsNotExist(err) {
			return models.Metadata{}, fmt.Errorf("%w: %s", ErrUnitNotFound, addr)
		}
		return models.Metadata{}, fmt.Errorf("read %s: %w", addr, err)
	}

	fm, _, _, err := ParseFrontMatter(content)
	if errors.Is(err, ErrNoFrontMatter) {
		return models.Metadata{}, nil
	}
	if err != nil {
		return models.Metadata{}, fmt.Errorf("%s: %w", addr, err)
	}

	meta, err := ExtractMetadata(fm)
	if err != nil {
		return models.Metadata{}, fmt.Errorf("%s: %w", addr, err)
	}
	return meta, nil
}

// Loader produces the metadata of one statically known unit.
type Loader func(ctx context.Context) (models.Metadata, error)

// Registry is a lookup table of statically known units keyed by slug.
type Registry map[string]Loader

func (r Registry) Resolve(ctx context.Context, slug string) (models.Metadata, error) {
	load, ok := r[slug]
	if !ok || load == nil {
		return models.Metadata{}, fmt.Errorf("%w: %q", ErrUnitNotFound, slug)
	}
	return load(ctx)
}

// Static returns a Loader yielding fixed metadata.
func Static(meta models.Metadata) Loader {
	return func(context.Context) (models.Metadata, error) {
		return meta, nil
	}
}
