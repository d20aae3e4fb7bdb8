package services

import (
	"context"
	"strings"
)

// Discover enumerates the paths in src matching pattern. No matches is not
// an error.
func Discover(ctx context.Context, src Source, pattern string) ([]string, error) {
	return src.Glob(ctx, pattern)
}

// SlugOf returns the name of the directory holding the file at p, or "" if
// p has no parent segment.
func SlugOf(p string) string {
	parts := strings.Split(p, "/")
	if len(parts) < 2 {
		return ""
	}
	return parts[len(parts)-2]
}

// Slugs maps paths to their slugs, dropping paths whose slug is empty.
func Slugs(paths []string) []string {
	slugs := make([]string, 0, len(paths))
	for _, p := range paths {
		if slug := SlugOf(p); slug != "" {
			slugs = append(slugs, slug)
		}
	}
	return slugs
}
