package models

import (
	"path"
	"strings"
)

type CMSConfig struct {
	MediaFolder  string       `yaml:"media_folder"`
	PublicFolder string       `yaml:"public_folder"`
	Collections  []Collection `yaml:"collections"`
}

// Collection describes where the units of one content type live:
// <Folder>/<slug>/<Path>.<Extension>
type Collection struct {
	Name      string `yaml:"name"`
	Label     string `yaml:"label"`
	Folder    string `yaml:"folder"`
	Path      string `yaml:"path"`
	Extension string `yaml:"extension"`
}

// Find returns the collection with the given name.
func (c CMSConfig) Find(name string) (Collection, bool) {
	for _, col := range c.Collections {
		if col.Name == name {
			return col, true
		}
	}
	return Collection{}, false
}

// entryName is the entry file name inside a slug directory. Decap-style
// paths such as "{{slug}}/index" are reduced to their last segment.
func (c Collection) entryName() string {
	entry := c.Path
	if i := strings.LastIndex(entry, "/"); i >= 0 {
		entry = entry[i+1:]
	}
	if entry == "" {
		entry = "index"
	}
	ext := strings.TrimPrefix(c.Extension, ".")
	if ext == "" {
		ext = "md"
	}
	return entry + "." + ext
}

// Pattern is the glob matching every entry file of the collection.
func (c Collection) Pattern() string {
	return path.Join(c.Folder, "*", c.entryName())
}

// Address is the canonical location of the unit identified by slug.
func (c Collection) Address(slug string) string {
	return path.Join(c.Folder, slug, c.entryName())
}
