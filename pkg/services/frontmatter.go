package services

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"postindex/pkg/models"
	"strings"
	"time"

	"github.com/adrg/frontmatter"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

var ErrNoFrontMatter = errors.New("no front matter")

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseFrontMatter splits content into its front matter and body. YAML (---),
// TOML (+++) and JSON ({ ... }) front matter are recognised when the
// delimiters stand on lines of their own; the detected format is returned as
// "yaml", "toml" or "json".
func ParseFrontMatter(content []byte) (map[string]interface{}, string, string, error) {
	var (
		fm     map[string]interface{}
		format string
	)
	detect := func(name string, unmarshal frontmatter.UnmarshalFunc) frontmatter.UnmarshalFunc {
		return func(data []byte, v interface{}) error {
			format = name
			if err := unmarshal(data, v); err != nil {
				return fmt.Errorf("%s front matter: %w", name, err)
			}
			return nil
		}
	}

	body, err := frontmatter.MustParse(bytes.NewReader(content), &fm,
		&frontmatter.Format{Start: "---", End: "---", Unmarshal: detect("yaml", yaml.Unmarshal)},
		&frontmatter.Format{Start: "+++", End: "+++", Unmarshal: detect("toml", toml.Unmarshal)},
		&frontmatter.Format{Start: "{", End: "}", Unmarshal: detect("json", json.Unmarshal), UnmarshalDelims: true},
	)
	if errors.Is(err, frontmatter.ErrNotFound) {
		return nil, "", "", ErrNoFrontMatter
	}
	if err != nil {
		return nil, "", "", err
	}
	return fm, strings.TrimSpace(string(body)), format, nil
}

// ExtractMetadata reads the title and date keys of a front matter map.
// Both are optional. Scalar titles are rendered as text and anything else
// yields an empty title; a present date that cannot be read is an error.
func ExtractMetadata(fm map[string]interface{}) (models.Metadata, error) {
	var meta models.Metadata

	meta.Title = titleOf(fm["title"])

	if raw, ok := fm["date"]; ok && raw != nil {
		date, err := coerceDate(raw)
		if err != nil {
			return models.Metadata{}, fmt.Errorf("date: %w", err)
		}
		meta.Date = &date
	}

	return meta, nil
}

func titleOf(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case map[string]interface{}, []interface{}:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

func coerceDate(value interface{}) (time.Time, error) {
	switch v := value.(type) {
	case time.Time:
		return v, nil
	case toml.LocalDate:
		return v.AsTime(time.UTC), nil
	case toml.LocalDateTime:
		return v.AsTime(time.UTC), nil
	case string:
		s := strings.TrimSpace(v)
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t, nil
			}
		}
		return time.Time{}, fmt.Errorf("unrecognised date %q", v)
	default:
		return time.Time{}, fmt.Errorf("unsupported date value of type %T", value)
	}
}
