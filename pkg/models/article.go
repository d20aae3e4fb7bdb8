package models

import "time"

// PostSummary is one entry of a post listing handed to the rendering layer.
type PostSummary struct {
	Link  string     `json:"link"`
	Title string     `json:"title"`
	Date  *time.Time `json:"date,omitempty"`
}

// Metadata is what a content unit declares about itself when loaded.
// Date is nil when the unit does not declare one.
type Metadata struct {
	Title string
	Date  *time.Time
}
