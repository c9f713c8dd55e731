package model

import (
	"encoding/json"
	"errors"
	"time"

	"portfolio-backend/internal/locale"
)

var ErrNotFound = errors.New("document not found")

// Image is a CMS-hosted image with its rendered dimensions.
type Image struct {
	URL    string `json:"url"`
	Alt    string `json:"alt"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// Post is a blog article as served to the rendering layer. Content is the
// CMS rich-text block tree, passed through untouched.
type Post struct {
	ID            string          `json:"id"`
	UID           string          `json:"uid"`
	Slug          string          `json:"slug"`
	Title         string          `json:"title"`
	Description   string          `json:"description,omitempty"`
	PublishedDate time.Time       `json:"published_date"`
	UpdatedDate   time.Time       `json:"updated_date"`
	Content       json.RawMessage `json:"content,omitempty"`
	Tags          []string        `json:"tags"`
	FeaturedImage *Image          `json:"featured_image,omitempty"`
	Locale        locale.Code     `json:"locale"`
}

// WorkItem is a portfolio entry.
type WorkItem struct {
	ID            string      `json:"id"`
	UID           string      `json:"uid"`
	Title         string      `json:"title"`
	Description   string      `json:"description"`
	Link          string      `json:"link,omitempty"`
	CTAText       string      `json:"cta_text"`
	Category      string      `json:"category"`
	Order         int         `json:"order"`
	FeaturedImage *Image      `json:"featured_image,omitempty"`
	Locale        locale.Code `json:"locale"`
}

// PostRef identifies a document without its content. Used for sitemap
// enumeration and webhook URL resolution.
type PostRef struct {
	ID     string      `json:"id"`
	UID    string      `json:"uid"`
	Type   string      `json:"type"`
	Locale locale.Code `json:"locale"`
}

// Status distinguishes a genuinely empty result from an upstream failure,
// so callers can choose whether to collapse the two.
type Status string

const (
	StatusOK     Status = "ok"
	StatusEmpty  Status = "empty"
	StatusFailed Status = "failed"
)

// PostsResult is the outcome of a post listing fetch.
type PostsResult struct {
	Status Status `json:"status"`
	Posts  []Post `json:"posts"`
	Err    error  `json:"-"`
}
