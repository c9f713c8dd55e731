// Package seo builds page metadata and JSON-LD structured data from locale
// and content. Everything here is pure; no I/O.
package seo

import (
	"strings"
	"time"

	"portfolio-backend/internal/locale"
)

// Builder carries the site-wide constants every metadata record shares.
type Builder struct {
	BaseURL       string
	SiteNameEn    string
	SiteNameJa    string
	DefaultImage  string // absolute URL used when a page has no own image
	TwitterHandle string
	Author        string
}

func NewBuilder(baseURL string) *Builder {
	baseURL = strings.TrimRight(baseURL, "/")
	return &Builder{
		BaseURL:       baseURL,
		SiteNameEn:    "Fumi Nozawa | Digital Marketer & Developer",
		SiteNameJa:    "野澤眞史 | デジタルマーケター & Webエンジニア",
		DefaultImage:  baseURL + "/profile.jpg",
		TwitterHandle: "@fuminozawa",
		Author:        "Fumi Nozawa",
	}
}

// SiteName returns the localized site title.
func (b *Builder) SiteName(loc locale.Code) string {
	if loc == locale.JaJP {
		return b.SiteNameJa
	}
	return b.SiteNameEn
}

// Input is everything a page contributes to its own metadata.
type Input struct {
	Title         string
	Description   string
	Canonical     string
	OGImage       string
	OGType        string // "website" or "article"
	PublishedTime time.Time
	ModifiedTime  time.Time
	Noindex       bool
	Locale        locale.Code
	AlternateURLs map[string]string
	Tags          []string
}

// OGImageMeta describes the OpenGraph image entry.
type OGImageMeta struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Alt    string `json:"alt"`
	Type   string `json:"type"`
}

type OpenGraph struct {
	Title           string      `json:"title"`
	Description     string      `json:"description"`
	URL             string      `json:"url"`
	SiteName        string      `json:"site_name"`
	Locale          string      `json:"locale"`
	AlternateLocale []string    `json:"alternate_locale"`
	Type            string      `json:"type"`
	Image           OGImageMeta `json:"image"`
	PublishedTime   string      `json:"published_time,omitempty"`
	ModifiedTime    string      `json:"modified_time,omitempty"`
	Tags            []string    `json:"tags,omitempty"`
}

type TwitterCard struct {
	Card     string `json:"card"`
	Title    string `json:"title"`
	Creator  string `json:"creator"`
	Site     string `json:"site"`
	ImageURL string `json:"image_url"`
}

// Metadata is the head-equivalent record consumed by the rendering layer.
type Metadata struct {
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Canonical   string            `json:"canonical"`
	Author      string            `json:"author"`
	Robots      string            `json:"robots"`
	Languages   map[string]string `json:"languages"`
	OpenGraph   OpenGraph         `json:"open_graph"`
	Twitter     TwitterCard       `json:"twitter"`
}

// BuildMetadata assembles the metadata record for a page.
func (b *Builder) BuildMetadata(in Input) Metadata {
	canonical := in.Canonical
	if canonical == "" {
		canonical = b.BaseURL
	}

	ogType := in.OGType
	if ogType == "" {
		ogType = "website"
	}

	image := in.OGImage
	if image == "" {
		image = b.DefaultImage
	}
	imageType := "image/jpeg"
	if strings.HasSuffix(image, ".png") {
		imageType = "image/png"
	}

	loc := locale.Get(in.Locale)
	altLoc := locale.Get(locale.Alternate(in.Locale))

	siteName := b.SiteName(in.Locale)

	robots := "index, follow"
	if in.Noindex {
		robots = "noindex, nofollow"
	}

	languages := in.AlternateURLs
	if languages == nil {
		languages = map[string]string{}
	}

	og := OpenGraph{
		Title:           in.Title,
		Description:     in.Description,
		URL:             canonical,
		SiteName:        siteName,
		Locale:          loc.OGLocale,
		AlternateLocale: []string{altLoc.OGLocale},
		Type:            ogType,
		Image: OGImageMeta{
			URL:    image,
			Width:  1200,
			Height: 627,
			Alt:    in.Title,
			Type:   imageType,
		},
	}
	if ogType == "article" {
		if !in.PublishedTime.IsZero() {
			og.PublishedTime = in.PublishedTime.Format(time.RFC3339)
		}
		if !in.ModifiedTime.IsZero() {
			og.ModifiedTime = in.ModifiedTime.Format(time.RFC3339)
		}
		og.Tags = in.Tags
	}

	return Metadata{
		Title:       in.Title,
		Description: in.Description,
		Canonical:   canonical,
		Author:      b.Author,
		Robots:      robots,
		Languages:   languages,
		OpenGraph:   og,
		Twitter: TwitterCard{
			Card:     "summary_large_image",
			Title:    in.Title,
			Creator:  b.TwitterHandle,
			Site:     b.TwitterHandle,
			ImageURL: image,
		},
	}
}

// ArticleJSONLD builds the schema.org BlogPosting object for a post.
func (b *Builder) ArticleJSONLD(title, description, url string, published, modified time.Time, loc locale.Code) map[string]interface{} {
	person := map[string]interface{}{
		"@type": "Person",
		"name":  b.Author,
		"url":   b.BaseURL,
	}

	data := map[string]interface{}{
		"@context":    "https://schema.org",
		"@type":       "BlogPosting",
		"headline":    title,
		"description": description,
		"author":      person,
		"publisher":   person,
		"mainEntityOfPage": map[string]interface{}{
			"@type": "WebPage",
			"@id":   url,
		},
		"url":        url,
		"inLanguage": locale.Get(loc).BCP47,
	}
	if !published.IsZero() {
		data["datePublished"] = published.Format(time.RFC3339)
	}
	if !modified.IsZero() {
		data["dateModified"] = modified.Format(time.RFC3339)
	} else if !published.IsZero() {
		data["dateModified"] = published.Format(time.RFC3339)
	}
	return data
}

// WebsiteJSONLD builds the schema.org WebSite object.
func (b *Builder) WebsiteJSONLD(loc locale.Code) map[string]interface{} {
	return map[string]interface{}{
		"@context": "https://schema.org",
		"@type":    "WebSite",
		"name":     b.Author,
		"url":      b.BaseURL,
		"author": map[string]interface{}{
			"@type": "Person",
			"name":  b.Author,
			"url":   b.BaseURL,
		},
		"inLanguage": locale.Get(loc).BCP47,
	}
}

// PersonJSONLD builds the schema.org Person object for the profile page.
func (b *Builder) PersonJSONLD() map[string]interface{} {
	return map[string]interface{}{
		"@context": "https://schema.org",
		"@type":    "Person",
		"name":     b.Author,
		"url":      b.BaseURL,
		"image":    b.DefaultImage,
		"sameAs": []string{
			"https://twitter.com/fuminozawa",
			"https://www.instagram.com/fuminozawa_/",
		},
	}
}
