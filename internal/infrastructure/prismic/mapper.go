package prismic

import (
	"encoding/json"
	"strings"
	"time"

	"portfolio-backend/internal/domains/content/model"
	"portfolio-backend/internal/locale"
)

// richText is Prismic's structured text: a sequence of typed blocks.
type richText []struct {
	Text string `json:"text"`
}

// asText flattens a rich text field the way the Prismic SDK does.
func (rt richText) asText() string {
	parts := make([]string, 0, len(rt))
	for _, block := range rt {
		parts = append(parts, block.Text)
	}
	return strings.TrimSpace(strings.Join(parts, "\n"))
}

type imageField struct {
	URL        string `json:"url"`
	Alt        string `json:"alt"`
	Dimensions struct {
		Width  int `json:"width"`
		Height int `json:"height"`
	} `json:"dimensions"`
}

func (f imageField) toModel() *model.Image {
	if f.URL == "" {
		return nil
	}
	return &model.Image{
		URL:    f.URL,
		Alt:    f.Alt,
		Width:  f.Dimensions.Width,
		Height: f.Dimensions.Height,
	}
}

type linkField struct {
	URL string `json:"url"`
}

type postData struct {
	Title         richText        `json:"title"`
	Description   string          `json:"description"`
	PublishedDate string          `json:"published_date"` // custom date field, "2006-01-02"
	Content       json.RawMessage `json:"content"`
	FeaturedImage imageField      `json:"featured_image"`
}

type workData struct {
	Title         richText   `json:"title"`
	Description   richText   `json:"description"`
	Link          linkField  `json:"link"`
	CTAText       string     `json:"cta_text"`
	Category      string     `json:"category"`
	Order         float64    `json:"order"`
	FeaturedImage imageField `json:"featured_image"`
}

// parseTimestamp handles both RFC 3339 and the "+0000" offset form the
// Prismic API actually emits.
func parseTimestamp(s string) time.Time {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05-0700"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

func mapPost(doc document, loc locale.Code) model.Post {
	var data postData
	_ = json.Unmarshal(doc.Data, &data)

	title := data.Title.asText()
	if title == "" {
		title = "Untitled"
	}

	// The custom published date wins; the first publication date is the
	// fallback when an editor never set one.
	published := parseTimestamp(doc.FirstPublicationDate)
	if data.PublishedDate != "" {
		if d, err := time.Parse("2006-01-02", data.PublishedDate); err == nil {
			published = d
		}
	}

	tags := doc.Tags
	if tags == nil {
		tags = []string{}
	}

	return model.Post{
		ID:            doc.ID,
		UID:           doc.UID,
		Slug:          doc.UID,
		Title:         title,
		Description:   data.Description,
		PublishedDate: published,
		UpdatedDate:   parseTimestamp(doc.LastPublicationDate),
		Content:       data.Content,
		Tags:          tags,
		FeaturedImage: data.FeaturedImage.toModel(),
		Locale:        loc,
	}
}

func mapWork(doc document, loc locale.Code) model.WorkItem {
	var data workData
	_ = json.Unmarshal(doc.Data, &data)

	title := data.Title.asText()
	if title == "" {
		title = "Untitled"
	}

	ctaText := data.CTAText
	if ctaText == "" {
		if loc == locale.JaJP {
			ctaText = "詳細を見る"
		} else {
			ctaText = "View Details"
		}
	}

	category := data.Category
	if category == "" {
		category = "other"
	}

	order := int(data.Order)
	if order == 0 {
		order = 999
	}

	return model.WorkItem{
		ID:            doc.ID,
		UID:           doc.UID,
		Title:         title,
		Description:   data.Description.asText(),
		Link:          data.Link.URL,
		CTAText:       ctaText,
		Category:      category,
		Order:         order,
		FeaturedImage: data.FeaturedImage.toModel(),
		Locale:        loc,
	}
}
