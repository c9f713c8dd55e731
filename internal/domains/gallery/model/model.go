package model

// Media types surfaced by the Instagram Graph API. Videos are filtered out
// before a Media value is ever constructed.
const (
	TypeImage    = "IMAGE"
	TypeCarousel = "CAROUSEL_ALBUM"
	TypeVideo    = "VIDEO"
)

// ChildMedia is one image inside a carousel post.
type ChildMedia struct {
	ID        string `json:"id"`
	MediaType string `json:"media_type"`
	MediaURL  string `json:"media_url"`
}

// Media is a gallery photo or carousel post.
type Media struct {
	ID           string       `json:"id"`
	Caption      string       `json:"caption"`
	MediaType    string       `json:"media_type"`
	MediaURL     string       `json:"media_url"`
	ThumbnailURL string       `json:"thumbnail_url,omitempty"`
	Permalink    string       `json:"permalink"`
	Timestamp    string       `json:"timestamp"`
	Children     []ChildMedia `json:"children,omitempty"`
}
