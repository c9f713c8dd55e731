// Package instagram fetches gallery media from the Instagram Graph API,
// following the API's own cursor pagination up to a fixed page ceiling.
package instagram

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"portfolio-backend/internal/domains/gallery/model"
	"portfolio-backend/internal/shared/fanout"
	"portfolio-backend/pkg/logger"
)

const mediaFields = "id,caption,media_type,media_url,thumbnail_url,permalink,timestamp"

type Config struct {
	AccessToken string
	BaseURL     string // https://graph.instagram.com
	PageLimit   int    // items per page, API caps at 100
	MaxPages    int    // pagination ceiling, bounds cost regardless of account size
}

type Client struct {
	config     Config
	httpClient *http.Client
}

func NewClient(config Config) *Client {
	if config.PageLimit <= 0 {
		config.PageLimit = 100
	}
	if config.MaxPages <= 0 {
		config.MaxPages = 5
	}
	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

type mediaPage struct {
	Data   []model.Media `json:"data"`
	Paging struct {
		Next string `json:"next"`
	} `json:"paging"`
}

// FetchMedia pages through /me/media, keeping images and carousels only.
// Pages are fetched strictly sequentially: each page's URL comes from the
// previous response. Carousel children are then enriched concurrently; a
// failed child fetch degrades that one item to no children.
func (c *Client) FetchMedia(ctx context.Context) ([]model.Media, error) {
	params := url.Values{}
	params.Set("fields", mediaFields)
	params.Set("limit", fmt.Sprintf("%d", c.config.PageLimit))
	params.Set("access_token", c.config.AccessToken)

	nextURL := c.config.BaseURL + "/me/media?" + params.Encode()

	var media []model.Media
	for page := 0; nextURL != "" && page < c.config.MaxPages; page++ {
		var resp mediaPage
		if err := c.getJSON(ctx, nextURL, &resp); err != nil {
			return nil, fmt.Errorf("fetch media page %d: %w", page+1, err)
		}

		for _, item := range resp.Data {
			if item.MediaType == model.TypeImage ||
				(item.MediaType == model.TypeCarousel && item.MediaURL != "") {
				media = append(media, item)
			}
		}

		nextURL = resp.Paging.Next
	}

	c.enrichCarousels(ctx, media)
	return media, nil
}

// enrichCarousels fills Children for every carousel item. Each fetch is
// independent and swallows its own error.
func (c *Client) enrichCarousels(ctx context.Context, media []model.Media) {
	var carousels []int
	for i, item := range media {
		if item.MediaType == model.TypeCarousel {
			carousels = append(carousels, i)
		}
	}
	if len(carousels) == 0 {
		return
	}

	succeeded, failed := fanout.SettleAll(ctx, carousels, func(ctx context.Context, i int) ([]model.ChildMedia, error) {
		return c.fetchChildren(ctx, media[i].ID)
	})

	for _, s := range succeeded {
		media[s.Input].Children = s.Value
	}
	for _, f := range failed {
		logger.Warn("failed to fetch carousel children", map[string]interface{}{
			"media_id": media[f.Input].ID,
			"error":    f.Err.Error(),
		})
	}
}

type childrenResponse struct {
	Data []model.ChildMedia `json:"data"`
}

func (c *Client) fetchChildren(ctx context.Context, mediaID string) ([]model.ChildMedia, error) {
	params := url.Values{}
	params.Set("fields", "id,media_type,media_url")
	params.Set("access_token", c.config.AccessToken)

	var resp childrenResponse
	endpoint := c.config.BaseURL + "/" + mediaID + "/children?" + params.Encode()
	if err := c.getJSON(ctx, endpoint, &resp); err != nil {
		return nil, fmt.Errorf("fetch children of %s: %w", mediaID, err)
	}

	images := make([]model.ChildMedia, 0, len(resp.Data))
	for _, child := range resp.Data {
		if child.MediaType == model.TypeImage {
			images = append(images, child)
		}
	}
	return images, nil
}

func (c *Client) getJSON(ctx context.Context, rawURL string, dest interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("call Instagram API: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("Instagram API status %d: %s", resp.StatusCode, string(body))
	}
	if err := json.Unmarshal(body, dest); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}
	return nil
}
