// Package prismic implements the CMS read contract against the Prismic
// REST API (api/v2): master ref resolution plus predicate-based document
// search with cursor pagination.
package prismic

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"portfolio-backend/internal/domains/content"
	"portfolio-backend/internal/domains/content/model"
	"portfolio-backend/internal/locale"
)

const (
	typeBlogPost = "blog_post"
	typeWork     = "work"

	refTTL   = 5 * time.Minute
	pageSize = 100
)

type Config struct {
	Endpoint    string // https://<repo>.cdn.prismic.io
	AccessToken string // optional for public repositories
}

type Client struct {
	config     Config
	httpClient *http.Client

	mu        sync.Mutex
	masterRef string
	refExpiry time.Time
}

var _ content.Repository = (*Client)(nil)

func NewClient(config Config) *Client {
	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// =====================================================
// REPOSITORY IMPLEMENTATION
// =====================================================

func (c *Client) PostsByLocale(ctx context.Context, loc locale.Code) ([]model.Post, error) {
	docs, err := c.searchAll(ctx, searchQuery{
		predicate: fmt.Sprintf(`[[at(document.type,"%s")]]`, typeBlogPost),
		lang:      string(loc),
		orderings: fmt.Sprintf("[my.%s.published_date desc,document.first_publication_date desc]", typeBlogPost),
	})
	if err != nil {
		return nil, fmt.Errorf("search blog posts: %w", err)
	}

	posts := make([]model.Post, 0, len(docs))
	for _, doc := range docs {
		if doc.UID == "" {
			continue
		}
		posts = append(posts, mapPost(doc, loc))
	}
	return posts, nil
}

func (c *Client) PostByUID(ctx context.Context, uid string, loc locale.Code) (*model.Post, error) {
	docs, err := c.searchAll(ctx, searchQuery{
		predicate: fmt.Sprintf(`[[at(my.%s.uid,%q)]]`, typeBlogPost, uid),
		lang:      string(loc),
	})
	if err != nil {
		return nil, fmt.Errorf("search post %q: %w", uid, err)
	}
	if len(docs) == 0 || docs[0].UID == "" {
		return nil, model.ErrNotFound
	}

	post := mapPost(docs[0], loc)
	return &post, nil
}

func (c *Client) WorksByLocale(ctx context.Context, loc locale.Code) ([]model.WorkItem, error) {
	docs, err := c.searchAll(ctx, searchQuery{
		predicate: fmt.Sprintf(`[[at(document.type,"%s")]]`, typeWork),
		lang:      string(loc),
		orderings: fmt.Sprintf("[my.%s.order]", typeWork),
	})
	if err != nil {
		return nil, fmt.Errorf("search works: %w", err)
	}

	works := make([]model.WorkItem, 0, len(docs))
	for _, doc := range docs {
		works = append(works, mapWork(doc, loc))
	}
	return works, nil
}

func (c *Client) RefByID(ctx context.Context, id string) (*model.PostRef, error) {
	docs, err := c.searchAll(ctx, searchQuery{
		predicate: fmt.Sprintf(`[[at(document.id,%q)]]`, id),
		lang:      "*",
	})
	if err != nil {
		return nil, fmt.Errorf("search document %q: %w", id, err)
	}
	if len(docs) == 0 {
		return nil, model.ErrNotFound
	}

	doc := docs[0]
	return &model.PostRef{
		ID:     doc.ID,
		UID:    doc.UID,
		Type:   doc.Type,
		Locale: locale.Parse(doc.Lang),
	}, nil
}

// =====================================================
// RAW API ACCESS
// =====================================================

// Publication timestamps arrive as "2021-03-02T17:16:32+0000", which is not
// RFC 3339, so they stay strings here and are parsed in the mapper.
type document struct {
	ID                   string          `json:"id"`
	UID                  string          `json:"uid"`
	Type                 string          `json:"type"`
	Lang                 string          `json:"lang"`
	Tags                 []string        `json:"tags"`
	FirstPublicationDate string          `json:"first_publication_date"`
	LastPublicationDate  string          `json:"last_publication_date"`
	Data                 json.RawMessage `json:"data"`
}

type searchResponse struct {
	Page       int        `json:"page"`
	TotalPages int        `json:"total_pages"`
	NextPage   string     `json:"next_page"`
	Results    []document `json:"results"`
}

type searchQuery struct {
	predicate string
	lang      string
	orderings string
}

// searchAll runs a documents/search query and follows next_page cursors
// until the result set is exhausted.
func (c *Client) searchAll(ctx context.Context, q searchQuery) ([]document, error) {
	ref, err := c.resolveMasterRef(ctx)
	if err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("ref", ref)
	params.Set("q", q.predicate)
	params.Set("lang", q.lang)
	params.Set("pageSize", fmt.Sprintf("%d", pageSize))
	if q.orderings != "" {
		params.Set("orderings", q.orderings)
	}
	if c.config.AccessToken != "" {
		params.Set("access_token", c.config.AccessToken)
	}

	nextURL := c.config.Endpoint + "/api/v2/documents/search?" + params.Encode()

	var docs []document
	for nextURL != "" {
		var page searchResponse
		if err := c.getJSON(ctx, nextURL, &page); err != nil {
			return nil, err
		}
		docs = append(docs, page.Results...)
		nextURL = page.NextPage
	}
	return docs, nil
}

type refsResponse struct {
	Refs []struct {
		ID          string `json:"id"`
		Ref         string `json:"ref"`
		IsMasterRef bool   `json:"isMasterRef"`
	} `json:"refs"`
}

// resolveMasterRef fetches the repository's master ref, cached briefly so a
// burst of requests shares one lookup.
func (c *Client) resolveMasterRef(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.masterRef != "" && time.Now().Before(c.refExpiry) {
		return c.masterRef, nil
	}

	endpoint := c.config.Endpoint + "/api/v2"
	if c.config.AccessToken != "" {
		endpoint += "?access_token=" + url.QueryEscape(c.config.AccessToken)
	}

	var refs refsResponse
	if err := c.getJSON(ctx, endpoint, &refs); err != nil {
		return "", fmt.Errorf("resolve master ref: %w", err)
	}

	for _, r := range refs.Refs {
		if r.IsMasterRef {
			c.masterRef = r.Ref
			c.refExpiry = time.Now().Add(refTTL)
			return c.masterRef, nil
		}
	}
	return "", fmt.Errorf("no master ref in repository response")
}

func (c *Client) getJSON(ctx context.Context, rawURL string, dest interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("call Prismic API: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("Prismic API status %d: %s", resp.StatusCode, string(body))
	}
	if err := json.Unmarshal(body, dest); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}
	return nil
}
