package main

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

const defaultBackendURL = "http://127.0.0.1:8000"

// Client talks to the local backend service. The backend owns scanning,
// downloads and persistence; this client only reads the library and mirrors
// metadata updates.
type Client struct {
	http *resty.Client
}

// NewClient creates a backend client for the given base URL.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultBackendURL
	}
	return &Client{
		http: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(15 * time.Second),
	}
}

type libraryResponse struct {
	Mangas []Manga `json:"mangas"`
}

// Library fetches the library listing. Chapters come without pages; use
// MangaDetail for the full tree.
func (c *Client) Library(ctx context.Context) ([]Manga, error) {
	var out libraryResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&out).
		Get("/library")
	if err != nil {
		return nil, fmt.Errorf("fetching library: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("fetching library: backend returned %s", resp.Status())
	}
	return out.Mangas, nil
}

// MangaDetail fetches one manga with its full chapter/page tree. Chapters
// are normalized (natural-sorted, orders assigned) before returning.
func (c *Client) MangaDetail(ctx context.Context, id string) (*Manga, error) {
	var out Manga
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("id", id).
		SetResult(&out).
		Get("/manga_detail")
	if err != nil {
		return nil, fmt.Errorf("fetching manga %s: %w", id, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("fetching manga %s: backend returned %s", id, resp.Status())
	}
	out.Chapters = NormalizeChapters(out.Chapters)
	return &out, nil
}

// Metadata fetches the raw metadata record for a manga. A manga with no
// stored metadata yields an empty map, not an error.
func (c *Client) Metadata(ctx context.Context, id string) (map[string]any, error) {
	var out map[string]any
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&out).
		Get("/metadata/" + id)
	if err != nil {
		return nil, fmt.Errorf("fetching metadata for %s: %w", id, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("fetching metadata for %s: backend returned %s", id, resp.Status())
	}
	if out == nil {
		out = map[string]any{}
	}
	return out, nil
}

// UpdateMetadata merges the given fields into a manga's metadata record.
// The backend is the single writer of persisted state; this call is
// optimistic and the response is not read back beyond the status code.
func (c *Client) UpdateMetadata(ctx context.Context, id string, fields map[string]any) error {
	body := map[string]any{"id": id}
	for k, v := range fields {
		body[k] = v
	}
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(body).
		Post("/update_metadata")
	if err != nil {
		return fmt.Errorf("updating metadata for %s: %w", id, err)
	}
	if resp.IsError() {
		return fmt.Errorf("updating metadata for %s: backend returned %s", id, resp.Status())
	}
	return nil
}

// AppSettings is the reader-relevant slice of the backend's settings file.
type AppSettings struct {
	Theme                 string `json:"theme"`
	EnableScrollTurn      bool   `json:"enableScrollTurn"`
	ReaderBackgroundColor string `json:"readerBackgroundColor"`
	LongPressDuration     int    `json:"longPressDuration"`
	ToggleMenuKey         string `json:"toggleMenuKey"`
}

type settingsResponse struct {
	App AppSettings `json:"app"`
}

// Settings fetches the backend-held app settings, clamped to the ranges the
// reader supports.
func (c *Client) Settings(ctx context.Context) (*AppSettings, error) {
	var out settingsResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&out).
		Get("/settings")
	if err != nil {
		return nil, fmt.Errorf("fetching settings: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("fetching settings: backend returned %s", resp.Status())
	}

	s := out.App
	if s.LongPressDuration < 0 {
		s.LongPressDuration = 0
	}
	if s.LongPressDuration > 200 {
		s.LongPressDuration = 200
	}
	if s.ReaderBackgroundColor == "" {
		s.ReaderBackgroundColor = "#0f172a"
	}
	if s.ToggleMenuKey == "" {
		s.ToggleMenuKey = "m"
	}
	return &s, nil
}

// SearchResult is one remote search hit.
type SearchResult struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Author   string `json:"author"`
	Category string `json:"category"`
}

type searchResponse struct {
	Query   string         `json:"query"`
	Total   int            `json:"total"`
	Results []SearchResult `json:"results"`
}

// Search runs a remote search through the backend.
func (c *Client) Search(ctx context.Context, query string) ([]SearchResult, error) {
	var out searchResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("q", query).
		SetResult(&out).
		Get("/search")
	if err != nil {
		return nil, fmt.Errorf("searching %q: %w", query, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("searching %q: backend returned %s", query, resp.Status())
	}
	return out.Results, nil
}

// PageBytes fetches the raw bytes of a remote page URL. Absolute URLs (the
// backend hands out absolute /files/... URLs) bypass the configured base.
func (c *Client) PageBytes(ctx context.Context, url string) ([]byte, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		return nil, fmt.Errorf("fetching page %s: %w", url, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("fetching page %s: backend returned %s", url, resp.Status())
	}
	return resp.Body(), nil
}

// Health pings the backend.
func (c *Client) Health(ctx context.Context) error {
	resp, err := c.http.R().SetContext(ctx).Get("/health")
	if err != nil {
		return fmt.Errorf("backend health check: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("backend health check: %s", resp.Status())
	}
	return nil
}
