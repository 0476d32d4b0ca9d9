package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// ErrNotFound is matched by errors.Is for 404 responses.
var ErrNotFound = errors.New("not found")

// StatusError is returned for any non-2xx response.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d: %s", e.Code, e.Body)
}

func (e *StatusError) Is(target error) bool {
	return target == ErrNotFound && e.Code == http.StatusNotFound
}

type Client struct {
	http.Client
	Addr string
}

type Category struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

// Article is the projected article shape.
type Article struct {
	ID         uint64    `json:"id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
	CategoryID *uint64   `json:"categoryId"`
}

// RawArticle is the shape returned by the search endpoints.
type RawArticle struct {
	ID        uint64    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Category  *Category `json:"category"`
}

// ArticleInput is the body of article create and update calls.
type ArticleInput struct {
	Title      string
	Content    string
	CategoryID *uint64
}

func (in ArticleInput) MarshalJSON() ([]byte, error) {
	type ref struct {
		ID uint64 `json:"id"`
	}

	body := struct {
		Title    string `json:"title"`
		Content  string `json:"content"`
		Category *ref   `json:"category"`
	}{Title: in.Title, Content: in.Content}

	if in.CategoryID != nil {
		body.Category = &ref{ID: *in.CategoryID}
	}

	return json.Marshal(body)
}

func (c *Client) Ping() (string, error) {
	req, err := http.NewRequest("GET", c.Addr+"/ping", nil)
	if err != nil {
		return "", err
	}

	resp, err := c.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	return string(body), err
}

func (c *Client) ListArticles(ctx context.Context) ([]Article, error) {
	var out []Article

	return out, c.call(ctx, http.MethodGet, "/articles", nil, &out)
}

func (c *Client) GetArticle(ctx context.Context, id uint64) (*Article, error) {
	var out Article
	if err := c.call(ctx, http.MethodGet, articlePath(id), nil, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

func (c *Client) CreateArticle(ctx context.Context, in ArticleInput) (*Article, error) {
	var out Article
	if err := c.call(ctx, http.MethodPost, "/articles", in, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

func (c *Client) UpdateArticle(ctx context.Context, id uint64, in ArticleInput) (*Article, error) {
	var out Article
	if err := c.call(ctx, http.MethodPut, articlePath(id), in, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

func (c *Client) DeleteArticle(ctx context.Context, id uint64) error {
	return c.call(ctx, http.MethodDelete, articlePath(id), nil, nil)
}

func (c *Client) SearchTitle(ctx context.Context, terms string) ([]RawArticle, error) {
	var out []RawArticle

	return out, c.call(ctx, http.MethodGet, "/articles/search-title?"+url.Values{"searchTerms": {terms}}.Encode(), nil, &out)
}

func (c *Client) SearchContent(ctx context.Context, terms string) ([]RawArticle, error) {
	var out []RawArticle

	return out, c.call(ctx, http.MethodGet, "/articles/search-content?"+url.Values{"searchTerms": {terms}}.Encode(), nil, &out)
}

// SearchAfter sends t as a UTC local date-time.
func (c *Client) SearchAfter(ctx context.Context, t time.Time) ([]RawArticle, error) {
	var out []RawArticle

	date := t.UTC().Format("2006-01-02T15:04:05.999999999")

	return out, c.call(ctx, http.MethodGet, "/articles/search-after?"+url.Values{"date": {date}}.Encode(), nil, &out)
}

func (c *Client) Latest(ctx context.Context) ([]RawArticle, error) {
	var out []RawArticle

	return out, c.call(ctx, http.MethodGet, "/articles/search-last", nil, &out)
}

func (c *Client) ListCategories(ctx context.Context) ([]Category, error) {
	var out []Category

	return out, c.call(ctx, http.MethodGet, "/categories", nil, &out)
}

func (c *Client) GetCategory(ctx context.Context, id uint64) (*Category, error) {
	var out Category
	if err := c.call(ctx, http.MethodGet, categoryPath(id), nil, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

func (c *Client) CreateCategory(ctx context.Context, name string) (*Category, error) {
	var out Category
	if err := c.call(ctx, http.MethodPost, "/categories", Category{Name: name}, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

func (c *Client) UpdateCategory(ctx context.Context, id uint64, name string) (*Category, error) {
	var out Category
	if err := c.call(ctx, http.MethodPut, categoryPath(id), Category{Name: name}, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

func (c *Client) DeleteCategory(ctx context.Context, id uint64) error {
	return c.call(ctx, http.MethodDelete, categoryPath(id), nil, nil)
}

func articlePath(id uint64) string {
	return "/articles/" + strconv.FormatUint(id, 10)
}

func categoryPath(id uint64) string {
	return "/categories/" + strconv.FormatUint(id, 10)
}

// call sends in as JSON (when non-nil) and decodes a 2xx body into out
// (when non-nil).
func (c *Client) call(ctx context.Context, method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.Addr+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

		return &StatusError{Code: resp.StatusCode, Body: string(b)}
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
