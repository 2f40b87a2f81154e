// Package supabase talks to a Supabase project over its REST (PostgREST) and
// Storage HTTP APIs with the service role key.
package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"leadway/caution_backend/internal/domain/quote"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

type Client struct {
	BaseURL string
	Key     string
	HTTP    *http.Client
}

func New(baseURL, key string, httpClient *http.Client) (*Client, error) {
	base := strings.TrimRight(baseURL, "/")
	if !strings.HasPrefix(base, "http://") && !strings.HasPrefix(base, "https://") {
		return nil, fmt.Errorf("invalid supabase url")
	}
	if key == "" {
		return nil, fmt.Errorf("missing supabase service role key")
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &Client{BaseURL: base, Key: key, HTTP: httpClient}, nil
}

// APIError is a non-2xx answer from Supabase.
type APIError struct {
	Status int
	Code   string
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("supabase status %d: %s", e.Status, e.Body)
}

// Unwrap classifies the failure for callers matching on quote errors.
func (e *APIError) Unwrap() error {
	switch {
	case e.Status == http.StatusConflict && e.Code == pgForeignKeyViolation:
		return quote.ErrNotFound
	case e.Status == http.StatusConflict || e.Code == pgUniqueViolation:
		return quote.ErrDuplicateKey
	case e.Status == http.StatusNotFound:
		return quote.ErrNotFound
	}
	return quote.ErrStorage
}

type request struct {
	method string
	path   string
	query  url.Values
	body   any
	prefer string
	header http.Header
	raw    []byte
}

func (c *Client) rest(ctx context.Context, r request, out any) error {
	r.path = "/rest/v1/" + r.path
	return c.do(ctx, r, out)
}

func (c *Client) do(ctx context.Context, r request, out any) error {
	urlStr := c.BaseURL + r.path
	if len(r.query) > 0 {
		urlStr += "?" + r.query.Encode()
	}

	var body io.Reader
	switch {
	case r.raw != nil:
		body = bytes.NewReader(r.raw)
	case r.body != nil:
		b, err := json.Marshal(r.body)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, urlStr, body)
	if err != nil {
		return err
	}
	if r.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("apikey", c.Key)
	req.Header.Set("Authorization", "Bearer "+c.Key)
	if r.prefer != "" {
		req.Header.Set("Prefer", r.prefer)
	}
	for k, vs := range r.header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", quote.ErrStorage, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return newAPIError(resp.StatusCode, msg)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode %s: %v", quote.ErrStorage, r.path, err)
	}
	return nil
}

func newAPIError(status int, msg []byte) *APIError {
	e := &APIError{Status: status, Body: strings.TrimSpace(string(msg))}
	var pg struct {
		Code string `json:"code"`
	}
	if json.Unmarshal(msg, &pg) == nil {
		e.Code = pg.Code
	}
	return e
}
