package supabase

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"path"
	"strings"
)

// DocumentArchive uploads rendered PDFs to a Storage bucket, replacing any
// object with the same name.
type DocumentArchive struct {
	c      *Client
	bucket string
}

func NewDocumentArchive(c *Client, bucket string) *DocumentArchive {
	return &DocumentArchive{c: c, bucket: bucket}
}

func (a *DocumentArchive) Archive(ctx context.Context, name string, data []byte) error {
	segments := strings.Split(strings.Trim(name, "/"), "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	err := a.c.do(ctx, request{
		method: http.MethodPut,
		path:   path.Join("/storage/v1/object", url.PathEscape(a.bucket), strings.Join(segments, "/")),
		raw:    data,
		header: http.Header{
			"Content-Type": {"application/pdf"},
			"X-Upsert":     {"true"},
		},
	}, nil)
	if err != nil {
		return fmt.Errorf("archive %s: %w", name, err)
	}
	return nil
}
