// Package datasource abstracts where the input bytes of a cleaning run come
// from. The cleaner opens exactly one source per run: a local file path or an
// http(s) URL fetched with a retrying client.
package datasource

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"csvclean/internal/datasource/file"
	"csvclean/internal/datasource/httpds"
)

// Source yields the input byte stream for one run. The caller owns the
// returned ReadCloser.
type Source interface {
	Open(ctx context.Context) (io.ReadCloser, error)
}

// For returns the Source matching input: http:// and https:// inputs are
// fetched over the network, anything else is opened as a local path.
func For(input string) Source {
	if strings.HasPrefix(input, "http://") || strings.HasPrefix(input, "https://") {
		return &urlSource{url: input, client: httpds.NewClient(httpds.Config{})}
	}
	return file.NewLocal(input)
}

// urlSource streams the response body of a GET with retry/backoff on
// transient failures.
type urlSource struct {
	url    string
	client *httpds.Client
}

func (s *urlSource) Open(ctx context.Context) (io.ReadCloser, error) {
	resp, err := s.client.Get(ctx, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", s.url, err)
	}
	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("get %s: unexpected status %s", s.url, resp.Status)
	}
	return resp.Body, nil
}
