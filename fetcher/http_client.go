package fetcher

import (
	"context"
	"net/http"
	"time"

	"github.com/pkg/errors"
)

const defaultFetchTimeout = 15 * time.Second

// HttpClient is a thin wrapper around http.Client that carries shared
// headers and rejects non-200 responses.
type HttpClient struct {
	header http.Header

	client *http.Client
}

func NewDefaultHttpClient() *HttpClient {
	return NewHttpClient(http.Header{})
}

func NewHttpClient(header http.Header) *HttpClient {
	return &HttpClient{
		header: header,
		client: &http.Client{Timeout: defaultFetchTimeout},
	}
}

func (c *HttpClient) Get(ctx context.Context, uri string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return nil, err
	}
	for key, values := range c.header {
		req.Header[key] = values
	}
	res, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	if res.StatusCode != http.StatusOK {
		res.Body.Close()
		return nil, errors.Errorf("non-200 response for %s: %d", uri, res.StatusCode)
	}
	return res, nil
}
