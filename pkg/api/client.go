package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/chain-labs/simplr-events-server-v2/pkg/xcontext"
)

type Client interface {
	Header(name, value string) Client
	Query(query Parameter) Client
	Body(body Body) Client
	POST(ctx context.Context, opts ...Opt) (*Response, error)
	GET(ctx context.Context, opts ...Opt) (*Response, error)
}

type Generator interface {
	New(path string, args ...any) Client
}

type defaultGenerator struct {
	domain string
}

func NewGenerator(domain string) *defaultGenerator {
	return &defaultGenerator{domain: domain}
}

func (g *defaultGenerator) New(path string, args ...any) Client {
	return &defaultClient{
		domain:  g.domain,
		path:    fmt.Sprintf(path, args...),
		headers: make(http.Header),
	}
}

type Body interface {
	ToReader() (io.Reader, string, error)
}

type Opt interface {
	Do(defaultClient, *http.Request)
}

type defaultClient struct {
	domain  string
	method  string
	path    string
	headers http.Header
	query   Parameter
	body    Body
}

func (c *defaultClient) Header(name, value string) Client {
	c.headers[name] = []string{value}
	return c
}

func (c *defaultClient) Query(query Parameter) Client {
	c.query = query
	return c
}

func (c *defaultClient) Body(body Body) Client {
	c.body = body
	return c
}

func (c *defaultClient) POST(ctx context.Context, opts ...Opt) (*Response, error) {
	c.method = http.MethodPost
	return c.call(ctx, opts...)
}

func (c *defaultClient) GET(ctx context.Context, opts ...Opt) (*Response, error) {
	c.method = http.MethodGet
	return c.call(ctx, opts...)
}

func (c *defaultClient) call(ctx context.Context, opts ...Opt) (*Response, error) {
	var reader io.Reader
	var contentType string
	if c.body != nil {
		var err error
		reader, contentType, err = c.body.ToReader()
		if err != nil {
			return nil, err
		}
	}

	url := c.domain + c.path
	if c.query != nil {
		url = url + "?" + c.query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, c.method, url, reader)
	if err != nil {
		return nil, err
	}

	if contentType != "" {
		req.Header.Add("Content-type", contentType)
	}
	for h, values := range c.headers {
		for _, v := range values {
			req.Header.Add(h, v)
		}
	}

	for _, opt := range opts {
		opt.Do(*c, req)
	}

	result, err := xcontext.HTTPClient(ctx).Do(req)
	if err != nil {
		return nil, fmt.Errorf("cannot call to %s: %w", url, err)
	}
	defer result.Body.Close()

	response := &Response{
		Code:   result.StatusCode,
		Header: result.Header,
	}

	body, err := io.ReadAll(result.Body)
	if err != nil {
		return nil, fmt.Errorf("cannot read body of %s: %w", url, err)
	}

	response.RawBody = body
	if len(body) == 0 {
		response.Body = JSON{}
	} else if b, err := bytesToJSON(body); err == nil {
		response.Body = b
	} else if b, err := bytesToArray(body); err == nil {
		response.Body = b
	}

	if response.Body == nil {
		return nil, errors.New("cannot parse response body of " + url)
	}

	return response, nil
}
