// Package catalog fetches the read-only list of points of interest shown on
// the map.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"

	"tableflip.dev/shoptrack/pkg/poi"
)

const defaultTimeout = 10 * time.Second

// FetchError reports a failed catalog fetch.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("catalog: fetch %s: status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("catalog: fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Loader fetches the catalog.
type Loader interface {
	Fetch(ctx context.Context) ([]poi.PointOfInterest, error)
}

// Client loads the catalog from an http(s) URL, a file:// URL or a local
// path.
type Client struct {
	URL     string
	Timeout time.Duration
	Log     zerolog.Logger

	// Now stamps the cache-busting query parameter.
	Now func() time.Time

	http *fasthttp.Client
}

// New returns a Client for rawURL.
func New(rawURL string, timeout time.Duration, log zerolog.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		URL:     rawURL,
		Timeout: timeout,
		Log:     log,
		Now:     time.Now,
		http: &fasthttp.Client{
			Name:         "shoptrack",
			ReadTimeout:  timeout,
			WriteTimeout: timeout,
		},
	}
}

// Fetch downloads and decodes the catalog. Records without a name are
// dropped since the name is what identifies them.
func (c *Client) Fetch(ctx context.Context) ([]poi.PointOfInterest, error) {
	if err := ctx.Err(); err != nil {
		return nil, &FetchError{URL: c.URL, Err: err}
	}

	body, err := c.read(ctx)
	if err != nil {
		return nil, err
	}

	var records []poi.PointOfInterest
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, &FetchError{URL: c.URL, Err: fmt.Errorf("decode: %w", err)}
	}

	out := make([]poi.PointOfInterest, 0, len(records))
	for _, r := range records {
		if strings.TrimSpace(r.Name) == "" {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

// Load is Fetch that fails open: any error is logged and an empty catalog is
// returned.
func (c *Client) Load(ctx context.Context) []poi.PointOfInterest {
	list, err := c.Fetch(ctx)
	if err != nil {
		c.Log.Warn().Err(err).Str("url", c.URL).Msg("catalog unavailable, showing no points of interest")
		return []poi.PointOfInterest{}
	}
	return list
}

func (c *Client) read(ctx context.Context) ([]byte, error) {
	u, err := url.Parse(c.URL)
	if err != nil || u.Scheme == "" || u.Scheme == "file" {
		path := c.URL
		if err == nil && u.Scheme == "file" {
			path = u.Path
		}
		b, rerr := os.ReadFile(path)
		if rerr != nil {
			return nil, &FetchError{URL: c.URL, Err: rerr}
		}
		return b, nil
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, &FetchError{URL: c.URL, Err: fmt.Errorf("unsupported scheme %q", u.Scheme)}
	}
	return c.get(ctx, c.bust(u))
}

// bust appends t=<unix millis> so intermediaries never serve a stale list.
func (c *Client) bust(u *url.URL) string {
	now := time.Now
	if c.Now != nil {
		now = c.Now
	}
	q := u.Query()
	q.Set("t", strconv.FormatInt(now().UnixMilli(), 10))
	u.RawQuery = q.Encode()
	return u.String()
}

func (c *Client) get(ctx context.Context, target string) ([]byte, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(target)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "application/json")

	deadline := time.Now().Add(c.Timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}

	client := c.http
	if client == nil {
		client = &fasthttp.Client{}
	}
	if err := client.DoDeadline(req, resp, deadline); err != nil {
		return nil, &FetchError{URL: c.URL, Err: err}
	}
	if code := resp.StatusCode(); code < 200 || code >= 300 {
		return nil, &FetchError{URL: c.URL, StatusCode: code}
	}

	// The response is released on return; keep a copy.
	body := append([]byte(nil), resp.Body()...)
	return body, nil
}
