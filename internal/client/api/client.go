package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/equiply/equiply-cli/internal/client/session"
	"github.com/equiply/equiply-cli/internal/logging"
)

// Client talks to the Equiply HTTP API. All requests go through the
// AuthTransport configured on the underlying http.Client, so token
// attachment and 401 recovery are transparent to the endpoint methods.
type Client struct {
	base       *url.URL
	http       *http.Client
	store      *session.TokenStore
	bus        *session.Bus
	clientType session.ClientType
	log        logging.Logger
}

func NewClient(base *url.URL, httpClient *http.Client, store *session.TokenStore,
	bus *session.Bus, clientType session.ClientType, log logging.Logger) *Client {
	return &Client{
		base:       base,
		http:       httpClient,
		store:      store,
		bus:        bus,
		clientType: clientType,
		log:        log,
	}
}

func (c *Client) endpoint(path string, query url.Values) string {
	u := *c.base
	u.Path = strings.TrimRight(u.Path, "/") + path
	if query != nil {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

// do sends one request and decodes the success envelope into out. A non-2xx
// response is decoded into an *Error; transport failures wrap ErrUnavailable.
func (c *Client) do(ctx context.Context, method, path string, query url.Values,
	contentType string, body io.Reader, out any) error {

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path, query), body)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeError(resp)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, "", nil, out)
}

func (c *Client) postJSON(ctx context.Context, path string, query url.Values, in, out any) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("encoding request: %w", err)
	}
	return c.do(ctx, http.MethodPost, path, query, "application/json", bytes.NewReader(payload), out)
}

func (c *Client) postForm(ctx context.Context, path string, query, form url.Values, out any) error {
	body := strings.NewReader(form.Encode())
	return c.do(ctx, http.MethodPost, path, query, "application/x-www-form-urlencoded", body, out)
}

func (c *Client) putJSON(ctx context.Context, path string, in, out any) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("encoding request: %w", err)
	}
	return c.do(ctx, http.MethodPut, path, nil, "application/json", bytes.NewReader(payload), out)
}

func (c *Client) deleteJSON(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodDelete, path, query, "", nil, out)
}
