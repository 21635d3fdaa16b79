// Package apiclient talks to a running committee server. It implements the
// stats store over HTTP so the command line counts views and likes the same
// way the website does.
package apiclient

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
	"strings"
	"time"

	"github.com/wadjakorntonsri/committee-site/pkg/core/domain"
	"github.com/wadjakorntonsri/committee-site/pkg/ports"
)

// Error is a non-2xx answer from the server.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.Status, e.Message)
}

type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: httpClient}
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rd = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		var e struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&e)
		if e.Error == "" {
			e.Error = http.StatusText(resp.StatusCode)
		}
		return &Error{Status: resp.StatusCode, Message: e.Error}
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func statsPath(id string) string {
	return "/api/v1/stats/" + url.PathEscape(id)
}

// Fetch returns nil, nil when the server has no row for id.
func (c *Client) Fetch(ctx context.Context, id string) (*domain.Stats, error) {
	var s domain.Stats
	err := c.do(ctx, http.MethodGet, statsPath(id), nil, &s)
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

type kindRequest struct {
	Kind domain.StatKind `json:"kind"`
}

func (c *Client) Increment(ctx context.Context, id string, kind domain.StatKind) error {
	return c.do(ctx, http.MethodPost, statsPath(id)+"/increment", kindRequest{kind}, nil)
}

func (c *Client) Decrement(ctx context.Context, id string, kind domain.StatKind) error {
	return c.do(ctx, http.MethodPost, statsPath(id)+"/decrement", kindRequest{kind}, nil)
}

// Top lists the most viewed, liked or shared records.
func (c *Client) Top(ctx context.Context, kind domain.StatKind, limit int) ([]domain.Stats, error) {
	q := url.Values{"kind": {string(kind)}, "limit": {strconv.Itoa(limit)}}
	var out []domain.Stats
	err := c.do(ctx, http.MethodGet, "/api/v1/stats/top?"+q.Encode(), nil, &out)
	return out, err
}

// SubmitContact posts a contact form.
func (c *Client) SubmitContact(ctx context.Context, req domain.ContactRequest) error {
	return c.do(ctx, http.MethodPost, "/api/v1/contact", req, nil)
}

var _ ports.StatsStore = (*Client)(nil)
