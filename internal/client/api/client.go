// Package api is the HTTP client for the SmartBrain JSON API.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/smartbrain/internal/netx"
)

var (
	ErrUnavailable = errors.New("server unavailable")
	ErrUnexpected  = errors.New("unexpected server response")
)

// Error is a non-2xx answer from the API. Message is the JSON string body the
// server sent, e.g. "wrong credentials".
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d: %s", e.StatusCode, e.Message)
}

// Profile mirrors the profile record returned by the server.
type Profile struct {
	ID      int64     `json:"id"`
	Name    string    `json:"name"`
	Email   string    `json:"email"`
	Entries int64     `json:"entries"`
	Joined  time.Time `json:"joined"`
}

type Client struct {
	baseURL string
	timeout time.Duration
	http    *http.Client
}

func NewClient(baseURL string, timeout time.Duration, hc *http.Client) *Client {
	if hc == nil {
		hc = &http.Client{}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: timeout,
		http:    hc,
	}
}

// Status returns the plaintext status line served at "/".
func (c *Client) Status(ctx context.Context) (string, error) {
	resp, err := c.do(ctx, http.MethodGet, "/", nil)
	if err != nil {
		return "", err
	}
	return string(resp.Body), nil
}

func (c *Client) Register(ctx context.Context, email, name, password string) (*Profile, error) {
	body := map[string]string{"email": email, "name": name, "password": password}
	return c.profile(ctx, http.MethodPost, "/register", body)
}

func (c *Client) SignIn(ctx context.Context, email, password string) (*Profile, error) {
	body := map[string]string{"email": email, "password": password}
	return c.profile(ctx, http.MethodPost, "/signin", body)
}

func (c *Client) Profile(ctx context.Context, id int64) (*Profile, error) {
	return c.profile(ctx, http.MethodGet, "/profile/"+strconv.FormatInt(id, 10), nil)
}

// IncrementEntries bumps the entry counter of profile id and returns the new
// count.
func (c *Client) IncrementEntries(ctx context.Context, id int64) (int64, error) {
	resp, err := c.do(ctx, http.MethodPut, "/image", map[string]int64{"id": id})
	if err != nil {
		return 0, err
	}

	var n int64
	if err := json.Unmarshal(resp.Body, &n); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrUnexpected, err)
	}
	return n, nil
}

// Detect asks the server to run face detection on imageURL and returns the
// raw model response.
func (c *Client) Detect(ctx context.Context, imageURL string) (json.RawMessage, error) {
	resp, err := c.do(ctx, http.MethodPost, "/imageurl", map[string]string{"input": imageURL})
	if err != nil {
		return nil, err
	}
	return json.RawMessage(resp.Body), nil
}

func (c *Client) profile(ctx context.Context, method, path string, body any) (*Profile, error) {
	resp, err := c.do(ctx, method, path, body)
	if err != nil {
		return nil, err
	}

	var p Profile
	if err := json.Unmarshal(resp.Body, &p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnexpected, err)
	}
	return &p, nil
}

func (c *Client) do(ctx context.Context, method, path string, body any) (*netx.Response, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	resp, err := netx.DoJSON(ctx, c.http, method, c.baseURL+path, nil, body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if !resp.OK() {
		return nil, &Error{StatusCode: resp.StatusCode, Message: message(resp.Body)}
	}
	return resp, nil
}

// message decodes a JSON string body, falling back to the raw text.
func message(b []byte) string {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		return s
	}
	return strings.TrimSpace(string(b))
}
