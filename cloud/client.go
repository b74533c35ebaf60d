package cloud

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// ErrConflict is returned for an HTTP 409 response. Duplicate
// registration is the one remote failure callers must not paper over
// with a local fallback.
var ErrConflict = errors.New("cloud: resource already exists")

// Client talks to the remote academy backend: a single endpoint
// accepting POST {"action": ..., ...} bodies. A client with an empty
// URL is valid and answers every call with (false, nil), which is the
// local-only mode.
type Client struct {
	baseURL string
	http    *resty.Client
}

// NewClient builds a client for the given endpoint. An empty or
// placeholder URL disables remote calls entirely.
func NewClient(baseURL string, timeout time.Duration) *Client {
	c := &Client{baseURL: strings.TrimSpace(baseURL)}
	c.http = resty.New().
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json")
	return c
}

// Enabled reports whether a remote endpoint is configured.
func (c *Client) Enabled() bool {
	return c != nil && c.baseURL != ""
}

// Call posts {action, ...payload} to the remote backend. It returns
// (true, nil) and fills out on a 2xx response, (false, ErrConflict)
// on 409, and (false, nil) for every other failure: no endpoint,
// network error, timeout, or non-2xx status. Callers always need a
// local fallback path for the (false, nil) case.
func (c *Client) Call(action string, payload map[string]interface{}, out interface{}) (bool, error) {
	if !c.Enabled() {
		return false, nil
	}

	body := map[string]interface{}{"action": action}
	for key, value := range payload {
		body[key] = value
	}

	resp, err := c.http.R().SetBody(body).Post(c.baseURL)
	if err != nil {
		log.Printf("Warning: remote %s failed: %v", action, err)
		return false, nil
	}

	status := resp.StatusCode()
	if status == http.StatusConflict {
		return false, ErrConflict
	}
	if status < 200 || status > 299 {
		log.Printf("Warning: remote %s returned status %d", action, status)
		return false, nil
	}

	if out != nil {
		if err := json.Unmarshal(resp.Body(), out); err != nil {
			log.Printf("Warning: remote %s returned unreadable body: %v", action, err)
			return false, nil
		}
	}
	return true, nil
}
