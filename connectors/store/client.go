package store

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

	"github.com/google/uuid"

	"github.com/kilianp07/forcecharge/core/model"
)

// ErrNoSettings indicates that no planning settings are configured in
// the backend. The planning run must abort without crashing the loop.
var ErrNoSettings = errors.New("no settings configured")

// Client talks to the REST backend holding settings, price points,
// force-charge ranges and notification messages.
type Client struct {
	baseURL  string
	token    string
	pageSize int
	http     *http.Client
}

// New creates a Client from the configuration.
func New(cfg Config) *Client {
	cfg.SetDefaults()
	return &Client{
		baseURL:  strings.TrimSuffix(cfg.BaseURL, "/"),
		token:    cfg.Token,
		pageSize: cfg.PageSize,
		http:     &http.Client{Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second},
	}
}

// GetSettings fetches the planning settings. It returns ErrNoSettings
// when none are configured.
func (c *Client) GetSettings(ctx context.Context) (model.Settings, error) {
	var settings model.Settings
	err := c.get(ctx, "/api/settings", nil, &settings)
	if isNotFound(err) {
		return model.Settings{}, ErrNoSettings
	}
	if err != nil {
		return model.Settings{}, err
	}
	return settings, nil
}

// LatestForceChargeRange returns the force-charge range with the most
// recent end, or nil when none exists.
func (c *Client) LatestForceChargeRange(ctx context.Context) (*model.ForceChargeRange, error) {
	var r model.ForceChargeRange
	err := c.get(ctx, "/api/ranges/latest", nil, &r)
	if isNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

type pricePage struct {
	Items      []model.PricePoint `json:"items"`
	Page       int                `json:"page"`
	TotalPages int                `json:"totalPages"`
}

// QueryPrices fetches all price points starting within [from, to],
// following pagination. The backend returns pages in ascending start
// order; the merged series is validated to be ascending with unique
// start times.
func (c *Client) QueryPrices(ctx context.Context, from, to time.Time) ([]model.PricePoint, error) {
	var points []model.PricePoint
	for page := 1; ; page++ {
		q := url.Values{}
		q.Set("from", from.Format(time.RFC3339))
		q.Set("to", to.Format(time.RFC3339))
		q.Set("sort", "startsAt")
		q.Set("page", strconv.Itoa(page))
		q.Set("perPage", strconv.Itoa(c.pageSize))
		var pp pricePage
		if err := c.get(ctx, "/api/prices", q, &pp); err != nil {
			return nil, err
		}
		points = append(points, pp.Items...)
		if page >= pp.TotalPages {
			break
		}
	}
	for i := 1; i < len(points); i++ {
		if !points[i].StartsAt.After(points[i-1].StartsAt) {
			return nil, fmt.Errorf("price series not strictly ascending at %s",
				points[i].StartsAt.Format(time.RFC3339))
		}
	}
	return points, nil
}

// CreateForceChargeRange stores a new range and returns it with the
// backend-assigned identifier.
func (c *Client) CreateForceChargeRange(ctx context.Context, r model.ForceChargeRange) (model.ForceChargeRange, error) {
	var stored model.ForceChargeRange
	if err := c.post(ctx, "/api/ranges", r, &stored); err != nil {
		return model.ForceChargeRange{}, err
	}
	return stored, nil
}

// CreateMessage stores a notification message. The identifier is
// generated client-side so the subsequent push call cannot race a
// missing response body.
func (c *Client) CreateMessage(ctx context.Context, title, body string) (model.Message, error) {
	msg := model.Message{ID: uuid.NewString(), Title: title, Body: body}
	var stored model.Message
	if err := c.post(ctx, "/api/messages", msg, &stored); err != nil {
		return model.Message{}, err
	}
	return stored, nil
}

// SendPush triggers push delivery of a stored message.
func (c *Client) SendPush(ctx context.Context, messageID string) error {
	return c.post(ctx, "/api/messages/"+messageID+"/send", nil, nil)
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	return c.do(req, out)
}

func (c *Client) post(ctx context.Context, path string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to encode payload: %w", err)
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return statusError(resp.StatusCode)
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("unexpected status code: %d, body: %s", resp.StatusCode, b)
	}
	if out == nil {
		return nil
	}
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	if len(b) == 0 {
		return statusError(http.StatusNotFound)
	}
	if err := json.Unmarshal(b, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

type statusError int

func (e statusError) Error() string { return fmt.Sprintf("status %d", int(e)) }

func isNotFound(err error) bool {
	var se statusError
	return errors.As(err, &se) && int(se) == http.StatusNotFound
}
