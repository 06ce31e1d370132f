// Package remote talks to the bill service. It only speaks the protocol and
// reports failures; deciding what to fall back to is the resolver's job.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/ppiankov/billtrack/internal/model"
	"github.com/ppiankov/billtrack/internal/util"
	"github.com/ppiankov/billtrack/internal/worker"
)

// Action is a per-bill mutation endpoint.
type Action string

const (
	ActionLike        Action = "like"
	ActionDislike     Action = "dislike"
	ActionSubscribe   Action = "subscribe"
	ActionUnsubscribe Action = "unsubscribe"
)

// StatusError is returned for a response outside the accepted status range.
// It matches model.ErrTransport.
type StatusError struct {
	Method     string
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: unexpected status %d %s", e.Method, e.URL, e.StatusCode, http.StatusText(e.StatusCode))
}

// Unwrap classifies every status failure as a transport failure.
func (e *StatusError) Unwrap() error {
	return model.ErrTransport
}

// Client is an HTTP client for the remote bill service. Every error it
// returns matches model.ErrTransport.
type Client struct {
	httpClient *http.Client
	api        model.APIConfig
	userAgent  string
	maxBytes   int64
	limiter    *worker.Limiter
	logger     *slog.Logger
}

// NewClient creates a Client from the API, HTTP and rate limiting settings
// of cfg.
func NewClient(cfg *model.Config, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	maxBytes := cfg.HTTP.MaxBodyBytes
	if maxBytes <= 0 {
		maxBytes = 10_000_000
	}
	return &Client{
		httpClient: &http.Client{
			Timeout:   cfg.HTTP.Timeout,
			Transport: util.NewTransport(cfg.HTTP.HTTPProxy, cfg.HTTP.HTTPSProxy),
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("stopped after 3 redirects")
				}
				return nil
			},
		},
		api:       cfg.API,
		userAgent: cfg.HTTP.UserAgent,
		maxBytes:  maxBytes,
		limiter:   worker.NewLimiter(cfg.RateLimiting.RequestsPerSecond, cfg.RateLimiting.BurstSize),
		logger:    logger,
	}
}

// ListBills fetches the full bill listing. Only 200 is accepted.
func (c *Client) ListBills(ctx context.Context) ([]model.BillRecord, error) {
	status, body, err := c.do(ctx, http.MethodGet, c.endpoint(c.api.Bills, ""), nil)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, &StatusError{Method: http.MethodGet, URL: c.endpoint(c.api.Bills, ""), StatusCode: status}
	}

	var bills []model.BillRecord
	if err := decode(body, &bills); err != nil {
		return nil, fmt.Errorf("list bills: %w", err)
	}
	if bills == nil {
		bills = []model.BillRecord{}
	}
	return bills, nil
}

// GetBill fetches a single bill. Only 200 is accepted.
func (c *Client) GetBill(ctx context.Context, id string) (model.BillRecord, error) {
	u := c.endpoint(c.api.BillDetails, id)
	status, body, err := c.do(ctx, http.MethodGet, u, nil)
	if err != nil {
		return model.BillRecord{}, err
	}
	if status != http.StatusOK {
		return model.BillRecord{}, &StatusError{Method: http.MethodGet, URL: u, StatusCode: status}
	}

	var bill model.BillRecord
	if err := decode(body, &bill); err != nil {
		return model.BillRecord{}, fmt.Errorf("get bill %s: %w", id, err)
	}
	if bill.ID == "" {
		return model.BillRecord{}, fmt.Errorf("get bill %s: %w: malformed response body: no bill id", id, model.ErrTransport)
	}
	return bill, nil
}

// Recommend posts the profile payload and returns the scored results.
func (c *Client) Recommend(ctx context.Context, req model.RecommendationRequest) ([]model.RecommendedBill, error) {
	u := c.endpoint(c.api.Recommendations, "")
	status, body, err := c.do(ctx, http.MethodPost, u, req)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, &StatusError{Method: http.MethodPost, URL: u, StatusCode: status}
	}

	var recs []model.RecommendedBill
	if err := decode(body, &recs); err != nil {
		return nil, fmt.Errorf("recommendations: %w", err)
	}
	return recs, nil
}

// Mutate posts a per-bill action. Statuses 200-204 are accepted. A nil
// record with a nil error means the service accepted the action without
// returning a body; the caller applies the change itself. A body that is
// not the record for id is rejected as malformed.
func (c *Client) Mutate(ctx context.Context, action Action, id string) (*model.BillRecord, error) {
	u := c.endpoint(c.actionPath(action), id)
	status, body, err := c.do(ctx, http.MethodPost, u, nil)
	if err != nil {
		return nil, err
	}
	if status < http.StatusOK || status > http.StatusNoContent {
		return nil, &StatusError{Method: http.MethodPost, URL: u, StatusCode: status}
	}
	if status == http.StatusNoContent || len(bytes.TrimSpace(body)) == 0 {
		return nil, nil
	}

	var bill model.BillRecord
	if err := decode(body, &bill); err != nil {
		return nil, fmt.Errorf("%s %s: %w", action, id, err)
	}
	if bill.ID != id {
		return nil, fmt.Errorf("%s %s: %w: malformed response body: record id %q", action, id, model.ErrTransport, bill.ID)
	}
	return &bill, nil
}

// FetchFriends lists the user's friends. Only 200 is accepted.
func (c *Client) FetchFriends(ctx context.Context) ([]model.UserProfile, error) {
	u := c.endpoint(c.api.Friends, "")
	status, body, err := c.do(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, &StatusError{Method: http.MethodGet, URL: u, StatusCode: status}
	}

	var friends []model.UserProfile
	if err := decode(body, &friends); err != nil {
		return nil, fmt.Errorf("friends: %w", err)
	}
	return friends, nil
}

// AddFriend adds a friend and returns the friend's profile.
func (c *Client) AddFriend(ctx context.Context, id string) (model.UserProfile, error) {
	u := c.endpoint(c.api.FriendAdd, id)
	status, body, err := c.do(ctx, http.MethodPost, u, nil)
	if err != nil {
		return model.UserProfile{}, err
	}
	if status != http.StatusOK {
		return model.UserProfile{}, &StatusError{Method: http.MethodPost, URL: u, StatusCode: status}
	}

	var friend model.UserProfile
	if err := decode(body, &friend); err != nil {
		return model.UserProfile{}, fmt.Errorf("add friend %s: %w", id, err)
	}
	return friend, nil
}

// RemoveFriend removes a friend. Statuses 200-204 are accepted.
func (c *Client) RemoveFriend(ctx context.Context, id string) error {
	u := c.endpoint(c.api.FriendRemove, id)
	status, _, err := c.do(ctx, http.MethodPost, u, nil)
	if err != nil {
		return err
	}
	if status < http.StatusOK || status > http.StatusNoContent {
		return &StatusError{Method: http.MethodPost, URL: u, StatusCode: status}
	}
	return nil
}

func (c *Client) actionPath(action Action) string {
	switch action {
	case ActionLike:
		return c.api.Like
	case ActionDislike:
		return c.api.Dislike
	case ActionSubscribe:
		return c.api.Subscribe
	case ActionUnsubscribe:
		return c.api.Unsubscribe
	default:
		return "/bills/" + string(action)
	}
}

// endpoint joins the base URL, a path and an optional escaped id segment.
func (c *Client) endpoint(path, id string) string {
	u := strings.TrimRight(c.api.BaseURL, "/") + "/" + strings.Trim(path, "/")
	if id != "" {
		u += "/" + url.PathEscape(id)
	}
	return u
}

func (c *Client) do(ctx context.Context, method, rawURL string, payload any) (int, []byte, error) {
	if err := c.limiter.Wait(ctx, rawURL); err != nil {
		return 0, nil, fmt.Errorf("%w: %w", model.ErrTransport, err)
	}

	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return 0, nil, fmt.Errorf("%w: encode request: %v", model.ErrTransport, err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, reqBody)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: create request: %v", model.ErrTransport, err)
	}
	req.Header.Set("Accept", "application/json")
	if method == http.MethodPost {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: %s %s: %w", model.ErrTransport, method, rawURL, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBytes))
	if err != nil {
		return 0, nil, fmt.Errorf("%w: read body: %v", model.ErrTransport, err)
	}

	c.logger.Debug("remote call", "method", method, "url", rawURL, "status", resp.StatusCode, "bytes", len(body))
	return resp.StatusCode, body, nil
}

func decode(body []byte, v any) error {
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("%w: malformed response body: %v", model.ErrTransport, err)
	}
	return nil
}
