package remote

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ppiankov/billtrack/internal/model"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := model.DefaultConfig()
	cfg.API.BaseURL = server.URL
	cfg.HTTP.Timeout = 2 * time.Second
	cfg.RateLimiting.RequestsPerSecond = 0
	return NewClient(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestClient_ListBills(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/bills", r.URL.Path)
		_, _ = io.WriteString(w, `[{"id":"a","title":"A","lastUpdated":"2024-01-02"}]`)
	})

	bills, err := c.ListBills(context.Background())
	require.NoError(t, err)
	require.Len(t, bills, 1)
	assert.Equal(t, "A", bills[0].Title)
	require.NotNil(t, bills[0].LastUpdated)
}

func TestClient_ListBills_NonOK(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	})

	_, err := c.ListBills(context.Background())
	require.ErrorIs(t, err, model.ErrTransport)

	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusAccepted, se.StatusCode)
}

func TestClient_ListBills_MalformedBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"oops"`)
	})

	_, err := c.ListBills(context.Background())
	require.ErrorIs(t, err, model.ErrTransport)
}

func TestClient_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	server.Close()

	cfg := model.DefaultConfig()
	cfg.API.BaseURL = server.URL
	c := NewClient(cfg, nil)

	_, err := c.GetBill(context.Background(), "x")
	require.ErrorIs(t, err, model.ErrTransport)
}

func TestClient_GetBill_EscapesID(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/bills/hr%201", r.URL.EscapedPath())
		_, _ = io.WriteString(w, `{"id":"hr 1","title":"T"}`)
	})

	bill, err := c.GetBill(context.Background(), "hr 1")
	require.NoError(t, err)
	assert.Equal(t, "hr 1", bill.ID)
}

func TestClient_GetBill_RejectsNonRecord(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"status":"ok"}`)
	})

	_, err := c.GetBill(context.Background(), "a")
	require.ErrorIs(t, err, model.ErrTransport)
}

func TestClient_Recommend_PostsProfile(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req model.RecommendationRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Ada", req.Name)
		assert.Equal(t, "citizen", req.Occupation)
		assert.Equal(t, []string{"Energy"}, req.Interests)

		_, _ = io.WriteString(w, `[{"id":"s-1","score":0.9,"title":"Grid","bill_number":"1","bill_type":"S","sponsor":"X","congress":118,"policy_area":"Energy","latest_action":"Introduced","summary":"grid"}]`)
	})

	profile := model.UserProfile{Name: "Ada", Interests: []string{"Energy"}}
	recs, err := c.Recommend(context.Background(), profile.RecommendationRequest())
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, 118.0, recs[0].Congress)
}

func TestClient_Mutate_StatusRange(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr bool
		wantNil bool
	}{
		{"ok with body", http.StatusOK, `{"id":"a","isLiked":true}`, false, false},
		{"created with body", http.StatusCreated, `{"id":"a","isLiked":true}`, false, false},
		{"no content", http.StatusNoContent, "", false, true},
		{"ok empty body", http.StatusOK, "", false, true},
		{"ok without record", http.StatusOK, `{"status":"ok"}`, true, true},
		{"ok with other record", http.StatusOK, `{"id":"b","isLiked":true}`, true, true},
		{"bad request", http.StatusBadRequest, "", true, true},
		{"server error", http.StatusInternalServerError, "", true, true},
		{"partial content", http.StatusPartialContent, "", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/bills/like/a", r.URL.Path)
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			})

			bill, err := c.Mutate(context.Background(), ActionLike, "a")
			if tt.wantErr {
				require.ErrorIs(t, err, model.ErrTransport)
				return
			}
			require.NoError(t, err)
			if tt.wantNil {
				assert.Nil(t, bill)
			} else {
				require.NotNil(t, bill)
				assert.True(t, bill.IsLiked)
			}
		})
	}
}

func TestClient_ActionPaths(t *testing.T) {
	seen := make(map[string]bool)
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		seen[r.URL.Path] = true
		w.WriteHeader(http.StatusNoContent)
	})

	for _, a := range []Action{ActionLike, ActionDislike, ActionSubscribe, ActionUnsubscribe} {
		_, err := c.Mutate(context.Background(), a, "x")
		require.NoError(t, err)
	}

	for _, p := range []string{"/bills/like/x", "/bills/dislike/x", "/bills/subscribe/x", "/bills/unsubscribe/x"} {
		assert.True(t, seen[p], p)
	}
}

func TestClient_Friends(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/friends":
			_, _ = io.WriteString(w, `[{"id":"f1","name":"Sam","age":30,"location":"X","interests":[],"friends":[],"subscriptions":[]}]`)
		case "/friends/add/f2":
			_, _ = io.WriteString(w, `{"id":"f2","name":"Kim","age":40,"location":"Y","interests":[],"friends":[],"subscriptions":[]}`)
		case "/friends/remove/f1":
			w.WriteHeader(http.StatusNoContent)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	friends, err := c.FetchFriends(context.Background())
	require.NoError(t, err)
	require.Len(t, friends, 1)

	friend, err := c.AddFriend(context.Background(), "f2")
	require.NoError(t, err)
	assert.Equal(t, "Kim", friend.Name)

	require.NoError(t, c.RemoveFriend(context.Background(), "f1"))
	require.ErrorIs(t, c.RemoveFriend(context.Background(), "nobody"), model.ErrTransport)
}

func TestClient_CancelledContext(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.ListBills(ctx)
	require.ErrorIs(t, err, model.ErrTransport)
	assert.ErrorIs(t, err, context.Canceled)
}
