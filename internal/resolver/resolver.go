// Package resolver answers every bill read and write for the rest of the
// application. Two strategies exist: Offline serves the on-device cache and
// the bundled fixture only, Networked tries the remote service first and
// falls back to local data when it is unreachable.
package resolver

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ppiankov/billtrack/internal/fixture"
	"github.com/ppiankov/billtrack/internal/model"
	"github.com/ppiankov/billtrack/internal/remote"
	"github.com/ppiankov/billtrack/internal/store"
)

// DefaultRecommendationCount is how many bills the local interest filter
// returns when it cannot narrow the set.
const DefaultRecommendationCount = 5

// Resolver is the single entry point for bill data.
type Resolver interface {
	// FetchBills returns the current bill set.
	FetchBills(ctx context.Context) ([]model.BillRecord, error)
	// FetchBillDetails returns the bill with the given id.
	FetchBillDetails(ctx context.Context, id string) (model.BillRecord, error)
	// FetchRecommendedBills returns bills relevant to the profile.
	FetchRecommendedBills(ctx context.Context, profile model.UserProfile) ([]model.BillRecord, error)

	LikeBill(ctx context.Context, id string) (model.BillRecord, error)
	DislikeBill(ctx context.Context, id string) (model.BillRecord, error)
	SubscribeToBill(ctx context.Context, id string) (model.BillRecord, error)
	UnsubscribeFromBill(ctx context.Context, id string) (model.BillRecord, error)
}

// Remote is the subset of the bill service the networked strategy uses.
// *remote.Client implements it.
type Remote interface {
	ListBills(ctx context.Context) ([]model.BillRecord, error)
	GetBill(ctx context.Context, id string) (model.BillRecord, error)
	Recommend(ctx context.Context, req model.RecommendationRequest) ([]model.RecommendedBill, error)
	Mutate(ctx context.Context, action remote.Action, id string) (*model.BillRecord, error)
}

// New selects the strategy for mode. The choice is fixed for the lifetime of
// the returned Resolver. client is required only for ModeNetworked.
func New(mode model.Mode, records *store.RecordStore, fixtures *fixture.Source, client Remote, logger *slog.Logger) (Resolver, error) {
	switch mode {
	case model.ModeOffline, "":
		return NewOffline(records, fixtures, logger), nil
	case model.ModeNetworked:
		if client == nil {
			return nil, fmt.Errorf("%w: networked mode needs a remote client", model.ErrConfiguration)
		}
		return NewNetworked(client, records, fixtures, logger), nil
	default:
		return nil, fmt.Errorf("%w: unknown mode %q", model.ErrConfiguration, mode)
	}
}

// FilterByInterests narrows candidates to those whose title or summary
// mentions one of the interests. With no interests, or when nothing matches,
// the first DefaultRecommendationCount candidates are returned instead.
func FilterByInterests(candidates []model.BillRecord, interests []string) []model.BillRecord {
	if len(interests) > 0 {
		var matched []model.BillRecord
		for _, b := range candidates {
			if b.MatchesAny(interests) {
				matched = append(matched, b)
			}
		}
		if len(matched) > 0 {
			return matched
		}
	}

	n := min(len(candidates), DefaultRecommendationCount)
	out := make([]model.BillRecord, n)
	copy(out, candidates[:n])
	return out
}
