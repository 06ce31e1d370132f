package resolver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ppiankov/billtrack/internal/fixture"
	"github.com/ppiankov/billtrack/internal/model"
	"github.com/ppiankov/billtrack/internal/remote"
	"github.com/ppiankov/billtrack/internal/store"
)

// Networked tries the remote service first. When a call fails it degrades to
// the same local data the offline strategy uses, so the caller sees an error
// only when neither source can answer.
type Networked struct {
	local
	client Remote
}

// NewNetworked creates a networked resolver.
func NewNetworked(client Remote, records *store.RecordStore, fixtures *fixture.Source, logger *slog.Logger) *Networked {
	return &Networked{local: newLocal(records, fixtures, logger), client: client}
}

// FetchBills fetches the listing and persists it before returning. On failure
// it answers from the cache, then the fixture.
func (n *Networked) FetchBills(ctx context.Context) ([]model.BillRecord, error) {
	bills, err := n.client.ListBills(ctx)
	if err != nil {
		n.logger.Warn("remote listing failed, using local bills", "err", err)
		return n.fallbackBills(ctx, err)
	}

	if err := n.records.Save(bills); err != nil {
		n.logger.Warn("could not persist remote listing", "err", err)
	}
	return bills, nil
}

func (n *Networked) fallbackBills(ctx context.Context, cause error) ([]model.BillRecord, error) {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, cause
	}
	bills, err := n.bills()
	if err != nil {
		return nil, fmt.Errorf("%w (remote: %w)", err, cause)
	}
	return bills, nil
}

// FetchBillDetails fetches one bill. The result is not persisted. On failure
// it searches the cache, then the fixture.
func (n *Networked) FetchBillDetails(ctx context.Context, id string) (model.BillRecord, error) {
	bill, err := n.client.GetBill(ctx, id)
	if err == nil {
		return bill, nil
	}
	n.logger.Warn("remote detail fetch failed, searching local bills", "id", id, "err", err)
	if ctx.Err() != nil {
		return model.BillRecord{}, err
	}

	bill, lerr := n.find(id)
	if lerr != nil {
		return model.BillRecord{}, fmt.Errorf("%w (remote: %w)", lerr, err)
	}
	return bill, nil
}

// FetchRecommendedBills asks the service for recommendations and merges them
// into the cache, keeping the user's flags on bills already known. On
// failure it filters the bill listing by the profile's interests.
func (n *Networked) FetchRecommendedBills(ctx context.Context, profile model.UserProfile) ([]model.BillRecord, error) {
	recs, err := n.client.Recommend(ctx, profile.RecommendationRequest())
	if err != nil {
		n.logger.Warn("remote recommendations failed, filtering locally", "err", err)
		bills, ferr := n.FetchBills(ctx)
		if ferr != nil {
			return nil, ferr
		}
		return FilterByInterests(bills, profile.Interests), nil
	}

	bills := make([]model.BillRecord, 0, len(recs))
	for _, r := range recs {
		bills = append(bills, r.ToBill())
	}

	merged, err := n.upsert(bills, keepLocalState)
	if err != nil {
		n.logger.Warn("could not merge recommendations into cache", "err", err)
	}
	return merged, nil
}

func (n *Networked) LikeBill(ctx context.Context, id string) (model.BillRecord, error) {
	return n.apply(ctx, remote.ActionLike, id, (*model.BillRecord).Like)
}

func (n *Networked) DislikeBill(ctx context.Context, id string) (model.BillRecord, error) {
	return n.apply(ctx, remote.ActionDislike, id, (*model.BillRecord).Dislike)
}

func (n *Networked) SubscribeToBill(ctx context.Context, id string) (model.BillRecord, error) {
	return n.apply(ctx, remote.ActionSubscribe, id, subscribe)
}

func (n *Networked) UnsubscribeFromBill(ctx context.Context, id string) (model.BillRecord, error) {
	return n.apply(ctx, remote.ActionUnsubscribe, id, unsubscribe)
}

// apply posts the action. A returned body is the authoritative record and
// replaces the cached one. An accepted action without a body, or a failed
// call, is applied to the local record instead.
func (n *Networked) apply(ctx context.Context, action remote.Action, id string, fn func(*model.BillRecord)) (model.BillRecord, error) {
	bill, err := n.client.Mutate(ctx, action, id)
	if err != nil {
		if ctx.Err() != nil {
			return model.BillRecord{}, err
		}
		n.logger.Warn("remote mutation failed, applying locally", "action", action, "id", id, "err", err)
		updated, lerr := n.mutate(id, fn)
		if lerr != nil {
			if errors.Is(lerr, model.ErrNotFound) {
				return model.BillRecord{}, fmt.Errorf("%w (remote: %w)", lerr, err)
			}
			return model.BillRecord{}, lerr
		}
		return updated, nil
	}

	if bill == nil {
		return n.mutate(id, fn)
	}

	if _, err := n.upsert([]model.BillRecord{*bill}, replace); err != nil {
		n.logger.Warn("could not persist service record", "action", action, "id", id, "err", err)
	}
	return *bill, nil
}
