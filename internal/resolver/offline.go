package resolver

import (
	"context"
	"log/slog"

	"github.com/ppiankov/billtrack/internal/fixture"
	"github.com/ppiankov/billtrack/internal/model"
	"github.com/ppiankov/billtrack/internal/store"
)

// Offline never touches the network. Reads come from the cache with the
// fixture behind it; mutations are applied and persisted locally.
type Offline struct {
	local
}

// NewOffline creates an offline resolver. A nil fixtures uses the embedded
// assets.
func NewOffline(records *store.RecordStore, fixtures *fixture.Source, logger *slog.Logger) *Offline {
	return &Offline{local: newLocal(records, fixtures, logger)}
}

// FetchBills returns the cached bills, or the fixture when the cache is
// empty. A fixture read is written back to the cache.
func (o *Offline) FetchBills(ctx context.Context) ([]model.BillRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return o.bills()
}

// FetchBillDetails resolves the id via the cache, then the fixture.
func (o *Offline) FetchBillDetails(ctx context.Context, id string) (model.BillRecord, error) {
	if err := ctx.Err(); err != nil {
		return model.BillRecord{}, err
	}
	return o.find(id)
}

// FetchRecommendedBills filters the local bill set by the profile's interests.
func (o *Offline) FetchRecommendedBills(ctx context.Context, profile model.UserProfile) ([]model.BillRecord, error) {
	bills, err := o.FetchBills(ctx)
	if err != nil {
		return nil, err
	}
	return FilterByInterests(bills, profile.Interests), nil
}

func (o *Offline) LikeBill(ctx context.Context, id string) (model.BillRecord, error) {
	return o.apply(ctx, id, (*model.BillRecord).Like)
}

func (o *Offline) DislikeBill(ctx context.Context, id string) (model.BillRecord, error) {
	return o.apply(ctx, id, (*model.BillRecord).Dislike)
}

func (o *Offline) SubscribeToBill(ctx context.Context, id string) (model.BillRecord, error) {
	return o.apply(ctx, id, subscribe)
}

func (o *Offline) UnsubscribeFromBill(ctx context.Context, id string) (model.BillRecord, error) {
	return o.apply(ctx, id, unsubscribe)
}

func (o *Offline) apply(ctx context.Context, id string, fn func(*model.BillRecord)) (model.BillRecord, error) {
	if err := ctx.Err(); err != nil {
		return model.BillRecord{}, err
	}
	bill, err := o.mutate(id, fn)
	if err != nil {
		return model.BillRecord{}, err
	}
	o.logger.Debug("bill updated", "id", id, "liked", bill.IsLiked, "disliked", bill.IsDisliked, "subscribed", bill.IsSubscribed)
	return bill, nil
}

func subscribe(b *model.BillRecord)   { b.IsSubscribed = true }
func unsubscribe(b *model.BillRecord) { b.IsSubscribed = false }
