package resolver

import (
	"context"

	"github.com/ppiankov/billtrack/internal/model"
	"github.com/ppiankov/billtrack/internal/worker"
)

// RefreshSubscribed re-fetches the details of every subscribed bill with at
// most workers fetches in flight. A failed id is reported in its outcome and
// does not stop the rest. The error is non-nil only when the bill listing
// itself cannot be resolved.
func RefreshSubscribed(ctx context.Context, r Resolver, workers int) ([]worker.Outcome[model.BillRecord], error) {
	bills, err := r.FetchBills(ctx)
	if err != nil {
		return nil, err
	}

	var ids []string
	for _, b := range bills {
		if b.IsSubscribed {
			ids = append(ids, b.ID)
		}
	}
	return worker.FetchAll(ctx, workers, ids, r.FetchBillDetails), nil
}
