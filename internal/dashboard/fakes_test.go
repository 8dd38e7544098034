package dashboard

import (
	"context"
	"sync"

	"github.com/kiwari-pos/owner-dashboard/internal/model"
)

// fakeFetcher implements Fetcher with configurable behavior, in the style of
// the per-method function fields used across the codebase's mocks. Unset
// methods return empty pages.
type fakeFetcher struct {
	listAllFn         func(ctx context.Context, page, limit int) (model.OrderPage, error)
	listPaidFn        func(ctx context.Context, page, limit int) (model.OrderPage, error)
	listUnpaidFn      func(ctx context.Context, page, limit int) (model.OrderPage, error)
	listBalancesFn    func(ctx context.Context, page, limit int, search string) (model.BalancePage, error)
	getLedgerFn       func(ctx context.Context, userID string) (model.Ledger, error)
	markBalancePaidFn func(ctx context.Context, userID string) error
}

func (f *fakeFetcher) ListAllOrders(ctx context.Context, page, limit int) (model.OrderPage, error) {
	if f.listAllFn == nil {
		return model.OrderPage{}, nil
	}
	return f.listAllFn(ctx, page, limit)
}

func (f *fakeFetcher) ListPaidOrders(ctx context.Context, page, limit int) (model.OrderPage, error) {
	if f.listPaidFn == nil {
		return model.OrderPage{}, nil
	}
	return f.listPaidFn(ctx, page, limit)
}

func (f *fakeFetcher) ListUnpaidOrders(ctx context.Context, page, limit int) (model.OrderPage, error) {
	if f.listUnpaidFn == nil {
		return model.OrderPage{}, nil
	}
	return f.listUnpaidFn(ctx, page, limit)
}

func (f *fakeFetcher) ListBalances(ctx context.Context, page, limit int, search string) (model.BalancePage, error) {
	if f.listBalancesFn == nil {
		return model.BalancePage{}, nil
	}
	return f.listBalancesFn(ctx, page, limit, search)
}

func (f *fakeFetcher) GetLedger(ctx context.Context, userID string) (model.Ledger, error) {
	if f.getLedgerFn == nil {
		return model.Ledger{}, nil
	}
	return f.getLedgerFn(ctx, userID)
}

func (f *fakeFetcher) MarkBalancePaid(ctx context.Context, userID string) error {
	if f.markBalancePaidFn == nil {
		return nil
	}
	return f.markBalancePaidFn(ctx, userID)
}

// fakeEmitter records push-channel emits.
type fakeEmitter struct {
	mu       sync.Mutex
	accepted []string
	payments []string // "orderID:status"
	err      error
}

func (f *fakeEmitter) AcceptOrder(orderID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.accepted = append(f.accepted, orderID)
	return nil
}

func (f *fakeEmitter) UpdatePaymentStatus(orderID, paymentStatus string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.payments = append(f.payments, orderID+":"+paymentStatus)
	return nil
}

func (f *fakeEmitter) acceptedOrders() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.accepted...)
}

func (f *fakeEmitter) paymentUpdates() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.payments...)
}

// notificationLog collects notifications safely across goroutines.
type notificationLog struct {
	mu    sync.Mutex
	items []Notification
}

func (n *notificationLog) record(notif Notification) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.items = append(n.items, notif)
}

func (n *notificationLog) all() []Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]Notification(nil), n.items...)
}

func (n *notificationLog) countLevel(level string) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	count := 0
	for _, notif := range n.items {
		if notif.Level == level {
			count++
		}
	}
	return count
}
