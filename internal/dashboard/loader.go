package dashboard

import (
	"context"
	"fmt"

	"github.com/kiwari-pos/owner-dashboard/internal/enum"
	"github.com/kiwari-pos/owner-dashboard/internal/model"
)

// Fetcher is the pull-query surface the dashboard needs. Satisfied by
// *api.Client; narrow interface for testability.
type Fetcher interface {
	ListAllOrders(ctx context.Context, page, limit int) (model.OrderPage, error)
	ListPaidOrders(ctx context.Context, page, limit int) (model.OrderPage, error)
	ListUnpaidOrders(ctx context.Context, page, limit int) (model.OrderPage, error)
	ListBalances(ctx context.Context, page, limit int, search string) (model.BalancePage, error)
	GetLedger(ctx context.Context, userID string) (model.Ledger, error)
	MarkBalancePaid(ctx context.Context, userID string) error
}

// loader issues pull queries for the active view and applies their results.
//
// Each view carries a monotonically increasing request sequence number; a
// response is applied only if its request is still the latest for that view
// (last-request-wins). There is no explicit cancellation of superseded
// requests, only discard-on-arrival.
type loader struct {
	fetcher  Fetcher
	pageSize int
	state    *state
	seq      map[string]uint64
	dispatch func(func())
	notify   Notifier
}

func newLoader(fetcher Fetcher, pageSize int, st *state, dispatch func(func()), notify Notifier) *loader {
	return &loader{
		fetcher:  fetcher,
		pageSize: pageSize,
		state:    st,
		seq:      make(map[string]uint64),
		dispatch: dispatch,
		notify:   notify,
	}
}

// loadActive refreshes the active view. The live queue is push-fed only and
// never pulled.
func (l *loader) loadActive(ctx context.Context) {
	switch l.state.active {
	case enum.ViewPaid, enum.ViewUnpaid, enum.ViewHistory:
		l.loadOrders(ctx, l.state.active)
	case enum.ViewBalance:
		l.loadBalances(ctx)
	}
}

func (l *loader) loadOrders(ctx context.Context, view string) {
	var fetch func(context.Context, int, int) (model.OrderPage, error)
	switch view {
	case enum.ViewPaid:
		fetch = l.fetcher.ListPaidOrders
	case enum.ViewUnpaid:
		fetch = l.fetcher.ListUnpaidOrders
	case enum.ViewHistory:
		fetch = l.fetcher.ListAllOrders
	default:
		return
	}

	v := l.state.orders[view]
	v.loading = true
	l.seq[view]++
	seq := l.seq[view]
	page := v.page

	go func() {
		result, err := fetch(ctx, page, l.pageSize)
		l.dispatch(func() {
			if seq != l.seq[view] {
				// A newer request owns this view; stale response discarded.
				return
			}
			v.loading = false
			if err != nil {
				l.notify(Notification{Level: LevelError, Message: fmt.Sprintf("failed to load %s orders: %v", view, err)})
				return
			}
			v.items = result.Orders
			v.totalPages = result.TotalPages
		})
	}()
}

func (l *loader) loadBalances(ctx context.Context) {
	v := l.state.balance
	v.loading = true
	l.seq[enum.ViewBalance]++
	seq := l.seq[enum.ViewBalance]
	page := v.page
	search := v.search

	go func() {
		result, err := l.fetcher.ListBalances(ctx, page, l.pageSize, search)
		l.dispatch(func() {
			if seq != l.seq[enum.ViewBalance] {
				return
			}
			v.loading = false
			if err != nil {
				l.notify(Notification{Level: LevelError, Message: fmt.Sprintf("failed to load balances: %v", err)})
				return
			}
			v.items = result.Balances
			v.totalPages = result.TotalPages
		})
	}()
}
