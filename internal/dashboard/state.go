package dashboard

import (
	"github.com/shopspring/decimal"

	"github.com/kiwari-pos/owner-dashboard/internal/enum"
	"github.com/kiwari-pos/owner-dashboard/internal/model"
)

// orderView is one tab's projection of the order set.
type orderView struct {
	items      []model.Order
	page       int
	totalPages int
	loading    bool
}

// balanceView is the outstanding-balance tab: a paginated, searchable
// summary list of customers with money owed.
type balanceView struct {
	items      []model.CustomerBalance
	page       int
	totalPages int
	loading    bool
	search     string
}

// ledgerState is the per-customer ledger detail, fetched on demand.
type ledgerState struct {
	userID  string
	ledger  model.Ledger
	loading bool
	loaded  bool
}

// state holds all per-view dashboard state. It is exclusively owned by the
// reconciliation loop; the ingestor and loader mutate it only through the
// reconciler's primitives, never directly from other goroutines.
type state struct {
	active  string
	orders  map[string]*orderView
	balance *balanceView
	ledger  *ledgerState
}

func newState() *state {
	return &state{
		active: enum.ViewLive,
		orders: map[string]*orderView{
			enum.ViewLive:    {page: 1},
			enum.ViewPaid:    {page: 1},
			enum.ViewUnpaid:  {page: 1},
			enum.ViewHistory: {page: 1},
		},
		balance: &balanceView{page: 1},
		ledger:  &ledgerState{},
	}
}

// --- Read-only snapshots for the presentation layer ---

// OrderViewSnapshot is a copy of one order tab's state.
type OrderViewSnapshot struct {
	Items      []model.Order
	Page       int
	TotalPages int
	Loading    bool
}

// PaidSummary aggregates the currently loaded page of paid bills.
type PaidSummary struct {
	Count          int
	TotalCollected decimal.Decimal
}

// BalanceViewSnapshot is a copy of the balance tab's state.
type BalanceViewSnapshot struct {
	Items      []model.CustomerBalance
	Page       int
	TotalPages int
	Loading    bool
	Search     string
}

// LedgerSnapshot is a copy of the open customer ledger, if any.
type LedgerSnapshot struct {
	UserID  string
	Ledger  model.Ledger
	Loading bool
	Loaded  bool
}

// Snapshot is a consistent copy of the whole dashboard state.
type Snapshot struct {
	ActiveView  string
	Live        OrderViewSnapshot
	Paid        OrderViewSnapshot
	Unpaid      OrderViewSnapshot
	History     OrderViewSnapshot
	PaidSummary PaidSummary
	Balance     BalanceViewSnapshot
	Ledger      LedgerSnapshot
}

func (v *orderView) snapshot() OrderViewSnapshot {
	items := make([]model.Order, len(v.items))
	copy(items, v.items)
	return OrderViewSnapshot{
		Items:      items,
		Page:       v.page,
		TotalPages: v.totalPages,
		Loading:    v.loading,
	}
}

func (s *state) snapshot() Snapshot {
	balances := make([]model.CustomerBalance, len(s.balance.items))
	copy(balances, s.balance.items)

	entries := make([]model.LedgerEntry, len(s.ledger.ledger.Entries))
	copy(entries, s.ledger.ledger.Entries)

	paid := s.orders[enum.ViewPaid].snapshot()
	summary := PaidSummary{Count: len(paid.Items)}
	for _, o := range paid.Items {
		summary.TotalCollected = summary.TotalCollected.Add(o.Total)
	}

	return Snapshot{
		ActiveView:  s.active,
		Live:        s.orders[enum.ViewLive].snapshot(),
		Paid:        paid,
		Unpaid:      s.orders[enum.ViewUnpaid].snapshot(),
		History:     s.orders[enum.ViewHistory].snapshot(),
		PaidSummary: summary,
		Balance: BalanceViewSnapshot{
			Items:      balances,
			Page:       s.balance.page,
			TotalPages: s.balance.totalPages,
			Loading:    s.balance.loading,
			Search:     s.balance.search,
		},
		Ledger: LedgerSnapshot{
			UserID: s.ledger.userID,
			Ledger: model.Ledger{
				Customer: s.ledger.ledger.Customer,
				Entries:  entries,
				Balance:  s.ledger.ledger.Balance,
			},
			Loading: s.ledger.loading,
			Loaded:  s.ledger.loaded,
		},
	}
}
