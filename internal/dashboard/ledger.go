package dashboard

import (
	"context"
	"fmt"

	"github.com/kiwari-pos/owner-dashboard/internal/model"
)

// projector consumes the running-balance feed: the per-customer transaction
// ledger and the mark-paid settlement action. It never recomputes balances —
// balanceAfter and the outstanding total come from the backend aggregation
// and are rendered as-is.
type projector struct {
	fetcher  Fetcher
	state    *state
	seq      uint64
	dispatch func(func())
	notify   Notifier
}

// openLedger fetches the ordered ledger for one customer into the ledger
// detail state. Rapid re-opens follow the same last-request-wins rule as the
// view loader.
func (p *projector) openLedger(ctx context.Context, userID string) {
	st := p.state.ledger
	st.userID = userID
	st.loading = true
	st.loaded = false
	st.ledger = model.Ledger{}

	p.seq++
	seq := p.seq

	go func() {
		ledger, err := p.fetcher.GetLedger(ctx, userID)
		p.dispatch(func() {
			if seq != p.seq {
				return
			}
			st.loading = false
			if err != nil {
				p.notify(Notification{Level: LevelError, Message: fmt.Sprintf("failed to load ledger: %v", err)})
				return
			}
			st.ledger = ledger
			st.loaded = true
		})
	}()
}

// markPaid settles a customer's outstanding balance. The customer is removed
// from the balance summary list only after the backend confirms; on failure
// local state is untouched and the caller is notified. The ledger detail is
// not mutated either way.
func (p *projector) markPaid(ctx context.Context, userID string) {
	go func() {
		err := p.fetcher.MarkBalancePaid(ctx, userID)
		p.dispatch(func() {
			if err != nil {
				p.notify(Notification{Level: LevelError, Message: fmt.Sprintf("failed to mark balance paid: %v", err)})
				return
			}
			p.state.balance.removeBalance(userID)
			p.notify(Notification{Level: LevelSuccess, Message: "balance settled"})
		})
	}()
}
