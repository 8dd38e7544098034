package dashboard

import (
	"github.com/kiwari-pos/owner-dashboard/internal/enum"
	"github.com/kiwari-pos/owner-dashboard/internal/model"
)

// --- Sequence primitives ---
//
// Every mutation of a view's item sequence funnels through upsert/remove so
// the id-uniqueness invariant cannot be broken by any caller.

// upsert replaces the order in place if an entry with the same id exists
// (position preserved, no visual churn), otherwise prepends it —
// most-recent-first, these are live notifications rather than a stable sort.
// Orders without an id are dropped: the push transport is not
// schema-guaranteed.
func (v *orderView) upsert(o model.Order) {
	if o.ID == "" {
		return
	}
	for i := range v.items {
		if v.items[i].ID == o.ID {
			v.items[i] = o
			return
		}
	}
	v.items = append([]model.Order{o}, v.items...)
}

// insertIfAbsent prepends the order unless an entry with the same id already
// exists. First-write-wins; used for the live queue where a duplicate
// newOrder must not clobber what the owner is looking at.
func (v *orderView) insertIfAbsent(o model.Order) {
	if o.ID == "" || v.contains(o.ID) {
		return
	}
	v.items = append([]model.Order{o}, v.items...)
}

// remove deletes the order with the given id. Removing an absent id is a
// no-op; the push stream is at-least-once, so removal must be idempotent.
func (v *orderView) remove(id string) {
	for i := range v.items {
		if v.items[i].ID == id {
			v.items = append(v.items[:i], v.items[i+1:]...)
			return
		}
	}
}

func (v *orderView) contains(id string) bool {
	for i := range v.items {
		if v.items[i].ID == id {
			return true
		}
	}
	return false
}

// removeBalance deletes a customer from the balance summary list. Idempotent
// like remove.
func (v *balanceView) removeBalance(userID string) {
	for i := range v.items {
		if v.items[i].UserID == userID {
			v.items = append(v.items[:i], v.items[i+1:]...)
			return
		}
	}
}

// --- Reconciler ---

// reconciler is the single authority over view membership. Both input
// channels — push events and pull responses — go through it before state is
// exposed for rendering.
type reconciler struct {
	state *state
}

// applyNewOrder handles a newOrder push event: requested orders enter the
// live queue, anything else is ignored.
func (r *reconciler) applyNewOrder(o model.Order) {
	if o.Status != enum.OrderStatusRequested {
		return
	}
	r.state.orders[enum.ViewLive].insertIfAbsent(o)
}

// applyOrderUpdate handles an orderUpdate push event against the currently
// active view. The order leaves the live queue unconditionally — an order
// that changed state is no longer "new". Only the active view is then
// reconciled; inactive views are refreshed by a pull when the user switches
// to them, so their staleness is intentional eventual consistency.
func (r *reconciler) applyOrderUpdate(active string, o model.Order) {
	if o.ID == "" {
		return
	}

	r.state.orders[enum.ViewLive].remove(o.ID)

	switch active {
	case enum.ViewUnpaid:
		v := r.state.orders[enum.ViewUnpaid]
		if o.PaymentStatus == enum.PaymentStatusUnpaid {
			v.upsert(o)
		} else {
			v.remove(o.ID)
		}
	case enum.ViewPaid:
		v := r.state.orders[enum.ViewPaid]
		if o.PaymentStatus == enum.PaymentStatusPaid {
			v.upsert(o)
		} else {
			v.remove(o.ID)
		}
	case enum.ViewHistory:
		r.state.orders[enum.ViewHistory].upsert(o)
	}
	// live: handled above; balance: order events never touch it.
}
