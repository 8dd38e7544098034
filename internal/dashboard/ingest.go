package dashboard

import (
	"encoding/json"
	"log"

	"github.com/kiwari-pos/owner-dashboard/internal/enum"
	"github.com/kiwari-pos/owner-dashboard/internal/model"
	"github.com/kiwari-pos/owner-dashboard/internal/socket"
)

// ingestor normalizes push frames into reconciler mutations. Handlers are
// idempotent: the stream is best-effort and at-least-once, so duplicates and
// malformed payloads are absorbed, never raised.
type ingestor struct {
	rec *reconciler
}

func (g *ingestor) handle(active string, ev socket.Event) {
	switch ev.Type {
	case enum.EventNewOrder:
		o, ok := g.decode(ev)
		if !ok {
			return
		}
		g.rec.applyNewOrder(o)

	case enum.EventOrderUpdate:
		o, ok := g.decode(ev)
		if !ok {
			return
		}
		g.rec.applyOrderUpdate(active, o)
	}
	// Unknown event types are ignored; the channel may carry events for
	// other client classes.
}

func (g *ingestor) decode(ev socket.Event) (model.Order, bool) {
	var o model.Order
	if err := json.Unmarshal(ev.Payload, &o); err != nil {
		log.Printf("ERROR: decode %s payload: %v", ev.Type, err)
		return model.Order{}, false
	}
	if o.ID == "" {
		// Missing identity: dropped silently per the push contract.
		return model.Order{}, false
	}
	return o, true
}
