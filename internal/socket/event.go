package socket

import "encoding/json"

// Event is one frame on the push channel, in either direction.
type Event struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// newEvent marshals payload into an Event frame.
func newEvent(eventType string, payload any) (Event, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Event{}, err
	}
	return Event{Type: eventType, Payload: raw}, nil
}

type registerRolePayload struct {
	Role string `json:"role"`
}

type acceptOrderPayload struct {
	OrderID string `json:"orderId"`
}

type updatePaymentPayload struct {
	OrderID       string `json:"orderId"`
	PaymentStatus string `json:"paymentStatus"`
}
