package model

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kiwari-pos/owner-dashboard/internal/enum"
)

func TestOrderDecodesBackendPayload(t *testing.T) {
	payload := []byte(`{
		"id": "o1",
		"customer": "Ravi Kumar",
		"phone": "9876543210",
		"items": [
			{"name": "Masala Dosa", "quantity": 2, "price": 125},
			{"name": "Filter Coffee", "quantity": 1, "price": 40.50}
		],
		"total": 290.50,
		"status": "requested",
		"paymentStatus": "unpaid",
		"createdAt": "2025-03-01T12:00:00Z"
	}`)

	var o Order
	require.NoError(t, json.Unmarshal(payload, &o))

	assert.Equal(t, "o1", o.ID)
	assert.Equal(t, enum.OrderStatusRequested, o.Status)
	assert.True(t, o.Total.Equal(decimal.RequireFromString("290.50")))
	require.Len(t, o.Items, 2)
	assert.True(t, o.Items[0].LineTotal().Equal(decimal.NewFromInt(250)))
	assert.True(t, o.Items[1].LineTotal().Equal(decimal.RequireFromString("40.50")))
}

func TestLedgerEntryIsDebit(t *testing.T) {
	debit := LedgerEntry{Type: enum.LedgerEntryOrder, Amount: decimal.NewFromInt(250)}
	credit := LedgerEntry{Type: enum.LedgerEntryPayment, Amount: decimal.NewFromInt(-100)}

	assert.True(t, debit.IsDebit())
	assert.False(t, credit.IsDebit())
}

func TestGroupByPhone(t *testing.T) {
	orders := []Order{
		{ID: "o1", Phone: "111"},
		{ID: "o2", Phone: "222"},
		{ID: "o3", Phone: "111"},
	}

	grouped := GroupByPhone(orders)

	require.Len(t, grouped, 2)
	assert.Equal(t, "o1", grouped["111"][0].ID)
	assert.Equal(t, "o3", grouped["111"][1].ID)
	assert.Len(t, grouped["222"], 1)
}
