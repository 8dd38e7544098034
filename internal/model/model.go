package model

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/kiwari-pos/owner-dashboard/internal/enum"
)

// Order is the dashboard's projection of a backend-owned order. The backend
// is the source of truth; this type is only read and replaced wholesale.
type Order struct {
	ID            string          `json:"id"`
	Customer      string          `json:"customer"`
	Phone         string          `json:"phone"`
	Items         []OrderItem     `json:"items"`
	Total         decimal.Decimal `json:"total"`
	Status        string          `json:"status"`
	PaymentStatus string          `json:"paymentStatus"`
	CreatedAt     time.Time       `json:"createdAt"`
}

type OrderItem struct {
	Name     string          `json:"name"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

// LineTotal returns quantity × unit price.
func (i OrderItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// CustomerBalance is one row of the backend's outstanding-balance
// aggregation. TotalDue is computed upstream and never recomputed here.
type CustomerBalance struct {
	UserID   string          `json:"userId"`
	Name     string          `json:"name"`
	Phone    string          `json:"phone"`
	TotalDue decimal.Decimal `json:"totalDue"`
}

// LedgerEntry is one dated transaction in a customer's ledger. Amount is
// signed: positive for order debits, negative for payment credits.
// BalanceAfter is the backend's running balance after this entry and is
// rendered as-is.
type LedgerEntry struct {
	Type         string          `json:"type"`
	Amount       decimal.Decimal `json:"amount"`
	Date         time.Time       `json:"date"`
	BalanceAfter decimal.Decimal `json:"balanceAfter"`
}

// IsDebit reports whether the entry adds to the customer's outstanding
// balance.
func (e LedgerEntry) IsDebit() bool {
	return e.Type == enum.LedgerEntryOrder
}

// Customer is the header of a ledger detail response.
type Customer struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// OrderPage is one pull-query page of orders.
type OrderPage struct {
	Orders     []Order
	TotalPages int
}

// BalancePage is one pull-query page of customer balances.
type BalancePage struct {
	Balances   []CustomerBalance
	TotalPages int
}

// Ledger is the full ledger detail for one customer.
type Ledger struct {
	Customer Customer
	Entries  []LedgerEntry
	Balance  decimal.Decimal
}

// GroupByPhone buckets orders by customer phone number, preserving order
// within each bucket.
func GroupByPhone(orders []Order) map[string][]Order {
	grouped := make(map[string][]Order)
	for _, o := range orders {
		grouped[o.Phone] = append(grouped[o.Phone], o)
	}
	return grouped
}
