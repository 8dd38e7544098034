package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBackend(t *testing.T, route func(r chi.Router)) *Client {
	t.Helper()
	r := chi.NewRouter()
	route(r)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL)
}

func TestListOrdersPaginated(t *testing.T) {
	var gotPage, gotLimit string
	client := newTestBackend(t, func(r chi.Router) {
		r.Get("/orders/unpaid", func(w http.ResponseWriter, req *http.Request) {
			gotPage = req.URL.Query().Get("page")
			gotLimit = req.URL.Query().Get("limit")
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{
				"success": true,
				"orders": [
					{"id":"o1","customer":"Ravi","phone":"9876543210","total":250,"status":"accepted","paymentStatus":"unpaid",
					 "items":[{"name":"Masala Dosa","quantity":2,"price":125}]}
				],
				"pagination": {"totalPages": 4}
			}`))
		})
	})

	page, err := client.ListUnpaidOrders(context.Background(), 2, 10)
	require.NoError(t, err)

	assert.Equal(t, "2", gotPage)
	assert.Equal(t, "10", gotLimit)
	assert.Equal(t, 4, page.TotalPages)
	require.Len(t, page.Orders, 1)

	o := page.Orders[0]
	assert.Equal(t, "o1", o.ID)
	assert.True(t, o.Total.Equal(decimal.NewFromInt(250)))
	require.Len(t, o.Items, 1)
	assert.Equal(t, 2, o.Items[0].Quantity)
	assert.True(t, o.Items[0].LineTotal().Equal(decimal.NewFromInt(250)))
}

func TestListOrdersBackendRejection(t *testing.T) {
	client := newTestBackend(t, func(r chi.Router) {
		r.Get("/orders/all", func(w http.ResponseWriter, req *http.Request) {
			w.Write([]byte(`{"success": false, "error": "database unavailable"}`))
		})
	})

	_, err := client.ListAllOrders(context.Background(), 1, 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database unavailable")
}

func TestListOrdersServerError(t *testing.T) {
	client := newTestBackend(t, func(r chi.Router) {
		r.Get("/orders/paid", func(w http.ResponseWriter, req *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		})
	})

	_, err := client.ListPaidOrders(context.Background(), 1, 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}

func TestListBalancesSearch(t *testing.T) {
	var gotSearch string
	client := newTestBackend(t, func(r chi.Router) {
		r.Get("/orders/balances", func(w http.ResponseWriter, req *http.Request) {
			gotSearch = req.URL.Query().Get("search")
			w.Write([]byte(`{
				"success": true,
				"balances": [{"userId":"u1","name":"Ravi Kumar","phone":"9876543210","totalDue":500}],
				"pagination": {"totalPages": 1}
			}`))
		})
	})

	page, err := client.ListBalances(context.Background(), 1, 10, "ravi")
	require.NoError(t, err)

	assert.Equal(t, "ravi", gotSearch)
	require.Len(t, page.Balances, 1)
	assert.Equal(t, "u1", page.Balances[0].UserID)
	assert.True(t, page.Balances[0].TotalDue.Equal(decimal.NewFromInt(500)))
}

func TestListBalancesOmitsEmptySearch(t *testing.T) {
	var hadSearch bool
	client := newTestBackend(t, func(r chi.Router) {
		r.Get("/orders/balances", func(w http.ResponseWriter, req *http.Request) {
			_, hadSearch = req.URL.Query()["search"]
			w.Write([]byte(`{"success": true, "balances": [], "pagination": {"totalPages": 0}}`))
		})
	})

	_, err := client.ListBalances(context.Background(), 1, 10, "")
	require.NoError(t, err)
	assert.False(t, hadSearch)
}

func TestGetLedger(t *testing.T) {
	client := newTestBackend(t, func(r chi.Router) {
		r.Get("/orders/ledger/{userId}", func(w http.ResponseWriter, req *http.Request) {
			assert.Equal(t, "u1", chi.URLParam(req, "userId"))
			w.Write([]byte(`{
				"success": true,
				"customer": {"name":"Ravi Kumar","phone":"9876543210"},
				"balance": 150,
				"ledger": [
					{"type":"order","amount":250,"date":"2025-03-01T12:00:00Z","balanceAfter":250},
					{"type":"payment","amount":-100,"date":"2025-03-02T09:30:00Z","balanceAfter":150}
				]
			}`))
		})
	})

	ledger, err := client.GetLedger(context.Background(), "u1")
	require.NoError(t, err)

	assert.Equal(t, "Ravi Kumar", ledger.Customer.Name)
	assert.True(t, ledger.Balance.Equal(decimal.NewFromInt(150)))
	require.Len(t, ledger.Entries, 2)
	assert.True(t, ledger.Entries[0].IsDebit())
	assert.False(t, ledger.Entries[1].IsDebit())
	assert.True(t, ledger.Entries[1].Amount.Equal(decimal.NewFromInt(-100)))
	assert.True(t, ledger.Entries[1].BalanceAfter.Equal(decimal.NewFromInt(150)))
}

func TestMarkBalancePaid(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		wantErr bool
	}{
		{
			name: "confirmed success",
			handler: func(w http.ResponseWriter, req *http.Request) {
				var body map[string]string
				require.NoError(t, json.NewDecoder(req.Body).Decode(&body))
				assert.Equal(t, "u1", body["userId"])
				w.Write([]byte(`{"success": true}`))
			},
		},
		{
			name: "backend rejection",
			handler: func(w http.ResponseWriter, req *http.Request) {
				w.Write([]byte(`{"success": false, "error": "nothing outstanding"}`))
			},
			wantErr: true,
		},
		{
			name: "server error",
			handler: func(w http.ResponseWriter, req *http.Request) {
				http.Error(w, "boom", http.StatusBadGateway)
			},
			wantErr: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			client := newTestBackend(t, func(r chi.Router) {
				r.Post("/orders/balances/mark-paid", tc.handler)
			})

			err := client.MarkBalancePaid(context.Background(), "u1")
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
