package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/kiwari-pos/owner-dashboard/internal/model"
)

// Client talks to the backend's pull-query endpoints. All responses carry a
// success flag; success:false and non-2xx statuses are both reported as
// errors, never as partial data.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a Client for the given base URL, e.g.
// "http://localhost:5001/api".
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
	}
}

// --- Response envelopes ---

type paginationMeta struct {
	TotalPages int `json:"totalPages"`
}

type ordersResponse struct {
	Success    bool           `json:"success"`
	Error      string         `json:"error"`
	Orders     []model.Order  `json:"orders"`
	Pagination paginationMeta `json:"pagination"`
}

type balancesResponse struct {
	Success    bool                    `json:"success"`
	Error      string                  `json:"error"`
	Balances   []model.CustomerBalance `json:"balances"`
	Pagination paginationMeta          `json:"pagination"`
}

type ledgerResponse struct {
	Success  bool                `json:"success"`
	Error    string              `json:"error"`
	Ledger   []model.LedgerEntry `json:"ledger"`
	Balance  decimal.Decimal     `json:"balance"`
	Customer model.Customer      `json:"customer"`
}

type markPaidRequest struct {
	UserID string `json:"userId"`
}

type markPaidResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// --- Pull queries ---

// ListAllOrders fetches one page of the full order history.
func (c *Client) ListAllOrders(ctx context.Context, page, limit int) (model.OrderPage, error) {
	return c.listOrders(ctx, "/orders/all", page, limit)
}

// ListPaidOrders fetches one page of paid orders.
func (c *Client) ListPaidOrders(ctx context.Context, page, limit int) (model.OrderPage, error) {
	return c.listOrders(ctx, "/orders/paid", page, limit)
}

// ListUnpaidOrders fetches one page of unpaid orders.
func (c *Client) ListUnpaidOrders(ctx context.Context, page, limit int) (model.OrderPage, error) {
	return c.listOrders(ctx, "/orders/unpaid", page, limit)
}

func (c *Client) listOrders(ctx context.Context, path string, page, limit int) (model.OrderPage, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))

	var resp ordersResponse
	if err := c.get(ctx, path, q, &resp); err != nil {
		return model.OrderPage{}, err
	}
	if !resp.Success {
		return model.OrderPage{}, fmt.Errorf("list orders %s: %s", path, backendError(resp.Error))
	}

	return model.OrderPage{Orders: resp.Orders, TotalPages: resp.Pagination.TotalPages}, nil
}

// ListBalances fetches one page of outstanding customer balances, optionally
// filtered by a free-text search term.
func (c *Client) ListBalances(ctx context.Context, page, limit int, search string) (model.BalancePage, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))
	if search != "" {
		q.Set("search", search)
	}

	var resp balancesResponse
	if err := c.get(ctx, "/orders/balances", q, &resp); err != nil {
		return model.BalancePage{}, err
	}
	if !resp.Success {
		return model.BalancePage{}, fmt.Errorf("list balances: %s", backendError(resp.Error))
	}

	return model.BalancePage{Balances: resp.Balances, TotalPages: resp.Pagination.TotalPages}, nil
}

// GetLedger fetches a customer's full transaction ledger plus the current
// outstanding total.
func (c *Client) GetLedger(ctx context.Context, userID string) (model.Ledger, error) {
	var resp ledgerResponse
	if err := c.get(ctx, "/orders/ledger/"+url.PathEscape(userID), nil, &resp); err != nil {
		return model.Ledger{}, err
	}
	if !resp.Success {
		return model.Ledger{}, fmt.Errorf("get ledger: %s", backendError(resp.Error))
	}

	return model.Ledger{Customer: resp.Customer, Entries: resp.Ledger, Balance: resp.Balance}, nil
}

// MarkBalancePaid asks the backend to settle a customer's outstanding
// balance. Returns nil only on a confirmed success response.
func (c *Client) MarkBalancePaid(ctx context.Context, userID string) error {
	body, err := json.Marshal(markPaidRequest{UserID: userID})
	if err != nil {
		return fmt.Errorf("marshal mark-paid request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/orders/balances/mark-paid", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build mark-paid request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	httpResp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("mark balance paid: %w", err)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		return fmt.Errorf("mark balance paid: unexpected status %d", httpResp.StatusCode)
	}

	var resp markPaidResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
		return fmt.Errorf("decode mark-paid response: %w", err)
	}
	if !resp.Success {
		return fmt.Errorf("mark balance paid: %s", backendError(resp.Error))
	}

	return nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("build request %s: %w", path, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("GET %s: unexpected status %d", path, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}

	return nil
}

func backendError(msg string) string {
	if msg == "" {
		return "backend reported failure"
	}
	return msg
}
