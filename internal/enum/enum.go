package enum

// ── Views (dashboard tabs) ──

const (
	ViewLive    = "live"
	ViewPaid    = "paid"
	ViewUnpaid  = "unpaid"
	ViewHistory = "history"
	ViewBalance = "balance"
)

// ── State machines (owned by the backend; consumed as-is) ──

const (
	OrderStatusRequested = "requested"
	OrderStatusAccepted  = "accepted"
	OrderStatusCompleted = "completed"
)

const (
	PaymentStatusUnpaid = "unpaid"
	PaymentStatusPaid   = "paid"
)

const (
	LedgerEntryOrder   = "order"   // debit
	LedgerEntryPayment = "payment" // credit
)

// ── Socket protocol ──

const (
	EventNewOrder            = "newOrder"
	EventOrderUpdate         = "orderUpdate"
	EventRegisterRole        = "registerRole"
	EventAcceptOrder         = "acceptOrder"
	EventUpdatePaymentStatus = "updatePaymentStatus"
)

const RoleOwner = "owner"
