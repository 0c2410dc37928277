package pos

import "time"

// TxKind separates money coming in from money going back out.
type TxKind string

const (
	KindSale   TxKind = "sale"
	KindRefund TxKind = "refund"
)

type PaymentMethod string

const (
	MethodCash   PaymentMethod = "cash"
	MethodCard   PaymentMethod = "card"
	MethodOnline PaymentMethod = "online"
)

// Transaction is one row of a vendor's sales ledger. BookingID links
// back to the originating booking when the sale came through the
// marketplace; walk-in sales leave it nil.
type Transaction struct {
	ID        int64         `json:"id" gorm:"column:id;primaryKey"`
	VendorID  int64         `json:"vendor_id" gorm:"column:vendor_id;index"`
	BookingID *int64        `json:"booking_id,omitempty" gorm:"column:booking_id"`
	Kind      TxKind        `json:"kind" gorm:"column:kind;index"`
	Method    PaymentMethod `json:"method" gorm:"column:method"`
	Amount    float64       `json:"amount" gorm:"column:amount"`
	Note      string        `json:"note,omitempty" gorm:"column:note"`
	CreatedAt time.Time     `json:"created_at" gorm:"column:created_at"`
}

func (Transaction) TableName() string { return "pos_transactions" }

// Expense is an outgoing cost the vendor records against the ledger.
type Expense struct {
	ID          int64     `json:"id" gorm:"column:id;primaryKey"`
	VendorID    int64     `json:"vendor_id" gorm:"column:vendor_id;index"`
	Category    string    `json:"category" gorm:"column:category"`
	Amount      float64   `json:"amount" gorm:"column:amount"`
	Description string    `json:"description,omitempty" gorm:"column:description"`
	IncurredOn  string    `json:"incurred_on" gorm:"column:incurred_on"` // YYYY-MM-DD
	CreatedAt   time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"column:updated_at"`
}

func (Expense) TableName() string { return "pos_expenses" }

// Summary aggregates the ledger for one vendor.
type Summary struct {
	VendorID      int64   `json:"vendor_id"`
	TotalSales    float64 `json:"total_sales"`
	TotalRefunds  float64 `json:"total_refunds"`
	TotalExpenses float64 `json:"total_expenses"`
	Balance       float64 `json:"balance"`
}
