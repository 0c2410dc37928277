package pos

type CreateTransactionRequest struct {
	BookingID *int64        `json:"booking_id,omitempty"`
	Kind      TxKind        `json:"kind" validate:"required,oneof=sale refund"`
	Method    PaymentMethod `json:"method" validate:"required,oneof=cash card online"`
	Amount    float64       `json:"amount" validate:"required,gt=0"`
	Note      string        `json:"note" validate:"max=500"`
}

type CreateExpenseRequest struct {
	Category    string  `json:"category" validate:"required,max=100"`
	Amount      float64 `json:"amount" validate:"required,gt=0"`
	Description string  `json:"description" validate:"max=500"`
	IncurredOn  string  `json:"incurred_on" validate:"required"` // YYYY-MM-DD
}

type UpdateExpenseRequest struct {
	Category    string  `json:"category" validate:"required,max=100"`
	Amount      float64 `json:"amount" validate:"required,gt=0"`
	Description string  `json:"description" validate:"max=500"`
	IncurredOn  string  `json:"incurred_on" validate:"required"`
}
