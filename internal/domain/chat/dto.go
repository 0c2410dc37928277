package chat

type OpenConversationRequest struct {
	VendorID  int64  `json:"vendor_id" validate:"required"`
	BookingID *int64 `json:"booking_id,omitempty"`
}

type SendMessageRequest struct {
	Content string `json:"content" validate:"required,max=4000"`
}
