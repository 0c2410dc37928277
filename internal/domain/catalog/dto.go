package catalog

type CreateListingRequest struct {
	Title       string  `json:"title" validate:"required"`
	Description string  `json:"description"`
	Type        string  `json:"type" validate:"required,oneof=venue farmhouse catering photography"`
	City        string  `json:"city"`
	Price       float64 `json:"price" validate:"required,gt=0"`
	PriceUnit   string  `json:"price_unit" validate:"required,oneof=per_event per_hour per_person"`
	Capacity    int     `json:"capacity"`
}

type UpdateListingRequest struct {
	Title       *string  `json:"title,omitempty"`
	Description *string  `json:"description,omitempty"`
	City        *string  `json:"city,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Capacity    *int     `json:"capacity,omitempty"`
	Active      *bool    `json:"active,omitempty"`
}

type RejectListingRequest struct {
	Reason string `json:"reason" validate:"required"`
}
