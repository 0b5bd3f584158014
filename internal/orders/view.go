package orders

import "time"

// displayTime is the human-facing timestamp format ("02 Jan 2006 15:04").
const displayTime = "02 Jan 2006 15:04"

// rawTime matches the datetime format the legacy clients already parse.
const rawTime = "2006-01-02 15:04:05"

// OrderView is the denormalized order emitted to clients. One contract covers
// both the single-order and the listing path (union of the legacy field sets).
type OrderView struct {
	ID              int64        `json:"id"`
	OrderID         string       `json:"order_id"`
	UserID          int64        `json:"user_id"`
	UserName        string       `json:"user_name"`
	UserEmail       string       `json:"user_email"`
	UserPhone       string       `json:"user_phone"`
	AdminID         int64        `json:"admin_id"`
	AdminName       string       `json:"admin_name"`
	Date            string       `json:"date"`
	FormattedDate   string       `json:"formatted_date"`
	Status          Status       `json:"status"`
	StatusText      string       `json:"status_text"`
	StatusColor     string       `json:"status_color"`
	PaymentStatus   string       `json:"payment_status"`
	PaymentMethod   string       `json:"payment_method"`
	ShippingMethod  string       `json:"shipping_method"`
	ShippingCost    float64      `json:"shipping_cost"`
	Subtotal        float64      `json:"subtotal"`
	Total           float64      `json:"total"`
	CompletedDate   *string      `json:"completed_date"`
	ShippedDate     *string      `json:"shipped_date"`
	CancelledDate   *string      `json:"cancelled_date"`
	MidtransOrderID *string      `json:"midtrans_order_id,omitempty"`
	NeedsPayment    bool         `json:"needs_payment"`
	CanCancel       bool         `json:"can_cancel"`
	PaymentURL      *string      `json:"payment_url"`
	Items           []ItemView   `json:"items"`
	ShippingAddress *AddressView `json:"shipping_address"`
}

type ItemView struct {
	ID          int64   `json:"id"`
	ProductID   int64   `json:"product_id"`
	ProductName string  `json:"product_name"`
	Description string  `json:"description"`
	ImageURL    string  `json:"image_url"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
	Total       float64 `json:"total"`
}

type AddressView struct {
	ID            int64   `json:"id"`
	RecipientName string  `json:"recipient_name"`
	Phone         string  `json:"phone"`
	AddressLabel  *string `json:"address_label,omitempty"`
	Address       string  `json:"address"`
	RT            *string `json:"rt"`
	RW            *string `json:"rw"`
	HouseNumber   *string `json:"house_number"`
	PostalCode    *string `json:"postal_code"`
	Detail        *string `json:"detail_address"`
	FullAddress   string  `json:"full_address"`
}

type Pagination struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"total_pages"`
}

type Page struct {
	Orders     []OrderView `json:"orders"`
	Pagination Pagination  `json:"pagination"`
}

// formatDisplay maps an absent timestamp to nil, never to a zero-date string.
func formatDisplay(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(displayTime)
	return &s
}

func totalPages(total, limit int) int {
	if limit <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}
