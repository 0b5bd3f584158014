package orders

import "time"

// HeaderRow is one row of the orders table joined with the user and admin
// display columns. Nullable columns (LEFT JOIN, optional timestamps) are
// pointers.
type HeaderRow struct {
	ID              int64
	Code            string // kolom order_id: kode eksternal, dipakai di URL & callback pembayaran
	UserID          int64
	OrderedAt       time.Time
	Status          Status
	Total           float64
	PaymentStatus   string
	PaymentMethod   string
	ShippingMethod  string
	ShippingCost    float64
	CompletedAt     *time.Time
	ShippedAt       *time.Time
	CancelledAt     *time.Time
	AdminID         *int64
	MidtransOrderID *string
	UserName        *string
	UserEmail       *string
	UserPhone       *string
	AdminName       *string
}

// ItemRow is one detail_order row joined with the current product columns.
// Product columns are nil when the product has been deleted.
type ItemRow struct {
	ID          int64
	OrderID     int64
	ProductID   int64
	Qty         int
	UnitPrice   float64 // harga saat checkout, bukan harga produk sekarang
	ProductName *string
	Description *string
	ImageFile   *string // kolom gambar (nama file)
	ImageURL    *string // kolom gambar_url (URL penuh)
}

// AddressRow is the shipping address attached to an order, whichever schema
// variant it came from.
type AddressRow struct {
	ID            int64
	RecipientName string
	Phone         string
	Label         *string
	Address       string
	RT            *string
	RW            *string
	HouseNumber   *string
	PostalCode    *string
	Detail        *string
}
