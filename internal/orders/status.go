package orders

type Status string

const (
	StatusPending    Status = "pending"
	StatusDiproses   Status = "diproses"
	StatusDikirim    Status = "dikirim"
	StatusSelesai    Status = "selesai"
	StatusDibatalkan Status = "dibatalkan"
)

// Sentinel values milik sistem legacy: payment webhook & admin yang menulisnya,
// service ini hanya membaca.
const (
	PaymentUnpaid   = "belum_dibayar"
	GatewayMidtrans = "midtrans"
)

// Badge is the display metadata attached to a lifecycle status.
type Badge struct {
	Label     string
	Color     string
	CanCancel bool
}

var badges = map[Status]Badge{
	StatusPending:    {Label: "Menunggu Pembayaran", Color: "#ffc107", CanCancel: true},
	StatusDiproses:   {Label: "Diproses", Color: "#17a2b8", CanCancel: true},
	StatusDikirim:    {Label: "Dikirim", Color: "#007bff", CanCancel: false},
	StatusSelesai:    {Label: "Selesai", Color: "#28a745", CanCancel: false},
	StatusDibatalkan: {Label: "Dibatalkan", Color: "#dc3545", CanCancel: false},
}

// defaultBadge covers statuses outside the enum (row legacy sebelum enum final).
var defaultBadge = Badge{Label: "Pesanan Dibuat", Color: "#28a745", CanCancel: false}

func Classify(s Status) Badge {
	if b, ok := badges[s]; ok {
		return b
	}
	return defaultBadge
}

// ValidStatus reports whether s is one of the known lifecycle values.
// Dipakai untuk validasi filter listing; nilai di luar enum ditolak sebelum
// menyentuh database.
func ValidStatus(s Status) bool {
	_, ok := badges[s]
	return ok
}

func NeedsPayment(paymentStatus string) bool {
	return paymentStatus == PaymentUnpaid
}

// PaymentURL returns the hosted-payment-page URL for the order, or nil when
// the order is not payable through the gateway. Never an empty string.
func PaymentURL(baseURL, paymentMethod, paymentStatus, orderCode string) *string {
	if paymentMethod != GatewayMidtrans || !NeedsPayment(paymentStatus) {
		return nil
	}
	u := baseURL + "?order_id=" + orderCode
	return &u
}
