package orders

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		status    Status
		label     string
		color     string
		canCancel bool
	}{
		{StatusPending, "Menunggu Pembayaran", "#ffc107", true},
		{StatusDiproses, "Diproses", "#17a2b8", true},
		{StatusDikirim, "Dikirim", "#007bff", false},
		{StatusSelesai, "Selesai", "#28a745", false},
		{StatusDibatalkan, "Dibatalkan", "#dc3545", false},
	}
	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			b := Classify(tt.status)
			assert.Equal(t, tt.label, b.Label)
			assert.Equal(t, tt.color, b.Color)
			assert.Equal(t, tt.canCancel, b.CanCancel)
		})
	}
}

func TestClassify_UnknownStatusGetsDefault(t *testing.T) {
	for _, s := range []Status{"", "menunggu", "REFUNDED", "Pending"} {
		b := Classify(s)
		assert.Equal(t, "Pesanan Dibuat", b.Label)
		assert.Equal(t, "#28a745", b.Color)
		assert.False(t, b.CanCancel)
	}
}

func TestNeedsPayment(t *testing.T) {
	assert.True(t, NeedsPayment("belum_dibayar"))
	assert.False(t, NeedsPayment("dibayar"))
	assert.False(t, NeedsPayment(""))
}

func TestPaymentURL(t *testing.T) {
	base := "https://pay.example.test/payment.php"

	u := PaymentURL(base, GatewayMidtrans, PaymentUnpaid, "ORD-123")
	if assert.NotNil(t, u) {
		assert.Equal(t, base+"?order_id=ORD-123", *u)
	}

	// metode lain atau sudah dibayar -> nil, bukan string kosong
	assert.Nil(t, PaymentURL(base, "cod", PaymentUnpaid, "ORD-123"))
	assert.Nil(t, PaymentURL(base, GatewayMidtrans, "dibayar", "ORD-123"))
	assert.Nil(t, PaymentURL(base, "", "", "ORD-123"))
}

func TestNeedsPaymentIndependentOfStatus(t *testing.T) {
	// needs_payment cuma lihat payment_status, bukan lifecycle status
	for _, s := range []Status{StatusPending, StatusDikirim, StatusDibatalkan, "unknown"} {
		_ = Classify(s)
		assert.True(t, NeedsPayment(PaymentUnpaid))
	}
}
