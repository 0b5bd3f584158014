package orders

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockStore adalah implementasi mock dari Store.
type MockStore struct {
	mock.Mock
}

func (m *MockStore) HeaderByCode(ctx context.Context, code string) (*HeaderRow, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*HeaderRow), args.Error(1)
}

func (m *MockStore) HeadersByUser(ctx context.Context, userID int64, status Status, limit, offset int) ([]HeaderRow, error) {
	args := m.Called(ctx, userID, status, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]HeaderRow), args.Error(1)
}

func (m *MockStore) CountByUser(ctx context.Context, userID int64, status Status) (int, error) {
	args := m.Called(ctx, userID, status)
	return args.Int(0), args.Error(1)
}

func (m *MockStore) ItemsByOrder(ctx context.Context, orderID int64) ([]ItemRow, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ItemRow), args.Error(1)
}

func (m *MockStore) AddressByOrder(ctx context.Context, orderID int64) (*AddressRow, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*AddressRow), args.Error(1)
}

func str(s string) *string { return &s }

func testAssembler(st Store) *Assembler {
	return &Assembler{
		Store:          st,
		PaymentBaseURL: "https://pay.example.test/payment.php",
		AssetBaseURL:   "https://cdn.example.test/products/",
	}
}

func baseHeader() *HeaderRow {
	ordered := time.Date(2024, 3, 7, 14, 30, 0, 0, time.UTC)
	return &HeaderRow{
		ID:             42,
		Code:           "ORD-2024-0042",
		UserID:         7,
		OrderedAt:      ordered,
		Status:         StatusPending,
		Total:          165000,
		PaymentStatus:  PaymentUnpaid,
		PaymentMethod:  GatewayMidtrans,
		ShippingMethod: "jne",
		ShippingCost:   15000,
		UserName:       str("Budi"),
		UserEmail:      str("budi@example.test"),
		UserPhone:      str("0812000111"),
	}
}

func TestByCode_AssemblesFullView(t *testing.T) {
	st := new(MockStore)
	h := baseHeader()
	st.On("HeaderByCode", mock.Anything, "ORD-2024-0042").Return(h, nil)
	st.On("ItemsByOrder", mock.Anything, int64(42)).Return([]ItemRow{
		{ID: 1, OrderID: 42, ProductID: 11, Qty: 2, UnitPrice: 50000,
			ProductName: str("Monstera"), Description: str("daun lebar"), ImageURL: str("https://cdn.example.test/m.jpg")},
		{ID: 2, OrderID: 42, ProductID: 12, Qty: 1, UnitPrice: 50000,
			ProductName: str("Kaktus"), ImageFile: str("kaktus.jpg")},
	}, nil)
	st.On("AddressByOrder", mock.Anything, int64(42)).Return(&AddressRow{
		ID: 9, RecipientName: "Budi", Phone: "0812000111", Address: "Jl. Mawar",
		RT: str("02"), RW: str("05"), HouseNumber: str("10"), PostalCode: str("12345"), Detail: str("dekat masjid"),
	}, nil)

	v, err := testAssembler(st).ByCode(context.Background(), "ORD-2024-0042")
	require.NoError(t, err)

	assert.Equal(t, int64(42), v.ID)
	assert.Equal(t, "ORD-2024-0042", v.OrderID)
	assert.Equal(t, "07 Mar 2024 14:30", v.FormattedDate)
	assert.Equal(t, "2024-03-07 14:30:00", v.Date)

	// subtotal = jumlah line total, terpisah dari total tersimpan
	assert.Equal(t, float64(150000), v.Subtotal)
	assert.Equal(t, float64(165000), v.Total)
	require.Len(t, v.Items, 2)
	assert.Equal(t, float64(100000), v.Items[0].Total)
	assert.Equal(t, "https://cdn.example.test/m.jpg", v.Items[0].ImageURL)
	assert.Equal(t, "https://cdn.example.test/products/kaktus.jpg", v.Items[1].ImageURL)

	assert.Equal(t, "Menunggu Pembayaran", v.StatusText)
	assert.Equal(t, "#ffc107", v.StatusColor)
	assert.True(t, v.CanCancel)
	assert.True(t, v.NeedsPayment)
	require.NotNil(t, v.PaymentURL)
	assert.Equal(t, "https://pay.example.test/payment.php?order_id=ORD-2024-0042", *v.PaymentURL)

	require.NotNil(t, v.ShippingAddress)
	assert.Equal(t, "Jl. Mawar, RT 02/RW 05, No. 10, 12345 (dekat masjid)", v.ShippingAddress.FullAddress)

	// timestamp yang tidak ada -> nil, bukan string kosong
	assert.Nil(t, v.CompletedDate)
	assert.Nil(t, v.ShippedDate)
	assert.Nil(t, v.CancelledDate)

	st.AssertExpectations(t)
}

func TestByCode_NotFound(t *testing.T) {
	st := new(MockStore)
	st.On("HeaderByCode", mock.Anything, "NOPE").Return(nil, ErrNotFound)

	v, err := testAssembler(st).ByCode(context.Background(), "NOPE")
	assert.Nil(t, v)
	assert.ErrorIs(t, err, ErrNotFound)
	st.AssertNotCalled(t, "ItemsByOrder", mock.Anything, mock.Anything)
}

func TestByCode_DeletedProductGetsPlaceholder(t *testing.T) {
	st := new(MockStore)
	h := baseHeader()
	st.On("HeaderByCode", mock.Anything, h.Code).Return(h, nil)
	// produk sudah dihapus: semua kolom product NULL
	st.On("ItemsByOrder", mock.Anything, int64(42)).Return([]ItemRow{
		{ID: 3, OrderID: 42, ProductID: 99, Qty: 3, UnitPrice: 20000},
	}, nil)
	st.On("AddressByOrder", mock.Anything, int64(42)).Return(nil, nil)

	v, err := testAssembler(st).ByCode(context.Background(), h.Code)
	require.NoError(t, err)
	require.Len(t, v.Items, 1)
	assert.Equal(t, "Unknown Product", v.Items[0].ProductName)
	assert.Equal(t, "", v.Items[0].ImageURL)
	assert.Equal(t, float64(60000), v.Subtotal)
	assert.Nil(t, v.ShippingAddress)
}

func TestByCode_EmptyItemsSubtotalZero(t *testing.T) {
	st := new(MockStore)
	h := baseHeader()
	st.On("HeaderByCode", mock.Anything, h.Code).Return(h, nil)
	st.On("ItemsByOrder", mock.Anything, int64(42)).Return([]ItemRow{}, nil)
	st.On("AddressByOrder", mock.Anything, int64(42)).Return(nil, nil)

	v, err := testAssembler(st).ByCode(context.Background(), h.Code)
	require.NoError(t, err)
	assert.Equal(t, float64(0), v.Subtotal)
	assert.NotNil(t, v.Items)
	assert.Len(t, v.Items, 0)
}

func TestByCode_OptionalTimestampsFormatted(t *testing.T) {
	st := new(MockStore)
	h := baseHeader()
	h.Status = StatusSelesai
	h.PaymentStatus = "dibayar"
	shipped := time.Date(2024, 3, 9, 8, 5, 0, 0, time.UTC)
	done := time.Date(2024, 3, 12, 19, 45, 0, 0, time.UTC)
	h.ShippedAt = &shipped
	h.CompletedAt = &done
	adminID := int64(3)
	h.AdminID = &adminID
	h.AdminName = str("Sari")
	st.On("HeaderByCode", mock.Anything, h.Code).Return(h, nil)
	st.On("ItemsByOrder", mock.Anything, int64(42)).Return([]ItemRow{}, nil)
	st.On("AddressByOrder", mock.Anything, int64(42)).Return(nil, nil)

	v, err := testAssembler(st).ByCode(context.Background(), h.Code)
	require.NoError(t, err)
	require.NotNil(t, v.ShippedDate)
	assert.Equal(t, "09 Mar 2024 08:05", *v.ShippedDate)
	require.NotNil(t, v.CompletedDate)
	assert.Equal(t, "12 Mar 2024 19:45", *v.CompletedDate)
	assert.Nil(t, v.CancelledDate)
	assert.Equal(t, int64(3), v.AdminID)
	assert.Equal(t, "Sari", v.AdminName)
	assert.False(t, v.NeedsPayment)
	assert.Nil(t, v.PaymentURL)
}

func TestListByUser_PaginationMetadata(t *testing.T) {
	st := new(MockStore)
	st.On("CountByUser", mock.Anything, int64(7), Status("")).Return(23, nil)
	st.On("HeadersByUser", mock.Anything, int64(7), Status(""), 10, 30).Return([]HeaderRow{}, nil)

	// page 4 dari 23/10: melewati halaman terakhir -> list kosong, metadata akurat
	page, err := testAssembler(st).ListByUser(context.Background(), ListQuery{UserID: 7, Page: 4, Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, page.Orders)
	assert.NotNil(t, page.Orders)
	assert.Equal(t, Pagination{Total: 23, Page: 4, Limit: 10, TotalPages: 3}, page.Pagination)
	st.AssertExpectations(t)
}

func TestListByUser_DefaultsAndOffset(t *testing.T) {
	st := new(MockStore)
	st.On("CountByUser", mock.Anything, int64(7), StatusPending).Return(1, nil)
	// page/limit <= 0 dinormalkan ke 1/10 -> offset 0
	st.On("HeadersByUser", mock.Anything, int64(7), StatusPending, 10, 0).Return([]HeaderRow{}, nil)

	page, err := testAssembler(st).ListByUser(context.Background(), ListQuery{UserID: 7, Status: StatusPending})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Pagination.Page)
	assert.Equal(t, 10, page.Pagination.Limit)
	assert.Equal(t, 1, page.Pagination.TotalPages)
}

func TestListByUser_PreservesPageOrder(t *testing.T) {
	st := new(MockStore)
	rows := make([]HeaderRow, 5)
	for i := range rows {
		h := *baseHeader()
		h.ID = int64(100 + i)
		h.Code = "ORD-" + string(rune('A'+i))
		rows[i] = h
		st.On("ItemsByOrder", mock.Anything, h.ID).Return([]ItemRow{}, nil)
		st.On("AddressByOrder", mock.Anything, h.ID).Return(nil, nil)
	}
	st.On("CountByUser", mock.Anything, int64(7), Status("")).Return(5, nil)
	st.On("HeadersByUser", mock.Anything, int64(7), Status(""), 10, 0).Return(rows, nil)

	page, err := testAssembler(st).ListByUser(context.Background(), ListQuery{UserID: 7, Page: 1, Limit: 10})
	require.NoError(t, err)
	require.Len(t, page.Orders, 5)
	// assembly per order jalan paralel; urutan output harus tetap urutan page
	for i, v := range page.Orders {
		assert.Equal(t, int64(100+i), v.ID)
	}
}

func TestListByUser_CountErrorPropagates(t *testing.T) {
	st := new(MockStore)
	boom := errors.New("conn refused")
	st.On("CountByUser", mock.Anything, int64(7), Status("")).Return(0, boom)

	page, err := testAssembler(st).ListByUser(context.Background(), ListQuery{UserID: 7, Page: 1, Limit: 10})
	assert.Nil(t, page)
	assert.ErrorIs(t, err, boom)
	st.AssertNotCalled(t, "HeadersByUser", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 3, totalPages(23, 10))
	assert.Equal(t, 1, totalPages(10, 10))
	assert.Equal(t, 2, totalPages(11, 10))
	assert.Equal(t, 0, totalPages(0, 10))
}
