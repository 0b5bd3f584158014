package orders

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Store is what the assembler needs from the relational store. *Repo
// implements it; tests substitute a mock.
type Store interface {
	HeaderByCode(ctx context.Context, code string) (*HeaderRow, error)
	HeadersByUser(ctx context.Context, userID int64, status Status, limit, offset int) ([]HeaderRow, error)
	CountByUser(ctx context.Context, userID int64, status Status) (int, error)
	ItemsByOrder(ctx context.Context, orderID int64) ([]ItemRow, error)
	AddressByOrder(ctx context.Context, orderID int64) (*AddressRow, error)
}

const (
	placeholderProduct = "Unknown Product"
	defaultAdminID     = 1
	defaultAdminName   = "Admin"
)

// Assembler builds denormalized order views out of repository rows.
type Assembler struct {
	Store          Store
	PaymentBaseURL string // halaman pembayaran hosted (midtrans)
	AssetBaseURL   string // prefix gambar produk utk baris yang hanya punya nama file
}

type ListQuery struct {
	UserID int64
	Status Status // "" = tanpa filter
	Page   int
	Limit  int
}

// ByCode assembles the full view for one order. A missing order is
// ErrNotFound, a typed outcome for the caller rather than a failure.
func (a *Assembler) ByCode(ctx context.Context, code string) (*OrderView, error) {
	h, err := a.Store.HeaderByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	return a.assemble(ctx, h)
}

// ListByUser runs the count + page queries and assembles every row on the
// page. Item/address fetches are independent per order, so they run
// concurrently; the slice is indexed so page order survives.
func (a *Assembler) ListByUser(ctx context.Context, q ListQuery) (*Page, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = 10
	}
	offset := (q.Page - 1) * q.Limit

	total, err := a.Store.CountByUser(ctx, q.UserID, q.Status)
	if err != nil {
		return nil, err
	}
	rows, err := a.Store.HeadersByUser(ctx, q.UserID, q.Status, q.Limit, offset)
	if err != nil {
		return nil, err
	}

	views := make([]OrderView, len(rows))
	g, gctx := errgroup.WithContext(ctx)
	for i, row := range rows {
		i, row := i, row
		g.Go(func() error {
			v, err := a.assemble(gctx, &row)
			if err != nil {
				return err
			}
			views[i] = *v
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &Page{
		Orders: views,
		Pagination: Pagination{
			Total:      total,
			Page:       q.Page,
			Limit:      q.Limit,
			TotalPages: totalPages(total, q.Limit),
		},
	}, nil
}

func (a *Assembler) assemble(ctx context.Context, h *HeaderRow) (*OrderView, error) {
	items, err := a.Store.ItemsByOrder(ctx, h.ID)
	if err != nil {
		return nil, err
	}
	addr, err := a.Store.AddressByOrder(ctx, h.ID)
	if err != nil {
		return nil, err
	}

	itemViews := make([]ItemView, 0, len(items))
	var subtotal float64
	for _, it := range items {
		lineTotal := float64(it.Qty) * it.UnitPrice
		subtotal += lineTotal
		itemViews = append(itemViews, ItemView{
			ID:          it.ID,
			ProductID:   it.ProductID,
			ProductName: productName(it),
			Description: deref(it.Description),
			ImageURL:    a.imageURL(it),
			Quantity:    it.Qty,
			Price:       it.UnitPrice,
			Total:       lineTotal,
		})
	}

	badge := Classify(h.Status)

	v := &OrderView{
		ID:              h.ID,
		OrderID:         h.Code,
		UserID:          h.UserID,
		UserName:        deref(h.UserName),
		UserEmail:       deref(h.UserEmail),
		UserPhone:       deref(h.UserPhone),
		AdminID:         defaultAdminID,
		AdminName:       defaultAdminName,
		Date:            h.OrderedAt.Format(rawTime),
		FormattedDate:   h.OrderedAt.Format(displayTime),
		Status:          h.Status,
		StatusText:      badge.Label,
		StatusColor:     badge.Color,
		PaymentStatus:   h.PaymentStatus,
		PaymentMethod:   h.PaymentMethod,
		ShippingMethod:  h.ShippingMethod,
		ShippingCost:    h.ShippingCost,
		Subtotal:        subtotal,
		Total:           h.Total, // nilai tersimpan; subtotal sengaja tidak direkonsiliasi
		CompletedDate:   formatDisplay(h.CompletedAt),
		ShippedDate:     formatDisplay(h.ShippedAt),
		CancelledDate:   formatDisplay(h.CancelledAt),
		MidtransOrderID: h.MidtransOrderID,
		NeedsPayment:    NeedsPayment(h.PaymentStatus),
		CanCancel:       badge.CanCancel,
		PaymentURL:      PaymentURL(a.PaymentBaseURL, h.PaymentMethod, h.PaymentStatus, h.Code),
		Items:           itemViews,
	}
	if h.AdminID != nil {
		v.AdminID = *h.AdminID
	}
	if h.AdminName != nil {
		v.AdminName = *h.AdminName
	}
	if addr != nil {
		v.ShippingAddress = &AddressView{
			ID:            addr.ID,
			RecipientName: addr.RecipientName,
			Phone:         addr.Phone,
			AddressLabel:  addr.Label,
			Address:       addr.Address,
			RT:            addr.RT,
			RW:            addr.RW,
			HouseNumber:   addr.HouseNumber,
			PostalCode:    addr.PostalCode,
			Detail:        addr.Detail,
			FullAddress: FormatAddress(addr.Address,
				deref(addr.RT), deref(addr.RW),
				deref(addr.HouseNumber), deref(addr.PostalCode), deref(addr.Detail)),
		}
	}
	return v, nil
}

func productName(it ItemRow) string {
	if it.ProductName == nil || *it.ProductName == "" {
		return placeholderProduct
	}
	return *it.ProductName
}

// imageURL prefers the full gambar_url column, falls back to the asset base
// plus the bare filename, then to empty (produk terhapus).
func (a *Assembler) imageURL(it ItemRow) string {
	if it.ImageURL != nil && *it.ImageURL != "" {
		return *it.ImageURL
	}
	if it.ImageFile != nil && *it.ImageFile != "" {
		return a.AssetBaseURL + *it.ImageFile
	}
	return ""
}
