package orders

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("order not found")

// Capabilities records which optional parts of the legacy schema exist.
// Skema ini sempat drift: dua varian alamat pengiriman dan kolom midtrans
// yang tidak ada di instalasi lama. Diprobe sekali saat startup, bukan
// per-request.
type Capabilities struct {
	AddressLinkTable bool // order_shipping_address -> shipping_address
	AddressFK        bool // orders.shipping_address_id -> shipping_addresses
	MidtransColumn   bool // orders.midtrans_order_id
}

type Repo struct {
	DB   *pgxpool.Pool
	Caps Capabilities
}

// NewRepo probes the schema once and returns a ready repository.
func NewRepo(ctx context.Context, db *pgxpool.Pool) (*Repo, error) {
	caps, err := detectCapabilities(ctx, db)
	if err != nil {
		return nil, fmt.Errorf("detect schema capabilities: %w", err)
	}
	return &Repo{DB: db, Caps: caps}, nil
}

func detectCapabilities(ctx context.Context, db *pgxpool.Pool) (Capabilities, error) {
	var caps Capabilities
	err := db.QueryRow(ctx, `
		SELECT
			EXISTS (SELECT 1 FROM information_schema.tables
			        WHERE table_name = 'order_shipping_address'),
			EXISTS (SELECT 1 FROM information_schema.columns
			        WHERE table_name = 'orders' AND column_name = 'shipping_address_id'),
			EXISTS (SELECT 1 FROM information_schema.columns
			        WHERE table_name = 'orders' AND column_name = 'midtrans_order_id')
	`).Scan(&caps.AddressLinkTable, &caps.AddressFK, &caps.MidtransColumn)
	if err != nil {
		return Capabilities{}, err
	}
	return caps, nil
}

// headerSelect is shared by the by-code and by-user queries. The midtrans
// column is swapped for NULL when the schema predates it; only static SQL is
// chosen here, values are always bound parameters.
func (r *Repo) headerSelect() string {
	midtrans := "NULL::text"
	if r.Caps.MidtransColumn {
		midtrans = "o.midtrans_order_id"
	}
	return `
		SELECT o.id_order, o.order_id, o.id_user, o.tgl_pemesanan, o.stts_pemesanan,
		       o.total_harga, o.stts_pembayaran, o.metode_pembayaran, o.kurir, o.ongkir,
		       o.tgl_selesai, o.tgl_dikirim, o.tgl_batal, o.id_admin, ` + midtrans + `,
		       u.nama, u.email, u.no_tlp, a.nama
		FROM orders o
		LEFT JOIN "user" u ON o.id_user = u.id_user
		LEFT JOIN admin a ON o.id_admin = a.id_admin`
}

func scanHeader(row pgx.Row) (*HeaderRow, error) {
	var h HeaderRow
	err := row.Scan(
		&h.ID, &h.Code, &h.UserID, &h.OrderedAt, &h.Status,
		&h.Total, &h.PaymentStatus, &h.PaymentMethod, &h.ShippingMethod, &h.ShippingCost,
		&h.CompletedAt, &h.ShippedAt, &h.CancelledAt, &h.AdminID, &h.MidtransOrderID,
		&h.UserName, &h.UserEmail, &h.UserPhone, &h.AdminName,
	)
	if err != nil {
		return nil, err
	}
	return &h, nil
}

// HeaderByCode looks an order up by its external code. Zero rows is
// ErrNotFound, never an infrastructure error.
func (r *Repo) HeaderByCode(ctx context.Context, code string) (*HeaderRow, error) {
	row := r.DB.QueryRow(ctx, r.headerSelect()+` WHERE o.order_id = $1`, code)
	h, err := scanHeader(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query order header: %w", err)
	}
	return h, nil
}

// HeadersByUser returns one page of a user's orders, newest first. An empty
// status means no status predicate; the predicate is always parameterized.
func (r *Repo) HeadersByUser(ctx context.Context, userID int64, status Status, limit, offset int) ([]HeaderRow, error) {
	q := r.headerSelect() + ` WHERE o.id_user = $1`
	args := []any{userID}
	if status != "" {
		q += ` AND o.stts_pemesanan = $2`
		args = append(args, status)
	}
	q += fmt.Sprintf(` ORDER BY o.tgl_pemesanan DESC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.DB.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query orders page: %w", err)
	}
	defer rows.Close()

	var out []HeaderRow
	for rows.Next() {
		h, err := scanHeader(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order header: %w", err)
		}
		out = append(out, *h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read orders page: %w", err)
	}
	return out, nil
}

// CountByUser uses the same predicate as HeadersByUser.
func (r *Repo) CountByUser(ctx context.Context, userID int64, status Status) (int, error) {
	q := `SELECT COUNT(*) FROM orders o WHERE o.id_user = $1`
	args := []any{userID}
	if status != "" {
		q += ` AND o.stts_pemesanan = $2`
		args = append(args, status)
	}
	var n int
	if err := r.DB.QueryRow(ctx, q, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count orders: %w", err)
	}
	return n, nil
}

// ItemsByOrder returns the order's line items with the current product
// columns. LEFT JOIN: produk yang sudah dihapus menghasilkan kolom NULL,
// baris item tetap ikut.
func (r *Repo) ItemsByOrder(ctx context.Context, orderID int64) ([]ItemRow, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT d.id_detail_order, d.id_order, d.id_product, d.jumlah, d.harga_satuan,
		       p.nama_product, p.deskripsi, p.gambar, p.gambar_url
		FROM detail_order d
		LEFT JOIN product p ON d.id_product = p.id_product
		WHERE d.id_order = $1`, orderID)
	if err != nil {
		return nil, fmt.Errorf("query order items: %w", err)
	}
	defer rows.Close()

	var out []ItemRow
	for rows.Next() {
		var it ItemRow
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.Qty, &it.UnitPrice,
			&it.ProductName, &it.Description, &it.ImageFile, &it.ImageURL); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

// AddressByOrder resolves the shipping address through whichever variant the
// schema has. Link table wins when both exist; nil when the order has no
// address or the schema has neither variant.
func (r *Repo) AddressByOrder(ctx context.Context, orderID int64) (*AddressRow, error) {
	var row pgx.Row
	switch {
	case r.Caps.AddressLinkTable:
		row = r.DB.QueryRow(ctx, `
			SELECT sa.id_address, sa.recipient_name, sa.phone, sa.address_label, sa.address,
			       sa.rt, sa.rw, sa.house_number, sa.postal_code, sa.detail_address
			FROM shipping_address sa
			JOIN order_shipping_address osa ON sa.id_address = osa.id_address
			WHERE osa.id_order = $1`, orderID)
	case r.Caps.AddressFK:
		row = r.DB.QueryRow(ctx, `
			SELECT s.id, s.recipient_name, s.phone, NULL::text, s.address,
			       NULL::text, NULL::text, NULL::text, s.postal_code, NULL::text
			FROM shipping_addresses s
			JOIN orders o ON o.shipping_address_id = s.id
			WHERE o.id_order = $1`, orderID)
	default:
		return nil, nil
	}

	var a AddressRow
	err := row.Scan(&a.ID, &a.RecipientName, &a.Phone, &a.Label, &a.Address,
		&a.RT, &a.RW, &a.HouseNumber, &a.PostalCode, &a.Detail)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query shipping address: %w", err)
	}
	return &a, nil
}
