package redisx

import "time"

const (
	// Cache view order tunggal: order_view:{order_code} -> body JSON siap kirim
	KeyOrderView = "order_view:%s"

	// Dedup event processing: dedup:{service}:{event_id}
	KeyDedup = "dedup:%s:%s"
)

var (
	TTLViewCache = 5 * time.Minute
	TTLDedup     = 48 * time.Hour
)
