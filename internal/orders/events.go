package orders

import (
	"encoding/json"
	"time"
)

const EventOrderStatusChanged = "OrderStatusChanged"

// Envelope is the wire frame shared with the processes that mutate orders
// (payment webhook, admin panel). This service only consumes it.
type Envelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	EventVersion  int             `json:"event_version"`
	OccurredAt    time.Time       `json:"occurred_at"` // RFC3339
	Producer      string          `json:"producer"`
	TraceID       string          `json:"trace_id,omitempty"`
	CorrelationID string          `json:"correlation_id,omitempty"` // biasanya order code
	Payload       json.RawMessage `json:"payload"`
}

type StatusChangedPayload struct {
	OrderID   int64  `json:"order_id"`
	OrderCode string `json:"order_code"`
	OldStatus Status `json:"old_status"`
	NewStatus Status `json:"new_status"`
}
