package orders

const TopicOrderStatusChanged = "order.status.changed"

// Partition key = order code, supaya event utk satu order tetap berurutan.
func PartitionKey(orderCode string) []byte { return []byte(orderCode) }
