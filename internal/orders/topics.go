package orders

import "strconv"

const TopicOrderCreated = "pancake.order.created"

// Partition key = order id, supaya event satu order tetap berurutan.
func PartitionKey(orderID int64) []byte { return []byte(strconv.FormatInt(orderID, 10)) }
