// Package order provides the Order aggregate root: a shipment with its origin, destination,
// trip distance, the fare and commission fixed at placement, and a weak reference to the agent
// carrying it.
//
// Key business rules:
//   - Order status follows Pending -> Delivered
//   - Orders can be (re)assigned while Pending and must be assigned before delivery
//   - Commission is charged to the agent once, after delivery
package order
