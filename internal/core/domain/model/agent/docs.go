// Package agent provides the Agent aggregate root of the courier ledger.
//
// The package includes:
//   - Agent: identity, contact details, application status and signed balance of a courier
//   - Status: the Pending -> Approved | Rejected state machine
//   - Adjustment: the tagged balance operation {AddDebt | RecordPayment, amount}
//
// Balances are never set directly. Callers build an Adjustment from a positive magnitude and the
// aggregate applies the sign, which keeps the add-then-pay round trip exact.
package agent
