// Package services provides domain services that span more than one aggregate.
//
// The package includes:
//   - CommissionSettler: charges the commission of a delivered order to its agent's balance
package services
