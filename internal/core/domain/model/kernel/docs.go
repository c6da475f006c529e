// Package kernel provides the value objects shared by every aggregate of the back-office:
//   - UUID: identifiers of agents and orders
//   - Money: signed, overflow-checked amounts in whole currency units
//   - Distance: non-negative trip lengths used for fare quotes
//
// ParseAmount is the single entry point for monetary input coming from clients; it enforces
// the positive whole magnitude rule and reports violations as errs.InvalidAmountError.
package kernel
