package kernel

import (
	"fmt"

	"backoffice/internal/pkg/errs"

	"github.com/google/uuid"
)

// ErrUUIDIsNotConstructed is returned when validating a zero-value UUID. Every agent and
// order identifier goes through one of the constructors below, so seeing this error means a
// UUID{} literal leaked into a command or an aggregate.
var ErrUUIDIsNotConstructed = errs.NewValueIsRequiredError("UUID must be created via NewUUID, UUIDFromString, or UUIDFromBytes")

// UUID is the value object identifying agents and orders. It wraps github.com/google/uuid so
// the domain never handles the raw type directly, and it is immutable once built.
//
// The zero value is the nil UUID and is invalid: construct identifiers with NewUUID,
// UUIDFromString or UUIDFromBytes. Identifiers coming from the platform (Kafka events, HTTP
// path parameters) are parsed; identifiers for rows read back from PostgreSQL are rebuilt
// from bytes.
//
// UUID is comparable and safe for concurrent use.
//
// Example usage:
//
//	// a new order placed through the back office
//	orderID := kernel.NewUUID()
//
//	// an agent referenced by an order.assigned event
//	agentID, err := kernel.UUIDFromString(ev.AgentID)
//	if err != nil {
//	    return fmt.Errorf("order.assigned: %w", err)
//	}
type UUID struct {
	id uuid.UUID
}

// NewUUID generates a new random (version 4) identifier.
// The result is always valid; collisions are not a practical concern.
//
// Example:
//
//	o, err := order.NewOrder(kernel.NewUUID(), "Plateau", "Almadies", distance, fare, commission)
func NewUUID() UUID {
	return UUID{
		id: uuid.New(),
	}
}

// UUIDFromString parses an identifier received from outside the service.
// It accepts every form google/uuid does:
//   - "6ba7b810-9dad-11d1-80b4-00c04fd430c8"
//   - "{6ba7b810-9dad-11d1-80b4-00c04fd430c8}"
//   - "urn:uuid:6ba7b810-9dad-11d1-80b4-00c04fd430c8"
//   - "6ba7b8109dad11d180b400c04fd430c8"
//
// Malformed input wraps errs.ErrValueIsInvalid, so callers classify it as a bad value and
// never as an internal failure. The nil UUID parses successfully here; aggregates reject it
// through Validate.
//
// Example:
//
//	id, err := kernel.UUIDFromString(payload.ID)
//	if err != nil {
//	    return err // errs.KindOf(err) == errs.KindInvalidValue
//	}
func UUIDFromString(s string) (UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return UUID{}, fmt.Errorf("%w: invalid UUID format: %w", errs.ErrValueIsInvalid, err)
	}
	return UUID{id: id}, nil
}

// UUIDFromBytes builds a UUID from exactly 16 bytes, the form PostgreSQL uuid columns and the
// generated HTTP types hand back. Unlike UUIDFromString it also rejects the nil UUID with
// ErrUUIDIsNotConstructed, because a stored row or a resolved path parameter never
// legitimately carries one.
//
// Example:
//
//	id, err := kernel.UUIDFromBytes(dto.ID[:])
//	if err != nil {
//	    return nil, err
//	}
func UUIDFromBytes(b []byte) (UUID, error) {
	id, err := uuid.FromBytes(b)
	if err != nil {
		return UUID{}, fmt.Errorf("%w: invalid UUID format: %w", errs.ErrValueIsInvalid, err)
	}
	newID := UUID{id: id}
	if err = newID.Validate(); err != nil {
		return UUID{}, err
	}

	return newID, nil
}

// String returns the canonical "xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx" form.
// It is what the HTTP API returns, what log records carry under agent_id and order_id, and
// what error messages quote. The zero value prints as all zeros.
func (u UUID) String() string {
	return u.id.String()
}

// Bytes returns the underlying google/uuid value, not a byte slice.
// Repositories use it as the query argument for uuid columns; slice it with [:] when raw
// bytes are needed.
//
// Example:
//
//	db.First(&dto, "id = ?", id.Bytes())
func (u UUID) Bytes() uuid.UUID {
	return u.id
}

// IsEqual reports whether both identifiers hold the same value.
//
// Example:
//
//	if o.Agent() != nil && o.Agent().IsEqual(a.ID()) {
//	    // already assigned to this agent
//	}
func (u UUID) IsEqual(other UUID) bool {
	return u.id == other.id
}

// Validate returns ErrUUIDIsNotConstructed for the nil UUID.
// Constructors of agents, orders, commands and queries call it on every identifier they
// accept, so a zero UUID is stopped at the boundary of the domain.
func (u UUID) Validate() error {
	if u.id == uuid.Nil {
		return ErrUUIDIsNotConstructed
	}
	return nil
}
