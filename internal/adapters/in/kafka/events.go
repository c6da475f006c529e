package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"backoffice/internal/core/application/usecases/commands"
	"backoffice/internal/core/domain/model/kernel"
)

// Event types published by the delivery platform.
const (
	TypeAgentRegistered = "agent.registered"
	TypeOrderPlaced     = "order.placed"
	TypeOrderAssigned   = "order.assigned"
	TypeOrderDelivered  = "order.delivered"
)

var (
	// ErrUnknownEventType is returned for an event type the back office does not consume.
	ErrUnknownEventType = errors.New("unknown event type")
	// ErrMalformedEvent is returned when an envelope or payload cannot be decoded.
	ErrMalformedEvent = errors.New("malformed event")
)

// Event is the envelope of every message on the platform topic.
type Event struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// AgentRegistered is the payload of agent.registered.
type AgentRegistered struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Vehicle string `json:"vehicle"`
}

// OrderPlaced is the payload of order.placed.
type OrderPlaced struct {
	ID          string      `json:"id"`
	Origin      string      `json:"origin"`
	Destination string      `json:"destination"`
	DistanceKm  json.Number `json:"distanceKm"`
}

// OrderAssigned is the payload of order.assigned.
type OrderAssigned struct {
	OrderID string `json:"orderId"`
	AgentID string `json:"agentId"`
}

// OrderDelivered is the payload of order.delivered.
type OrderDelivered struct {
	OrderID string `json:"orderId"`
}

// Dispatcher turns platform events into intake commands.
type Dispatcher struct {
	register commands.RegisterAgentCommandHandler
	place    commands.PlaceOrderCommandHandler
	assign   commands.AssignOrderCommandHandler
	deliver  commands.DeliverOrderCommandHandler
}

func NewDispatcher(
	register commands.RegisterAgentCommandHandler,
	place commands.PlaceOrderCommandHandler,
	assign commands.AssignOrderCommandHandler,
	deliver commands.DeliverOrderCommandHandler,
) *Dispatcher {
	return &Dispatcher{register: register, place: place, assign: assign, deliver: deliver}
}

// Handle decodes the payload of ev and runs the matching command.
func (d *Dispatcher) Handle(ctx context.Context, ev Event) error {
	switch ev.Type {
	case TypeAgentRegistered:
		var p AgentRegistered
		if err := json.Unmarshal(ev.Payload, &p); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrMalformedEvent, ev.Type, err)
		}
		id, err := kernel.UUIDFromString(p.ID)
		if err != nil {
			return err
		}
		cmd, err := commands.NewRegisterAgentCommand(id, p.Name, p.Phone, p.Vehicle)
		if err != nil {
			return err
		}
		return d.register.Handle(ctx, cmd)

	case TypeOrderPlaced:
		var p OrderPlaced
		if err := json.Unmarshal(ev.Payload, &p); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrMalformedEvent, ev.Type, err)
		}
		id, err := kernel.UUIDFromString(p.ID)
		if err != nil {
			return err
		}
		distance, err := kernel.ParseDistance(p.DistanceKm.String())
		if err != nil {
			return err
		}
		cmd, err := commands.NewPlaceOrderCommand(id, p.Origin, p.Destination, distance)
		if err != nil {
			return err
		}
		return d.place.Handle(ctx, cmd)

	case TypeOrderAssigned:
		var p OrderAssigned
		if err := json.Unmarshal(ev.Payload, &p); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrMalformedEvent, ev.Type, err)
		}
		orderID, err := kernel.UUIDFromString(p.OrderID)
		if err != nil {
			return err
		}
		agentID, err := kernel.UUIDFromString(p.AgentID)
		if err != nil {
			return err
		}
		cmd, err := commands.NewAssignOrderCommand(orderID, agentID)
		if err != nil {
			return err
		}
		return d.assign.Handle(ctx, cmd)

	case TypeOrderDelivered:
		var p OrderDelivered
		if err := json.Unmarshal(ev.Payload, &p); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrMalformedEvent, ev.Type, err)
		}
		orderID, err := kernel.UUIDFromString(p.OrderID)
		if err != nil {
			return err
		}
		cmd, err := commands.NewDeliverOrderCommand(orderID)
		if err != nil {
			return err
		}
		return d.deliver.Handle(ctx, cmd)
	}

	return fmt.Errorf("%w: %q", ErrUnknownEventType, ev.Type)
}
