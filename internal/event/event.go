// Package event publishes change notifications for assets and movements.
package event

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

type Type string

const (
	AssetCreated     Type = "asset_created"
	AssetUpdated     Type = "asset_updated"
	AssetDeleted     Type = "asset_deleted"
	MovementRecorded Type = "movement_recorded"
	MovementUpdated  Type = "movement_updated"
	MovementDeleted  Type = "movement_deleted"
)

// Topic groups events by the entity they describe.
type Topic string

const (
	TopicAsset    Topic = "asset"
	TopicMovement Topic = "movement"
)

// StatusEvent is the payload sent to websocket clients and Kafka consumers.
type StatusEvent struct {
	Type       Type        `json:"type"`
	EntityID   uuid.UUID   `json:"entity_id"`
	LocationID *uuid.UUID  `json:"location_id,omitempty"`
	ActorID    uuid.UUID   `json:"actor_id"`
	OccurredAt time.Time   `json:"occurred_at"`
	Body       interface{} `json:"body,omitempty"`
}

func NewStatusEvent(t Type, entityID, actorID uuid.UUID, body interface{}) StatusEvent {
	return StatusEvent{Type: t, EntityID: entityID, ActorID: actorID, OccurredAt: time.Now().UTC(), Body: body}
}

// Publisher delivers events. Implementations must not block the caller on
// slow consumers.
type Publisher interface {
	Publish(topic Topic, e StatusEvent) error
}

type nop struct{}

// Nop discards every event.
func Nop() Publisher { return nop{} }

func (nop) Publish(Topic, StatusEvent) error { return nil }

type multi []Publisher

// Multi publishes to every publisher and joins their errors.
func Multi(publishers ...Publisher) Publisher {
	return multi(publishers)
}

func (m multi) Publish(topic Topic, e StatusEvent) error {
	var errs []error
	for _, p := range m {
		if err := p.Publish(topic, e); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
