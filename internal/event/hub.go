package event

import (
	"encoding/json"
	"errors"

	"github.com/google/uuid"
)

var ErrDropped = errors.New("event dropped: broadcast queue full")

// Sender is the part of the websocket hub events are written to. locationID
// limits delivery to the clients allowed to see that location.
type Sender interface {
	Send(message []byte, locationID *uuid.UUID) bool
}

type hubPublisher struct {
	s Sender
}

// NewHubPublisher broadcasts events to websocket clients.
func NewHubPublisher(s Sender) Publisher {
	return &hubPublisher{s: s}
}

func (p *hubPublisher) Publish(_ Topic, e StatusEvent) error {
	msg, err := json.Marshal(e)
	if err != nil {
		return err
	}
	if !p.s.Send(msg, e.LocationID) {
		return ErrDropped
	}
	return nil
}
