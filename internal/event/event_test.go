package event

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	full      bool
	sent      [][]byte
	locations []*uuid.UUID
}

func (f *fakeSender) Send(m []byte, locationID *uuid.UUID) bool {
	if f.full {
		return false
	}
	f.sent = append(f.sent, m)
	f.locations = append(f.locations, locationID)
	return true
}

type fakeWriter struct {
	msgs []kafka.Message
	err  error
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	f.msgs = append(f.msgs, msgs...)
	return f.err
}

func (f *fakeWriter) Close() error { return nil }

func TestHubPublisher(t *testing.T) {
	s := &fakeSender{}
	e := NewStatusEvent(MovementRecorded, uuid.New(), uuid.New(), map[string]int{"quantity": 3})
	loc := uuid.New()
	e.LocationID = &loc

	require.NoError(t, NewHubPublisher(s).Publish(TopicMovement, e))
	require.Len(t, s.sent, 1)
	require.NotNil(t, s.locations[0])
	assert.Equal(t, loc, *s.locations[0])

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(s.sent[0], &decoded))
	assert.Equal(t, "movement_recorded", decoded["type"])
	assert.Equal(t, e.EntityID.String(), decoded["entity_id"])

	s.full = true
	assert.ErrorIs(t, NewHubPublisher(s).Publish(TopicMovement, e), ErrDropped)
}

func TestKafkaPublisherRoutesByTopic(t *testing.T) {
	l, _ := test.NewNullLogger()
	w := &fakeWriter{}
	p := NewKafkaPublisher(l, w, map[Topic]string{
		TopicMovement: "inventory.movement.status",
		TopicAsset:    "inventory.asset.status",
	})
	e := NewStatusEvent(AssetDeleted, uuid.New(), uuid.New(), nil)

	require.NoError(t, p.Publish(TopicAsset, e))
	require.Len(t, w.msgs, 1)
	assert.Equal(t, "inventory.asset.status", w.msgs[0].Topic)
	assert.Equal(t, []byte(e.EntityID.String()), w.msgs[0].Key)

	var decoded StatusEvent
	require.NoError(t, json.Unmarshal(w.msgs[0].Value, &decoded))
	assert.Equal(t, AssetDeleted, decoded.Type)
}

func TestKafkaPublisherUnknownTopic(t *testing.T) {
	l, _ := test.NewNullLogger()
	p := NewKafkaPublisher(l, &fakeWriter{}, map[Topic]string{})

	assert.Error(t, p.Publish(TopicMovement, StatusEvent{}))
}

func TestKafkaPublisherLogsWriteFailure(t *testing.T) {
	l, hook := test.NewNullLogger()
	p := NewKafkaPublisher(l, &fakeWriter{err: errors.New("broker down")}, map[Topic]string{TopicAsset: "a"})

	assert.Error(t, p.Publish(TopicAsset, StatusEvent{}))
	assert.Equal(t, "Unable to publish event", hook.LastEntry().Message)
}

func TestMultiJoinsErrors(t *testing.T) {
	ok := &fakeSender{}
	full := &fakeSender{full: true}

	err := Multi(NewHubPublisher(ok), NewHubPublisher(full), Nop()).Publish(TopicAsset, StatusEvent{})

	assert.ErrorIs(t, err, ErrDropped)
	assert.Len(t, ok.sent, 1)
}
