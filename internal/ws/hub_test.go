package ws

import (
	"errors"
	"testing"

	"it-inventory/internal/model"
	"it-inventory/internal/scope"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
)

type fakeConn struct {
	received [][]byte
	closed   bool
	fail     bool
}

func (c *fakeConn) WriteMessage(_ int, data []byte) error {
	if c.fail {
		return errors.New("broken pipe")
	}
	c.received = append(c.received, data)
	return nil
}

func (c *fakeConn) Close() error {
	c.closed = true
	return nil
}

func TestSendDropsWhenQueueIsFull(t *testing.T) {
	l, hook := test.NewNullLogger()
	h := NewHub(l)

	for i := 0; i < broadcastBuffer; i++ {
		assert.True(t, h.Send([]byte("x"), nil))
	}
	assert.False(t, h.Send([]byte("overflow"), nil))
	assert.Len(t, h.Broadcast, broadcastBuffer)
	assert.Equal(t, "websocket broadcast queue full, dropping message", hook.LastEntry().Message)
	assert.Equal(t, 0, h.ClientCount())
}

func TestDeliverHonoursViewerLocation(t *testing.T) {
	l, _ := test.NewNullLogger()
	h := NewHub(l)
	jkt, sby := uuid.New(), uuid.New()

	admin := &fakeConn{}
	jktStaff := &fakeConn{}
	sbyStaff := &fakeConn{}
	homeless := &fakeConn{}
	h.add(&Client{Conn: admin, Viewer: scope.Viewer{Role: model.RoleAdmin}})
	h.add(&Client{Conn: jktStaff, Viewer: scope.Viewer{Role: model.RoleITStaff, LocationID: &jkt}})
	h.add(&Client{Conn: sbyStaff, Viewer: scope.Viewer{Role: model.RoleITStaff, LocationID: &sby}})
	h.add(&Client{Conn: homeless, Viewer: scope.Viewer{Role: model.RoleITStaff}})
	assert.Equal(t, 4, h.ClientCount())

	h.deliver(Message{Payload: []byte("jkt"), LocationID: &jkt})
	h.deliver(Message{Payload: []byte("sby"), LocationID: &sby})
	h.deliver(Message{Payload: []byte("asset")})

	assert.Equal(t, [][]byte{[]byte("jkt"), []byte("sby"), []byte("asset")}, admin.received)
	assert.Equal(t, [][]byte{[]byte("jkt")}, jktStaff.received)
	assert.Equal(t, [][]byte{[]byte("sby")}, sbyStaff.received)
	assert.Empty(t, homeless.received)
}

func TestDeliverDropsFailingClient(t *testing.T) {
	l, _ := test.NewNullLogger()
	h := NewHub(l)

	broken := &fakeConn{fail: true}
	h.add(&Client{Conn: broken, Viewer: scope.Viewer{Role: model.RoleAdmin}})
	h.deliver(Message{Payload: []byte("x")})

	assert.True(t, broken.closed)
	assert.Equal(t, 0, h.ClientCount())

	// unknown connections are ignored
	h.remove(&fakeConn{})
	assert.Equal(t, 0, h.ClientCount())
}
