package ws

import (
	"sync"

	"it-inventory/internal/scope"

	"github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const broadcastBuffer = 256

// Conn is the part of a websocket connection the hub writes to.
type Conn interface {
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// Client is a connection and the viewer it was authenticated as.
type Client struct {
	Conn   Conn
	Viewer scope.Viewer
}

// Message is a payload about rows recorded at LocationID. A nil LocationID
// marks a payload that is not tied to one location.
type Message struct {
	Payload    []byte
	LocationID *uuid.UUID
}

type Hub struct {
	Clients    map[Conn]scope.Viewer
	Register   chan *Client
	Unregister chan Conn
	Broadcast  chan Message
	mutex      sync.Mutex
	l          logrus.FieldLogger
}

func NewHub(l logrus.FieldLogger) *Hub {
	return &Hub{
		Clients:    make(map[Conn]scope.Viewer),
		Register:   make(chan *Client),
		Unregister: make(chan Conn),
		Broadcast:  make(chan Message, broadcastBuffer),
		l:          l,
	}
}

// Send queues payload for the clients allowed to see locationID. It never
// blocks; when the queue is full the message is dropped and false is returned.
func (h *Hub) Send(payload []byte, locationID *uuid.UUID) bool {
	select {
	case h.Broadcast <- Message{Payload: payload, LocationID: locationID}:
		return true
	default:
		h.l.Warn("websocket broadcast queue full, dropping message")
		return false
	}
}

func (h *Hub) ClientCount() int {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return len(h.Clients)
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.add(client)
		case conn := <-h.Unregister:
			h.remove(conn)
		case msg := <-h.Broadcast:
			h.deliver(msg)
		}
	}
}

func (h *Hub) add(client *Client) {
	h.mutex.Lock()
	h.Clients[client.Conn] = client.Viewer
	h.mutex.Unlock()
	h.l.WithField("user_id", client.Viewer.UserID).Debug("websocket client connected")
}

func (h *Hub) remove(conn Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	if _, ok := h.Clients[conn]; ok {
		delete(h.Clients, conn)
		conn.Close()
	}
}

// deliver writes msg to every client whose viewer may see its location.
func (h *Hub) deliver(msg Message) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	for conn, viewer := range h.Clients {
		if !viewer.CanSeeLocation(msg.LocationID) {
			continue
		}
		if err := conn.WriteMessage(websocket.TextMessage, msg.Payload); err != nil {
			h.l.WithError(err).Debug("dropping websocket client")
			conn.Close()
			delete(h.Clients, conn)
		}
	}
}

// Serve holds one authenticated connection until the client goes away.
func (h *Hub) Serve(c *websocket.Conn, v scope.Viewer) {
	h.Register <- &Client{Conn: c, Viewer: v}
	defer func() { h.Unregister <- c }()

	for {
		if _, _, err := c.ReadMessage(); err != nil {
			break
		}
	}
}
