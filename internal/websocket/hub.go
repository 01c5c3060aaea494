package notifyws

import (
	"encoding/json"
	"log"
	"strconv"

	"github.com/RamChoudhary007/ScholarGuide/internal/services"
	websocket "github.com/gofiber/contrib/websocket"
)

// Hub fans appointment events out to the connected sessions of the two
// parties. Push-only: client frames are drained and discarded.
type Hub struct {
	clients    map[string]map[*Client]struct{}
	register   chan *Client
	unregister chan *Client
	events     chan services.AppointmentEvent
}

type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	userID string
	send   chan []byte
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		events:     make(chan services.AppointmentEvent, 64),
	}
}

func NewClient(hub *Hub, conn *websocket.Conn, userID string) *Client {
	return &Client{
		hub:    hub,
		conn:   conn,
		userID: userID,
		send:   make(chan []byte, 32),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			set, ok := h.clients[client.userID]
			if !ok {
				set = make(map[*Client]struct{})
				h.clients[client.userID] = set
			}
			set[client] = struct{}{}
		case client := <-h.unregister:
			set, ok := h.clients[client.userID]
			if !ok {
				continue
			}
			if _, exists := set[client]; exists {
				delete(set, client)
				close(client.send)
			}
			if len(set) == 0 {
				delete(h.clients, client.userID)
			}
		case event := <-h.events:
			h.deliver(event)
		}
	}
}

func (h *Hub) Register(client *Client) {
	h.register <- client
}

func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// NotifyAppointment implements services.AppointmentNotifier. Drops the event
// when the hub's queue is full rather than blocking the request path.
func (h *Hub) NotifyAppointment(event services.AppointmentEvent) {
	select {
	case h.events <- event:
	default:
		log.Printf("notification hub queue full, dropping event for appointment %d", event.AppointmentID)
	}
}

func (h *Hub) deliver(event services.AppointmentEvent) {
	payload, err := json.Marshal(event)
	if err != nil {
		log.Printf("notification hub encode event: %v", err)
		return
	}

	studentID := strconv.FormatInt(event.StudentUserID, 10)
	h.sendToUser(studentID, payload)
	if mentorID := strconv.FormatInt(event.MentorUserID, 10); mentorID != studentID {
		h.sendToUser(mentorID, payload)
	}
}

func (h *Hub) sendToUser(userID string, payload []byte) {
	set, ok := h.clients[userID]
	if !ok {
		return
	}

	for client := range set {
		select {
		case client.send <- payload:
		default:
			delete(set, client)
			close(client.send)
		}
	}
	if len(set) == 0 {
		delete(h.clients, userID)
	}
}

// ReadPump keeps the connection registered until the peer closes it.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.Unregister(c)
		_ = c.conn.Close()
	}()

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *Client) WritePump() {
	defer func() {
		_ = c.conn.Close()
	}()

	for payload := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			return
		}
	}
}
