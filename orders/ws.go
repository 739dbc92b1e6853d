package orders

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"campuskitchen/middleware"
	"campuskitchen/models"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
)

// The order feed delivers eventually-consistent snapshots; clients must not
// assume strict ordering between their own writes and the next push.

// adminRoom receives every order event for the dashboard's live lists.
const adminRoom = "admin"

type Client struct {
	Conn *websocket.Conn
	Send chan []byte
	Room string
}

type broadcastMsg struct {
	Room string
	Data []byte
}

type OrderHub struct {
	rooms      map[string]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan broadcastMsg
	done       chan struct{}
	mu         sync.Mutex
}

// Hub is the process-wide order event hub, started in main.
var Hub = NewOrderHub()

func NewOrderHub() *OrderHub {
	return &OrderHub{
		rooms:      make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan broadcastMsg, 64),
		done:       make(chan struct{}),
	}
}

func (h *OrderHub) Run() {
	for {
		select {
		case c := <-h.register:
			h.mu.Lock()
			if h.rooms[c.Room] == nil {
				h.rooms[c.Room] = make(map[*Client]bool)
			}
			h.rooms[c.Room][c] = true
			h.mu.Unlock()

		case c := <-h.unregister:
			h.mu.Lock()
			if conns := h.rooms[c.Room]; conns != nil && conns[c] {
				delete(conns, c)
				close(c.Send)
			}
			h.mu.Unlock()

		case m := <-h.broadcast:
			h.mu.Lock()
			for c := range h.rooms[m.Room] {
				select {
				case c.Send <- m.Data:
				default:
					close(c.Send)
					delete(h.rooms[m.Room], c)
				}
			}
			h.mu.Unlock()

		case <-h.done:
			h.mu.Lock()
			for room, conns := range h.rooms {
				for c := range conns {
					close(c.Send)
					c.Conn.Close()
				}
				delete(h.rooms, room)
			}
			h.mu.Unlock()
			return
		}
	}
}

func (h *OrderHub) Stop() {
	close(h.done)
}

// NotifyUser pushes an order event to the owning user's feed and to the
// admin dashboard feed. Best-effort; slow clients are dropped.
func (h *OrderHub) NotifyUser(userID string, event any) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Println("order event marshal:", err)
		return
	}
	h.broadcast <- broadcastMsg{Room: userID, Data: data}
	h.broadcast <- broadcastMsg{Room: adminRoom, Data: data}
}

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

// OrderUpdates upgrades to a websocket feed of the caller's order events.
// Admins join the shared dashboard room instead of a per-user one.
func OrderUpdates(hub *OrderHub) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		// Browsers cannot set headers on websocket dials, so the token
		// rides in the query string.
		token := r.URL.Query().Get("token")
		claims, err := middleware.ValidateJWT("Bearer " + token)
		if err != nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		room := claims.UserID
		if claims.Role == models.RoleAdmin {
			room = adminRoom
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Println("upgrade:", err)
			return
		}

		client := &Client{
			Conn: conn,
			Send: make(chan []byte, 256),
			Room: room,
		}
		hub.register <- client

		go func() {
			defer func() {
				hub.unregister <- client
				conn.Close()
			}()
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		go func() {
			for msg := range client.Send {
				if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
					return
				}
			}
		}()
	}
}
