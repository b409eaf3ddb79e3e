package ws

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"

	"quiz-parlement-backend/logger"
)

type Client struct {
	Conn *websocket.Conn
	Send chan []byte
}

// Hub garde les tableaux de bord admin connectés pour leur pousser les
// événements de changement de contenu.
type Hub struct {
	Clients map[*websocket.Conn]*Client
	Mutex   sync.RWMutex
}

var H = Hub{
	Clients: make(map[*websocket.Conn]*Client),
}

// ContentEvent signale qu'un niveau ou une question a changé.
type ContentEvent struct {
	Type   string `json:"type"`
	Entity string `json:"entity"`
	Action string `json:"action"`
	ID     string `json:"id,omitempty"`
}

func (h *Hub) Register(conn *websocket.Conn) {
	h.Mutex.Lock()
	defer h.Mutex.Unlock()

	client := &Client{
		Conn: conn,
		Send: make(chan []byte, 256),
	}
	h.Clients[conn] = client

	go h.readPump(conn)
	go h.writePump(client)
}

func (h *Hub) Unregister(conn *websocket.Conn) {
	h.Mutex.Lock()
	defer h.Mutex.Unlock()

	if client, ok := h.Clients[conn]; ok {
		close(client.Send)
		delete(h.Clients, conn)
	}
}

// Broadcast envoie un message à tous les clients connectés. Les clients dont
// le buffer est plein sont ignorés plutôt que de bloquer la diffusion.
func (h *Hub) Broadcast(data []byte) {
	h.Mutex.RLock()
	defer h.Mutex.RUnlock()

	for _, client := range h.Clients {
		select {
		case client.Send <- data:
		default:
		}
	}
}

// GetStats retourne l'état du hub pour le endpoint de santé.
func (h *Hub) GetStats() map[string]interface{} {
	h.Mutex.RLock()
	defer h.Mutex.RUnlock()
	return map[string]interface{}{
		"connected_clients": len(h.Clients),
	}
}

// NotifyContentChanged diffuse un événement content_changed aux tableaux de
// bord admin ouverts (entity: level|question, action: created|updated|
// deleted|reordered).
func NotifyContentChanged(entity, action, id string) {
	event := ContentEvent{
		Type:   "content_changed",
		Entity: entity,
		Action: action,
		ID:     id,
	}
	data, err := json.Marshal(event)
	if err != nil {
		logger.L.Errorw("sérialisation de l'événement impossible", "error", err)
		return
	}
	H.Broadcast(data)
}

func (h *Hub) readPump(conn *websocket.Conn) {
	defer h.Unregister(conn)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}

func (h *Hub) writePump(client *Client) {
	defer func() {
		client.Conn.WriteMessage(websocket.CloseMessage, []byte{})
		client.Conn.Close()
	}()
	for msg := range client.Send {
		if err := client.Conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			break
		}
	}
}
