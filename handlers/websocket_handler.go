package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"snake-sim/auth"
	"snake-sim/constants"
	"snake-sim/models"
	"snake-sim/sim"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins in development
	},
}

type WebSocketHandler struct {
	manager *sim.Manager
}

func NewWebSocketHandler(manager *sim.Manager) *WebSocketHandler {
	return &WebSocketHandler{
		manager: manager,
	}
}

func (h *WebSocketHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade error: %v", err)
		return
	}

	name := r.URL.Query().Get("name")

	viewer := &models.Viewer{
		ID:       uuid.New().String(),
		Send:     make(chan []byte, 256),
		Name:     name,
		JoinedAt: time.Now(),
	}

	if viewer.Name == "" {
		viewer.Name = "Viewer_" + viewer.ID[:8]
	}

	token, err := auth.GenerateToken(viewer.ID, viewer.Name)
	if err != nil {
		log.Printf("Failed to issue control token for viewer %s: %v", viewer.ID, err)
		conn.Close()
		return
	}

	h.manager.AddViewer(viewer)

	connectedMsg := map[string]any{
		"type": constants.MSG_CONNECTED,
		"viewer": map[string]any{
			"id":   viewer.ID,
			"name": viewer.Name,
		},
		"token": token,
	}
	jsonData, _ := json.Marshal(connectedMsg)
	select {
	case viewer.Send <- jsonData:
	default:
		log.Printf("Failed to send connected message to viewer %s", viewer.Name)
	}

	go h.writePump(viewer, conn)
	h.readPump(viewer, conn)
}

func (h *WebSocketHandler) readPump(viewer *models.Viewer, conn *websocket.Conn) {
	defer func() {
		h.manager.RemoveViewer(viewer.ID)
		conn.Close()
	}()

	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetReadLimit(maxMessageSize)
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error for %s: %v", viewer.Name, err)
			}
			break
		}

		var msgData map[string]any
		if err := json.Unmarshal(message, &msgData); err != nil {
			log.Printf("Error unmarshaling message from %s: %v", viewer.Name, err)
			continue
		}

		msgType, ok := msgData["type"].(string)
		if !ok {
			log.Printf("Message from %s missing type field", viewer.Name)
			continue
		}

		h.manager.HandleViewerMessage(viewer, msgType, msgData)
	}
}

func (h *WebSocketHandler) writePump(viewer *models.Viewer, conn *websocket.Conn) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		conn.Close()
	}()

	for {
		select {
		case message, ok := <-viewer.Send:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			// Add queued messages
			n := len(viewer.Send)
			for i := 0; i < n; i++ {
				w.Write([]byte{'\n'})
				w.Write(<-viewer.Send)
			}

			if err := w.Close(); err != nil {
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
