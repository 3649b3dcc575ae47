package chat

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	chatservice "github.com/safarly/backend/internal/service/chat"
)

// WebSocketHandler is the realtime transport for the chat widget: inbound
// user messages in, state-machine events out.
type WebSocketHandler struct {
	manager  *chatservice.Manager
	upgrader websocket.Upgrader
}

// NewWebSocketHandler creates the websocket handler.
func NewWebSocketHandler(manager *chatservice.Manager) *WebSocketHandler {
	return &WebSocketHandler{
		manager: manager,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// RegisterWebSocketRoutes mounts the websocket endpoint.
func (h *WebSocketHandler) RegisterWebSocketRoutes(r chi.Router) {
	r.Get("/chat/ws/{sessionID}", h.handleWebSocket)
}

type inboundMessage struct {
	Type    string `json:"type"` // "message" or "close"
	Content string `json:"content,omitempty"`
}

type outgoingMessage struct {
	Type      string      `json:"type"`
	SessionID string      `json:"sessionId,omitempty"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp int64       `json:"timestamp"`
}

func (h *WebSocketHandler) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	snap, err := h.manager.Snapshot(r.Context(), sessionID)
	if err != nil {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[ws] upgrade failed for session=%s: %v", sessionID, err)
		return
	}
	defer conn.Close()

	events, cancel, err := h.manager.Subscribe(sessionID)
	if err != nil {
		return
	}
	defer cancel()

	// gorilla connections allow a single concurrent writer; everything goes
	// through outbound. stop tears both pump goroutines down once the read
	// loop exits, and done covers a dead writer.
	outbound := make(chan outgoingMessage, 32)
	stop := make(chan struct{})
	done := make(chan struct{})

	go func() {
		defer close(done)
		for {
			select {
			case msg := <-outbound:
				if err := conn.WriteJSON(msg); err != nil {
					log.Printf("[ws] write failed for session=%s: %v", sessionID, err)
					return
				}
			case <-stop:
				return
			}
		}
	}()

	outbound <- outgoingMessage{
		Type:      "snapshot",
		SessionID: sessionID,
		Data:      snap,
		Timestamp: time.Now().UnixMilli(),
	}

	go func() {
		for ev := range events {
			select {
			case outbound <- outgoingMessage{
				Type:      string(ev.Type),
				SessionID: sessionID,
				Data:      ev,
				Timestamp: time.Now().UnixMilli(),
			}:
			case <-stop:
				return
			case <-done:
				return
			}
		}
	}()

	h.readLoop(conn, sessionID, outbound, done)
	close(stop)
}

func (h *WebSocketHandler) readLoop(conn *websocket.Conn, sessionID string, outbound chan<- outgoingMessage, done <-chan struct{}) {
	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("[ws] read failed for session=%s: %v", sessionID, err)
			}
			return
		}

		var msg inboundMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			h.sendError(outbound, done, sessionID, "invalid message payload")
			continue
		}

		switch msg.Type {
		case "message":
			if err := h.manager.Submit(context.Background(), sessionID, msg.Content); err != nil {
				h.sendError(outbound, done, sessionID, err.Error())
			}
		case "close":
			if err := h.manager.Close(sessionID); err != nil {
				h.sendError(outbound, done, sessionID, err.Error())
			}
			return
		default:
			h.sendError(outbound, done, sessionID, "unknown message type")
		}
	}
}

func (h *WebSocketHandler) sendError(outbound chan<- outgoingMessage, done <-chan struct{}, sessionID, message string) {
	select {
	case outbound <- outgoingMessage{
		Type:      "error",
		SessionID: sessionID,
		Data:      map[string]string{"message": message},
		Timestamp: time.Now().UnixMilli(),
	}:
	case <-done:
	}
}
