package ws

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gorilla/websocket"
)

type Client struct {
	Conn *websocket.Conn
	Send chan []byte
}

type Hub struct {
	Clients       map[string]map[*websocket.Conn]*Client // Theo documentID hoặc sessionID
	GlobalClients map[*websocket.Conn]*Client            // Dành cho broadcast chung
	Mutex         sync.RWMutex
}

var H = Hub{
	Clients:       make(map[string]map[*websocket.Conn]*Client),
	GlobalClients: make(map[*websocket.Conn]*Client),
}

// PageUpdate báo cho client biết một trang vừa có transcription/summary mới
type PageUpdate struct {
	Type       string `json:"type"` // "page_updated"
	DocumentID string `json:"document_id"`
	PageNumber int    `json:"page_number"`
	Field      string `json:"field"` // "transcription" | "summary"
}

// QuestionUpdate báo cho client trong phiên học có câu hỏi mới được trả lời
type QuestionUpdate struct {
	Type       string `json:"type"` // "question_created"
	SessionID  string `json:"session_id"`
	QuestionID string `json:"question_id"`
}

// Register theo key riêng (documentID hoặc sessionID)
func (h *Hub) Register(key string, conn *websocket.Conn) {
	h.Mutex.Lock()
	defer h.Mutex.Unlock()

	if _, ok := h.Clients[key]; !ok {
		h.Clients[key] = make(map[*websocket.Conn]*Client)
	}

	client := &Client{
		Conn: conn,
		Send: make(chan []byte, 256),
	}

	h.Clients[key][conn] = client

	go h.writePump(client)
}

// Register global cho trang danh sách
func (h *Hub) RegisterGlobal(conn *websocket.Conn) {
	h.Mutex.Lock()
	defer h.Mutex.Unlock()

	client := &Client{
		Conn: conn,
		Send: make(chan []byte, 256),
	}

	h.GlobalClients[conn] = client

	go h.writePump(client)
}

// Broadcast theo key
func (h *Hub) Broadcast(key string, data []byte) {
	h.Mutex.RLock()
	defer h.Mutex.RUnlock()

	if clients, ok := h.Clients[key]; ok {
		for _, client := range clients {
			select {
			case client.Send <- data:
			default:
			}
		}
	}
}

// Broadcast toàn bộ global clients
func (h *Hub) BroadcastGlobal(data []byte) {
	h.Mutex.RLock()
	defer h.Mutex.RUnlock()

	for _, client := range h.GlobalClients {
		select {
		case client.Send <- data:
		default:
		}
	}
}

// SendPageUpdate gửi thông báo trang đã được cập nhật tới các client đang
// xem document đó (client fetch lại trang để hiển thị transcript/summary mới)
func SendPageUpdate(documentID string, pageNumber int, field string) {
	update := PageUpdate{
		Type:       "page_updated",
		DocumentID: documentID,
		PageNumber: pageNumber,
		Field:      field,
	}
	data, err := json.Marshal(update)
	if err != nil {
		log.Println("JSON marshal error:", err)
		return
	}
	H.Broadcast(documentID, data)
}

// SendQuestionCreated báo có câu hỏi mới trong phiên học
func SendQuestionCreated(sessionID, questionID string) {
	update := QuestionUpdate{
		Type:       "question_created",
		SessionID:  sessionID,
		QuestionID: questionID,
	}
	data, err := json.Marshal(update)
	if err != nil {
		log.Println("JSON marshal error:", err)
		return
	}
	H.Broadcast(sessionID, data)
}

// Unregister client theo key
func (h *Hub) Unregister(key string, conn *websocket.Conn) {
	h.Mutex.Lock()
	defer h.Mutex.Unlock()

	if clients, ok := h.Clients[key]; ok {
		if client, ok := clients[conn]; ok {
			close(client.Send)
			delete(clients, conn)
		}
		if len(clients) == 0 {
			delete(h.Clients, key)
		}
	}
}

// Unregister global client
func (h *Hub) UnregisterGlobal(conn *websocket.Conn) {
	h.Mutex.Lock()
	defer h.Mutex.Unlock()

	if client, ok := h.GlobalClients[conn]; ok {
		close(client.Send)
		delete(h.GlobalClients, conn)
	}
}

// GetStats trả về số client đang kết nối (cho health check)
func (h *Hub) GetStats() map[string]interface{} {
	h.Mutex.RLock()
	defer h.Mutex.RUnlock()

	total := 0
	for _, clients := range h.Clients {
		total += len(clients)
	}

	return map[string]interface{}{
		"channels":       len(h.Clients),
		"clients":        total,
		"global_clients": len(h.GlobalClients),
	}
}

// Write pump chung cho mọi client
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
