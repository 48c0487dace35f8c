package api

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"fakeinput/internal/protocol"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Native clients send no Origin; browser pages must be served by us.
	CheckOrigin: sameOrigin,
}

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 50 * time.Second
	maxMessage = 1 << 20
)

// WSManager handles WebSocket connections and broadcasting
type WSManager struct {
	server     *Server
	clients    map[*WebSocketClient]bool
	clientsMu  sync.RWMutex
	closed     bool
	broadcast  chan []byte
	unregister chan *WebSocketClient
	shutdown   chan struct{}
}

// WebSocketClient represents a connected remote controller
type WebSocketClient struct {
	manager *WSManager
	conn    *websocket.Conn
	send    chan []byte
	ip      string
	authed  atomic.Bool
}

func newWSManager(s *Server) *WSManager {
	return &WSManager{
		server:     s,
		clients:    make(map[*WebSocketClient]bool),
		broadcast:  make(chan []byte),
		unregister: make(chan *WebSocketClient),
		shutdown:   make(chan struct{}),
	}
}

func (m *WSManager) start() {
	for {
		select {
		case client := <-m.unregister:
			m.clientsMu.Lock()
			if _, ok := m.clients[client]; ok {
				delete(m.clients, client)
				close(client.send)
				log.Printf("WS: Client unregistered from %s. Total clients: %d", client.ip, len(m.clients))
			}
			m.clientsMu.Unlock()

		case message := <-m.broadcast:
			m.broadcastMessage(message)

		case <-m.shutdown:
			m.clientsMu.Lock()
			m.closed = true
			for client := range m.clients {
				delete(m.clients, client)
				close(client.send)
			}
			m.clientsMu.Unlock()
			return
		}
	}
}

// broadcastMessage queues a message for every authenticated client, dropping
// clients that cannot keep up
func (m *WSManager) broadcastMessage(message []byte) {
	m.clientsMu.Lock()
	defer m.clientsMu.Unlock()

	for client := range m.clients {
		if !client.authed.Load() {
			continue
		}
		select {
		case client.send <- message:
		default:
			close(client.send)
			delete(m.clients, client)
		}
	}
}

// Broadcast sends a message to every authenticated client.
func (m *WSManager) Broadcast(t protocol.MessageType, payload interface{}) {
	data, err := encode(t, payload)
	if err != nil {
		log.Printf("WS: Failed to marshal broadcast message: %v", err)
		return
	}
	select {
	case m.broadcast <- data:
	case <-m.shutdown:
	}
}

func (m *WSManager) add(client *WebSocketClient) bool {
	m.clientsMu.Lock()
	defer m.clientsMu.Unlock()
	if m.closed {
		return false
	}
	m.clients[client] = true
	log.Printf("WS: New client registered from %s. Total clients: %d", client.ip, len(m.clients))
	return true
}

// ClientCount returns the number of connected clients
func (m *WSManager) ClientCount() int {
	m.clientsMu.RLock()
	defer m.clientsMu.RUnlock()
	return len(m.clients)
}

func (m *WSManager) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WS: Failed to upgrade connection: %v", err)
		return
	}

	client := &WebSocketClient{
		manager: m,
		conn:    conn,
		send:    make(chan []byte, 256),
		ip:      r.RemoteAddr,
	}
	client.authed.Store(m.server.authorized(r))

	// Registered before the pumps start so replies are never dropped.
	if !m.add(client) {
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}

// readPump pumps messages from the websocket connection to the hub.
func (c *WebSocketClient) readPump() {
	defer func() {
		select {
		case c.manager.unregister <- c:
		case <-c.manager.shutdown:
		}
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessage)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error { c.conn.SetReadDeadline(time.Now().Add(pongWait)); return nil })

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WS: Read error: %v", err)
			}
			break
		}

		if !c.handleMessage(message) {
			break
		}
	}
}

// writePump pumps messages from the hub to the websocket connection.
func (c *WebSocketClient) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel.
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// reply queues a message for this client only. The registry lock keeps it
// from racing with the hub closing the channel.
func (c *WebSocketClient) reply(t protocol.MessageType, payload interface{}) {
	data, err := encode(t, payload)
	if err != nil {
		log.Printf("WS: Failed to marshal reply: %v", err)
		return
	}
	m := c.manager
	m.clientsMu.RLock()
	defer m.clientsMu.RUnlock()
	if !m.clients[c] {
		return
	}
	select {
	case c.send <- data:
	default:
		log.Printf("WS: Dropping reply to slow client %s", c.ip)
	}
}

// handleMessage returns false when the connection should be closed
func (c *WebSocketClient) handleMessage(data []byte) bool {
	var msg protocol.Message
	if err := json.Unmarshal(data, &msg); err != nil {
		log.Printf("WS: Invalid message format: %v", err)
		return true
	}

	if msg.Type == protocol.TypeAuth {
		var payload protocol.AuthPayload
		if err := msg.Decode(&payload); err != nil || !c.manager.server.checkToken(payload.Token) {
			log.Printf("WS: Rejected auth from %s", c.ip)
			return false
		}
		log.Printf("WS: Client %q authenticated from %s", payload.ClientName, c.ip)
		c.authed.Store(true)
		return true
	}

	if !c.authed.Load() {
		log.Printf("WS: Closing unauthenticated client %s", c.ip)
		return false
	}

	switch msg.Type {
	case protocol.TypeRun:
		var payload protocol.RunPayload
		if err := msg.Decode(&payload); err != nil {
			log.Printf("WS: Invalid run payload: %v", err)
			c.reply(protocol.TypeResult, protocol.ResultPayload{Error: err.Error()})
			return true
		}
		log.Printf("WS: Run %q from %s", payload.ID, c.ip)

		// Runs can take a while; keep reading pings meanwhile.
		go c.manager.server.Run(c.manager.server.baseCtx, payload)

	case protocol.TypeKeysRequest:
		s := c.manager.server
		c.reply(protocol.TypeKeysResponse, protocol.KeysResponsePayload{
			Backend: s.backend,
			Keys:    s.keys.Describe(),
		})

	case protocol.TypePing:
		c.reply(protocol.TypePing, nil)

	default:
		log.Printf("WS: Ignoring message of type %q", msg.Type)
	}
	return true
}

func encode(t protocol.MessageType, payload interface{}) ([]byte, error) {
	msg, err := protocol.NewMessage(t, payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(msg)
}
