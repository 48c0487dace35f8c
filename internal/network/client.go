// Package network provides the WebSocket client for a remote input server.
package network

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"fakeinput/internal/protocol"

	"github.com/gorilla/websocket"
)

var ErrClosed = errors.New("connection closed")

const writeWait = 10 * time.Second

// Client is a connection to a remote input server
type Client struct {
	conn *websocket.Conn

	writeMu sync.Mutex
	nextID  atomic.Int64

	mu      sync.Mutex
	pending map[string]chan protocol.ResultPayload
	keys    []chan protocol.KeysResponsePayload
	err     error
	done    chan struct{}
}

// Dial connects to the server at addr (host:port) and authenticates with
// token when it is not empty.
func Dial(ctx context.Context, addr, token string) (*Client, error) {
	u := url.URL{Scheme: "ws", Host: addr, Path: "/ws"}
	log.Printf("WS Client: Connecting to %s", u.String())

	header := http.Header{}
	if token != "" {
		header.Set("Authorization", "Bearer "+token)
	}
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, u.String(), header)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", addr, err)
	}

	c := &Client{
		conn:    conn,
		pending: make(map[string]chan protocol.ResultPayload),
		done:    make(chan struct{}),
	}
	if token != "" {
		if err := c.write(protocol.TypeAuth, protocol.AuthPayload{Token: token, ClientName: "fakeinput"}); err != nil {
			conn.Close()
			return nil, err
		}
	}
	go c.readPump()
	return c, nil
}

func (c *Client) readPump() {
	defer c.fail(ErrClosed)

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("WS Client: Read error: %v", err)
			}
			c.fail(fmt.Errorf("%w: %v", ErrClosed, err))
			return
		}

		var msg protocol.Message
		if err := json.Unmarshal(data, &msg); err != nil {
			log.Printf("WS Client: Invalid message: %v", err)
			continue
		}
		c.handleMessage(msg)
	}
}

func (c *Client) handleMessage(msg protocol.Message) {
	switch msg.Type {
	case protocol.TypeResult:
		var payload protocol.ResultPayload
		if err := msg.Decode(&payload); err != nil {
			log.Printf("WS Client: Invalid result: %v", err)
			return
		}
		c.mu.Lock()
		ch, ok := c.pending[payload.ID]
		delete(c.pending, payload.ID)
		c.mu.Unlock()
		// Results of other clients' runs are broadcast too.
		if ok {
			ch <- payload
		}

	case protocol.TypeKeysResponse:
		var payload protocol.KeysResponsePayload
		if err := msg.Decode(&payload); err != nil {
			log.Printf("WS Client: Invalid key table: %v", err)
			return
		}
		c.mu.Lock()
		if len(c.keys) > 0 {
			ch := c.keys[0]
			c.keys = c.keys[1:]
			ch <- payload
		}
		c.mu.Unlock()
	}
}

// fail records the first error and wakes every waiter
func (c *Client) fail(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return
	}
	c.err = err
	close(c.done)
}

func (c *Client) write(t protocol.MessageType, payload interface{}) error {
	msg, err := protocol.NewMessage(t, payload)
	if err != nil {
		return err
	}
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteMessage(websocket.TextMessage, data)
}

// Run sends a run request and waits for its result. An empty ID is filled in.
func (c *Client) Run(ctx context.Context, req protocol.RunPayload) (protocol.ResultPayload, error) {
	if req.ID == "" {
		req.ID = "run-" + strconv.FormatInt(c.nextID.Add(1), 10)
	}

	ch := make(chan protocol.ResultPayload, 1)
	c.mu.Lock()
	if c.err != nil {
		c.mu.Unlock()
		return protocol.ResultPayload{}, c.err
	}
	c.pending[req.ID] = ch
	c.mu.Unlock()

	if err := c.write(protocol.TypeRun, req); err != nil {
		c.mu.Lock()
		delete(c.pending, req.ID)
		c.mu.Unlock()
		return protocol.ResultPayload{}, fmt.Errorf("%w: %v", ErrClosed, err)
	}

	select {
	case res := <-ch:
		if !res.OK {
			return res, fmt.Errorf("remote run failed: %s", res.Error)
		}
		return res, nil
	case <-c.done:
		return protocol.ResultPayload{}, c.closedErr()
	case <-ctx.Done():
		c.mu.Lock()
		delete(c.pending, req.ID)
		c.mu.Unlock()
		return protocol.ResultPayload{}, ctx.Err()
	}
}

// Keys asks for the server's key table.
func (c *Client) Keys(ctx context.Context) (protocol.KeysResponsePayload, error) {
	ch := make(chan protocol.KeysResponsePayload, 1)
	c.mu.Lock()
	if c.err != nil {
		c.mu.Unlock()
		return protocol.KeysResponsePayload{}, c.err
	}
	c.keys = append(c.keys, ch)
	c.mu.Unlock()

	if err := c.write(protocol.TypeKeysRequest, nil); err != nil {
		return protocol.KeysResponsePayload{}, fmt.Errorf("%w: %v", ErrClosed, err)
	}

	select {
	case res := <-ch:
		return res, nil
	case <-c.done:
		return protocol.KeysResponsePayload{}, c.closedErr()
	case <-ctx.Done():
		return protocol.KeysResponsePayload{}, ctx.Err()
	}
}

func (c *Client) closedErr() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// Close closes the connection
func (c *Client) Close() error {
	c.writeMu.Lock()
	c.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(writeWait))
	c.writeMu.Unlock()
	return c.conn.Close()
}
