package websocket

import (
	"fmt"

	"github.com/gorilla/websocket"
	"github.com/jaevor/go-nanoid"
)

var generateClientID func() string

func init() {
	var err error
	generateClientID, err = nanoid.Standard(21)
	if err != nil {
		panic(fmt.Sprintf("failed to initialize nanoid generator: %v", err))
	}
}

type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
	ID   string
}

func NewClient(hub *Hub, conn *websocket.Conn) *Client {
	return &Client{
		hub:  hub,
		conn: conn,
		send: make(chan []byte, 256),
		ID:   generateClientID(),
	}
}

// Queue schedules msg for this client only, dropping it if the buffer is full.
func (c *Client) Queue(msg []byte) bool {
	select {
	case c.send <- msg:
		return true
	default:
		return false
	}
}

func (c *Client) ReadPump() {
	defer func() {
		c.hub.Unregister <- c
		c.conn.Close()
	}()
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			break
		}
	}
}

func (c *Client) WritePump() {
	defer c.conn.Close()
	for {
		message, ok := <-c.send
		if !ok {
			c.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		}
		if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
			return
		}
	}
}
