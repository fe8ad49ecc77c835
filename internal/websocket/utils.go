package websocket

import (
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait = 10 * time.Second

	// idleWait caps how long a silent connection holds the socket; a
	// test taker who walks away gets disconnected and their attempt
	// suspended rather than ticking to zero on a dead tab.
	idleWait = 45 * time.Minute
)

// WriteTyped marshals one event to the connection under a write deadline.
func WriteTyped(conn *websocket.Conn, v interface{}) error {
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(v)
}

// WriteError sends an error event without closing the connection.
func WriteError(conn *websocket.Conn, msg string) error {
	return WriteTyped(conn, ErrorResponse{Event: EventError, Error: msg})
}

// ReadJSON decodes the next client message, resetting the idle deadline.
func ReadJSON(conn *websocket.Conn, v interface{}) error {
	_ = conn.SetReadDeadline(time.Now().Add(idleWait))
	return conn.ReadJSON(v)
}
