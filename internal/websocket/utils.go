package websocket

import (
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait = 10 * time.Second
	// PongWait is how long a silent peer is kept before the read fails.
	PongWait = 60 * time.Second
	// PingPeriod must stay below PongWait.
	PingPeriod = 30 * time.Second
)

// WriteTyped sends a strongly-typed response payload over the WebSocket.
func WriteTyped(conn *websocket.Conn, v interface{}) error {
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(v)
}

// WriteError sends a typed ErrorResponse over the WebSocket.
func WriteError(conn *websocket.Conn, errMsg string) error {
	return WriteTyped(conn, ErrorResponse{
		Event: EventError,
		Error: errMsg,
	})
}

// WritePing sends a control ping. Safe to call concurrently with writers.
func WritePing(conn *websocket.Conn) error {
	return conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
}

// KeepAlive arms the read deadline and extends it on every pong.
func KeepAlive(conn *websocket.Conn) {
	_ = conn.SetReadDeadline(time.Now().Add(PongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(PongWait))
	})
}

// ReadJSON reads and decodes a message into the provided structure. Any
// received message counts as liveness.
func ReadJSON(conn *websocket.Conn, v interface{}) error {
	if err := conn.ReadJSON(v); err != nil {
		return err
	}
	return conn.SetReadDeadline(time.Now().Add(PongWait))
}
