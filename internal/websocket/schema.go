package websocket

import "github.com/stemsi/quizxmentor-backend/internal/model"

// ─── Actions (Client → Server) ──────────────────────────────────────

type Action string

const (
	ActionPing    Action = "ping"
	ActionRefresh Action = "refresh"
)

// Request is any message sent by a dashboard client.
type Request struct {
	Action Action `json:"action"`
}

// ─── Events (Server → Client) ───────────────────────────────────────

type Event string

const (
	EventStats Event = "stats"
	EventError Event = "error"
	EventPong  Event = "pong"
)

// StatsResponse carries a fresh admin stats snapshot. Reason names what
// triggered it: "initial", "refresh", or a quiz event type.
type StatsResponse struct {
	Event  Event            `json:"event"`
	Reason string           `json:"reason"`
	Stats  model.AdminStats `json:"stats"`
}

type ErrorResponse struct {
	Event Event  `json:"event"`
	Error string `json:"error"`
}

type PongResponse struct {
	Event Event `json:"event"`
}
