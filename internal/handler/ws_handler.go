package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stemsi/quizxmentor-backend/internal/events"
	"github.com/stemsi/quizxmentor-backend/internal/middleware"
	"github.com/stemsi/quizxmentor-backend/internal/service"
	ws "github.com/stemsi/quizxmentor-backend/internal/websocket"
)

// buildUpgrader creates a WebSocket upgrader with origin validation.
// allowedOrigins comes from config.Config.AllowedOrigins.
// An empty slice permits all origins (development mode).
func buildUpgrader(allowedOrigins []string) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if len(allowedOrigins) == 0 {
				return true
			}
			origin := r.Header.Get("Origin")
			for _, allowed := range allowedOrigins {
				if strings.EqualFold(allowed, origin) {
					return true
				}
			}
			return false
		},
	}
}

// WSHandler streams live admin stats.
type WSHandler struct {
	statsService *service.StatsService
	bus          *events.Bus
	log          zerolog.Logger
	upgrader     websocket.Upgrader
	pingPeriod   time.Duration
}

// NewWSHandler creates a new WSHandler.
func NewWSHandler(statsService *service.StatsService, bus *events.Bus, log zerolog.Logger, allowedOrigins []string) *WSHandler {
	return &WSHandler{
		statsService: statsService,
		bus:          bus,
		log:          log.With().Str("component", "ws_handler").Logger(),
		upgrader:     buildUpgrader(allowedOrigins),
		pingPeriod:   ws.PingPeriod,
	}
}

// AdminStatsStream godoc
// WS /ws/admin/stats
// Sends a stats snapshot on connect and again after every quiz event.
func (h *WSHandler) AdminStatsStream(c *gin.Context) {
	sess := middleware.GetSession(c)
	if sess == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	wsLog := h.log.With().Int("user_id", sess.UserID).Logger()

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	feed, unsubscribe, err := h.bus.Subscribe(ctx)
	if err != nil {
		wsLog.Error().Err(err).Msg("Subscribe to quiz events failed")
		_ = ws.WriteError(conn, "live updates unavailable")
		return
	}
	defer unsubscribe()

	wsLog.Info().Msg("Admin stats stream connected")
	defer wsLog.Debug().Msg("Admin stats stream closed")

	// Only this goroutine writes data frames; the reader hands requests over.
	requests := make(chan ws.Action, 4)
	go h.readLoop(ctx, cancel, conn, requests, wsLog)

	if err := h.pushStats(ctx, conn, "initial"); err != nil {
		return
	}

	ticker := time.NewTicker(h.pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-feed:
			if !ok {
				return
			}
			if err := h.pushStats(ctx, conn, string(ev.Type)); err != nil {
				return
			}
		case action := <-requests:
			var err error
			switch action {
			case ws.ActionPing:
				err = ws.WriteTyped(conn, ws.PongResponse{Event: ws.EventPong})
			case ws.ActionRefresh:
				err = h.pushStats(ctx, conn, "refresh")
			default:
				err = ws.WriteError(conn, "unknown action: "+string(action))
			}
			if err != nil {
				return
			}
		case <-ticker.C:
			if err := ws.WritePing(conn); err != nil {
				return
			}
		}
	}
}

// readLoop consumes client messages until the peer goes away, then cancels
// the stream.
func (h *WSHandler) readLoop(ctx context.Context, cancel context.CancelFunc, conn *websocket.Conn, out chan<- ws.Action, wsLog zerolog.Logger) {
	defer cancel()
	ws.KeepAlive(conn)

	for {
		var req ws.Request
		if err := ws.ReadJSON(conn, &req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				wsLog.Warn().Err(err).Msg("Unexpected close")
			}
			return
		}
		select {
		case out <- req.Action:
		case <-ctx.Done():
			return
		}
	}
}

func (h *WSHandler) pushStats(ctx context.Context, conn *websocket.Conn, reason string) error {
	stats, err := h.statsService.AdminStats(ctx)
	if err != nil {
		h.log.Error().Err(err).Msg("Load admin stats failed")
		return ws.WriteError(conn, "stats unavailable")
	}
	return ws.WriteTyped(conn, ws.StatsResponse{
		Event:  ws.EventStats,
		Reason: reason,
		Stats:  *stats,
	})
}
