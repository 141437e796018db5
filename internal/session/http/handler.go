package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/meetroom-labs/zoom-booking-backend/internal/auth"
	"github.com/meetroom-labs/zoom-booking-backend/internal/session"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

// forcedLogoutMessage is the wire shape pushed to the client.
type forcedLogoutMessage struct {
	Type   string `json:"type"`
	Reason string `json:"reason"`
}

type Handler struct {
	jwtManager *auth.JWTManager
	sessions   session.Service
	hub        *session.Hub
	upgrader   websocket.Upgrader
}

func NewHandler(jwtManager *auth.JWTManager, sessions session.Service, hub *session.Hub) *Handler {
	return &Handler{
		jwtManager: jwtManager,
		sessions:   sessions,
		hub:        hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// CORS is enforced on the REST surface; the socket only ever
			// pushes logout notices, so any origin may listen.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Serve upgrades the connection and subscribes it to forced-logout events for
// its session. Browsers cannot set an Authorization header on a websocket
// handshake, so the token travels as a query parameter.
func (h *Handler) Serve(c *gin.Context) {
	tokenStr := c.Query("token")
	if tokenStr == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
		return
	}

	claims, err := h.jwtManager.ParseAndValidate(tokenStr)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
		return
	}
	if err := h.sessions.Validate(c.Request.Context(), claims.SessionID); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "session expired or terminated"})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade already wrote the error response.
		return
	}

	sub := h.hub.Subscribe(claims.UserID, claims.SessionID)

	go h.writePump(conn, sub)
	go h.readPump(conn, sub)
}

// writePump pushes hub events and keepalive pings until the subscription or
// the connection dies.
func (h *Handler) writePump(conn *websocket.Conn, sub *session.Subscription) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		conn.Close()
	}()

	for {
		select {
		case event, ok := <-sub.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			msg := forcedLogoutMessage{Type: "force_logout", Reason: event.Reason}
			if err := conn.WriteJSON(msg); err != nil {
				return
			}
			// The session behind this connection is gone; close after the
			// notice instead of streaming to a dead login.
			conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "session terminated"),
				time.Now().Add(writeWait))
			return
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump discards inbound frames; its job is detecting the close.
func (h *Handler) readPump(conn *websocket.Conn, sub *session.Subscription) {
	defer func() {
		h.hub.Unsubscribe(sub)
		conn.Close()
	}()

	conn.SetReadLimit(512)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
