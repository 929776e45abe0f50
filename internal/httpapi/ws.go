package httpapi

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"wellness-platform/internal/call"
	"wellness-platform/internal/signaling"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	wsWriteWait  = 10 * time.Second
	wsPongWait   = 60 * time.Second
	wsPingPeriod = 50 * time.Second

	// outbound buffer per connection; a client that cannot drain this is
	// dropped rather than allowed to stall the delivery goroutine
	wsSendBuffer = 16
)

// Gateway bridges a client websocket onto the signaling plane. While the
// socket is open the user is attached to the call manager, so invites create
// ringing sessions server-side, and every envelope on their personal channel
// is mirrored down the wire for the UI to react to.
type Gateway struct {
	Transport signaling.Transport
	Calls     *call.Manager
	Log       *slog.Logger

	upgrader websocket.Upgrader
}

func NewGateway(transport signaling.Transport, calls *call.Manager, log *slog.Logger) *Gateway {
	if log == nil {
		log = slog.Default()
	}
	return &Gateway{
		Transport: transport,
		Calls:     calls,
		Log:       log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Auth happens via the bearer token before the upgrade; the
			// browser origin adds nothing on top of that.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Handle upgrades the request and serves the connection until either side
// closes it.
func (g *Gateway) Handle(c *gin.Context) {
	userID, workspaceID, ok := identity(c)
	if !ok {
		return
	}

	conn, err := g.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error
		g.Log.Warn("websocket upgrade failed", "user_id", userID, "err", err)
		return
	}

	if err := g.Calls.Attach(c.Request.Context(), workspaceID, userID); err != nil {
		g.Log.Warn("call attach failed", "user_id", userID, "err", err)
		_ = conn.Close()
		return
	}
	defer g.Calls.Detach(userID)

	send := make(chan signaling.Envelope, wsSendBuffer)
	sub, err := g.Transport.Subscribe(c.Request.Context(), signaling.UserTopic(userID), func(env signaling.Envelope) {
		select {
		case send <- env:
		default:
			g.Log.Warn("websocket send buffer full, dropping", "user_id", userID, "kind", string(env.Kind))
		}
	})
	if err != nil {
		g.Log.Warn("personal channel subscribe failed", "user_id", userID, "err", err)
		_ = conn.Close()
		return
	}
	defer func() { _ = sub.Close() }()

	g.Log.Info("websocket attached", "user_id", userID, "workspace_id", workspaceID)

	done := make(chan struct{})
	go g.writePump(conn, send, done)
	g.readPump(conn)
	close(done)
}

// readPump discards inbound frames; clients drive calls over the REST
// surface. It exists to observe pongs and connection loss.
func (g *Gateway) readPump(conn *websocket.Conn) {
	defer func() { _ = conn.Close() }()
	conn.SetReadLimit(1024)
	_ = conn.SetReadDeadline(time.Now().Add(wsPongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(wsPongWait))
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (g *Gateway) writePump(conn *websocket.Conn, send <-chan signaling.Envelope, done <-chan struct{}) {
	ticker := time.NewTicker(wsPingPeriod)
	defer func() {
		ticker.Stop()
		_ = conn.Close()
	}()
	for {
		select {
		case env := <-send:
			payload, err := json.Marshal(env)
			if err != nil {
				continue
			}
			_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-done:
			_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		}
	}
}
