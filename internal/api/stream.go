package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/SASASDAa/tgsg-sub000/internal/constants"
	"github.com/SASASDAa/tgsg-sub000/internal/engine"
	"github.com/SASASDAa/tgsg-sub000/internal/logging"
)

const (
	streamWriteWait  = 10 * time.Second
	streamPongWait   = 60 * time.Second
	streamPingPeriod = streamPongWait * 9 / 10
)

// The Mini App is served from Telegram's domain.
var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

// streamReply is sent back for a rejected action received on the socket.
type streamReply struct {
	Type    string `json:"type"`
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// StreamMatch upgrades to a websocket, pushes every Update of the match and
// accepts actions from the client in the same shape as SubmitAction.
func (h *GameHandler) StreamMatch(c *gin.Context) {
	matchID := c.Param("matchID")
	pid := playerID(c)
	s, err := h.matches.Get(matchID)
	if err != nil {
		status, body := matchErrorResponse(err)
		c.JSON(status, body)
		return
	}
	if !s.HasPlayer(pid) {
		c.JSON(http.StatusForbidden, gin.H{constants.JSONKeyError: constants.ErrPlayerNotInThisMatch})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logging.Warn(constants.ErrFailedUpgradeStream, logging.Fields{constants.LogFieldMatchID: matchID, constants.LogFieldReason: err.Error()})
		return
	}
	defer conn.Close()

	updates, unsubscribe := s.Subscribe()
	defer unsubscribe()

	replies := make(chan streamReply, 8)
	done := make(chan struct{})
	go h.readActions(conn, matchID, pid, replies, done)

	ping := time.NewTicker(streamPingPeriod)
	defer ping.Stop()
	for {
		select {
		case u, ok := <-updates:
			if !ok {
				_ = conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(streamWriteWait))
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(streamWriteWait))
			if err := conn.WriteJSON(u); err != nil {
				return
			}
		case r := <-replies:
			_ = conn.SetWriteDeadline(time.Now().Add(streamWriteWait))
			if err := conn.WriteJSON(r); err != nil {
				return
			}
		case <-ping.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(streamWriteWait)); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}

func (h *GameHandler) readActions(conn *websocket.Conn, matchID, pid string, replies chan<- streamReply, done chan<- struct{}) {
	defer close(done)
	_ = conn.SetReadDeadline(time.Now().Add(streamPongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(streamPongWait))
	})
	for {
		var req ActionRequest
		if err := conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logging.Debug("match stream closed", logging.Fields{constants.LogFieldMatchID: matchID, constants.LogFieldReason: err.Error()})
			}
			return
		}
		_ = conn.SetReadDeadline(time.Now().Add(streamPongWait))
		a := engine.Action{
			Type:         req.Type,
			SeatID:       pid,
			CardUUID:     req.CardUUID,
			Position:     req.Position,
			AttackerUUID: req.AttackerUUID,
			TargetUUID:   req.TargetUUID,
		}
		// accepted actions come back through the subscription
		if _, _, err := h.matches.SubmitAction(matchID, pid, a); err != nil {
			_, body := matchErrorResponse(err)
			msg, _ := body[constants.JSONKeyError].(string)
			details, _ := body[constants.JSONKeyDetails].(string)
			select {
			case replies <- streamReply{Type: "action_rejected", Error: msg, Details: details}:
			default:
			}
		}
	}
}
