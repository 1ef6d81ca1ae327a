package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/navid-fn/dexscout/internal/agent"
)

const (
	wsWriteTimeout = 10 * time.Second
	wsReadLimit    = 4 << 10
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The chat endpoint is origin-agnostic; auth, if any, sits in front.
	CheckOrigin: func(*http.Request) bool { return true },
}

type wsRequest struct {
	Text string `json:"text"`
}

// chatSocket upgrades the connection and answers each inbound text frame
// with one JSON reply, on the same dispatch path as POST /v1/message.
func (s *Server) chatSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.logger.Errorf("ws: upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	conn.SetReadLimit(wsReadLimit)
	ctx := c.Request.Context()

	for {
		var req wsRequest
		if err := conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.logger.Warnf("ws: read failed: %v", err)
			}
			return
		}
		if req.Text == "" {
			continue
		}

		msg := agent.Message{ID: uuid.NewString(), Text: req.Text}
		reply, matched := s.agent.Dispatch(ctx, msg)

		resp := messageResponse{
			ID:      msg.ID,
			Action:  reply.Action,
			Matched: matched,
			Text:    reply.Text,
			Data:    reply.Data,
		}
		if !matched {
			resp.Text = s.agent.HelpText()
		}

		conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
		if err := conn.WriteJSON(resp); err != nil {
			s.logger.Warnf("ws: write failed: %v", err)
			return
		}
	}
}
