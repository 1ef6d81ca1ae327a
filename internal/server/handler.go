package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/navid-fn/dexscout/internal/agent"
)

type messageRequest struct {
	Text string `json:"text" binding:"required"`
}

type messageResponse struct {
	ID      string `json:"id"`
	Action  string `json:"action,omitempty"`
	Matched bool   `json:"matched"`
	Text    string `json:"text"`
	Data    any    `json:"data,omitempty"`
}

type actionInfo struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Examples    []string `json:"examples"`
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) postMessage(c *gin.Context) {
	var req messageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "text is required"})
		return
	}

	msg := agent.Message{ID: uuid.NewString(), Text: req.Text}
	reply, matched := s.agent.Dispatch(c.Request.Context(), msg)
	if !matched {
		c.JSON(http.StatusOK, messageResponse{ID: msg.ID, Matched: false, Text: s.agent.HelpText()})
		return
	}

	c.JSON(http.StatusOK, messageResponse{
		ID:      msg.ID,
		Action:  reply.Action,
		Matched: true,
		Text:    reply.Text,
		Data:    reply.Data,
	})
}

func (s *Server) listActions(c *gin.Context) {
	acts := s.agent.Actions()
	out := make([]actionInfo, 0, len(acts))
	for _, a := range acts {
		out = append(out, actionInfo{Name: a.Name, Description: a.Description, Examples: a.Examples})
	}
	c.JSON(http.StatusOK, out)
}
