package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// initResponse is the payload for GET /init.
type initResponse struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id"`
}

// queryRequest is the payload for POST /query.
type queryRequest struct {
	Input     string `json:"input"`
	SessionID string `json:"session_id,omitempty"`
}

// queryResponse is the payload returned by POST /query.
type queryResponse struct {
	Response  string `json:"response"`
	SessionID string `json:"session_id"`
}

// handleInit opens a new conversation and returns the welcome banner.
func (s *Server) handleInit(c *gin.Context) {
	sess := s.session("")
	c.JSON(http.StatusOK, initResponse{
		Message:   s.router.Welcome(),
		SessionID: sess.ID.String(),
	})
}

// handleQuery answers one conversation turn.
func (s *Server) handleQuery(c *gin.Context) {
	var req queryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, &ErrValidation{Field: "body", Message: "invalid JSON"})
		return
	}
	if strings.TrimSpace(req.Input) == "" {
		writeError(c, &ErrValidation{Field: "input", Message: "must not be empty"})
		return
	}

	sess := s.session(req.SessionID)
	response := s.router.Handle(c.Request.Context(), sess, req.Input)

	s.log.Debug("turn answered", zap.String("session", sess.ID.String()))
	c.JSON(http.StatusOK, queryResponse{
		Response:  response,
		SessionID: sess.ID.String(),
	})
}

// handleHealth reports liveness.
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func writeError(c *gin.Context, err error) {
	c.JSON(HTTPStatus(err), gin.H{"error": err.Error()})
}
