package api

import (
	"errors"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/blood-disease-chatbot/internal/domain"
	"github.com/blood-disease-chatbot/internal/middleware"
)

const (
	streamWriteWait = 10 * time.Second
	streamReadLimit = 8192
)

// StreamError is sent on the stream when a message cannot be answered.
type StreamError struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// handleStream upgrades to a WebSocket carrying one exchange per client message.
func (s *Server) handleStream(c *gin.Context) {
	ctx := c.Request.Context()
	sessionID := c.Param("id")

	if _, err := s.deps.Chat.Session(ctx, sessionID); err != nil {
		s.fail(c, err, "Failed to open stream")
		return
	}

	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.logger.WithError(err).Warn("WebSocket upgrade failed")
		return
	}
	defer conn.Close()
	conn.SetReadLimit(streamReadLimit)

	log := s.logger.WithFields(logrus.Fields{
		"session_id":     sessionID,
		"correlation_id": c.GetString(middleware.CorrelationIDKey),
	})
	log.Info("Chat stream opened")

	for {
		var req MessageRequest
		if err := conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.WithError(err).Warn("Chat stream read failed")
			}
			break
		}

		var out interface{}
		if strings.TrimSpace(req.Text) == "" {
			out = StreamError{Error: "message text is required", Code: domain.ErrCodeInvalidInput}
		} else if user, bot, err := s.deps.Chat.Chat(ctx, sessionID, req.Text); err != nil {
			_, code := statusFor(err)
			out = StreamError{Error: err.Error(), Code: code}
			if errors.Is(err, domain.ErrUnknownSession) {
				s.write(conn, out, log)
				break
			}
		} else {
			out = ExchangeResponse{UserMessage: user, BotMessage: bot}
		}

		if !s.write(conn, out, log) {
			break
		}
	}

	log.Info("Chat stream closed")
}

func (s *Server) write(conn *websocket.Conn, v interface{}, log *logrus.Entry) bool {
	if err := conn.SetWriteDeadline(time.Now().Add(streamWriteWait)); err != nil {
		log.WithError(err).Warn("Chat stream deadline failed")
		return false
	}
	if err := conn.WriteJSON(v); err != nil {
		log.WithError(err).Warn("Chat stream write failed")
		return false
	}
	return true
}
