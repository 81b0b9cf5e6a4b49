package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/blood-disease-chatbot/internal/chatbot"
	"github.com/blood-disease-chatbot/internal/domain"
	"github.com/blood-disease-chatbot/internal/engine"
	"github.com/blood-disease-chatbot/internal/feedback"
	"github.com/blood-disease-chatbot/internal/training"
)

const maxRecentLimit = 100

// MessageRequest is the body of a chat message.
type MessageRequest struct {
	Text string `json:"text"`
}

// ExchangeResponse pairs a user message with the bot's reply.
type ExchangeResponse struct {
	UserMessage *domain.Message `json:"user_message"`
	BotMessage  *domain.Message `json:"bot_message"`
}

// FeedbackRequest rates one bot message.
type FeedbackRequest struct {
	Rating  feedback.Rating `json:"rating"`
	Comment string          `json:"comment"`
}

// AskRequest is a stateless question.
type AskRequest struct {
	Question string `json:"question"`
}

// AskResponse carries the reply and what the engine understood.
type AskResponse struct {
	Reply    chatbot.Reply   `json:"reply"`
	Analysis engine.Analysis `json:"analysis"`
}

func (s *Server) handleHealth(c *gin.Context) {
	if s.deps.Health == nil {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "timestamp": s.now().UTC()})
		return
	}
	s.deps.Health.HTTPHandler()(c.Writer, c.Request)
}

func (s *Server) handleCreateSession(c *gin.Context) {
	session, err := s.deps.Chat.CreateSession(c.Request.Context())
	if err != nil {
		s.fail(c, err, "Failed to create session")
		return
	}
	c.JSON(http.StatusCreated, session)
}

func (s *Server) handleGetMessages(c *gin.Context) {
	msgs, err := s.deps.Chat.GetMessages(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.fail(c, err, "Failed to load messages")
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": msgs})
}

func (s *Server) handlePostMessage(c *gin.Context) {
	var req MessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, domain.ErrCodeInvalidInput, "Invalid request body", err.Error())
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		respondError(c, http.StatusBadRequest, domain.ErrCodeInvalidInput, "Message text is required", "")
		return
	}

	user, bot, err := s.deps.Chat.Chat(c.Request.Context(), c.Param("id"), req.Text)
	if err != nil {
		s.fail(c, err, "Failed to process message")
		return
	}
	c.JSON(http.StatusOK, ExchangeResponse{UserMessage: user, BotMessage: bot})
}

func (s *Server) handleFeedback(c *gin.Context) {
	var req FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, domain.ErrCodeInvalidInput, "Invalid request body", err.Error())
		return
	}

	saved, err := s.deps.Chat.SubmitFeedback(c.Request.Context(), &feedback.Feedback{
		SessionID: c.Param("id"),
		MessageID: c.Param("message_id"),
		Rating:    req.Rating,
		Comment:   req.Comment,
	})
	if err != nil {
		s.fail(c, err, "Failed to record feedback")
		return
	}
	c.JSON(http.StatusCreated, saved)
}

func (s *Server) handleAsk(c *gin.Context) {
	var req AskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, domain.ErrCodeInvalidInput, "Invalid request body", err.Error())
		return
	}
	if strings.TrimSpace(req.Question) == "" {
		respondError(c, http.StatusBadRequest, domain.ErrCodeInvalidInput, "Question is required", "")
		return
	}

	reply := s.deps.Chat.Respond(c.Request.Context(), req.Question)
	c.JSON(http.StatusOK, AskResponse{
		Reply:    reply,
		Analysis: s.deps.Chat.Engine().Analyze(req.Question),
	})
}

func (s *Server) handleListDiseases(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"diseases": s.deps.Chat.Engine().Base().Diseases()})
}

func (s *Server) handleGetDisease(c *gin.Context) {
	name := strings.ReplaceAll(c.Param("name"), "_", " ")
	info, ok := s.deps.Chat.Engine().Base().Disease(name)
	if !ok {
		respondError(c, http.StatusNotFound, domain.ErrCodeNotFound, "Unknown disease", c.Param("name"))
		return
	}
	c.JSON(http.StatusOK, info)
}

func (s *Server) predictionsAvailable(c *gin.Context) bool {
	if s.deps.Predictions == nil {
		respondError(c, http.StatusServiceUnavailable, domain.ErrCodeUnavailable, "Prediction history is not configured", "")
		return false
	}
	return true
}

func (s *Server) handleRecentPredictions(c *gin.Context) {
	if !s.predictionsAvailable(c) {
		return
	}

	limit := 5
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > maxRecentLimit {
			respondError(c, http.StatusBadRequest, domain.ErrCodeInvalidInput, "limit must be between 1 and 100", raw)
			return
		}
		limit = n
	}

	recent, err := s.deps.Predictions.Recent(c.Request.Context(), limit)
	if err != nil {
		s.fail(c, err, "Failed to load predictions")
		return
	}
	c.JSON(http.StatusOK, gin.H{"predictions": recent})
}

func (s *Server) handlePredictionStats(c *gin.Context) {
	if !s.predictionsAvailable(c) {
		return
	}

	stats, err := s.deps.Predictions.DiseaseStats(c.Request.Context())
	if err != nil {
		s.fail(c, err, "Failed to load prediction stats")
		return
	}
	c.JSON(http.StatusOK, gin.H{"stats": stats})
}

func (s *Server) handleTrainingReport(c *gin.Context) {
	if s.deps.Intents == nil {
		respondError(c, http.StatusServiceUnavailable, domain.ErrCodeUnavailable, "Intent classifier is not configured", "")
		return
	}

	report, err := training.BuildReport(c.Request.Context(), s.deps.Chat.Engine().Base(), s.deps.Intents, s.now())
	if err != nil {
		s.fail(c, err, "Failed to build training report")
		return
	}
	c.JSON(http.StatusOK, report)
}

func (s *Server) handleFeedbackSummary(c *gin.Context) {
	store := s.deps.Chat.FeedbackStore()
	if store == nil {
		respondError(c, http.StatusServiceUnavailable, domain.ErrCodeUnavailable, "Feedback is not configured", "")
		return
	}

	summary, err := store.Summary(c.Request.Context())
	if err != nil {
		s.fail(c, err, "Failed to load feedback summary")
		return
	}
	c.JSON(http.StatusOK, summary)
}
