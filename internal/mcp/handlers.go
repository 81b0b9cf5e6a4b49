package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sirupsen/logrus"

	"github.com/blood-disease-chatbot/internal/chatbot"
	"github.com/blood-disease-chatbot/internal/domain"
	"github.com/blood-disease-chatbot/internal/training"
)

// AskParams defines parameters for ask_medical_question
type AskParams struct {
	Question string `json:"question"`
}

// AskResult is returned by ask_medical_question.
type AskResult struct {
	Answer   string          `json:"answer"`
	Source   chatbot.Source  `json:"source"`
	Topic    string          `json:"topic,omitempty"`
	Category domain.Category `json:"category,omitempty"`
}

// StartSessionParams is empty; start_session takes no arguments.
type StartSessionParams struct{}

// StartSessionResult is returned by start_session.
type StartSessionResult struct {
	SessionID string `json:"session_id"`
	Greeting  string `json:"greeting"`
}

// SendMessageParams defines parameters for send_message
type SendMessageParams struct {
	SessionID string `json:"session_id"`
	Text      string `json:"text"`
}

// SendMessageResult is returned by send_message.
type SendMessageResult struct {
	SessionID string `json:"session_id"`
	MessageID string `json:"message_id"`
	Reply     string `json:"reply"`
}

// DiseaseParams defines parameters for get_disease_info
type DiseaseParams struct {
	Name string `json:"name"`
}

// ListDiseasesParams is empty; list_diseases takes no arguments.
type ListDiseasesParams struct{}

// DiseaseSummary is one row of list_diseases.
type DiseaseSummary struct {
	Key         string `json:"key"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// TrainingReportParams is empty; training_report takes no arguments.
type TrainingReportParams struct{}

func (s *Server) handleAskMedicalQuestion(ctx context.Context, req *mcp.CallToolRequest, params AskParams) (*mcp.CallToolResult, any, error) {
	s.logger.WithField("tool", ToolAskMedicalQuestion).Info("Tool invoked")

	if strings.TrimSpace(params.Question) == "" {
		return s.createErrorResult("Missing required parameter", errors.New("question is required")), nil, nil
	}

	reply := s.chat.Respond(ctx, params.Question)
	return jsonResult(AskResult{
		Answer:   reply.Text,
		Source:   reply.Source,
		Topic:    reply.Topic,
		Category: reply.Category,
	})
}

func (s *Server) handleStartSession(ctx context.Context, req *mcp.CallToolRequest, _ StartSessionParams) (*mcp.CallToolResult, any, error) {
	s.logger.WithField("tool", ToolStartSession).Info("Tool invoked")

	session, err := s.chat.CreateSession(ctx)
	if err != nil {
		return s.createErrorResult("Failed to start session", err), nil, nil
	}
	return jsonResult(StartSessionResult{SessionID: session.ID, Greeting: session.Messages[0].Text})
}

func (s *Server) handleSendMessage(ctx context.Context, req *mcp.CallToolRequest, params SendMessageParams) (*mcp.CallToolResult, any, error) {
	s.logger.WithFields(logrus.Fields{
		"tool":       ToolSendMessage,
		"session_id": params.SessionID,
	}).Info("Tool invoked")

	if params.SessionID == "" || strings.TrimSpace(params.Text) == "" {
		return s.createErrorResult("Missing required parameter", errors.New("session_id and text are required")), nil, nil
	}

	_, bot, err := s.chat.Chat(ctx, params.SessionID, params.Text)
	if err != nil {
		return s.createErrorResult("Failed to send message", err), nil, nil
	}
	return jsonResult(SendMessageResult{SessionID: params.SessionID, MessageID: bot.ID, Reply: bot.Text})
}

func (s *Server) handleGetDiseaseInfo(ctx context.Context, req *mcp.CallToolRequest, params DiseaseParams) (*mcp.CallToolResult, any, error) {
	s.logger.WithField("tool", ToolGetDiseaseInfo).Info("Tool invoked")

	name := strings.TrimSpace(strings.ReplaceAll(params.Name, "_", " "))
	if name == "" {
		return s.createErrorResult("Missing required parameter", errors.New("name is required")), nil, nil
	}

	info, ok := s.chat.Engine().Base().Disease(name)
	if !ok {
		return s.createErrorResult("Unknown disease", fmt.Errorf("disease %q: %w", params.Name, domain.ErrNotFound)), nil, nil
	}
	return jsonResult(info)
}

func (s *Server) handleListDiseases(ctx context.Context, req *mcp.CallToolRequest, _ ListDiseasesParams) (*mcp.CallToolResult, any, error) {
	s.logger.WithField("tool", ToolListDiseases).Info("Tool invoked")

	diseases := s.chat.Engine().Base().Diseases()
	out := make([]DiseaseSummary, 0, len(diseases))
	for _, d := range diseases {
		out = append(out, DiseaseSummary{Key: d.Key, Name: d.Name, Description: d.Description})
	}
	return jsonResult(out)
}

func (s *Server) handleTrainingReport(ctx context.Context, req *mcp.CallToolRequest, _ TrainingReportParams) (*mcp.CallToolResult, any, error) {
	s.logger.WithField("tool", ToolTrainingReport).Info("Tool invoked")

	report, err := training.BuildReport(ctx, s.chat.Engine().Base(), s.intents, s.now())
	if err != nil {
		return s.createErrorResult("Failed to build training report", err), nil, nil
	}
	return jsonResult(report)
}

func jsonResult(v interface{}) (*mcp.CallToolResult, any, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to encode tool result: %w", err)
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(data)}},
	}, nil, nil
}

// createErrorResult creates an error result for tool calls
func (s *Server) createErrorResult(message string, err error) *mcp.CallToolResult {
	errorText := message
	if err != nil {
		errorText = fmt.Sprintf("%s: %v", message, err)
	}
	s.logger.WithError(err).Warn(message)

	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: errorText}},
		IsError: true,
	}
}
