// Package mcp exposes the chatbot as Model Context Protocol tools over stdio.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sirupsen/logrus"

	"github.com/blood-disease-chatbot/internal/chatbot"
	"github.com/blood-disease-chatbot/internal/domain"
	"github.com/blood-disease-chatbot/internal/training"
)

// Tool names.
const (
	ToolAskMedicalQuestion = "ask_medical_question"
	ToolStartSession       = "start_session"
	ToolSendMessage        = "send_message"
	ToolGetDiseaseInfo     = "get_disease_info"
	ToolListDiseases       = "list_diseases"
	ToolTrainingReport     = "training_report"
)

// Server represents the chatbot MCP server
type Server struct {
	chat      *chatbot.Service
	intents   training.IntentClassifier
	mcpServer *mcp.Server
	logger    *logrus.Logger
	now       func() time.Time
	tools     []string
}

// NewServer creates a new MCP server instance and registers its tools.
func NewServer(cfg domain.MCPConfig, chat *chatbot.Service, intents training.IntentClassifier, logger *logrus.Logger) (*Server, error) {
	if chat == nil {
		return nil, errors.New("chat service is required")
	}
	if intents == nil {
		return nil, errors.New("intent classifier is required")
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	name := cfg.ServerName
	if name == "" {
		name = "blood-disease-chatbot"
	}
	version := cfg.ServerVersion
	if version == "" {
		version = "v0.1.0"
	}

	server := &Server{
		chat:      chat,
		intents:   intents,
		mcpServer: mcp.NewServer(&mcp.Implementation{Name: name, Version: version}, nil),
		logger:    logger,
		now:       time.Now,
	}
	server.registerTools()

	logger.WithFields(logrus.Fields{
		"server_name": name,
		"tool_count":  len(server.tools),
	}).Info("MCP server initialized")
	return server, nil
}

func (s *Server) registerTools() {
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        ToolAskMedicalQuestion,
		Description: "Answer a question about blood diseases, symptoms, treatments or the prediction dashboard",
	}, s.handleAskMedicalQuestion)
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        ToolStartSession,
		Description: "Start a chat session and return its id and greeting",
	}, s.handleStartSession)
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        ToolSendMessage,
		Description: "Send a message within a chat session and return the bot's reply",
	}, s.handleSendMessage)
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        ToolGetDiseaseInfo,
		Description: "Return symptoms, causes, treatments and prevention for one disease",
	}, s.handleGetDiseaseInfo)
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        ToolListDiseases,
		Description: "List the diseases the knowledge base covers",
	}, s.handleListDiseases)
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        ToolTrainingReport,
		Description: "Evaluate the intent classifier against the training set and report recommendations",
	}, s.handleTrainingReport)

	s.tools = []string{
		ToolAskMedicalQuestion, ToolStartSession, ToolSendMessage,
		ToolGetDiseaseInfo, ToolListDiseases, ToolTrainingReport,
	}
}

// Tools returns the registered tool names.
func (s *Server) Tools() []string {
	out := make([]string, len(s.tools))
	copy(out, s.tools)
	return out
}

// Run serves MCP over stdio until ctx is cancelled or the client disconnects.
func (s *Server) Run(ctx context.Context) error {
	return s.RunTransport(ctx, &mcp.StdioTransport{})
}

// RunTransport serves MCP over t.
func (s *Server) RunTransport(ctx context.Context, t mcp.Transport) error {
	s.logger.Info("Starting blood disease chatbot MCP server...")
	if err := s.mcpServer.Run(ctx, t); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("MCP server failed: %w", err)
	}
	s.logger.Info("MCP server stopped")
	return nil
}
