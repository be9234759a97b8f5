package api

import (
	"github.com/sirupsen/logrus"

	"github.com/mindhaven/backend/internal/service"
	"github.com/mindhaven/backend/internal/service/chat"
	"github.com/mindhaven/backend/internal/service/voice"
	"github.com/mindhaven/backend/internal/service/wellness"
)

// Server holds API dependencies.
type Server struct {
	authService *service.AuthService
	wellness    *wellness.Service
	chat        *chat.Service
	voice       *voice.Service
	logger      *logrus.Logger
}

// NewServer creates a new API server.
func NewServer(authService *service.AuthService, wellnessService *wellness.Service, chatService *chat.Service, voiceService *voice.Service, logger *logrus.Logger) *Server {
	return &Server{
		authService: authService,
		wellness:    wellnessService,
		chat:        chatService,
		voice:       voiceService,
		logger:      logger,
	}
}
