package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/mindhaven/backend/internal/service/chat"
	"github.com/mindhaven/backend/internal/storage/postgres"
)

// StartConversationRequest is the request body for starting a conversation.
type StartConversationRequest struct {
	InitialMessage string `json:"initial_message"`
	Language       string `json:"language,omitempty"`
}

// AddMessageRequest is the request body for appending a message.
type AddMessageRequest struct {
	Content     string  `json:"content"`
	AudioObject *string `json:"audio_object,omitempty"`
	Language    string  `json:"language,omitempty"`
}

// StartConversation creates a conversation with one user message. The
// assistant reply is generated in the background.
func (s *Server) StartConversation(c echo.Context) error {
	var req StartConversationRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}
	if req.InitialMessage == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "initial_message is required"})
	}

	userID := GetUserID(c)
	conv, err := s.chat.StartConversation(c.Request().Context(), userID, req.InitialMessage, req.Language)
	if err != nil {
		s.logger.WithError(err).Error("failed to start conversation")
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to start conversation"})
	}

	return c.JSON(http.StatusCreated, conv)
}

// ListConversations returns the authenticated user's conversations.
func (s *Server) ListConversations(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	userID := GetUserID(c)
	convs, err := s.chat.ListConversations(c.Request().Context(), userID, limit)
	if err != nil {
		s.logger.WithError(err).Error("failed to list conversations")
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to list conversations"})
	}

	return c.JSON(http.StatusOK, convs)
}

// GetConversation returns a conversation with its messages.
func (s *Server) GetConversation(c echo.Context) error {
	convID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid conversation id"})
	}

	userID := GetUserID(c)
	conv, err := s.chat.GetConversation(c.Request().Context(), userID, convID)
	if err != nil {
		// A foreign conversation reads as not found; existence is not leaked.
		if errors.Is(err, postgres.ErrNotFound) || errors.Is(err, chat.ErrForbidden) {
			return c.JSON(http.StatusNotFound, ErrorResponse{Error: "conversation not found"})
		}
		s.logger.WithError(err).Error("failed to get conversation")
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to get conversation"})
	}

	return c.JSON(http.StatusOK, conv)
}

// AddMessage appends a user message to a conversation. The assistant reply
// is generated in the background.
func (s *Server) AddMessage(c echo.Context) error {
	convID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid conversation id"})
	}

	var req AddMessageRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}
	if req.Content == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "content is required"})
	}

	userID := GetUserID(c)
	msg, err := s.chat.AddMessage(c.Request().Context(), userID, convID, req.Content, req.AudioObject, req.Language)
	if err != nil {
		switch {
		case errors.Is(err, postgres.ErrNotFound):
			return c.JSON(http.StatusNotFound, ErrorResponse{Error: "conversation not found"})
		case errors.Is(err, chat.ErrForbidden):
			return c.JSON(http.StatusForbidden, ErrorResponse{Error: "conversation belongs to another user"})
		}
		s.logger.WithError(err).Error("failed to add message")
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to add message"})
	}

	return c.JSON(http.StatusCreated, msg)
}
