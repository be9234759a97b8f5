package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mindhaven/backend/internal/service/wellness"
	"github.com/mindhaven/backend/internal/storage/postgres"
	"github.com/mindhaven/backend/internal/types"
)

// UpdateProfileRequest is the request body for updating a profile.
type UpdateProfileRequest struct {
	Preferences      types.Preferences            `json:"preferences"`
	MentalHealthData *wellness.MentalHealthUpdate `json:"mental_health_data,omitempty"`
}

// RecordMoodRequest is the request body for recording a mood entry.
type RecordMoodRequest struct {
	Mood  string  `json:"mood"`
	Notes *string `json:"notes,omitempty"`
}

// GetProfile returns the authenticated user's profile.
func (s *Server) GetProfile(c echo.Context) error {
	userID := GetUserID(c)

	profile, err := s.wellness.GetProfile(c.Request().Context(), userID)
	if err != nil {
		if errors.Is(err, postgres.ErrNotFound) {
			return c.JSON(http.StatusNotFound, ErrorResponse{Error: "profile not found"})
		}
		s.logger.WithError(err).Error("failed to get profile")
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to get profile"})
	}

	return c.JSON(http.StatusOK, profile)
}

// UpdateProfile creates or updates the authenticated user's profile.
func (s *Server) UpdateProfile(c echo.Context) error {
	var req UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}

	userID := GetUserID(c)
	profile, err := s.wellness.UpdateProfile(c.Request().Context(), userID, req.Preferences, req.MentalHealthData)
	if err != nil {
		s.logger.WithError(err).Error("failed to update profile")
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to update profile"})
	}

	return c.JSON(http.StatusOK, profile)
}

// RecordMood appends a mood entry to the authenticated user's history.
func (s *Server) RecordMood(c echo.Context) error {
	var req RecordMoodRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}
	if req.Mood == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "mood is required"})
	}

	userID := GetUserID(c)
	entry, err := s.wellness.RecordMood(c.Request().Context(), userID, req.Mood, req.Notes)
	if err != nil {
		if errors.Is(err, postgres.ErrNotFound) {
			return c.JSON(http.StatusNotFound, ErrorResponse{Error: "profile not found"})
		}
		s.logger.WithError(err).Error("failed to record mood")
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to record mood"})
	}

	return c.JSON(http.StatusCreated, entry)
}
