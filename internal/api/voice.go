package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mindhaven/backend/internal/service/voice"
)

// UploadURLResponse carries a presigned upload URL and the object key the
// client must reference in later calls.
type UploadURLResponse struct {
	Object    string `json:"object"`
	UploadURL string `json:"upload_url"`
}

// RecordingURLResponse carries a presigned playback URL for a recording.
type RecordingURLResponse struct {
	Object      string `json:"object"`
	DownloadURL string `json:"download_url"`
}

// ProcessAnalysisRequest is the request body for analyzing a recording.
type ProcessAnalysisRequest struct {
	AudioObject string `json:"audio_object"`
	Language    string `json:"language,omitempty"`
}

// GenerateVoiceUploadURL returns a presigned PUT URL for a new recording.
func (s *Server) GenerateVoiceUploadURL(c echo.Context) error {
	userID := GetUserID(c)

	object, uploadURL, err := s.voice.GenerateUploadURL(c.Request().Context(), userID)
	if err != nil {
		s.logger.WithError(err).Error("failed to generate upload url")
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to generate upload url"})
	}

	return c.JSON(http.StatusOK, UploadURLResponse{Object: object, UploadURL: uploadURL})
}

// GetVoiceRecordingURL returns a presigned playback URL for one of the
// authenticated user's recordings.
func (s *Server) GetVoiceRecordingURL(c echo.Context) error {
	object := c.Param("*")
	if object == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "object is required"})
	}

	userID := GetUserID(c)
	downloadURL, err := s.voice.GetRecordingURL(c.Request().Context(), userID, object)
	if err != nil {
		// a foreign recording reads as not found; existence is not leaked
		if errors.Is(err, voice.ErrForbidden) {
			return c.JSON(http.StatusNotFound, ErrorResponse{Error: "recording not found"})
		}
		s.logger.WithError(err).Error("failed to generate recording url")
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to generate recording url"})
	}

	return c.JSON(http.StatusOK, RecordingURLResponse{Object: object, DownloadURL: downloadURL})
}

// ProcessVoiceAnalysis analyzes an uploaded recording and returns the result.
func (s *Server) ProcessVoiceAnalysis(c echo.Context) error {
	var req ProcessAnalysisRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}
	if req.AudioObject == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "audio_object is required"})
	}

	userID := GetUserID(c)
	analysis, err := s.voice.ProcessAnalysis(c.Request().Context(), userID, req.AudioObject, req.Language)
	if err != nil {
		s.logger.WithError(err).Error("failed to process voice analysis")
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to process voice analysis"})
	}

	return c.JSON(http.StatusCreated, analysis)
}

// ListVoiceAnalyses returns the authenticated user's analyses.
func (s *Server) ListVoiceAnalyses(c echo.Context) error {
	userID := GetUserID(c)

	analyses, err := s.voice.ListAnalyses(c.Request().Context(), userID)
	if err != nil {
		s.logger.WithError(err).Error("failed to list voice analyses")
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to list voice analyses"})
	}

	return c.JSON(http.StatusOK, analyses)
}
