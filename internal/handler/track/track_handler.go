package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/liuhaochen/site-analytics/internal/entity"
	service "github.com/liuhaochen/site-analytics/internal/service/tracker"
)

type TrackHandler struct {
	service service.TrackerService
}

func NewTrackHandler(service service.TrackerService) *TrackHandler {
	return &TrackHandler{
		service: service,
	}
}

type TrackResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// Track godoc
// @Summary      Ingest a tracking event
// @Description  Accept a raw pageview/pageleave event, hash away identifiers and buffer the privacy-safe record
// @Tags         /api/track
// @Accept       json
// @Produce      json
// @Param        event  body      entity.TrackEvent  true  "Raw event"
// @Success      200    {object}  handler.TrackResponse
// @Failure      500    {object}  handler.TrackResponse
// @Router       /track [post]
func (h *TrackHandler) Track(c *gin.Context) {
	var event entity.TrackEvent
	if err := c.ShouldBindJSON(&event); err != nil {
		slog.Error("failed to read track event", slog.Any("error", err))
		c.JSON(http.StatusInternalServerError, TrackResponse{Success: false, Error: "server error"})
		return
	}

	if err := h.service.Track(c.Request.Context(), event); err != nil {
		slog.Error("failed to accept track event", slog.Any("error", err))
		c.JSON(http.StatusInternalServerError, TrackResponse{Success: false, Error: "server error"})
		return
	}

	c.JSON(http.StatusOK, TrackResponse{Success: true})
}
