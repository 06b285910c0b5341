package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/liuhaochen/site-analytics/internal/repository"
	reportService "github.com/liuhaochen/site-analytics/internal/service/report"
	service "github.com/liuhaochen/site-analytics/internal/service/tracker"
	"github.com/liuhaochen/site-analytics/pkg/utils"
)

type ReportHandler struct {
	tracker service.TrackerService
	store   repository.EventStore
}

func NewReportHandler(tracker service.TrackerService, store repository.EventStore) *ReportHandler {
	return &ReportHandler{
		tracker: tracker,
		store:   store,
	}
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Today     string `json:"today"`
	Records   int    `json:"records"`
}

// Latest godoc
// @Summary      Today's report
// @Description  Daily report computed from the live in-memory buffer
// @Tags         /api/report
// @Produce      json
// @Success      200  {object}  entity.DailyReport
// @Router       /report/latest [get]
func (h *ReportHandler) Latest(c *gin.Context) {
	report := reportService.Generate(h.tracker.Snapshot(), h.tracker.Today())
	c.JSON(http.StatusOK, report)
}

// ByDate godoc
// @Summary      Historical report
// @Description  Daily report recomputed from the persisted batch of the given date
// @Tags         /api/report
// @Produce      json
// @Param        date  path      string  true  "Date (YYYY-MM-DD)"
// @Success      200   {object}  entity.DailyReport
// @Failure      404   {object}  handler.ErrorResponse
// @Failure      500   {object}  handler.ErrorResponse
// @Router       /report/{date} [get]
func (h *ReportHandler) ByDate(c *gin.Context) {
	date := c.Param("date")
	if _, err := time.Parse(utils.DateLayout, date); err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "no data for this date"})
		return
	}

	records, err := h.store.LoadBatch(c.Request.Context(), date)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "no data for this date"})
			return
		}
		slog.Error("failed to load batch", slog.String("date", date), slog.Any("error", err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "server error"})
		return
	}

	c.JSON(http.StatusOK, reportService.Generate(records, date))
}

// Dates godoc
// @Summary      Available dates
// @Description  Dates with a persisted batch, most recent first
// @Tags         /api/dates
// @Produce      json
// @Success      200  {array}  string
// @Router       /dates [get]
func (h *ReportHandler) Dates(c *gin.Context) {
	dates, err := h.store.ListDates(c.Request.Context())
	if err != nil {
		slog.Error("failed to list dates", slog.Any("error", err))
		c.JSON(http.StatusOK, []string{})
		return
	}
	if dates == nil {
		dates = []string{}
	}

	c.JSON(http.StatusOK, dates)
}

// Health godoc
// @Summary      Health check
// @Tags         /api/health
// @Produce      json
// @Success      200  {object}  handler.HealthResponse
// @Router       /health [get]
func (h *ReportHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Today:     h.tracker.Today(),
		Records:   h.tracker.Records(),
	})
}
