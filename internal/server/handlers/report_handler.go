package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"go.uber.org/zap"

	"github.com/castline/shopfloor/internal/domain/models"
	"github.com/castline/shopfloor/internal/service/report"
)

// ReportHandler adapts the shift report service to HTTP.
type ReportHandler struct {
	svc    *report.Service
	logger *zap.Logger
}

// NewReportHandler constructs the HTTP handler adapter.
func NewReportHandler(svc *report.Service, logger *zap.Logger) *ReportHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportHandler{svc: svc, logger: logger}
}

// Submit handles POST. A body carrying both section and date goes through
// the section merge engine; anything else is treated as a legacy full
// document create.
func (h *ReportHandler) Submit(c *gin.Context) {
	var probe struct {
		Date    string `json:"date"`
		Section string `json:"section"`
	}
	if err := c.ShouldBindBodyWith(&probe, binding.JSON); err != nil {
		h.logger.Warn("invalid report payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, models.Fail("invalid request body"))
		return
	}

	if probe.Section != "" && probe.Date != "" {
		var sub models.SectionSubmission
		if err := c.ShouldBindBodyWith(&sub, binding.JSON); err != nil {
			h.logger.Warn("invalid section payload", zap.Error(err))
			c.JSON(http.StatusBadRequest, models.Fail("invalid request body"))
			return
		}

		result, err := h.svc.SubmitSection(c.Request.Context(), sub)
		if err != nil {
			h.respondError(c, err)
			return
		}
		if result.Created {
			c.JSON(http.StatusCreated, models.OK(result.Report, "Report created successfully"))
			return
		}
		c.JSON(http.StatusOK, models.OK(result.Report, "Report updated successfully"))
		return
	}

	var in models.FullReportInput
	if err := c.ShouldBindBodyWith(&in, binding.JSON); err != nil {
		h.logger.Warn("invalid report payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, models.Fail("invalid request body"))
		return
	}

	created, err := h.svc.CreateFull(c.Request.Context(), in)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, models.OK(created, "Report created successfully"))
}

// List handles GET for all reports, newest date first.
func (h *ReportHandler) List(c *gin.Context) {
	reports, err := h.svc.List(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.OKList(reports, len(reports)))
}

// GetRange handles GET /range with inclusive startDate and endDate query
// parameters.
func (h *ReportHandler) GetRange(c *gin.Context) {
	reports, err := h.svc.GetRange(c.Request.Context(), c.Query("startDate"), c.Query("endDate"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.OKList(reports, len(reports)))
}

// GetByDate handles GET /date?date=YYYY-MM-DD, returning a one-element or
// empty list.
func (h *ReportHandler) GetByDate(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		c.JSON(http.StatusBadRequest, models.Fail("date query parameter is required"))
		return
	}
	reports, err := h.svc.GetByDate(c.Request.Context(), date)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.OKList(reports, len(reports)))
}

// GetByID handles GET /:id.
func (h *ReportHandler) GetByID(c *gin.Context) {
	found, err := h.svc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.OK(found, ""))
}

// Update handles PUT /:id, a validated full-document replace.
func (h *ReportHandler) Update(c *gin.Context) {
	var in models.FullReportInput
	if err := c.ShouldBindJSON(&in); err != nil {
		h.logger.Warn("invalid report payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, models.Fail("invalid request body"))
		return
	}

	updated, err := h.svc.Replace(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.OK(updated, "Report updated successfully"))
}

// Delete handles DELETE /:id, removing the whole day's report.
func (h *ReportHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.OK(nil, "Report deleted successfully"))
}

// respondError maps service failures onto the response envelope. Anything
// outside the known taxonomy is logged and answered with a generic 500.
func (h *ReportHandler) respondError(c *gin.Context, err error) {
	var vErr *report.ValidationError
	switch {
	case errors.Is(err, report.ErrInvalidDateFormat), errors.Is(err, report.ErrInvalidDateValue):
		c.JSON(http.StatusBadRequest, models.Fail(err.Error()))
	case errors.As(err, &vErr):
		c.JSON(http.StatusBadRequest, models.FailFields(vErr.Error(), vErr.Fields))
	case errors.Is(err, report.ErrNotFound):
		c.JSON(http.StatusNotFound, models.Fail("Report not found"))
	default:
		h.logger.Error("request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.Fail("internal server error"))
	}
}
