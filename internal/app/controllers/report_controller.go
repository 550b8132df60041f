package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/authentikate/authentikate/internal/app/models/dto"
	"github.com/authentikate/authentikate/internal/app/services"
	"github.com/authentikate/authentikate/internal/middleware"
)

const reportTimeLayout = "2006-01-02 15:04:05"

// ReportController serves per-session attendance and error reports
type ReportController struct {
	reportService *services.ReportService
}

// NewReportController creates a new ReportController
func NewReportController(reportService *services.ReportService) *ReportController {
	return &ReportController{
		reportService: reportService,
	}
}

func sessionIDParam(ctx *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param("sessionId"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid session ID")
		errorDetail = errorDetail.WithDetails("Session ID must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}

// AttendanceReport returns the Present/Absent projection of a session
// @Summary Get a session's attendance report
// @Description Lists every enrolled student as Present with a timestamp or Absent without one
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Param sessionId path int true "Session ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.AttendanceReportRow} "Attendance report"
// @Failure 400 {object} dto.ErrorResponse "Invalid session ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Not the session owner"
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /reports/sessions/{sessionId}/attendance [get]
func (c *ReportController) AttendanceReport(ctx *gin.Context) {
	admin, ok := middleware.CurrentAdmin(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, errMissingAdmin)
		return
	}
	sessionID, ok := sessionIDParam(ctx)
	if !ok {
		return
	}

	rows, err := c.reportService.AttendanceReport(ctx, admin, sessionID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	out := make([]dto.AttendanceReportRow, 0, len(rows))
	for _, row := range rows {
		var ts *string
		if row.Timestamp != nil {
			formatted := row.Timestamp.Format(reportTimeLayout)
			ts = &formatted
		}
		out = append(out, dto.AttendanceReportRow{
			MatriculationNumber: row.MatriculationNumber,
			Name:                row.Name,
			Status:              row.Status,
			Timestamp:           ts,
		})
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      out,
		Timestamp: time.Now(),
	})
}

// AttendanceReportCSV downloads the attendance report as CSV
// @Summary Download a session's attendance report
// @Tags reports
// @Produce text/csv
// @Security BearerAuth
// @Param sessionId path int true "Session ID"
// @Success 200 {file} file "CSV attendance report"
// @Failure 400 {object} dto.ErrorResponse "Invalid session ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Not the session owner"
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /reports/sessions/{sessionId}/attendance/csv [get]
func (c *ReportController) AttendanceReportCSV(ctx *gin.Context) {
	admin, ok := middleware.CurrentAdmin(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, errMissingAdmin)
		return
	}
	sessionID, ok := sessionIDParam(ctx)
	if !ok {
		return
	}

	out, err := c.reportService.AttendanceReportCSV(ctx, admin, sessionID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Header("Content-Disposition", `attachment; filename="attendance_report.csv"`)
	ctx.Data(http.StatusOK, "text/csv", out)
}

// ErrorReport lists the journal entries of a session
// @Summary Get a session's error report
// @Description Lists every journaled authentication failure and dispute of the session
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Param sessionId path int true "Session ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.ErrorReportRow} "Error report"
// @Failure 400 {object} dto.ErrorResponse "Invalid session ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Not the session owner"
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /reports/sessions/{sessionId}/errors [get]
func (c *ReportController) ErrorReport(ctx *gin.Context) {
	admin, ok := middleware.CurrentAdmin(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, errMissingAdmin)
		return
	}
	sessionID, ok := sessionIDParam(ctx)
	if !ok {
		return
	}

	entries, err := c.reportService.ErrorReport(ctx, admin, sessionID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	out := make([]dto.ErrorReportRow, 0, len(entries))
	for _, entry := range entries {
		matric := ""
		if entry.MatriculationNumber != nil {
			matric = *entry.MatriculationNumber
		}
		out = append(out, dto.ErrorReportRow{
			MatriculationNumber: matric,
			ErrorType:           string(entry.ErrorType),
			Details:             entry.Details,
			Timestamp:           entry.Timestamp.Format(reportTimeLayout),
		})
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      out,
		Timestamp: time.Now(),
	})
}

// ErrorReportCSV downloads the error report as CSV
// @Summary Download a session's error report
// @Tags reports
// @Produce text/csv
// @Security BearerAuth
// @Param sessionId path int true "Session ID"
// @Success 200 {file} file "CSV error report"
// @Failure 400 {object} dto.ErrorResponse "Invalid session ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Not the session owner"
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /reports/sessions/{sessionId}/errors/csv [get]
func (c *ReportController) ErrorReportCSV(ctx *gin.Context) {
	admin, ok := middleware.CurrentAdmin(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, errMissingAdmin)
		return
	}
	sessionID, ok := sessionIDParam(ctx)
	if !ok {
		return
	}

	out, err := c.reportService.ErrorReportCSV(ctx, admin, sessionID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Header("Content-Disposition", `attachment; filename="error_report.csv"`)
	ctx.Data(http.StatusOK, "text/csv", out)
}
