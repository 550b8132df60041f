package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/authentikate/authentikate/internal/app/models/dto"
	"github.com/authentikate/authentikate/internal/app/services"
	"github.com/authentikate/authentikate/internal/middleware"
)

// AttendanceController handles exam-hall authentication attempts
type AttendanceController struct {
	attendanceService *services.AttendanceService
	reportService     *services.ReportService
}

// NewAttendanceController creates a new AttendanceController
func NewAttendanceController(attendanceService *services.AttendanceService, reportService *services.ReportService) *AttendanceController {
	return &AttendanceController{
		attendanceService: attendanceService,
		reportService:     reportService,
	}
}

// Authenticate verifies a fingerprint capture against a session
// @Summary Authenticate a student for an exam session
// @Description Matches the captured fingerprint, checks enrollment and CA mark, and records attendance. Repeat captures of an authenticated student return the same payload without a new record.
// @Tags attendance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.AuthenticateRequest true "Session and fingerprint template"
// @Success 200 {object} dto.APIResponse{data=dto.AuthenticateResponse} "Student authenticated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Outside window, not enrolled, or invalid CA mark"
// @Failure 404 {object} dto.ErrorResponse "Session or student not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /attendance/authenticate [post]
func (c *AttendanceController) Authenticate(ctx *gin.Context) {
	admin, ok := middleware.CurrentAdmin(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, errMissingAdmin)
		return
	}

	var req dto.AuthenticateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid authentication data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	result, err := c.attendanceService.Authenticate(ctx, admin, req.SessionID, req.FingerprintTemplate)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	message := "Student authenticated successfully"
	if result.AlreadyAuthenticated {
		message = "Student already authenticated for this session"
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: dto.AuthenticateResponse{
			Message:             message,
			MatriculationNumber: result.MatriculationNumber,
			Name:                result.Name,
			CAMark:              result.CAMark,
			Photo:               result.Photo,
			CourseName:          result.CourseName,
		},
		Timestamp: time.Now(),
	})
}

// ReportCAMarkDispute journals a CA-mark complaint
// @Summary Report a CA mark dispute
// @Description Records a CA_MARK_ISSUE entry against the session for later review
// @Tags attendance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CAMarkDisputeRequest true "Dispute details"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Dispute recorded"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Not the session owner"
// @Failure 404 {object} dto.ErrorResponse "Session or student not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /attendance/disputes [post]
func (c *AttendanceController) ReportCAMarkDispute(ctx *gin.Context) {
	admin, ok := middleware.CurrentAdmin(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, errMissingAdmin)
		return
	}

	var req dto.CAMarkDisputeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid dispute data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	err := c.reportService.ReportCAMarkDispute(ctx, admin, req.SessionID, req.CourseID, req.MatriculationNumber, req.Details)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Dispute recorded"},
		Timestamp: time.Now(),
	})
}
