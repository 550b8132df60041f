package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/authentikate/authentikate/internal/app/models/dto"
	"github.com/authentikate/authentikate/internal/app/services"
	"github.com/authentikate/authentikate/internal/middleware"
)

// sessionTimeLayout renders session windows as naive local timestamps.
const sessionTimeLayout = "2006-01-02T15:04:05"

// SessionController handles exam session registration and listing
type SessionController struct {
	sessionService *services.SessionService
}

// NewSessionController creates a new SessionController
func NewSessionController(sessionService *services.SessionService) *SessionController {
	return &SessionController{
		sessionService: sessionService,
	}
}

// CreateSession opens a new exam session
// @Summary Create an exam session
// @Description Opens a time-bounded session for one of the admin's courses. Overlapping windows for the same course are rejected.
// @Tags sessions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateSessionRequest true "Course code and session window"
// @Success 201 {object} dto.APIResponse{data=dto.CreateSessionResponse} "Session created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Course belongs to another department"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 409 {object} dto.ErrorResponse "Overlapping session for this course"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /sessions [post]
func (c *SessionController) CreateSession(ctx *gin.Context) {
	admin, ok := middleware.CurrentAdmin(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, errMissingAdmin)
		return
	}

	var req dto.CreateSessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid session data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	session, err := c.sessionService.CreateSession(ctx, admin, req.CourseCode, req.StartTime, req.EndTime)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data: dto.CreateSessionResponse{
			Message:   "Session created successfully",
			SessionID: session.ID,
		},
		Timestamp: time.Now(),
	})
}

// ListActiveSessions lists the admin's open sessions
// @Summary List active exam sessions
// @Description Purges expired sessions and returns the admin's sessions that are still open
// @Tags sessions
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.SessionSummary} "Active sessions"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /sessions [get]
func (c *SessionController) ListActiveSessions(ctx *gin.Context) {
	admin, ok := middleware.CurrentAdmin(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, errMissingAdmin)
		return
	}

	sessions, err := c.sessionService.ListActiveSessions(ctx, admin)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	summaries := make([]dto.SessionSummary, 0, len(sessions))
	for _, session := range sessions {
		summaries = append(summaries, dto.SessionSummary{
			SessionID:  session.ID,
			CourseCode: session.CourseCode,
			StartTime:  session.StartTime.Format(sessionTimeLayout),
			EndTime:    session.EndTime.Format(sessionTimeLayout),
		})
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      summaries,
		Timestamp: time.Now(),
	})
}
