package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/authentikate/authentikate/internal/app/models/dto"
	"github.com/authentikate/authentikate/internal/app/services"
	"github.com/authentikate/authentikate/internal/middleware"
)

// ReferenceController serves the reference data behind the admin forms
type ReferenceController struct {
	referenceService *services.ReferenceService
}

// NewReferenceController creates a new ReferenceController
func NewReferenceController(referenceService *services.ReferenceService) *ReferenceController {
	return &ReferenceController{
		referenceService: referenceService,
	}
}

// ListDepartments lists all departments
// @Summary List departments
// @Produce json
// @Tags reference
// @Success 200 {object} dto.APIResponse{data=[]models.Department} "Departments"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /departments [get]
func (c *ReferenceController) ListDepartments(ctx *gin.Context) {
	departments, err := c.referenceService.ListDepartments(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      departments,
		Timestamp: time.Now(),
	})
}

// ListLevels lists the admin's department levels
// @Summary List levels of the admin's department
// @Produce json
// @Tags reference
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Level} "Levels"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /levels [get]
func (c *ReferenceController) ListLevels(ctx *gin.Context) {
	admin, ok := middleware.CurrentAdmin(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, errMissingAdmin)
		return
	}

	levels, err := c.referenceService.ListLevels(ctx, admin)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      levels,
		Timestamp: time.Now(),
	})
}

// ListCourses lists the admin's department courses
// @Summary List courses of the admin's department
// @Produce json
// @Tags reference
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Course} "Courses"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses [get]
func (c *ReferenceController) ListCourses(ctx *gin.Context) {
	admin, ok := middleware.CurrentAdmin(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, errMissingAdmin)
		return
	}

	courses, err := c.referenceService.ListCourses(ctx, admin)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      courses,
		Timestamp: time.Now(),
	})
}
