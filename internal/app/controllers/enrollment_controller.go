package controllers

import (
	"encoding/base64"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/authentikate/authentikate/internal/app/models/dto"
	"github.com/authentikate/authentikate/internal/app/services"
	"github.com/authentikate/authentikate/internal/middleware"
)

// maxPhotoBytes caps inline student photos at 2 MiB.
const maxPhotoBytes = 2 << 20

// EnrollmentController handles student registration and course lists
type EnrollmentController struct {
	enrollmentService *services.EnrollmentService
}

// NewEnrollmentController creates a new EnrollmentController
func NewEnrollmentController(enrollmentService *services.EnrollmentService) *EnrollmentController {
	return &EnrollmentController{
		enrollmentService: enrollmentService,
	}
}

// Enroll registers a student
// @Summary Enroll a student
// @Description Registers a student with a fingerprint template and an optional photo in the admin's department
// @Tags enrollment
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param matriculation_number formData string true "Matriculation number"
// @Param name formData string true "Full name"
// @Param department_id formData int true "Department ID"
// @Param level_id formData int true "Level ID"
// @Param fingerprint_template formData string true "Fingerprint template descriptor"
// @Param photo formData file false "Passport photo"
// @Success 201 {object} dto.APIResponse{data=dto.EnrollStudentResponse} "Student enrolled"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Department is not yours"
// @Failure 409 {object} dto.ErrorResponse "Matriculation number already registered"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /enrollment/students [post]
func (c *EnrollmentController) Enroll(ctx *gin.Context) {
	admin, ok := middleware.CurrentAdmin(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, errMissingAdmin)
		return
	}

	var req dto.EnrollStudentRequest
	if err := ctx.ShouldBind(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid enrollment data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	photo, err := readPhoto(ctx)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid photo upload")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	student, err := c.enrollmentService.Enroll(ctx, admin, services.EnrollStudentInput{
		MatriculationNumber: req.MatriculationNumber,
		Name:                req.Name,
		DepartmentID:        req.DepartmentID,
		LevelID:             req.LevelID,
		FingerprintTemplate: req.FingerprintTemplate,
		Photo:               photo,
	})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data: dto.EnrollStudentResponse{
			Message:             "Student enrolled successfully",
			MatriculationNumber: student.MatriculationNumber,
		},
		Timestamp: time.Now(),
	})
}

// readPhoto extracts the optional photo upload and returns it base64
// encoded for inline storage.
func readPhoto(ctx *gin.Context) (*string, error) {
	fileHeader, err := ctx.FormFile("photo")
	if err != nil {
		if err == http.ErrMissingFile {
			return nil, nil
		}
		return nil, err
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()

	raw, err := io.ReadAll(io.LimitReader(file, maxPhotoBytes))
	if err != nil {
		return nil, err
	}
	encoded := base64.StdEncoding.EncodeToString(raw)
	return &encoded, nil
}

// BulkUpload ingests a CSV course list
// @Summary Upload a course list
// @Description Parses a CSV of matriculation_number, name and ca_mark and upserts the course's enrollment records. Rows for unknown students are skipped.
// @Tags enrollment
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param courseId path int true "Course ID"
// @Param file formData file true "CSV course list"
// @Success 200 {object} dto.APIResponse{data=dto.BulkUploadResponse} "Course list processed"
// @Failure 400 {object} dto.ErrorResponse "Missing required columns"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Course belongs to another department"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /enrollment/courses/{courseId}/list [post]
func (c *EnrollmentController) BulkUpload(ctx *gin.Context) {
	admin, ok := middleware.CurrentAdmin(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, errMissingAdmin)
		return
	}

	courseID, err := strconv.ParseInt(ctx.Param("courseId"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid course ID")
		errorDetail = errorDetail.WithDetails("Course ID must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Course list file missing")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	defer file.Close()

	result, err := c.enrollmentService.BulkUploadCourseList(ctx, admin, courseID, file)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: dto.BulkUploadResponse{
			Message:  "Course list processed",
			Enrolled: result.Enrolled,
			Skipped:  result.Skipped,
		},
		Timestamp: time.Now(),
	})
}

// EnrollmentStatus resolves a fingerprint to a student profile
// @Summary Check a student's enrollment status
// @Description Looks a student up by fingerprint template and lists every course the student is enrolled in
// @Tags enrollment
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.EnrollmentStatusRequest true "Fingerprint template"
// @Success 200 {object} dto.APIResponse{data=dto.EnrollmentStatusResponse} "Student profile"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "No student matches the fingerprint"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /enrollment/status [post]
func (c *EnrollmentController) EnrollmentStatus(ctx *gin.Context) {
	var req dto.EnrollmentStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid status request")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	profile, err := c.enrollmentService.EnrollmentStatus(ctx, req.FingerprintTemplate)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: dto.EnrollmentStatusResponse{
			MatriculationNumber: profile.Student.MatriculationNumber,
			Name:                profile.Student.Name,
			DepartmentID:        profile.Student.DepartmentID,
			LevelID:             profile.Student.LevelID,
			Photo:               profile.Student.Photo,
			EnrolledCourses:     profile.Courses,
		},
		Timestamp: time.Now(),
	})
}

// DownloadEnrollmentList exports registered students as CSV
// @Summary Download an enrollment list
// @Description Exports the students of a department and level as a CSV attachment
// @Tags enrollment
// @Produce text/csv
// @Security BearerAuth
// @Param departmentId query int true "Department ID"
// @Param levelId query int true "Level ID"
// @Success 200 {file} file "CSV enrollment list"
// @Failure 400 {object} dto.ErrorResponse "Invalid query parameters"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Department is not yours"
// @Failure 404 {object} dto.ErrorResponse "No students found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /enrollment/list [get]
func (c *EnrollmentController) DownloadEnrollmentList(ctx *gin.Context) {
	admin, ok := middleware.CurrentAdmin(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, errMissingAdmin)
		return
	}

	departmentID, err := strconv.ParseInt(ctx.Query("departmentId"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid department ID")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}
	levelID, err := strconv.ParseInt(ctx.Query("levelId"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid level ID")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	out, err := c.enrollmentService.EnrollmentListCSV(ctx, admin, departmentID, levelID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Header("Content-Disposition", `attachment; filename="enrollment_list.csv"`)
	ctx.Data(http.StatusOK, "text/csv", out)
}
