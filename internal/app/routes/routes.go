package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/authentikate/authentikate/internal/app/controllers"
	"github.com/authentikate/authentikate/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	sessionController *controllers.SessionController,
	enrollmentController *controllers.EnrollmentController,
	attendanceController *controllers.AttendanceController,
	reportController *controllers.ReportController,
	referenceController *controllers.ReferenceController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Public routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/signup", authController.Signup)
		auth.POST("/login", authController.Login)
	}

	// Departments are public so the signup form can be populated
	v1.GET("/departments", referenceController.ListDepartments)

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.GET("/levels", referenceController.ListLevels)
		authenticated.GET("/courses", referenceController.ListCourses)

		sessions := authenticated.Group("/sessions")
		{
			sessions.POST("", sessionController.CreateSession)
			sessions.GET("", sessionController.ListActiveSessions)
		}

		enrollment := authenticated.Group("/enrollment")
		{
			enrollment.POST("/students", enrollmentController.Enroll)
			enrollment.POST("/status", enrollmentController.EnrollmentStatus)
			enrollment.POST("/courses/:courseId/list", enrollmentController.BulkUpload)
			enrollment.GET("/list", enrollmentController.DownloadEnrollmentList)
		}

		attendance := authenticated.Group("/attendance")
		{
			attendance.POST("/authenticate", attendanceController.Authenticate)
			attendance.POST("/disputes", attendanceController.ReportCAMarkDispute)
		}

		reports := authenticated.Group("/reports/sessions/:sessionId")
		{
			reports.GET("/attendance", reportController.AttendanceReport)
			reports.GET("/attendance/csv", reportController.AttendanceReportCSV)
			reports.GET("/errors", reportController.ErrorReport)
			reports.GET("/errors/csv", reportController.ErrorReportCSV)
		}
	}
}
