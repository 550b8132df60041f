package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/authentikate/authentikate/internal/app/models/dto"
	"github.com/authentikate/authentikate/internal/app/services"
	"github.com/authentikate/authentikate/internal/middleware"
)

// AuthController handles admin registration and login
type AuthController struct {
	authService *services.AuthService
}

// NewAuthController creates a new AuthController
func NewAuthController(authService *services.AuthService) *AuthController {
	return &AuthController{
		authService: authService,
	}
}

// Signup registers a new department admin
// @Summary Register a department admin
// @Description Creates an admin account bound to one department and returns a bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.SignupRequest true "Admin credentials and department"
// @Success 201 {object} dto.APIResponse{data=dto.TokenResponse} "Admin registered"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 409 {object} dto.ErrorResponse "Username already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/signup [post]
func (c *AuthController) Signup(ctx *gin.Context) {
	var req dto.SignupRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid signup data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	admin, creds, err := c.authService.Signup(ctx, req.Username, req.Password, req.DepartmentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data: dto.TokenResponse{
			AccessToken:  creds.Token,
			TokenType:    "Bearer",
			ExpiresIn:    creds.ExpiresIn,
			Username:     admin.Username,
			DepartmentID: admin.DepartmentID,
		},
		Timestamp: time.Now(),
	})
}

// Login authenticates an admin
// @Summary Log an admin in
// @Description Verifies the credentials and returns a fresh bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Admin credentials"
// @Success 200 {object} dto.APIResponse{data=dto.TokenResponse} "Login successful"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid login data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	admin, creds, err := c.authService.Login(ctx, req.Username, req.Password)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: dto.TokenResponse{
			AccessToken:  creds.Token,
			TokenType:    "Bearer",
			ExpiresIn:    creds.ExpiresIn,
			Username:     admin.Username,
			DepartmentID: admin.DepartmentID,
		},
		Timestamp: time.Now(),
	})
}
