package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/authentikate/authentikate/internal/app/models"
	"github.com/authentikate/authentikate/internal/app/models/dto"
	"github.com/authentikate/authentikate/internal/app/repositories"
	"github.com/authentikate/authentikate/internal/pkg/auth"
)

// ContextAdminKey is the gin context key the authenticated admin is stored
// under.
const ContextAdminKey = "admin"

// AuthMiddleware validates bearer tokens and resolves the acting admin.
type AuthMiddleware struct {
	jwtService *auth.JWTService
	adminRepo  *repositories.AdminRepository
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(jwtService *auth.JWTService, adminRepo *repositories.AdminRepository) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		adminRepo:  adminRepo,
	}
}

// JWTAuth validates the Authorization header and loads the admin record the
// token was issued for into the request context.
func (m *AuthMiddleware) JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, dto.ErrorCodeUnauthorized, "Authorization header missing")
			return
		}

		tokenString, err := auth.ExtractBearerToken(authHeader)
		if err != nil {
			abortUnauthorized(c, dto.ErrorCodeUnauthorized, "Invalid token format")
			return
		}

		claims, err := m.jwtService.ValidateAndExtractClaims(tokenString)
		if err != nil {
			code := dto.ErrorCodeInvalidToken
			details := "Invalid token"
			if errors.Is(err, auth.ErrExpiredToken) {
				code = dto.ErrorCodeExpiredToken
				details = "Token has expired"
			}
			abortUnauthorized(c, code, details)
			return
		}

		// The admin is re-read on every request so revoked or deleted
		// accounts lose access as soon as the row goes away.
		admin, err := m.adminRepo.GetByID(c.Request.Context(), claims.AdminID)
		if err != nil {
			abortUnauthorized(c, dto.ErrorCodeInvalidToken, "Account no longer exists")
			return
		}

		c.Set(ContextAdminKey, admin)
		c.Next()
	}
}

// CurrentAdmin returns the admin resolved by JWTAuth for this request.
func CurrentAdmin(c *gin.Context) (*models.Admin, bool) {
	value, ok := c.Get(ContextAdminKey)
	if !ok {
		return nil, false
	}
	admin, ok := value.(*models.Admin)
	return admin, ok
}

func abortUnauthorized(c *gin.Context, code dto.ErrorCode, details string) {
	errorDetail := dto.NewErrorDetail(code, "Authentication required")
	errorDetail = errorDetail.WithDetails(details)
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
}
