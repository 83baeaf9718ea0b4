package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"fieldops/internal/domain/user"
	"fieldops/internal/infrastructure/auth"
	"fieldops/internal/shared/constants"
	"fieldops/internal/shared/logger"
	"fieldops/internal/shared/utils"
)

// AuthMiddleware verifies the bearer token and resolves the caller's profile.
// The profile is authoritative for role and active state: a token minted
// before a role change or deactivation does not keep its old powers.
type AuthMiddleware struct {
	jwtService  *auth.JWTService
	profileRepo user.ProfileRepository
	logger      logger.Interface
}

func NewAuthMiddleware(jwtService *auth.JWTService, profileRepo user.ProfileRepository, log logger.Interface) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService:  jwtService,
		profileRepo: profileRepo,
		logger:      log,
	}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "missing authorization token")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := m.jwtService.Verify(parts[1])
		if err != nil {
			m.logger.Warnw("failed to verify token", "error", err)
			utils.ErrorResponse(c, http.StatusUnauthorized, "invalid or expired token")
			c.Abort()
			return
		}

		profile, err := m.profileRepo.FindByID(c.Request.Context(), claims.UserID)
		if err != nil {
			m.logger.Errorw("failed to load profile", "error", err, "user_id", claims.UserID)
			utils.ErrorResponse(c, http.StatusInternalServerError, "failed to resolve user profile")
			c.Abort()
			return
		}
		if profile == nil {
			utils.ErrorResponse(c, http.StatusForbidden, "user profile not provisioned")
			c.Abort()
			return
		}
		if !profile.IsActive() {
			utils.ErrorResponse(c, http.StatusForbidden, "user account is deactivated")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUserID, claims.UserID)
		c.Set(constants.ContextKeyUserEmail, profile.Email())
		c.Set(constants.ContextKeyUserRole, profile.Role().String())
		c.Set(constants.ContextKeyUserName, profile.Name())

		c.Next()
	}
}
