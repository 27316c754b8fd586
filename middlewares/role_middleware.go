package middlewares

import (
	"crumbs/constants"
	"crumbs/models"
	"crumbs/services"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireRole admits callers ranked at or above minRole. It must run after AuthMiddleware.
// The role comes from the database row AuthMiddleware loaded, never from token claims.
func RequireRole(minRole models.Role, logger *slog.Logger) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		value, exists := ctx.Get(constants.CallerKey)
		if !exists {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": constants.ErrUnauthorized})
			return
		}

		caller, ok := value.(services.Caller)
		if !ok {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": constants.ErrUnauthorized})
			return
		}

		if !caller.Role.AtLeast(minRole) {
			logger.Warn("role check denied",
				slog.Uint64("caller_id", uint64(caller.ID)),
				slog.String("caller_role", caller.Role.String()),
				slog.String("required_role", minRole.String()),
				slog.String("path", ctx.FullPath()),
			)
			ctx.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": constants.ErrForbidden})
			return
		}

		ctx.Next()
	}
}
