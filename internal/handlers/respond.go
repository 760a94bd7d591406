package handlers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yukikurage/workout-api/internal/auth"
	"github.com/yukikurage/workout-api/internal/constants"
	apierrors "github.com/yukikurage/workout-api/internal/errors"
	"github.com/yukikurage/workout-api/internal/logger"
	"github.com/yukikurage/workout-api/internal/middleware"
	"github.com/yukikurage/workout-api/internal/services"
)

// respondServiceError maps a service error kind to its status code. Store
// failures are logged and reported with a generic message.
func respondServiceError(c *gin.Context, log *logger.Logger, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidCredentials):
		apierrors.InvalidCredentials(c)
	case errors.Is(err, services.ErrUnauthenticated):
		apierrors.Unauthorized(c, "")
	case errors.Is(err, services.ErrNotFound):
		apierrors.NotFound(c, publicMessage(err, nil))
	case errors.Is(err, services.ErrPasswordTooShort):
		apierrors.BadRequest(c, fmt.Sprintf("Password must be at least %d characters", constants.MinPasswordLength))
	case errors.Is(err, services.ErrInvalidInput):
		apierrors.BadRequest(c, publicMessage(err, services.ErrInvalidInput))
	case errors.Is(err, services.ErrConflict):
		apierrors.Conflict(c, publicMessage(err, services.ErrConflict))
	case errors.Is(err, services.ErrUnavailable):
		log.Warn(c.Request.Context(), "dependency unavailable", err)
		apierrors.ServiceUnavailable(c, "")
	default:
		log.Error(c.Request.Context(), "request failed", err)
		apierrors.InternalError(c, "")
	}
}

// publicMessage strips the "kind: " prefix from a sentinel message.
func publicMessage(err, kind error) string {
	msg := err.Error()
	if kind != nil {
		msg = strings.TrimPrefix(msg, kind.Error()+": ")
	}
	return msg
}

// principalOrAbort returns the caller set by RequireAuth.
func principalOrAbort(c *gin.Context) (auth.Principal, bool) {
	p, ok := middleware.GetPrincipal(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
		return auth.Principal{}, false
	}
	return p, true
}

// resourceIDOrAbort returns the :id parsed by RequireResourceID.
func resourceIDOrAbort(c *gin.Context) (uint64, bool) {
	id, ok := middleware.GetResourceID(c)
	if !ok {
		apierrors.BadRequest(c, "Invalid resource ID")
		return 0, false
	}
	return id, true
}
