package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"

	apierrors "github.com/yukikurage/workout-api/internal/errors"
)

const resourceIDKey = "resource_id"

// RequireResourceID parses the :id path parameter. Ownership is checked by
// the services, not here.
func RequireResourceID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil || id == 0 {
			apierrors.BadRequest(c, "Invalid resource ID")
			return
		}
		c.Set(resourceIDKey, id)
		c.Next()
	}
}

// GetResourceID returns the ID parsed by RequireResourceID.
func GetResourceID(c *gin.Context) (uint64, bool) {
	id, ok := c.Get(resourceIDKey)
	if !ok {
		return 0, false
	}
	v, ok := id.(uint64)
	return v, ok
}
