package middleware

import (
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/yukikurage/workout-api/internal/auth"
	"github.com/yukikurage/workout-api/internal/constants"
	apierrors "github.com/yukikurage/workout-api/internal/errors"
	"github.com/yukikurage/workout-api/internal/logger"
)

// IdentityResolver turns a bearer credential into a principal.
type IdentityResolver interface {
	Resolve(credential string) (auth.Principal, error)
}

// RequireAuth resolves the caller from an Authorization bearer token, or
// from the login session when no Authorization header is sent. A header
// that fails to resolve is rejected without consulting the session.
func RequireAuth(resolver IdentityResolver, log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var (
			principal auth.Principal
			ok        bool
		)
		if header := c.GetHeader(constants.HeaderAuthorization); header != "" {
			principal, ok = principalFromBearer(header, resolver)
		} else {
			principal, ok = principalFromSession(c)
		}
		if !ok {
			apierrors.Unauthorized(c, "")
			return
		}

		SetPrincipal(c, principal)
		ctx := log.WithField(c.Request.Context(), "user_id", principal.ID)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// SetPrincipal stores the authenticated caller on the request context.
func SetPrincipal(c *gin.Context, p auth.Principal) {
	c.Set(constants.ContextKeyPrincipal, p)
	c.Set(constants.ContextKeyUserID, p.ID)
	c.Set(constants.ContextKeyUsername, p.Username)
}

// GetPrincipal retrieves the authenticated caller
func GetPrincipal(c *gin.Context) (auth.Principal, bool) {
	value, exists := c.Get(constants.ContextKeyPrincipal)
	if !exists {
		return auth.Principal{}, false
	}
	p, ok := value.(auth.Principal)
	if !ok || p.IsZero() {
		return auth.Principal{}, false
	}
	return p, true
}

// SaveSession records the principal in the login session.
func SaveSession(c *gin.Context, p auth.Principal) error {
	session := sessions.Default(c)
	session.Set(constants.ContextKeyUserID, p.ID)
	session.Set(constants.ContextKeyUsername, p.Username)
	return session.Save()
}

// ClearSession drops the login session.
func ClearSession(c *gin.Context) error {
	session := sessions.Default(c)
	session.Clear()
	return session.Save()
}

func principalFromBearer(header string, resolver IdentityResolver) (auth.Principal, bool) {
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, constants.BearerScheme) {
		return auth.Principal{}, false
	}

	p, err := resolver.Resolve(strings.TrimSpace(token))
	if err != nil {
		return auth.Principal{}, false
	}
	return p, true
}

func principalFromSession(c *gin.Context) (auth.Principal, bool) {
	if _, ok := c.Get(sessions.DefaultKey); !ok {
		return auth.Principal{}, false
	}

	session := sessions.Default(c)
	id, ok := toUserID(session.Get(constants.ContextKeyUserID))
	if !ok {
		return auth.Principal{}, false
	}
	username, _ := session.Get(constants.ContextKeyUsername).(string)
	return auth.Principal{ID: id, Username: username}, true
}

func toUserID(value any) (uint64, bool) {
	switch v := value.(type) {
	case uint64:
		return v, v != 0
	case uint:
		return uint64(v), v != 0
	case int:
		if v <= 0 {
			return 0, false
		}
		return uint64(v), true
	case int64:
		if v <= 0 {
			return 0, false
		}
		return uint64(v), true
	default:
		return 0, false
	}
}
