package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/abroadly/abroadly/internal/app/auth"
	"github.com/abroadly/abroadly/internal/app/models/dto"
	"github.com/abroadly/abroadly/internal/pkg/apperrors"
	"github.com/abroadly/abroadly/internal/pkg/logger"
	"github.com/abroadly/abroadly/internal/pkg/session"
)

const (
	sessionContextKey  = "session"
	identityContextKey = "identity"
)

// SessionMiddleware attaches the request session and enforces identity
// requirements on guarded route groups.
type SessionMiddleware struct {
	manager  *session.Manager
	resolver *auth.Resolver
}

// NewSessionMiddleware creates a new SessionMiddleware
func NewSessionMiddleware(manager *session.Manager, resolver *auth.Resolver) *SessionMiddleware {
	return &SessionMiddleware{
		manager:  manager,
		resolver: resolver,
	}
}

// Attach makes the request session available to all downstream handlers.
// It performs no identity resolution, so public endpoints stay free of
// session store lookups.
func (m *SessionMiddleware) Attach() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(sessionContextKey, m.manager.Load(c))
		c.Next()
	}
}

// CurrentSession returns the session attached to the request
func CurrentSession(c *gin.Context) *session.Session {
	value, ok := c.Get(sessionContextKey)
	if !ok {
		return nil
	}
	sess, _ := value.(*session.Session)
	return sess
}

// CurrentIdentity returns the identity resolved by a guard middleware.
// Handlers behind a guard can rely on it being non-anonymous.
func CurrentIdentity(c *gin.Context) auth.Identity {
	value, ok := c.Get(identityContextKey)
	if !ok {
		return auth.Anonymous
	}
	identity, ok := value.(auth.Identity)
	if !ok {
		return auth.Anonymous
	}
	return identity
}

// resolve runs identity resolution for a guarded route. A session pointing
// at a deleted account aborts with 401 rather than falling through to a
// weaker identity.
func (m *SessionMiddleware) resolve(c *gin.Context) (auth.Identity, bool) {
	sess := CurrentSession(c)
	if sess == nil {
		sess = m.manager.Load(c)
		c.Set(sessionContextKey, sess)
	}

	identity, err := m.resolver.Resolve(c.Request.Context(), sess)
	if err != nil {
		if errors.Is(err, apperrors.ErrIdentityNotFound) {
			abortUnauthenticated(c)
			return auth.Anonymous, false
		}
		logger.Error().Err(err).Msg("Error resolving session identity")
		c.AbortWithStatusJSON(http.StatusInternalServerError,
			dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")))
		return auth.Anonymous, false
	}

	return identity, true
}

// RequireStudent admits only requests resolved as a student
func (m *SessionMiddleware) RequireStudent() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := m.resolve(c)
		if !ok {
			return
		}
		if identity.IsAnonymous() {
			abortUnauthenticated(c)
			return
		}
		if !identity.IsStudent() {
			abortForbidden(c, "Student account required")
			return
		}

		c.Set(identityContextKey, identity)
		c.Next()
	}
}

// RequireAlumni admits only requests resolved as an alumni. The forbidden
// message is per-route because each alumni-only action has its own wording.
func (m *SessionMiddleware) RequireAlumni(forbiddenMessage string) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := m.resolve(c)
		if !ok {
			return
		}
		if identity.IsAnonymous() {
			abortUnauthenticated(c)
			return
		}
		if !identity.IsAlumni() {
			abortForbidden(c, forbiddenMessage)
			return
		}

		c.Set(identityContextKey, identity)
		c.Next()
	}
}

// RequireStudentOrAlumni admits any authenticated principal
func (m *SessionMiddleware) RequireStudentOrAlumni() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := m.resolve(c)
		if !ok {
			return
		}
		if identity.IsAnonymous() {
			abortUnauthenticated(c)
			return
		}

		c.Set(identityContextKey, identity)
		c.Next()
	}
}

func abortUnauthenticated(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized,
		dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Not authenticated")))
}

func abortForbidden(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusForbidden,
		dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeForbidden, message)))
}
