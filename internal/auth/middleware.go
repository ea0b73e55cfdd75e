package auth

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/mserebryaakov/handora-service/internal/apperror"
)

const principalKey = "auth.principal"

type Middleware struct {
	verifier *Verifier
	log      *logrus.Entry
}

func NewMiddleware(verifier *Verifier, log *logrus.Entry) *Middleware {
	return &Middleware{verifier: verifier, log: log}
}

// Authenticate rejects requests without a valid bearer token and stores the
// principal in the gin context.
func (m *Middleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		scheme, token, ok := strings.Cut(header, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") {
			apperror.Respond(c, m.log, apperror.Unauthorized())
			return
		}

		p, err := m.verifier.Verify(token)
		if err != nil {
			m.log.Debugf("token rejected: %v", err)
			apperror.Respond(c, m.log, apperror.Unauthorized().Wrap(err))
			return
		}

		SetPrincipal(c, p)
		c.Next()
	}
}

// RequireAdmin must run after Authenticate.
func (m *Middleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		p, _ := FromContext(c)
		if err := RequireAdmin(p); err != nil {
			if apperror.Is(err, apperror.KindForbidden) {
				m.log.WithField("user_id", p.UserID).Warn("non-admin user attempted admin route")
			}
			apperror.Respond(c, m.log, err)
			return
		}
		c.Next()
	}
}

func FromContext(c *gin.Context) (Principal, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return Principal{}, false
	}
	p, ok := v.(Principal)
	return p, ok
}

// SetPrincipal stores the authenticated principal on the request context,
// where FromContext and RequireAdmin read it.
func SetPrincipal(c *gin.Context, p Principal) {
	c.Set(principalKey, p)
}
