package auth

import (
	"github.com/mserebryaakov/handora-service/internal/apperror"
	"github.com/sirupsen/logrus"
)

type AuthLogHook struct{}

func (h *AuthLogHook) Fire(entry *logrus.Entry) error {
	entry.Message = "Auth: " + entry.Message
	return nil
}

func (h *AuthLogHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Principal is the verified caller of a request.
type Principal struct {
	UserID uint
	Role   Role
}

func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// RequireAdmin is the capability check every admin operation performs on the
// principal it was handed.
func RequireAdmin(p Principal) error {
	if p.UserID == 0 {
		return apperror.Unauthorized()
	}
	if !p.IsAdmin() {
		return apperror.Forbidden()
	}
	return nil
}
