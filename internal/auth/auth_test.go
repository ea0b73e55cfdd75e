package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mserebryaakov/handora-service/internal/apperror"
)

const testSecret = "test-secret"

func TestVerifyRoundTrip(t *testing.T) {
	token, err := NewToken(testSecret, Principal{UserID: 42, Role: RoleAdmin}, time.Hour)
	require.NoError(t, err)

	p, err := NewVerifier(testSecret).Verify(token)
	require.NoError(t, err)
	assert.Equal(t, Principal{UserID: 42, Role: RoleAdmin}, p)
}

func TestVerifyRejects(t *testing.T) {
	expired, err := NewToken(testSecret, Principal{UserID: 1, Role: RoleUser}, -time.Minute)
	require.NoError(t, err)

	otherKey, err := NewToken("other", Principal{UserID: 1, Role: RoleUser}, time.Hour)
	require.NoError(t, err)

	badRole, err := NewToken(testSecret, Principal{UserID: 1, Role: "root"}, time.Hour)
	require.NoError(t, err)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{UserID: 1, Role: "admin"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	v := NewVerifier(testSecret)
	for name, tok := range map[string]string{
		"empty": "", "expired": expired, "other key": otherKey, "bad role": badRole, "alg none": none,
	} {
		_, err := v.Verify(tok)
		assert.Error(t, err, name)
	}
}

func TestRequireAdmin(t *testing.T) {
	assert.NoError(t, RequireAdmin(Principal{UserID: 1, Role: RoleAdmin}))
	assert.True(t, apperror.Is(RequireAdmin(Principal{UserID: 1, Role: RoleUser}), apperror.KindForbidden))
	assert.True(t, apperror.Is(RequireAdmin(Principal{}), apperror.KindUnauthorized))
}

func TestMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mw := NewMiddleware(NewVerifier(testSecret), logrus.NewEntry(logrus.New()))

	r := gin.New()
	r.GET("/me", mw.Authenticate(), func(c *gin.Context) {
		p, _ := FromContext(c)
		c.JSON(http.StatusOK, gin.H{"user_id": p.UserID})
	})
	r.GET("/admin", mw.Authenticate(), mw.RequireAdmin(), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	userToken, _ := NewToken(testSecret, Principal{UserID: 7, Role: RoleUser}, time.Hour)
	adminToken, _ := NewToken(testSecret, Principal{UserID: 1, Role: RoleAdmin}, time.Hour)

	tests := []struct {
		path   string
		header string
		want   int
	}{
		{"/me", "", http.StatusUnauthorized},
		{"/me", "Token " + userToken, http.StatusUnauthorized},
		{"/me", "Bearer garbage", http.StatusUnauthorized},
		{"/me", "Bearer " + userToken, http.StatusOK},
		{"/admin", "Bearer " + userToken, http.StatusForbidden},
		{"/admin", "Bearer " + adminToken, http.StatusNoContent},
	}

	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, tt.path, nil)
		if tt.header != "" {
			req.Header.Set("Authorization", tt.header)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, tt.want, w.Code, "%s %q", tt.path, tt.header)
	}
}

func TestSetPrincipalFeedsRequireAdmin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mw := NewMiddleware(NewVerifier(testSecret), logrus.NewEntry(logrus.New()))

	route := func(p Principal) int {
		r := gin.New()
		r.GET("/admin", func(c *gin.Context) {
			SetPrincipal(c, p)
			c.Next()
		}, mw.RequireAdmin(), func(c *gin.Context) {
			got, ok := FromContext(c)
			assert.True(t, ok)
			assert.Equal(t, p, got)
			c.Status(http.StatusNoContent)
		})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin", nil))
		return w.Code
	}

	assert.Equal(t, http.StatusNoContent, route(Principal{UserID: 1, Role: RoleAdmin}))
	assert.Equal(t, http.StatusForbidden, route(Principal{UserID: 7, Role: RoleUser}))
}
