package request

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mserebryaakov/handora-service/internal/apperror"
)

type slugBody struct {
	Name string `json:"name" binding:"required"`
	Slug string `json:"slug" binding:"omitempty,slug"`
}

func TestBindJSONWithSlugTag(t *testing.T) {
	gin.SetMode(gin.TestMode)
	require.NoError(t, RegisterValidators())

	bind := func(body string) error {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")
		var dst slugBody
		return BindJSON(c, &dst)
	}

	assert.NoError(t, bind(`{"name":"Phones","slug":"mobile-phones"}`))
	assert.NoError(t, bind(`{"name":"Phones"}`))

	err := bind(`{"name":"Phones","slug":"Mobile Phones"}`)
	assert.True(t, apperror.Is(err, apperror.KindInvalidArgument))
	assert.Contains(t, err.Error(), "slug (slug)")

	assert.True(t, apperror.Is(bind(`{"slug":"x"}`), apperror.KindInvalidArgument))
	assert.True(t, apperror.Is(bind(`{`), apperror.KindInvalidArgument))
}

func TestParamID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	c.Params = gin.Params{{Key: "id", Value: "12"}}
	id, err := ParamID(c, "id")
	require.NoError(t, err)
	assert.Equal(t, uint(12), id)

	for _, raw := range []string{"0", "-3", "abc"} {
		c.Params = gin.Params{{Key: "id", Value: raw}}
		_, err := ParamID(c, "id")
		assert.True(t, apperror.Is(err, apperror.KindInvalidArgument), raw)
	}
}
