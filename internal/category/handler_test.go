package category

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mserebryaakov/handora-service/internal/auth"
	"github.com/mserebryaakov/handora-service/internal/request"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	require.NoError(t, request.RegisterValidators())

	svc, _ := newTestService()
	h := NewHandler(svc, logrus.NewEntry(logrus.New()), request.Limits{Default: 100, Max: 100})

	r := gin.New()
	api := r.Group("/api")
	adminGroup := api.Group("/admin", func(c *gin.Context) {
		auth.SetPrincipal(c, admin)
		c.Next()
	})
	h.Register(api, adminGroup)
	return r
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHandlerHierarchyFlow(t *testing.T) {
	r := newTestRouter(t)

	w := do(r, http.MethodPost, "/api/admin/categories", `{"name_az":"Elektronika","name_en":"Electronics","name_ru":"Электроника","slug":"electronics"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var parent Category
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &parent))

	w = do(r, http.MethodPost, "/api/admin/subcategories", `{"parent_id":1,"name_az":"Telefonlar","name_en":"Phones","name_ru":"Телефоны","slug":"phones"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = do(r, http.MethodPost, "/api/admin/subcategories", `{"parent_id":2,"name_az":"A","name_en":"B","name_ru":"C","slug":"nested"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(r, http.MethodPost, "/api/admin/categories", `{"name_az":"X","name_en":"Y","name_ru":"Z","slug":"phones"}`)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = do(r, http.MethodPost, "/api/admin/categories", `{"name_az":"X","name_en":"Y","name_ru":"Z","slug":"Bad Slug"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodGet, "/api/categories/1/subcategories", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(r, http.MethodGet, "/api/categories/2", "")
	assert.Equal(t, http.StatusNotFound, w.Code, "a subcategory is not served as a root")

	w = do(r, http.MethodGet, "/api/categories/subcategories/2", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(r, http.MethodPut, "/api/admin/categories/1", `{"name_en":"Gadgets"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"name_en":"Gadgets"`)

	w = do(r, http.MethodGet, "/api/categories/tree/all", "")
	require.Equal(t, http.StatusOK, w.Code)
	var tree []TreeNode
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tree))
	require.Len(t, tree, 1)
	assert.Len(t, tree[0].Subcategories, 1)

	w = do(r, http.MethodDelete, "/api/admin/categories/1", "")
	assert.Equal(t, http.StatusConflict, w.Code)

	w = do(r, http.MethodDelete, "/api/admin/subcategories/2", "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = do(r, http.MethodDelete, "/api/admin/categories/1", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestHandlerRejectsBadPagination(t *testing.T) {
	r := newTestRouter(t)
	w := do(r, http.MethodGet, "/api/categories?skip=-1", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
