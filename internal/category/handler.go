package category

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/mserebryaakov/handora-service/internal/apperror"
	"github.com/mserebryaakov/handora-service/internal/auth"
	"github.com/mserebryaakov/handora-service/internal/request"
)

type categoryHandler struct {
	log     *logrus.Entry
	service Service
	limits  request.Limits
}

func NewHandler(service Service, log *logrus.Entry, limits request.Limits) *categoryHandler {
	return &categoryHandler{
		log:     log,
		service: service,
		limits:  limits,
	}
}

// Register mounts public routes on api and mutations on admin, which must
// already carry the authentication and admin middlewares.
func (h *categoryHandler) Register(api, admin gin.IRouter) {
	categories := api.Group("/categories")
	categories.GET("", h.listParents)
	categories.GET("/tree/all", h.tree)
	categories.GET("/subcategories/all", h.listSubcategories)
	categories.GET("/subcategories/:id", h.getSubcategory)
	categories.GET("/:id", h.getParent)
	categories.GET("/:id/subcategories", h.listChildren)

	admin.GET("/categories/tree", h.tree)
	admin.POST("/categories", h.createParent)
	admin.PUT("/categories/:id", h.updateParent)
	admin.DELETE("/categories/:id", h.deleteParent)
	admin.POST("/subcategories", h.createSubcategory)
	admin.PUT("/subcategories/:id", h.updateSubcategory)
	admin.DELETE("/subcategories/:id", h.deleteSubcategory)
}

func (h *categoryHandler) listParents(c *gin.Context) {
	page, err := request.PageFromQuery(c, h.limits)
	if err != nil {
		apperror.Respond(c, h.log, err)
		return
	}

	categories, err := h.service.ListParents(c.Request.Context(), page.Skip, page.Limit)
	if err != nil {
		apperror.Respond(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

func (h *categoryHandler) getParent(c *gin.Context) {
	id, err := request.ParamID(c, "id")
	if err != nil {
		apperror.Respond(c, h.log, err)
		return
	}

	category, err := h.service.GetParent(c.Request.Context(), id)
	if err != nil {
		apperror.Respond(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

func (h *categoryHandler) listChildren(c *gin.Context) {
	id, err := request.ParamID(c, "id")
	if err != nil {
		apperror.Respond(c, h.log, err)
		return
	}

	children, err := h.service.ListChildren(c.Request.Context(), id)
	if err != nil {
		apperror.Respond(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, children)
}

func (h *categoryHandler) listSubcategories(c *gin.Context) {
	parentID, err := request.QueryID(c, "parent_id")
	if err != nil {
		apperror.Respond(c, h.log, err)
		return
	}

	subs, err := h.service.ListSubcategories(c.Request.Context(), parentID)
	if err != nil {
		apperror.Respond(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, subs)
}

func (h *categoryHandler) getSubcategory(c *gin.Context) {
	id, err := request.ParamID(c, "id")
	if err != nil {
		apperror.Respond(c, h.log, err)
		return
	}

	sub, err := h.service.GetSubcategory(c.Request.Context(), id)
	if err != nil {
		apperror.Respond(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, sub)
}

func (h *categoryHandler) tree(c *gin.Context) {
	tree, err := h.service.Tree(c.Request.Context())
	if err != nil {
		apperror.Respond(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, tree)
}

func (h *categoryHandler) createParent(c *gin.Context) {
	var in CreateInput
	if err := request.BindJSON(c, &in); err != nil {
		apperror.Respond(c, h.log, err)
		return
	}

	actor, _ := auth.FromContext(c)
	category, err := h.service.CreateParent(c.Request.Context(), actor, in)
	if err != nil {
		apperror.Respond(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, category)
}

func (h *categoryHandler) createSubcategory(c *gin.Context) {
	var in CreateSubcategoryInput
	if err := request.BindJSON(c, &in); err != nil {
		apperror.Respond(c, h.log, err)
		return
	}

	actor, _ := auth.FromContext(c)
	category, err := h.service.CreateSubcategory(c.Request.Context(), actor, in.ParentID, in.CreateInput)
	if err != nil {
		apperror.Respond(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, category)
}

func (h *categoryHandler) updateParent(c *gin.Context) {
	h.update(c, h.service.UpdateParent)
}

func (h *categoryHandler) updateSubcategory(c *gin.Context) {
	h.update(c, h.service.UpdateSubcategory)
}

type updateFunc func(ctx context.Context, actor auth.Principal, id uint, in UpdateInput) (*Category, error)

func (h *categoryHandler) update(c *gin.Context, fn updateFunc) {
	id, err := request.ParamID(c, "id")
	if err != nil {
		apperror.Respond(c, h.log, err)
		return
	}

	var in UpdateInput
	if err := request.BindJSON(c, &in); err != nil {
		apperror.Respond(c, h.log, err)
		return
	}

	actor, _ := auth.FromContext(c)
	category, err := fn(c.Request.Context(), actor, id, in)
	if err != nil {
		apperror.Respond(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

func (h *categoryHandler) deleteParent(c *gin.Context) {
	h.delete(c, h.service.DeleteParent)
}

func (h *categoryHandler) deleteSubcategory(c *gin.Context) {
	h.delete(c, h.service.DeleteSubcategory)
}

func (h *categoryHandler) delete(c *gin.Context, fn func(ctx context.Context, actor auth.Principal, id uint) error) {
	id, err := request.ParamID(c, "id")
	if err != nil {
		apperror.Respond(c, h.log, err)
		return
	}

	actor, _ := auth.FromContext(c)
	if err := fn(c.Request.Context(), actor, id); err != nil {
		apperror.Respond(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}
