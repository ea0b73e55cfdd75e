package brand

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/mserebryaakov/handora-service/internal/apperror"
	"github.com/mserebryaakov/handora-service/internal/auth"
	"github.com/mserebryaakov/handora-service/internal/request"
)

type brandHandler struct {
	log     *logrus.Entry
	service Service
}

func NewHandler(service Service, log *logrus.Entry) *brandHandler {
	return &brandHandler{
		log:     log,
		service: service,
	}
}

func (h *brandHandler) Register(api, admin gin.IRouter) {
	api.GET("/brands", h.list)
	api.GET("/brands/:id", h.get)

	admin.GET("/brands", h.list)
	admin.POST("/brands", h.create)
	admin.PUT("/brands/:id", h.update)
	admin.DELETE("/brands/:id", h.delete)
}

func (h *brandHandler) list(c *gin.Context) {
	brands, err := h.service.List(c.Request.Context())
	if err != nil {
		apperror.Respond(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, brands)
}

func (h *brandHandler) get(c *gin.Context) {
	id, err := request.ParamID(c, "id")
	if err != nil {
		apperror.Respond(c, h.log, err)
		return
	}

	b, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		apperror.Respond(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h *brandHandler) create(c *gin.Context) {
	var in CreateInput
	if err := request.BindJSON(c, &in); err != nil {
		apperror.Respond(c, h.log, err)
		return
	}

	actor, _ := auth.FromContext(c)
	b, err := h.service.Create(c.Request.Context(), actor, in)
	if err != nil {
		apperror.Respond(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, b)
}

func (h *brandHandler) update(c *gin.Context) {
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
	b, err := h.service.Update(c.Request.Context(), actor, id, in)
	if err != nil {
		apperror.Respond(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h *brandHandler) delete(c *gin.Context) {
	id, err := request.ParamID(c, "id")
	if err != nil {
		apperror.Respond(c, h.log, err)
		return
	}

	actor, _ := auth.FromContext(c)
	if err := h.service.Delete(c.Request.Context(), actor, id); err != nil {
		apperror.Respond(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}
