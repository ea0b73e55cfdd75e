package stats

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/mserebryaakov/handora-service/internal/apperror"
	"github.com/mserebryaakov/handora-service/internal/auth"
)

type statsHandler struct {
	log     *logrus.Entry
	service Service
}

func NewHandler(service Service, log *logrus.Entry) *statsHandler {
	return &statsHandler{
		log:     log,
		service: service,
	}
}

func (h *statsHandler) Register(admin gin.IRouter) {
	admin.GET("/stats", h.dashboard)
}

func (h *statsHandler) dashboard(c *gin.Context) {
	actor, _ := auth.FromContext(c)
	d, err := h.service.Dashboard(c.Request.Context(), actor)
	if err != nil {
		apperror.Respond(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, d)
}
