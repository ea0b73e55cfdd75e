package wishlist

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/mserebryaakov/handora-service/internal/apperror"
	"github.com/mserebryaakov/handora-service/internal/auth"
	"github.com/mserebryaakov/handora-service/internal/request"
)

type wishlistHandler struct {
	log     *logrus.Entry
	service Service
}

func NewHandler(service Service, log *logrus.Entry) *wishlistHandler {
	return &wishlistHandler{
		log:     log,
		service: service,
	}
}

// Register mounts the routes on a group that authenticates the caller.
func (h *wishlistHandler) Register(user gin.IRouter) {
	user.POST("/wishlist", h.add)
	user.DELETE("/wishlist/:product_id", h.remove)
	user.GET("/wishlist", h.list)
}

// add accepts product_id as a query parameter or in a JSON body.
func (h *wishlistHandler) add(c *gin.Context) {
	var in AddInput
	if c.Query("product_id") != "" {
		id, err := request.QueryID(c, "product_id")
		if err != nil {
			apperror.Respond(c, h.log, err)
			return
		}
		in.ProductID = *id
	} else if err := request.BindJSON(c, &in); err != nil {
		apperror.Respond(c, h.log, err)
		return
	}

	actor, _ := auth.FromContext(c)
	if err := h.service.Add(c.Request.Context(), actor, in.ProductID); err != nil {
		apperror.Respond(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"product_id": in.ProductID})
}

func (h *wishlistHandler) remove(c *gin.Context) {
	id, err := request.ParamID(c, "product_id")
	if err != nil {
		apperror.Respond(c, h.log, err)
		return
	}

	actor, _ := auth.FromContext(c)
	if err := h.service.Remove(c.Request.Context(), actor, id); err != nil {
		apperror.Respond(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *wishlistHandler) list(c *gin.Context) {
	actor, _ := auth.FromContext(c)
	products, err := h.service.List(c.Request.Context(), actor)
	if err != nil {
		apperror.Respond(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, products)
}
