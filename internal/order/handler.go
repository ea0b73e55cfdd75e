package order

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/mserebryaakov/handora-service/internal/apperror"
	"github.com/mserebryaakov/handora-service/internal/auth"
	"github.com/mserebryaakov/handora-service/internal/request"
)

type orderHandler struct {
	log          *logrus.Entry
	orderService OrderService
	limits       request.Limits
}

func NewHandler(orderService OrderService, log *logrus.Entry, limits request.Limits) *orderHandler {
	return &orderHandler{
		log:          log,
		orderService: orderService,
		limits:       limits,
	}
}

// Register mounts customer routes on user and management routes on admin.
// Both groups must already authenticate the caller.
func (h *orderHandler) Register(user, admin gin.IRouter) {
	user.POST("/orders", h.placeOrder)
	user.GET("/orders", h.listOwn)
	user.GET("/orders/:id", h.getOwn)

	admin.GET("/orders", h.listAll)
	admin.GET("/orders/:id", h.getAny)
	admin.PUT("/orders/:id/status", h.setStatus)
}

func (h *orderHandler) placeOrder(c *gin.Context) {
	var in PlaceOrderInput
	if err := request.BindJSON(c, &in); err != nil {
		apperror.Respond(c, h.log, err)
		return
	}

	actor, _ := auth.FromContext(c)
	order, err := h.orderService.PlaceOrder(c.Request.Context(), actor, in)
	if err != nil {
		apperror.Respond(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

func (h *orderHandler) listOwn(c *gin.Context) {
	actor, _ := auth.FromContext(c)
	orders, err := h.orderService.GetOrdersByUserID(c.Request.Context(), actor)
	if err != nil {
		apperror.Respond(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *orderHandler) getOwn(c *gin.Context) {
	id, err := request.ParamID(c, "id")
	if err != nil {
		apperror.Respond(c, h.log, err)
		return
	}

	actor, _ := auth.FromContext(c)
	order, err := h.orderService.GetOrderByID(c.Request.Context(), actor, id)
	if err != nil {
		apperror.Respond(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *orderHandler) listAll(c *gin.Context) {
	page, err := request.PageFromQuery(c, h.limits)
	if err != nil {
		apperror.Respond(c, h.log, err)
		return
	}

	actor, _ := auth.FromContext(c)
	orders, err := h.orderService.ListOrders(c.Request.Context(), actor, c.Query("status"), page.Skip, page.Limit)
	if err != nil {
		apperror.Respond(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *orderHandler) getAny(c *gin.Context) {
	id, err := request.ParamID(c, "id")
	if err != nil {
		apperror.Respond(c, h.log, err)
		return
	}

	actor, _ := auth.FromContext(c)
	order, err := h.orderService.GetOrderAdmin(c.Request.Context(), actor, id)
	if err != nil {
		apperror.Respond(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *orderHandler) setStatus(c *gin.Context) {
	id, err := request.ParamID(c, "id")
	if err != nil {
		apperror.Respond(c, h.log, err)
		return
	}

	var in StatusInput
	if err := request.BindJSON(c, &in); err != nil {
		apperror.Respond(c, h.log, err)
		return
	}

	actor, _ := auth.FromContext(c)
	order, err := h.orderService.SetStatus(c.Request.Context(), actor, id, in)
	if err != nil {
		apperror.Respond(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, order)
}
