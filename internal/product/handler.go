package product

import (
	"errors"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/mserebryaakov/handora-service/internal/apperror"
	"github.com/mserebryaakov/handora-service/internal/auth"
	"github.com/mserebryaakov/handora-service/internal/request"
	"github.com/mserebryaakov/handora-service/pkg/optional"
)

const maxMultipartMemory = 32 << 20

type Limits struct {
	Public request.Limits
	Admin  request.Limits
}

type productHandler struct {
	log     *logrus.Entry
	service Service
	limits  Limits
}

func NewHandler(service Service, log *logrus.Entry, limits Limits) *productHandler {
	return &productHandler{
		log:     log,
		service: service,
		limits:  limits,
	}
}

func (h *productHandler) Register(api, admin gin.IRouter) {
	api.GET("/products", h.listPublic)
	api.GET("/products/search", h.search)
	api.GET("/products/:id", h.get)
	api.GET("/brands/:id/products", h.listByBrand)
	api.GET("/suggestion", h.suggestions)

	admin.GET("/products", h.listAdmin)
	admin.POST("/products", h.create)
	admin.PUT("/products/:id", h.update)
	admin.DELETE("/products/:id", h.delete)
}

type createForm struct {
	NameAz        string   `form:"name_az" binding:"required,max=500"`
	NameEn        string   `form:"name_en" binding:"required,max=500"`
	NameRu        string   `form:"name_ru" binding:"required,max=500"`
	DescriptionAz string   `form:"description_az"`
	DescriptionEn string   `form:"description_en"`
	DescriptionRu string   `form:"description_ru"`
	Price         string   `form:"price" binding:"required"`
	DiscountPrice string   `form:"discount_price"`
	CategoryID    uint     `form:"category_id" binding:"required"`
	BrandID       uint     `form:"brand_id" binding:"required"`
	Stock         int      `form:"stock" binding:"min=0"`
	IsNew         *bool    `form:"is_new"`
	IsSale        *bool    `form:"is_sale"`
	ImageURLs     []string `form:"image_urls"`
}

func (f createForm) input() (CreateInput, error) {
	price, err := decimal.NewFromString(f.Price)
	if err != nil {
		return CreateInput{}, &optional.FormError{Key: "price", Err: err}
	}

	in := CreateInput{
		NameAz:        f.NameAz,
		NameEn:        f.NameEn,
		NameRu:        f.NameRu,
		DescriptionAz: f.DescriptionAz,
		DescriptionEn: f.DescriptionEn,
		DescriptionRu: f.DescriptionRu,
		Price:         price,
		CategoryID:    f.CategoryID,
		BrandID:       f.BrandID,
		Stock:         f.Stock,
		IsNew:         f.IsNew,
		IsSale:        f.IsSale,
		ImageURLs:     f.ImageURLs,
	}

	if f.DiscountPrice != "" {
		d, err := decimal.NewFromString(f.DiscountPrice)
		if err != nil {
			return CreateInput{}, &optional.FormError{Key: "discount_price", Err: err}
		}
		in.DiscountPrice = &d
	}
	return in, nil
}

func updateInput(values url.Values) (UpdateInput, error) {
	in := UpdateInput{
		NameAz:        optional.FormString(values, "name_az"),
		NameEn:        optional.FormString(values, "name_en"),
		NameRu:        optional.FormString(values, "name_ru"),
		DescriptionAz: optional.FormString(values, "description_az"),
		DescriptionEn: optional.FormString(values, "description_en"),
		DescriptionRu: optional.FormString(values, "description_ru"),
		ImageURLs:     optional.FormStrings(values, "image_urls"),
	}

	var err error
	if in.Price, err = optional.FormParse(values, "price", decimal.NewFromString); err != nil {
		return in, err
	}
	if in.DiscountPrice, err = optional.FormParse(values, "discount_price", decimal.NewFromString); err != nil {
		return in, err
	}
	if in.CategoryID, err = optional.FormParse(values, "category_id", optional.ParseUint); err != nil {
		return in, err
	}
	if in.BrandID, err = optional.FormParse(values, "brand_id", optional.ParseUint); err != nil {
		return in, err
	}
	if in.Stock, err = optional.FormParse(values, "stock", optional.ParseInt); err != nil {
		return in, err
	}
	if in.IsNew, err = optional.FormParse(values, "is_new", strconv.ParseBool); err != nil {
		return in, err
	}
	if in.IsSale, err = optional.FormParse(values, "is_sale", strconv.ParseBool); err != nil {
		return in, err
	}
	return in, nil
}

func uploadedImages(c *gin.Context) []*multipart.FileHeader {
	if c.Request.MultipartForm == nil {
		return nil
	}
	return c.Request.MultipartForm.File["images"]
}

func (h *productHandler) create(c *gin.Context) {
	var form createForm
	if err := c.ShouldBind(&form); err != nil {
		apperror.Respond(c, h.log, request.Invalid(err))
		return
	}

	in, err := form.input()
	if err != nil {
		apperror.Respond(c, h.log, request.Invalid(err))
		return
	}

	actor, _ := auth.FromContext(c)
	p, err := h.service.Create(c.Request.Context(), actor, in, uploadedImages(c))
	if err != nil {
		apperror.Respond(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h *productHandler) update(c *gin.Context) {
	id, err := request.ParamID(c, "id")
	if err != nil {
		apperror.Respond(c, h.log, err)
		return
	}

	if err := c.Request.ParseMultipartForm(maxMultipartMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		apperror.Respond(c, h.log, request.Invalid(err))
		return
	}

	in, err := updateInput(c.Request.PostForm)
	if err != nil {
		apperror.Respond(c, h.log, request.Invalid(err))
		return
	}

	actor, _ := auth.FromContext(c)
	p, err := h.service.Update(c.Request.Context(), actor, id, in, uploadedImages(c))
	if err != nil {
		apperror.Respond(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *productHandler) delete(c *gin.Context) {
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

func (h *productHandler) get(c *gin.Context) {
	id, err := request.ParamID(c, "id")
	if err != nil {
		apperror.Respond(c, h.log, err)
		return
	}

	p, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		apperror.Respond(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *productHandler) listPublic(c *gin.Context) {
	h.list(c, h.limits.Public)
}

func (h *productHandler) listAdmin(c *gin.Context) {
	h.list(c, h.limits.Admin)
}

func (h *productHandler) list(c *gin.Context, limits request.Limits) {
	page, err := request.PageFromQuery(c, limits)
	if err != nil {
		apperror.Respond(c, h.log, err)
		return
	}

	f, err := filterFromQuery(c)
	if err != nil {
		apperror.Respond(c, h.log, err)
		return
	}

	products, err := h.service.List(c.Request.Context(), f, page.Skip, page.Limit)
	if err != nil {
		apperror.Respond(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *productHandler) listByBrand(c *gin.Context) {
	id, err := request.ParamID(c, "id")
	if err != nil {
		apperror.Respond(c, h.log, err)
		return
	}

	page, err := request.PageFromQuery(c, h.limits.Public)
	if err != nil {
		apperror.Respond(c, h.log, err)
		return
	}

	products, err := h.service.List(c.Request.Context(), Filter{BrandID: &id}, page.Skip, page.Limit)
	if err != nil {
		apperror.Respond(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *productHandler) search(c *gin.Context) {
	products, err := h.service.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		apperror.Respond(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *productHandler) suggestions(c *gin.Context) {
	products, err := h.service.Suggestions(c.Request.Context())
	if err != nil {
		apperror.Respond(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

func filterFromQuery(c *gin.Context) (Filter, error) {
	var (
		f   Filter
		err error
	)
	if f.CategoryID, err = request.QueryID(c, "category_id"); err != nil {
		return f, err
	}
	if f.BrandID, err = request.QueryID(c, "brand_id"); err != nil {
		return f, err
	}
	if f.IsSale, err = request.QueryBool(c, "is_sale"); err != nil {
		return f, err
	}
	if f.IsNew, err = request.QueryBool(c, "is_new"); err != nil {
		return f, err
	}
	f.Search = c.Query("search")
	return f, nil
}
