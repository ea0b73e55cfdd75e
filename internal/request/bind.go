package request

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/gosimple/slug"

	"github.com/mserebryaakov/handora-service/internal/apperror"
)

// RegisterValidators adds the custom tags used by request structs to gin's validator.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("unexpected gin validator engine")
	}
	return v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return slug.IsSlug(fl.Field().String())
	})
}

// ParamID parses a positive numeric path parameter.
func ParamID(c *gin.Context, name string) (uint, error) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, apperror.InvalidArgument("error.invalid_request", fmt.Sprintf("%s=%q", name, raw))
	}
	return uint(id), nil
}

// QueryID parses an optional positive numeric query parameter.
func QueryID(c *gin.Context, name string) (*uint, error) {
	raw, ok := c.GetQuery(name)
	if !ok || raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return nil, apperror.InvalidArgument("error.invalid_request", fmt.Sprintf("%s=%q", name, raw))
	}
	v := uint(id)
	return &v, nil
}

// QueryBool parses an optional boolean query parameter.
func QueryBool(c *gin.Context, name string) (*bool, error) {
	raw, ok := c.GetQuery(name)
	if !ok || raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, apperror.InvalidArgument("error.invalid_request", fmt.Sprintf("%s=%q", name, raw))
	}
	return &v, nil
}

// BindJSON decodes and validates the body into dst.
func BindJSON(c *gin.Context, dst any) error {
	if err := c.ShouldBindJSON(dst); err != nil {
		return Invalid(err)
	}
	return nil
}

// Invalid turns a binding error into an InvalidArgument naming the failed fields.
func Invalid(err error) error {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		fields := make([]string, 0, len(ve))
		for _, fe := range ve {
			fields = append(fields, fmt.Sprintf("%s (%s)", strings.ToLower(fe.Field()), fe.Tag()))
		}
		return apperror.InvalidArgument("error.invalid_request", strings.Join(fields, ", ")).Wrap(err)
	}
	return apperror.InvalidArgument("error.invalid_request", err.Error()).Wrap(err)
}
