package request

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mserebryaakov/handora-service/internal/apperror"
)

type Page struct {
	Skip  int
	Limit int
}

// Limits are the per-listing defaults; a zero Max disables clamping.
type Limits struct {
	Default int
	Max     int
}

// PageFromQuery reads skip and limit. Negative or malformed values are rejected,
// a missing limit takes the default and an oversized one is clamped to Max.
func PageFromQuery(c *gin.Context, l Limits) (Page, error) {
	p := Page{Limit: l.Default}

	if raw, ok := c.GetQuery("skip"); ok {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			return Page{}, apperror.InvalidArgument("error.pagination")
		}
		p.Skip = v
	}

	if raw, ok := c.GetQuery("limit"); ok {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			return Page{}, apperror.InvalidArgument("error.pagination")
		}
		p.Limit = v
	}

	return p.Clamp(l), nil
}

func (p Page) Clamp(l Limits) Page {
	if p.Skip < 0 {
		p.Skip = 0
	}
	if p.Limit <= 0 {
		p.Limit = l.Default
	}
	if l.Max > 0 && p.Limit > l.Max {
		p.Limit = l.Max
	}
	return p
}
