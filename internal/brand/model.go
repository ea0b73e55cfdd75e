package brand

import (
	"time"

	"github.com/mserebryaakov/handora-service/pkg/optional"
)

type Brand struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:255;not null;uniqueIndex" json:"name"`
	LogoURL     *string   `gorm:"size:500" json:"logo_url"`
	Description *string   `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type CreateInput struct {
	Name        string  `json:"name" binding:"required,max=255"`
	LogoURL     *string `json:"logo_url" binding:"omitempty,max=500"`
	Description *string `json:"description"`
}

type UpdateInput struct {
	Name        optional.Field[string] `json:"name"`
	LogoURL     optional.Field[string] `json:"logo_url"`
	Description optional.Field[string] `json:"description"`
}
