package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CatalogItem struct {
	ID              primitive.ObjectID `bson:"_id"`
	Catalog_item_id string             `json:"catalog_item_id"`
	Name            *string            `json:"name" validate:"required,min=2,max=200"`
	Description     *string            `json:"description"`
	Images          []string           `json:"images"`
	Category_id     *string            `json:"category_id"`
	Default_karat   *string            `json:"default_karat"`
	Price_min       *float64           `json:"price_min"`
	Price_max       *float64           `json:"price_max"`
	Created_at      time.Time          `json:"created_at"`
	Updated_at      time.Time          `json:"updated_at"`
}

type Category struct {
	ID          primitive.ObjectID `bson:"_id"`
	Category_id string             `json:"category_id"`
	Name        *string            `json:"name" validate:"required,min=2,max=100"`
	Created_at  time.Time          `json:"created_at"`
	Updated_at  time.Time          `json:"updated_at"`
}

// Font is an engraving typeface offered for customization.
type Font struct {
	ID            primitive.ObjectID `bson:"_id"`
	Font_id       string             `json:"font_id"`
	Name          *string            `json:"name" validate:"required,min=1,max=100"`
	Preview_image *string            `json:"preview_image"`
	Created_at    time.Time          `json:"created_at"`
	Updated_at    time.Time          `json:"updated_at"`
}

// SpecialItem is a one-off showcase piece outside the regular catalog.
type SpecialItem struct {
	ID              primitive.ObjectID `bson:"_id"`
	Special_item_id string             `json:"special_item_id"`
	Name            *string            `json:"name" validate:"required,min=2,max=200"`
	Description     *string            `json:"description"`
	Images          []string           `json:"images"`
	Price           *float64           `json:"price"`
	Available       *bool              `json:"available"`
	Created_at      time.Time          `json:"created_at"`
	Updated_at      time.Time          `json:"updated_at"`
}
