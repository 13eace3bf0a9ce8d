// models/product.go
package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ProductCategory string

const (
	CategoryRing     ProductCategory = "RING"
	CategoryBracelet ProductCategory = "BRACELET"
	CategoryNecklace ProductCategory = "NECKLACE"
	CategoryEarring  ProductCategory = "EARRING"
	CategoryBangle   ProductCategory = "BANGLE"
	CategoryPendant  ProductCategory = "PENDANT"
	CategoryAnklet   ProductCategory = "ANKLET"
	CategoryChain    ProductCategory = "CHAIN"
	CategoryCoin     ProductCategory = "COIN"
	CategoryBar      ProductCategory = "BAR"
	CategoryOther    ProductCategory = "OTHER"
)

var Categories = []ProductCategory{
	CategoryRing, CategoryBracelet, CategoryNecklace, CategoryEarring, CategoryBangle,
	CategoryPendant, CategoryAnklet, CategoryChain, CategoryCoin, CategoryBar, CategoryOther,
}

// ParseCategory matches a category name case-insensitively.
func ParseCategory(value string) (ProductCategory, bool) {
	value = strings.ToUpper(strings.TrimSpace(value))
	for _, c := range Categories {
		if string(c) == value {
			return c, true
		}
	}
	return "", false
}

type Product struct {
	ID                  uint            `json:"id" gorm:"primaryKey"`
	SellerID            uint            `json:"seller_id" gorm:"not null;index"`
	Title               string          `json:"title" gorm:"not null"`
	Description         string          `json:"description"`
	Category            ProductCategory `json:"category" gorm:"type:varchar(20);not null;index"`
	Weight              decimal.Decimal `json:"weight" gorm:"type:numeric;not null"`
	Size                string          `json:"size,omitempty"`
	MakingFee           decimal.Decimal `json:"making_fee" gorm:"type:numeric;not null;default:0"`
	ProfitPercent       decimal.Decimal `json:"profit_percent" gorm:"type:numeric;not null;default:0"`
	GoldPriceAtCreation decimal.Decimal `json:"gold_price_at_creation" gorm:"type:numeric;not null"`
	FinalPrice          decimal.Decimal `json:"final_price" gorm:"type:numeric;not null;index"`
	LikeCount           int64           `json:"-" gorm:"not null;default:0"`
	Images              []Image         `json:"images" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	CreatedAt           time.Time       `json:"created_at" gorm:"index"`
	UpdatedAt           time.Time       `json:"updated_at"`

	Seller *Seller `json:"seller,omitempty" gorm:"foreignKey:SellerID"`
}

// PrimaryImage returns the flagged image, falling back to the first one.
func (p *Product) PrimaryImage() *Image {
	if len(p.Images) == 0 {
		return nil
	}
	for i := range p.Images {
		if p.Images[i].IsPrimary {
			return &p.Images[i]
		}
	}
	return &p.Images[0]
}

type Image struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	ProductID uint      `gorm:"not null;index" json:"product_id"`
	URL       string    `gorm:"not null" json:"url"`
	S3Key     string    `gorm:"index" json:"-"`
	IsPrimary bool      `gorm:"default:false" json:"is_primary"`
	Position  int       `gorm:"not null;default:0" json:"position"`
	CreatedAt time.Time `json:"created_at"`
}

func (i *Image) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

type ImageInput struct {
	URL       string `json:"url" binding:"required,url"`
	IsPrimary bool   `json:"is_primary"`
}

// Request structs for API
type CreateProductRequest struct {
	Title         string          `json:"title" binding:"required,max=255"`
	Description   string          `json:"description" binding:"max=4000"`
	Category      string          `json:"category" binding:"required"`
	Weight        decimal.Decimal `json:"weight"`
	Size          string          `json:"size"`
	MakingFee     decimal.Decimal `json:"making_fee"`
	ProfitPercent decimal.Decimal `json:"profit_percent"`
	GoldPrice     decimal.Decimal `json:"gold_price"`
	Images        []ImageInput    `json:"images" binding:"dive"`
}

type UpdateProductRequest struct {
	Title         *string          `json:"title,omitempty"`
	Description   *string          `json:"description,omitempty"`
	Category      *string          `json:"category,omitempty"`
	Weight        *decimal.Decimal `json:"weight,omitempty"`
	Size          *string          `json:"size,omitempty"`
	MakingFee     *decimal.Decimal `json:"making_fee,omitempty"`
	ProfitPercent *decimal.Decimal `json:"profit_percent,omitempty"`
	Images        *[]ImageInput    `json:"images,omitempty"`
}
