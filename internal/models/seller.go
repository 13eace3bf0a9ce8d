package models

import "time"

// Seller is the storefront identity of a promoted user. One per user.
type Seller struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	UserID     uint      `json:"user_id" gorm:"not null;uniqueIndex"`
	ShopName   string    `json:"shop_name" gorm:"not null"`
	IsApproved bool      `json:"is_approved" gorm:"default:false;index"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

type BecomeSellerRequest struct {
	ShopName string `json:"shop_name" binding:"required,min=1,max=120"`
}
