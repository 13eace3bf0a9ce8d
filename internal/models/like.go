package models

import "time"

// Like records that a user likes a product. One row per (user, product).
type Like struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_likes_user_product"`
	ProductID uint      `json:"product_id" gorm:"not null;index;uniqueIndex:idx_likes_user_product"`
	CreatedAt time.Time `json:"created_at"`
}

func (Like) TableName() string {
	return "likes"
}
