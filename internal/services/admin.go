// services/admin.go
package services

import (
	"context"
	"fmt"

	"github.com/princeprakhar/gold-marketplace/internal/models"
	"gorm.io/gorm"
)

type AdminService struct {
	db *gorm.DB
}

func NewAdminService(db *gorm.DB) *AdminService {
	return &AdminService{db: db}
}

type DashboardStats struct {
	TotalProducts       int64 `json:"total_products"`
	TotalUsers          int64 `json:"total_users"`
	ApprovedSellers     int64 `json:"approved_sellers"`
	PendingSellers      int64 `json:"pending_sellers"`
	TotalLikes          int64 `json:"total_likes"`
	ActiveAnnouncements int64 `json:"active_announcements"`
}

func (s *AdminService) GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	db := s.db.WithContext(ctx)
	stats := &DashboardStats{}

	counts := []struct {
		name  string
		query *gorm.DB
		dest  *int64
	}{
		{"products", db.Model(&models.Product{}), &stats.TotalProducts},
		{"users", db.Model(&models.User{}).Where("is_active = ?", true), &stats.TotalUsers},
		{"approved sellers", db.Model(&models.Seller{}).Where("is_approved = ?", true), &stats.ApprovedSellers},
		{"pending sellers", db.Model(&models.Seller{}).Where("is_approved = ?", false), &stats.PendingSellers},
		{"likes", db.Model(&models.Like{}), &stats.TotalLikes},
		{"announcements", db.Model(&models.Announcement{}).Where("is_active = ?", true), &stats.ActiveAnnouncements},
	}
	for _, c := range counts {
		if err := c.query.Count(c.dest).Error; err != nil {
			return nil, fmt.Errorf("%w: failed to count %s: %v", ErrDatabaseQuery, c.name, err)
		}
	}

	return stats, nil
}
