package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/princeprakhar/gold-marketplace/internal/models"
	"gorm.io/gorm"
)

type AnnouncementService struct {
	db *gorm.DB
}

func NewAnnouncementService(db *gorm.DB) *AnnouncementService {
	return &AnnouncementService{db: db}
}

// List returns announcements newest first; activeOnly hides drafts.
func (s *AnnouncementService) List(ctx context.Context, activeOnly bool) ([]models.Announcement, error) {
	query := s.db.WithContext(ctx).Order("created_at DESC").Order("id DESC")
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	announcements := make([]models.Announcement, 0)
	if err := query.Find(&announcements).Error; err != nil {
		return nil, fmt.Errorf("%w: failed to fetch announcements: %v", ErrDatabaseQuery, err)
	}
	return announcements, nil
}

func (s *AnnouncementService) Create(ctx context.Context, req models.AnnouncementRequest) (*models.Announcement, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, validationError("title is required")
	}

	active := req.IsActive == nil || *req.IsActive
	announcement := &models.Announcement{
		Title: title,
		Body:  strings.TrimSpace(req.Body),
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(announcement).Error; err != nil {
			return err
		}
		// Create backfills the column default into the struct, so the requested
		// state is written explicitly.
		return tx.Model(announcement).Update("is_active", active).Error
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create announcement: %v", ErrDatabaseQuery, err)
	}
	return announcement, nil
}

func (s *AnnouncementService) Update(ctx context.Context, id uint, req models.AnnouncementRequest) (*models.Announcement, error) {
	var announcement models.Announcement
	if err := s.db.WithContext(ctx).First(&announcement, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAnnouncementNotFound
		}
		return nil, fmt.Errorf("%w: failed to fetch announcement: %v", ErrDatabaseQuery, err)
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, validationError("title is required")
	}
	updateData := map[string]interface{}{
		"title": title,
		"body":  strings.TrimSpace(req.Body),
	}
	if req.IsActive != nil {
		updateData["is_active"] = *req.IsActive
	}
	if err := s.db.WithContext(ctx).Model(&announcement).Updates(updateData).Error; err != nil {
		return nil, fmt.Errorf("%w: failed to update announcement: %v", ErrDatabaseQuery, err)
	}
	return &announcement, nil
}

func (s *AnnouncementService) Delete(ctx context.Context, id uint) error {
	result := s.db.WithContext(ctx).Delete(&models.Announcement{}, id)
	if result.Error != nil {
		return fmt.Errorf("%w: failed to delete announcement: %v", ErrDatabaseQuery, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrAnnouncementNotFound
	}
	return nil
}
