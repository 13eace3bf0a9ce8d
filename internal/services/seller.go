package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/princeprakhar/gold-marketplace/internal/models"
	"github.com/princeprakhar/gold-marketplace/pkg/logger"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// SellerNotifier delivers approval decisions to applicants.
type SellerNotifier interface {
	SendSellerDecision(to, shopName string, approved bool) error
}

type SellerService struct {
	db       *gorm.DB
	notifier SellerNotifier
}

func NewSellerService(db *gorm.DB, notifier SellerNotifier) *SellerService {
	return &SellerService{db: db, notifier: notifier}
}

// BecomeSeller files an unapproved seller profile and promotes the user's role.
func (s *SellerService) BecomeSeller(ctx context.Context, userID uint, shopName string) (*models.Seller, error) {
	shopName = strings.TrimSpace(shopName)
	if shopName == "" {
		return nil, validationError("shop name is required")
	}

	seller := &models.Seller{UserID: userID, ShopName: shopName}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return fmt.Errorf("%w: failed to fetch user: %v", ErrDatabaseQuery, err)
		}

		// The unique index on user_id decides between concurrent submissions.
		if err := tx.Create(seller).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fmt.Errorf("%w: user already has a seller profile", ErrConflict)
			}
			return fmt.Errorf("%w: failed to create seller: %v", ErrDatabaseQuery, err)
		}

		if !user.IsAdmin() {
			if err := tx.Model(&user).Update("role", models.RoleSeller).Error; err != nil {
				return fmt.Errorf("%w: failed to update role: %v", ErrDatabaseQuery, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return seller, nil
}

func (s *SellerService) GetSellerByUser(ctx context.Context, userID uint) (*models.Seller, error) {
	var seller models.Seller
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&seller).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSellerNotFound
		}
		return nil, fmt.Errorf("%w: failed to fetch seller: %v", ErrDatabaseQuery, err)
	}
	return &seller, nil
}

// ListSellers returns sellers, optionally narrowed to one approval state.
func (s *SellerService) ListSellers(ctx context.Context, approved *bool) ([]models.Seller, error) {
	query := s.db.WithContext(ctx).Preload("User").Order("created_at ASC")
	if approved != nil {
		query = query.Where("is_approved = ?", *approved)
	}

	sellers := make([]models.Seller, 0)
	if err := query.Find(&sellers).Error; err != nil {
		return nil, fmt.Errorf("%w: failed to fetch sellers: %v", ErrDatabaseQuery, err)
	}
	return sellers, nil
}

func (s *SellerService) ApproveSeller(ctx context.Context, sellerID uint) (*models.Seller, error) {
	seller, err := s.loadSeller(ctx, sellerID)
	if err != nil {
		return nil, err
	}

	if seller.IsApproved {
		return seller, nil
	}

	if err := s.db.WithContext(ctx).
		Model(&models.Seller{}).
		Where("id = ?", seller.ID).
		Update("is_approved", true).Error; err != nil {
		return nil, fmt.Errorf("%w: failed to approve seller: %v", ErrDatabaseQuery, err)
	}
	seller.IsApproved = true

	s.notify(seller, true)
	return seller, nil
}

// RejectSeller deletes the profile and returns the owner to the user role.
// Admins keep their role.
func (s *SellerService) RejectSeller(ctx context.Context, sellerID uint) error {
	seller, err := s.loadSeller(ctx, sellerID)
	if err != nil {
		return err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var products int64
		if err := tx.Model(&models.Product{}).Where("seller_id = ?", sellerID).Count(&products).Error; err != nil {
			return fmt.Errorf("%w: failed to count products: %v", ErrDatabaseQuery, err)
		}
		if products > 0 {
			return fmt.Errorf("%w: seller still has %d products", ErrConflict, products)
		}

		if err := tx.Delete(&models.Seller{}, sellerID).Error; err != nil {
			return fmt.Errorf("%w: failed to delete seller: %v", ErrDatabaseQuery, err)
		}
		if err := tx.Model(&models.User{}).
			Where("id = ? AND role <> ?", seller.UserID, models.RoleAdmin).
			Update("role", models.RoleUser).Error; err != nil {
			return fmt.Errorf("%w: failed to revert role: %v", ErrDatabaseQuery, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.notify(seller, false)
	return nil
}

func (s *SellerService) loadSeller(ctx context.Context, sellerID uint) (*models.Seller, error) {
	var seller models.Seller
	if err := s.db.WithContext(ctx).Preload("User").First(&seller, sellerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSellerNotFound
		}
		return nil, fmt.Errorf("%w: failed to fetch seller: %v", ErrDatabaseQuery, err)
	}
	return &seller, nil
}

func (s *SellerService) notify(seller *models.Seller, approved bool) {
	if s.notifier == nil || seller.User == nil || seller.User.Email == "" {
		return
	}
	if err := s.notifier.SendSellerDecision(seller.User.Email, seller.ShopName, approved); err != nil {
		logger.WithFields(logrus.Fields{
			"seller_id": seller.ID,
			"approved":  approved,
		}).Warn("Failed to send seller decision email: ", err)
	}
}
