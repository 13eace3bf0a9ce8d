package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/princeprakhar/gold-marketplace/internal/models"
	"github.com/princeprakhar/gold-marketplace/pkg/logger"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LikeService keeps the likes membership set and the per-product counter.
// The membership set is authoritative; Product.LikeCount is a read cache
// repaired by Reconcile.
type LikeService struct {
	db      *gorm.DB
	catalog *CatalogService
}

func NewLikeService(db *gorm.DB, catalog *CatalogService) *LikeService {
	return &LikeService{db: db, catalog: catalog}
}

type LikeState struct {
	ProductID  uint  `json:"product_id"`
	LikesCount int64 `json:"likes_count"`
	IsLiked    bool  `json:"is_liked"`
}

type ReconcileReport struct {
	ProductsScanned   int64 `json:"products_scanned"`
	CountersCorrected int64 `json:"counters_corrected"`
}

// Like adds the (user, product) pair. Liking twice is a no-op.
func (s *LikeService) Like(ctx context.Context, productID, userID uint) (*LikeState, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureProduct(tx, productID); err != nil {
			return err
		}

		result := tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&models.Like{UserID: userID, ProductID: productID})
		if result.Error != nil {
			return fmt.Errorf("%w: failed to create like: %v", ErrDatabaseQuery, result.Error)
		}
		if result.RowsAffected == 0 {
			return nil
		}

		return tx.Model(&models.Product{}).
			Where("id = ?", productID).
			UpdateColumn("like_count", gorm.Expr("like_count + 1")).Error
	})
	if err != nil {
		return nil, err
	}

	return s.state(ctx, productID, userID)
}

// Unlike removes the (user, product) pair. Removing a missing pair is a no-op.
func (s *LikeService) Unlike(ctx context.Context, productID, userID uint) (*LikeState, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureProduct(tx, productID); err != nil {
			return err
		}

		result := tx.Where("user_id = ? AND product_id = ?", userID, productID).Delete(&models.Like{})
		if result.Error != nil {
			return fmt.Errorf("%w: failed to delete like: %v", ErrDatabaseQuery, result.Error)
		}
		if result.RowsAffected == 0 {
			return nil
		}

		return tx.Model(&models.Product{}).
			Where("id = ? AND like_count > 0", productID).
			UpdateColumn("like_count", gorm.Expr("like_count - 1")).Error
	})
	if err != nil {
		return nil, err
	}

	return s.state(ctx, productID, userID)
}

// CountFor counts the membership rows for a product.
func (s *LikeService) CountFor(ctx context.Context, productID uint) (int64, error) {
	var count int64
	if err := s.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("product_id = ?", productID).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("%w: failed to count likes: %v", ErrDatabaseQuery, err)
	}
	return count, nil
}

func (s *LikeService) IsLiked(ctx context.Context, productID, userID uint) (bool, error) {
	if userID == 0 {
		return false, nil
	}
	var count int64
	if err := s.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("%w: failed to check like: %v", ErrDatabaseQuery, err)
	}
	return count > 0, nil
}

// GetLikes reports the true count for a product and, for a known user, membership.
func (s *LikeService) GetLikes(ctx context.Context, productID, userID uint) (*LikeState, error) {
	if err := ensureProduct(s.db.WithContext(ctx), productID); err != nil {
		return nil, err
	}
	return s.state(ctx, productID, userID)
}

// LikedProducts pages through the products a user likes, most recently liked first.
func (s *LikeService) LikedProducts(ctx context.Context, userID uint, page, limit int) (*CatalogPage, error) {
	filter := CatalogFilter{Page: page, Limit: limit, ViewerID: userID}
	if err := filter.ValidateAndNormalize(s.catalog.defaultPageSize); err != nil {
		return nil, err
	}

	base := func() *gorm.DB {
		return s.db.WithContext(ctx).
			Model(&models.Product{}).
			Joins("JOIN likes ON likes.product_id = products.id").
			Where("likes.user_id = ?", userID)
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		return nil, fmt.Errorf("%w: failed to count liked products: %v", ErrDatabaseQuery, err)
	}

	result := &CatalogPage{
		Products: []ProductView{},
		Pagination: Pagination{
			Page:  filter.Page,
			Limit: filter.Limit,
			Total: total,
			Pages: pageCount(total, filter.Limit),
		},
	}
	if !pageInRange(filter.Page, result.Pagination.Pages) {
		return result, nil
	}

	var products []models.Product
	if err := base().
		Select("products.*").
		Order("likes.created_at DESC").
		Order("likes.id DESC").
		Offset((filter.Page - 1) * filter.Limit).
		Limit(filter.Limit).
		Find(&products).Error; err != nil {
		return nil, fmt.Errorf("%w: failed to fetch liked products: %v", ErrDatabaseQuery, err)
	}

	views, err := s.catalog.buildViews(ctx, products, userID)
	if err != nil {
		return nil, err
	}
	result.Products = views
	return result, nil
}

// Reconcile overwrites every stored like counter with the true membership
// cardinality in a single statement.
func (s *LikeService) Reconcile(ctx context.Context) (*ReconcileReport, error) {
	report := &ReconcileReport{}
	trueCount := "(SELECT COUNT(*) FROM likes WHERE likes.product_id = products.id)"

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Product{}).Count(&report.ProductsScanned).Error; err != nil {
			return fmt.Errorf("%w: failed to count products: %v", ErrDatabaseQuery, err)
		}

		result := tx.Model(&models.Product{}).
			Where("like_count <> " + trueCount).
			UpdateColumn("like_count", gorm.Expr(trueCount))
		if result.Error != nil {
			return fmt.Errorf("%w: failed to reconcile like counts: %v", ErrDatabaseQuery, result.Error)
		}
		report.CountersCorrected = result.RowsAffected
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.WithFields(logrus.Fields{
		"products_scanned":   report.ProductsScanned,
		"counters_corrected": report.CountersCorrected,
	}).Info("Like counters reconciled")

	return report, nil
}

func (s *LikeService) state(ctx context.Context, productID, userID uint) (*LikeState, error) {
	count, err := s.CountFor(ctx, productID)
	if err != nil {
		return nil, err
	}
	isLiked, err := s.IsLiked(ctx, productID, userID)
	if err != nil {
		return nil, err
	}
	return &LikeState{ProductID: productID, LikesCount: count, IsLiked: isLiked}, nil
}

func ensureProduct(tx *gorm.DB, productID uint) error {
	var product models.Product
	if err := tx.Select("id").First(&product, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return fmt.Errorf("%w: failed to fetch product: %v", ErrDatabaseQuery, err)
	}
	return nil
}
