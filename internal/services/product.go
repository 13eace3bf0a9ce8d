package services

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"strings"

	"github.com/princeprakhar/gold-marketplace/internal/models"
	"github.com/princeprakhar/gold-marketplace/pkg/logger"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Caller is the verified identity the authorization layer hands to the services.
type Caller struct {
	UserID uint
	Role   string
}

func (c Caller) IsAdmin() bool {
	return c.Role == models.RoleAdmin
}

// ImageStorage stores uploaded image bytes and hands back a public URL.
type ImageStorage interface {
	UploadImage(file multipart.File, header *multipart.FileHeader) (*UploadResult, error)
	DeleteMultipleImages(keys []string) error
}

type ProductService struct {
	db      *gorm.DB
	catalog *CatalogService
	storage ImageStorage
}

func NewProductService(db *gorm.DB, catalog *CatalogService, storage ImageStorage) *ProductService {
	return &ProductService{
		db:      db,
		catalog: catalog,
		storage: storage,
	}
}

func (s *ProductService) CreateProduct(ctx context.Context, caller Caller, req *models.CreateProductRequest) (*ProductView, error) {
	if req == nil {
		return nil, validationError("product request cannot be nil")
	}

	var seller models.Seller
	if err := s.db.WithContext(ctx).Where("user_id = ?", caller.UserID).First(&seller).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: only sellers can create products", ErrForbidden)
		}
		return nil, fmt.Errorf("%w: failed to fetch seller: %v", ErrDatabaseQuery, err)
	}
	if !seller.IsApproved {
		return nil, fmt.Errorf("%w: seller %d is not approved", ErrConflict, seller.ID)
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, validationError("title is required")
	}
	category, ok := models.ParseCategory(req.Category)
	if !ok {
		return nil, validationError("unknown category %q", req.Category)
	}
	if err := validateImages(req.Images); err != nil {
		return nil, err
	}

	finalPrice, err := CalculateFinalPrice(PriceInput{
		Weight:        req.Weight,
		GoldPrice:     req.GoldPrice,
		MakingFee:     req.MakingFee,
		ProfitPercent: req.ProfitPercent,
	})
	if err != nil {
		return nil, err
	}

	product := &models.Product{
		SellerID:            seller.ID,
		Title:               title,
		Description:         strings.TrimSpace(req.Description),
		Category:            category,
		Weight:              req.Weight,
		Size:                strings.TrimSpace(req.Size),
		MakingFee:           req.MakingFee,
		ProfitPercent:       req.ProfitPercent,
		GoldPriceAtCreation: req.GoldPrice,
		FinalPrice:          finalPrice,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(product).Error; err != nil {
			return fmt.Errorf("%w: failed to create product: %v", ErrDatabaseQuery, err)
		}
		return createImages(tx, product.ID, req.Images)
	})
	if err != nil {
		return nil, err
	}

	logger.WithFields(logrus.Fields{
		"product_id":  product.ID,
		"seller_id":   seller.ID,
		"final_price": FormatPrice(product.FinalPrice),
	}).Info("Product created")

	return s.catalog.GetProduct(ctx, product.ID, caller.UserID)
}

// UpdateProduct applies a partial edit. The price is recomputed from the merged
// attributes and the gold price captured at creation.
func (s *ProductService) UpdateProduct(ctx context.Context, caller Caller, productID uint, req *models.UpdateProductRequest) (*ProductView, error) {
	if req == nil {
		return nil, validationError("update request cannot be nil")
	}

	var removedKeys []string
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		product, err := loadAuthorized(tx, caller, productID)
		if err != nil {
			return err
		}

		updateData := make(map[string]interface{})
		if req.Title != nil {
			title := strings.TrimSpace(*req.Title)
			if title == "" {
				return validationError("title cannot be empty")
			}
			updateData["title"] = title
		}
		if req.Description != nil {
			updateData["description"] = strings.TrimSpace(*req.Description)
		}
		if req.Category != nil {
			category, ok := models.ParseCategory(*req.Category)
			if !ok {
				return validationError("unknown category %q", *req.Category)
			}
			updateData["category"] = category
		}
		if req.Size != nil {
			updateData["size"] = strings.TrimSpace(*req.Size)
		}

		pricing := PriceInput{
			Weight:        product.Weight,
			GoldPrice:     product.GoldPriceAtCreation,
			MakingFee:     product.MakingFee,
			ProfitPercent: product.ProfitPercent,
		}
		if req.Weight != nil {
			pricing.Weight = *req.Weight
		}
		if req.MakingFee != nil {
			pricing.MakingFee = *req.MakingFee
		}
		if req.ProfitPercent != nil {
			pricing.ProfitPercent = *req.ProfitPercent
		}
		if req.Weight != nil || req.MakingFee != nil || req.ProfitPercent != nil {
			finalPrice, err := CalculateFinalPrice(pricing)
			if err != nil {
				return err
			}
			updateData["weight"] = pricing.Weight
			updateData["making_fee"] = pricing.MakingFee
			updateData["profit_percent"] = pricing.ProfitPercent
			updateData["final_price"] = finalPrice
		}

		if len(updateData) > 0 {
			if err := tx.Model(product).Updates(updateData).Error; err != nil {
				return fmt.Errorf("%w: failed to update product: %v", ErrDatabaseQuery, err)
			}
		}

		if req.Images != nil {
			if err := validateImages(*req.Images); err != nil {
				return err
			}
			var old []models.Image
			if err := tx.Where("product_id = ?", productID).Find(&old).Error; err != nil {
				return fmt.Errorf("%w: failed to load images: %v", ErrDatabaseQuery, err)
			}
			if err := tx.Where("product_id = ?", productID).Delete(&models.Image{}).Error; err != nil {
				return fmt.Errorf("%w: failed to replace images: %v", ErrDatabaseQuery, err)
			}
			if err := createImages(tx, productID, *req.Images); err != nil {
				return err
			}
			removedKeys = storageKeys(old)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.removeStoredImages(removedKeys)
	return s.catalog.GetProduct(ctx, productID, caller.UserID)
}

// DeleteProduct hard-deletes a product together with its images and likes.
func (s *ProductService) DeleteProduct(ctx context.Context, caller Caller, productID uint) error {
	var keys []string
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := loadAuthorized(tx, caller, productID); err != nil {
			return err
		}

		var images []models.Image
		if err := tx.Where("product_id = ?", productID).Find(&images).Error; err != nil {
			return fmt.Errorf("%w: failed to load images: %v", ErrDatabaseQuery, err)
		}
		keys = storageKeys(images)

		if err := tx.Where("product_id = ?", productID).Delete(&models.Like{}).Error; err != nil {
			return fmt.Errorf("%w: failed to delete likes: %v", ErrDatabaseQuery, err)
		}
		if err := tx.Where("product_id = ?", productID).Delete(&models.Image{}).Error; err != nil {
			return fmt.Errorf("%w: failed to delete images: %v", ErrDatabaseQuery, err)
		}
		if err := tx.Delete(&models.Product{}, productID).Error; err != nil {
			return fmt.Errorf("%w: failed to delete product: %v", ErrDatabaseQuery, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.removeStoredImages(keys)
	return nil
}

// AddImage uploads a file to image storage and appends it to the product.
func (s *ProductService) AddImage(ctx context.Context, caller Caller, productID uint, header *multipart.FileHeader, isPrimary bool) (*models.Image, error) {
	if s.storage == nil {
		return nil, fmt.Errorf("%w: image storage is not configured", ErrConflict)
	}
	if header == nil {
		return nil, validationError("image file is required")
	}

	if _, err := loadAuthorized(s.db.WithContext(ctx), caller, productID); err != nil {
		return nil, err
	}

	file, err := header.Open()
	if err != nil {
		return nil, validationError("failed to open image: %v", err)
	}
	defer file.Close()

	result, err := s.storage.UploadImage(file, header)
	if err != nil {
		return nil, validationError("%v", err)
	}

	image := &models.Image{
		ProductID: productID,
		URL:       result.URL,
		S3Key:     result.Key,
		IsPrimary: isPrimary,
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Image{}).Where("product_id = ?", productID).Count(&count).Error; err != nil {
			return fmt.Errorf("%w: failed to count images: %v", ErrDatabaseQuery, err)
		}
		image.Position = int(count)

		if isPrimary {
			if err := tx.Model(&models.Image{}).
				Where("product_id = ?", productID).
				Update("is_primary", false).Error; err != nil {
				return fmt.Errorf("%w: failed to reset primary image: %v", ErrDatabaseQuery, err)
			}
		}
		if err := tx.Create(image).Error; err != nil {
			return fmt.Errorf("%w: failed to create image record: %v", ErrDatabaseQuery, err)
		}
		return nil
	})
	if err != nil {
		s.removeStoredImages([]string{result.Key})
		return nil, err
	}

	return image, nil
}

func (s *ProductService) removeStoredImages(keys []string) {
	if s.storage == nil || len(keys) == 0 {
		return
	}
	if err := s.storage.DeleteMultipleImages(keys); err != nil {
		logger.WithFields(logrus.Fields{"keys": keys}).Warn("Failed to delete images from storage: ", err)
	}
}

// loadAuthorized fetches a product the caller may mutate: its owning seller or an admin.
func loadAuthorized(tx *gorm.DB, caller Caller, productID uint) (*models.Product, error) {
	var product models.Product
	if err := tx.First(&product, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("%w: failed to fetch product: %v", ErrDatabaseQuery, err)
	}
	if caller.IsAdmin() {
		return &product, nil
	}

	var seller models.Seller
	if err := tx.First(&seller, product.SellerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSellerNotFound
		}
		return nil, fmt.Errorf("%w: failed to fetch seller: %v", ErrDatabaseQuery, err)
	}
	if seller.UserID != caller.UserID {
		return nil, fmt.Errorf("%w: product %d belongs to another seller", ErrForbidden, productID)
	}
	return &product, nil
}

func validateImages(images []models.ImageInput) error {
	primaries := 0
	for _, img := range images {
		if strings.TrimSpace(img.URL) == "" {
			return validationError("image url is required")
		}
		if img.IsPrimary {
			primaries++
		}
	}
	if primaries > 1 {
		return validationError("at most one image can be primary")
	}
	return nil
}

func createImages(tx *gorm.DB, productID uint, inputs []models.ImageInput) error {
	if len(inputs) == 0 {
		return nil
	}
	images := make([]models.Image, 0, len(inputs))
	for i, in := range inputs {
		images = append(images, models.Image{
			ProductID: productID,
			URL:       strings.TrimSpace(in.URL),
			IsPrimary: in.IsPrimary,
			Position:  i,
		})
	}
	if err := tx.Create(&images).Error; err != nil {
		return fmt.Errorf("%w: failed to create image records: %v", ErrDatabaseQuery, err)
	}
	return nil
}

func storageKeys(images []models.Image) []string {
	var keys []string
	for _, img := range images {
		if img.S3Key != "" {
			keys = append(keys, img.S3Key)
		}
	}
	return keys
}
