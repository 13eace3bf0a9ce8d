package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/princeprakhar/gold-marketplace/internal/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	DefaultPageSize = 24
	MaxPageSize     = 100
	MaxSearchLength = 255
)

type CatalogService struct {
	db              *gorm.DB
	defaultPageSize int
}

func NewCatalogService(db *gorm.DB, defaultPageSize int) *CatalogService {
	if db == nil {
		panic("database connection cannot be nil")
	}
	if defaultPageSize <= 0 || defaultPageSize > MaxPageSize {
		defaultPageSize = DefaultPageSize
	}
	return &CatalogService{
		db:              db,
		defaultPageSize: defaultPageSize,
	}
}

// CatalogFilter is the transient query behind list and search requests.
// Unset bounds impose no restriction; all set bounds are inclusive.
type CatalogFilter struct {
	Category         string
	MinPrice         decimal.NullDecimal
	MaxPrice         decimal.NullDecimal
	MinWeight        decimal.NullDecimal
	MaxWeight        decimal.NullDecimal
	MaxProfitPercent decimal.NullDecimal
	MaxMakingFee     decimal.NullDecimal
	Search           string
	SellerID         uint
	Page             int
	Limit            int
	ViewerID         uint // zero for anonymous callers
}

type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

type CatalogPage struct {
	Products   []ProductView `json:"products"`
	Pagination Pagination    `json:"pagination"`
}

// ProductView is a product as rendered to a particular viewer.
type ProductView struct {
	models.Product
	ShopName        string `json:"shop_name"`
	PrimaryImageURL string `json:"primary_image_url,omitempty"`
	LikesCount      int64  `json:"likes_count"`
	IsLiked         *bool  `json:"is_liked,omitempty"`
}

type CategoryFacet struct {
	Category models.ProductCategory `json:"category"`
	Count    int64                  `json:"count"`
}

// ValidateAndNormalize validates and normalizes filter parameters
func (f *CatalogFilter) ValidateAndNormalize(defaultPageSize int) error {
	if f.Page < 0 {
		return validationError("page must be at least 1")
	}
	if f.Limit < 0 {
		return validationError("limit must be at least 1")
	}
	if f.Page == 0 {
		f.Page = 1
	}
	if f.Limit == 0 {
		f.Limit = defaultPageSize
	}
	if f.Limit > MaxPageSize {
		f.Limit = MaxPageSize
	}

	bounds := []struct {
		name  string
		value decimal.NullDecimal
	}{
		{"min_price", f.MinPrice},
		{"max_price", f.MaxPrice},
		{"min_weight", f.MinWeight},
		{"max_weight", f.MaxWeight},
		{"max_profit_percent", f.MaxProfitPercent},
		{"max_making_fee", f.MaxMakingFee},
	}
	for _, b := range bounds {
		if b.value.Valid && b.value.Decimal.IsNegative() {
			return validationError("%s cannot be negative", b.name)
		}
	}

	if f.MinPrice.Valid && f.MaxPrice.Valid && f.MinPrice.Decimal.GreaterThan(f.MaxPrice.Decimal) {
		return validationError("min_price cannot be greater than max_price")
	}
	if f.MinWeight.Valid && f.MaxWeight.Valid && f.MinWeight.Decimal.GreaterThan(f.MaxWeight.Decimal) {
		return validationError("min_weight cannot be greater than max_weight")
	}

	f.Category = strings.TrimSpace(f.Category)
	if f.Category != "" {
		category, ok := models.ParseCategory(f.Category)
		if !ok {
			return validationError("unknown category %q", f.Category)
		}
		f.Category = string(category)
	}

	f.Search = strings.TrimSpace(f.Search)
	if len(f.Search) > MaxSearchLength {
		return validationError("search term too long")
	}

	return nil
}

// ListProducts returns one page of products matching every supplied constraint,
// newest first.
func (s *CatalogService) ListProducts(ctx context.Context, filter CatalogFilter) (*CatalogPage, error) {
	if err := filter.ValidateAndNormalize(s.defaultPageSize); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, QueryTimeout)
	defer cancel()

	var total int64
	if err := s.filteredQuery(ctx, filter).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("%w: failed to count products: %v", ErrDatabaseQuery, err)
	}

	page := &CatalogPage{
		Products: []ProductView{},
		Pagination: Pagination{
			Page:  filter.Page,
			Limit: filter.Limit,
			Total: total,
			Pages: pageCount(total, filter.Limit),
		},
	}

	if !pageInRange(filter.Page, page.Pagination.Pages) {
		return page, nil
	}
	offset := (filter.Page - 1) * filter.Limit

	var products []models.Product
	if err := s.filteredQuery(ctx, filter).
		Select("products.*").
		Order("products.created_at DESC").
		Order("products.id DESC").
		Offset(offset).
		Limit(filter.Limit).
		Find(&products).Error; err != nil {
		return nil, fmt.Errorf("%w: failed to fetch products: %v", ErrDatabaseQuery, err)
	}

	views, err := s.buildViews(ctx, products, filter.ViewerID)
	if err != nil {
		return nil, err
	}
	page.Products = views

	return page, nil
}

// GetProduct returns a single product view.
func (s *CatalogService) GetProduct(ctx context.Context, id uint, viewerID uint) (*ProductView, error) {
	if id == 0 {
		return nil, validationError("invalid product ID")
	}

	ctx, cancel := context.WithTimeout(ctx, QueryTimeout)
	defer cancel()

	var product models.Product
	if err := s.db.WithContext(ctx).First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("%w: failed to fetch product: %v", ErrDatabaseQuery, err)
	}

	views, err := s.buildViews(ctx, []models.Product{product}, viewerID)
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// CategoryFacets counts matching products per category. The filter's own
// category constraint is ignored so every facet stays selectable.
func (s *CatalogService) CategoryFacets(ctx context.Context, filter CatalogFilter) ([]CategoryFacet, error) {
	if err := filter.ValidateAndNormalize(s.defaultPageSize); err != nil {
		return nil, err
	}
	filter.Category = ""

	facets := make([]CategoryFacet, 0)
	if err := s.filteredQuery(ctx, filter).
		Select("products.category AS category, COUNT(*) AS count").
		Group("products.category").
		Order("products.category").
		Scan(&facets).Error; err != nil {
		return nil, fmt.Errorf("%w: failed to fetch categories: %v", ErrDatabaseQuery, err)
	}

	return facets, nil
}

func (s *CatalogService) filteredQuery(ctx context.Context, filter CatalogFilter) *gorm.DB {
	return applyFilters(s.db.WithContext(ctx).Model(&models.Product{}), filter)
}

// applyFilters applies search filters to the query
func applyFilters(query *gorm.DB, filter CatalogFilter) *gorm.DB {
	if filter.Category != "" {
		query = query.Where("products.category = ?", filter.Category)
	}
	if filter.SellerID != 0 {
		query = query.Where("products.seller_id = ?", filter.SellerID)
	}
	if filter.MinPrice.Valid {
		query = query.Where("products.final_price >= ?", filter.MinPrice.Decimal)
	}
	if filter.MaxPrice.Valid {
		query = query.Where("products.final_price <= ?", filter.MaxPrice.Decimal)
	}
	if filter.MinWeight.Valid {
		query = query.Where("products.weight >= ?", filter.MinWeight.Decimal)
	}
	if filter.MaxWeight.Valid {
		query = query.Where("products.weight <= ?", filter.MaxWeight.Decimal)
	}
	if filter.MaxProfitPercent.Valid {
		query = query.Where("products.profit_percent <= ?", filter.MaxProfitPercent.Decimal)
	}
	if filter.MaxMakingFee.Valid {
		query = query.Where("products.making_fee <= ?", filter.MaxMakingFee.Decimal)
	}
	if filter.Search != "" {
		query = applyTextMatch(query, filter.Search)
	}
	return query
}

// buildViews loads images, sellers and viewer likes for a page in batch.
func (s *CatalogService) buildViews(ctx context.Context, products []models.Product, viewerID uint) ([]ProductView, error) {
	views := make([]ProductView, len(products))
	if len(products) == 0 {
		return views, nil
	}

	productIDs := make([]uint, len(products))
	sellerIDs := make([]uint, 0, len(products))
	productMap := make(map[uint]int) // product ID to index mapping
	for i, product := range products {
		productIDs[i] = product.ID
		productMap[product.ID] = i
		sellerIDs = append(sellerIDs, product.SellerID)
	}

	var images []models.Image
	if err := s.db.WithContext(ctx).
		Where("product_id IN ?", productIDs).
		Order("position ASC").
		Find(&images).Error; err != nil {
		return nil, fmt.Errorf("%w: failed to load product images: %v", ErrDatabaseQuery, err)
	}
	for _, image := range images {
		if idx, exists := productMap[image.ProductID]; exists {
			products[idx].Images = append(products[idx].Images, image)
		}
	}

	var sellers []models.Seller
	if err := s.db.WithContext(ctx).Where("id IN ?", sellerIDs).Find(&sellers).Error; err != nil {
		return nil, fmt.Errorf("%w: failed to load sellers: %v", ErrDatabaseQuery, err)
	}
	shopNames := make(map[uint]string, len(sellers))
	for _, seller := range sellers {
		shopNames[seller.ID] = seller.ShopName
	}

	var liked map[uint]bool
	if viewerID != 0 {
		var likedIDs []uint
		if err := s.db.WithContext(ctx).
			Model(&models.Like{}).
			Where("user_id = ? AND product_id IN ?", viewerID, productIDs).
			Pluck("product_id", &likedIDs).Error; err != nil {
			return nil, fmt.Errorf("%w: failed to load likes: %v", ErrDatabaseQuery, err)
		}
		liked = make(map[uint]bool, len(likedIDs))
		for _, id := range likedIDs {
			liked[id] = true
		}
	}

	for i, product := range products {
		if product.Images == nil {
			product.Images = []models.Image{}
		}
		view := ProductView{
			Product:    product,
			ShopName:   shopNames[product.SellerID],
			LikesCount: product.LikeCount,
		}
		if primary := product.PrimaryImage(); primary != nil {
			view.PrimaryImageURL = primary.URL
		}
		if viewerID != 0 {
			isLiked := liked[product.ID]
			view.IsLiked = &isLiked
		}
		views[i] = view
	}

	return views, nil
}

// pageCount is ceil(total/limit); an empty result has zero pages.
// pageInRange reports whether page holds any rows. Pages past the end are
// rejected before an offset is computed so huge page numbers cannot overflow.
func pageInRange(page, pages int) bool {
	return pages > 0 && page <= pages
}

func pageCount(total int64, limit int) int {
	if total == 0 || limit <= 0 {
		return 0
	}
	pages := int(total) / limit
	if int(total)%limit > 0 {
		pages++
	}
	return pages
}
