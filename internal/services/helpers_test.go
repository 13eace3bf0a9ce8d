package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/princeprakhar/gold-marketplace/internal/database"
	"github.com/princeprakhar/gold-marketplace/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	return db
}

func dec(t *testing.T, value string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(value)
	require.NoError(t, err)
	return d
}

func createUser(t *testing.T, db *gorm.DB, email, name, role string) models.User {
	t.Helper()
	user := models.User{Email: email, Password: "password123", Name: name, Role: role, IsActive: true}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func createSeller(t *testing.T, db *gorm.DB, user models.User, shopName string, approved bool) models.Seller {
	t.Helper()
	seller := models.Seller{UserID: user.ID, ShopName: shopName}
	require.NoError(t, db.Create(&seller).Error)
	if approved {
		require.NoError(t, db.Model(&seller).Update("is_approved", true).Error)
		seller.IsApproved = true
	}
	return seller
}

type productFixture struct {
	title       string
	description string
	category    models.ProductCategory
	weight      string
	finalPrice  string
	profit      string
	fee         string
}

// insertProduct stores a product directly, bypassing pricing, so filters can be
// exercised against exact values. Each product is one second newer than the last.
func insertProduct(t *testing.T, db *gorm.DB, seller models.Seller, createdAt time.Time, f productFixture) models.Product {
	t.Helper()
	if f.category == "" {
		f.category = models.CategoryRing
	}
	if f.profit == "" {
		f.profit = "0"
	}
	if f.fee == "" {
		f.fee = "0"
	}
	product := models.Product{
		SellerID:            seller.ID,
		Title:               f.title,
		Description:         f.description,
		Category:            f.category,
		Weight:              dec(t, f.weight),
		MakingFee:           dec(t, f.fee),
		ProfitPercent:       dec(t, f.profit),
		GoldPriceAtCreation: dec(t, "1"),
		FinalPrice:          dec(t, f.finalPrice),
		CreatedAt:           createdAt,
		UpdatedAt:           createdAt,
	}
	require.NoError(t, db.Create(&product).Error)
	return product
}

func productIDs(views []ProductView) []uint {
	ids := make([]uint, len(views))
	for i, v := range views {
		ids[i] = v.ID
	}
	return ids
}
