package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/princeprakhar/gold-marketplace/internal/models"
)

type decision struct {
	to       string
	shopName string
	approved bool
}

type recordingNotifier struct {
	sent []decision
	err  error
}

func (n *recordingNotifier) SendSellerDecision(to, shopName string, approved bool) error {
	n.sent = append(n.sent, decision{to: to, shopName: shopName, approved: approved})
	return n.err
}

func userRole(t *testing.T, s *SellerService, userID uint) string {
	t.Helper()
	var user models.User
	require.NoError(t, s.db.First(&user, userID).Error)
	return user.Role
}

func TestBecomeSeller(t *testing.T) {
	db := newTestDB(t)
	sellers := NewSellerService(db, nil)
	ctx := context.Background()
	user := createUser(t, db, "u@example.com", "U", models.RoleUser)

	seller, err := sellers.BecomeSeller(ctx, user.ID, "  Sunrise  ")
	require.NoError(t, err)
	assert.Equal(t, "Sunrise", seller.ShopName)
	assert.False(t, seller.IsApproved)
	assert.Equal(t, models.RoleSeller, userRole(t, sellers, user.ID))

	_, err = sellers.BecomeSeller(ctx, user.ID, "Again")
	assert.ErrorIs(t, err, ErrConflict)

	_, err = sellers.BecomeSeller(ctx, user.ID, " ")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = sellers.BecomeSeller(ctx, 9999, "Ghost")
	assert.ErrorIs(t, err, ErrNotFound)

	found, err := sellers.GetSellerByUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, seller.ID, found.ID)
}

func TestBecomeSellerKeepsAdminRole(t *testing.T) {
	db := newTestDB(t)
	sellers := NewSellerService(db, nil)
	admin := createUser(t, db, "a@example.com", "A", models.RoleAdmin)

	_, err := sellers.BecomeSeller(context.Background(), admin.ID, "House Shop")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, userRole(t, sellers, admin.ID))
}

func TestApproveSellerNotifiesOnce(t *testing.T) {
	db := newTestDB(t)
	notifier := &recordingNotifier{err: errors.New("smtp down")}
	sellers := NewSellerService(db, notifier)
	ctx := context.Background()

	user := createUser(t, db, "u@example.com", "U", models.RoleUser)
	seller, err := sellers.BecomeSeller(ctx, user.ID, "Sunrise")
	require.NoError(t, err)

	approved, err := sellers.ApproveSeller(ctx, seller.ID)
	require.NoError(t, err)
	assert.True(t, approved.IsApproved)

	_, err = sellers.ApproveSeller(ctx, seller.ID)
	require.NoError(t, err)

	assert.Equal(t, []decision{{to: "u@example.com", shopName: "Sunrise", approved: true}}, notifier.sent)

	_, err = sellers.ApproveSeller(ctx, 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListSellersByApproval(t *testing.T) {
	db := newTestDB(t)
	sellers := NewSellerService(db, nil)
	ctx := context.Background()

	createSeller(t, db, createUser(t, db, "a@example.com", "A", models.RoleSeller), "A Shop", true)
	createSeller(t, db, createUser(t, db, "b@example.com", "B", models.RoleSeller), "B Shop", false)

	all, err := sellers.ListSellers(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	pending := false
	list, err := sellers.ListSellers(ctx, &pending)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "B Shop", list[0].ShopName)
	require.NotNil(t, list[0].User)
	assert.Equal(t, "b@example.com", list[0].User.Email)
}

func TestBecomeSellerDuplicateHitsUniqueIndex(t *testing.T) {
	db := newTestDB(t)
	sellers := NewSellerService(db, nil)
	user := createUser(t, db, "u@example.com", "U", models.RoleUser)
	createSeller(t, db, user, "First", false)

	_, err := sellers.BecomeSeller(context.Background(), user.ID, "Second")
	assert.ErrorIs(t, err, ErrConflict)
	assert.NotErrorIs(t, err, ErrDatabaseQuery)
	assert.Equal(t, models.RoleUser, userRole(t, sellers, user.ID))

	var count int64
	require.NoError(t, db.Model(&models.Seller{}).Where("user_id = ?", user.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestSellerJSONOmitsUnloadedUser(t *testing.T) {
	db := newTestDB(t)
	sellers := NewSellerService(db, nil)
	user := createUser(t, db, "u@example.com", "U", models.RoleUser)

	seller, err := sellers.BecomeSeller(context.Background(), user.ID, "Sunrise")
	require.NoError(t, err)
	assert.Nil(t, seller.User)

	raw, err := json.Marshal(seller)
	require.NoError(t, err)
	var fields map[string]any
	require.NoError(t, json.Unmarshal(raw, &fields))
	assert.NotContains(t, fields, "user")
	assert.Contains(t, fields, "shop_name")
}

func TestRejectSeller(t *testing.T) {
	db := newTestDB(t)
	notifier := &recordingNotifier{}
	sellers := NewSellerService(db, notifier)
	ctx := context.Background()

	user := createUser(t, db, "u@example.com", "U", models.RoleUser)
	seller, err := sellers.BecomeSeller(ctx, user.ID, "Sunrise")
	require.NoError(t, err)

	require.NoError(t, sellers.RejectSeller(ctx, seller.ID))
	assert.Equal(t, models.RoleUser, userRole(t, sellers, user.ID))
	assert.Equal(t, []decision{{to: "u@example.com", shopName: "Sunrise", approved: false}}, notifier.sent)

	_, err = sellers.GetSellerByUser(ctx, user.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, sellers.RejectSeller(ctx, seller.ID), ErrNotFound)
}

func TestRejectSellerWithProducts(t *testing.T) {
	db := newTestDB(t)
	sellers := NewSellerService(db, nil)

	user := createUser(t, db, "u@example.com", "U", models.RoleSeller)
	seller := createSeller(t, db, user, "Busy Shop", true)
	insertProduct(t, db, seller, baseTime, productFixture{title: "Ring", weight: "1", finalPrice: "1"})

	err := sellers.RejectSeller(context.Background(), seller.ID)
	assert.ErrorIs(t, err, ErrConflict)
	assert.Equal(t, models.RoleSeller, userRole(t, sellers, user.ID))
}
