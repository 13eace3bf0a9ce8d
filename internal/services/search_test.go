package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/princeprakhar/gold-marketplace/internal/models"
)

func searchFixture(t *testing.T) (*SearchService, *CatalogService, []models.Product) {
	t.Helper()
	db := newTestDB(t)

	alice := createUser(t, db, "alice@example.com", "Alice Goldsmith", models.RoleSeller)
	bob := createUser(t, db, "bob@example.com", "Bob", models.RoleSeller)
	aliceShop := createSeller(t, db, alice, "Sunrise Jewels", true)
	bobShop := createSeller(t, db, bob, "Heritage Bazaar", true)

	products := []models.Product{
		insertProduct(t, db, aliceShop, baseTime, productFixture{title: "Gold Ring", weight: "2", finalPrice: "100"}),
		insertProduct(t, db, bobShop, baseTime.Add(time.Second), productFixture{title: "Silver Chain", description: "Hand polished", weight: "5", finalPrice: "300", category: models.CategoryChain}),
		insertProduct(t, db, bobShop, baseTime.Add(2*time.Second), productFixture{title: "Plain Band", description: "100% pure", weight: "1", finalPrice: "50"}),
		insertProduct(t, db, bobShop, baseTime.Add(3*time.Second), productFixture{title: "Bar_24k", weight: "10", finalPrice: "900", category: models.CategoryBar}),
	}

	catalog := NewCatalogService(db, 24)
	return NewSearchService(catalog), catalog, products
}

func titles(views []ProductView) []string {
	out := make([]string, len(views))
	for i, v := range views {
		out[i] = v.Title
	}
	return out
}

func TestSearchIsCaseInsensitiveSubstring(t *testing.T) {
	search, _, _ := searchFixture(t)

	for _, term := range []string{"gold", "RING", "ld Ri"} {
		t.Run(term, func(t *testing.T) {
			page, err := search.Search(context.Background(), term, CatalogFilter{})
			require.NoError(t, err)
			assert.Contains(t, titles(page.Products), "Gold Ring")
		})
	}
}

func TestSearchMatchesDescriptionShopAndSellerName(t *testing.T) {
	search, _, _ := searchFixture(t)
	ctx := context.Background()

	page, err := search.Search(ctx, "polished", CatalogFilter{})
	require.NoError(t, err)
	assert.Equal(t, []string{"Silver Chain"}, titles(page.Products))

	page, err = search.Search(ctx, "sunrise", CatalogFilter{})
	require.NoError(t, err)
	assert.Equal(t, []string{"Gold Ring"}, titles(page.Products))

	// "Goldsmith" is Alice's user name, so her products match "smith".
	page, err = search.Search(ctx, "SMITH", CatalogFilter{})
	require.NoError(t, err)
	assert.Equal(t, []string{"Gold Ring"}, titles(page.Products))

	page, err = search.Search(ctx, "heritage", CatalogFilter{})
	require.NoError(t, err)
	assert.Equal(t, []string{"Bar_24k", "Plain Band", "Silver Chain"}, titles(page.Products))
}

func TestSearchCombinesWithFilters(t *testing.T) {
	search, _, _ := searchFixture(t)

	page, err := search.Search(context.Background(), "heritage", CatalogFilter{MaxPrice: nd(t, "300"), Category: "CHAIN"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Silver Chain"}, titles(page.Products))
	assert.Equal(t, int64(1), page.Pagination.Total)
}

func TestSearchEmptyTermDelegatesToCatalog(t *testing.T) {
	search, catalog, _ := searchFixture(t)
	ctx := context.Background()

	listed, err := catalog.ListProducts(ctx, CatalogFilter{})
	require.NoError(t, err)

	searched, err := search.Search(ctx, "   ", CatalogFilter{})
	require.NoError(t, err)

	assert.Equal(t, productIDs(listed.Products), productIDs(searched.Products))
	assert.Equal(t, listed.Pagination, searched.Pagination)
}

func TestSearchTreatsWildcardsLiterally(t *testing.T) {
	search, _, _ := searchFixture(t)
	ctx := context.Background()

	page, err := search.Search(ctx, "%", CatalogFilter{})
	require.NoError(t, err)
	assert.Equal(t, []string{"Plain Band"}, titles(page.Products))

	page, err = search.Search(ctx, "_", CatalogFilter{})
	require.NoError(t, err)
	assert.Equal(t, []string{"Bar_24k"}, titles(page.Products))
}

func TestSearchRejectsOverlongTerm(t *testing.T) {
	search, _, _ := searchFixture(t)

	long := make([]byte, MaxSearchLength+1)
	for i := range long {
		long[i] = 'a'
	}
	_, err := search.Search(context.Background(), string(long), CatalogFilter{})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `100\%`, escapeLike("100%"))
	assert.Equal(t, `a\_b`, escapeLike("a_b"))
	assert.Equal(t, `c:\\x`, escapeLike(`c:\x`))
}
