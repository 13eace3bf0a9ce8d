package services

import (
	"context"
	"strings"

	"gorm.io/gorm"
)

type SearchService struct {
	catalog *CatalogService
}

func NewSearchService(catalog *CatalogService) *SearchService {
	return &SearchService{catalog: catalog}
}

// Search layers a case-insensitive substring match over title, description,
// shop name and seller name onto the catalog filter. Matches are not ranked.
func (s *SearchService) Search(ctx context.Context, term string, filter CatalogFilter) (*CatalogPage, error) {
	filter.Search = strings.TrimSpace(term)
	return s.catalog.ListProducts(ctx, filter)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes LIKE treat the term literally.
func escapeLike(term string) string {
	return likeEscaper.Replace(term)
}

func applyTextMatch(query *gorm.DB, term string) *gorm.DB {
	pattern := "%" + escapeLike(strings.ToLower(term)) + "%"
	return query.
		Joins("JOIN sellers ON sellers.id = products.seller_id").
		Joins("JOIN users ON users.id = sellers.user_id").
		Where(`(LOWER(products.title) LIKE ? ESCAPE '\'`+
			` OR LOWER(products.description) LIKE ? ESCAPE '\'`+
			` OR LOWER(sellers.shop_name) LIKE ? ESCAPE '\'`+
			` OR LOWER(users.name) LIKE ? ESCAPE '\')`,
			pattern, pattern, pattern, pattern)
}
