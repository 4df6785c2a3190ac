package queries

import (
	"strings"

	"github.com/murkotick/catalog-service/internal/app/catalog/domain"
	"github.com/murkotick/catalog-service/internal/app/catalog/dto"
	"github.com/murkotick/catalog-service/internal/pkg/textfold"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// ListParams is a list request as received from a client.
type ListParams struct {
	Kind         domain.Kind
	LanguageCode string
	SearchTerm   string
	// CategoryID filters products by owning category and categories by parent.
	CategoryID string
	MinPrice   *domain.Money
	MaxPrice   *domain.Money
	SortBy     string
	// Page and PageSize default when zero.
	Page     int
	PageSize int
}

// ParseSort maps a client sort key to an order. Unknown keys fall back to
// ordering by name.
func ParseSort(s string) dto.SortOrder {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "price", "priceasc", "price_asc", "price-asc":
		return dto.SortByPriceAsc
	case "pricedesc", "price_desc", "price-desc", "-price":
		return dto.SortByPriceDesc
	default:
		return dto.SortByName
	}
}

// Canonicalize validates p and returns the criteria handed to the read
// model together with the resolved page number and size. Equivalent
// requests produce identical criteria and therefore share a cache entry.
func Canonicalize(p ListParams) (dto.ListCriteria, int, int, error) {
	page, size := p.Page, p.PageSize
	switch {
	case page == 0:
		page = 1
	case page < 0:
		return dto.ListCriteria{}, 0, 0, domain.ErrInvalidPageNumber
	}
	switch {
	case size == 0:
		size = DefaultPageSize
	case size < 0:
		return dto.ListCriteria{}, 0, 0, domain.ErrInvalidPageSize
	case size > MaxPageSize:
		size = MaxPageSize
	}

	lang := ""
	if strings.TrimSpace(p.LanguageCode) != "" {
		l, err := domain.NormalizeLanguageCode(p.LanguageCode)
		if err != nil {
			return dto.ListCriteria{}, 0, 0, err
		}
		lang = l
	}

	c := dto.ListCriteria{
		Kind:         p.Kind.String(),
		LanguageCode: lang,
		SearchTerm:   textfold.Lower(strings.TrimSpace(p.SearchTerm)),
		ParentID:     strings.TrimSpace(p.CategoryID),
		Sort:         dto.SortByName,
		Offset:       (page - 1) * size,
		Limit:        size,
	}

	// Categories carry no price, so price filters and orders do not apply.
	if p.Kind.HasPrice() {
		c.Sort = ParseSort(p.SortBy)
		c.MinPrice = toPrice(p.MinPrice)
		c.MaxPrice = toPrice(p.MaxPrice)
	}
	return c, page, size, nil
}

func toPrice(m *domain.Money) *dto.Price {
	if m == nil {
		return nil
	}
	return &dto.Price{Numerator: m.Numerator(), Denominator: m.Denominator()}
}
