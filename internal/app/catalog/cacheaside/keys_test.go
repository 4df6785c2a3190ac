package cacheaside

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/murkotick/catalog-service/internal/app/catalog/dto"
)

func TestListKey(t *testing.T) {
	c := dto.ListCriteria{
		Kind:         "product",
		LanguageCode: "en",
		SearchTerm:   "blue widget",
		ParentID:     "cat-1",
		MinPrice:     &dto.Price{Numerator: 999, Denominator: 100},
		Sort:         dto.SortByPriceAsc,
		Offset:       20,
		Limit:        20,
	}

	key := ListKey(c)
	assert.True(t, strings.HasPrefix(key, "product::list::"))
	assert.Equal(t, key, ListKey(c))
	assert.Contains(t, key, "min=999/100")
	assert.Contains(t, key, "max=::")

	other := c
	other.Offset = 40
	assert.NotEqual(t, key, ListKey(other))

	other = c
	other.LanguageCode = "fr"
	assert.NotEqual(t, key, ListKey(other))
}

func TestListKey_SearchTermCannotForgeSegments(t *testing.T) {
	a := dto.ListCriteria{Kind: "product", SearchTerm: "x::parent=y"}
	b := dto.ListCriteria{Kind: "product", SearchTerm: "x", ParentID: "y"}
	assert.NotEqual(t, ListKey(a), ListKey(b))
}

func TestGetKeyAndNamespace(t *testing.T) {
	key := GetKey("category", "c1", "de")
	assert.Equal(t, "category::get::c1::de", key)
	assert.Equal(t, "category::", namespaceOf(key))
	assert.Equal(t, "product::", namespaceOf("product::"))
}
