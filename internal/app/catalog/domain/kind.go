package domain

import "strings"

// Kind identifies which catalog entity type a record belongs to.
type Kind string

const (
	KindProduct  Kind = "product"
	KindCategory Kind = "category"
)

// ParseKind accepts the singular and plural route spellings of a kind.
func ParseKind(s string) (Kind, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "product", "products":
		return KindProduct, true
	case "category", "categories":
		return KindCategory, true
	}
	return "", false
}

func (k Kind) String() string {
	return string(k)
}

// HasPrice reports whether entities of this kind carry a price.
func (k Kind) HasPrice() bool {
	return k == KindProduct
}

// CacheNamespace is the prefix shared by every cache key of this kind.
func (k Kind) CacheNamespace() string {
	return string(k) + "::"
}

// NotFound returns the not-found error for this kind.
func (k Kind) NotFound() error {
	if k == KindCategory {
		return ErrCategoryNotFound
	}
	return ErrProductNotFound
}
