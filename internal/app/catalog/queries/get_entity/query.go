package get_entity

import "github.com/murkotick/catalog-service/internal/app/catalog/domain"

// Query addresses one entity in one language.
type Query struct {
	Kind         domain.Kind
	ID           string
	LanguageCode string
}
