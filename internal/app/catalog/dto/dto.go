package dto

import "time"

// TranslationRecord is a persisted translation as returned by read models.
type TranslationRecord struct {
	LanguageCode string
	Name         string
	Slug         string
	Description  string
	CreatedAt    time.Time
}

// Price is an exact amount stored as a reduced fraction.
type Price struct {
	Numerator   int64
	Denominator int64
}

// EntityRecord is a persisted entity with all of its translations. Read
// models return Translations ordered by CreatedAt, then LanguageCode, so the
// first element is the fallback translation.
type EntityRecord struct {
	ID           string
	Kind         string
	ParentID     string
	Price        *Price
	CreatedAt    time.Time
	UpdatedAt    time.Time
	Translations []TranslationRecord
}

// SortOrder is the server side ordering of a list query.
type SortOrder string

const (
	SortByName      SortOrder = "name"
	SortByPriceAsc  SortOrder = "priceAsc"
	SortByPriceDesc SortOrder = "priceDesc"
)

// ListCriteria is a canonical list query handed to read models.
type ListCriteria struct {
	Kind         string
	LanguageCode string
	// SearchTerm is already trimmed and lowercased.
	SearchTerm string
	ParentID   string
	MinPrice   *Price
	MaxPrice   *Price
	Sort       SortOrder
	Offset     int
	Limit      int
}

// EntityDTO is the projection of an entity in one language.
type EntityDTO struct {
	ID                 string    `json:"id"`
	Kind               string    `json:"kind"`
	Name               string    `json:"name"`
	Slug               string    `json:"slug"`
	Description        string    `json:"description,omitempty"`
	LanguageCode       string    `json:"languageCode"`
	AvailableLanguages []string  `json:"availableLanguages"`
	CategoryID         string    `json:"categoryId,omitempty"`
	ParentID           string    `json:"parentId,omitempty"`
	Price              string    `json:"price,omitempty"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// Page is one page of a paginated result. Items is never nil so it always
// encodes as a JSON array.
type Page[T any] struct {
	Items      []T `json:"items"`
	PageNumber int `json:"pageNumber"`
	PageSize   int `json:"pageSize"`
	TotalCount int `json:"totalCount"`
	TotalPages int `json:"totalPages"`
}

// NewPage builds a page and derives TotalPages from total and size.
func NewPage[T any](items []T, number, size, total int) Page[T] {
	if items == nil {
		items = []T{}
	}
	pages := 0
	if size > 0 {
		pages = (total + size - 1) / size
	}
	return Page[T]{
		Items:      items,
		PageNumber: number,
		PageSize:   size,
		TotalCount: total,
		TotalPages: pages,
	}
}
