package domain

import "errors"

// ErrorClass groups business failures by how callers should react to them.
type ErrorClass int

const (
	ClassValidation ErrorClass = iota
	ClassNotFound
	ClassConflict
)

// Error is a client-correctable failure. Key is stable and machine readable
// so clients can render a localized message for it.
type Error struct {
	Class ErrorClass
	Key   string
	msg   string
}

func (e *Error) Error() string {
	return e.msg
}

// Is matches any *Error with the same key.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Key == e.Key
}

// AsError unwraps err into a business failure, if it is one.
func AsError(err error) (*Error, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

func validation(key, msg string) *Error {
	return &Error{Class: ClassValidation, Key: key, msg: msg}
}

func notFound(key, msg string) *Error {
	return &Error{Class: ClassNotFound, Key: key, msg: msg}
}

func conflict(key, msg string) *Error {
	return &Error{Class: ClassConflict, Key: key, msg: msg}
}

// Field validation
var (
	ErrNameRequired         = validation("nameRequired", "name is required")
	ErrNameTooLong          = validation("nameTooLong", "name exceeds maximum length of 255 characters")
	ErrDescriptionTooLong   = validation("descriptionTooLong", "description exceeds maximum length of 4000 characters")
	ErrLanguageCodeRequired = validation("languageCodeRequired", "language code is required")
	ErrLanguageCodeInvalid  = validation("languageCodeInvalid", "language code is not a valid BCP 47 tag")
	ErrPriceRequired        = validation("priceRequired", "price is required")
	ErrPriceMustBePositive  = validation("priceMustBePositive", "price must be greater than zero")
	ErrPriceNotAllowed      = validation("priceNotAllowed", "categories do not carry a price")
	ErrCategoryRequired     = validation("categoryRequired", "category id is required")
	ErrInvalidParent        = validation("invalidParent", "an entity cannot be its own parent")
)

// Query validation
var (
	ErrInvalidPageNumber = validation("invalidPageNumber", "page number must be at least 1")
	ErrInvalidPageSize   = validation("invalidPageSize", "page size must be greater than zero")
)

// Lookups
var (
	ErrProductNotFound  = notFound("productNotFound", "product not found")
	ErrCategoryNotFound = notFound("categoryNotFound", "category not found")
)

// State conflicts
var (
	ErrTranslationAlreadyExists = conflict("translationAlreadyExists", "a translation for this language already exists")
	ErrCategoryInUse            = conflict("categoryInUse", "category still has products or subcategories")
)
