package contracts

import "errors"

// Store adapters translate driver errors into these values.
var (
	// ErrSlugTaken means another translation of the same kind and language
	// already uses the slug.
	ErrSlugTaken = errors.New("slug already taken")

	// ErrTranslationExists means the entity already has a translation for
	// the language.
	ErrTranslationExists = errors.New("translation already exists")

	// ErrEntityNotFound means the addressed entity does not exist.
	ErrEntityNotFound = errors.New("entity not found")

	// ErrReferenceMissing means a row referenced by the write (the parent
	// category, or the entity owning a new translation) no longer exists.
	ErrReferenceMissing = errors.New("referenced entity does not exist")

	// ErrEntityReferenced means the entity cannot be removed because other
	// entities still point at it.
	ErrEntityReferenced = errors.New("entity is still referenced")

	ErrOutboxEventNotFound = errors.New("outbox event not found")
)
