package contracts

import (
	"context"

	"github.com/murkotick/catalog-service/internal/app/catalog/domain"
)

// EntityStore is the write side of the catalog store. Save persists the
// pending state of an aggregate (a new entity with its first translation, or
// translations added to an existing one) in one transaction.
type EntityStore interface {
	// Save returns ErrSlugTaken, ErrTranslationExists or ErrReferenceMissing
	// when a store constraint rejects the write.
	Save(ctx context.Context, e *domain.Entity) error

	// Delete removes an entity and cascades to its translations. It returns
	// ErrEntityNotFound or ErrEntityReferenced.
	Delete(ctx context.Context, kind domain.Kind, id string) error
}
