package contracts

import (
	"context"

	"github.com/murkotick/catalog-service/internal/app/catalog/dto"
)

// ReadModel is the query side of the catalog store.
type ReadModel interface {
	// GetEntity returns ErrEntityNotFound when no entity of kind has the id.
	GetEntity(ctx context.Context, kind, id string) (*dto.EntityRecord, error)

	// ListEntities returns one page of records and the total match count.
	ListEntities(ctx context.Context, c dto.ListCriteria) ([]*dto.EntityRecord, int, error)

	EntityExists(ctx context.Context, kind, id string) (bool, error)
	SlugExists(ctx context.Context, kind, slug, languageCode string) (bool, error)

	// CountChildren counts products and categories whose parent is id.
	CountChildren(ctx context.Context, id string) (int, error)

	Ping(ctx context.Context) error
}
