package list_entities

import (
	"context"

	"github.com/murkotick/catalog-service/internal/app/catalog/cacheaside"
	"github.com/murkotick/catalog-service/internal/app/catalog/contracts"
	"github.com/murkotick/catalog-service/internal/app/catalog/dto"
	"github.com/murkotick/catalog-service/internal/app/catalog/queries"
)

// Handler serves filtered, paginated listings through the cache.
type Handler struct {
	readModel contracts.ReadModel
	cache     *cacheaside.Layer
}

func NewHandler(r contracts.ReadModel, c *cacheaside.Layer) *Handler {
	return &Handler{readModel: r, cache: c}
}

// Execute returns one page of entities projected into the requested
// language. A page past the end is empty but still reports the total.
func (h *Handler) Execute(ctx context.Context, q Query) (dto.Page[dto.EntityDTO], error) {
	criteria, page, size, err := queries.Canonicalize(q)
	if err != nil {
		return dto.Page[dto.EntityDTO]{}, err
	}

	return cacheaside.GetOrLoad(ctx, h.cache, cacheaside.ListKey(criteria), func(ctx context.Context) (dto.Page[dto.EntityDTO], error) {
		records, total, err := h.readModel.ListEntities(ctx, criteria)
		if err != nil {
			return dto.Page[dto.EntityDTO]{}, err
		}
		items := make([]dto.EntityDTO, 0, len(records))
		for _, rec := range records {
			items = append(items, queries.Project(rec, criteria.LanguageCode))
		}
		return dto.NewPage(items, page, size, total), nil
	})
}
