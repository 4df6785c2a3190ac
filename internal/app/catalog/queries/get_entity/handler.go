package get_entity

import (
	"context"
	"errors"
	"strings"

	"github.com/murkotick/catalog-service/internal/app/catalog/cacheaside"
	"github.com/murkotick/catalog-service/internal/app/catalog/contracts"
	"github.com/murkotick/catalog-service/internal/app/catalog/domain"
	"github.com/murkotick/catalog-service/internal/app/catalog/dto"
	"github.com/murkotick/catalog-service/internal/app/catalog/queries"
)

type Handler struct {
	readModel contracts.ReadModel
	cache     *cacheaside.Layer
}

func NewHandler(r contracts.ReadModel, c *cacheaside.Layer) *Handler {
	return &Handler{readModel: r, cache: c}
}

// Execute returns the entity projected into q.LanguageCode, or the kind's
// not-found error.
func (h *Handler) Execute(ctx context.Context, q Query) (dto.EntityDTO, error) {
	id := strings.TrimSpace(q.ID)
	if id == "" {
		return dto.EntityDTO{}, q.Kind.NotFound()
	}
	lang := ""
	if strings.TrimSpace(q.LanguageCode) != "" {
		l, err := domain.NormalizeLanguageCode(q.LanguageCode)
		if err != nil {
			return dto.EntityDTO{}, err
		}
		lang = l
	}

	key := cacheaside.GetKey(q.Kind.String(), id, lang)
	out, err := cacheaside.GetOrLoad(ctx, h.cache, key, func(ctx context.Context) (dto.EntityDTO, error) {
		rec, err := h.readModel.GetEntity(ctx, q.Kind.String(), id)
		if err != nil {
			return dto.EntityDTO{}, err
		}
		return queries.Project(rec, lang), nil
	})
	if errors.Is(err, contracts.ErrEntityNotFound) {
		return dto.EntityDTO{}, q.Kind.NotFound()
	}
	return out, err
}
