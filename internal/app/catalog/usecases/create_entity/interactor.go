package create_entity

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/murkotick/catalog-service/internal/app/catalog/contracts"
	"github.com/murkotick/catalog-service/internal/app/catalog/domain"
	"github.com/murkotick/catalog-service/internal/app/catalog/usecases/shared"
	"github.com/murkotick/catalog-service/internal/pkg/clock"
)

// Request is the application-level create request for a product or category.
type Request struct {
	Kind         domain.Kind
	Name         string
	LanguageCode string
	Description  string
	// ParentID is the product's category or the category's parent.
	ParentID string
	Price    *domain.Money
}

// Interactor implements the create usecase for both entity kinds.
type Interactor struct {
	Store     contracts.EntityStore
	ReadModel contracts.ReadModel
	Effects   shared.Effects
	Clock     clock.Clock
}

func NewInteractor(store contracts.EntityStore, readModel contracts.ReadModel, effects shared.Effects, clk clock.Clock) *Interactor {
	return &Interactor{
		Store:     store,
		ReadModel: readModel,
		Effects:   effects,
		Clock:     clk,
	}
}

// Execute validates req, stores the entity with a unique slug and returns
// its id.
func (it *Interactor) Execute(ctx context.Context, req Request) (string, error) {
	now := it.Clock.Now()

	// 1. Build and validate the aggregate
	id := uuid.New().String()
	entity, err := domain.NewEntity(id, req.Kind, domain.NewEntityParams{
		Name:         req.Name,
		LanguageCode: req.LanguageCode,
		Description:  req.Description,
		ParentID:     req.ParentID,
		Price:        req.Price,
	}, now)
	if err != nil {
		return "", err
	}

	// 2. Referenced category must exist
	if parentID := strings.TrimSpace(req.ParentID); parentID != "" {
		ok, err := it.ReadModel.EntityExists(ctx, domain.KindCategory.String(), parentID)
		if err != nil {
			return "", fmt.Errorf("check parent category: %w", err)
		}
		if !ok {
			return "", domain.ErrCategoryNotFound
		}
	}

	// 3. Persist with a free slug
	err = shared.SaveWithUniqueSlugs(ctx, it.Store, it.ReadModel, entity)
	switch {
	case errors.Is(err, contracts.ErrReferenceMissing):
		// The category was removed between the check and the insert.
		return "", domain.ErrCategoryNotFound
	case err != nil:
		return "", err
	}
	entity.MarkPersisted()

	// 4. Invalidate and publish
	it.Effects.AfterCommit(ctx, entity.Kind(), entity.DomainEvents())
	entity.ClearEvents()

	return entity.ID(), nil
}
