package delete_entity

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/murkotick/catalog-service/internal/app/catalog/contracts"
	"github.com/murkotick/catalog-service/internal/app/catalog/domain"
	"github.com/murkotick/catalog-service/internal/app/catalog/usecases/shared"
	"github.com/murkotick/catalog-service/internal/pkg/clock"
)

type Request struct {
	Kind domain.Kind
	ID   string
}

// Interactor removes an entity together with its translations. Categories
// that still own products or subcategories are kept.
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

func (it *Interactor) Execute(ctx context.Context, req Request) error {
	now := it.Clock.Now()

	id := strings.TrimSpace(req.ID)
	if id == "" {
		return req.Kind.NotFound()
	}

	rec, err := it.ReadModel.GetEntity(ctx, req.Kind.String(), id)
	if errors.Is(err, contracts.ErrEntityNotFound) {
		return req.Kind.NotFound()
	}
	if err != nil {
		return err
	}
	entity := shared.EntityFromRecord(req.Kind, rec)

	if req.Kind == domain.KindCategory {
		n, err := it.ReadModel.CountChildren(ctx, id)
		if err != nil {
			return fmt.Errorf("count children: %w", err)
		}
		if n > 0 {
			return domain.ErrCategoryInUse
		}
	}

	err = it.Store.Delete(ctx, req.Kind, id)
	switch {
	case errors.Is(err, contracts.ErrEntityNotFound):
		return req.Kind.NotFound()
	case errors.Is(err, contracts.ErrEntityReferenced):
		return domain.ErrCategoryInUse
	case err != nil:
		return err
	}

	entity.Delete(now)
	it.Effects.AfterCommit(ctx, req.Kind, entity.DomainEvents())
	entity.ClearEvents()
	return nil
}
