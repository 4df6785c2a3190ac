package add_translation

import (
	"context"
	"errors"
	"strings"

	"github.com/murkotick/catalog-service/internal/app/catalog/contracts"
	"github.com/murkotick/catalog-service/internal/app/catalog/domain"
	"github.com/murkotick/catalog-service/internal/app/catalog/usecases/shared"
	"github.com/murkotick/catalog-service/internal/pkg/clock"
)

// Request adds a language variant to an existing entity.
type Request struct {
	Kind         domain.Kind
	EntityID     string
	LanguageCode string
	Name         string
	Description  string
}

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

	id := strings.TrimSpace(req.EntityID)
	if id == "" {
		return req.Kind.NotFound()
	}

	// 1. Load aggregate via read model
	rec, err := it.ReadModel.GetEntity(ctx, req.Kind.String(), id)
	if errors.Is(err, contracts.ErrEntityNotFound) {
		return req.Kind.NotFound()
	}
	if err != nil {
		return err
	}
	entity := shared.EntityFromRecord(req.Kind, rec)

	// 2. Domain method enforces one translation per language
	if err := entity.AddTranslation(req.LanguageCode, req.Name, req.Description, now); err != nil {
		return err
	}

	// 3. Persist with a free slug
	err = shared.SaveWithUniqueSlugs(ctx, it.Store, it.ReadModel, entity)
	switch {
	case errors.Is(err, contracts.ErrTranslationExists):
		// A concurrent request added the same language first.
		return domain.ErrTranslationAlreadyExists
	case errors.Is(err, contracts.ErrReferenceMissing), errors.Is(err, contracts.ErrEntityNotFound):
		return req.Kind.NotFound()
	case err != nil:
		return err
	}
	entity.MarkPersisted()

	// 4. Invalidate and publish
	it.Effects.AfterCommit(ctx, entity.Kind(), entity.DomainEvents())
	entity.ClearEvents()
	return nil
}
