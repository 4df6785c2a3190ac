package repo

import (
	"cloud.google.com/go/spanner"

	"github.com/murkotick/catalog-service/internal/app/catalog/domain"
	"github.com/murkotick/catalog-service/internal/models/m_entity"
	"github.com/murkotick/catalog-service/internal/models/m_translation"
)

// EntityRepo builds Spanner mutations for catalog entities. It never
// applies them; a committer does.
type EntityRepo struct{}

func NewEntityRepo() *EntityRepo {
	return &EntityRepo{}
}

// buildInsertValues is unexported so tests can inspect the values map
// without relying on spanner.Mutation internals.
func buildInsertValues(e *domain.Entity) map[string]interface{} {
	var parentID *string
	if p := e.ParentID(); p != "" {
		parentID = &p
	}

	var num, den *int64
	if price := e.Price(); price != nil {
		n, d := price.Numerator(), price.Denominator()
		num, den = &n, &d
	}

	return m_entity.BuildInsertMap(e.ID(), e.Kind().String(), parentID, num, den,
		e.CreatedAt().UTC(), e.UpdatedAt().UTC())
}

func buildTranslationValues(e *domain.Entity, t domain.Translation) map[string]interface{} {
	return m_translation.BuildInsertMap(e.ID(), t.LanguageCode, e.Kind().String(),
		t.Name, t.Slug, t.Description, t.CreatedAt.UTC())
}

// InsertMut returns the insert for a new entity, or nil for a loaded one.
func (r *EntityRepo) InsertMut(e *domain.Entity) *spanner.Mutation {
	if e == nil || !e.IsNew() {
		return nil
	}
	return m_entity.InsertMutation(buildInsertValues(e))
}

// TranslationMuts returns one insert per pending translation.
func (r *EntityRepo) TranslationMuts(e *domain.Entity) []*spanner.Mutation {
	if e == nil {
		return nil
	}
	pending := e.PendingTranslations()
	muts := make([]*spanner.Mutation, 0, len(pending))
	for _, t := range pending {
		muts = append(muts, m_translation.InsertMutation(buildTranslationValues(e, t)))
	}
	return muts
}

// UpdateMut stamps updated_at on a loaded entity whose change tracker is
// dirty. New entities are covered by InsertMut.
func (r *EntityRepo) UpdateMut(e *domain.Entity) *spanner.Mutation {
	if e == nil || e.IsNew() || !e.Changes().Dirty(domain.FieldUpdatedAt) {
		return nil
	}
	return m_entity.UpdateMutation(e.ID(), map[string]interface{}{
		m_entity.ColUpdatedAt: e.UpdatedAt().UTC(),
	})
}

func (r *EntityRepo) DeleteMut(id string) *spanner.Mutation {
	return m_entity.DeleteMutation(id)
}
