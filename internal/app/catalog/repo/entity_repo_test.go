package repo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/murkotick/catalog-service/internal/app/catalog/contracts"
	"github.com/murkotick/catalog-service/internal/app/catalog/domain"
	"github.com/murkotick/catalog-service/internal/models/m_entity"
	"github.com/murkotick/catalog-service/internal/models/m_translation"
)

var now = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func TestInsertValues_Product(t *testing.T) {
	price := domain.NewMoney(999, 100)
	e, err := domain.NewEntity("prod-1", domain.KindProduct, domain.NewEntityParams{
		Name: "Widget", LanguageCode: "en", ParentID: "cat-1", Price: price,
	}, now)
	require.NoError(t, err)

	values := buildInsertValues(e)
	assert.Equal(t, "prod-1", values[m_entity.ColEntityID])
	assert.Equal(t, "product", values[m_entity.ColKind])
	assert.Equal(t, "cat-1", values[m_entity.ColParentID])
	assert.Equal(t, price.Numerator(), values[m_entity.ColPriceNumerator])
	assert.Equal(t, price.Denominator(), values[m_entity.ColPriceDenominator])
	assert.Equal(t, now, values[m_entity.ColCreatedAt])

	r := NewEntityRepo()
	require.NotNil(t, r.InsertMut(e))
	assert.Nil(t, r.UpdateMut(e), "new entities are written by InsertMut only")
}

func TestInsertValues_RootCategoryHasNulls(t *testing.T) {
	e, err := domain.NewEntity("cat-1", domain.KindCategory, domain.NewEntityParams{
		Name: "Tools", LanguageCode: "en",
	}, now)
	require.NoError(t, err)

	values := buildInsertValues(e)
	for _, col := range []string{m_entity.ColParentID, m_entity.ColPriceNumerator, m_entity.ColPriceDenominator} {
		v, ok := values[col]
		require.True(t, ok, "expected key %s in insert map", col)
		assert.Nil(t, v)
	}
}

func TestTranslationMuts_OnlyPending(t *testing.T) {
	e := domain.ReconstructEntity("prod-1", domain.KindProduct, "cat-1", domain.NewMoney(1, 1),
		[]domain.Translation{{LanguageCode: "en", Name: "Widget", Slug: "widget", CreatedAt: now}}, now, now)

	r := NewEntityRepo()
	assert.Empty(t, r.TranslationMuts(e))
	assert.Nil(t, r.InsertMut(e))
	assert.Nil(t, r.UpdateMut(e))

	require.NoError(t, e.AddTranslation("fr", "Gadget", "", now.Add(time.Minute)))
	e.AssignSlug("fr", "gadget")

	assert.Len(t, r.TranslationMuts(e), 1)
	assert.NotNil(t, r.UpdateMut(e))

	tr, _ := e.Translation("fr")
	values := buildTranslationValues(e, tr)
	assert.Equal(t, "gadget", values[m_translation.ColSlug])
	assert.Equal(t, "product", values[m_translation.ColKind])
	assert.Nil(t, values[m_translation.ColDescription])
}

func TestOutboxRepo_Mutations(t *testing.T) {
	r := NewOutboxRepo()
	assert.Nil(t, r.InsertMut(nil))
	assert.NotNil(t, r.InsertMut(&contracts.OutboxEvent{EventID: "e1", EventType: "catalog.product.created", CreatedAtUTC: now}))
	assert.Nil(t, r.MarkProcessedMut("", now))
	assert.NotNil(t, r.MarkProcessedMut("e1", now))
}
