package queries

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/murkotick/catalog-service/internal/app/catalog/dto"
)

var t0 = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func record() *dto.EntityRecord {
	return &dto.EntityRecord{
		ID:       "p1",
		Kind:     "product",
		ParentID: "c1",
		Price:    &dto.Price{Numerator: 999, Denominator: 100},
		Translations: []dto.TranslationRecord{
			{LanguageCode: "de", Name: "Gerät", Slug: "gerat", CreatedAt: t0},
			{LanguageCode: "en", Name: "Widget", Slug: "widget", Description: "Blue", CreatedAt: t0.Add(time.Minute)},
		},
	}
}

func TestProject_ExactLanguage(t *testing.T) {
	got := Project(record(), "en")

	assert.Equal(t, "Widget", got.Name)
	assert.Equal(t, "widget", got.Slug)
	assert.Equal(t, "Blue", got.Description)
	assert.Equal(t, "en", got.LanguageCode)
	assert.Equal(t, []string{"de", "en"}, got.AvailableLanguages)
	assert.Equal(t, "c1", got.CategoryID)
	assert.Empty(t, got.ParentID)
	assert.Equal(t, "9.99", got.Price)
}

func TestProject_BaseLanguageMatch(t *testing.T) {
	got := Project(record(), "en-GB")
	assert.Equal(t, "Widget", got.Name)
	assert.Equal(t, "en", got.LanguageCode)
}

func TestProject_FallsBackToFirstTranslation(t *testing.T) {
	got := Project(record(), "fr")
	assert.Equal(t, "Gerät", got.Name)
	assert.Equal(t, "de", got.LanguageCode)

	got = Project(record(), "")
	assert.Equal(t, "Gerät", got.Name)
}

func TestProject_Category(t *testing.T) {
	rec := &dto.EntityRecord{
		ID: "c2", Kind: "category", ParentID: "c1",
		Translations: []dto.TranslationRecord{{LanguageCode: "en", Name: "Tools", Slug: "tools"}},
	}
	got := Project(rec, "en")
	assert.Equal(t, "c1", got.ParentID)
	assert.Empty(t, got.CategoryID)
	assert.Empty(t, got.Price)
}
