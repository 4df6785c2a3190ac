package queries

import (
	"math/big"
	"strings"

	"github.com/murkotick/catalog-service/internal/app/catalog/domain"
	"github.com/murkotick/catalog-service/internal/app/catalog/dto"
	"github.com/murkotick/catalog-service/internal/pkg/langs"
)

// Project renders rec in lang. The translation is chosen by exact language,
// then by base language ("en" for "en-GB"), then the first translation the
// entity received. Some name is therefore always shown.
func Project(rec *dto.EntityRecord, lang string) dto.EntityDTO {
	out := dto.EntityDTO{
		ID:                 rec.ID,
		Kind:               rec.Kind,
		AvailableLanguages: make([]string, 0, len(rec.Translations)),
		CreatedAt:          rec.CreatedAt,
		UpdatedAt:          rec.UpdatedAt,
	}
	for _, t := range rec.Translations {
		out.AvailableLanguages = append(out.AvailableLanguages, t.LanguageCode)
	}

	if t, ok := pickTranslation(rec.Translations, lang); ok {
		out.Name = t.Name
		out.Slug = t.Slug
		out.Description = t.Description
		out.LanguageCode = t.LanguageCode
	}

	if rec.ParentID != "" {
		if rec.Kind == domain.KindProduct.String() {
			out.CategoryID = rec.ParentID
		} else {
			out.ParentID = rec.ParentID
		}
	}
	if rec.Price != nil && rec.Price.Denominator != 0 {
		out.Price = big.NewRat(rec.Price.Numerator, rec.Price.Denominator).FloatString(2)
	}
	return out
}

func pickTranslation(ts []dto.TranslationRecord, lang string) (dto.TranslationRecord, bool) {
	if len(ts) == 0 {
		return dto.TranslationRecord{}, false
	}
	for _, t := range ts {
		if strings.EqualFold(t.LanguageCode, lang) {
			return t, true
		}
	}
	if base := langs.Base(lang); base != "" {
		for _, t := range ts {
			if langs.Base(t.LanguageCode) == base {
				return t, true
			}
		}
	}
	return ts[0], true
}
