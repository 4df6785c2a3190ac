package shared

import (
	"github.com/murkotick/catalog-service/internal/app/catalog/domain"
	"github.com/murkotick/catalog-service/internal/app/catalog/dto"
)

// EntityFromRecord rebuilds the aggregate from a read model record.
func EntityFromRecord(kind domain.Kind, rec *dto.EntityRecord) *domain.Entity {
	var price *domain.Money
	if rec.Price != nil {
		price = domain.NewMoney(rec.Price.Numerator, rec.Price.Denominator)
	}

	ts := make([]domain.Translation, 0, len(rec.Translations))
	for _, t := range rec.Translations {
		ts = append(ts, domain.Translation{
			LanguageCode: t.LanguageCode,
			Name:         t.Name,
			Slug:         t.Slug,
			Description:  t.Description,
			CreatedAt:    t.CreatedAt,
		})
	}
	return domain.ReconstructEntity(rec.ID, kind, rec.ParentID, price, ts, rec.CreatedAt, rec.UpdatedAt)
}
