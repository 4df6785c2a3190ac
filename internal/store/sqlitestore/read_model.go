package sqlitestore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"

	"github.com/murkotick/catalog-service/internal/app/catalog/contracts"
	"github.com/murkotick/catalog-service/internal/app/catalog/dto"
	"github.com/murkotick/catalog-service/internal/pkg/langs"
)

// nameOrder sorts by the name a client sees in the requested language:
// exact match, then base language, then the first translation. Names are
// compared after catalog_fold, so case is ignored for every script.
const nameOrder = `catalog_fold(COALESCE(
	(SELECT t1.name FROM catalog_translations AS t1
	  WHERE t1.entity_id = e.entity_id AND t1.language_code = ?),
	(SELECT t2.name FROM catalog_translations AS t2
	  WHERE t2.entity_id = e.entity_id AND (t2.language_code = ? OR t2.language_code LIKE ?)
	  ORDER BY t2.created_at, t2.language_code LIMIT 1),
	(SELECT t3.name FROM catalog_translations AS t3
	  WHERE t3.entity_id = e.entity_id
	  ORDER BY t3.created_at, t3.language_code LIMIT 1)
)) ASC, e.entity_id ASC`

func (s *Store) GetEntity(ctx context.Context, kind, id string) (*dto.EntityRecord, error) {
	row := new(entityRow)
	err := s.db.NewSelect().
		Model(row).
		Where("e.entity_id = ?", id).
		Where("e.kind = ?", kind).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, contracts.ErrEntityNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get %s %s: %w", kind, id, err)
	}

	recs, err := s.withTranslations(ctx, []entityRow{*row})
	if err != nil {
		return nil, err
	}
	return recs[0], nil
}

func (s *Store) ListEntities(ctx context.Context, c dto.ListCriteria) ([]*dto.EntityRecord, int, error) {
	var rows []entityRow
	q := s.db.NewSelect().
		Model(&rows).
		Where("e.kind = ?", c.Kind)

	if c.SearchTerm != "" {
		q = q.Where(`EXISTS (SELECT 1 FROM catalog_translations AS ts
			WHERE ts.entity_id = e.entity_id AND instr(catalog_fold(ts.name), ?) > 0)`, c.SearchTerm)
	}
	if c.ParentID != "" {
		q = q.Where("e.parent_id = ?", c.ParentID)
	}
	// Prices are fractions; compare by cross multiplication to stay exact.
	if c.MinPrice != nil {
		q = q.Where("e.price_numerator * ? >= ? * e.price_denominator", c.MinPrice.Denominator, c.MinPrice.Numerator)
	}
	if c.MaxPrice != nil {
		q = q.Where("e.price_numerator * ? <= ? * e.price_denominator", c.MaxPrice.Denominator, c.MaxPrice.Numerator)
	}

	switch c.Sort {
	case dto.SortByPriceAsc:
		q = q.OrderExpr("CAST(e.price_numerator AS REAL) / e.price_denominator ASC, e.entity_id ASC")
	case dto.SortByPriceDesc:
		q = q.OrderExpr("CAST(e.price_numerator AS REAL) / e.price_denominator DESC, e.entity_id ASC")
	default:
		base := langs.Base(c.LanguageCode)
		q = q.OrderExpr(nameOrder, c.LanguageCode, base, base+"-%")
	}

	total, err := q.Offset(c.Offset).Limit(c.Limit).ScanAndCount(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("list %s: %w", c.Kind, err)
	}
	if len(rows) == 0 {
		return []*dto.EntityRecord{}, total, nil
	}

	recs, err := s.withTranslations(ctx, rows)
	if err != nil {
		return nil, 0, err
	}
	return recs, total, nil
}

func (s *Store) EntityExists(ctx context.Context, kind, id string) (bool, error) {
	return s.db.NewSelect().
		Model((*entityRow)(nil)).
		Where("e.entity_id = ?", id).
		Where("e.kind = ?", kind).
		Exists(ctx)
}

func (s *Store) SlugExists(ctx context.Context, kind, slug, languageCode string) (bool, error) {
	return s.db.NewSelect().
		Model((*translationRow)(nil)).
		Where("t.kind = ?", kind).
		Where("t.slug = ?", slug).
		Where("t.language_code = ?", languageCode).
		Exists(ctx)
}

func (s *Store) CountChildren(ctx context.Context, id string) (int, error) {
	return s.db.NewSelect().
		Model((*entityRow)(nil)).
		Where("e.parent_id = ?", id).
		Count(ctx)
}

// withTranslations loads the translations of rows and keeps the row order.
func (s *Store) withTranslations(ctx context.Context, rows []entityRow) ([]*dto.EntityRecord, error) {
	ids := make([]string, len(rows))
	for i, r := range rows {
		ids[i] = r.EntityID
	}

	var trs []translationRow
	err := s.db.NewSelect().
		Model(&trs).
		Where("t.entity_id IN (?)", bun.In(ids)).
		Order("t.created_at ASC", "t.language_code ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("load translations: %w", err)
	}

	byEntity := make(map[string][]dto.TranslationRecord, len(rows))
	for _, t := range trs {
		byEntity[t.EntityID] = append(byEntity[t.EntityID], dto.TranslationRecord{
			LanguageCode: t.LanguageCode,
			Name:         t.Name,
			Slug:         t.Slug,
			Description:  t.Description,
			CreatedAt:    t.CreatedAt.UTC(),
		})
	}

	out := make([]*dto.EntityRecord, 0, len(rows))
	for _, r := range rows {
		out = append(out, toRecord(r, byEntity[r.EntityID]))
	}
	return out, nil
}

func toRecord(r entityRow, ts []dto.TranslationRecord) *dto.EntityRecord {
	rec := &dto.EntityRecord{
		ID:           r.EntityID,
		Kind:         r.Kind,
		CreatedAt:    r.CreatedAt.UTC(),
		UpdatedAt:    r.UpdatedAt.UTC(),
		Translations: ts,
	}
	if rec.Translations == nil {
		rec.Translations = []dto.TranslationRecord{}
	}
	if r.ParentID != nil {
		rec.ParentID = *r.ParentID
	}
	if r.PriceNumerator != nil && r.PriceDenominator != nil {
		rec.Price = &dto.Price{Numerator: *r.PriceNumerator, Denominator: *r.PriceDenominator}
	}
	return rec
}
