package spannerstore

import (
	"context"
	"fmt"
	"strings"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"

	"github.com/murkotick/catalog-service/internal/app/catalog/contracts"
	"github.com/murkotick/catalog-service/internal/app/catalog/dto"
	"github.com/murkotick/catalog-service/internal/models/m_entity"
	"github.com/murkotick/catalog-service/internal/pkg/langs"
)

const entityColumns = `e.entity_id, e.kind, e.parent_id, e.price_numerator, e.price_denominator, e.created_at, e.updated_at`

// nameOrder sorts by the name a client sees in the requested language:
// exact match, then base language, then the first translation.
const nameOrder = `LOWER(COALESCE(
	(SELECT t1.name FROM catalog_translations AS t1
	  WHERE t1.entity_id = e.entity_id AND t1.language_code = @lang),
	(SELECT t2.name FROM catalog_translations AS t2
	  WHERE t2.entity_id = e.entity_id AND (t2.language_code = @base OR STARTS_WITH(t2.language_code, @basePrefix))
	  ORDER BY t2.created_at, t2.language_code LIMIT 1),
	(SELECT t3.name FROM catalog_translations AS t3
	  WHERE t3.entity_id = e.entity_id
	  ORDER BY t3.created_at, t3.language_code LIMIT 1)
)) ASC, e.entity_id ASC`

// spannerFold mirrors textfold.Lower in SQL: LOWER is Unicode-aware, and
// the dotted and dotless i are merged the same way.
func spannerFold(expr string) string {
	return `REPLACE(REPLACE(NORMALIZE(LOWER(` + expr + `), NFC), 'ı', 'i'), 'i̇', 'i')`
}

func (s *Store) GetEntity(ctx context.Context, kind, id string) (*dto.EntityRecord, error) {
	tx := s.client.ReadOnlyTransaction()
	defer tx.Close()

	row, err := tx.ReadRow(ctx, m_entity.TableName, spanner.Key{id}, []string{
		m_entity.ColEntityID, m_entity.ColKind, m_entity.ColParentID,
		m_entity.ColPriceNumerator, m_entity.ColPriceDenominator,
		m_entity.ColCreatedAt, m_entity.ColUpdatedAt,
	})
	if spanner.ErrCode(err) == codes.NotFound {
		return nil, contracts.ErrEntityNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get %s %s: %w", kind, id, err)
	}

	rec, err := scanEntity(row)
	if err != nil {
		return nil, err
	}
	if rec.Kind != kind {
		return nil, contracts.ErrEntityNotFound
	}
	if err := loadTranslations(ctx, tx, []*dto.EntityRecord{rec}); err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *Store) ListEntities(ctx context.Context, c dto.ListCriteria) ([]*dto.EntityRecord, int, error) {
	where := []string{"e.kind = @kind"}
	params := map[string]interface{}{"kind": c.Kind}

	if c.SearchTerm != "" {
		where = append(where, `EXISTS (SELECT 1 FROM catalog_translations AS ts
			WHERE ts.entity_id = e.entity_id AND STRPOS(`+spannerFold("ts.name")+`, @search) > 0)`)
		params["search"] = c.SearchTerm
	}
	if c.ParentID != "" {
		where = append(where, "e.parent_id = @parent")
		params["parent"] = c.ParentID
	}
	// Prices are fractions; compare by cross multiplication to stay exact.
	if c.MinPrice != nil {
		where = append(where, "e.price_numerator * @minDen >= @minNum * e.price_denominator")
		params["minNum"], params["minDen"] = c.MinPrice.Numerator, c.MinPrice.Denominator
	}
	if c.MaxPrice != nil {
		where = append(where, "e.price_numerator * @maxDen <= @maxNum * e.price_denominator")
		params["maxNum"], params["maxDen"] = c.MaxPrice.Numerator, c.MaxPrice.Denominator
	}
	filter := " FROM catalog_entities AS e WHERE " + strings.Join(where, " AND ")

	var order string
	switch c.Sort {
	case dto.SortByPriceAsc:
		order = "SAFE_DIVIDE(e.price_numerator, e.price_denominator) ASC, e.entity_id ASC"
	case dto.SortByPriceDesc:
		order = "SAFE_DIVIDE(e.price_numerator, e.price_denominator) DESC, e.entity_id ASC"
	default:
		order = nameOrder
		base := langs.Base(c.LanguageCode)
		params["lang"], params["base"], params["basePrefix"] = c.LanguageCode, base, base+"-"
	}

	// Count and page read the same snapshot.
	tx := s.client.ReadOnlyTransaction()
	defer tx.Close()

	total, err := count(ctx, tx, spanner.Statement{SQL: "SELECT COUNT(*)" + filter, Params: params})
	if err != nil {
		return nil, 0, fmt.Errorf("count %s: %w", c.Kind, err)
	}

	pageParams := make(map[string]interface{}, len(params)+2)
	for k, v := range params {
		pageParams[k] = v
	}
	pageParams["limit"], pageParams["offset"] = int64(c.Limit), int64(c.Offset)

	stmt := spanner.Statement{
		SQL:    "SELECT " + entityColumns + filter + " ORDER BY " + order + " LIMIT @limit OFFSET @offset",
		Params: pageParams,
	}
	iter := tx.Query(ctx, stmt)
	defer iter.Stop()

	out := make([]*dto.EntityRecord, 0, c.Limit)
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, 0, fmt.Errorf("list %s: %w", c.Kind, err)
		}
		rec, err := scanEntity(row)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, rec)
	}

	if err := loadTranslations(ctx, tx, out); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (s *Store) EntityExists(ctx context.Context, kind, id string) (bool, error) {
	n, err := count(ctx, s.client.Single(), spanner.Statement{
		SQL:    "SELECT COUNT(*) FROM catalog_entities WHERE entity_id = @id AND kind = @kind",
		Params: map[string]interface{}{"id": id, "kind": kind},
	})
	return n > 0, err
}

func (s *Store) SlugExists(ctx context.Context, kind, slug, languageCode string) (bool, error) {
	n, err := count(ctx, s.client.Single(), spanner.Statement{
		SQL: `SELECT COUNT(*) FROM catalog_translations@{FORCE_INDEX=translations_by_slug}
			WHERE kind = @kind AND slug = @slug AND language_code = @lang`,
		Params: map[string]interface{}{"kind": kind, "slug": slug, "lang": languageCode},
	})
	return n > 0, err
}

func (s *Store) CountChildren(ctx context.Context, id string) (int, error) {
	return count(ctx, s.client.Single(), spanner.Statement{
		SQL:    "SELECT COUNT(*) FROM catalog_entities WHERE parent_id = @id",
		Params: map[string]interface{}{"id": id},
	})
}

type querier interface {
	Query(ctx context.Context, stmt spanner.Statement) *spanner.RowIterator
}

func count(ctx context.Context, q querier, stmt spanner.Statement) (int, error) {
	iter := q.Query(ctx, stmt)
	defer iter.Stop()

	row, err := iter.Next()
	if err != nil {
		return 0, err
	}
	var n int64
	if err := row.Columns(&n); err != nil {
		return 0, err
	}
	return int(n), nil
}

func scanEntity(row *spanner.Row) (*dto.EntityRecord, error) {
	var (
		id, kind           string
		parentID           spanner.NullString
		num, den           spanner.NullInt64
		createdAt, updated spanner.NullTime
	)
	if err := row.Columns(&id, &kind, &parentID, &num, &den, &createdAt, &updated); err != nil {
		return nil, err
	}
	rec := &dto.EntityRecord{
		ID:           id,
		Kind:         kind,
		CreatedAt:    createdAt.Time.UTC(),
		UpdatedAt:    updated.Time.UTC(),
		Translations: []dto.TranslationRecord{},
	}
	if parentID.Valid {
		rec.ParentID = parentID.StringVal
	}
	if num.Valid && den.Valid {
		rec.Price = &dto.Price{Numerator: num.Int64, Denominator: den.Int64}
	}
	return rec, nil
}

func loadTranslations(ctx context.Context, q querier, recs []*dto.EntityRecord) error {
	if len(recs) == 0 {
		return nil
	}
	ids := make([]string, len(recs))
	byID := make(map[string]*dto.EntityRecord, len(recs))
	for i, r := range recs {
		ids[i] = r.ID
		byID[r.ID] = r
	}

	iter := q.Query(ctx, spanner.Statement{
		SQL: `SELECT entity_id, language_code, name, slug, description, created_at
			FROM catalog_translations
			WHERE entity_id IN UNNEST(@ids)
			ORDER BY entity_id, created_at, language_code`,
		Params: map[string]interface{}{"ids": ids},
	})
	defer iter.Stop()

	for {
		row, err := iter.Next()
		if err == iterator.Done {
			return nil
		}
		if err != nil {
			return fmt.Errorf("load translations: %w", err)
		}
		var (
			entityID, lang, name, slug string
			description               spanner.NullString
			createdAt                 spanner.NullTime
		)
		if err := row.Columns(&entityID, &lang, &name, &slug, &description, &createdAt); err != nil {
			return err
		}
		r := byID[entityID]
		r.Translations = append(r.Translations, dto.TranslationRecord{
			LanguageCode: lang,
			Name:         name,
			Slug:         slug,
			Description:  description.StringVal,
			CreatedAt:    createdAt.Time.UTC(),
		})
	}
}
