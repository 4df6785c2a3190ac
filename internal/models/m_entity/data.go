package m_entity

import (
	"sort"
	"time"

	"cloud.google.com/go/spanner"
)

// BuildInsertMap prepares the columns of a new entity row. Nil pointers are
// written as NULL.
func BuildInsertMap(entityID, kind string, parentID *string, priceNum, priceDen *int64, createdAt, updatedAt time.Time) map[string]interface{} {
	m := map[string]interface{}{
		ColEntityID:  entityID,
		ColKind:      kind,
		ColCreatedAt: createdAt,
		ColUpdatedAt: updatedAt,
	}

	if parentID != nil {
		m[ColParentID] = *parentID
	} else {
		m[ColParentID] = nil
	}

	if priceNum != nil && priceDen != nil {
		m[ColPriceNumerator] = *priceNum
		m[ColPriceDenominator] = *priceDen
	} else {
		m[ColPriceNumerator] = nil
		m[ColPriceDenominator] = nil
	}

	return m
}

// InsertMutation builds a spanner.Insert mutation from a values map.
func InsertMutation(values map[string]interface{}) *spanner.Mutation {
	cols, vals := columns(values)
	return spanner.Insert(TableName, cols, vals)
}

// UpdateMutation builds a spanner.Update mutation. values must not contain
// the primary key; it is passed separately and written first.
func UpdateMutation(entityID string, values map[string]interface{}) *spanner.Mutation {
	cols, vals := columns(values)
	return spanner.Update(TableName, append([]string{ColEntityID}, cols...), append([]interface{}{entityID}, vals...))
}

// DeleteMutation removes an entity row. Translations are interleaved with
// ON DELETE CASCADE and go with it.
func DeleteMutation(entityID string) *spanner.Mutation {
	return spanner.Delete(TableName, spanner.Key{entityID})
}

// columns returns the map in column-name order so mutations are stable.
func columns(values map[string]interface{}) ([]string, []interface{}) {
	cols := make([]string, 0, len(values))
	for col := range values {
		cols = append(cols, col)
	}
	sort.Strings(cols)

	vals := make([]interface{}, 0, len(cols))
	for _, col := range cols {
		vals = append(vals, values[col])
	}
	return cols, vals
}
