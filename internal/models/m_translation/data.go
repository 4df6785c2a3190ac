package m_translation

import (
	"time"

	"cloud.google.com/go/spanner"
)

// BuildInsertMap prepares the columns of a translation row. An empty
// description is stored as NULL.
func BuildInsertMap(entityID, languageCode, kind, name, slug, description string, createdAt time.Time) map[string]interface{} {
	m := map[string]interface{}{
		ColEntityID:     entityID,
		ColLanguageCode: languageCode,
		ColKind:         kind,
		ColName:         name,
		ColSlug:         slug,
		ColCreatedAt:    createdAt,
	}
	if description != "" {
		m[ColDescription] = description
	} else {
		m[ColDescription] = nil
	}
	return m
}

// InsertMutation builds a spanner.Insert mutation. Insert (not
// InsertOrUpdate) lets the primary key reject a second translation for the
// same language.
func InsertMutation(values map[string]interface{}) *spanner.Mutation {
	cols := []string{ColEntityID, ColLanguageCode, ColKind, ColName, ColSlug, ColDescription, ColCreatedAt}
	vals := make([]interface{}, len(cols))
	for i, c := range cols {
		vals[i] = values[c]
	}
	return spanner.Insert(TableName, cols, vals)
}
