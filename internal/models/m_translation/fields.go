package m_translation

// Field constants for the catalog_translations table, interleaved in
// catalog_entities.
const (
	TableName = "catalog_translations"

	// SlugIndex enforces (kind, slug, language_code) uniqueness.
	SlugIndex = "translations_by_slug"

	ColEntityID     = "entity_id"
	ColLanguageCode = "language_code"
	ColKind         = "kind"
	ColName         = "name"
	ColSlug         = "slug"
	ColDescription  = "description"
	ColCreatedAt    = "created_at"
)
