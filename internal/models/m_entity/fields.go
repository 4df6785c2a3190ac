package m_entity

// Field constants for the catalog_entities table.
const (
	TableName = "catalog_entities"

	ColEntityID         = "entity_id"
	ColKind             = "kind"
	ColParentID         = "parent_id"
	ColPriceNumerator   = "price_numerator"
	ColPriceDenominator = "price_denominator"
	ColCreatedAt        = "created_at"
	ColUpdatedAt        = "updated_at"
)
