package list_entities

import "github.com/murkotick/catalog-service/internal/app/catalog/queries"

// Query is the list request. It aliases the shared parameter type so
// transport code can build it without importing two packages.
type Query = queries.ListParams
