package sqlitestore

import "github.com/murkotick/catalog-service/internal/app/catalog/contracts"

var (
	_ contracts.EntityStore  = (*Store)(nil)
	_ contracts.ReadModel    = (*Store)(nil)
	_ contracts.OutboxWriter = (*Store)(nil)
	_ contracts.OutboxAcker  = (*Store)(nil)
)
