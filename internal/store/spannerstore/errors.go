package spannerstore

import (
	"strings"

	"cloud.google.com/go/spanner"
	"google.golang.org/grpc/codes"

	"github.com/murkotick/catalog-service/internal/app/catalog/contracts"
	"github.com/murkotick/catalog-service/internal/models/m_translation"
)

// mapWriteError translates commit failures of a save.
func mapWriteError(err error) error {
	if err == nil {
		return nil
	}
	switch spanner.ErrCode(err) {
	case codes.AlreadyExists:
		// Unique index violations name the index; key collisions name the table.
		if strings.Contains(spanner.ErrDesc(err), m_translation.SlugIndex) {
			return contracts.ErrSlugTaken
		}
		if strings.Contains(spanner.ErrDesc(err), m_translation.TableName) {
			return contracts.ErrTranslationExists
		}
	case codes.NotFound:
		// Interleaved child without parent, or update of a removed row.
		return contracts.ErrReferenceMissing
	case codes.FailedPrecondition:
		if isForeignKeyViolation(err) {
			return contracts.ErrReferenceMissing
		}
	}
	return err
}

func mapDeleteError(err error) error {
	if err == nil {
		return nil
	}
	if spanner.ErrCode(err) == codes.FailedPrecondition && isForeignKeyViolation(err) {
		return contracts.ErrEntityReferenced
	}
	return err
}

func isForeignKeyViolation(err error) bool {
	return strings.Contains(strings.ToLower(spanner.ErrDesc(err)), "foreign key")
}
