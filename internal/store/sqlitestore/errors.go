package sqlitestore

import (
	"errors"
	"strings"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/murkotick/catalog-service/internal/app/catalog/contracts"
)

// constraintError returns the message of a constraint violation. Extended
// result codes are masked down to SQLITE_CONSTRAINT; the message names the
// columns involved.
func constraintError(err error) (string, bool) {
	var se *sqlite.Error
	if !errors.As(err, &se) {
		return "", false
	}
	if se.Code()&0xff != sqlite3.SQLITE_CONSTRAINT {
		return "", false
	}
	return se.Error(), true
}

// mapInsertError translates constraint failures raised while saving an
// entity and its translations.
func mapInsertError(err error) error {
	msg, ok := constraintError(err)
	if !ok {
		return err
	}
	switch {
	case strings.Contains(msg, "FOREIGN KEY"):
		return contracts.ErrReferenceMissing
	case strings.Contains(msg, "catalog_translations.slug"):
		return contracts.ErrSlugTaken
	case strings.Contains(msg, "catalog_translations.entity_id"):
		return contracts.ErrTranslationExists
	}
	return err
}

// mapDeleteError translates a foreign key failure on delete: another entity
// still names the row as its parent.
func mapDeleteError(err error) error {
	if msg, ok := constraintError(err); ok && strings.Contains(msg, "FOREIGN KEY") {
		return contracts.ErrEntityReferenced
	}
	return err
}
