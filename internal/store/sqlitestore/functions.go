package sqlitestore

import (
	"database/sql/driver"
	"fmt"

	"modernc.org/sqlite"

	"github.com/murkotick/catalog-service/internal/pkg/textfold"
)

// foldFunc is the SQL name of textfold.Lower. SQLite's own lower() only
// folds ASCII, so searches and name sorts call this instead.
const foldFunc = "catalog_fold"

func init() {
	if err := sqlite.RegisterDeterministicScalarFunction(foldFunc, 1, fold); err != nil {
		panic(fmt.Sprintf("sqlitestore: register %s: %v", foldFunc, err))
	}
}

func fold(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	switch v := args[0].(type) {
	case nil:
		return nil, nil
	case string:
		return textfold.Lower(v), nil
	case []byte:
		return textfold.Lower(string(v)), nil
	default:
		return nil, fmt.Errorf("%s: unsupported argument %T", foldFunc, v)
	}
}
