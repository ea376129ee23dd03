package sqlite

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	msqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/sakif/venue-booking/internal/repository/sqlstore"
)

var _ sqlstore.Dialect = Dialect{}

// foldFunc is a Unicode-aware replacement for SQLite's LOWER, which only
// folds ASCII letters.
const foldFunc = "unicode_lower"

func init() {
	if err := msqlite.RegisterDeterministicScalarFunction(foldFunc, 1, unicodeLower); err != nil {
		panic(fmt.Sprintf("sqlite: registering %s: %v", foldFunc, err))
	}
}

func unicodeLower(_ *msqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	switch v := args[0].(type) {
	case nil:
		return nil, nil
	case string:
		return strings.ToLower(v), nil
	case []byte:
		return strings.ToLower(string(v)), nil
	default:
		return nil, fmt.Errorf("%s: unsupported argument type %T", foldFunc, v)
	}
}

// Dialect is the SQLite flavour of sqlstore.Dialect.
type Dialect struct{}

func (Dialect) Name() string { return "sqlite" }

// Rebind is the identity: SQLite understands '?' natively.
func (Dialect) Rebind(query string) string { return query }

func (Dialect) GenresArg(genres []string) any { return jsonStrings{p: &genres} }

func (Dialect) GenresDest(dst *[]string) any { return jsonStrings{p: dst} }

func (Dialect) Fold(expr string) string { return foldFunc + "(" + expr + ")" }

// IsForeignKeyViolation checks the extended result code the driver reports.
func (Dialect) IsForeignKeyViolation(err error) bool {
	var sqlErr *msqlite.Error
	if !errors.As(err, &sqlErr) {
		return false
	}
	code := sqlErr.Code()
	if code == sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY {
		return true
	}
	// Primary code only, when extended codes are not reported.
	return code&0xff == sqlite3.SQLITE_CONSTRAINT &&
		strings.Contains(sqlErr.Error(), "FOREIGN KEY")
}

// jsonStrings stores a []string as a JSON array in a TEXT column.
type jsonStrings struct {
	p *[]string
}

func (j jsonStrings) Value() (driver.Value, error) {
	if j.p == nil || *j.p == nil {
		return "[]", nil
	}
	b, err := json.Marshal(*j.p)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (j jsonStrings) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*j.p = []string{}
		return nil
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("sqlite: cannot scan %T into genres", src)
	}
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return fmt.Errorf("sqlite: decoding genres: %w", err)
	}
	if out == nil {
		out = []string{}
	}
	*j.p = out
	return nil
}
