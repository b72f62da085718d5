package dataprep

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/nao1215/dataprep/domain/model"
	_ "modernc.org/sqlite"
)

// sqliteDriverName is the database/sql driver registered by modernc.org/sqlite
const sqliteDriverName = "sqlite"

// sqliteCatalogQuery lists user tables in catalog order
const sqliteCatalogQuery = "SELECT name FROM sqlite_master WHERE type='table' AND name NOT LIKE 'sqlite_%'"

// ReadAllSQLite loads every user table of the SQLite database at dbPath.
//
// Table names come from the database catalog and each table is stored in the
// returned Collection under its own name, in catalog order. Column dtypes follow
// the stored values: all integers become Int64, a mix of integers and reals
// becomes Float64 and anything else becomes text. Columns without values use the
// declared column type. The database must exist; it is never created.
func ReadAllSQLite(ctx context.Context, dbPath string, opts ...ReadOptions) (*Collection, error) {
	options := readOptions(opts)

	db, err := openSQLite(dbPath)
	if err != nil {
		return nil, NewErrorContext("read sqlite", dbPath).Error(err)
	}
	defer db.Close()

	names, err := tableNames(ctx, db)
	if err != nil {
		return nil, NewErrorContext("read sqlite", dbPath).Error(err)
	}

	coll := NewCollection()
	for _, name := range names {
		t, err := readSQLiteTable(ctx, db, name)
		if err != nil {
			return nil, NewErrorContext("read sqlite", dbPath).WithTable(name).Error(err)
		}
		options.logger().DebugContext(ctx, "loaded table",
			"database", dbPath,
			"table", name,
			"rows", humanize.Comma(int64(t.NumRows())),
			"columns", t.NumColumns())
		coll.Add(name, t)
	}
	return coll, nil
}

// FetchSQLiteTables returns the user table names of the SQLite database at dbPath in catalog order.
func FetchSQLiteTables(ctx context.Context, dbPath string) ([]string, error) {
	db, err := openSQLite(dbPath)
	if err != nil {
		return nil, NewErrorContext("fetch tables", dbPath).Error(err)
	}
	defer db.Close()

	names, err := tableNames(ctx, db)
	if err != nil {
		return nil, NewErrorContext("fetch tables", dbPath).Error(err)
	}
	return names, nil
}

// PrintTableNames writes "Table names:" followed by one "- <name>" line per table.
func PrintTableNames(w io.Writer, names []string) error {
	return printList(w, "Table names:", names)
}

// WriteSQLite stores every published table of ns in the SQLite database at dbPath,
// creating the database when it does not exist. Each table is named after its key
// without ReservedPrefix. All tables are written in one transaction; an existing
// table with the same name fails the whole call.
func WriteSQLite(ctx context.Context, ns *Namespace, dbPath string) (err error) {
	if ns == nil {
		return NewErrorContext("write sqlite", dbPath).Error(ErrNilNamespace)
	}

	db, err := sql.Open(sqliteDriverName, dbPath)
	if err != nil {
		return NewErrorContext("write sqlite", dbPath).Error(err)
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return NewErrorContext("write sqlite", dbPath).Error(err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for _, name := range ns.Published() {
		t, _ := ns.Get(name)
		tableName := strings.TrimPrefix(name, ReservedPrefix)
		if err := writeSQLiteTable(ctx, tx, tableName, t); err != nil {
			return NewErrorContext("write sqlite", dbPath).WithTable(tableName).Error(err)
		}
	}

	if err := tx.Commit(); err != nil {
		return NewErrorContext("write sqlite", dbPath).Error(err)
	}
	return nil
}

// openSQLite opens an existing database file
func openSQLite(dbPath string) (*sql.DB, error) {
	if err := newValidator().validateDatabaseFile(dbPath); err != nil {
		return nil, err
	}
	return sql.Open(sqliteDriverName, dbPath)
}

// tableNames retrieves all user-defined table names from the catalog
func tableNames(ctx context.Context, db *sql.DB) ([]string, error) {
	rows, err := db.QueryContext(ctx, sqliteCatalogQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to query table names: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan table name: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// quoteIdentifier quotes an SQLite identifier, doubling embedded quotes
func quoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// readSQLiteTable loads every row of one table
func readSQLiteTable(ctx context.Context, db *sql.DB, name string) (*Table, error) {
	rows, err := db.QueryContext(ctx, "SELECT * FROM "+quoteIdentifier(name))
	if err != nil {
		return nil, fmt.Errorf("failed to query table: %w", err)
	}
	defer rows.Close()

	columnTypes, err := rows.ColumnTypes()
	if err != nil {
		return nil, fmt.Errorf("failed to get column types: %w", err)
	}

	values := make([][]any, len(columnTypes))
	dest := make([]any, len(columnTypes))
	for rows.Next() {
		cells := make([]any, len(columnTypes))
		for i := range cells {
			dest[i] = &cells[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		for i, cell := range cells {
			values[i] = append(values[i], cell)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	columns := make([]*Column, len(columnTypes))
	for i, ct := range columnTypes {
		columns[i] = sqliteColumn(ct.Name(), ct.DatabaseTypeName(), values[i])
	}
	return model.NewTable(name, columns...)
}

// sqliteColumn builds a column from scanned values. The stored values decide the
// dtype; columns without any value fall back to the declared type.
func sqliteColumn(name, declared string, values []any) *Column {
	valid := make([]bool, len(values))
	hasValue, allInt, allNumeric := false, true, true
	for i, v := range values {
		if v == nil {
			continue
		}
		valid[i] = true
		hasValue = true
		switch v.(type) {
		case int64:
		case float64:
			allInt = false
		default:
			allInt, allNumeric = false, false
		}
	}

	dtype := model.DTypeString
	switch {
	case !hasValue:
		dtype = declaredDType(declared)
	case allInt:
		dtype = model.DTypeInt64
	case allNumeric:
		dtype = model.DTypeFloat64
	}

	switch dtype {
	case model.DTypeInt64:
		ints := make([]int64, len(values))
		for i, v := range values {
			ints[i], _ = v.(int64)
		}
		return model.NewIntColumn(name, dtype, ints, valid)
	case model.DTypeFloat64:
		floats := make([]float64, len(values))
		for i, v := range values {
			switch n := v.(type) {
			case int64:
				floats[i] = float64(n)
			case float64:
				floats[i] = n
			}
		}
		return model.NewFloatColumn(name, dtype, floats, valid)
	default:
		strs := make([]string, len(values))
		for i, v := range values {
			strs[i] = sqliteText(v)
		}
		return model.NewStringColumn(name, strs, valid)
	}
}

// declaredDType maps a declared column type to a dtype using SQLite affinity rules
func declaredDType(declared string) DType {
	upper := strings.ToUpper(declared)
	switch {
	case strings.Contains(upper, "INT"):
		return model.DTypeInt64
	case strings.Contains(upper, "REAL"), strings.Contains(upper, "FLOA"), strings.Contains(upper, "DOUB"):
		return model.DTypeFloat64
	default:
		return model.DTypeString
	}
}

// sqliteText formats a scanned value as text
func sqliteText(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case []byte:
		return string(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return model.FormatFloat(x, model.DTypeFloat64)
	case time.Time:
		return x.Format(time.RFC3339Nano)
	case bool:
		return strconv.FormatBool(x)
	default:
		return fmt.Sprint(x)
	}
}

// writeSQLiteTable creates one table and inserts every row with a prepared statement
func writeSQLiteTable(ctx context.Context, tx *sql.Tx, name string, t *Table) error {
	if t.NumColumns() == 0 {
		return fmt.Errorf("%w: table has no columns", ErrEmptyData)
	}

	columns := make([]string, 0, t.NumColumns())
	for _, c := range t.Columns() {
		columns = append(columns, quoteIdentifier(c.Name())+" "+c.DType().SQLType())
	}
	query := fmt.Sprintf("CREATE TABLE %s (%s)", quoteIdentifier(name), strings.Join(columns, ", "))
	if _, err := tx.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to create table: %w", err)
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", t.NumColumns()), ", ")
	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf("INSERT INTO %s VALUES (%s)", quoteIdentifier(name), placeholders))
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for i := range t.NumRows() {
		if _, err := stmt.ExecContext(ctx, t.Row(i)...); err != nil {
			return fmt.Errorf("failed to insert row %d: %w", i+1, err)
		}
	}
	return nil
}
