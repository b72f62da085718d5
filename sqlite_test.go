package dataprep

import (
	"bytes"
	"context"
	"database/sql"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createStudentDB creates a SQLite database with students, fees and an empty table
func createStudentDB(t *testing.T) string {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "students.db")
	db, err := sql.Open(sqliteDriverName, dbPath)
	require.NoError(t, err)
	defer db.Close()

	for _, stmt := range []string{
		`CREATE TABLE students (id INTEGER, name TEXT, gpa REAL)`,
		`INSERT INTO students VALUES (1, 'alice', 3.5), (2, NULL, 3.9), (3, 'carol', NULL)`,
		`CREATE TABLE fees (student_id INTEGER, amount NUMERIC, region TEXT)`,
		`INSERT INTO fees VALUES (1, 1820, 'scot'), (2, 9250.5, 'rUK')`,
		`CREATE TABLE empty_tbl (n INTEGER, ratio DOUBLE, note TEXT)`,
	} {
		_, err := db.Exec(stmt)
		require.NoError(t, err, stmt)
	}
	return dbPath
}

func TestFetchSQLiteTables(t *testing.T) {
	t.Parallel()

	names, err := FetchSQLiteTables(context.Background(), createStudentDB(t))
	require.NoError(t, err)
	assert.Equal(t, []string{"students", "fees", "empty_tbl"}, names)
}

func TestReadAllSQLite(t *testing.T) {
	t.Parallel()

	coll, err := ReadAllSQLite(context.Background(), createStudentDB(t))
	require.NoError(t, err)
	require.Equal(t, []string{"students", "fees", "empty_tbl"}, coll.Keys())

	students, _ := coll.Get("students")
	assert.Equal(t, "students", students.Name())
	assert.Equal(t, []string{"id", "name", "gpa"}, []string(students.Header()))
	assert.Equal(t, 3, students.NumRows())
	assert.Equal(t, DTypeInt64, students.Column(0).DType())
	assert.Equal(t, DTypeString, students.Column(1).DType())
	assert.Equal(t, DTypeFloat64, students.Column(2).DType())
	assert.True(t, students.Column(1).IsNull(1))
	assert.True(t, students.Column(2).IsNull(2))

	fees, _ := coll.Get("fees")
	amount := fees.Column(1)
	assert.Equal(t, DTypeFloat64, amount.DType(), "integer and real values mix to float")
	assert.Equal(t, []float64{1820, 9250.5}, amount.Floats())

	empty, _ := coll.Get("empty_tbl")
	assert.Equal(t, 0, empty.NumRows())
	assert.Equal(t, DTypeInt64, empty.Column(0).DType())
	assert.Equal(t, DTypeFloat64, empty.Column(1).DType())
	assert.Equal(t, DTypeString, empty.Column(2).DType())
}

func TestReadAllSQLite_QuotedTableName(t *testing.T) {
	t.Parallel()

	dbPath := filepath.Join(t.TempDir(), "quoted.db")
	db, err := sql.Open(sqliteDriverName, dbPath)
	require.NoError(t, err)
	_, err = db.Exec(`CREATE TABLE "fee ""bands""" (band TEXT)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO "fee ""bands""" VALUES ('A')`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	coll, err := ReadAllSQLite(context.Background(), dbPath)
	require.NoError(t, err)

	bands, ok := coll.Get(`fee "bands"`)
	require.True(t, ok)
	assert.Equal(t, []string{"A"}, bands.Column(0).Strings())
}

func TestReadAllSQLite_Errors(t *testing.T) {
	t.Parallel()

	t.Run("Missing database is not created", func(t *testing.T) {
		t.Parallel()

		dbPath := filepath.Join(t.TempDir(), "missing.db")
		_, err := ReadAllSQLite(context.Background(), dbPath)
		assert.ErrorIs(t, err, fs.ErrNotExist)
		assert.NoFileExists(t, dbPath)
	})

	t.Run("Directory instead of database", func(t *testing.T) {
		t.Parallel()

		_, err := FetchSQLiteTables(context.Background(), t.TempDir())
		assert.ErrorIs(t, err, ErrInvalidData)
	})

	t.Run("Not a database file", func(t *testing.T) {
		t.Parallel()

		path := writeTestFile(t, t.TempDir(), "notes.db", bytes.Repeat([]byte("not a database "), 64))
		_, err := ReadAllSQLite(context.Background(), path)
		assert.Error(t, err)
	})
}

func TestPrintTableNames(t *testing.T) {
	t.Parallel()

	names, err := FetchSQLiteTables(context.Background(), createStudentDB(t))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, PrintTableNames(&buf, names))

	out := buf.String()
	assert.Contains(t, out, "Table names:")
	assert.Contains(t, out, "- students\n")
	assert.Contains(t, out, "- fees\n")
	assert.Contains(t, out, "- empty_tbl\n")
}

func TestWriteSQLite(t *testing.T) {
	t.Parallel()

	t.Run("Round trip", func(t *testing.T) {
		t.Parallel()

		dbPath := filepath.Join(t.TempDir(), "out.db")
		require.NoError(t, WriteSQLite(context.Background(), newScoresNamespace(t), dbPath))

		coll, err := ReadAllSQLite(context.Background(), dbPath)
		require.NoError(t, err)
		require.Equal(t, []string{"scores"}, coll.Keys(), "only published tables are written")

		got, _ := coll.Get("scores")
		assert.True(t, newScoresTable(t).EqualValues(got))
	})

	t.Run("Existing table fails the whole batch", func(t *testing.T) {
		t.Parallel()

		dbPath := filepath.Join(t.TempDir(), "out.db")
		ns := NewNamespace()
		ns.Set("df_a", newScoresTable(t))
		require.NoError(t, WriteSQLite(context.Background(), ns, dbPath))

		ns.Set("df_0first", newScoresTable(t))
		require.Error(t, WriteSQLite(context.Background(), ns, dbPath))

		names, err := FetchSQLiteTables(context.Background(), dbPath)
		require.NoError(t, err)
		assert.Equal(t, []string{"a"}, names, "the failed transaction is rolled back")
	})

	t.Run("Nil namespace", func(t *testing.T) {
		t.Parallel()

		dbPath := filepath.Join(t.TempDir(), "out.db")
		assert.ErrorIs(t, WriteSQLite(context.Background(), nil, dbPath), ErrNilNamespace)
		_, err := os.Stat(dbPath)
		assert.ErrorIs(t, err, fs.ErrNotExist)
	})
}

func TestSQLiteColumn(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		declared string
		values   []any
		want     DType
	}{
		{name: "Integers", declared: "INTEGER", values: []any{int64(1), nil, int64(3)}, want: DTypeInt64},
		{name: "Integers and reals", declared: "NUMERIC", values: []any{int64(1), 2.5}, want: DTypeFloat64},
		{name: "Text wins", declared: "INTEGER", values: []any{int64(1), "two"}, want: DTypeString},
		{name: "Blob is text", declared: "BLOB", values: []any{[]byte("raw")}, want: DTypeString},
		{name: "No values uses declared integer", declared: "BIGINT", values: []any{nil}, want: DTypeInt64},
		{name: "No values uses declared float", declared: "FLOAT", values: nil, want: DTypeFloat64},
		{name: "No values uses declared text", declared: "VARCHAR(10)", values: nil, want: DTypeString},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := sqliteColumn("c", tt.declared, tt.values)
			assert.Equal(t, tt.want, c.DType())
			assert.Equal(t, len(tt.values), c.Len())
		})
	}
}
