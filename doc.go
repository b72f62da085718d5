// Package dataprep provides helpers for preparing tabular data: normalizing
// column labels and text values, narrowing numeric column widths, loading every
// data file of a directory or every table of a SQLite database in one call, and
// writing a batch of prepared tables back to disk.
//
// # Features
//
//   - Read JSON, CSV, Excel (XLSX), Feather, Parquet and pickle snapshot files
//   - Automatic handling of compressed files (gzip, bzip2, xz, zstandard, lz4)
//   - Extract every table of a SQLite database
//   - Publish loaded tables into a Namespace under the "df_" prefix
//   - Write every published table with a common file prefix
//
// # Basic Usage
//
//	ctx := context.Background()
//	coll, err := dataprep.ReadAllCSV(ctx, "./raw")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	ns := dataprep.NewNamespace()
//	if err := dataprep.Unpack(ctx, coll, ns); err != nil {
//	    log.Fatal(err)
//	}
//
//	ns.Apply(func(t *dataprep.Table) {
//	    dataprep.HeadersToSnakeCase(t)
//	    dataprep.ValuesStripWhitespace(t)
//	    dataprep.OptimizeNumericTypes(t)
//	})
//
//	if err := dataprep.WriteParquet(ns, "./clean"); err != nil {
//	    log.Fatal(err)
//	}
//
// # Table Naming
//
// Collection keys are derived from file names:
//   - "users.csv" becomes key "users"
//   - "data.csv.gz" becomes key "data"
//   - "/path/to/logs.parquet" becomes key "logs"
//
// Unpack publishes key "users" as "df_users". The batch writer only writes names
// carrying the "df_" prefix, so "df_users" written with the default prefix becomes
// "processed_users.csv".
//
// # Missing Values
//
// Every column carries a validity channel. Empty CSV and spreadsheet cells, JSON
// nulls and Arrow nulls are loaded as missing values and written back as empty
// cells, nulls or Arrow nulls. Cleaning and type optimization never change which
// cells are missing.
package dataprep
