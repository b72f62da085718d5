package dataprep

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// CaseDirection selects the letter case produced by HeadersToSnakeCase.
type CaseDirection int

const (
	// LowerCase folds labels to lower case
	LowerCase CaseDirection = iota
	// UpperCase folds labels to upper case
	UpperCase
)

// caser returns a language-neutral caser for the direction
func (d CaseDirection) caser() cases.Caser {
	if d == UpperCase {
		return cases.Upper(language.Und)
	}
	return cases.Lower(language.Und)
}

// HeadersToSnakeCase case-folds every column label and replaces each space with '_'.
// Labels are lower-cased unless UpperCase is given. The table is modified in place and returned.
//
// Distinct labels can fold to the same name ("A B" and "a_b" both become "a_b").
// Such a table still writes, but CSV, JSON and XLSX files written from it are
// rejected on read with ErrDuplicateColumnName; check Header().Duplicate() when
// labels come from untrusted input.
func HeadersToSnakeCase(t *Table, direction ...CaseDirection) *Table {
	if t == nil {
		return nil
	}
	d := LowerCase
	if len(direction) > 0 {
		d = direction[0]
	}
	caser := d.caser()
	for _, c := range t.Columns() {
		c.SetName(strings.ReplaceAll(caser.String(c.Name()), " ", "_"))
	}
	return t
}

// ValuesToLowercase lower-cases every text cell. Null cells and non-text columns are untouched.
func ValuesToLowercase(t *Table) *Table {
	return mapTextCells(t, cases.Lower(language.Und).String)
}

// ValuesToUppercase upper-cases every text cell. Null cells and non-text columns are untouched.
func ValuesToUppercase(t *Table) *Table {
	return mapTextCells(t, cases.Upper(language.Und).String)
}

// ValuesStripWhitespace removes leading and trailing whitespace from every text cell.
// Null cells and non-text columns are untouched.
func ValuesStripWhitespace(t *Table) *Table {
	return mapTextCells(t, strings.TrimSpace)
}

// mapTextCells rewrites every non-null cell of every text column with fn
func mapTextCells(t *Table, fn func(string) string) *Table {
	if t == nil {
		return nil
	}
	for _, c := range t.Columns() {
		c.MapStrings(fn)
	}
	return t
}
