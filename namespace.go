package dataprep

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
)

// ReservedPrefix marks namespace entries that the batch writer exports.
const ReservedPrefix = "df_"

// Namespace is a caller-owned mapping from published name to table.
//
// Stages receive the namespace explicitly: Unpack adds entries, the cleaning
// helpers operate on tables read from it and the batch writer exports every
// entry whose name carries ReservedPrefix. A Namespace is not safe for
// concurrent mutation.
type Namespace struct {
	tables map[string]*Table
}

// NewNamespace creates an empty namespace.
func NewNamespace() *Namespace {
	return &Namespace{
		tables: make(map[string]*Table),
	}
}

// Set stores t under name, replacing any previous entry.
func (ns *Namespace) Set(name string, t *Table) {
	ns.tables[name] = t
}

// Get returns the table stored under name.
func (ns *Namespace) Get(name string) (*Table, bool) {
	t, ok := ns.tables[name]
	return t, ok
}

// Delete removes name from the namespace.
func (ns *Namespace) Delete(name string) {
	delete(ns.tables, name)
}

// Len returns the number of entries.
func (ns *Namespace) Len() int {
	return len(ns.tables)
}

// Names returns every entry name in sorted order.
func (ns *Namespace) Names() []string {
	names := make([]string, 0, len(ns.tables))
	for name := range ns.tables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Published returns the sorted names that carry ReservedPrefix.
func (ns *Namespace) Published() []string {
	var names []string
	for _, name := range ns.Names() {
		if strings.HasPrefix(name, ReservedPrefix) {
			names = append(names, name)
		}
	}
	return names
}

// Apply calls fn for every published table in name order.
func (ns *Namespace) Apply(fn func(t *Table)) {
	for _, name := range ns.Published() {
		fn(ns.tables[name])
	}
}

// PublishedName returns the namespace name for a collection key.
func PublishedName(key string) string {
	return ReservedPrefix + key
}

// Unpack publishes every table of coll into ns as ReservedPrefix + key, in collection order.
//
// With messaging enabled, Unpack waits for the configured delay and then logs
// "- Loaded <name> (<count>) records." at info level for each table. A cancelled
// context aborts the wait and returns ctx.Err(); tables published before the
// cancellation stay in ns.
func Unpack(ctx context.Context, coll *Collection, ns *Namespace, opts ...UnpackOptions) error {
	if ns == nil {
		return ErrNilNamespace
	}
	options := NewUnpackOptions()
	if len(opts) > 0 {
		options = opts[0]
	}
	if coll == nil {
		return nil
	}

	logger := options.logger()
	for key, t := range coll.All() {
		name := PublishedName(key)
		ns.Set(name, t)
		if !options.Messaging {
			continue
		}
		if err := sleepContext(ctx, options.Delay); err != nil {
			return err
		}
		logger.InfoContext(ctx, fmt.Sprintf("- Loaded %s (%s) records.", name, humanize.Comma(int64(t.NumRows()))))
	}
	return nil
}

// sleepContext waits for d or until ctx is done
func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// PrintPublished writes every published name to w, one per line.
func PrintPublished(w io.Writer, ns *Namespace) error {
	if ns == nil {
		return ErrNilNamespace
	}
	return printList(w, "Published tables:", ns.Published())
}

// printList writes a heading and one "- <item>" line per item
func printList(w io.Writer, heading string, items []string) error {
	if _, err := color.New(color.FgCyan, color.Bold).Fprintln(w, heading); err != nil {
		return err
	}
	for _, item := range items {
		if _, err := fmt.Fprintf(w, "- %s\n", item); err != nil {
			return err
		}
	}
	return nil
}
