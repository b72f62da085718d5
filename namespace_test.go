package dataprep

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestLogger returns a text logger writing to buf at debug level
func newTestLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestCollection(t *testing.T) {
	t.Parallel()

	a := newScoresTable(t)
	b := newStudentTable(t)
	replacement := newScoresTable(t)

	coll := NewCollection()
	coll.Add("b", b)
	coll.Add("a", a)
	coll.Add("b", replacement)

	assert.Equal(t, 2, coll.Len())
	assert.Equal(t, []string{"b", "a"}, coll.Keys(), "replacing keeps the position")

	got, ok := coll.Get("b")
	require.True(t, ok)
	assert.Same(t, replacement, got)

	_, ok = coll.Get("missing")
	assert.False(t, ok)

	keys := coll.Keys()
	keys[0] = "mutated"
	assert.Equal(t, []string{"b", "a"}, coll.Keys())

	var visited []string
	for key := range coll.All() {
		visited = append(visited, key)
		break
	}
	assert.Equal(t, []string{"b"}, visited)
}

func TestNamespace(t *testing.T) {
	t.Parallel()

	ns := NewNamespace()
	ns.Set("df_b", newScoresTable(t))
	ns.Set("df_a", newScoresTable(t))
	ns.Set("config", newScoresTable(t))

	assert.Equal(t, 3, ns.Len())
	assert.Equal(t, []string{"config", "df_a", "df_b"}, ns.Names())
	assert.Equal(t, []string{"df_a", "df_b"}, ns.Published())

	ns.Delete("df_b")
	_, ok := ns.Get("df_b")
	assert.False(t, ok)
	assert.Equal(t, []string{"df_a"}, ns.Published())

	var applied []string
	ns.Apply(func(t *Table) {
		applied = append(applied, t.Name())
		HeadersToSnakeCase(t, UpperCase)
	})
	assert.Equal(t, []string{"scores"}, applied)

	a, _ := ns.Get("df_a")
	assert.Equal(t, "ID", a.Column(0).Name())
	config, _ := ns.Get("config")
	assert.Equal(t, "id", config.Column(0).Name(), "unpublished tables are skipped")
}

func TestPublishedName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "df_cohort", PublishedName("cohort"))
	assert.True(t, strings.HasPrefix(PublishedName(""), ReservedPrefix))
}

func TestUnpack(t *testing.T) {
	t.Parallel()

	t.Run("Publishes every key with the reserved prefix", func(t *testing.T) {
		t.Parallel()

		coll := NewCollection()
		coll.Add("cohort", newStudentTable(t))
		coll.Add("scores", newScoresTable(t))

		ns := NewNamespace()
		require.NoError(t, Unpack(context.Background(), coll, ns))

		assert.Equal(t, []string{"df_cohort", "df_scores"}, ns.Published())
		cohort, ok := ns.Get("df_cohort")
		require.True(t, ok)
		want, _ := coll.Get("cohort")
		assert.Same(t, want, cohort)
	})

	t.Run("Messaging logs one line per table", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeTestFile(t, dir, "cohort.csv", []byte(cohortCSV))
		coll, err := ReadAllCSV(context.Background(), dir)
		require.NoError(t, err)

		var buf bytes.Buffer
		options := NewUnpackOptions().WithMessaging(true).WithLogger(newTestLogger(&buf))
		require.NoError(t, Unpack(context.Background(), coll, NewNamespace(), options))

		assert.Contains(t, buf.String(), "- Loaded df_cohort (6) records.")
		assert.Contains(t, buf.String(), "level=INFO")
	})

	t.Run("Record counts use thousands separators", func(t *testing.T) {
		t.Parallel()

		values := make([]int64, 1234)
		tbl, err := NewTable("big", NewIntColumn("n", DTypeInt64, values, nil))
		require.NoError(t, err)
		coll := NewCollection()
		coll.Add("big", tbl)

		var buf bytes.Buffer
		options := NewUnpackOptions().WithMessaging(true).WithLogger(newTestLogger(&buf))
		require.NoError(t, Unpack(context.Background(), coll, NewNamespace(), options))

		assert.Contains(t, buf.String(), "- Loaded df_big (1,234) records.")
	})

	t.Run("No messages without messaging", func(t *testing.T) {
		t.Parallel()

		coll := NewCollection()
		coll.Add("scores", newScoresTable(t))

		var buf bytes.Buffer
		options := NewUnpackOptions().WithLogger(newTestLogger(&buf))
		require.NoError(t, Unpack(context.Background(), coll, NewNamespace(), options))
		assert.Empty(t, buf.String())
	})

	t.Run("Delay is waited before each message", func(t *testing.T) {
		t.Parallel()

		coll := NewCollection()
		coll.Add("a", newScoresTable(t))
		coll.Add("b", newScoresTable(t))

		var buf bytes.Buffer
		options := NewUnpackOptions().
			WithMessaging(true).
			WithDelay(20 * time.Millisecond).
			WithLogger(newTestLogger(&buf))

		start := time.Now()
		require.NoError(t, Unpack(context.Background(), coll, NewNamespace(), options))
		assert.GreaterOrEqual(t, time.Since(start), 40*time.Millisecond)
		assert.Equal(t, 2, strings.Count(buf.String(), "- Loaded"))
	})

	t.Run("Cancelled context aborts the delay", func(t *testing.T) {
		t.Parallel()

		coll := NewCollection()
		coll.Add("a", newScoresTable(t))
		coll.Add("b", newScoresTable(t))

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		ns := NewNamespace()
		options := NewUnpackOptions().WithMessaging(true).WithDelay(time.Hour).WithLogger(newTestLogger(&bytes.Buffer{}))
		err := Unpack(ctx, coll, ns, options)
		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, []string{"df_a"}, ns.Published(), "tables published before cancellation stay")
	})

	t.Run("Nil namespace", func(t *testing.T) {
		t.Parallel()

		assert.ErrorIs(t, Unpack(context.Background(), NewCollection(), nil), ErrNilNamespace)
	})

	t.Run("Nil collection", func(t *testing.T) {
		t.Parallel()

		ns := NewNamespace()
		require.NoError(t, Unpack(context.Background(), nil, ns))
		assert.Equal(t, 0, ns.Len())
	})
}

func TestPrintPublished(t *testing.T) {
	t.Parallel()

	ns := NewNamespace()
	ns.Set("df_scores", newScoresTable(t))
	ns.Set("df_cohort", newStudentTable(t))
	ns.Set("scratch", newScoresTable(t))

	var buf bytes.Buffer
	require.NoError(t, PrintPublished(&buf, ns))

	out := buf.String()
	assert.Contains(t, out, "Published tables:")
	assert.Contains(t, out, "- df_cohort\n- df_scores\n")
	assert.NotContains(t, out, "scratch")

	assert.ErrorIs(t, PrintPublished(&buf, nil), ErrNilNamespace)
}
