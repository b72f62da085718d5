package dataprep

import (
	"log/slog"
	"math"

	"github.com/dustin/go-humanize"
	"github.com/nao1215/dataprep/domain/model"
)

// OptimizeNumericTypes narrows every numeric column to the smallest sufficient dtype.
//
// Only valid cells are considered. A column whose values are all integral becomes
// the narrowest of Int8, Int16, Int32 or Int64 holding its range. Any other numeric
// column becomes Float32 when every value survives the float32 round-trip, and
// Float64 otherwise. Missing values stay missing, so an integer column with nulls
// remains an integer column. Text columns, empty columns and all-null columns are
// untouched. The table is modified in place and returned.
func OptimizeNumericTypes(t *Table, logger ...*slog.Logger) *Table {
	if t == nil {
		return nil
	}
	log := slog.Default()
	if len(logger) > 0 && logger[0] != nil {
		log = logger[0]
	}

	before := t.MemoryUsage()
	for _, c := range t.Columns() {
		target, ok := optimalDType(c)
		if !ok || target == c.DType() {
			continue
		}
		if err := c.Cast(target); err != nil {
			// optimalDType only selects lossless targets
			log.Warn("failed to narrow column", "table", t.Name(), "column", c.Name(), "error", err)
		}
	}
	after := t.MemoryUsage()

	log.Debug("optimized numeric types",
		"table", t.Name(),
		"before", humanize.Bytes(uint64(before)),
		"after", humanize.Bytes(uint64(after)))
	return t
}

// optimalDType returns the narrowest lossless dtype for a numeric column.
// It reports false for text columns and for columns without valid values.
func optimalDType(c *Column) (DType, bool) {
	if !c.DType().IsNumeric() || c.Len() == c.NullCount() {
		return c.DType(), false
	}

	if c.DType().IsInteger() {
		lo, hi := validIntRange(c)
		return model.SmallestIntType(lo, hi), true
	}

	integral := true
	fitsFloat32 := true
	lo, hi := math.Inf(1), math.Inf(-1)
	for i, v := range c.Floats() {
		if c.IsNull(i) {
			continue
		}
		if !model.IsIntegral(v) {
			integral = false
		}
		if f := float64(float32(v)); f != v && !math.IsNaN(v) {
			fitsFloat32 = false
		}
		lo, hi = math.Min(lo, v), math.Max(hi, v)
	}

	// The int64 range ends just below 2^63
	if integral && lo >= math.MinInt64 && hi < math.MaxInt64 {
		return model.SmallestIntType(int64(lo), int64(hi)), true
	}
	if fitsFloat32 {
		return DTypeFloat32, true
	}
	return DTypeFloat64, true
}

// validIntRange returns the minimum and maximum valid value of an integer column
func validIntRange(c *Column) (int64, int64) {
	var lo, hi int64
	first := true
	for i, v := range c.Ints() {
		if c.IsNull(i) {
			continue
		}
		if first || v < lo {
			lo = v
		}
		if first || v > hi {
			hi = v
		}
		first = false
	}
	return lo, hi
}
