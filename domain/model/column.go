package model

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Column is a named, typed sequence of values with an optional validity channel.
//
// Values live in one backing slice chosen by the dtype: strings for DTypeString,
// int64 for the integer dtypes and float64 for the floating-point dtypes. The dtype
// is the storage width of the column; integer columns only hold values that fit the
// width and DTypeFloat32 columns only hold values exactly representable as float32.
// A nil validity channel means every cell is valid. Null cells hold the zero value.
type Column struct {
	name   string
	dtype  DType
	strs   []string
	ints   []int64
	floats []float64
	valid  []bool
}

// NewStringColumn creates a textual column. The column takes ownership of the slices.
func NewStringColumn(name string, values []string, valid []bool) *Column {
	c := &Column{
		name:  name,
		dtype: DTypeString,
		strs:  values,
	}
	c.valid = normalizeValidity(valid, len(values))
	for i := range c.strs {
		if c.IsNull(i) {
			c.strs[i] = ""
		}
	}
	return c
}

// NewIntColumn creates an integer column. The column takes ownership of the slices.
// A non-integer dtype falls back to DTypeInt64, and a dtype too narrow for the values
// is widened to the smallest width that holds them.
func NewIntColumn(name string, dtype DType, values []int64, valid []bool) *Column {
	if !dtype.IsInteger() {
		dtype = DTypeInt64
	}
	c := &Column{
		name: name,
		ints: values,
	}
	c.valid = normalizeValidity(valid, len(values))

	var lo, hi int64
	first := true
	for i, v := range c.ints {
		if c.IsNull(i) {
			c.ints[i] = 0
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
	if needed := SmallestIntType(lo, hi); needed > dtype {
		dtype = needed
	}
	c.dtype = dtype
	return c
}

// NewFloatColumn creates a floating-point column. The column takes ownership of the slices.
// A non-float dtype falls back to DTypeFloat64. Values of a DTypeFloat32 column are
// rounded to float32 precision.
func NewFloatColumn(name string, dtype DType, values []float64, valid []bool) *Column {
	if !dtype.IsFloat() {
		dtype = DTypeFloat64
	}
	c := &Column{
		name:   name,
		dtype:  dtype,
		floats: values,
	}
	c.valid = normalizeValidity(valid, len(values))
	for i, v := range c.floats {
		switch {
		case c.IsNull(i):
			c.floats[i] = 0
		case dtype == DTypeFloat32:
			c.floats[i] = float64(float32(v))
		}
	}
	return c
}

// NewColumnFromStrings creates a column from raw text cells, inferring its dtype.
// When valid is nil, empty cells become nulls. Blank cells of a numeric column are
// always nulls, while a textual column keeps blank cells marked valid.
func NewColumnFromStrings(name string, cells []string, valid []bool) *Column {
	if valid == nil {
		valid = make([]bool, len(cells))
		for i, cell := range cells {
			valid[i] = cell != ""
		}
	}
	valid = normalizeValidity(valid, len(cells))

	dtype := InferDType(cells, valid)
	if dtype == DTypeString {
		return NewStringColumn(name, cells, valid)
	}

	numericValid := make([]bool, len(cells))
	for i, cell := range cells {
		numericValid[i] = (valid == nil || valid[i]) && strings.TrimSpace(cell) != ""
	}

	if dtype == DTypeInt64 {
		values := make([]int64, len(cells))
		for i, cell := range cells {
			if numericValid[i] {
				values[i], _ = strconv.ParseInt(strings.TrimSpace(cell), 10, 64)
			}
		}
		return NewIntColumn(name, DTypeInt64, values, numericValid)
	}

	values := make([]float64, len(cells))
	for i, cell := range cells {
		if numericValid[i] {
			values[i], _ = strconv.ParseFloat(strings.TrimSpace(cell), 64)
		}
	}
	return NewFloatColumn(name, DTypeFloat64, values, numericValid)
}

// normalizeValidity resizes valid to n entries and returns nil when every entry is true.
func normalizeValidity(valid []bool, n int) []bool {
	if valid == nil {
		return nil
	}
	if len(valid) != n {
		resized := make([]bool, n)
		for i := range resized {
			resized[i] = i >= len(valid) || valid[i]
		}
		valid = resized
	}
	for _, ok := range valid {
		if !ok {
			return valid
		}
	}
	return nil
}

// Name returns the column label.
func (c *Column) Name() string {
	return c.name
}

// SetName replaces the column label.
func (c *Column) SetName(name string) {
	c.name = name
}

// DType returns the storage type of the column.
func (c *Column) DType() DType {
	return c.dtype
}

// Len returns the number of cells in the column.
func (c *Column) Len() int {
	switch {
	case c.dtype.IsInteger():
		return len(c.ints)
	case c.dtype.IsFloat():
		return len(c.floats)
	default:
		return len(c.strs)
	}
}

// IsNull reports whether cell i is a missing value.
func (c *Column) IsNull(i int) bool {
	return c.valid != nil && !c.valid[i]
}

// NullCount returns the number of missing values.
func (c *Column) NullCount() int {
	count := 0
	for _, ok := range c.valid {
		if !ok {
			count++
		}
	}
	return count
}

// Validity returns a copy of the validity channel, or nil when every cell is valid.
func (c *Column) Validity() []bool {
	if c.valid == nil {
		return nil
	}
	out := make([]bool, len(c.valid))
	copy(out, c.valid)
	return out
}

// Strings returns the backing values of a textual column. Callers must not modify it.
func (c *Column) Strings() []string {
	return c.strs
}

// Ints returns the backing values of an integer column. Callers must not modify it.
func (c *Column) Ints() []int64 {
	return c.ints
}

// Floats returns the backing values of a floating-point column. Callers must not modify it.
func (c *Column) Floats() []float64 {
	return c.floats
}

// Value returns cell i as nil, string, int64 or float64.
func (c *Column) Value(i int) any {
	if c.IsNull(i) {
		return nil
	}
	switch {
	case c.dtype.IsInteger():
		return c.ints[i]
	case c.dtype.IsFloat():
		return c.floats[i]
	default:
		return c.strs[i]
	}
}

// StringAt returns cell i formatted as text. Null cells format as an empty string.
func (c *Column) StringAt(i int) string {
	if c.IsNull(i) {
		return ""
	}
	switch {
	case c.dtype.IsInteger():
		return strconv.FormatInt(c.ints[i], 10)
	case c.dtype.IsFloat():
		return FormatFloat(c.floats[i], c.dtype)
	default:
		return c.strs[i]
	}
}

// MapStrings rewrites every non-null cell of a textual column with fn.
// Columns of any other dtype are left untouched.
func (c *Column) MapStrings(fn func(string) string) {
	if c.dtype != DTypeString {
		return
	}
	for i, v := range c.strs {
		if !c.IsNull(i) {
			c.strs[i] = fn(v)
		}
	}
}

// Cast converts the column to dtype d in place.
// Only numeric to numeric casts are supported, and the cast fails with ErrLossyCast
// without modifying the column when any valid value would change.
func (c *Column) Cast(d DType) error {
	if c.dtype == d {
		return nil
	}
	if !c.dtype.IsNumeric() || !d.IsNumeric() {
		return fmt.Errorf("%w: %s to %s", ErrInvalidCast, c.dtype, d)
	}

	switch {
	case c.dtype.IsInteger() && d.IsInteger():
		lo, hi := IntRange(d)
		for i, v := range c.ints {
			if !c.IsNull(i) && (v < lo || v > hi) {
				return fmt.Errorf("%w: value %d does not fit %s", ErrLossyCast, v, d)
			}
		}
		c.dtype = d
	case c.dtype.IsInteger() && d.IsFloat():
		floats := make([]float64, len(c.ints))
		for i, v := range c.ints {
			if c.IsNull(i) {
				continue
			}
			f := roundToDType(float64(v), d)
			if f >= twoPow63 || f < -twoPow63 || int64(f) != v {
				return fmt.Errorf("%w: value %d does not fit %s", ErrLossyCast, v, d)
			}
			floats[i] = f
		}
		c.floats, c.ints, c.dtype = floats, nil, d
	case c.dtype.IsFloat() && d.IsInteger():
		lo, hi := IntRange(d)
		ints := make([]int64, len(c.floats))
		for i, v := range c.floats {
			if c.IsNull(i) {
				continue
			}
			if !IsIntegral(v) || v < float64(lo) || v >= -float64(lo) || int64(v) > hi {
				return fmt.Errorf("%w: value %v does not fit %s", ErrLossyCast, v, d)
			}
			ints[i] = int64(v)
		}
		c.ints, c.floats, c.dtype = ints, nil, d
	default:
		converted := make([]float64, len(c.floats))
		for i, v := range c.floats {
			if c.IsNull(i) {
				continue
			}
			f := roundToDType(v, d)
			if f != v && !(math.IsNaN(f) && math.IsNaN(v)) {
				return fmt.Errorf("%w: value %v does not fit %s", ErrLossyCast, v, d)
			}
			converted[i] = f
		}
		c.floats, c.dtype = converted, d
	}
	return nil
}

// Equal reports whether both columns have the same name, dtype, validity and values.
// NaN compares equal to NaN.
func (c *Column) Equal(other *Column) bool {
	if c.name != other.name || c.dtype != other.dtype || c.Len() != other.Len() {
		return false
	}
	for i := range c.Len() {
		if c.IsNull(i) != other.IsNull(i) {
			return false
		}
		if c.IsNull(i) {
			continue
		}
		if !cellEqual(c, other, i) {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of the column.
func (c *Column) Clone() *Column {
	return &Column{
		name:   c.name,
		dtype:  c.dtype,
		strs:   cloneSlice(c.strs),
		ints:   cloneSlice(c.ints),
		floats: cloneSlice(c.floats),
		valid:  cloneSlice(c.valid),
	}
}

// MemoryUsage returns the estimated number of bytes held by the column values.
func (c *Column) MemoryUsage() int64 {
	n := int64(c.Len())
	size := n * int64(c.dtype.ByteWidth())
	if c.dtype == DTypeString {
		for _, s := range c.strs {
			size += int64(len(s))
		}
	}
	return size + int64(len(c.valid))
}

// cellEqual compares cell i of two columns numerically or textually.
func cellEqual(a, b *Column, i int) bool {
	switch {
	case a.dtype == DTypeString && b.dtype == DTypeString:
		return a.strs[i] == b.strs[i]
	case a.dtype.IsInteger() && b.dtype.IsInteger():
		return a.ints[i] == b.ints[i]
	case a.dtype.IsNumeric() && b.dtype.IsNumeric():
		x, y := a.numberAt(i), b.numberAt(i)
		return x == y || (math.IsNaN(x) && math.IsNaN(y))
	default:
		return false
	}
}

// numberAt returns cell i of a numeric column as float64.
func (c *Column) numberAt(i int) float64 {
	if c.dtype.IsInteger() {
		return float64(c.ints[i])
	}
	return c.floats[i]
}

func cloneSlice[T any](s []T) []T {
	if s == nil {
		return nil
	}
	out := make([]T, len(s))
	copy(out, s)
	return out
}

// twoPow63 is the first float64 above the int64 range
const twoPow63 = float64(1 << 63)

// IntRange returns the inclusive value range of an integer dtype.
func IntRange(d DType) (int64, int64) {
	switch d {
	case DTypeInt8:
		return math.MinInt8, math.MaxInt8
	case DTypeInt16:
		return math.MinInt16, math.MaxInt16
	case DTypeInt32:
		return math.MinInt32, math.MaxInt32
	default:
		return math.MinInt64, math.MaxInt64
	}
}

// SmallestIntType returns the narrowest integer dtype whose range holds [lo, hi].
func SmallestIntType(lo, hi int64) DType {
	for _, d := range []DType{DTypeInt8, DTypeInt16, DTypeInt32} {
		min, max := IntRange(d)
		if lo >= min && hi <= max {
			return d
		}
	}
	return DTypeInt64
}

// IsIntegral reports whether v is finite and has no fractional part.
func IsIntegral(v float64) bool {
	return !math.IsInf(v, 0) && !math.IsNaN(v) && math.Mod(v, 1) == 0
}

// roundToDType rounds v to the precision of a floating-point dtype.
func roundToDType(v float64, d DType) float64 {
	if d == DTypeFloat32 {
		return float64(float32(v))
	}
	return v
}

// FormatFloat formats v the way the text writers emit floating-point cells:
// the shortest representation that round-trips at the precision of d, always
// carrying a decimal point or exponent so that readers keep the column floating-point.
func FormatFloat(v float64, d DType) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}

	bits := 64
	if d == DTypeFloat32 {
		bits = 32
	}
	format := byte('f')
	if abs := math.Abs(v); abs != 0 && (abs < 1e-6 || abs >= 1e21) {
		format = 'g'
	}
	s := strconv.FormatFloat(v, format, -1, bits)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}
