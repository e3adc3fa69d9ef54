package tensor

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
)

// Data is the host-visible materialization of a tensor: a flat row-major
// sequence of values plus the Shape describing how to interpret it.
//
// It is the only form in which tensor contents are inspectable outside a
// backend, and the layout every backend produces and consumes.
type Data[E Element] struct {
	Value []E
	Shape Shape
}

// NewData creates Data from values laid out in row-major order.
// The values are not copied.
func NewData[E Element](values []E, shape Shape) (Data[E], error) {
	if err := shape.Validate(); err != nil {
		return Data[E]{}, fmt.Errorf("invalid shape: %w", err)
	}
	if shape.NumElements() != len(values) {
		return Data[E]{}, fmt.Errorf("shape %v requires %d elements, but got %d", shape, shape.NumElements(), len(values))
	}
	return Data[E]{Value: values, Shape: shape.Clone()}, nil
}

// FullData returns Data of the given shape with every element set to value.
func FullData[E Element](shape Shape, value E) Data[E] {
	values := make([]E, shape.NumElements())
	for i := range values {
		values[i] = value
	}
	return Data[E]{Value: values, Shape: shape.Clone()}
}

// ZerosData returns Data of the given shape filled with zeros.
func ZerosData[E Element](shape Shape) Data[E] {
	return Data[E]{Value: make([]E, shape.NumElements()), Shape: shape.Clone()}
}

// OnesData returns Data of the given shape filled with ones.
func OnesData[E Element](shape Shape) Data[E] {
	return FullData(shape, ElemFromFloat64[E](1))
}

// NumElements returns the number of values.
func (d Data[E]) NumElements() int {
	return len(d.Value)
}

// At returns the value at the given coordinates.
func (d Data[E]) At(coords ...int) E {
	if len(coords) != d.Shape.Rank() {
		Panicf(ErrRankViolation, "data.At: expected %d coordinates, got %d", d.Shape.Rank(), len(coords))
	}
	for i, c := range coords {
		CheckIndex("data.At", int64(c), d.Shape[i])
	}
	return d.Value[Offset(coords, d.Shape.Strides())]
}

// Equal reports whether both Data have the same shape and identical values.
// Float comparison is exact (IEEE equality, NaN != NaN).
func (d Data[E]) Equal(other Data[E]) bool {
	if !d.Shape.Equal(other.Shape) || len(d.Value) != len(other.Value) {
		return false
	}
	for i := range d.Value {
		if d.Value[i] != other.Value[i] {
			return false
		}
	}
	return true
}

// Float64s returns the values converted to float64.
func (d Data[E]) Float64s() []float64 {
	out := make([]float64, len(d.Value))
	for i, v := range d.Value {
		out[i] = ElemToFloat64(v)
	}
	return out
}

// ConvertData converts Data to another element type through float64.
func ConvertData[To, From Element](d Data[From]) Data[To] {
	out := make([]To, len(d.Value))
	for i, v := range d.Value {
		out[i] = ElemFromFloat64[To](ElemToFloat64(v))
	}
	return Data[To]{Value: out, Shape: d.Shape.Clone()}
}

// String returns a short description, eliding long value lists.
func (d Data[E]) String() string {
	const maxShown = 8
	var sb strings.Builder
	fmt.Fprintf(&sb, "Data[%s]%v (%s) ", DataTypeOf[E](), d.Shape,
		humanize.Bytes(uint64(len(d.Value)*DataTypeOf[E]().Size())))
	if len(d.Value) <= maxShown {
		fmt.Fprint(&sb, d.Value)
		return sb.String()
	}
	fmt.Fprintf(&sb, "%v...", d.Value[:maxShown])
	return sb.String()
}
