// Package tensor provides the value types shared by every backend: shapes,
// element kinds, opaque tensor handles, host data, readers and distributions.
package tensor

import (
	"fmt"
	"math"
	"reflect"

	"github.com/x448/float16"
	"golang.org/x/exp/constraints"
)

// FloatElement is the constraint for a backend's float-kind scalar representation.
type FloatElement interface {
	constraints.Float | float16.Float16
}

// IntElement is the constraint for a backend's integer-kind scalar representation.
type IntElement interface {
	constraints.Signed
}

// Element is any scalar a tensor of some kind can hold.
type Element interface {
	FloatElement | IntElement | ~bool
}

// DataType represents runtime type information for tensors.
type DataType int

// Supported data types for tensors.
const (
	Float16 DataType = iota
	Float32
	Float64
	Int32
	Int64
	Bool
)

// Size returns the byte size of the data type.
func (dt DataType) Size() int {
	switch dt {
	case Float16:
		return 2
	case Float32, Int32:
		return 4
	case Float64, Int64:
		return 8
	case Bool:
		return 1
	default:
		panic("unknown data type")
	}
}

// String returns a human-readable name for the data type.
func (dt DataType) String() string {
	switch dt {
	case Float16:
		return "float16"
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	case Int32:
		return "int32"
	case Int64:
		return "int64"
	case Bool:
		return "bool"
	default:
		return "unknown"
	}
}

// IsFloat reports whether the data type is a float kind.
func (dt DataType) IsFloat() bool {
	return dt == Float16 || dt == Float32 || dt == Float64
}

// DataTypeOf infers the DataType of E.
// Integer types narrower than 64 bits map to Int32, the rest to Int64.
func DataTypeOf[E Element]() DataType {
	var dummy E
	switch any(dummy).(type) {
	case float16.Float16:
		return Float16
	case float32:
		return Float32
	case float64:
		return Float64
	case bool:
		return Bool
	}
	switch reflect.TypeOf(dummy).Kind() {
	case reflect.Float32:
		return Float32
	case reflect.Float64:
		return Float64
	case reflect.Bool:
		return Bool
	case reflect.Int8, reflect.Int16, reflect.Int32:
		return Int32
	default:
		return Int64
	}
}

// FloatToFloat64 converts a float element to the float64 reference representation.
func FloatToFloat64[E FloatElement](v E) float64 {
	switch x := any(v).(type) {
	case float32:
		return float64(x)
	case float64:
		return x
	case float16.Float16:
		return float64(x.Float32())
	default:
		return reflect.ValueOf(v).Float()
	}
}

// FloatFromFloat64 converts a float64 to a float element, rounding to the element's precision.
// Values beyond the element's range become ±Inf; this is not an error.
func FloatFromFloat64[E FloatElement](v float64) E {
	var dummy E
	switch any(dummy).(type) {
	case float32:
		return any(float32(v)).(E)
	case float64:
		return any(v).(E)
	case float16.Float16:
		return any(float16.Fromfloat32(float32(v))).(E)
	default:
		out := reflect.New(reflect.TypeOf(dummy)).Elem()
		out.SetFloat(v)
		return out.Interface().(E)
	}
}

// FloatFromFloat32 converts the 32-bit float reference representation to a float element.
func FloatFromFloat32[E FloatElement](v float32) E {
	return FloatFromFloat64[E](float64(v))
}

// IntToInt64 converts an integer element to the int64 reference representation.
func IntToInt64[E IntElement](v E) int64 {
	return int64(v)
}

// IntFromInt64 converts an int64 to an integer element, wrapping on overflow like a Go conversion.
func IntFromInt64[E IntElement](v int64) E {
	return E(v)
}

// ElemFromFloat64 converts a float64 to any element type.
// Integer targets truncate toward zero; bool targets are true for non-zero.
func ElemFromFloat64[E Element](v float64) E {
	var dummy E
	switch any(dummy).(type) {
	case float16.Float16:
		return any(float16.Fromfloat32(float32(v))).(E)
	}
	out := reflect.New(reflect.TypeOf(dummy)).Elem()
	switch out.Kind() {
	case reflect.Float32, reflect.Float64:
		out.SetFloat(v)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		out.SetInt(int64(math.Trunc(v)))
	case reflect.Bool:
		out.SetBool(v != 0)
	default:
		panic(fmt.Sprintf("unsupported element type %T", dummy))
	}
	return out.Interface().(E)
}

// ElemToFloat64 converts any element to float64. Booleans become 0 or 1.
func ElemToFloat64[E Element](v E) float64 {
	switch x := any(v).(type) {
	case float16.Float16:
		return float64(x.Float32())
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Float32, reflect.Float64:
		return rv.Float()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int())
	case reflect.Bool:
		if rv.Bool() {
			return 1
		}
		return 0
	default:
		panic(fmt.Sprintf("unsupported element type %T", v))
	}
}

// FloatConverters returns conversion functions between E and float64.
// They avoid a type switch per element in tight loops.
func FloatConverters[E FloatElement]() (to func(E) float64, from func(float64) E) {
	var dummy E
	switch any(dummy).(type) {
	case float32:
		to = any(func(v float32) float64 { return float64(v) }).(func(E) float64)
		from = any(func(v float64) float32 { return float32(v) }).(func(float64) E)
	case float64:
		to = any(func(v float64) float64 { return v }).(func(E) float64)
		from = any(func(v float64) float64 { return v }).(func(float64) E)
	case float16.Float16:
		to = any(func(v float16.Float16) float64 { return float64(v.Float32()) }).(func(E) float64)
		from = any(func(v float64) float16.Float16 { return float16.Fromfloat32(float32(v)) }).(func(float64) E)
	default:
		to, from = FloatToFloat64[E], FloatFromFloat64[E]
	}
	return to, from
}
