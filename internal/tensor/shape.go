package tensor

import (
	"fmt"
	"math"
	"math/bits"
)

// Shape represents the dimensions of a tensor.
//
// The rank of a handle never changes; operations that need a given rank check
// it at runtime and panic with ErrRankViolation.
type Shape []int

// NewShape creates a Shape from the given dimensions.
func NewShape(dims ...int) Shape {
	return Shape(dims).Clone()
}

// Rank returns the number of dimensions.
func (s Shape) Rank() int {
	return len(s)
}

// NumElements returns the total number of elements in the tensor.
func (s Shape) NumElements() int {
	if len(s) == 0 {
		return 1 // Scalar has 1 element
	}
	n := 1
	for _, dim := range s {
		n *= dim
	}
	return n
}

// Validate checks if the shape is valid: all dimensions >= 0 and an element
// count that fits in an int.
func (s Shape) Validate() error {
	hasZero := false
	for i, dim := range s {
		if dim < 0 {
			return fmt.Errorf("invalid dimension at index %d: %d (must be >= 0)", i, dim)
		}
		hasZero = hasZero || dim == 0
	}
	if hasZero {
		return nil
	}
	var n uint64 = 1
	for _, dim := range s {
		hi, lo := bits.Mul64(n, uint64(dim))
		if hi != 0 || lo > math.MaxInt {
			return fmt.Errorf("shape %v: element count overflows int", []int(s))
		}
		n = lo
	}
	return nil
}

// Equal checks if two shapes are equal.
func (s Shape) Equal(other Shape) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// Clone returns a copy of the shape.
func (s Shape) Clone() Shape {
	clone := make(Shape, len(s))
	copy(clone, s)
	return clone
}

// With returns a copy of the shape with dimension dim set to size.
func (s Shape) With(dim, size int) Shape {
	out := s.Clone()
	out[dim] = size
	return out
}

// Strides calculates row-major strides for the shape.
// Strides define memory layout: stride[i] = product of all dimensions after i.
func (s Shape) Strides() []int {
	strides := make([]int, len(s))
	if len(s) == 0 {
		return strides
	}

	strides[len(s)-1] = 1
	for i := len(s) - 2; i >= 0; i-- {
		strides[i] = strides[i+1] * s[i+1]
	}
	return strides
}

// Unravel converts a flat row-major offset into coordinates, writing them into coords.
func (s Shape) Unravel(offset int, coords []int) {
	for d := len(s) - 1; d >= 0; d-- {
		if s[d] == 0 {
			coords[d] = 0
			continue
		}
		coords[d] = offset % s[d]
		offset /= s[d]
	}
}

// Offset converts coordinates into a flat row-major offset using the given strides.
func Offset(coords, strides []int) int {
	off := 0
	for d, c := range coords {
		off += c * strides[d]
	}
	return off
}

// String formats the shape as [d0 d1 ...].
func (s Shape) String() string {
	return fmt.Sprint([]int(s))
}

// Range is a half-open [Start, End) interval over the indices of one dimension.
type Range struct {
	Start int
	End   int
}

// Len returns the number of indices covered by the range.
func (r Range) Len() int {
	return r.End - r.Start
}

// String formats the range as start..end.
func (r Range) String() string {
	return fmt.Sprintf("%d..%d", r.Start, r.End)
}

// FullRanges returns one range per dimension covering it entirely.
func FullRanges(s Shape) []Range {
	ranges := make([]Range, len(s))
	for i, dim := range s {
		ranges[i] = Range{Start: 0, End: dim}
	}
	return ranges
}

// ExpandRanges pads ranges with full ranges for the unlisted trailing dimensions.
func ExpandRanges(s Shape, ranges []Range) []Range {
	out := FullRanges(s)
	copy(out, ranges)
	return out
}

// RangesShape returns the shape of the region selected by ranges.
func RangesShape(s Shape, ranges []Range) Shape {
	out := s.Clone()
	for i, r := range ranges {
		out[i] = r.Len()
	}
	return out
}
