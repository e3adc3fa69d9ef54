package ops

import "github.com/born-ml/tensorops/internal/tensor"

// Zeros creates a tensor of shape filled with zeros.
func Zeros[T any, E tensor.Element](k Elemental[T, E], shape tensor.Shape, device tensor.Device) T {
	return k.FromData(tensor.ZerosData[E](shape), device)
}

// Ones creates a tensor of shape filled with ones.
func Ones[T any, E tensor.Element](k Elemental[T, E], shape tensor.Shape, device tensor.Device) T {
	return k.FromData(tensor.OnesData[E](shape), device)
}

// Full creates a tensor of shape filled with value.
func Full[T any, E tensor.Element](k Numeric[T, E], shape tensor.Shape, value E, device tensor.Device) T {
	return k.AddScalar(Zeros[T, E](k, shape, device), value)
}

// ClampMin replaces every element lower than min by min.
func ClampMin[T any, E tensor.Element](k Numeric[T, E], t T, min E) T {
	return k.MaskFill(t, k.LowerElem(t, min), min)
}

// ClampMax replaces every element greater than max by max.
func ClampMax[T any, E tensor.Element](k Numeric[T, E], t T, max E) T {
	return k.MaskFill(t, k.GreaterElem(t, max), max)
}

// Clamp bounds every element to [min, max].
//
// The upper bound is applied first, so when min > max every element ends up
// equal to min.
func Clamp[T any, E tensor.Element](k Numeric[T, E], t T, min, max E) T {
	return ClampMin(k, ClampMax(k, t, max), min)
}

// Neg negates every element.
func Neg[T any, E tensor.Element](k Numeric[T, E], t T) T {
	return k.MulScalar(t, tensor.ElemFromFloat64[E](-1))
}

// Mean averages all elements into a tensor of shape [1].
// The integer kind uses integer division.
func Mean[T any, E tensor.Element](k Numeric[T, E], t T) T {
	n := k.Shape(t).NumElements()
	return k.DivScalar(k.Sum(t), tensor.ElemFromFloat64[E](float64(n)))
}

// Max returns the largest element as a tensor of shape [1].
func Max[T any, E tensor.Element](k Numeric[T, E], t T) T {
	return MaxDim(k, flatten[T, E](k, t), 0)
}

// MaxDim returns the largest elements along dim, keeping it with size 1.
func MaxDim[T any, E tensor.Element](k Numeric[T, E], t T, dim int) T {
	return k.Gather(dim, t, k.Argmax(t, dim))
}

// MaxDimWithIndices returns MaxDim together with the indices it was gathered from.
func MaxDimWithIndices[T any, E tensor.Element](k Numeric[T, E], t T, dim int) (T, tensor.IntTensor) {
	indices := k.Argmax(t, dim)
	return k.Gather(dim, t, indices), indices
}

// Min returns the smallest element as a tensor of shape [1].
func Min[T any, E tensor.Element](k Numeric[T, E], t T) T {
	return MinDim(k, flatten[T, E](k, t), 0)
}

// MinDim returns the smallest elements along dim, keeping it with size 1.
func MinDim[T any, E tensor.Element](k Numeric[T, E], t T, dim int) T {
	return k.Gather(dim, t, k.Argmin(t, dim))
}

// MinDimWithIndices returns MinDim together with the indices it was gathered from.
func MinDimWithIndices[T any, E tensor.Element](k Numeric[T, E], t T, dim int) (T, tensor.IntTensor) {
	indices := k.Argmin(t, dim)
	return k.Gather(dim, t, indices), indices
}

func flatten[T any, E tensor.Element](k Numeric[T, E], t T) T {
	return k.Reshape(t, tensor.Shape{k.Shape(t).NumElements()})
}

// ArangeStep creates the rank-1 integer tensor start, start+step, ... of the
// values strictly lower than r.End. step must be at least 1.
//
// Example:
//
//	ops.ArangeStep(b.Int(), tensor.Range{Start: 0, End: 10}, 3, device) // [0 3 6 9]
func ArangeStep[T any, IE tensor.IntElement](k Elemental[T, IE], r tensor.Range, step int, device tensor.Device) T {
	if step < 1 {
		tensor.Panicf(tensor.ErrInvalidArgument, "arange_step: step must be >= 1, got %d", step)
	}
	var values []IE
	for v := r.Start; v < r.End; v += step {
		values = append(values, tensor.IntFromInt64[IE](int64(v)))
	}
	if values == nil {
		values = []IE{}
	}
	return k.FromData(tensor.Data[IE]{Value: values, Shape: tensor.Shape{len(values)}}, device)
}

// Arange is ArangeStep with step 1.
func Arange[T any, IE tensor.IntElement](k Elemental[T, IE], r tensor.Range, device tensor.Device) T {
	return ArangeStep(k, r, 1, device)
}
