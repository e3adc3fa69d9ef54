package ops

import "github.com/born-ml/tensorops/internal/tensor"

// Differentiable is implemented by backends that track gradients. Detach,
// SetRequireGrad and IsRequireGrad defer to it when the backend provides it
// and are identity operations otherwise.
type Differentiable interface {
	FloatDetach(t tensor.FloatTensor) tensor.FloatTensor
	FloatSetRequireGrad(t tensor.FloatTensor, requireGrad bool) tensor.FloatTensor
	FloatIsRequireGrad(t tensor.FloatTensor) bool
}

// Powi raises t element-wise to the integer powers in exp.
func Powi[FE tensor.FloatElement, IE tensor.IntElement](b tensor.Backend[FE, IE], t tensor.FloatTensor, exp tensor.IntTensor) tensor.FloatTensor {
	return b.Float().Powf(t, b.Int().IntoFloat(exp))
}

// PowiScalar raises every element of t to the integer power exp.
func PowiScalar[FE tensor.FloatElement, IE tensor.IntElement](b tensor.Backend[FE, IE], t tensor.FloatTensor, exp IE) tensor.FloatTensor {
	return b.Float().PowfScalar(t, float32(tensor.IntToInt64(exp)))
}

// Detach returns t cut off from gradient tracking.
func Detach[FE tensor.FloatElement, IE tensor.IntElement](b tensor.Backend[FE, IE], t tensor.FloatTensor) tensor.FloatTensor {
	if d, ok := b.(Differentiable); ok {
		return d.FloatDetach(t)
	}
	return t
}

// SetRequireGrad marks t as requiring (or not) a gradient.
func SetRequireGrad[FE tensor.FloatElement, IE tensor.IntElement](b tensor.Backend[FE, IE], t tensor.FloatTensor, requireGrad bool) tensor.FloatTensor {
	if d, ok := b.(Differentiable); ok {
		return d.FloatSetRequireGrad(t, requireGrad)
	}
	return t
}

// IsRequireGrad reports whether t requires a gradient.
func IsRequireGrad[FE tensor.FloatElement, IE tensor.IntElement](b tensor.Backend[FE, IE], t tensor.FloatTensor) bool {
	if d, ok := b.(Differentiable); ok {
		return d.FloatIsRequireGrad(t)
	}
	return false
}
