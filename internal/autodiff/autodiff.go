// Package autodiff implements a gradient-tracking decorator over any backend.
//
// Backend wraps a tensor.Backend and gives the differentiability extension
// points real behavior: float handles carry an identity and a require-grad
// flag, the flag propagates through every float operation, and operations are
// recorded on a Tape while recording is on.
//
// Architecture:
//   - Decorator pattern: Backend[FE, IE] wraps any tensor.Backend[FE, IE]
//   - variable: the float primitive handed out by the wrapper (inner handle + id + flag)
//   - Tape: records (operation, input ids, output id) during the forward pass
//
// Usage:
//
//	b := autodiff.New[float32, int64](cpu.New[float32, int64]())
//	x := ops.SetRequireGrad[float32, int64](b, b.Float().FromData(data, b.DefaultDevice()), true)
//	b.Tape().StartRecording()
//	y := b.Float().Mul(x, x)
//	ops.IsRequireGrad[float32, int64](b, y) // true
package autodiff

import (
	"github.com/google/uuid"
	"k8s.io/klog/v2"

	"github.com/born-ml/tensorops/internal/ops"
	"github.com/born-ml/tensorops/internal/tensor"
)

// variable is the float-kind primitive of an autodiff Backend.
type variable struct {
	inner       tensor.FloatTensor
	id          uuid.UUID
	requireGrad bool
}

// Backend wraps a tensor.Backend and adds gradient tracking to its float kind.
// Integer and boolean operations are passed through.
type Backend[FE tensor.FloatElement, IE tensor.IntElement] struct {
	inner tensor.Backend[FE, IE] // Wrapped backend (CPU, GPU, etc.)
	tape  *Tape                  // Records float operations
}

var (
	_ tensor.Backend[float32, int64] = (*Backend[float32, int64])(nil)
	_ ops.Differentiable             = (*Backend[float32, int64])(nil)
)

// New creates a Backend wrapping inner with a fresh, non-recording tape.
func New[FE tensor.FloatElement, IE tensor.IntElement](inner tensor.Backend[FE, IE]) *Backend[FE, IE] {
	b := &Backend[FE, IE]{inner: inner, tape: NewTape()}
	klog.V(1).Infof("autodiff backend created over %s", inner.Name())
	return b
}

// Tape returns the operation tape for manual control.
func (b *Backend[FE, IE]) Tape() *Tape {
	return b.tape
}

// Inner returns the wrapped backend.
func (b *Backend[FE, IE]) Inner() tensor.Backend[FE, IE] {
	return b.inner
}

// Name returns the backend name.
func (b *Backend[FE, IE]) Name() string {
	return "autodiff(" + b.inner.Name() + ")"
}

// DefaultDevice returns the wrapped backend's default device.
func (b *Backend[FE, IE]) DefaultDevice() tensor.Device {
	return b.inner.DefaultDevice()
}

// Seed reseeds the wrapped backend.
func (b *Backend[FE, IE]) Seed(seed uint64) {
	b.inner.Seed(seed)
}

// Float returns the tracked float-kind primitives.
func (b *Backend[FE, IE]) Float() tensor.FloatOps[FE] {
	return floatOps[FE, IE]{b: b, inner: b.inner.Float()}
}

// Int returns the integer-kind primitives.
func (b *Backend[FE, IE]) Int() tensor.IntOps[IE] {
	return intOps[IE]{b.inner.Int()}
}

// Bool returns the boolean-kind primitives.
func (b *Backend[FE, IE]) Bool() tensor.BoolOps {
	return boolOps{b.inner.Bool()}
}

// FullPrecision wraps the inner full-precision backend. Both share the tape,
// so precision conversions stay on the same graph.
func (b *Backend[FE, IE]) FullPrecision() tensor.Backend[float64, IE] {
	return &Backend[float64, IE]{inner: b.inner.FullPrecision(), tape: b.tape}
}

// FloatDetach returns a handle to the same values with a new identity and no
// gradient requirement.
func (b *Backend[FE, IE]) FloatDetach(t tensor.FloatTensor) tensor.FloatTensor {
	v := unwrap("float.Detach", t)
	return tensor.NewFloat(&variable{inner: v.inner, id: uuid.New()})
}

// FloatSetRequireGrad returns t with its gradient requirement set.
func (b *Backend[FE, IE]) FloatSetRequireGrad(t tensor.FloatTensor, requireGrad bool) tensor.FloatTensor {
	v := unwrap("float.SetRequireGrad", t)
	return tensor.NewFloat(&variable{inner: v.inner, id: v.id, requireGrad: requireGrad})
}

// FloatIsRequireGrad reports whether t requires a gradient.
func (b *Backend[FE, IE]) FloatIsRequireGrad(t tensor.FloatTensor) bool {
	return unwrap("float.IsRequireGrad", t).requireGrad
}

// ID returns the identity of a float handle produced by this backend, as
// recorded on the tape.
func (b *Backend[FE, IE]) ID(t tensor.FloatTensor) uuid.UUID {
	return unwrap("float.ID", t).id
}

// leaf wraps an untracked float handle produced by the inner backend.
func leaf(inner tensor.FloatTensor) tensor.FloatTensor {
	return tensor.NewFloat(&variable{inner: inner, id: uuid.New()})
}

// track wraps the inner result of op. The result requires a gradient if any
// input does, and op is recorded on the tape.
func (b *Backend[FE, IE]) track(op string, out tensor.FloatTensor, inputs ...*variable) tensor.FloatTensor {
	v := &variable{inner: out, id: uuid.New()}
	ids := make([]uuid.UUID, len(inputs))
	for i, in := range inputs {
		ids[i] = in.id
		v.requireGrad = v.requireGrad || in.requireGrad
	}
	b.tape.Record(Entry{Op: op, Inputs: ids, Output: v.id})
	return tensor.NewFloat(v)
}

func unwrap(op string, t tensor.FloatTensor) *variable {
	v := tensor.Unwrap[*variable](op, t.Primitive())
	if v == nil {
		tensor.Panicf(tensor.ErrInvalidArgument, "%s: nil tensor", op)
	}
	return v
}

// intOps passes integer operations through, wrapping the float handles it produces.
type intOps[IE tensor.IntElement] struct {
	tensor.IntOps[IE]
}

func (o intOps[IE]) IntoFloat(t tensor.IntTensor) tensor.FloatTensor {
	return leaf(o.IntOps.IntoFloat(t))
}

// boolOps passes boolean operations through, wrapping the float handles it produces.
type boolOps struct {
	tensor.BoolOps
}

func (o boolOps) IntoFloat(t tensor.BoolTensor) tensor.FloatTensor {
	return leaf(o.BoolOps.IntoFloat(t))
}
