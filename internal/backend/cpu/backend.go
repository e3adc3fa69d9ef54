// Package cpu implements the reference CPU backend: every primitive of the
// tensor operation contract in pure Go.
package cpu

import (
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/dustin/go-humanize"
	"k8s.io/klog/v2"

	"github.com/born-ml/tensorops/internal/tensor"
)

// Backend implements tensor.Backend on the host CPU.
//
// FE is the float-kind element (float16.Float16, float32 or float64) and IE
// the integer-kind element. Float arithmetic is computed in float64 and
// rounded to FE.
type Backend[FE tensor.FloatElement, IE tensor.IntElement] struct {
	cfg Config
	rng *randSource // shared with the full-precision companion

	fullOnce sync.Once
	full     tensor.Backend[float64, IE]
}

type randSource struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// Compile-time check that Backend implements tensor.Backend.
var _ tensor.Backend[float32, int64] = (*Backend[float32, int64])(nil)

// New creates a CPU backend.
//
// Example:
//
//	b := cpu.New[float32, int64]()
//	x := b.Float().FromData(must.M1(tensor.NewData([]float32{1, 2}, tensor.Shape{2})), b.DefaultDevice())
func New[FE tensor.FloatElement, IE tensor.IntElement](opts ...Option) *Backend[FE, IE] {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Devices < 1 {
		cfg.Devices = 1
	}
	b := &Backend[FE, IE]{cfg: cfg, rng: &randSource{rng: newRNG(cfg.Seed)}}
	klog.V(1).Infof("cpu backend %s created: %d device(s), %d worker(s), async reads=%v",
		b.Name(), cfg.Devices, cfg.Parallel.NumWorkers, cfg.AsyncReads)
	return b
}

func newRNG(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Name returns the backend name, including its element types.
func (b *Backend[FE, IE]) Name() string {
	return fmt.Sprintf("cpu<%s,%s>", tensor.DataTypeOf[FE](), tensor.DataTypeOf[IE]())
}

// Config returns the backend configuration.
func (b *Backend[FE, IE]) Config() Config {
	return b.cfg
}

// DefaultDevice returns cpu:0.
func (b *Backend[FE, IE]) DefaultDevice() tensor.Device {
	return tensor.DefaultCPU
}

// Devices lists every device the backend can allocate on.
func (b *Backend[FE, IE]) Devices() []tensor.Device {
	devices := make([]tensor.Device, b.cfg.Devices)
	for i := range devices {
		devices[i] = tensor.Device{Type: tensor.CPU, Index: i}
	}
	return devices
}

// Seed reseeds the random generator used by Random. The full-precision
// companion shares the generator.
func (b *Backend[FE, IE]) Seed(seed uint64) {
	b.rng.mu.Lock()
	defer b.rng.mu.Unlock()
	b.rng.rng = newRNG(seed)
}

// Float returns the float-kind primitives.
func (b *Backend[FE, IE]) Float() tensor.FloatOps[FE] {
	return floatOps[FE, IE]{b: b}
}

// Int returns the integer-kind primitives.
func (b *Backend[FE, IE]) Int() tensor.IntOps[IE] {
	return intOps[FE, IE]{b: b}
}

// Bool returns the boolean-kind primitives.
func (b *Backend[FE, IE]) Bool() tensor.BoolOps {
	return boolOps[FE, IE]{b: b}
}

// FullPrecision returns the float64 companion backend, created once. It has
// the same configuration and draws from the same random generator. Handles
// produced by ToFullPrecision can be used with it directly.
func (b *Backend[FE, IE]) FullPrecision() tensor.Backend[float64, IE] {
	b.fullOnce.Do(func() {
		if self, ok := any(b).(tensor.Backend[float64, IE]); ok {
			b.full = self
			return
		}
		b.full = &Backend[float64, IE]{cfg: b.cfg, rng: b.rng}
	})
	return b.full
}

// checkDevice panics with ErrInvalidArgument for devices this backend does not serve.
func (b *Backend[FE, IE]) checkDevice(op string, device tensor.Device) {
	if device.Type != tensor.CPU || device.Index < 0 || device.Index >= b.cfg.Devices {
		tensor.Panicf(tensor.ErrInvalidArgument, "%s: device %s not available on %s", op, device, b.Name())
	}
}

// uniforms draws n variates in (0, 1).
func (b *Backend[FE, IE]) uniforms(n int) []float64 {
	b.rng.mu.Lock()
	defer b.rng.mu.Unlock()
	out := make([]float64, n)
	for i := range out {
		u := b.rng.rng.Float64()
		for u == 0 {
			u = b.rng.rng.Float64()
		}
		out[i] = u
	}
	return out
}

// reader returns a Reader producing a copy of r's values.
func reader[E tensor.Element](b interface{ Config() Config }, op string, r *RawTensor) *tensor.Reader[tensor.Data[E]] {
	read := func() (tensor.Data[E], error) {
		return tensor.Data[E]{Value: cloneValues[E](op, r), Shape: r.shape.Clone()}, nil
	}
	if b.Config().AsyncReads {
		return tensor.AsyncReader(read)
	}
	return tensor.NewReader(read)
}

// toDevice copies r onto device.
func toDevice[E tensor.Element](b deviceChecker, op string, r *RawTensor, device tensor.Device) *RawTensor {
	b.checkDevice(op, device)
	if device == r.device {
		return r
	}
	klog.V(2).Infof("%s: moving %s (%s) from %s to %s", op, r.shape, humanize.Bytes(uint64(r.ByteSize())), r.device, device)
	return newRaw(cloneValues[E](op, r), r.shape, device)
}
