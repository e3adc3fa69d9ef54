package serialization

import (
	"context"

	"github.com/pkg/errors"

	"github.com/born-ml/tensorops/internal/ops"
	"github.com/born-ml/tensorops/internal/tensor"
)

// AddTensor reads t back from its backend and stores it under name. k is the
// op set of t's kind, e.g. b.Float().
func AddTensor[T any, E tensor.Element](ctx context.Context, w *Writer, k ops.Elemental[T, E], name string, t T) error {
	d, err := k.ToData(t).ReadContext(ctx)
	if err != nil {
		return errors.WithMessagef(err, "reading tensor %q", name)
	}
	return Add(w, name, d)
}

// LoadTensor decodes the tensor stored under name and creates it on device
// through k.
func LoadTensor[T any, E tensor.Element](f *File, k ops.Elemental[T, E], name string, device tensor.Device) (T, error) {
	d, err := Get[E](f, name)
	if err != nil {
		var zero T
		return zero, err
	}
	return k.FromData(d, device), nil
}
