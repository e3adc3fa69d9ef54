package serialization

import (
	"bufio"
	"encoding/binary"
	"encoding/json"
	"io"
	"os"
	"slices"

	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	"github.com/born-ml/tensorops/internal/tensor"
)

type pendingTensor struct {
	dtype tensor.DataType
	shape tensor.Shape
	bytes []byte
}

// Writer accumulates named tensors and writes them as one SafeTensors file.
//
// Tensors are written in alphabetical order by name, as the format requires.
type Writer struct {
	tensors  map[string]pendingTensor
	metadata map[string]string
}

// NewWriter creates an empty Writer.
func NewWriter() *Writer {
	return &Writer{
		tensors:  make(map[string]pendingTensor),
		metadata: make(map[string]string),
	}
}

// Add stores d under name. The values are encoded immediately, so d may be
// modified afterwards.
func Add[E tensor.Element](w *Writer, name string, d tensor.Data[E]) error {
	if err := ValidateTensorName(name); err != nil {
		return err
	}
	if _, found := w.tensors[name]; found {
		return errors.Wrapf(ErrDuplicateTensor, "%q", name)
	}
	if d.Shape.NumElements() != len(d.Value) {
		return errors.Errorf("tensor %q: shape %v does not match %d values", name, d.Shape, len(d.Value))
	}
	raw, err := encodeValues(d)
	if err != nil {
		return errors.WithMessagef(err, "tensor %q", name)
	}
	w.tensors[name] = pendingTensor{dtype: tensor.DataTypeOf[E](), shape: d.Shape.Clone(), bytes: raw}
	return nil
}

// SetMetadata stores a free-form string entry in the header.
func (w *Writer) SetMetadata(key, value string) {
	w.metadata[key] = value
}

// Len returns the number of tensors added.
func (w *Writer) Len() int {
	return len(w.tensors)
}

// WriteTo writes the SafeTensors file to out. It implements io.WriterTo.
//
// Format:
// [8 bytes: header_size (uint64 LE)]
// [header_size bytes: JSON header]
// [tensor data: raw bytes]
func (w *Writer) WriteTo(out io.Writer) (int64, error) {
	names := make([]string, 0, len(w.tensors))
	for name := range w.tensors {
		names = append(names, name)
	}
	slices.Sort(names)

	header := make(map[string]any, len(names)+1)
	var data []byte
	for _, name := range names {
		t := w.tensors[name]
		shape := make([]int64, len(t.shape))
		for i, dim := range t.shape {
			shape[i] = int64(dim)
		}
		start := int64(len(data))
		data = append(data, t.bytes...)
		header[name] = TensorHeader{
			DType:       DTypeName(t.dtype),
			Shape:       shape,
			DataOffsets: [2]int64{start, int64(len(data))},
		}
	}

	metadata := make(map[string]string, len(w.metadata)+1)
	for k, v := range w.metadata {
		metadata[k] = v
	}
	metadata[ChecksumKey] = ComputeChecksum(data)
	header[MetadataKey] = metadata

	headerJSON, err := json.Marshal(header)
	if err != nil {
		return 0, errors.Wrap(err, "failed to marshal header")
	}

	cw := &countingWriter{w: out}
	if err := binary.Write(cw, binary.LittleEndian, uint64(len(headerJSON))); err != nil {
		return cw.n, errors.Wrap(err, "failed to write header size")
	}
	if _, err := cw.Write(headerJSON); err != nil {
		return cw.n, errors.Wrap(err, "failed to write header")
	}
	if _, err := cw.Write(data); err != nil {
		return cw.n, errors.Wrap(err, "failed to write tensor data")
	}
	return cw.n, nil
}

// Save writes the file to path, replacing any existing file.
func (w *Writer) Save(path string) (err error) {
	//nolint:gosec // G304: File path comes from user input, which is expected for saving
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "failed to create file")
	}
	defer func() {
		if closeErr := f.Close(); err == nil {
			err = closeErr
		}
	}()

	buf := bufio.NewWriter(f)
	n, err := w.WriteTo(buf)
	if err != nil {
		return err
	}
	if err := buf.Flush(); err != nil {
		return errors.Wrap(err, "failed to flush")
	}
	klog.V(1).Infof("saved %d tensors to %s (%d bytes)", len(w.tensors), path, n)
	return nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
