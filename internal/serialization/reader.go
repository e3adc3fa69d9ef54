package serialization

import (
	"bufio"
	"encoding/binary"
	"encoding/json"
	"io"
	"math"
	"os"
	"slices"

	"github.com/pkg/errors"

	"github.com/born-ml/tensorops/internal/tensor"
)

// TensorInfo describes a tensor stored in a File.
type TensorInfo struct {
	Name  string
	DType tensor.DataType
	Shape tensor.Shape
	Size  int64 // Bytes in the data section.

	offset int64
}

// File is a decoded SafeTensors file held in memory.
type File struct {
	Metadata map[string]string

	tensors map[string]TensorInfo
	data    []byte
}

// Load reads and validates the SafeTensors file at path.
func Load(path string) (*File, error) {
	//nolint:gosec // G304: File path comes from user input, which is expected for loading
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open file")
	}
	defer func() { _ = f.Close() }()
	file, err := Read(bufio.NewReader(f))
	if err != nil {
		return nil, errors.WithMessage(err, path)
	}
	return file, nil
}

// Read decodes and validates a SafeTensors stream.
func Read(r io.Reader) (*File, error) {
	var headerSize uint64
	if err := binary.Read(r, binary.LittleEndian, &headerSize); err != nil {
		return nil, errors.Wrap(err, "failed to read header size")
	}
	if headerSize > MaxHeaderSize {
		return nil, errors.Wrapf(ErrHeaderTooLarge, "%d bytes", headerSize)
	}
	headerJSON := make([]byte, headerSize)
	if _, err := io.ReadFull(r, headerJSON); err != nil {
		return nil, errors.Wrap(err, "failed to read header")
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read tensor data")
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(headerJSON, &raw); err != nil {
		return nil, errors.Wrapf(ErrInvalidFile, "header: %v", err)
	}

	file := &File{tensors: make(map[string]TensorInfo, len(raw)), data: data}
	if meta, found := raw[MetadataKey]; found {
		if err := json.Unmarshal(meta, &file.Metadata); err != nil {
			return nil, errors.Wrapf(ErrInvalidFile, "metadata: %v", err)
		}
		delete(raw, MetadataKey)
	}

	infos := make([]TensorInfo, 0, len(raw))
	for name, msg := range raw {
		var h TensorHeader
		if err := json.Unmarshal(msg, &h); err != nil {
			return nil, errors.Wrapf(ErrInvalidFile, "tensor %q: %v", name, err)
		}
		info, err := tensorInfo(name, h)
		if err != nil {
			return nil, err
		}
		infos = append(infos, info)
		file.tensors[name] = info
	}
	if err := ValidateHeader(infos, int64(len(data))); err != nil {
		return nil, err
	}
	if sum, found := file.Metadata[ChecksumKey]; found {
		if err := ValidateChecksum(data, sum); err != nil {
			return nil, err
		}
	}
	return file, nil
}

func tensorInfo(name string, h TensorHeader) (TensorInfo, error) {
	dt, err := ParseDType(h.DType)
	if err != nil {
		return TensorInfo{}, errors.WithMessagef(err, "tensor %q", name)
	}
	shape := make(tensor.Shape, len(h.Shape))
	for i, dim := range h.Shape {
		if dim < 0 || dim > MaxDimension {
			return TensorInfo{}, &ValidationError{Type: "invalid_shape", Tensor: name, Details: "dimension out of range"}
		}
		shape[i] = int(dim)
	}
	if err := shape.Validate(); err != nil {
		return TensorInfo{}, &ValidationError{Type: "invalid_shape", Tensor: name, Details: err.Error()}
	}
	info := TensorInfo{
		Name:   name,
		DType:  dt,
		Shape:  shape,
		Size:   h.DataOffsets[1] - h.DataOffsets[0],
		offset: h.DataOffsets[0],
	}
	n := shape.NumElements()
	if n > math.MaxInt64/dt.Size() || info.Size != int64(n*dt.Size()) {
		return TensorInfo{}, &ValidationError{
			Type:    "size_mismatch",
			Tensor:  name,
			Details: "data offsets do not match shape and dtype",
		}
	}
	return info, nil
}

// Names returns the stored tensor names in alphabetical order.
func (f *File) Names() []string {
	names := make([]string, 0, len(f.tensors))
	for name := range f.tensors {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Info returns the description of the tensor stored under name.
func (f *File) Info(name string) (TensorInfo, bool) {
	info, found := f.tensors[name]
	return info, found
}

// Get decodes the tensor stored under name as Data[E]. Tensors stored with
// another element type are converted through float64.
func Get[E tensor.Element](f *File, name string) (tensor.Data[E], error) {
	info, found := f.tensors[name]
	if !found {
		return tensor.Data[E]{}, errors.Wrapf(ErrTensorNotFound, "%q", name)
	}
	raw := f.data[info.offset : info.offset+info.Size]
	d, err := decodeValues[E](info.DType, raw, info.Shape.Clone())
	if err != nil {
		return tensor.Data[E]{}, errors.WithMessagef(err, "tensor %q", name)
	}
	return d, nil
}
