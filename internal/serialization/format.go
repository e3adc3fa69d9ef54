package serialization

import (
	"bytes"
	"encoding/binary"
	"reflect"

	"github.com/pkg/errors"
	"github.com/x448/float16"

	"github.com/born-ml/tensorops/internal/tensor"
)

// MetadataKey is the reserved header entry holding string metadata.
const MetadataKey = "__metadata__"

// ChecksumKey is the metadata entry holding the SHA-256 of the data section.
const ChecksumKey = "tensorops.sha256"

// TensorHeader describes one tensor in the SafeTensors header.
type TensorHeader struct {
	DType       string   `json:"dtype"`
	Shape       []int64  `json:"shape"`
	DataOffsets [2]int64 `json:"data_offsets"`
}

// dtypeNames maps data types to SafeTensors dtype strings.
var dtypeNames = map[tensor.DataType]string{
	tensor.Float16: "F16",
	tensor.Float32: "F32",
	tensor.Float64: "F64",
	tensor.Int32:   "I32",
	tensor.Int64:   "I64",
	tensor.Bool:    "BOOL",
}

// DTypeName returns the SafeTensors dtype string of dt.
func DTypeName(dt tensor.DataType) string {
	return dtypeNames[dt]
}

// ParseDType converts a SafeTensors dtype string to a DataType.
func ParseDType(name string) (tensor.DataType, error) {
	for dt, n := range dtypeNames {
		if n == name {
			return dt, nil
		}
	}
	return 0, errors.Wrapf(ErrUnsupportedDType, "%q", name)
}

// encodeValues returns the little-endian bytes of d's values in the canonical
// Go type of its DataType.
func encodeValues[E tensor.Element](d tensor.Data[E]) ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow(len(d.Value) * tensor.DataTypeOf[E]().Size())
	if err := binary.Write(&buf, binary.LittleEndian, canonical(d.Value)); err != nil {
		return nil, errors.Wrap(err, "encoding values")
	}
	return buf.Bytes(), nil
}

// canonical converts values to the Go slice type matching their DataType.
// Named element types (e.g. type myFloat float32) are converted by kind.
func canonical[E tensor.Element](values []E) any {
	switch v := any(values).(type) {
	case []float16.Float16, []float32, []float64, []int32, []int64, []bool:
		return v
	}
	rv := reflect.ValueOf(values)
	n := rv.Len()
	switch tensor.DataTypeOf[E]() {
	case tensor.Float32:
		out := make([]float32, n)
		for i := range out {
			out[i] = float32(rv.Index(i).Float())
		}
		return out
	case tensor.Float64:
		out := make([]float64, n)
		for i := range out {
			out[i] = rv.Index(i).Float()
		}
		return out
	case tensor.Int32:
		out := make([]int32, n)
		for i := range out {
			out[i] = int32(rv.Index(i).Int())
		}
		return out
	case tensor.Int64:
		out := make([]int64, n)
		for i := range out {
			out[i] = rv.Index(i).Int()
		}
		return out
	default:
		out := make([]bool, n)
		for i := range out {
			out[i] = rv.Index(i).Bool()
		}
		return out
	}
}

// decodeValues reads n values stored as dt from raw and converts them to E.
// Values stored with another type than E's are converted through float64.
func decodeValues[E tensor.Element](dt tensor.DataType, raw []byte, shape tensor.Shape) (tensor.Data[E], error) {
	n := shape.NumElements()
	r := bytes.NewReader(raw)
	read := func(dst any) error {
		return errors.Wrap(binary.Read(r, binary.LittleEndian, dst), "decoding values")
	}
	switch dt {
	case tensor.Float16:
		v := make([]float16.Float16, n)
		if err := read(v); err != nil {
			return tensor.Data[E]{}, err
		}
		return convert[E](tensor.Data[float16.Float16]{Value: v, Shape: shape}), nil
	case tensor.Float32:
		v := make([]float32, n)
		if err := read(v); err != nil {
			return tensor.Data[E]{}, err
		}
		return convert[E](tensor.Data[float32]{Value: v, Shape: shape}), nil
	case tensor.Float64:
		v := make([]float64, n)
		if err := read(v); err != nil {
			return tensor.Data[E]{}, err
		}
		return convert[E](tensor.Data[float64]{Value: v, Shape: shape}), nil
	case tensor.Int32:
		v := make([]int32, n)
		if err := read(v); err != nil {
			return tensor.Data[E]{}, err
		}
		return convert[E](tensor.Data[int32]{Value: v, Shape: shape}), nil
	case tensor.Int64:
		v := make([]int64, n)
		if err := read(v); err != nil {
			return tensor.Data[E]{}, err
		}
		return convert[E](tensor.Data[int64]{Value: v, Shape: shape}), nil
	case tensor.Bool:
		v := make([]bool, n)
		if err := read(v); err != nil {
			return tensor.Data[E]{}, err
		}
		return convert[E](tensor.Data[bool]{Value: v, Shape: shape}), nil
	default:
		return tensor.Data[E]{}, errors.Wrapf(ErrUnsupportedDType, "%v", dt)
	}
}

func convert[To, From tensor.Element](d tensor.Data[From]) tensor.Data[To] {
	if same, ok := any(d).(tensor.Data[To]); ok {
		return same
	}
	return tensor.ConvertData[To](d)
}
