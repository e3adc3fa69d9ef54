package tensor

// FloatTensor is an opaque handle to a backend-owned float-kind tensor.
//
// Handles are values: operations take handles and return new ones, they never
// mutate a handle the caller still holds. Only the backend that created the
// handle may interpret its primitive.
type FloatTensor struct {
	primitive any
}

// IntTensor is an opaque handle to a backend-owned integer-kind tensor.
type IntTensor struct {
	primitive any
}

// BoolTensor is an opaque handle to a backend-owned boolean-kind tensor.
type BoolTensor struct {
	primitive any
}

// NewFloat wraps a backend primitive in a float handle.
func NewFloat(p any) FloatTensor { return FloatTensor{primitive: p} }

// NewInt wraps a backend primitive in an integer handle.
func NewInt(p any) IntTensor { return IntTensor{primitive: p} }

// NewBool wraps a backend primitive in a boolean handle.
func NewBool(p any) BoolTensor { return BoolTensor{primitive: p} }

// Primitive returns the backend-owned representation.
func (t FloatTensor) Primitive() any { return t.primitive }

// Primitive returns the backend-owned representation.
func (t IntTensor) Primitive() any { return t.primitive }

// Primitive returns the backend-owned representation.
func (t BoolTensor) Primitive() any { return t.primitive }

// IsNil reports whether the handle is the zero value.
func (t FloatTensor) IsNil() bool { return t.primitive == nil }

// IsNil reports whether the handle is the zero value.
func (t IntTensor) IsNil() bool { return t.primitive == nil }

// IsNil reports whether the handle is the zero value.
func (t BoolTensor) IsNil() bool { return t.primitive == nil }

// Unwrap extracts a backend primitive of type P from a handle primitive.
// It panics with ErrInvalidArgument if the handle was created by another backend.
func Unwrap[P any](op string, primitive any) P {
	p, ok := primitive.(P)
	if !ok {
		var want P
		Panicf(ErrInvalidArgument, "%s: handle of type %T is not owned by this backend (want %T)", op, primitive, want)
	}
	return p
}
