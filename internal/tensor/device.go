package tensor

import "fmt"

// DeviceType names the kind of hardware a tensor's storage lives on.
type DeviceType int

// Supported device types.
const (
	CPU DeviceType = iota
	CUDA
	Vulkan
	Metal
	WebGPU
)

// String returns a human-readable device type name.
func (d DeviceType) String() string {
	switch d {
	case CPU:
		return "cpu"
	case CUDA:
		return "cuda"
	case Vulkan:
		return "vulkan"
	case Metal:
		return "metal"
	case WebGPU:
		return "webgpu"
	default:
		return "unknown"
	}
}

// Device identifies where a tensor's storage lives.
// It is an opaque, comparable value: backends compare devices and allocate on
// them but never interpret one they did not create.
type Device struct {
	Type  DeviceType
	Index int
}

// DefaultCPU is the first CPU device.
var DefaultCPU = Device{Type: CPU}

// String returns the device as type:index, e.g. "cpu:0".
func (d Device) String() string {
	return fmt.Sprintf("%s:%d", d.Type, d.Index)
}
