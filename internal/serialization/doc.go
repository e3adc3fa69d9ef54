// Package serialization saves and loads tensor Data in the SafeTensors format.
//
//	Format Structure:
//	  [8 bytes: Header Size (uint64 LE)]
//	  [Header: JSON object, one entry per tensor plus optional "__metadata__"]
//	  [Tensor data: raw little-endian bytes, tensors in name order]
//
// Supported element types are float16, float32, float64, int32, int64 and
// bool (F16, F32, F64, I32, I64 and BOOL in the header). A SHA-256 checksum
// of the data section is stored in the metadata and verified on load.
//
// Example usage:
//
//	// Save
//	w := serialization.NewWriter()
//	if err := serialization.AddTensor(ctx, w, b.Float(), "weight", weight); err != nil {
//	    return err
//	}
//	if err := w.Save("weights.safetensors"); err != nil {
//	    return err
//	}
//
//	// Load
//	f, err := serialization.Load("weights.safetensors")
//	if err != nil {
//	    return err
//	}
//	weight, err := serialization.LoadTensor(f, b.Float(), "weight", b.DefaultDevice())
package serialization
