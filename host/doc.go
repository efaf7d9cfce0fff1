// Package host exposes packed values to WebAssembly guests running on
// wazero.
//
// A Binding registers a host module whose functions read and write fields
// by schema index, and copy the raw buffer in and out of guest linear
// memory:
//
//	rt := wazero.NewRuntime(ctx)
//	v := typ.New()
//	if _, err := host.Instantiate(ctx, rt, "packed", v); err != nil {
//		return err
//	}
//	// guests import "packed" "get", "set", "store", ...
package host
