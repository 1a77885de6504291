package tiler

import (
	"fmt"
	"log/slog"
)

// MapType is the access a Map call asks for.
type MapType uint8

const (
	MapRead MapType = iota + 1
	MapWrite
	MapReadWrite
	MapWriteDiscard
	MapWriteNoOverwrite
)

// String returns a string representation of the map type.
func (m MapType) String() string {
	switch m {
	case MapRead:
		return "Read"
	case MapWrite:
		return "Write"
	case MapReadWrite:
		return "ReadWrite"
	case MapWriteDiscard:
		return "WriteDiscard"
	case MapWriteNoOverwrite:
		return "WriteNoOverwrite"
	default:
		return "Unknown"
	}
}

// MapFlags modify a Map call.
type MapFlags uint8

// MapFlagDoNotWait asks the allocator to fail instead of blocking on a
// busy allocation.
const MapFlagDoNotWait MapFlags = 1

// LockFlags are passed to Allocation.Lock.
type LockFlags struct {
	ReadOnly  bool
	WriteOnly bool
	Discard   bool
	DoNotWait bool
}

// LockFlagsFor derives allocation lock flags from a map request.
func LockFlagsFor(mapType MapType, flags MapFlags) LockFlags {
	var lf LockFlags
	switch mapType {
	case MapRead:
		lf.ReadOnly = true
	case MapWrite:
		lf.WriteOnly = true
	case MapWriteDiscard:
		lf.Discard = true
	case MapReadWrite, MapWriteNoOverwrite:
	}
	if flags&MapFlagDoNotWait != 0 {
		lf.DoNotWait = true
	}
	return lf
}

// Allocation is the GPU memory backing a resource, owned by the kernel-mode
// allocator. Lock returns a CPU visible view of the whole allocation; with
// Discard it may hand back fresh memory.
type Allocation interface {
	Lock(flags LockFlags) ([]byte, error)
	Unlock() error
}

// MappedView is the CPU visible memory of a mapped resource. It stays
// valid until the matching Unmap.
type MappedView struct {
	Data       []byte
	RowPitch   int
	DepthPitch int
}

// Map locks the resource for CPU access.
//
// Constant buffers map their system memory copy and never touch alloc.
// Only resources with a single mip level and array slice can be mapped.
// A resource must be unmapped before it is mapped again.
func (r *Resource) Map(alloc Allocation, mapType MapType, flags MapFlags) (MappedView, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	st := r.state.Load()
	if st.shape.MipLevels > 1 || st.shape.ArraySize > 1 {
		return MappedView{}, fmt.Errorf("%w: %d mips, %d slices",
			ErrUnsupportedSubresource, st.shape.MipLevels, st.shape.ArraySize)
	}
	if r.mapped {
		return MappedView{}, ErrAlreadyMapped
	}

	view := MappedView{
		RowPitch:   st.layout.Pitch,
		DepthPitch: st.layout.Size,
	}

	if st.shape.IsConstantBuffer() {
		view.Data = r.sysMem
		r.mapped = true
		return view, nil
	}

	if alloc == nil {
		return MappedView{}, ErrNilAllocation
	}
	lf := LockFlagsFor(mapType, flags)
	data, err := alloc.Lock(lf)
	if err != nil {
		return MappedView{}, fmt.Errorf("tiler: lock allocation: %w", err)
	}

	Logger().Debug("tiler: resource mapped",
		slog.String("map_type", mapType.String()),
		slog.Bool("discard", lf.Discard),
		slog.Int("bytes", len(data)))

	view.Data = data
	r.mapped = true
	return view, nil
}

// Unmap releases the view returned by Map. It must be called exactly once
// per successful Map.
func (r *Resource) Unmap(alloc Allocation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.mapped {
		return ErrNotMapped
	}

	if r.state.Load().shape.IsConstantBuffer() {
		r.mapped = false
		return nil
	}

	if alloc == nil {
		return ErrNilAllocation
	}
	if err := alloc.Unlock(); err != nil {
		return fmt.Errorf("tiler: unlock allocation: %w", err)
	}
	r.mapped = false
	return nil
}

// Mapped reports whether the resource currently has a mapped view.
func (r *Resource) Mapped() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.mapped
}
