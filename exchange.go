package tiler

import "github.com/gogpu/gputypes"

// AllocationExchange is the layout information a resource shares with
// other processes and with the kernel-mode allocator. Every value equals
// the one the planner computed.
type AllocationExchange struct {
	// Mip 0 extent and creation parameters as requested.
	TexelWidth  int
	TexelHeight int
	Format      gputypes.TextureFormat
	Bind        BindFlags
	SampleCount int

	// Layout as computed.
	Kind     LayoutKind
	Class    FormatClass
	HWWidth  int
	HWHeight int
	Pitch    int
	Size     int
}

// Exchange returns the exchange record for the current layout.
func (r *Resource) Exchange() AllocationExchange {
	st := r.state.Load()
	return AllocationExchange{
		TexelWidth:  st.shape.Width,
		TexelHeight: st.shape.Height,
		Format:      st.shape.Format,
		Bind:        st.shape.Bind,
		SampleCount: st.shape.SampleCount,
		Kind:        st.layout.Kind,
		Class:       st.layout.Class,
		HWWidth:     st.layout.Width,
		HWHeight:    st.layout.Height,
		Pitch:       st.layout.Pitch,
		Size:        st.layout.Size,
	}
}
