package tiler

// layoutRule is one step of the 2D layout decision. Rules run in order and
// a rule that applies overrides whatever earlier rules chose.
type layoutRule struct {
	name      string
	rationale string
	apply     func(s Shape) (LayoutKind, bool)
}

// layoutRules is the ordered layout decision for 2D textures.
var layoutRules = []layoutRule{
	{
		name:      "usage-default-tiled",
		rationale: "GPU-only memory is tiled; CPU visible usages stay linear so they can be mapped directly",
		apply: func(s Shape) (LayoutKind, bool) {
			if s.Usage == UsageDefault {
				return LayoutTiled, true
			}
			return LayoutLinear, true
		},
	},
	{
		name:      "render-target-linear",
		rationale: "the rasterizer cannot render into tiled surfaces yet",
		apply: func(s Shape) (LayoutKind, bool) {
			if s.Bind&(BindRenderTarget|BindShaderResource) != 0 {
				return LayoutLinear, true
			}
			return 0, false
		},
	},
	{
		name:      "sampled-texture-tiled",
		rationale: "textures that are only sampled are tiled; other bind combinations lack binning tile alignment",
		apply: func(s Shape) (LayoutKind, bool) {
			if s.Usage == UsageDefault && s.Bind == BindShaderResource {
				return LayoutTiled, true
			}
			return 0, false
		},
	},
}

// chooseLayoutKind runs layoutRules over s and returns the resulting kind
// together with the name of the last rule that applied.
func chooseLayoutKind(s Shape) (LayoutKind, string) {
	kind := LayoutLinear
	decided := ""
	for _, r := range layoutRules {
		if k, ok := r.apply(s); ok {
			kind = k
			decided = r.name
		}
	}
	return kind, decided
}
