package tiler

import "testing"

func TestChooseLayoutKind(t *testing.T) {
	tests := []struct {
		name     string
		usage    Usage
		bind     BindFlags
		wantKind LayoutKind
		wantRule string
	}{
		{"sampled only", UsageDefault, BindShaderResource, LayoutTiled, "sampled-texture-tiled"},
		{"render target", UsageDefault, BindRenderTarget, LayoutLinear, "render-target-linear"},
		{"sampled render target", UsageDefault, BindShaderResource | BindRenderTarget, LayoutLinear, "render-target-linear"},
		{"sampled storage", UsageDefault, BindShaderResource | BindUnorderedAccess, LayoutLinear, "render-target-linear"},
		{"unbound default", UsageDefault, 0, LayoutTiled, "usage-default-tiled"},
		{"depth only", UsageDefault, BindDepthStencil, LayoutTiled, "usage-default-tiled"},
		{"dynamic sampled", UsageDynamic, BindShaderResource, LayoutLinear, "render-target-linear"},
		{"immutable sampled", UsageImmutable, BindShaderResource, LayoutLinear, "render-target-linear"},
		{"staging", UsageStaging, 0, LayoutLinear, "usage-default-tiled"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, rule := chooseLayoutKind(Shape{Dimension: DimensionTexture2D, Usage: tt.usage, Bind: tt.bind})
			if kind != tt.wantKind {
				t.Errorf("kind = %v, want %v", kind, tt.wantKind)
			}
			if rule != tt.wantRule {
				t.Errorf("rule = %q, want %q", rule, tt.wantRule)
			}
		})
	}
}

func TestLayoutRules_Named(t *testing.T) {
	seen := make(map[string]bool)
	for _, r := range layoutRules {
		if r.name == "" || r.rationale == "" {
			t.Errorf("rule %q lacks a name or rationale", r.name)
		}
		if seen[r.name] {
			t.Errorf("duplicate rule name %q", r.name)
		}
		seen[r.name] = true
	}
}
