package tiler

import (
	"github.com/gogpu/tiler/internal/cache"
)

// DefaultCacheSize is the number of layouts a Planner remembers by default.
const DefaultCacheSize = 256

// PlannerOption configures a Planner during creation.
//
// Example:
//
//	// Default planner with a 256 entry layout cache
//	p := tiler.NewPlanner()
//
//	// No caching
//	p := tiler.NewPlanner(tiler.WithCacheSize(0))
type PlannerOption func(*plannerOptions)

// plannerOptions holds optional configuration for Planner creation.
type plannerOptions struct {
	cacheSize int
}

// defaultPlannerOptions returns the default planner options.
func defaultPlannerOptions() plannerOptions {
	return plannerOptions{
		cacheSize: DefaultCacheSize,
	}
}

// WithCacheSize sets how many layouts the planner caches.
// Zero or a negative size disables the cache.
func WithCacheSize(n int) PlannerOption {
	return func(o *plannerOptions) {
		o.cacheSize = n
	}
}

// Planner computes layouts for shapes, resolving the format class from the
// declared format and caching results.
//
// Planner is safe for concurrent use.
type Planner struct {
	layouts *cache.Cache[Shape, Layout]
}

// NewPlanner creates a planner.
func NewPlanner(opts ...PlannerOption) *Planner {
	o := defaultPlannerOptions()
	for _, opt := range opts {
		opt(&o)
	}

	p := &Planner{}
	if o.cacheSize > 0 {
		p.layouts = cache.New[Shape, Layout](o.cacheSize)
	}
	return p
}

// Plan returns the layout of shape.
//
// The format class comes from ClassOf(shape.Format); buffers skip the lookup.
// Only successful layouts are cached, so an invalid shape fails every time.
func (p *Planner) Plan(shape Shape) (Layout, error) {
	if p.layouts != nil {
		if l, ok := p.layouts.Get(shape); ok {
			return l, nil
		}
	}

	var class FormatClass
	if shape.Dimension == DimensionTexture2D {
		c, err := ClassOf(shape.Format)
		if err != nil {
			return Layout{}, err
		}
		class = c
	}

	l, err := ComputeLayout(shape, class)
	if err != nil {
		return Layout{}, err
	}

	if p.layouts != nil {
		p.layouts.Set(shape, l)
	}
	return l, nil
}

// CacheStats returns statistics of the layout cache.
// A planner without a cache reports zero values.
func (p *Planner) CacheStats() cache.Stats {
	if p.layouts == nil {
		return cache.Stats{}
	}
	return p.layouts.Stats()
}

// Reset drops every cached layout. Cache statistics are kept.
// Shapes planned afterwards are computed again.
func (p *Planner) Reset() {
	if p.layouts != nil {
		p.layouts.Clear()
	}
}

// defaultPlanner backs resources created without WithPlanner.
var defaultPlanner = NewPlanner()
