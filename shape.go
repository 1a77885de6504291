package tiler

import (
	"fmt"
	"strings"

	"github.com/gogpu/gputypes"
)

// Dimension is the kind of a resource.
type Dimension uint8

const (
	// DimensionBuffer is a raw byte buffer.
	DimensionBuffer Dimension = iota

	// DimensionTexture1D is a 1D texture. Not supported by the planner.
	DimensionTexture1D

	// DimensionTexture2D is a 2D texture.
	DimensionTexture2D

	// DimensionTexture3D is a volume texture. Not supported by the planner.
	DimensionTexture3D

	// DimensionTextureCube is a cube texture. Not supported by the planner.
	DimensionTextureCube
)

// DimensionUnknown marks a texture whose dimension could not be mapped.
// ComputeLayout rejects it with ErrUnsupportedDimension.
const DimensionUnknown Dimension = 0xFF

// String returns a string representation of the dimension.
func (d Dimension) String() string {
	switch d {
	case DimensionBuffer:
		return "Buffer"
	case DimensionTexture1D:
		return "Texture1D"
	case DimensionTexture2D:
		return "Texture2D"
	case DimensionTexture3D:
		return "Texture3D"
	case DimensionTextureCube:
		return "TextureCube"
	default:
		return "Unknown"
	}
}

// Usage describes who reads and writes a resource.
type Usage uint8

const (
	// UsageDefault is GPU read/write memory, not directly CPU visible.
	UsageDefault Usage = iota

	// UsageImmutable is GPU read-only memory initialized at creation.
	UsageImmutable

	// UsageDynamic is GPU read-only memory updated by the CPU.
	UsageDynamic

	// UsageStaging is memory used for CPU/GPU transfers.
	UsageStaging
)

// String returns a string representation of the usage.
func (u Usage) String() string {
	switch u {
	case UsageDefault:
		return "Default"
	case UsageImmutable:
		return "Immutable"
	case UsageDynamic:
		return "Dynamic"
	case UsageStaging:
		return "Staging"
	default:
		return "Unknown"
	}
}

// BindFlags is the set of pipeline stages a resource is bound to.
type BindFlags uint32

const (
	BindVertexBuffer BindFlags = 1 << iota
	BindIndexBuffer
	BindConstantBuffer
	BindShaderResource
	BindRenderTarget
	BindDepthStencil
	BindStreamOutput
	BindUnorderedAccess
)

var bindNames = []struct {
	flag BindFlags
	name string
}{
	{BindVertexBuffer, "VertexBuffer"},
	{BindIndexBuffer, "IndexBuffer"},
	{BindConstantBuffer, "ConstantBuffer"},
	{BindShaderResource, "ShaderResource"},
	{BindRenderTarget, "RenderTarget"},
	{BindDepthStencil, "DepthStencil"},
	{BindStreamOutput, "StreamOutput"},
	{BindUnorderedAccess, "UnorderedAccess"},
}

// Has reports whether all bits of f are set.
func (b BindFlags) Has(f BindFlags) bool {
	return b&f == f
}

// String returns the set bits joined by '|', or "None".
func (b BindFlags) String() string {
	if b == 0 {
		return "None"
	}
	var parts []string
	for _, n := range bindNames {
		if b&n.flag != 0 {
			parts = append(parts, n.name)
		}
	}
	if rest := b &^ (BindUnorderedAccess<<1 - 1); rest != 0 {
		parts = append(parts, fmt.Sprintf("0x%x", uint32(rest)))
	}
	return strings.Join(parts, "|")
}

// CPUAccess is the set of CPU access rights requested at creation.
type CPUAccess uint8

const (
	CPUAccessRead CPUAccess = 1 << iota
	CPUAccessWrite
)

// MiscFlags carries creation flags the planner passes through untouched.
type MiscFlags uint32

const (
	MiscGenerateMips MiscFlags = 1 << iota
	MiscShared
	MiscTextureCube
)

// Shape describes one resource instance.
//
// A Shape is a plain comparable value: it is created once from caller
// parameters and only replaced, never mutated, by a resize.
type Shape struct {
	Dimension   Dimension
	Width       int
	Height      int
	MipLevels   int
	ArraySize   int
	SampleCount int
	Format      gputypes.TextureFormat
	Usage       Usage
	Bind        BindFlags
	CPUAccess   CPUAccess
	Misc        MiscFlags
}

// Resized returns a copy of s with a new mip 0 extent.
func (s Shape) Resized(width, height int) Shape {
	s.Width = width
	s.Height = height
	return s
}

// IsConstantBuffer reports whether s is a buffer bound as shader constants.
func (s Shape) IsConstantBuffer() bool {
	return s.Dimension == DimensionBuffer && s.Bind&BindConstantBuffer != 0
}

// ShapeFromTexture converts a WebGPU style texture description into a Shape.
//
// TextureBinding becomes BindShaderResource, RenderAttachment becomes
// BindRenderTarget (BindDepthStencil for depth formats) and StorageBinding
// becomes BindUnorderedAccess. A texture whose only usage is CopySrc is a
// staging texture; everything else is default usage.
func ShapeFromTexture(dim gputypes.TextureDimension, size gputypes.Extent3D, format gputypes.TextureFormat, usage gputypes.TextureUsage, mips, samples uint32) Shape {
	s := Shape{
		Width:       int(size.Width),
		Height:      int(size.Height),
		MipLevels:   max(1, int(mips)),
		ArraySize:   1,
		SampleCount: max(1, int(samples)),
		Format:      format,
		Usage:       UsageDefault,
	}

	switch dim {
	case gputypes.TextureDimension1D:
		s.Dimension = DimensionTexture1D
		s.Height = 1
	case gputypes.TextureDimension2D:
		s.Dimension = DimensionTexture2D
		s.ArraySize = max(1, int(size.DepthOrArrayLayers))
	case gputypes.TextureDimension3D:
		s.Dimension = DimensionTexture3D
	default:
		s.Dimension = DimensionUnknown
	}

	if usage&gputypes.TextureUsageTextureBinding != 0 {
		s.Bind |= BindShaderResource
	}
	if usage&gputypes.TextureUsageRenderAttachment != 0 {
		if isDepthFormat(format) {
			s.Bind |= BindDepthStencil
		} else {
			s.Bind |= BindRenderTarget
		}
	}
	if usage&gputypes.TextureUsageStorageBinding != 0 {
		s.Bind |= BindUnorderedAccess
	}
	if usage == gputypes.TextureUsageCopySrc {
		s.Usage = UsageStaging
		s.CPUAccess = CPUAccessRead
	}

	return s
}

// ShapeForBuffer converts a WebGPU style buffer description into a Shape.
//
// Uniform buffers become constant buffers. Mappable buffers are staging
// buffers with matching CPU access.
func ShapeForBuffer(size uint32, usage gputypes.BufferUsage) Shape {
	s := Shape{
		Dimension:   DimensionBuffer,
		Width:       int(size),
		Height:      1,
		MipLevels:   1,
		ArraySize:   1,
		SampleCount: 1,
		Format:      gputypes.TextureFormatUndefined,
		Usage:       UsageDefault,
	}

	if usage&gputypes.BufferUsageUniform != 0 {
		s.Bind |= BindConstantBuffer
	}
	if usage&gputypes.BufferUsageVertex != 0 {
		s.Bind |= BindVertexBuffer
	}
	if usage&gputypes.BufferUsageIndex != 0 {
		s.Bind |= BindIndexBuffer
	}
	if usage&gputypes.BufferUsageStorage != 0 {
		s.Bind |= BindUnorderedAccess
	}
	if usage&gputypes.BufferUsageMapRead != 0 {
		s.Usage = UsageStaging
		s.CPUAccess |= CPUAccessRead
	}
	if usage&gputypes.BufferUsageMapWrite != 0 {
		s.Usage = UsageStaging
		s.CPUAccess |= CPUAccessWrite
	}

	return s
}
