// SPDX-License-Identifier: Unlicense OR MIT

// Package backend is the core's contract onto a compute-capable GPU API:
// buffers, textures, command lists and fences, addressed through the
// positional bind slots the mesh update pipeline expects (spec section
// 6.2). It carries no rasterization surface of its own; the core only ever
// dispatches compute and issues indirect draws against whatever swapchain
// the host application owns.
package backend

import "time"

// Device is the abstraction of an underlying GPU API (D3D12, Vulkan, or a
// CPU reference device for tests) that the core drives.
type Device interface {
	Caps() Caps
	NewTimer() Timer

	NewBuffer(kind BufferKind, elementSize, length int) (Buffer, error)
	NewTexture(desc TextureDesc) (Texture, error)
	NewComputeProgram(kernel ComputeKernel) (Program, error)
	NewCommandList() CommandList
	NewFence() (Fence, error)

	Execute(cmds CommandList) error
}

// BufferKind selects a buffer's memory residency and CPU access pattern.
type BufferKind uint8

const (
	// BufferDefault lives in device-local memory, read/write from shaders
	// only.
	BufferDefault BufferKind = iota
	// BufferUpload is CPU-writable, used as the source of a CopyBuffer
	// into a BufferDefault resource.
	BufferUpload
	// BufferReadback is CPU-readable, used as the destination of a
	// CopyBuffer out of a BufferDefault resource.
	BufferReadback
	// BufferRTAS backs a ray-tracing acceleration structure.
	BufferRTAS
)

// Buffer is a GPU-visible block of elementSize*length bytes.
type Buffer interface {
	Release()
	// WriteUploadRange uploads bytes at offset; valid only on a
	// BufferUpload-kind buffer.
	WriteUploadRange(offset int, bytes []byte)
	// ReadReadback returns the buffer's current contents; valid only on
	// a BufferReadback-kind buffer.
	ReadReadback() ([]byte, error)
	Size() int
}

// TextureDesc describes a texture to be created by NewTexture.
type TextureDesc struct {
	Format        TextureFormat
	Width, Height int
	MinFilter     TextureFilter
	MagFilter     TextureFilter
}

// Texture is a GPU-visible 2D image (cage albedo/normal maps, mip chains).
type Texture interface {
	Upload(offset, size [2]int, pixels []byte)
	Release()
}

// ComputeKernel names a compute shader's entry point and carries its
// per-target source, the way ShaderSources carries a rasterizer program's
// per-target GLSL/HLSL in the wider ecosystem this backend descends from.
type ComputeKernel struct {
	Name     string
	GLSL310ES string
	HLSL     []byte
}

// Program is a compiled, bindable compute kernel.
type Program interface {
	Release()
}

// Fence is a GPU/CPU synchronization point with a monotonically
// increasing counter.
type Fence interface {
	Signal(v uint64)
	WaitCompleted(v uint64)
	Value() uint64
}

// Timer measures elapsed GPU time between Begin and End.
type Timer interface {
	Begin()
	End()
	Duration() (time.Duration, bool)
	Release()
}

// SlotKind is the bind slot's register class (spec section 6.2's table).
type SlotKind uint8

const (
	SlotCBV SlotKind = iota
	SlotUAV
	SlotSRV
)

// Slot is a positional bind slot.
type Slot struct {
	Kind  SlotKind
	Index int
}

// The fixed bind slots the mesh update pipeline's kernels expect (spec
// section 6.2's table, reproduced as named constants rather than magic
// indices scattered through the pipeline).
var (
	GlobalCBSlot   = Slot{SlotCBV, 0}
	GeometryCBSlot = Slot{SlotCBV, 1}
	UpdateCBSlot   = Slot{SlotCBV, 2}

	CBTTreeBufferSlot     = Slot{SlotUAV, 0}
	CBTBitfieldBufferSlot = Slot{SlotUAV, 1}
	HeapIDBufferSlot      = Slot{SlotUAV, 2}
	NeighboursCurrentSlot = Slot{SlotUAV, 3}
	NeighboursNextSlot    = Slot{SlotUAV, 4}

	UpdateBufferSlot         = Slot{SlotUAV, 5}
	ClassificationBufferSlot = Slot{SlotUAV, 6}
	SimplificationBufferSlot = Slot{SlotUAV, 7}
	AllocateBufferSlot       = Slot{SlotUAV, 8}
	PropagateBufferSlot      = Slot{SlotUAV, 9}
	MemoryBufferSlot         = Slot{SlotUAV, 10}

	IndirectDispatchSlot = Slot{SlotUAV, 11}
	IndirectDrawSlot     = Slot{SlotUAV, 12}
	BisectorIndicesSlot  = Slot{SlotUAV, 13}
	VisibleIndicesSlot   = Slot{SlotUAV, 14}
	ModifiedIndicesSlot  = Slot{SlotUAV, 15}

	CurrentVertexBufferSlot    = Slot{SlotSRV, 0}
	IndexedBisectorBufferSlot = Slot{SlotSRV, 1}
)

// CommandList records a sequence of barriers, copies and dispatches for
// submission to a Device.
type CommandList interface {
	Reset()
	Close()

	CopyBuffer(src, dst Buffer)
	CopyRange(src Buffer, srcOffset int, dst Buffer, dstOffset int, n int)
	UAVBarrier(b Buffer)
	Clear(b Buffer)

	BindProgram(p Program)
	BindBuffer(slot Slot, b Buffer)
	BindTexture(slot Slot, t Texture)

	Dispatch(gx, gy, gz int)
	DispatchIndirect(args Buffer, offset int)
	DrawProceduralIndirect(args Buffer, offset int)
}

type TextureFilter uint8

const (
	FilterNearest TextureFilter = iota
	FilterLinear
)

type TextureFormat uint8

const (
	TextureFormatRGBA8 TextureFormat = iota
	TextureFormatFloat
	TextureFormatSRGB
)

type Features uint

const (
	FeatureTimers Features = 1 << iota
	FeatureCompute
	FeatureIndirectDraw
)

func (f Features) Has(feats Features) bool {
	return f&feats == feats
}

// Caps describes what a Device supports.
type Caps struct {
	Features          Features
	MaxBufferElements int
}
