// SPDX-License-Identifier: Unlicense OR MIT

// Package refdevice is an in-memory backend.Device implementation: every
// buffer and texture is a plain Go slice, every dispatch runs its kernel
// function synchronously on the calling goroutine. It exists so the
// pipeline and its tests can run without a real GPU, the way a software
// rasterizer stands in for a hardware one.
package refdevice

import (
	"fmt"
	"time"

	"subdiv.dev/gpu/backend"
)

// Kernel is the CPU-executable body a compute program runs when dispatched.
// Real kernels are compiled shader bytecode; the reference device instead
// takes a Go closure that reads/writes the bound buffers directly, indexed
// by workgroup coordinates.
type Kernel func(cmds *CommandList, gx, gy, gz int)

// Device is the in-memory backend.Device.
type Device struct {
	kernels map[string]Kernel
	caps    backend.Caps
}

// New returns a Device. kernels maps a ComputeKernel's Name to the Go
// function that implements it; NewComputeProgram looks a kernel up by name
// at program-creation time, mirroring how a real device compiles a named
// entry point out of ComputeKernel's HLSL/GLSL source.
func New(kernels map[string]Kernel) *Device {
	return &Device{
		kernels: kernels,
		caps: backend.Caps{
			Features:          backend.FeatureTimers | backend.FeatureCompute | backend.FeatureIndirectDraw,
			MaxBufferElements: 1 << 28,
		},
	}
}

func (d *Device) Caps() backend.Caps { return d.caps }

func (d *Device) NewTimer() backend.Timer { return &timer{} }

func (d *Device) NewBuffer(kind backend.BufferKind, elementSize, length int) (backend.Buffer, error) {
	if elementSize <= 0 || length < 0 {
		return nil, fmt.Errorf("refdevice: invalid buffer shape %d*%d", elementSize, length)
	}
	return &Buffer{kind: kind, elementSize: elementSize, data: make([]byte, elementSize*length)}, nil
}

func (d *Device) NewTexture(desc backend.TextureDesc) (backend.Texture, error) {
	if desc.Width <= 0 || desc.Height <= 0 {
		return nil, fmt.Errorf("refdevice: invalid texture size %dx%d", desc.Width, desc.Height)
	}
	return &Texture{desc: desc, pixels: make([]byte, texelSize(desc.Format)*desc.Width*desc.Height)}, nil
}

func (d *Device) NewComputeProgram(kernel backend.ComputeKernel) (backend.Program, error) {
	fn, ok := d.kernels[kernel.Name]
	if !ok {
		return nil, fmt.Errorf("refdevice: no kernel registered for %q", kernel.Name)
	}
	return &Program{name: kernel.Name, fn: fn}, nil
}

func (d *Device) NewCommandList() backend.CommandList {
	return &CommandList{buffers: make(map[backend.Slot]*Buffer), textures: make(map[backend.Slot]*Texture)}
}

func (d *Device) NewFence() (backend.Fence, error) {
	return &fence{}, nil
}

// Execute runs every recorded command in order on the calling goroutine.
func (d *Device) Execute(cmds backend.CommandList) error {
	cl, ok := cmds.(*CommandList)
	if !ok {
		return fmt.Errorf("refdevice: foreign command list %T", cmds)
	}
	for _, op := range cl.ops {
		if err := op(cl); err != nil {
			return err
		}
	}
	return nil
}

func texelSize(f backend.TextureFormat) int {
	switch f {
	case backend.TextureFormatFloat:
		return 16
	default:
		return 4
	}
}

type timer struct {
	start, end time.Time
	done       bool
}

func (t *timer) Begin()   { t.start = time.Now(); t.done = false }
func (t *timer) End()     { t.end = time.Now(); t.done = true }
func (t *timer) Release() {}
func (t *timer) Duration() (time.Duration, bool) {
	if !t.done {
		return 0, false
	}
	return t.end.Sub(t.start), true
}

type fence struct {
	value uint64
}

func (f *fence) Signal(v uint64)       { f.value = v }
func (f *fence) WaitCompleted(v uint64) {}
func (f *fence) Value() uint64          { return f.value }

// Buffer is an in-memory backend.Buffer.
type Buffer struct {
	kind        backend.BufferKind
	elementSize int
	data        []byte
}

func (b *Buffer) Release() { b.data = nil }
func (b *Buffer) Size() int { return len(b.data) }

func (b *Buffer) WriteUploadRange(offset int, bytes []byte) {
	copy(b.data[offset:], bytes)
}

func (b *Buffer) ReadReadback() ([]byte, error) {
	out := make([]byte, len(b.data))
	copy(out, b.data)
	return out, nil
}

// Texture is an in-memory backend.Texture.
type Texture struct {
	desc   backend.TextureDesc
	pixels []byte
}

func (t *Texture) Release() { t.pixels = nil }

func (t *Texture) Upload(offset, size [2]int, pixels []byte) {
	texel := texelSize(t.desc.Format)
	for row := 0; row < size[1]; row++ {
		dstOff := ((offset[1]+row)*t.desc.Width + offset[0]) * texel
		srcOff := row * size[0] * texel
		copy(t.pixels[dstOff:dstOff+size[0]*texel], pixels[srcOff:srcOff+size[0]*texel])
	}
}

// Program is a resolved, bindable Kernel.
type Program struct {
	name string
	fn   Kernel
}

func (p *Program) Release() {}
