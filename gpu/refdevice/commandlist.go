// SPDX-License-Identifier: Unlicense OR MIT

package refdevice

import (
	"fmt"

	"subdiv.dev/gpu/backend"
)

type op func(cl *CommandList) error

// CommandList is the in-memory backend.CommandList: a recorded sequence of
// ops, replayed in order by Device.Execute.
type CommandList struct {
	ops      []op
	buffers  map[backend.Slot]*Buffer
	textures map[backend.Slot]*Texture
	program  *Program
	closed   bool
}

func (cl *CommandList) Reset() {
	cl.ops = cl.ops[:0]
	for k := range cl.buffers {
		delete(cl.buffers, k)
	}
	for k := range cl.textures {
		delete(cl.textures, k)
	}
	cl.program = nil
	cl.closed = false
}

func (cl *CommandList) Close() { cl.closed = true }

func (cl *CommandList) CopyBuffer(src, dst backend.Buffer) {
	cl.ops = append(cl.ops, func(cl *CommandList) error {
		s, d := src.(*Buffer), dst.(*Buffer)
		n := len(s.data)
		if n > len(d.data) {
			n = len(d.data)
		}
		copy(d.data, s.data[:n])
		return nil
	})
}

func (cl *CommandList) CopyRange(src backend.Buffer, srcOffset int, dst backend.Buffer, dstOffset int, n int) {
	cl.ops = append(cl.ops, func(cl *CommandList) error {
		s, d := src.(*Buffer), dst.(*Buffer)
		copy(d.data[dstOffset:dstOffset+n], s.data[srcOffset:srcOffset+n])
		return nil
	})
}

// UAVBarrier is a no-op here: the reference device runs every op
// synchronously on a single goroutine, so there is never a pending write to
// fence against. Kept on the interface so pipeline code that inserts
// barriers between passes runs unmodified against a real device.
func (cl *CommandList) UAVBarrier(b backend.Buffer) {}

func (cl *CommandList) Clear(b backend.Buffer) {
	cl.ops = append(cl.ops, func(cl *CommandList) error {
		buf := b.(*Buffer)
		for i := range buf.data {
			buf.data[i] = 0
		}
		return nil
	})
}

func (cl *CommandList) BindProgram(p backend.Program) {
	cl.program = p.(*Program)
}

func (cl *CommandList) BindBuffer(slot backend.Slot, b backend.Buffer) {
	cl.buffers[slot] = b.(*Buffer)
}

func (cl *CommandList) BindTexture(slot backend.Slot, t backend.Texture) {
	cl.textures[slot] = t.(*Texture)
}

// Buffer returns the buffer currently bound at slot, for a Kernel's use.
func (cl *CommandList) Buffer(slot backend.Slot) *Buffer { return cl.buffers[slot] }

// Texture returns the texture currently bound at slot, for a Kernel's use.
func (cl *CommandList) Texture(slot backend.Slot) *Texture { return cl.textures[slot] }

func (cl *CommandList) Dispatch(gx, gy, gz int) {
	cl.ops = append(cl.ops, func(cl *CommandList) error {
		if cl.program == nil {
			return fmt.Errorf("refdevice: dispatch with no bound program")
		}
		cl.program.fn(cl, gx, gy, gz)
		return nil
	})
}

// DispatchIndirect reads the (gx,gy,gz) dispatch dimensions out of args at
// offset, matching a real device's indirect-dispatch argument layout (three
// consecutive uint32s), then dispatches as usual.
func (cl *CommandList) DispatchIndirect(args backend.Buffer, offset int) {
	cl.ops = append(cl.ops, func(cl *CommandList) error {
		if cl.program == nil {
			return fmt.Errorf("refdevice: indirect dispatch with no bound program")
		}
		a := args.(*Buffer)
		gx := le32(a.data[offset:])
		gy := le32(a.data[offset+4:])
		gz := le32(a.data[offset+8:])
		cl.program.fn(cl, int(gx), int(gy), int(gz))
		return nil
	})
}

// DrawProceduralIndirect is the pipeline's only "draw" call: the indexed
// bisector buffer is fed to the vertex stage of a host-owned rasterizer, not
// to this backend. The reference device has nothing to rasterize onto, so
// it records the call as a no-op op in the list.
func (cl *CommandList) DrawProceduralIndirect(args backend.Buffer, offset int) {
	cl.ops = append(cl.ops, func(cl *CommandList) error { return nil })
}

func le32(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}
