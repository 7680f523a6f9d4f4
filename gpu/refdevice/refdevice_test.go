// SPDX-License-Identifier: Unlicense OR MIT

package refdevice

import (
	"testing"

	"github.com/stretchr/testify/require"

	"subdiv.dev/gpu/backend"
)

func TestUploadCopyReadback(t *testing.T) {
	d := New(nil)

	upload, err := d.NewBuffer(backend.BufferUpload, 4, 4)
	require.NoError(t, err)
	upload.WriteUploadRange(0, []byte{1, 2, 3, 4, 5, 6, 7, 8})

	target, err := d.NewBuffer(backend.BufferDefault, 4, 4)
	require.NoError(t, err)

	readback, err := d.NewBuffer(backend.BufferReadback, 4, 4)
	require.NoError(t, err)

	cl := d.NewCommandList()
	cl.CopyBuffer(upload, target)
	cl.CopyBuffer(target, readback)
	cl.Close()
	require.NoError(t, d.Execute(cl))

	got, err := readback.ReadReadback()
	require.NoError(t, err)
	require.Equal(t, []byte{1, 2, 3, 4, 5, 6, 7, 8, 0, 0, 0, 0, 0, 0, 0, 0}, got)
}

func TestDispatchRunsBoundKernel(t *testing.T) {
	var gotX, gotY, gotZ int
	d := New(map[string]Kernel{
		"increment": func(cl *CommandList, gx, gy, gz int) {
			gotX, gotY, gotZ = gx, gy, gz
			buf := cl.Buffer(backend.MemoryBufferSlot)
			buf.data[0]++
		},
	})

	prog, err := d.NewComputeProgram(backend.ComputeKernel{Name: "increment"})
	require.NoError(t, err)

	counter, err := d.NewBuffer(backend.BufferDefault, 4, 1)
	require.NoError(t, err)

	cl := d.NewCommandList()
	cl.BindProgram(prog)
	cl.BindBuffer(backend.MemoryBufferSlot, counter)
	cl.Dispatch(2, 3, 1)
	cl.Close()
	require.NoError(t, d.Execute(cl))

	require.Equal(t, 2, gotX)
	require.Equal(t, 3, gotY)
	require.Equal(t, 1, gotZ)
	require.Equal(t, byte(1), counter.(*Buffer).data[0])
}

func TestDispatchIndirectReadsArgsBuffer(t *testing.T) {
	var gotX, gotY, gotZ int
	d := New(map[string]Kernel{
		"noop": func(cl *CommandList, gx, gy, gz int) {
			gotX, gotY, gotZ = gx, gy, gz
		},
	})

	prog, err := d.NewComputeProgram(backend.ComputeKernel{Name: "noop"})
	require.NoError(t, err)

	args, err := d.NewBuffer(backend.BufferDefault, 4, 3)
	require.NoError(t, err)
	args.WriteUploadRange(0, []byte{
		5, 0, 0, 0,
		6, 0, 0, 0,
		1, 0, 0, 0,
	})

	cl := d.NewCommandList()
	cl.BindProgram(prog)
	cl.DispatchIndirect(args, 0)
	cl.Close()
	require.NoError(t, d.Execute(cl))

	require.Equal(t, 5, gotX)
	require.Equal(t, 6, gotY)
	require.Equal(t, 1, gotZ)
}

func TestNewComputeProgramUnknownKernel(t *testing.T) {
	d := New(nil)
	_, err := d.NewComputeProgram(backend.ComputeKernel{Name: "missing"})
	require.Error(t, err)
}
