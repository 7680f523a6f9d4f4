// SPDX-License-Identifier: Unlicense OR MIT

package cage

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// magic is the 8-byte ASCII header every .ccm file must start with.
var magic = [8]byte{'c', 'c', '_', 'M', 'e', 's', 'h', '1'}

// LoadErrorKind classifies why loading a cage failed (spec section 7).
type LoadErrorKind int

const (
	// BadMagic means the file's first 8 bytes did not match "cc_Mesh1".
	BadMagic LoadErrorKind = iota
	// IOFailure means a read did not return the expected number of bytes.
	IOFailure
	// Alloc means a declared count could not be satisfied (e.g. negative).
	Alloc
)

func (k LoadErrorKind) String() string {
	switch k {
	case BadMagic:
		return "BadMagic"
	case IOFailure:
		return "Io"
	case Alloc:
		return "Alloc"
	default:
		return "Unknown"
	}
}

// LoadError wraps a load failure with its kind; on any LoadError the caller
// receives no partial Cage.
type LoadError struct {
	Kind LoadErrorKind
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("cage: load failed (%s): %v", e.Kind, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Load reads a .ccm cage from r. Strict little-endian, tightly packed, field
// order exactly as spec section 6.1 / ccmesh.h describes.
func Load(r io.Reader) (*Cage, error) {
	var hdr [8]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return nil, &LoadError{Kind: IOFailure, Err: err}
	}
	if hdr != magic {
		return nil, &LoadError{Kind: BadMagic, Err: errors.New("missing cc_Mesh1 magic")}
	}

	var counts [5]int32
	if err := binary.Read(r, binary.LittleEndian, &counts); err != nil {
		return nil, &LoadError{Kind: IOFailure, Err: err}
	}
	vertexCount, uvCount, halfedgeCount, edgeCount, faceCount := counts[0], counts[1], counts[2], counts[3], counts[4]
	if vertexCount < 0 || uvCount < 0 || halfedgeCount < 0 || edgeCount < 0 || faceCount < 0 {
		return nil, &LoadError{Kind: Alloc, Err: errors.New("negative count")}
	}

	c := &Cage{}
	var err error
	if c.VertexToHalfedge, err = readU32Slice(r, int(vertexCount)); err != nil {
		return nil, err
	}
	if c.EdgeToHalfedge, err = readU32Slice(r, int(edgeCount)); err != nil {
		return nil, err
	}
	if c.FaceToHalfedge, err = readU32Slice(r, int(faceCount)); err != nil {
		return nil, err
	}
	if c.VertexPoints, err = readPoints(r, int(vertexCount)); err != nil {
		return nil, err
	}
	if c.UVs, err = readUVs(r, int(uvCount)); err != nil {
		return nil, err
	}
	if c.Creases, err = readCreases(r, int(edgeCount)); err != nil {
		return nil, err
	}
	if c.Halfedges, err = readHalfedges(r, int(halfedgeCount)); err != nil {
		return nil, err
	}
	return c, nil
}

// Save serialises c back to its .ccm form. Save(Load(file)) reproduces file
// byte-for-byte (spec section 8 round-trip property).
func Save(w io.Writer, c *Cage) error {
	if _, err := w.Write(magic[:]); err != nil {
		return err
	}
	counts := [5]int32{
		int32(c.VertexCount()), int32(c.UVCount()), int32(c.HalfedgeCount()),
		int32(c.EdgeCount()), int32(c.FaceCount()),
	}
	if err := binary.Write(w, binary.LittleEndian, counts); err != nil {
		return err
	}
	if err := writeU32Slice(w, c.VertexToHalfedge); err != nil {
		return err
	}
	if err := writeU32Slice(w, c.EdgeToHalfedge); err != nil {
		return err
	}
	if err := writeU32Slice(w, c.FaceToHalfedge); err != nil {
		return err
	}
	for _, p := range c.VertexPoints {
		if err := binary.Write(w, binary.LittleEndian, p); err != nil {
			return err
		}
	}
	for _, uv := range c.UVs {
		if err := binary.Write(w, binary.LittleEndian, uv); err != nil {
			return err
		}
	}
	for _, cr := range c.Creases {
		raw := struct {
			Next, Prev int32
			Sharpness  float32
		}{int32(cr.Next), int32(cr.Prev), cr.Sharpness}
		if err := binary.Write(w, binary.LittleEndian, raw); err != nil {
			return err
		}
	}
	for _, h := range c.Halfedges {
		raw := [7]int32{
			int32(h.Twin), int32(h.Next), int32(h.Prev),
			int32(h.Face), int32(h.Edge), int32(h.Vertex), int32(h.UVIndex),
		}
		if err := binary.Write(w, binary.LittleEndian, raw); err != nil {
			return err
		}
	}
	return nil
}

func readU32Slice(r io.Reader, n int) ([]uint32, error) {
	raw := make([]int32, n)
	if n > 0 {
		if err := binary.Read(r, binary.LittleEndian, raw); err != nil {
			return nil, &LoadError{Kind: IOFailure, Err: err}
		}
	}
	out := make([]uint32, n)
	for i, v := range raw {
		out[i] = signedToIndex(v)
	}
	return out, nil
}

func writeU32Slice(w io.Writer, s []uint32) error {
	raw := make([]int32, len(s))
	for i, v := range s {
		raw[i] = indexToSigned(v)
	}
	return binary.Write(w, binary.LittleEndian, raw)
}

func readPoints(r io.Reader, n int) ([]Point, error) {
	pts := make([]Point, n)
	if n > 0 {
		if err := binary.Read(r, binary.LittleEndian, pts); err != nil {
			return nil, &LoadError{Kind: IOFailure, Err: err}
		}
	}
	return pts, nil
}

func readUVs(r io.Reader, n int) ([]UV, error) {
	out := make([]UV, n)
	if n > 0 {
		if err := binary.Read(r, binary.LittleEndian, out); err != nil {
			return nil, &LoadError{Kind: IOFailure, Err: err}
		}
	}
	return out, nil
}

func readCreases(r io.Reader, n int) ([]Crease, error) {
	raw := make([]struct {
		Next, Prev int32
		Sharpness  float32
	}, n)
	if n > 0 {
		if err := binary.Read(r, binary.LittleEndian, raw); err != nil {
			return nil, &LoadError{Kind: IOFailure, Err: err}
		}
	}
	out := make([]Crease, n)
	for i, v := range raw {
		out[i] = Crease{Next: signedToIndex(v.Next), Prev: signedToIndex(v.Prev), Sharpness: v.Sharpness}
	}
	return out, nil
}

func readHalfedges(r io.Reader, n int) ([]Halfedge, error) {
	raw := make([][7]int32, n)
	if n > 0 {
		if err := binary.Read(r, binary.LittleEndian, raw); err != nil {
			return nil, &LoadError{Kind: IOFailure, Err: err}
		}
	}
	out := make([]Halfedge, n)
	for i, v := range raw {
		out[i] = Halfedge{
			Twin: signedToIndex(v[0]), Next: signedToIndex(v[1]), Prev: signedToIndex(v[2]),
			Face: signedToIndex(v[3]), Edge: signedToIndex(v[4]), Vertex: signedToIndex(v[5]), UVIndex: signedToIndex(v[6]),
		}
	}
	return out, nil
}

// signedToIndex/indexToSigned convert between the file's signed 32-bit ids
// (-1 meaning none) and the in-memory Invalid sentinel.
func signedToIndex(v int32) uint32 {
	if v < 0 {
		return Invalid
	}
	return uint32(v)
}

func indexToSigned(v uint32) int32 {
	if v == Invalid {
		return -1
	}
	return int32(v)
}
