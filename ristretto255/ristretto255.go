package ristretto255

import (
	"bytes"
	"fmt"
	"io"

	"github.com/bwesterb/go-ristretto"

	"github.com/f3rmion/alice/ed25519"
	"github.com/f3rmion/alice/group"
)

const pointSize = 32

// Point represents an element of the Ristretto255 group.
// It implements [group.Point].
type Point struct {
	inner ristretto.Point
}

func newPoint() *Point {
	p := new(Point)
	p.inner.SetZero()
	return p
}

// toRistretto converts a shared 25519 scalar into go-ristretto's
// representation through the common little-endian encoding.
func toRistretto(s group.Scalar) *ristretto.Scalar {
	var buf [32]byte
	copy(buf[:], s.(*ed25519.Scalar).Bytes())
	return new(ristretto.Scalar).SetBytes(&buf)
}

// Add sets p to a + b and returns p.
func (p *Point) Add(a, b group.Point) group.Point {
	p.inner.Add(&a.(*Point).inner, &b.(*Point).inner)
	return p
}

// Sub sets p to a - b and returns p.
func (p *Point) Sub(a, b group.Point) group.Point {
	p.inner.Sub(&a.(*Point).inner, &b.(*Point).inner)
	return p
}

// Negate sets p to -a and returns p.
func (p *Point) Negate(a group.Point) group.Point {
	p.inner.Neg(&a.(*Point).inner)
	return p
}

// ScalarMult sets p to s * q and returns p.
func (p *Point) ScalarMult(s group.Scalar, q group.Point) group.Point {
	var base ristretto.Point
	base.Set(&q.(*Point).inner)
	p.inner.ScalarMult(&base, toRistretto(s))
	return p
}

// Set copies the value of a into p and returns p.
func (p *Point) Set(a group.Point) group.Point {
	p.inner.Set(&a.(*Point).inner)
	return p
}

// Bytes returns the canonical 32-byte Ristretto encoding of p.
func (p *Point) Bytes() []byte {
	return p.inner.Bytes()
}

// SetBytes sets p from a canonical 32-byte encoding and returns p.
func (p *Point) SetBytes(data []byte) (group.Point, error) {
	if len(data) != pointSize {
		return nil, fmt.Errorf("ristretto255: %w: length %d", group.ErrInvalidPoint, len(data))
	}
	var buf [pointSize]byte
	copy(buf[:], data)
	var v ristretto.Point
	if !v.SetBytes(&buf) {
		return nil, fmt.Errorf("ristretto255: %w", group.ErrInvalidPoint)
	}
	if !bytes.Equal(v.Bytes(), data) {
		return nil, fmt.Errorf("ristretto255: %w: non-canonical", group.ErrInvalidPoint)
	}
	p.inner.Set(&v)
	return p, nil
}

// Equal reports whether p and b represent the same group element.
func (p *Point) Equal(b group.Point) bool {
	return p.inner.Equals(&b.(*Point).inner)
}

// IsIdentity reports whether p is the identity element.
func (p *Point) IsIdentity() bool {
	var zero ristretto.Point
	zero.SetZero()
	return p.inner.Equals(&zero)
}

// Ristretto255 implements [group.Group] for the Ristretto255 group.
type Ristretto255 struct{}

// Name returns "ristretto25519".
func (g *Ristretto255) Name() string {
	return "ristretto25519"
}

// NewScalar returns a new zero scalar of the shared 25519 field.
func (g *Ristretto255) NewScalar() group.Scalar {
	return ed25519.NewScalar()
}

// NewPoint returns a new point initialized to the identity.
func (g *Ristretto255) NewPoint() group.Point {
	return newPoint()
}

// Generator returns the Ristretto255 base point.
func (g *Ristretto255) Generator() group.Point {
	p := new(Point)
	p.inner.SetBase()
	return p
}

// RandomScalar returns a uniformly random scalar read from r.
func (g *Ristretto255) RandomScalar(r io.Reader) (group.Scalar, error) {
	return ed25519.RandomScalar(r)
}

// ReduceScalar interprets data as a little-endian integer and reduces it
// modulo the group order.
func (g *Ristretto255) ReduceScalar(data []byte) group.Scalar {
	return ed25519.ReduceScalar(data)
}

// ScalarBits returns 253.
func (g *Ristretto255) ScalarBits() int {
	return (&ed25519.Ed25519{}).ScalarBits()
}

// ScalarSize returns 32.
func (g *Ristretto255) ScalarSize() int {
	return (&ed25519.Ed25519{}).ScalarSize()
}

// PointSize returns 32.
func (g *Ristretto255) PointSize() int {
	return pointSize
}

// Order returns the group order as a big-endian byte slice.
func (g *Ristretto255) Order() []byte {
	return (&ed25519.Ed25519{}).Order()
}
