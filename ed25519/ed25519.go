package ed25519

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math/big"
	"slices"

	"filippo.io/edwards25519"

	"github.com/f3rmion/alice/group"
)

const (
	scalarSize  = 32
	pointSize   = 32
	uniformSize = 64
)

// curveOrder is l, the order of the prime-order subgroup.
var curveOrder, _ = new(big.Int).SetString(
	"7237005577332262213973186563042994240857116359379907606001950938285454250989", 10)

var minusOne = func() *edwards25519.Scalar {
	one := NewScalar()
	one.SetUint64(1)
	return edwards25519.NewScalar().Negate(&one.inner)
}()

// Scalar represents an element of the scalar field of Edwards25519 and
// Ristretto255. It implements [group.Scalar].
type Scalar struct {
	inner edwards25519.Scalar
}

// NewScalar returns a new zero scalar.
func NewScalar() *Scalar {
	return &Scalar{inner: *edwards25519.NewScalar()}
}

// Add sets s to a + b (mod l) and returns s.
func (s *Scalar) Add(a, b group.Scalar) group.Scalar {
	s.inner.Add(&a.(*Scalar).inner, &b.(*Scalar).inner)
	return s
}

// Sub sets s to a - b (mod l) and returns s.
func (s *Scalar) Sub(a, b group.Scalar) group.Scalar {
	s.inner.Subtract(&a.(*Scalar).inner, &b.(*Scalar).inner)
	return s
}

// Mul sets s to a * b (mod l) and returns s.
func (s *Scalar) Mul(a, b group.Scalar) group.Scalar {
	s.inner.Multiply(&a.(*Scalar).inner, &b.(*Scalar).inner)
	return s
}

// Negate sets s to -a (mod l) and returns s.
func (s *Scalar) Negate(a group.Scalar) group.Scalar {
	s.inner.Negate(&a.(*Scalar).inner)
	return s
}

// Invert sets s to a^(-1) (mod l) and returns s.
func (s *Scalar) Invert(a group.Scalar) (group.Scalar, error) {
	aScalar := a.(*Scalar)
	if aScalar.IsZero() {
		return nil, fmt.Errorf("ed25519: %w", group.ErrZeroInverse)
	}
	s.inner.Invert(&aScalar.inner)
	return s, nil
}

// Set copies the value of a into s and returns s.
func (s *Scalar) Set(a group.Scalar) group.Scalar {
	s.inner.Set(&a.(*Scalar).inner)
	return s
}

// SetUint64 sets s to v and returns s.
func (s *Scalar) SetUint64(v uint64) group.Scalar {
	var buf [scalarSize]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	if _, err := s.inner.SetCanonicalBytes(buf[:]); err != nil {
		panic("ed25519: small integer is not canonical")
	}
	return s
}

// Bytes returns the 32-byte little-endian encoding of s.
func (s *Scalar) Bytes() []byte {
	return s.inner.Bytes()
}

// SetBytes sets s from a canonical 32-byte little-endian encoding and
// returns s.
func (s *Scalar) SetBytes(data []byte) (group.Scalar, error) {
	if _, err := s.inner.SetCanonicalBytes(data); err != nil {
		return nil, fmt.Errorf("ed25519: %w: %v", group.ErrInvalidScalar, err)
	}
	return s, nil
}

// Equal reports whether s and b represent the same scalar value.
func (s *Scalar) Equal(b group.Scalar) bool {
	return s.inner.Equal(&b.(*Scalar).inner) == 1
}

// IsZero reports whether s is the zero scalar.
func (s *Scalar) IsZero() bool {
	return s.inner.Equal(edwards25519.NewScalar()) == 1
}

// Point represents a point in the prime-order subgroup of Edwards25519.
// It implements [group.Point].
type Point struct {
	inner edwards25519.Point
}

func newPoint() *Point {
	return &Point{inner: *edwards25519.NewIdentityPoint()}
}

// Add sets p to a + b and returns p.
func (p *Point) Add(a, b group.Point) group.Point {
	p.inner.Add(&a.(*Point).inner, &b.(*Point).inner)
	return p
}

// Sub sets p to a - b and returns p.
func (p *Point) Sub(a, b group.Point) group.Point {
	p.inner.Subtract(&a.(*Point).inner, &b.(*Point).inner)
	return p
}

// Negate sets p to -a and returns p.
func (p *Point) Negate(a group.Point) group.Point {
	p.inner.Negate(&a.(*Point).inner)
	return p
}

// ScalarMult sets p to s * q and returns p.
func (p *Point) ScalarMult(s group.Scalar, q group.Point) group.Point {
	p.inner.ScalarMult(&s.(*Scalar).inner, &q.(*Point).inner)
	return p
}

// Set copies the value of a into p and returns p.
func (p *Point) Set(a group.Point) group.Point {
	p.inner.Set(&a.(*Point).inner)
	return p
}

// Bytes returns the 32-byte compressed encoding of p.
func (p *Point) Bytes() []byte {
	return p.inner.Bytes()
}

// SetBytes sets p from a 32-byte compressed encoding and returns p.
// Non-canonical encodings and points outside the prime-order subgroup
// are rejected.
func (p *Point) SetBytes(data []byte) (group.Point, error) {
	var v edwards25519.Point
	if _, err := v.SetBytes(data); err != nil {
		return nil, fmt.Errorf("ed25519: %w: %v", group.ErrInvalidPoint, err)
	}
	if !bytes.Equal(v.Bytes(), data) {
		return nil, fmt.Errorf("ed25519: %w: non-canonical", group.ErrInvalidPoint)
	}
	// (l-1)*P + P is the identity only for points of order dividing l.
	var check edwards25519.Point
	check.ScalarMult(minusOne, &v)
	check.Add(&check, &v)
	if check.Equal(edwards25519.NewIdentityPoint()) != 1 {
		return nil, fmt.Errorf("ed25519: %w: not in prime-order subgroup", group.ErrInvalidPoint)
	}
	p.inner.Set(&v)
	return p, nil
}

// Equal reports whether p and b represent the same point.
func (p *Point) Equal(b group.Point) bool {
	return p.inner.Equal(&b.(*Point).inner) == 1
}

// IsIdentity reports whether p is the identity element.
func (p *Point) IsIdentity() bool {
	return p.inner.Equal(edwards25519.NewIdentityPoint()) == 1
}

// Ed25519 implements [group.Group] for the Edwards25519 curve.
type Ed25519 struct{}

// Name returns "ed25519".
func (g *Ed25519) Name() string {
	return "ed25519"
}

// NewScalar returns a new scalar initialized to zero.
func (g *Ed25519) NewScalar() group.Scalar {
	return NewScalar()
}

// NewPoint returns a new point initialized to the identity.
func (g *Ed25519) NewPoint() group.Point {
	return newPoint()
}

// Generator returns the standard Ed25519 base point.
func (g *Ed25519) Generator() group.Point {
	return &Point{inner: *edwards25519.NewGeneratorPoint()}
}

// RandomScalar returns a uniformly random scalar by reducing 64 bytes
// read from r.
func (g *Ed25519) RandomScalar(r io.Reader) (group.Scalar, error) {
	return RandomScalar(r)
}

// ReduceScalar interprets data as a little-endian integer and reduces it
// modulo l.
func (g *Ed25519) ReduceScalar(data []byte) group.Scalar {
	return ReduceScalar(data)
}

// ScalarBits returns 253.
func (g *Ed25519) ScalarBits() int {
	return curveOrder.BitLen()
}

// ScalarSize returns 32.
func (g *Ed25519) ScalarSize() int {
	return scalarSize
}

// PointSize returns 32.
func (g *Ed25519) PointSize() int {
	return pointSize
}

// Order returns l as a big-endian byte slice.
func (g *Ed25519) Order() []byte {
	return curveOrder.Bytes()
}

// RandomScalar returns a uniformly random scalar of the 25519 field.
func RandomScalar(r io.Reader) (*Scalar, error) {
	var buf [uniformSize]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return nil, err
	}
	s := NewScalar()
	if _, err := s.inner.SetUniformBytes(buf[:]); err != nil {
		return nil, err
	}
	return s, nil
}

// ReduceScalar reduces a little-endian integer of any length modulo l.
func ReduceScalar(data []byte) *Scalar {
	s := NewScalar()
	if len(data) <= uniformSize {
		var buf [uniformSize]byte
		copy(buf[:], data)
		if _, err := s.inner.SetUniformBytes(buf[:]); err != nil {
			panic(err)
		}
		return s
	}
	v := new(big.Int).SetBytes(reversed(data))
	v.Mod(v, curveOrder)
	var buf [scalarSize]byte
	v.FillBytes(buf[:])
	if _, err := s.inner.SetCanonicalBytes(reversed(buf[:])); err != nil {
		panic(err)
	}
	return s
}

func reversed(b []byte) []byte {
	out := slices.Clone(b)
	slices.Reverse(out)
	return out
}
