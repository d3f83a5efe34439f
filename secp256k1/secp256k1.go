package secp256k1

import (
	"encoding/binary"
	"fmt"
	"io"
	"math/big"

	secp "github.com/decred/dcrd/dcrec/secp256k1/v4"

	"github.com/f3rmion/alice/group"
)

const (
	scalarSize = 32
	pointSize  = 33
)

var curveOrder = new(big.Int).Set(secp.Params().N)

// Scalar represents an element of the secp256k1 scalar field.
// It implements [group.Scalar] by wrapping secp.ModNScalar, which keeps
// its value reduced modulo the curve order at all times.
type Scalar struct {
	inner secp.ModNScalar
}

// Add sets s to a + b (mod n) and returns s.
func (s *Scalar) Add(a, b group.Scalar) group.Scalar {
	s.inner.Add2(&a.(*Scalar).inner, &b.(*Scalar).inner)
	return s
}

// Sub sets s to a - b (mod n) and returns s.
func (s *Scalar) Sub(a, b group.Scalar) group.Scalar {
	var neg secp.ModNScalar
	neg.NegateVal(&b.(*Scalar).inner)
	s.inner.Add2(&a.(*Scalar).inner, &neg)
	return s
}

// Mul sets s to a * b (mod n) and returns s.
func (s *Scalar) Mul(a, b group.Scalar) group.Scalar {
	s.inner.Mul2(&a.(*Scalar).inner, &b.(*Scalar).inner)
	return s
}

// Negate sets s to -a (mod n) and returns s.
func (s *Scalar) Negate(a group.Scalar) group.Scalar {
	s.inner.NegateVal(&a.(*Scalar).inner)
	return s
}

// Invert sets s to a^(-1) (mod n) and returns s.
func (s *Scalar) Invert(a group.Scalar) (group.Scalar, error) {
	aScalar := a.(*Scalar)
	if aScalar.inner.IsZero() {
		return nil, fmt.Errorf("secp256k1: %w", group.ErrZeroInverse)
	}
	s.inner.InverseValNonConst(&aScalar.inner)
	return s, nil
}

// Set copies the value of a into s and returns s.
func (s *Scalar) Set(a group.Scalar) group.Scalar {
	s.inner.Set(&a.(*Scalar).inner)
	return s
}

// SetUint64 sets s to v and returns s.
func (s *Scalar) SetUint64(v uint64) group.Scalar {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], v)
	s.inner.SetByteSlice(buf[:])
	return s
}

// Bytes returns the 32-byte big-endian encoding of s.
func (s *Scalar) Bytes() []byte {
	b := s.inner.Bytes()
	return b[:]
}

// SetBytes sets s from a 32-byte big-endian encoding and returns s.
// Values greater than or equal to the curve order are rejected.
func (s *Scalar) SetBytes(data []byte) (group.Scalar, error) {
	if len(data) != scalarSize {
		return nil, fmt.Errorf("secp256k1: %w: length %d", group.ErrInvalidScalar, len(data))
	}
	var buf [scalarSize]byte
	copy(buf[:], data)
	var v secp.ModNScalar
	if overflow := v.SetBytes(&buf); overflow != 0 {
		return nil, fmt.Errorf("secp256k1: %w: not reduced", group.ErrInvalidScalar)
	}
	s.inner.Set(&v)
	return s, nil
}

// Equal reports whether s and b represent the same scalar value.
func (s *Scalar) Equal(b group.Scalar) bool {
	return s.inner.Equals(&b.(*Scalar).inner)
}

// IsZero reports whether s is the zero scalar.
func (s *Scalar) IsZero() bool {
	return s.inner.IsZero()
}

// Point represents a point on the secp256k1 curve.
// It implements [group.Point] and [group.Affine].
//
// The wrapped Jacobian point is kept in normalized affine form (Z = 1)
// after every operation. The identity is stored as X = Y = 0.
type Point struct {
	inner secp.JacobianPoint
}

func (p *Point) normalize(j *secp.JacobianPoint) {
	if isInfinity(j) {
		p.inner = secp.JacobianPoint{}
		return
	}
	j.ToAffine()
	p.inner.Set(j)
}

func isInfinity(j *secp.JacobianPoint) bool {
	return (j.X.IsZero() && j.Y.IsZero()) || j.Z.IsZero()
}

// Add sets p to a + b and returns p.
func (p *Point) Add(a, b group.Point) group.Point {
	var r secp.JacobianPoint
	secp.AddNonConst(&a.(*Point).inner, &b.(*Point).inner, &r)
	p.normalize(&r)
	return p
}

// Sub sets p to a - b and returns p.
func (p *Point) Sub(a, b group.Point) group.Point {
	var neg Point
	neg.Negate(b)
	return p.Add(a, &neg)
}

// Negate sets p to -a and returns p.
func (p *Point) Negate(a group.Point) group.Point {
	var r secp.JacobianPoint
	r.Set(&a.(*Point).inner)
	if !isInfinity(&r) {
		r.Y.Normalize().Negate(1).Normalize()
	}
	p.normalize(&r)
	return p
}

// ScalarMult sets p to s * q and returns p.
func (p *Point) ScalarMult(s group.Scalar, q group.Point) group.Point {
	qPoint := q.(*Point)
	var r secp.JacobianPoint
	if !isInfinity(&qPoint.inner) {
		secp.ScalarMultNonConst(&s.(*Scalar).inner, &qPoint.inner, &r)
	}
	p.normalize(&r)
	return p
}

// Set copies the value of a into p and returns p.
func (p *Point) Set(a group.Point) group.Point {
	p.inner.Set(&a.(*Point).inner)
	return p
}

// Bytes returns the 33-byte compressed encoding of p, or 33 zero bytes
// for the identity.
func (p *Point) Bytes() []byte {
	if p.IsIdentity() {
		return make([]byte, pointSize)
	}
	return secp.NewPublicKey(&p.inner.X, &p.inner.Y).SerializeCompressed()
}

// SetBytes sets p from a 33-byte compressed encoding and returns p.
func (p *Point) SetBytes(data []byte) (group.Point, error) {
	if len(data) != pointSize {
		return nil, fmt.Errorf("secp256k1: %w: length %d", group.ErrInvalidPoint, len(data))
	}
	if isZeroBytes(data) {
		p.inner = secp.JacobianPoint{}
		return p, nil
	}
	if data[0] != secp.PubKeyFormatCompressedEven && data[0] != secp.PubKeyFormatCompressedOdd {
		return nil, fmt.Errorf("secp256k1: %w: prefix %#x", group.ErrInvalidPoint, data[0])
	}
	pub, err := secp.ParsePubKey(data)
	if err != nil {
		return nil, fmt.Errorf("secp256k1: %w: %v", group.ErrInvalidPoint, err)
	}
	var j secp.JacobianPoint
	pub.AsJacobian(&j)
	p.normalize(&j)
	return p, nil
}

// Equal reports whether p and b represent the same curve point.
func (p *Point) Equal(b group.Point) bool {
	bPoint := b.(*Point)
	if p.IsIdentity() || bPoint.IsIdentity() {
		return p.IsIdentity() == bPoint.IsIdentity()
	}
	return p.inner.X.Equals(&bPoint.inner.X) && p.inner.Y.Equals(&bPoint.inner.Y)
}

// IsIdentity reports whether p is the point at infinity.
func (p *Point) IsIdentity() bool {
	return isInfinity(&p.inner)
}

// XScalar returns the affine x-coordinate of p reduced modulo n.
func (p *Point) XScalar() (group.Scalar, error) {
	if p.IsIdentity() {
		return nil, fmt.Errorf("secp256k1: %w", group.ErrIdentity)
	}
	s := new(Scalar)
	s.inner.SetBytes(p.inner.X.Bytes())
	return s, nil
}

func isZeroBytes(data []byte) bool {
	var acc byte
	for _, b := range data {
		acc |= b
	}
	return acc == 0
}

// Secp256k1 implements [group.Group] for the secp256k1 curve.
//
// Secp256k1 is a zero-sized type. Create an instance with
// &Secp256k1{} or new(Secp256k1).
type Secp256k1 struct{}

// Name returns "secp256k1".
func (g *Secp256k1) Name() string {
	return "secp256k1"
}

// NewScalar returns a new scalar initialized to zero.
func (g *Secp256k1) NewScalar() group.Scalar {
	return new(Scalar)
}

// NewPoint returns a new point initialized to the identity.
func (g *Secp256k1) NewPoint() group.Point {
	return new(Point)
}

// Generator returns the standard secp256k1 base point.
func (g *Secp256k1) Generator() group.Point {
	var one secp.ModNScalar
	one.SetInt(1)
	var r secp.JacobianPoint
	secp.ScalarBaseMultNonConst(&one, &r)
	p := new(Point)
	p.normalize(&r)
	return p
}

// RandomScalar returns a uniformly random scalar by rejection sampling
// 32-byte strings read from r.
func (g *Secp256k1) RandomScalar(r io.Reader) (group.Scalar, error) {
	var buf [scalarSize]byte
	for {
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return nil, err
		}
		s := new(Scalar)
		if overflow := s.inner.SetBytes(&buf); overflow == 0 {
			return s, nil
		}
	}
}

// ReduceScalar interprets data as a big-endian integer and reduces it
// modulo n.
func (g *Secp256k1) ReduceScalar(data []byte) group.Scalar {
	v := new(big.Int).SetBytes(data)
	v.Mod(v, curveOrder)
	var buf [scalarSize]byte
	v.FillBytes(buf[:])
	s := new(Scalar)
	s.inner.SetBytes(&buf)
	return s
}

// ScalarBits returns 256.
func (g *Secp256k1) ScalarBits() int {
	return curveOrder.BitLen()
}

// ScalarSize returns 32.
func (g *Secp256k1) ScalarSize() int {
	return scalarSize
}

// PointSize returns 33.
func (g *Secp256k1) PointSize() int {
	return pointSize
}

// Order returns the curve order n as a big-endian byte slice.
func (g *Secp256k1) Order() []byte {
	return curveOrder.Bytes()
}
