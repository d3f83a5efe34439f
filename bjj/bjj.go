package bjj

import (
	"bytes"
	"fmt"
	"io"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254/twistededwards"

	"github.com/f3rmion/alice/group"
)

const (
	scalarSize = 32
	pointSize  = 32

	// wideSize is the number of random bytes reduced into one scalar.
	wideSize = 48
)

var (
	params = twistededwards.GetEdwardsCurve()

	// order is the prime subgroup order, not the BN254 field modulus.
	order = new(big.Int).Set(&params.Order)
)

// Scalar is an integer modulo the Baby Jubjub subgroup order.
// The zero value is the scalar 0.
type Scalar struct {
	v big.Int
}

func scalar(s group.Scalar) *big.Int { return &s.(*Scalar).v }

// mod reduces s in place and returns it as a group.Scalar.
func (s *Scalar) mod() group.Scalar {
	s.v.Mod(&s.v, order)
	return s
}

// Add sets s to a + b and returns s.
func (s *Scalar) Add(a, b group.Scalar) group.Scalar {
	s.v.Add(scalar(a), scalar(b))
	return s.mod()
}

// Sub sets s to a - b and returns s.
func (s *Scalar) Sub(a, b group.Scalar) group.Scalar {
	s.v.Sub(scalar(a), scalar(b))
	return s.mod()
}

// Mul sets s to a * b and returns s.
func (s *Scalar) Mul(a, b group.Scalar) group.Scalar {
	s.v.Mul(scalar(a), scalar(b))
	return s.mod()
}

// Negate sets s to -a and returns s.
func (s *Scalar) Negate(a group.Scalar) group.Scalar {
	s.v.Neg(scalar(a))
	return s.mod()
}

// Invert sets s to 1/a and returns s. It fails for a = 0.
func (s *Scalar) Invert(a group.Scalar) (group.Scalar, error) {
	if a.IsZero() {
		return nil, fmt.Errorf("bjj: %w", group.ErrZeroInverse)
	}
	s.v.ModInverse(scalar(a), order)
	return s, nil
}

// Set copies a into s and returns s.
func (s *Scalar) Set(a group.Scalar) group.Scalar {
	s.v.Set(scalar(a))
	return s
}

// SetUint64 sets s to v and returns s.
func (s *Scalar) SetUint64(v uint64) group.Scalar {
	s.v.SetUint64(v)
	return s.mod()
}

// Bytes returns the 32-byte big-endian encoding of s.
func (s *Scalar) Bytes() []byte {
	return s.v.FillBytes(make([]byte, scalarSize))
}

// SetBytes decodes a 32-byte big-endian scalar. Unreduced values are
// rejected.
func (s *Scalar) SetBytes(data []byte) (group.Scalar, error) {
	if len(data) != scalarSize {
		return nil, fmt.Errorf("bjj: %w: length %d", group.ErrInvalidScalar, len(data))
	}
	var v big.Int
	if v.SetBytes(data).Cmp(order) >= 0 {
		return nil, fmt.Errorf("bjj: %w: not reduced", group.ErrInvalidScalar)
	}
	s.v.Set(&v)
	return s, nil
}

// Equal reports whether s and b are the same scalar.
func (s *Scalar) Equal(b group.Scalar) bool {
	return s.v.Cmp(scalar(b)) == 0
}

// IsZero reports whether s is 0.
func (s *Scalar) IsZero() bool {
	return s.v.Sign() == 0
}

// Point is a Baby Jubjub point in affine coordinates. Use
// [BJJ.NewPoint] rather than the zero value, which is not on the curve.
type Point struct {
	a twistededwards.PointAffine
}

func point(p group.Point) *twistededwards.PointAffine { return &p.(*Point).a }

// Add sets p to a + b and returns p.
func (p *Point) Add(a, b group.Point) group.Point {
	p.a.Add(point(a), point(b))
	return p
}

// Sub sets p to a - b and returns p.
func (p *Point) Sub(a, b group.Point) group.Point {
	var neg twistededwards.PointAffine
	neg.Neg(point(b))
	p.a.Add(point(a), &neg)
	return p
}

// Negate sets p to -a and returns p.
func (p *Point) Negate(a group.Point) group.Point {
	p.a.Neg(point(a))
	return p
}

// ScalarMult sets p to s * q and returns p.
func (p *Point) ScalarMult(s group.Scalar, q group.Point) group.Point {
	p.a.ScalarMultiplication(point(q), scalar(s))
	return p
}

// Set copies a into p and returns p.
func (p *Point) Set(a group.Point) group.Point {
	p.a.Set(point(a))
	return p
}

// Bytes returns the 32-byte compressed encoding of p.
func (p *Point) Bytes() []byte {
	enc := p.a.Bytes()
	return enc[:]
}

// SetBytes decodes a compressed point. Non-canonical encodings and points
// outside the prime-order subgroup are rejected.
func (p *Point) SetBytes(data []byte) (group.Point, error) {
	if len(data) != pointSize {
		return nil, fmt.Errorf("bjj: %w: length %d", group.ErrInvalidPoint, len(data))
	}
	var v twistededwards.PointAffine
	if err := v.Unmarshal(data); err != nil {
		return nil, fmt.Errorf("bjj: %w: %v", group.ErrInvalidPoint, err)
	}
	if enc := v.Bytes(); !bytes.Equal(enc[:], data) {
		return nil, fmt.Errorf("bjj: %w: non-canonical", group.ErrInvalidPoint)
	}
	var torsion twistededwards.PointAffine
	if !torsion.ScalarMultiplication(&v, order).IsZero() {
		return nil, fmt.Errorf("bjj: %w: not in prime-order subgroup", group.ErrInvalidPoint)
	}
	p.a.Set(&v)
	return p, nil
}

// Equal reports whether p and b are the same point.
func (p *Point) Equal(b group.Point) bool {
	return p.a.Equal(point(b))
}

// IsIdentity reports whether p is (0, 1).
func (p *Point) IsIdentity() bool {
	return p.a.IsZero()
}

// BJJ is the Baby Jubjub [group.Group].
type BJJ struct{}

// Name returns "babyjubjub".
func (*BJJ) Name() string { return "babyjubjub" }

// NewScalar returns the scalar 0.
func (*BJJ) NewScalar() group.Scalar { return new(Scalar) }

// NewPoint returns the identity.
func (*BJJ) NewPoint() group.Point {
	p := new(Point)
	p.a.X.SetZero()
	p.a.Y.SetOne()
	return p
}

// Generator returns the standard Baby Jubjub base point.
func (*BJJ) Generator() group.Point {
	return &Point{a: params.Base}
}

// RandomScalar reduces 48 bytes from r, leaving a bias below 2^-128.
func (g *BJJ) RandomScalar(r io.Reader) (group.Scalar, error) {
	var buf [wideSize]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return nil, err
	}
	return g.ReduceScalar(buf[:]), nil
}

// ReduceScalar reduces big-endian data of any length modulo the order.
func (*BJJ) ReduceScalar(data []byte) group.Scalar {
	s := new(Scalar)
	s.v.SetBytes(data)
	return s.mod()
}

// ScalarBits returns the bit length of the subgroup order.
func (*BJJ) ScalarBits() int { return order.BitLen() }

// ScalarSize returns 32.
func (*BJJ) ScalarSize() int { return scalarSize }

// PointSize returns 32.
func (*BJJ) PointSize() int { return pointSize }

// Order returns the subgroup order, big-endian.
func (*BJJ) Order() []byte { return order.Bytes() }
