package group

import (
	"errors"
	"io"
)

// Errors shared by every [Group] implementation. Implementations wrap
// them with curve-specific context so callers can match with errors.Is.
var (
	ErrInvalidScalar = errors.New("group: invalid scalar encoding")
	ErrInvalidPoint  = errors.New("group: invalid point encoding")
	ErrZeroInverse   = errors.New("group: cannot invert zero scalar")
	ErrIdentity      = errors.New("group: identity has no affine coordinates")
)

// Scalar represents an element of the scalar field associated with a
// cryptographic group. Scalars are integers modulo the group order and
// are used as exponents in scalar multiplication.
//
// All arithmetic methods use a mutable receiver pattern: they modify
// the receiver, store the result in it, and return it. The receiver may
// alias an operand, so s.Add(s, b) is valid.
//
// Implementations must ensure all operations produce results in the
// valid range [0, order).
type Scalar interface {
	// Add sets the receiver to a+b and returns it.
	Add(a, b Scalar) Scalar
	// Sub sets the receiver to a-b and returns it.
	Sub(a, b Scalar) Scalar
	// Mul sets the receiver to a*b and returns it.
	Mul(a, b Scalar) Scalar
	// Negate sets the receiver to -a and returns it.
	Negate(a Scalar) Scalar
	// Invert sets the receiver to a^{-1} and returns it.
	// Returns ErrZeroInverse if a is zero.
	Invert(a Scalar) (Scalar, error)
	// Set sets the receiver to a and returns it.
	Set(a Scalar) Scalar
	// SetUint64 sets the receiver to the small integer v and returns it.
	SetUint64(v uint64) Scalar
	// Bytes returns the canonical fixed-width encoding of the scalar.
	Bytes() []byte
	// SetBytes sets the receiver from a canonical encoding and returns it.
	// Encodings of the wrong length or not reduced modulo the order are
	// rejected with ErrInvalidScalar.
	SetBytes(data []byte) (Scalar, error)
	// Equal reports whether the receiver equals b.
	Equal(b Scalar) bool
	// IsZero reports whether the receiver is zero.
	IsZero() bool
}

// Point is a group element. Like [Scalar], its arithmetic methods write
// into the receiver. [Group.NewPoint] returns the identity.
type Point interface {
	// Add sets the receiver to a+b and returns it.
	Add(a, b Point) Point
	// Sub sets the receiver to a-b and returns it.
	Sub(a, b Point) Point
	// Negate sets the receiver to -a and returns it.
	Negate(a Point) Point
	// ScalarMult sets the receiver to s*p and returns it.
	ScalarMult(s Scalar, p Point) Point
	// Set sets the receiver to a and returns it.
	Set(a Point) Point
	// Bytes returns the canonical fixed-width encoding of the point.
	Bytes() []byte
	// SetBytes sets the receiver from a canonical encoding and returns it.
	// Returns ErrInvalidPoint if the data does not decode to a group element
	// or does not round-trip to the same bytes.
	SetBytes(data []byte) (Point, error)
	// Equal reports whether the receiver equals b.
	Equal(b Point) bool
	// IsIdentity reports whether the receiver is the identity element.
	IsIdentity() bool
}

// Affine is implemented by points whose affine x-coordinate can be
// embedded into the scalar field. It is required by the two-party
// ECDSA-style signing protocol only.
type Affine interface {
	// XScalar returns the affine x-coordinate reduced modulo the group
	// order. Returns ErrIdentity for the identity element.
	XScalar() (Scalar, error)
}

// Group is a prime-order group together with its scalar field. Protocol
// packages take a Group and never name a concrete curve.
//
//	g := curve.Secp256k1.Group()
//	k, _ := g.RandomScalar(rand.Reader)
//	r := g.NewPoint().ScalarMult(k, g.Generator())
type Group interface {
	// Name returns the curve identifier, e.g. "secp256k1".
	Name() string
	// NewScalar returns a new zero scalar.
	NewScalar() Scalar
	// NewPoint returns a new identity point.
	NewPoint() Point
	// Generator returns the group's base point.
	Generator() Point
	// RandomScalar returns a uniformly random scalar read from r.
	RandomScalar(r io.Reader) (Scalar, error)
	// ReduceScalar interprets data as an integer in the scalar's canonical
	// byte order and reduces it modulo the group order.
	ReduceScalar(data []byte) Scalar
	// ScalarBits returns the bit length of the group order.
	ScalarBits() int
	// ScalarSize returns the length of a canonical scalar encoding.
	ScalarSize() int
	// PointSize returns the length of a canonical point encoding.
	PointSize() int
	// Order returns the group order as a big-endian byte slice.
	Order() []byte
}
