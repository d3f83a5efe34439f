// Package schnorr implements the Schnorr proof of knowledge of a discrete
// logarithm and verification of Schnorr signatures whose challenge is
// derived from a transcript.
package schnorr

import (
	"github.com/f3rmion/alice/group"
	"github.com/f3rmion/alice/transcript"
)

// Prove returns the response s = c*x + k and the commitment r = g*k for
// secret x, nonce k and challenge c.
func Prove(g group.Group, x, k, c group.Scalar) (s group.Scalar, r group.Point) {
	s = g.NewScalar().Mul(c, x)
	s.Add(s, k)
	r = group.BaseMult(g, k)
	return s, r
}

// Verify reports whether g*s == r + y*c.
func Verify(g group.Group, y group.Point, c, s group.Scalar, r group.Point) bool {
	lhs := group.BaseMult(g, s)
	rhs := g.NewPoint().ScalarMult(c, y)
	rhs.Add(rhs, r)
	return lhs.Equal(rhs)
}

// VerifySignature checks the signature (r, s) under public key y, with
// the challenge c = t.Challenge(y, r).
func VerifySignature(g group.Group, t *transcript.Transcript, y, r group.Point, s group.Scalar) bool {
	return Verify(g, y, t.Challenge(g, y, r), s, r)
}
