// Package ristretto255 provides a Ristretto255 implementation of the
// [group.Group] interface.
//
// Ristretto255 is the prime-order quotient of Edwards25519, so it shares
// its scalar field with package ed25519: scalars here are *ed25519.Scalar
// values and can be mixed freely between the two groups. Points use the
// canonical 32-byte Ristretto encoding.
//
// Point arithmetic comes from github.com/bwesterb/go-ristretto.
package ristretto255
