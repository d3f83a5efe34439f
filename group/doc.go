// Package group defines abstract interfaces for the prime-order groups
// used by the threshold protocols in this module.
//
// This package provides three core interfaces that abstract over the
// mathematical operations needed by secret sharing, key generation and
// threshold signing:
//
//   - [Scalar]: Elements of the scalar field (integers modulo the group order)
//   - [Point]: Elements of the group (points on an elliptic curve)
//   - [Group]: Factory and utility methods for creating scalars and points
//
// Points that can expose an affine x-coordinate additionally implement
// [Affine].
//
// # Design Philosophy
//
// The interfaces use a mutable receiver pattern for efficiency. Operations
// like Add, Mul, and ScalarMult set the receiver to the result and return it,
// allowing method chaining while minimizing allocations:
//
//	// Compute a + b*c
//	result := g.NewScalar().Mul(b, c)
//	result = g.NewScalar().Add(a, result)
//
// Decoding and inversion return errors rather than panicking. Mixing
// values from different groups is a programming error and panics.
//
// # Implementing a Group
//
// To implement these interfaces for a new elliptic curve:
//
//  1. Create a Scalar type that wraps your field element and implements [Scalar]
//  2. Create a Point type that wraps your curve point and implements [Point]
//  3. Create a Group type that implements [Group] as a factory
//
// Package grouptest holds conformance tests every implementation should
// pass. See the secp256k1, ed25519, ristretto255 and bjj packages for
// complete implementations.
//
// # Security Considerations
//
// Implementations must ensure:
//
//   - Scalar arithmetic is performed modulo the group order
//   - Random scalars are generated from cryptographically secure sources
//   - Invalid and non-canonical encodings are rejected in SetBytes
package group
