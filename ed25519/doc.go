// Package ed25519 provides an Edwards25519 implementation of the
// [group.Group] interface.
//
// Scalars are integers modulo the prime subgroup order
// l = 2^252 + 27742317777372353535851937790883648493 and use the 32-byte
// little-endian encoding. Points use the standard 32-byte compressed
// Edwards y encoding and must lie in the prime-order subgroup.
//
// The [Scalar] type is shared with package ristretto255, since both
// groups have the same order.
//
// The curve arithmetic comes from filippo.io/edwards25519.
package ed25519
