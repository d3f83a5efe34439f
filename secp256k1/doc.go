// Package secp256k1 provides a secp256k1 implementation of the
// [group.Group] interface.
//
// Scalars are integers modulo the curve order n and use a 32-byte
// big-endian encoding. Points use the 33-byte SEC1 compressed encoding;
// the identity element, which has no SEC1 form, is encoded as 33 zero
// bytes.
//
// Points also implement [group.Affine], which exposes the affine
// x-coordinate reduced modulo n. This is what the two-party ECDSA-style
// signing protocol in package dkls needs.
//
// The curve arithmetic comes from github.com/decred/dcrd/dcrec/secp256k1/v4.
// Scalar inversion and scalar multiplication are the library's
// non-constant-time variants.
package secp256k1
