// Package bjj implements [group.Group] over Baby Jubjub, the twisted
// Edwards curve
//
//	168700*x^2 + y^2 = 1 + 168696*x^2*y^2
//
// defined over the BN254 scalar field. Arithmetic is delegated to
// gnark-crypto.
//
// Scalars live modulo the prime subgroup order
//
//	2736030358979909402780800718157159386076813972158567259200215660948447373041
//
// and are encoded as 32 bytes big-endian. Points use gnark-crypto's 32-byte
// compressed form; decoding rejects points outside the prime-order
// subgroup, so the cofactor never leaks into protocol code.
//
//	g := &bjj.BJJ{}
//	ys, commitment, err := dkg.Deal(g, rand.Reader, threshold, secret, xs)
package bjj
