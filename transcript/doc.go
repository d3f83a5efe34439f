// Package transcript derives Schnorr and FROST challenges from an ordered
// list of inputs.
//
// A transcript names a hash function and a sequence of inputs. Each input
// is literal text, literal hex bytes, or a placeholder for one of the two
// points known only at signing time: the group public key Y and the
// aggregate nonce commitment R. The challenge is the digest of all inputs
// in order, reduced into the group's scalar field.
//
// Transcripts are usually exchanged as YAML:
//
//	hash_function: sha3-256
//	input:
//	  - !point Y
//	  - !point R
//	  - !text Hello There!
//	  - !hex 48656c6c6f20546865726521
//
// Hex inputs are decoded when the transcript is parsed, so computing a
// challenge cannot fail.
package transcript
