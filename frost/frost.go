package frost

import (
	"errors"
	"fmt"
	"hash"

	"github.com/f3rmion/alice/group"
)

// ErrInvalidShard is matched by every *ComplaintError.
var ErrInvalidShard = errors.New("frost: invalid signature shard")

// FROST holds the group and the hash function used for binding factors.
type FROST struct {
	group   group.Group
	newHash func() hash.Hash
}

// Nonce is a signer's single-use secret nonce pair.
type Nonce struct {
	D group.Scalar // hiding nonce
	E group.Scalar // binding nonce
}

// Commitment is the public image of a Nonce, published before signing.
type Commitment struct {
	D group.Point // d * G
	E group.Point // e * G
}

// Equal reports whether c and o commit to the same nonce pair.
func (c Commitment) Equal(o Commitment) bool {
	return c.D.Equal(o.D) && c.E.Equal(o.E)
}

// Shard is one signer's contribution to a signature.
type Shard struct {
	Y group.Point  // public share y_i * G
	R group.Point  // effective nonce commitment k_i * G
	Z group.Scalar // response k_i + lambda_i * y_i * c
}

// Signature is a Schnorr signature together with the key it verifies
// under: z * G == R + Y * c, where c is derived from (Y, R).
type Signature struct {
	Y group.Point
	R group.Point
	Z group.Scalar
}

// Challenge derives the Schnorr challenge from the public key and the
// group commitment. It typically binds the message as well; see
// transcript.Transcript.Challenger.
type Challenge func(y, r group.Point) group.Scalar

// ComplaintError reports which shards failed verification during
// aggregation. Complaints[i] is set when shards[i] was rejected.
type ComplaintError struct {
	Complaints []bool
}

// Accused returns the indices of the rejected shards.
func (e *ComplaintError) Accused() []int {
	var out []int
	for i, c := range e.Complaints {
		if c {
			out = append(out, i)
		}
	}
	return out
}

func (e *ComplaintError) Error() string {
	return fmt.Sprintf("frost: invalid signature shards from signers %v", e.Accused())
}

func (e *ComplaintError) Unwrap() error {
	return ErrInvalidShard
}

// New creates a FROST instance over g. newHash is used to derive the
// per-signer binding factors and must be the same for all signers.
func New(g group.Group, newHash func() hash.Hash) *FROST {
	return &FROST{
		group:   g,
		newHash: newHash,
	}
}

// Group returns the group f operates in.
func (f *FROST) Group() group.Group {
	return f.group
}
