package mta

import (
	"hash"

	"github.com/f3rmion/alice/group"
)

// Cipher encrypts scalars under keys derived from oblivious transfer.
type Cipher interface {
	Encrypt(key group.Point, m group.Scalar) group.Scalar
	Decrypt(key group.Point, c group.Scalar) group.Scalar
}

// HashPad is a one-time pad over the scalar field. The pad is the hash
// of the key point reduced into a scalar. A key must protect at most one
// message.
type HashPad struct {
	Group   group.Group
	NewHash func() hash.Hash
}

func (h HashPad) pad(key group.Point) group.Scalar {
	return group.HashToScalar(h.Group, h.NewHash, key.Bytes())
}

// Encrypt returns m + H(key).
func (h HashPad) Encrypt(key group.Point, m group.Scalar) group.Scalar {
	return h.Group.NewScalar().Add(m, h.pad(key))
}

// Decrypt returns c - H(key).
func (h HashPad) Decrypt(key group.Point, c group.Scalar) group.Scalar {
	return h.Group.NewScalar().Sub(c, h.pad(key))
}
