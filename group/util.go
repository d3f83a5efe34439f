package group

import (
	"hash"
	"io"
)

// BaseMult returns s*G for the group's generator G.
func BaseMult(g Group, s Scalar) Point {
	return g.NewPoint().ScalarMult(s, g.Generator())
}

// ScalarFromUint64 returns the scalar holding the small integer v.
func ScalarFromUint64(g Group, v uint64) Scalar {
	return g.NewScalar().SetUint64(v)
}

// Sum returns the sum of points, or the identity for an empty list.
func Sum(g Group, points ...Point) Point {
	acc := g.NewPoint()
	for _, p := range points {
		acc.Add(acc, p)
	}
	return acc
}

// HashToScalar feeds data in order into a fresh hash from newHash and
// reduces the digest into a scalar of g.
func HashToScalar(g Group, newHash func() hash.Hash, data ...[]byte) Scalar {
	h := newHash()
	for _, d := range data {
		h.Write(d)
	}
	return g.ReduceScalar(h.Sum(nil))
}

// RandomScalars returns n independent random scalars read from r.
func RandomScalars(g Group, r io.Reader, n int) ([]Scalar, error) {
	out := make([]Scalar, n)
	for i := range out {
		s, err := g.RandomScalar(r)
		if err != nil {
			return nil, err
		}
		out[i] = s
	}
	return out, nil
}
