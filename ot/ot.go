// Package ot implements the "Simplest OT" 1-of-n oblivious transfer of
// Chou and Orlandi over a [group.Group].
//
// The sender publishes Pa. The receiver picks one of n public option
// scalars and answers with Pb. Both sides then derive a key point: the
// receiver learns only the key for its choice, while the sender derives
// one key per option without learning which one the receiver holds.
package ot

import (
	"io"

	"github.com/f3rmion/alice/group"
)

// SenderInit samples the sender's secret a and returns it with Pa = a*G.
func SenderInit(g group.Group, r io.Reader) (group.Scalar, group.Point, error) {
	a, err := g.RandomScalar(r)
	if err != nil {
		return nil, nil, err
	}
	return a, group.BaseMult(g, a), nil
}

// ReceiverChoose picks options[choice]. It returns the receiver's key
// b*Pa and the reply Pb = options[choice]*Pa + b*G.
func ReceiverChoose(g group.Group, r io.Reader, pa group.Point, options []group.Scalar, choice int) (group.Point, group.Point, error) {
	if choice < 0 || choice >= len(options) {
		panic("ot: choice out of range")
	}
	b, err := g.RandomScalar(r)
	if err != nil {
		return nil, nil, err
	}

	pb := g.NewPoint().ScalarMult(options[choice], pa)
	pb.Add(pb, group.BaseMult(g, b))

	return g.NewPoint().ScalarMult(b, pa), pb, nil
}

// SenderKeys sets keys[j] = a*(Pb - options[j]*Pa) for every option.
// Exactly one of them equals the receiver's key.
//
// All keys are computed the same way regardless of the receiver's
// choice.
func SenderKeys(g group.Group, a group.Scalar, pb group.Point, options []group.Scalar, keys []group.Point) {
	if len(keys) != len(options) {
		panic("ot: keys and options differ in length")
	}
	pa := group.BaseMult(g, a)
	for j, v := range options {
		k := g.NewPoint().ScalarMult(v, pa)
		k.Sub(pb, k)
		keys[j] = g.NewPoint().ScalarMult(a, k)
	}
}
