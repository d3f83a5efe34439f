// Package feldman implements Feldman verifiable secret sharing on top of
// package shamir.
//
// A dealer publishes g*c_j for every polynomial coefficient c_j. Any
// participant can then check its share against the commitment without
// learning anything about the other shares.
package feldman

import (
	"github.com/f3rmion/alice/group"
	"github.com/f3rmion/alice/shamir"
)

// Commitment holds g*c_j for each coefficient c_j, constant term first.
// Its first element is the public image of the shared secret.
type Commitment []group.Point

// Commit returns the commitment to p.
func Commit(g group.Group, p shamir.Polynomial) Commitment {
	c := make(Commitment, len(p))
	c.InitFromPolynomial(g, p)
	return c
}

// InitFromPolynomial sets c[j] = g*p[j]. The lengths must match.
func (c Commitment) InitFromPolynomial(g group.Group, p shamir.Polynomial) {
	if len(c) != len(p) {
		panic("feldman: commitment and polynomial lengths differ")
	}
	for j, coeff := range p {
		c[j] = group.BaseMult(g, coeff)
	}
}

// PublicValue returns g*secret.
func (c Commitment) PublicValue() group.Point {
	return c[0]
}

// Evaluate returns sum_j c[j]*x^j, which equals g*p(x) for an honest
// dealer.
func (c Commitment) Evaluate(g group.Group, x group.Scalar) group.Point {
	acc := g.NewPoint()
	xPower := group.ScalarFromUint64(g, 1)
	for _, commit := range c {
		acc.Add(acc, g.NewPoint().ScalarMult(xPower, commit))
		xPower.Mul(xPower, x)
	}
	return acc
}

// VerifyShare reports whether y is the share at x of the polynomial c
// commits to.
func (c Commitment) VerifyShare(g group.Group, x, y group.Scalar) bool {
	return c.Evaluate(g, x).Equal(group.BaseMult(g, y))
}
