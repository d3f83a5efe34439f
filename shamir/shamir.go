// Package shamir implements Shamir secret sharing over a [group.Group]'s
// scalar field: polynomial construction, share issuance and Lagrange
// interpolation of secrets and of their group images.
//
// Duplicate or zero x-coordinates and mismatched slice lengths are
// programming errors and cause a panic.
package shamir

import (
	"io"

	"github.com/f3rmion/alice/group"
)

// Polynomial holds the coefficients of a secret polynomial, constant
// term first. Its length is the sharing threshold.
type Polynomial []group.Scalar

// NewPolynomial returns a polynomial of degree threshold-1 whose constant
// term is secret and whose other coefficients are random.
func NewPolynomial(g group.Group, r io.Reader, secret group.Scalar, threshold int) (Polynomial, error) {
	if threshold < 1 {
		panic("shamir: threshold must be positive")
	}
	p := make(Polynomial, threshold)
	if err := p.InitFromSecret(g, r, secret); err != nil {
		return nil, err
	}
	return p, nil
}

// InitFromSecret sets p[0] to secret and fills the remaining
// coefficients with random scalars.
func (p Polynomial) InitFromSecret(g group.Group, r io.Reader, secret group.Scalar) error {
	p[0] = g.NewScalar().Set(secret)
	for i := 1; i < len(p); i++ {
		c, err := g.RandomScalar(r)
		if err != nil {
			return err
		}
		p[i] = c
	}
	return nil
}

// Threshold returns the number of shares needed to reconstruct.
func (p Polynomial) Threshold() int {
	return len(p)
}

// Evaluate returns p(x) using Horner's rule.
func (p Polynomial) Evaluate(g group.Group, x group.Scalar) group.Scalar {
	result := g.NewScalar().Set(p[len(p)-1])
	for i := len(p) - 2; i >= 0; i-- {
		result.Mul(result, x)
		result.Add(result, p[i])
	}
	return result
}

// IssueShare returns the share y = p(x) for the participant at x.
// It panics if x is zero, since p(0) is the secret.
func (p Polynomial) IssueShare(g group.Group, x group.Scalar) group.Scalar {
	if x.IsZero() {
		panic("shamir: share issued at x = 0")
	}
	return p.Evaluate(g, x)
}

// LagrangeCoefficient returns the Lagrange basis polynomial for xs[i]
// evaluated at x:
//
//	prod_{j != i} (x - xs[j]) / (xs[i] - xs[j])
//
// It panics if xs contains duplicates.
func LagrangeCoefficient(g group.Group, xs []group.Scalar, i int, x group.Scalar) group.Scalar {
	num := group.ScalarFromUint64(g, 1)
	den := group.ScalarFromUint64(g, 1)
	for j, xj := range xs {
		if j == i {
			continue
		}
		// num *= x - xj
		num.Mul(num, g.NewScalar().Sub(x, xj))
		// den *= xi - xj
		den.Mul(den, g.NewScalar().Sub(xs[i], xj))
	}
	denInv, err := g.NewScalar().Invert(den)
	if err != nil {
		panic("shamir: duplicate x-coordinates")
	}
	return num.Mul(num, denInv)
}

// Reconstruct interpolates the shares (xs[i], ys[i]) at zero, recovering
// the secret when at least threshold shares are given.
func Reconstruct(g group.Group, xs, ys []group.Scalar) group.Scalar {
	if len(xs) != len(ys) {
		panic("shamir: mismatched share slices")
	}
	zero := g.NewScalar()
	secret := g.NewScalar()
	for i, y := range ys {
		term := g.NewScalar().Mul(LagrangeCoefficient(g, xs, i, zero), y)
		secret.Add(secret, term)
	}
	return secret
}

// InterpolatePoint interpolates public shares (xs[i], points[i]) at zero
// in the exponent. For points[i] = g*y_i it returns g*secret.
func InterpolatePoint(g group.Group, xs []group.Scalar, points []group.Point) group.Point {
	if len(xs) != len(points) {
		panic("shamir: mismatched share slices")
	}
	zero := g.NewScalar()
	acc := g.NewPoint()
	for i, p := range points {
		acc.Add(acc, g.NewPoint().ScalarMult(LagrangeCoefficient(g, xs, i, zero), p))
	}
	return acc
}
