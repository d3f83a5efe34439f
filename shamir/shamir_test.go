package shamir

import (
	"crypto/rand"
	"testing"

	"github.com/f3rmion/alice/curve"
	"github.com/f3rmion/alice/group"
)

func xsFor(g group.Group, n int) []group.Scalar {
	xs := make([]group.Scalar, n)
	for i := range xs {
		xs[i] = group.ScalarFromUint64(g, uint64(i+1))
	}
	return xs
}

func TestReconstruct(t *testing.T) {
	for _, id := range curve.All() {
		g := id.Group()
		t.Run(id.String(), func(t *testing.T) {
			for _, tc := range []struct{ threshold, total int }{{1, 1}, {2, 3}, {3, 5}, {5, 5}} {
				secret, _ := g.RandomScalar(rand.Reader)
				p, err := NewPolynomial(g, rand.Reader, secret, tc.threshold)
				if err != nil {
					t.Fatal(err)
				}
				xs := xsFor(g, tc.total)
				ys := make([]group.Scalar, len(xs))
				for i, x := range xs {
					ys[i] = p.IssueShare(g, x)
				}

				// Any threshold-sized window recovers the secret.
				for start := 0; start+tc.threshold <= tc.total; start++ {
					end := start + tc.threshold
					got := Reconstruct(g, xs[start:end], ys[start:end])
					if !got.Equal(secret) {
						t.Errorf("%d-of-%d: shares [%d,%d) did not recover the secret", tc.threshold, tc.total, start, end)
					}
				}

				if tc.threshold > 1 {
					got := Reconstruct(g, xs[:tc.threshold-1], ys[:tc.threshold-1])
					if got.Equal(secret) {
						t.Errorf("%d-of-%d: too few shares recovered the secret", tc.threshold, tc.total)
					}
				}
			}
		})
	}
}

func TestInterpolatePoint(t *testing.T) {
	for _, id := range curve.All() {
		g := id.Group()
		t.Run(id.String(), func(t *testing.T) {
			secret, _ := g.RandomScalar(rand.Reader)
			p, err := NewPolynomial(g, rand.Reader, secret, 3)
			if err != nil {
				t.Fatal(err)
			}
			xs := xsFor(g, 3)
			points := make([]group.Point, len(xs))
			for i, x := range xs {
				points[i] = group.BaseMult(g, p.IssueShare(g, x))
			}
			if !InterpolatePoint(g, xs, points).Equal(group.BaseMult(g, secret)) {
				t.Error("interpolated point != g*secret")
			}
		})
	}
}

func TestLagrangeAtNode(t *testing.T) {
	g := curve.Secp256k1.Group()
	xs := xsFor(g, 4)
	for i := range xs {
		for j := range xs {
			l := LagrangeCoefficient(g, xs, i, xs[j])
			if i == j && !l.Equal(group.ScalarFromUint64(g, 1)) {
				t.Errorf("L_%d(x_%d) != 1", i, j)
			}
			if i != j && !l.IsZero() {
				t.Errorf("L_%d(x_%d) != 0", i, j)
			}
		}
	}
}

func TestIssueShareAtZeroPanics(t *testing.T) {
	g := curve.Ed25519.Group()
	secret, _ := g.RandomScalar(rand.Reader)
	p, _ := NewPolynomial(g, rand.Reader, secret, 2)
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	p.IssueShare(g, g.NewScalar())
}

func TestDuplicateXsPanics(t *testing.T) {
	g := curve.Ristretto25519.Group()
	one := group.ScalarFromUint64(g, 1)
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	LagrangeCoefficient(g, []group.Scalar{one, one}, 0, g.NewScalar())
}
