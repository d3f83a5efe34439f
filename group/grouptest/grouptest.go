// Package grouptest checks that a [group.Group] implementation satisfies
// the algebraic laws the protocol packages rely on.
package grouptest

import (
	"bytes"
	"crypto/rand"
	"errors"
	"io"
	"testing"

	"golang.org/x/crypto/sha3"

	"github.com/f3rmion/alice/group"
)

// Reader returns a deterministic byte stream derived from seed. It is
// meant for reproducible tests only.
func Reader(seed string) io.Reader {
	h := sha3.NewShake256()
	h.Write([]byte(seed))
	return h
}

func randomScalar(t *testing.T, g group.Group) group.Scalar {
	t.Helper()
	s, err := g.RandomScalar(rand.Reader)
	if err != nil {
		t.Fatalf("random scalar: %v", err)
	}
	return s
}

func randomNonZero(t *testing.T, g group.Group) group.Scalar {
	t.Helper()
	for {
		if s := randomScalar(t, g); !s.IsZero() {
			return s
		}
	}
}

// Run runs the scalar and point conformance tests against g.
func Run(t *testing.T, g group.Group) {
	t.Run("Scalar", func(t *testing.T) { testScalar(t, g) })
	t.Run("Point", func(t *testing.T) { testPoint(t, g) })
	t.Run("Reduce", func(t *testing.T) { testReduce(t, g) })
}

func testScalar(t *testing.T, g group.Group) {
	t.Run("AddSub", func(t *testing.T) {
		a := randomScalar(t, g)
		b := randomScalar(t, g)

		sum := g.NewScalar().Add(a, b)
		diff := g.NewScalar().Sub(sum, b)

		if !diff.Equal(a) {
			t.Error("(a+b)-b != a")
		}
	})

	t.Run("Aliasing", func(t *testing.T) {
		a := randomScalar(t, g)
		b := randomScalar(t, g)
		want := g.NewScalar().Mul(a, b)
		want.Add(want, b)

		got := g.NewScalar().Set(a)
		got.Mul(got, b)
		got.Add(got, b)

		if !got.Equal(want) {
			t.Error("aliased receiver gave a different result")
		}
	})

	t.Run("MulInvert", func(t *testing.T) {
		a := randomNonZero(t, g)
		aInv, err := g.NewScalar().Invert(a)
		if err != nil {
			t.Fatal(err)
		}

		product := g.NewScalar().Mul(a, aInv)
		if !product.Equal(group.ScalarFromUint64(g, 1)) {
			t.Error("a*a^-1 != 1")
		}
	})

	t.Run("InvertZeroFails", func(t *testing.T) {
		_, err := g.NewScalar().Invert(g.NewScalar())
		if !errors.Is(err, group.ErrZeroInverse) {
			t.Errorf("expected ErrZeroInverse, got %v", err)
		}
	})

	t.Run("Negate", func(t *testing.T) {
		a := randomScalar(t, g)
		negA := g.NewScalar().Negate(a)

		if !g.NewScalar().Add(a, negA).IsZero() {
			t.Error("a + (-a) != 0")
		}
	})

	t.Run("SetUint64", func(t *testing.T) {
		two := group.ScalarFromUint64(g, 2)
		three := group.ScalarFromUint64(g, 3)
		six := g.NewScalar().Mul(two, three)
		if !six.Equal(group.ScalarFromUint64(g, 6)) {
			t.Error("2*3 != 6")
		}
		if !group.ScalarFromUint64(g, 0).IsZero() {
			t.Error("0 is not zero")
		}
	})

	t.Run("BytesRoundtrip", func(t *testing.T) {
		a := randomScalar(t, g)

		enc := a.Bytes()
		if len(enc) != g.ScalarSize() {
			t.Fatalf("encoding length %d, want %d", len(enc), g.ScalarSize())
		}
		restored, err := g.NewScalar().SetBytes(enc)
		if err != nil {
			t.Fatal(err)
		}
		if !restored.Equal(a) {
			t.Error("scalar bytes roundtrip failed")
		}
	})

	t.Run("RejectNonCanonical", func(t *testing.T) {
		bad := bytes.Repeat([]byte{0xff}, g.ScalarSize())
		if _, err := g.NewScalar().SetBytes(bad); !errors.Is(err, group.ErrInvalidScalar) {
			t.Errorf("all-ones scalar accepted: %v", err)
		}
		if _, err := g.NewScalar().SetBytes([]byte{1, 2, 3}); !errors.Is(err, group.ErrInvalidScalar) {
			t.Errorf("short scalar accepted: %v", err)
		}
	})

	t.Run("NewScalarIsZero", func(t *testing.T) {
		if !g.NewScalar().IsZero() {
			t.Error("new scalar should be zero")
		}
	})

	t.Run("Equal", func(t *testing.T) {
		a := randomNonZero(t, g)
		b := g.NewScalar().Set(a)
		if !a.Equal(b) {
			t.Error("copied scalar should equal original")
		}

		b = g.NewScalar().Negate(a)
		if a.Equal(b) {
			t.Error("a should not equal -a")
		}
	})
}

func testPoint(t *testing.T, g group.Group) {
	t.Run("AddSub", func(t *testing.T) {
		P := group.BaseMult(g, randomScalar(t, g))
		Q := group.BaseMult(g, randomScalar(t, g))

		sum := g.NewPoint().Add(P, Q)
		diff := g.NewPoint().Sub(sum, Q)

		if !diff.Equal(P) {
			t.Error("(P+Q)-Q != P")
		}
	})

	t.Run("Distributive", func(t *testing.T) {
		a := randomScalar(t, g)
		b := randomScalar(t, g)
		lhs := group.BaseMult(g, g.NewScalar().Add(a, b))
		rhs := g.NewPoint().Add(group.BaseMult(g, a), group.BaseMult(g, b))
		if !lhs.Equal(rhs) {
			t.Error("(a+b)G != aG + bG")
		}

		P := group.BaseMult(g, a)
		lhs = g.NewPoint().ScalarMult(b, P)
		rhs = group.BaseMult(g, g.NewScalar().Mul(a, b))
		if !lhs.Equal(rhs) {
			t.Error("b(aG) != (ab)G")
		}
	})

	t.Run("Negate", func(t *testing.T) {
		P := group.BaseMult(g, randomScalar(t, g))
		negP := g.NewPoint().Negate(P)

		if !g.NewPoint().Add(P, negP).IsIdentity() {
			t.Error("P + (-P) != identity")
		}
	})

	t.Run("Identity", func(t *testing.T) {
		if !g.NewPoint().IsIdentity() {
			t.Error("new point should be identity")
		}
		if g.Generator().IsIdentity() {
			t.Error("generator should not be identity")
		}
		if !group.BaseMult(g, g.NewScalar()).IsIdentity() {
			t.Error("0*G should be identity")
		}
		P := group.BaseMult(g, randomScalar(t, g))
		if !g.NewPoint().Add(P, g.NewPoint()).Equal(P) {
			t.Error("P + identity != P")
		}
		if !g.NewPoint().ScalarMult(randomScalar(t, g), g.NewPoint()).IsIdentity() {
			t.Error("s*identity != identity")
		}
	})

	t.Run("BytesRoundtrip", func(t *testing.T) {
		for _, P := range []group.Point{
			group.BaseMult(g, randomScalar(t, g)),
			g.Generator(),
			g.NewPoint(),
		} {
			enc := P.Bytes()
			if len(enc) != g.PointSize() {
				t.Fatalf("encoding length %d, want %d", len(enc), g.PointSize())
			}
			restored, err := g.NewPoint().SetBytes(enc)
			if err != nil {
				t.Fatal(err)
			}
			if !restored.Equal(P) {
				t.Error("point bytes roundtrip failed")
			}
		}
	})

	t.Run("RejectInvalid", func(t *testing.T) {
		if _, err := g.NewPoint().SetBytes([]byte{1, 2, 3}); !errors.Is(err, group.ErrInvalidPoint) {
			t.Errorf("short point accepted: %v", err)
		}
		bad := bytes.Repeat([]byte{0xff}, g.PointSize())
		if _, err := g.NewPoint().SetBytes(bad); !errors.Is(err, group.ErrInvalidPoint) {
			t.Errorf("all-ones point accepted: %v", err)
		}
	})
}

func testReduce(t *testing.T, g group.Group) {
	t.Run("Small", func(t *testing.T) {
		one := group.ScalarFromUint64(g, 1)
		if !g.ReduceScalar(one.Bytes()).Equal(one) {
			t.Error("reducing a canonical scalar changed it")
		}
	})

	t.Run("Deterministic", func(t *testing.T) {
		digest := bytes.Repeat([]byte{0xab}, 64)
		if !g.ReduceScalar(digest).Equal(g.ReduceScalar(digest)) {
			t.Error("reduction is not deterministic")
		}
	})

	t.Run("ScalarBits", func(t *testing.T) {
		if bits := g.ScalarBits(); bits < 250 || bits > 256 {
			t.Errorf("unexpected scalar bit length %d", bits)
		}
		if len(g.Order()) != (g.ScalarBits()+7)/8 {
			t.Errorf("order length %d does not match bit length %d", len(g.Order()), g.ScalarBits())
		}
	})
}
