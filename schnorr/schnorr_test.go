package schnorr

import (
	"crypto/rand"
	"testing"

	"github.com/f3rmion/alice/curve"
	"github.com/f3rmion/alice/group"
	"github.com/f3rmion/alice/transcript"
)

func TestProveVerify(t *testing.T) {
	for _, id := range curve.All() {
		g := id.Group()
		t.Run(id.String(), func(t *testing.T) {
			x, _ := g.RandomScalar(rand.Reader)
			k, _ := g.RandomScalar(rand.Reader)
			c, _ := g.RandomScalar(rand.Reader)
			y := group.BaseMult(g, x)

			s, r := Prove(g, x, k, c)
			if !Verify(g, y, c, s, r) {
				t.Fatal("valid proof rejected")
			}

			otherC := g.NewScalar().Add(c, group.ScalarFromUint64(g, 1))
			if Verify(g, y, otherC, s, r) {
				t.Error("proof accepted under a different challenge")
			}
			otherS := g.NewScalar().Add(s, group.ScalarFromUint64(g, 1))
			if Verify(g, y, c, otherS, r) {
				t.Error("tampered response accepted")
			}
			if Verify(g, g.Generator(), c, s, r) {
				t.Error("proof accepted for a different key")
			}
		})
	}
}

func TestVerifySignature(t *testing.T) {
	for _, id := range curve.All() {
		g := id.Group()
		t.Run(id.String(), func(t *testing.T) {
			x, _ := g.RandomScalar(rand.Reader)
			k, _ := g.RandomScalar(rand.Reader)
			y := group.BaseMult(g, x)
			r := group.BaseMult(g, k)

			tr := transcript.New(transcript.SHA3_256,
				transcript.Point(transcript.PointY),
				transcript.Point(transcript.PointR),
				transcript.Text("message"))
			c := tr.Challenge(g, y, r)
			s, _ := Prove(g, x, k, c)

			if !VerifySignature(g, tr, y, r, s) {
				t.Fatal("valid signature rejected")
			}
			other := transcript.New(transcript.SHA3_256, transcript.Text("other message"))
			if VerifySignature(g, other, y, r, s) {
				t.Error("signature accepted for a different transcript")
			}
		})
	}
}
