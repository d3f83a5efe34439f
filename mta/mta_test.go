package mta

import (
	"crypto/rand"
	"errors"
	"fmt"
	"testing"

	"golang.org/x/crypto/sha3"

	"github.com/f3rmion/alice/curve"
	"github.com/f3rmion/alice/group"
)

// run performs a full conversion and returns both additive shares.
func run(t *testing.T, g group.Group, m1, m2 group.Scalar, k int) (group.Scalar, group.Scalar) {
	t.Helper()
	cipher := HashPad{Group: g, NewHash: sha3.New256}

	sender, offer, err := NewSender(g, rand.Reader, k)
	if err != nil {
		t.Fatalf("sender init failed: %v", err)
	}
	receiver, choice, err := NewReceiver(g, rand.Reader, offer, m2, k)
	if err != nil {
		t.Fatalf("receiver choose failed: %v", err)
	}
	reply, err := sender.Reply(choice, m1, cipher)
	if err != nil {
		t.Fatalf("sender reply failed: %v", err)
	}
	a2, err := receiver.AdditiveShare(reply, cipher)
	if err != nil {
		t.Fatalf("receiver share failed: %v", err)
	}
	return sender.AdditiveShare(), a2
}

func TestIdentity(t *testing.T) {
	for _, id := range curve.All() {
		g := id.Group()
		for _, k := range []int{0, 10, 255} {
			t.Run(fmt.Sprintf("%s/K=%d", id, k), func(t *testing.T) {
				m1, _ := g.RandomScalar(rand.Reader)
				m2, _ := g.RandomScalar(rand.Reader)

				a1, a2 := run(t, g, m1, m2, k)

				sum := g.NewScalar().Add(a1, a2)
				want := g.NewScalar().Mul(m1, m2)
				if !sum.Equal(want) {
					t.Error("a1 + a2 != m1 * m2")
				}
			})
		}
	}
}

func TestIdentityEdgeInputs(t *testing.T) {
	g := curve.Secp256k1.Group()
	zero := g.NewScalar()
	one := group.ScalarFromUint64(g, 1)
	minusOne := g.NewScalar().Negate(one)

	for _, tc := range []struct {
		name   string
		m1, m2 group.Scalar
	}{
		{"zero-zero", zero, zero},
		{"zero-one", zero, one},
		{"one-minus-one", one, minusOne},
		{"minus-one-minus-one", minusOne, minusOne},
	} {
		t.Run(tc.name, func(t *testing.T) {
			a1, a2 := run(t, g, tc.m1, tc.m2, 0)
			if !g.NewScalar().Add(a1, a2).Equal(g.NewScalar().Mul(tc.m1, tc.m2)) {
				t.Error("a1 + a2 != m1 * m2")
			}
		})
	}
}

func TestTamperedReplyBreaksIdentity(t *testing.T) {
	g := curve.Ed25519.Group()
	cipher := HashPad{Group: g, NewHash: sha3.New256}
	m1, _ := g.RandomScalar(rand.Reader)
	m2, _ := g.RandomScalar(rand.Reader)

	sender, offer, err := NewSender(g, rand.Reader, 0)
	if err != nil {
		t.Fatal(err)
	}
	receiver, choice, err := NewReceiver(g, rand.Reader, offer, m2, 0)
	if err != nil {
		t.Fatal(err)
	}
	reply, err := sender.Reply(choice, m1, cipher)
	if err != nil {
		t.Fatal(err)
	}

	// Flip both entries so the receiver's pick is corrupted either way.
	one := group.ScalarFromUint64(g, 1)
	for j := 0; j < 2; j++ {
		reply.Encrypted[3][j] = g.NewScalar().Add(reply.Encrypted[3][j], one)
	}

	a2, err := receiver.AdditiveShare(reply, cipher)
	if err != nil {
		t.Fatal(err)
	}
	if g.NewScalar().Add(sender.AdditiveShare(), a2).Equal(g.NewScalar().Mul(m1, m2)) {
		t.Error("identity holds despite tampered ciphertext")
	}
}

func TestMalformedMessages(t *testing.T) {
	g := curve.Ristretto25519.Group()
	cipher := HashPad{Group: g, NewHash: sha3.New256}
	m, _ := g.RandomScalar(rand.Reader)

	sender, offer, err := NewSender(g, rand.Reader, 0)
	if err != nil {
		t.Fatal(err)
	}

	if _, _, err := NewReceiver(g, rand.Reader, offer, m, 1); !errors.Is(err, ErrMalformed) {
		t.Errorf("offer with wrong slack: %v", err)
	}

	receiver, choice, err := NewReceiver(g, rand.Reader, offer, m, 0)
	if err != nil {
		t.Fatal(err)
	}
	short := &Choice{Pb: choice.Pb[1:], Shared: choice.Shared[1:]}
	if _, err := sender.Reply(short, m, cipher); !errors.Is(err, ErrMalformed) {
		t.Errorf("short choice: %v", err)
	}

	if _, err := receiver.AdditiveShare(&Reply{}, cipher); !errors.Is(err, ErrMalformed) {
		t.Errorf("empty reply: %v", err)
	}
}

func TestAdditiveShareBeforeReplyPanics(t *testing.T) {
	g := curve.Secp256k1.Group()
	sender, _, err := NewSender(g, rand.Reader, 0)
	if err != nil {
		t.Fatal(err)
	}
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	sender.AdditiveShare()
}

func TestHashPad(t *testing.T) {
	g := curve.BabyJubjub.Group()
	pad := HashPad{Group: g, NewHash: sha3.New256}
	m, _ := g.RandomScalar(rand.Reader)
	k, _ := g.RandomScalar(rand.Reader)
	key := group.BaseMult(g, k)
	other := g.NewPoint().Add(key, g.Generator())

	c := pad.Encrypt(key, m)
	if c.Equal(m) {
		t.Error("ciphertext equals plaintext")
	}
	if !pad.Decrypt(key, c).Equal(m) {
		t.Error("decrypt does not invert encrypt")
	}
	if pad.Decrypt(other, c).Equal(m) {
		t.Error("decrypt with the wrong key recovered the plaintext")
	}
}
