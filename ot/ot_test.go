package ot

import (
	"crypto/rand"
	"testing"

	"github.com/f3rmion/alice/curve"
	"github.com/f3rmion/alice/group"
	"github.com/f3rmion/alice/group/grouptest"
)

func TestTransfer(t *testing.T) {
	for _, id := range curve.All() {
		t.Run(id.String(), func(t *testing.T) {
			g := id.Group()
			options := make([]group.Scalar, 5)
			for i := range options {
				options[i] = group.ScalarFromUint64(g, uint64(i))
			}

			for choice := range options {
				a, pa, err := SenderInit(g, rand.Reader)
				if err != nil {
					t.Fatal(err)
				}
				key, pb, err := ReceiverChoose(g, rand.Reader, pa, options, choice)
				if err != nil {
					t.Fatal(err)
				}

				keys := make([]group.Point, len(options))
				SenderKeys(g, a, pb, options, keys)

				for j, k := range keys {
					if j == choice && !k.Equal(key) {
						t.Errorf("choice %d: sender key does not match receiver key", choice)
					}
					if j != choice && k.Equal(key) {
						t.Errorf("choice %d: key for option %d matches receiver key", choice, j)
					}
				}
			}
		})
	}
}

func TestSignedOptions(t *testing.T) {
	g := curve.Secp256k1.Group()
	one := group.ScalarFromUint64(g, 1)
	options := []group.Scalar{g.NewScalar().Negate(one), one}

	r := grouptest.Reader("ot signed options")
	for choice := range options {
		a, pa, err := SenderInit(g, r)
		if err != nil {
			t.Fatal(err)
		}
		key, pb, err := ReceiverChoose(g, r, pa, options, choice)
		if err != nil {
			t.Fatal(err)
		}
		keys := make([]group.Point, 2)
		SenderKeys(g, a, pb, options, keys)
		if !keys[choice].Equal(key) || keys[1-choice].Equal(key) {
			t.Errorf("choice %d: wrong key selected", choice)
		}
	}
}

func TestChooseOutOfRangePanics(t *testing.T) {
	g := curve.Ed25519.Group()
	_, pa, _ := SenderInit(g, rand.Reader)
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	ReceiverChoose(g, rand.Reader, pa, []group.Scalar{g.NewScalar()}, 1)
}
