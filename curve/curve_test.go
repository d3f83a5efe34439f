package curve

import (
	"crypto/rand"
	"errors"
	"strings"
	"testing"

	"github.com/f3rmion/alice/group"
)

func TestParse(t *testing.T) {
	for _, id := range All() {
		got, err := Parse(id.String())
		if err != nil {
			t.Fatal(err)
		}
		if got != id {
			t.Errorf("Parse(%q) = %v", id.String(), got)
		}
		if g, err := Of(id.Group()); err != nil || g != id {
			t.Errorf("Of(%s) = %v, %v", id, g, err)
		}
	}
	if _, err := Parse("p256"); !errors.Is(err, ErrUnknownCurve) {
		t.Errorf("unexpected error %v", err)
	}
	for _, name := range []string{"secp256k1", "ed25519", "ristretto25519"} {
		if _, err := Parse(name); err != nil {
			t.Errorf("%s: %v", name, err)
		}
	}
}

func TestTaggedScalarText(t *testing.T) {
	for _, id := range All() {
		t.Run(id.String(), func(t *testing.T) {
			v, _ := id.Group().RandomScalar(rand.Reader)
			text, err := NewScalar(id, v).MarshalText()
			if err != nil {
				t.Fatal(err)
			}
			if !strings.HasPrefix(string(text), id.String()+":") {
				t.Errorf("missing tag: %s", text)
			}

			var back Scalar
			if err := back.UnmarshalText(text); err != nil {
				t.Fatal(err)
			}
			if back.Curve != id || !back.Value.Equal(v) {
				t.Error("round trip changed the scalar")
			}

			// Bare hex needs the curve from context.
			if _, _, err := DecodeScalar(Hex(v), Unknown); !errors.Is(err, ErrUnknownCurve) {
				t.Errorf("bare hex without curve: %v", err)
			}
			if _, got, err := DecodeScalar(Hex(v), id); err != nil || !got.Equal(v) {
				t.Errorf("bare hex with curve: %v", err)
			}
		})
	}
}

func TestTaggedPointBinary(t *testing.T) {
	for _, id := range All() {
		t.Run(id.String(), func(t *testing.T) {
			g := id.Group()
			s, _ := g.RandomScalar(rand.Reader)
			v := group.BaseMult(g, s)
			bin, err := NewPoint(id, v).MarshalBinary()
			if err != nil {
				t.Fatal(err)
			}
			var back Point
			if err := back.UnmarshalBinary(bin); err != nil {
				t.Fatal(err)
			}
			if back.Curve != id || !back.Value.Equal(v) {
				t.Error("round trip changed the point")
			}
		})
	}
}

func TestCurveMismatch(t *testing.T) {
	g := Secp256k1.Group()
	text := NewPoint(Secp256k1, g.Generator()).String()
	if _, _, err := DecodePoint(text, Ed25519); !errors.Is(err, ErrCurveMismatch) {
		t.Errorf("expected mismatch, got %v", err)
	}
}

func TestRejectNonCanonical(t *testing.T) {
	bad := "secp256k1:" + strings.Repeat("ff", 32)
	if _, _, err := DecodeScalar(bad, Unknown); !errors.Is(err, group.ErrInvalidScalar) {
		t.Errorf("expected invalid scalar, got %v", err)
	}
	if _, _, err := DecodePoint("ed25519:zz", Unknown); err == nil {
		t.Error("malformed hex accepted")
	}
}
