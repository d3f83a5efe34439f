package curve

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/f3rmion/alice/group"
)

// ErrCurveMismatch is returned when a tagged value names a different
// curve than the one expected.
var ErrCurveMismatch = errors.New("curve: curve mismatch")

// splitTag splits "<curve>:<hex>" into its parts. Bare hex yields
// Unknown.
func splitTag(s string) (ID, string, error) {
	name, rest, ok := strings.Cut(s, ":")
	if !ok {
		return Unknown, s, nil
	}
	id, err := Parse(name)
	if err != nil {
		return Unknown, "", err
	}
	return id, rest, nil
}

// resolve picks the curve of a value given an optional expected curve.
func resolve(tagged, want ID) (ID, error) {
	switch {
	case tagged == Unknown && want == Unknown:
		return Unknown, fmt.Errorf("%w: untagged value and no curve given", ErrUnknownCurve)
	case tagged == Unknown:
		return want, nil
	case want != Unknown && tagged != want:
		return Unknown, fmt.Errorf("%w: got %s, want %s", ErrCurveMismatch, tagged, want)
	}
	return tagged, nil
}

// DecodeScalar parses a tagged or bare hex scalar. want may be Unknown
// when s is tagged.
func DecodeScalar(s string, want ID) (ID, group.Scalar, error) {
	tagged, h, err := splitTag(s)
	if err != nil {
		return Unknown, nil, err
	}
	id, err := resolve(tagged, want)
	if err != nil {
		return Unknown, nil, err
	}
	b, err := hex.DecodeString(h)
	if err != nil {
		return Unknown, nil, fmt.Errorf("curve: scalar: %w", err)
	}
	v, err := id.Group().NewScalar().SetBytes(b)
	if err != nil {
		return Unknown, nil, err
	}
	return id, v, nil
}

// DecodePoint parses a tagged or bare hex point. want may be Unknown
// when s is tagged.
func DecodePoint(s string, want ID) (ID, group.Point, error) {
	tagged, h, err := splitTag(s)
	if err != nil {
		return Unknown, nil, err
	}
	id, err := resolve(tagged, want)
	if err != nil {
		return Unknown, nil, err
	}
	b, err := hex.DecodeString(h)
	if err != nil {
		return Unknown, nil, fmt.Errorf("curve: point: %w", err)
	}
	v, err := id.Group().NewPoint().SetBytes(b)
	if err != nil {
		return Unknown, nil, err
	}
	return id, v, nil
}

// Scalar is a scalar tagged with its curve.
type Scalar struct {
	Curve ID
	Value group.Scalar
}

// NewScalar tags v with id.
func NewScalar(id ID, v group.Scalar) Scalar {
	return Scalar{Curve: id, Value: v}
}

// String returns "<curve>:<hex>".
func (s Scalar) String() string {
	return s.Curve.String() + ":" + hex.EncodeToString(s.Value.Bytes())
}

// MarshalText implements encoding.TextMarshaler.
func (s Scalar) MarshalText() ([]byte, error) {
	if !s.Curve.Valid() || s.Value == nil {
		return nil, fmt.Errorf("%w: empty scalar", ErrUnknownCurve)
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. The text must be
// tagged unless s.Curve is already set.
func (s *Scalar) UnmarshalText(text []byte) error {
	id, v, err := DecodeScalar(string(text), s.Curve)
	if err != nil {
		return err
	}
	s.Curve, s.Value = id, v
	return nil
}

// MarshalBinary implements encoding.BinaryMarshaler as the curve id
// followed by the canonical encoding.
func (s Scalar) MarshalBinary() ([]byte, error) {
	if !s.Curve.Valid() || s.Value == nil {
		return nil, fmt.Errorf("%w: empty scalar", ErrUnknownCurve)
	}
	return append([]byte{byte(s.Curve)}, s.Value.Bytes()...), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (s *Scalar) UnmarshalBinary(data []byte) error {
	if len(data) == 0 || !ID(data[0]).Valid() {
		return fmt.Errorf("%w: bad binary tag", ErrUnknownCurve)
	}
	id := ID(data[0])
	v, err := id.Group().NewScalar().SetBytes(data[1:])
	if err != nil {
		return err
	}
	s.Curve, s.Value = id, v
	return nil
}

// Point is a point tagged with its curve.
type Point struct {
	Curve ID
	Value group.Point
}

// NewPoint tags v with id.
func NewPoint(id ID, v group.Point) Point {
	return Point{Curve: id, Value: v}
}

// String returns "<curve>:<hex>".
func (p Point) String() string {
	return p.Curve.String() + ":" + hex.EncodeToString(p.Value.Bytes())
}

// MarshalText implements encoding.TextMarshaler.
func (p Point) MarshalText() ([]byte, error) {
	if !p.Curve.Valid() || p.Value == nil {
		return nil, fmt.Errorf("%w: empty point", ErrUnknownCurve)
	}
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. The text must be
// tagged unless p.Curve is already set.
func (p *Point) UnmarshalText(text []byte) error {
	id, v, err := DecodePoint(string(text), p.Curve)
	if err != nil {
		return err
	}
	p.Curve, p.Value = id, v
	return nil
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (p Point) MarshalBinary() ([]byte, error) {
	if !p.Curve.Valid() || p.Value == nil {
		return nil, fmt.Errorf("%w: empty point", ErrUnknownCurve)
	}
	return append([]byte{byte(p.Curve)}, p.Value.Bytes()...), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (p *Point) UnmarshalBinary(data []byte) error {
	if len(data) == 0 || !ID(data[0]).Valid() {
		return fmt.Errorf("%w: bad binary tag", ErrUnknownCurve)
	}
	id := ID(data[0])
	v, err := id.Group().NewPoint().SetBytes(data[1:])
	if err != nil {
		return err
	}
	p.Curve, p.Value = id, v
	return nil
}

// Hex returns the bare hex form of a scalar or point encoding.
func Hex(v interface{ Bytes() []byte }) string {
	return hex.EncodeToString(v.Bytes())
}
