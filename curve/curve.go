// Package curve selects a concrete [group.Group] by name and provides the
// textual and binary forms of curve-tagged scalars and points.
//
// The text form of a tagged value is "<curve>:<hex>", where hex is the
// canonical fixed-width encoding. Decoders also accept bare hex when the
// curve is known from context.
package curve

import (
	"errors"
	"fmt"
	"strings"

	"github.com/f3rmion/alice/bjj"
	"github.com/f3rmion/alice/ed25519"
	"github.com/f3rmion/alice/group"
	"github.com/f3rmion/alice/ristretto255"
	"github.com/f3rmion/alice/secp256k1"
)

// ErrUnknownCurve is returned for unsupported curve names.
var ErrUnknownCurve = errors.New("curve: unknown curve")

// ID identifies a supported curve.
type ID uint8

const (
	Unknown ID = iota
	Secp256k1
	Ed25519
	Ristretto25519
	BabyJubjub
)

var groups = map[ID]group.Group{
	Secp256k1:      &secp256k1.Secp256k1{},
	Ed25519:        &ed25519.Ed25519{},
	Ristretto25519: &ristretto255.Ristretto255{},
	BabyJubjub:     &bjj.BJJ{},
}

// All returns every supported curve.
func All() []ID {
	return []ID{Secp256k1, Ed25519, Ristretto25519, BabyJubjub}
}

// Parse returns the curve named name.
func Parse(name string) (ID, error) {
	for _, id := range All() {
		if id.String() == name {
			return id, nil
		}
	}
	names := make([]string, 0, len(groups))
	for _, id := range All() {
		names = append(names, id.String())
	}
	return Unknown, fmt.Errorf("%w: %q (known: %s)", ErrUnknownCurve, name, strings.Join(names, ", "))
}

// Of returns the ID of g.
func Of(g group.Group) (ID, error) {
	return Parse(g.Name())
}

// Group returns the group implementation for id. It panics for Unknown.
func (id ID) Group() group.Group {
	g, ok := groups[id]
	if !ok {
		panic(fmt.Sprintf("curve: no group for id %d", uint8(id)))
	}
	return g
}

// Valid reports whether id names a supported curve.
func (id ID) Valid() bool {
	_, ok := groups[id]
	return ok
}

// String returns the curve name.
func (id ID) String() string {
	if g, ok := groups[id]; ok {
		return g.Name()
	}
	return "unknown"
}

// MarshalText implements encoding.TextMarshaler.
func (id ID) MarshalText() ([]byte, error) {
	if !id.Valid() {
		return nil, fmt.Errorf("%w: id %d", ErrUnknownCurve, uint8(id))
	}
	return []byte(id.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *ID) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}
