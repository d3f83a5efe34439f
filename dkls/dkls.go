package dkls

import (
	"errors"
	"fmt"
	"hash"

	"github.com/google/uuid"

	"github.com/f3rmion/alice/group"
	"github.com/f3rmion/alice/mta"
)

// mtaInstances is the number of conversions run per presign.
const mtaInstances = 3

var (
	// ErrAbort is matched by every protocol failure. The session must be
	// discarded.
	ErrAbort = errors.New("dkls: protocol aborted")

	// ErrState is returned when a message arrives out of order.
	ErrState = errors.New("dkls: unexpected message for session state")

	// ErrUnsupportedGroup is returned for groups whose points do not
	// implement group.Affine.
	ErrUnsupportedGroup = errors.New("dkls: group does not expose affine x-coordinates")
)

// Params configures both parties. They must agree on every field.
type Params struct {
	Group   group.Group
	NewHash func() hash.Hash
	// Slack is the number of statistical security bits added to every
	// conversion.
	Slack int
}

func (p Params) validate() error {
	if _, ok := p.Group.Generator().(group.Affine); !ok {
		return fmt.Errorf("%w: %s", ErrUnsupportedGroup, p.Group.Name())
	}
	return nil
}

func (p Params) cipher() mta.Cipher {
	return mta.HashPad{Group: p.Group, NewHash: p.NewHash}
}

// hashPoint maps a point to a scalar.
func (p Params) hashPoint(pt group.Point) group.Scalar {
	return group.HashToScalar(p.Group, p.NewHash, pt.Bytes())
}

// instanceKey returns R = R_seed + D_b * H(R_seed).
func (p Params) instanceKey(rSeed, db group.Point) group.Point {
	R := p.Group.NewPoint().ScalarMult(p.hashPoint(rSeed), db)
	return R.Add(R, rSeed)
}

func xScalar(pt group.Point) (group.Scalar, error) {
	rx, err := pt.(group.Affine).XScalar()
	if err != nil {
		return nil, abort("instance key", err)
	}
	if rx.IsZero() {
		return nil, abort("instance key", errors.New("zero x-coordinate"))
	}
	return rx, nil
}

func abort(step string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrAbort, step, err)
}

func invert(g group.Group, s group.Scalar, step string) (group.Scalar, error) {
	inv, err := g.NewScalar().Invert(s)
	if err != nil {
		return nil, abort(step, err)
	}
	return inv, nil
}

// Offer is B's first message: its instance key image and the sender
// side of every conversion.
type Offer struct {
	Session uuid.UUID
	Db      group.Point
	MtA     [mtaInstances]*mta.Offer
}

// Choice is A's answer: the seed point of the instance key and the
// receiver side of every conversion.
type Choice struct {
	Session uuid.UUID
	RSeed   group.Point
	MtA     [mtaInstances]*mta.Choice
}

// Reply is B's encrypted answer to every conversion.
type Reply struct {
	Session uuid.UUID
	MtA     [mtaInstances]*mta.Reply
}

// SignRequest carries A's masked partial signature.
type SignRequest struct {
	Session uuid.UUID
	EtaPhi  group.Scalar
	EtaSig  group.Scalar
}

// Signature is an ECDSA-style signature (r, s), with r the x-coordinate
// of the instance key embedded into the scalar field.
type Signature struct {
	R group.Scalar
	S group.Scalar
}

// Verify checks x((m*G + r*Y) * s^-1) == r. It returns false for groups
// without affine x-coordinates and for incomplete signatures.
func Verify(g group.Group, y group.Point, m group.Scalar, sig *Signature) bool {
	if sig == nil || sig.R == nil || sig.S == nil || sig.R.IsZero() {
		return false
	}
	sInv, err := g.NewScalar().Invert(sig.S)
	if err != nil {
		return false
	}

	pt := g.NewPoint().ScalarMult(sig.R, y)
	pt.Add(pt, group.BaseMult(g, m))
	pt.ScalarMult(sInv, g.NewPoint().Set(pt))

	affine, ok := pt.(group.Affine)
	if !ok {
		return false
	}
	rx, err := affine.XScalar()
	if err != nil {
		return false
	}
	return rx.Equal(sig.R)
}

type state int

const (
	stateInit state = iota
	statePresigning
	stateReady
	stateDone
)
