package dkls

import (
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/f3rmion/alice/group"
	"github.com/f3rmion/alice/mta"
)

// PartyA is the receiver side of the presign conversions.
type PartyA struct {
	params    Params
	t0        group.Scalar
	publicKey group.Point

	state     state
	session   uuid.UUID
	phi       group.Scalar
	ka        group.Scalar
	R         group.Point
	rx        group.Scalar
	receivers [mtaInstances]*mta.Receiver
	t1, t2    group.Scalar
}

// NewPartyA returns party A holding the additive key share t0 of
// publicKey.
func NewPartyA(p Params, t0 group.Scalar, publicKey group.Point) (*PartyA, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}
	return &PartyA{params: p, t0: t0, publicKey: publicKey}, nil
}

// Session returns the id of the current presign session.
func (a *PartyA) Session() uuid.UUID {
	return a.session
}

// Choose derives A's instance key from the offer and answers the three
// conversions with the multipliers phi + k_a^-1, t0*k_a^-1 and k_a^-1.
func (a *PartyA) Choose(r io.Reader, offer *Offer) (*Choice, error) {
	if a.state != stateInit {
		return nil, fmt.Errorf("%w: choose", ErrState)
	}
	g := a.params.Group

	if offer.Db == nil || offer.Db.IsIdentity() {
		return nil, abort("offer", errors.New("identity instance key"))
	}

	seed, err := g.RandomScalar(r)
	if err != nil {
		return nil, err
	}
	phi, err := g.RandomScalar(r)
	if err != nil {
		return nil, err
	}

	// k_a = H(R_seed) + seed, R = D_b * k_a
	rSeed := g.NewPoint().ScalarMult(seed, offer.Db)
	ka := a.params.hashPoint(rSeed)
	ka.Add(ka, seed)
	R := a.params.instanceKey(rSeed, offer.Db)
	rx, err := xScalar(R)
	if err != nil {
		return nil, err
	}

	kaInv, err := invert(g, ka, "instance key")
	if err != nil {
		return nil, err
	}
	multipliers := [mtaInstances]group.Scalar{
		g.NewScalar().Add(phi, kaInv),
		g.NewScalar().Mul(a.t0, kaInv),
		kaInv,
	}

	choice := &Choice{Session: offer.Session, RSeed: rSeed}
	for i, m := range multipliers {
		if offer.MtA[i] == nil {
			return nil, abort("offer", mta.ErrMalformed)
		}
		rc, c, err := mta.NewReceiver(g, r, offer.MtA[i], m, a.params.Slack)
		if err != nil {
			if errors.Is(err, mta.ErrMalformed) {
				return nil, abort("offer", err)
			}
			return nil, err
		}
		a.receivers[i] = rc
		choice.MtA[i] = c
	}

	a.session = offer.Session
	a.phi = phi
	a.ka = ka
	a.R = R
	a.rx = rx
	a.state = statePresigning
	return choice, nil
}

// Finalize completes the conversions, leaving A with t1 and t2.
func (a *PartyA) Finalize(reply *Reply) error {
	if a.state != statePresigning {
		return fmt.Errorf("%w: finalize", ErrState)
	}
	if reply.Session != a.session {
		return abort("reply", errors.New("session mismatch"))
	}

	g := a.params.Group
	cipher := a.params.cipher()
	var shares [mtaInstances]group.Scalar
	for i, rc := range a.receivers {
		if reply.MtA[i] == nil {
			return abort("reply", mta.ErrMalformed)
		}
		s, err := rc.AdditiveShare(reply.MtA[i], cipher)
		if err != nil {
			return abort("reply", err)
		}
		shares[i] = s
	}

	a.t1 = shares[0]
	a.t2 = g.NewScalar().Add(shares[1], shares[2])
	a.receivers = [mtaInstances]*mta.Receiver{}
	a.state = stateReady
	return nil
}

// Sign spends the presign on message m, returning the masked partial
// signature for B.
func (a *PartyA) Sign(m group.Scalar) (*SignRequest, error) {
	if a.state != stateReady {
		return nil, fmt.Errorf("%w: sign", ErrState)
	}
	g := a.params.Group

	// sig_a = m*t1 + r_x*t2
	sigA := g.NewScalar().Mul(m, a.t1)
	sigA.Add(sigA, g.NewScalar().Mul(a.rx, a.t2))

	// gamma1 = G + k_a*phi*G - t1*R
	kaPhi := g.NewScalar().Mul(a.ka, a.phi)
	gamma1 := group.BaseMult(g, kaPhi)
	gamma1.Add(gamma1, g.Generator())
	gamma1.Sub(gamma1, g.NewPoint().ScalarMult(a.t1, a.R))

	// gamma2 = t1*Y - t2*G
	gamma2 := g.NewPoint().ScalarMult(a.t1, a.publicKey)
	gamma2.Sub(gamma2, group.BaseMult(g, a.t2))

	etaPhi := a.params.hashPoint(gamma1)
	etaPhi.Add(etaPhi, a.phi)
	etaSig := a.params.hashPoint(gamma2)
	etaSig.Add(etaSig, sigA)

	a.state = stateDone
	return &SignRequest{Session: a.session, EtaPhi: etaPhi, EtaSig: etaSig}, nil
}
