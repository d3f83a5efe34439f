package dkls

import (
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/f3rmion/alice/group"
	"github.com/f3rmion/alice/mta"
)

// PartyB is the sender side of the presign conversions. It produces the
// final signature.
type PartyB struct {
	params    Params
	t0        group.Scalar
	publicKey group.Point

	state   state
	session uuid.UUID
	kb      group.Scalar
	kbInv   group.Scalar
	db      group.Point
	R       group.Point
	rx      group.Scalar
	senders [mtaInstances]*mta.Sender
	t1, t2  group.Scalar
}

// NewPartyB returns party B holding the additive key share t0 of
// publicKey.
func NewPartyB(p Params, t0 group.Scalar, publicKey group.Point) (*PartyB, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}
	return &PartyB{params: p, t0: t0, publicKey: publicKey}, nil
}

// Session returns the id of the current presign session.
func (b *PartyB) Session() uuid.UUID {
	return b.session
}

// Offer starts a presign session.
func (b *PartyB) Offer(r io.Reader) (*Offer, error) {
	if b.state != stateInit {
		return nil, fmt.Errorf("%w: offer", ErrState)
	}
	g := b.params.Group

	kb, err := g.RandomScalar(r)
	if err != nil {
		return nil, err
	}
	kbInv, err := invert(g, kb, "instance key")
	if err != nil {
		return nil, err
	}
	session, err := uuid.NewRandomFromReader(r)
	if err != nil {
		return nil, err
	}

	offer := &Offer{Session: session, Db: group.BaseMult(g, kb)}
	for i := range b.senders {
		s, o, err := mta.NewSender(g, r, b.params.Slack)
		if err != nil {
			return nil, err
		}
		b.senders[i] = s
		offer.MtA[i] = o
	}

	b.session = session
	b.kb = kb
	b.kbInv = kbInv
	b.db = offer.Db
	b.state = statePresigning
	return offer, nil
}

// Reply derives the shared instance key and answers the conversions
// with the multipliers k_b^-1, k_b^-1 and t0*k_b^-1.
func (b *PartyB) Reply(choice *Choice) (*Reply, error) {
	if b.state != statePresigning {
		return nil, fmt.Errorf("%w: reply", ErrState)
	}
	if choice.Session != b.session {
		return nil, abort("choice", errors.New("session mismatch"))
	}
	if choice.RSeed == nil || choice.RSeed.IsIdentity() {
		return nil, abort("choice", errors.New("identity seed point"))
	}
	g := b.params.Group

	R := b.params.instanceKey(choice.RSeed, b.db)
	rx, err := xScalar(R)
	if err != nil {
		return nil, err
	}

	multipliers := [mtaInstances]group.Scalar{
		b.kbInv,
		b.kbInv,
		g.NewScalar().Mul(b.t0, b.kbInv),
	}

	cipher := b.params.cipher()
	reply := &Reply{Session: b.session}
	var shares [mtaInstances]group.Scalar
	for i, s := range b.senders {
		if choice.MtA[i] == nil {
			return nil, abort("choice", mta.ErrMalformed)
		}
		rep, err := s.Reply(choice.MtA[i], multipliers[i], cipher)
		if err != nil {
			return nil, abort("choice", err)
		}
		reply.MtA[i] = rep
		shares[i] = s.AdditiveShare()
	}

	b.R = R
	b.rx = rx
	b.t1 = shares[0]
	b.t2 = g.NewScalar().Add(shares[1], shares[2])
	b.senders = [mtaInstances]*mta.Sender{}
	b.state = stateReady
	return reply, nil
}

// Sign unmasks A's partial signature and completes the signature on m.
// The result is verified against the public key before it is returned.
func (b *PartyB) Sign(req *SignRequest, m group.Scalar) (*Signature, error) {
	if b.state != stateReady {
		return nil, fmt.Errorf("%w: sign", ErrState)
	}
	// The presign is spent whatever the outcome.
	b.state = stateDone

	if req.Session != b.session {
		return nil, abort("sign request", errors.New("session mismatch"))
	}
	g := b.params.Group

	// phi = eta_phi - H(t1*R)
	gamma1 := g.NewPoint().ScalarMult(b.t1, b.R)
	phi := g.NewScalar().Sub(req.EtaPhi, b.params.hashPoint(gamma1))

	// theta = t1 - phi*k_b^-1
	theta := g.NewScalar().Mul(phi, b.kbInv)
	theta.Sub(b.t1, theta)

	// sig_a = eta_sig - H(t2*G - theta*Y)
	gamma2 := group.BaseMult(g, b.t2)
	gamma2.Sub(gamma2, g.NewPoint().ScalarMult(theta, b.publicKey))
	sigA := g.NewScalar().Sub(req.EtaSig, b.params.hashPoint(gamma2))

	// sig = sig_a + m*theta + r_x*t2
	s := g.NewScalar().Mul(m, theta)
	s.Add(s, g.NewScalar().Mul(b.rx, b.t2))
	s.Add(s, sigA)

	sig := &Signature{R: b.rx, S: s}
	if !Verify(g, b.publicKey, m, sig) {
		return nil, abort("sign", errors.New("signature does not verify"))
	}
	return sig, nil
}
