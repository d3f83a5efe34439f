package mta

import (
	"errors"
	"fmt"
	"io"

	"github.com/f3rmion/alice/group"
	"github.com/f3rmion/alice/ot"
)

// ErrMalformed is returned for messages whose lengths do not match the
// expected number of transfers.
var ErrMalformed = errors.New("mta: malformed message")

// Offer is the sender's first message: one OT sender point per bit.
type Offer struct {
	Pa []group.Point
}

// Choice is the receiver's reply: one OT receiver point per bit and the
// random decomposition of the receiver's input.
type Choice struct {
	Pb     []group.Point
	Shared []group.Scalar
}

// Reply carries, per bit, the encryptions of -m1+delta and m1+delta.
type Reply struct {
	Encrypted [][2]group.Scalar
}

// Ell returns the number of transfers for group g with k slack bits.
func Ell(g group.Group, k int) int {
	return g.ScalarBits() + k
}

// options returns the two OT option values {-1, +1}.
func options(g group.Group) []group.Scalar {
	one := group.ScalarFromUint64(g, 1)
	return []group.Scalar{g.NewScalar().Negate(one), one}
}

// Sender holds the state of the multiplicative share m1.
type Sender struct {
	group  group.Group
	a      []group.Scalar
	delta  []group.Scalar
	shared []group.Scalar
}

// NewSender prepares ell = Ell(g, k) transfers and returns the offer to
// send to the receiver.
func NewSender(g group.Group, r io.Reader, k int) (*Sender, *Offer, error) {
	ell := Ell(g, k)
	s := &Sender{
		group: g,
		a:     make([]group.Scalar, ell),
	}
	offer := &Offer{Pa: make([]group.Point, ell)}

	for i := 0; i < ell; i++ {
		a, pa, err := ot.SenderInit(g, r)
		if err != nil {
			return nil, nil, err
		}
		s.a[i] = a
		offer.Pa[i] = pa
	}

	delta, err := group.RandomScalars(g, r, ell)
	if err != nil {
		return nil, nil, err
	}
	s.delta = delta

	return s, offer, nil
}

// Reply answers the receiver's choice using the sender's share m1.
func (s *Sender) Reply(choice *Choice, m1 group.Scalar, c Cipher) (*Reply, error) {
	ell := len(s.a)
	if len(choice.Pb) != ell || len(choice.Shared) != ell {
		return nil, fmt.Errorf("%w: choice has %d/%d entries, want %d",
			ErrMalformed, len(choice.Pb), len(choice.Shared), ell)
	}

	opts := options(s.group)
	negM1 := s.group.NewScalar().Negate(m1)
	keys := make([]group.Point, len(opts))

	reply := &Reply{Encrypted: make([][2]group.Scalar, ell)}
	for i := 0; i < ell; i++ {
		ot.SenderKeys(s.group, s.a[i], choice.Pb[i], opts, keys)
		reply.Encrypted[i][0] = c.Encrypt(keys[0], s.group.NewScalar().Add(negM1, s.delta[i]))
		reply.Encrypted[i][1] = c.Encrypt(keys[1], s.group.NewScalar().Add(m1, s.delta[i]))
	}

	s.shared = choice.Shared
	return reply, nil
}

// AdditiveShare returns a1 = -sum(delta[i] * shared[i]). It must be
// called after Reply.
func (s *Sender) AdditiveShare() group.Scalar {
	if s.shared == nil {
		panic("mta: additive share requested before reply")
	}
	sum := s.group.NewScalar()
	for i, d := range s.delta {
		sum.Add(sum, s.group.NewScalar().Mul(d, s.shared[i]))
	}
	return sum.Negate(sum)
}

// Receiver holds the state of the multiplicative share m2.
type Receiver struct {
	group   group.Group
	choices []int
	keys    []group.Point
	shared  []group.Scalar
}

// NewReceiver answers offer with random choices and a random
// decomposition shared of m2 satisfying sum(shared[i] * t[i]) = m2, where
// t[i] is -1 or +1 according to choice i.
func NewReceiver(g group.Group, r io.Reader, offer *Offer, m2 group.Scalar, k int) (*Receiver, *Choice, error) {
	ell := Ell(g, k)
	if len(offer.Pa) != ell {
		return nil, nil, fmt.Errorf("%w: offer has %d entries, want %d", ErrMalformed, len(offer.Pa), ell)
	}

	bits := make([]byte, (ell+7)/8)
	if _, err := io.ReadFull(r, bits); err != nil {
		return nil, nil, err
	}

	opts := options(g)
	rc := &Receiver{
		group:   g,
		choices: make([]int, ell),
		keys:    make([]group.Point, ell),
	}
	choice := &Choice{Pb: make([]group.Point, ell)}

	for i := 0; i < ell; i++ {
		rc.choices[i] = int(bits[i/8]>>(i%8)) & 1
		key, pb, err := ot.ReceiverChoose(g, r, offer.Pa[i], opts, rc.choices[i])
		if err != nil {
			return nil, nil, err
		}
		rc.keys[i] = key
		choice.Pb[i] = pb
	}

	shared, err := group.RandomScalars(g, r, ell)
	if err != nil {
		return nil, nil, err
	}

	// shared[0] = t[0] * (m2 - sum_{i>0} shared[i] * t[i]), using t^-1 = t.
	rest := g.NewScalar().Set(m2)
	for i := 1; i < ell; i++ {
		rest.Sub(rest, g.NewScalar().Mul(shared[i], opts[rc.choices[i]]))
	}
	shared[0] = rest.Mul(rest, opts[rc.choices[0]])

	rc.shared = shared
	choice.Shared = append([]group.Scalar(nil), shared...)
	return rc, choice, nil
}

// AdditiveShare decrypts the chosen entries of reply and returns
// a2 = sum(shared[i] * (t[i]*m1 + delta[i])).
func (rc *Receiver) AdditiveShare(reply *Reply, c Cipher) (group.Scalar, error) {
	if len(reply.Encrypted) != len(rc.keys) {
		return nil, fmt.Errorf("%w: reply has %d entries, want %d",
			ErrMalformed, len(reply.Encrypted), len(rc.keys))
	}

	sum := rc.group.NewScalar()
	for i, key := range rc.keys {
		m := c.Decrypt(key, reply.Encrypted[i][rc.choices[i]])
		sum.Add(sum, m.Mul(m, rc.shared[i]))
	}
	return sum, nil
}
