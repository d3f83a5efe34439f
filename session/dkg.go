package session

import (
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/f3rmion/alice/curve"
	"github.com/f3rmion/alice/dkg"
	"github.com/f3rmion/alice/feldman"
	"github.com/f3rmion/alice/group"
	"github.com/f3rmion/alice/storage"
)

// DKGState is the state of a pending DKG session. A key id with no
// session row is in the empty state; aggregation and reset both return
// it there.
type DKGState uint8

const (
	StateDealt DKGState = iota + 1
)

func (s DKGState) String() string {
	switch s {
	case StateDealt:
		return "dealt"
	}
	return fmt.Sprintf("DKGState(%d)", uint8(s))
}

// DKGSession is the persisted state between Deal and Aggregate.
type DKGSession struct {
	State      DKGState
	Curve      curve.ID
	Threshold  int
	Xs         []curve.Scalar
	This       int          // index of the own x in Xs
	Y          curve.Scalar // own share of the own polynomial
	Commitment []curve.Point
}

// Deal is a share addressed to the participant at X.
type Deal struct {
	X group.Scalar
	Y group.Scalar
}

// Dealt is the output of DKG.Deal. Commitment goes to every participant;
// each Deal goes privately to its addressee.
type Dealt struct {
	Commitment feldman.Commitment
	Deals      []Deal
}

// IncomingDeal is what one other dealer sent to this participant.
type IncomingDeal struct {
	X          group.Scalar // the dealer's x
	Commitment feldman.Commitment
	Y          group.Scalar
}

// DKG runs CSI-RAShi sessions keyed by key id.
type DKG struct {
	mu       sync.Mutex
	sessions *storage.Table[DKGSession]
	keys     *storage.Table[Key]
	cfg      Config
	log      zerolog.Logger
}

// NewDKG returns a DKG manager backed by s.
func NewDKG(s *storage.Storage, cfg Config) *DKG {
	return &DKG{
		sessions: storage.OpenTable[DKGSession](s, dkgTable),
		keys:     storage.OpenTable[Key](s, keysTable),
		cfg:      cfg,
		log:      cfg.logger("dkg"),
	}
}

// Deal starts a session for keyID. xs lists every participant and
// xs[this] is the caller. A fresh secret is shared among xs; the
// caller's own share and the commitment are persisted and the deals for
// the other participants are returned.
func (d *DKG) Deal(keyID string, id curve.ID, threshold, this int, xs []group.Scalar) (*Dealt, error) {
	if err := checkKeyID(keyID); err != nil {
		return nil, err
	}
	if !id.Valid() {
		return nil, curve.ErrUnknownCurve
	}
	if this < 0 || this >= len(xs) {
		return nil, fmt.Errorf("%w: own index %d out of range", ErrParticipants, this)
	}
	if err := checkXs(xs); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParticipants, err)
	}
	if err := dkg.ValidateThreshold(threshold, len(xs)); err != nil {
		return nil, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok, err := d.sessions.Get(keyID); err != nil {
		return nil, err
	} else if ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionExists, keyID)
	}
	if _, ok, err := d.keys.Get(keyID); err != nil {
		return nil, err
	} else if ok {
		return nil, fmt.Errorf("%w: %s", ErrKeyExists, keyID)
	}

	g := id.Group()
	secret, err := g.RandomScalar(d.cfg.rand())
	if err != nil {
		return nil, err
	}
	ys, commitment, err := dkg.Deal(g, d.cfg.rand(), threshold, secret, xs)
	if err != nil {
		return nil, err
	}

	row := DKGSession{
		State:      StateDealt,
		Curve:      id,
		Threshold:  threshold,
		Xs:         tagScalars(id, xs),
		This:       this,
		Y:          curve.NewScalar(id, ys[this]),
		Commitment: tagPoints(id, commitment),
	}
	if _, _, err := d.sessions.Insert(keyID, row); err != nil {
		return nil, err
	}

	out := &Dealt{Commitment: commitment}
	for i, x := range xs {
		if i != this {
			out.Deals = append(out.Deals, Deal{X: x, Y: ys[i]})
		}
	}

	d.log.Info().
		Str("key_id", keyID).
		Stringer("curve", id).
		Int("threshold", threshold).
		Int("participants", len(xs)).
		Msg("dkg dealt")
	return out, nil
}

// Aggregate completes the session for keyID. incoming must hold exactly
// one deal from every other participant. On success the session is
// replaced by the resulting key share. If any deal fails verification the
// session is kept and a *dkg.ComplaintError indexed like the session's
// participant list is returned.
func (d *DKG) Aggregate(keyID string, incoming []IncomingDeal) (*Key, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	row, err := d.session(keyID)
	if err != nil {
		return nil, err
	}
	g := row.Curve.Group()
	xs := untagScalars(row.Xs)

	if len(incoming) != len(xs)-1 {
		return nil, fmt.Errorf("%w: got %d deals, want %d", ErrDeals, len(incoming), len(xs)-1)
	}
	commitments := make([]feldman.Commitment, len(xs))
	ys := make([]group.Scalar, len(xs))
	commitments[row.This] = untagPoints(row.Commitment)
	ys[row.This] = row.Y.Value
	for _, in := range incoming {
		i := indexOf(xs, in.X)
		if i < 0 || i == row.This {
			return nil, fmt.Errorf("%w: unexpected dealer %s", ErrDeals, curve.Hex(in.X))
		}
		if ys[i] != nil {
			return nil, fmt.Errorf("%w: duplicate dealer %s", ErrDeals, curve.Hex(in.X))
		}
		commitments[i] = in.Commitment
		ys[i] = in.Y
	}

	y, publicKey, err := dkg.AggregateDeals(g, row.Threshold, commitments, xs[row.This], ys)
	if err != nil {
		var ce *dkg.ComplaintError
		if errors.As(err, &ce) {
			d.log.Warn().Str("key_id", keyID).Ints("accused", ce.Accused()).Msg("dkg deals rejected")
		}
		return nil, err
	}

	key := KeyShare(row.Curve, row.Threshold, publicKey, xs[row.This], y)
	if err := storage.Move(d.sessions, keyID, d.keys, keyID, *key); err != nil {
		if errors.Is(err, storage.ErrExists) {
			return nil, fmt.Errorf("%w: %s", ErrKeyExists, keyID)
		}
		return nil, err
	}

	d.log.Info().Str("key_id", keyID).Str("public_key", curve.Hex(publicKey)).Msg("dkg aggregated")
	return key, nil
}

// Reset discards the session for keyID. It reports whether one existed.
func (d *DKG) Reset(keyID string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	_, ok, err := d.sessions.Remove(keyID)
	if err != nil {
		return false, err
	}
	if ok {
		d.log.Info().Str("key_id", keyID).Msg("dkg session reset")
	}
	return ok, nil
}

// Session returns the pending session for keyID.
func (d *DKG) Session(keyID string) (*DKGSession, error) {
	return d.session(keyID)
}

func (d *DKG) session(keyID string) (*DKGSession, error) {
	row, ok, err := d.sessions.Get(keyID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoSession, keyID)
	}
	return &row, nil
}
