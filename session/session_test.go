package session

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/f3rmion/alice/curve"
	"github.com/f3rmion/alice/dkg"
	"github.com/f3rmion/alice/frost"
	"github.com/f3rmion/alice/group"
	"github.com/f3rmion/alice/schnorr"
	"github.com/f3rmion/alice/shamir"
	"github.com/f3rmion/alice/storage"
	"github.com/f3rmion/alice/transcript"
)

// participant is one party with its own storage.
type participant struct {
	keys  *Keyring
	dkg   *DKG
	frost *Frost
}

func newParticipant(t *testing.T) *participant {
	t.Helper()
	s, err := storage.Open("", storage.Options{InMemory: true, Logger: zerolog.Nop()})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	cfg := Config{}
	return &participant{
		keys:  NewKeyring(s, cfg),
		dkg:   NewDKG(s, cfg),
		frost: NewFrost(s, cfg),
	}
}

func xsFor(g group.Group, n int) []group.Scalar {
	xs := make([]group.Scalar, n)
	for i := range xs {
		xs[i] = group.ScalarFromUint64(g, uint64(10*(i+1)))
	}
	return xs
}

// runDKG runs a full DKG between fresh participants and returns them
// with their key shares.
func runDKG(t *testing.T, id curve.ID, keyID string, threshold, total int) ([]*participant, []*Key) {
	t.Helper()
	g := id.Group()
	xs := xsFor(g, total)

	parts := make([]*participant, total)
	dealt := make([]*Dealt, total)
	for i := range parts {
		parts[i] = newParticipant(t)
		d, err := parts[i].dkg.Deal(keyID, id, threshold, i, xs)
		require.NoError(t, err, "participant %d failed to deal", i+1)
		require.Len(t, d.Deals, total-1)
		dealt[i] = d
	}

	keys := make([]*Key, total)
	for j := range parts {
		var incoming []IncomingDeal
		for i, d := range dealt {
			if i == j {
				continue
			}
			for _, deal := range d.Deals {
				if deal.X.Equal(xs[j]) {
					incoming = append(incoming, IncomingDeal{X: xs[i], Commitment: d.Commitment, Y: deal.Y})
				}
			}
		}
		k, err := parts[j].dkg.Aggregate(keyID, incoming)
		require.NoError(t, err, "participant %d failed to aggregate", j+1)
		keys[j] = k
	}
	return parts, keys
}

func TestKeyring(t *testing.T) {
	p := newParticipant(t)

	k, err := p.keys.Gen("alpha", curve.Secp256k1)
	require.NoError(t, err)
	assert.False(t, k.IsShare())

	_, err = p.keys.Gen("alpha", curve.Ed25519)
	assert.ErrorIs(t, err, ErrKeyExists)

	exported, err := p.keys.Export("alpha")
	require.NoError(t, err)
	assert.True(t, exported.Value.Value.Equal(k.Value.Value))
	assert.True(t, exported.Public().Equal(k.Public()))

	g := curve.Ristretto25519.Group()
	v, err := g.RandomScalar(p.keys.cfg.rand())
	require.NoError(t, err)
	require.NoError(t, p.keys.Import("alpha2", FullKey(curve.Ristretto25519, v)))
	require.NoError(t, p.keys.Import("beta", FullKey(curve.BabyJubjub, group.ScalarFromUint64(curve.BabyJubjub.Group(), 3))))

	entries, err := p.keys.List("alpha")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "alpha", entries[0].Key)
	assert.Equal(t, "alpha2", entries[1].Key)

	removed, err := p.keys.Remove("alpha")
	require.NoError(t, err)
	assert.Equal(t, curve.Secp256k1, removed.Curve)

	_, err = p.keys.Remove("alpha")
	assert.ErrorIs(t, err, ErrNoKey)
	_, err = p.keys.Export("alpha")
	assert.ErrorIs(t, err, ErrNoKey)
}

func TestKeyValidate(t *testing.T) {
	g := curve.Secp256k1.Group()
	one := group.ScalarFromUint64(g, 1)

	assert.NoError(t, FullKey(curve.Secp256k1, one).Validate())
	assert.NoError(t, KeyShare(curve.Secp256k1, 2, g.Generator(), one, one).Validate())

	assert.Error(t, (&Key{Curve: curve.Secp256k1}).Validate())
	assert.Error(t, KeyShare(curve.Secp256k1, 0, g.Generator(), one, one).Validate())
	assert.Error(t, KeyShare(curve.Secp256k1, 2, g.Generator(), g.NewScalar(), one).Validate())

	mixed := KeyShare(curve.Secp256k1, 2, g.Generator(), one, one)
	mixed.Value = FullKey(curve.Secp256k1, one).Value
	assert.Error(t, mixed.Validate())

	mismatched := FullKey(curve.Secp256k1, one)
	mismatched.Curve = curve.Ed25519
	assert.Error(t, mismatched.Validate())
}

func TestDKG(t *testing.T) {
	for _, id := range curve.All() {
		t.Run(id.String(), func(t *testing.T) {
			g := id.Group()
			parts, keys := runDKG(t, id, "joint", 2, 3)

			for i, k := range keys {
				require.True(t, k.IsShare())
				assert.Equal(t, 2, k.Threshold)
				assert.True(t, k.PublicKey.Value.Equal(keys[0].PublicKey.Value), "participant %d has a different public key", i+1)

				stored, err := parts[i].keys.Export("joint")
				require.NoError(t, err)
				assert.True(t, stored.Y.Value.Equal(k.Y.Value))

				_, err = parts[i].dkg.Session("joint")
				assert.ErrorIs(t, err, ErrNoSession)
			}

			xs := []group.Scalar{keys[0].X.Value, keys[2].X.Value}
			ys := []group.Scalar{keys[0].Y.Value, keys[2].Y.Value}
			secret := shamir.Reconstruct(g, xs, ys)
			assert.True(t, group.BaseMult(g, secret).Equal(keys[0].PublicKey.Value))
		})
	}
}

func TestDKGDealRejections(t *testing.T) {
	id := curve.Ed25519
	g := id.Group()
	p := newParticipant(t)
	xs := xsFor(g, 3)

	_, err := p.dkg.Deal("k", id, 2, 3, xs)
	assert.ErrorIs(t, err, ErrParticipants)

	_, err = p.dkg.Deal("k", id, 2, 0, []group.Scalar{xs[0], xs[1], xs[0]})
	assert.ErrorIs(t, err, ErrParticipants)

	_, err = p.dkg.Deal("k", id, 2, 0, []group.Scalar{xs[0], g.NewScalar()})
	assert.ErrorIs(t, err, ErrParticipants)

	_, err = p.dkg.Deal("k", id, 4, 0, xs)
	assert.ErrorIs(t, err, dkg.ErrThreshold)

	_, err = p.dkg.Deal("k", id, 2, 0, xs)
	require.NoError(t, err)
	_, err = p.dkg.Deal("k", id, 2, 0, xs)
	assert.ErrorIs(t, err, ErrSessionExists)

	_, err = p.keys.Gen("taken", id)
	require.NoError(t, err)
	_, err = p.dkg.Deal("taken", id, 2, 0, xs)
	assert.ErrorIs(t, err, ErrKeyExists)
}

func TestDKGAggregateRejections(t *testing.T) {
	id := curve.Secp256k1
	g := id.Group()
	xs := xsFor(g, 3)
	a, b, c := newParticipant(t), newParticipant(t), newParticipant(t)

	_, err := a.dkg.Aggregate("k", nil)
	assert.ErrorIs(t, err, ErrNoSession)

	_, err = a.dkg.Deal("k", id, 2, 0, xs)
	require.NoError(t, err)
	dealtB, err := b.dkg.Deal("k", id, 2, 1, xs)
	require.NoError(t, err)
	dealtC, err := c.dkg.Deal("k", id, 2, 2, xs)
	require.NoError(t, err)

	fromB := IncomingDeal{X: xs[1], Commitment: dealtB.Commitment, Y: dealtB.Deals[0].Y}
	fromC := IncomingDeal{X: xs[2], Commitment: dealtC.Commitment, Y: dealtC.Deals[0].Y}

	_, err = a.dkg.Aggregate("k", []IncomingDeal{fromB})
	assert.ErrorIs(t, err, ErrDeals)
	_, err = a.dkg.Aggregate("k", []IncomingDeal{fromB, fromB})
	assert.ErrorIs(t, err, ErrDeals)
	_, err = a.dkg.Aggregate("k", []IncomingDeal{fromB, {X: xs[0], Commitment: dealtC.Commitment, Y: fromC.Y}})
	assert.ErrorIs(t, err, ErrDeals)

	bad := fromC
	bad.Y = g.NewScalar().Add(fromC.Y, group.ScalarFromUint64(g, 1))
	_, err = a.dkg.Aggregate("k", []IncomingDeal{fromB, bad})
	assert.ErrorIs(t, err, dkg.ErrComplaint)
	var ce *dkg.ComplaintError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, []int{2}, ce.Accused())

	// The session survives a complaint.
	_, err = a.dkg.Session("k")
	require.NoError(t, err)

	key, err := a.dkg.Aggregate("k", []IncomingDeal{fromC, fromB})
	require.NoError(t, err)
	assert.True(t, key.X.Value.Equal(xs[0]))
}

func TestDKGResetGivesFreshSecret(t *testing.T) {
	id := curve.Ristretto25519
	g := id.Group()
	p := newParticipant(t)
	xs := xsFor(g, 2)

	first, err := p.dkg.Deal("k", id, 2, 0, xs)
	require.NoError(t, err)

	ok, err := p.dkg.Reset("k")
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = p.dkg.Reset("k")
	require.NoError(t, err)
	assert.False(t, ok)

	second, err := p.dkg.Deal("k", id, 2, 0, xs)
	require.NoError(t, err)
	assert.False(t, first.Commitment.PublicValue().Equal(second.Commitment.PublicValue()))
	assert.False(t, first.Deals[0].Y.Equal(second.Deals[0].Y))
}

func messageTranscript(msg string) *transcript.Transcript {
	return transcript.New(transcript.SHA3_256,
		transcript.Point(transcript.PointY),
		transcript.Point(transcript.PointR),
		transcript.Text(msg),
	)
}

func TestFrostSign(t *testing.T) {
	for _, id := range curve.All() {
		t.Run(id.String(), func(t *testing.T) {
			parts, keys := runDKG(t, id, "joint", 2, 3)
			tr := messageTranscript("hello")

			// Participants 1 and 3 sign.
			signing := []int{0, 2}
			signers := make([]Signer, len(signing))
			for i, idx := range signing {
				commitments, err := parts[idx].frost.Prepare("joint", 3)
				require.NoError(t, err)
				require.Len(t, commitments, 3)
				signers[i] = Signer{X: keys[idx].X.Value, Commitment: commitments[1]}
			}

			shards := make([]*frost.Shard, len(signing))
			for i, idx := range signing {
				shard, err := parts[idx].frost.Sign("joint", tr, signers)
				require.NoError(t, err)
				shards[i] = shard

				remaining, err := parts[idx].frost.List("joint")
				require.NoError(t, err)
				assert.Len(t, remaining, 2)
			}

			sig, err := Aggregate(id, tr, signers, shards)
			require.NoError(t, err)
			assert.True(t, sig.Y.Equal(keys[0].PublicKey.Value))
			assert.True(t, Verify(id, tr, sig))
			assert.True(t, schnorr.VerifySignature(id.Group(), tr, sig.Y, sig.R, sig.Z))
			assert.False(t, Verify(id, messageTranscript("other"), sig))

			// Reusing the nonce is detected.
			_, err = parts[0].frost.Sign("joint", tr, signers)
			assert.ErrorIs(t, err, ErrNonceUsed)
		})
	}
}

func TestFrostSignRejections(t *testing.T) {
	id := curve.Secp256k1
	parts, keys := runDKG(t, id, "joint", 2, 3)
	tr := messageTranscript("reject")

	c0, err := parts[0].frost.Prepare("joint", 2)
	require.NoError(t, err)
	c1, err := parts[1].frost.Prepare("joint", 1)
	require.NoError(t, err)
	c2, err := parts[2].frost.Prepare("joint", 1)
	require.NoError(t, err)

	me := Signer{X: keys[0].X.Value, Commitment: c0[0]}
	other := Signer{X: keys[1].X.Value, Commitment: c1[0]}
	third := Signer{X: keys[2].X.Value, Commitment: c2[0]}

	_, err = parts[0].frost.Sign("joint", tr, []Signer{me})
	assert.ErrorIs(t, err, ErrSigners, "too few signers")
	_, err = parts[0].frost.Sign("joint", tr, []Signer{me, other, third})
	assert.ErrorIs(t, err, ErrSigners, "too many signers")
	_, err = parts[0].frost.Sign("joint", tr, []Signer{other, third})
	assert.ErrorIs(t, err, ErrSigners, "own x missing")
	_, err = parts[0].frost.Sign("joint", tr, []Signer{me, me})
	assert.ErrorIs(t, err, ErrSigners, "duplicate signer")

	unknown := me
	unknown.Commitment = c1[0]
	_, err = parts[0].frost.Sign("joint", tr, []Signer{unknown, other})
	assert.ErrorIs(t, err, ErrUnknownNonce)

	_, err = parts[0].frost.Sign("missing", tr, []Signer{me, other})
	assert.ErrorIs(t, err, ErrNoKey)

	_, err = parts[0].keys.Gen("full", id)
	require.NoError(t, err)
	_, err = parts[0].frost.Prepare("full", 1)
	assert.ErrorIs(t, err, ErrNotShare)

	// Rejected requests do not consume the nonce.
	list, err := parts[0].frost.List("joint")
	require.NoError(t, err)
	assert.Len(t, list, 2)

	require.NoError(t, parts[0].frost.Discard("joint", c0[1]))
	assert.ErrorIs(t, parts[0].frost.Discard("joint", c0[1]), ErrNonceUsed)
	_, err = parts[0].frost.Sign("joint", tr, []Signer{{X: me.X, Commitment: c0[1]}, other})
	assert.ErrorIs(t, err, ErrNonceUsed)

	_, err = parts[0].frost.Sign("joint", tr, []Signer{me, other})
	require.NoError(t, err)
	list, err = parts[0].frost.List("joint")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestFrostAggregateComplaint(t *testing.T) {
	id := curve.Ed25519
	g := id.Group()
	parts, keys := runDKG(t, id, "joint", 2, 2)
	tr := messageTranscript("complain")

	signers := make([]Signer, 2)
	for i := range parts {
		c, err := parts[i].frost.Prepare("joint", 1)
		require.NoError(t, err)
		signers[i] = Signer{X: keys[i].X.Value, Commitment: c[0]}
	}
	shards := make([]*frost.Shard, 2)
	for i := range parts {
		s, err := parts[i].frost.Sign("joint", tr, signers)
		require.NoError(t, err)
		shards[i] = s
	}
	shards[1].Z = g.NewScalar().Add(shards[1].Z, group.ScalarFromUint64(g, 1))

	_, err := Aggregate(id, tr, signers, shards)
	assert.ErrorIs(t, err, frost.ErrInvalidShard)
	var ce *frost.ComplaintError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, []int{1}, ce.Accused())

	_, err = Aggregate(id, tr, signers, shards[:1])
	assert.ErrorIs(t, err, ErrSigners)
}

func TestNonceKey(t *testing.T) {
	g := curve.Secp256k1.Group()
	c := frost.Commitment{D: g.Generator(), E: g.NewPoint()}
	want := "k1[" + curve.Hex(g.Generator()) + "-" + curve.Hex(g.NewPoint()) + "]"
	assert.Equal(t, want, NonceKey("k1", c))
}

func TestKeyIDs(t *testing.T) {
	p := newParticipant(t)
	id := curve.Secp256k1
	g := id.Group()
	one := group.ScalarFromUint64(g, 1)

	for _, keyID := range []string{"", "a[b", "a]", "[x]"} {
		_, err := p.keys.Gen(keyID, id)
		assert.ErrorIs(t, err, ErrKeyID, "gen %q", keyID)
		err = p.keys.Import(keyID, KeyShare(id, 2, g.Generator(), one, one))
		assert.ErrorIs(t, err, ErrKeyID, "import %q", keyID)
		_, err = p.dkg.Deal(keyID, id, 2, 0, xsFor(g, 2))
		assert.ErrorIs(t, err, ErrKeyID, "deal %q", keyID)
		_, err = p.frost.Prepare(keyID, 1)
		assert.ErrorIs(t, err, ErrKeyID, "prepare %q", keyID)
		_, err = p.frost.List(keyID)
		assert.ErrorIs(t, err, ErrKeyID, "list %q", keyID)
		err = p.frost.Discard(keyID, frost.Commitment{D: g.Generator(), E: g.Generator()})
		assert.ErrorIs(t, err, ErrKeyID, "discard %q", keyID)
	}
}

func TestFrostListIgnoresLongerKeyIDs(t *testing.T) {
	p := newParticipant(t)
	id := curve.Ed25519
	g := id.Group()
	two := group.ScalarFromUint64(g, 2)
	require.NoError(t, p.keys.Import("a", KeyShare(id, 2, g.Generator(), two, two)))
	require.NoError(t, p.keys.Import("ab", KeyShare(id, 2, g.Generator(), two, two)))

	// A row under "a[b", as written before key ids were restricted.
	d, e := group.ScalarFromUint64(g, 5), group.ScalarFromUint64(g, 6)
	foreign := frost.Commitment{D: group.BaseMult(g, d), E: group.BaseMult(g, e)}
	_, _, err := p.frost.nonces.Insert(NonceKey("a[b", foreign), NonceRecord{
		D: curve.NewScalar(id, d),
		E: curve.NewScalar(id, e),
	})
	require.NoError(t, err)

	listed, err := p.frost.List("a")
	require.NoError(t, err)
	assert.Empty(t, listed)

	_, err = p.frost.Prepare("ab", 3)
	require.NoError(t, err)
	prepared, err := p.frost.Prepare("a", 1)
	require.NoError(t, err)

	listed, err = p.frost.List("a")
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.True(t, listed[0].Equal(prepared[0]))

	listed, err = p.frost.List("ab")
	require.NoError(t, err)
	assert.Len(t, listed, 3)
}

func TestDKGAggregateKeepsSessionWhenKeyExists(t *testing.T) {
	id := curve.BabyJubjub
	g := id.Group()
	xs := xsFor(g, 2)
	a, b := newParticipant(t), newParticipant(t)

	_, err := a.dkg.Deal("k", id, 2, 0, xs)
	require.NoError(t, err)
	dealtB, err := b.dkg.Deal("k", id, 2, 1, xs)
	require.NoError(t, err)

	imported := FullKey(id, group.ScalarFromUint64(g, 9))
	require.NoError(t, a.keys.Import("k", imported))

	fromB := IncomingDeal{X: xs[1], Commitment: dealtB.Commitment, Y: dealtB.Deals[0].Y}
	_, err = a.dkg.Aggregate("k", []IncomingDeal{fromB})
	assert.ErrorIs(t, err, ErrKeyExists)

	// Neither row changed.
	_, err = a.dkg.Session("k")
	require.NoError(t, err)
	k, err := a.keys.Export("k")
	require.NoError(t, err)
	assert.False(t, k.IsShare())

	// After the conflicting key is removed the same session completes.
	_, err = a.keys.Remove("k")
	require.NoError(t, err)
	share, err := a.dkg.Aggregate("k", []IncomingDeal{fromB})
	require.NoError(t, err)
	assert.True(t, share.IsShare())
	_, err = a.dkg.Session("k")
	assert.ErrorIs(t, err, ErrNoSession)
}
