package session

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/f3rmion/alice/curve"
	"github.com/f3rmion/alice/frost"
	"github.com/f3rmion/alice/group"
	"github.com/f3rmion/alice/storage"
	"github.com/f3rmion/alice/transcript"
)

// NonceRecord is a stored FROST nonce pair.
type NonceRecord struct {
	D curve.Scalar
	E curve.Scalar
}

// UsedNonce marks a consumed nonce so a replay of its commitment is told
// apart from a commitment that never existed.
type UsedNonce struct {
	UsedAt time.Time
}

// Signer is one participant of a signing session.
type Signer struct {
	X          group.Scalar
	Commitment frost.Commitment
}

// NonceKey returns the storage key of the nonce committed to by c:
// "<key-id>[<D>-<E>]".
func NonceKey(keyID string, c frost.Commitment) string {
	return keyID + "[" + curve.Hex(c.D) + "-" + curve.Hex(c.E) + "]"
}

// Frost manages the FROST nonce inventory of the stored key shares. Every
// nonce is consumed at most once.
type Frost struct {
	mu     sync.Mutex
	keys   *storage.Table[Key]
	nonces *storage.Table[NonceRecord]
	used   *storage.Table[UsedNonce]
	cfg    Config
	log    zerolog.Logger
}

// NewFrost returns a nonce inventory backed by s.
func NewFrost(s *storage.Storage, cfg Config) *Frost {
	return &Frost{
		keys:   storage.OpenTable[Key](s, keysTable),
		nonces: storage.OpenTable[NonceRecord](s, noncesTable),
		used:   storage.OpenTable[UsedNonce](s, usedNonceTable),
		cfg:    cfg,
		log:    cfg.logger("frost"),
	}
}

func (f *Frost) share(keyID string) (*Key, error) {
	if err := checkKeyID(keyID); err != nil {
		return nil, err
	}
	k, err := getKey(f.keys, keyID)
	if err != nil {
		return nil, err
	}
	if !k.IsShare() {
		return nil, fmt.Errorf("%w: %s", ErrNotShare, keyID)
	}
	return k, nil
}

// Prepare generates and stores count nonces for keyID and returns their
// commitments.
func (f *Frost) Prepare(keyID string, count int) ([]frost.Commitment, error) {
	k, err := f.share(keyID)
	if err != nil {
		return nil, err
	}
	g := k.Curve.Group()

	// The hash function only matters for signing.
	nonces, commitments, err := frost.New(g, nil).Preprocess(f.cfg.rand(), count)
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	for i, n := range nonces {
		rec := NonceRecord{D: curve.NewScalar(k.Curve, n.D), E: curve.NewScalar(k.Curve, n.E)}
		if _, _, err := f.nonces.Insert(NonceKey(keyID, commitments[i]), rec); err != nil {
			return nil, err
		}
	}

	f.log.Info().Str("key_id", keyID).Int("count", count).Msg("frost nonces prepared")
	return commitments, nil
}

// List returns the commitments of the unused nonces of keyID.
func (f *Frost) List(keyID string) ([]frost.Commitment, error) {
	if err := checkKeyID(keyID); err != nil {
		return nil, err
	}
	entries, err := f.nonces.Select(keyID + "[")
	if err != nil {
		return nil, err
	}
	var out []frost.Commitment
	for _, e := range entries {
		// Rows of a longer id sharing the prefix carry a second bracket.
		if strings.Count(e.Key[len(keyID):], "[") != 1 {
			continue
		}
		g := e.Value.D.Curve.Group()
		out = append(out, frost.Commitment{
			D: group.BaseMult(g, e.Value.D.Value),
			E: group.BaseMult(g, e.Value.E.Value),
		})
	}
	return out, nil
}

// take removes the nonce committed to by c and marks it used.
func (f *Frost) take(keyID string, c frost.Commitment) (*NonceRecord, error) {
	key := NonceKey(keyID, c)
	rec, ok, err := f.nonces.Remove(key)
	if err != nil {
		return nil, err
	}
	if !ok {
		if _, used, err := f.used.Get(key); err != nil {
			return nil, err
		} else if used {
			return nil, fmt.Errorf("%w: %s", ErrNonceUsed, key)
		}
		return nil, fmt.Errorf("%w: %s", ErrUnknownNonce, key)
	}
	if _, _, err := f.used.Insert(key, UsedNonce{UsedAt: time.Now().UTC()}); err != nil {
		return nil, err
	}
	return &rec, nil
}

// Discard drops the nonce committed to by c without signing.
func (f *Frost) Discard(keyID string, c frost.Commitment) error {
	if err := checkKeyID(keyID); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, err := f.take(keyID, c); err != nil {
		return err
	}
	f.log.Info().Str("key_id", keyID).Msg("frost nonce discarded")
	return nil
}

// Sign signs t with the share stored under keyID. signers must list
// exactly threshold participants including this one, whose commitment
// selects the nonce. The nonce is consumed before the shard is computed,
// so a failed or repeated call never reuses it.
func (f *Frost) Sign(keyID string, t *transcript.Transcript, signers []Signer) (*frost.Shard, error) {
	k, err := f.share(keyID)
	if err != nil {
		return nil, err
	}
	if len(signers) != k.Threshold {
		return nil, fmt.Errorf("%w: got %d signers, threshold is %d", ErrSigners, len(signers), k.Threshold)
	}

	xs := make([]group.Scalar, len(signers))
	commitments := make([]frost.Commitment, len(signers))
	for i, s := range signers {
		xs[i] = s.X
		commitments[i] = s.Commitment
	}
	if err := checkXs(xs); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSigners, err)
	}
	self := indexOf(xs, k.X.Value)
	if self < 0 {
		return nil, fmt.Errorf("%w: own x %s not among signers", ErrSigners, curve.Hex(k.X.Value))
	}

	f.mu.Lock()
	rec, err := f.take(keyID, commitments[self])
	f.mu.Unlock()
	if err != nil {
		return nil, err
	}

	g := k.Curve.Group()
	hf := hashFunction(t)
	shard := frost.New(g, hf.New).Sign(
		k.PublicKey.Value,
		self,
		k.Y.Value,
		xs,
		frost.Nonce{D: rec.D.Value, E: rec.E.Value},
		commitments,
		t.Challenger(g),
	)

	f.log.Info().Str("key_id", keyID).Int("signers", len(signers)).Stringer("hash_function", hf).Msg("frost shard signed")
	return shard, nil
}

// Aggregate combines the shards of signers into a signature over t.
func Aggregate(id curve.ID, t *transcript.Transcript, signers []Signer, shards []*frost.Shard) (*frost.Signature, error) {
	if len(shards) != len(signers) {
		return nil, fmt.Errorf("%w: got %d shards for %d signers", ErrSigners, len(shards), len(signers))
	}
	xs := make([]group.Scalar, len(signers))
	commitments := make([]frost.Commitment, len(signers))
	for i, s := range signers {
		xs[i] = s.X
		commitments[i] = s.Commitment
	}
	if err := checkXs(xs); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSigners, err)
	}

	g := id.Group()
	return frost.New(g, hashFunction(t).New).Aggregate(shards, xs, commitments, t.Challenger(g))
}

// Verify checks a FROST signature over t.
func Verify(id curve.ID, t *transcript.Transcript, sig *frost.Signature) bool {
	g := id.Group()
	return frost.New(g, hashFunction(t).New).Verify(sig, t.Challenger(g))
}

func hashFunction(t *transcript.Transcript) transcript.HashFunction {
	if t.HashFunction == "" {
		return transcript.DefaultHashFunction
	}
	return t.HashFunction
}
