package session

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/f3rmion/alice/curve"
	"github.com/f3rmion/alice/group"
	"github.com/f3rmion/alice/storage"
)

// Key is a stored private key. It is either a full key, with Value set,
// or a threshold share produced by DKG, with X and Y set.
type Key struct {
	Curve curve.ID `yaml:"curve"`

	Value *curve.Scalar `yaml:"value,omitempty"`

	Threshold int           `yaml:"threshold,omitempty"`
	PublicKey *curve.Point  `yaml:"public_key,omitempty"`
	X         *curve.Scalar `yaml:"x,omitempty"`
	Y         *curve.Scalar `yaml:"y,omitempty"`
}

// FullKey returns a full key holding v.
func FullKey(id curve.ID, v group.Scalar) *Key {
	s := curve.NewScalar(id, v)
	return &Key{Curve: id, Value: &s}
}

// KeyShare returns a threshold share of publicKey.
func KeyShare(id curve.ID, threshold int, publicKey group.Point, x, y group.Scalar) *Key {
	pk := curve.NewPoint(id, publicKey)
	xs := curve.NewScalar(id, x)
	ys := curve.NewScalar(id, y)
	return &Key{Curve: id, Threshold: threshold, PublicKey: &pk, X: &xs, Y: &ys}
}

// IsShare reports whether k is a threshold share.
func (k *Key) IsShare() bool {
	return k.X != nil
}

// Public returns the public key of k. For a share this is the group key,
// not the share's own image.
func (k *Key) Public() group.Point {
	if k.IsShare() {
		return k.PublicKey.Value
	}
	return group.BaseMult(k.Curve.Group(), k.Value.Value)
}

// Validate checks that k is exactly one of the two kinds and that all
// its elements belong to k.Curve.
func (k *Key) Validate() error {
	if !k.Curve.Valid() {
		return curve.ErrUnknownCurve
	}
	full := k.Value != nil
	share := k.X != nil || k.Y != nil || k.PublicKey != nil
	switch {
	case full == share:
		return fmt.Errorf("session: key must be either a full key or a share")
	case full:
		if k.Value.Curve != k.Curve || k.Threshold != 0 {
			return fmt.Errorf("session: malformed full key")
		}
	default:
		if k.X == nil || k.Y == nil || k.PublicKey == nil || k.Threshold < 1 {
			return fmt.Errorf("session: incomplete key share")
		}
		if k.X.Curve != k.Curve || k.Y.Curve != k.Curve || k.PublicKey.Curve != k.Curve {
			return curve.ErrCurveMismatch
		}
		if k.X.Value.IsZero() {
			return fmt.Errorf("session: key share at x = 0")
		}
	}
	return nil
}

// Keyring stores keys by id.
type Keyring struct {
	keys *storage.Table[Key]
	cfg  Config
	log  zerolog.Logger
}

// NewKeyring returns a keyring backed by s.
func NewKeyring(s *storage.Storage, cfg Config) *Keyring {
	return &Keyring{
		keys: storage.OpenTable[Key](s, keysTable),
		cfg:  cfg,
		log:  cfg.logger("keyring"),
	}
}

// Gen creates a random full key on curve id.
func (r *Keyring) Gen(keyID string, id curve.ID) (*Key, error) {
	if err := checkKeyID(keyID); err != nil {
		return nil, err
	}
	if !id.Valid() {
		return nil, curve.ErrUnknownCurve
	}
	v, err := id.Group().RandomScalar(r.cfg.rand())
	if err != nil {
		return nil, err
	}
	k := FullKey(id, v)
	if err := r.Import(keyID, k); err != nil {
		return nil, err
	}
	return k, nil
}

// Import stores k under keyID.
func (r *Keyring) Import(keyID string, k *Key) error {
	if err := checkKeyID(keyID); err != nil {
		return err
	}
	if err := k.Validate(); err != nil {
		return err
	}
	return insertKey(r.keys, r.log, keyID, k)
}

func insertKey(keys *storage.Table[Key], log zerolog.Logger, keyID string, k *Key) error {
	if _, ok, err := keys.Get(keyID); err != nil {
		return err
	} else if ok {
		return fmt.Errorf("%w: %s", ErrKeyExists, keyID)
	}
	if _, _, err := keys.Insert(keyID, *k); err != nil {
		return err
	}
	log.Info().Str("key_id", keyID).Stringer("curve", k.Curve).Bool("share", k.IsShare()).Msg("key stored")
	return nil
}

// Export returns the key stored under keyID.
func (r *Keyring) Export(keyID string) (*Key, error) {
	return getKey(r.keys, keyID)
}

func getKey(keys *storage.Table[Key], keyID string) (*Key, error) {
	k, ok, err := keys.Get(keyID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoKey, keyID)
	}
	return &k, nil
}

// List returns every key whose id starts with prefix.
func (r *Keyring) List(prefix string) ([]storage.Entry[Key], error) {
	return r.keys.Select(prefix)
}

// Remove deletes and returns the key stored under keyID.
func (r *Keyring) Remove(keyID string) (*Key, error) {
	k, ok, err := r.keys.Remove(keyID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoKey, keyID)
	}
	r.log.Info().Str("key_id", keyID).Msg("key removed")
	return &k, nil
}
