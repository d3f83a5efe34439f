package session

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"github.com/f3rmion/alice/curve"
	"github.com/f3rmion/alice/group"
)

var (
	ErrKeyID         = errors.New("session: invalid key id")
	ErrKeyExists     = errors.New("session: key already exists")
	ErrNoKey         = errors.New("session: no such key")
	ErrNotShare      = errors.New("session: key is not a threshold share")
	ErrSessionExists = errors.New("session: DKG session already exists")
	ErrNoSession     = errors.New("session: no DKG session")
	ErrParticipants  = errors.New("session: invalid participant list")
	ErrDeals         = errors.New("session: deals do not match participants")
	ErrSigners       = errors.New("session: invalid signer list")
	ErrUnknownNonce  = errors.New("session: unknown nonce")
	ErrNonceUsed     = errors.New("session: nonce already used")
)

// Table names.
const (
	keysTable      = "keys"
	dkgTable       = "dkg_sessions"
	noncesTable    = "frost_nonces"
	usedNonceTable = "frost_used_nonces"
)

// Config holds the dependencies shared by Keyring, DKG and Frost.
type Config struct {
	// Rand is the source of randomness. Defaults to crypto/rand.Reader.
	Rand io.Reader

	// Logger receives state transitions. Defaults to a no-op logger.
	Logger *zerolog.Logger
}

func (c Config) rand() io.Reader {
	if c.Rand == nil {
		return rand.Reader
	}
	return c.Rand
}

func (c Config) logger(component string) zerolog.Logger {
	if c.Logger == nil {
		return zerolog.Nop()
	}
	return c.Logger.With().Str("component", component).Logger()
}

func tagScalars(id curve.ID, vs []group.Scalar) []curve.Scalar {
	out := make([]curve.Scalar, len(vs))
	for i, v := range vs {
		out[i] = curve.NewScalar(id, v)
	}
	return out
}

func untagScalars(vs []curve.Scalar) []group.Scalar {
	out := make([]group.Scalar, len(vs))
	for i, v := range vs {
		out[i] = v.Value
	}
	return out
}

func tagPoints(id curve.ID, vs []group.Point) []curve.Point {
	out := make([]curve.Point, len(vs))
	for i, v := range vs {
		out[i] = curve.NewPoint(id, v)
	}
	return out
}

func untagPoints(vs []curve.Point) []group.Point {
	out := make([]group.Point, len(vs))
	for i, v := range vs {
		out[i] = v.Value
	}
	return out
}

// indexOf returns the position of x in xs, or -1.
func indexOf(xs []group.Scalar, x group.Scalar) int {
	for i, v := range xs {
		if v.Equal(x) {
			return i
		}
	}
	return -1
}

// checkXs reports an error if xs holds a zero or a duplicate.
func checkXs(xs []group.Scalar) error {
	for i, x := range xs {
		if x.IsZero() {
			return errors.New("zero x-coordinate")
		}
		if indexOf(xs[:i], x) >= 0 {
			return errors.New("duplicate x-coordinate")
		}
	}
	return nil
}

// checkKeyID rejects empty ids and ids containing the brackets that
// delimit the commitment in a nonce key.
func checkKeyID(keyID string) error {
	if keyID == "" || strings.ContainsAny(keyID, "[]") {
		return fmt.Errorf("%w: %q", ErrKeyID, keyID)
	}
	return nil
}
