package transcript

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"hash"
	"strings"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/sha3"
)

// HashFunction names a 256-bit hash function usable for challenges.
type HashFunction string

// Supported hash functions.
const (
	SHA3_256    HashFunction = "sha3-256"
	SHA2_256    HashFunction = "sha2-256"
	BLAKE2b_256 HashFunction = "blake2b-256"
)

// DefaultHashFunction is used when a transcript names none.
const DefaultHashFunction = SHA3_256

// ErrUnknownHashFunction is returned for unsupported hash function names.
var ErrUnknownHashFunction = errors.New("transcript: unknown hash function")

// HashFunctions lists the supported hash functions.
func HashFunctions() []HashFunction {
	return []HashFunction{SHA3_256, SHA2_256, BLAKE2b_256}
}

// ParseHashFunction returns the hash function named s.
func ParseHashFunction(s string) (HashFunction, error) {
	for _, h := range HashFunctions() {
		if string(h) == s {
			return h, nil
		}
	}
	names := make([]string, 0, 3)
	for _, h := range HashFunctions() {
		names = append(names, string(h))
	}
	return "", fmt.Errorf("%w: %q (known: %s)", ErrUnknownHashFunction, s, strings.Join(names, ", "))
}

// New returns a fresh hash state. It panics for an unknown hash function;
// values obtained from ParseHashFunction are always known.
func (h HashFunction) New() hash.Hash {
	switch h {
	case SHA3_256:
		return sha3.New256()
	case SHA2_256:
		return sha256.New()
	case BLAKE2b_256:
		b, err := blake2b.New256(nil)
		if err != nil {
			panic(err)
		}
		return b
	}
	panic(fmt.Sprintf("transcript: unknown hash function %q", string(h)))
}

// String returns the hash function name.
func (h HashFunction) String() string {
	return string(h)
}

// MarshalText implements encoding.TextMarshaler.
func (h HashFunction) MarshalText() ([]byte, error) {
	return []byte(h), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (h *HashFunction) UnmarshalText(text []byte) error {
	parsed, err := ParseHashFunction(string(text))
	if err != nil {
		return err
	}
	*h = parsed
	return nil
}
