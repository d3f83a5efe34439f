package dkg

import (
	"errors"
	"fmt"
	"io"

	"github.com/f3rmion/alice/feldman"
	"github.com/f3rmion/alice/group"
	"github.com/f3rmion/alice/shamir"
)

// MaxThreshold bounds the threshold of a single deal.
const MaxThreshold = 32

var (
	// ErrThreshold is returned for thresholds outside [1, MaxThreshold]
	// or above the number of participants.
	ErrThreshold = errors.New("dkg: invalid threshold")

	// ErrComplaint is matched by every *ComplaintError.
	ErrComplaint = errors.New("dkg: deal verification failed")
)

// ComplaintError reports which deals failed verification during
// aggregation. Complaints[i] is set when deal i did not match its
// commitment.
type ComplaintError struct {
	Complaints []bool
}

// Accused returns the indices of the rejected deals.
func (e *ComplaintError) Accused() []int {
	var out []int
	for i, c := range e.Complaints {
		if c {
			out = append(out, i)
		}
	}
	return out
}

func (e *ComplaintError) Error() string {
	return fmt.Sprintf("dkg: deal verification failed for dealers %v", e.Accused())
}

func (e *ComplaintError) Unwrap() error {
	return ErrComplaint
}

// ValidateThreshold checks threshold against MaxThreshold and the number
// of participants.
func ValidateThreshold(threshold, participants int) error {
	if threshold < 1 || threshold > MaxThreshold {
		return fmt.Errorf("%w: %d not in [1, %d]", ErrThreshold, threshold, MaxThreshold)
	}
	if threshold > participants {
		return fmt.Errorf("%w: %d exceeds %d participants", ErrThreshold, threshold, participants)
	}
	return nil
}

// Deal shares secret among the participants at xs. It returns one share
// per x, in order, and the commitment to the sharing polynomial.
//
// The xs must be distinct and non-zero.
func Deal(g group.Group, r io.Reader, threshold int, secret group.Scalar, xs []group.Scalar) ([]group.Scalar, feldman.Commitment, error) {
	if err := ValidateThreshold(threshold, len(xs)); err != nil {
		return nil, nil, err
	}

	poly, err := shamir.NewPolynomial(g, r, secret, threshold)
	if err != nil {
		return nil, nil, err
	}

	ys := make([]group.Scalar, len(xs))
	for i, x := range xs {
		ys[i] = poly.IssueShare(g, x)
	}

	return ys, feldman.Commit(g, poly), nil
}

// AggregateDeals combines the deals received by the participant at x.
// commitments[i] and ys[i] come from dealer i. A commitment whose length
// is not threshold is rejected like a failed share.
//
// It returns this participant's final share y, the sum of all ys, and
// the joint public key, the sum of every commitment's constant term.
func AggregateDeals(g group.Group, threshold int, commitments []feldman.Commitment, x group.Scalar, ys []group.Scalar) (group.Scalar, group.Point, error) {
	if len(commitments) != len(ys) {
		panic("dkg: commitments and deals differ in length")
	}
	if threshold < 1 || threshold > MaxThreshold {
		panic("dkg: threshold out of range")
	}

	complaints := make([]bool, len(ys))
	failed := false

	y := g.NewScalar()
	publicKey := g.NewPoint()
	for i, c := range commitments {
		if len(c) != threshold || !c.VerifyShare(g, x, ys[i]) {
			complaints[i] = true
			failed = true
			continue
		}
		y.Add(y, ys[i])
		publicKey.Add(publicKey, c.PublicValue())
	}

	if failed {
		return nil, nil, &ComplaintError{Complaints: complaints}
	}
	return y, publicKey, nil
}
