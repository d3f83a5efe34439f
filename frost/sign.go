package frost

import (
	"io"

	"github.com/f3rmion/alice/group"
	"github.com/f3rmion/alice/shamir"
)

// Preprocess generates count single-use nonces and their commitments.
// Each nonce must be consumed by at most one call to Sign.
func (f *FROST) Preprocess(r io.Reader, count int) ([]Nonce, []Commitment, error) {
	nonces := make([]Nonce, count)
	commitments := make([]Commitment, count)
	for i := 0; i < count; i++ {
		d, err := f.group.RandomScalar(r)
		if err != nil {
			return nil, nil, err
		}
		e, err := f.group.RandomScalar(r)
		if err != nil {
			return nil, nil, err
		}

		nonces[i] = Nonce{D: d, E: e}
		commitments[i] = Commitment{
			D: group.BaseMult(f.group, d),
			E: group.BaseMult(f.group, e),
		}
	}
	return nonces, commitments, nil
}

// Sign produces the shard of signer i.
//
// xs and commitments list every signer in the same order; xs[i] and
// commitments[i] belong to the caller, whose Shamir share is shamirY and
// whose nonce is the one committed to in commitments[i]. publicKey is the
// group public key passed to challenge.
func (f *FROST) Sign(
	publicKey group.Point,
	i int,
	shamirY group.Scalar,
	xs []group.Scalar,
	nonce Nonce,
	commitments []Commitment,
	challenge Challenge,
) *Shard {
	if len(xs) != len(commitments) {
		panic("frost: signer and commitment lists differ in length")
	}
	if i < 0 || i >= len(xs) {
		panic("frost: signer index out of range")
	}

	rhos := f.bindingFactors(xs, commitments)
	R := f.groupCommitment(rhos, commitments)
	c := challenge(publicKey, R)

	// k = d + e * rho_i
	k := f.group.NewScalar().Mul(nonce.E, rhos[i])
	k.Add(k, nonce.D)

	// z = k + lambda_i * y * c
	lambda := shamir.LagrangeCoefficient(f.group, xs, i, f.group.NewScalar())
	z := f.group.NewScalar().Mul(lambda, shamirY)
	z.Mul(z, c)
	z.Add(z, k)

	return &Shard{
		Y: group.BaseMult(f.group, shamirY),
		R: group.BaseMult(f.group, k),
		Z: z,
	}
}

// Aggregate combines the shards of all signers into a signature.
//
// shards, xs and commitments are indexed by signer. Every shard is
// checked against its signer's commitment and public share; if any check
// fails, Aggregate returns a *ComplaintError and no signature. Missing or
// incomplete shards are complained about before anything is combined.
func (f *FROST) Aggregate(
	shards []*Shard,
	xs []group.Scalar,
	commitments []Commitment,
	challenge Challenge,
) (*Signature, error) {
	if len(shards) != len(xs) || len(xs) != len(commitments) {
		panic("frost: shard, signer and commitment lists differ in length")
	}

	missing := make([]bool, len(shards))
	incomplete := false
	for i, s := range shards {
		if s == nil || s.Y == nil || s.R == nil || s.Z == nil {
			missing[i] = true
			incomplete = true
		}
	}
	if incomplete {
		return nil, &ComplaintError{Complaints: missing}
	}

	rhos := f.bindingFactors(xs, commitments)
	zero := f.group.NewScalar()
	lambdas := make([]group.Scalar, len(xs))

	Y := f.group.NewPoint()
	R := f.group.NewPoint()
	z := f.group.NewScalar()
	for i, s := range shards {
		lambdas[i] = shamir.LagrangeCoefficient(f.group, xs, i, zero)
		Y.Add(Y, f.group.NewPoint().ScalarMult(lambdas[i], s.Y))
		R.Add(R, s.R)
		z.Add(z, s.Z)
	}

	c := challenge(Y, R)

	complaints := make([]bool, len(shards))
	failed := false
	for i, s := range shards {
		// R_i == D_i + E_i * rho_i
		expectR := f.group.NewPoint().ScalarMult(rhos[i], commitments[i].E)
		expectR.Add(expectR, commitments[i].D)

		// z_i * G == R_i + Y_i * (lambda_i * c)
		lc := f.group.NewScalar().Mul(lambdas[i], c)
		rhs := f.group.NewPoint().ScalarMult(lc, s.Y)
		rhs.Add(rhs, s.R)
		lhs := group.BaseMult(f.group, s.Z)

		if !s.R.Equal(expectR) || !lhs.Equal(rhs) {
			complaints[i] = true
			failed = true
		}
	}
	if failed {
		return nil, &ComplaintError{Complaints: complaints}
	}

	return &Signature{Y: Y, R: R, Z: z}, nil
}

// Verify checks z * G == R + Y * challenge(Y, R).
func (f *FROST) Verify(sig *Signature, challenge Challenge) bool {
	c := challenge(sig.Y, sig.R)

	lhs := group.BaseMult(f.group, sig.Z)
	rhs := f.group.NewPoint().ScalarMult(c, sig.Y)
	rhs.Add(rhs, sig.R)

	return lhs.Equal(rhs)
}

// bindingFactors returns rho_i = H(x_i || D_1 || E_1 || ... || D_n || E_n)
// for every signer.
func (f *FROST) bindingFactors(xs []group.Scalar, commitments []Commitment) []group.Scalar {
	var encoded []byte
	for _, c := range commitments {
		encoded = append(encoded, c.D.Bytes()...)
		encoded = append(encoded, c.E.Bytes()...)
	}

	rhos := make([]group.Scalar, len(xs))
	for i, x := range xs {
		rhos[i] = group.HashToScalar(f.group, f.newHash, x.Bytes(), encoded)
	}
	return rhos
}

// groupCommitment returns R = sum(D_i + E_i * rho_i).
func (f *FROST) groupCommitment(rhos []group.Scalar, commitments []Commitment) group.Point {
	R := f.group.NewPoint()
	for i, c := range commitments {
		term := f.group.NewPoint().ScalarMult(rhos[i], c.E)
		term.Add(term, c.D)
		R.Add(R, term)
	}
	return R
}
