// Package frost implements FROST (Flexible Round-Optimized Schnorr
// Threshold) signing over an arbitrary [group.Group].
//
// Signers hold Shamir shares of a key produced by package dkg. Any
// threshold of them can sign together without reconstructing the key.
// FROST itself is stateless; the caller keeps the nonce inventory and
// must never use a nonce twice.
//
// # Preprocessing
//
// Ahead of time, each signer generates a batch of nonces with
// [FROST.Preprocess] and publishes the commitments. The nonces stay
// private.
//
// # Signing
//
// For one signature, the signers agree on the set of participants, one
// commitment per participant and a [Challenge] binding the message. Each
// signer then calls [FROST.Sign] with its own nonce and share and sends
// the resulting [Shard] to an aggregator.
//
// # Aggregation
//
// [FROST.Aggregate] checks every shard and combines them into a
// [Signature]. A failed check is reported as a [*ComplaintError] naming
// the misbehaving signers, so only they need to be asked again.
//
// # Example
//
// Basic usage with 2 signers:
//
//	f := frost.New(g, sha3.New256)
//	challenge := transcript.New(transcript.SHA3_256,
//	    transcript.Point(transcript.PointY),
//	    transcript.Point(transcript.PointR),
//	    transcript.Text("hello"),
//	).Challenger(g)
//
//	nonces1, commits1, _ := f.Preprocess(rand.Reader, 1)
//	nonces2, commits2, _ := f.Preprocess(rand.Reader, 1)
//	xs := []group.Scalar{x1, x2}
//	commitments := []frost.Commitment{commits1[0], commits2[0]}
//
//	shard1 := f.Sign(publicKey, 0, y1, xs, nonces1[0], commitments, challenge)
//	shard2 := f.Sign(publicKey, 1, y2, xs, nonces2[0], commitments, challenge)
//
//	sig, err := f.Aggregate([]*frost.Shard{shard1, shard2}, xs, commitments, challenge)
//	if err != nil {
//	    // err is a *frost.ComplaintError
//	}
//	ok := f.Verify(sig, challenge)
package frost
