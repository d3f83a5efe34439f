// Package session keeps the persistent state of a participant: its keys,
// its pending DKG sessions and its FROST nonce inventory. It wraps the
// stateless protocol packages with the bookkeeping they leave to the
// caller and stores everything in a [storage.Storage].
//
// # Keys
//
// A [Keyring] stores full keys and threshold shares by key id:
//
//	keys := session.NewKeyring(store, cfg)
//	k, err := keys.Gen("wallet", curve.Secp256k1)
//
// # DKG
//
// [DKG] runs one CSI-RAShi session per key id. Deal persists the
// caller's own deal and returns the deals for everyone else; Aggregate
// consumes one deal from every other participant and, if all of them
// verify, stores the resulting key share under the same key id:
//
//	d := session.NewDKG(store, cfg)
//	dealt, err := d.Deal("wallet", curve.Ed25519, 2, 0, xs)
//	// distribute dealt.Commitment to all and dealt.Deals[i] privately
//	key, err := d.Aggregate("wallet", incoming)
//
// A session that cannot complete is dropped with Reset.
//
// # Signing
//
// [Frost] generates nonces ahead of time and consumes each one at most
// once:
//
//	f := session.NewFrost(store, cfg)
//	commitments, err := f.Prepare("wallet", 10)
//	// publish commitments; agree on signers and a transcript
//	shard, err := f.Sign("wallet", transcript, signers)
//	sig, err := session.Aggregate(curve.Ed25519, transcript, signers, shards)
//
// Signing with a commitment whose nonce was already consumed returns
// ErrNonceUsed.
//
// This package does not handle network communication. Messages are
// exchanged by the caller over whatever transport it prefers.
package session
