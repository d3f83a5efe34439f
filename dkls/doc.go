// Package dkls implements two-party ECDSA-style signing in the style of
// Doerner, Kondi, Lee and shelat.
//
// Party A and party B each hold an additive share of a private key whose
// public key is Y. A presign session produces a shared instance key
// R = k_a*k_b*G and additive shares of k^-1 and sk*k^-1, computed with
// three multiplicative-to-additive conversions from package mta. The
// presign is then spent on exactly one message.
//
// Message order is fixed:
//
//	B -> A  Offer       b.Offer(rand.Reader)
//	A -> B  Choice      a.Choose(rand.Reader, offer)
//	B -> A  Reply       b.Reply(choice)
//	        (local)     a.Finalize(reply)
//	A -> B  SignRequest a.Sign(m)
//	        Signature   b.Sign(request, m)
//
// B verifies the signature before returning it. Any failed check aborts
// the session with an error matching [ErrAbort]; the parties must start a
// fresh presign rather than retry.
//
// The instance x-coordinate is embedded into the scalar field, so the
// group's points must implement [group.Affine].
package dkls
