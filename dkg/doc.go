// Package dkg implements the CSI-RAShi distributed key generation
// protocol.
//
// Every participant acts as a dealer. It samples a fresh secret, shares
// it with a Shamir polynomial of degree threshold-1 and publishes a
// Feldman commitment to that polynomial:
//
//	ys, commitment, err := dkg.Deal(g, rand.Reader, threshold, secret, xs)
//
// The share ys[j] is delivered privately to the participant at xs[j];
// the commitment goes to everyone. Once a participant holds one deal from
// every dealer, including its own, it aggregates them:
//
//	y, publicKey, err := dkg.AggregateDeals(g, commitments, x, ys)
//
// Aggregation verifies every deal against its commitment. If any check
// fails, it returns a [*ComplaintError] naming the offending dealers and
// no key share is produced. Otherwise y is this participant's share of
// the joint secret and publicKey is the joint public key, which is the
// same for all participants.
//
// Message delivery is left to the caller. Package session persists the
// state between the two steps.
package dkg
