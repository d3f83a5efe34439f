// Package mta converts multiplicative shares into additive ones.
//
// A sender holding m1 and a receiver holding m2 end up with a1 and a2
// such that a1 + a2 = m1 * m2, without either side learning the other's
// input. The construction runs one 1-of-2 oblivious transfer per bit of
// the scalar field, plus K slack bits for statistical security, with the
// option values fixed to -1 and +1.
//
// Message flow:
//
//	sender, offer, _ := mta.NewSender(g, rand.Reader, k)        // S -> R: offer
//	receiver, choice, _ := mta.NewReceiver(g, rand.Reader, offer, m2, k) // R -> S: choice
//	reply, _ := sender.Reply(choice, m1, cipher)                 // S -> R: reply
//	a1 := sender.AdditiveShare()
//	a2, _ := receiver.AdditiveShare(reply, cipher)
//
// The symmetric cipher used to protect the replies is supplied by the
// caller; [HashPad] is the usual choice.
package mta
