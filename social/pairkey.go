package social

import "strings"

// pairKeySeparator joins the two sorted emails of a pair key. Emails are
// validated before they reach the core, so the separator can never occur
// inside either identifier.
const pairKeySeparator = ","

// DerivePairKey computes the canonical, order-independent key of the
// conversation between two accounts: both emails lower-cased, sorted
// lexicographically, joined with the separator. Pure and deterministic.
func DerivePairKey(emailA string, emailB string) string {
	a := NormalizeEmail(emailA)
	b := NormalizeEmail(emailB)
	if b < a {
		a, b = b, a
	}
	return a + pairKeySeparator + b
}

// PairKeyParticipants splits a pair key back into its two participant emails
func PairKeyParticipants(pairKey string) (string, string) {
	split := strings.SplitN(pairKey, pairKeySeparator, 2)
	if len(split) != 2 {
		return pairKey, ""
	}
	return split[0], split[1]
}
