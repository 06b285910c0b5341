package utils

import "strconv"

// HashID maps a raw visitor or session identifier to a short pseudonymous
// token. The accumulator is 32-bit signed with two's-complement wraparound
// and must stay bit-compatible with previously persisted batches: for each
// character code c, acc = acc*31 + c; the final value is rendered as
// base-36 of its absolute value with a "u" prefix.
//
// This is irreversible-in-practice obfuscation, not a security boundary.
// Collisions between distinct visitors are possible and tolerated.
func HashID(id string) string {
	var acc int32
	for _, c := range id {
		acc = acc*31 + int32(c)
	}

	v := int64(acc)
	if v < 0 {
		v = -v
	}
	return "u" + strconv.FormatInt(v, 36)
}
