package model

import (
	"strings"
	"unicode/utf8"
)

// ReferralCodePrefix starts every referral code.
const ReferralCodePrefix = "SS"

// AssignReferralCode derives a customer's referral code: the prefix, the
// upper-cased initials of first and last name, then the last three characters
// of the contact number. A shorter contact number yields a shorter tail;
// callers enforce the minimum length.
func AssignReferralCode(firstName, lastName, contactNumber string) string {
	var b strings.Builder
	b.WriteString(ReferralCodePrefix)
	b.WriteString(initial(firstName))
	b.WriteString(initial(lastName))

	digits := []rune(contactNumber)
	if len(digits) > 3 {
		digits = digits[len(digits)-3:]
	}
	b.WriteString(string(digits))

	return strings.ToUpper(b.String())
}

// NormalizeReferralCode prepares user input for a lookup.
func NormalizeReferralCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func initial(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return ""
	}
	return string(r)
}
